package models

// SelectedBlock identifies one checked row of the block list.
type SelectedBlock struct {
	ID      int    `json:"id"`
	BatchID string `json:"batch_id"`
}

// Selection is the ordered set of checked blocks.
type Selection []SelectedBlock

// BlockIDs returns the selected block ids in selection order.
func (s Selection) BlockIDs() []int {
	ids := make([]int, 0, len(s))
	for _, item := range s {
		ids = append(ids, item.ID)
	}
	return ids
}

// BatchIDs returns the distinct batch ids in first-seen order.
func (s Selection) BatchIDs() []string {
	seen := make(map[string]struct{}, len(s))
	ids := make([]string, 0, len(s))
	for _, item := range s {
		if _, ok := seen[item.BatchID]; ok {
			continue
		}
		seen[item.BatchID] = struct{}{}
		ids = append(ids, item.BatchID)
	}
	return ids
}

// CountByBatch returns how many selected blocks belong to each batch.
func (s Selection) CountByBatch() map[string]int {
	counts := make(map[string]int)
	for _, item := range s {
		counts[item.BatchID]++
	}
	return counts
}
