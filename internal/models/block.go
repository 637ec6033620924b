package models

import "sort"

// Block is a single calendar blocking rule for one court.
type Block struct {
	ID          int    `json:"id"`
	BatchID     string `json:"batch_id"`
	CourtID     int    `json:"court_id"`
	CourtName   string `json:"court_name"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	ReasonID    int    `json:"reason_id"`
	ReasonName  string `json:"reason_name,omitempty"`
	SubReason   string `json:"sub_reason,omitempty"`
	Description string `json:"description,omitempty"`
	SeriesID    *int   `json:"series_id,omitempty"`
}

// Batch is the derived group of blocks that were created in one submission.
type Batch struct {
	ID     string  `json:"batch_id"`
	Blocks []Block `json:"blocks"`
}

// CourtNames returns the distinct court names of the batch in first-seen order.
func (b Batch) CourtNames() []string {
	seen := make(map[string]struct{}, len(b.Blocks))
	names := make([]string, 0, len(b.Blocks))
	for _, block := range b.Blocks {
		if _, ok := seen[block.CourtName]; ok {
			continue
		}
		seen[block.CourtName] = struct{}{}
		names = append(names, block.CourtName)
	}
	return names
}

// GroupByBatch groups blocks by batch id. Batches are ordered by the first
// appearance of their id so the result follows the order of the input list.
func GroupByBatch(blocks []Block) []Batch {
	index := make(map[string]int)
	batches := make([]Batch, 0)
	for _, block := range blocks {
		pos, ok := index[block.BatchID]
		if !ok {
			pos = len(batches)
			index[block.BatchID] = pos
			batches = append(batches, Batch{ID: block.BatchID})
		}
		batches[pos].Blocks = append(batches[pos].Blocks, block)
	}
	return batches
}

// BatchDetail is the edit payload of one batch as returned by the backend.
type BatchDetail struct {
	BatchID     string  `json:"batch_id"`
	Date        string  `json:"date"`
	StartTime   string  `json:"start_time"`
	EndTime     string  `json:"end_time"`
	ReasonID    int     `json:"reason_id"`
	ReasonName  string  `json:"reason_name,omitempty"`
	SubReason   string  `json:"sub_reason,omitempty"`
	Description string  `json:"description,omitempty"`
	CourtIDs    []int   `json:"court_ids"`
	Blocks      []Block `json:"blocks,omitempty"`
}

// BlockFilter narrows the block list query.
type BlockFilter struct {
	DateRangeStart string
	DateRangeEnd   string
	CourtIDs       []int
	ReasonIDs      []int
}

// SortBlocks orders blocks by date, then start time, then court.
func SortBlocks(blocks []Block) {
	sort.SliceStable(blocks, func(i, j int) bool {
		if blocks[i].Date != blocks[j].Date {
			return blocks[i].Date < blocks[j].Date
		}
		if blocks[i].StartTime != blocks[j].StartTime {
			return blocks[i].StartTime < blocks[j].StartTime
		}
		return blocks[i].CourtID < blocks[j].CourtID
	})
}
