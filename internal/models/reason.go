package models

// Reason is a block reason managed by the backend.
type Reason struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	IsActive   bool   `json:"is_active"`
	Color      string `json:"color,omitempty"`
	UsageCount int    `json:"usage_count,omitempty"`
}

// ActiveReasons filters the list down to reasons that may be offered in dropdowns.
func ActiveReasons(reasons []Reason) []Reason {
	active := make([]Reason, 0, len(reasons))
	for _, r := range reasons {
		if r.IsActive {
			active = append(active, r)
		}
	}
	return active
}
