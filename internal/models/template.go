package models

// Template is a reusable parameter set for creating a block batch on any date.
type Template struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Courts      []int  `json:"courts"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	ReasonID    int    `json:"reason_id"`
	ReasonName  string `json:"reason_name,omitempty"`
	Details     string `json:"details,omitempty"`
	Description string `json:"description,omitempty"`
}
