package models

// Recurrence frequencies supported by block series.
const (
	FrequencyDaily  = "daily"
	FrequencyWeekly = "weekly"
)

// Weekdays lists the weekday keys in the order the series form collects them.
var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// Series is a recurring rule the backend expands into concrete blocks.
type Series struct {
	ID            int      `json:"id"`
	Name          string   `json:"name,omitempty"`
	Courts        []int    `json:"courts"`
	StartDate     string   `json:"start_date"`
	EndDate       string   `json:"end_date"`
	StartTime     string   `json:"start_time"`
	EndTime       string   `json:"end_time"`
	ReasonID      int      `json:"reason_id"`
	ReasonName    string   `json:"reason_name,omitempty"`
	SubReason     string   `json:"sub_reason,omitempty"`
	Description   string   `json:"description,omitempty"`
	Frequency     string   `json:"frequency"`
	FrequencyDays []string `json:"frequency_days"`
	SkipConflicts bool     `json:"skip_conflicts,omitempty"`
}

// Series delete scopes.
const (
	SeriesDeleteSingle = "single"
	SeriesDeleteFuture = "future"
	SeriesDeleteAll    = "all"
)
