package dto

// SeriesFormInput carries the recurring series form.
type SeriesFormInput struct {
	Name          string          `json:"name"`
	Courts        []int           `json:"courts" validate:"required,min=1,dive,min=1"`
	StartDate     string          `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate       string          `json:"end_date" validate:"required,datetime=2006-01-02"`
	StartTime     string          `json:"start_time" validate:"required,datetime=15:04"`
	EndTime       string          `json:"end_time" validate:"required,datetime=15:04"`
	ReasonID      int             `json:"reason_id" validate:"required,min=1"`
	SubReason     string          `json:"sub_reason"`
	Description   string          `json:"description"`
	Frequency     string          `json:"frequency" validate:"required,oneof=daily weekly"`
	Weekdays      map[string]bool `json:"weekdays"`
	SkipConflicts bool            `json:"skip_conflicts"`
}

// SeriesRequest is the backend create body.
type SeriesRequest struct {
	Name          string   `json:"name,omitempty"`
	Courts        []int    `json:"courts"`
	StartDate     string   `json:"start_date"`
	EndDate       string   `json:"end_date"`
	StartTime     string   `json:"start_time"`
	EndTime       string   `json:"end_time"`
	ReasonID      int      `json:"reason_id"`
	SubReason     string   `json:"sub_reason"`
	Description   string   `json:"description"`
	Frequency     string   `json:"frequency"`
	FrequencyDays []string `json:"frequency_days"`
	SkipConflicts bool     `json:"skip_conflicts"`
}

// SeriesUpdateRequest changes every (or every future) instance of a series.
// Nil fields are left unchanged.
type SeriesUpdateRequest struct {
	FromDate  string  `json:"from_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	StartTime *string `json:"start_time,omitempty" validate:"omitempty,datetime=15:04"`
	EndTime   *string `json:"end_time,omitempty" validate:"omitempty,datetime=15:04"`
	ReasonID  *int    `json:"reason_id,omitempty" validate:"omitempty,min=1"`
	SubReason *string `json:"sub_reason,omitempty"`
}

// SeriesDeleteRequest selects which instances of a series to remove.
type SeriesDeleteRequest struct {
	Option   string `json:"option" validate:"required,oneof=single future all"`
	FromDate string `json:"from_date,omitempty" validate:"required_unless=Option all,omitempty,datetime=2006-01-02"`
}

// SeriesMutationResponse is what the backend answers to series mutations.
type SeriesMutationResponse struct {
	Message       string `json:"message,omitempty"`
	SeriesName    string `json:"series_name,omitempty"`
	BlocksCreated int    `json:"blocks_created,omitempty"`
}
