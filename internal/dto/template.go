package dto

// TemplateFormInput carries the template form.
type TemplateFormInput struct {
	Name        string `json:"name" validate:"required"`
	Courts      []int  `json:"courts" validate:"required,min=1,dive,min=1"`
	StartTime   string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime     string `json:"end_time" validate:"required,datetime=15:04"`
	ReasonID    int    `json:"reason_id" validate:"required,min=1"`
	Details     string `json:"details"`
	Description string `json:"description"`
}

// TemplateRequest is the backend create body.
type TemplateRequest struct {
	Name        string `json:"name"`
	Courts      []int  `json:"courts"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	ReasonID    int    `json:"reason_id"`
	Details     string `json:"details"`
	Description string `json:"description"`
}

// TemplateApplyInput is the application modal: only the date is required,
// details and description override the template when given.
type TemplateApplyInput struct {
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Details     string `json:"details"`
	Description string `json:"description"`
}

// TemplateApplyRequest is the backend apply body. All three keys are always sent.
type TemplateApplyRequest struct {
	Date        string `json:"date"`
	Details     string `json:"details"`
	Description string `json:"description"`
}

// TemplateMutationResponse is what the backend answers to template mutations.
type TemplateMutationResponse struct {
	ID      int    `json:"id,omitempty"`
	Message string `json:"message,omitempty"`
}
