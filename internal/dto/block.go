package dto

import "github.com/tennisclub/court-admin/internal/models"

// BlockFormInput carries the values of the multi-court block form.
type BlockFormInput struct {
	CourtIDs    []int  `json:"court_ids" validate:"required,min=1,dive,min=1"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime   string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime     string `json:"end_time" validate:"required,datetime=15:04"`
	ReasonID    int    `json:"reason_id" validate:"required,min=1"`
	SubReason   string `json:"sub_reason"`
	Description string `json:"description"`
}

// ModeSources lists every place an edit batch id may come from. The form
// data attribute wins over the URL, which wins over the edit payload.
type ModeSources struct {
	EditMode    bool                `json:"edit_mode"`
	DataBatchID string              `json:"data_batch_id"`
	DataBlockID string              `json:"data_block_id"`
	URLPath     string              `json:"url_path"`
	EditPayload *models.BatchDetail `json:"edit_payload,omitempty"`
}

// BlockSubmission is one submit of the block form.
type BlockSubmission struct {
	Input BlockFormInput `json:"input"`
	Mode  ModeSources    `json:"mode"`
}

// BlockRequest is the create/update body sent to the backend.
type BlockRequest struct {
	CourtIDs    []int  `json:"court_ids"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	ReasonID    int    `json:"reason_id"`
	SubReason   string `json:"sub_reason"`
	Description string `json:"description"`
}

// BlockMutationResponse is what the backend answers to create/update/delete.
type BlockMutationResponse struct {
	Message    string `json:"message,omitempty"`
	BlockCount int    `json:"block_count,omitempty"`
	BatchID    string `json:"batch_id,omitempty"`
}

// BlockSubmitResult reports what a block form submit did.
type BlockSubmitResult struct {
	Mode       string         `json:"mode"`
	BatchID    string         `json:"batch_id,omitempty"`
	BlockCount int            `json:"block_count,omitempty"`
	Message    string         `json:"message"`
	Form       BlockFormInput `json:"form"`
}

// FormState is the validation outcome of a form: whether submit is allowed and
// which fields are at fault.
type FormState struct {
	Valid          bool              `json:"valid"`
	SubmitDisabled bool              `json:"submit_disabled"`
	Errors         map[string]string `json:"errors,omitempty"`
}

// BlockListResponse wraps the backend block list.
type BlockListResponse struct {
	Blocks []models.Block `json:"blocks"`
}

// ExportRequest selects the blocks and format of a block list export.
type ExportRequest struct {
	Format         string `json:"format" validate:"required,oneof=csv pdf"`
	DateRangeStart string `json:"date_range_start" validate:"omitempty,datetime=2006-01-02"`
	DateRangeEnd   string `json:"date_range_end" validate:"omitempty,datetime=2006-01-02"`
	CourtIDs       []int  `json:"court_ids"`
	ReasonIDs      []int  `json:"reason_ids"`
}
