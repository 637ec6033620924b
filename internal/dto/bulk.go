package dto

import "github.com/tennisclub/court-admin/internal/models"

// BulkEditInput carries the bulk edit modal. Empty values mean "leave
// unchanged"; clearing sub reason or description needs the clear flag.
type BulkEditInput struct {
	ReasonID         int    `json:"reason_id" validate:"omitempty,min=1"`
	StartTime        string `json:"start_time" validate:"omitempty,datetime=15:04"`
	EndTime          string `json:"end_time" validate:"omitempty,datetime=15:04"`
	SubReason        string `json:"sub_reason"`
	Description      string `json:"description"`
	ClearSubReason   bool   `json:"clear_sub_reason"`
	ClearDescription bool   `json:"clear_description"`
}

// BlockPatch is a sparse patch: nil fields are left untouched by the backend.
type BlockPatch struct {
	ReasonID    *int    `json:"reason_id,omitempty"`
	StartTime   *string `json:"start_time,omitempty"`
	EndTime     *string `json:"end_time,omitempty"`
	SubReason   *string `json:"sub_reason,omitempty"`
	Description *string `json:"description,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p BlockPatch) IsEmpty() bool {
	return p.ReasonID == nil && p.StartTime == nil && p.EndTime == nil && p.SubReason == nil && p.Description == nil
}

// BulkEditRequest is the backend body of a bulk edit.
type BulkEditRequest struct {
	BlockIDs []int      `json:"block_ids"`
	Patch    BlockPatch `json:"patch"`
}

// BulkEditResult reports a successful bulk edit.
type BulkEditResult struct {
	Updated int        `json:"updated"`
	Patch   BlockPatch `json:"patch"`
}

// BulkDeleteResult aggregates per-batch delete outcomes.
type BulkDeleteResult struct {
	Batches       int      `json:"batches"`
	Succeeded     int      `json:"succeeded"`
	Failed        int      `json:"failed"`
	FailedBatches []string `json:"failed_batches,omitempty"`
}

// BatchDeleteResult reports a single batch delete.
type BatchDeleteResult struct {
	BatchID    string `json:"batch_id"`
	BlockCount int    `json:"block_count"`
	Confirmed  bool   `json:"confirmed"`
	Prompt     string `json:"prompt"`
}

// SelectionRequest replaces the current selection.
type SelectionRequest struct {
	Items     models.Selection `json:"items"`
	SelectAll bool             `json:"select_all"`
}

// BulkActionButtons is the render state of the bulk delete/edit buttons.
type BulkActionButtons struct {
	DeleteDisabled bool   `json:"delete_disabled"`
	DeleteLabel    string `json:"delete_label"`
	EditDisabled   bool   `json:"edit_disabled"`
	EditLabel      string `json:"edit_label"`
}
