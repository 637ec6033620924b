package service

import (
	"regexp"
	"strings"

	"github.com/tennisclub/court-admin/internal/dto"
)

// FormModeKind distinguishes creating a new batch from editing an existing one.
type FormModeKind int

const (
	ModeCreate FormModeKind = iota
	ModeEditBatch
)

// FormMode is Create or EditBatch(id). An EditBatch mode always holds a usable id.
type FormMode struct {
	kind    FormModeKind
	batchID string
}

// CreateMode returns the create variant.
func CreateMode() FormMode {
	return FormMode{kind: ModeCreate}
}

// EditBatchMode returns the edit variant for id, or Create when id is not usable.
func EditBatchMode(id string) FormMode {
	id = strings.TrimSpace(id)
	if !usableBatchID(id) {
		return CreateMode()
	}
	return FormMode{kind: ModeEditBatch, batchID: id}
}

func (m FormMode) Kind() FormModeKind { return m.kind }

func (m FormMode) IsEdit() bool { return m.kind == ModeEditBatch }

// BatchID returns the edited batch id, empty in create mode.
func (m FormMode) BatchID() string { return m.batchID }

// Mode names as reported to clients.
const (
	ModeNameCreate = "create"
	ModeNameEdit   = "edit"
)

func (m FormMode) String() string {
	if m.IsEdit() {
		return ModeNameEdit
	}
	return ModeNameCreate
}

var batchURLPattern = regexp.MustCompile(`/admin/court-blocking/([a-f0-9-]{36})`)

var placeholderIDs = map[string]struct{}{
	"":          {},
	"null":      {},
	"None":      {},
	"undefined": {},
}

func usableBatchID(id string) bool {
	_, placeholder := placeholderIDs[id]
	return !placeholder
}

// ResolveFormMode builds the mode of one submission. Edit is only considered
// when the form is flagged for editing or an edit payload was supplied; the
// batch id is then taken from the form data attribute, the URL path or the
// payload, in that order. Without a usable id the form creates.
func ResolveFormMode(src dto.ModeSources) FormMode {
	if !src.EditMode && src.EditPayload == nil {
		return CreateMode()
	}

	if id := strings.TrimSpace(src.DataBatchID); usableBatchID(id) {
		return EditBatchMode(id)
	}

	if match := batchURLPattern.FindStringSubmatch(src.URLPath); match != nil {
		return EditBatchMode(match[1])
	}

	if src.EditPayload != nil {
		if id := strings.TrimSpace(src.EditPayload.BatchID); usableBatchID(id) {
			return EditBatchMode(id)
		}
	}

	return CreateMode()
}
