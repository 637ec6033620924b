package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/tennisclub/court-admin/internal/dto"
	appErrors "github.com/tennisclub/court-admin/pkg/errors"
)

const msgNoChanges = "Keine Änderungen vorgenommen"

// BulkEditManager applies one sparse patch to every selected block.
type BulkEditManager struct {
	blocks    BlockClient
	reloader  Reloader
	recorder  BulkRecorder
	validator *validator.Validate
	logger    *zap.Logger
}

// NewBulkEditManager constructs the bulk edit manager. recorder may be nil.
func NewBulkEditManager(blocks BlockClient, reloader Reloader, recorder BulkRecorder, validate *validator.Validate, logger *zap.Logger) *BulkEditManager {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BulkEditManager{blocks: blocks, reloader: reloader, recorder: recorder, validator: validate, logger: logger}
}

// BuildPatch keeps only the fields the operator filled in. A checked clear
// box sends the field as an empty string and wins over a typed value.
func BuildPatch(input dto.BulkEditInput) dto.BlockPatch {
	var patch dto.BlockPatch
	if input.ReasonID > 0 {
		id := input.ReasonID
		patch.ReasonID = &id
	}
	if v := strings.TrimSpace(input.StartTime); v != "" {
		patch.StartTime = &v
	}
	if v := strings.TrimSpace(input.EndTime); v != "" {
		patch.EndTime = &v
	}
	switch {
	case input.ClearSubReason:
		empty := ""
		patch.SubReason = &empty
	case strings.TrimSpace(input.SubReason) != "":
		v := strings.TrimSpace(input.SubReason)
		patch.SubReason = &v
	}
	switch {
	case input.ClearDescription:
		empty := ""
		patch.Description = &empty
	case strings.TrimSpace(input.Description) != "":
		v := strings.TrimSpace(input.Description)
		patch.Description = &v
	}
	return patch
}

// Execute validates the patch and sends it for the selected blocks.
func (m *BulkEditManager) Execute(ctx context.Context, scope Scope, input dto.BulkEditInput) (*dto.BulkEditResult, error) {
	selection := scope.State.SelectedBlocks()
	if len(selection) == 0 {
		scope.notify(LevelError, msgNothingSelected)
		return nil, appErrors.Clone(appErrors.ErrNoSelection, msgNothingSelected)
	}

	input.StartTime = strings.TrimSpace(input.StartTime)
	input.EndTime = strings.TrimSpace(input.EndTime)
	errs := map[string]string{}
	if err := m.validator.Struct(input); err != nil {
		errs = fieldErrors(err)
	}
	if _, bad := errs["end_time"]; !bad && input.StartTime != "" && input.EndTime != "" && timeOrderError(input.StartTime, input.EndTime) {
		errs["end_time"] = msgEndBeforeStart
	}
	if len(errs) > 0 {
		msg := bulkEditMessage(errs)
		scope.notify(LevelError, msg)
		return nil, newValidationError(msg, errs)
	}

	patch := BuildPatch(input)
	if patch.IsEmpty() {
		scope.notify(LevelWarning, msgNoChanges)
		return nil, appErrors.Clone(appErrors.ErrEmptyPatch, msgNoChanges)
	}

	ids := selection.BlockIDs()
	res, err := m.blocks.BulkEdit(ctx, dto.BulkEditRequest{BlockIDs: ids, Patch: patch})
	if failure := upstreamFailure(scope, res, err, "Fehler beim Bearbeiten der Sperrungen"); failure != nil {
		if m.recorder != nil {
			m.recorder.RecordBulkOutcome("edit", "failure", len(ids))
		}
		return nil, failure
	}
	if m.recorder != nil {
		m.recorder.RecordBulkOutcome("edit", "success", len(ids))
	}

	scope.notify(LevelSuccess, fmt.Sprintf("%d Sperrung(en) erfolgreich aktualisiert", len(ids)))
	scope.State.ClearSelectedBlocks()
	reloadAfter(ctx, m.reloader, scope, m.logger)
	return &dto.BulkEditResult{Updated: len(ids), Patch: patch}, nil
}

// bulkEditMessage picks the toast for a rejected bulk edit. No field is
// required here, so the offending field's own message is shown.
func bulkEditMessage(errs map[string]string) string {
	for _, key := range []string{"end_time", "start_time", "reason_id"} {
		if msg, ok := errs[key]; ok {
			return msg
		}
	}
	return firstMessage(errs)
}
