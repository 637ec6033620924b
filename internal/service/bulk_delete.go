package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tennisclub/court-admin/internal/dto"
	"github.com/tennisclub/court-admin/internal/models"
	appErrors "github.com/tennisclub/court-admin/pkg/errors"
)

const (
	msgSelectAtLeastOne = "Bitte wählen Sie mindestens eine Sperrung aus"
	msgNothingSelected  = "Keine Sperrungen ausgewählt"
)

// Confirmer asks the operator to confirm a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) bool

// Confirm implements Confirmer.
func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}

// BulkRecorder receives bulk operation outcomes for metrics.
type BulkRecorder interface {
	RecordBulkOutcome(operation, outcome string, count int)
}

// BatchPreview is one row of the bulk delete confirmation list.
type BatchPreview struct {
	BatchID    string `json:"batch_id"`
	BlockCount int    `json:"block_count"`
}

// BulkDeleteManager deletes selected blocks batch by batch.
type BulkDeleteManager struct {
	blocks    BlockClient
	reloader  Reloader
	recorder  BulkRecorder
	lookahead int
	logger    *zap.Logger
	now       func() time.Time
}

// NewBulkDeleteManager constructs the bulk delete manager. recorder may be nil.
func NewBulkDeleteManager(blocks BlockClient, reloader Reloader, recorder BulkRecorder, lookaheadDays int, logger *zap.Logger) *BulkDeleteManager {
	if lookaheadDays <= 0 {
		lookaheadDays = 30
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BulkDeleteManager{blocks: blocks, reloader: reloader, recorder: recorder, lookahead: lookaheadDays, logger: logger, now: time.Now}
}

// Preview groups the selection per batch for the confirmation modal.
func (m *BulkDeleteManager) Preview(scope Scope) ([]BatchPreview, error) {
	selection := scope.State.SelectedBlocks()
	if len(selection) == 0 {
		scope.notify(LevelWarning, msgSelectAtLeastOne)
		return nil, appErrors.Clone(appErrors.ErrNoSelection, msgSelectAtLeastOne)
	}
	counts := selection.CountByBatch()
	previews := make([]BatchPreview, 0, len(counts))
	for _, id := range selection.BatchIDs() {
		previews = append(previews, BatchPreview{BatchID: id, BlockCount: counts[id]})
	}
	return previews, nil
}

// Execute deletes every batch touched by the selection, one concurrent call
// per distinct batch. Outcomes are counted independently; the selection is
// cleared and the list reloaded even when some batches failed.
func (m *BulkDeleteManager) Execute(ctx context.Context, scope Scope) (*dto.BulkDeleteResult, error) {
	selection := scope.State.SelectedBlocks()
	if len(selection) == 0 {
		scope.notify(LevelError, msgNothingSelected)
		return nil, appErrors.Clone(appErrors.ErrNoSelection, msgNothingSelected)
	}

	batchIDs := selection.BatchIDs()
	ok := make([]bool, len(batchIDs))

	var wg sync.WaitGroup
	for i, id := range batchIDs {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			res, err := m.blocks.DeleteBatch(ctx, id)
			switch {
			case err != nil:
				m.logger.Warn("batch delete failed", zap.String("batch_id", id), zap.Error(err))
			case !res.Success:
				m.logger.Info("batch delete rejected", zap.String("batch_id", id), zap.String("error", res.Error))
			default:
				ok[i] = true
			}
		}(i, id)
	}
	wg.Wait()

	result := &dto.BulkDeleteResult{Batches: len(batchIDs)}
	for i, id := range batchIDs {
		if ok[i] {
			result.Succeeded++
		} else {
			result.Failed++
			result.FailedBatches = append(result.FailedBatches, id)
		}
	}

	if result.Succeeded > 0 {
		scope.notify(LevelSuccess, fmt.Sprintf("%d Batch(es) erfolgreich gelöscht", result.Succeeded))
	}
	if result.Failed > 0 {
		scope.notify(LevelError, fmt.Sprintf("%d Batch(es) konnten nicht gelöscht werden", result.Failed))
	}
	if m.recorder != nil {
		m.recorder.RecordBulkOutcome("delete", "success", result.Succeeded)
		m.recorder.RecordBulkOutcome("delete", "failure", result.Failed)
	}

	scope.State.ClearSelectedBlocks()
	reloadAfter(ctx, m.reloader, scope, m.logger)
	return result, nil
}

// DeleteBatch deletes one batch after confirmation. The batch is looked up in
// the upcoming window so the prompt can name its courts, date and time span.
// A declined confirmation returns the prompt with Confirmed unset.
func (m *BulkDeleteManager) DeleteBatch(ctx context.Context, scope Scope, batchID string, confirm Confirmer) (*dto.BatchDeleteResult, error) {
	today := m.now()
	res, err := m.blocks.List(ctx, models.BlockFilter{
		DateRangeStart: today.Format(dateLayout),
		DateRangeEnd:   today.AddDate(0, 0, m.lookahead).Format(dateLayout),
	})
	if failure := upstreamFailure(scope, res, err, "Fehler beim Laden der Batch-Details"); failure != nil {
		return nil, failure
	}

	var batch models.Batch
	for _, b := range models.GroupByBatch(res.Data) {
		if b.ID == batchID {
			batch = b
			break
		}
	}
	if len(batch.Blocks) == 0 {
		scope.notify(LevelError, "Batch nicht gefunden")
		return nil, appErrors.Clone(appErrors.ErrNotFound, "Batch nicht gefunden")
	}

	result := &dto.BatchDeleteResult{
		BatchID:    batchID,
		BlockCount: len(batch.Blocks),
		Prompt:     ConfirmationPrompt(batch),
	}
	if confirm == nil || !confirm.Confirm(ctx, result.Prompt) {
		return result, nil
	}
	result.Confirmed = true

	del, err := m.blocks.DeleteBatch(ctx, batchID)
	if failure := upstreamFailure(scope, del, err, "Fehler beim Löschen der Sperrung"); failure != nil {
		return nil, failure
	}

	if result.BlockCount == 1 {
		scope.notify(LevelSuccess, "Sperrung erfolgreich gelöscht")
	} else {
		scope.notify(LevelSuccess, fmt.Sprintf("%d Sperrungen erfolgreich gelöscht", result.BlockCount))
	}
	reloadAfter(ctx, m.reloader, scope, m.logger)
	return result, nil
}

// ConfirmationPrompt builds the single batch delete question.
func ConfirmationPrompt(batch models.Batch) string {
	first := batch.Blocks[0]
	courts := strings.Join(batch.CourtNames(), ", ")
	if len(batch.Blocks) == 1 {
		return fmt.Sprintf("Möchten Sie die Sperrung für %s am %s von %s bis %s wirklich löschen?",
			courts, first.Date, first.StartTime, first.EndTime)
	}
	return fmt.Sprintf("Möchten Sie die %d Sperrungen für %s am %s von %s bis %s wirklich löschen?",
		len(batch.Blocks), courts, first.Date, first.StartTime, first.EndTime)
}
