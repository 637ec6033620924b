package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tennisclub/court-admin/internal/models"
	appErrors "github.com/tennisclub/court-admin/pkg/errors"
)

type recorderStub struct {
	counts map[string]int
}

func (r *recorderStub) RecordBulkOutcome(operation, outcome string, count int) {
	if r.counts == nil {
		r.counts = map[string]int{}
	}
	r.counts[operation+":"+outcome] += count
}

func selectThreeAcrossTwo(scope Scope) {
	scope.State.SetSelectedBlocks(models.Selection{
		{ID: 1, BatchID: "a"},
		{ID: 2, BatchID: "a"},
		{ID: 3, BatchID: "b"},
	})
}

func TestBulkDeleteOneCallPerBatch(t *testing.T) {
	blocks := newBlockClientStub()
	reloader := &reloaderStub{}
	recorder := &recorderStub{}
	manager := NewBulkDeleteManager(blocks, reloader, recorder, 30, zap.NewNop())
	scope, toasts := newScope()
	selectThreeAcrossTwo(scope)

	result, err := manager.Execute(context.Background(), scope)
	require.NoError(t, err)

	sort.Strings(blocks.deleted)
	assert.Equal(t, []string{"a", "b"}, blocks.deleted)
	assert.Equal(t, 2, result.Succeeded)
	assert.Zero(t, result.Failed)
	assert.Empty(t, scope.State.SelectedBlocks())
	assert.Equal(t, 1, reloader.calls)
	assert.Equal(t, []Toast{{Level: LevelSuccess, Message: "2 Batch(es) erfolgreich gelöscht"}}, toasts.Items())
	assert.Equal(t, 2, recorder.counts["delete:success"])
}

func TestBulkDeletePartialFailure(t *testing.T) {
	blocks := newBlockClientStub()
	blocks.failDelete["b"] = "gesperrt"
	blocks.deleteErr["c"] = appErrors.ErrUpstreamUnavailable
	reloader := &reloaderStub{}
	manager := NewBulkDeleteManager(blocks, reloader, nil, 30, nil)
	scope, toasts := newScope()
	scope.State.SetSelectedBlocks(models.Selection{{ID: 1, BatchID: "a"}, {ID: 2, BatchID: "b"}, {ID: 3, BatchID: "c"}})

	result, err := manager.Execute(context.Background(), scope)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Batches)
	assert.Equal(t, 1, result.Succeeded)
	assert.Equal(t, 2, result.Failed)
	assert.Equal(t, []string{"b", "c"}, result.FailedBatches)
	assert.Empty(t, scope.State.SelectedBlocks())
	assert.Equal(t, 1, reloader.calls)
	assert.Equal(t, []Toast{
		{Level: LevelSuccess, Message: "1 Batch(es) erfolgreich gelöscht"},
		{Level: LevelError, Message: "2 Batch(es) konnten nicht gelöscht werden"},
	}, toasts.Items())
}

func TestBulkDeleteEmptySelection(t *testing.T) {
	blocks := newBlockClientStub()
	manager := NewBulkDeleteManager(blocks, &reloaderStub{}, nil, 30, nil)
	scope, toasts := newScope()

	_, err := manager.Execute(context.Background(), scope)
	assert.ErrorIs(t, err, appErrors.ErrNoSelection)
	assert.Empty(t, blocks.deleted)
	assert.Equal(t, "Keine Sperrungen ausgewählt", toasts.Items()[0].Message)

	_, err = manager.Preview(scope)
	assert.ErrorIs(t, err, appErrors.ErrNoSelection)
	assert.Equal(t, Toast{Level: LevelWarning, Message: "Bitte wählen Sie mindestens eine Sperrung aus"}, toasts.Items()[1])
}

func TestBulkDeletePreview(t *testing.T) {
	manager := NewBulkDeleteManager(newBlockClientStub(), nil, nil, 30, nil)
	scope, _ := newScope()
	selectThreeAcrossTwo(scope)

	previews, err := manager.Preview(scope)
	require.NoError(t, err)
	assert.Equal(t, []BatchPreview{{BatchID: "a", BlockCount: 2}, {BatchID: "b", BlockCount: 1}}, previews)
}

func batchBlocks() []models.Block {
	return []models.Block{
		{ID: 1, BatchID: "a", CourtName: "Platz 1", Date: "2024-06-01", StartTime: "10:00", EndTime: "12:00"},
		{ID: 2, BatchID: "a", CourtName: "Platz 2", Date: "2024-06-01", StartTime: "10:00", EndTime: "12:00"},
		{ID: 3, BatchID: "b", CourtName: "Platz 3", Date: "2024-06-02", StartTime: "08:00", EndTime: "09:00"},
	}
}

func TestDeleteBatchConfirmed(t *testing.T) {
	blocks := newBlockClientStub()
	blocks.blocks = batchBlocks()
	reloader := &reloaderStub{}
	manager := NewBulkDeleteManager(blocks, reloader, nil, 30, nil)
	manager.now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
	scope, toasts := newScope()

	var prompt string
	result, err := manager.DeleteBatch(context.Background(), scope, "a", ConfirmFunc(func(ctx context.Context, p string) bool {
		prompt = p
		return true
	}))
	require.NoError(t, err)
	assert.True(t, result.Confirmed)
	assert.Equal(t, "Möchten Sie die 2 Sperrungen für Platz 1, Platz 2 am 2024-06-01 von 10:00 bis 12:00 wirklich löschen?", prompt)
	assert.Equal(t, []string{"a"}, blocks.deleted)
	assert.Equal(t, models.BlockFilter{DateRangeStart: "2024-06-01", DateRangeEnd: "2024-07-01"}, blocks.filters[0])
	assert.Equal(t, "2 Sperrungen erfolgreich gelöscht", toasts.Items()[0].Message)
	assert.Equal(t, 1, reloader.calls)
}

func TestDeleteBatchDeclined(t *testing.T) {
	blocks := newBlockClientStub()
	blocks.blocks = batchBlocks()
	manager := NewBulkDeleteManager(blocks, &reloaderStub{}, nil, 30, nil)
	scope, _ := newScope()

	result, err := manager.DeleteBatch(context.Background(), scope, "b", ConfirmFunc(func(context.Context, string) bool { return false }))
	require.NoError(t, err)
	assert.False(t, result.Confirmed)
	assert.Equal(t, "Möchten Sie die Sperrung für Platz 3 am 2024-06-02 von 08:00 bis 09:00 wirklich löschen?", result.Prompt)
	assert.Empty(t, blocks.deleted)
}

func TestDeleteBatchNotFound(t *testing.T) {
	blocks := newBlockClientStub()
	blocks.blocks = batchBlocks()
	manager := NewBulkDeleteManager(blocks, nil, nil, 30, nil)
	scope, toasts := newScope()

	_, err := manager.DeleteBatch(context.Background(), scope, "zzz", nil)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
	assert.Equal(t, "Batch nicht gefunden", toasts.Items()[0].Message)
}
