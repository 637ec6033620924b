package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/tennisclub/court-admin/internal/client"
	"github.com/tennisclub/court-admin/internal/dto"
	"github.com/tennisclub/court-admin/internal/models"
)

const dateLayout = "2006-01-02"

// BlockClient is the subset of the backend used for blocks and batches.
type BlockClient interface {
	List(ctx context.Context, filter models.BlockFilter) (client.Result[[]models.Block], error)
	GetBatch(ctx context.Context, batchID string) (client.Result[models.BatchDetail], error)
	CreateMultiCourt(ctx context.Context, req dto.BlockRequest) (client.Result[dto.BlockMutationResponse], error)
	UpdateBatch(ctx context.Context, batchID string, req dto.BlockRequest) (client.Result[dto.BlockMutationResponse], error)
	DeleteBatch(ctx context.Context, batchID string) (client.Result[dto.BlockMutationResponse], error)
	BulkEdit(ctx context.Context, req dto.BulkEditRequest) (client.Result[dto.BlockMutationResponse], error)
}

// BlockLoader loads the upcoming block list into the session state. It is the
// reload collaborator of every form and bulk manager.
type BlockLoader struct {
	blocks    BlockClient
	lookahead int
	logger    *zap.Logger
	now       func() time.Time
}

// NewBlockLoader constructs a BlockLoader showing lookaheadDays from today.
func NewBlockLoader(blocks BlockClient, lookaheadDays int, logger *zap.Logger) *BlockLoader {
	if lookaheadDays <= 0 {
		lookaheadDays = 30
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BlockLoader{blocks: blocks, lookahead: lookaheadDays, logger: logger, now: time.Now}
}

// UpcomingFilter returns today..today+lookahead.
func (l *BlockLoader) UpcomingFilter() models.BlockFilter {
	today := l.now()
	return models.BlockFilter{
		DateRangeStart: today.Format(dateLayout),
		DateRangeEnd:   today.AddDate(0, 0, l.lookahead).Format(dateLayout),
	}
}

// Load fetches blocks for filter, stores them and clears the selection. Empty
// date bounds default to the upcoming window.
func (l *BlockLoader) Load(ctx context.Context, scope Scope, filter models.BlockFilter) ([]models.Block, error) {
	upcoming := l.UpcomingFilter()
	if filter.DateRangeStart == "" {
		filter.DateRangeStart = upcoming.DateRangeStart
	}
	if filter.DateRangeEnd == "" {
		filter.DateRangeEnd = upcoming.DateRangeEnd
	}

	res, err := l.blocks.List(ctx, filter)
	if failure := upstreamFailure(scope, res, err, "Fehler beim Laden der Sperrungen"); failure != nil {
		l.logger.Warn("load blocks failed", zap.Error(failure))
		return nil, failure
	}

	blocks := res.Data
	models.SortBlocks(blocks)
	if scope.State != nil {
		scope.State.SetBlocks(blocks, l.now())
	}
	return blocks, nil
}

// Reload implements Reloader with the upcoming window.
func (l *BlockLoader) Reload(ctx context.Context, scope Scope) error {
	_, err := l.Load(ctx, scope, models.BlockFilter{})
	return err
}
