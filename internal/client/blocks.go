package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/tennisclub/court-admin/internal/dto"
	"github.com/tennisclub/court-admin/internal/models"
)

const blocksPath = "/api/admin/blocks/"

// BlocksAPI wraps the block and batch endpoints.
type BlocksAPI struct {
	c *Client
}

// Blocks returns the block endpoint wrapper.
func (c *Client) Blocks() *BlocksAPI {
	return &BlocksAPI{c: c}
}

// List loads blocks matching the filter.
func (a *BlocksAPI) List(ctx context.Context, filter models.BlockFilter) (Result[[]models.Block], error) {
	query := url.Values{}
	if filter.DateRangeStart != "" {
		query.Set("date_range_start", filter.DateRangeStart)
	}
	if filter.DateRangeEnd != "" {
		query.Set("date_range_end", filter.DateRangeEnd)
	}
	if len(filter.CourtIDs) > 0 {
		query.Set("court_ids", joinInts(filter.CourtIDs))
	}
	if len(filter.ReasonIDs) > 0 {
		query.Set("reason_ids", joinInts(filter.ReasonIDs))
	}
	res, err := call[dto.BlockListResponse](ctx, a.c, "blocks.list", http.MethodGet, blocksPath, query, nil)
	if err != nil {
		return Result[[]models.Block]{}, err
	}
	return mapResult(res, func(r dto.BlockListResponse) []models.Block { return r.Blocks }), nil
}

// GetBatch loads the edit payload of one batch.
func (a *BlocksAPI) GetBatch(ctx context.Context, batchID string) (Result[models.BatchDetail], error) {
	return call[models.BatchDetail](ctx, a.c, "blocks.get", http.MethodGet, blocksPath+url.PathEscape(batchID), nil, nil)
}

// CreateMultiCourt creates one batch of blocks spanning several courts.
func (a *BlocksAPI) CreateMultiCourt(ctx context.Context, req dto.BlockRequest) (Result[dto.BlockMutationResponse], error) {
	return call[dto.BlockMutationResponse](ctx, a.c, "blocks.create", http.MethodPost, blocksPath, nil, req)
}

// UpdateBatch replaces every block of a batch.
func (a *BlocksAPI) UpdateBatch(ctx context.Context, batchID string, req dto.BlockRequest) (Result[dto.BlockMutationResponse], error) {
	return call[dto.BlockMutationResponse](ctx, a.c, "blocks.update", http.MethodPut, blocksPath+url.PathEscape(batchID), nil, req)
}

// DeleteBatch removes every block of a batch.
func (a *BlocksAPI) DeleteBatch(ctx context.Context, batchID string) (Result[dto.BlockMutationResponse], error) {
	return call[dto.BlockMutationResponse](ctx, a.c, "blocks.delete", http.MethodDelete, blocksPath+url.PathEscape(batchID), nil, nil)
}

// BulkEdit applies a sparse patch to the listed blocks.
func (a *BlocksAPI) BulkEdit(ctx context.Context, req dto.BulkEditRequest) (Result[dto.BlockMutationResponse], error) {
	return call[dto.BlockMutationResponse](ctx, a.c, "blocks.bulk_edit", http.MethodPost, blocksPath+"bulk-edit", nil, req)
}
