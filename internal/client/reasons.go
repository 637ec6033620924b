package client

import (
	"context"
	"net/http"

	"github.com/tennisclub/court-admin/internal/models"
)

type reasonList struct {
	Reasons []models.Reason `json:"reasons"`
}

// ReasonsAPI wraps the block reason endpoint.
type ReasonsAPI struct {
	c *Client
}

// Reasons returns the reason endpoint wrapper.
func (c *Client) Reasons() *ReasonsAPI {
	return &ReasonsAPI{c: c}
}

// List loads every block reason, active or not.
func (a *ReasonsAPI) List(ctx context.Context) (Result[[]models.Reason], error) {
	res, err := call[reasonList](ctx, a.c, "reasons.list", http.MethodGet, "/admin/block-reasons", nil, nil)
	if err != nil {
		return Result[[]models.Reason]{}, err
	}
	return mapResult(res, func(l reasonList) []models.Reason { return l.Reasons }), nil
}
