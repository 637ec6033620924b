package client

import (
	"context"
	"net/http"
	"strconv"

	"github.com/tennisclub/court-admin/internal/dto"
	"github.com/tennisclub/court-admin/internal/models"
)

const seriesPath = "/admin/blocks/series"

type seriesList struct {
	Series []models.Series `json:"series"`
}

// SeriesAPI wraps the recurring series endpoints.
type SeriesAPI struct {
	c *Client
}

// Series returns the series endpoint wrapper.
func (c *Client) Series() *SeriesAPI {
	return &SeriesAPI{c: c}
}

func seriesItemPath(id int) string {
	return seriesPath + "/" + strconv.Itoa(id)
}

// List loads every series.
func (a *SeriesAPI) List(ctx context.Context) (Result[[]models.Series], error) {
	res, err := call[seriesList](ctx, a.c, "series.list", http.MethodGet, seriesPath, nil, nil)
	if err != nil {
		return Result[[]models.Series]{}, err
	}
	return mapResult(res, func(l seriesList) []models.Series { return l.Series }), nil
}

// Create creates a new series.
func (a *SeriesAPI) Create(ctx context.Context, req dto.SeriesRequest) (Result[dto.SeriesMutationResponse], error) {
	return call[dto.SeriesMutationResponse](ctx, a.c, "series.create", http.MethodPost, seriesPath, nil, req)
}

// Update changes every instance of a series.
func (a *SeriesAPI) Update(ctx context.Context, id int, req dto.SeriesUpdateRequest) (Result[dto.SeriesMutationResponse], error) {
	return call[dto.SeriesMutationResponse](ctx, a.c, "series.update", http.MethodPut, seriesItemPath(id), nil, req)
}

// UpdateFuture changes the instances on or after req.FromDate.
func (a *SeriesAPI) UpdateFuture(ctx context.Context, id int, req dto.SeriesUpdateRequest) (Result[dto.SeriesMutationResponse], error) {
	return call[dto.SeriesMutationResponse](ctx, a.c, "series.update_future", http.MethodPut, seriesItemPath(id)+"/future", nil, req)
}

// Delete removes a single instance, future instances or the whole series.
func (a *SeriesAPI) Delete(ctx context.Context, id int, req dto.SeriesDeleteRequest) (Result[dto.SeriesMutationResponse], error) {
	return call[dto.SeriesMutationResponse](ctx, a.c, "series.delete", http.MethodDelete, seriesItemPath(id), nil, req)
}
