package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tennisclub/court-admin/internal/dto"
	"github.com/tennisclub/court-admin/internal/models"
	"github.com/tennisclub/court-admin/internal/render"
	"github.com/tennisclub/court-admin/internal/service"
)

type seriesForm interface {
	Defaults() dto.SeriesFormInput
	Validate(input dto.SeriesFormInput) dto.FormState
	Submit(ctx context.Context, scope service.Scope, input dto.SeriesFormInput) (*dto.SeriesMutationResponse, error)
	List(ctx context.Context, scope service.Scope) ([]models.Series, error)
	Update(ctx context.Context, scope service.Scope, id int, req dto.SeriesUpdateRequest, futureOnly bool) (*dto.SeriesMutationResponse, error)
	Delete(ctx context.Context, scope service.Scope, id int, req dto.SeriesDeleteRequest) (*dto.SeriesMutationResponse, error)
}

// SeriesHandler exposes recurring series management.
type SeriesHandler struct {
	form seriesForm
}

// NewSeriesHandler builds a new handler.
func NewSeriesHandler(form seriesForm) *SeriesHandler {
	return &SeriesHandler{form: form}
}

// List godoc
// @Summary List recurring series
// @Tags Series
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /series [get]
func (h *SeriesHandler) List(c *gin.Context) {
	scope, toasts := scopeFromContext(c)
	series, err := h.form.List(c.Request.Context(), scope)
	if err != nil {
		fail(c, err, toasts)
		return
	}
	ok(c, http.StatusOK, gin.H{"series": series, "view": render.SeriesList(series)}, toasts)
}

// FormDefaults godoc
// @Summary Default values of an empty series form
// @Tags Series
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /series/form [get]
func (h *SeriesHandler) FormDefaults(c *gin.Context) {
	defaults := h.form.Defaults()
	ok(c, http.StatusOK, gin.H{"form": defaults, "state": h.form.Validate(defaults)}, nil)
}

// Validate godoc
// @Summary Validate series form values
// @Tags Series
// @Accept json
// @Produce json
// @Param payload body dto.SeriesFormInput true "Form values"
// @Success 200 {object} response.Envelope
// @Router /series/form/validate [post]
func (h *SeriesHandler) Validate(c *gin.Context) {
	var input dto.SeriesFormInput
	if !bind(c, &input) {
		return
	}
	ok(c, http.StatusOK, h.form.Validate(input), nil)
}

// Create godoc
// @Summary Create a recurring series
// @Tags Series
// @Accept json
// @Produce json
// @Param payload body dto.SeriesFormInput true "Series"
// @Success 201 {object} response.Envelope
// @Router /series [post]
func (h *SeriesHandler) Create(c *gin.Context) {
	var input dto.SeriesFormInput
	if !bind(c, &input) {
		return
	}
	scope, toasts := scopeFromContext(c)
	result, err := h.form.Submit(c.Request.Context(), scope, input)
	if err != nil {
		fail(c, err, toasts)
		return
	}
	ok(c, http.StatusCreated, result, toasts)
}

// Update godoc
// @Summary Update a whole series
// @Tags Series
// @Accept json
// @Produce json
// @Param id path int true "Series ID"
// @Param payload body dto.SeriesUpdateRequest true "Changes"
// @Success 200 {object} response.Envelope
// @Router /series/{id} [put]
func (h *SeriesHandler) Update(c *gin.Context) {
	h.update(c, false)
}

// UpdateFuture godoc
// @Summary Update the instances of a series from a date on
// @Tags Series
// @Accept json
// @Produce json
// @Param id path int true "Series ID"
// @Param payload body dto.SeriesUpdateRequest true "Changes with from_date"
// @Success 200 {object} response.Envelope
// @Router /series/{id}/future [put]
func (h *SeriesHandler) UpdateFuture(c *gin.Context) {
	h.update(c, true)
}

func (h *SeriesHandler) update(c *gin.Context, futureOnly bool) {
	id, valid := intParam(c, "id")
	if !valid {
		return
	}
	var req dto.SeriesUpdateRequest
	if !bind(c, &req) {
		return
	}
	scope, toasts := scopeFromContext(c)
	result, err := h.form.Update(c.Request.Context(), scope, id, req, futureOnly)
	if err != nil {
		fail(c, err, toasts)
		return
	}
	ok(c, http.StatusOK, result, toasts)
}

// Delete godoc
// @Summary Delete one instance, future instances or a whole series
// @Tags Series
// @Accept json
// @Produce json
// @Param id path int true "Series ID"
// @Param payload body dto.SeriesDeleteRequest true "Delete scope"
// @Success 200 {object} response.Envelope
// @Router /series/{id} [delete]
func (h *SeriesHandler) Delete(c *gin.Context) {
	id, valid := intParam(c, "id")
	if !valid {
		return
	}
	var req dto.SeriesDeleteRequest
	if !bind(c, &req) {
		return
	}
	scope, toasts := scopeFromContext(c)
	result, err := h.form.Delete(c.Request.Context(), scope, id, req)
	if err != nil {
		fail(c, err, toasts)
		return
	}
	ok(c, http.StatusOK, result, toasts)
}
