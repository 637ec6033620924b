package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tennisclub/court-admin/internal/dto"
	"github.com/tennisclub/court-admin/internal/models"
	"github.com/tennisclub/court-admin/internal/render"
	"github.com/tennisclub/court-admin/internal/service"
	appErrors "github.com/tennisclub/court-admin/pkg/errors"
	"github.com/tennisclub/court-admin/pkg/response"
)

type bulkDeleter interface {
	Preview(scope service.Scope) ([]service.BatchPreview, error)
	Execute(ctx context.Context, scope service.Scope) (*dto.BulkDeleteResult, error)
}

type bulkEditor interface {
	Execute(ctx context.Context, scope service.Scope, input dto.BulkEditInput) (*dto.BulkEditResult, error)
}

// BulkHandler exposes the block selection and the bulk delete and edit actions.
type BulkHandler struct {
	deleter bulkDeleter
	editor  bulkEditor
}

// NewBulkHandler builds a new handler.
func NewBulkHandler(deleter bulkDeleter, editor bulkEditor) *BulkHandler {
	return &BulkHandler{deleter: deleter, editor: editor}
}

// BulkDeleteRequest confirms a bulk delete.
type BulkDeleteRequest struct {
	Confirmed bool `json:"confirmed"`
}

// SelectionView is the selection with its derived button state.
type SelectionView struct {
	Items   models.Selection      `json:"items"`
	Summary string                `json:"summary"`
	Buttons dto.BulkActionButtons `json:"buttons"`
}

// Selection godoc
// @Summary Current block selection
// @Tags Bulk
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /blocks/selection [get]
func (h *BulkHandler) Selection(c *gin.Context) {
	scope, _ := scopeFromContext(c)
	ok(c, http.StatusOK, selectionView(scope), nil)
}

// Select godoc
// @Summary Replace the block selection
// @Description Entries not part of the loaded list are dropped. select_all selects every loaded block.
// @Tags Bulk
// @Accept json
// @Produce json
// @Param payload body dto.SelectionRequest true "Selection"
// @Success 200 {object} response.Envelope
// @Router /blocks/selection [put]
func (h *BulkHandler) Select(c *gin.Context) {
	var req dto.SelectionRequest
	if !bind(c, &req) {
		return
	}
	scope, _ := scopeFromContext(c)
	if req.SelectAll {
		scope.State.SelectAll()
	} else {
		scope.State.SetSelectedBlocks(scope.State.FilterLoaded(req.Items))
	}
	ok(c, http.StatusOK, selectionView(scope), nil)
}

// ClearSelection godoc
// @Summary Clear the block selection
// @Tags Bulk
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /blocks/selection [delete]
func (h *BulkHandler) ClearSelection(c *gin.Context) {
	scope, _ := scopeFromContext(c)
	scope.State.ClearSelectedBlocks()
	ok(c, http.StatusOK, selectionView(scope), nil)
}

// DeletePreview godoc
// @Summary Batches a bulk delete would remove
// @Tags Bulk
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /blocks/bulk-delete [get]
func (h *BulkHandler) DeletePreview(c *gin.Context) {
	scope, toasts := scopeFromContext(c)
	previews, err := h.deleter.Preview(scope)
	if err != nil {
		fail(c, err, toasts)
		return
	}
	ok(c, http.StatusOK, gin.H{
		"batches": previews,
		"lines":   render.BulkDeletePreview(scope.State.SelectedBlocks()),
	}, toasts)
}

// Delete godoc
// @Summary Delete every batch touched by the selection
// @Tags Bulk
// @Accept json
// @Produce json
// @Param payload body BulkDeleteRequest true "Confirmation"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /blocks/bulk-delete [post]
func (h *BulkHandler) Delete(c *gin.Context) {
	var req BulkDeleteRequest
	if !bind(c, &req) {
		return
	}
	scope, toasts := scopeFromContext(c)
	if !req.Confirmed {
		previews, err := h.deleter.Preview(scope)
		if err != nil {
			fail(c, err, toasts)
			return
		}
		m := meta(c, toasts)
		m["batches"] = previews
		response.Error(c, appErrors.Clone(appErrors.ErrConfirmation, "Bitte bestätigen Sie das Löschen"), m)
		return
	}
	result, err := h.deleter.Execute(c.Request.Context(), scope)
	if err != nil {
		fail(c, err, toasts)
		return
	}
	ok(c, http.StatusOK, result, toasts)
}

// Edit godoc
// @Summary Apply a sparse patch to every selected block
// @Tags Bulk
// @Accept json
// @Produce json
// @Param payload body dto.BulkEditInput true "Bulk edit values"
// @Success 200 {object} response.Envelope
// @Router /blocks/bulk-edit [post]
func (h *BulkHandler) Edit(c *gin.Context) {
	var input dto.BulkEditInput
	if !bind(c, &input) {
		return
	}
	scope, toasts := scopeFromContext(c)
	result, err := h.editor.Execute(c.Request.Context(), scope, input)
	if err != nil {
		fail(c, err, toasts)
		return
	}
	ok(c, http.StatusOK, result, toasts)
}

func selectionView(scope service.Scope) SelectionView {
	selection := scope.State.SelectedBlocks()
	return SelectionView{
		Items:   selection,
		Summary: render.SelectionSummary(selection),
		Buttons: render.UpdateBulkActionButtons(selection),
	}
}
