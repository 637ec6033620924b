package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tennisclub/court-admin/internal/dto"
	"github.com/tennisclub/court-admin/internal/models"
	"github.com/tennisclub/court-admin/internal/render"
	"github.com/tennisclub/court-admin/internal/service"
	appErrors "github.com/tennisclub/court-admin/pkg/errors"
	"github.com/tennisclub/court-admin/pkg/response"
)

type blockForm interface {
	Defaults() dto.BlockFormInput
	Validate(input dto.BlockFormInput) dto.FormState
	Submit(ctx context.Context, scope service.Scope, sub dto.BlockSubmission) (*dto.BlockSubmitResult, error)
	EditPayload(ctx context.Context, scope service.Scope, batchID string) (*models.BatchDetail, error)
	PopulateFromBatch(detail models.BatchDetail) dto.BlockFormInput
	AllCourts(ctx context.Context, scope service.Scope, date string) ([]int, error)
}

type blockLoader interface {
	Load(ctx context.Context, scope service.Scope, filter models.BlockFilter) ([]models.Block, error)
}

type batchDeleter interface {
	DeleteBatch(ctx context.Context, scope service.Scope, batchID string, confirm service.Confirmer) (*dto.BatchDeleteResult, error)
}

// BlockHandler exposes the block list and the multi-court block form.
type BlockHandler struct {
	form    blockForm
	loader  blockLoader
	deleter batchDeleter
}

// NewBlockHandler builds a new handler.
func NewBlockHandler(form blockForm, loader blockLoader, deleter batchDeleter) *BlockHandler {
	return &BlockHandler{form: form, loader: loader, deleter: deleter}
}

// BlockListView is the upcoming block list with its selection state.
type BlockListView struct {
	Blocks    []models.Block        `json:"blocks"`
	Batches   []render.BatchRow     `json:"batches"`
	Selection models.Selection      `json:"selection"`
	Summary   string                `json:"summary"`
	Buttons   dto.BulkActionButtons `json:"buttons"`
}

// FormModeView reports which mode a submit would run in.
type FormModeView struct {
	Mode    string `json:"mode"`
	BatchID string `json:"batch_id,omitempty"`
}

// EditView is the block form opened for an existing batch.
type EditView struct {
	Batch *models.BatchDetail `json:"batch"`
	Form  dto.BlockFormInput  `json:"form"`
	Mode  FormModeView        `json:"mode"`
}

// List godoc
// @Summary Load upcoming blocks into the session
// @Tags Blocks
// @Produce json
// @Param date_range_start query string false "Start date (YYYY-MM-DD)"
// @Param date_range_end query string false "End date (YYYY-MM-DD)"
// @Param court_ids query string false "Comma separated court ids"
// @Param reason_ids query string false "Comma separated reason ids"
// @Success 200 {object} response.Envelope
// @Router /blocks [get]
func (h *BlockHandler) List(c *gin.Context) {
	scope, toasts := scopeFromContext(c)
	filter := models.BlockFilter{
		DateRangeStart: c.Query("date_range_start"),
		DateRangeEnd:   c.Query("date_range_end"),
		CourtIDs:       splitInts(c.Query("court_ids")),
		ReasonIDs:      splitInts(c.Query("reason_ids")),
	}
	blocks, err := h.loader.Load(c.Request.Context(), scope, filter)
	if err != nil {
		fail(c, err, toasts)
		return
	}
	ok(c, http.StatusOK, listView(blocks, scope.State.SelectedBlocks()), toasts)
}

// FormDefaults godoc
// @Summary Default values of an empty block form
// @Tags Blocks
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /blocks/form [get]
func (h *BlockHandler) FormDefaults(c *gin.Context) {
	defaults := h.form.Defaults()
	ok(c, http.StatusOK, gin.H{"form": defaults, "state": h.form.Validate(defaults)}, nil)
}

// Validate godoc
// @Summary Validate block form values without submitting
// @Tags Blocks
// @Accept json
// @Produce json
// @Param payload body dto.BlockFormInput true "Form values"
// @Success 200 {object} response.Envelope
// @Router /blocks/form/validate [post]
func (h *BlockHandler) Validate(c *gin.Context) {
	var input dto.BlockFormInput
	if !bind(c, &input) {
		return
	}
	ok(c, http.StatusOK, h.form.Validate(input), nil)
}

// ResolveMode godoc
// @Summary Resolve whether a submit creates or edits a batch
// @Tags Blocks
// @Accept json
// @Produce json
// @Param payload body dto.ModeSources true "Mode sources"
// @Success 200 {object} response.Envelope
// @Router /blocks/form/mode [post]
func (h *BlockHandler) ResolveMode(c *gin.Context) {
	var src dto.ModeSources
	if !bind(c, &src) {
		return
	}
	ok(c, http.StatusOK, modeView(service.ResolveFormMode(src)), nil)
}

// Submit godoc
// @Summary Create or update a block batch
// @Tags Blocks
// @Accept json
// @Produce json
// @Param payload body dto.BlockSubmission true "Form values and mode sources"
// @Success 200 {object} response.Envelope
// @Success 201 {object} response.Envelope
// @Router /blocks/form/submit [post]
func (h *BlockHandler) Submit(c *gin.Context) {
	var sub dto.BlockSubmission
	if !bind(c, &sub) {
		return
	}
	scope, toasts := scopeFromContext(c)
	result, err := h.form.Submit(c.Request.Context(), scope, sub)
	if err != nil {
		fail(c, err, toasts)
		return
	}
	status := http.StatusCreated
	if result.Mode == service.ModeNameEdit {
		status = http.StatusOK
	}
	ok(c, status, result, toasts)
}

// Edit godoc
// @Summary Open the block form for an existing batch
// @Tags Blocks
// @Produce json
// @Param batchId path string true "Batch ID"
// @Success 200 {object} response.Envelope
// @Router /blocks/batches/{batchId} [get]
func (h *BlockHandler) Edit(c *gin.Context) {
	scope, toasts := scopeFromContext(c)
	detail, err := h.form.EditPayload(c.Request.Context(), scope, c.Param("batchId"))
	if err != nil {
		fail(c, err, toasts)
		return
	}
	mode := service.ResolveFormMode(dto.ModeSources{EditPayload: detail})
	ok(c, http.StatusOK, EditView{Batch: detail, Form: h.form.PopulateFromBatch(*detail), Mode: modeView(mode)}, toasts)
}

// DeleteBatch godoc
// @Summary Delete one batch after confirmation
// @Description Without confirmed=true the confirmation prompt is returned with 409.
// @Tags Blocks
// @Produce json
// @Param batchId path string true "Batch ID"
// @Param confirmed query bool false "Operator confirmed the prompt"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /blocks/batches/{batchId} [delete]
func (h *BlockHandler) DeleteBatch(c *gin.Context) {
	scope, toasts := scopeFromContext(c)
	confirmed := queryBool(c, "confirmed")
	confirm := service.ConfirmFunc(func(context.Context, string) bool { return confirmed })

	result, err := h.deleter.DeleteBatch(c.Request.Context(), scope, c.Param("batchId"), confirm)
	if err != nil {
		fail(c, err, toasts)
		return
	}
	if !result.Confirmed {
		m := meta(c, toasts)
		m["confirmation"] = result
		response.Error(c, appErrors.Clone(appErrors.ErrConfirmation, result.Prompt), m)
		return
	}
	ok(c, http.StatusOK, result, toasts)
}

// AllCourts godoc
// @Summary Court numbers for the select-all action
// @Tags Blocks
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} response.Envelope
// @Router /blocks/courts [get]
func (h *BlockHandler) AllCourts(c *gin.Context) {
	scope, toasts := scopeFromContext(c)
	courts, err := h.form.AllCourts(c.Request.Context(), scope, c.Query("date"))
	if err != nil {
		fail(c, err, toasts)
		return
	}
	ok(c, http.StatusOK, gin.H{"court_ids": courts}, toasts)
}

func listView(blocks []models.Block, selection models.Selection) BlockListView {
	return BlockListView{
		Blocks:    blocks,
		Batches:   render.BlockRows(blocks),
		Selection: selection,
		Summary:   render.SelectionSummary(selection),
		Buttons:   render.UpdateBulkActionButtons(selection),
	}
}

func modeView(mode service.FormMode) FormModeView {
	return FormModeView{Mode: mode.String(), BatchID: mode.BatchID()}
}

func splitInts(raw string) []int {
	if raw == "" {
		return nil
	}
	var out []int
	for _, part := range strings.Split(raw, ",") {
		if v, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
			out = append(out, v)
		}
	}
	return out
}
