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

type templateForm interface {
	Validate(input dto.TemplateFormInput) dto.FormState
	Submit(ctx context.Context, scope service.Scope, input dto.TemplateFormInput) (*dto.TemplateMutationResponse, error)
	List(ctx context.Context, scope service.Scope) ([]models.Template, error)
	Delete(ctx context.Context, scope service.Scope, id int, confirmed bool) error
	ApplicationDefaults(ctx context.Context, scope service.Scope, id int) (models.Template, dto.TemplateApplyInput, error)
	Apply(ctx context.Context, scope service.Scope, id int, input dto.TemplateApplyInput) (*dto.BlockMutationResponse, error)
}

// TemplateHandler exposes block templates.
type TemplateHandler struct {
	form templateForm
}

// NewTemplateHandler builds a new handler.
func NewTemplateHandler(form templateForm) *TemplateHandler {
	return &TemplateHandler{form: form}
}

// List godoc
// @Summary List block templates
// @Tags Templates
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /templates [get]
func (h *TemplateHandler) List(c *gin.Context) {
	scope, toasts := scopeFromContext(c)
	templates, err := h.form.List(c.Request.Context(), scope)
	if err != nil {
		fail(c, err, toasts)
		return
	}
	ok(c, http.StatusOK, gin.H{"templates": templates, "view": render.TemplateList(templates)}, toasts)
}

// Validate godoc
// @Summary Validate template form values
// @Tags Templates
// @Accept json
// @Produce json
// @Param payload body dto.TemplateFormInput true "Form values"
// @Success 200 {object} response.Envelope
// @Router /templates/form/validate [post]
func (h *TemplateHandler) Validate(c *gin.Context) {
	var input dto.TemplateFormInput
	if !bind(c, &input) {
		return
	}
	ok(c, http.StatusOK, h.form.Validate(input), nil)
}

// Create godoc
// @Summary Create a block template
// @Tags Templates
// @Accept json
// @Produce json
// @Param payload body dto.TemplateFormInput true "Template"
// @Success 201 {object} response.Envelope
// @Router /templates [post]
func (h *TemplateHandler) Create(c *gin.Context) {
	var input dto.TemplateFormInput
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

// Delete godoc
// @Summary Delete a block template
// @Description Without confirmed=true the confirmation question is returned with 409.
// @Tags Templates
// @Produce json
// @Param id path int true "Template ID"
// @Param confirmed query bool false "Operator confirmed"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /templates/{id} [delete]
func (h *TemplateHandler) Delete(c *gin.Context) {
	id, valid := intParam(c, "id")
	if !valid {
		return
	}
	scope, toasts := scopeFromContext(c)
	if err := h.form.Delete(c.Request.Context(), scope, id, queryBool(c, "confirmed")); err != nil {
		fail(c, err, toasts)
		return
	}
	ok(c, http.StatusOK, gin.H{"deleted": id}, toasts)
}

// ApplicationDefaults godoc
// @Summary Prefilled apply dialog of a template
// @Tags Templates
// @Produce json
// @Param id path int true "Template ID"
// @Success 200 {object} response.Envelope
// @Router /templates/{id}/apply [get]
func (h *TemplateHandler) ApplicationDefaults(c *gin.Context) {
	id, valid := intParam(c, "id")
	if !valid {
		return
	}
	scope, toasts := scopeFromContext(c)
	tmpl, input, err := h.form.ApplicationDefaults(c.Request.Context(), scope, id)
	if err != nil {
		fail(c, err, toasts)
		return
	}
	ok(c, http.StatusOK, gin.H{
		"template": tmpl,
		"summary":  render.TemplateApplication(tmpl),
		"form":     input,
	}, toasts)
}

// Apply godoc
// @Summary Create blocks from a template on a date
// @Tags Templates
// @Accept json
// @Produce json
// @Param id path int true "Template ID"
// @Param payload body dto.TemplateApplyInput true "Date and overrides"
// @Success 201 {object} response.Envelope
// @Router /templates/{id}/apply [post]
func (h *TemplateHandler) Apply(c *gin.Context) {
	id, valid := intParam(c, "id")
	if !valid {
		return
	}
	var input dto.TemplateApplyInput
	if !bind(c, &input) {
		return
	}
	scope, toasts := scopeFromContext(c)
	result, err := h.form.Apply(c.Request.Context(), scope, id, input)
	if err != nil {
		fail(c, err, toasts)
		return
	}
	ok(c, http.StatusCreated, result, toasts)
}
