package client

import (
	"context"
	"net/http"
	"strconv"

	"github.com/tennisclub/court-admin/internal/dto"
	"github.com/tennisclub/court-admin/internal/models"
)

const templatesPath = "/admin/block-templates"

type templateList struct {
	Templates []models.Template `json:"templates"`
}

// TemplatesAPI wraps the block template endpoints.
type TemplatesAPI struct {
	c *Client
}

// Templates returns the template endpoint wrapper.
func (c *Client) Templates() *TemplatesAPI {
	return &TemplatesAPI{c: c}
}

// List loads every template.
func (a *TemplatesAPI) List(ctx context.Context) (Result[[]models.Template], error) {
	res, err := call[templateList](ctx, a.c, "templates.list", http.MethodGet, templatesPath, nil, nil)
	if err != nil {
		return Result[[]models.Template]{}, err
	}
	return mapResult(res, func(l templateList) []models.Template { return l.Templates }), nil
}

// Create stores a new template.
func (a *TemplatesAPI) Create(ctx context.Context, req dto.TemplateRequest) (Result[dto.TemplateMutationResponse], error) {
	return call[dto.TemplateMutationResponse](ctx, a.c, "templates.create", http.MethodPost, templatesPath, nil, req)
}

// Delete removes a template.
func (a *TemplatesAPI) Delete(ctx context.Context, id int) (Result[dto.TemplateMutationResponse], error) {
	return call[dto.TemplateMutationResponse](ctx, a.c, "templates.delete", http.MethodDelete, templatesPath+"/"+strconv.Itoa(id), nil, nil)
}

// Apply creates blocks from a template on the given date.
func (a *TemplatesAPI) Apply(ctx context.Context, id int, req dto.TemplateApplyRequest) (Result[dto.BlockMutationResponse], error) {
	return call[dto.BlockMutationResponse](ctx, a.c, "templates.apply", http.MethodPost, templatesPath+"/"+strconv.Itoa(id)+"/apply", nil, req)
}
