package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tennisclub/court-admin/internal/models"
	"github.com/tennisclub/court-admin/internal/service"
)

type referenceService interface {
	Reasons(ctx context.Context, scope service.Scope, activeOnly bool) ([]models.Reason, error)
}

// ReferenceHandler exposes the lists backing the form dropdowns.
type ReferenceHandler struct {
	refs referenceService
}

// NewReferenceHandler builds a new handler.
func NewReferenceHandler(refs referenceService) *ReferenceHandler {
	return &ReferenceHandler{refs: refs}
}

// Reasons godoc
// @Summary List block reasons
// @Tags Reasons
// @Produce json
// @Param all query bool false "Include inactive reasons"
// @Success 200 {object} response.Envelope
// @Router /reasons [get]
func (h *ReferenceHandler) Reasons(c *gin.Context) {
	scope, toasts := scopeFromContext(c)
	reasons, err := h.refs.Reasons(c.Request.Context(), scope, !queryBool(c, "all"))
	if err != nil {
		fail(c, err, toasts)
		return
	}
	ok(c, http.StatusOK, gin.H{"reasons": reasons}, toasts)
}
