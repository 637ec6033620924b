package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tennisclub/court-admin/internal/dto"
	"github.com/tennisclub/court-admin/internal/service"
	appErrors "github.com/tennisclub/court-admin/pkg/errors"
	"github.com/tennisclub/court-admin/pkg/response"
	"github.com/tennisclub/court-admin/pkg/storage"
)

type exportService interface {
	Generate(ctx context.Context, scope service.Scope, req dto.ExportRequest) (*service.ExportResult, error)
	ParseToken(token string, allowExpired bool) (storage.Download, error)
	Open(relPath string) (*os.File, error)
}

// ExportHandler exposes block list exports.
type ExportHandler struct {
	exports exportService
}

// NewExportHandler builds a new handler.
func NewExportHandler(exports exportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Create godoc
// @Summary Export blocks as CSV or PDF
// @Tags Exports
// @Accept json
// @Produce json
// @Param payload body dto.ExportRequest true "Export request"
// @Success 201 {object} response.Envelope
// @Router /exports [post]
func (h *ExportHandler) Create(c *gin.Context) {
	var req dto.ExportRequest
	if !bind(c, &req) {
		return
	}
	scope, toasts := scopeFromContext(c)
	result, err := h.exports.Generate(c.Request.Context(), scope, req)
	if err != nil {
		fail(c, err, toasts)
		return
	}
	ok(c, http.StatusCreated, result, toasts)
}

// Download godoc
// @Summary Download an export via its signed token
// @Tags Exports
// @Produce octet-stream
// @Param token path string true "Signed token"
// @Success 200 {file} binary
// @Router /exports/{token} [get]
func (h *ExportHandler) Download(c *gin.Context) {
	token := strings.TrimSpace(c.Param("token"))
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "token is required"))
		return
	}
	download, err := h.exports.ParseToken(token, false)
	switch {
	case errors.Is(err, storage.ErrDownloadExpired):
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "download link expired"))
		return
	case err != nil:
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid download link"))
		return
	}
	file, err := h.exports.Open(download.File)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "export not found"))
		return
	}
	defer file.Close() //nolint:errcheck

	info, err := file.Stat()
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", download.File))
	c.Header("Cache-Control", "no-store")
	c.DataFromReader(http.StatusOK, info.Size(), contentType(download.Format), file, nil)
}

func contentType(format string) string {
	switch format {
	case "csv":
		return "text/csv; charset=utf-8"
	case "pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}
