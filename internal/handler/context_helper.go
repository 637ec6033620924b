package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tennisclub/court-admin/internal/middleware"
	"github.com/tennisclub/court-admin/internal/service"
	appErrors "github.com/tennisclub/court-admin/pkg/errors"
	"github.com/tennisclub/court-admin/pkg/response"
)

// scopeFromContext builds the per-request service scope: the session state
// and a fresh toast collector whose contents end up in meta.toasts.
func scopeFromContext(c *gin.Context) (service.Scope, *service.Toasts) {
	toasts := &service.Toasts{}
	return service.Scope{State: middleware.StateFromContext(c), Notifier: toasts}, toasts
}

func meta(c *gin.Context, toasts *service.Toasts) map[string]interface{} {
	m := middleware.ExtractMeta(c)
	if toasts != nil {
		if items := toasts.Items(); len(items) > 0 {
			m["toasts"] = items
		}
	}
	return m
}

func ok(c *gin.Context, status int, data interface{}, toasts *service.Toasts) {
	response.JSON(c, status, data, meta(c, toasts))
}

func fail(c *gin.Context, err error, toasts *service.Toasts) {
	m := meta(c, toasts)
	var verr *service.ValidationError
	if errors.As(err, &verr) && len(verr.Fields) > 0 {
		m["fields"] = verr.Fields
	}
	response.Error(c, err, m)
}

func bind(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "Ungültige Anfrage"))
		return false
	}
	return true
}

func intParam(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid "+name))
		return 0, false
	}
	return id, true
}

func queryBool(c *gin.Context, name string) bool {
	v, _ := strconv.ParseBool(c.Query(name))
	return v
}
