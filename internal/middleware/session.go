package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tennisclub/court-admin/internal/store"
	appErrors "github.com/tennisclub/court-admin/pkg/errors"
	"github.com/tennisclub/court-admin/pkg/logger"
	"github.com/tennisclub/court-admin/pkg/response"
)

const (
	// SessionCookie carries the admin session id for browser clients.
	SessionCookie = "court_admin_session"
	// SessionHeader carries the admin session id for API clients.
	SessionHeader = "X-Admin-Session"

	contextStateKey = "session_state"
)

// Session attaches the per-operator state (loaded blocks, selection, cached
// lists) to the request. It must run after UpstreamToken: a session belongs
// to the token subject that created it. Unknown, missing or foreign ids start
// a fresh session whose id is echoed back in both the header and the cookie.
func Session(sessions *store.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := ClaimsFromContext(c)
		if claims == nil || claims.Subject == "" {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "token has no subject"))
			c.Abort()
			return
		}

		raw := c.GetHeader(SessionHeader)
		if raw == "" {
			raw, _ = c.Cookie(SessionCookie)
		}
		id, state := sessions.Get(raw, claims.Subject)

		c.Set(logger.SessionKey, id)
		c.Set(contextStateKey, state)
		c.Writer.Header().Set(SessionHeader, id)
		if id != raw {
			http.SetCookie(c.Writer, &http.Cookie{
				Name:     SessionCookie,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteStrictMode,
			})
		}
		c.Next()
	}
}

// StateFromContext returns the session state attached by Session.
func StateFromContext(c *gin.Context) *store.State {
	if value, exists := c.Get(contextStateKey); exists {
		if state, ok := value.(*store.State); ok {
			return state
		}
	}
	return store.NewState()
}
