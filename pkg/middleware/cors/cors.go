package cors

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Options configures the console's cross-origin policy.
type Options struct {
	// AllowedOrigins lists front ends that may call the console. Empty
	// allows any origin.
	AllowedOrigins []string
	// SessionHeaders are accepted on requests and readable on responses,
	// so a browser client can keep its admin session.
	SessionHeaders []string
}

var (
	baseAllowHeaders  = []string{"Authorization", "Content-Type", "X-Request-ID"}
	baseExposeHeaders = []string{"Content-Disposition", "X-Request-ID"}
)

// New returns the CORS middleware. Requests from unknown origins pass through
// without CORS headers, and their preflights are refused.
func New(opts Options) gin.HandlerFunc {
	allowAll := len(opts.AllowedOrigins) == 0
	origins := make(map[string]struct{}, len(opts.AllowedOrigins))
	for _, origin := range opts.AllowedOrigins {
		origins[normalize(origin)] = struct{}{}
	}
	allowHeaders := strings.Join(append(append([]string{}, baseAllowHeaders...), opts.SessionHeaders...), ", ")
	exposeHeaders := strings.Join(append(append([]string{}, baseExposeHeaders...), opts.SessionHeaders...), ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			c.Next()
			return
		}
		h := c.Writer.Header()
		h.Add("Vary", "Origin")

		_, known := origins[normalize(origin)]
		if !allowAll && !known {
			if isPreflight(c.Request) {
				c.AbortWithStatus(http.StatusForbidden)
				return
			}
			c.Next()
			return
		}

		h.Set("Access-Control-Allow-Origin", origin)
		h.Set("Access-Control-Allow-Credentials", "true")
		h.Set("Access-Control-Expose-Headers", exposeHeaders)
		if isPreflight(c.Request) {
			h.Set("Access-Control-Allow-Headers", allowHeaders)
			h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			h.Set("Access-Control-Max-Age", "600")
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func isPreflight(r *http.Request) bool {
	return r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != ""
}

func normalize(origin string) string {
	return strings.ToLower(strings.TrimRight(strings.TrimSpace(origin), "/"))
}
