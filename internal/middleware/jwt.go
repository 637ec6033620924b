package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/tennisclub/court-admin/internal/client"
	appErrors "github.com/tennisclub/court-admin/pkg/errors"
	"github.com/tennisclub/court-admin/pkg/response"
)

// ContextClaimsKey is the gin context key storing the forwarded token claims.
const ContextClaimsKey = "backendClaims"

// Backend roles carried in the "role" claim.
const (
	RoleAdministrator = "administrator"
	RoleTeamster      = "teamster"
	RoleMember        = "member"
)

// ServiceSubject owns the sessions of tokenless service requests.
const ServiceSubject = "service"

// BackendClaims is the subset of the backend access token the console reads.
type BackendClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// UpstreamToken forwards the caller's bearer token to the backend. The
// backend verifies signatures; the console only decodes the claims to fail
// fast on expired tokens and to gate routes by role. A request without a
// token acts as an administrator with the configured service token only when
// allowServiceAdmin is set; otherwise it is rejected.
func UpstreamToken(allowServiceAdmin bool) gin.HandlerFunc {
	parser := jwt.NewParser()
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			if !allowServiceAdmin {
				response.Error(c, appErrors.ErrUnauthorized)
				c.Abort()
				return
			}
			c.Set(ContextClaimsKey, &BackendClaims{
				Role:             RoleAdministrator,
				RegisteredClaims: jwt.RegisteredClaims{Subject: ServiceSubject},
			})
			c.Next()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			c.Abort()
			return
		}
		raw := strings.TrimSpace(parts[1])

		claims := &BackendClaims{}
		if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "malformed token"))
			c.Abort()
			return
		}
		if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
			response.Error(c, appErrors.ErrTokenExpired)
			c.Abort()
			return
		}

		c.Set(ContextClaimsKey, claims)
		c.Request = c.Request.WithContext(client.WithToken(c.Request.Context(), raw))
		c.Next()
	}
}

// ClaimsFromContext returns the claims attached by UpstreamToken.
func ClaimsFromContext(c *gin.Context) *BackendClaims {
	value, exists := c.Get(ContextClaimsKey)
	if !exists {
		return nil
	}
	claims, _ := value.(*BackendClaims)
	return claims
}
