package middleware

import (
	"github.com/gin-gonic/gin"

	appErrors "github.com/tennisclub/court-admin/pkg/errors"
	"github.com/tennisclub/court-admin/pkg/response"
)

var errForbidden = appErrors.New("FORBIDDEN", 403, "Keine Berechtigung")

// RequireRoles lets requests through whose token role is one of roles.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		claims := ClaimsFromContext(c)
		if claims == nil {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		if _, ok := allowed[claims.Role]; !ok {
			response.Error(c, errForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminOnly restricts a route group to administrators.
func AdminOnly() gin.HandlerFunc {
	return RequireRoles(RoleAdministrator)
}

// TeamsterOrAdmin admits teamsters and administrators.
func TeamsterOrAdmin() gin.HandlerFunc {
	return RequireRoles(RoleAdministrator, RoleTeamster)
}
