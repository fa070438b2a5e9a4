package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/intellixel001/suvashpanel/internal/models"
	appErrors "github.com/intellixel001/suvashpanel/pkg/errors"
	"github.com/intellixel001/suvashpanel/pkg/response"
)

// RBAC lets the request through when allow accepts the session user's role.
func RBAC(allow func(models.Role) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			response.Error(c, appErrors.Clone(appErrors.ErrAuthExpired, "login required"))
			c.Abort()
			return
		}
		if !allow(user.Role) {
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "your role cannot perform this action"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRoles is a helper that accepts a list of roles.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	allowed := make(map[models.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return RBAC(func(role models.Role) bool {
		_, ok := allowed[role]
		return ok
	})
}
