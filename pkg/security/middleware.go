package security

import (
	"net/http"

	"github.com/l4greenl/it-inventory/pkg/roles"

	"github.com/gin-gonic/gin"
)

// RequireAuth rejects requests that carry no authenticated session.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		username, role, ok := SessionUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		c.Set("username", username)
		c.Set("role", role)
		c.Next()
	}
}

// Authorize ensures the session user has at least the required role.
// Must run after RequireAuth.
func Authorize(requiredRole roles.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleValue, exists := c.Get("role")
		if !exists {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden: insufficient permissions"})
			return
		}
		roleStr, ok := roleValue.(string)
		if !ok || !roles.Role(roleStr).IsValid() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden: insufficient permissions"})
			return
		}

		if !roles.Role(roleStr).HasPermission(requiredRole) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden: insufficient permissions"})
			return
		}

		c.Next()
	}
}
