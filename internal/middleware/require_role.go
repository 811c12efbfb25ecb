package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRole aborts with 403 unless the authenticated user carries the given
// role. Compose it after AuthRequired.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(CtxRole) != role {
			msg := role + " access required"
			if role == "admin" {
				msg = "Admin access required"
			}
			c.JSON(http.StatusForbidden, gin.H{"error": msg})
			c.Abort()
			return
		}
		c.Next()
	}
}
