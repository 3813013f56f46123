package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireAdmin gates the dashboard surface. Must run after the JWT
// middleware which sets isAdmin from the user row.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		if admin, ok := c.Get("isAdmin"); !ok || !admin.(bool) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":     "admin_only",
				"requestID": requestID,
			})
			return
		}

		c.Next()
	}
}
