package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireUser rejects anonymous requests.
// It must be used AFTER IdentityMiddleware.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authentication credentials were not provided"})
			return
		}
		c.Next()
	}
}
