package auth

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"levelup/backend/internal/models"
	"levelup/backend/internal/store"
	"levelup/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
)

const userKey = "authUser"

// TokenResolver looks up the owner of a stored bearer token.
type TokenResolver interface {
	UserForToken(ctx context.Context, key string) (*models.User, error)
}

// IdentityMiddleware inspects the Authorization header and, when it carries a valid token,
// stores the token's owner for CurrentUser. A missing header leaves the request anonymous;
// a header with an invalid token is rejected with 401.
func IdentityMiddleware(resolver TokenResolver, secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		tokenString, ok := bearerToken(authHeader)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid Authorization header format"})
			return
		}

		if _, err := jwt.ParseToken(tokenString, secret); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}

		user, err := resolver.UserForToken(c.Request.Context(), tokenString)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
				return
			}
			log.Printf("resolve token: %v", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated caller, or nil for anonymous requests.
func CurrentUser(c *gin.Context) *models.User {
	value, exists := c.Get(userKey)
	if !exists {
		return nil
	}
	user, _ := value.(*models.User)
	return user
}

// bearerToken extracts the credential from "Bearer <token>" or "Token <token>".
func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 {
		return "", false
	}
	switch parts[0] {
	case "Bearer", "Token":
		return parts[1], true
	default:
		return "", false
	}
}
