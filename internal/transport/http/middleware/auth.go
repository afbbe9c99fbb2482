package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/storefront-labs/storefront/internal/token"
)

const (
	msgNoToken      = "No token provided"
	msgInvalidToken = "Invalid token"

	// UserIDKey is the gin context key holding the authenticated user ID.
	UserIDKey = "userID"
)

// Auth gates every protected route behind a valid bearer token.
// A missing or non-Bearer Authorization header rejects with
// "No token provided"; any decode failure (bad signature, expiry,
// malformed token) collapses into "Invalid token". On success the
// decoded user ID is attached to the request context.
func Auth(codec *token.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msgNoToken})
			return
		}

		claims, err := codec.Decode(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msgInvalidToken})
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Next()
	}
}
