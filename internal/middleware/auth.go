package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"voyago/internal/service"
)

const accountIDKey = "account_id"

// Auth verifies the bearer token and stores the embedded account id in
// the request context. A missing header is 401; a malformed, tampered,
// or expired token is 403. The account itself is loaded by the handler,
// so profile data is always fresh.
func Auth(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access denied. No token provided."})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		accountID, err := auth.VerifyToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(accountIDKey, accountID)
		c.Next()
	}
}

// AccountID returns the id set by Auth for the current request.
func AccountID(c *gin.Context) (string, bool) {
	id, ok := c.Get(accountIDKey)
	if !ok {
		return "", false
	}
	s, ok := id.(string)
	return s, ok
}
