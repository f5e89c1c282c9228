package middleware

import (
	"net/http"

	"mindspace-notes/mindspace/services"
	"mindspace-notes/mindspace/utils/token"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the bearer token (header or, for WebSocket
// connections, the token query parameter). When no password is configured
// the installation is open and requests pass through.
func AuthMiddleware(authService services.AuthServiceInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authService.Enabled() {
			c.Next()
			return
		}

		tokenString, err := token.ExtractToken(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		claims, err := authService.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set("subject", claims.Subject)
		c.Next()
	}
}
