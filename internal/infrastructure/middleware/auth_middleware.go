package middleware

import (
	"context"
	"net/http"
	"strings"

	"castdeck/internal/core/services"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware requires a valid panel bearer token on every request it
// guards. Read-only endpoints mount OptionalAuthMiddleware instead.
func AuthMiddleware(authService services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		setClientName(c, claims.ClientName)
		c.Next()
	}
}

// OptionalAuthMiddleware attaches client identity when a token is present
// but never rejects.
func OptionalAuthMiddleware(authService services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			if claims, err := authService.ValidateToken(parts[1]); err == nil {
				setClientName(c, claims.ClientName)
			}
		}

		c.Next()
	}
}

// setClientName records the authenticated identity on both the gin
// context and the request context, where the context logger reads it.
func setClientName(c *gin.Context, name string) {
	c.Set("client_name", name)
	c.Request = c.Request.WithContext(
		context.WithValue(c.Request.Context(), "client_name", name))
}
