package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/daiya0277-lgtm/gyoza-app/internal/pkg/adminauth"

	"github.com/gin-gonic/gin"
)

// AdminMiddleware guards the management endpoints. There is a single admin
// identity, so a valid session token is the whole authorization story.
type AdminMiddleware struct {
	tokens *adminauth.TokenService
}

func NewAdminMiddleware(tokens *adminauth.TokenService) *AdminMiddleware {
	return &AdminMiddleware{tokens: tokens}
}

func (m *AdminMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimSpace(authHeader[len("Bearer "):])
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Admin token required",
			})
			c.Abort()
			return
		}

		if _, err := m.tokens.ValidateToken(token); err != nil {
			slog.Warn("Admin token validation failed", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
