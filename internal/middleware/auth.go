package middleware

import (
	"net/http"
	"strings"

	"omnicasa-gateway/internal/auth"
	"omnicasa-gateway/internal/errors"
	"omnicasa-gateway/pkg/logger"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware requires a bearer token signed with secret.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthorized(c, "invalid authorization header format")
			return
		}

		claims, err := auth.ValidateJWT(parts[1], secret)
		if err != nil {
			logger.GlobalLogger.Debugf("Token rejected: path=%s, client_ip=%s, error=%v", c.Request.URL.Path, c.ClientIP(), err)
			abortUnauthorized(c, err.Error())
			return
		}

		c.Set("subject", claims.Subject)
		c.Set("scope", claims.Scope)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, reason string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{
			"message": errors.MsgUnauthorized,
			"code":    errors.ErrCodeUnauthorized,
			"reason":  reason,
		},
	})
}
