package middleware

import (
	"time"

	"omnicasa-gateway/pkg/logger"

	"github.com/gin-gonic/gin"
)

func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		logger.GlobalLogger.Printf("%s %s %d %v request_id=%s", method, path, c.Writer.Status(), time.Since(start), c.GetString("request_id"))
	}
}
