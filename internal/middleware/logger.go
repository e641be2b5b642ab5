package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mkoga/todo-api/internal/logger"
)

// RequestLogger logs every request with method, path, status, latency and
// client address.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
	}
}
