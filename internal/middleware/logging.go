package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pushp314/derive-duel-backend/pkg/logger"
)

// LoggingMiddleware logs every request with its latency
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		rawQuery := c.Request.URL.RawQuery

		c.Next()

		status := c.Writer.Status()

		event := logger.Log.Info()
		if status >= 400 {
			event = logger.Log.Warn()
		}
		if status >= 500 {
			event = logger.Log.Error()
		}

		// the evaluator key header is never logged
		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Str("query", rawQuery).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.ClientIP()).
			Str("user_agent", c.Request.UserAgent()).
			Bool("own_key", c.GetHeader("X-Gemini-Key") != "").
			Int("body_size", c.Writer.Size()).
			Msg("request")
	}
}
