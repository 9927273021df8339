package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	apperrors "github.com/pushp314/derive-duel-backend/pkg/errors"
	"github.com/pushp314/derive-duel-backend/pkg/logger"
)

// ErrorHandlerMiddleware renders errors attached with c.Error and recovers panics
func ErrorHandlerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error().
					Str("panic", fmt.Sprintf("%v", r)).
					Str("stack", string(debug.Stack())).
					Msg("Panic recovered")

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error":   "Internal Server Error",
					"message": "An unexpected error occurred",
				})
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			body := gin.H{"error": appErr.Message}
			// wrapped sentinels carry extra detail
			if msg := err.Error(); msg != appErr.Message {
				body["message"] = msg
			}
			c.JSON(appErr.Code, body)
			return
		}

		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled request error")
		c.JSON(apperrors.ErrInternalServer.Code, gin.H{
			"error": apperrors.ErrInternalServer.Message,
		})
	}
}
