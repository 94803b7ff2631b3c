package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/caresync-api/internal/handler"
	apperrors "github.com/jwalitptl/caresync-api/pkg/errors"
)

// ErrorHandler renders the last error attached to the context as an error
// envelope. AppErrors choose the status and the user-facing message; any
// other error is a 500 with a generic message.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		requestID := c.GetString(ContextRequestID)
		for _, e := range c.Errors {
			log.Error().
				Err(e.Err).
				Str("request_id", requestID).
				Str("path", c.Request.URL.Path).
				Str("method", c.Request.Method).
				Str("client_ip", c.ClientIP()).
				Msg("Request error")
		}

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last().Err
		status := http.StatusInternalServerError
		message := "internal server error"

		var appErr *apperrors.AppError
		if errors.As(lastErr, &appErr) {
			status = appErr.StatusCode()
			if status != http.StatusInternalServerError {
				message = appErr.Message
			}
		}

		c.JSON(status, handler.NewErrorResponse(message))
	}
}
