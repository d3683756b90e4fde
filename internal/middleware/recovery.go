package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/reminder-admin/pkg/response"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Recovery turns a handler panic into a 500 in the standard error envelope
// and logs it with the stack.
func Recovery(logger zerolog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error().Stack().
			Str("request_id", GetRequestID(c)).
			Str("path", c.Request.URL.Path).
			Err(errors.Errorf("panic: %v", recovered)).
			Msg("recovered from panic")
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.ErrorPayload{
			Error:   "internal_error",
			Message: response.MessageInternal,
		})
	})
}
