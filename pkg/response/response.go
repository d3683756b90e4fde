// Package response centralizes HTTP response shapes and helpers.
// Handlers rely on it to keep controllers thin and uniform.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/reminder-admin/internal/repository"
	"github.com/maxviazov/reminder-admin/internal/service"
)

// Fixed client-facing messages. Storage details never leave the process.
const (
	MessageInvalidInput = "one or more fields are invalid"
	MessageNotFound     = "resource not found"
	MessageInternal     = "internal server error"
)

// ErrorPayload is the canonical error envelope returned by the API.
type ErrorPayload struct {
	Success     bool                 `json:"success"`
	Error       string               `json:"error"`
	Message     string               `json:"message"`
	FieldErrors []service.FieldError `json:"field_errors,omitempty"`
}

// PagePayload is the success envelope for paginated listings.
type PagePayload[T any] struct {
	Success bool `json:"success"`
	Data    []T  `json:"data"`
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
}

// MapError converts a domain / infrastructure error into an HTTP status and payload.
// failure is the fixed message used for storage and unknown errors; empty means MessageInternal.
func MapError(err error, failure string) (int, ErrorPayload) {
	if failure == "" {
		failure = MessageInternal
	}
	if err == nil {
		return http.StatusOK, ErrorPayload{Success: true, Error: "ok"}
	}

	if errors.Is(err, service.ErrInvalidInput) {
		return http.StatusBadRequest, ErrorPayload{
			Error:       "invalid_input",
			Message:     MessageInvalidInput,
			FieldErrors: service.FieldErrors(err),
		}
	}

	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, ErrorPayload{Error: "not_found", Message: MessageNotFound}
	case errors.Is(err, repository.ErrStorage):
		return http.StatusInternalServerError, ErrorPayload{Error: "storage_failure", Message: failure}
	default:
		return http.StatusInternalServerError, ErrorPayload{Error: "internal_error", Message: failure}
	}
}

// WriteError writes an error response and aborts the context.
// The original error is attached to the gin context for the access log.
func WriteError(c *gin.Context, err error, failure string) {
	status, payload := MapError(err, failure)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, payload)
}

// WriteData writes a successful JSON response.
func WriteData(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

// WritePage writes a listing in the {success,data,total,limit,offset} envelope.
func WritePage[T any](c *gin.Context, res repository.PageResult[T]) {
	items := res.Items
	if items == nil {
		items = []T{}
	}
	c.JSON(http.StatusOK, PagePayload[T]{
		Success: true,
		Data:    items,
		Total:   res.Total,
		Limit:   res.Limit,
		Offset:  res.Offset,
	})
}
