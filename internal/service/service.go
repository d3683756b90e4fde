// Package service holds use-case orchestration between handlers and repositories.
// Kept lean: input validation, deadlines, logging and domain error shaping.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/maxviazov/reminder-admin/internal/model"
	"github.com/maxviazov/reminder-admin/internal/repository"
)

// ErrInvalidInput is the marker error for aggregated validation failures (maps to HTTP 400).
// Field-level details are retrieved via FieldErrors(err).
var ErrInvalidInput = errors.New("invalid input")

// FieldError describes a single invalid field in a client request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// invalidInputError aggregates multiple FieldError instances and unwraps to ErrInvalidInput.
type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

// NewInvalidInputError builds an aggregated validation error, or nil when fe is empty.
func NewInvalidInputError(fe []FieldError) error {
	if len(fe) == 0 {
		return nil
	}
	return &invalidInputError{fields: fe}
}

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}
	var v interface{ Fields() []FieldError }
	if errors.As(err, &v) && errors.Is(err, ErrInvalidInput) {
		return v.Fields()
	}
	return nil
}

// Options carries the limits every read use case runs under.
type Options struct {
	// QueryTimeout bounds each storage round trip. Zero disables the deadline.
	QueryTimeout time.Duration
	Limits       PageLimits
}

// DefaultOptions mirrors the config defaults.
func DefaultOptions() Options {
	return Options{QueryTimeout: 5 * time.Second, Limits: DefaultPageLimits()}
}

// ReminderService defines reminder read use cases.
type ReminderService interface {
	GetReminder(ctx context.Context, id int64) (model.ReminderDetail, error)
	ListReminders(ctx context.Context, page repository.Page) (repository.PageResult[model.Reminder], error)
	CountReminders(ctx context.Context) (int, error)
}

// UserService defines user read use cases.
type UserService interface {
	GetUser(ctx context.Context, id string) (model.User, error)
	ListUsers(ctx context.Context, page repository.Page) (repository.PageResult[model.User], error)
}

func (o Options) withDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if o.QueryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, o.QueryTimeout)
}
