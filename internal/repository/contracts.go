package repository

import (
	"context"

	"github.com/maxviazov/reminder-admin/internal/model"
)

// Pinger represents a minimal readiness probe capability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ReminderRepository declares read operations for reminders.
// Implementations surface ErrNotFound and plain storage errors; nothing else.
type ReminderRepository interface {
	// GetDetail loads the reminder and its owning user on a single connection.
	GetDetail(ctx context.Context, id int64) (model.ReminderDetail, error)
	// List returns reminders newest first (created_at DESC, id DESC) and the total row count.
	List(ctx context.Context, p Page) (PageResult[model.Reminder], error)
	Count(ctx context.Context) (int, error)
}

// UserRepository declares read operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (model.User, error)
	// List returns users newest first (created_at DESC, id DESC) and the total row count.
	List(ctx context.Context, p Page) (PageResult[model.User], error)
}
