// Package model contains domain entities and DTOs used across layers.
// Data shapes only; behavior lives in service and repository.
package model

import "time"

// Reminder is a note a user asked to be reminded about.
type Reminder struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	Priority  int       `json:"priority"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"created_at"`
}

// User owns reminders. IDs are external (e.g. a messaging handle), not generated here.
type User struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Phone       string    `json:"phone"`
	CreatedAt   time.Time `json:"created_at"`
}

// ReminderDetail is a reminder with its owner resolved. User is nil when the
// owner row no longer exists.
type ReminderDetail struct {
	Reminder
	User *User `json:"user"`
}
