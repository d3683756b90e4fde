package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/maxviazov/reminder-admin/internal/model"
	"github.com/maxviazov/reminder-admin/internal/repository"
)

const reminderColumns = `id, user_id, content, priority, summary, created_at`

type reminderRepository struct{ db *sql.DB }

func NewReminderRepository(db *sql.DB) repository.ReminderRepository {
	return &reminderRepository{db: db}
}

func scanReminder(s scanner) (model.Reminder, error) {
	var r model.Reminder
	err := s.Scan(&r.ID, &r.UserID, &r.Content, &r.Priority, &r.Summary, &r.CreatedAt)
	return r, err
}

func getReminder(ctx context.Context, c q, id int64) (model.Reminder, error) {
	return scanReminder(c.QueryRowContext(ctx, `SELECT `+reminderColumns+` FROM reminders WHERE id = ?`, id))
}

func (r *reminderRepository) GetDetail(ctx context.Context, id int64) (model.ReminderDetail, error) {
	var out model.ReminderDetail
	err := withSnapshot(ctx, r.db, "get reminder detail", func(c q) error {
		rem, err := getReminder(ctx, c, id)
		if err != nil {
			return err
		}
		out.Reminder = rem
		u, err := getUser(ctx, c, rem.UserID)
		switch {
		case err == nil:
			out.User = &u
		case !errors.Is(err, sql.ErrNoRows):
			return err
		}
		return nil
	})
	if err != nil {
		return model.ReminderDetail{}, err
	}
	return out, nil
}

func (r *reminderRepository) List(ctx context.Context, p repository.Page) (repository.PageResult[model.Reminder], error) {
	return listPage(ctx, r.db, "list reminders",
		`SELECT COUNT(*) FROM reminders`,
		`SELECT `+reminderColumns+`
		 FROM reminders
		 ORDER BY julianday(created_at) DESC, id DESC
		 LIMIT ? OFFSET ?`,
		p, scanReminder,
	)
}

func (r *reminderRepository) Count(ctx context.Context) (int, error) {
	var total int
	err := withConn(ctx, r.db, "count reminders", func(conn *sql.Conn) error {
		return conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM reminders`).Scan(&total)
	})
	return total, err
}

var _ repository.ReminderRepository = (*reminderRepository)(nil)
