package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/reminder-admin/internal/model"
	"github.com/maxviazov/reminder-admin/internal/repository"
)

const reminderColumns = `id, user_id, content, priority, summary, created_at`

type reminderRepository struct{ pool *pgxpool.Pool }

func NewReminderRepository(pool *pgxpool.Pool) repository.ReminderRepository {
	return &reminderRepository{pool: pool}
}

func scanReminder(row pgx.CollectableRow) (model.Reminder, error) {
	var r model.Reminder
	err := row.Scan(&r.ID, &r.UserID, &r.Content, &r.Priority, &r.Summary, &r.CreatedAt)
	return r, err
}

func getReminder(ctx context.Context, c q, id int64) (model.Reminder, error) {
	rows, err := c.Query(ctx, `SELECT `+reminderColumns+` FROM reminders WHERE id = $1`, id)
	if err != nil {
		return model.Reminder{}, err
	}
	return pgx.CollectExactlyOneRow(rows, scanReminder)
}

// GetDetail resolves the owner with a second query on the same connection.
// A missing owner is not an error.
func (r *reminderRepository) GetDetail(ctx context.Context, id int64) (model.ReminderDetail, error) {
	var out model.ReminderDetail
	err := withSnapshot(ctx, r.pool, "get reminder detail", func(c q) error {
		rem, err := getReminder(ctx, c, id)
		if err != nil {
			return err
		}
		out.Reminder = rem
		u, err := getUser(ctx, c, rem.UserID)
		switch {
		case err == nil:
			out.User = &u
		case !errors.Is(err, pgx.ErrNoRows):
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
	return listPage(ctx, r.pool, "list reminders",
		`SELECT COUNT(*) FROM reminders`,
		`SELECT `+reminderColumns+`
		 FROM reminders
		 ORDER BY created_at DESC, id DESC
		 LIMIT $1 OFFSET $2`,
		p, scanReminder,
	)
}

func (r *reminderRepository) Count(ctx context.Context) (int, error) {
	var total int
	err := withConn(ctx, r.pool, "count reminders", func(conn *pgxpool.Conn) error {
		return conn.QueryRow(ctx, `SELECT COUNT(*) FROM reminders`).Scan(&total)
	})
	return total, err
}

var _ repository.ReminderRepository = (*reminderRepository)(nil)
