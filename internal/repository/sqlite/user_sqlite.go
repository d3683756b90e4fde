package sqlite

import (
	"context"
	"database/sql"

	"github.com/maxviazov/reminder-admin/internal/model"
	"github.com/maxviazov/reminder-admin/internal/repository"
)

const userColumns = `id, display_name, phone, created_at`

type userRepository struct{ db *sql.DB }

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func scanUser(s scanner) (model.User, error) {
	var u model.User
	err := s.Scan(&u.ID, &u.DisplayName, &u.Phone, &u.CreatedAt)
	return u, err
}

func getUser(ctx context.Context, c q, id string) (model.User, error) {
	return scanUser(c.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

func (r *userRepository) GetByID(ctx context.Context, id string) (model.User, error) {
	var out model.User
	err := withConn(ctx, r.db, "get user", func(conn *sql.Conn) error {
		var err error
		out, err = getUser(ctx, conn, id)
		return err
	})
	return out, err
}

func (r *userRepository) List(ctx context.Context, p repository.Page) (repository.PageResult[model.User], error) {
	return listPage(ctx, r.db, "list users",
		`SELECT COUNT(*) FROM users`,
		`SELECT `+userColumns+`
		 FROM users
		 ORDER BY julianday(created_at) DESC, id DESC
		 LIMIT ? OFFSET ?`,
		p, scanUser,
	)
}

var _ repository.UserRepository = (*userRepository)(nil)
