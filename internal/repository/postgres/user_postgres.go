package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/reminder-admin/internal/model"
	"github.com/maxviazov/reminder-admin/internal/repository"
)

const userColumns = `id, display_name, phone, created_at`

type userRepository struct{ pool *pgxpool.Pool }

func NewUserRepository(pool *pgxpool.Pool) repository.UserRepository {
	return &userRepository{pool: pool}
}

func scanUser(row pgx.CollectableRow) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.DisplayName, &u.Phone, &u.CreatedAt)
	return u, err
}

func getUser(ctx context.Context, c q, id string) (model.User, error) {
	rows, err := c.Query(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err != nil {
		return model.User{}, err
	}
	return pgx.CollectExactlyOneRow(rows, scanUser)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (model.User, error) {
	var out model.User
	err := withConn(ctx, r.pool, "get user", func(conn *pgxpool.Conn) error {
		var err error
		out, err = getUser(ctx, conn, id)
		return err
	})
	return out, err
}

func (r *userRepository) List(ctx context.Context, p repository.Page) (repository.PageResult[model.User], error) {
	return listPage(ctx, r.pool, "list users",
		`SELECT COUNT(*) FROM users`,
		`SELECT `+userColumns+`
		 FROM users
		 ORDER BY created_at DESC, id DESC
		 LIMIT $1 OFFSET $2`,
		p, scanUser,
	)
}

var _ repository.UserRepository = (*userRepository)(nil)
