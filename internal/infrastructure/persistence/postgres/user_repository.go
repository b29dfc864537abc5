package postgres

import (
	"context"
	"fmt"

	"skill-directory/internal/database"
	pg "skill-directory/internal/database/postgres"
	"skill-directory/internal/domain"
	"skill-directory/internal/domain/user"

	"github.com/google/uuid"
)

const userColumns = `id, username, password_hash, created_at`

type UserRepository struct {
	db database.DB
}

func NewUserRepository(db database.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO users (id, username, password_hash) VALUES ($1, $2, $3) RETURNING `+userColumns,
		u.ID, u.Username, u.PasswordHash,
	)
	created, err := scanUser(row)
	if err != nil {
		if pg.IsUniqueViolation(err) {
			return user.User{}, fmt.Errorf("username %q: %w", u.Username, domain.ErrConflict)
		}
		return user.User{}, err
	}
	return created, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	return scanUser(row)
}

func (r *UserRepository) List(ctx context.Context) ([]user.Public, error) {
	rows, err := r.db.Query(ctx, `SELECT id, username FROM users ORDER BY username ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]user.Public, 0)
	for rows.Next() {
		var p user.Public
		if err := rows.Scan(&p.ID, &p.Username); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanUser(row database.Row) (user.User, error) {
	var u user.User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt); err != nil {
		if pg.IsNoRows(err) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}
