package seeder

import (
	"context"
	"fmt"

	"skill-directory/internal/database"

	"github.com/google/uuid"
)

// UsersSeeder inserts demo accounts. Existing usernames keep their current
// password.
type UsersSeeder struct {
	Users  []Credential
	Hasher Hasher
}

func (UsersSeeder) Name() string { return "users" }

func (s UsersSeeder) Run(ctx context.Context, db database.DB) error {
	if s.Hasher == nil {
		return fmt.Errorf("users seeder: nil hasher")
	}
	if err := EnsureTableColumns(ctx, db, "users", "id", "username", "password_hash"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, u := range s.Users {
		hash, err := s.Hasher.Hash(u.Password)
		if err != nil {
			return fmt.Errorf("hash %q: %w", u.Username, err)
		}
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO users (id, username, password_hash) VALUES ($1, $2, $3) ON CONFLICT (username) DO NOTHING`,
			uuid.New(),
			u.Username,
			hash,
		); err != nil {
			return fmt.Errorf("user %q: %w", u.Username, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
