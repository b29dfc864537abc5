package seeder

import (
	"context"
	"fmt"

	"skill-directory/internal/database"

	"github.com/google/uuid"
)

type SkillsSeeder struct {
	Names []string
}

func (SkillsSeeder) Name() string { return "skills" }

func (s SkillsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "skills", "id", "name"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, name := range s.Names {
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO skills (id, name) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`,
			uuid.New(),
			name,
		); err != nil {
			return fmt.Errorf("skill %q: %w", name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
