package seeder

import (
	"context"
	"fmt"

	"skill-directory/internal/database"

	"github.com/google/uuid"
)

type UserSkillsSeeder struct {
	Pairs []Pair
}

func (UserSkillsSeeder) Name() string { return "user_skills" }

// Run links each pair. A pair whose user or skill is missing is an error.
func (s UserSkillsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "user_skills", "id", "user_id", "skill_id"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, p := range s.Pairs {
		var userID, skillID uuid.UUID
		if err := tx.QueryRow(ctx,
			`SELECT u.id, s.id FROM users u, skills s WHERE u.username = $1 AND s.name = $2`,
			p.Username, p.Skill,
		).Scan(&userID, &skillID); err != nil {
			return fmt.Errorf("resolve %s/%s: %w", p.Username, p.Skill, err)
		}

		if _, err := tx.Exec(
			ctx,
			`INSERT INTO user_skills (id, user_id, skill_id) VALUES ($1, $2, $3) ON CONFLICT (user_id, skill_id) DO NOTHING`,
			uuid.New(),
			userID,
			skillID,
		); err != nil {
			return fmt.Errorf("user skill %s/%s: %w", p.Username, p.Skill, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
