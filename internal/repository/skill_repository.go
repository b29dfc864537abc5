package repository

import (
	"context"
	"fmt"

	"skill-directory/internal/database"
	"skill-directory/internal/database/postgres"
	"skill-directory/internal/domain"
	"skill-directory/internal/domain/skill"

	"github.com/google/uuid"
)

type SkillRepository interface {
	GetAllSkills(ctx context.Context) ([]skill.Skill, error)
	CreateSkill(ctx context.Context, name string) (skill.Skill, error)
}

type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

func (r *PostgresSkillRepository) GetAllSkills(ctx context.Context) ([]skill.Skill, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM skills ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.Skill, 0)
	for rows.Next() {
		var s skill.Skill
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSkillRepository) CreateSkill(ctx context.Context, name string) (skill.Skill, error) {
	var s skill.Skill
	row := r.db.QueryRow(ctx,
		`INSERT INTO skills (id, name) VALUES ($1, $2) RETURNING id, name`,
		uuid.New(), name,
	)
	if err := row.Scan(&s.ID, &s.Name); err != nil {
		if postgres.IsUniqueViolation(err) {
			return skill.Skill{}, fmt.Errorf("skill %q: %w", name, domain.ErrConflict)
		}
		return skill.Skill{}, err
	}
	return s, nil
}
