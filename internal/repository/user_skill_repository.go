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

var (
	ErrUserSkillExists     = fmt.Errorf("user skill %w", domain.ErrConflict)
	ErrUserSkillRefMissing = fmt.Errorf("user or skill %w", domain.ErrNotFound)
)

// UserSkillRepository stores assignments. Pair uniqueness and both foreign
// keys are enforced by the schema, never by a prior read.
type UserSkillRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]skill.UserSkill, error)
	Create(ctx context.Context, userID uuid.UUID, skillID uuid.UUID) (skill.UserSkill, error)
	Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error
}

type PostgresUserSkillRepository struct {
	db database.DB
}

func NewPostgresUserSkillRepository(db database.DB) *PostgresUserSkillRepository {
	return &PostgresUserSkillRepository{db: db}
}

func (r *PostgresUserSkillRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]skill.UserSkill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT us.id, us.user_id, us.skill_id, s.name, us.created_at
		 FROM user_skills us
		 JOIN skills s ON s.id = us.skill_id
		 WHERE us.user_id = $1
		 ORDER BY s.name ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.UserSkill, 0)
	for rows.Next() {
		var us skill.UserSkill
		if err := rows.Scan(&us.ID, &us.UserID, &us.SkillID, &us.SkillName, &us.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, us)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts the pair in one statement. A duplicate pair returns
// ErrUserSkillExists and a dangling user or skill returns
// ErrUserSkillRefMissing; neither leaves a row behind.
func (r *PostgresUserSkillRepository) Create(ctx context.Context, userID uuid.UUID, skillID uuid.UUID) (skill.UserSkill, error) {
	row := r.db.QueryRow(ctx,
		`WITH inserted AS (
		     INSERT INTO user_skills (id, user_id, skill_id)
		     VALUES ($1, $2, $3)
		     RETURNING id, user_id, skill_id, created_at
		 )
		 SELECT i.id, i.user_id, i.skill_id, s.name, i.created_at
		 FROM inserted i
		 JOIN skills s ON s.id = i.skill_id`,
		uuid.New(), userID, skillID,
	)

	var created skill.UserSkill
	if err := row.Scan(&created.ID, &created.UserID, &created.SkillID, &created.SkillName, &created.CreatedAt); err != nil {
		switch {
		case postgres.IsUniqueViolation(err):
			return skill.UserSkill{}, ErrUserSkillExists
		case postgres.IsForeignKeyViolation(err):
			return skill.UserSkill{}, ErrUserSkillRefMissing
		default:
			return skill.UserSkill{}, err
		}
	}
	return created, nil
}

// Delete removes the assignment if it belongs to userID. A missing row is
// not an error.
func (r *PostgresUserSkillRepository) Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM user_skills WHERE user_id = $1 AND id = $2`, userID, id)
	return err
}
