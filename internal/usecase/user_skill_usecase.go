package usecase

import (
	"context"
	"errors"
	"fmt"

	"skill-directory/internal/domain"
	"skill-directory/internal/domain/skill"
	"skill-directory/internal/observability"
	"skill-directory/internal/repository"

	"github.com/google/uuid"
)

// UserSkillNotifier receives assignment changes after they are stored.
type UserSkillNotifier interface {
	UserSkillCreated(us skill.UserSkill)
	UserSkillDeleted(userID uuid.UUID, id uuid.UUID)
}

type UserSkillUsecase interface {
	ListUserSkills(ctx context.Context, userID uuid.UUID) ([]skill.UserSkill, error)
	AssignSkill(ctx context.Context, userID uuid.UUID, skillID uuid.UUID) (skill.UserSkill, error)
	UnassignSkill(ctx context.Context, userID uuid.UUID, id uuid.UUID) error
}

type UserSkill struct {
	repo     repository.UserSkillRepository
	notifier UserSkillNotifier
}

// NewUserSkillUsecase wires the assignment usecase. notifier may be nil.
func NewUserSkillUsecase(repo repository.UserSkillRepository, notifier UserSkillNotifier) *UserSkill {
	return &UserSkill{repo: repo, notifier: notifier}
}

func (u *UserSkill) ListUserSkills(ctx context.Context, userID uuid.UUID) ([]skill.UserSkill, error) {
	items, err := u.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: list user skills: %v", domain.ErrInternal, err)
	}
	return items, nil
}

func (u *UserSkill) AssignSkill(ctx context.Context, userID uuid.UUID, skillID uuid.UUID) (skill.UserSkill, error) {
	if userID == uuid.Nil || skillID == uuid.Nil {
		return skill.UserSkill{}, fmt.Errorf("%w: user_id and skill_id are required", domain.ErrInvalidInput)
	}

	created, err := u.repo.Create(ctx, userID, skillID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrConflict):
			observability.RecordUserSkillWrite("create", observability.ResultConflict)
			return skill.UserSkill{}, err
		case errors.Is(err, domain.ErrNotFound):
			observability.RecordUserSkillWrite("create", observability.ResultNotFound)
			return skill.UserSkill{}, err
		default:
			observability.RecordUserSkillWrite("create", observability.ResultError)
			return skill.UserSkill{}, fmt.Errorf("%w: create user skill: %v", domain.ErrInternal, err)
		}
	}

	observability.RecordUserSkillWrite("create", observability.ResultSuccess)
	if u.notifier != nil {
		u.notifier.UserSkillCreated(created)
	}
	return created, nil
}

// UnassignSkill deletes the assignment id owned by userID. Deleting an id
// that does not exist succeeds.
func (u *UserSkill) UnassignSkill(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	if err := u.repo.Delete(ctx, userID, id); err != nil {
		observability.RecordUserSkillWrite("delete", observability.ResultError)
		return fmt.Errorf("%w: delete user skill: %v", domain.ErrInternal, err)
	}

	observability.RecordUserSkillWrite("delete", observability.ResultSuccess)
	if u.notifier != nil {
		u.notifier.UserSkillDeleted(userID, id)
	}
	return nil
}
