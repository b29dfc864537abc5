package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"skill-directory/internal/domain"
	"skill-directory/internal/domain/skill"
	"skill-directory/internal/repository"

	"github.com/google/uuid"
)

const (
	skillsCacheKey     = "skills:list"
	maxSkillNameLength = 100
)

type SkillUsecase interface {
	ListSkills(ctx context.Context) ([]skill.Skill, error)
	AddSkill(ctx context.Context, name string) (skill.Skill, error)
}

type Skill struct {
	repo   repository.SkillRepository
	cache  Cache
	logger *log.Logger
}

// NewSkillUsecase builds the skill catalogue usecase. cache may be nil.
func NewSkillUsecase(repo repository.SkillRepository, cache Cache, logger *log.Logger) *Skill {
	if logger == nil {
		logger = log.Default()
	}
	return &Skill{repo: repo, cache: cache, logger: logger}
}

type cachedSkill struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (u *Skill) ListSkills(ctx context.Context) ([]skill.Skill, error) {
	if items, ok := u.fromCache(ctx); ok {
		return items, nil
	}

	items, err := u.repo.GetAllSkills(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list skills: %v", domain.ErrInternal, err)
	}

	if u.cache != nil {
		payload := make([]cachedSkill, 0, len(items))
		for _, it := range items {
			payload = append(payload, cachedSkill{ID: it.ID.String(), Name: it.Name})
		}
		if err := u.cache.SetJSON(ctx, skillsCacheKey, payload, 0); err != nil {
			u.logger.Printf("[Cache] set %s failed: %v", skillsCacheKey, err)
		}
	}
	return items, nil
}

// AddSkill creates a catalogue entry. Names are unique; a duplicate returns
// an error wrapping domain.ErrConflict.
func (u *Skill) AddSkill(ctx context.Context, name string) (skill.Skill, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > maxSkillNameLength {
		return skill.Skill{}, fmt.Errorf("%w: skill name must be 1-%d characters", domain.ErrInvalidInput, maxSkillNameLength)
	}

	created, err := u.repo.CreateSkill(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return skill.Skill{}, err
		}
		return skill.Skill{}, fmt.Errorf("%w: create skill: %v", domain.ErrInternal, err)
	}

	u.InvalidateSkillList(ctx)
	return created, nil
}

// InvalidateSkillList drops the cached listing. Callers that write skills
// outside AddSkill, such as the seeder, must call it afterwards.
func (u *Skill) InvalidateSkillList(ctx context.Context) {
	if u.cache == nil {
		return
	}
	if err := u.cache.Delete(ctx, skillsCacheKey); err != nil {
		u.logger.Printf("[Cache] invalidate %s failed: %v", skillsCacheKey, err)
	}
}

func (u *Skill) fromCache(ctx context.Context) ([]skill.Skill, bool) {
	if u.cache == nil {
		return nil, false
	}
	var payload []cachedSkill
	hit, err := u.cache.GetJSON(ctx, skillsCacheKey, &payload)
	if err != nil || !hit {
		return nil, false
	}

	out := make([]skill.Skill, 0, len(payload))
	for _, p := range payload {
		id, err := uuid.Parse(p.ID)
		if err != nil {
			return nil, false
		}
		out = append(out, skill.Skill{ID: id, Name: p.Name})
	}
	return out, true
}
