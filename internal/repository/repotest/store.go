// Package repotest provides in-memory repositories for tests. The store
// enforces the same uniqueness and reference rules as the SQL schema, under a
// single mutex, so races between writers resolve the way Postgres resolves
// them.
package repotest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"skill-directory/internal/domain"
	"skill-directory/internal/domain/skill"
	"skill-directory/internal/domain/user"
	"skill-directory/internal/repository"

	"github.com/google/uuid"
)

type Store struct {
	mu         sync.Mutex
	users      map[uuid.UUID]user.User
	skills     map[uuid.UUID]skill.Skill
	userSkills map[uuid.UUID]skill.UserSkill

	// Err, when set, is returned by every repository call.
	Err error
	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:      make(map[uuid.UUID]user.User),
		skills:     make(map[uuid.UUID]skill.Skill),
		userSkills: make(map[uuid.UUID]skill.UserSkill),
		now:        time.Now,
	}
}

func (s *Store) Users() *Users           { return &Users{s: s} }
func (s *Store) Skills() *Skills         { return &Skills{s: s} }
func (s *Store) UserSkills() *UserSkills { return &UserSkills{s: s} }

// AssignmentCount returns how many assignment rows exist.
func (s *Store) AssignmentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.userSkills)
}

// Users implements user.Repository.
type Users struct{ s *Store }

var _ user.Repository = (*Users)(nil)

func (r *Users) Create(_ context.Context, u user.User) (user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return user.User{}, r.s.Err
	}
	for _, existing := range r.s.users {
		if existing.Username == u.Username {
			return user.User{}, fmt.Errorf("username %q: %w", u.Username, domain.ErrConflict)
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.CreatedAt = r.s.now()
	r.s.users[u.ID] = u
	return u, nil
}

func (r *Users) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return user.User{}, r.s.Err
	}
	u, ok := r.s.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (r *Users) GetByUsername(_ context.Context, username string) (user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return user.User{}, r.s.Err
	}
	for _, u := range r.s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (r *Users) List(_ context.Context) ([]user.Public, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := make([]user.Public, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, u.Public())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

// Delete removes a user and its assignments. Tests use it to simulate an
// account removed after a token was issued.
func (r *Users) Delete(id uuid.UUID) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.users, id)
	for k, us := range r.s.userSkills {
		if us.UserID == id {
			delete(r.s.userSkills, k)
		}
	}
}

// Skills implements repository.SkillRepository.
type Skills struct{ s *Store }

var _ repository.SkillRepository = (*Skills)(nil)

func (r *Skills) GetAllSkills(_ context.Context) ([]skill.Skill, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := make([]skill.Skill, 0, len(r.s.skills))
	for _, sk := range r.s.skills {
		out = append(out, sk)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *Skills) CreateSkill(_ context.Context, name string) (skill.Skill, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return skill.Skill{}, r.s.Err
	}
	for _, sk := range r.s.skills {
		if sk.Name == name {
			return skill.Skill{}, fmt.Errorf("skill %q: %w", name, domain.ErrConflict)
		}
	}
	sk := skill.Skill{ID: uuid.New(), Name: name}
	r.s.skills[sk.ID] = sk
	return sk, nil
}

// UserSkills implements repository.UserSkillRepository.
type UserSkills struct{ s *Store }

var _ repository.UserSkillRepository = (*UserSkills)(nil)

func (r *UserSkills) FindByUserID(_ context.Context, userID uuid.UUID) ([]skill.UserSkill, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := make([]skill.UserSkill, 0)
	for _, us := range r.s.userSkills {
		if us.UserID == userID {
			out = append(out, us)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SkillName < out[j].SkillName })
	return out, nil
}

func (r *UserSkills) Create(_ context.Context, userID uuid.UUID, skillID uuid.UUID) (skill.UserSkill, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return skill.UserSkill{}, r.s.Err
	}
	if _, ok := r.s.users[userID]; !ok {
		return skill.UserSkill{}, repository.ErrUserSkillRefMissing
	}
	sk, ok := r.s.skills[skillID]
	if !ok {
		return skill.UserSkill{}, repository.ErrUserSkillRefMissing
	}
	for _, us := range r.s.userSkills {
		if us.UserID == userID && us.SkillID == skillID {
			return skill.UserSkill{}, repository.ErrUserSkillExists
		}
	}

	us := skill.UserSkill{
		ID:        uuid.New(),
		UserID:    userID,
		SkillID:   skillID,
		SkillName: sk.Name,
		CreatedAt: r.s.now(),
	}
	r.s.userSkills[us.ID] = us
	return us, nil
}

func (r *UserSkills) Delete(_ context.Context, userID uuid.UUID, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if us, ok := r.s.userSkills[id]; ok && us.UserID == userID {
		delete(r.s.userSkills, id)
	}
	return nil
}
