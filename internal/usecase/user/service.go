package user

import (
	"context"
	"fmt"

	"skill-directory/internal/domain"
	"skill-directory/internal/domain/user"
)

type Service struct {
	users user.Repository
}

func NewService(users user.Repository) *Service {
	return &Service{users: users}
}

// List returns every user without password material.
func (s *Service) List(ctx context.Context) ([]user.Public, error) {
	items, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list users: %v", domain.ErrInternal, err)
	}
	return items, nil
}
