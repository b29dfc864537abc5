package usecase

import (
	"context"

	"skill-directory/internal/domain/user"
	ucuser "skill-directory/internal/usecase/user"
)

type UserUsecase interface {
	ListUsers(ctx context.Context) ([]user.Public, error)
}

type User struct {
	svc *ucuser.Service
}

func NewUserUsecase(users user.Repository) *User {
	return &User{svc: ucuser.NewService(users)}
}

func (u *User) ListUsers(ctx context.Context) ([]user.Public, error) {
	return u.svc.List(ctx)
}
