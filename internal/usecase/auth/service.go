package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"skill-directory/internal/domain"
	"skill-directory/internal/domain/user"

	"github.com/google/uuid"
)

const (
	MaxUsernameLength = 20
	// bcrypt ignores input past 72 bytes; longer passwords are refused.
	MaxPasswordBytes = 72
)

type Service struct {
	users     user.Repository
	hasher    PasswordHasher
	dummyHash string
}

func NewService(users user.Repository, hasher PasswordHasher) (*Service, error) {
	dummy, err := dummyHash(hasher)
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}
	return &Service{users: users, hasher: hasher, dummyHash: dummy}, nil
}

// Register stores a new user. Only the hash of password is persisted.
func (s *Service) Register(ctx context.Context, username, password string) (user.User, error) {
	if err := validateUsername(username); err != nil {
		return user.User{}, err
	}
	if password == "" {
		return user.User{}, fmt.Errorf("%w: password is required", domain.ErrInvalidInput)
	}
	if len(password) > MaxPasswordBytes {
		return user.User{}, fmt.Errorf("%w: password exceeds %d bytes", domain.ErrInvalidInput, MaxPasswordBytes)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return user.User{}, fmt.Errorf("%w: hash password: %v", domain.ErrInternal, err)
	}

	created, err := s.users.Create(ctx, user.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return user.User{}, err
		}
		return user.User{}, fmt.Errorf("%w: create user: %v", domain.ErrInternal, err)
	}

	return sanitizeUser(created), nil
}

// VerifyCredentials returns the id of the user owning username when password
// matches. An unknown username and a wrong password fail identically.
func (s *Service) VerifyCredentials(ctx context.Context, username, password string) (uuid.UUID, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return uuid.Nil, fmt.Errorf("%w: lookup user: %v", domain.ErrInternal, err)
		}
		// Pay for a comparison anyway so timing does not reveal the miss.
		_ = s.hasher.Compare(s.dummyHash, password)
		return uuid.Nil, domain.ErrUnauthorized
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return u.ID, nil
}

func validateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return fmt.Errorf("%w: username is required", domain.ErrInvalidInput)
	}
	if utf8.RuneCountInString(username) > MaxUsernameLength {
		return fmt.Errorf("%w: username exceeds %d characters", domain.ErrInvalidInput, MaxUsernameLength)
	}
	return nil
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
