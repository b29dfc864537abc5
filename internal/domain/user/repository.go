package user

import (
	"context"
	"fmt"

	"skill-directory/internal/domain"

	"github.com/google/uuid"
)

var ErrNotFound = fmt.Errorf("user %w", domain.ErrNotFound)

type Repository interface {
	// Create inserts u. A taken username yields an error wrapping domain.ErrConflict.
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	List(ctx context.Context) ([]Public, error)
}
