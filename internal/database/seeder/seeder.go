package seeder

import (
	"context"

	"skill-directory/internal/database"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}

// Hasher digests a plaintext password for storage.
type Hasher interface {
	Hash(password string) (string, error)
}

type Credential struct {
	Username string
	Password string
}

// Pair names an assignment by username and skill name.
type Pair struct {
	Username string
	Skill    string
}
