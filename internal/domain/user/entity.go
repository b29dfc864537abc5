package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// Public is the outward shape of a user. It has no password field.
type Public struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

func (u User) Public() Public {
	return Public{ID: u.ID, Username: u.Username}
}
