package dto

import (
	"skill-directory/internal/domain/user"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

func NewUserResponse(u user.Public) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username}
}
