package dto

import (
	"time"

	"skill-directory/internal/domain/skill"

	"github.com/google/uuid"
)

// CreateUserSkillRequest keeps skill_id as text so a malformed id is a 400
// rather than a bind failure with a library message.
type CreateUserSkillRequest struct {
	SkillID string `json:"skill_id"`
}

type UserSkillResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	SkillID   uuid.UUID `json:"skill_id"`
	SkillName string    `json:"skill_name"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserSkillResponse(us skill.UserSkill) UserSkillResponse {
	return UserSkillResponse{
		ID:        us.ID,
		UserID:    us.UserID,
		SkillID:   us.SkillID,
		SkillName: us.SkillName,
		CreatedAt: us.CreatedAt,
	}
}
