package skill

import (
	"time"

	"github.com/google/uuid"
)

type Skill struct {
	ID   uuid.UUID
	Name string
}

// UserSkill is one assignment row linking a user to a skill.
type UserSkill struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	SkillID   uuid.UUID
	SkillName string
	CreatedAt time.Time
}
