package ws

import (
	"encoding/json"
	"time"

	"skill-directory/internal/domain/skill"

	"github.com/google/uuid"
)

const (
	EventUserSkillsUpdated = "user_skills_updated"
	ActionCreated          = "created"
	ActionDeleted          = "deleted"
)

type UserSkillsUpdatedEvent struct {
	Type         string     `json:"type"`
	Action       string     `json:"action"`
	UserID       uuid.UUID  `json:"user_id"`
	AssignmentID uuid.UUID  `json:"assignment_id"`
	SkillID      *uuid.UUID `json:"skill_id,omitempty"`
	Timestamp    string     `json:"timestamp"`
}

// Notifier publishes assignment changes to a Hub.
type Notifier struct {
	hub *Hub
	now func() time.Time
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub, now: time.Now}
}

func (n *Notifier) UserSkillCreated(us skill.UserSkill) {
	skillID := us.SkillID
	n.publish(UserSkillsUpdatedEvent{
		Action:       ActionCreated,
		UserID:       us.UserID,
		AssignmentID: us.ID,
		SkillID:      &skillID,
	})
}

func (n *Notifier) UserSkillDeleted(userID uuid.UUID, id uuid.UUID) {
	n.publish(UserSkillsUpdatedEvent{
		Action:       ActionDeleted,
		UserID:       userID,
		AssignmentID: id,
	})
}

func (n *Notifier) publish(evt UserSkillsUpdatedEvent) {
	if n == nil || n.hub == nil {
		return
	}
	evt.Type = EventUserSkillsUpdated
	evt.Timestamp = n.now().UTC().Format(time.RFC3339)

	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	n.hub.Broadcast(b)
}
