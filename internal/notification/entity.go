package notification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Type string

const (
	TypeSharedHabitInvite   Type = "shared_habit_invite"
	TypeSharedHabitAccepted Type = "shared_habit_accepted"
	TypeSharedHabitRejected Type = "shared_habit_rejected"
	TypeSharedHabitLeft     Type = "shared_habit_left"
	TypeHabitReminder       Type = "habit_reminder"
)

type Notification struct {
	ID          uuid.UUID                          `gorm:"type:uuid;primaryKey" json:"id"`
	RecipientID uuid.UUID                          `gorm:"type:uuid;not null;index" json:"recipientId"`
	Type        Type                               `gorm:"type:varchar(48);not null" json:"type"`
	Payload     datatypes.JSONType[map[string]any] `json:"payload"`
	ReadAt      *time.Time                         `json:"readAt,omitempty"`
	CreatedAt   time.Time                          `json:"createdAt"`
}
