package distraction

import (
	"time"

	"github.com/google/uuid"

	util "github.com/Salsabil-210/comhabits/internal/utils"
)

type Distraction struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string    `gorm:"not null" json:"name"`
	Description     string    `json:"description,omitempty"`
	OccurredOn      util.Date `gorm:"type:date;not null;index" json:"occurredOn"`
	DurationMinutes int       `json:"durationMinutes"`
	Trigger         string    `json:"trigger,omitempty"`
	UserID          uuid.UUID `gorm:"type:uuid;column:user_id;not null;index" json:"user_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
