package substitution

import (
	"time"

	"github.com/google/uuid"

	util "github.com/Salsabil-210/comhabits/internal/utils"
)

// Substitution pairs a habit the user wants to drop with the one that
// replaces it.
type Substitution struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	BadHabit     string     `gorm:"not null" json:"badHabit"`
	GoodHabit    string     `gorm:"not null" json:"goodHabit"`
	Notes        string     `json:"notes,omitempty"`
	TimesLogged  int        `gorm:"not null;default:0" json:"timesLogged"`
	LastLoggedOn *util.Date `gorm:"type:date" json:"lastLoggedOn"`
	UserID       uuid.UUID  `gorm:"type:uuid;column:user_id;not null;index" json:"user_id"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
