package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email                       string    `gorm:"index" json:"email"`
	Name                        string    `json:"name"`
	Role                        string    `gorm:"default:user" json:"role"`
	EncryptedGoogleAccessToken  string    `json:"-"`
	EncryptedGoogleRefreshToken string    `json:"-"`
	CreatedAt                   time.Time `json:"created_at"`
	UpdatedAt                   time.Time `json:"updated_at"`
}

func (u *User) HasCalendar() bool {
	return u.EncryptedGoogleAccessToken != ""
}
