package user

import (
	"time"

	"github.com/google/uuid"
)

type UpdateCalendarDTO struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type UserResponse struct {
	ID                uuid.UUID `json:"id"`
	Email             string    `json:"email"`
	Name              string    `json:"name"`
	Role              string    `json:"role"`
	CalendarConnected bool      `json:"calendarConnected"`
	CreatedAt         time.Time `json:"created_at"`
}

func toResponse(u *User) UserResponse {
	return UserResponse{
		ID:                u.ID,
		Email:             u.Email,
		Name:              u.Name,
		Role:              u.Role,
		CalendarConnected: u.HasCalendar(),
		CreatedAt:         u.CreatedAt,
	}
}
