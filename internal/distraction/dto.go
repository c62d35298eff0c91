package distraction

import util "github.com/Salsabil-210/comhabits/internal/utils"

type CreateDistractionDTO struct {
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	OccurredOn      *util.Date `json:"occurredOn"`
	DurationMinutes int        `json:"durationMinutes"`
	Trigger         string     `json:"trigger"`
}

type UpdateDistractionDTO struct {
	Name            *string    `json:"name"`
	Description     *string    `json:"description"`
	OccurredOn      *util.Date `json:"occurredOn"`
	DurationMinutes *int       `json:"durationMinutes"`
	Trigger         *string    `json:"trigger"`
}
