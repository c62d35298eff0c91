package habit

import (
	"gorm.io/gorm"

	"github.com/Salsabil-210/comhabits/internal/config"
	googlecalendar "github.com/Salsabil-210/comhabits/internal/google_calendar"
)

type HabitContainer struct {
	Repository HabitRepository
	Service    HabitService
	Handler    *Handler
}

func NewHabitContainer(
	db *gorm.DB,
	notifier Notifier,
	calendarManager googlecalendar.CalendarManager,
) *HabitContainer {
	repo := NewRepository(db)
	service := NewService(repo, config.NewTransactor(db), notifier, calendarManager)

	return &HabitContainer{
		Repository: repo,
		Service:    service,
		Handler:    NewHandler(service),
	}
}
