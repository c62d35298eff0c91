package container

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Salsabil-210/comhabits/internal/auth"
	"github.com/Salsabil-210/comhabits/internal/config"
	"github.com/Salsabil-210/comhabits/internal/distraction"
	googlecalendar "github.com/Salsabil-210/comhabits/internal/google_calendar"
	"github.com/Salsabil-210/comhabits/internal/habit"
	"github.com/Salsabil-210/comhabits/internal/notification"
	"github.com/Salsabil-210/comhabits/internal/realtime"
	"github.com/Salsabil-210/comhabits/internal/reminder"
	"github.com/Salsabil-210/comhabits/internal/router"
	"github.com/Salsabil-210/comhabits/internal/substitution"
	"github.com/Salsabil-210/comhabits/internal/user"
)

type Container struct {
	Hub                     *realtime.Hub
	UserContainer           *user.UserContainer
	GoogleCalendarContainer *googlecalendar.GoogleCalendarContainer
	NotificationContainer   *notification.Container
	HabitContainer          *habit.HabitContainer
	DistractionContainer    *distraction.Container
	SubstitutionContainer   *substitution.Container
	Reminders               *reminder.Dispatcher
}

// Bootstrap loads configuration, connects to dsn and wires every feature.
func Bootstrap(ctx context.Context, dsn string) (*Container, error) {
	config.Init()
	auth.Init()

	if config.Cfg.Google.Enabled() {
		if err := config.InitCrypto(); err != nil {
			return nil, fmt.Errorf("calendar sync needs CRYPTO_KEY: %w", err)
		}
	}

	if dsn == "" {
		dsn = config.Cfg.DatabaseDSN
	}
	if err := config.Connect(ctx, dsn); err != nil {
		return nil, err
	}

	return New(config.DB), nil
}

func New(db *gorm.DB) *Container {
	hub := realtime.NewHub()

	userContainer := user.NewUserContainer(db)
	calendarContainer := googlecalendar.NewGoogleCalendarContainer(userContainer.Repository, config.Cfg.Google)
	notificationContainer := notification.NewContainer(db, hub)

	habitContainer := habit.NewHabitContainer(
		db,
		notificationContainer.Service,
		calendarContainer.CalendarManager,
	)

	return &Container{
		Hub:                     hub,
		UserContainer:           userContainer,
		GoogleCalendarContainer: calendarContainer,
		NotificationContainer:   notificationContainer,
		HabitContainer:          habitContainer,
		DistractionContainer:    distraction.NewContainer(db),
		SubstitutionContainer:   substitution.NewContainer(db),
		Reminders:               reminder.NewDispatcher(habitContainer.Repository, notificationContainer.Service),
	}
}

func (c *Container) Router() router.RouterConfig {
	return router.RouterConfig{
		UserHandler:         c.UserContainer.Handler,
		HabitHandler:        c.HabitContainer.Handler,
		NotificationHandler: c.NotificationContainer.Handler,
		RealtimeHandler:     realtime.NewHandler(c.Hub),
		DistractionHandler:  c.DistractionContainer.Handler,
		SubstitutionHandler: c.SubstitutionContainer.Handler,
	}
}

// Models lists every table AutoMigrate manages.
func Models() []interface{} {
	return []interface{}{
		&user.User{},
		&habit.Habit{},
		&habit.Participant{},
		&habit.ParticipantCompletion{},
		&notification.Notification{},
		&distraction.Distraction{},
		&substitution.Substitution{},
	}
}
