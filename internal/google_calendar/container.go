package googlecalendar

import (
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"

	"github.com/Salsabil-210/comhabits/internal/config"
	"github.com/Salsabil-210/comhabits/internal/user"
)

type GoogleCalendarContainer struct {
	CalendarService CalendarService
	CalendarManager CalendarManager
}

func NewGoogleCalendarContainer(userRepo user.UserRepository, settings config.GoogleSettings) *GoogleCalendarContainer {
	if !settings.Enabled() {
		config.Log.Info("Google Calendar sync disabled")
		return &GoogleCalendarContainer{CalendarManager: disabledManager{}}
	}

	oauthConfig := &oauth2.Config{
		ClientID:     settings.ClientID,
		ClientSecret: settings.ClientSecret,
		RedirectURL:  settings.RedirectURL,
		Scopes:       []string{gcal.CalendarEventsScope, gcal.CalendarScope},
		Endpoint:     google.Endpoint,
	}

	calendarService := NewCalendarService(userRepo, oauthConfig)

	return &GoogleCalendarContainer{
		CalendarService: calendarService,
		CalendarManager: NewCalendarManager(calendarService),
	}
}
