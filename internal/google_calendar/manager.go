package googlecalendar

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Salsabil-210/comhabits/internal/config"
)

type CalendarManager interface {
	SyncHabit(ctx context.Context, userID uuid.UUID, habit *CalendarHabit) (eventID string, err error)
	RemoveHabit(ctx context.Context, userID uuid.UUID, eventID string) error
}

type calendarManager struct {
	calendarService CalendarService
}

func NewCalendarManager(calendarService CalendarService) CalendarManager {
	return &calendarManager{
		calendarService: calendarService,
	}
}

func (m *calendarManager) SyncHabit(ctx context.Context, userID uuid.UUID, habit *CalendarHabit) (string, error) {
	log := config.WithContext(ctx)

	hasOccurrences := len(habit.Occurrences) > 0
	hasEventID := habit.EventID != ""

	if hasEventID && !hasOccurrences {
		log.Infof("Habit %s no longer has occurrences, deleting calendar event", habit.ID)
		if err := m.calendarService.DeleteEventFromCalendar(ctx, userID, habit.EventID); err != nil {
			log.WithError(err).Warnf("Failed to delete calendar event for habit %s", habit.ID)
		}
		return "", nil
	}

	if !hasOccurrences {
		return "", nil
	}

	if hasEventID {
		if err := m.calendarService.UpdateEventInCalendar(ctx, userID, habit); err != nil {
			if errors.Is(err, ErrMissingCalendarTokens) {
				return habit.EventID, nil
			}
			log.WithError(err).Warnf("Failed to update calendar event for habit %s", habit.ID)
			return habit.EventID, err
		}
		return habit.EventID, nil
	}

	eventID, err := m.calendarService.AddEventToCalendar(ctx, userID, habit)
	if err != nil {
		if errors.Is(err, ErrMissingCalendarTokens) {
			return "", nil
		}
		log.WithError(err).Warnf("Failed to create calendar event for habit %s", habit.ID)
		return "", err
	}

	if eventID == "" {
		log.Warnf("Calendar service returned empty event ID for habit %s", habit.ID)
		return "", nil
	}

	log.Infof("Created calendar event %s for habit %s", eventID, habit.ID)
	return eventID, nil
}

func (m *calendarManager) RemoveHabit(ctx context.Context, userID uuid.UUID, eventID string) error {
	if eventID == "" {
		return nil
	}

	log := config.WithContext(ctx)

	if err := m.calendarService.DeleteEventFromCalendar(ctx, userID, eventID); err != nil {
		log.WithError(err).Warnf("Failed to delete calendar event %s", eventID)
		return err
	}

	return nil
}

// disabledManager is used when no Google OAuth client is configured.
type disabledManager struct{}

func (disabledManager) SyncHabit(_ context.Context, _ uuid.UUID, habit *CalendarHabit) (string, error) {
	return habit.EventID, nil
}

func (disabledManager) RemoveHabit(context.Context, uuid.UUID, string) error {
	return nil
}
