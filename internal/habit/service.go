package habit

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"github.com/Salsabil-210/comhabits/internal/auth"
	"github.com/Salsabil-210/comhabits/internal/config"
	googlecalendar "github.com/Salsabil-210/comhabits/internal/google_calendar"
	"github.com/Salsabil-210/comhabits/internal/notification"
	"github.com/Salsabil-210/comhabits/internal/schedule"
	util "github.com/Salsabil-210/comhabits/internal/utils"
)

// Notifier is the part of the notification service the habit flows use.
// Record must join the caller's transaction; Push runs after commit.
type Notifier interface {
	Record(ctx context.Context, recipientID uuid.UUID, typ notification.Type, payload map[string]any) (*notification.Notification, error)
	Push(ctx context.Context, n *notification.Notification)
}

type HabitService interface {
	Create(ctx context.Context, dto CreateHabitDTO) (*Habit, error)
	Update(ctx context.Context, id string, dto UpdateHabitDTO) (*Habit, error)
	Get(ctx context.Context, id string) (*Habit, error)
	List(ctx context.Context) ([]*Habit, error)
	Delete(ctx context.Context, id string) error
	DeleteOccurrence(ctx context.Context, id string, date util.Date) (*Habit, error)
	Track(ctx context.Context, id string, dto TrackDTO) (*TrackResult, error)
	QueryRange(ctx context.Context, start, end util.Date) ([]HabitInRange, error)
	Stats(ctx context.Context) (*Stats, error)

	Share(ctx context.Context, id string, dto ShareDTO) (*Habit, error)
	Respond(ctx context.Context, id string, accept bool) (*Habit, error)
	Leave(ctx context.Context, id string) error
	TrackParticipant(ctx context.Context, id string, dto ParticipantTrackDTO) (*ParticipantCompletion, error)
	Progress(ctx context.Context, id string) (map[uuid.UUID]ParticipantProgress, error)
}

type habitService struct {
	repo     HabitRepository
	tx       config.Transactor
	notifier Notifier
	calendar googlecalendar.CalendarManager
	now      func() time.Time
}

type Option func(*habitService)

// WithClock replaces time.Now, which decides what "today" is.
func WithClock(now func() time.Time) Option {
	return func(s *habitService) { s.now = now }
}

func NewService(repo HabitRepository, tx config.Transactor, notifier Notifier, calendar googlecalendar.CalendarManager, opts ...Option) HabitService {
	s := &habitService{
		repo:     repo,
		tx:       tx,
		notifier: notifier,
		calendar: calendar,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *habitService) today() util.Date {
	return util.Today(s.now())
}

func getUserIDFromContext(ctx context.Context, log logrus.FieldLogger, action string) (uuid.UUID, error) {
	userID, err := auth.UserIDFromContext(ctx)
	if err != nil {
		log.WithError(err).Warnf("Attempt to %s without authentication", action)
		return uuid.Nil, ErrUnauthorized
	}
	return userID, nil
}

func parseUUID(log logrus.FieldLogger, id string) (uuid.UUID, error) {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		log.WithError(err).Warn("Invalid habit ID")
		return uuid.Nil, ErrInvalidID
	}
	return parsedID, nil
}

// loadOwned returns the habit only when userID owns it. Anything else is
// reported as not found.
func (s *habitService) loadOwned(ctx context.Context, log logrus.FieldLogger, id string, userID uuid.UUID) (*Habit, error) {
	habitID, err := parseUUID(log, id)
	if err != nil {
		return nil, err
	}
	h, err := s.repo.FindByID(ctx, habitID)
	if err != nil {
		if !errors.Is(err, ErrHabitNotFound) {
			log.WithError(err).Error("Failed to load habit")
		}
		return nil, err
	}
	if h.OwnerID != userID {
		log.WithField("habit_id", habitID).Warn("Habit does not belong to the user")
		return nil, ErrHabitNotFound
	}
	return h, nil
}

// regenerate validates h's schedule and replaces its occurrences and
// reminders. A failure leaves h's derived dates unchanged.
func regenerate(log logrus.FieldLogger, h *Habit, v schedule.Validator) error {
	p := h.ScheduleParams()
	if err := v.Validate(p); err != nil {
		log.WithError(err).Warn("Schedule rejected")
		return err
	}
	occ, err := schedule.Generate(p)
	if err != nil {
		log.WithError(err).WithField("habit_id", h.ID).Error("Schedule generation failed")
		return err
	}
	if err := v.ValidateReminders(occ.Reminders, p); err != nil {
		log.WithError(err).Warn("Reminders rejected")
		return err
	}
	h.applyOccurrences(occ)
	return nil
}

func (s *habitService) Create(ctx context.Context, dto CreateHabitDTO) (*Habit, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "create habit")
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(dto.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	repeat := dto.Repeat
	if repeat == "" {
		repeat = schedule.RepeatNone
	}
	frequency := dto.Frequency
	if frequency == 0 {
		frequency = 1
	}

	now := s.now()
	h := &Habit{
		ID:              uuid.New(),
		OwnerID:         userID,
		Name:            name,
		Description:     dto.Description,
		Kind:            KindPersonal,
		Status:          StatusActive,
		StartDate:       dto.StartDate,
		EndDate:         dto.EndDate,
		Repeat:          repeat,
		RepeatDays:      datatypes.JSONSlice[string](dto.RepeatDays),
		MonthlyDates:    datatypes.JSONSlice[int](dto.SelectedMonthlyDates),
		Frequency:       frequency,
		RepeatCount:     dto.RepeatCount,
		ReminderOffsets: datatypes.JSONSlice[int](dto.ReminderOffsets),
		CompletionDates: datatypes.JSONSlice[util.Date]{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := regenerate(log, h, schedule.Validator{Today: util.Today(now)}); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, h); err != nil {
		log.WithError(err).Error("Failed to create habit")
		return nil, err
	}

	s.syncCalendar(ctx, log, h)

	log.WithFields(logrus.Fields{
		"habit_id":    h.ID,
		"occurrences": len(h.RepeatDates),
	}).Info("Habit created successfully")
	return h, nil
}

func (s *habitService) Update(ctx context.Context, id string, dto UpdateHabitDTO) (*Habit, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "update habit")
	if err != nil {
		return nil, err
	}

	h, err := s.loadOwned(ctx, log, id, userID)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		name := strings.TrimSpace(*dto.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		h.Name = name
	}
	if dto.Description != nil {
		h.Description = *dto.Description
	}
	if dto.Status != nil {
		if *dto.Status != StatusActive && *dto.Status != StatusInactive {
			return nil, ErrInvalidStatus
		}
		h.Status = *dto.Status
	}

	changed := applyScheduleUpdate(h, dto)
	if changed {
		v := schedule.Validator{Today: s.today(), AllowPast: dto.StartDate == nil}
		if err := regenerate(log, h, v); err != nil {
			return nil, err
		}
	}

	h.UpdatedAt = s.now()
	if err := s.repo.Save(ctx, h); err != nil {
		log.WithError(err).Error("Failed to update habit")
		return nil, err
	}

	if changed || dto.Name != nil || dto.Description != nil {
		s.syncCalendar(ctx, log, h)
	}

	log.WithFields(logrus.Fields{
		"habit_id":    h.ID,
		"regenerated": changed,
	}).Info("Habit updated successfully")
	return h, nil
}

// applyScheduleUpdate copies schedule-affecting fields from dto onto h and
// reports whether any of them was present.
func applyScheduleUpdate(h *Habit, dto UpdateHabitDTO) bool {
	changed := false
	if dto.StartDate != nil {
		h.StartDate = *dto.StartDate
		changed = true
	}
	if dto.ClearEndDate {
		h.EndDate = nil
		changed = true
	} else if dto.EndDate != nil {
		h.EndDate = dto.EndDate
		changed = true
	}
	if dto.Repeat != nil {
		h.Repeat = *dto.Repeat
		changed = true
	}
	if dto.RepeatDays != nil {
		h.RepeatDays = datatypes.JSONSlice[string](*dto.RepeatDays)
		changed = true
	}
	if dto.SelectedMonthlyDates != nil {
		h.MonthlyDates = datatypes.JSONSlice[int](*dto.SelectedMonthlyDates)
		changed = true
	}
	if dto.Frequency != nil {
		h.Frequency = *dto.Frequency
		changed = true
	}
	if dto.ClearRepeatCount {
		h.RepeatCount = nil
		changed = true
	} else if dto.RepeatCount != nil {
		h.RepeatCount = dto.RepeatCount
		changed = true
	}
	if dto.ReminderOffsets != nil {
		h.ReminderOffsets = datatypes.JSONSlice[int](*dto.ReminderOffsets)
		changed = true
	}
	return changed
}

func (s *habitService) Get(ctx context.Context, id string) (*Habit, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "get habit")
	if err != nil {
		return nil, err
	}
	return s.loadOwned(ctx, log, id, userID)
}

func (s *habitService) List(ctx context.Context) ([]*Habit, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "list habits")
	if err != nil {
		return nil, err
	}

	habits, err := s.repo.FindAllByOwner(ctx, userID)
	if err != nil {
		log.WithError(err).Error("Failed to list habits")
		return nil, err
	}
	return habits, nil
}

func (s *habitService) Delete(ctx context.Context, id string) error {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "delete habit")
	if err != nil {
		return err
	}

	h, err := s.loadOwned(ctx, log, id, userID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, h.ID); err != nil {
		log.WithError(err).Error("Failed to delete habit")
		return err
	}

	if h.CalendarEventID != "" && s.calendar != nil {
		if err := s.calendar.RemoveHabit(ctx, userID, h.CalendarEventID); err != nil {
			log.WithError(err).Warnf("Failed to remove habit %s from Google Calendar", h.ID)
		}
	}

	log.WithField("habit_id", h.ID).Info("Habit deleted successfully")
	return nil
}

// DeleteOccurrence drops a single day from the schedule and the completion
// record. Reminders are re-derived from the remaining occurrences.
func (s *habitService) DeleteOccurrence(ctx context.Context, id string, date util.Date) (*Habit, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "delete occurrence")
	if err != nil {
		return nil, err
	}

	h, err := s.loadOwned(ctx, log, id, userID)
	if err != nil {
		return nil, err
	}

	repeatDates, fromSchedule := util.RemoveDate(h.RepeatDates, date)
	completions, fromCompletions := util.RemoveDate(h.CompletionDates, date)
	if !fromSchedule && !fromCompletions {
		return nil, ErrOccurrenceNotFound
	}

	h.RepeatDates = datatypes.JSONSlice[util.Date](repeatDates)
	h.Reminders = datatypes.JSONSlice[util.Date](schedule.ReminderDates(repeatDates, h.ScheduleParams()))
	h.CompletionDates = datatypes.JSONSlice[util.Date](completions)
	h.refreshCompletion(s.today())
	h.UpdatedAt = s.now()

	if err := s.repo.Save(ctx, h); err != nil {
		log.WithError(err).Error("Failed to delete occurrence")
		return nil, err
	}

	if fromSchedule {
		s.syncCalendar(ctx, log, h)
	}

	log.WithFields(logrus.Fields{
		"habit_id": h.ID,
		"date":     date.String(),
	}).Info("Occurrence deleted")
	return h, nil
}

func (s *habitService) Track(ctx context.Context, id string, dto TrackDTO) (*TrackResult, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "track habit")
	if err != nil {
		return nil, err
	}

	h, err := s.loadOwned(ctx, log, id, userID)
	if err != nil {
		return nil, err
	}

	today := s.today()
	target := today
	if dto.Date != nil && !dto.Date.IsZero() {
		target = *dto.Date
	}
	completed := true
	if dto.Completed != nil {
		completed = *dto.Completed
	}

	changed, err := TrackCompletion(h, target, completed, today)
	if err != nil {
		log.WithField("date", target.String()).Warn("Rejected future completion")
		return nil, err
	}

	h.UpdatedAt = s.now()
	if err := s.repo.Save(ctx, h); err != nil {
		log.WithError(err).Error("Failed to save completion")
		return nil, err
	}

	stats, err := s.countStats(ctx, userID)
	if err != nil {
		log.WithError(err).Error("Failed to count habit stats")
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"habit_id":  h.ID,
		"date":      target.String(),
		"completed": completed,
		"changed":   changed,
		"streak":    h.Streak,
	}).Info("Habit tracked")
	return &TrackResult{Habit: h, Stats: *stats}, nil
}

func (s *habitService) QueryRange(ctx context.Context, start, end util.Date) ([]HabitInRange, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "query habits in range")
	if err != nil {
		return nil, err
	}
	if start.IsZero() || end.IsZero() || start.After(end) {
		return nil, ErrInvalidRange
	}

	habits, err := s.repo.FindInRange(ctx, userID, start, end)
	if err != nil {
		log.WithError(err).Error("Failed to query habits in range")
		return nil, err
	}

	out := make([]HabitInRange, 0, len(habits))
	for _, h := range habits {
		if annotated, ok := AnnotateRange(h, start, end); ok {
			out = append(out, annotated)
		}
	}
	return out, nil
}

func (s *habitService) Stats(ctx context.Context) (*Stats, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "get habit stats")
	if err != nil {
		return nil, err
	}
	stats, err := s.countStats(ctx, userID)
	if err != nil {
		log.WithError(err).Error("Failed to count habit stats")
		return nil, err
	}
	return stats, nil
}

func (s *habitService) countStats(ctx context.Context, userID uuid.UUID) (*Stats, error) {
	counts, err := s.repo.CountByStatus(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats := &Stats{
		Active:    counts[StatusActive],
		Inactive:  counts[StatusInactive],
		Completed: counts[StatusCompleted],
		Pending:   counts[StatusPending],
	}
	for _, n := range counts {
		stats.Total += n
	}
	return stats, nil
}

// syncCalendar mirrors the schedule to Google Calendar. Failures are
// logged and never fail the request.
func (s *habitService) syncCalendar(ctx context.Context, log logrus.FieldLogger, h *Habit) {
	if s.calendar == nil {
		return
	}
	eventID, err := s.calendar.SyncHabit(ctx, h.OwnerID, h.toCalendarHabit())
	if err != nil {
		log.WithError(err).Warnf("Failed to sync habit %s to Google Calendar", h.ID)
		return
	}
	if eventID == h.CalendarEventID {
		return
	}
	h.CalendarEventID = eventID
	if err := s.repo.Save(ctx, h); err != nil {
		log.WithError(err).Error("Failed to update habit with Google Calendar Event ID")
	}
}
