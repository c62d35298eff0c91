package habit

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	googlecalendar "github.com/Salsabil-210/comhabits/internal/google_calendar"
	"github.com/Salsabil-210/comhabits/internal/schedule"
	util "github.com/Salsabil-210/comhabits/internal/utils"
)

type Habit struct {
	ID              uuid.UUID                      `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID         uuid.UUID                      `gorm:"type:uuid;not null;index" json:"ownerId"`
	CanonicalID     *uuid.UUID                     `gorm:"type:uuid;index" json:"canonicalId,omitempty"`
	Name            string                         `gorm:"not null" json:"name"`
	Description     string                         `json:"description,omitempty"`
	Kind            Kind                           `gorm:"type:varchar(16);not null;default:personal" json:"kind"`
	Status          Status                         `gorm:"type:varchar(16);not null;default:active;index" json:"status"`
	StartDate       util.Date                      `gorm:"type:date;not null" json:"startDate"`
	EndDate         *util.Date                     `gorm:"type:date" json:"endDate,omitempty"`
	Repeat          schedule.RepeatRule            `gorm:"type:varchar(16);not null;default:none" json:"repeat"`
	RepeatDays      datatypes.JSONSlice[string]    `json:"repeatDays"`
	MonthlyDates    datatypes.JSONSlice[int]       `json:"selectedMonthlyDates"`
	Frequency       int                            `gorm:"not null;default:1" json:"frequency"`
	RepeatCount     *int                           `json:"repeatCount,omitempty"`
	ReminderOffsets datatypes.JSONSlice[int]       `json:"reminderOffsets"`
	RepeatDates     datatypes.JSONSlice[util.Date] `json:"repeatDates"`
	Reminders       datatypes.JSONSlice[util.Date] `json:"reminders"`
	CompletionDates datatypes.JSONSlice[util.Date] `json:"completionDates"`
	Streak          int                            `gorm:"not null;default:0" json:"streak"`
	LastCompleted   *util.Date                     `gorm:"type:date" json:"lastCompleted"`
	CalendarEventID string                         `json:"-"`
	SharedWith      []Participant                  `gorm:"foreignKey:HabitID" json:"sharedWith,omitempty"`
	CreatedAt       time.Time                      `json:"createdAt"`
	UpdatedAt       time.Time                      `json:"updatedAt"`
	DeletedAt       gorm.DeletedAt                 `gorm:"index" json:"-"`
}

type Participant struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	HabitID     uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_habit_participant" json:"habitId"`
	UserID      uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_habit_participant" json:"participantUserId"`
	Status      ParticipantStatus `gorm:"type:varchar(16);not null" json:"status"`
	CopyHabitID *uuid.UUID        `gorm:"type:uuid" json:"copyHabitId,omitempty"`
	InvitedAt   time.Time         `json:"invitedAt"`
	RespondedAt *time.Time        `json:"respondedAt,omitempty"`
	LeftAt      *time.Time        `json:"leftAt,omitempty"`
}

func (Participant) TableName() string {
	return "habit_participants"
}

// ParticipantCompletion is one participant's status for one day of a
// shared habit. It is separate from the owner's completion dates.
type ParticipantCompletion struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	HabitID   uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_participant_day" json:"habitId"`
	UserID    uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_participant_day" json:"participantUserId"`
	Date      util.Date        `gorm:"type:date;not null;uniqueIndex:idx_participant_day" json:"date"`
	Status    CompletionStatus `gorm:"type:varchar(16);not null" json:"status"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

func (ParticipantCompletion) TableName() string {
	return "habit_participant_completions"
}

func (h *Habit) ScheduleParams() schedule.Params {
	return schedule.Params{
		StartDate:       h.StartDate,
		EndDate:         h.EndDate,
		Repeat:          h.Repeat,
		RepeatDays:      h.RepeatDays,
		MonthlyDates:    h.MonthlyDates,
		Frequency:       h.Frequency,
		RepeatCount:     h.RepeatCount,
		ReminderOffsets: h.ReminderOffsets,
	}
}

func (h *Habit) applyOccurrences(o schedule.Occurrences) {
	h.RepeatDates = datatypes.JSONSlice[util.Date](o.RepeatDates)
	h.Reminders = datatypes.JSONSlice[util.Date](o.Reminders)
}

// refreshCompletion re-derives streak and lastCompleted from the
// completion dates.
func (h *Habit) refreshCompletion(today util.Date) {
	dates := util.SortedUnique(h.CompletionDates)
	h.CompletionDates = datatypes.JSONSlice[util.Date](dates)
	h.Streak = schedule.ComputeStreak(dates, today)
	h.LastCompleted = util.MaxDate(dates)
}

func (h *Habit) IsCopy() bool {
	return h.CanonicalID != nil
}

func (h *Habit) toCalendarHabit() *googlecalendar.CalendarHabit {
	return &googlecalendar.CalendarHabit{
		ID:          h.ID,
		Name:        h.Name,
		Description: h.Description,
		Occurrences: h.RepeatDates,
		EventID:     h.CalendarEventID,
	}
}
