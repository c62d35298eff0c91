package habit

import (
	"github.com/google/uuid"

	"github.com/Salsabil-210/comhabits/internal/schedule"
	util "github.com/Salsabil-210/comhabits/internal/utils"
)

type CreateHabitDTO struct {
	Name                 string              `json:"name"`
	Description          string              `json:"description"`
	StartDate            util.Date           `json:"startDate"`
	EndDate              *util.Date          `json:"endDate"`
	Repeat               schedule.RepeatRule `json:"repeat"`
	RepeatDays           []string            `json:"repeatDays"`
	SelectedMonthlyDates []int               `json:"selectedMonthlyDates"`
	Frequency            int                 `json:"frequency"`
	RepeatCount          *int                `json:"repeatCount"`
	ReminderOffsets      []int               `json:"reminderOffsets"`
}

// UpdateHabitDTO is a partial update; nil fields are left untouched.
type UpdateHabitDTO struct {
	Name                 *string              `json:"name"`
	Description          *string              `json:"description"`
	Status               *Status              `json:"status"`
	StartDate            *util.Date           `json:"startDate"`
	EndDate              *util.Date           `json:"endDate"`
	ClearEndDate         bool                 `json:"clearEndDate"`
	Repeat               *schedule.RepeatRule `json:"repeat"`
	RepeatDays           *[]string            `json:"repeatDays"`
	SelectedMonthlyDates *[]int               `json:"selectedMonthlyDates"`
	Frequency            *int                 `json:"frequency"`
	RepeatCount          *int                 `json:"repeatCount"`
	ClearRepeatCount     bool                 `json:"clearRepeatCount"`
	ReminderOffsets      *[]int               `json:"reminderOffsets"`
}

type TrackDTO struct {
	Date      *util.Date `json:"date"`
	Completed *bool      `json:"completed"`
}

type ShareDTO struct {
	ParticipantIDs []uuid.UUID `json:"participantIds"`
}

type RespondDTO struct {
	Accept bool `json:"accept"`
}

type ParticipantTrackDTO struct {
	Date   *util.Date       `json:"date"`
	Status CompletionStatus `json:"status"`
}

type Stats struct {
	Total     int64 `json:"total"`
	Active    int64 `json:"active"`
	Inactive  int64 `json:"inactive"`
	Completed int64 `json:"completed"`
	Pending   int64 `json:"pending"`
}

type TrackResult struct {
	Habit *Habit `json:"habit"`
	Stats Stats  `json:"stats"`
}

type HabitInRange struct {
	*Habit
	DatesInRange           []util.Date `json:"datesInRange"`
	IsRepeated             bool        `json:"isRepeated"`
	CompletionDatesInRange []util.Date `json:"completionDatesInRange"`
}

type ParticipantProgress struct {
	Status        ParticipantStatus `json:"status"`
	Complete      int               `json:"complete"`
	Incomplete    int               `json:"incomplete"`
	Skipped       int               `json:"skipped"`
	LastCompleted *util.Date        `json:"lastCompleted"`
}
