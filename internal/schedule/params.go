package schedule

import (
	"strings"
	"time"

	util "github.com/Salsabil-210/comhabits/internal/utils"
)

type RepeatRule string

const (
	RepeatNone    RepeatRule = "none"
	RepeatDaily   RepeatRule = "daily"
	RepeatWeekly  RepeatRule = "weekly"
	RepeatMonthly RepeatRule = "monthly"
)

var AllRepeatRules = []RepeatRule{
	RepeatNone,
	RepeatDaily,
	RepeatWeekly,
	RepeatMonthly,
}

func (r RepeatRule) IsValid() bool {
	for _, v := range AllRepeatRules {
		if r == v {
			return true
		}
	}
	return false
}

const (
	MinReminderOffset = 1
	MaxReminderOffset = 5

	// Horizons apply when neither repeatCount nor endDate bounds a rule.
	DailyHorizon        = 365
	WeeklyHorizonBlocks = 52

	// Hard ceilings guarantee termination for any input.
	MaxDailyOccurrences = 3660
	MaxWeeklyBlocks     = 520
	MaxMonthlySpan      = 1000

	DefaultMonthlyCount = 5
)

// Params is the schedule-affecting part of a habit definition.
type Params struct {
	StartDate       util.Date
	EndDate         *util.Date
	Repeat          RepeatRule
	RepeatDays      []string
	MonthlyDates    []int
	Frequency       int
	RepeatCount     *int
	ReminderOffsets []int
}

type Occurrences struct {
	RepeatDates []util.Date `json:"repeatDates"`
	Reminders   []util.Date `json:"reminders"`
}

func (p Params) rule() RepeatRule {
	if p.Repeat == "" {
		return RepeatNone
	}
	return p.Repeat
}

func (p Params) interval() int {
	if p.Frequency < 1 {
		return 1
	}
	return p.Frequency
}

func (p Params) count() int {
	if p.RepeatCount == nil || *p.RepeatCount <= 0 {
		return 0
	}
	return *p.RepeatCount
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sun":       time.Sunday,
	"mon":       time.Monday,
	"tue":       time.Tuesday,
	"wed":       time.Wednesday,
	"thu":       time.Thursday,
	"fri":       time.Friday,
	"sat":       time.Saturday,
}

// ParseWeekday accepts full or three-letter English names in any case.
func ParseWeekday(name string) (time.Weekday, bool) {
	wd, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
	return wd, ok
}

func parseWeekdays(names []string) []time.Weekday {
	seen := make(map[time.Weekday]bool, len(names))
	var out []time.Weekday
	for _, n := range names {
		wd, ok := ParseWeekday(n)
		if !ok || seen[wd] {
			continue
		}
		seen[wd] = true
		out = append(out, wd)
	}
	return out
}

// monthlyDate resolves day against the month step*k months after start.
// Days past the end of that month roll into the next month.
func monthlyDate(start util.Date, day, step, k int) util.Date {
	return util.NewDate(start.Year(), start.Month()+time.Month(step*k), day)
}

func firstMonthlyDate(start util.Date, day, step int) util.Date {
	d := monthlyDate(start, day, step, 0)
	if d.Before(start) {
		d = monthlyDate(start, day, step, 1)
	}
	return d
}
