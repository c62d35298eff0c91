package schedule

import (
	"time"

	util "github.com/Salsabil-210/comhabits/internal/utils"
)

// Generate expands a schedule into its occurrence and reminder dates.
// Both lists are ascending and free of duplicates.
func Generate(p Params) (Occurrences, error) {
	if p.StartDate.IsZero() {
		return Occurrences{}, &ComputationError{Reason: "start date is required"}
	}

	var dates []util.Date
	switch p.rule() {
	case RepeatNone:
		if p.StartDate.Between(p.StartDate, p.EndDate) {
			dates = []util.Date{p.StartDate}
		}
	case RepeatDaily:
		dates = dailyDates(p)
	case RepeatWeekly:
		days := parseWeekdays(p.RepeatDays)
		if len(days) == 0 {
			return Occurrences{}, &ComputationError{Reason: "weekly rule has no valid weekdays"}
		}
		dates = weeklyDates(p, days)
	case RepeatMonthly:
		if len(p.MonthlyDates) == 0 {
			return Occurrences{}, &ComputationError{Reason: "monthly rule has no selected dates"}
		}
		dates = monthlyDates(p)
	default:
		return Occurrences{}, &ComputationError{Reason: "unknown repeat rule " + string(p.Repeat)}
	}

	repeatDates := util.SortedUnique(dates)
	return Occurrences{
		RepeatDates: repeatDates,
		Reminders:   ReminderDates(repeatDates, p),
	}, nil
}

func dailyDates(p Params) []util.Date {
	limit := MaxDailyOccurrences
	if n := p.count(); n > 0 {
		if n < limit {
			limit = n
		}
	} else if p.EndDate == nil {
		limit = DailyHorizon
	}

	dates := make([]util.Date, 0, limit)
	for i := 0; i < limit; i++ {
		d := p.StartDate.AddDays(i)
		if p.EndDate != nil && d.After(*p.EndDate) {
			break
		}
		dates = append(dates, d)
	}
	return dates
}

// weeklyDates counts repeatCount in week blocks, not dates. A selected
// weekday equal to the start date's weekday occurs in block zero.
func weeklyDates(p Params, days []time.Weekday) []util.Date {
	firsts := make([]util.Date, 0, len(days))
	start := int(p.StartDate.Weekday())
	for _, wd := range days {
		offset := (int(wd) - start + 7) % 7
		firsts = append(firsts, p.StartDate.AddDays(offset))
	}

	limit := MaxWeeklyBlocks
	if n := p.count(); n > 0 {
		if n < limit {
			limit = n
		}
	} else if p.EndDate == nil {
		limit = WeeklyHorizonBlocks
	}

	step := 7 * p.interval()
	var dates []util.Date
	for block, k := 0, 0; block < limit; k++ {
		contributed := 0
		for _, first := range firsts {
			d := first.AddDays(step * k)
			if p.EndDate != nil && d.After(*p.EndDate) {
				continue
			}
			dates = append(dates, d)
			contributed++
		}
		if contributed == 0 {
			break
		}
		block++
	}
	return dates
}

// monthlyDates lets each selected day accumulate its own occurrences.
func monthlyDates(p Params) []util.Date {
	count := p.count()
	if count == 0 {
		count = DefaultMonthlyCount
	}
	step := p.interval()

	var dates []util.Date
	for _, day := range p.MonthlyDates {
		if day < 1 || day > 31 {
			continue
		}
		emitted := 0
		for k := 0; emitted < count && k*step < MaxMonthlySpan; k++ {
			d := monthlyDate(p.StartDate, day, step, k)
			if d.Before(p.StartDate) {
				continue
			}
			if p.EndDate != nil && d.After(*p.EndDate) {
				break
			}
			dates = append(dates, d)
			emitted++
		}
	}
	return dates
}

// ReminderDates derives reminder days for occurrences, kept only inside the
// habit's date range.
func ReminderDates(occurrences []util.Date, p Params) []util.Date {
	var reminders []util.Date
	for _, d := range occurrences {
		for _, off := range p.ReminderOffsets {
			r := d.AddDays(-off)
			if r.Between(p.StartDate, p.EndDate) {
				reminders = append(reminders, r)
			}
		}
	}
	return util.SortedUnique(reminders)
}
