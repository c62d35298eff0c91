package schedule

import (
	util "github.com/Salsabil-210/comhabits/internal/utils"
)

type Validator struct {
	Today util.Date
	// AllowPast skips the "not in the past" checks. Updates that keep an
	// already started habit's start date use it.
	AllowPast bool
}

func Validate(p Params, today util.Date) error {
	return Validator{Today: today}.Validate(p)
}

func (v Validator) Validate(p Params) error {
	if p.StartDate.IsZero() {
		return invalid("startDate is required")
	}
	if !v.AllowPast && p.StartDate.Before(v.Today) {
		return invalid("startDate cannot be in the past")
	}
	if p.EndDate != nil && p.EndDate.Before(p.StartDate) {
		return invalid("endDate cannot be before startDate")
	}
	// Zero or absent frequency means every period.
	if p.Frequency < 0 {
		return invalid("frequency cannot be negative")
	}

	seenOffsets := make(map[int]bool, len(p.ReminderOffsets))
	for _, off := range p.ReminderOffsets {
		if off < MinReminderOffset || off > MaxReminderOffset {
			return invalid("reminder offsets must be between %d and %d days", MinReminderOffset, MaxReminderOffset)
		}
		if seenOffsets[off] {
			return invalid("reminder offsets must be unique")
		}
		seenOffsets[off] = true
	}

	var err error
	switch p.rule() {
	case RepeatNone, RepeatDaily:
	case RepeatWeekly:
		err = v.validateWeekly(p)
	case RepeatMonthly:
		err = v.validateMonthly(p)
	default:
		err = invalid("unknown repeat rule %q", p.Repeat)
	}
	if err != nil {
		return err
	}
	return validateSpan(p)
}

// validateSpan rejects bounded rules whose expansion would hit the hard
// ceilings, so a stored schedule always reaches its repeatCount or endDate.
func validateSpan(p Params) error {
	count := p.count()

	switch p.rule() {
	case RepeatDaily:
		n := count
		if p.EndDate != nil {
			span := daysBetween(p.StartDate, *p.EndDate) + 1
			if n <= 0 || span < n {
				n = span
			}
		}
		if n > MaxDailyOccurrences {
			return invalid("daily schedule needs %d occurrences, more than the limit of %d", n, MaxDailyOccurrences)
		}
	case RepeatWeekly:
		n := count
		if p.EndDate != nil {
			blocks := weeklyBlocksUntil(p, *p.EndDate)
			if n <= 0 || blocks < n {
				n = blocks
			}
		}
		if n > MaxWeeklyBlocks {
			return invalid("weekly schedule needs %d weeks, more than the limit of %d", n, MaxWeeklyBlocks)
		}
	case RepeatMonthly:
		if count > 0 && count*p.interval() > MaxMonthlySpan {
			return invalid("monthly schedule spans %d months, more than the limit of %d", count*p.interval(), MaxMonthlySpan)
		}
	}
	return nil
}

// weeklyBlocksUntil counts the week blocks holding at least one date on or
// before end.
func weeklyBlocksUntil(p Params, end util.Date) int {
	days := parseWeekdays(p.RepeatDays)
	if len(days) == 0 {
		return 0
	}
	start := int(p.StartDate.Weekday())
	earliest := 7
	for _, wd := range days {
		if off := (int(wd) - start + 7) % 7; off < earliest {
			earliest = off
		}
	}
	gap := daysBetween(p.StartDate.AddDays(earliest), end)
	if gap < 0 {
		return 0
	}
	return gap/(7*p.interval()) + 1
}

func daysBetween(from, to util.Date) int {
	return int(to.Sub(from.Time).Hours() / 24)
}

func (v Validator) validateWeekly(p Params) error {
	if len(p.RepeatDays) == 0 {
		return invalid("repeatDays is required for weekly habits")
	}
	for _, name := range p.RepeatDays {
		if _, ok := ParseWeekday(name); !ok {
			return invalid("invalid weekday %q", name)
		}
	}
	return nil
}

func (v Validator) validateMonthly(p Params) error {
	if len(p.MonthlyDates) == 0 {
		return invalid("selectedMonthlyDates must be a non-empty array")
	}

	seenDays := make(map[int]bool, len(p.MonthlyDates))
	seenDates := make(map[string]bool, len(p.MonthlyDates))
	for _, day := range p.MonthlyDates {
		if day < 1 || day > 31 {
			return invalid("monthly date %d must be between 1 and 31", day)
		}
		if seenDays[day] {
			return invalid("selectedMonthlyDates must be unique")
		}
		seenDays[day] = true

		resolved := firstMonthlyDate(p.StartDate, day, p.interval())
		key := resolved.String()
		if seenDates[key] {
			return invalid("monthly dates %v resolve to the same day %s", p.MonthlyDates, key)
		}
		seenDates[key] = true

		if !resolved.Between(p.StartDate, p.EndDate) {
			return invalid("monthly date %d resolves to %s, outside the habit's date range", day, key)
		}
		if !v.AllowPast && resolved.Before(v.Today) {
			return invalid("monthly date %d resolves to %s, which is in the past", day, key)
		}
	}
	return nil
}

// ValidateReminders checks reminder dates after they have been generated.
func (v Validator) ValidateReminders(reminders []util.Date, p Params) error {
	for _, r := range reminders {
		if !r.Between(p.StartDate, p.EndDate) {
			return invalid("reminder %s falls outside the habit's date range", r)
		}
		if !v.AllowPast && r.Before(v.Today) {
			return invalid("reminder %s is in the past", r)
		}
	}
	return nil
}
