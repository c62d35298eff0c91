package habit

import (
	"gorm.io/datatypes"

	util "github.com/Salsabil-210/comhabits/internal/utils"
)

// TrackCompletion marks or unmarks target on h and re-derives streak and
// lastCompleted. It reports whether the completion set changed. A target
// after today is rejected and h is left untouched.
func TrackCompletion(h *Habit, target util.Date, completed bool, today util.Date) (bool, error) {
	if target.After(today) {
		return false, ErrFutureDate
	}

	changed := false
	has := util.ContainsDate(h.CompletionDates, target)
	switch {
	case completed && !has:
		h.CompletionDates = append(h.CompletionDates, target)
		changed = true
	case !completed && has:
		remaining, _ := util.RemoveDate(h.CompletionDates, target)
		h.CompletionDates = datatypes.JSONSlice[util.Date](remaining)
		changed = true
	}

	h.refreshCompletion(today)

	if target.Equal(today) && h.Status != StatusPending {
		if completed {
			h.Status = StatusCompleted
		} else {
			h.Status = StatusActive
		}
	}

	return changed, nil
}

// AnnotateRange computes which days of [start, end] h shows up on. Scheduled
// dates win; a habit without any falls back to its completions. The second
// result is false when h has neither inside the window.
func AnnotateRange(h *Habit, start, end util.Date) (HabitInRange, bool) {
	scheduled := util.InRange(h.RepeatDates, start, end)
	completed := util.InRange(h.CompletionDates, start, end)

	out := HabitInRange{
		Habit:                  h,
		IsRepeated:             len(h.RepeatDates) > 0,
		CompletionDatesInRange: nonNil(completed),
	}
	switch {
	case len(scheduled) > 0:
		out.DatesInRange = scheduled
	case len(completed) > 0:
		out.DatesInRange = completed
	default:
		return HabitInRange{}, false
	}
	return out, true
}

func nonNil(dates []util.Date) []util.Date {
	if dates == nil {
		return []util.Date{}
	}
	return dates
}
