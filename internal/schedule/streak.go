package schedule

import (
	util "github.com/Salsabil-210/comhabits/internal/utils"
)

// ComputeStreak counts consecutive completed days ending today or yesterday.
// Anything older than yesterday as the latest completion yields zero.
func ComputeStreak(completions []util.Date, today util.Date) int {
	sorted := util.SortedUnique(completions)
	if len(sorted) == 0 {
		return 0
	}

	latest := sorted[len(sorted)-1]
	var anchor util.Date
	switch {
	case latest.Equal(today):
		anchor = today
	case latest.Equal(today.AddDays(-1)):
		anchor = latest
	default:
		return 0
	}

	streak := 1
	for i := len(sorted) - 2; i >= 0; i-- {
		d := sorted[i]
		if d.Equal(anchor) {
			continue
		}
		if !d.Equal(anchor.AddDays(-1)) {
			break
		}
		streak++
		anchor = d
	}
	return streak
}
