package habit

import (
	"time"

	"kaizen/internal/model"
)

// Streak counts consecutive completed days ending at today, or at yesterday
// when today is not yet marked. A single missed day therefore does not reset
// the count until a second consecutive miss.
func Streak(history map[string]bool, today time.Time) int {
	if len(history) == 0 {
		return 0
	}

	start := today
	if !history[start.Format(model.DayKey)] {
		start = start.AddDate(0, 0, -1)
		if !history[start.Format(model.DayKey)] {
			return 0
		}
	}

	streak := 0
	for day := start; history[day.Format(model.DayKey)]; day = day.AddDate(0, 0, -1) {
		streak++
	}
	return streak
}
