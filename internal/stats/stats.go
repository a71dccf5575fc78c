// Package stats derives the read-only numbers behind the stats window and
// the activity heat-map. Everything here is pure; the views format it.
package stats

import (
	"time"

	"kaizen/internal/model"
)

// Summary is the headline block of the stats window.
type Summary struct {
	TotalHabits      int
	CompletedToday   int
	CompletionPct    int
	LongestStreak    int
	AverageStreak    float64
	TotalCompletions int
}

// Summarize computes the habit summary for the given day.
func Summarize(habits []model.Habit, today time.Time) Summary {
	s := Summary{TotalHabits: len(habits)}

	streakSum := 0
	for _, h := range habits {
		if h.CompletedOn(today) {
			s.CompletedToday++
		}
		if h.Streak > s.LongestStreak {
			s.LongestStreak = h.Streak
		}
		streakSum += h.Streak
		s.TotalCompletions += h.TotalCompletions()
	}

	if s.TotalHabits > 0 {
		s.CompletionPct = int(float64(s.CompletedToday)/float64(s.TotalHabits)*100 + 0.5)
		s.AverageStreak = float64(streakSum) / float64(s.TotalHabits)
	}
	return s
}

// DayCount is one bar of the seven-day activity chart.
type DayCount struct {
	Key   string
	Label string // MON, TUE, ...
	Count int
}

// LastSevenDays counts habit completions per day, oldest first, ending
// today.
func LastSevenDays(habits []model.Habit, today time.Time) []DayCount {
	out := make([]DayCount, 0, 7)
	for i := 6; i >= 0; i-- {
		d := today.AddDate(0, 0, -i)
		count := 0
		for _, h := range habits {
			if h.CompletedOn(d) {
				count++
			}
		}
		out = append(out, DayCount{Key: d.Format(model.DayKey), Label: toUpper3(d.Format("Mon")), Count: count})
	}
	return out
}

func toUpper3(s string) string {
	b := []byte(s)
	for i := range b {
		if b[i] >= 'a' && b[i] <= 'z' {
			b[i] -= 'a' - 'A'
		}
	}
	return string(b)
}

// CompletionsByDay aggregates completed tasks by the day they were
// finished. Tasks never marked done carry no completion time and are
// skipped.
func CompletionsByDay(tasks []model.Task, loc *time.Location) map[string]int {
	counts := make(map[string]int)
	for _, t := range tasks {
		if !t.IsCompleted || t.CompletedAt == nil {
			continue
		}
		counts[t.CompletedAt.In(loc).Format(model.DayKey)]++
	}
	return counts
}

// Cell is one square of the month grid. Leading cells before the first of
// the month are empty so day one lands on its weekday column.
type Cell struct {
	Empty bool
	Day   int
	Key   string
	Count int
}

// MonthGrid lays out the heat-map for the month containing ref, Sunday
// first.
func MonthGrid(ref time.Time, counts map[string]int) []Cell {
	year, month, _ := ref.Date()
	first := time.Date(year, month, 1, 0, 0, 0, 0, ref.Location())
	days := first.AddDate(0, 1, -1).Day()

	grid := make([]Cell, 0, int(first.Weekday())+days)
	for i := 0; i < int(first.Weekday()); i++ {
		grid = append(grid, Cell{Empty: true})
	}
	for day := 1; day <= days; day++ {
		key := time.Date(year, month, day, 0, 0, 0, 0, ref.Location()).Format(model.DayKey)
		grid = append(grid, Cell{Day: day, Key: key, Count: counts[key]})
	}
	return grid
}

// MonthTotal sums the grid's counts.
func MonthTotal(grid []Cell) int {
	total := 0
	for _, c := range grid {
		total += c.Count
	}
	return total
}

// Intensity maps a day's count to one of seven shading levels.
func Intensity(count int) int {
	switch {
	case count == 0:
		return 0
	case count == 1:
		return 1
	case count <= 3:
		return 2
	case count <= 5:
		return 3
	case count <= 8:
		return 4
	case count <= 10:
		return 5
	default:
		return 6
	}
}

// PrevMonth steps the heat-map view back one month.
func PrevMonth(ref time.Time) time.Time {
	year, month, _ := ref.Date()
	return time.Date(year, month-1, 1, 0, 0, 0, 0, ref.Location())
}

// NextMonth steps forward, clamped so the view never passes the current
// month.
func NextMonth(ref, now time.Time) time.Time {
	year, month, _ := ref.Date()
	next := time.Date(year, month+1, 1, 0, 0, 0, 0, ref.Location())
	if next.After(now) {
		return ref
	}
	return next
}

// CanGoNext reports whether NextMonth would advance.
func CanGoNext(ref, now time.Time) bool {
	year, month, _ := ref.Date()
	return !time.Date(year, month+1, 1, 0, 0, 0, 0, ref.Location()).After(now)
}
