package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kaizen/internal/model"
)

var statsToday = time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

func key(offset int) string {
	return statsToday.AddDate(0, 0, offset).Format(model.DayKey)
}

func TestSummarize(t *testing.T) {
	habits := []model.Habit{
		{
			Name:   "Read",
			Streak: 3,
			CompletionHistory: map[string]bool{
				key(0): true, key(-1): true, key(-2): true,
			},
		},
		{
			Name:   "Run",
			Streak: 1,
			CompletionHistory: map[string]bool{
				key(-1): true,
			},
		},
	}

	s := Summarize(habits, statsToday)
	assert.Equal(t, 2, s.TotalHabits)
	assert.Equal(t, 1, s.CompletedToday)
	assert.Equal(t, 50, s.CompletionPct)
	assert.Equal(t, 3, s.LongestStreak)
	assert.Equal(t, 2.0, s.AverageStreak)
	assert.Equal(t, 4, s.TotalCompletions)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, statsToday)
	assert.Zero(t, s.TotalHabits)
	assert.Zero(t, s.CompletionPct)
	assert.Zero(t, s.AverageStreak)
}

func TestLastSevenDays(t *testing.T) {
	habits := []model.Habit{
		{CompletionHistory: map[string]bool{key(0): true, key(-6): true}},
		{CompletionHistory: map[string]bool{key(0): true, key(-7): true}},
	}

	days := LastSevenDays(habits, statsToday)
	require.Len(t, days, 7)
	assert.Equal(t, key(-6), days[0].Key)
	assert.Equal(t, 1, days[0].Count, "day -7 is out of range")
	assert.Equal(t, key(0), days[6].Key)
	assert.Equal(t, 2, days[6].Count)
	assert.Equal(t, "FRI", days[6].Label)
}

func TestCompletionsByDay(t *testing.T) {
	done := statsToday.Add(-2 * time.Hour)
	earlier := statsToday.AddDate(0, 0, -1)
	tasks := []model.Task{
		{ID: "a", IsCompleted: true, CompletedAt: &done},
		{ID: "b", IsCompleted: true, CompletedAt: &done},
		{ID: "c", IsCompleted: true, CompletedAt: &earlier},
		{ID: "d", IsCompleted: false},
		{ID: "e", IsCompleted: true}, // legacy row without a timestamp
	}

	counts := CompletionsByDay(tasks, time.UTC)
	assert.Equal(t, 2, counts[key(0)])
	assert.Equal(t, 1, counts[key(-1)])
	assert.Len(t, counts, 2)
}

func TestMonthGridLeadingBlanks(t *testing.T) {
	// August 2026 starts on a Saturday.
	grid := MonthGrid(statsToday, map[string]int{"2026-08-01": 4})

	require.Len(t, grid, 6+31)
	for i := 0; i < 6; i++ {
		assert.True(t, grid[i].Empty)
	}
	assert.Equal(t, 1, grid[6].Day)
	assert.Equal(t, 4, grid[6].Count)
	assert.Equal(t, 31, grid[len(grid)-1].Day)
	assert.Equal(t, 4, MonthTotal(grid))
}

func TestIntensityBuckets(t *testing.T) {
	cases := map[int]int{0: 0, 1: 1, 2: 2, 3: 2, 4: 3, 5: 3, 6: 4, 8: 4, 9: 5, 10: 5, 11: 6, 40: 6}
	for count, want := range cases {
		assert.Equal(t, want, Intensity(count), "count %d", count)
	}
}

func TestMonthNavigationClampsAtCurrentMonth(t *testing.T) {
	view := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	view = NextMonth(view, statsToday)
	assert.Equal(t, time.August, view.Month())

	assert.False(t, CanGoNext(view, statsToday))
	again := NextMonth(view, statsToday)
	assert.Equal(t, view, again, "cannot pass the current month")

	back := PrevMonth(view)
	assert.Equal(t, time.July, back.Month())
}
