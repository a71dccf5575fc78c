package habit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"kaizen/internal/model"
)

var today = time.Date(2026, 8, 28, 15, 0, 0, 0, time.UTC)

func day(offset int) string {
	return today.AddDate(0, 0, offset).Format(model.DayKey)
}

func TestStreak(t *testing.T) {
	tests := []struct {
		name    string
		history map[string]bool
		want    int
	}{
		{"no history", nil, 0},
		{"only today", map[string]bool{day(0): true}, 1},
		{"three consecutive days ending today", map[string]bool{
			day(0): true, day(-1): true, day(-2): true,
		}, 3},
		{"grace day: today missing, run ends yesterday", map[string]bool{
			day(-1): true, day(-2): true,
		}, 2},
		{"two consecutive misses reset", map[string]bool{
			day(-2): true, day(-3): true,
		}, 0},
		{"gap inside run stops the walk", map[string]bool{
			day(0): true, day(-1): true, day(-3): true,
		}, 2},
		{"false entry counts as absent", map[string]bool{
			day(0): false, day(-1): true,
		}, 1},
		{"long run", map[string]bool{
			day(0): true, day(-1): true, day(-2): true, day(-3): true,
			day(-4): true, day(-5): true, day(-6): true,
		}, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Streak(tt.history, today))
		})
	}
}

// A three-day run shrinks to two under the grace rule when today's mark is
// removed, and resets to zero after a second miss.
func TestStreakGraceDayScenario(t *testing.T) {
	history := map[string]bool{day(0): true, day(-1): true, day(-2): true}
	assert.Equal(t, 3, Streak(history, today))

	delete(history, day(0))
	assert.Equal(t, 2, Streak(history, today))

	delete(history, day(-1))
	assert.Equal(t, 0, Streak(history, today))
}

func TestStreakCrossesMonthBoundary(t *testing.T) {
	first := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	history := map[string]bool{
		"2026-09-01": true,
		"2026-08-31": true,
		"2026-08-30": true,
	}
	assert.Equal(t, 3, Streak(history, first))
}
