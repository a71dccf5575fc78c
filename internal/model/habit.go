package model

import (
	"fmt"
	"math/rand"
	"time"
)

// Frequency describes how often a habit is meant to be done.
type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
	FrequencyCustom Frequency = "custom"
)

// Category groups habits by area of life. The set is fixed.
type Category string

const (
	CategoryHealth       Category = "health"
	CategoryFitness      Category = "fitness"
	CategoryLearning     Category = "learning"
	CategoryMindfulness  Category = "mindfulness"
	CategoryProductivity Category = "productivity"
	CategorySocial       Category = "social"
	CategoryCustom       Category = "custom"
)

// Categories lists every valid habit category in display order.
var Categories = []Category{
	CategoryHealth,
	CategoryFitness,
	CategoryLearning,
	CategoryMindfulness,
	CategoryProductivity,
	CategorySocial,
	CategoryCustom,
}

// DayKey is the calendar-date key format used by CompletionHistory.
const DayKey = "2006-01-02"

// Habit is a recurring routine tracked locally with a completion calendar
// and a cached streak.
type Habit struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Frequency         Frequency       `json:"frequency"`
	CustomDays        string          `json:"customDays,omitempty"` // free text, only meaningful for custom
	Category          Category        `json:"category"`
	Color             string          `json:"color"` // hex
	CreatedAt         time.Time       `json:"createdAt"`
	CompletionHistory map[string]bool `json:"completionHistory"` // day key -> done; absent means not done
	Streak            int             `json:"streak"`
}

// NewHabitID builds a client-generated id from the current unix-millis plus
// a random suffix.
func NewHabitID(now time.Time) string {
	return fmt.Sprintf("%d-%04d", now.UnixMilli(), rand.Intn(10000))
}

// CompletedOn reports whether the habit was marked done on the given day.
func (h Habit) CompletedOn(day time.Time) bool {
	return h.CompletionHistory[day.Format(DayKey)]
}

// TotalCompletions counts every marked day in the history.
func (h Habit) TotalCompletions() int {
	n := 0
	for _, done := range h.CompletionHistory {
		if done {
			n++
		}
	}
	return n
}
