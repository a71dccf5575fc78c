package habit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kaizen/internal/localstore"
	"kaizen/internal/model"
)

func newService(t *testing.T) *Service {
	t.Helper()
	s := NewService(localstore.NewMem())
	s.now = func() time.Time { return today }
	return s
}

func TestAddRejectsBlankName(t *testing.T) {
	s := newService(t)
	_, err := s.Add(Draft{Name: "   "})
	require.ErrorIs(t, err, ErrEmptyName)
	assert.Empty(t, s.List())
}

func TestAddAndList(t *testing.T) {
	s := newService(t)

	h, err := s.Add(Draft{
		Name:      "meditate",
		Frequency: model.FrequencyDaily,
		Category:  model.CategoryMindfulness,
		Color:     "#b040ff",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, h.ID)
	assert.Zero(t, h.Streak)
	assert.Empty(t, h.CompletionHistory)

	habits := s.List()
	require.Len(t, habits, 1)
	assert.Equal(t, "meditate", habits[0].Name)
}

func TestCustomDaysOnlyKeptForCustomFrequency(t *testing.T) {
	s := newService(t)

	h, err := s.Add(Draft{Name: "run", Frequency: model.FrequencyDaily, CustomDays: "mon,wed"})
	require.NoError(t, err)
	assert.Empty(t, h.CustomDays)

	h, err = s.Add(Draft{Name: "swim", Frequency: model.FrequencyCustom, CustomDays: "mon,wed"})
	require.NoError(t, err)
	assert.Equal(t, "mon,wed", h.CustomDays)
}

func TestToggleTodayKeepsStreakInSync(t *testing.T) {
	s := newService(t)
	h, err := s.Add(Draft{Name: "read", Frequency: model.FrequencyDaily})
	require.NoError(t, err)

	h, err = s.ToggleToday(h.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, h.Streak)
	assert.True(t, h.CompletedOn(today))

	// Cached streak always matches the independent walk-back.
	assert.Equal(t, Streak(h.CompletionHistory, today), h.Streak)

	h, err = s.ToggleToday(h.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, h.Streak)
	assert.False(t, h.CompletedOn(today))
	_, present := h.CompletionHistory[today.Format(model.DayKey)]
	assert.False(t, present, "toggle off removes the key instead of writing false")
}

func TestToggleUnknownHabit(t *testing.T) {
	s := newService(t)
	_, err := s.ToggleToday("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteIsImmediate(t *testing.T) {
	s := newService(t)
	h, err := s.Add(Draft{Name: "stretch", Frequency: model.FrequencyDaily})
	require.NoError(t, err)

	require.NoError(t, s.Delete(h.ID))
	assert.Empty(t, s.List())
	assert.ErrorIs(t, s.Delete(h.ID), ErrNotFound)
}

func TestReplaceAllRecomputesStreaks(t *testing.T) {
	s := newService(t)

	imported := []model.Habit{{
		ID:   "x",
		Name: "imported",
		CompletionHistory: map[string]bool{
			day(0): true, day(-1): true,
		},
		Streak: 99, // stale cached value from the backup
	}}
	require.NoError(t, s.ReplaceAll(imported))

	habits := s.List()
	require.Len(t, habits, 1)
	assert.Equal(t, 2, habits[0].Streak)
}
