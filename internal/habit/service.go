// Package habit tracks recurring routines. Habits live only in the local
// profile: one JSON blob, no server copy, no multi-device sync.
package habit

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"kaizen/internal/localstore"
	"kaizen/internal/model"
)

// ErrEmptyName rejects habits without a name.
var ErrEmptyName = fmt.Errorf("habit name must not be empty")

// ErrNotFound is returned for unknown habit ids.
var ErrNotFound = fmt.Errorf("habit not found")

// Draft carries the new-habit form fields.
type Draft struct {
	Name       string
	Frequency  model.Frequency
	CustomDays string
	Category   model.Category
	Color      string
}

// Service owns the habit blob. All methods are synchronous: read the blob,
// mutate in memory, write the whole blob back.
type Service struct {
	store localstore.Store

	mu  sync.Mutex
	now func() time.Time
}

func NewService(store localstore.Store) *Service {
	return &Service{store: store, now: time.Now}
}

// List returns every habit in creation order.
func (s *Service) List() []model.Habit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Add creates a habit with an empty history and zero streak.
func (s *Service) Add(draft Draft) (model.Habit, error) {
	name := strings.TrimSpace(draft.Name)
	if name == "" {
		return model.Habit{}, ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	h := model.Habit{
		ID:                model.NewHabitID(now),
		Name:              name,
		Frequency:         draft.Frequency,
		Category:          draft.Category,
		Color:             draft.Color,
		CreatedAt:         now,
		CompletionHistory: map[string]bool{},
	}
	if draft.Frequency == model.FrequencyCustom {
		h.CustomDays = draft.CustomDays
	}

	habits := append(s.load(), h)
	if err := s.save(habits); err != nil {
		return model.Habit{}, err
	}
	return h, nil
}

// ToggleToday flips today's completion mark and recomputes the streak.
func (s *Service) ToggleToday(habitID string) (model.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.now()
	key := today.Format(model.DayKey)

	habits := s.load()
	for i := range habits {
		if habits[i].ID != habitID {
			continue
		}
		if habits[i].CompletionHistory == nil {
			habits[i].CompletionHistory = map[string]bool{}
		}
		if habits[i].CompletionHistory[key] {
			delete(habits[i].CompletionHistory, key)
		} else {
			habits[i].CompletionHistory[key] = true
		}
		habits[i].Streak = Streak(habits[i].CompletionHistory, today)
		if err := s.save(habits); err != nil {
			return model.Habit{}, err
		}
		return habits[i], nil
	}
	return model.Habit{}, ErrNotFound
}

// Delete removes a habit permanently, effective immediately.
func (s *Service) Delete(habitID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	habits := s.load()
	for i, h := range habits {
		if h.ID == habitID {
			return s.save(append(habits[:i], habits[i+1:]...))
		}
	}
	return ErrNotFound
}

// ReplaceAll swaps the whole collection, recomputing cached streaks. Used by
// backup import.
func (s *Service) ReplaceAll(habits []model.Habit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.now()
	for i := range habits {
		habits[i].Streak = Streak(habits[i].CompletionHistory, today)
	}
	return s.save(habits)
}

// Clear deletes every habit.
func (s *Service) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Remove(localstore.KeyHabits)
}

func (s *Service) load() []model.Habit {
	raw, ok := s.store.Get(localstore.KeyHabits)
	if !ok {
		return nil
	}
	var habits []model.Habit
	if err := json.Unmarshal([]byte(raw), &habits); err != nil {
		return nil
	}
	return habits
}

func (s *Service) save(habits []model.Habit) error {
	raw, err := json.Marshal(habits)
	if err != nil {
		return fmt.Errorf("encode habits: %w", err)
	}
	if err := s.store.Set(localstore.KeyHabits, string(raw)); err != nil {
		return fmt.Errorf("store habits: %w", err)
	}
	return nil
}
