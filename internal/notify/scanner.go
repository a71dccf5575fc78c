package notify

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"kaizen/internal/logger"
	"kaizen/internal/model"
)

// threshold bands are wide enough that a scan landing a minute or two off
// the mark still fires.
var thresholds = []struct {
	minutes int
	lo, hi  float64
}{
	{60, 58, 62},
	{30, 28, 32},
	{15, 13, 17},
}

// Scanner inspects the task list on every tick and fires at most one alert
// per task per threshold. The seen set lives for the process lifetime, so a
// restart near a threshold may repeat an alert.
type Scanner struct {
	mu         sync.Mutex
	notifier   Notifier
	loc        *time.Location
	permission Permission
	seen       map[string]struct{}
}

func NewScanner(notifier Notifier, loc *time.Location) *Scanner {
	return &Scanner{
		notifier:   notifier,
		loc:        loc,
		permission: PermissionDefault,
		seen:       make(map[string]struct{}),
	}
}

// SetPermission records the user's reminder choice. Alerts fire only when
// granted; the upcoming list is computed regardless.
func (s *Scanner) SetPermission(p Permission) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.permission = p
}

func (s *Scanner) Permission() Permission {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.permission
}

// Scan returns the tasks due within the next hour and fires threshold
// alerts for them. Completed tasks and tasks without a due date never
// qualify.
func (s *Scanner) Scan(tasks []model.Task, now time.Time) []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	var upcoming []model.Task
	for _, t := range tasks {
		if t.IsCompleted {
			continue
		}
		due, ok := t.DueAt(s.loc)
		if !ok {
			continue
		}
		minutes := due.Sub(now).Minutes()
		if minutes <= 0 || minutes > 60 {
			continue
		}
		upcoming = append(upcoming, t)

		if s.permission != PermissionGranted {
			continue
		}
		for _, th := range thresholds {
			if minutes < th.lo || minutes > th.hi {
				continue
			}
			key := fmt.Sprintf("%s-%d", t.ID, th.minutes)
			if _, done := s.seen[key]; done {
				continue
			}
			s.seen[key] = struct{}{}
			alert := Alert{
				TaskID:    t.ID,
				Title:     t.Title,
				Body:      fmt.Sprintf("Due in about %d minutes", th.minutes),
				Threshold: th.minutes,
			}
			if err := s.notifier.Notify(alert); err != nil {
				logger.Warn("deliver reminder", zap.String("task_id", t.ID), zap.Error(err))
			}
		}
	}
	return upcoming
}
