package task

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"kaizen/internal/localstore"
	"kaizen/internal/model"
	"kaizen/internal/repository"
)

// GuestService is the no-account variant: the same Service contract backed
// by one local-storage JSON blob. Mutations are synchronous local changes
// followed by a whole-blob overwrite; there is no network failure mode.
type GuestService struct {
	store localstore.Store

	mu   sync.Mutex
	feed *feed
	now  func() time.Time
}

func NewGuestService(store localstore.Store) *GuestService {
	return &GuestService{
		store: store,
		feed:  newFeed(),
		now:   time.Now,
	}
}

// Subscribe ignores ownerID: guest mode has exactly one local collection.
func (s *GuestService) Subscribe(string) *Subscription {
	sub := s.feed.subscribe()
	s.mu.Lock()
	s.feed.publish(s.load())
	s.mu.Unlock()
	return sub
}

func (s *GuestService) Create(_ context.Context, _ string, draft model.TaskDraft) error {
	if strings.TrimSpace(draft.Title) == "" {
		return ErrEmptyTitle
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := s.load()
	tasks = append(tasks, model.Task{
		ID:          uuid.NewString(),
		OwnerID:     "guest",
		Title:       draft.Title,
		Description: draft.Description,
		DueDate:     draft.DueDate,
		DueTime:     draft.DueTime,
		CreatedAt:   s.now(),
	})
	return s.save(tasks)
}

func (s *GuestService) Update(_ context.Context, taskID string, patch model.TaskPatch) error {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return ErrEmptyTitle
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mutate(taskID, func(t *model.Task) {
		if patch.Title != nil {
			t.Title = *patch.Title
		}
		if patch.Description != nil {
			t.Description = *patch.Description
		}
		if patch.DueDate != nil {
			t.DueDate = *patch.DueDate
		}
		if patch.DueTime != nil {
			t.DueTime = *patch.DueTime
		}
	})
}

func (s *GuestService) SetCompleted(_ context.Context, taskID string, completed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mutate(taskID, func(t *model.Task) {
		t.IsCompleted = completed
		if completed {
			now := s.now()
			t.CompletedAt = &now
		} else {
			t.CompletedAt = nil
		}
	})
}

func (s *GuestService) SetStarred(_ context.Context, taskID string, starred bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mutate(taskID, func(t *model.Task) {
		t.IsStarred = starred
	})
}

func (s *GuestService) Delete(_ context.Context, taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := s.load()
	for i, t := range tasks {
		if t.ID == taskID {
			return s.save(append(tasks[:i], tasks[i+1:]...))
		}
	}
	return repository.ErrNotFound
}

// mutate applies fn to the matching task, then overwrites the blob.
// Callers hold s.mu.
func (s *GuestService) mutate(taskID string, fn func(*model.Task)) error {
	tasks := s.load()
	for i := range tasks {
		if tasks[i].ID == taskID {
			fn(&tasks[i])
			return s.save(tasks)
		}
	}
	return repository.ErrNotFound
}

func (s *GuestService) load() []model.Task {
	raw, ok := s.store.Get(localstore.KeyGuestTasks)
	if !ok {
		return nil
	}
	var tasks []model.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		return nil
	}
	sortNewestFirst(tasks)
	return tasks
}

func (s *GuestService) save(tasks []model.Task) error {
	raw, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encode guest tasks: %w", err)
	}
	if err := s.store.Set(localstore.KeyGuestTasks, string(raw)); err != nil {
		return fmt.Errorf("store guest tasks: %w", err)
	}
	sortNewestFirst(tasks)
	s.feed.publish(tasks)
	return nil
}

func sortNewestFirst(tasks []model.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
}
