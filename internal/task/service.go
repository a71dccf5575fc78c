// Package task implements the task service consumed by both UI skins: CRUD
// intents translated into store operations plus a live snapshot feed.
package task

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"kaizen/internal/logger"
	"kaizen/internal/model"
	"kaizen/internal/repository"
)

// ErrEmptyTitle rejects tasks whose title is blank. The check runs before
// any store call.
var ErrEmptyTitle = errors.New("task title must not be empty")

// Service is the contract the view layer consumes. Cloud and guest mode
// implement it identically.
type Service interface {
	// Subscribe establishes a live feed: the current snapshot is delivered
	// immediately, then a fresh one after every mutation.
	Subscribe(ownerID string) *Subscription
	Create(ctx context.Context, ownerID string, draft model.TaskDraft) error
	Update(ctx context.Context, taskID string, patch model.TaskPatch) error
	SetCompleted(ctx context.Context, taskID string, completed bool) error
	SetStarred(ctx context.Context, taskID string, starred bool) error
	// Delete exists in the service contract but no UI flow uses it.
	Delete(ctx context.Context, taskID string) error
}

// CloudService persists through the document store and pushes a re-read
// snapshot to every active feed after each successful mutation. Refresh is
// also driven periodically by the scheduler to pick up remote changes.
type CloudService struct {
	repo *repository.TaskRepository

	mu    sync.Mutex
	feeds map[string]*feed // per owner
	now   func() time.Time
}

func NewCloudService(repo *repository.TaskRepository) *CloudService {
	return &CloudService{
		repo:  repo,
		feeds: map[string]*feed{},
		now:   time.Now,
	}
}

func (s *CloudService) Subscribe(ownerID string) *Subscription {
	s.mu.Lock()
	f, ok := s.feeds[ownerID]
	if !ok {
		f = newFeed()
		s.feeds[ownerID] = f
	}
	s.mu.Unlock()

	sub := f.subscribe()
	s.publishOwner(context.Background(), ownerID, f)
	return sub
}

func (s *CloudService) Create(ctx context.Context, ownerID string, draft model.TaskDraft) error {
	if strings.TrimSpace(draft.Title) == "" {
		return ErrEmptyTitle
	}
	if err := s.repo.Insert(ctx, ownerID, draft); err != nil {
		return err
	}
	s.Refresh(ctx)
	return nil
}

func (s *CloudService) Update(ctx context.Context, taskID string, patch model.TaskPatch) error {
	updates := map[string]any{}
	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return ErrEmptyTitle
		}
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.DueDate != nil {
		updates["due_date"] = *patch.DueDate
	}
	if patch.DueTime != nil {
		updates["due_time"] = *patch.DueTime
	}
	if len(updates) == 0 {
		return nil
	}
	if err := s.repo.Patch(ctx, taskID, updates); err != nil {
		return err
	}
	s.Refresh(ctx)
	return nil
}

func (s *CloudService) SetCompleted(ctx context.Context, taskID string, completed bool) error {
	updates := map[string]any{
		"is_completed": completed,
		"completed_at": nil,
	}
	if completed {
		now := s.now()
		updates["completed_at"] = &now
	}
	if err := s.repo.Patch(ctx, taskID, updates); err != nil {
		return err
	}
	s.Refresh(ctx)
	return nil
}

func (s *CloudService) SetStarred(ctx context.Context, taskID string, starred bool) error {
	if err := s.repo.Patch(ctx, taskID, map[string]any{"is_starred": starred}); err != nil {
		return err
	}
	s.Refresh(ctx)
	return nil
}

func (s *CloudService) Delete(ctx context.Context, taskID string) error {
	if err := s.repo.Delete(ctx, taskID); err != nil {
		return err
	}
	s.Refresh(ctx)
	return nil
}

// Refresh re-reads every subscribed owner's collection and publishes the
// result. Used after mutations and by the periodic poll.
func (s *CloudService) Refresh(ctx context.Context) {
	s.mu.Lock()
	owners := make(map[string]*feed, len(s.feeds))
	for owner, f := range s.feeds {
		owners[owner] = f
	}
	s.mu.Unlock()

	for owner, f := range owners {
		s.publishOwner(ctx, owner, f)
	}
}

func (s *CloudService) publishOwner(ctx context.Context, ownerID string, f *feed) {
	tasks, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		logger.Warn("task feed refresh failed", zap.String("owner", ownerID), zap.Error(err))
		return
	}
	f.publish(tasks)
}
