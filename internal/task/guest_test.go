package task

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kaizen/internal/localstore"
	"kaizen/internal/model"
	"kaizen/internal/repository"
)

func newGuest(t *testing.T) (*GuestService, *localstore.MemStore) {
	t.Helper()
	store := localstore.NewMem()
	return NewGuestService(store), store
}

func receive(t *testing.T, sub *Subscription) []model.Task {
	t.Helper()
	select {
	case snap := <-sub.Snapshots():
		return snap
	case <-time.After(time.Second):
		t.Fatal("no snapshot delivered")
		return nil
	}
}

func TestGuestCreateRejectsBlankTitle(t *testing.T) {
	svc, store := newGuest(t)

	err := svc.Create(context.Background(), "guest", model.TaskDraft{Title: "  "})
	require.ErrorIs(t, err, ErrEmptyTitle)

	// The store was never touched; no id was generated.
	_, ok := store.Get(localstore.KeyGuestTasks)
	assert.False(t, ok)
}

func TestGuestCreateAndSubscribe(t *testing.T) {
	svc, _ := newGuest(t)
	ctx := context.Background()

	sub := svc.Subscribe("guest")
	assert.Empty(t, receive(t, sub))

	require.NoError(t, svc.Create(ctx, "guest", model.TaskDraft{Title: "write spec", DueDate: "2026-08-28"}))

	snap := receive(t, sub)
	require.Len(t, snap, 1)
	assert.Equal(t, "write spec", snap[0].Title)
	assert.NotEmpty(t, snap[0].ID)
	assert.False(t, snap[0].IsCompleted)
	assert.False(t, snap[0].IsStarred)
	sub.Cancel()
}

func TestGuestSnapshotsOrderedNewestFirst(t *testing.T) {
	svc, _ := newGuest(t)
	ctx := context.Background()

	times := []time.Time{
		time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 2, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 3, 10, 0, 0, 0, time.UTC),
	}
	i := 0
	svc.now = func() time.Time { t := times[i]; i++; return t }

	require.NoError(t, svc.Create(ctx, "guest", model.TaskDraft{Title: "first"}))
	require.NoError(t, svc.Create(ctx, "guest", model.TaskDraft{Title: "second"}))
	require.NoError(t, svc.Create(ctx, "guest", model.TaskDraft{Title: "third"}))

	sub := svc.Subscribe("guest")
	snap := receive(t, sub)
	require.Len(t, snap, 3)
	assert.Equal(t, "third", snap[0].Title)
	assert.Equal(t, "first", snap[2].Title)
}

func TestGuestSetCompletedStampsAndClears(t *testing.T) {
	svc, _ := newGuest(t)
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, "guest", model.TaskDraft{Title: "a"}))
	sub := svc.Subscribe("guest")
	id := receive(t, sub)[0].ID

	require.NoError(t, svc.SetCompleted(ctx, id, true))
	snap := receive(t, sub)
	require.True(t, snap[0].IsCompleted)
	require.NotNil(t, snap[0].CompletedAt)

	require.NoError(t, svc.SetCompleted(ctx, id, false))
	snap = receive(t, sub)
	require.False(t, snap[0].IsCompleted)
	assert.Nil(t, snap[0].CompletedAt)
}

func TestGuestUpdateMergesOnlyGivenFields(t *testing.T) {
	svc, _ := newGuest(t)
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, "guest", model.TaskDraft{
		Title:       "original",
		Description: "keep me",
		DueDate:     "2026-09-01",
		DueTime:     "09:30",
	}))
	sub := svc.Subscribe("guest")
	id := receive(t, sub)[0].ID

	title := "renamed"
	require.NoError(t, svc.Update(ctx, id, model.TaskPatch{Title: &title}))

	snap := receive(t, sub)
	assert.Equal(t, "renamed", snap[0].Title)
	assert.Equal(t, "keep me", snap[0].Description)
	assert.Equal(t, "2026-09-01", snap[0].DueDate)
	assert.Equal(t, "09:30", snap[0].DueTime)
}

func TestGuestSetStarred(t *testing.T) {
	svc, _ := newGuest(t)
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, "guest", model.TaskDraft{Title: "a"}))
	sub := svc.Subscribe("guest")
	id := receive(t, sub)[0].ID

	require.NoError(t, svc.SetStarred(ctx, id, true))
	assert.True(t, receive(t, sub)[0].IsStarred)
}

func TestGuestUnknownTaskID(t *testing.T) {
	svc, _ := newGuest(t)
	err := svc.SetCompleted(context.Background(), "nope", true)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
