package task

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kaizen/internal/model"
	"kaizen/internal/repository"
)

func newCloud(t *testing.T) *CloudService {
	t.Helper()
	db, err := repository.NewDB(filepath.Join(t.TempDir(), "tasks.db"))
	require.NoError(t, err)
	return NewCloudService(repository.NewTaskRepository(db))
}

func TestCloudCreateValidatesBeforeStore(t *testing.T) {
	svc := newCloud(t)
	err := svc.Create(context.Background(), "u1", model.TaskDraft{Title: "\t "})
	require.ErrorIs(t, err, ErrEmptyTitle)

	sub := svc.Subscribe("u1")
	assert.Empty(t, receive(t, sub))
}

func TestCloudOwnerScoping(t *testing.T) {
	svc := newCloud(t)
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, "alice", model.TaskDraft{Title: "hers"}))
	require.NoError(t, svc.Create(ctx, "bob", model.TaskDraft{Title: "his"}))

	sub := svc.Subscribe("alice")
	snap := receive(t, sub)
	require.Len(t, snap, 1)
	assert.Equal(t, "hers", snap[0].Title)
	assert.Equal(t, "alice", snap[0].OwnerID)
	assert.False(t, snap[0].CreatedAt.IsZero(), "store assigns creation timestamp")
}

func TestCloudCompleteToggleStampsCompletedAt(t *testing.T) {
	svc := newCloud(t)
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, "u1", model.TaskDraft{Title: "a"}))
	sub := svc.Subscribe("u1")
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

func TestCloudUpdatePatchesOnlyGivenColumns(t *testing.T) {
	svc := newCloud(t)
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, "u1", model.TaskDraft{Title: "t", Description: "d", DueDate: "2026-09-01"}))
	sub := svc.Subscribe("u1")
	id := receive(t, sub)[0].ID

	desc := "changed"
	require.NoError(t, svc.Update(ctx, id, model.TaskPatch{Description: &desc}))

	snap := receive(t, sub)
	assert.Equal(t, "t", snap[0].Title)
	assert.Equal(t, "changed", snap[0].Description)
	assert.Equal(t, "2026-09-01", snap[0].DueDate)
}

func TestCloudPatchUnknownID(t *testing.T) {
	svc := newCloud(t)
	err := svc.SetStarred(context.Background(), "12345", true)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
