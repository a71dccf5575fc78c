package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kaizen/internal/model"
)

func TestFeedDeliversAndCoalesces(t *testing.T) {
	f := newFeed()
	sub := f.subscribe()

	f.publish([]model.Task{{ID: "1"}})
	f.publish([]model.Task{{ID: "1"}, {ID: "2"}})

	// Only the latest snapshot is waiting.
	got := <-sub.Snapshots()
	require.Len(t, got, 2)

	select {
	case extra := <-sub.Snapshots():
		t.Fatalf("unexpected extra snapshot: %v", extra)
	default:
	}
}

func TestSubscriptionCancelIsIdempotent(t *testing.T) {
	f := newFeed()
	sub := f.subscribe()

	sub.Cancel()
	sub.Cancel() // second call has no effect

	// Publishing after cancel delivers nothing; the channel is closed.
	f.publish([]model.Task{{ID: "1"}})
	_, open := <-sub.Snapshots()
	assert.False(t, open)
}

func TestCancelDropsInFlightSnapshot(t *testing.T) {
	f := newFeed()
	sub := f.subscribe()

	f.publish([]model.Task{{ID: "1"}})
	sub.Cancel()

	// The queued snapshot is discarded silently, not delivered.
	snap, open := <-sub.Snapshots()
	assert.False(t, open)
	assert.Nil(t, snap)
}

func TestCancelledSubscriptionDoesNotBlockOthers(t *testing.T) {
	f := newFeed()
	a := f.subscribe()
	b := f.subscribe()

	a.Cancel()
	f.publish([]model.Task{{ID: "1"}})

	got := <-b.Snapshots()
	assert.Len(t, got, 1)
}
