package task

import (
	"sync"

	"kaizen/internal/model"
)

// Subscription is one live task feed. Snapshots arrive on Snapshots(); the
// latest snapshot is always authoritative. If the consumer lags, stale
// snapshots are replaced, never queued.
type Subscription struct {
	ch   chan []model.Task
	feed *feed
	once sync.Once
}

// Snapshots returns the channel the feed delivers on. The channel is closed
// on Cancel.
func (s *Subscription) Snapshots() <-chan []model.Task {
	return s.ch
}

// Cancel tears the feed down. It is idempotent; nothing is delivered after
// the first call, and an undelivered in-flight snapshot is dropped.
func (s *Subscription) Cancel() {
	s.once.Do(func() {
		s.feed.remove(s)
	})
}

// feed fans full snapshots out to its subscribers. Publishing and
// subscriber removal share one lock, so a cancelled subscription can never
// receive a late send.
type feed struct {
	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

func newFeed() *feed {
	return &feed{subs: map[*Subscription]struct{}{}}
}

func (f *feed) subscribe() *Subscription {
	s := &Subscription{
		ch:   make(chan []model.Task, 1),
		feed: f,
	}
	f.mu.Lock()
	f.subs[s] = struct{}{}
	f.mu.Unlock()
	return s
}

func (f *feed) remove(s *Subscription) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.subs[s]; !ok {
		return
	}
	delete(f.subs, s)
	// Drop an undelivered snapshot so nothing arrives after cancellation.
	select {
	case <-s.ch:
	default:
	}
	close(s.ch)
}

func (f *feed) publish(tasks []model.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for s := range f.subs {
		// Coalesce: replace an unconsumed snapshot instead of queueing.
		select {
		case <-s.ch:
		default:
		}
		s.ch <- tasks
	}
}
