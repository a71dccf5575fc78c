// Package tui holds the plumbing shared by the two skins: the dependency
// bundle, the messages that bridge the task feed and the reminder scan into
// the event loop, and the text renderers for charts both skins draw.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"kaizen/internal/auth"
	"kaizen/internal/habit"
	"kaizen/internal/model"
	"kaizen/internal/notify"
	"kaizen/internal/settings"
	"kaizen/internal/task"
)

// Deps is everything a skin needs to run.
type Deps struct {
	Tasks      task.Service
	Habits     *habit.Service
	Settings   *settings.Service
	Scanner    *notify.Scanner
	Auth       auth.Provider
	Identity   *auth.Identity
	OwnerID    string
	ProfileDir string
	Now        func() time.Time
}

// SnapshotMsg carries a fresh task list from the feed.
type SnapshotMsg []model.Task

// ScanTickMsg drives the periodic reminder scan and clock refresh.
type ScanTickMsg time.Time

// WaitSnapshot blocks on the subscription and resurfaces the next snapshot
// as a message. Returns nil when the subscription is cancelled.
func WaitSnapshot(sub *task.Subscription) tea.Cmd {
	return func() tea.Msg {
		tasks, ok := <-sub.Snapshots()
		if !ok {
			return nil
		}
		return SnapshotMsg(tasks)
	}
}

// ScanTick schedules the next reminder scan.
func ScanTick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return ScanTickMsg(t)
	})
}
