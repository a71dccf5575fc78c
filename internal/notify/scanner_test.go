package notify

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kaizen/internal/model"
)

var scanNow = time.Date(2026, 8, 28, 14, 0, 0, 0, time.UTC)

func dueTask(id string, minutes int) model.Task {
	due := scanNow.Add(time.Duration(minutes) * time.Minute)
	return model.Task{
		ID:      id,
		Title:   "Task " + id,
		DueDate: due.Format("2006-01-02"),
		DueTime: due.Format("15:04"),
	}
}

func TestScanUpcomingWindow(t *testing.T) {
	s := NewScanner(&Recorder{}, time.UTC)

	tasks := []model.Task{
		dueTask("a", 23),
		dueTask("b", 60),
		dueTask("c", 61), // just outside the hour
		dueTask("d", -5), // already past
		{ID: "e", Title: "no date"},
	}

	upcoming := s.Scan(tasks, scanNow)
	require.Len(t, upcoming, 2)
	assert.Equal(t, "a", upcoming[0].ID)
	assert.Equal(t, "b", upcoming[1].ID)
}

func TestScanExcludesCompleted(t *testing.T) {
	s := NewScanner(&Recorder{}, time.UTC)

	task := dueTask("a", 23)
	upcoming := s.Scan([]model.Task{task}, scanNow)
	require.Len(t, upcoming, 1)

	task.IsCompleted = true
	upcoming = s.Scan([]model.Task{task}, scanNow)
	assert.Empty(t, upcoming)
}

func TestScanFiresOncePerThreshold(t *testing.T) {
	rec := &Recorder{}
	s := NewScanner(rec, time.UTC)
	s.SetPermission(PermissionGranted)

	task := dueTask("a", 30)
	s.Scan([]model.Task{task}, scanNow)
	s.Scan([]model.Task{task}, scanNow) // same tick repeated

	require.Len(t, rec.Alerts, 1)
	assert.Equal(t, "a", rec.Alerts[0].TaskID)
	assert.Equal(t, 30, rec.Alerts[0].Threshold)
	assert.Equal(t, "Due in about 30 minutes", rec.Alerts[0].Body)
}

func TestScanWalksThroughThresholds(t *testing.T) {
	rec := &Recorder{}
	s := NewScanner(rec, time.UTC)
	s.SetPermission(PermissionGranted)

	// One task observed at three points on its way to the due time.
	due := scanNow.Add(60 * time.Minute)
	task := model.Task{
		ID:      "a",
		Title:   "Task a",
		DueDate: due.Format("2006-01-02"),
		DueTime: due.Format("15:04"),
	}

	s.Scan([]model.Task{task}, scanNow)
	s.Scan([]model.Task{task}, scanNow.Add(29*time.Minute)) // 31 minutes left
	s.Scan([]model.Task{task}, scanNow.Add(44*time.Minute)) // 16 minutes left

	require.Len(t, rec.Alerts, 3)
	assert.Equal(t, 60, rec.Alerts[0].Threshold)
	assert.Equal(t, 30, rec.Alerts[1].Threshold)
	assert.Equal(t, 15, rec.Alerts[2].Threshold)
}

func TestScanBandEdges(t *testing.T) {
	rec := &Recorder{}
	s := NewScanner(rec, time.UTC)
	s.SetPermission(PermissionGranted)

	// 27 minutes left sits between the 30 and 15 bands.
	s.Scan([]model.Task{dueTask("a", 27)}, scanNow)
	assert.Empty(t, rec.Alerts)

	s.Scan([]model.Task{dueTask("b", 28)}, scanNow)
	require.Len(t, rec.Alerts, 1)
	assert.Equal(t, 30, rec.Alerts[0].Threshold)
}

func TestScanRequiresGrantedPermission(t *testing.T) {
	rec := &Recorder{}
	s := NewScanner(rec, time.UTC)

	task := dueTask("a", 30)
	upcoming := s.Scan([]model.Task{task}, scanNow)
	require.Len(t, upcoming, 1, "badge list is independent of permission")
	assert.Empty(t, rec.Alerts)

	s.SetPermission(PermissionDenied)
	s.Scan([]model.Task{task}, scanNow)
	assert.Empty(t, rec.Alerts)

	s.SetPermission(PermissionGranted)
	s.Scan([]model.Task{task}, scanNow)
	assert.Len(t, rec.Alerts, 1)
}

func TestScanDateOnlyTaskUsesEndOfDay(t *testing.T) {
	rec := &Recorder{}
	s := NewScanner(rec, time.UTC)

	task := model.Task{ID: "a", Title: "Task a", DueDate: scanNow.Format("2006-01-02")}

	// 14:00 is hours away from 23:59:59, so nothing is upcoming.
	assert.Empty(t, s.Scan([]model.Task{task}, scanNow))

	late := time.Date(2026, 8, 28, 23, 30, 0, 0, time.UTC)
	assert.Len(t, s.Scan([]model.Task{task}, late), 1)
}

func TestScanDeliveryFailureStillMarksSeen(t *testing.T) {
	calls := 0
	failing := NotifierFunc(func(Alert) error {
		calls++
		return errors.New("boom")
	})
	s := NewScanner(failing, time.UTC)
	s.SetPermission(PermissionGranted)

	task := dueTask("a", 30)
	s.Scan([]model.Task{task}, scanNow)
	s.Scan([]model.Task{task}, scanNow)
	assert.Equal(t, 1, calls, "a failed delivery is not retried")
}
