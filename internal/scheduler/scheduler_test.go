package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDailySpec(t *testing.T) {
	spec, err := buildDailySpec("07:30")
	require.NoError(t, err)
	assert.Equal(t, "0 30 7 * * *", spec)

	for _, bad := range []string{"", "7", "24:00", "12:60", "aa:bb"} {
		_, err := buildDailySpec(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestScheduleIntervalRejectsNonPositive(t *testing.T) {
	s := New(time.UTC)
	_, err := s.ScheduleInterval(0, func() {})
	assert.Error(t, err)
	_, err = s.ScheduleInterval(-time.Second, func() {})
	assert.Error(t, err)
}

func TestScheduleIntervalRuns(t *testing.T) {
	s := New(time.UTC)
	done := make(chan struct{})
	_, err := s.ScheduleInterval(time.Second, func() {
		select {
		case done <- struct{}{}:
		default:
		}
	})
	require.NoError(t, err)

	s.Start()
	defer s.Stop()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not run")
	}
}
