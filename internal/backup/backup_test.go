package backup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kaizen/internal/model"
)

func TestExportImportRoundTrip(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	habits := []model.Habit{{
		ID:        "1756000000000-0042",
		Name:      "meditate",
		Frequency: model.FrequencyDaily,
		Category:  model.CategoryMindfulness,
		Color:     "#b040ff",
		CreatedAt: now.AddDate(0, -1, 0),
		CompletionHistory: map[string]bool{
			"2026-08-27": true,
			"2026-08-28": true,
		},
		Streak: 2,
	}}
	cfg := model.Settings{
		SoundEnabled: true,
		Scanlines:    false,
		Flicker:      true,
		Grain:        false,
		Vignette:     true,
		Wallpaper:    "custom.jpg",
	}

	raw, err := Export(habits, cfg, now)
	require.NoError(t, err)

	doc, err := Import(raw)
	require.NoError(t, err)
	assert.Equal(t, habits, doc.Habits)
	assert.Equal(t, cfg, doc.Settings)
}

func TestImportRejectsGarbage(t *testing.T) {
	_, err := Import([]byte("{not json"))
	assert.ErrorIs(t, err, ErrInvalidFile)

	// Wrong shape for habits: not an array.
	_, err = Import([]byte(`{"habits": {"id":"1"}}`))
	assert.ErrorIs(t, err, ErrInvalidFile)
}

func TestImportMergesSettingsOverDefaults(t *testing.T) {
	doc, err := Import([]byte(`{"settings": {"soundEnabled": true}}`))
	require.NoError(t, err)

	want := model.DefaultSettings()
	want.SoundEnabled = true
	assert.Equal(t, want, doc.Settings)
}

func TestImportWithoutHabitsKeepsNone(t *testing.T) {
	doc, err := Import([]byte(`{}`))
	require.NoError(t, err)
	assert.Empty(t, doc.Habits)
	assert.Equal(t, model.DefaultSettings(), doc.Settings)
}

func TestFileName(t *testing.T) {
	now := time.Date(2026, 8, 28, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, "habit-tracker-backup-2026-08-28.json", FileName(now))
}
