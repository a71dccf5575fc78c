// Package backup exports and imports the local profile (habits + settings)
// as a single JSON document.
package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"kaizen/internal/model"
)

// ErrInvalidFile is surfaced to the user when an import cannot be parsed.
// Nothing is applied in that case.
var ErrInvalidFile = errors.New("invalid backup file")

// Document is the exported shape.
type Document struct {
	Habits     []model.Habit  `json:"habits"`
	Settings   model.Settings `json:"settings"`
	ExportedAt time.Time      `json:"exportedAt"`
}

// Export encodes the profile.
func Export(habits []model.Habit, cfg model.Settings, now time.Time) ([]byte, error) {
	doc := Document{
		Habits:     habits,
		Settings:   cfg,
		ExportedAt: now,
	}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode backup: %w", err)
	}
	return raw, nil
}

// FileName names the download, e.g. habit-tracker-backup-2026-08-28.json.
func FileName(now time.Time) string {
	return fmt.Sprintf("habit-tracker-backup-%s.json", now.Format("2006-01-02"))
}

// ExportToFile writes the export document to path.
func ExportToFile(path string, habits []model.Habit, cfg model.Settings, now time.Time) error {
	raw, err := Export(habits, cfg, now)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	return nil
}

// Import parses a backup document. Settings are merged over defaults so a
// partial settings object still yields a complete record. Habit's cached
// streak is left to the caller to recompute.
func Import(raw []byte) (Document, error) {
	var probe struct {
		Habits   json.RawMessage `json:"habits"`
		Settings json.RawMessage `json:"settings"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return Document{}, ErrInvalidFile
	}

	doc := Document{Settings: model.DefaultSettings()}

	if len(probe.Habits) > 0 {
		if err := json.Unmarshal(probe.Habits, &doc.Habits); err != nil {
			return Document{}, ErrInvalidFile
		}
	}
	if len(probe.Settings) > 0 {
		if err := json.Unmarshal(probe.Settings, &doc.Settings); err != nil {
			return Document{}, ErrInvalidFile
		}
	}
	return doc, nil
}

// ImportFile reads and parses a user-selected backup file.
func ImportFile(path string) (Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read backup: %w", err)
	}
	return Import(raw)
}
