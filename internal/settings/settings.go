// Package settings persists the desktop preferences record.
package settings

import (
	"encoding/json"
	"fmt"

	"kaizen/internal/localstore"
	"kaizen/internal/model"
)

// Service reads and writes the single settings record. Defaults are used on
// first load and whenever the stored blob cannot be parsed.
type Service struct {
	store localstore.Store
}

func NewService(store localstore.Store) *Service {
	return &Service{store: store}
}

func (s *Service) Load() model.Settings {
	raw, ok := s.store.Get(localstore.KeySettings)
	if !ok {
		return model.DefaultSettings()
	}
	// Merge over defaults so fields absent from older blobs keep their
	// default value.
	cfg := model.DefaultSettings()
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return model.DefaultSettings()
	}
	return cfg
}

// Save overwrites the record wholesale.
func (s *Service) Save(cfg model.Settings) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := s.store.Set(localstore.KeySettings, string(raw)); err != nil {
		return fmt.Errorf("store settings: %w", err)
	}
	return nil
}

// Clear removes the record; the next Load returns defaults.
func (s *Service) Clear() error {
	return s.store.Remove(localstore.KeySettings)
}
