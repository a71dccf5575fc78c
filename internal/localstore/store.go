// Package localstore is the profile-local key-value storage used for guest
// tasks, habits and settings. Values are whole-object JSON blobs: callers
// read the blob, mutate in memory and write the whole blob back.
package localstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Keys of the blobs kept in the store.
const (
	KeyGuestTasks = "kaizen_guest_tasks"
	KeyHabits     = "kaizen_habits"
	KeySettings   = "kaizen_settings"
)

// Store is the narrow storage surface injected into the services, so tests
// can swap in the in-memory implementation.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(key string) error
}

// FileStore keeps the whole key space in a single JSON document on disk,
// rewritten on every Set/Remove.
type FileStore struct {
	path string
	mu   sync.Mutex
	data map[string]string
}

// OpenFile loads (or initializes) the store backing file.
func OpenFile(path string) (*FileStore, error) {
	s := &FileStore{path: path, data: map[string]string{}}

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(raw, &s.data); err != nil {
			// Corrupt store file: start over rather than refuse to boot.
			s.data = map[string]string{}
		}
	case os.IsNotExist(err):
		// First run.
	default:
		return nil, fmt.Errorf("read local store: %w", err)
	}

	return s, nil
}

func (s *FileStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok
}

func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return s.flush()
}

func (s *FileStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return s.flush()
}

func (s *FileStore) flush() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode local store: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create store dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("write local store: %w", err)
	}
	return nil
}

// MemStore is the in-memory Store used by tests.
type MemStore struct {
	mu   sync.Mutex
	data map[string]string
}

func NewMem() *MemStore {
	return &MemStore{data: map[string]string{}}
}

func (s *MemStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok
}

func (s *MemStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *MemStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}
