package localstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile", "store.json")

	s, err := OpenFile(path)
	require.NoError(t, err)

	_, ok := s.Get(KeyHabits)
	assert.False(t, ok)

	require.NoError(t, s.Set(KeyHabits, `[{"id":"1"}]`))
	v, ok := s.Get(KeyHabits)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"1"}]`, v)

	// A fresh open sees what was flushed.
	reopened, err := OpenFile(path)
	require.NoError(t, err)
	v, ok = reopened.Get(KeyHabits)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"1"}]`, v)
}

func TestFileStoreRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")

	s, err := OpenFile(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(KeySettings, `{}`))
	require.NoError(t, s.Remove(KeySettings))

	_, ok := s.Get(KeySettings)
	assert.False(t, ok)

	reopened, err := OpenFile(path)
	require.NoError(t, err)
	_, ok = reopened.Get(KeySettings)
	assert.False(t, ok)
}

func TestFileStoreCorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	s, err := OpenFile(path)
	require.NoError(t, err)
	_, ok := s.Get(KeyHabits)
	assert.False(t, ok)
}

func TestMemStore(t *testing.T) {
	s := NewMem()
	require.NoError(t, s.Set("k", "v"))
	v, ok := s.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)
	require.NoError(t, s.Remove("k"))
	_, ok = s.Get("k")
	assert.False(t, ok)
}
