package feedcache

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "feeds.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_PutGet(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Put("https://example.com/a", "example.com\n", 1723550000))

	body, fetchedAt, ok, err := s.Get("https://example.com/a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "example.com\n", body)
	assert.Equal(t, int64(1723550000), fetchedAt)
}

func TestStore_GetMissing(t *testing.T) {
	s := openTestStore(t)

	_, _, ok, err := s.Get("https://example.com/unknown")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_PutOverwrites(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Put("https://example.com/a", "old\n", 1))
	require.NoError(t, s.Put("https://example.com/a", "new\n", 2))

	body, fetchedAt, ok, err := s.Get("https://example.com/a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "new\n", body)
	assert.Equal(t, int64(2), fetchedAt)
}

func TestOpen_BadPath(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing", "nested", "feeds.db"))
	assert.Error(t, err)
}
