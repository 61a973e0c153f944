package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *JSONStorage {
	t.Helper()
	s, err := NewJSONStorage(filepath.Join(t.TempDir(), "daily_post.json"))
	require.NoError(t, err)
	return s
}

func TestLastPostDate_AbsentFile(t *testing.T) {
	s := newTestStore(t)
	date, err := s.LastPostDate(context.Background())
	require.NoError(t, err)
	assert.Empty(t, date)
}

func TestLastPostDate_MalformedFile(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.FilePath, []byte("{not json"), 0644))

	date, err := s.LastPostDate(context.Background())
	require.NoError(t, err)
	assert.Empty(t, date)
}

func TestLastPostDate_WrongShape(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.FilePath, []byte(`["a list"]`), 0644))

	date, err := s.LastPostDate(context.Background())
	require.NoError(t, err)
	assert.Empty(t, date)
}

func TestSetAndLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetLastPostDate(ctx, "2026-08-26"))
	date, err := s.LastPostDate(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2026-08-26", date)

	// Overwrite, never append.
	require.NoError(t, s.SetLastPostDate(ctx, "2026-08-27"))
	date, err = s.LastPostDate(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2026-08-27", date)

	raw, err := os.ReadFile(s.FilePath)
	require.NoError(t, err)
	assert.JSONEq(t, `{"last_post_date": "2026-08-27"}`, string(raw))
}

func TestNewJSONStorage_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state", "daily_post.json")
	s, err := NewJSONStorage(path)
	require.NoError(t, err)
	require.NoError(t, s.SetLastPostDate(context.Background(), "2026-01-01"))
}
