package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/huh-go/internal/domain"
)

func TestFileCacheGetSet(t *testing.T) {
	c := NewFileCache(t.TempDir(), time.Hour, 10)
	key := domain.CacheKey("gemini-2.0-flash", domain.ModeAnalyze, "sys", "prompt")

	_, ok, err := c.Get(key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(domain.CacheEntry{Key: key, Text: "answer", Model: "gemini-2.0-flash"}))
	entry, ok, err := c.Get(key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "answer", entry.Text)
	assert.False(t, entry.CreatedAt.IsZero())
}

func TestFileCacheExpiry(t *testing.T) {
	c := NewFileCache(t.TempDir(), time.Minute, 0)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(domain.CacheEntry{Key: "k", Text: "v"}))
	now = now.Add(2 * time.Minute)

	_, ok, err := c.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileCacheEvictsOldest(t *testing.T) {
	c := NewFileCache(t.TempDir(), 0, 2)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, key := range []string{"a", "b", "c"} {
		require.NoError(t, c.Set(domain.CacheEntry{Key: key, Text: key, CreatedAt: base.Add(time.Duration(i) * time.Second)}))
	}

	entries, err := c.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "b", entries[0].Key)
	assert.Equal(t, "c", entries[1].Key)

	require.NoError(t, c.Clear())
	entries, err = c.Entries()
	require.NoError(t, err)
	assert.Empty(t, entries)
}
