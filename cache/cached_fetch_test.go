package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/status-im/market-rates/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, env string) *Service {
	cfg := &config.Config{
		Env: env,
		Cache: config.CacheConfig{
			Dir:                   t.TempDir(),
			MemoryCleanupInterval: time.Minute,
		},
	}
	return NewService(cfg)
}

func countingFetch(calls *int, value []string) func(ctx context.Context) ([]string, error) {
	return func(ctx context.Context) ([]string, error) {
		*calls++
		return value, nil
	}
}

func TestCachedFetch_HitAvoidsFetch(t *testing.T) {
	s := newTestService(t, "production")
	calls := 0

	first, err := CachedFetch(context.Background(), s, "coins-list", time.Hour, countingFetch(&calls, []string{"bitcoin"}))
	require.NoError(t, err)
	second, err := CachedFetch(context.Background(), s, "coins-list", time.Hour, countingFetch(&calls, []string{"other"}))
	require.NoError(t, err)

	assert.Equal(t, []string{"bitcoin"}, first)
	assert.Equal(t, []string{"bitcoin"}, second)
	assert.Equal(t, 1, calls)
}

func TestCachedFetch_ExpiredEntryRefetches(t *testing.T) {
	s := newTestService(t, "production")
	now := time.Now()
	s.now = func() time.Time { return now }
	calls := 0

	_, err := CachedFetch(context.Background(), s, "top-3", time.Hour, countingFetch(&calls, []string{"a"}))
	require.NoError(t, err)

	s.now = func() time.Time { return now.Add(2 * time.Hour) }
	value, err := CachedFetch(context.Background(), s, "top-3", time.Hour, countingFetch(&calls, []string{"b"}))
	require.NoError(t, err)

	assert.Equal(t, []string{"b"}, value)
	assert.Equal(t, 2, calls)
}

func TestCachedFetch_FileSurvivesRestart(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{Cache: config.CacheConfig{Dir: dir, MemoryCleanupInterval: time.Minute}}
	calls := 0

	_, err := CachedFetch(context.Background(), NewService(cfg), "coins-list", time.Hour, countingFetch(&calls, []string{"bitcoin"}))
	require.NoError(t, err)

	value, err := CachedFetch(context.Background(), NewService(cfg), "coins-list", time.Hour, countingFetch(&calls, []string{"other"}))
	require.NoError(t, err)

	assert.Equal(t, []string{"bitcoin"}, value)
	assert.Equal(t, 1, calls)
	assert.FileExists(t, filepath.Join(dir, "coins-list.json"))
}

func TestCachedFetch_BypassedInTestMode(t *testing.T) {
	s := newTestService(t, config.EnvTest)
	calls := 0

	for i := 0; i < 3; i++ {
		_, err := CachedFetch(context.Background(), s, "coins-list", time.Hour, countingFetch(&calls, []string{"bitcoin"}))
		require.NoError(t, err)
	}
	assert.Equal(t, 3, calls)

	var nilService *Service
	_, err := CachedFetch(context.Background(), nilService, "coins-list", time.Hour, countingFetch(&calls, nil))
	require.NoError(t, err)
	assert.Equal(t, 4, calls)
}

func TestCachedFetch_ErrorNotCached(t *testing.T) {
	s := newTestService(t, "production")
	boom := errors.New("boom")

	_, err := CachedFetch(context.Background(), s, "k", time.Hour, func(ctx context.Context) (int, error) {
		return 0, boom
	})
	assert.ErrorIs(t, err, boom)

	calls := 0
	_, err = CachedFetch(context.Background(), s, "k", time.Hour, func(ctx context.Context) (int, error) {
		calls++
		return 7, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestCachedFetch_WriteFailureSwallowed(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	cfg := &config.Config{Cache: config.CacheConfig{Dir: blocker, MemoryCleanupInterval: time.Minute}}
	calls := 0
	value, err := CachedFetch(context.Background(), NewService(cfg), "k", time.Hour, countingFetch(&calls, []string{"v"}))

	require.NoError(t, err)
	assert.Equal(t, []string{"v"}, value)
}
