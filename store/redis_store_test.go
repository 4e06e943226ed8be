package store

import (
	"context"
	"encoding/json"
	"errors"
	"path"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/status-im/market-rates/config"
	"github.com/status-im/market-rates/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRedis struct {
	data    map[string][]byte
	lists   map[string][][]byte
	pingErr error
	setErr  error
	getErr  error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: make(map[string][]byte), lists: make(map[string][][]byte)}
}

func (f *fakeRedis) Ping(ctx context.Context) *redis.StatusCmd {
	if f.pingErr != nil {
		return redis.NewStatusResult("", f.pingErr)
	}
	return redis.NewStatusResult("PONG", nil)
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	if v, ok := f.data[key]; ok {
		return redis.NewStringResult(string(v), nil)
	}
	return redis.NewStringResult("", redis.Nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if f.setErr != nil {
		return redis.NewStatusResult("", f.setErr)
	}
	f.data[key] = append([]byte(nil), value.([]byte)...)
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) LPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd {
	for _, v := range values {
		f.lists[key] = append([][]byte{v.([]byte)}, f.lists[key]...)
	}
	return redis.NewIntResult(int64(len(f.lists[key])), nil)
}

func (f *fakeRedis) LTrim(ctx context.Context, key string, start, stop int64) *redis.StatusCmd {
	if list := f.lists[key]; int64(len(list)) > stop+1 {
		f.lists[key] = list[start : stop+1]
	}
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Keys(ctx context.Context, pattern string) *redis.StringSliceCmd {
	keys := make([]string, 0)
	for k := range f.data {
		if ok, _ := path.Match(pattern, k); ok {
			keys = append(keys, k)
		}
	}
	return redis.NewStringSliceResult(keys, nil)
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func newTestConfig(t *testing.T) *config.Config {
	t.Setenv("APP_ENV", config.EnvTest)
	t.Setenv("REDIS_URL", "")
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	return cfg
}

func TestRedisStore_LatestRoundTrip(t *testing.T) {
	client := newFakeRedis()
	s := NewRedisStoreWithClient(newTestConfig(t), client)
	ctx := context.Background()

	got, err := s.ReadLatest(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	ts := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	payload := &interfaces.LatestPayload{
		Provider:  "primary",
		Timestamp: ts,
		Rates:     interfaces.RatesTable{"USD": {"BTC": 50000}},
		Meta:      interfaces.PayloadMeta{FetchedAt: ts, FiatBase: "EUR", Providers: []string{"coingecko"}},
	}
	require.NoError(t, s.WriteLatest(ctx, payload))
	assert.Contains(t, client.data, "exchange_rates:latest")

	got, err = s.ReadLatest(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "primary", got.Provider)
	assert.Equal(t, 50000.0, got.Rates["USD"]["BTC"])
	assert.True(t, ts.Equal(got.Timestamp))
}

func TestRedisStore_WriteLatestMergesFields(t *testing.T) {
	client := newFakeRedis()
	client.data["exchange_rates:latest"] = []byte(`{"provider":"none","note":"kept"}`)
	s := NewRedisStoreWithClient(newTestConfig(t), client)

	require.NoError(t, s.WriteLatest(context.Background(), &interfaces.LatestPayload{Provider: "secondary"}))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(client.data["exchange_rates:latest"], &doc))
	assert.Equal(t, "secondary", doc["provider"])
	assert.Equal(t, "kept", doc["note"])
}

func TestRedisStore_Snapshots(t *testing.T) {
	client := newFakeRedis()
	s := NewRedisStoreWithClient(newTestConfig(t), client)
	ctx := context.Background()

	day := time.Date(2026, 3, 14, 23, 30, 0, 0, time.FixedZone("CET", 3600))
	require.NoError(t, s.WriteSnapshot(ctx, &interfaces.SnapshotPayload{Provider: "primary"}, day))
	require.NoError(t, s.WriteSnapshot(ctx, &interfaces.SnapshotPayload{Provider: "primary"}, day.AddDate(0, 0, -2)))
	require.NoError(t, s.WriteFiatSnapshot(ctx, &interfaces.FiatPayload{Provider: "ecb"}, day))
	require.NoError(t, s.WriteLatestFiat(ctx, &interfaces.FiatPayload{Provider: "ecb", Base: "EUR"}))

	assert.Contains(t, client.data, "exchange_rates:history-2026-03-14")
	assert.Contains(t, client.data, "fiat_rates:history-2026-03-14")

	ids, err := s.ListSnapshotIDs(ctx, interfaces.SnapshotCrypto)
	require.NoError(t, err)
	assert.Equal(t, []string{"history-2026-03-12", "history-2026-03-14"}, ids)

	ids, err = s.ListSnapshotIDs(ctx, interfaces.SnapshotFiat)
	require.NoError(t, err)
	assert.Equal(t, []string{"history-2026-03-14"}, ids)

	require.NoError(t, s.DeleteSnapshot(ctx, interfaces.SnapshotCrypto, "history-2026-03-12"))
	assert.NotContains(t, client.data, "exchange_rates:history-2026-03-12")

	fiatLatest, err := s.ReadLatestFiat(ctx)
	require.NoError(t, err)
	assert.Equal(t, "EUR", fiatLatest.Base)
}

func TestRedisStore_MonitoringLog(t *testing.T) {
	client := newFakeRedis()
	s := NewRedisStoreWithClient(newTestConfig(t), client)

	for _, status := range []interfaces.MonitoringStatus{interfaces.StatusOK, interfaces.StatusWarn} {
		require.NoError(t, s.WriteMonitoringLog(context.Background(), interfaces.MonitoringEntry{
			RunID:     "run",
			Operation: "fetch_and_store",
			Status:    status,
		}))
	}

	list := client.lists["monitoring"]
	require.Len(t, list, 2)
	var newest interfaces.MonitoringEntry
	require.NoError(t, json.Unmarshal(list[0], &newest))
	assert.Equal(t, interfaces.StatusWarn, newest.Status)
}

func TestRedisStore_AlertState(t *testing.T) {
	s := NewRedisStoreWithClient(newTestConfig(t), newFakeRedis())
	ctx := context.Background()

	state, err := s.GetAlertState(ctx, "coingecko")
	require.NoError(t, err)
	assert.Nil(t, state)

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, s.SetAlertState(ctx, "coingecko", interfaces.AlertState{FailureCount: 3, FirstSeen: now, LastAlertSentAt: &now}))

	state, err = s.GetAlertState(ctx, "coingecko")
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, 3, state.FailureCount)
	require.NotNil(t, state.LastAlertSentAt)
	assert.True(t, now.Equal(*state.LastAlertSentAt))
}

func TestRedisStore_Errors(t *testing.T) {
	client := newFakeRedis()
	s := NewRedisStoreWithClient(newTestConfig(t), client)
	ctx := context.Background()

	client.pingErr = errors.New("connection refused")
	assert.ErrorContains(t, s.InitStore(ctx), "failed to connect to redis")

	client.setErr = errors.New("READONLY")
	assert.ErrorContains(t, s.WriteSnapshot(ctx, &interfaces.SnapshotPayload{}, time.Now()), "READONLY")

	client.getErr = errors.New("timeout")
	_, err := s.ReadLatest(ctx)
	assert.ErrorContains(t, err, "timeout")
	assert.Error(t, s.WriteLatest(ctx, &interfaces.LatestPayload{}))
}

func TestRedisStore_DryRun(t *testing.T) {
	s, err := NewRedisStore(newTestConfig(t))
	require.NoError(t, err)
	require.True(t, s.DryRun())
	ctx := context.Background()

	assert.NoError(t, s.InitStore(ctx))
	assert.NoError(t, s.WriteLatest(ctx, &interfaces.LatestPayload{}))
	assert.NoError(t, s.WriteSnapshot(ctx, &interfaces.SnapshotPayload{}, time.Now()))
	assert.NoError(t, s.WriteMonitoringLog(ctx, interfaces.MonitoringEntry{}))
	assert.NoError(t, s.DeleteSnapshot(ctx, interfaces.SnapshotFiat, "history-2020-01-01"))

	latest, err := s.ReadLatest(ctx)
	assert.NoError(t, err)
	assert.Nil(t, latest)

	ids, err := s.ListSnapshotIDs(ctx, interfaces.SnapshotCrypto)
	assert.NoError(t, err)
	assert.Empty(t, ids)
}

func TestNewRedisStore_ParsesURL(t *testing.T) {
	t.Setenv("APP_ENV", config.EnvTest)
	t.Setenv("REDIS_URL", "redis://:secret@cache:6380/2")
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	orig := newRedisClient
	t.Cleanup(func() { newRedisClient = orig })

	var captured *redis.Options
	newRedisClient = func(opts *redis.Options) RedisClient {
		captured = opts
		return newFakeRedis()
	}

	s, err := NewRedisStore(cfg)
	require.NoError(t, err)
	assert.False(t, s.DryRun())
	require.NotNil(t, captured)
	assert.Equal(t, "cache:6380", captured.Addr)
	assert.Equal(t, "secret", captured.Password)
	assert.Equal(t, 2, captured.DB)
}

func TestSnapshotID(t *testing.T) {
	day := time.Date(2026, 1, 2, 1, 0, 0, 0, time.FixedZone("X", 3*3600))
	assert.Equal(t, "history-2026-01-01", SnapshotID(day))

	parsed, ok := ParseSnapshotID("history-2026-01-01")
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), parsed)

	_, ok = ParseSnapshotID("latest")
	assert.False(t, ok)
	_, ok = ParseSnapshotID("history-bad")
	assert.False(t, ok)
}
