package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/status-im/market-rates/config"
	"github.com/status-im/market-rates/interfaces"
)

const (
	latestID        = "latest"
	snapshotPrefix  = "history-"
	snapshotLayout  = "2006-01-02"
	alertStateInfix = "_alerts:"

	// maxMonitoringEntries bounds the monitoring list
	maxMonitoringEntries = 10000
)

// RedisClient is the subset of *redis.Client used by the store
type RedisClient interface {
	Ping(ctx context.Context) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	LPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	LTrim(ctx context.Context, key string, start, stop int64) *redis.StatusCmd
	Keys(ctx context.Context, pattern string) *redis.StringSliceCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

var (
	newRedisClient = func(opts *redis.Options) RedisClient {
		return redis.NewClient(opts)
	}
	parseRedisURL = redis.ParseURL
)

var (
	_ interfaces.IRatesStore      = (*RedisStore)(nil)
	_ interfaces.ISnapshotStore   = (*RedisStore)(nil)
	_ interfaces.IAlertStateStore = (*RedisStore)(nil)
)

// RedisStore keeps documents as JSON values under "<collection>:<id>" keys.
// Without a client every operation is a logged no-op.
type RedisStore struct {
	client     RedisClient
	crypto     string
	fiat       string
	monitoring string
}

// NewRedisStore connects lazily to REDIS_URL. An empty URL gives a dry-run store.
func NewRedisStore(cfg *config.Config) (*RedisStore, error) {
	s := &RedisStore{
		crypto:     cfg.Store.CryptoCollection,
		fiat:       cfg.Store.FiatCollection,
		monitoring: cfg.Store.MonitoringCollection,
	}

	addr := strings.TrimSpace(cfg.Store.RedisURL)
	if addr == "" {
		log.Printf("Store: REDIS_URL is not set, running in dry-run mode")
		return s, nil
	}

	opts := &redis.Options{Addr: addr}
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		parsed, err := parseRedisURL(addr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse REDIS_URL: %w", err)
		}
		opts = parsed
	}
	s.client = newRedisClient(opts)
	return s, nil
}

// NewRedisStoreWithClient is used by tests and callers that own the client
func NewRedisStoreWithClient(cfg *config.Config, client RedisClient) *RedisStore {
	return &RedisStore{
		client:     client,
		crypto:     cfg.Store.CryptoCollection,
		fiat:       cfg.Store.FiatCollection,
		monitoring: cfg.Store.MonitoringCollection,
	}
}

// DryRun reports whether writes are skipped
func (s *RedisStore) DryRun() bool {
	return s.client == nil
}

func (s *RedisStore) InitStore(ctx context.Context) error {
	if s.DryRun() {
		return nil
	}
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	return nil
}

func (s *RedisStore) WriteLatest(ctx context.Context, payload *interfaces.LatestPayload) error {
	return s.mergeDocument(ctx, key(s.crypto, latestID), payload)
}

func (s *RedisStore) WriteSnapshot(ctx context.Context, payload *interfaces.SnapshotPayload, date time.Time) error {
	return s.setDocument(ctx, key(s.crypto, SnapshotID(date)), payload)
}

func (s *RedisStore) WriteLatestFiat(ctx context.Context, payload *interfaces.FiatPayload) error {
	return s.mergeDocument(ctx, key(s.fiat, latestID), payload)
}

func (s *RedisStore) WriteFiatSnapshot(ctx context.Context, payload *interfaces.FiatPayload, date time.Time) error {
	return s.setDocument(ctx, key(s.fiat, SnapshotID(date)), payload)
}

// WriteMonitoringLog prepends entry to the monitoring list
func (s *RedisStore) WriteMonitoringLog(ctx context.Context, entry interfaces.MonitoringEntry) error {
	if s.DryRun() {
		log.Printf("Store: dry-run, monitoring %s/%s status=%s", entry.Operation, entry.Provider, entry.Status)
		return nil
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode monitoring entry: %w", err)
	}
	if err := s.client.LPush(ctx, s.monitoring, data).Err(); err != nil {
		return fmt.Errorf("failed to write monitoring entry: %w", err)
	}
	if err := s.client.LTrim(ctx, s.monitoring, 0, maxMonitoringEntries-1).Err(); err != nil {
		log.Printf("Store: failed to trim %s: %v", s.monitoring, err)
	}
	return nil
}

func (s *RedisStore) ReadLatest(ctx context.Context) (*interfaces.LatestPayload, error) {
	var payload interfaces.LatestPayload
	found, err := s.getDocument(ctx, key(s.crypto, latestID), &payload)
	if err != nil || !found {
		return nil, err
	}
	return &payload, nil
}

func (s *RedisStore) ReadLatestFiat(ctx context.Context) (*interfaces.FiatPayload, error) {
	var payload interfaces.FiatPayload
	found, err := s.getDocument(ctx, key(s.fiat, latestID), &payload)
	if err != nil || !found {
		return nil, err
	}
	return &payload, nil
}

// ListSnapshotIDs returns the history ids of a collection, oldest first
func (s *RedisStore) ListSnapshotIDs(ctx context.Context, kind interfaces.SnapshotKind) ([]string, error) {
	if s.DryRun() {
		return []string{}, nil
	}
	collection := s.collection(kind)
	keys, err := s.client.Keys(ctx, key(collection, snapshotPrefix+"*")).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list %s snapshots: %w", collection, err)
	}
	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, strings.TrimPrefix(k, collection+":"))
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *RedisStore) DeleteSnapshot(ctx context.Context, kind interfaces.SnapshotKind, id string) error {
	if s.DryRun() {
		log.Printf("Store: dry-run, skipping delete of %s/%s", kind, id)
		return nil
	}
	collection := s.collection(kind)
	if err := s.client.Del(ctx, key(collection, id)).Err(); err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *RedisStore) GetAlertState(ctx context.Context, alertKey string) (*interfaces.AlertState, error) {
	var state interfaces.AlertState
	found, err := s.getDocument(ctx, s.monitoring+alertStateInfix+alertKey, &state)
	if err != nil || !found {
		return nil, err
	}
	return &state, nil
}

func (s *RedisStore) SetAlertState(ctx context.Context, alertKey string, state interfaces.AlertState) error {
	return s.setDocument(ctx, s.monitoring+alertStateInfix+alertKey, state)
}

func (s *RedisStore) collection(kind interfaces.SnapshotKind) string {
	if kind == interfaces.SnapshotFiat {
		return s.fiat
	}
	return s.crypto
}

func (s *RedisStore) setDocument(ctx context.Context, k string, doc any) error {
	if s.DryRun() {
		log.Printf("Store: dry-run, skipping write of %s", k)
		return nil
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", k, err)
	}
	if err := s.client.Set(ctx, k, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write %s: %w", k, err)
	}
	return nil
}

// mergeDocument overlays the top-level fields of doc on the stored document
func (s *RedisStore) mergeDocument(ctx context.Context, k string, doc any) error {
	if s.DryRun() {
		log.Printf("Store: dry-run, skipping write of %s", k)
		return nil
	}

	merged := make(map[string]json.RawMessage)
	existing, err := s.client.Get(ctx, k).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
	case err != nil:
		return fmt.Errorf("failed to read %s: %w", k, err)
	default:
		if err := json.Unmarshal(existing, &merged); err != nil {
			log.Printf("Store: replacing unreadable document %s: %v", k, err)
			merged = make(map[string]json.RawMessage)
		}
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", k, err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("failed to encode %s: %w", k, err)
	}
	for name, v := range fields {
		merged[name] = v
	}
	return s.setDocument(ctx, k, merged)
}

func (s *RedisStore) getDocument(ctx context.Context, k string, out any) (bool, error) {
	if s.DryRun() {
		return false, nil
	}
	data, err := s.client.Get(ctx, k).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", k, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", k, err)
	}
	return true, nil
}

// SnapshotID returns the history id of date in UTC
func SnapshotID(date time.Time) string {
	return snapshotPrefix + date.UTC().Format(snapshotLayout)
}

// ParseSnapshotID returns the day encoded in a history id
func ParseSnapshotID(id string) (time.Time, bool) {
	if !strings.HasPrefix(id, snapshotPrefix) {
		return time.Time{}, false
	}
	day, err := time.Parse(snapshotLayout, strings.TrimPrefix(id, snapshotPrefix))
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}

func key(collection, id string) string {
	return collection + ":" + id
}
