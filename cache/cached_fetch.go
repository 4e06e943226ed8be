package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/status-im/market-rates/metrics"
)

// CachedFetch returns the value cached under key when it is younger than
// ttl, otherwise calls fetch and caches its result. Fetch errors are
// returned as is and nothing is cached.
func CachedFetch[T any](ctx context.Context, s *Service, key string, ttl time.Duration, fetch func(ctx context.Context) (T, error)) (T, error) {
	if s.Bypassed() {
		return fetch(ctx)
	}

	if entry, ok := s.lookup(key, ttl); ok {
		var cached T
		err := json.Unmarshal(entry.Data, &cached)
		if err == nil {
			metrics.RecordCacheLookup(key, true)
			return cached, nil
		}
		log.Printf("Cache: ignoring undecodable entry %s: %v", key, err)
	}
	metrics.RecordCacheLookup(key, false)

	value, err := fetch(ctx)
	if err != nil {
		return value, err
	}

	data, err := json.Marshal(value)
	if err != nil {
		log.Printf("Cache: failed to encode %s: %v", key, err)
		return value, nil
	}
	s.store(key, Entry{CachedAt: s.now(), Data: data}, ttl)

	return value, nil
}
