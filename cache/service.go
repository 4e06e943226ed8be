package cache

import (
	"context"
	"log"
	"time"

	"github.com/status-im/market-rates/config"
)

// Service is the two level TTL cache used by the provider clients
type Service struct {
	memory *GoCache
	files  *FileCache
	bypass bool
	now    func() time.Time
}

// NewService creates the cache. In test mode every lookup goes straight to
// the fetch function so mocked transports stay deterministic.
func NewService(cfg *config.Config) *Service {
	return &Service{
		memory: NewGoCache(cfg.Cache.MemoryCleanupInterval),
		files:  NewFileCache(cfg.Cache.Dir),
		bypass: cfg.IsTestMode(),
		now:    time.Now,
	}
}

// Start implements core.Interface
func (s *Service) Start(ctx context.Context) error {
	if s.bypass {
		log.Printf("Cache: test mode, caching bypassed")
	}
	return nil
}

// Stop implements core.Interface
func (s *Service) Stop() {
	s.memory.Clear()
}

// Bypassed reports whether caching is disabled
func (s *Service) Bypassed() bool {
	return s == nil || s.bypass
}

func (s *Service) lookup(key string, ttl time.Duration) (*Entry, bool) {
	now := s.now()
	if entry, ok := s.memory.Read(key); ok && entry.FreshAt(now, ttl) {
		return entry, true
	}
	if entry, ok := s.files.Read(key); ok && entry.FreshAt(now, ttl) {
		_ = s.memory.Write(key, *entry, ttl)
		return entry, true
	}
	return nil, false
}

// store writes both layers, failures are logged and swallowed
func (s *Service) store(key string, entry Entry, ttl time.Duration) {
	_ = s.memory.Write(key, entry, ttl)
	if err := s.files.Write(key, entry, ttl); err != nil {
		log.Printf("Cache: failed to persist %s: %v", key, err)
	}
}
