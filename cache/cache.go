package cache

import (
	"encoding/json"
	"time"
)

// Entry is the persisted cache envelope, shared by the memory and file layers
type Entry struct {
	CachedAt time.Time       `json:"cachedAt"`
	Data     json.RawMessage `json:"data"`
}

// FreshAt reports whether the entry is younger than ttl at now
func (e *Entry) FreshAt(now time.Time, ttl time.Duration) bool {
	if e == nil || e.CachedAt.IsZero() {
		return false
	}
	return now.Sub(e.CachedAt) < ttl
}

// Layer is one level of the cache
type Layer interface {
	Read(key string) (*Entry, bool)
	Write(key string, entry Entry, ttl time.Duration) error
}
