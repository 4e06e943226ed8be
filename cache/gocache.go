package cache

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// GoCache is the in-process layer in front of the file cache
type GoCache struct {
	cache *cache.Cache
}

// NewGoCache creates a new GoCache instance
// cleanupInterval: interval for cleaning up expired items
func NewGoCache(cleanupInterval time.Duration) *GoCache {
	return &GoCache{
		cache: cache.New(cache.NoExpiration, cleanupInterval),
	}
}

// Read returns the entry stored under key
func (gc *GoCache) Read(key string) (*Entry, bool) {
	value, found := gc.cache.Get(key)
	if !found {
		return nil, false
	}
	entry, ok := value.(Entry)
	if !ok {
		return nil, false
	}
	return &entry, true
}

// Write stores the entry, it expires ttl after its CachedAt
func (gc *GoCache) Write(key string, entry Entry, ttl time.Duration) error {
	expiration := cache.NoExpiration
	if ttl > 0 {
		expiration = time.Until(entry.CachedAt.Add(ttl))
		if expiration <= 0 {
			return nil
		}
	}
	gc.cache.Set(key, entry, expiration)
	return nil
}

// Clear removes all items from cache
func (gc *GoCache) Clear() {
	gc.cache.Flush()
}

// ItemCount returns the number of items in cache
func (gc *GoCache) ItemCount() int {
	return gc.cache.ItemCount()
}
