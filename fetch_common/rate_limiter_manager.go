package fetch_common

import (
	"math"
	"net/url"
	"sync"

	"github.com/status-im/market-rates/config"
	"golang.org/x/time/rate"
)

// IRateLimiterManager provides a way to get a rate limiter for a request URL
//
//go:generate mockgen -destination=mocks/rate_limiter_manager.go . IRateLimiterManager
type IRateLimiterManager interface {
	GetLimiterForURL(u *url.URL) *rate.Limiter
	SetLimit(host string, limit config.RateLimit)
}

// RateLimiterManager keeps one limiter per upstream host
type RateLimiterManager struct {
	mu            sync.RWMutex
	hostToLimiter map[string]*rate.Limiter
	limits        map[string]config.RateLimit
}

// NewRateLimiterManager creates an empty manager, hosts without a limit are not throttled
func NewRateLimiterManager() *RateLimiterManager {
	return &RateLimiterManager{
		hostToLimiter: make(map[string]*rate.Limiter),
		limits:        make(map[string]config.RateLimit),
	}
}

// SetLimit registers or replaces the limit for a host. A disabled limit removes throttling.
func (m *RateLimiterManager) SetLimit(host string, limit config.RateLimit) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !limit.Enabled() {
		delete(m.limits, host)
		delete(m.hostToLimiter, host)
		return
	}

	if old, ok := m.limits[host]; ok && old == limit {
		return
	}
	m.limits[host] = limit
	l := rate.Limit(float64(limit.RateLimitPerMinute) / 60.0)
	m.hostToLimiter[host] = rate.NewLimiter(l, burstFor(limit, l))
}

// SetLimitForURL registers a limit for the host of rawURL
func (m *RateLimiterManager) SetLimitForURL(rawURL string, limit config.RateLimit) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return
	}
	m.SetLimit(u.Host, limit)
}

// GetLimiterForURL returns the limiter registered for the URL host, or nil
func (m *RateLimiterManager) GetLimiterForURL(u *url.URL) *rate.Limiter {
	if m == nil || u == nil {
		return nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hostToLimiter[u.Host]
}

func burstFor(limit config.RateLimit, l rate.Limit) int {
	if limit.Burst > 0 {
		return limit.Burst
	}
	if l <= 1.0 {
		return 1
	}
	return int(math.Ceil(float64(l)))
}
