package config

// RateLimit represents a simple rpm + burst pair for one upstream provider.
// A zero RateLimitPerMinute disables client side limiting for that provider.
type RateLimit struct {
	RateLimitPerMinute int `yaml:"rate_limit_per_minute" env:"RATE_LIMIT_PER_MINUTE"`
	Burst              int `yaml:"burst" env:"RATE_LIMIT_BURST"`
}

// Enabled reports whether a limiter should be created
func (r RateLimit) Enabled() bool {
	return r.RateLimitPerMinute > 0
}
