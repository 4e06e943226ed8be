package fetch_common

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/status-im/market-rates/config"
)

const testModeBaseDelay = 5 * time.Millisecond

// RetryPolicy configures Retry. MaxRetries is the number of attempts after the first one.
type RetryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
	Jitter     bool
	LogPrefix  string
	// OnRetry is invoked before every retry, used for metrics
	OnRetry func()
}

// NewRetryPolicy builds a policy from the shared HTTP settings. Test mode
// shrinks the base delay and disables jitter so timings are deterministic.
func NewRetryPolicy(cfg *config.Config, retries int, logPrefix string) RetryPolicy {
	policy := RetryPolicy{
		MaxRetries: retries,
		BaseDelay:  cfg.HTTP.RetryBaseDelay,
		Jitter:     true,
		LogPrefix:  logPrefix,
	}
	if cfg.IsTestMode() {
		policy.BaseDelay = testModeBaseDelay
		policy.Jitter = false
	}
	return policy
}

// WithRetries returns a copy of the policy with a different retry count
func (p RetryPolicy) WithRetries(retries int) RetryPolicy {
	p.MaxRetries = retries
	return p
}

// Retry runs fn until it succeeds, returns a non-retryable error or the
// retry budget is spent. The delay before retry n (0-based) is 2^n * BaseDelay.
func Retry[T any](ctx context.Context, policy RetryPolicy, fn func(ctx context.Context, attempt int) (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt <= policy.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := policy.Backoff(attempt - 1)
			log.Printf("%s: Retry %d/%d in %s after error: %v", policy.prefix(), attempt, policy.MaxRetries, delay, lastErr)
			if policy.OnRetry != nil {
				policy.OnRetry()
			}
			if err := Sleep(ctx, delay); err != nil {
				return zero, err
			}
		}

		result, err := fn(ctx, attempt)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return zero, fmt.Errorf("%w (last error: %v)", ctx.Err(), err)
		}
		if !IsRetryable(err) {
			return zero, err
		}
	}

	if policy.MaxRetries == 0 {
		return zero, lastErr
	}
	return zero, fmt.Errorf("all %d attempts failed: %w", policy.MaxRetries+1, lastErr)
}

// Backoff returns the delay before the retry following the given failed attempt
func (p RetryPolicy) Backoff(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	backoff := p.BaseDelay * time.Duration(uint(1)<<uint(attempt))
	if p.Jitter && backoff > 1 {
		backoff += time.Duration(rand.Int63n(int64(backoff / 2)))
	}
	return backoff
}

func (p RetryPolicy) prefix() string {
	if p.LogPrefix == "" {
		return "Retry"
	}
	return p.LogPrefix
}

// IsRetryable classifies errors: transport failures, 408, 429 and 5xx are
// transient, any other upstream status (400, 404, 451, ...) is final.
func IsRetryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	var pe *permanentError
	if errors.As(err, &pe) {
		return false
	}
	code := StatusCode(err)
	if code == 0 {
		return true
	}
	return isRetryableStatus(code)
}

func isRetryableStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusRequestTimeout,
		http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// Sleep waits for d or until ctx is done
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err as not worth retrying
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}
