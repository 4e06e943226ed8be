package fetch_common

import (
	"context"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/status-im/market-rates/config"
)

const testModeRetryAfterBuffer = 5 * time.Millisecond

// ClientOptions configures an HTTPClient
type ClientOptions struct {
	LogPrefix         string
	ConnectionTimeout time.Duration // Timeout for establishing connection
	RequestTimeout    time.Duration // Total request timeout including reading response
	RetryAfterBuffer  time.Duration // Added on top of Retry-After before the next attempt
}

// NewClientOptions derives client options from the shared HTTP settings
func NewClientOptions(cfg *config.Config, logPrefix string) ClientOptions {
	opts := ClientOptions{
		LogPrefix:         logPrefix,
		ConnectionTimeout: cfg.HTTP.ConnectionTimeout,
		RequestTimeout:    cfg.HTTP.Timeout,
		RetryAfterBuffer:  cfg.HTTP.RetryAfterBuffer,
	}
	if cfg.IsTestMode() {
		opts.RetryAfterBuffer = testModeRetryAfterBuffer
	}
	return opts
}

// Response is a fully read upstream response
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	Duration   time.Duration
}

// HTTPClient executes upstream requests one attempt at a time and reports
// every outcome to the status handler. Retries are layered on top with Retry.
type HTTPClient struct {
	Client         *http.Client
	Opts           ClientOptions
	StatusHandler  IHttpStatusHandler
	LimiterManager IRateLimiterManager
}

// NewHTTPClient creates a client with connection and request timeouts
func NewHTTPClient(opts ClientOptions, handler IHttpStatusHandler, limiterManager IRateLimiterManager) *HTTPClient {
	client := &http.Client{
		Timeout: opts.RequestTimeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout: opts.ConnectionTimeout,
			}).DialContext,
		},
	}

	return &HTTPClient{
		Client:         client,
		Opts:           opts,
		StatusHandler:  handler,
		LimiterManager: limiterManager,
	}
}

// Execute performs a single request. Non-2xx responses become *StatusError.
// A 429 carrying Retry-After sleeps for that duration plus the buffer before
// returning, so the caller's next attempt starts after the upstream window.
func (c *HTTPClient) Execute(req *http.Request) (*Response, error) {
	ctx := req.Context()

	if c.LimiterManager != nil {
		if limiter := c.LimiterManager.GetLimiterForURL(req.URL); limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				c.onRequest("error")
				return nil, fmt.Errorf("rate limiter wait failed: %w", err)
			}
		}
	}

	start := time.Now()
	resp, err := c.Client.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.onRequest("error")
		return nil, fmt.Errorf("request failed after %.2fs: %w", duration.Seconds(), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.onRequest("error")
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := newStatusError(resp, body)
		switch resp.StatusCode {
		case http.StatusTooManyRequests:
			c.onRequest("rate_limited")
			if statusErr.HasRetryAfter {
				wait := statusErr.RetryAfter + c.Opts.RetryAfterBuffer
				log.Printf("%s: Rate limited by %s, sleeping %s (Retry-After)", c.prefix(), statusErr.URL, wait)
				if err := Sleep(ctx, wait); err != nil {
					return nil, err
				}
			}
		case StatusGeoRestricted:
			c.onRequest("geo_restricted")
		default:
			c.onRequest("error")
		}
		return nil, statusErr
	}

	c.onRequest("success")
	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
		Duration:   duration,
	}, nil
}

// ExecuteWithRetries rebuilds the request for every attempt and runs it under policy
func (c *HTTPClient) ExecuteWithRetries(ctx context.Context, policy RetryPolicy, build func(ctx context.Context) (*http.Request, error)) (*Response, error) {
	if policy.OnRetry == nil && c.StatusHandler != nil {
		policy.OnRetry = c.StatusHandler.OnRetry
	}
	if policy.LogPrefix == "" {
		policy.LogPrefix = c.prefix()
	}
	return Retry(ctx, policy, func(ctx context.Context, attempt int) (*Response, error) {
		req, err := build(ctx)
		if err != nil {
			return nil, Permanent(err)
		}
		return c.Execute(req)
	})
}

func (c *HTTPClient) onRequest(status string) {
	if c.StatusHandler != nil {
		c.StatusHandler.OnRequest(status)
	}
}

func (c *HTTPClient) prefix() string {
	if c.Opts.LogPrefix == "" {
		return "HTTP"
	}
	return c.Opts.LogPrefix
}
