package fiat

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/status-im/market-rates/config"
	"github.com/status-im/market-rates/fetch_common"
	"github.com/status-im/market-rates/interfaces"
	"github.com/status-im/market-rates/tracing"
)

// Client fetches the daily fiat reference table
type Client struct {
	cfg        *config.Config
	httpClient *fetch_common.HTTPClient
	policy     fetch_common.RetryPolicy
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		cfg: cfg,
		httpClient: fetch_common.NewHTTPClient(
			fetch_common.NewClientOptions(cfg, "Fiat"),
			fetch_common.NewHttpRequestMetricsWriter(ProviderName),
			nil,
		),
		policy: fetch_common.NewRetryPolicy(cfg, cfg.Fiat.Retries, "Fiat"),
	}
}

// FetchFiatTable reads the ECB daily feed and falls back to the JSON feed
// when it cannot be fetched or parsed. There is no provider after that.
func (c *Client) FetchFiatTable(ctx context.Context) (*interfaces.FiatTable, error) {
	ctx, span := tracing.Tracer().Start(ctx, "fiat.fetch-table")
	var err error
	defer func() { tracing.EndSpan(span, err) }()

	table, ecbErr := c.fetchECB(ctx)
	if ecbErr == nil {
		return table, nil
	}
	log.Printf("Fiat: ECB feed failed, trying fallback: %v", ecbErr)

	if c.cfg.Fiat.FallbackURL == "" || ctx.Err() != nil {
		err = ecbErr
		return nil, err
	}

	table, fallbackErr := c.fetchFallback(ctx)
	if fallbackErr != nil {
		err = fmt.Errorf("fiat feeds failed: %w", errors.Join(ecbErr, fallbackErr))
		return nil, err
	}
	return table, nil
}

func (c *Client) fetch(ctx context.Context, rawURL string, accept string) ([]byte, error) {
	resp, err := c.httpClient.ExecuteWithRetries(ctx, c.policy, func(ctx context.Context) (*http.Request, error) {
		return fetch_common.NewRequestBuilder(rawURL, "").
			WithUserAgent(c.cfg.HTTP.UserAgent).
			WithHeader("Accept", accept).
			Build(ctx)
	})
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

func (c *Client) fetchECB(ctx context.Context) (*interfaces.FiatTable, error) {
	body, err := c.fetch(ctx, c.cfg.Fiat.ECBURL, "application/xml")
	if err != nil {
		return nil, err
	}
	return ParseECB(body)
}

func (c *Client) fetchFallback(ctx context.Context) (*interfaces.FiatTable, error) {
	body, err := c.fetch(ctx, c.cfg.Fiat.FallbackURL, "application/json")
	if err != nil {
		return nil, err
	}
	return ParseExchangeRate(body)
}

// ParseECB parses eurofxref-daily.xml, the newest day wins
func ParseECB(body []byte) (*interfaces.FiatTable, error) {
	var envelope ecbEnvelope
	if err := xml.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode ECB feed: %w", err)
	}
	if len(envelope.Cube.Days) == 0 {
		return nil, errors.New("ECB feed has no rates")
	}

	day := envelope.Cube.Days[0]
	rates := make(map[string]float64, len(day.Rates))
	for _, r := range day.Rates {
		value, err := decimal.NewFromString(strings.TrimSpace(r.Rate))
		if err != nil || !value.IsPositive() {
			log.Printf("Fiat: skipping ECB rate %s=%q", r.Currency, r.Rate)
			continue
		}
		rates[r.Currency], _ = value.Float64()
	}

	return newTable(SourceECB, DefaultBase, day.Time, rates)
}

// ParseExchangeRate parses the {base, date, rates} JSON feed
func ParseExchangeRate(body []byte) (*interfaces.FiatTable, error) {
	var decoded exchangeRateResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("failed to decode fiat fallback feed: %w", err)
	}
	base := decoded.Base
	if base == "" {
		base = DefaultBase
	}
	return newTable(SourceExchangeRate, base, decoded.Date, decoded.Rates)
}

// newTable uppercases codes, drops non-positive rates and pins the base at 1
func newTable(source, base, date string, raw map[string]float64) (*interfaces.FiatTable, error) {
	rates := make(map[string]float64, len(raw)+1)
	for code, rate := range raw {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code != "" && rate > 0 {
			rates[code] = rate
		}
	}
	if len(rates) == 0 {
		return nil, fmt.Errorf("%s feed has no usable rates", source)
	}

	base = strings.ToUpper(base)
	rates[base] = 1

	return &interfaces.FiatTable{
		Source: source,
		Base:   base,
		Date:   date,
		Rates:  rates,
	}, nil
}
