package interfaces

import (
	"net/http"
	"time"
)

// Quote maps a lowercase currency code to a positive price
type Quote map[string]float64

// Clone returns a copy of the quote
func (q Quote) Clone() Quote {
	c := make(Quote, len(q))
	for k, v := range q {
		c[k] = v
	}
	return c
}

// ProviderResult is what every provider client returns for one call.
// Data keys are ids for the primary provider and uppercase symbols for the fallbacks.
type ProviderResult struct {
	Provider string
	Data     map[string]Quote
	Headers  http.Header
	Missing  []string

	// InvalidIDs were rejected individually with HTTP 400 during batch isolation
	InvalidIDs []string
	// RecoveredIDs were fetched by per-id requests after their batch failed
	RecoveredIDs []string
	// TriedIDs lists the provider ids attempted per requested symbol
	TriedIDs map[string][]string
	// RawResponse is the first successful response body, kept for snapshots
	RawResponse string
	// Errors holds recoverable per-request failures in the order they happened
	Errors []string
}

// NewProviderResult creates an empty result for provider
func NewProviderResult(provider string) *ProviderResult {
	return &ProviderResult{
		Provider: provider,
		Data:     make(map[string]Quote),
		Headers:  make(http.Header),
		Missing:  make([]string, 0),
		TriedIDs: make(map[string][]string),
	}
}

// RatesTable is keyed by uppercase fiat code, then uppercase asset symbol
type RatesTable map[string]map[string]float64

// FiatTable holds units of currency per one unit of Base, codes are uppercase
type FiatTable struct {
	Source string             `json:"source"`
	Base   string             `json:"base"`
	Date   string             `json:"date,omitempty"`
	Rates  map[string]float64 `json:"rates"`
}

// PayloadMeta is the metadata block of the latest record
type PayloadMeta struct {
	FetchedAt time.Time         `json:"fetchedAt"`
	FiatBase  string            `json:"fiatBase"`
	Providers []string          `json:"providers"`
	Headers   map[string]string `json:"headers"`
}

// LatestPayload is the compact "latest" record
type LatestPayload struct {
	Provider  string      `json:"provider"`
	Timestamp time.Time   `json:"timestamp"`
	Rates     RatesTable  `json:"rates"`
	Meta      PayloadMeta `json:"meta"`
}

// SnapshotMeta carries full headers and the truncated raw response
type SnapshotMeta struct {
	FetchedAt   time.Time         `json:"fetchedAt"`
	FiatBase    string            `json:"fiatBase"`
	Providers   []string          `json:"providers"`
	Headers     map[string]string `json:"headers"`
	RawResponse string            `json:"rawResponse"`
}

// SnapshotPayload is the dated history record
type SnapshotPayload struct {
	Provider  string       `json:"provider"`
	Timestamp time.Time    `json:"timestamp"`
	Rates     RatesTable   `json:"rates"`
	Meta      SnapshotMeta `json:"meta"`
}

// FiatPayload is persisted for the fiat feed, latest and snapshot alike
type FiatPayload struct {
	Provider  string             `json:"provider"`
	Timestamp time.Time          `json:"timestamp"`
	Base      string             `json:"base"`
	Date      string             `json:"date,omitempty"`
	Rates     map[string]float64 `json:"rates"`
}
