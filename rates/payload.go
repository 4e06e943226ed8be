package rates

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/status-im/market-rates/fiat"
	"github.com/status-im/market-rates/interfaces"
)

const (
	maxRawResponse  = 2000
	truncatedSuffix = "...[truncated]"
)

// TruncateRaw cuts s to limit bytes and marks the cut
func TruncateRaw(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + truncatedSuffix
}

// payloadInput is everything the payload builders need from a run
type payloadInput struct {
	provenance  string
	providers   []string
	fetchedAt   time.Time
	rates       interfaces.RatesTable
	fiat        *interfaces.FiatTable
	headers     http.Header
	rawResponse string
}

func (in payloadInput) fiatBase() string {
	if in.fiat == nil || in.fiat.Base == "" {
		return fiat.DefaultBase
	}
	return in.fiat.Base
}

func buildLatest(in payloadInput) *interfaces.LatestPayload {
	return &interfaces.LatestPayload{
		Provider:  in.provenance,
		Timestamp: in.fetchedAt,
		Rates:     in.rates,
		Meta: interfaces.PayloadMeta{
			FetchedAt: in.fetchedAt,
			FiatBase:  in.fiatBase(),
			Providers: in.providers,
			Headers:   WhitelistHeaders(in.headers),
		},
	}
}

func buildSnapshot(in payloadInput) *interfaces.SnapshotPayload {
	return &interfaces.SnapshotPayload{
		Provider:  in.provenance,
		Timestamp: in.fetchedAt,
		Rates:     in.rates,
		Meta: interfaces.SnapshotMeta{
			FetchedAt:   in.fetchedAt,
			FiatBase:    in.fiatBase(),
			Providers:   in.providers,
			Headers:     NormalizeHeaders(in.headers),
			RawResponse: TruncateRaw(in.rawResponse, maxRawResponse),
		},
	}
}

func buildFiatPayload(table *interfaces.FiatTable, fetchedAt time.Time) *interfaces.FiatPayload {
	return &interfaces.FiatPayload{
		Provider:  table.Source,
		Timestamp: fetchedAt,
		Base:      table.Base,
		Date:      table.Date,
		Rates:     table.Rates,
	}
}

// rawDump returns the primary response body, or the merged data as JSON
// when the primary provider did not answer.
func rawDump(primaryRaw string, data map[string]interfaces.Quote) string {
	if primaryRaw != "" {
		return primaryRaw
	}
	b, err := json.Marshal(data)
	if err != nil {
		return ""
	}
	return string(b)
}
