package coinpaprika

const (
	// ProviderName identifies the tertiary provider in results, metrics and logs
	ProviderName = "coinpaprika"

	SearchPath  = "/v1/search"
	TickersPath = "/v1/tickers"
)

// Coin is a search result or top list element
type Coin struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// SearchResponse is /v1/search?type=coins
type SearchResponse struct {
	Coins []Coin `json:"coins"`
}

// TickerQuote is one entry of Ticker.Quotes
type TickerQuote struct {
	Price float64 `json:"price"`
}

// Ticker is /v1/tickers/{id}, quotes are keyed by uppercase currency
type Ticker struct {
	ID     string                 `json:"id"`
	Symbol string                 `json:"symbol"`
	Name   string                 `json:"name"`
	Quotes map[string]TickerQuote `json:"quotes"`
}
