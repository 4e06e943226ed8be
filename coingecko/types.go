package coingecko

const (
	// ProviderName identifies the primary provider in results, metrics and logs
	ProviderName = "coingecko"

	SimplePricePath = "/api/v3/simple/price"
	CoinsListPath   = "/api/v3/coins/list"
	MarketsPath     = "/api/v3/coins/markets"

	keyTypeDemo = "demo"
)

// CoinListItem is an element of /coins/list
type CoinListItem struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// MarketItem is the subset of /coins/markets used to resolve top-N requests
type MarketItem struct {
	ID            string `json:"id"`
	Symbol        string `json:"symbol"`
	Name          string `json:"name"`
	MarketCapRank int    `json:"market_cap_rank"`
}

// SimplePriceResponse is /simple/price: id -> currency -> price.
// Prices are pointers because the API returns null for unknown pairs.
type SimplePriceResponse map[string]map[string]*float64
