package binance

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	// ProviderName identifies the secondary provider in results, metrics and logs
	ProviderName = "binance"

	TickerPricePath = "/api/v3/ticker/price"

	apiKeyHeader = "X-MBX-APIKEY"
)

// TickerPrice is the /ticker/price response for a single symbol
type TickerPrice struct {
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
}

// Float parses the decimal price string, rejecting non-positive values
func (t TickerPrice) Float() (float64, error) {
	d, err := decimal.NewFromString(t.Price)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q for %s: %w", t.Price, t.Symbol, err)
	}
	if !d.IsPositive() {
		return 0, fmt.Errorf("non-positive price %s for %s", d.String(), t.Symbol)
	}
	f, _ := d.Float64()
	return f, nil
}
