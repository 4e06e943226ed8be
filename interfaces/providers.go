package interfaces

import "context"

//go:generate mockgen -destination=mocks/providers.go . ICoinUniverse,IPrimaryProvider,ISecondaryProvider,ITertiaryProvider,IFiatProvider

// ICoinUniverse resolves and validates configured primary ids
type ICoinUniverse interface {
	FetchSupportedIDs(ctx context.Context) (map[string]struct{}, error)
	ResolveConfiguredIDs(ctx context.Context, raw string, defaultTopN int) ([]string, error)
}

// IPrimaryProvider fetches prices by id in batches
type IPrimaryProvider interface {
	FetchPrices(ctx context.Context, ids []string, vsCurrencies []string) (*ProviderResult, error)
}

// ISecondaryProvider fetches prices symbol by symbol
type ISecondaryProvider interface {
	FetchBySymbol(ctx context.Context, symbols []string) (*ProviderResult, error)
}

// ITertiaryProvider resolves symbols through search before fetching tickers
type ITertiaryProvider interface {
	FetchBySymbolSearch(ctx context.Context, symbols []string) (*ProviderResult, error)
}

// IFiatProvider fetches the daily fiat reference table
type IFiatProvider interface {
	FetchFiatTable(ctx context.Context) (*FiatTable, error)
}
