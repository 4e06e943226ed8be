package coingecko

import (
	"testing"

	"github.com/status-im/market-rates/cache"
	"github.com/status-im/market-rates/config"
	"github.com/stretchr/testify/require"
)

func newTestConfig(t *testing.T, baseURL string) *config.Config {
	t.Setenv("APP_ENV", config.EnvTest)
	t.Setenv("COINGECKO_BASE_URL", baseURL)
	t.Setenv("COINGECKO_PRO_BASE_URL", baseURL)
	t.Setenv("CACHE_DIR", t.TempDir())

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	return cfg
}

func newTestClient(cfg *config.Config) *Client {
	return NewClient(cfg, cache.NewService(cfg), nil)
}
