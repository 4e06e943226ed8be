package core

import (
	"context"
	"fmt"

	"github.com/status-im/market-rates/alert"
	"github.com/status-im/market-rates/api"
	"github.com/status-im/market-rates/binance"
	"github.com/status-im/market-rates/cache"
	"github.com/status-im/market-rates/cleanup"
	"github.com/status-im/market-rates/coingecko"
	"github.com/status-im/market-rates/coinpaprika"
	"github.com/status-im/market-rates/config"
	"github.com/status-im/market-rates/fetch_common"
	"github.com/status-im/market-rates/fiat"
	"github.com/status-im/market-rates/rates"
	"github.com/status-im/market-rates/staleness"
	"github.com/status-im/market-rates/store"
)

// Components are the wired building blocks shared by every run mode
type Components struct {
	Config    *config.Config
	Cache     *cache.Service
	Store     *store.RedisStore
	Alerts    *alert.TelegramSender
	CoinGecko *coingecko.Client
	Rates     *rates.Service
	Staleness *staleness.Checker
	Cleaner   *cleanup.Cleaner
}

// Build wires the provider clients, persistence and alerting from cfg
func Build(cfg *config.Config) (*Components, error) {
	redisStore, err := store.NewRedisStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	cacheService := cache.NewService(cfg)
	limiter := fetch_common.NewRateLimiterManager()
	alerts := alert.NewTelegramSender(cfg)

	cg := coingecko.NewClient(cfg, cacheService, limiter)
	ratesService := rates.NewService(cfg, rates.Providers{
		Universe:  cg,
		Primary:   cg,
		Secondary: binance.NewClient(cfg, limiter),
		Tertiary:  coinpaprika.NewClient(cfg, cacheService, limiter),
		Fiat:      fiat.NewClient(cfg),
	}, redisStore, alerts)

	return &Components{
		Config:    cfg,
		Cache:     cacheService,
		Store:     redisStore,
		Alerts:    alerts,
		CoinGecko: cg,
		Rates:     ratesService,
		Staleness: staleness.NewChecker(cfg, redisStore, redisStore, alerts, ratesService),
		Cleaner:   cleanup.NewCleaner(cfg, redisStore),
	}, nil
}

// Setup creates and registers the services of serve mode
func Setup(ctx context.Context, cfg *config.Config) (*Registry, *Components, error) {
	components, err := Build(cfg)
	if err != nil {
		return nil, nil, err
	}

	registry := NewRegistry()
	registry.Register(components.Cache)

	updater := rates.NewPeriodicUpdater(cfg.Rates.UpdateInterval, components.Rates, components.Store)
	registry.Register(updater)
	registry.Register(cleanup.NewWatcher(components.Cleaner, updater, components.Store.DryRun()))

	registry.Register(api.New(cfg.Server.Port, updater))
	return registry, components, nil
}
