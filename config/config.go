package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"
)

// EnvTest switches every component into deterministic test behaviour:
// no disk caching, no jitter, no inter-batch delay and tiny backoffs.
const EnvTest = "test"

type Config struct {
	Env string `yaml:"env" env:"APP_ENV" env-default:"production"`

	Rates       RatesConfig       `yaml:"rates"`
	Coingecko   CoingeckoConfig   `yaml:"coingecko"`
	Binance     BinanceConfig     `yaml:"binance"`
	Coinpaprika CoinpaprikaConfig `yaml:"coinpaprika"`
	Fiat        FiatConfig        `yaml:"fiat"`
	HTTP        HTTPConfig        `yaml:"http"`
	Cache       CacheConfig       `yaml:"cache"`
	Store       StoreConfig       `yaml:"store"`
	Alerting    AlertingConfig    `yaml:"alerting"`
	Staleness   StalenessConfig   `yaml:"staleness"`
	Cleanup     CleanupConfig     `yaml:"cleanup"`
	Server      ServerConfig      `yaml:"server"`
	Tracing     TracingConfig     `yaml:"tracing"`
}

// RatesConfig describes what a single update run requests
type RatesConfig struct {
	CryptoIDs      string        `yaml:"crypto_ids" env:"CRYPTO_IDS" env-default:"bitcoin,ethereum"` // literal list or "top:N"
	UseTopN        int           `yaml:"use_top_n" env:"CRYPTO_USE_TOP_N"`
	FiatCurrencies string        `yaml:"fiat_currencies" env:"FIAT_CURRENCIES" env-default:"usd,eur"`
	CryptoSymbols  string        `yaml:"crypto_symbols" env:"CRYPTO_SYMBOLS"` // explicit fallback symbol override
	UpdateInterval time.Duration `yaml:"update_interval" env:"UPDATE_INTERVAL" env-default:"1h"`
	RecentErrors   int           `yaml:"recent_errors" env:"RECENT_ERRORS_LIMIT" env-default:"5"`
}

type CoingeckoConfig struct {
	BaseURL          string        `yaml:"base_url" env:"COINGECKO_BASE_URL" env-default:"https://api.coingecko.com"`
	ProBaseURL       string        `yaml:"pro_base_url" env:"COINGECKO_PRO_BASE_URL" env-default:"https://pro-api.coingecko.com"`
	APIKey           string        `yaml:"api_key" env:"COINGECKO_API_KEY"`
	KeyType          string        `yaml:"key_type" env:"COINGECKO_KEY_TYPE" env-default:"pro"` // pro or demo
	MaxIDsPerRequest int           `yaml:"max_ids_per_request" env:"COINGECKO_MAX_IDS_PER_REQUEST" env-default:"50"`
	BatchDelay       time.Duration `yaml:"batch_delay" env:"COINGECKO_BATCH_DELAY" env-default:"300ms"`
	Retries          int           `yaml:"retries" env:"COINGECKO_RETRIES" env-default:"3"`
	CoinsCacheTTL    time.Duration `yaml:"coins_cache_ttl" env:"COINGECKO_COINS_CACHE_TTL" env-default:"24h"`
	CoinsCacheLimit  int           `yaml:"coins_cache_limit" env:"COINGECKO_COINS_CACHE_LIMIT" env-default:"1000"`
	RateLimit        RateLimit     `yaml:"rate_limit" env-prefix:"COINGECKO_"`
}

type BinanceConfig struct {
	BaseURL    string    `yaml:"base_url" env:"BINANCE_BASE_URL" env-default:"https://api.binance.com"`
	APIKey     string    `yaml:"api_key" env:"BINANCE_KEY"`
	QuoteAsset string    `yaml:"quote_asset" env:"BINANCE_QUOTE_ASSET" env-default:"USDT"`
	Retries    int       `yaml:"retries" env:"BINANCE_RETRIES" env-default:"2"`
	RateLimit  RateLimit `yaml:"rate_limit" env-prefix:"BINANCE_"`
}

type CoinpaprikaConfig struct {
	BaseURL     string        `yaml:"base_url" env:"COINPAPRIKA_BASE_URL" env-default:"https://api.coinpaprika.com"`
	TopN        int           `yaml:"top_n" env:"COINPAPRIKA_TOP_N" env-default:"250"`
	TopCacheTTL time.Duration `yaml:"top_cache_ttl" env:"COINPAPRIKA_TOP_CACHE_TTL" env-default:"24h"`
	SearchLimit int           `yaml:"search_limit" env:"COINPAPRIKA_SEARCH_LIMIT" env-default:"5"`
	RateLimit   RateLimit     `yaml:"rate_limit" env-prefix:"COINPAPRIKA_"`
}

type FiatConfig struct {
	ECBURL      string `yaml:"ecb_url" env:"FIAT_ECB_URL" env-default:"https://www.ecb.europa.eu/stats/eurofxref/eurofxref-daily.xml"`
	FallbackURL string `yaml:"fallback_url" env:"FIAT_FALLBACK_URL" env-default:"https://api.exchangerate.host/latest?base=EUR"`
	Retries     int    `yaml:"retries" env:"FIAT_RETRIES" env-default:"2"`
}

// HTTPConfig holds the shared transport and retry settings
type HTTPConfig struct {
	Timeout           time.Duration `yaml:"timeout" env:"HTTP_TIMEOUT" env-default:"15s"`
	ConnectionTimeout time.Duration `yaml:"connection_timeout" env:"HTTP_CONNECTION_TIMEOUT" env-default:"10s"`
	RetryCount        int           `yaml:"retry_count" env:"RETRY_COUNT" env-default:"2"`
	RetryBaseDelay    time.Duration `yaml:"retry_base_delay" env:"RETRY_BASE_DELAY" env-default:"100ms"`
	RetryAfterBuffer  time.Duration `yaml:"retry_after_buffer" env:"RETRY_AFTER_BUFFER" env-default:"250ms"`
	UserAgent         string        `yaml:"user_agent" env:"HTTP_USER_AGENT" env-default:"market-rates/1.0"`
}

type CacheConfig struct {
	Dir                   string        `yaml:"dir" env:"CACHE_DIR" env-default:".cache"`
	MemoryCleanupInterval time.Duration `yaml:"memory_cleanup_interval" env:"CACHE_MEMORY_CLEANUP_INTERVAL" env-default:"10m"`
}

type StoreConfig struct {
	RedisURL             string `yaml:"redis_url" env:"REDIS_URL"`
	CryptoCollection     string `yaml:"crypto_collection" env:"EXCHANGE_RATES_COLLECTION" env-default:"exchange_rates"`
	FiatCollection       string `yaml:"fiat_collection" env:"FIAT_RATES_COLLECTION" env-default:"fiat_rates"`
	MonitoringCollection string `yaml:"monitoring_collection" env:"MONITORING_COLLECTION" env-default:"monitoring"`
}

type AlertingConfig struct {
	Enabled  bool   `yaml:"enabled" env:"TELEGRAM_ALERTING_ENABLED"`
	BotToken string `yaml:"bot_token" env:"TELEGRAM_BOT_TOKEN"`
	ChatID   string `yaml:"chat_id" env:"TELEGRAM_CHAT_ID"`
	APIURL   string `yaml:"api_url" env:"TELEGRAM_API_URL" env-default:"https://api.telegram.org"`
}

type StalenessConfig struct {
	StaleAfterHours      int  `yaml:"stale_after_hours" env:"STALE_AFTER_HOURS" env-default:"48"`
	AlertDebounceMinutes int  `yaml:"alert_debounce_minutes" env:"ALERT_DEBOUNCE_MINUTES" env-default:"60"`
	AlertThresholdRuns   int  `yaml:"alert_threshold_runs" env:"ALERT_THRESHOLD_RUNS" env-default:"1"`
	RemediationEnabled   bool `yaml:"remediation_enabled" env:"REMEDIATION_ENABLED"`
}

type CleanupConfig struct {
	RetentionDays int `yaml:"retention_days" env:"SNAPSHOT_RETENTION_DAYS" env-default:"30"`
}

type ServerConfig struct {
	Port string `yaml:"port" env:"PORT" env-default:"8080"`
}

type TracingConfig struct {
	Enabled     bool   `yaml:"enabled" env:"TRACING_ENABLED"`
	Endpoint    string `yaml:"endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT" env-default:"localhost:4317"`
	ServiceName string `yaml:"service_name" env:"OTEL_SERVICE_NAME" env-default:"market-rates"`
}

// LoadConfig reads the optional yaml file at path and then applies environment
// overrides and defaults. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
			// environment only
		default:
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values that would otherwise break the fetch loop
func (c *Config) Validate() error {
	if c.Coingecko.MaxIDsPerRequest <= 0 {
		return fmt.Errorf("coingecko max_ids_per_request must be positive, got %d", c.Coingecko.MaxIDsPerRequest)
	}
	if c.Coingecko.Retries < 0 || c.Binance.Retries < 0 || c.Fiat.Retries < 0 || c.HTTP.RetryCount < 0 {
		return errors.New("retry counts must not be negative")
	}
	if c.Coinpaprika.TopN <= 0 {
		return fmt.Errorf("coinpaprika top_n must be positive, got %d", c.Coinpaprika.TopN)
	}
	if len(c.Rates.FiatList()) == 0 {
		return errors.New("at least one fiat currency is required")
	}
	return nil
}

// IsTestMode reports whether APP_ENV=test
func (c *Config) IsTestMode() bool {
	return strings.EqualFold(c.Env, EnvTest)
}

// FiatList returns the requested fiat currencies, lowercased and de-duplicated
func (r RatesConfig) FiatList() []string {
	return SplitList(r.FiatCurrencies, strings.ToLower)
}

// SymbolOverride returns CRYPTO_SYMBOLS uppercased, or nil when unset
func (r RatesConfig) SymbolOverride() []string {
	list := SplitList(r.CryptoSymbols, strings.ToUpper)
	if len(list) == 0 {
		return nil
	}
	return list
}

// SplitList splits a comma separated value, trims and normalizes every
// element and drops empties and duplicates while keeping order.
func SplitList(raw string, normalize func(string) string) []string {
	result := make([]string, 0)
	seen := make(map[string]struct{})
	for _, part := range strings.Split(raw, ",") {
		item := strings.TrimSpace(part)
		if normalize != nil {
			item = normalize(item)
		}
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		result = append(result, item)
	}
	return result
}

func (s StalenessConfig) StaleAfter() time.Duration {
	return time.Duration(s.StaleAfterHours) * time.Hour
}

func (s StalenessConfig) Debounce() time.Duration {
	return time.Duration(s.AlertDebounceMinutes) * time.Minute
}

func (c CleanupConfig) Retention() time.Duration {
	return time.Duration(c.RetentionDays) * 24 * time.Hour
}
