package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/status-im/market-rates/config"
	"github.com/status-im/market-rates/core"
	"github.com/status-im/market-rates/tracing"
)

// Run modes
const (
	modeUpdate    = "update"
	modeWarm      = "warm"
	modeCleanup   = "cleanup"
	modeStaleness = "staleness"
	modeServe     = "serve"
)

func main() {
	mode := flag.String("mode", modeUpdate, "run mode: update, warm, cleanup, staleness or serve")
	dryRun := flag.Bool("dry-run", false, "cleanup: only list expired snapshots")
	configPath := flag.String("config", "config.yaml", "optional yaml config file")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: failed to load .env: %v", err)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal("Error loading config:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp, err := tracing.InitTracer(ctx, cfg.Tracing)
	if err != nil {
		log.Fatal("Error initializing tracing:", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	if err := run(ctx, cfg, *mode, *dryRun); err != nil {
		log.Printf("%s failed: %v", *mode, err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, mode string, dryRun bool) error {
	if mode == modeServe {
		return serve(ctx, cfg)
	}

	components, err := core.Build(cfg)
	if err != nil {
		return err
	}
	if err := components.Store.InitStore(ctx); err != nil {
		return err
	}

	switch mode {
	case modeUpdate:
		result, err := components.Rates.Update(ctx)
		if err != nil {
			return err
		}
		log.Printf("Update finished: provider=%s missing=%v", result.Provenance, result.MissingSymbols)

	case modeWarm:
		supported, err := components.CoinGecko.FetchSupportedIDs(ctx)
		if err != nil {
			return err
		}
		log.Printf("Warmed supported ids cache with %d ids", len(supported))

	case modeCleanup:
		if _, err := components.Cleaner.Run(ctx, dryRun); err != nil {
			return err
		}

	case modeStaleness:
		result, err := components.Staleness.Run(ctx)
		if err != nil {
			return err
		}
		log.Printf("Staleness check: stale=%t provider=%s alertSent=%t", result.Stale, result.Provider, result.AlertSent)

	default:
		return errors.New("unknown mode " + mode)
	}
	return nil
}

func serve(ctx context.Context, cfg *config.Config) error {
	registry, _, err := core.Setup(ctx, cfg)
	if err != nil {
		return err
	}
	if err := registry.StartAll(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	log.Println("Received shutdown signal, stopping services...")
	registry.StopAll()
	return nil
}
