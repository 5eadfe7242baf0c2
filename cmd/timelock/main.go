// Package main is the entry point for Timelock Trials.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/samdwyer/timelock/internal/config"
	"github.com/samdwyer/timelock/internal/game"
	"github.com/samdwyer/timelock/internal/observability"
	"github.com/samdwyer/timelock/internal/telemetry"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML configuration file")
	flag.Parse()

	// Load .env file for local development
	// This makes HONEYCOMB_TIMELOCK_API_KEY available
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	if cfg.Telemetry.Enabled {
		setupOTelEnv(cfg.Telemetry.ServiceName)
	}
	shutdown, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		// Not fatal - the game runs without traces
		logger.Warn("telemetry setup failed", zap.Error(err))
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				logger.Error("shutting down telemetry", zap.Error(err))
			}
		}()
	}

	g, err := game.New(game.ConfigFrom(cfg), logger)
	if err != nil {
		logger.Fatal("initializing game", zap.Error(err))
	}
	defer g.Close()

	if err := g.Run(ctx); err != nil {
		g.Close()
		logger.Error("game exited with error", zap.Error(err))
		os.Exit(1)
	}
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv(dataset string) {
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	}

	apiKey := os.Getenv("HONEYCOMB_TIMELOCK_API_KEY")
	if d := os.Getenv("HONEYCOMB_TIMELOCK_DATASET"); d != "" {
		dataset = d
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
