package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"news-trader/internal/broker/alpaca"
	"news-trader/internal/broker/brokerobs"
	"news-trader/internal/engine"
	"news-trader/internal/engine/engineobs"
	"news-trader/internal/interfaces"
	"news-trader/internal/llm/gemini"
	"news-trader/internal/llm/llmobs"
	"news-trader/internal/llm/noop"
	"news-trader/internal/llm/openai"
	"news-trader/internal/logger"
	"news-trader/internal/news"
	"news-trader/internal/store"
	"news-trader/internal/trace"
	"news-trader/internal/tradelog"

	"github.com/joho/godotenv"
)

// initializeSystem initializes environment, logger and tracer
func initializeSystem() error {
	// Load environment variables
	_ = godotenv.Load()

	// Initialize logger
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Initialize tracer
	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}

	return nil
}

// compressOldLogs compresses old tradelog files if retention is configured
func compressOldLogs(ctx context.Context) {
	if v := os.Getenv("TRADER_LOG_RETENTION_DAYS"); v != "" {
		var n int
		fmt.Sscanf(v, "%d", &n)
		if err := tradelog.CompressOlder(n); err != nil {
			logger.Warn(ctx, "Failed to compress old logs", "error", err)
		}
	}
}

// initializeGateway initializes the brokerage gateway with observability
func initializeGateway(ctx context.Context, cfg *store.Config) interfaces.Gateway {
	gw := alpaca.New(alpaca.Params{
		Mode:      cfg.Mode,
		APIKey:    os.Getenv("ALPACA_API_KEY"),
		APISecret: os.Getenv("ALPACA_SECRET_KEY"),
	})

	switch cfg.Mode {
	case "DRY_RUN":
		logger.Warn(ctx, "Running in DRY_RUN mode - orders will be simulated")
	case "PAPER":
		logger.Info(ctx, "Trading against the Alpaca paper endpoint")
	case "LIVE":
		logger.Warn(ctx, "LIVE mode - real orders will be placed")
	}

	return brokerobs.Wrap(gw)
}

// initializePredictor initializes the LLM predictor with observability
func initializePredictor(ctx context.Context, cfg *store.Config) interfaces.Predictor {
	var predictor interfaces.Predictor

	switch cfg.LLM.Provider {
	case "GEMINI":
		predictor = gemini.NewPredictor(cfg)
	case "OPENAI":
		predictor = openai.NewPredictor(cfg)
	default:
		predictor = noop.NewPredictor()
		logger.Warn(ctx, "No LLM provider configured - using Noop predictor (never trades)")
	}

	return llmobs.Wrap(predictor)
}

// initializeSources builds the configured news sources from the registry
func initializeSources(ctx context.Context, cfg *store.Config) ([]interfaces.Source, error) {
	registry := news.NewRegistry()

	sources, err := registry.Build(cfg.News.Sources, cfg)
	if err != nil {
		return nil, err
	}
	for _, src := range sources {
		logger.Info(ctx, "News source registered", "source", src.Name())
	}
	return sources, nil
}

// initializeHistory opens the sqlite history store when enabled
func initializeHistory(ctx context.Context, cfg *store.Config) *store.History {
	if !cfg.History.Enabled {
		logger.Info(ctx, "History store disabled")
		return nil
	}
	history, err := store.OpenHistory(cfg.History.Path)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to open history store, continuing without persistence", err, "path", cfg.History.Path)
		return nil
	}
	logger.Info(ctx, "History store opened", "path", cfg.History.Path)
	return history
}

// initializeEngine assembles the trading engine with observability
func initializeEngine(cfg *store.Config, sources []interfaces.Source, predictor interfaces.Predictor, gw interfaces.Gateway, sup *engine.Supervisor, history *store.History) interfaces.Engine {
	eng := engine.New(cfg, sources, predictor, gw, sup, history)
	return engineobs.Wrap(eng)
}

// newSupervisor builds the order supervisor from config
func newSupervisor(gw interfaces.Gateway, history *store.History, cfg *store.Config) *engine.Supervisor {
	delay := time.Duration(cfg.Order.CancelDelaySeconds) * time.Second
	return engine.NewSupervisor(gw, history, delay, cfg.Order.AutoSell.Enabled)
}
