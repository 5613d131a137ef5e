package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ak18akashrajr/portfolio-llm/internal/educate"
	"github.com/ak18akashrajr/portfolio-llm/internal/insight"
	"github.com/ak18akashrajr/portfolio-llm/internal/interfaces"
	"github.com/ak18akashrajr/portfolio-llm/internal/ledger"
	"github.com/ak18akashrajr/portfolio-llm/internal/llm"
	"github.com/ak18akashrajr/portfolio-llm/internal/llm/llmobs"
	"github.com/ak18akashrajr/portfolio-llm/internal/logger"
	"github.com/ak18akashrajr/portfolio-llm/internal/market"
	"github.com/ak18akashrajr/portfolio-llm/internal/news"
	"github.com/ak18akashrajr/portfolio-llm/internal/querylog"
	"github.com/ak18akashrajr/portfolio-llm/internal/router"
	"github.com/ak18akashrajr/portfolio-llm/internal/session"
	"github.com/ak18akashrajr/portfolio-llm/internal/store"
	"github.com/ak18akashrajr/portfolio-llm/internal/trace"
	"github.com/ak18akashrajr/portfolio-llm/internal/types"

	"github.com/joho/godotenv"
)

// initializeSystem initializes environment, logger, and tracer
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

// loadConfig loads and returns the configuration
func loadConfig(ctx context.Context, path string) (*store.Config, error) {
	cfg, err := store.LoadConfig(path)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err)
		return nil, err
	}
	return cfg, nil
}

// compressOldLogs compresses old query-log files if retention is configured
func compressOldLogs(ctx context.Context) {
	if v := os.Getenv("PORTFOLIO_LOG_RETENTION_DAYS"); v != "" {
		var n int
		fmt.Sscanf(v, "%d", &n)
		if err := querylog.CompressOlder(n); err != nil {
			logger.Warn(ctx, "Failed to compress old logs", "error", err)
		}
	}
}

// loadPortfolio ingests the broker ledger export and derives the series and
// holdings every agent reads from
func loadPortfolio(ctx context.Context, cfg *store.Config) (*types.PortfolioData, error) {
	data, err := ledger.Load(cfg.Ledger.Path)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load ledger", err, "path", cfg.Ledger.Path)
		return nil, err
	}
	logger.Info(ctx, "Portfolio loaded",
		"orders", len(data.Log),
		"holdings", len(data.Holdings),
		"series_days", len(data.Series),
	)
	return data, nil
}

// initializeCompleter initializes the text-generation backend with
// observability middleware
func initializeCompleter(ctx context.Context, cfg *store.Config) interfaces.Completer {
	completer := llm.NewCompleter(cfg)
	if cfg.LLM.Provider == "NOOP" {
		logger.Warn(ctx, "No LLM provider configured - text generation disabled")
	}
	return llmobs.Wrap(completer)
}

// initializePriceSource selects the live price backend
func initializePriceSource(ctx context.Context, cfg *store.Config) interfaces.PriceSource {
	if cfg.Prices.Provider == "KITE" {
		apiKey := os.Getenv("KITE_API_KEY")
		accessToken := os.Getenv("KITE_ACCESS_TOKEN")
		if apiKey == "" || accessToken == "" {
			logger.Warn(ctx, "KITE selected but credentials missing - falling back to Yahoo")
			return market.NewYahooSource()
		}
		logger.Info(ctx, "Using Kite Connect LTP for live prices", "exchange", cfg.Prices.KiteExchange)
		return market.NewKiteSource(apiKey, accessToken, cfg.Prices.KiteExchange)
	}
	logger.Info(ctx, "Using Yahoo Finance quotes for live prices")
	return market.NewYahooSource()
}

// initializeRouter wires the agents together
func initializeRouter(ctx context.Context, cfg *store.Config, data *types.PortfolioData) (*router.Router, *session.Session) {
	completer := initializeCompleter(ctx, cfg)
	src := initializePriceSource(ctx, cfg)
	mkt := market.New(src, cfg.Prices.ExchangeSuffix)

	ins := insight.New(completer, cfg.LLM.InsightTemperature, cfg.Insight.RecentTrades, data)
	if cfg.News.Enabled {
		fetcher := news.NewFetcher(time.Duration(cfg.News.TimeoutSeconds) * time.Second)
		ins.EnableHeadlines(fetcher, cfg.News.MaxHeadlines)
		logger.Info(ctx, "News headline enrichment enabled", "max_headlines", cfg.News.MaxHeadlines)
	}

	edu := educate.New(completer, cfg.LLM.EducateTemperature)
	sess := session.New(cfg.Session.MaxTurns)

	r := router.New(completer, cfg.LLM.ClassifyTemperature, data, mkt, ins, edu,
		cfg.Forecast.HorizonDays, sess)
	return r, sess
}
