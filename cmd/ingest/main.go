// Ingest runs the consultd offline ingestion pipeline: scrape configured
// sources, process pages into AI use cases, chunk them, and store the
// chunks in the vector store.
//
// Usage:
//
//	# Scrape priority sources and rebuild the corpus
//	ingest --config config.yaml
//
//	# Scrape every configured source
//	ingest --config config.yaml --mode all
//
//	# Reuse previously scraped raw data
//	ingest --config config.yaml --skip-scrape
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/fyrsmithlabs/consultd/internal/config"
	"github.com/fyrsmithlabs/consultd/internal/embeddings"
	"github.com/fyrsmithlabs/consultd/internal/logging"
	"github.com/fyrsmithlabs/consultd/internal/pipeline"
	"github.com/fyrsmithlabs/consultd/internal/processor"
	"github.com/fyrsmithlabs/consultd/internal/scraper"
	"github.com/fyrsmithlabs/consultd/internal/vectorstore"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	mode := flag.String("mode", pipeline.ModePriority, "scrape mode: priority or all")
	skipScrape := flag.Bool("skip-scrape", false, "reuse existing raw data instead of scraping")
	flag.Parse()

	if *mode != pipeline.ModePriority && *mode != pipeline.ModeAll {
		fmt.Fprintf(os.Stderr, "invalid mode %q: must be %q or %q\n", *mode, pipeline.ModePriority, pipeline.ModeAll)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("Interrupted, stopping pipeline...")
		cancel()
	}()

	if err := run(ctx, *configPath, *mode, *skipScrape); err != nil {
		log.Fatalf("Pipeline error: %v", err)
	}
}

func run(ctx context.Context, configPath, mode string, skipScrape bool) error {
	cfg, err := config.LoadWithFile(configPath)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if skipScrape {
		cfg.Pipeline.SkipScrape = true
	}

	logger, err := initLogger(cfg)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()
	zl := logger.Underlying()

	embedder, err := embeddings.NewProvider(embeddings.ProviderConfig{
		Provider: cfg.Embeddings.Provider,
		Model:    cfg.Embeddings.Model,
		BaseURL:  cfg.Embeddings.BaseURL,
		APIKey:   cfg.Embeddings.APIKey.Value(),
		CacheDir: cfg.Embeddings.CacheDir,
	})
	if err != nil {
		return fmt.Errorf("initializing embeddings provider: %w", err)
	}
	defer embedder.Close()

	store, err := vectorstore.NewStore(cfg, embedder, zl)
	if err != nil {
		return fmt.Errorf("initializing vector store: %w", err)
	}
	defer store.Close()

	p, err := pipeline.New(pipeline.Options{
		Scraper:       scraper.New(cfg.Scraper, zl),
		Processor:     processor.New(zl),
		Store:         store,
		ScraperConfig: cfg.Scraper,
		Config:        cfg.Pipeline,
		Logger:        zl,
	})
	if err != nil {
		return err
	}

	stats, err := p.Run(ctx, mode)
	if err != nil {
		return err
	}

	zl.Info("ingestion finished",
		zap.Int("pages", stats.Pages),
		zap.Int("use_cases", stats.UseCases),
		zap.Int("chunks", stats.Chunks),
		zap.Int("stored", stats.Stored))

	fmt.Printf("Pipeline complete: %d pages -> %d use cases -> %d chunks (%d stored)\n",
		stats.Pages, stats.UseCases, stats.Chunks, stats.Stored)
	return nil
}

func initLogger(cfg *config.Config) (*logging.Logger, error) {
	logCfg := logging.NewDefaultConfig()

	if cfg.Logging.Level != "" {
		level, err := zapcore.ParseLevel(cfg.Logging.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Logging.Level, err)
		}
		logCfg.Level = level
	}
	if cfg.Logging.Format != "" {
		logCfg.Format = cfg.Logging.Format
	}

	return logging.NewLogger(logCfg)
}
