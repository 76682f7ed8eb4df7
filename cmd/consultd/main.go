// Consultd is a RAG consulting daemon.
//
// It retrieves similar prior AI/ML use cases from a vector store, asks a
// hosted language model for recommendations, and serves consultation,
// impact-analysis, and search endpoints over HTTP.
//
// Usage:
//
//	# Start with defaults (chromem store, fastembed embeddings)
//	consultd
//
//	# Start with a config file; env vars override file values
//	consultd --config /etc/consultd/config.yaml
//	GENERATOR_API_KEY=sk-... consultd
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/fyrsmithlabs/consultd/internal/config"
	"github.com/fyrsmithlabs/consultd/internal/consultant"
	"github.com/fyrsmithlabs/consultd/internal/embeddings"
	"github.com/fyrsmithlabs/consultd/internal/generator"
	apihttp "github.com/fyrsmithlabs/consultd/internal/http"
	"github.com/fyrsmithlabs/consultd/internal/logging"
	"github.com/fyrsmithlabs/consultd/internal/telemetry"
	"github.com/fyrsmithlabs/consultd/internal/vectorstore"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()
	args := flag.Args()

	// Handle subcommands
	if len(args) > 0 {
		switch args[0] {
		case "version":
			printVersion()
			os.Exit(0)
		default:
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[0])
			fmt.Fprintf(os.Stderr, "\nUsage:\n")
			fmt.Fprintf(os.Stderr, "  consultd           Start the consultd daemon\n")
			fmt.Fprintf(os.Stderr, "  consultd version   Show version information\n")
			os.Exit(1)
		}
	}

	// Setup signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		log.Printf("Received signal %v, shutting down gracefully...", sig)
		cancel()
	}()

	if err := run(ctx, *configPath); err != nil {
		log.Fatalf("Server error: %v", err)
	}

	log.Println("Server shutdown complete")
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("consultd by Fyrsmith Labs\n")
	fmt.Printf("Version:    %s\n", version)
	fmt.Printf("Commit:     %s\n", gitCommit)
	fmt.Printf("Build Date: %s\n", buildDate)
}

// run starts the consultd server and blocks until context is cancelled.
//
// Initialization order: config, logger, telemetry, embedder, vector store,
// generator client, consultation services, HTTP server. A missing generator
// API key degrades the daemon instead of failing it: search and stats stay
// up, consult and impact answer 503.
func run(ctx context.Context, configPath string) error {
	cfg, err := config.LoadWithFile(configPath)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logger, err := initLogger(cfg)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer func() {
		_ = logger.Sync() // Best-effort sync on shutdown
	}()
	zl := logger.Underlying()

	zl.Info("starting consultd",
		zap.String("version", version),
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
		zap.String("vectorstore", cfg.VectorStore.Provider),
		zap.String("embeddings", cfg.Embeddings.Provider),
		zap.String("generator", cfg.Generator.Provider))

	tel, err := telemetry.New(ctx, telemetryConfig(cfg), zl)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}
	defer func() {
		_ = tel.Shutdown(context.Background())
	}()

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

	var consultSvc apihttp.ConsultService
	var impactSvc apihttp.ImpactService

	client, err := generator.NewClient(cfg.Generator)
	if err != nil {
		zl.Warn("generator unavailable, consult and impact endpoints disabled",
			zap.Error(err))
	} else {
		analyzer := consultant.NewAnalyzer(client, zl)
		consultSvc = consultant.New(store, client, analyzer, cfg.Consultant, zl)
		impactSvc = analyzer
	}

	srv, err := apihttp.NewServer(consultSvc, impactSvc, store, zl, &apihttp.Config{
		Host: cfg.Server.Host,
		Port: cfg.Server.Port,
	})
	if err != nil {
		return fmt.Errorf("initializing http server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout(cfg))
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// telemetryConfig maps the telemetry section onto the telemetry package
// config, stamping in the build version.
func telemetryConfig(cfg *config.Config) *telemetry.Config {
	tcfg := telemetry.NewDefaultConfig()
	tcfg.Enabled = cfg.Telemetry.Enabled
	tcfg.Endpoint = cfg.Telemetry.Endpoint
	tcfg.Protocol = cfg.Telemetry.Protocol
	tcfg.Insecure = cfg.Telemetry.Insecure
	tcfg.TLSSkipVerify = cfg.Telemetry.TLSSkipVerify
	tcfg.SamplingRate = cfg.Telemetry.SamplingRate
	tcfg.ExportInterval = cfg.Telemetry.ExportInterval.Duration()
	tcfg.ServiceVersion = version
	return tcfg
}

func shutdownTimeout(cfg *config.Config) time.Duration {
	if d := cfg.Server.ShutdownTimeout.Duration(); d > 0 {
		return d
	}
	return 10 * time.Second
}

// initLogger builds the structured logger from the logging section.
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
