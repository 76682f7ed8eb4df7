// Package config provides configuration loading for consultd.
//
// Configuration is layered: hardcoded defaults, then a YAML file, then
// environment variable overrides. See LoadWithFile for the precedence
// rules and environment variable mapping.
package config

import (
	"fmt"
	"time"
)

// Config holds the complete consultd configuration.
type Config struct {
	Server      ServerConfig      `koanf:"server"`
	Logging     LoggingConfig     `koanf:"logging"`
	VectorStore VectorStoreConfig `koanf:"vectorstore"`
	Embeddings  EmbeddingsConfig  `koanf:"embeddings"`
	Generator   GeneratorConfig   `koanf:"generator"`
	Consultant  ConsultantConfig  `koanf:"consultant"`
	Scraper     ScraperConfig     `koanf:"scraper"`
	Pipeline    PipelineConfig    `koanf:"pipeline"`
	Telemetry   TelemetryConfig   `koanf:"telemetry"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host            string   `koanf:"host"`
	Port            int      `koanf:"http_port"`
	ShutdownTimeout Duration `koanf:"shutdown_timeout"`
}

// LoggingConfig holds the logging section. It is translated into the
// logging package's own config at startup.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// VectorStoreConfig selects and configures the vector store backend.
type VectorStoreConfig struct {
	Provider string        `koanf:"provider"`
	Chromem  ChromemConfig `koanf:"chromem"`
	Qdrant   QdrantConfig  `koanf:"qdrant"`
}

// ChromemConfig holds the embedded chromem-go store configuration.
type ChromemConfig struct {
	Path       string `koanf:"path"`
	Collection string `koanf:"collection"`
	VectorSize int    `koanf:"vector_size"`
	Compress   bool   `koanf:"compress"`
}

// QdrantConfig holds the external Qdrant gRPC store configuration.
type QdrantConfig struct {
	Host       string `koanf:"host"`
	Port       int    `koanf:"port"`
	APIKey     Secret `koanf:"api_key"`
	UseTLS     bool   `koanf:"use_tls"`
	Collection string `koanf:"collection"`
	VectorSize int    `koanf:"vector_size"`
}

// EmbeddingsConfig selects and configures the embedding provider.
type EmbeddingsConfig struct {
	Provider string `koanf:"provider"`
	Model    string `koanf:"model"`
	BaseURL  string `koanf:"base_url"`
	APIKey   Secret `koanf:"api_key"`
	CacheDir string `koanf:"cache_dir"`
}

// GeneratorConfig configures the hosted language model client.
type GeneratorConfig struct {
	Provider          string   `koanf:"provider"`
	Model             string   `koanf:"model"`
	APIKey            Secret   `koanf:"api_key"`
	BaseURL           string   `koanf:"base_url"`
	MaxTokens         int      `koanf:"max_tokens"`
	Temperature       float64  `koanf:"temperature"`
	RequestsPerMinute int      `koanf:"requests_per_minute"`
	MaxRetries        int      `koanf:"max_retries"`
	Timeout           Duration `koanf:"timeout"`
}

// ConsultantConfig configures the consultation service.
type ConsultantConfig struct {
	TopK          int  `koanf:"top_k"`
	IncludeImpact bool `koanf:"include_impact"`
}

// ScraperConfig configures corpus scraping.
type ScraperConfig struct {
	SourcesFile string   `koanf:"sources_file"`
	OutputDir   string   `koanf:"output_dir"`
	UserAgent   string   `koanf:"user_agent"`
	Timeout     Duration `koanf:"timeout"`
	Delay       Duration `koanf:"delay"`
	MaxRetries  int      `koanf:"max_retries"`
}

// PipelineConfig configures the offline ingestion pipeline.
type PipelineConfig struct {
	DataDir    string `koanf:"data_dir"`
	SkipScrape bool   `koanf:"skip_scrape"`
}

// TelemetryConfig configures OpenTelemetry export. Export is disabled by
// default so consultd runs without an OTEL collector out of the box.
type TelemetryConfig struct {
	Enabled        bool     `koanf:"enabled"`
	Endpoint       string   `koanf:"endpoint"`
	Protocol       string   `koanf:"protocol"`
	Insecure       bool     `koanf:"insecure"`
	TLSSkipVerify  bool     `koanf:"tls_skip_verify"`
	SamplingRate   float64  `koanf:"sampling_rate"`
	ExportInterval Duration `koanf:"export_interval"`
}

// applyDefaults sets default values for missing configuration fields.
func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8000
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = Duration(10 * time.Second)
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}

	// chromem is the default store: embedded, no external deps
	if cfg.VectorStore.Provider == "" {
		cfg.VectorStore.Provider = "chromem"
	}
	if cfg.VectorStore.Chromem.Path == "" {
		cfg.VectorStore.Chromem.Path = "~/.local/share/consultd/vectorstore"
	}
	if cfg.VectorStore.Chromem.Collection == "" {
		cfg.VectorStore.Chromem.Collection = "ai_use_cases"
	}
	if cfg.VectorStore.Chromem.VectorSize == 0 {
		cfg.VectorStore.Chromem.VectorSize = 384 // bge-small-en-v1.5
	}
	if cfg.VectorStore.Qdrant.Host == "" {
		cfg.VectorStore.Qdrant.Host = "localhost"
	}
	if cfg.VectorStore.Qdrant.Port == 0 {
		cfg.VectorStore.Qdrant.Port = 6334
	}
	if cfg.VectorStore.Qdrant.Collection == "" {
		cfg.VectorStore.Qdrant.Collection = "ai_use_cases"
	}
	if cfg.VectorStore.Qdrant.VectorSize == 0 {
		cfg.VectorStore.Qdrant.VectorSize = 384
	}

	if cfg.Embeddings.Provider == "" {
		cfg.Embeddings.Provider = "fastembed"
	}
	if cfg.Embeddings.Model == "" {
		cfg.Embeddings.Model = "BAAI/bge-small-en-v1.5"
	}
	if cfg.Embeddings.BaseURL == "" {
		cfg.Embeddings.BaseURL = "http://localhost:8080"
	}

	if cfg.Generator.Provider == "" {
		cfg.Generator.Provider = "openai"
	}
	if cfg.Generator.Model == "" {
		cfg.Generator.Model = "gpt-4o-mini"
	}
	if cfg.Generator.MaxTokens == 0 {
		cfg.Generator.MaxTokens = 1500
	}
	if cfg.Generator.Temperature == 0 {
		cfg.Generator.Temperature = 0.7
	}
	if cfg.Generator.RequestsPerMinute == 0 {
		cfg.Generator.RequestsPerMinute = 20
	}
	if cfg.Generator.MaxRetries == 0 {
		cfg.Generator.MaxRetries = 3
	}
	if cfg.Generator.Timeout == 0 {
		cfg.Generator.Timeout = Duration(60 * time.Second)
	}

	if cfg.Consultant.TopK == 0 {
		cfg.Consultant.TopK = 3
	}

	if cfg.Scraper.OutputDir == "" {
		cfg.Scraper.OutputDir = "data/raw"
	}
	if cfg.Scraper.UserAgent == "" {
		cfg.Scraper.UserAgent = "consultd-scraper/1.0"
	}
	if cfg.Scraper.Timeout == 0 {
		cfg.Scraper.Timeout = Duration(30 * time.Second)
	}
	if cfg.Scraper.Delay == 0 {
		cfg.Scraper.Delay = Duration(2 * time.Second)
	}
	if cfg.Scraper.MaxRetries == 0 {
		cfg.Scraper.MaxRetries = 3
	}

	if cfg.Pipeline.DataDir == "" {
		cfg.Pipeline.DataDir = "data"
	}

	if cfg.Telemetry.Endpoint == "" {
		cfg.Telemetry.Endpoint = "localhost:4317"
		cfg.Telemetry.Insecure = true
	}
	if cfg.Telemetry.Protocol == "" {
		cfg.Telemetry.Protocol = "grpc"
	}
	if cfg.Telemetry.SamplingRate == 0 {
		cfg.Telemetry.SamplingRate = 1.0
	}
	if cfg.Telemetry.ExportInterval == 0 {
		cfg.Telemetry.ExportInterval = Duration(15 * time.Second)
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be 1-65535, got %d", c.Server.Port)
	}
	if c.Server.ShutdownTimeout.Duration() <= 0 {
		return fmt.Errorf("shutdown timeout must be > 0")
	}

	switch c.VectorStore.Provider {
	case "chromem", "qdrant":
	default:
		return fmt.Errorf("unknown vectorstore provider %q (chromem, qdrant)", c.VectorStore.Provider)
	}

	switch c.Embeddings.Provider {
	case "fastembed", "openai", "tei":
	default:
		return fmt.Errorf("unknown embeddings provider %q (fastembed, openai, tei)", c.Embeddings.Provider)
	}

	switch c.Generator.Provider {
	case "openai", "groq", "anthropic":
	default:
		return fmt.Errorf("unknown generator provider %q (openai, groq, anthropic)", c.Generator.Provider)
	}
	if c.Generator.Temperature < 0 || c.Generator.Temperature > 2 {
		return fmt.Errorf("generator temperature must be 0-2, got %v", c.Generator.Temperature)
	}
	if c.Generator.RequestsPerMinute < 1 {
		return fmt.Errorf("generator requests_per_minute must be >= 1")
	}

	if c.Consultant.TopK < 1 || c.Consultant.TopK > 50 {
		return fmt.Errorf("consultant top_k must be 1-50, got %d", c.Consultant.TopK)
	}

	return nil
}
