package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestLoadWithFile_Defaults(t *testing.T) {
	cfg, err := LoadWithFile("")
	if err != nil {
		t.Fatalf("LoadWithFile() error = %v, want nil", err)
	}

	if cfg.Server.Port != 8000 {
		t.Errorf("Server.Port = %d, want 8000", cfg.Server.Port)
	}
	if cfg.Server.ShutdownTimeout.Duration() != 10*time.Second {
		t.Errorf("Server.ShutdownTimeout = %v, want 10s", cfg.Server.ShutdownTimeout.Duration())
	}
	if cfg.VectorStore.Provider != "chromem" {
		t.Errorf("VectorStore.Provider = %q, want chromem", cfg.VectorStore.Provider)
	}
	if cfg.VectorStore.Chromem.VectorSize != 384 {
		t.Errorf("Chromem.VectorSize = %d, want 384", cfg.VectorStore.Chromem.VectorSize)
	}
	if cfg.Embeddings.Provider != "fastembed" {
		t.Errorf("Embeddings.Provider = %q, want fastembed", cfg.Embeddings.Provider)
	}
	if cfg.Embeddings.Model != "BAAI/bge-small-en-v1.5" {
		t.Errorf("Embeddings.Model = %q", cfg.Embeddings.Model)
	}
	if cfg.Generator.Provider != "openai" {
		t.Errorf("Generator.Provider = %q, want openai", cfg.Generator.Provider)
	}
	if cfg.Generator.RequestsPerMinute != 20 {
		t.Errorf("Generator.RequestsPerMinute = %d, want 20", cfg.Generator.RequestsPerMinute)
	}
	if cfg.Consultant.TopK != 3 {
		t.Errorf("Consultant.TopK = %d, want 3", cfg.Consultant.TopK)
	}
	if cfg.Telemetry.Enabled {
		t.Error("Telemetry.Enabled = true, want disabled by default")
	}
	if cfg.Telemetry.Endpoint != "localhost:4317" {
		t.Errorf("Telemetry.Endpoint = %q, want localhost:4317", cfg.Telemetry.Endpoint)
	}
	if cfg.Telemetry.SamplingRate != 1.0 {
		t.Errorf("Telemetry.SamplingRate = %v, want 1.0", cfg.Telemetry.SamplingRate)
	}
}

func TestLoadWithFile_ValidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	yamlContent := `server:
  http_port: 9090

vectorstore:
  provider: qdrant
  qdrant:
    host: qdrant.internal
    port: 6334
    api_key: qd-secret

generator:
  provider: groq
  model: llama-3.1-70b-versatile
  timeout: 90s
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0600); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadWithFile(configPath)
	if err != nil {
		t.Fatalf("LoadWithFile() error = %v, want nil", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.VectorStore.Provider != "qdrant" {
		t.Errorf("VectorStore.Provider = %q, want qdrant", cfg.VectorStore.Provider)
	}
	if cfg.VectorStore.Qdrant.Host != "qdrant.internal" {
		t.Errorf("Qdrant.Host = %q", cfg.VectorStore.Qdrant.Host)
	}
	if cfg.VectorStore.Qdrant.APIKey.Value() != "qd-secret" {
		t.Errorf("Qdrant.APIKey.Value() = %q, want qd-secret", cfg.VectorStore.Qdrant.APIKey.Value())
	}
	if cfg.Generator.Provider != "groq" {
		t.Errorf("Generator.Provider = %q, want groq", cfg.Generator.Provider)
	}
	if cfg.Generator.Timeout.Duration() != 90*time.Second {
		t.Errorf("Generator.Timeout = %v, want 90s", cfg.Generator.Timeout.Duration())
	}
}

func TestLoadWithFile_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadWithFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadWithFile() error = %v, want nil for missing file", err)
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("Server.Port = %d, want default 8000", cfg.Server.Port)
	}
}

func TestLoadWithFile_InsecurePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission checks skipped on windows")
	}
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("server:\n  http_port: 9090\n"), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	_, err := LoadWithFile(configPath)
	if err == nil {
		t.Fatal("LoadWithFile() error = nil, want permission error")
	}
	if !strings.Contains(err.Error(), "insecure config file permissions") {
		t.Errorf("error = %v, want permission error", err)
	}
}

func TestLoadWithFile_EnvOverride(t *testing.T) {
	t.Setenv("SERVER_HTTP_PORT", "9191")
	t.Setenv("GENERATOR_PROVIDER", "anthropic")
	t.Setenv("GENERATOR_API_KEY", "sk-test")

	cfg, err := LoadWithFile("")
	if err != nil {
		t.Fatalf("LoadWithFile() error = %v, want nil", err)
	}
	if cfg.Server.Port != 9191 {
		t.Errorf("Server.Port = %d, want 9191 from env", cfg.Server.Port)
	}
	if cfg.Generator.Provider != "anthropic" {
		t.Errorf("Generator.Provider = %q, want anthropic from env", cfg.Generator.Provider)
	}
	if cfg.Generator.APIKey.Value() != "sk-test" {
		t.Errorf("Generator.APIKey.Value() = %q, want sk-test", cfg.Generator.APIKey.Value())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "valid defaults",
			mutate:  func(cfg *Config) {},
			wantErr: "",
		},
		{
			name:    "bad port",
			mutate:  func(cfg *Config) { cfg.Server.Port = 0 },
			wantErr: "server port",
		},
		{
			name:    "unknown store provider",
			mutate:  func(cfg *Config) { cfg.VectorStore.Provider = "pinecone" },
			wantErr: "vectorstore provider",
		},
		{
			name:    "unknown embeddings provider",
			mutate:  func(cfg *Config) { cfg.Embeddings.Provider = "cohere" },
			wantErr: "embeddings provider",
		},
		{
			name:    "unknown generator provider",
			mutate:  func(cfg *Config) { cfg.Generator.Provider = "mistral" },
			wantErr: "generator provider",
		},
		{
			name:    "temperature out of range",
			mutate:  func(cfg *Config) { cfg.Generator.Temperature = 3.5 },
			wantErr: "temperature",
		},
		{
			name:    "top_k out of range",
			mutate:  func(cfg *Config) { cfg.Consultant.TopK = 100 },
			wantErr: "top_k",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg Config
			applyDefaults(&cfg)
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestSecretRedaction(t *testing.T) {
	s := Secret("super-secret-value")

	if s.String() != "[REDACTED]" {
		t.Errorf("String() = %q, want [REDACTED]", s.String())
	}
	if s.Value() != "super-secret-value" {
		t.Errorf("Value() = %q", s.Value())
	}

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if string(data) != `"[REDACTED]"` {
		t.Errorf("MarshalJSON = %s, want \"[REDACTED]\"", data)
	}

	var empty Secret
	if empty.IsSet() {
		t.Error("empty Secret reports IsSet")
	}
	if empty.String() != "" {
		t.Errorf("empty String() = %q, want empty", empty.String())
	}
}

func TestDuration(t *testing.T) {
	var d Duration
	if err := d.UnmarshalText([]byte("1m30s")); err != nil {
		t.Fatalf("UnmarshalText error: %v", err)
	}
	if d.Duration() != 90*time.Second {
		t.Errorf("Duration() = %v, want 90s", d.Duration())
	}

	if err := d.UnmarshalText([]byte("-5s")); err == nil {
		t.Error("UnmarshalText accepted negative duration")
	}
	if err := d.UnmarshalText([]byte("bogus")); err == nil {
		t.Error("UnmarshalText accepted garbage")
	}
}
