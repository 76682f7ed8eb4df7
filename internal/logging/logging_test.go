package logging

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default config", func(cfg *Config) {}, false},
		{"console format", func(cfg *Config) { cfg.Format = "console" }, false},
		{"bad format", func(cfg *Config) { cfg.Format = "xml" }, true},
		{"negative caller skip", func(cfg *Config) { cfg.Caller.Skip = -1 }, true},
		{"bad redaction pattern", func(cfg *Config) { cfg.Redaction.Patterns = []string{"("} }, true},
		{"empty field value", func(cfg *Config) { cfg.Fields = map[string]string{"env": ""} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)
			logger, err := NewLogger(cfg)
			if tt.wantErr {
				if err == nil {
					t.Error("NewLogger() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewLogger() error = %v", err)
			}
			if logger == nil {
				t.Fatal("NewLogger() returned nil logger")
			}
		})
	}
}

func TestContextFields(t *testing.T) {
	ctx := context.Background()
	if fields := ContextFields(ctx); len(fields) != 0 {
		t.Errorf("empty context produced %d fields", len(fields))
	}

	ctx = WithRequestID(ctx, "req_42")
	ctx = WithSessionID(ctx, "sess_7")

	fields := ContextFields(ctx)
	got := map[string]string{}
	for _, f := range fields {
		got[f.Key] = f.String
	}
	if got["request.id"] != "req_42" {
		t.Errorf("request.id = %q, want req_42", got["request.id"])
	}
	if got["session.id"] != "sess_7" {
		t.Errorf("session.id = %q, want sess_7", got["session.id"])
	}
}

func TestFromContext(t *testing.T) {
	tl := NewTestLogger()
	ctx := WithLogger(context.Background(), tl.Logger)

	if FromContext(ctx) != tl.Logger {
		t.Error("FromContext did not return stored logger")
	}
	if FromContext(context.Background()) == nil {
		t.Error("FromContext returned nil for empty context")
	}
}

func TestRedactingEncoder(t *testing.T) {
	base := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	enc, err := NewRedactingEncoder(base, NewDefaultConfig().Redaction)
	if err != nil {
		t.Fatalf("NewRedactingEncoder error: %v", err)
	}

	tests := []struct {
		name string
		key  string
		val  string
		want string
	}{
		{"sensitive key", "api_key", "sk-abcdef1234567890abcdef", "[REDACTED]"},
		{"sensitive key case insensitive", "Authorization", "Basic xyz", "[REDACTED]"},
		{"bearer pattern in value", "note", "header was Bearer abc123", "[REDACTED:pattern]"},
		{"openai key pattern in value", "detail", "using sk-abcdefghij0123456789", "[REDACTED:pattern]"},
		{"clean value passes through", "model", "gpt-4o-mini", "gpt-4o-mini"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clone := enc.Clone().(*RedactingEncoder)
			clone.AddString(tt.key, tt.val)
			buf, err := clone.EncodeEntry(zapcore.Entry{Message: "m"}, nil)
			if err != nil {
				t.Fatalf("EncodeEntry error: %v", err)
			}
			out := buf.String()
			if !strings.Contains(out, tt.want) {
				t.Errorf("output %q missing %q", out, tt.want)
			}
			if tt.want != tt.val && strings.Contains(out, tt.val) {
				t.Errorf("output %q leaked raw value %q", out, tt.val)
			}
		})
	}
}

func TestRedactedString(t *testing.T) {
	f := RedactedString("token", "hunter2")
	if f.String != "[REDACTED:7]" {
		t.Errorf("RedactedString = %q, want [REDACTED:7]", f.String)
	}
}

func TestTestLoggerAssertions(t *testing.T) {
	tl := NewTestLogger()
	ctx := WithRequestID(context.Background(), "req_1")

	tl.Info(ctx, "consultation served", zap.String("provider", "openai"))

	tl.AssertLogged(t, zapcore.InfoLevel, "consultation served")
	tl.AssertNotLogged(t, zapcore.ErrorLevel, "consultation served")
	tl.AssertField(t, "consultation served", "provider", "openai")
	tl.AssertField(t, "consultation served", "request.id", "req_1")

	tl.Reset()
	if len(tl.All()) != 0 {
		t.Error("Reset did not clear entries")
	}
}

func TestChildLoggers(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	parent := &Logger{zap: zap.New(core), config: NewDefaultConfig()}

	child := parent.Named("scraper").With(zap.String("source", "med_device"))
	child.Info(context.Background(), "fetch complete")

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].LoggerName != "scraper" {
		t.Errorf("LoggerName = %q, want scraper", entries[0].LoggerName)
	}
	found := false
	for _, f := range entries[0].Context {
		if f.Key == "source" && f.String == "med_device" {
			found = true
		}
	}
	if !found {
		t.Error("child logger field missing")
	}
}
