package generator

import (
	"context"
	"errors"
	"fmt"

	"github.com/fyrsmithlabs/consultd/internal/config"
)

const (
	defaultOpenAIBaseURL    = "https://api.openai.com"
	defaultGroqBaseURL      = "https://api.groq.com/openai"
	defaultAnthropicBaseURL = "https://api.anthropic.com"

	defaultOpenAIModel    = "gpt-4o-mini"
	defaultGroqModel      = "llama-3.3-70b-versatile"
	defaultAnthropicModel = "claude-3-5-sonnet-20241022"
)

var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrGenerationFailed indicates the API request failed
	ErrGenerationFailed = errors.New("generation failed")

	// ErrEmptyResponse indicates the API returned no content
	ErrEmptyResponse = errors.New("empty response from API")
)

// Request is a single completion request.
type Request struct {
	// System is an optional system prompt.
	System string

	// Prompt is the user message.
	Prompt string

	// MaxTokens caps the completion length. Zero uses the client default.
	MaxTokens int

	// Temperature controls sampling. Zero uses the client default.
	Temperature float64
}

// Client generates text completions from a hosted language model.
type Client interface {
	// Complete sends the request and returns the generated text.
	Complete(ctx context.Context, req Request) (string, error)
}

// NewClient creates a generator client based on the configuration.
// Groq exposes an OpenAI-compatible chat API, so both share a client.
func NewClient(cfg config.GeneratorConfig) (Client, error) {
	if !cfg.APIKey.IsSet() {
		return nil, fmt.Errorf("%w: API key required for provider %q", ErrInvalidConfig, cfg.Provider)
	}

	switch cfg.Provider {
	case "openai", "":
		return newOpenAIClient(cfg, defaultOpenAIBaseURL, defaultOpenAIModel), nil
	case "groq":
		return newOpenAIClient(cfg, defaultGroqBaseURL, defaultGroqModel), nil
	case "anthropic":
		return newAnthropicClient(cfg), nil
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", ErrInvalidConfig, cfg.Provider)
	}
}
