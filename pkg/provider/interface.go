package provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/theapemachine/hybrid-travel/pkg/config"
	"github.com/theapemachine/hybrid-travel/pkg/types"
)

// Where the deepseek backend points, and what it asks for, unless configured.
const (
	OpenRouterURL   = "https://openrouter.ai/api/v1/"
	OpenRouterModel = "alibaba/tongyi-deepresearch-30b-a3b:free"
)

// ErrEmptyResponse is returned when a backend answers without any content.
var ErrEmptyResponse = errors.New("chat backend returned no content")

/*
Interface is a chat completion backend. Complete sends the prompt once and
returns the answer text; it never retries, so callers can fall back as soon
as it fails.
*/
type Interface interface {
	Name() string
	Complete(ctx context.Context, prompt types.Prompt) (string, error)
}

// Params are the generation settings shared by every backend.
type Params struct {
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

func defaultParams() Params {
	return Params{
		MaxTokens:   600,
		Temperature: 0.7,
	}
}

// NewParams reads the generation settings from cfg.
func NewParams(cfg config.Chat) Params {
	params := defaultParams()
	params.Model = cfg.Model
	params.Timeout = cfg.Timeout

	if cfg.MaxTokens > 0 {
		params.MaxTokens = cfg.MaxTokens
	}

	if cfg.Temperature > 0 {
		params.Temperature = cfg.Temperature
	}

	return params
}

/*
New builds the backend selected by cfg.Provider. Deepseek, pointed at an
OpenAI-compatible router, is the default.
*/
func New(cfg config.Chat, keys config.Keys) (Interface, error) {
	params := NewParams(cfg)

	switch cfg.Provider {
	case "", "deepseek", "openrouter":
		return NewDeepseekProvider(
			WithDeepseekClient(keys.Deepseek, orDefault(cfg.BaseURL, OpenRouterURL)),
			WithDeepseekParams(params),
		), nil
	case "openai":
		return NewOpenAIProvider(
			WithOpenAIClient(keys.OpenAI, cfg.BaseURL),
			WithOpenAIParams(params),
		), nil
	case "anthropic":
		return NewAnthropicProvider(
			WithAnthropicClient(keys.Anthropic, cfg.BaseURL),
			WithAnthropicParams(params),
		), nil
	case "ollama":
		return NewOllamaProvider(
			WithOllamaHost(cfg.BaseURL),
			WithOllamaParams(params),
		)
	}

	return nil, fmt.Errorf("unknown chat provider %q", cfg.Provider)
}

// withTimeout bounds a single completion when a timeout is configured.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, timeout)
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}

	return value
}
