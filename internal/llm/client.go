package llm

import (
	"context"
	"net/http"
	"time"

	"psyfind/internal/apperr"
	"psyfind/internal/config"
)

// Client is the pluggable text generation capability. Implementations wrap a
// single backend; callers must treat every failure identically and fall back
// to their deterministic path.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// NewFromConfig selects a backend per configuration. In auto mode the choice
// follows the original priority order: local Ollama if reachable, then
// OpenAI, then OpenRouter, then no client at all (nil means fallback-only).
func NewFromConfig(cfg *config.Config) Client {
	switch cfg.LLMProvider {
	case config.ProviderOpenAI:
		return NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.GenerationTimeout)
	case config.ProviderOpenRouter:
		return NewOpenRouterClient(cfg.OpenRouterAPIKey, cfg.OpenRouterModel, cfg.GenerationTimeout)
	case config.ProviderOllama:
		return NewOllamaClient(cfg.OllamaURL, cfg.OllamaModel, cfg.GenerationTimeout)
	case config.ProviderFallback:
		return nil
	default: // auto
		ollama := NewOllamaClient(cfg.OllamaURL, cfg.OllamaModel, cfg.GenerationTimeout)
		if ollama.Available() {
			return ollama
		}
		if cfg.OpenAIAPIKey != "" {
			return NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.GenerationTimeout)
		}
		if cfg.OpenRouterAPIKey != "" {
			return NewOpenRouterClient(cfg.OpenRouterAPIKey, cfg.OpenRouterModel, cfg.GenerationTimeout)
		}
		return nil
	}
}

func capabilityErr(provider string, err error) error {
	return apperr.Capability("generation request failed").
		WithDetails(map[string]interface{}{"provider": provider}).
		WithCause(err)
}

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
