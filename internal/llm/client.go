package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"codeexplainer/config"
	"codeexplainer/internal/models"
)

var (
	// ErrEmptyResponse is returned when the backend answered without any text.
	ErrEmptyResponse = errors.New("empty response from backend")
	// ErrRateLimited is returned when the backend refused the call for quota reasons.
	ErrRateLimited = errors.New("rate limited by backend")
	// ErrResponseInvalid is returned when the backend payload could not be decoded.
	ErrResponseInvalid = errors.New("invalid response from backend")
)

// Client defines the interface for LLM clients.
type Client interface {
	// Request sends the rendered prompt and returns the generated text.
	Request(ctx context.Context, doc models.PromptDocument) (string, error)
}

// Generation holds the sampling settings applied to every call.
type Generation struct {
	Temperature float64
	MaxTokens   int
}

// New builds the client for the configured provider. Callers check
// cfg.HasCredential first; New does not decide between AI and heuristic mode.
func New(cfg config.BackendConfig) (Client, error) {
	gen := Generation{Temperature: cfg.Temperature, MaxTokens: cfg.MaxTokens}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second

	switch strings.ToLower(cfg.Provider) {
	case "", config.ProviderGemini:
		return NewGeminiClient(GeminiOptions{
			APIKey:     cfg.APIKey,
			Model:      cfg.Model,
			Generation: gen,
			Timeout:    timeout,
		})
	case config.ProviderOllama:
		return NewOllamaClient(cfg.Host, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown backend provider %q", cfg.Provider)
	}
}
