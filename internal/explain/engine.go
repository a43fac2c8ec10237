// Package explain decides, per request, whether an explanation comes from the
// generative backend or from the heuristic summarizer.
package explain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"codeexplainer/config"
	"codeexplainer/internal/llm"
	"codeexplainer/internal/models"
	"codeexplainer/internal/prompt"
	"codeexplainer/internal/summary"

	"github.com/sirupsen/logrus"
)

// ErrMissingCode is returned for requests without any code to explain.
var ErrMissingCode = errors.New("missing code")

const (
	NoteHeuristicMode = "heuristic mode (no credential configured)"
	NoteFallback      = "heuristic fallback after backend error"
)

const defaultTimeout = 60 * time.Second

// Engine holds the process-wide, read-only pieces an explanation needs. It keeps no
// per-request state and is safe for concurrent use.
type Engine struct {
	client  llm.Client
	prompts prompt.Builder
	timeout time.Duration
}

// Option customises an Engine.
type Option func(*Engine)

// WithTimeout bounds each backend call.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithMaxCodeLength caps how much code is embedded in a prompt.
func WithMaxCodeLength(n int) Option {
	return func(e *Engine) { e.prompts.MaxCodeLength = n }
}

// NewEngine creates an Engine. A nil client means no credential is configured and
// every request is answered heuristically.
func NewEngine(client llm.Client, opts ...Option) *Engine {
	e := &Engine{client: client, timeout: defaultTimeout}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewEngineFromConfig wires the backend client described by cfg, if it has a credential.
func NewEngineFromConfig(cfg *config.Config) (*Engine, error) {
	opts := []Option{
		WithTimeout(time.Duration(cfg.Backend.TimeoutSeconds) * time.Second),
		WithMaxCodeLength(cfg.Analysis.MaxPromptLength),
	}
	if !cfg.Backend.HasCredential() {
		logrus.Info("No backend credential configured, explanations will be heuristic")
		return NewEngine(nil, opts...), nil
	}
	client, err := llm.New(cfg.Backend)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", cfg.Backend.Provider, err)
	}
	return NewEngine(client, opts...), nil
}

// AIEnabled reports whether requests will try the backend first.
func (e *Engine) AIEnabled() bool {
	return e.client != nil
}

// Explain produces an explanation of sample, or an answer to question about it when
// question is non-empty. Backend failures are absorbed; the only error is ErrMissingCode.
func (e *Engine) Explain(ctx context.Context, sample models.CodeSample, question string) (models.ExplanationResult, error) {
	if sample.Text == "" {
		return models.ExplanationResult{}, ErrMissingCode
	}
	return e.run(ctx, sample, func() models.PromptDocument {
		return e.prompts.Build(sample, question)
	}), nil
}

// Review produces a two-section code review of sample, with the same fallback rules
// as Explain.
func (e *Engine) Review(ctx context.Context, sample models.CodeSample) (models.ExplanationResult, error) {
	if sample.Text == "" {
		return models.ExplanationResult{}, ErrMissingCode
	}
	return e.run(ctx, sample, func() models.PromptDocument {
		return e.prompts.BuildReview(sample)
	}), nil
}

// run walks CheckCredential -> HeuristicOnly | AttemptAI -> Done | FallbackAfterError.
// There is exactly one backend attempt and no retry.
func (e *Engine) run(ctx context.Context, sample models.CodeSample, render func() models.PromptDocument) models.ExplanationResult {
	log := logrus.WithFields(logrus.Fields{
		"path":     sample.Path,
		"language": sample.DeclaredLanguage,
		"bytes":    len(sample.Text),
	})

	if e.client == nil {
		log.WithField("mode", "heuristic").Debug("Explaining without backend")
		result := summary.Summarize(sample)
		result.Note = NoteHeuristicMode
		return result
	}

	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	start := time.Now()
	text, err := e.client.Request(callCtx, render())
	if err == nil && text == "" {
		err = llm.ErrEmptyResponse
	}
	if err != nil {
		log.WithFields(logrus.Fields{
			"mode":     "fallback",
			"duration": time.Since(start).String(),
		}).WithError(err).Warn("Backend call failed, falling back to heuristic explanation")
		result := summary.Summarize(sample)
		result.Note = NoteFallback
		return result
	}

	log.WithFields(logrus.Fields{
		"mode":     "ai",
		"duration": time.Since(start).String(),
	}).Info("Explanation generated by backend")
	return models.ExplanationResult{Body: text, SourceMode: models.SourceAI}
}
