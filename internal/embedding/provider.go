// Package embedding turns text into vectors for similarity scoring. The
// primary provider calls the Gemini embedding API; a deterministic local
// fallback keeps matching functional without credentials or network access.
package embedding

import (
	"context"

	"go.uber.org/zap"
)

// Dimensions is the vector size every provider must produce.
const Dimensions = 768

// Provider produces an embedding vector for a piece of text.
type Provider interface {
	Name() string
	Embed(ctx context.Context, text string) ([]float64, error)
}

// fallbackProvider wraps a primary provider and falls back to another when
// the primary fails. The request still succeeds, just with weaker vectors.
type fallbackProvider struct {
	primary  Provider
	fallback Provider
	logger   *zap.Logger
}

// WithFallback returns a provider that tries primary first and silently
// degrades to fallback on error.
func WithFallback(primary, fallback Provider, logger *zap.Logger) Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &fallbackProvider{primary: primary, fallback: fallback, logger: logger}
}

func (p *fallbackProvider) Name() string { return p.primary.Name() }

func (p *fallbackProvider) Embed(ctx context.Context, text string) ([]float64, error) {
	vec, err := p.primary.Embed(ctx, text)
	if err == nil {
		return vec, nil
	}
	p.logger.Warn("embedding provider failed, using deterministic fallback",
		zap.String("provider", p.primary.Name()), zap.Error(err))
	return p.fallback.Embed(ctx, text)
}

// New builds the embedding provider for the service. With an API key it is
// Gemini backed by the deterministic fallback; without one it is the
// deterministic provider alone.
func New(ctx context.Context, apiKey string, logger *zap.Logger) (Provider, error) {
	deterministic := NewDeterministic()
	if apiKey == "" {
		return deterministic, nil
	}
	gemini, err := NewGemini(ctx, apiKey)
	if err != nil {
		return nil, err
	}
	return WithFallback(gemini, deterministic, logger), nil
}
