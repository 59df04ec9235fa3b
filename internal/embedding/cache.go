package embedding

import (
	"context"

	"go.uber.org/zap"
)

// Cache stores vectors keyed by provider and text. Satisfied by store.Store.
type Cache interface {
	GetEmbedding(ctx context.Context, provider, text string) ([]float64, error)
	SaveEmbedding(ctx context.Context, provider, text string, vector []float64) error
}

type cachedProvider struct {
	inner  Provider
	cache  Cache
	logger *zap.Logger
}

// WithCache wraps a provider with a persistent vector cache. Cache failures
// are logged and ignored; the provider is always the source of truth.
func WithCache(inner Provider, cache Cache, logger *zap.Logger) Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &cachedProvider{inner: inner, cache: cache, logger: logger}
}

func (p *cachedProvider) Name() string { return p.inner.Name() }

func (p *cachedProvider) Embed(ctx context.Context, text string) ([]float64, error) {
	if vec, err := p.cache.GetEmbedding(ctx, p.inner.Name(), text); err == nil && len(vec) > 0 {
		return vec, nil
	} else if err != nil {
		p.logger.Debug("embedding cache read failed", zap.Error(err))
	}

	vec, err := p.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	if err := p.cache.SaveEmbedding(ctx, p.inner.Name(), text, vec); err != nil {
		p.logger.Debug("embedding cache write failed", zap.Error(err))
	}
	return vec, nil
}
