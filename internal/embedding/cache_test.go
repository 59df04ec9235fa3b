package embedding

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryCache struct {
	vectors map[string][]float64
	hits    int
	writes  int
}

func (c *memoryCache) GetEmbedding(_ context.Context, provider, text string) ([]float64, error) {
	vec := c.vectors[provider+"|"+text]
	if vec != nil {
		c.hits++
	}
	return vec, nil
}

func (c *memoryCache) SaveEmbedding(_ context.Context, provider, text string, vector []float64) error {
	if c.vectors == nil {
		c.vectors = make(map[string][]float64)
	}
	c.vectors[provider+"|"+text] = vector
	c.writes++
	return nil
}

func TestWithCache(t *testing.T) {
	cache := &memoryCache{}
	p := WithCache(NewDeterministic(), cache, nil)

	first, err := p.Embed(context.Background(), "resume text")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.writes)
	assert.Equal(t, 0, cache.hits)

	second, err := p.Embed(context.Background(), "resume text")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.writes, "cached call must not re-embed")
	assert.Equal(t, 1, cache.hits)
	assert.Equal(t, first, second)
}
