package embedding

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeterministicEmbed(t *testing.T) {
	d := NewDeterministic()

	vec, err := d.Embed(context.Background(), "software engineer resume")
	require.NoError(t, err)
	require.Len(t, vec, Dimensions)

	for _, v := range vec {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestDeterministicEmbedStable(t *testing.T) {
	d := NewDeterministic()

	a, err := d.Embed(context.Background(), "same text")
	require.NoError(t, err)
	b, err := d.Embed(context.Background(), "same text")
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := d.Embed(context.Background(), "different text")
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestDeterministicEmbedRepeatsChunks(t *testing.T) {
	d := NewDeterministic()

	vec, err := d.Embed(context.Background(), "anything")
	require.NoError(t, err)

	// sha256 yields eight 4-byte chunks, repeated across the vector.
	for i := 8; i < Dimensions; i++ {
		assert.Equal(t, vec[i%8], vec[i])
	}
}

type failingProvider struct{}

func (failingProvider) Name() string { return "failing" }
func (failingProvider) Embed(context.Context, string) ([]float64, error) {
	return nil, errors.New("boom")
}

func TestWithFallback(t *testing.T) {
	p := WithFallback(failingProvider{}, NewDeterministic(), nil)

	vec, err := p.Embed(context.Background(), "resume text")
	require.NoError(t, err)
	assert.Len(t, vec, Dimensions)
}

func TestNewWithoutKeyUsesDeterministic(t *testing.T) {
	p, err := New(context.Background(), "", nil)
	require.NoError(t, err)
	assert.Equal(t, "deterministic", p.Name())
}
