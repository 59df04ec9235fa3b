package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
)

// Deterministic derives a vector from a hash of the text. The vectors carry
// no semantics, but identical text always maps to identical vectors, which
// keeps ranking stable and tests reproducible.
type Deterministic struct{}

// NewDeterministic creates the hash-based provider.
func NewDeterministic() *Deterministic { return &Deterministic{} }

// Name implements Provider.
func (d *Deterministic) Name() string { return "deterministic" }

// Embed implements Provider. The digest is read as big-endian 4-byte chunks,
// each scaled into [0, 1), and the chunk sequence repeats until the vector is
// full.
func (d *Deterministic) Embed(_ context.Context, text string) ([]float64, error) {
	digest := sha256.Sum256([]byte(text))

	chunks := make([]float64, 0, len(digest)/4)
	for i := 0; i+4 <= len(digest); i += 4 {
		value := binary.BigEndian.Uint32(digest[i : i+4])
		chunks = append(chunks, float64(value%1000)/1000.0)
	}

	vec := make([]float64, Dimensions)
	for i := range vec {
		vec[i] = chunks[i%len(chunks)]
	}
	return vec, nil
}
