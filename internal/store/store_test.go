package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextHashStable(t *testing.T) {
	assert.Equal(t, TextHash("resume text"), TextHash("resume text"))
	assert.NotEqual(t, TextHash("resume text"), TextHash("other text"))
	assert.Len(t, TextHash(""), 64)
}

func TestCloseNilStore(t *testing.T) {
	var s *Store
	assert.NotPanics(t, func() { s.Close() })
}
