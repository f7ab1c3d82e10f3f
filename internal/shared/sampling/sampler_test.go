package sampling

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSamplerBounds(t *testing.T) {
	assert := assert.New(t)

	s := New(1)
	for i := 0; i < 100; i++ {
		assert.False(s.Hit(0))
		assert.True(s.Hit(1))
	}
}

func TestSamplerDeterministicWithSeed(t *testing.T) {
	assert := assert.New(t)

	a := New(42)
	b := New(42)
	for i := 0; i < 1000; i++ {
		assert.Equal(a.Hit(0.2), b.Hit(0.2))
	}
}

func TestSamplerApproximatesProbability(t *testing.T) {
	assert := assert.New(t)

	s := New(7)
	hits := 0
	const n = 10000
	for i := 0; i < n; i++ {
		if s.Hit(0.2) {
			hits++
		}
	}
	ratio := float64(hits) / n
	assert.InDelta(0.2, ratio, 0.05)
}

func TestFixedSamplers(t *testing.T) {
	assert := assert.New(t)

	assert.True(Always{}.Hit(0))
	assert.False(Never{}.Hit(1))
}
