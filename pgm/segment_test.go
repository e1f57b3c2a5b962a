package pgm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegmentPredict(t *testing.T) {
	s := Segment[int64]{Key: 100, Slope: 0.5, Intercept: 10}

	assert.Equal(t, 10, s.Predict(100))
	assert.Equal(t, 15, s.Predict(110))
	// Rounds to nearest.
	assert.Equal(t, 12, s.Predict(103))
}

func TestKeyDelta(t *testing.T) {
	t.Run("Unsigned64", func(t *testing.T) {
		var origin uint64 = math.MaxUint64 - 10
		s := Segment[uint64]{Key: origin, Slope: 1, Intercept: 0}
		assert.Equal(t, 10, s.Predict(math.MaxUint64))
	})

	t.Run("SignedAcrossZero", func(t *testing.T) {
		s := Segment[int32]{Key: -5, Slope: 1, Intercept: 0}
		assert.Equal(t, 10, s.Predict(5))
	})

	t.Run("Float", func(t *testing.T) {
		s := Segment[float64]{Key: 0.5, Slope: 2, Intercept: 1}
		assert.Equal(t, 4, s.Predict(2.0))
	})
}

func TestNextAbove(t *testing.T) {
	assert.Equal(t, int64(8), nextAbove(int64(7)))
	assert.Greater(t, nextAbove(1.5), 1.5)
	assert.Equal(t, maxKey[uint32](), nextAbove(maxKey[uint32]()))
}
