package pgm

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// segmentFor returns the last segment whose origin is not greater than k.
func segmentFor[K Key](segs []Segment[K], k K) Segment[K] {
	best := segs[0]
	for _, s := range segs[1:] {
		if s.Key <= k {
			best = s
		}
	}
	return best
}

// checkBound verifies that every key's predicted rank is within epsilon of
// the rank of its first occurrence.
func checkBound[K Key](t *testing.T, keys []K, epsilon int) []Segment[K] {
	t.Helper()

	var segs []Segment[K]
	n := makeSegmentation(len(keys), epsilon, func(i int) K { return keys[i] }, func(s Segment[K]) {
		segs = append(segs, s)
	})
	require.Equal(t, n, len(segs))
	require.NotEmpty(t, segs)

	first := make(map[K]int, len(keys))
	for i, k := range keys {
		if _, ok := first[k]; !ok {
			first[k] = i
		}
	}

	for i, k := range keys {
		s := segmentFor(segs, k)
		got := s.Predict(k)
		want := first[k]
		assert.LessOrEqualf(t, math.Abs(float64(got-want)), float64(epsilon),
			"key %v at index %d predicted %d", k, i, got)
	}
	return segs
}

func TestMakeSegmentation(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		n := makeSegmentation(0, 16, func(i int) int64 { return 0 }, func(Segment[int64]) {
			t.Fatal("emit on empty input")
		})
		assert.Equal(t, 0, n)
	})

	t.Run("SingleKey", func(t *testing.T) {
		segs := checkBound(t, []int64{42}, 16)
		assert.Len(t, segs, 1)
		assert.Equal(t, int64(42), segs[0].Key)
		assert.Equal(t, float64(0), segs[0].Slope)
	})

	t.Run("Linear", func(t *testing.T) {
		keys := make([]int64, 1000)
		for i := range keys {
			keys[i] = int64(i) * 10
		}
		segs := checkBound(t, keys, 16)
		// A perfectly linear set fits one segment.
		assert.Len(t, segs, 1)
	})

	t.Run("UniformRandomGaps", func(t *testing.T) {
		rng := rand.New(rand.NewSource(1))
		keys := make([]uint64, 50_000)
		var k uint64
		for i := range keys {
			k += 1 + uint64(rng.Int63n(1000))
			keys[i] = k
		}
		checkBound(t, keys, 16)
	})

	t.Run("Clustered", func(t *testing.T) {
		rng := rand.New(rand.NewSource(2))
		keys := make([]int64, 0, 30_000)
		base := int64(0)
		for len(keys) < 30_000 {
			base += 1 + rng.Int63n(1 << 30)
			for j := 0; j < 100; j++ {
				keys = append(keys, base+int64(j))
			}
		}
		checkBound(t, keys, 32)
	})

	t.Run("Duplicates", func(t *testing.T) {
		var keys []int64
		for v := int64(1); v <= 3; v++ {
			for j := 0; j < 1000; j++ {
				keys = append(keys, v)
			}
		}
		checkBound(t, keys, 16)
	})

	t.Run("AllEqual", func(t *testing.T) {
		keys := make([]int64, 500)
		for i := range keys {
			keys[i] = 7
		}
		segs := checkBound(t, keys, 16)
		assert.Len(t, segs, 1)
	})

	t.Run("Floats", func(t *testing.T) {
		rng := rand.New(rand.NewSource(3))
		keys := make([]float64, 20_000)
		f := 0.0
		for i := range keys {
			f += rng.Float64()
			keys[i] = f
		}
		checkBound(t, keys, 16)
	})

	t.Run("NegativeKeys", func(t *testing.T) {
		keys := make([]int32, 10_000)
		for i := range keys {
			keys[i] = int32(i)*3 - 15_000
		}
		checkBound(t, keys, 16)
	})

	t.Run("SmallEpsilon", func(t *testing.T) {
		rng := rand.New(rand.NewSource(4))
		keys := make([]uint32, 5_000)
		var k uint32
		for i := range keys {
			k += 1 + uint32(rng.Int31n(100))
			keys[i] = k
		}
		checkBound(t, keys, EpsilonRecursive)
	})
}

func TestMakeSegmentationOriginsIncreasing(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	keys := make([]int64, 10_000)
	var k int64
	for i := range keys {
		k += rng.Int63n(3) // frequent duplicates
		keys[i] = k
	}

	var segs []Segment[int64]
	makeSegmentation(len(keys), 16, func(i int) int64 { return keys[i] }, func(s Segment[int64]) {
		segs = append(segs, s)
	})

	for i := 1; i < len(segs); i++ {
		assert.Less(t, segs[i-1].Key, segs[i].Key)
	}
}
