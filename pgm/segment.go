package pgm

import "math"

// Key is the set of numeric key types an index can be built over.
// Floating-point keys must not be NaN.
type Key interface {
	int32 | uint32 | int64 | uint64 | float32 | float64
}

// Segment is one linear model of the piecewise approximation. It predicts
// the rank of a key k as Slope*(k-Key) + Intercept, where Key is the first
// key the segment covers.
//
// Slope and Intercept are double precision for every key width; single
// precision accumulates too much error across millions of points.
type Segment[K Key] struct {
	// Key is the origin: the smallest key covered by this segment.
	Key K

	// Slope of the linear model, in ranks per key unit.
	Slope float64

	// Intercept is the predicted rank at the origin key.
	Intercept float64
}

// Predict returns the predicted rank of k, rounded to nearest. The result
// may be negative or beyond the covered range; callers clamp it.
func (s Segment[K]) Predict(k K) int {
	return int(math.Round(s.Slope*keyDelta(k, s.Key) + s.Intercept))
}

// keyDelta returns float64(k - origin) for k >= origin, computed in the
// unsigned domain for integer keys so that the subtraction cannot overflow.
func keyDelta[K Key](k, origin K) float64 {
	switch k := any(k).(type) {
	case int32:
		return float64(uint32(k) - uint32(any(origin).(int32)))
	case uint32:
		return float64(k - any(origin).(uint32))
	case int64:
		return float64(uint64(k) - uint64(any(origin).(int64)))
	case uint64:
		return float64(k - any(origin).(uint64))
	case float32:
		return float64(k) - float64(any(origin).(float32))
	case float64:
		return k - any(origin).(float64)
	default:
		return 0
	}
}

// KeySize returns the byte width of K.
func KeySize[K Key]() int {
	var k K
	switch any(k).(type) {
	case int32, uint32, float32:
		return 4
	default:
		return 8
	}
}

// maxKey returns the largest representable value of K. It anchors the
// per-level sentinel segments so that any query key compares not greater.
func maxKey[K Key]() K {
	var k K
	switch any(k).(type) {
	case int32:
		return any(int32(math.MaxInt32)).(K)
	case uint32:
		return any(uint32(math.MaxUint32)).(K)
	case int64:
		return any(int64(math.MaxInt64)).(K)
	case uint64:
		return any(uint64(math.MaxUint64)).(K)
	case float32:
		return any(float32(math.MaxFloat32)).(K)
	default:
		return any(float64(math.MaxFloat64)).(K)
	}
}

// nextAbove returns a key strictly greater than k when one exists, k
// otherwise. Used to pin the tail of a zero-slope level.
func nextAbove[K Key](k K) K {
	switch v := any(k).(type) {
	case float32:
		return any(math.Nextafter32(v, float32(math.MaxFloat32))).(K)
	case float64:
		return any(math.Nextafter(v, math.MaxFloat64)).(K)
	default:
		if k == maxKey[K]() {
			return k
		}
		return k + 1
	}
}
