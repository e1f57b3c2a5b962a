package pgm

import "slices"

// EpsilonRecursive is the error bound used for the internal levels of the
// index. The number of segments shrinks geometrically level over level, and
// a window of 2*EpsilonRecursive+1 segments is small enough to resolve with
// a cache-resident scan.
const EpsilonRecursive = 4

// ApproxPosition is the output of a lookup: a central estimate Pos and a
// half-open window [Lo, Hi) of width at most 2*epsilon+1. For a stored key
// the window contains the position of its first occurrence. For an absent
// key the sorted insertion point can lie outside the window; a key above
// every stored key has insertion point Len, which Hi never exceeds.
type ApproxPosition struct {
	Pos int
	Lo  int
	Hi  int
}

// Index is a learned index over a sorted array of keys. It is immutable
// after New and safe for concurrent readers.
//
// All levels live in one flat segment slice, leaves first, the root last;
// levelsOffsets locates each level. Every level carries one trailing
// sentinel segment whose intercept is the level's input size, so that the
// segment after any real segment always bounds its prediction.
type Index[K Key] struct {
	n             int
	epsilon       int
	firstKey      K
	segments      []Segment[K]
	levelsOffsets []int
}

// New builds an index over data, which must be sorted non-decreasing.
// Epsilon is the leaf error bound. The data slice is referenced during the
// build only.
func New[K Key](data []K, epsilon int) *Index[K] {
	idx := &Index[K]{n: len(data), epsilon: epsilon}
	if len(data) == 0 {
		return idx
	}
	idx.firstKey = data[0]
	idx.levelsOffsets = append(idx.levelsOffsets, 0)
	idx.segments = make([]Segment[K], 0, len(data)/(epsilon*epsilon)+4)

	emit := func(s Segment[K]) { idx.segments = append(idx.segments, s) }

	// buildLevel segments m keys and closes the level: a flat tail segment
	// when the last model cannot grow past its origin, then the sentinel.
	buildLevel := func(m, eps int, at func(int) K) int {
		c := makeSegmentation(m, eps, at, emit)
		if last := idx.segments[len(idx.segments)-1]; last.Slope == 0 && m > 1 {
			emit(Segment[K]{Key: nextAbove(at(m - 1)), Intercept: float64(m)})
			c++
		}
		emit(Segment[K]{Key: maxKey[K](), Intercept: float64(m)})
		return c
	}

	lastN := buildLevel(len(data), epsilon, func(i int) K { return data[i] })
	idx.levelsOffsets = append(idx.levelsOffsets, lastN+1)

	for lastN > 1 {
		offset := idx.levelsOffsets[len(idx.levelsOffsets)-2]
		lastN = buildLevel(lastN, EpsilonRecursive, func(i int) K { return idx.segments[offset+i].Key })
		idx.levelsOffsets = append(idx.levelsOffsets, idx.levelsOffsets[len(idx.levelsOffsets)-1]+lastN+1)
	}

	return idx
}

// Approximate locates q. Hi-Lo <= 2*epsilon+1, and when q is stored the
// returned window [Lo, Hi) contains the position of its first occurrence.
func (idx *Index[K]) Approximate(q K) ApproxPosition {
	if idx.n == 0 {
		return ApproxPosition{}
	}

	k := max(q, idx.firstKey)
	it := idx.levelsOffsets[len(idx.levelsOffsets)-2]

	for l := len(idx.levelsOffsets) - 3; l >= 0; l-- {
		levelBegin := idx.levelsOffsets[l]
		levelLast := idx.levelsOffsets[l+1] - 1 // sentinel slot

		pos := min(idx.segments[it].Predict(k), int(idx.segments[it+1].Intercept))
		if pos < 0 {
			pos = 0
		}

		i := levelBegin + subEps(pos, EpsilonRecursive+1)
		if i >= levelLast {
			i = levelLast - 1
		}
		for i > levelBegin && idx.segments[i].Key > k {
			i--
		}
		for i+1 < levelLast && idx.segments[i+1].Key <= k {
			i++
		}
		it = i
	}

	pos := min(idx.segments[it].Predict(k), int(idx.segments[it+1].Intercept))
	if pos < 0 {
		pos = 0
	}
	if pos > idx.n {
		pos = idx.n
	}

	lo := subEps(pos, idx.epsilon)
	hi := min(pos+idx.epsilon+1, idx.n)
	if hi < pos {
		hi = pos
	}
	return ApproxPosition{Pos: pos, Lo: lo, Hi: hi}
}

// Clone returns a deep copy that shares no storage with idx.
func (idx *Index[K]) Clone() *Index[K] {
	return &Index[K]{
		n:             idx.n,
		epsilon:       idx.epsilon,
		firstKey:      idx.firstKey,
		segments:      slices.Clone(idx.segments),
		levelsOffsets: slices.Clone(idx.levelsOffsets),
	}
}

// Len returns the number of indexed keys.
func (idx *Index[K]) Len() int { return idx.n }

// Epsilon returns the leaf error bound the index was built with.
func (idx *Index[K]) Epsilon() int { return idx.epsilon }

// Height returns the number of levels, zero for an empty index.
func (idx *Index[K]) Height() int {
	if len(idx.levelsOffsets) == 0 {
		return 0
	}
	return len(idx.levelsOffsets) - 1
}

// LeafSegments returns the number of segments in the leaf level.
func (idx *Index[K]) LeafSegments() int {
	if len(idx.levelsOffsets) < 2 {
		return 0
	}
	return idx.levelsOffsets[1] - 1
}

// Segments returns the total number of stored segments, sentinels included.
func (idx *Index[K]) Segments() int { return len(idx.segments) }

// SizeInBytes returns the memory footprint of the segment storage.
func (idx *Index[K]) SizeInBytes() int {
	segSize := KeySize[K]() + 16 // origin key padded to 8, slope, intercept
	if segSize%8 != 0 {
		segSize += 8 - segSize%8
	}
	return len(idx.segments)*segSize + len(idx.levelsOffsets)*8
}

func subEps(x, eps int) int {
	if x <= eps {
		return 0
	}
	return x - eps
}
