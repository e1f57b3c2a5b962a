package pgmgo

import (
	"iter"
	"slices"

	"github.com/hupe1980/pgmgo/internal/setalg"
	"github.com/hupe1980/pgmgo/pgm"
)

// SortedSet is an immutable sorted set of numeric keys backed by a learned
// index. Duplicates are dropped at construction, so every query and set
// operation runs on distinct keys. A SortedSet is sealed after construction
// and safe for any number of concurrent readers.
type SortedSet[K pgm.Key] struct {
	container[K]
}

// NewSortedSet builds a set from keys, which need not be sorted or
// distinct. The input slice is copied, never retained.
func NewSortedSet[K pgm.Key](keys []K, optFns ...func(o *Options)) (*SortedSet[K], error) {
	c, err := newContainer(keys, true, resolveOptions(optFns))
	if err != nil {
		return nil, err
	}
	return &SortedSet[K]{container: c}, nil
}

// NewSortedSetFromSeq builds a set by draining a key sequence. Use
// WithSizeHint when the sequence length is known in advance.
func NewSortedSetFromSeq[K pgm.Key](seq iter.Seq[K], optFns ...func(o *Options)) (*SortedSet[K], error) {
	o := resolveOptions(optFns)
	c, err := containerFromSeq(seq, true, o)
	if err != nil {
		return nil, err
	}
	return &SortedSet[K]{container: c}, nil
}

// NewSortedSetFromValues builds a set from untyped numeric values,
// converting each to K. A value that cannot be represented as K fails with
// ErrUnsupportedKey.
func NewSortedSetFromValues[K pgm.Key](vals []any, optFns ...func(o *Options)) (*SortedSet[K], error) {
	o := resolveOptions(optFns)
	keys, err := convertValues[K](vals)
	if err != nil {
		return nil, err
	}
	c, err := ownedContainer(keys, true, o)
	if err != nil {
		return nil, err
	}
	return &SortedSet[K]{container: c}, nil
}

// NewSortedSetFromList builds a set with the distinct keys of a list. When
// the list is already duplicate-free and the epsilon is unchanged, the
// index is cloned instead of recomputed.
func NewSortedSetFromList[K pgm.Key](l *SortedList[K], optFns ...func(o *Options)) (*SortedSet[K], error) {
	if !l.duplicates {
		c, err := l.rebuildContainer(optFns)
		if err != nil {
			return nil, err
		}
		return &SortedSet[K]{container: c}, nil
	}

	o := l.options()
	for _, fn := range optFns {
		fn(&o)
	}
	c, err := ownedContainer(setalg.Unique(l.data), true, o)
	if err != nil {
		return nil, err
	}
	return &SortedSet[K]{container: c}, nil
}

// Copy returns a set with the same contents, sharing no storage with s.
func (s *SortedSet[K]) Copy() *SortedSet[K] {
	return &SortedSet[K]{container: s.cloneContainer()}
}

// Rebuild returns a copy of s with updated options. When the epsilon is
// unchanged the segments are cloned instead of recomputed.
func (s *SortedSet[K]) Rebuild(optFns ...func(o *Options)) (*SortedSet[K], error) {
	c, err := s.rebuildContainer(optFns)
	if err != nil {
		return nil, err
	}
	return &SortedSet[K]{container: c}, nil
}

// Slice materializes the subsequence start:stop:step as a new set.
// Negative positions count from the end; a negative step selects in
// descending order and the result is re-sorted.
func (s *SortedSet[K]) Slice(start, stop, step int) (*SortedSet[K], error) {
	out, err := s.sliceData(start, stop, step)
	if err != nil {
		return nil, err
	}
	return &SortedSet[K]{container: sealContainer(out, s.options())}, nil
}

// Union returns the set of elements in s, other, or both.
func (s *SortedSet[K]) Union(other *SortedSet[K]) *SortedSet[K] {
	return &SortedSet[K]{container: s.setOp("union", other.data, setalg.Union[K])}
}

// UnionKeys is Union with a plain key slice, sorted first if needed.
func (s *SortedSet[K]) UnionKeys(keys []K) *SortedSet[K] {
	return &SortedSet[K]{container: s.setOp("union", sortedCopy(keys), setalg.Union[K])}
}

// Intersection returns the set of elements in both s and other.
func (s *SortedSet[K]) Intersection(other *SortedSet[K]) *SortedSet[K] {
	return &SortedSet[K]{container: s.setOp("intersection", other.data, setalg.Intersect[K])}
}

// IntersectionKeys is Intersection with a plain key slice. The slice is
// sorted and deduplicated first.
func (s *SortedSet[K]) IntersectionKeys(keys []K) *SortedSet[K] {
	rhs := sortedCopy(keys)
	if setalg.HasDuplicates(rhs) {
		rhs = setalg.Unique(rhs)
	}
	return &SortedSet[K]{container: s.setOp("intersection", rhs, setalg.Intersect[K])}
}

// Difference returns the set of elements of s not found in other.
func (s *SortedSet[K]) Difference(other *SortedSet[K]) *SortedSet[K] {
	return &SortedSet[K]{container: s.setOp("difference", other.data, differenceKernel[K])}
}

// DifferenceKeys is Difference with a plain key slice, sorted first if
// needed.
func (s *SortedSet[K]) DifferenceKeys(keys []K) *SortedSet[K] {
	return &SortedSet[K]{container: s.setOp("difference", sortedCopy(keys), differenceKernel[K])}
}

// SymmetricDifference returns the set of elements found in either s or
// other but not in both.
func (s *SortedSet[K]) SymmetricDifference(other *SortedSet[K]) *SortedSet[K] {
	return &SortedSet[K]{container: s.setOp("symmetric_difference", other.data, setalg.SymmetricDifference[K])}
}

// SymmetricDifferenceKeys is SymmetricDifference with a plain key slice,
// sorted first if needed.
func (s *SortedSet[K]) SymmetricDifferenceKeys(keys []K) *SortedSet[K] {
	return &SortedSet[K]{container: s.setOp("symmetric_difference", sortedCopy(keys), setalg.SymmetricDifference[K])}
}

// IsSubsetOf reports whether every element of s appears in other. With
// proper set, other must additionally hold an element missing from s.
func (s *SortedSet[K]) IsSubsetOf(other *SortedSet[K], proper bool) bool {
	subset, strict := setalg.Subset(s.data, other.data)
	if proper {
		return subset && strict
	}
	return subset
}

// IsSupersetOf is IsSubsetOf with the arguments swapped.
func (s *SortedSet[K]) IsSupersetOf(other *SortedSet[K], proper bool) bool {
	return other.IsSubsetOf(s, proper)
}

// Equal reports elementwise equality of the two sorted key arrays.
func (s *SortedSet[K]) Equal(other *SortedSet[K]) bool {
	return slices.Equal(s.data, other.data)
}

// String returns a short preview of the contents.
func (s *SortedSet[K]) String() string {
	return "SortedSet(" + s.preview() + ")"
}
