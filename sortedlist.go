package pgmgo

import (
	"context"
	"errors"
	"iter"
	"slices"

	"github.com/hupe1980/pgmgo/internal/keyconv"
	"github.com/hupe1980/pgmgo/internal/setalg"
	"github.com/hupe1980/pgmgo/pgm"
	"github.com/hupe1980/pgmgo/resource"
)

// SortedList is an immutable sorted multiset of numeric keys backed by a
// learned index. Duplicates are preserved. A SortedList is sealed after
// construction and safe for any number of concurrent readers.
type SortedList[K pgm.Key] struct {
	container[K]
}

// NewSortedList builds a list from keys, which need not be sorted. The
// input slice is copied, never retained.
func NewSortedList[K pgm.Key](keys []K, optFns ...func(o *Options)) (*SortedList[K], error) {
	c, err := newContainer(keys, false, resolveOptions(optFns))
	if err != nil {
		return nil, err
	}
	return &SortedList[K]{container: c}, nil
}

// NewSortedListFromSeq builds a list by draining a key sequence. Use
// WithSizeHint when the sequence length is known in advance.
func NewSortedListFromSeq[K pgm.Key](seq iter.Seq[K], optFns ...func(o *Options)) (*SortedList[K], error) {
	o := resolveOptions(optFns)
	c, err := containerFromSeq(seq, false, o)
	if err != nil {
		return nil, err
	}
	return &SortedList[K]{container: c}, nil
}

// NewSortedListFromValues builds a list from untyped numeric values,
// converting each to K. A value that cannot be represented as K fails with
// ErrUnsupportedKey.
func NewSortedListFromValues[K pgm.Key](vals []any, optFns ...func(o *Options)) (*SortedList[K], error) {
	o := resolveOptions(optFns)
	keys, err := convertValues[K](vals)
	if err != nil {
		return nil, err
	}
	c, err := ownedContainer(keys, false, o)
	if err != nil {
		return nil, err
	}
	return &SortedList[K]{container: c}, nil
}

// Copy returns a list with the same contents, sharing no storage with l.
func (l *SortedList[K]) Copy() *SortedList[K] {
	return &SortedList[K]{container: l.cloneContainer()}
}

// Rebuild returns a copy of l with updated options. When the epsilon is
// unchanged the segments are cloned instead of recomputed.
func (l *SortedList[K]) Rebuild(optFns ...func(o *Options)) (*SortedList[K], error) {
	c, err := l.rebuildContainer(optFns)
	if err != nil {
		return nil, err
	}
	return &SortedList[K]{container: c}, nil
}

// Slice materializes the subsequence start:stop:step as a new list.
// Negative positions count from the end; a negative step selects in
// descending order and the result is re-sorted.
func (l *SortedList[K]) Slice(start, stop, step int) (*SortedList[K], error) {
	out, err := l.sliceData(start, stop, step)
	if err != nil {
		return nil, err
	}
	return &SortedList[K]{container: sealContainer(out, l.options())}, nil
}

// Merge returns the sorted concatenation of l and other, duplicates from
// both sides preserved.
func (l *SortedList[K]) Merge(other *SortedList[K]) *SortedList[K] {
	return &SortedList[K]{container: l.setOp("merge", other.data, setalg.Merge[K])}
}

// MergeKeys is Merge with a plain key slice, sorted first if needed.
func (l *SortedList[K]) MergeKeys(keys []K) *SortedList[K] {
	return &SortedList[K]{container: l.setOp("merge", sortedCopy(keys), setalg.Merge[K])}
}

// Union returns the sorted union of l and other with duplicates collapsed
// across both inputs.
func (l *SortedList[K]) Union(other *SortedList[K]) *SortedList[K] {
	return &SortedList[K]{container: l.setOp("union", other.data, setalg.Union[K])}
}

// UnionKeys is Union with a plain key slice, sorted first if needed.
func (l *SortedList[K]) UnionKeys(keys []K) *SortedList[K] {
	return &SortedList[K]{container: l.setOp("union", sortedCopy(keys), setalg.Union[K])}
}

// Intersection returns the sorted common elements of l and other. Both
// sides must be duplicate-free; otherwise ErrHasDuplicates is returned.
func (l *SortedList[K]) Intersection(other *SortedList[K]) (*SortedList[K], error) {
	if l.duplicates || other.duplicates {
		return nil, ErrHasDuplicates
	}
	return &SortedList[K]{container: l.setOp("intersection", other.data, setalg.Intersect[K])}, nil
}

// IntersectionKeys is Intersection with a plain key slice. The slice is
// sorted and deduplicated first, so only the receiver can fail the
// duplicate-free precondition.
func (l *SortedList[K]) IntersectionKeys(keys []K) (*SortedList[K], error) {
	if l.duplicates {
		return nil, ErrHasDuplicates
	}
	rhs := sortedCopy(keys)
	if setalg.HasDuplicates(rhs) {
		rhs = setalg.Unique(rhs)
	}
	return &SortedList[K]{container: l.setOp("intersection", rhs, setalg.Intersect[K])}, nil
}

// Difference returns the sorted elements of l that equal no element of
// other. One occurrence on the right removes every equal occurrence on the
// left.
func (l *SortedList[K]) Difference(other *SortedList[K]) *SortedList[K] {
	return &SortedList[K]{container: l.setOp("difference", other.data, differenceKernel[K])}
}

// DifferenceKeys is Difference with a plain key slice, sorted first if
// needed.
func (l *SortedList[K]) DifferenceKeys(keys []K) *SortedList[K] {
	return &SortedList[K]{container: l.setOp("difference", sortedCopy(keys), differenceKernel[K])}
}

// SymmetricDifference returns the sorted elements present on exactly one
// side, duplicates collapsed.
func (l *SortedList[K]) SymmetricDifference(other *SortedList[K]) *SortedList[K] {
	return &SortedList[K]{container: l.setOp("symmetric_difference", other.data, setalg.SymmetricDifference[K])}
}

// SymmetricDifferenceKeys is SymmetricDifference with a plain key slice,
// sorted first if needed.
func (l *SortedList[K]) SymmetricDifferenceKeys(keys []K) *SortedList[K] {
	return &SortedList[K]{container: l.setOp("symmetric_difference", sortedCopy(keys), setalg.SymmetricDifference[K])}
}

// DropDuplicates returns a list holding the first copy of each equal run.
func (l *SortedList[K]) DropDuplicates() *SortedList[K] {
	return &SortedList[K]{container: sealContainer(setalg.Unique(l.data), l.options())}
}

// IsSubsetOf reports whether every distinct element of l appears in other.
// With proper set, other must additionally hold a distinct element missing
// from l.
func (l *SortedList[K]) IsSubsetOf(other *SortedList[K], proper bool) bool {
	subset, strict := setalg.Subset(l.data, other.data)
	if proper {
		return subset && strict
	}
	return subset
}

// IsSupersetOf is IsSubsetOf with the arguments swapped.
func (l *SortedList[K]) IsSupersetOf(other *SortedList[K], proper bool) bool {
	return other.IsSubsetOf(l, proper)
}

// Equal reports elementwise equality of the two sorted key arrays.
func (l *SortedList[K]) Equal(other *SortedList[K]) bool {
	return slices.Equal(l.data, other.data)
}

// String returns a short preview of the contents.
func (l *SortedList[K]) String() string {
	return "SortedList(" + l.preview() + ")"
}

// cloneContainer deep-copies the container core.
func (c *container[K]) cloneContainer() container[K] {
	out := *c
	out.data = slices.Clone(c.data)
	out.index = c.index.Clone()
	return out
}

// rebuildContainer applies option overrides; the index is recomputed only
// when the epsilon changes.
func (c *container[K]) rebuildContainer(optFns []func(o *Options)) (container[K], error) {
	o := c.options()
	for _, fn := range optFns {
		fn(&o)
	}
	if o.Logger == nil {
		o.Logger = noopLogger
	}
	if o.Metrics == nil {
		o.Metrics = NoopMetricsCollector{}
	}
	if o.Epsilon == c.epsilon {
		out := c.cloneContainer()
		out.logger, out.metrics, out.ctrl = o.Logger, o.Metrics, o.Controller
		return out, nil
	}
	if o.Epsilon < MinEpsilon {
		return container[K]{}, &ErrEpsilonTooSmall{Epsilon: o.Epsilon}
	}
	return sealContainer(slices.Clone(c.data), o), nil
}

// containerFromSeq drains seq into an owned buffer, throttled by the
// resource controller when configured.
func containerFromSeq[K pgm.Key](seq iter.Seq[K], dedup bool, o Options) (container[K], error) {
	if o.Epsilon < MinEpsilon {
		return container[K]{}, &ErrEpsilonTooSmall{Epsilon: o.Epsilon}
	}
	keys := make([]K, 0, max(o.SizeHint, 0))
	for k := range resource.ThrottleSeq(context.Background(), o.Controller, seq) {
		keys = append(keys, k)
	}
	return ownedContainer(keys, dedup, o)
}

// ownedContainer is newContainer for a buffer the caller already owns.
func ownedContainer[K pgm.Key](data []K, dedup bool, o Options) (container[K], error) {
	if o.Epsilon < MinEpsilon {
		return container[K]{}, &ErrEpsilonTooSmall{Epsilon: o.Epsilon}
	}
	if !slices.IsSorted(data) {
		slices.Sort(data)
	}
	if dedup {
		data = slices.Clip(slices.Compact(data))
	}
	return sealContainer(data, o), nil
}

func convertValues[K pgm.Key](vals []any) ([]K, error) {
	keys, err := keyconv.ConvertSlice[K](vals)
	if err != nil {
		var ue *keyconv.ErrUnsupported
		if errors.As(err, &ue) {
			return nil, &ErrUnsupportedKey{Value: ue.Value, cause: err}
		}
		return nil, err
	}
	return keys, nil
}

func differenceKernel[K pgm.Key](a, b []K) []K {
	out, _ := setalg.Difference(a, b)
	return out
}
