package pgmgo

import (
	"context"
	"fmt"
	"iter"
	"runtime"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/hupe1980/pgmgo/internal/setalg"
	"github.com/hupe1980/pgmgo/pgm"
	"github.com/hupe1980/pgmgo/resource"
)

const (
	// MinEpsilon is the smallest accepted error bound.
	MinEpsilon = 16

	// DefaultEpsilon balances index size against query latency for most
	// workloads.
	DefaultEpsilon = 64

	// Builds of at least this many keys run inside the resource
	// controller's cooperative section, yielding to sibling goroutines
	// before the segmentation pass.
	cooperativeBuildThreshold = 1 << 15
)

// container is the sealed core shared by SortedList and SortedSet: an owned
// sorted key slice plus its learned index. It is never written after
// construction, so any number of goroutines may query it concurrently.
type container[K pgm.Key] struct {
	data       []K
	index      *pgm.Index[K]
	epsilon    int
	duplicates bool

	logger  *Logger
	metrics MetricsCollector
	ctrl    *resource.Controller
}

// newContainer copies keys, sorts them if needed, optionally drops
// duplicates, and builds the index.
func newContainer[K pgm.Key](keys []K, dedup bool, o Options) (container[K], error) {
	return ownedContainer(slices.Clone(keys), dedup, o)
}

// sealContainer takes ownership of the sorted data and builds the index.
func sealContainer[K pgm.Key](data []K, o Options) container[K] {
	c := container[K]{
		data:       data,
		epsilon:    o.Epsilon,
		duplicates: setalg.HasDuplicates(data),
		logger:     o.Logger,
		metrics:    o.Metrics,
		ctrl:       o.Controller,
	}
	c.buildIndex()
	return c
}

func (c *container[K]) buildIndex() {
	start := time.Now()

	if len(c.data) >= cooperativeBuildThreshold {
		ctx := context.Background()
		if c.ctrl.AcquireBuild(ctx) == nil {
			defer c.ctrl.ReleaseBuild()
		}
		_ = c.ctrl.WaitKeys(ctx, len(c.data))
		// Give sibling goroutines a chance to run before the hot pass.
		runtime.Gosched()
	}

	c.index = pgm.New(c.data, c.epsilon)
	c.logger.LogBuild(len(c.data), c.epsilon, c.index.Segments(), c.index.Height(), time.Since(start))
	c.metrics.RecordBuild(len(c.data), time.Since(start), nil)
}

// options returns the construction options a derived container inherits.
func (c *container[K]) options() Options {
	return Options{
		Epsilon:    c.epsilon,
		Logger:     c.logger,
		Metrics:    c.metrics,
		Controller: c.ctrl,
	}
}

// Len returns the number of keys.
func (c *container[K]) Len() int { return len(c.data) }

// Epsilon returns the error bound the container was built with.
func (c *container[K]) Epsilon() int { return c.epsilon }

// HasDuplicates reports whether the container holds at least one pair of
// equal keys.
func (c *container[K]) HasDuplicates() bool { return c.duplicates }

// Contains reports whether an element equal to x is present.
func (c *container[K]) Contains(x K) bool {
	i := c.lowerBound(x)
	return i < len(c.data) && c.data[i] == x
}

// LowerBound returns the leftmost position i in [0, Len] such that
// data[i] >= x.
func (c *container[K]) LowerBound(x K) int { return c.lowerBound(x) }

// UpperBound returns the leftmost position i in [0, Len] such that
// data[i] > x.
func (c *container[K]) UpperBound(x K) int { return c.upperBound(x) }

// BisectLeft returns the insertion point for x that keeps the order, before
// any existing entries equal to x.
func (c *container[K]) BisectLeft(x K) int { return c.lowerBound(x) }

// BisectRight returns the insertion point for x that keeps the order, after
// any existing entries equal to x.
func (c *container[K]) BisectRight(x K) int { return c.upperBound(x) }

// FindLT returns the rightmost element less than x.
func (c *container[K]) FindLT(x K) (K, bool) {
	var zero K
	i := c.lowerBound(x)
	if i == 0 {
		return zero, false
	}
	return c.data[i-1], true
}

// FindLE returns the rightmost element less than or equal to x.
func (c *container[K]) FindLE(x K) (K, bool) {
	var zero K
	i := c.upperBound(x)
	if i == 0 {
		return zero, false
	}
	return c.data[i-1], true
}

// FindGT returns the leftmost element greater than x.
func (c *container[K]) FindGT(x K) (K, bool) {
	var zero K
	i := c.upperBound(x)
	if i >= len(c.data) {
		return zero, false
	}
	return c.data[i], true
}

// FindGE returns the leftmost element greater than or equal to x.
func (c *container[K]) FindGE(x K) (K, bool) {
	var zero K
	i := c.lowerBound(x)
	if i >= len(c.data) {
		return zero, false
	}
	return c.data[i], true
}

// Rank returns the number of elements less than or equal to x.
func (c *container[K]) Rank(x K) int { return c.upperBound(x) }

// Count returns the number of elements equal to x.
func (c *container[K]) Count(x K) int {
	lb := c.lowerBound(x)
	if lb >= len(c.data) || c.data[lb] != x {
		return 0
	}
	return c.upperBound(x) - lb
}

// RangeOptions configures Range queries.
type RangeOptions struct {
	// IncludeLower makes the lower endpoint inclusive.
	IncludeLower bool
	// IncludeUpper makes the upper endpoint inclusive.
	IncludeUpper bool
	// Reverse yields the matching keys in descending order.
	Reverse bool
}

// DefaultRangeOptions makes both endpoints inclusive.
var DefaultRangeOptions = RangeOptions{IncludeLower: true, IncludeUpper: true}

// Range returns an iterator over the elements between a and b.
func (c *container[K]) Range(a, b K, optFns ...func(o *RangeOptions)) iter.Seq[K] {
	opts := DefaultRangeOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	var lo, hi int
	if opts.IncludeLower {
		lo = c.lowerBound(a)
	} else {
		lo = c.upperBound(a)
	}
	if opts.IncludeUpper {
		hi = c.upperBound(b)
	} else {
		hi = c.lowerBound(b)
	}
	if hi < lo {
		hi = lo
	}

	if opts.Reverse {
		return func(yield func(K) bool) {
			for i := hi - 1; i >= lo; i-- {
				if !yield(c.data[i]) {
					return
				}
			}
		}
	}
	return func(yield func(K) bool) {
		for i := lo; i < hi; i++ {
			if !yield(c.data[i]) {
				return
			}
		}
	}
}

// Index returns the position of the first element equal to x.
func (c *container[K]) Index(x K) (int, error) {
	return c.IndexWithin(x, 0, len(c.data))
}

// IndexWithin returns the position of the first element equal to x if that
// position falls inside [start, stop). Negative bounds count from the end.
func (c *container[K]) IndexWithin(x K, start, stop int) (int, error) {
	n := len(c.data)
	if start < 0 {
		start = max(start+n, 0)
	}
	if stop < 0 {
		stop = max(stop+n, 0)
	}
	start, stop = min(start, n), min(stop, n)

	i := c.lowerBound(x)
	if i >= n || c.data[i] != x || i < start || i >= stop {
		return 0, &ErrKeyNotFound{Key: x}
	}
	return i, nil
}

// At returns the element at position i. Negative positions count from the
// end.
func (c *container[K]) At(i int) (K, error) {
	var zero K
	j := i
	if j < 0 {
		j += len(c.data)
	}
	if j < 0 || j >= len(c.data) {
		return zero, &ErrIndexOutOfRange{Index: i, Len: len(c.data)}
	}
	return c.data[j], nil
}

// All returns an iterator over the elements in ascending order.
func (c *container[K]) All() iter.Seq[K] {
	return slices.Values(c.data)
}

// Backward returns an iterator over the elements in descending order.
func (c *container[K]) Backward() iter.Seq[K] {
	return func(yield func(K) bool) {
		for i := len(c.data) - 1; i >= 0; i-- {
			if !yield(c.data[i]) {
				return
			}
		}
	}
}

// sliceData materializes the subsequence selected by start:stop:step with
// the host language's slice normalization. The result is re-sorted when
// step is negative; the duplicates flag is recomputed by inspection.
func (c *container[K]) sliceData(start, stop, step int) ([]K, error) {
	if step == 0 {
		return nil, ErrZeroStep
	}
	n := len(c.data)

	lower, upper := 0, n
	if step < 0 {
		lower, upper = -1, n-1
	}
	norm := func(i int) int {
		if i < 0 {
			return max(i+n, lower)
		}
		return min(i, upper)
	}
	start, stop = norm(start), norm(stop)

	var length int
	if step > 0 && stop > start {
		length = (stop - start + step - 1) / step
	} else if step < 0 && stop < start {
		length = (stop - start + step + 1) / step
	}

	out := make([]K, 0, length)
	for i := start; (step > 0 && i < stop) || (step < 0 && i > stop); i += step {
		out = append(out, c.data[i])
	}
	if step < 0 {
		slices.Reverse(out)
	}
	return out, nil
}

// bound returns the leftmost position whose element is >= x (or > x when
// upper is set). The learned index narrows the search to a window of at
// most 2*epsilon+1 positions; when a long run of equal keys or a degenerate
// model pushes the true position outside that window, an exponential probe
// finishes the job, so the result is always exact.
func (c *container[K]) bound(x K, upper bool) int {
	if len(c.data) == 0 {
		return 0
	}
	pred := func(k K) bool {
		if upper {
			return k > x
		}
		return k >= x
	}

	ap := c.index.Approximate(x)
	i := ap.Lo + sort.Search(ap.Hi-ap.Lo, func(j int) bool { return pred(c.data[ap.Lo+j]) })
	switch {
	case i == ap.Hi && i < len(c.data):
		i = gallopRight(c.data, i, pred)
	case i == ap.Lo && i > 0:
		i = gallopLeft(c.data, i, pred)
	}
	return i
}

func (c *container[K]) lowerBound(x K) int { return c.bound(x, false) }
func (c *container[K]) upperBound(x K) int { return c.bound(x, true) }

// gallopRight returns the first position at or after start where pred
// holds, assuming pred fails everywhere before start. Probes start+1,
// start+3, start+7, ... (the stride doubles after each probe) and finishes
// with a binary search on the bracketed window.
func gallopRight[K pgm.Key](data []K, start int, pred func(K) bool) int {
	if pred(data[start]) {
		return start
	}
	lo, step := start, 1
	for lo+step < len(data) && !pred(data[lo+step]) {
		lo += step
		step <<= 1
	}
	hi := min(lo+step, len(data))
	lo++
	return lo + sort.Search(hi-lo, func(j int) bool { return pred(data[lo+j]) })
}

// gallopLeft returns the first pred-true position at or before start,
// assuming pred holds at start.
func gallopLeft[K pgm.Key](data []K, start int, pred func(K) bool) int {
	hi, step := start, 1
	for hi-step >= 0 && pred(data[hi-step]) {
		hi -= step
		step <<= 1
	}
	lo := max(hi-step, 0)
	return lo + sort.Search(hi-lo, func(j int) bool { return pred(data[lo+j]) })
}

// Stats describes a sealed container.
type Stats struct {
	// Len is the number of stored keys.
	Len int
	// Epsilon is the leaf error bound.
	Epsilon int
	// Height is the number of index levels.
	Height int
	// LeafSegments is the number of segments in the leaf level.
	LeafSegments int
	// DataSizeBytes is the footprint of the key storage.
	DataSizeBytes int
	// IndexSizeBytes is the footprint of the segment storage.
	IndexSizeBytes int
	// HasDuplicates reports whether any two stored keys are equal.
	HasDuplicates bool
}

// Stats returns statistics about the container.
func (c *container[K]) Stats() Stats {
	return Stats{
		Len:            len(c.data),
		Epsilon:        c.epsilon,
		Height:         c.index.Height(),
		LeafSegments:   c.index.LeafSegments(),
		DataSizeBytes:  len(c.data) * pgm.KeySize[K](),
		IndexSizeBytes: c.index.SizeInBytes(),
		HasDuplicates:  c.duplicates,
	}
}

// preview renders the first and last few elements.
func (c *container[K]) preview() string {
	var sb strings.Builder
	sb.WriteByte('[')
	if n := len(c.data); n < 6 {
		for i, k := range c.data {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%v", k)
		}
	} else {
		fmt.Fprintf(&sb, "%v, %v, %v, ..., %v, %v",
			c.data[0], c.data[1], c.data[2], c.data[n-2], c.data[n-1])
	}
	sb.WriteByte(']')
	return sb.String()
}
