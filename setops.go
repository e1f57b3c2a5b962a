package pgmgo

import (
	"slices"
	"time"

	"github.com/hupe1980/pgmgo/pgm"
)

// setOp runs a sorted-sequence kernel over the container's data and an
// already sorted right-hand side, then seals the output as a fresh
// container inheriting the caller's options. Scratch memory for the output
// buffer is accounted against the resource controller for the duration of
// the operation when it fits the controller's remaining budget.
func (c *container[K]) setOp(op string, rhs []K, kernel func(a, b []K) []K) container[K] {
	start := time.Now()

	// Charge the output buffer against the controller for the duration of
	// the operation, without waiting: when the remaining budget is too
	// small, the operation proceeds unaccounted.
	scratch := int64((len(c.data) + len(rhs)) * pgm.KeySize[K]())
	if !c.ctrl.TryAcquireMemory(scratch) {
		scratch = 0
	}
	defer c.ctrl.ReleaseMemory(scratch)

	out := slices.Clip(kernel(c.data, rhs))
	res := sealContainer(out, c.options())

	c.logger.LogSetOp(op, len(c.data), len(rhs), len(out), time.Since(start))
	c.metrics.RecordSetOp(op, len(out), time.Since(start))
	return res
}

// sortedCopy returns keys if already sorted, otherwise a sorted copy.
// The input slice is never modified.
func sortedCopy[K pgm.Key](keys []K) []K {
	if slices.IsSorted(keys) {
		return keys
	}
	out := slices.Clone(keys)
	slices.Sort(out)
	return out
}
