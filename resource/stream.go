package resource

import (
	"context"
	"iter"
)

// ThrottleSeq wraps a key sequence so that consumption counts against the
// controller's throughput limit. Chunks of keys are charged together to
// keep per-element overhead low. The sequence stops early if ctx is
// canceled while waiting.
func ThrottleSeq[K any](ctx context.Context, c *Controller, seq iter.Seq[K]) iter.Seq[K] {
	if c == nil || c.keyLimiter == nil {
		return seq
	}

	const chunk = 1024
	return func(yield func(K) bool) {
		budget := 0
		for k := range seq {
			if budget == 0 {
				if err := c.WaitKeys(ctx, chunk); err != nil {
					return
				}
				budget = chunk
			}
			budget--
			if !yield(k) {
				return
			}
		}
	}
}
