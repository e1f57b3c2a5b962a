// Package pgmgo provides immutable sorted containers for numeric keys
// backed by the Piecewise Geometric Model index, a learned index that is
// typically one to two orders of magnitude smaller than a comparison tree
// of equivalent accuracy.
//
// Two container types are exported. SortedList keeps duplicates, SortedSet
// drops them at construction. Both answer membership, predecessor and
// successor, rank, count, range, and positional queries, and both support
// linear-time set and multiset algebra that produces fresh containers.
// Every user-visible result is exact; the learned index only narrows the
// final binary search to a window of at most 2*epsilon+1 positions.
//
// # Quick Start
//
//	list, _ := pgmgo.NewSortedList([]int64{9, 3, 7, 1, 5})
//	list.Contains(7)            // true
//	list.Rank(5)                // 3
//	v, ok := list.FindGE(4)     // 5, true
//
//	for k := range list.Range(3, 7) {
//	    fmt.Println(k)          // 3, 5, 7
//	}
//
// # Epsilon
//
// Epsilon trades index size against query latency: every lookup descends
// the index and finishes with a binary search over at most 2*epsilon+1
// keys. The default of 64 suits most workloads; the minimum is 16.
//
//	list, _ := pgmgo.NewSortedList(keys, pgmgo.WithEpsilon(128))
//
// # Set Algebra
//
//	a, _ := pgmgo.NewSortedSet([]int64{1, 3, 5, 7, 9})
//	b, _ := pgmgo.NewSortedSet([]int64{2, 3, 5, 8, 9, 10})
//	a.Union(b)                // {1 2 3 5 7 8 9 10}
//	a.Intersection(b)         // {3 5 9}
//	a.Difference(b)           // {1 7}
//	a.SymmetricDifference(b)  // {1 2 7 8 10}
//
// # Concurrency
//
// A sealed container is never written again and needs no external
// synchronization. Builds of 32768 keys or more run under the optional
// resource controller, which bounds concurrent builds, scratch memory, and
// ingestion throughput across goroutines.
package pgmgo
