// Package setalg implements linear-time set and multiset algebra over
// sorted slices. All functions expect their inputs sorted non-decreasing
// and return freshly allocated sorted outputs.
package setalg

import "cmp"

// Merge returns the sorted concatenation of a and b, duplicates from both
// sides preserved.
func Merge[K cmp.Ordered](a, b []K) []K {
	out := make([]K, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if b[j] < a[i] {
			out = append(out, b[j])
			j++
		} else {
			out = append(out, a[i])
			i++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}

// Union returns the sorted union of a and b with duplicates collapsed
// across both inputs: whenever a value is emitted, every remaining equal
// copy on either side is consumed first.
func Union[K cmp.Ordered](a, b []K) []K {
	out := make([]K, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		var x K
		if b[j] < a[i] {
			x = b[j]
		} else {
			x = a[i]
		}
		out = append(out, x)
		for i < len(a) && a[i] == x {
			i++
		}
		for j < len(b) && b[j] == x {
			j++
		}
	}
	if i < len(a) {
		return appendUnique(out, a[i:])
	}
	return appendUnique(out, b[j:])
}

// Intersect returns the sorted common elements of a and b. Both inputs must
// be duplicate-free; with multiset inputs the duplicate counts of the
// output are unspecified.
func Intersect[K cmp.Ordered](a, b []K) []K {
	out := make([]K, 0, min(len(a), len(b)))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case b[j] < a[i]:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}

// Difference returns the sorted elements of a that equal no element of b.
// One occurrence in b removes every equal occurrence in a; the surviving
// duplicates of a are preserved. The second result reports whether the
// output contains duplicates.
func Difference[K cmp.Ordered](a, b []K) ([]K, bool) {
	out := make([]K, 0, len(a))
	dups := false
	j := 0
	for i := 0; i < len(a); {
		for j < len(b) && b[j] < a[i] {
			j++
		}
		if j < len(b) && b[j] == a[i] {
			x := a[i]
			for i < len(a) && a[i] == x {
				i++
			}
			continue
		}
		if len(out) > 0 && out[len(out)-1] == a[i] {
			dups = true
		}
		out = append(out, a[i])
		i++
	}
	return out, dups
}

// SymmetricDifference returns the sorted elements present on exactly one
// side, duplicates collapsed.
func SymmetricDifference[K cmp.Ordered](a, b []K) []K {
	out := make([]K, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			x := a[i]
			out = append(out, x)
			for i < len(a) && a[i] == x {
				i++
			}
		case b[j] < a[i]:
			x := b[j]
			out = append(out, x)
			for j < len(b) && b[j] == x {
				j++
			}
		default:
			x := a[i]
			for i < len(a) && a[i] == x {
				i++
			}
			for j < len(b) && b[j] == x {
				j++
			}
		}
	}
	if i < len(a) {
		return appendUnique(out, a[i:])
	}
	return appendUnique(out, b[j:])
}

// Subset reports whether every distinct element of a appears in b, and
// whether b holds at least one distinct element missing from a. A proper
// subset is the conjunction of the two.
func Subset[K cmp.Ordered](a, b []K) (subset, strict bool) {
	subset = true
	i, j := 0, 0
	for i < len(a) {
		for j < len(b) && b[j] < a[i] {
			strict = true
			j++
			for j < len(b) && b[j] == b[j-1] {
				j++
			}
		}
		if j >= len(b) || b[j] != a[i] {
			return false, strict
		}
		x := a[i]
		for i < len(a) && a[i] == x {
			i++
		}
		j++
		for j < len(b) && b[j] == x {
			j++
		}
	}
	if j < len(b) {
		strict = true
	}
	return subset, strict
}

// Unique returns the first copy of each equal run of a.
func Unique[K cmp.Ordered](a []K) []K {
	out := make([]K, 0, len(a))
	return appendUnique(out, a)
}

// HasDuplicates reports whether any adjacent pair of a is equal.
func HasDuplicates[K cmp.Ordered](a []K) bool {
	for i := 1; i < len(a); i++ {
		if a[i] == a[i-1] {
			return true
		}
	}
	return false
}

// appendUnique appends tail to out, skipping elements equal to their
// predecessor or to the current last element of out.
func appendUnique[K cmp.Ordered](out, tail []K) []K {
	for i := 0; i < len(tail); i++ {
		if len(out) > 0 && out[len(out)-1] == tail[i] {
			continue
		}
		out = append(out, tail[i])
	}
	return out
}
