// Package pgm implements the Piecewise Geometric Model index: a learned
// index over a sorted array of numeric keys.
//
// The index replaces the inner nodes of a search tree with linear models.
// A streaming piecewise linear approximation (PLA) compresses the
// key-to-rank function into the minimum number of segments whose predicted
// rank is within a fixed error bound epsilon of the true rank. Segmenting
// the segment origins recursively, with a small inner bound, yields a
// multi-level structure whose root is a single segment.
//
// A lookup descends from the root, narrowing the candidate range at each
// level with one linear model evaluation and a short scan, and ends with a
// window of at most 2*epsilon+1 positions in the data array. The caller
// finishes with a binary search on that window.
package pgm
