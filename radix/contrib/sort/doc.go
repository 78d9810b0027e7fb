// Package sort provides a parallel LSD radix sort for fixed-width unsigned
// integers, built on the fork-join primitives of package threadpool.
//
// # Algorithm
//
// Every pass sorts the whole sequence by one digit, least-significant first,
// in four fork-join phases:
//   - Fill: each worker scans its contiguous slice of the input and appends
//     every value to its own linked bucket for the current digit
//   - Squash: buckets are merged across workers, one task per bucket range,
//     splicing worker 0, 1, 2, ... in order so the pass stays stable
//   - Plan: the merged buckets are cut into at most NumWorkers write groups of
//     roughly equal element count
//   - Write: each group copies its buckets back to its own span of the input
//
// Bucket nodes live in one contiguous slab per sort; each worker owns the
// window of the slab that matches its input slice, so allocation is a bump of
// a cursor and resetting between passes is O(1).
//
// # Supported Types
//
// Values are any ~uint8, ~uint16, ~uint32 or ~uint64 type, ordered by their
// raw bits. Digits are 8 bits by default; SortDigits accepts 16-bit digits
// for wider values.
//
// # Example Usage
//
//	import (
//	    "github.com/ajroetker/go-radix/radix/contrib/sort"
//	    "github.com/ajroetker/go-radix/radix/contrib/threadpool"
//	)
//
//	func SortIDs(pool *threadpool.Pool, ids []uint64) error {
//	    return sort.Sort(pool, ids) // In-place, ascending, stable
//	}
//
// For repeated sorts, a Sorter keeps its slab and bucket tables between
// calls:
//
//	s := sort.NewSorter[uint32, uint8](pool)
//	for _, batch := range batches {
//	    if err := s.Sort(batch); err != nil {
//	        return err
//	    }
//	}
//
// # Other Implementations
//
// Sequential is the single-threaded counting-sort variant used as a
// reference. Scatter is the concurrent array-offset variant on the same pool,
// and GroupSort runs that algorithm on an errgroup instead of a Pool.
package sort
