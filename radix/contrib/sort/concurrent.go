// Copyright 2025 go-radix Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sort

import (
	"context"
	"fmt"
	"runtime/trace"

	"github.com/ajroetker/go-radix/radix"
	"github.com/ajroetker/go-radix/radix/contrib/threadpool"
)

// WriteGroup is a run of merged buckets [FirstBucket, LastBucket) written
// back by one task into data[Offset : Offset+Count].
type WriteGroup struct {
	FirstBucket int
	LastBucket  int
	Offset      int
	Count       int
}

// PassStats is the accounting of one completed digit pass.
type PassStats struct {
	Pass        int
	Elements    int
	BucketTotal int          // sum of merged bucket sizes
	ThreadCount []int        // values pushed by each fill chunk
	Groups      []WriteGroup // write-out plan
}

// Option configures a Sorter.
type Option func(*options)

type options struct {
	observer func(PassStats)
}

// WithPassObserver registers fn to be called on the sorting goroutine after
// every digit pass. The PassStats slices are freshly allocated for each call.
func WithPassObserver(fn func(PassStats)) Option {
	return func(o *options) {
		o.observer = fn
	}
}

// Sorter is a reusable parallel LSD radix sorter for values of type T using
// digits of type D. It keeps its node slab and bucket tables between sorts,
// so sorting batches of similar size allocates nothing after the first.
//
// A Sorter is not safe for concurrent use; create one per goroutine.
type Sorter[T radix.Unsigned, D radix.Digit] struct {
	pool   *threadpool.Pool
	policy radix.Policy[T, D]
	opts   options

	slab    slab[T]
	threads []threadBuckets
	joined  []bucket
	groups  []WriteGroup
}

// NewSorter returns a Sorter that runs its phases on pool.
func NewSorter[T radix.Unsigned, D radix.Digit](pool *threadpool.Pool, opts ...Option) *Sorter[T, D] {
	s := &Sorter[T, D]{pool: pool}
	for _, opt := range opts {
		opt(&s.opts)
	}
	return s
}

// Sort sorts data in place, ascending. Equal values keep their relative
// order.
//
// An unsupported width combination returns radix.ErrUnsupportedWidth. A
// violated accounting invariant panics with an error wrapping
// radix.ErrCorruptPlan.
func Sort[T radix.Unsigned](pool *threadpool.Pool, data []T) error {
	return NewSorter[T, uint8](pool).Sort(data)
}

// SortDigits is Sort with an explicit digit type, e.g. uint16 to halve the
// number of passes over 32- and 64-bit values.
func SortDigits[T radix.Unsigned, D radix.Digit](pool *threadpool.Pool, data []T) error {
	return NewSorter[T, D](pool).Sort(data)
}

// Sort sorts data in place. See the package-level Sort.
func (s *Sorter[T, D]) Sort(data []T) error {
	return s.SortContext(context.Background(), data)
}

// SortContext is Sort with a context for execution tracing: the sort runs as
// a runtime/trace task with one region per phase. The context is not used for
// cancellation; a started sort always runs to completion.
func (s *Sorter[T, D]) SortContext(ctx context.Context, data []T) error {
	if !s.policy.Supported() {
		return radix.ErrUnsupportedWidth
	}
	n := len(data)
	if n <= 1 {
		return nil
	}

	ctx, task := trace.NewTask(ctx, traceTask)
	defer task.End()

	s.prepare(n)
	for pass := range s.policy.NumDigits() {
		s.runPass(ctx, pass, data)
	}
	return nil
}

// prepare sizes the slab and bucket tables for n values.
func (s *Sorter[T, D]) prepare(n int) {
	s.slab.grow(n)

	numThreads := s.pool.NumWorkers()
	numBuckets := s.policy.NumBuckets()
	if len(s.threads) != numThreads {
		s.threads = make([]threadBuckets, numThreads)
		for w := range s.threads {
			s.threads[w].buckets = make([]bucket, numBuckets)
		}
		s.groups = make([]WriteGroup, 0, numThreads+1)
	}
	if len(s.joined) != numBuckets {
		s.joined = make([]bucket, numBuckets)
	}
}

// runPass sorts data by digit pass. Each phase is a fork-join barrier over
// the fully materialized output of the previous one.
func (s *Sorter[T, D]) runPass(ctx context.Context, pass int, data []T) {
	trace.WithRegion(ctx, regionFill, func() { s.fill(pass, data) })
	trace.WithRegion(ctx, regionSquash, s.squash)
	trace.WithRegion(ctx, regionPlan, func() { s.plan(len(data)) })
	trace.WithRegion(ctx, regionWrite, func() { s.write(data) })

	if s.opts.observer != nil {
		s.opts.observer(s.stats(pass, len(data)))
	}

	trace.WithRegion(ctx, regionReset, s.reset)
}

// fill distributes each chunk's values into that chunk's buckets.
func (s *Sorter[T, D]) fill(pass int, data []T) {
	policy := s.policy
	s.pool.ParallelFor(0, len(data), func(w, lo, hi int) {
		tb := &s.threads[w]
		tb.arena.size(lo, hi)
		for _, v := range data[lo:hi] {
			pushValue(tb, &s.slab, policy.Digit(pass, v), v)
		}
	})
}

// squash merges every chunk's bucket b into joined[b], in chunk order, and
// clears the source buckets. Work is split by bucket index so exactly one
// task touches a given bucket.
func (s *Sorter[T, D]) squash() {
	next := s.slab.next
	s.pool.ParallelFor(0, len(s.joined), func(_, lo, hi int) {
		for b := lo; b < hi; b++ {
			joined := &s.joined[b]
			joined.clear()
			for w := range s.threads {
				src := &s.threads[w].buckets[b]
				joined.squash(next, *src)
				src.clear()
			}
		}
	})
}

// plan cuts the merged buckets into write groups. A group is closed once it
// holds at least ceil(n/NumWorkers) values, so there are at most NumWorkers
// groups; how many depends on the digit distribution of the pass.
func (s *Sorter[T, D]) plan(n int) {
	total := 0
	for b := range s.joined {
		total += s.joined[b].size
	}
	if total != n {
		panic(fmt.Errorf("%w: bucket sizes sum to %d, want %d", radix.ErrCorruptPlan, total, n))
	}

	numThreads := len(s.threads)
	quota := (n + numThreads - 1) / numThreads
	last := len(s.joined) - 1

	s.groups = s.groups[:0]
	g := WriteGroup{}
	for b := range s.joined {
		g.Count += s.joined[b].size
		if g.Count < quota && b != last {
			continue
		}
		if g.Count == 0 && len(s.groups) > 0 {
			// Only empty buckets remain; fold them into the previous group.
			s.groups[len(s.groups)-1].LastBucket = b + 1
			break
		}
		g.LastBucket = b + 1
		s.groups = append(s.groups, g)
		g = WriteGroup{FirstBucket: b + 1, Offset: g.Offset + g.Count}
	}

	if len(s.groups) > numThreads {
		panic(fmt.Errorf("%w: %d write groups for %d workers", radix.ErrCorruptPlan, len(s.groups), numThreads))
	}
}

// write copies every group's buckets, in bucket order, to the group's span of
// data. Spans are disjoint, so the tasks need no synchronization.
func (s *Sorter[T, D]) write(data []T) {
	values, next := s.slab.values, s.slab.next
	groups := s.groups
	s.pool.ParallelForAtomic(len(groups), func(i int) {
		g := groups[i]
		out, end := g.Offset, g.Offset+g.Count
		for b := g.FirstBucket; b < g.LastBucket; b++ {
			bk := s.joined[b]
			idx := bk.head
			for range bk.size {
				if out >= end {
					panic(fmt.Errorf("%w: write group %d overruns [%d, %d)", radix.ErrCorruptPlan, i, g.Offset, end))
				}
				data[out] = values[idx]
				out++
				idx = next[idx]
			}
			if bk.size > 0 && idx != nilNode {
				panic(fmt.Errorf("%w: bucket %d is longer than its size %d", radix.ErrCorruptPlan, b, bk.size))
			}
		}
		if out != end {
			panic(fmt.Errorf("%w: write group %d wrote %d of %d values", radix.ErrCorruptPlan, i, out-g.Offset, g.Count))
		}
	})
}

// reset rewinds every chunk's arena for the next pass.
func (s *Sorter[T, D]) reset() {
	for w := range s.threads {
		s.threads[w].arena.reset()
	}
}

// stats snapshots the accounting of the pass that just finished.
func (s *Sorter[T, D]) stats(pass, n int) PassStats {
	st := PassStats{
		Pass:        pass,
		Elements:    n,
		ThreadCount: make([]int, len(s.threads)),
		Groups:      append([]WriteGroup(nil), s.groups...),
	}
	for b := range s.joined {
		st.BucketTotal += s.joined[b].size
	}
	for w := range s.threads {
		st.ThreadCount[w] = s.threads[w].arena.used()
	}
	return st
}
