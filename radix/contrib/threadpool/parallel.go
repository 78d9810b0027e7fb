// Copyright 2025 The go-radix Authors. SPDX-License-Identifier: Apache-2.0

package threadpool

import "sync/atomic"

// align rounds value up to a multiple of unit.
func align(value, unit int) int {
	return (value + unit - 1) / unit * unit
}

// chunkBounds returns the range of chunk id when n items starting at lo are
// cut into chunks of per items. Chunks past the end are empty.
func chunkBounds(lo, n, per, id int) (int, int) {
	start := min(per*id, n)
	end := min(per*(id+1), n)
	return lo + start, lo + end
}

// ParallelFor splits [lo, hi) into NumWorkers contiguous chunks and calls
// fn(threadID, chunkLo, chunkHi) for each chunk on the pool. Every chunk but
// the last has ceil((hi-lo)/NumWorkers) items; when there are more workers
// than items the trailing chunks are empty, and fn is still called for them.
// Blocks until all chunks complete.
//
// threadID is the chunk index, so state indexed by threadID is owned by
// exactly one task per call.
//
// If fn panics in any chunk, ParallelFor waits for the remaining chunks and
// then panics on the calling goroutine with the first *PanicError.
func (p *Pool) ParallelFor(lo, hi int, fn func(threadID, lo, hi int)) {
	n := hi - lo
	if n <= 0 {
		return
	}

	threads := p.numWorkers
	per := align(n, threads) / threads

	if p.closed.Load() {
		// Fallback to sequential if pool is closed
		for id := range threads {
			start, end := chunkBounds(lo, n, per, id)
			fn(id, start, end)
		}
		return
	}

	handles := make([]*Handle, 0, threads)
	for id := range threads {
		start, end := chunkBounds(lo, n, per, id)
		h, ok := p.submit(func() error {
			fn(id, start, end)
			return nil
		})
		if !ok {
			// Closed while submitting
			fn(id, start, end)
			continue
		}
		handles = append(handles, h)
	}

	barrier(handles)
}

// ParallelForEach calls fn(threadID, v) for every element of data, with the
// same partitioning as ParallelFor. Blocks until all elements are processed.
func ParallelForEach[T any](p *Pool, data []T, fn func(threadID int, v T)) {
	p.ParallelFor(0, len(data), func(threadID, lo, hi int) {
		for _, v := range data[lo:hi] {
			fn(threadID, v)
		}
	})
}

// ParallelForAtomic executes fn for each index in [0, n) using atomic work
// stealing. This provides better load balancing when work per item varies.
// Blocks until all work completes.
//
// fn receives the index to process.
func (p *Pool) ParallelForAtomic(n int, fn func(i int)) {
	if n <= 0 {
		return
	}

	workers := min(p.numWorkers, n)

	if p.closed.Load() || workers == 1 {
		for i := range n {
			fn(i)
		}
		return
	}

	var nextIdx atomic.Int64
	p.fanOut(workers, func() {
		for {
			idx := int(nextIdx.Add(1)) - 1
			if idx >= n {
				return
			}
			fn(idx)
		}
	})
}

// ParallelForAtomicBatched executes fn for batches of indices using atomic
// work stealing. Combines the load balancing of atomic distribution with
// reduced atomic operation overhead by processing multiple items per grab.
//
// fn receives (start, end) indices where work should process [start, end).
// batchSize controls how many items are grabbed per atomic operation.
func (p *Pool) ParallelForAtomicBatched(n int, batchSize int, fn func(start, end int)) {
	if n <= 0 {
		return
	}

	if batchSize <= 0 {
		batchSize = 1
	}

	// Calculate number of batches
	numBatches := (n + batchSize - 1) / batchSize
	workers := min(p.numWorkers, numBatches)

	if p.closed.Load() || workers == 1 {
		fn(0, n)
		return
	}

	var nextBatch atomic.Int64
	p.fanOut(workers, func() {
		for {
			batch := int(nextBatch.Add(1)) - 1
			start := batch * batchSize
			if start >= n {
				return
			}
			end := min(start+batchSize, n)
			fn(start, end)
		}
	})
}

// fanOut runs body on workers tasks and waits for all of them.
func (p *Pool) fanOut(workers int, body func()) {
	handles := make([]*Handle, 0, workers)
	for range workers {
		h, ok := p.submit(func() error {
			body()
			return nil
		})
		if !ok {
			body()
			continue
		}
		handles = append(handles, h)
	}

	barrier(handles)
}

// barrier waits for every handle and re-raises the first failure.
func barrier(handles []*Handle) {
	var first error
	for _, h := range handles {
		if err := h.Wait(); err != nil && first == nil {
			first = err
		}
	}
	if first != nil {
		panic(first)
	}
}
