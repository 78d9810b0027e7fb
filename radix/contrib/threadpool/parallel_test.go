// Copyright 2025 The go-radix Authors. SPDX-License-Identifier: Apache-2.0

package threadpool

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

type chunk struct{ id, lo, hi int }

// recordChunks runs ParallelFor and returns the chunks it produced, indexed
// by thread ID.
func recordChunks(pool *Pool, lo, hi int) []chunk {
	var mu sync.Mutex
	var chunks []chunk
	pool.ParallelFor(lo, hi, func(id, lo, hi int) {
		mu.Lock()
		chunks = append(chunks, chunk{id, lo, hi})
		mu.Unlock()
	})
	out := make([]chunk, len(chunks))
	for _, c := range chunks {
		out[c.id] = c
	}
	return out
}

func TestParallelFor(t *testing.T) {
	pool := New(WithWorkers(4), WithPinning(false))
	defer pool.Close()

	n := 100
	results := make([]int, n)

	pool.ParallelFor(0, n, func(_, start, end int) {
		for i := start; i < end; i++ {
			results[i] = i * 2
		}
	})

	for i := 0; i < n; i++ {
		if results[i] != i*2 {
			t.Errorf("results[%d] = %d, want %d", i, results[i], i*2)
		}
	}
}

func TestParallelForChunks(t *testing.T) {
	pool := New(WithWorkers(4), WithPinning(false))
	defer pool.Close()

	got := recordChunks(pool, 0, 10)
	want := []chunk{{0, 0, 3}, {1, 3, 6}, {2, 6, 9}, {3, 9, 10}}
	if len(got) != len(want) {
		t.Fatalf("got %d chunks, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("chunk %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestParallelForOffsetRange(t *testing.T) {
	pool := New(WithWorkers(3), WithPinning(false))
	defer pool.Close()

	got := recordChunks(pool, 100, 107)
	want := []chunk{{0, 100, 103}, {1, 103, 106}, {2, 106, 107}}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("chunk %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestParallelForSmallN(t *testing.T) {
	pool := New(WithWorkers(8), WithPinning(false))
	defer pool.Close()

	// Test with n smaller than workers: every worker still gets a task.
	got := recordChunks(pool, 10, 13)
	if len(got) != 8 {
		t.Fatalf("got %d chunks, want 8", len(got))
	}
	covered := 0
	for _, c := range got {
		if c.lo > c.hi || c.lo < 10 || c.hi > 13 {
			t.Errorf("chunk %+v out of bounds", c)
		}
		covered += c.hi - c.lo
	}
	if covered != 3 {
		t.Errorf("covered = %d, want 3", covered)
	}
}

func TestParallelForZeroN(t *testing.T) {
	pool := New(WithWorkers(4), WithPinning(false))
	defer pool.Close()

	before := pool.Submitted()
	var called bool
	pool.ParallelFor(5, 5, func(_, start, end int) {
		called = true
	})
	pool.ParallelFor(5, 2, func(_, start, end int) {
		called = true
	})

	if called {
		t.Error("ParallelFor with an empty range should not call fn")
	}
	if pool.Submitted() != before {
		t.Errorf("Submitted() = %d, want %d", pool.Submitted(), before)
	}
}

func TestParallelForPanic(t *testing.T) {
	pool := New(WithWorkers(4), WithPinning(false))
	defer pool.Close()

	errBoom := errors.New("boom")
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok {
			t.Fatalf("recovered %v, want an error", r)
		}
		if !errors.Is(err, errBoom) {
			t.Errorf("recovered %v, want it to wrap %v", err, errBoom)
		}
	}()

	pool.ParallelFor(0, 100, func(id, _, _ int) {
		if id == 2 {
			panic(errBoom)
		}
	})
	t.Error("ParallelFor should have panicked")
}

func TestParallelForEach(t *testing.T) {
	pool := New(WithWorkers(4), WithPinning(false))
	defer pool.Close()

	data := make([]int, 1000)
	for i := range data {
		data[i] = i
	}

	var sums [4]int64
	ParallelForEach(pool, data, func(id int, v int) {
		sums[id] += int64(v)
	})

	var total int64
	for _, s := range sums {
		total += s
	}
	if total != 999*1000/2 {
		t.Errorf("total = %d, want %d", total, 999*1000/2)
	}
}

func TestParallelForAtomic(t *testing.T) {
	pool := New(WithWorkers(4), WithPinning(false))
	defer pool.Close()

	n := 100
	results := make([]int, n)

	pool.ParallelForAtomic(n, func(i int) {
		results[i] = i * 2
	})

	for i := 0; i < n; i++ {
		if results[i] != i*2 {
			t.Errorf("results[%d] = %d, want %d", i, results[i], i*2)
		}
	}
}

func TestParallelForAtomicBatched(t *testing.T) {
	pool := New(WithWorkers(4), WithPinning(false))
	defer pool.Close()

	n := 100
	results := make([]int, n)

	pool.ParallelForAtomicBatched(n, 10, func(start, end int) {
		for i := start; i < end; i++ {
			results[i] = i * 2
		}
	})

	for i := 0; i < n; i++ {
		if results[i] != i*2 {
			t.Errorf("results[%d] = %d, want %d", i, results[i], i*2)
		}
	}
}

func TestClosedPoolFallback(t *testing.T) {
	pool := New(WithWorkers(4))
	pool.Close()

	n := 100
	results := make([]int, n)

	// Should still work (sequential fallback)
	pool.ParallelFor(0, n, func(_, start, end int) {
		for i := start; i < end; i++ {
			results[i] = i * 2
		}
	})

	for i := 0; i < n; i++ {
		if results[i] != i*2 {
			t.Errorf("results[%d] = %d, want %d", i, results[i], i*2)
		}
	}
}

func TestParallelForCount(t *testing.T) {
	for _, workers := range []int{1, 2, 3, 7, 16} {
		pool := New(WithWorkers(workers), WithPinning(false))
		for _, n := range []int{1, 2, workers - 1, workers, workers + 1, 1000} {
			var count atomic.Int64
			pool.ParallelFor(0, n, func(_, lo, hi int) {
				count.Add(int64(hi - lo))
			})
			if n > 0 && count.Load() != int64(n) {
				t.Errorf("workers=%d n=%d: count = %d", workers, n, count.Load())
			}
		}
		pool.Close()
	}
}

func BenchmarkParallelFor(b *testing.B) {
	pool := New()
	defer pool.Close()

	n := 1000

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pool.ParallelFor(0, n, func(_, start, end int) {
			// Simulate work
			for j := start; j < end; j++ {
				_ = j * j
			}
		})
	}
}

func BenchmarkParallelForAtomic(b *testing.B) {
	pool := New()
	defer pool.Close()

	n := 1000

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pool.ParallelForAtomic(n, func(i int) {
			_ = i * i
		})
	}
}

// BenchmarkSubmit measures the round trip of one task through the queue.
func BenchmarkSubmit(b *testing.B) {
	pool := New()
	defer pool.Close()

	for i := 0; i < b.N; i++ {
		pool.Submit(func() error { return nil }).Wait()
	}
}
