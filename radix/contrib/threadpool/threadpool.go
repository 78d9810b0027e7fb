// Copyright 2025 The go-radix Authors. SPDX-License-Identifier: Apache-2.0

// Package threadpool provides a persistent, pinned worker pool with
// asynchronous task submission and the fork-join helpers the radix sorts are
// built on. A Pool is created once and reused across many sorts, so no
// goroutines are spawned while sorting.
//
// Usage:
//
//	pool := threadpool.New(threadpool.WithWorkers(8))
//	defer pool.Close()
//
//	// Fork-join over an index range
//	pool.ParallelFor(0, len(data), func(threadID, lo, hi int) {
//	    process(data[lo:hi])
//	})
//
//	// Asynchronous submission
//	h := pool.Submit(func() error { return step() })
//	if err := h.Wait(); err != nil {
//	    return err
//	}
package threadpool

import (
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/ajroetker/go-radix/radix"
)

// Pool is a fixed set of worker goroutines, each locked to its own OS thread
// and pinned to a core when possible, fed from one FIFO queue.
type Pool struct {
	numWorkers int
	pin        bool
	cores      []int // CPUs allowed when the pool was created, ascending
	logger     *slog.Logger

	mu       sync.Mutex
	nonEmpty *sync.Cond
	queue    []task
	head     int
	closing  bool

	closed    atomic.Bool
	closeOnce sync.Once
	workers   sync.WaitGroup

	pinned    atomic.Int32
	submitted atomic.Uint64
	completed atomic.Uint64
}

// task is a single queued unit of work and the handle it completes.
type task struct {
	fn func() error
	h  *Handle
}

// Option configures a Pool.
type Option func(*config)

type config struct {
	workers int
	pin     bool
	logger  *slog.Logger
}

func defaultConfig() *config {
	return &config{
		workers: radix.NumWorkersEnv(),
		pin:     !radix.NoPinEnv(),
		logger:  slog.New(slog.DiscardHandler),
	}
}

// WithWorkers sets the number of workers. Values <= 0 select the number of
// logical CPUs.
func WithWorkers(n int) Option {
	return func(c *config) {
		c.workers = n
	}
}

// WithPinning enables or disables pinning worker i to logical core i.
func WithPinning(enabled bool) Option {
	return func(c *config) {
		c.pin = enabled
	}
}

// WithLogger sets the logger used for worker lifecycle events.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a pool and starts its workers immediately. Workers persist
// until Close is called.
//
// The worker count defaults to RADIX_NUM_WORKERS when set, otherwise to the
// number of logical CPUs; it is never less than one. Pinning is on unless
// RADIX_NO_PIN is set. Options override both.
func New(opts ...Option) *Pool {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.workers <= 0 {
		cfg.workers = runtime.NumCPU()
	}
	cfg.workers = max(1, cfg.workers)

	p := &Pool{
		numWorkers: cfg.workers,
		pin:        cfg.pin,
		logger:     cfg.logger,
	}
	p.nonEmpty = sync.NewCond(&p.mu)

	if p.pin {
		p.cores = p.allowedCores()
	}

	// Workers report in once pinned, so the first task already runs on its
	// core and PinnedWorkers is final when New returns.
	var started sync.WaitGroup
	started.Add(p.numWorkers)
	p.workers.Add(p.numWorkers)
	for id := range p.numWorkers {
		go p.worker(id, &started)
	}
	started.Wait()

	p.logger.Debug("thread pool started", "workers", p.numWorkers, "pin", p.pin, "pinned", p.pinned.Load())
	return p
}

// worker is the main loop of each persistent worker.
func (p *Pool) worker(id int, started *sync.WaitGroup) {
	defer p.workers.Done()
	p.pinWorker(id)
	started.Done()

	for {
		p.mu.Lock()
		for p.head == len(p.queue) && !p.closing {
			p.nonEmpty.Wait()
		}
		if p.head == len(p.queue) {
			// Closing and drained.
			p.mu.Unlock()
			return
		}
		t := p.pop()
		p.mu.Unlock()

		t.run()
		p.completed.Add(1)
	}
}

// pop removes the oldest task. Callers hold p.mu.
func (p *Pool) pop() task {
	t := p.queue[p.head]
	p.queue[p.head] = task{}
	p.head++
	if p.head == len(p.queue) {
		p.queue = p.queue[:0]
		p.head = 0
	}
	return t
}

// Submit enqueues fn and wakes one idle worker. The returned Handle reports
// the error fn returned, or a *PanicError if fn panicked.
//
// Tasks submitted from one goroutine start in submission order. Submitting to
// a closed pool returns a handle that has already failed with
// radix.ErrPoolClosed.
func (p *Pool) Submit(fn func() error) *Handle {
	h, ok := p.submit(fn)
	if !ok {
		h.finish(radix.ErrPoolClosed)
	}
	return h
}

// submit enqueues fn, reporting false without finishing the handle when the
// pool no longer accepts work.
func (p *Pool) submit(fn func() error) (*Handle, bool) {
	h := newHandle()

	p.mu.Lock()
	if p.closing {
		p.mu.Unlock()
		return h, false
	}
	p.queue = append(p.queue, task{fn: fn, h: h})
	p.mu.Unlock()

	p.submitted.Add(1)
	p.nonEmpty.Signal()
	return h, true
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// PinnedWorkers returns how many workers were successfully pinned to a core.
func (p *Pool) PinnedWorkers() int {
	return int(p.pinned.Load())
}

// Submitted returns the number of tasks accepted since the pool was created.
func (p *Pool) Submitted() uint64 {
	return p.submitted.Load()
}

// Completed returns the number of tasks that have finished running.
func (p *Pool) Completed() uint64 {
	return p.completed.Load()
}

// Close shuts the pool down in two phases: it stops accepting submissions,
// lets the workers drain every task already queued, and only then waits for
// them to exit. Calling Close multiple times is safe. Close must not be
// called from inside a task.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.mu.Lock()
		p.closing = true
		p.closed.Store(true)
		p.mu.Unlock()

		p.nonEmpty.Broadcast()
		p.workers.Wait()
		p.logger.Debug("thread pool stopped", "completed", p.completed.Load())
	})
}
