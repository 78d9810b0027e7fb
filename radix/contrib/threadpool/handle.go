// Copyright 2025 The go-radix Authors. SPDX-License-Identifier: Apache-2.0

package threadpool

import (
	"fmt"
	"runtime/debug"
)

// Handle tracks one submitted task.
type Handle struct {
	done chan struct{}
	err  error
}

func newHandle() *Handle {
	return &Handle{done: make(chan struct{})}
}

func (h *Handle) finish(err error) {
	h.err = err
	close(h.done)
}

// Wait blocks until the task has finished and returns its error.
func (h *Handle) Wait() error {
	<-h.done
	return h.err
}

// Done returns a channel that is closed when the task has finished.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Future is a Handle that also carries the task's result.
type Future[R any] struct {
	h   *Handle
	val R
}

// Async submits fn to p and returns a Future for its result.
func Async[R any](p *Pool, fn func() (R, error)) *Future[R] {
	f := &Future[R]{}
	f.h = p.Submit(func() error {
		v, err := fn()
		f.val = v
		return err
	})
	return f
}

// Get blocks until the task has finished and returns its result and error.
func (f *Future[R]) Get() (R, error) {
	err := f.h.Wait()
	return f.val, err
}

// Done returns a channel that is closed when the task has finished.
func (f *Future[R]) Done() <-chan struct{} {
	return f.h.Done()
}

// PanicError is the error recorded on a Handle whose task panicked.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("threadpool: task panicked: %v", e.Value)
}

// Unwrap returns the panic value when it is an error, so errors.Is sees
// through a panic(err).
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// run executes the task and completes its handle, converting a panic into
// a *PanicError.
func (t task) run() {
	var err error
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
		t.h.finish(err)
	}()
	err = t.fn()
}
