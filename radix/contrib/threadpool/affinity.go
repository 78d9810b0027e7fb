// Copyright 2025 The go-radix Authors. SPDX-License-Identifier: Apache-2.0

package threadpool

import "runtime"

// allowedCores returns the CPUs the calling thread may run on, or nil when
// they cannot be determined.
func (p *Pool) allowedCores() []int {
	cores, err := schedulableCores()
	if err != nil {
		p.logger.Debug("cannot read CPU affinity, workers stay unpinned", "error", err)
		return nil
	}
	return cores
}

// coreFor maps worker id onto the allowed CPUs, wrapping around when there
// are more workers than CPUs.
func coreFor(cores []int, id int) int {
	return cores[id%len(cores)]
}

// pinWorker locks the calling worker to its OS thread and binds that thread
// to the id-th allowed CPU. Failure leaves the worker unpinned.
func (p *Pool) pinWorker(id int) {
	if !p.pin || len(p.cores) == 0 {
		return
	}

	runtime.LockOSThread()
	core := coreFor(p.cores, id)
	if err := pinCurrentThread(core); err != nil {
		runtime.UnlockOSThread()
		p.logger.Debug("worker pinning failed, running unpinned", "worker", id, "core", core, "error", err)
		return
	}
	p.pinned.Add(1)
}
