// Copyright 2025 The go-radix Authors. SPDX-License-Identifier: Apache-2.0

//go:build linux

package threadpool

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// schedulableCores lists the CPUs in the calling thread's affinity mask. In
// a restricted cpuset these need not start at zero.
func schedulableCores() ([]int, error) {
	var set unix.CPUSet
	// pid 0 is the calling thread.
	if err := unix.SchedGetaffinity(0, &set); err != nil {
		return nil, err
	}
	n := set.Count()
	cores := make([]int, 0, n)
	for cpu := 0; cpu < 8*int(unsafe.Sizeof(set)) && len(cores) < n; cpu++ {
		if set.IsSet(cpu) {
			cores = append(cores, cpu)
		}
	}
	return cores, nil
}

// pinCurrentThread binds the calling OS thread to a single CPU.
func pinCurrentThread(core int) error {
	var set unix.CPUSet
	set.Zero()
	set.Set(core)
	return unix.SchedSetaffinity(0, &set)
}
