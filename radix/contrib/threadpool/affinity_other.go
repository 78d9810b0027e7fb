// Copyright 2025 The go-radix Authors. SPDX-License-Identifier: Apache-2.0

//go:build !linux

package threadpool

import (
	"errors"
	"runtime"
)

var errPinUnsupported = errors.New("threadpool: core pinning is not supported on " + runtime.GOOS)

func schedulableCores() ([]int, error) {
	return nil, errPinUnsupported
}

func pinCurrentThread(core int) error {
	return errPinUnsupported
}
