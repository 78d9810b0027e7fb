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
	"math/rand"
	"slices"
	"testing"

	"github.com/ajroetker/go-radix/radix"
	"github.com/ajroetker/go-radix/radix/contrib/threadpool"
)

// newTestPool returns a pool that is closed when the test ends.
func newTestPool(t testing.TB, workers int) *threadpool.Pool {
	t.Helper()
	pool := threadpool.New(threadpool.WithWorkers(workers), threadpool.WithPinning(false))
	t.Cleanup(pool.Close)
	return pool
}

// randomSlice returns n values spread over the whole range of T.
func randomSlice[T radix.Unsigned](rng *rand.Rand, n int) []T {
	data := make([]T, n)
	for i := range data {
		data[i] = T(rng.Uint64())
	}
	return data
}

// reference returns a sorted copy of data.
func reference[T radix.Unsigned](data []T) []T {
	want := slices.Clone(data)
	slices.Sort(want)
	return want
}

// checkEqual fails the test at the first index where got and want differ.
func checkEqual[T radix.Unsigned](t *testing.T, name string, got, want []T) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: len = %d, want %d", name, len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%s: [%d] = %d, want %d", name, i, got[i], want[i])
		}
	}
}
