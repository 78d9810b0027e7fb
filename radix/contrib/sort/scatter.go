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

// forkJoin runs fn over [lo, hi) split into numWorkers chunks and waits.
type forkJoin func(lo, hi int, fn func(w, lo, hi int)) error

// Scatter sorts data in place with the array-offset variant of the parallel
// radix sort: per-worker histograms are turned into per-worker write offsets
// inside each bucket, and every worker scatters its slice directly into a
// scratch buffer. It allocates the scratch buffer and histograms on every
// call; Sort does not.
func Scatter[T radix.Unsigned, D radix.Digit](pool *threadpool.Pool, data []T) error {
	run := func(lo, hi int, fn func(w, lo, hi int)) error {
		pool.ParallelFor(lo, hi, fn)
		return nil
	}
	return scatterSort[T, D](context.Background(), pool.NumWorkers(), run, data)
}

// scatterSort is the array-offset algorithm over any fork-join executor whose
// chunk w of [0, n) is the same for every call.
func scatterSort[T radix.Unsigned, D radix.Digit](ctx context.Context, numWorkers int, run forkJoin, data []T) error {
	var policy radix.Policy[T, D]
	if !policy.Supported() {
		return radix.ErrUnsupportedWidth
	}
	n := len(data)
	if n <= 1 {
		return nil
	}

	ctx, task := trace.NewTask(ctx, traceTask)
	defer task.End()

	numBuckets := policy.NumBuckets()
	frequency := make([][]int, numWorkers)
	for w := range frequency {
		frequency[w] = make([]int, numBuckets)
	}
	bucketSizes := make([]int, numBuckets)
	bucketStart := make([]int, numBuckets)
	scratch := make([]T, n)

	for pass := range policy.NumDigits() {
		// Per-worker frequencies
		err := run(0, n, func(w, lo, hi int) {
			freq := frequency[w]
			clear(freq)
			for _, v := range data[lo:hi] {
				freq[policy.Digit(pass, v)]++
			}
		})
		if err != nil {
			return err
		}

		// Frequencies to per-worker offsets inside each bucket
		err = run(0, numBuckets, func(_, lo, hi int) {
			for b := lo; b < hi; b++ {
				sum := 0
				for w := range frequency {
					c := frequency[w][b]
					frequency[w][b] = sum
					sum += c
				}
				bucketSizes[b] = sum
			}
		})
		if err != nil {
			return err
		}

		offset := 0
		for b, size := range bucketSizes {
			bucketStart[b] = offset
			offset += size
		}
		if offset != n {
			panic(fmt.Errorf("%w: bucket sizes sum to %d, want %d", radix.ErrCorruptPlan, offset, n))
		}

		var scatterErr error
		trace.WithRegion(ctx, regionScatter, func() {
			scatterErr = run(0, n, func(w, lo, hi int) {
				freq := frequency[w]
				for _, v := range data[lo:hi] {
					d := policy.Digit(pass, v)
					scratch[bucketStart[d]+freq[d]] = v
					freq[d]++
				}
			})
		})
		if scatterErr != nil {
			return scatterErr
		}

		// Copy back
		err = run(0, n, func(_, lo, hi int) {
			copy(data[lo:hi], scratch[lo:hi])
		})
		if err != nil {
			return err
		}
	}
	return nil
}
