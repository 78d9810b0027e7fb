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
	"fmt"
	"slices"
	"sync/atomic"

	"github.com/ajroetker/go-radix/radix"
	"github.com/ajroetker/go-radix/radix/contrib/threadpool"
)

// IsSorted reports whether data is in ascending order.
func IsSorted[T radix.Unsigned](data []T) bool {
	return slices.IsSorted(data)
}

// Verify checks in parallel that data is in ascending order. It returns an
// error wrapping radix.ErrNotSorted that names the first descending pair.
func Verify[T radix.Unsigned](pool *threadpool.Pool, data []T) error {
	pairs := len(data) - 1
	if pairs <= 0 {
		return nil
	}

	var first atomic.Int64
	first.Store(int64(pairs))
	pool.ParallelForAtomicBatched(pairs, verifyBatchSize, func(start, end int) {
		for i := start; i < end; i++ {
			if data[i+1] < data[i] {
				for {
					cur := first.Load()
					if int64(i) >= cur || first.CompareAndSwap(cur, int64(i)) {
						break
					}
				}
				return
			}
		}
	})

	if i := int(first.Load()); i < pairs {
		return fmt.Errorf("%w: data[%d] = %d > data[%d] = %d", radix.ErrNotSorted, i, data[i], i+1, data[i+1])
	}
	return nil
}
