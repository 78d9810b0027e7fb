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
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/ajroetker/go-radix/radix"
)

// GroupSort sorts data in place with the array-offset algorithm, running each
// phase on an errgroup of at most workers goroutines instead of a Pool.
// workers <= 0 selects GOMAXPROCS.
//
// Unlike Sort, GroupSort checks ctx between phases and returns ctx.Err() if
// it is cancelled; data is then left partially sorted.
func GroupSort[T radix.Unsigned, D radix.Digit](ctx context.Context, workers int, data []T) error {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	run := func(lo, hi int, fn func(w, lo, hi int)) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		n := hi - lo
		per := (n + workers - 1) / workers

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		for w := range workers {
			start := lo + min(per*w, n)
			end := lo + min(per*(w+1), n)
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				fn(w, start, end)
				return nil
			})
		}
		return g.Wait()
	}
	return scatterSort[T, D](ctx, workers, run, data)
}
