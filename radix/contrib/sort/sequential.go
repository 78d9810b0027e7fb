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

import "github.com/ajroetker/go-radix/radix"

// Sequential sorts data in place with a single-threaded LSD radix sort. It is
// stable and allocates one scratch buffer of len(data) values.
func Sequential[T radix.Unsigned, D radix.Digit](data []T) error {
	var policy radix.Policy[T, D]
	if !policy.Supported() {
		return radix.ErrUnsupportedWidth
	}
	if len(data) <= 1 {
		return nil
	}

	count := make([]int, policy.NumBuckets())
	src, dst := data, make([]T, len(data))
	for pass := range policy.NumDigits() {
		radixPass(policy, pass, src, dst, count)
		src, dst = dst, src
	}

	// After an odd number of passes the result is in the scratch buffer.
	if policy.NumDigits()%2 == 1 {
		copy(data, src)
	}
	return nil
}

// radixPass performs one pass of LSD radix sort from src into dst.
// count must have NumBuckets entries; its contents are overwritten.
func radixPass[T radix.Unsigned, D radix.Digit](policy radix.Policy[T, D], pass int, src, dst []T, count []int) {
	clear(count)

	// Count histogram for each bucket
	for _, v := range src {
		count[policy.Digit(pass, v)]++
	}

	// Compute prefix sum to get bucket offsets
	offset := 0
	for b, c := range count {
		count[b] = offset
		offset += c
	}

	// Scatter elements to destination
	for _, v := range src {
		d := policy.Digit(pass, v)
		dst[count[d]] = v
		count[d]++
	}
}
