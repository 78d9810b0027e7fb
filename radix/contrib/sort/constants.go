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

// =============================================================================
// Constants for radix sort
// =============================================================================

// nilNode terminates a bucket's linked list.
const nilNode = -1

// verifyBatchSize is the number of adjacent pairs each Verify task grabs at
// a time.
const verifyBatchSize = 1 << 14

// Trace region names, one per phase.
const (
	traceTask     = "radixsort"
	regionFill    = "fill"
	regionSquash  = "squash"
	regionPlan    = "plan"
	regionWrite   = "write"
	regionReset   = "reset"
	regionScatter = "scatter"
)
