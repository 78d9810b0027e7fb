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

	"golang.org/x/sys/cpu"

	"github.com/ajroetker/go-radix/radix"
)

// slab is the node storage for one sort, as parallel arrays: node i holds
// values[i] and links to next[i].
type slab[T radix.Unsigned] struct {
	values []T
	next   []int
}

// grow makes room for n nodes, reusing the existing storage when possible.
func (s *slab[T]) grow(n int) {
	if cap(s.values) < n {
		s.values = make([]T, n)
		s.next = make([]int, n)
	}
	s.values = s.values[:n]
	s.next = s.next[:n]
}

// arena hands out node indices from the window [base, limit) of a slab.
// Nodes are never freed individually; reset rewinds the whole window.
type arena struct {
	base, limit int
	cursor      int
}

// size assigns the window [lo, hi) and rewinds the cursor.
func (a *arena) size(lo, hi int) {
	a.base, a.limit, a.cursor = lo, hi, lo
}

// alloc returns the next free node index.
func (a *arena) alloc() int {
	if a.cursor >= a.limit {
		panic(fmt.Errorf("%w: arena window [%d, %d) exhausted", radix.ErrCorruptPlan, a.base, a.limit))
	}
	i := a.cursor
	a.cursor++
	return i
}

// reset makes the whole window available again.
func (a *arena) reset() {
	a.cursor = a.base
}

// used returns the number of nodes allocated since the last reset.
func (a *arena) used() int {
	return a.cursor - a.base
}

// bucket is a singly linked list of slab nodes. The zero value is empty;
// head and tail are only meaningful when size > 0.
type bucket struct {
	head, tail int
	size       int
}

// pushBack appends node idx. next[idx] must already be nilNode.
func (b *bucket) pushBack(next []int, idx int) {
	if b.size == 0 {
		b.head = idx
	} else {
		next[b.tail] = idx
	}
	b.tail = idx
	b.size++
}

// squash appends all of other's nodes to b, keeping their order. other is
// left unchanged; its nodes now belong to both lists until it is cleared.
func (b *bucket) squash(next []int, other bucket) {
	if other.size == 0 {
		return
	}
	if b.size == 0 {
		*b = other
		return
	}
	next[b.tail] = other.head
	b.tail = other.tail
	b.size += other.size
}

// clear empties the list without touching its nodes.
func (b *bucket) clear() {
	*b = bucket{}
}

// threadBuckets is the bucket set of one fork-join chunk: its arena window
// and one bucket per digit value. It is padded so neighbouring chunks do not
// share cache lines on their hot fields.
type threadBuckets struct {
	_       cpu.CacheLinePad
	arena   arena
	buckets []bucket
	_       cpu.CacheLinePad
}

// pushValue stores v in a fresh node and appends it to bucket digit.
func pushValue[T radix.Unsigned](tb *threadBuckets, s *slab[T], digit int, v T) {
	idx := tb.arena.alloc()
	s.values[idx] = v
	s.next[idx] = nilNode
	tb.buckets[digit].pushBack(s.next, idx)
}
