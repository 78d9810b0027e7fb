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

package radix

import "unsafe"

// Policy is the digit arithmetic for sorting values of type T by digits of
// type D. It carries no state; the zero value is ready to use.
//
// For example, with T = uint32 and D = uint8:
//   - NumDigits: 4
//   - BitsPerDigit: 8
//   - NumBuckets: 256
type Policy[T Unsigned, D Digit] struct{}

// NumDigits returns how many passes an LSD sort needs: sizeof(T)/sizeof(D).
// It is zero when D is wider than T.
func (Policy[T, D]) NumDigits() int {
	var v T
	var d D
	return int(unsafe.Sizeof(v) / unsafe.Sizeof(d))
}

// BitsPerDigit returns the width of one digit in bits.
func (Policy[T, D]) BitsPerDigit() int {
	var d D
	return int(unsafe.Sizeof(d)) * 8
}

// MaxDigit returns the largest digit value.
func (Policy[T, D]) MaxDigit() int {
	return int(^D(0))
}

// NumBuckets returns the number of distinct digit values, MaxDigit+1.
func (p Policy[T, D]) NumBuckets() int {
	return p.MaxDigit() + 1
}

// Supported reports whether the width combination can be sorted at all.
func (p Policy[T, D]) Supported() bool {
	return p.NumDigits() > 0
}

// Digit extracts digit number pass from v, least-significant digit first.
// The truncating conversion to D is the mask.
func (p Policy[T, D]) Digit(pass int, v T) int {
	return int(D(v >> (uint(pass) * uint(p.BitsPerDigit()))))
}
