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

// Unsigned is a constraint for the fixed-width unsigned integer types that can
// be radix sorted. Values are ordered by their raw bit pattern.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Digit is a constraint for the unsigned types that can serve as one radix
// digit. An 8-bit digit gives 256 buckets, a 16-bit digit 65536.
type Digit interface {
	~uint8 | ~uint16
}
