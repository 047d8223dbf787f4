// Copyright (C) 2026 The Skyline Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package u32

import "math/bits"

// Min returns the minimum value of a and b.
func Min(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}

// Max returns the maximum value of a and b.
func Max(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}

// DivideCeil returns value divided by divisor, rounded up to the next whole
// integer.
func DivideCeil(value, divisor uint32) uint32 {
	return (value + divisor - 1) / divisor
}

// AlignUp returns the result of aligning up the given value to the given
// alignment. The alignment does not need to be a power of two.
func AlignUp(value, alignment uint32) uint32 {
	if value%alignment != 0 {
		return value + alignment - (value % alignment)
	}
	return value
}

// AlignDown returns the result of aligning down the given value to the given
// alignment. The alignment does not need to be a power of two.
func AlignDown(value, alignment uint32) uint32 {
	return value - (value % alignment)
}

// IsAligned returns whether value is a whole multiple of alignment.
func IsAligned(value, alignment uint32) bool {
	return value%alignment == 0
}

// NextPow2 returns the smallest power of two that is greater than or equal to
// value. NextPow2(0) is 1.
func NextPow2(value uint32) uint32 {
	if value <= 1 {
		return 1
	}
	return 1 << (32 - bits.LeadingZeros32(value-1))
}
