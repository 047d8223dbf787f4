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

package layout

// CopyPitchLinearToLinear compacts a pitch-linear buffer with the given row
// stride into tightly packed rows of lineBytes.
func CopyPitchLinearToLinear(dimensions Dimensions, pitchStride, lineBytes uint32, pitch, linear []byte) {
	copyStrided(uint64(dimensions.Height), uint64(lineBytes), uint64(pitchStride), uint64(lineBytes), pitch, linear)
}

// CopyLinearToPitchLinear expands tightly packed rows of lineBytes into a
// pitch-linear buffer with the given row stride.
func CopyLinearToPitchLinear(dimensions Dimensions, pitchStride, lineBytes uint32, linear, pitch []byte) {
	copyStrided(uint64(dimensions.Height), uint64(lineBytes), uint64(lineBytes), uint64(pitchStride), linear, pitch)
}

// copyStrided copies lines rows of lineBytes from src to dst, advancing the
// source by srcStride and the destination by dstStride per row.
func copyStrided(lines, lineBytes, srcStride, dstStride uint64, src, dst []byte) {
	var srcOffset, dstOffset uint64
	for line := uint64(0); line < lines; line++ {
		copy(dst[dstOffset:dstOffset+lineBytes], src[srcOffset:srcOffset+lineBytes])
		srcOffset += srcStride
		dstOffset += dstStride
	}
}
