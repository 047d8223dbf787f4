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

import "github.com/MarkTseng/skyline/core/math/u64"

// direction selects which side of a copy is read and which is written.
type direction int

const (
	blockLinearToPitch direction = iota
	pitchToBlockLinear
)

// copyArgs carries the precomputed geometry of a full-surface copy into the
// per-element loop.
type copyArgs struct {
	textureWidth    uint64 // elements per line, after width widening
	textureHeight   uint64 // lines per slice
	depth           uint64 // slices
	bpb             uint64 // element size in bytes, after width widening
	pitchBytes      uint64 // pitch-linear row stride
	alignedRowBytes uint64 // surface row width aligned up to whole GOBs
	robHeight       uint64 // ROB height in lines
	alignedDepth    uint64 // surface depth aligned up to whole blocks
	blockSize       uint64 // bytes per block
	sliceStride     uint64 // block-linear byte advance per slice
	blockLinear     []byte
	pitch           []byte
}

// copyBlockLinear copies pixel data between a pitch-linear and a block-linear
// surface covering the whole surface.
func copyBlockLinear(dir direction, dimensions Dimensions, formatBlockWidth, formatBlockHeight, formatBpb, pitchAmount, gobBlockHeight, gobBlockDepth uint32, blockLinear, pitch []byte) {
	textureWidth := u64.DivideCeil(uint64(dimensions.Width), uint64(formatBlockWidth))
	bpb := uint64(formatBpb)
	textureWidthBytes := textureWidth * bpb
	alignedRowBytes := u64.AlignUp(textureWidthBytes, GobWidth)

	// Treat pairs of adjacent texels as a single wider element while the row
	// width allows it. The byte layout is unchanged; only the element size
	// the inner loop moves per iteration grows. The 12-byte width is never
	// widened.
	if bpb != 12 {
		for bpb != 16 && u64.IsAligned(textureWidthBytes, bpb<<1) {
			textureWidth /= 2
			bpb <<= 1
		}
	}

	pitchBytes := textureWidthBytes
	if pitchAmount != 0 {
		pitchBytes = uint64(pitchAmount)
	}

	robHeight := uint64(GobHeight) * uint64(gobBlockHeight)
	alignedDepth := u64.AlignUp(uint64(dimensions.Depth), uint64(gobBlockDepth))

	a := &copyArgs{
		textureWidth:    textureWidth,
		textureHeight:   u64.DivideCeil(uint64(dimensions.Height), uint64(formatBlockHeight)),
		depth:           uint64(dimensions.Depth),
		bpb:             bpb,
		pitchBytes:      pitchBytes,
		alignedRowBytes: alignedRowBytes,
		robHeight:       robHeight,
		alignedDepth:    alignedDepth,
		blockSize:       robHeight * GobWidth * alignedDepth,
		sliceStride:     GobHeight * GobWidth * uint64(gobBlockHeight),
		blockLinear:     blockLinear,
		pitch:           pitch,
	}

	switch bpb {
	case 1:
		copySurface[uint8](a, dir)
	case 2:
		copySurface[uint16](a, dir)
	case 4:
		copySurface[uint32](a, dir)
	case 8:
		copySurface[uint64](a, dir)
	case 12:
		// A 12-byte texel can straddle two sectors that the swizzle places
		// apart, so it moves as three 4-byte elements, each swizzled on its
		// own.
		a.textureWidth *= 3
		a.bpb = 4
		copySurface[uint32](a, dir)
	case 16:
		copySurface[[16]byte](a, dir)
	}
}

// copySurface is the full-surface copy loop, instantiated once per element
// width.
func copySurface[E element](a *copyArgs, dir direction) {
	var blockLinearBase, pitchOffset uint64
	for slice := uint64(0); slice < a.depth; slice++ {
		for line := uint64(0); line < a.textureHeight; line++ {
			robOffset := a.alignedRowBytes * u64.AlignDown(line, a.robHeight) * a.alignedDepth
			// Y offset of the GOB within the block, then of the sector rows
			// within the GOB.
			gobYOffset := ((line & (a.robHeight - 1)) / GobHeight) * (GobWidth * GobHeight)
			gobYOffset += ((line&0x07)>>1)<<6 + (line&0x01)<<4

			deswizzled := pitchOffset
			swizzledYZ := blockLinearBase + robOffset + gobYOffset

			for pixel := uint64(0); pixel < a.textureWidth; pixel++ {
				xBytes := pixel * a.bpb
				blockOffset := (xBytes / GobWidth) * a.blockSize
				gobXOffset := ((xBytes&0x3F)>>5)<<8 + (xBytes & 0x0F) + ((xBytes&0x1F)>>4)<<5
				swizzled := swizzledYZ + blockOffset + gobXOffset

				if dir == blockLinearToPitch {
					store[E](a.pitch, deswizzled, load[E](a.blockLinear, swizzled))
				} else {
					store[E](a.blockLinear, swizzled, load[E](a.pitch, deswizzled))
				}
				deswizzled += a.bpb
			}
			pitchOffset += a.pitchBytes
		}
		blockLinearBase += a.sliceStride
	}
}

// subrectArgs carries the precomputed geometry of a sub-rectangle copy into
// the per-element loop.
type subrectArgs struct {
	pitchTextureWidth  uint64 // elements per line, after width widening
	widthBytes         uint64 // pitch row width in bytes
	pitchTextureHeight uint64 // lines per slice
	depth              uint64 // slices
	bpb                uint64 // element size in bytes, after width widening
	pitchBytes         uint64 // pitch-linear row stride
	alignedRowBytes    uint64 // block-linear surface row width aligned up to whole GOBs
	robHeight          uint64 // ROB height in lines
	alignedDepth       uint64 // block-linear surface depth aligned up to whole blocks
	blockSize          uint64 // bytes per block
	sliceStride        uint64 // block-linear byte advance per slice
	originXBytes       uint64 // X origin in bytes into the ROB
	originYOffset      uint64 // Y origin in lines
	blockLinear        []byte
	pitch              []byte
}

// copyBlockLinearSubrect copies pixel data between a pitch-linear buffer and
// a sub-rectangle of a block-linear surface. The pitch region is assumed to
// lie entirely inside the block-linear region.
func copyBlockLinearSubrect(dir direction, pitchDimensions, blockLinearDimensions Dimensions, formatBlockWidth, formatBlockHeight, formatBpb, pitchAmount, gobBlockHeight, gobBlockDepth uint32, blockLinear, pitch []byte, originX, originY uint32) {
	pitchTextureWidth := u64.DivideCeil(uint64(pitchDimensions.Width), uint64(formatBlockWidth))
	bpb := uint64(formatBpb)
	pitchTextureWidthBytes := pitchTextureWidth * bpb

	originXBytes := u64.DivideCeil(uint64(originX), uint64(formatBlockWidth)) * bpb
	originYOffset := u64.DivideCeil(uint64(originY), uint64(formatBlockHeight))

	robHeight := uint64(GobHeight) * uint64(gobBlockHeight)
	alignedDepth := u64.AlignUp(uint64(blockLinearDimensions.Depth), uint64(gobBlockDepth))

	pitchBytes := pitchTextureWidthBytes
	if pitchAmount != 0 {
		pitchBytes = uint64(pitchAmount)
	}

	a := &subrectArgs{
		pitchTextureWidth:  pitchTextureWidth,
		widthBytes:         pitchTextureWidthBytes,
		pitchTextureHeight: u64.DivideCeil(uint64(pitchDimensions.Height), uint64(formatBlockHeight)),
		depth:              uint64(blockLinearDimensions.Depth),
		bpb:                bpb,
		pitchBytes:         pitchBytes,
		alignedRowBytes:    u64.AlignUp(u64.DivideCeil(uint64(blockLinearDimensions.Width), uint64(formatBlockWidth))*uint64(formatBpb), GobWidth),
		robHeight:          robHeight,
		alignedDepth:       alignedDepth,
		blockSize:          robHeight * GobWidth * alignedDepth,
		sliceStride:        GobHeight * GobWidth * uint64(gobBlockHeight),
		originXBytes:       originXBytes,
		originYOffset:      originYOffset,
		blockLinear:        blockLinear,
		pitch:              pitch,
	}

	if formatBpb == 1 {
		// Single-byte texels take the banded path: partial GOBs at either
		// edge element-wise, interior GOBs as whole sector bundles.
		copySubrectBanded(a, dir)
		return
	}

	// Widening additionally requires the slack up to the first GOB boundary
	// to sit on a widened element boundary, so that widened elements never
	// straddle a sector.
	if bpb != 12 {
		startingBlockXBytes := u64.AlignUp(originXBytes, GobWidth) - originXBytes
		for bpb != 16 &&
			u64.IsAligned(pitchTextureWidthBytes-startingBlockXBytes, bpb<<1) &&
			u64.IsAligned(startingBlockXBytes, bpb<<1) {
			pitchTextureWidth /= 2
			bpb <<= 1
		}
		a.pitchTextureWidth = pitchTextureWidth
		a.bpb = bpb
	}

	switch bpb {
	case 2:
		copySubrect[uint16](a, dir)
	case 4:
		copySubrect[uint32](a, dir)
	case 8:
		copySubrect[uint64](a, dir)
	case 12:
		// Three 4-byte elements per texel, as in copyBlockLinear.
		a.pitchTextureWidth *= 3
		a.bpb = 4
		copySubrect[uint32](a, dir)
	case 16:
		copySubrect[[16]byte](a, dir)
	}
}

// copySubrect is the per-element sub-rectangle copy loop, instantiated once
// per element width.
func copySubrect[E element](a *subrectArgs, dir direction) {
	var blockLinearBase, pitchOffset uint64
	for slice := uint64(0); slice < a.depth; slice++ {
		for line := uint64(0); line < a.pitchTextureHeight; line++ {
			y := a.originYOffset + line
			robOffset := a.alignedRowBytes * u64.AlignDown(y, a.robHeight) * a.alignedDepth
			gobYOffset := ((y & (a.robHeight - 1)) / GobHeight) * (GobWidth * GobHeight)
			gobYOffset += ((y&0x07)>>1)<<6 + (y&0x01)<<4

			deswizzled := pitchOffset
			swizzledYZ := blockLinearBase + robOffset + gobYOffset

			for pixel := uint64(0); pixel < a.pitchTextureWidth; pixel++ {
				xBytes := a.originXBytes + pixel*a.bpb
				blockOffset := (xBytes / GobWidth) * a.blockSize
				gobXOffset := ((xBytes&0x3F)>>5)<<8 + (xBytes & 0x0F) + ((xBytes&0x1F)>>4)<<5
				swizzled := swizzledYZ + blockOffset + gobXOffset

				if dir == blockLinearToPitch {
					store[E](a.pitch, deswizzled, load[E](a.blockLinear, swizzled))
				} else {
					store[E](a.blockLinear, swizzled, load[E](a.pitch, deswizzled))
				}
				deswizzled += a.bpb
			}
			pitchOffset += a.pitchBytes
		}
		blockLinearBase += a.sliceStride
	}
}

// copySubrectBanded is the single-byte sub-rectangle copy. Each row splits
// into a leading partial GOB, a run of whole GOB-wide bands and a trailing
// partial GOB; the whole bands move as four sector copies per line.
func copySubrectBanded(a *subrectArgs, dir direction) {
	first := uint64(0)
	if a.originXBytes&(GobWidth-1) != 0 {
		first = u64.Min(GobWidth-a.originXBytes&(GobWidth-1), a.widthBytes)
	}
	var gobsPerRob uint64
	if a.widthBytes >= GobWidth {
		gobsPerRob = ((a.originXBytes + a.widthBytes) - u64.AlignUp(a.originXBytes, GobWidth)) / GobWidth
	}
	tailStart := first + gobsPerRob*GobWidth

	var blockLinearBase, pitchOffset uint64
	for slice := uint64(0); slice < a.depth; slice++ {
		for line := uint64(0); line < a.pitchTextureHeight; line++ {
			y := a.originYOffset + line
			robOffset := a.alignedRowBytes * u64.AlignDown(y, a.robHeight) * a.alignedDepth
			gobYOffset := ((y & (a.robHeight - 1)) / GobHeight) * (GobWidth * GobHeight)
			gobYOffset += ((y&0x07)>>1)<<6 + (y&0x01)<<4

			deswizzled := pitchOffset
			swizzled := blockLinearBase + robOffset + gobYOffset + (a.originXBytes/GobWidth)*a.blockSize

			// Copy per element; only ever spans a single GOB.
			elemCopy := func(from, to uint64) {
				for pixel := from; pixel < to; pixel++ {
					xBytes := a.originXBytes + pixel
					gobXOffset := ((xBytes&0x3F)>>5)<<8 + (xBytes & 0x0F) + ((xBytes&0x1F)>>4)<<5
					if dir == blockLinearToPitch {
						a.pitch[deswizzled] = a.blockLinear[swizzled+gobXOffset]
					} else {
						a.blockLinear[swizzled+gobXOffset] = a.pitch[deswizzled]
					}
					deswizzled++
				}
				swizzled += a.blockSize
			}

			if first != 0 {
				elemCopy(0, first)
			}

			// Copy per whole GOB width.
			for gob := uint64(0); gob < gobsPerRob; gob++ {
				if dir == blockLinearToPitch {
					copy(a.pitch[deswizzled:deswizzled+SectorWidth], a.blockLinear[swizzled:])
					copy(a.pitch[deswizzled+16:deswizzled+16+SectorWidth], a.blockLinear[swizzled+0x20:])
					copy(a.pitch[deswizzled+32:deswizzled+32+SectorWidth], a.blockLinear[swizzled+0x100:])
					copy(a.pitch[deswizzled+48:deswizzled+48+SectorWidth], a.blockLinear[swizzled+0x120:])
				} else {
					copy(a.blockLinear[swizzled:swizzled+SectorWidth], a.pitch[deswizzled:])
					copy(a.blockLinear[swizzled+0x20:swizzled+0x20+SectorWidth], a.pitch[deswizzled+16:])
					copy(a.blockLinear[swizzled+0x100:swizzled+0x100+SectorWidth], a.pitch[deswizzled+32:])
					copy(a.blockLinear[swizzled+0x120:swizzled+0x120+SectorWidth], a.pitch[deswizzled+48:])
				}
				deswizzled += GobWidth
				swizzled += a.blockSize
			}

			if tailStart < a.widthBytes {
				elemCopy(tailStart, a.widthBytes)
			}
			pitchOffset += a.pitchBytes
		}
		blockLinearBase += a.sliceStride
	}
}

// CopyBlockLinearToPitch deswizzles a whole block-linear surface into a
// pitch-linear buffer. A pitchAmount of zero means tightly packed rows.
func CopyBlockLinearToPitch(dimensions Dimensions, formatBlockWidth, formatBlockHeight, formatBpb, pitchAmount, gobBlockHeight, gobBlockDepth uint32, blockLinear, pitch []byte) {
	copyBlockLinear(blockLinearToPitch,
		dimensions,
		formatBlockWidth, formatBlockHeight, formatBpb, pitchAmount,
		gobBlockHeight, gobBlockDepth,
		blockLinear, pitch)
}

// CopyPitchToBlockLinear swizzles a pitch-linear buffer into a whole
// block-linear surface. A pitchAmount of zero means tightly packed rows.
func CopyPitchToBlockLinear(dimensions Dimensions, formatBlockWidth, formatBlockHeight, formatBpb, pitchAmount, gobBlockHeight, gobBlockDepth uint32, pitch, blockLinear []byte) {
	copyBlockLinear(pitchToBlockLinear,
		dimensions,
		formatBlockWidth, formatBlockHeight, formatBpb, pitchAmount,
		gobBlockHeight, gobBlockDepth,
		blockLinear, pitch)
}

// CopyBlockLinearToLinear deswizzles a whole block-linear surface into a
// tightly packed linear buffer.
func CopyBlockLinearToLinear(dimensions Dimensions, formatBlockWidth, formatBlockHeight, formatBpb, gobBlockHeight, gobBlockDepth uint32, blockLinear, linear []byte) {
	copyBlockLinear(blockLinearToPitch,
		dimensions,
		formatBlockWidth, formatBlockHeight, formatBpb, 0,
		gobBlockHeight, gobBlockDepth,
		blockLinear, linear)
}

// CopyLinearToBlockLinear swizzles a tightly packed linear buffer into a
// whole block-linear surface.
func CopyLinearToBlockLinear(dimensions Dimensions, formatBlockWidth, formatBlockHeight, formatBpb, gobBlockHeight, gobBlockDepth uint32, linear, blockLinear []byte) {
	copyBlockLinear(pitchToBlockLinear,
		dimensions,
		formatBlockWidth, formatBlockHeight, formatBpb, 0,
		gobBlockHeight, gobBlockDepth,
		blockLinear, linear)
}

// CopyBlockLinearToPitchSubrect deswizzles the sub-rectangle of a
// block-linear surface at origin (originX, originY) with the extent of
// pitchDimensions into a pitch-linear buffer.
func CopyBlockLinearToPitchSubrect(pitchDimensions, blockLinearDimensions Dimensions, formatBlockWidth, formatBlockHeight, formatBpb, pitchAmount, gobBlockHeight, gobBlockDepth uint32, blockLinear, pitch []byte, originX, originY uint32) {
	copyBlockLinearSubrect(blockLinearToPitch,
		pitchDimensions, blockLinearDimensions,
		formatBlockWidth, formatBlockHeight, formatBpb, pitchAmount,
		gobBlockHeight, gobBlockDepth,
		blockLinear, pitch,
		originX, originY)
}

// CopyPitchToBlockLinearSubrect swizzles a pitch-linear buffer into the
// sub-rectangle of a block-linear surface at origin (originX, originY) with
// the extent of pitchDimensions.
func CopyPitchToBlockLinearSubrect(pitchDimensions, blockLinearDimensions Dimensions, formatBlockWidth, formatBlockHeight, formatBpb, pitchAmount, gobBlockHeight, gobBlockDepth uint32, pitch, blockLinear []byte, originX, originY uint32) {
	copyBlockLinearSubrect(pitchToBlockLinear,
		pitchDimensions, blockLinearDimensions,
		formatBlockWidth, formatBlockHeight, formatBpb, pitchAmount,
		gobBlockHeight, gobBlockDepth,
		blockLinear, pitch,
		originX, originY)
}

// CopyLinearToBlockLinearSubrect swizzles a tightly packed linear buffer into
// the sub-rectangle of a block-linear surface at origin (originX, originY).
func CopyLinearToBlockLinearSubrect(linearDimensions, blockLinearDimensions Dimensions, formatBlockWidth, formatBlockHeight, formatBpb, gobBlockHeight, gobBlockDepth uint32, linear, blockLinear []byte, originX, originY uint32) {
	copyBlockLinearSubrect(pitchToBlockLinear,
		linearDimensions, blockLinearDimensions,
		formatBlockWidth, formatBlockHeight, formatBpb, 0,
		gobBlockHeight, gobBlockDepth,
		blockLinear, linear,
		originX, originY)
}
