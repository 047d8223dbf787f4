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

// Package layout implements the Tegra X1 (Maxwell) block-linear texture
// memory layout: the swizzle between pitch-linear and block-linear surfaces,
// and the size calculations for single layers and mip chains.
//
// A block-linear surface is tiled into GOBs (Groups Of Bytes) of 64 bytes by
// 8 lines, themselves stacked into blocks of gobBlockHeight GOBs on Y and
// gobBlockDepth GOBs on Z. A row of blocks spanning the surface width is a
// ROB. Within a GOB, bytes are arranged in 16x2 sectors with a fixed
// interleave; the byte order is the hardware contract and is reproduced
// bit-exactly here.
package layout

import (
	"fmt"

	"github.com/MarkTseng/skyline/core/math/u32"
	"github.com/MarkTseng/skyline/core/math/u64"
)

// Reference on block-linear tiling:
// https://gist.github.com/PixelyIon/d9c35050af0ef5690566ca9f0965bc32
const (
	// SectorWidth is the width of a sector in bytes.
	SectorWidth = 16
	// SectorHeight is the height of a sector in lines.
	SectorHeight = 2
	// GobWidth is the width of a GOB in bytes.
	GobWidth = 64
	// GobHeight is the height of a GOB in lines.
	GobHeight = 8
	// SectorLinesInGob is the number of lines of sectors inside a GOB.
	SectorLinesInGob = (GobWidth / SectorWidth) * GobHeight
)

// Dimensions holds the extent of a surface in texels.
type Dimensions struct {
	Width  uint32
	Height uint32
	Depth  uint32
}

// Dims is shorthand for constructing a Dimensions.
func Dims(width, height, depth uint32) Dimensions {
	return Dimensions{Width: width, Height: height, Depth: depth}
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%dx%d", d.Width, d.Height, d.Depth)
}

// MipLevel describes the layout of a single level within a mip chain.
type MipLevel struct {
	// Dimensions is the extent of the level in texels.
	Dimensions Dimensions
	// LinearSize is the size of the level tightly packed in the source
	// format.
	LinearSize uint64
	// TargetLinearSize is the size of the level tightly packed in the target
	// format, or LinearSize when no target format was supplied.
	TargetLinearSize uint64
	// BlockLinearSize is the size of the level in the block-linear layout,
	// including padding GOBs.
	BlockLinearSize uint64
	// GobBlockHeight is the block height in GOBs at this level.
	GobBlockHeight uint32
	// GobBlockDepth is the block depth in GOBs at this level.
	GobBlockDepth uint32
}

// blockGobs returns the block extent to use on one axis for a surface of
// surfaceGobs GOBs on that axis. A block never extends further than the
// surface it covers: once the surface shrinks below the block, the block
// snaps down to the next power of two covering the surface.
func blockGobs(blockGobs, surfaceGobs uint64) uint64 {
	if surfaceGobs > blockGobs {
		return blockGobs
	}
	return u64.NextPow2(surfaceGobs)
}

// BlockLinearLayerSize returns the size in bytes of a single layer of a
// block-linear surface, including the padding needed to fill out the last ROB
// and the Z-axis padding GOBs.
func BlockLinearLayerSize(dimensions Dimensions, formatBlockWidth, formatBlockHeight, formatBpb, gobBlockHeight, gobBlockDepth uint32) uint64 {
	// The width of the ROB in format blocks, and in bytes including the
	// padding up to a whole GOB.
	robLineWidth := u64.DivideCeil(uint64(dimensions.Width), uint64(formatBlockWidth))
	robLineBytes := u64.AlignUp(robLineWidth*uint64(formatBpb), GobWidth)

	robHeight := GobHeight * uint64(gobBlockHeight)
	surfaceHeightLines := u64.DivideCeil(uint64(dimensions.Height), uint64(formatBlockHeight))
	surfaceHeightRobs := u64.DivideCeil(surfaceHeightLines, robHeight)

	robDepth := u64.AlignUp(uint64(dimensions.Depth), uint64(gobBlockDepth))

	return robLineBytes * robHeight * surfaceHeightRobs * robDepth
}

// BlockLinearMippedSize returns the total size in bytes of levelCount mip
// levels of a block-linear surface. Block dimensions shrink along the chain
// as levels fall below the block extent. If isMultiLayer is true the total is
// aligned up to a whole block of the level 0 shape, so that layers of a
// layered surface start block-aligned.
func BlockLinearMippedSize(dimensions Dimensions, formatBlockWidth, formatBlockHeight, formatBpb, gobBlockHeight, gobBlockDepth uint32, levelCount uint32, isMultiLayer bool) uint64 {
	// The size of the surface in GOBs on every axis.
	gobsWidth := u64.DivideCeil(u64.DivideCeil(uint64(dimensions.Width), uint64(formatBlockWidth))*uint64(formatBpb), GobWidth)
	gobsHeight := u64.DivideCeil(u64.DivideCeil(uint64(dimensions.Height), uint64(formatBlockHeight)), GobHeight)
	gobsDepth := uint64(dimensions.Depth)

	blockHeight, blockDepth := uint64(gobBlockHeight), uint64(gobBlockDepth)
	layerAlignment := uint64(GobWidth * GobHeight * blockHeight * blockDepth)

	var totalSize uint64
	for i := uint32(0); i < levelCount; i++ {
		totalSize += (GobWidth * gobsWidth) * (GobHeight * u64.AlignUp(gobsHeight, blockHeight)) * u64.AlignUp(gobsDepth, blockDepth)

		// Successively divide every dimension by 2 until the final level is
		// reached.
		gobsWidth = u64.Max(gobsWidth/2, 1)
		gobsHeight = u64.Max(gobsHeight/2, 1)
		gobsDepth = u64.Max(gobsDepth/2, 1)

		blockHeight = blockGobs(blockHeight, gobsHeight)
		blockDepth = blockGobs(blockDepth, gobsDepth)
	}

	if isMultiLayer {
		totalSize = u64.AlignUp(totalSize, layerAlignment)
	}
	return totalSize
}

// BlockLinearMipLayout returns the layout of every level in a mip chain. The
// target format parameters describe an alternate format the levels may be
// converted into host-side; a targetFormatBpb of zero reuses the source
// format for TargetLinearSize.
func BlockLinearMipLayout(dimensions Dimensions, formatBlockWidth, formatBlockHeight, formatBpb, targetFormatBlockWidth, targetFormatBlockHeight, targetFormatBpb, gobBlockHeight, gobBlockDepth uint32, levelCount uint32) []MipLevel {
	mipLevels := make([]MipLevel, 0, levelCount)

	gobsWidth := u64.DivideCeil(u64.DivideCeil(uint64(dimensions.Width), uint64(formatBlockWidth))*uint64(formatBpb), GobWidth)
	gobsHeight := u64.DivideCeil(u64.DivideCeil(uint64(dimensions.Height), uint64(formatBlockHeight)), GobHeight)
	// A GOB is always a single slice deep, so the surface depth in GOBs is
	// the depth dimension itself.

	blockHeight, blockDepth := uint64(gobBlockHeight), uint64(gobBlockDepth)

	for i := uint32(0); i < levelCount; i++ {
		linearSize := u64.DivideCeil(uint64(dimensions.Width), uint64(formatBlockWidth)) * uint64(formatBpb) *
			u64.DivideCeil(uint64(dimensions.Height), uint64(formatBlockHeight)) * uint64(dimensions.Depth)
		targetLinearSize := linearSize
		if targetFormatBpb != 0 {
			targetLinearSize = u64.DivideCeil(uint64(dimensions.Width), uint64(targetFormatBlockWidth)) * uint64(targetFormatBpb) *
				u64.DivideCeil(uint64(dimensions.Height), uint64(targetFormatBlockHeight)) * uint64(dimensions.Depth)
		}

		mipLevels = append(mipLevels, MipLevel{
			Dimensions:       dimensions,
			LinearSize:       linearSize,
			TargetLinearSize: targetLinearSize,
			BlockLinearSize:  (GobWidth * gobsWidth) * (GobHeight * u64.AlignUp(gobsHeight, blockHeight)) * u64.AlignUp(uint64(dimensions.Depth), blockDepth),
			GobBlockHeight:   uint32(blockHeight),
			GobBlockDepth:    uint32(blockDepth),
		})

		gobsWidth = u64.Max(gobsWidth/2, 1)
		gobsHeight = u64.Max(gobsHeight/2, 1)

		dimensions.Width = u32.Max(dimensions.Width/2, 1)
		dimensions.Height = u32.Max(dimensions.Height/2, 1)
		dimensions.Depth = u32.Max(dimensions.Depth/2, 1)

		blockHeight = blockGobs(blockHeight, gobsHeight)
		blockDepth = blockGobs(blockDepth, uint64(dimensions.Depth))
	}

	return mipLevels
}
