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

// Package texture models guest GPU textures: their format block shape, their
// tiling configuration and the surface geometry the layout engine operates
// on.
package texture

import (
	"github.com/MarkTseng/skyline/gpu/texture/layout"
)

// TileMode is the memory layout of a guest surface.
type TileMode int

const (
	// Pitch is the row-major linear layout with a fixed row stride.
	Pitch TileMode = iota
	// Block is the block-linear tiled layout.
	Block
)

// TileConfig holds the tiling parameters of a guest surface.
type TileConfig struct {
	Mode TileMode
	// GobBlockHeight is the height of a block in GOBs (block-linear only).
	GobBlockHeight uint32
	// GobBlockDepth is the depth of a block in GOBs (block-linear only).
	GobBlockDepth uint32
	// PitchStride is the row stride in bytes (pitch only).
	PitchStride uint32
}

// GuestTexture describes a texture as the guest sees it.
type GuestTexture struct {
	Dimensions layout.Dimensions
	Format     Format
	Tile       TileConfig
	LayerCount uint32
	LevelCount uint32
}

// LayerSize returns the size in bytes of a single layer of the texture,
// including all of its mip levels and any tiling padding.
func (t GuestTexture) LayerSize() uint64 {
	switch t.Tile.Mode {
	case Block:
		return layout.BlockLinearMippedSize(
			t.Dimensions,
			t.Format.BlockWidth, t.Format.BlockHeight, t.Format.Bpb,
			t.Tile.GobBlockHeight, t.Tile.GobBlockDepth,
			t.levelCount(), t.LayerCount > 1)
	default:
		return uint64(t.Tile.PitchStride) * uint64(t.Dimensions.Height) * uint64(t.Dimensions.Depth)
	}
}

// Size returns the total size in bytes of the texture across all layers.
func (t GuestTexture) Size() uint64 {
	layers := uint64(t.LayerCount)
	if layers == 0 {
		layers = 1
	}
	return t.LayerSize() * layers
}

// MipLayout returns the layout of every mip level of a block-linear texture.
func (t GuestTexture) MipLayout() []layout.MipLevel {
	return layout.BlockLinearMipLayout(
		t.Dimensions,
		t.Format.BlockWidth, t.Format.BlockHeight, t.Format.Bpb,
		0, 0, 0,
		t.Tile.GobBlockHeight, t.Tile.GobBlockDepth,
		t.levelCount())
}

func (t GuestTexture) levelCount() uint32 {
	if t.LevelCount == 0 {
		return 1
	}
	return t.LevelCount
}

// CopyToLinear copies the first level of the guest texture into a tightly
// packed linear buffer, deswizzling or compacting as the tile mode requires.
func (t GuestTexture) CopyToLinear(guest, linear []byte) {
	switch t.Tile.Mode {
	case Block:
		layout.CopyBlockLinearToLinear(
			t.Dimensions,
			t.Format.BlockWidth, t.Format.BlockHeight, t.Format.Bpb,
			t.Tile.GobBlockHeight, t.Tile.GobBlockDepth,
			guest, linear)
	default:
		layout.CopyPitchLinearToLinear(
			t.Dimensions, t.Tile.PitchStride, uint32(t.Format.Size(t.Dimensions.Width, 1)),
			guest, linear)
	}
}

// CopyFromLinear copies a tightly packed linear buffer into the first level
// of the guest texture, swizzling or expanding as the tile mode requires.
func (t GuestTexture) CopyFromLinear(linear, guest []byte) {
	switch t.Tile.Mode {
	case Block:
		layout.CopyLinearToBlockLinear(
			t.Dimensions,
			t.Format.BlockWidth, t.Format.BlockHeight, t.Format.Bpb,
			t.Tile.GobBlockHeight, t.Tile.GobBlockDepth,
			linear, guest)
	default:
		layout.CopyLinearToPitchLinear(
			t.Dimensions, t.Tile.PitchStride, uint32(t.Format.Size(t.Dimensions.Width, 1)),
			linear, guest)
	}
}
