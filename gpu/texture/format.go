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

package texture

import (
	"github.com/MarkTseng/skyline/core/math/u64"
)

// Format describes the block shape of a texture format. Uncompressed formats
// have 1x1 blocks; block-compressed formats cover BlockWidth x BlockHeight
// texels per block. The layout engine treats the block payload as opaque.
type Format struct {
	// Name is the display name of the format.
	Name string
	// BlockWidth is the width of a format block in texels.
	BlockWidth uint32
	// BlockHeight is the height of a format block in texels.
	BlockHeight uint32
	// Bpb is the number of bytes per format block.
	Bpb uint32
}

func (f Format) String() string { return f.Name }

// Size returns the number of bytes required to hold width x height texels of
// this format, tightly packed.
func (f Format) Size(width, height uint32) uint64 {
	return u64.DivideCeil(uint64(width), uint64(f.BlockWidth)) *
		u64.DivideCeil(uint64(height), uint64(f.BlockHeight)) *
		uint64(f.Bpb)
}

func uncompressed(name string, bpb uint32) Format {
	return Format{Name: name, BlockWidth: 1, BlockHeight: 1, Bpb: bpb}
}

func compressed(name string, blockWidth, blockHeight, bpb uint32) Format {
	return Format{Name: name, BlockWidth: blockWidth, BlockHeight: blockHeight, Bpb: bpb}
}

var (
	R8Unorm     = uncompressed("R8Unorm", 1)
	R16Unorm    = uncompressed("R16Unorm", 2)
	RG8Unorm    = uncompressed("RG8Unorm", 2)
	RGBA8Unorm  = uncompressed("RGBA8Unorm", 4)
	BGRA8Unorm  = uncompressed("BGRA8Unorm", 4)
	RG16Float   = uncompressed("RG16Float", 4)
	RGBA16Float = uncompressed("RGBA16Float", 8)
	RG32Float   = uncompressed("RG32Float", 8)
	RGB32Float  = uncompressed("RGB32Float", 12)
	RGBA32Float = uncompressed("RGBA32Float", 16)

	BC1       = compressed("BC1", 4, 4, 8)
	BC2       = compressed("BC2", 4, 4, 16)
	BC3       = compressed("BC3", 4, 4, 16)
	BC4       = compressed("BC4", 4, 4, 8)
	BC5       = compressed("BC5", 4, 4, 16)
	BC7       = compressed("BC7", 4, 4, 16)
	Astc4x4   = compressed("ASTC 4x4", 4, 4, 16)
	Astc8x8   = compressed("ASTC 8x8", 8, 8, 16)
	Astc12x12 = compressed("ASTC 12x12", 12, 12, 16)
)
