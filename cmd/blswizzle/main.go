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

// blswizzle converts surfaces between the pitch-linear and Maxwell
// block-linear layouts, prints layout information, and packs block-linear
// mip chains from PNG images.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/MarkTseng/skyline/core/app"
	"github.com/MarkTseng/skyline/core/log"
	"github.com/MarkTseng/skyline/gpu/texture"
	"github.com/MarkTseng/skyline/gpu/texture/layout"
	"github.com/pkg/errors"
	xdraw "golang.org/x/image/draw"
)

var (
	mode        = flag.String("mode", "info", "one of swizzle, deswizzle, info, mipchain")
	in          = flag.String("in", "", "input file (raw surface, or PNG for mipchain)")
	out         = flag.String("out", "", "output file")
	width       = flag.Uint("width", 0, "surface width in texels")
	height      = flag.Uint("height", 0, "surface height in texels")
	depth       = flag.Uint("depth", 1, "surface depth in slices")
	bpb         = flag.Uint("bpb", 4, "bytes per format block (1, 2, 4, 8, 12 or 16)")
	blockHeight = flag.Uint("block-height", 16, "block height in GOBs")
	blockDepth  = flag.Uint("block-depth", 1, "block depth in GOBs")
	pitch       = flag.Uint("pitch", 0, "pitch-linear row stride in bytes, 0 for tightly packed")
	levels      = flag.Uint("levels", 1, "mip level count; 0 means a full chain in mipchain mode and one level in info mode")
	layers      = flag.Uint("layers", 1, "layer count")
)

func main() {
	app.Name = "blswizzle"
	app.ShortHelp = "blswizzle converts surfaces between pitch-linear and Maxwell block-linear layouts"
	app.Run(run)
}

func run(ctx context.Context) error {
	switch *mode {
	case "swizzle":
		return swizzle(ctx, true)
	case "deswizzle":
		return swizzle(ctx, false)
	case "info":
		return info(ctx)
	case "mipchain":
		return mipchain(ctx)
	default:
		return errors.Errorf("unknown mode '%s'", *mode)
	}
}

func dimensions() layout.Dimensions {
	return layout.Dims(uint32(*width), uint32(*height), uint32(*depth))
}

func swizzle(ctx context.Context, toBlockLinear bool) error {
	if *width == 0 || *height == 0 {
		return errors.New("-width and -height are required")
	}
	dims := dimensions()
	blockLinearSize := layout.BlockLinearLayerSize(dims, 1, 1, uint32(*bpb), uint32(*blockHeight), uint32(*blockDepth))

	pitchBytes := uint64(dims.Width) * uint64(*bpb)
	if *pitch != 0 {
		pitchBytes = uint64(*pitch)
	}
	pitchSize := pitchBytes * uint64(dims.Height) * uint64(dims.Depth)

	data, err := os.ReadFile(*in)
	if err != nil {
		return errors.Wrap(err, "reading input surface")
	}

	var output []byte
	if toBlockLinear {
		if uint64(len(data)) < pitchSize {
			return errors.Errorf("input is 0x%X bytes, the pitch surface needs 0x%X", len(data), pitchSize)
		}
		output = make([]byte, blockLinearSize)
		layout.CopyPitchToBlockLinear(dims, 1, 1, uint32(*bpb), uint32(*pitch), uint32(*blockHeight), uint32(*blockDepth), data, output)
	} else {
		if uint64(len(data)) < blockLinearSize {
			return errors.Errorf("input is 0x%X bytes, the block-linear surface needs 0x%X", len(data), blockLinearSize)
		}
		output = make([]byte, pitchSize)
		layout.CopyBlockLinearToPitch(dims, 1, 1, uint32(*bpb), uint32(*pitch), uint32(*blockHeight), uint32(*blockDepth), data, output)
	}

	log.I(ctx, "%v: 0x%X pitch bytes <-> 0x%X block-linear bytes", dims, pitchSize, blockLinearSize)
	return errors.Wrap(os.WriteFile(*out, output, 0666), "writing output surface")
}

func info(ctx context.Context) error {
	if *width == 0 || *height == 0 {
		return errors.New("-width and -height are required")
	}
	guest := texture.GuestTexture{
		Dimensions: dimensions(),
		Format:     texture.Format{Name: fmt.Sprintf("%d bpb", *bpb), BlockWidth: 1, BlockHeight: 1, Bpb: uint32(*bpb)},
		Tile: texture.TileConfig{
			Mode:           texture.Block,
			GobBlockHeight: uint32(*blockHeight),
			GobBlockDepth:  uint32(*blockDepth),
		},
		LayerCount: uint32(*layers),
		LevelCount: uint32(*levels),
	}

	fmt.Printf("surface:    %v, %s, %d level(s), %d layer(s)\n", guest.Dimensions, guest.Format, *levels, *layers)
	fmt.Printf("block:      %d GOB(s) high, %d GOB(s) deep\n", *blockHeight, *blockDepth)
	fmt.Printf("layer size: 0x%X bytes\n", guest.LayerSize())
	fmt.Printf("total size: 0x%X bytes\n", guest.Size())

	fmt.Println("level  dimensions      linear    blocklinear  block")
	for i, level := range guest.MipLayout() {
		fmt.Printf("%5d  %-14v  0x%-6X  0x%-9X  %dx%d\n",
			i, level.Dimensions, level.LinearSize, level.BlockLinearSize,
			level.GobBlockHeight, level.GobBlockDepth)
	}
	return nil
}

func mipchain(ctx context.Context) error {
	f, err := os.Open(*in)
	if err != nil {
		return errors.Wrap(err, "opening input image")
	}
	defer f.Close()

	decoded, err := png.Decode(f)
	if err != nil {
		return errors.Wrap(err, "decoding input image")
	}
	bounds := decoded.Bounds()
	src := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	xdraw.Copy(src, image.Point{}, decoded, bounds, xdraw.Src, nil)

	dims := layout.Dims(uint32(bounds.Dx()), uint32(bounds.Dy()), 1)
	levelCount := uint32(*levels)
	if levelCount == 0 {
		levelCount = fullChainLevels(dims)
	}

	mipLevels := layout.BlockLinearMipLayout(dims, 1, 1, 4, 0, 0, 0,
		uint32(*blockHeight), uint32(*blockDepth), levelCount)
	chain := make([]byte, layout.BlockLinearMippedSize(dims, 1, 1, 4,
		uint32(*blockHeight), uint32(*blockDepth), levelCount, false))

	var offset uint64
	for i, level := range mipLevels {
		scaled := src
		if level.Dimensions != dims {
			scaled = image.NewRGBA(image.Rect(0, 0, int(level.Dimensions.Width), int(level.Dimensions.Height)))
			xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), src, src.Bounds(), xdraw.Src, nil)
		}
		layout.CopyPitchToBlockLinear(level.Dimensions, 1, 1, 4, 0,
			level.GobBlockHeight, level.GobBlockDepth, scaled.Pix, chain[offset:])
		log.D(ctx, "level %d: %v at 0x%X", i, level.Dimensions, offset)
		offset += level.BlockLinearSize
	}

	log.I(ctx, "packed %d level(s) of %v into 0x%X bytes", levelCount, dims, len(chain))
	return errors.Wrap(os.WriteFile(*out, chain, 0666), "writing mip chain")
}

func fullChainLevels(dims layout.Dimensions) uint32 {
	levels, extent := uint32(1), dims.Width
	if dims.Height > extent {
		extent = dims.Height
	}
	for extent > 1 {
		extent /= 2
		levels++
	}
	return levels
}
