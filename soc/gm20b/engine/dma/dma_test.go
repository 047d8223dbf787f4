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

package dma_test

import (
	"encoding/binary"
	"testing"

	"github.com/MarkTseng/skyline/core/assert"
	"github.com/MarkTseng/skyline/core/log"
	"github.com/MarkTseng/skyline/gpu/texture/layout"
	"github.com/MarkTseng/skyline/soc/gm20b/engine/dma"
	"github.com/pkg/errors"
)

// flatMemory is an address space with a single identity mapping.
type flatMemory struct {
	data []byte
	// splitAt forces TranslateRange to return two mappings for ranges
	// crossing it, to model non-contiguous guest memory.
	splitAt uint64
}

func (m *flatMemory) TranslateRange(addr, size uint64) ([][]byte, error) {
	if addr+size > uint64(len(m.data)) {
		return nil, errors.Errorf("unmapped range 0x%X+0x%X", addr, size)
	}
	if m.splitAt != 0 && addr < m.splitAt && addr+size > m.splitAt {
		return [][]byte{m.data[addr:m.splitAt], m.data[m.splitAt : addr+size]}, nil
	}
	return [][]byte{m.data[addr : addr+size]}, nil
}

func (m *flatMemory) Write(addr uint64, data []byte) error {
	if addr+uint64(len(data)) > uint64(len(m.data)) {
		return errors.Errorf("unmapped write at 0x%X", addr)
	}
	copy(m.data[addr:], data)
	return nil
}

const (
	launchMultiLine  = 1 << 9
	launchSrcPitch   = 1 << 7
	launchDstPitch   = 1 << 8
	launchOneWordSem = 1 << 3
)

const (
	srcAddr = 0x1000
	dstAddr = 0x40000
	semAddr = 0x200
)

func fill(buf []byte, seed uint32) {
	state := seed*2654435761 + 1
	for i := range buf {
		state = state*1664525 + 1013904223
		buf[i] = byte(state >> 24)
	}
}

func newEngine(memSize int) (*dma.Engine, *flatMemory) {
	mem := &flatMemory{data: make([]byte, memSize)}
	return dma.New(mem), mem
}

func TestPitchToBlockLinearLaunch(t *testing.T) {
	ctx := log.Testing(t)
	assert := assert.To(t)

	engine, mem := newEngine(0x100000)

	width, height := uint32(128), uint32(32)
	pitchSize := uint64(width) * uint64(height)
	fill(mem.data[srcAddr:srcAddr+pitchSize], 1)
	pitch := append([]byte(nil), mem.data[srcAddr:srcAddr+pitchSize]...)

	for _, m := range []struct{ method, argument uint32 }{
		{dma.MethodOffsetInLower, srcAddr},
		{dma.MethodOffsetOutLower, dstAddr},
		{dma.MethodPitchIn, width},
		{dma.MethodLineLengthIn, width},
		{dma.MethodLineCount, height},
		{dma.MethodDstBlockSize, 0x10}, // block height of 2 GOBs
		{dma.MethodDstWidth, width},
		{dma.MethodDstHeight, height},
		{dma.MethodDstDepth, 1},
		{dma.MethodSemaphoreB, semAddr},
		{dma.MethodSemaphorePayload, 0xCAFE},
		{dma.MethodLaunchDma, launchMultiLine | launchSrcPitch | launchOneWordSem},
	} {
		engine.CallMethod(ctx, m.method, m.argument)
	}

	dims := layout.Dims(width, height, 1)
	size := layout.BlockLinearLayerSize(dims, 1, 1, 1, 2, 1)
	expect := make([]byte, size)
	layout.CopyPitchToBlockLinear(dims, 1, 1, 1, width, 2, 1, pitch, expect)

	assert.For("blocklinear destination").ThatSlice(mem.data[dstAddr : dstAddr+size]).Equals(expect)
	assert.For("semaphore payload").
		That(binary.LittleEndian.Uint32(mem.data[semAddr:])).Equals(uint32(0xCAFE))
}

func TestBlockLinearToPitchSubrectLaunch(t *testing.T) {
	ctx := log.Testing(t)
	assert := assert.To(t)

	engine, mem := newEngine(0x100000)

	blWidth, blHeight := uint32(256), uint32(64)
	subWidth, subHeight := uint32(64), uint32(32)
	originX, originY := uint32(48), uint32(16)

	blDims := layout.Dims(blWidth, blHeight, 1)
	blSize := layout.BlockLinearLayerSize(blDims, 1, 1, 1, 2, 1)
	fill(mem.data[srcAddr:srcAddr+blSize], 2)
	blockLinear := append([]byte(nil), mem.data[srcAddr:srcAddr+blSize]...)

	for _, m := range []struct{ method, argument uint32 }{
		{dma.MethodOffsetInLower, srcAddr},
		{dma.MethodOffsetOutLower, dstAddr},
		{dma.MethodPitchOut, subWidth},
		{dma.MethodLineLengthIn, subWidth},
		{dma.MethodLineCount, subHeight},
		{dma.MethodSrcBlockSize, 0x10},
		{dma.MethodSrcWidth, blWidth},
		{dma.MethodSrcHeight, blHeight},
		{dma.MethodSrcDepth, 1},
		{dma.MethodSrcOrigin, originY<<16 | originX},
		{dma.MethodLaunchDma, launchMultiLine | launchDstPitch},
	} {
		engine.CallMethod(ctx, m.method, m.argument)
	}

	subDims := layout.Dims(subWidth, subHeight, 1)
	expect := make([]byte, uint64(subWidth)*uint64(subHeight))
	layout.CopyBlockLinearToPitchSubrect(subDims, blDims, 1, 1, 1, subWidth, 2, 1,
		blockLinear, expect, originX, originY)

	assert.For("pitch destination").
		ThatSlice(mem.data[dstAddr : dstAddr+uint64(len(expect))]).Equals(expect)
}

func TestOneDimensionalCopy(t *testing.T) {
	ctx := log.Testing(t)
	assert := assert.To(t)

	engine, mem := newEngine(0x10000)
	fill(mem.data[srcAddr:srcAddr+256], 3)

	for _, m := range []struct{ method, argument uint32 }{
		{dma.MethodOffsetInLower, srcAddr},
		{dma.MethodOffsetOutLower, 0x8000},
		{dma.MethodLineLengthIn, 256},
		{dma.MethodLaunchDma, 0}, // multi-line disabled
	} {
		engine.CallMethod(ctx, m.method, m.argument)
	}

	assert.For("1-D copy").
		ThatSlice(mem.data[0x8000 : 0x8000+256]).
		Equals(mem.data[srcAddr : srcAddr+256])
}

func TestPitchToPitchCopies(t *testing.T) {
	ctx := log.Testing(t)
	assert := assert.To(t)

	// Equal pitches and line length collapse to one linear copy.
	engine, mem := newEngine(0x10000)
	fill(mem.data[srcAddr:srcAddr+64*8], 4)
	for _, m := range []struct{ method, argument uint32 }{
		{dma.MethodOffsetInLower, srcAddr},
		{dma.MethodOffsetOutLower, 0x4000},
		{dma.MethodPitchIn, 64},
		{dma.MethodPitchOut, 64},
		{dma.MethodLineLengthIn, 64},
		{dma.MethodLineCount, 8},
		{dma.MethodLaunchDma, launchMultiLine | launchSrcPitch | launchDstPitch},
	} {
		engine.CallMethod(ctx, m.method, m.argument)
	}
	assert.For("packed copy").
		ThatSlice(mem.data[0x4000 : 0x4000+64*8]).
		Equals(mem.data[srcAddr : srcAddr+64*8])

	// Differing strides copy line by line.
	engine, mem = newEngine(0x10000)
	fill(mem.data[srcAddr:srcAddr+128*8], 5)
	for _, m := range []struct{ method, argument uint32 }{
		{dma.MethodOffsetInLower, srcAddr},
		{dma.MethodOffsetOutLower, 0x4000},
		{dma.MethodPitchIn, 128},
		{dma.MethodPitchOut, 64},
		{dma.MethodLineLengthIn, 64},
		{dma.MethodLineCount, 8},
		{dma.MethodLaunchDma, launchMultiLine | launchSrcPitch | launchDstPitch},
	} {
		engine.CallMethod(ctx, m.method, m.argument)
	}
	for line := uint64(0); line < 8; line++ {
		assert.For("line %d", line).
			ThatSlice(mem.data[0x4000+line*64 : 0x4000+line*64+64]).
			Equals(mem.data[srcAddr+line*128 : srcAddr+line*128+64])
	}
}

func TestBlockLinearToBlockLinearIsSkipped(t *testing.T) {
	ctx := log.Testing(t)
	assert := assert.To(t)

	engine, mem := newEngine(0x10000)
	fill(mem.data[srcAddr:srcAddr+512], 6)

	for _, m := range []struct{ method, argument uint32 }{
		{dma.MethodOffsetInLower, srcAddr},
		{dma.MethodOffsetOutLower, 0x4000},
		{dma.MethodLineLengthIn, 64},
		{dma.MethodLineCount, 8},
		{dma.MethodLaunchDma, launchMultiLine}, // both sides blocklinear
	} {
		engine.CallMethod(ctx, m.method, m.argument)
	}

	// The destination is untouched.
	assert.For("destination untouched").
		ThatSlice(mem.data[0x4000 : 0x4000+512]).Equals(make([]byte, 512))
}

func TestSplitMappingIsSkipped(t *testing.T) {
	ctx := log.Testing(t)
	assert := assert.To(t)

	mem := &flatMemory{data: make([]byte, 0x100000), splitAt: dstAddr + 64}
	engine := dma.New(mem)

	width, height := uint32(64), uint32(8)
	fill(mem.data[srcAddr:srcAddr+uint64(width*height)], 7)

	for _, m := range []struct{ method, argument uint32 }{
		{dma.MethodOffsetInLower, srcAddr},
		{dma.MethodOffsetOutLower, dstAddr},
		{dma.MethodPitchIn, width},
		{dma.MethodLineLengthIn, width},
		{dma.MethodLineCount, height},
		{dma.MethodDstBlockSize, 0},
		{dma.MethodDstWidth, width},
		{dma.MethodDstHeight, height},
		{dma.MethodDstDepth, 1},
		{dma.MethodLaunchDma, launchMultiLine | launchSrcPitch},
	} {
		engine.CallMethod(ctx, m.method, m.argument)
	}

	assert.For("destination untouched").
		ThatSlice(mem.data[dstAddr : dstAddr+512]).Equals(make([]byte, 512))
}

func TestRegisterDecode(t *testing.T) {
	assert := assert.To(t)

	var r dma.Registers
	r[dma.MethodOffsetInLower] = 0x8000
	r[dma.MethodOffsetInUpper] = 0x1
	assert.For("offset in").That(r.OffsetIn()).Equals(uint64(0x1_0000_8000))

	assert.For("block width").That(dma.BlockSize(0x010).Width()).Equals(uint32(1))
	assert.For("block height").That(dma.BlockSize(0x010).Height()).Equals(uint32(2))
	assert.For("block depth").That(dma.BlockSize(0x210).Depth()).Equals(uint32(4))

	origin := dma.Origin(16<<16 | 48)
	assert.For("origin x").That(origin.X()).Equals(uint32(48))
	assert.For("origin y").That(origin.Y()).Equals(uint32(16))

	launch := dma.LaunchDma(launchMultiLine | launchSrcPitch | launchOneWordSem)
	assert.For("multi line").That(launch.MultiLineEnable()).Equals(true)
	assert.For("src layout").That(launch.SrcMemoryLayout()).Equals(dma.LayoutPitch)
	assert.For("dst layout").That(launch.DstMemoryLayout()).Equals(dma.LayoutBlockLinear)
	assert.For("semaphore").That(launch.SemaphoreType()).Equals(dma.SemaphoreReleaseOneWord)
	assert.For("remap").That(launch.RemapEnable()).Equals(false)
}
