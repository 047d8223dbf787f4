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

// Package dma implements the Maxwell DMA copy engine front-end: it decodes
// method traffic into the register file and routes launched copies to the
// texture layout engine.
package dma

import (
	"context"
	"encoding/binary"
	"time"

	"github.com/MarkTseng/skyline/core/fault"
	"github.com/MarkTseng/skyline/core/log"
	"github.com/MarkTseng/skyline/core/math/u32"
	"github.com/MarkTseng/skyline/gpu/texture/layout"
	"github.com/pkg/errors"
)

// ErrSplitMapping is reported when a copy touches a guest range that is not
// contiguously mapped.
const ErrSplitMapping = fault.Const("DMA copies for split textures are unimplemented")

// gpuTickFrequency is the frequency of the GPU timestamp counter in Hz.
const gpuTickFrequency = 384_000_000

// AddressSpace is the GPU virtual memory the engine copies through.
type AddressSpace interface {
	// TranslateRange returns the host mappings covering size bytes at the
	// guest virtual address addr, in address order.
	TranslateRange(addr, size uint64) ([][]byte, error)
	// Write writes data to the guest virtual address addr.
	Write(addr uint64, data []byte) error
}

// Engine is one instance of the copy engine. It owns no buffer memory; every
// copy runs to completion inside the launch call.
type Engine struct {
	// Registers is the engine's register file.
	Registers Registers

	as    AddressSpace
	epoch time.Time
}

// New returns an Engine copying through the given address space.
func New(as AddressSpace) *Engine {
	return &Engine{as: as, epoch: time.Now()}
}

// CallMethod writes one method argument into the register file, triggering a
// launch when the launch method is written.
func (e *Engine) CallMethod(ctx context.Context, method uint32, argument uint32) {
	log.V(ctx, "called method in Maxwell DMA: 0x%X args: 0x%X", method, argument)

	e.handleMethod(ctx, method, argument)
}

// CallMethodBatchNonInc writes a batch of arguments to a single method.
func (e *Engine) CallMethodBatchNonInc(ctx context.Context, method uint32, arguments []uint32) {
	for _, argument := range arguments {
		e.handleMethod(ctx, method, argument)
	}
}

func (e *Engine) handleMethod(ctx context.Context, method uint32, argument uint32) {
	if method >= RegisterCount {
		log.W(ctx, "method out of range: 0x%X", method)
		return
	}
	e.Registers[method] = argument

	if method == MethodLaunchDma {
		e.launchDma(ctx)
	}
}

func (e *Engine) launchDma(ctx context.Context) {
	if e.Registers.LaunchDma().RemapEnable() {
		log.W(ctx, "remapped DMA copies are unimplemented!")
	} else {
		e.dmaCopy(ctx)
	}

	e.releaseSemaphore(ctx)
}

func (e *Engine) dmaCopy(ctx context.Context) {
	launch := e.Registers.LaunchDma()

	if !launch.MultiLineEnable() {
		// 1-D copy.
		log.D(ctx, "src: 0x%X dst: 0x%X size: 0x%X", e.Registers.OffsetIn(), e.Registers.OffsetOut(), e.Registers.LineLengthIn())
		if err := e.copyRange(e.Registers.OffsetOut(), e.Registers.OffsetIn(), uint64(e.Registers.LineLengthIn())); err != nil {
			logCopyError(ctx, err, "1-D DMA copy")
		}
		return
	}

	if launch.SrcMemoryLayout() == launch.DstMemoryLayout() {
		if launch.SrcMemoryLayout() == LayoutPitch {
			if err := e.copyPitchToPitch(ctx); err != nil {
				logCopyError(ctx, err, "pitch to pitch DMA copy")
			}
		} else {
			log.W(ctx, "BlockLinear to BlockLinear DMA copies are unimplemented!")
		}
	} else if launch.SrcMemoryLayout() == LayoutBlockLinear {
		e.copyBlockLinearToPitch(ctx)
	} else {
		e.copyPitchToBlockLinear(ctx)
	}
}

func (e *Engine) copyPitchToPitch(ctx context.Context) error {
	pitchIn, pitchOut := e.Registers.PitchIn(), e.Registers.PitchOut()
	lineLength, lineCount := e.Registers.LineLengthIn(), e.Registers.LineCount()

	if pitchIn == pitchOut && pitchIn == lineLength {
		// Both sides tightly packed, copy as is.
		return e.copyRange(e.Registers.OffsetOut(), e.Registers.OffsetIn(), uint64(lineLength)*uint64(lineCount))
	}
	var srcOffset, dstOffset uint64
	for line := uint32(0); line < lineCount; line++ {
		if err := e.copyRange(e.Registers.OffsetOut()+dstOffset, e.Registers.OffsetIn()+srcOffset, uint64(lineLength)); err != nil {
			return err
		}
		srcOffset += uint64(pitchIn)
		dstOffset += uint64(pitchOut)
	}
	return nil
}

func (e *Engine) copyBlockLinearToPitch(ctx context.Context) {
	srcSurface := e.Registers.SrcSurface()
	if srcSurface.BlockSize.Width() != 1 {
		log.E(ctx, "blocklinear surfaces with a non-one block width are unsupported on the Tegra X1: %d", srcSurface.BlockSize.Width())
		return
	}

	srcDimensions := layout.Dims(srcSurface.Width, srcSurface.Height, srcSurface.Depth)
	srcLayerStride := layout.BlockLinearLayerSize(srcDimensions, 1, 1, 1, srcSurface.BlockSize.Height(), srcSurface.BlockSize.Depth())
	srcLayerAddress := e.Registers.OffsetIn() + uint64(srcSurface.Layer)*srcLayerStride

	dstDimensions := layout.Dims(e.Registers.LineLengthIn(), e.Registers.LineCount(), srcSurface.Depth)
	// Without remapping there is a single byte per pixel.
	dstSize := uint64(e.Registers.PitchOut()) * uint64(dstDimensions.Height) * uint64(dstDimensions.Depth)

	src, err := e.contiguous(srcLayerAddress, srcLayerStride)
	if err != nil {
		logCopyError(ctx, err, "translating blocklinear source")
		return
	}
	dst, err := e.contiguous(e.Registers.OffsetOut(), dstSize)
	if err != nil {
		logCopyError(ctx, err, "translating pitch destination")
		return
	}

	log.D(ctx, "%v@0x%X -> %v@0x%X", srcDimensions, srcLayerAddress, dstDimensions, e.Registers.OffsetOut())

	if u32.AlignDown(srcDimensions.Width, 64) != u32.AlignDown(dstDimensions.Width, 64) ||
		srcSurface.Origin.X() != 0 || srcSurface.Origin.Y() != 0 {
		layout.CopyBlockLinearToPitchSubrect(
			dstDimensions, srcDimensions,
			1, 1, 1, e.Registers.PitchOut(),
			srcSurface.BlockSize.Height(), srcSurface.BlockSize.Depth(),
			src, dst,
			srcSurface.Origin.X(), srcSurface.Origin.Y())
	} else {
		layout.CopyBlockLinearToPitch(
			dstDimensions,
			1, 1, 1, e.Registers.PitchOut(),
			srcSurface.BlockSize.Height(), srcSurface.BlockSize.Depth(),
			src, dst)
	}
}

func (e *Engine) copyPitchToBlockLinear(ctx context.Context) {
	dstSurface := e.Registers.DstSurface()
	if dstSurface.BlockSize.Width() != 1 {
		log.E(ctx, "blocklinear surfaces with a non-one block width are unsupported on the Tegra X1: %d", dstSurface.BlockSize.Width())
		return
	}

	srcDimensions := layout.Dims(e.Registers.LineLengthIn(), e.Registers.LineCount(), dstSurface.Depth)
	// Without remapping there is a single byte per pixel.
	srcSize := uint64(e.Registers.PitchIn()) * uint64(srcDimensions.Height) * uint64(srcDimensions.Depth)

	dstDimensions := layout.Dims(dstSurface.Width, dstSurface.Height, dstSurface.Depth)
	dstLayerStride := layout.BlockLinearLayerSize(dstDimensions, 1, 1, 1, dstSurface.BlockSize.Height(), dstSurface.BlockSize.Depth())
	dstLayerAddress := e.Registers.OffsetOut() + uint64(dstSurface.Layer)*dstLayerStride

	src, err := e.contiguous(e.Registers.OffsetIn(), srcSize)
	if err != nil {
		log.Err(ctx, err, "translating pitch source")
		return
	}
	dst, err := e.contiguous(dstLayerAddress, dstLayerStride)
	if err != nil {
		log.Err(ctx, err, "translating blocklinear destination")
		return
	}

	log.D(ctx, "%v@0x%X -> %v@0x%X", srcDimensions, e.Registers.OffsetIn(), dstDimensions, dstLayerAddress)

	if u32.AlignDown(srcDimensions.Width, 64) != u32.AlignDown(dstDimensions.Width, 64) ||
		dstSurface.Origin.X() != 0 || dstSurface.Origin.Y() != 0 {
		layout.CopyPitchToBlockLinearSubrect(
			srcDimensions, dstDimensions,
			1, 1, 1, e.Registers.PitchIn(),
			dstSurface.BlockSize.Height(), dstSurface.BlockSize.Depth(),
			src, dst,
			dstSurface.Origin.X(), dstSurface.Origin.Y())
	} else {
		layout.CopyPitchToBlockLinear(
			srcDimensions,
			1, 1, 1, e.Registers.PitchIn(),
			dstSurface.BlockSize.Height(), dstSurface.BlockSize.Depth(),
			src, dst)
	}
}

// logCopyError reports a copy that could not run. A split mapping is an
// unimplemented case and is logged as a warning; other failures as errors.
func logCopyError(ctx context.Context, err error, msg string) {
	if err == ErrSplitMapping {
		log.W(ctx, "%s: %v", msg, err)
		return
	}
	log.Err(ctx, err, msg)
}

// contiguous translates a guest range and requires it to be a single host
// mapping.
func (e *Engine) contiguous(addr, size uint64) ([]byte, error) {
	mappings, err := e.as.TranslateRange(addr, size)
	if err != nil {
		return nil, errors.Wrapf(err, "translating 0x%X+0x%X", addr, size)
	}
	if len(mappings) != 1 {
		return nil, ErrSplitMapping
	}
	return mappings[0], nil
}

// copyRange copies size bytes between two guest virtual addresses.
func (e *Engine) copyRange(dstAddr, srcAddr, size uint64) error {
	src, err := e.contiguous(srcAddr, size)
	if err != nil {
		return err
	}
	dst, err := e.contiguous(dstAddr, size)
	if err != nil {
		return err
	}
	copy(dst[:size], src[:size])
	return nil
}

func (e *Engine) releaseSemaphore(ctx context.Context) {
	launch := e.Registers.LaunchDma()
	if launch.ReductionEnable() {
		log.W(ctx, "semaphore reduction is unimplemented!")
	}

	address := e.Registers.SemaphoreAddress()
	payload := e.Registers.SemaphorePayload()
	switch launch.SemaphoreType() {
	case SemaphoreReleaseOneWord:
		if err := e.writeUint32(address, payload); err != nil {
			log.Err(ctx, err, "releasing one word semaphore")
			return
		}
		log.D(ctx, "address: 0x%X payload: %d", address, payload)
	case SemaphoreReleaseFourWord:
		// Write the timestamp first to ensure correct ordering.
		timestamp := e.gpuTimeTicks()
		if err := e.writeUint64(address+8, timestamp); err != nil {
			log.Err(ctx, err, "releasing four word semaphore")
			return
		}
		if err := e.writeUint32(address, payload); err != nil {
			log.Err(ctx, err, "releasing four word semaphore")
			return
		}
		log.D(ctx, "address: 0x%X payload: %d timestamp: %d", address, payload, timestamp)
	}
}

func (e *Engine) writeUint32(addr uint64, value uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], value)
	return e.as.Write(addr, buf[:])
}

func (e *Engine) writeUint64(addr uint64, value uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], value)
	return e.as.Write(addr, buf[:])
}

// gpuTimeTicks returns the current GPU timestamp counter value.
func (e *Engine) gpuTimeTicks() uint64 {
	elapsed := time.Since(e.epoch)
	seconds := uint64(elapsed / time.Second)
	remainder := uint64(elapsed % time.Second)
	return seconds*gpuTickFrequency + remainder*gpuTickFrequency/uint64(time.Second)
}
