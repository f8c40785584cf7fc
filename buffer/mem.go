// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package buffer

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// Allocator creates buffers for swapchains.
type Allocator interface {
	// BufferCaps reports the storage kind of the buffers it creates.
	BufferCaps() Caps

	// CreateBuffer allocates a width x height buffer in format. The caller
	// becomes the buffer's producer.
	CreateBuffer(width, height int, format Format) (*Buffer, error)
}

// MemAllocator allocates CPU-memory buffers. It supports the 8-bit RGBA
// and BGRA formats with a linear (or implicit) layout.
type MemAllocator struct {
	created int
	live    int
}

// NewMemAllocator returns an allocator backed by Go slices.
func NewMemAllocator() *MemAllocator {
	return &MemAllocator{}
}

// BufferCaps returns CapDataPtr.
func (a *MemAllocator) BufferCaps() Caps {
	return CapDataPtr
}

// Created returns the number of buffers allocated so far.
func (a *MemAllocator) Created() int { return a.created }

// Live returns the number of allocated buffers not yet destroyed.
func (a *MemAllocator) Live() int { return a.live }

// CreateBuffer allocates a zeroed buffer.
func (a *MemAllocator) CreateBuffer(width, height int, format Format) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !MemFormatSupported(format.Code) {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format.Code)
	}
	if len(format.Modifiers) > 0 && !format.Has(ModifierLinear) && !format.Has(ModifierInvalid) {
		return nil, fmt.Errorf("%w: no linear modifier for %v", ErrUnsupportedFormat, format.Code)
	}
	mem := &memBuffer{
		pix:    make([]byte, width*height*4),
		format: format.Code,
		stride: width * 4,
		owner:  a,
	}
	a.created++
	a.live++
	return New(mem, width, height), nil
}

// MemFormatSupported reports whether MemAllocator can create code.
func MemFormatSupported(code gputypes.TextureFormat) bool {
	return code == gputypes.TextureFormatBGRA8Unorm || code == gputypes.TextureFormatRGBA8Unorm
}

type memBuffer struct {
	pix    []byte
	format gputypes.TextureFormat
	stride int
	owner  *MemAllocator
}

func (m *memBuffer) Destroy() {
	m.pix = nil
	m.owner.live--
}

func (m *memBuffer) BeginDataPtrAccess(AccessFlags) (DataPtr, error) {
	return DataPtr{Pix: m.pix, Format: m.format, Stride: m.stride}, nil
}

func (m *memBuffer) EndDataPtrAccess() {}

var _ Allocator = (*MemAllocator)(nil)
