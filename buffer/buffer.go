// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package buffer

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// Impl is the storage behind a Buffer. Destroy is called exactly once,
// when the buffer has been dropped and no lock remains.
type Impl interface {
	Destroy()
}

// AccessFlags select read and/or write access to buffer memory.
type AccessFlags uint8

const (
	// AccessRead requests read access.
	AccessRead AccessFlags = 1 << iota

	// AccessWrite requests write access.
	AccessWrite
)

// DataPtr describes CPU-visible buffer memory.
type DataPtr struct {
	// Pix holds Stride*Height bytes of pixel data.
	Pix []byte

	// Format is the pixel layout of Pix.
	Format gputypes.TextureFormat

	// Stride is the number of bytes per row.
	Stride int
}

// DataPtrAccessor is implemented by an Impl whose memory can be accessed
// from the CPU.
type DataPtrAccessor interface {
	BeginDataPtrAccess(flags AccessFlags) (DataPtr, error)
	EndDataPtrAccess()
}

// dropHook is implemented by an Impl that must act when its producer drops
// the buffer while consumers still hold locks.
type dropHook interface {
	dropped(b *Buffer)
}

// Buffer is a reference-counted pixel surface.
//
// A Buffer has two kinds of holders. Its producer (an allocator, a
// swapchain, a client) owns it until it calls Drop. Consumers (a renderer,
// the display, an output's front-buffer slot) take references with Lock
// and give them back with Unlock. Storage is destroyed once the buffer is
// dropped and unlocked by everyone, so release never frees memory another
// holder is still using.
//
// When the lock count falls to zero the buffer's release handlers run;
// swapchains use this to return slots to the pool.
//
// Buffers are not safe for concurrent use.
type Buffer struct {
	width, height int
	impl          Impl

	locks     int
	isDropped bool
	destroyed bool
	accessing bool
	nextID    int
	onRelease []releaseHandler
	onDestroy []func()
}

type releaseHandler struct {
	id int
	fn func(*Buffer)
}

// New wraps impl in a Buffer of the given size. The caller is the producer
// and must eventually call Drop.
func New(impl Impl, width, height int) *Buffer {
	return &Buffer{width: width, height: height, impl: impl}
}

// Width returns the buffer width in pixels.
func (b *Buffer) Width() int { return b.width }

// Height returns the buffer height in pixels.
func (b *Buffer) Height() int { return b.height }

// Impl returns the storage behind the buffer.
func (b *Buffer) Impl() Impl { return b.impl }

// Locks returns the number of consumer references.
func (b *Buffer) Locks() int { return b.locks }

// Dropped reports whether the producer has dropped the buffer.
func (b *Buffer) Dropped() bool { return b.isDropped }

// Destroyed reports whether the storage has been released.
func (b *Buffer) Destroyed() bool { return b.destroyed }

// Lock takes a consumer reference and returns b. Locking nil returns nil.
func (b *Buffer) Lock() *Buffer {
	if b == nil {
		return nil
	}
	if b.destroyed {
		panic("buffer: lock of destroyed buffer")
	}
	b.locks++
	return b
}

// Unlock gives back a reference taken with Lock. Unlocking nil is a no-op;
// unlocking more often than locking panics.
func (b *Buffer) Unlock() {
	if b == nil {
		return
	}
	if b.locks <= 0 {
		panic("buffer: unlock without a matching lock")
	}
	b.locks--
	if b.locks == 0 {
		handlers := append([]releaseHandler(nil), b.onRelease...)
		for _, h := range handlers {
			h.fn(b)
		}
	}
	b.maybeDestroy()
}

// Drop ends the producer's ownership. Dropping nil is a no-op; dropping
// twice panics.
func (b *Buffer) Drop() {
	if b == nil {
		return
	}
	if b.isDropped {
		panic("buffer: buffer dropped twice")
	}
	b.isDropped = true
	if h, ok := b.impl.(dropHook); ok && b.locks > 0 {
		h.dropped(b)
	}
	b.maybeDestroy()
}

// OnRelease registers fn to run every time the lock count falls to zero.
// The returned function unregisters it.
func (b *Buffer) OnRelease(fn func(*Buffer)) (remove func()) {
	b.nextID++
	id := b.nextID
	b.onRelease = append(b.onRelease, releaseHandler{id: id, fn: fn})
	return func() {
		for i, h := range b.onRelease {
			if h.id == id {
				b.onRelease = append(b.onRelease[:i], b.onRelease[i+1:]...)
				return
			}
		}
	}
}

// OnDestroy registers fn to run once the storage is destroyed.
func (b *Buffer) OnDestroy(fn func()) {
	b.onDestroy = append(b.onDestroy, fn)
}

// BeginDataPtrAccess exposes the buffer memory to the CPU. Every
// successful call must be paired with EndDataPtrAccess.
func (b *Buffer) BeginDataPtrAccess(flags AccessFlags) (DataPtr, error) {
	if b.destroyed {
		return DataPtr{}, ErrDestroyed
	}
	acc, ok := b.impl.(DataPtrAccessor)
	if !ok {
		return DataPtr{}, ErrNoDataPtr
	}
	if b.accessing {
		return DataPtr{}, ErrAccessInProgress
	}
	data, err := acc.BeginDataPtrAccess(flags)
	if err != nil {
		return DataPtr{}, fmt.Errorf("buffer: begin data access: %w", err)
	}
	b.accessing = true
	return data, nil
}

// EndDataPtrAccess ends an access started by BeginDataPtrAccess.
func (b *Buffer) EndDataPtrAccess() {
	if !b.accessing {
		panic("buffer: end data access without begin")
	}
	b.accessing = false
	b.impl.(DataPtrAccessor).EndDataPtrAccess()
}

func (b *Buffer) maybeDestroy() {
	if !b.isDropped || b.locks > 0 || b.destroyed {
		return
	}
	b.destroyed = true
	b.onRelease = nil
	if b.impl != nil {
		b.impl.Destroy()
	}
	for _, fn := range b.onDestroy {
		fn()
	}
	b.onDestroy = nil
}
