// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package buffer

import "fmt"

// SwapchainCap is the number of buffers a swapchain can hold.
const SwapchainCap = 4

type swapchainSlot struct {
	buffer        *Buffer
	acquired      bool
	removeRelease func()
}

// Swapchain is a pool of same-sized buffers. Acquire hands out a locked
// buffer; the slot becomes free again once every holder has unlocked it.
// After warmup, acquiring allocates nothing.
//
// Usage:
//
//	sc, err := buffer.NewSwapchain(alloc, 64, 64, format)
//	buf, err := sc.Acquire()
//	// render into buf, hand it to the display...
//	buf.Unlock()
type Swapchain struct {
	allocator Allocator
	width     int
	height    int
	format    Format
	slots     [SwapchainCap]swapchainSlot
	destroyed bool
}

// NewSwapchain creates an empty swapchain. Buffers are allocated lazily by
// Acquire.
func NewSwapchain(alloc Allocator, width, height int, format Format) (*Swapchain, error) {
	if alloc == nil {
		return nil, fmt.Errorf("buffer: nil allocator")
	}
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &Swapchain{
		allocator: alloc,
		width:     width,
		height:    height,
		format:    Format{Code: format.Code, Modifiers: append([]uint64(nil), format.Modifiers...)},
	}, nil
}

// Width returns the buffer width.
func (s *Swapchain) Width() int { return s.width }

// Height returns the buffer height.
func (s *Swapchain) Height() int { return s.height }

// Format returns the buffer format.
func (s *Swapchain) Format() Format { return s.format }

// Has reports whether buf belongs to the swapchain.
func (s *Swapchain) Has(buf *Buffer) bool {
	if s == nil || buf == nil {
		return false
	}
	for i := range s.slots {
		if s.slots[i].buffer == buf {
			return true
		}
	}
	return false
}

// Acquire returns a free buffer with one lock owned by the caller. Free
// buffers that already exist are preferred over allocating new ones.
func (s *Swapchain) Acquire() (*Buffer, error) {
	if s.destroyed {
		return nil, ErrSwapchainDestroyed
	}

	var free *swapchainSlot
	for i := range s.slots {
		slot := &s.slots[i]
		if slot.acquired {
			continue
		}
		if slot.buffer != nil {
			return s.acquireSlot(slot), nil
		}
		if free == nil {
			free = slot
		}
	}
	if free == nil {
		return nil, ErrSwapchainFull
	}

	buf, err := s.allocator.CreateBuffer(s.width, s.height, s.format)
	if err != nil {
		return nil, fmt.Errorf("buffer: swapchain allocation: %w", err)
	}
	free.buffer = buf
	free.removeRelease = buf.OnRelease(func(*Buffer) {
		free.acquired = false
	})
	return s.acquireSlot(free), nil
}

func (s *Swapchain) acquireSlot(slot *swapchainSlot) *Buffer {
	slot.acquired = true
	return slot.buffer.Lock()
}

// Destroy drops every buffer. Buffers still locked elsewhere stay alive
// until their last holder unlocks them. Destroying nil is a no-op.
func (s *Swapchain) Destroy() {
	if s == nil || s.destroyed {
		return
	}
	s.destroyed = true
	for i := range s.slots {
		slot := &s.slots[i]
		if slot.buffer == nil {
			continue
		}
		slot.removeRelease()
		slot.buffer.Drop()
		*slot = swapchainSlot{}
	}
}
