// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package buffer

import "github.com/gogpu/gputypes"

// readOnlyData borrows caller memory. If the producer drops the buffer
// while a consumer still holds it, the memory is copied so the caller can
// reuse its slice.
type readOnlyData struct {
	pix    []byte
	format gputypes.TextureFormat
	stride int
}

// NewReadOnly wraps pixels in a buffer without copying them. The caller
// must not modify pixels until it has called Drop on the returned buffer;
// after Drop the buffer no longer references the slice.
func NewReadOnly(format gputypes.TextureFormat, stride, width, height int, pixels []byte) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if stride < width*4 || len(pixels) < stride*(height-1)+width*4 {
		return nil, ErrInvalidDimensions
	}
	impl := &readOnlyData{pix: pixels, format: format, stride: stride}
	return New(impl, width, height), nil
}

func (d *readOnlyData) Destroy() {
	d.pix = nil
}

func (d *readOnlyData) BeginDataPtrAccess(flags AccessFlags) (DataPtr, error) {
	if flags&AccessWrite != 0 {
		return DataPtr{}, ErrReadOnly
	}
	return DataPtr{Pix: d.pix, Format: d.format, Stride: d.stride}, nil
}

func (d *readOnlyData) EndDataPtrAccess() {}

func (d *readOnlyData) dropped(*Buffer) {
	d.pix = append([]byte(nil), d.pix...)
}
