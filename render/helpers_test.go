// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"image/color"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/hwcursor/buffer"
)

var (
	red         = color.RGBA{R: 255, A: 255}
	blue        = color.RGBA{B: 255, A: 255}
	white       = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	transparent = color.RGBA{}
)

// newTarget allocates a BGRA memory buffer.
func newTarget(t *testing.T, w, h int) *buffer.Buffer {
	t.Helper()
	buf, err := buffer.NewMemAllocator().CreateBuffer(w, h, buffer.Format{Code: gputypes.TextureFormatBGRA8Unorm})
	if err != nil {
		t.Fatalf("CreateBuffer() error = %v", err)
	}
	return buf
}

// newSource builds an RGBA read-only buffer from a row-major pixel list.
func newSource(t *testing.T, w, h int, pixels ...color.RGBA) *buffer.Buffer {
	t.Helper()
	data := make([]byte, 0, w*h*4)
	for _, p := range pixels {
		data = append(data, p.R, p.G, p.B, p.A)
	}
	buf, err := buffer.NewReadOnly(gputypes.TextureFormatRGBA8Unorm, w*4, w, h, data)
	if err != nil {
		t.Fatalf("NewReadOnly() error = %v", err)
	}
	return buf
}

func pixelAt(t *testing.T, buf *buffer.Buffer, x, y int) color.RGBA {
	t.Helper()
	img, err := ImageFromBuffer(buf)
	if err != nil {
		t.Fatalf("ImageFromBuffer() error = %v", err)
	}
	return img.RGBAAt(x, y)
}
