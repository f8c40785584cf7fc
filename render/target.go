// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"
	"image"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/hwcursor/buffer"
)

// BufferTarget is a CPU view of a data-pointer buffer as an *image.RGBA.
//
// Pixels are copied into a scratch image on open and written back on
// Close, swizzling BGRA storage to RGBA and back. The buffer's data
// pointer stays open for writing until Close.
//
// Example:
//
//	target, err := render.OpenBufferTarget(buf, buffer.AccessWrite)
//	if err != nil {
//	    return err
//	}
//	draw.Draw(target.Image(), target.Image().Bounds(), src, image.Point{}, draw.Over)
//	target.Close()
type BufferTarget struct {
	buf    *buffer.Buffer
	data   buffer.DataPtr
	img    *image.RGBA
	write  bool
	closed bool
}

// OpenBufferTarget begins data-pointer access on buf and copies its
// contents into a scratch RGBA image.
func OpenBufferTarget(buf *buffer.Buffer, flags buffer.AccessFlags) (*BufferTarget, error) {
	data, err := buf.BeginDataPtrAccess(flags)
	if err != nil {
		return nil, err
	}
	if !targetFormatSupported(data.Format) {
		buf.EndDataPtrAccess()
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, data.Format)
	}
	t := &BufferTarget{
		buf:   buf,
		data:  data,
		img:   image.NewRGBA(image.Rect(0, 0, buf.Width(), buf.Height())),
		write: flags&buffer.AccessWrite != 0,
	}
	copyPixels(t.img.Pix, t.img.Stride, data.Pix, data.Stride, buf.Width(), buf.Height(), data.Format == gputypes.TextureFormatBGRA8Unorm)
	return t, nil
}

// Width returns the target width in pixels.
func (t *BufferTarget) Width() int {
	return t.img.Bounds().Dx()
}

// Height returns the target height in pixels.
func (t *BufferTarget) Height() int {
	return t.img.Bounds().Dy()
}

// Format returns the pixel format of the underlying buffer.
func (t *BufferTarget) Format() gputypes.TextureFormat {
	return t.data.Format
}

// Image returns the scratch image. Writes reach the buffer on Close.
func (t *BufferTarget) Image() *image.RGBA {
	return t.img
}

// Close writes the scratch image back (for write access) and ends the
// buffer's data-pointer access. Close is idempotent.
func (t *BufferTarget) Close() {
	if t.closed {
		return
	}
	t.closed = true
	if t.write {
		copyPixels(t.data.Pix, t.data.Stride, t.img.Pix, t.img.Stride, t.Width(), t.Height(), t.data.Format == gputypes.TextureFormatBGRA8Unorm)
	}
	t.buf.EndDataPtrAccess()
}

// ImageFromBuffer returns a copy of buf's pixels as an *image.RGBA.
func ImageFromBuffer(buf *buffer.Buffer) (*image.RGBA, error) {
	t, err := OpenBufferTarget(buf, buffer.AccessRead)
	if err != nil {
		return nil, err
	}
	defer t.Close()
	return t.img, nil
}

func targetFormatSupported(f gputypes.TextureFormat) bool {
	return f == gputypes.TextureFormatBGRA8Unorm || f == gputypes.TextureFormatRGBA8Unorm
}

// copyPixels copies width x height 4-byte pixels between strided slices,
// exchanging the first and third channel when swap is set.
func copyPixels(dst []byte, dstStride int, src []byte, srcStride, width, height int, swap bool) {
	rowBytes := width * 4
	for y := 0; y < height; y++ {
		d := dst[y*dstStride : y*dstStride+rowBytes]
		s := src[y*srcStride : y*srcStride+rowBytes]
		if !swap {
			copy(d, s)
			continue
		}
		for i := 0; i < rowBytes; i += 4 {
			d[i+0] = s[i+2]
			d[i+1] = s[i+1]
			d[i+2] = s[i+0]
			d[i+3] = s[i+3]
		}
	}
}
