// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"golang.org/x/image/draw"

	"github.com/gogpu/hwcursor/buffer"
	"github.com/gogpu/hwcursor/geom"
)

// SoftwareRenderer is a CPU renderer drawing into data-pointer buffers.
//
// Textured quads are resampled with a golang.org/x/image/draw
// interpolator (nearest-neighbor by default) and composited with the
// Over operator, so pixel-aligned draws are exact.
//
// Example:
//
//	renderer := render.NewSoftwareRenderer()
//	tex, _ := renderer.TextureFromBuffer(img)
//	defer tex.Destroy()
//
//	renderer.Begin(buf)
//	renderer.Clear(color.Transparent)
//	renderer.RenderTextureWithMatrix(tex, m, 1)
//	renderer.End()
type SoftwareRenderer struct {
	interp   draw.Interpolator
	uploader gpucontext.TextureCreator
	maxSize  int

	target  *BufferTarget
	scissor *geom.Box

	live int
}

// SoftwareOption configures a SoftwareRenderer.
type SoftwareOption func(*SoftwareRenderer)

// WithInterpolator selects the resampling kernel, for example
// draw.ApproxBiLinear for scaled cursors.
func WithInterpolator(interp draw.Interpolator) SoftwareOption {
	return func(r *SoftwareRenderer) {
		if interp != nil {
			r.interp = interp
		}
	}
}

// WithTextureUploader mirrors every texture created by TextureFromBuffer
// into a host GPU texture. The GPU copy is released with the texture.
func WithTextureUploader(tc gpucontext.TextureCreator) SoftwareOption {
	return func(r *SoftwareRenderer) {
		r.uploader = tc
	}
}

// WithMaxTextureSize limits targets and textures to size pixels per side,
// as a GPU with a texture size limit would. Zero means unlimited.
func WithMaxTextureSize(size int) SoftwareOption {
	return func(r *SoftwareRenderer) {
		r.maxSize = max(size, 0)
	}
}

// NewSoftwareRenderer creates a new CPU-based software renderer.
func NewSoftwareRenderer(opts ...SoftwareOption) *SoftwareRenderer {
	r := &SoftwareRenderer{interp: draw.NearestNeighbor}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Capabilities returns the renderer's capabilities.
func (r *SoftwareRenderer) Capabilities() RendererCapabilities {
	return RendererCapabilities{IsGPU: false, MaxTextureSize: r.maxSize}
}

// RenderFormats returns the 8-bit RGBA and BGRA formats with linear and
// implicit layouts.
func (r *SoftwareRenderer) RenderFormats() *buffer.FormatSet {
	return buffer.NewFormatSet(
		[]uint64{buffer.ModifierLinear, buffer.ModifierInvalid},
		gputypes.TextureFormatBGRA8Unorm,
		gputypes.TextureFormatRGBA8Unorm,
	)
}

// RenderBufferCaps returns CapDataPtr.
func (r *SoftwareRenderer) RenderBufferCaps() buffer.Caps {
	return buffer.CapDataPtr
}

// LiveTextures returns the number of textures not yet destroyed.
func (r *SoftwareRenderer) LiveTextures() int {
	return r.live
}

// Begin opens buf as the render target.
func (r *SoftwareRenderer) Begin(buf *buffer.Buffer) error {
	if r.target != nil {
		return ErrAlreadyRendering
	}
	if buf == nil {
		return errors.New("render: nil buffer")
	}
	if !r.fits(buf.Width(), buf.Height()) {
		return fmt.Errorf("render: begin %dx%d: %w", buf.Width(), buf.Height(), ErrTooLarge)
	}
	t, err := OpenBufferTarget(buf, buffer.AccessWrite)
	if err != nil {
		return fmt.Errorf("render: begin: %w", err)
	}
	r.target = t
	r.scissor = nil
	return nil
}

func (r *SoftwareRenderer) fits(width, height int) bool {
	return r.maxSize == 0 || (width <= r.maxSize && height <= r.maxSize)
}

// End flushes the target back into its buffer.
func (r *SoftwareRenderer) End() {
	if r.target == nil {
		return
	}
	r.target.Close()
	r.target = nil
	r.scissor = nil
}

// Scissor restricts subsequent Clear and draw calls to box.
func (r *SoftwareRenderer) Scissor(box *geom.Box) {
	if box == nil {
		r.scissor = nil
		return
	}
	b := *box
	r.scissor = &b
}

// Clear replaces the scissored area with c.
func (r *SoftwareRenderer) Clear(c color.Color) {
	if r.target == nil {
		return
	}
	dst := r.clipped()
	draw.Draw(dst, dst.Bounds(), image.NewUniform(toRGBA(c)), image.Point{}, draw.Src)
}

// RenderTextureWithMatrix draws tex through m with opacity alpha.
func (r *SoftwareRenderer) RenderTextureWithMatrix(tex Texture, m geom.Matrix, alpha float32) error {
	if r.target == nil {
		return ErrNotRendering
	}
	if tex == nil {
		return ErrNilTexture
	}
	st, ok := tex.(*softwareTexture)
	if !ok {
		return ErrForeignTexture
	}
	if st.img == nil {
		return ErrTextureDestroyed
	}
	if alpha <= 0 {
		return nil
	}

	// m maps the unit square, x/image maps source pixels.
	s2d := m.Multiply(geom.Scale(1/float64(st.width), 1/float64(st.height)))

	var opts *draw.Options
	if alpha < 1 {
		//nolint:gosec // G115: alpha is in (0,1)
		opts = &draw.Options{SrcMask: image.NewUniform(color.Alpha16{A: uint16(alpha * 0xffff)})}
	}
	r.interp.Transform(r.clipped(), s2d.Affine(), st.img, st.img.Bounds(), draw.Over, opts)
	return nil
}

// TextureFromBuffer copies buf's pixels into a new texture.
func (r *SoftwareRenderer) TextureFromBuffer(buf *buffer.Buffer) (Texture, error) {
	if buf == nil {
		return nil, errors.New("render: nil buffer")
	}
	if !r.fits(buf.Width(), buf.Height()) {
		return nil, fmt.Errorf("render: texture %dx%d: %w", buf.Width(), buf.Height(), ErrTooLarge)
	}
	img, err := ImageFromBuffer(buf)
	if err != nil {
		return nil, fmt.Errorf("render: texture from buffer: %w", err)
	}
	tex := &softwareTexture{width: img.Rect.Dx(), height: img.Rect.Dy(), img: img, owner: r}
	if r.uploader != nil {
		gpu, err := r.uploader.NewTextureFromRGBA(img.Rect.Dx(), img.Rect.Dy(), img.Pix)
		if err != nil {
			return nil, fmt.Errorf("render: upload texture: %w", err)
		}
		tex.gpu = gpu
	}
	r.live++
	return tex, nil
}

// clipped returns the target image restricted to the scissor box.
func (r *SoftwareRenderer) clipped() *image.RGBA {
	img := r.target.Image()
	if r.scissor == nil {
		return img
	}
	sub, _ := img.SubImage(r.scissor.Rect()).(*image.RGBA)
	return sub
}

// toRGBA converts c to premultiplied 8-bit RGBA.
func toRGBA(c color.Color) color.RGBA {
	r, g, b, a := c.RGBA()
	// Convert from 16-bit to 8-bit (mask ensures value fits in uint8)
	//nolint:gosec // G115: mask ensures no overflow
	return color.RGBA{
		R: uint8((r >> 8) & 0xFF),
		G: uint8((g >> 8) & 0xFF),
		B: uint8((b >> 8) & 0xFF),
		A: uint8((a >> 8) & 0xFF),
	}
}

// softwareTexture is a premultiplied RGBA copy of a buffer.
type softwareTexture struct {
	width, height int
	img           *image.RGBA
	gpu           gpucontext.Texture
	owner         *SoftwareRenderer
}

func (t *softwareTexture) Width() int { return t.width }

func (t *softwareTexture) Height() int { return t.height }

// Image returns the texture pixels.
func (t *softwareTexture) Image() *image.RGBA { return t.img }

func (t *softwareTexture) Destroy() {
	if t.img == nil {
		return
	}
	t.img = nil
	if d, ok := t.gpu.(interface{ Destroy() }); ok {
		d.Destroy()
	}
	t.gpu = nil
	t.owner.live--
}

var (
	_ Renderer        = (*SoftwareRenderer)(nil)
	_ CapableRenderer = (*SoftwareRenderer)(nil)
)
