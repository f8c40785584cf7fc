// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image/color"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/hwcursor/buffer"
	"github.com/gogpu/hwcursor/geom"
)

// Texture is a sampled image owned by a renderer.
//
// Width and Height come from gpucontext.Texture so textures can cross
// package boundaries without importing a concrete GPU implementation.
// Destroy releases the texture; whoever owns it calls Destroy exactly once.
type Texture interface {
	gpucontext.Texture

	// Destroy releases resources associated with this texture.
	Destroy()
}

// Renderer executes drawing commands into buffers.
//
// Drawing happens between Begin and End. All calls are synchronous and may
// block on GPU completion.
//
// Example:
//
//	if err := r.Begin(buf); err != nil {
//	    return err // treated as a renderer failure by callers
//	}
//	r.Clear(color.Transparent)
//	r.RenderTextureWithMatrix(tex, m, 1)
//	r.End()
type Renderer interface {
	// Begin opens an offscreen render target on buf.
	Begin(buf *buffer.Buffer) error

	// End closes the render target opened by Begin.
	End()

	// Clear fills the scissored area of the target with c.
	Clear(c color.Color)

	// Scissor constrains drawing to box, in buffer coordinates. A nil box
	// removes the constraint.
	Scissor(box *geom.Box)

	// RenderTextureWithMatrix draws tex through m, which maps the unit
	// square onto the target, with the given opacity.
	RenderTextureWithMatrix(tex Texture, m geom.Matrix, alpha float32) error

	// TextureFromBuffer creates a texture holding buf's pixels.
	TextureFromBuffer(buf *buffer.Buffer) (Texture, error)

	// RenderFormats returns the formats the renderer can render into.
	RenderFormats() *buffer.FormatSet

	// RenderBufferCaps returns the buffer storage kinds Begin accepts.
	RenderBufferCaps() buffer.Caps
}

// RendererCapabilities describes the features supported by a renderer.
type RendererCapabilities struct {
	// IsGPU indicates if this is a GPU-accelerated renderer.
	IsGPU bool

	// MaxTextureSize is the maximum texture dimension (0 = unlimited).
	MaxTextureSize int
}

// CapableRenderer is an optional interface for renderers that can
// report their capabilities.
type CapableRenderer interface {
	Renderer

	// Capabilities returns the renderer's capabilities.
	Capabilities() RendererCapabilities
}
