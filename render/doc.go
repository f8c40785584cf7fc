// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render defines the renderer contract the cursor subsystem draws
// through, and a CPU implementation of it.
//
// # Key Principle
//
// The cursor code RECEIVES a renderer from the compositor, it does NOT
// create one. The renderer draws into buffers handed to Begin, samples
// textures created with TextureFromBuffer, and reports the formats it can
// render to so cursor swapchains can be negotiated against it.
//
// # Core Interfaces
//
//   - Renderer: offscreen render target on a buffer, clear, scissor,
//     textured quad through a projection matrix, texture-from-buffer
//   - Texture: sampled image with a width and height (gpucontext.Texture)
//     and an explicit Destroy
//   - Pass: an explicit draw list backends can assemble instead of issuing
//     immediate drawing calls
//
// # Implementations
//
//   - SoftwareRenderer: CPU rendering into data-pointer buffers using
//     golang.org/x/image/draw
//   - DrawList: records texture draws and replays them on any Renderer
//
// # Matrices
//
// Matrices passed to RenderTextureWithMatrix map the unit square onto the
// target in buffer pixels. geom.ProjectBox builds them.
//
// # Usage
//
//	renderer := render.NewSoftwareRenderer()
//	tex, _ := renderer.TextureFromBuffer(cursorImage)
//
//	if err := renderer.Begin(buf); err != nil {
//	    return err
//	}
//	renderer.Clear(color.Transparent)
//	box := geom.Box{X: 10, Y: 10, Width: tex.Width(), Height: tex.Height()}
//	renderer.RenderTextureWithMatrix(tex, geom.ProjectBox(box, geom.Normal, 0, geom.Identity()), 1)
//	renderer.End()
//
// # Thread Safety
//
// Renderers are NOT thread-safe. Each renderer should be used from a single
// goroutine, or external synchronization must be used.
package render
