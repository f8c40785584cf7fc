// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "errors"

// Package errors for renderers.
var (
	// ErrAlreadyRendering is returned by Begin while a target is open.
	ErrAlreadyRendering = errors.New("render: render target already open")

	// ErrNotRendering is returned by draw calls outside Begin/End.
	ErrNotRendering = errors.New("render: no render target open")

	// ErrUnsupportedFormat is returned for buffers the renderer cannot
	// read or write.
	ErrUnsupportedFormat = errors.New("render: unsupported buffer format")

	// ErrForeignTexture is returned when a texture was created by a
	// different renderer implementation.
	ErrForeignTexture = errors.New("render: texture not created by this renderer")

	// ErrTextureDestroyed is returned when drawing a destroyed texture.
	ErrTextureDestroyed = errors.New("render: texture destroyed")

	// ErrNilTexture is returned when a texture argument is nil.
	ErrNilTexture = errors.New("render: nil texture")

	// ErrTooLarge is returned for targets or textures larger than the
	// renderer's MaxTextureSize.
	ErrTooLarge = errors.New("render: exceeds max texture size")
)
