// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package buffer

import "errors"

// Package errors for buffers, allocators and swapchains.
var (
	// ErrInvalidDimensions is returned when width or height is not positive.
	ErrInvalidDimensions = errors.New("buffer: invalid dimensions")

	// ErrUnsupportedFormat is returned when an allocator cannot create a
	// buffer in the requested format or with the requested modifiers.
	ErrUnsupportedFormat = errors.New("buffer: unsupported format")

	// ErrNoDataPtr is returned when a buffer does not expose CPU access.
	ErrNoDataPtr = errors.New("buffer: no data pointer access")

	// ErrReadOnly is returned when write access is requested on a read-only
	// buffer.
	ErrReadOnly = errors.New("buffer: read-only")

	// ErrAccessInProgress is returned when data access is begun twice.
	ErrAccessInProgress = errors.New("buffer: data access already in progress")

	// ErrDestroyed is returned for operations on a destroyed buffer.
	ErrDestroyed = errors.New("buffer: destroyed")

	// ErrSwapchainFull is returned when every swapchain slot is acquired.
	ErrSwapchainFull = errors.New("buffer: no free swapchain slot")

	// ErrSwapchainDestroyed is returned by Acquire after Destroy.
	ErrSwapchainDestroyed = errors.New("buffer: swapchain destroyed")
)
