// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geom

import (
	"image"
	"math"
)

// Box is an integer rectangle with its origin at the top-left corner.
type Box struct {
	X, Y          int
	Width, Height int
}

// BoxFromRect converts an image.Rectangle into a Box.
func BoxFromRect(r image.Rectangle) Box {
	return Box{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}

// Empty reports whether the box covers no pixels.
func (b Box) Empty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// Rect returns the box as an image.Rectangle.
func (b Box) Rect() image.Rectangle {
	return image.Rect(b.X, b.Y, b.X+b.Width, b.Y+b.Height)
}

// Intersection returns the overlap of b and other. The second result is
// false when either box is empty or they do not overlap.
func (b Box) Intersection(other Box) (Box, bool) {
	if b.Empty() || other.Empty() {
		return Box{}, false
	}
	r := b.Rect().Intersect(other.Rect())
	if r.Empty() {
		return Box{}, false
	}
	return BoxFromRect(r), true
}

// ContainsPoint reports whether (x, y) lies inside the box.
func (b Box) ContainsPoint(x, y int) bool {
	return !b.Empty() && x >= b.X && x < b.X+b.Width && y >= b.Y && y < b.Y+b.Height
}

// Round converts v to the nearest integer, rounding halfway cases away
// from zero.
func Round(v float64) int {
	return int(math.Round(v))
}
