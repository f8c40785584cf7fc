// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package region implements damage regions: sets of output-space pixels
// stored as disjoint integer rectangles.
//
// A Region never holds overlapping rectangles, so the sum of the rectangle
// areas is the region's area and drawing once per rectangle touches every
// damaged pixel exactly once.
package region

import (
	"image"
	"sort"

	"github.com/gogpu/hwcursor/geom"
)

// Region is a set of pixels. The zero value is an empty region ready to use.
type Region struct {
	rects []image.Rectangle
}

// New returns a region covering the given boxes.
func New(boxes ...geom.Box) *Region {
	r := &Region{}
	for _, b := range boxes {
		r.UnionBox(b)
	}
	return r
}

// Rect returns a region covering a single box.
func Rect(x, y, width, height int) *Region {
	return New(geom.Box{X: x, Y: y, Width: width, Height: height})
}

// Empty reports whether the region covers no pixels. A nil region is empty.
func (r *Region) Empty() bool {
	return r == nil || len(r.rects) == 0
}

// Len returns the number of rectangles in the region.
func (r *Region) Len() int {
	if r == nil {
		return 0
	}
	return len(r.rects)
}

// Clone returns an independent copy of r.
func (r *Region) Clone() *Region {
	if r == nil {
		return &Region{}
	}
	out := &Region{rects: make([]image.Rectangle, len(r.rects))}
	copy(out.rects, r.rects)
	return out
}

// Clear removes every rectangle from r.
func (r *Region) Clear() {
	r.rects = r.rects[:0]
}

// UnionBox adds a box to the region. Empty boxes are ignored.
func (r *Region) UnionBox(b geom.Box) {
	if b.Empty() {
		return
	}
	pieces := []image.Rectangle{b.Rect()}
	for _, existing := range r.rects {
		pieces = subtractAll(pieces, existing)
		if len(pieces) == 0 {
			return
		}
	}
	r.rects = append(r.rects, pieces...)
}

// Union adds every pixel of other to r.
func (r *Region) Union(other *Region) {
	if other.Empty() {
		return
	}
	for _, rect := range other.rects {
		r.UnionBox(geom.BoxFromRect(rect))
	}
}

// Intersect returns the pixels present in both r and other.
func (r *Region) Intersect(other *Region) *Region {
	out := &Region{}
	if r.Empty() || other.Empty() {
		return out
	}
	for _, a := range r.rects {
		for _, b := range other.rects {
			if in := a.Intersect(b); !in.Empty() {
				out.rects = append(out.rects, in)
			}
		}
	}
	return out
}

// IntersectBox returns the pixels of r inside b.
func (r *Region) IntersectBox(b geom.Box) *Region {
	out := &Region{}
	if r.Empty() || b.Empty() {
		return out
	}
	clip := b.Rect()
	for _, a := range r.rects {
		if in := a.Intersect(clip); !in.Empty() {
			out.rects = append(out.rects, in)
		}
	}
	return out
}

// Boxes returns the region's rectangles sorted top-to-bottom, then
// left-to-right.
func (r *Region) Boxes() []geom.Box {
	if r.Empty() {
		return nil
	}
	boxes := make([]geom.Box, len(r.rects))
	for i, rect := range r.rects {
		boxes[i] = geom.BoxFromRect(rect)
	}
	sort.Slice(boxes, func(i, j int) bool {
		if boxes[i].Y != boxes[j].Y {
			return boxes[i].Y < boxes[j].Y
		}
		return boxes[i].X < boxes[j].X
	})
	return boxes
}

// Extents returns the bounding box of the region.
func (r *Region) Extents() geom.Box {
	if r.Empty() {
		return geom.Box{}
	}
	ext := r.rects[0]
	for _, rect := range r.rects[1:] {
		ext = ext.Union(rect)
	}
	return geom.BoxFromRect(ext)
}

// Area returns the number of pixels in the region.
func (r *Region) Area() int {
	if r == nil {
		return 0
	}
	area := 0
	for _, rect := range r.rects {
		area += rect.Dx() * rect.Dy()
	}
	return area
}

// ContainsPoint reports whether the pixel (x, y) belongs to the region.
func (r *Region) ContainsPoint(x, y int) bool {
	if r == nil {
		return false
	}
	p := image.Pt(x, y)
	for _, rect := range r.rects {
		if p.In(rect) {
			return true
		}
	}
	return false
}

// Transform returns r with every rectangle mapped through t, where width
// and height describe the untransformed area.
func (r *Region) Transform(t geom.Transform, width, height int) *Region {
	out := &Region{}
	if r.Empty() {
		return out
	}
	out.rects = make([]image.Rectangle, 0, len(r.rects))
	for _, rect := range r.rects {
		b := geom.TransformBox(geom.BoxFromRect(rect), t, width, height)
		out.rects = append(out.rects, b.Rect())
	}
	return out
}

// subtractAll removes hole from every rectangle in pieces.
func subtractAll(pieces []image.Rectangle, hole image.Rectangle) []image.Rectangle {
	out := pieces[:0:0]
	for _, p := range pieces {
		out = append(out, subtract(p, hole)...)
	}
	return out
}

// subtract returns up to four rectangles covering a minus b.
func subtract(a, b image.Rectangle) []image.Rectangle {
	in := a.Intersect(b)
	if in.Empty() {
		return []image.Rectangle{a}
	}
	var out []image.Rectangle
	if a.Min.Y < in.Min.Y {
		out = append(out, image.Rect(a.Min.X, a.Min.Y, a.Max.X, in.Min.Y))
	}
	if in.Max.Y < a.Max.Y {
		out = append(out, image.Rect(a.Min.X, in.Max.Y, a.Max.X, a.Max.Y))
	}
	if a.Min.X < in.Min.X {
		out = append(out, image.Rect(a.Min.X, in.Min.Y, in.Min.X, in.Max.Y))
	}
	if in.Max.X < a.Max.X {
		out = append(out, image.Rect(in.Max.X, in.Min.Y, a.Max.X, in.Max.Y))
	}
	return out
}
