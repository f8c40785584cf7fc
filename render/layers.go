// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"image"
	"image/draw"
	"slices"
)

// Layer is an image placed at an offset above a base image.
type Layer struct {
	Image   image.Image
	X, Y    int
	visible bool
}

// Visible reports whether the layer is composited.
func (l *Layer) Visible() bool { return l.visible }

// LayerStack holds z-ordered overlays, such as a display's cursor plane,
// and composites them over a base image. Layers are rendered in ascending
// z-order (lower z values behind higher ones).
type LayerStack struct {
	layers map[int]*Layer // layers by z-order
	zOrder []int          // cached sorted z-order list
}

// NewLayerStack creates an empty layer stack.
func NewLayerStack() *LayerStack {
	return &LayerStack{layers: make(map[int]*Layer)}
}

// SetLayer places img at (x, y) on layer z, creating the layer if
// needed. New layers are visible.
func (s *LayerStack) SetLayer(z int, img image.Image, x, y int) {
	l, ok := s.layers[z]
	if !ok {
		l = &Layer{visible: true}
		s.layers[z] = l
		s.zOrder = nil
	}
	l.Image = img
	l.X, l.Y = x, y
}

// MoveLayer changes the offset of layer z.
// Returns an error if the layer does not exist.
func (s *LayerStack) MoveLayer(z, x, y int) error {
	l, ok := s.layers[z]
	if !ok {
		return fmt.Errorf("layer with z=%d does not exist", z)
	}
	l.X, l.Y = x, y
	return nil
}

// RemoveLayer removes a layer by z-order.
// Returns an error if the layer does not exist.
func (s *LayerStack) RemoveLayer(z int) error {
	if _, ok := s.layers[z]; !ok {
		return fmt.Errorf("layer with z=%d does not exist", z)
	}
	delete(s.layers, z)
	s.zOrder = nil
	return nil
}

// SetLayerVisible controls layer visibility without removing it.
func (s *LayerStack) SetLayerVisible(z int, visible bool) {
	if l, ok := s.layers[z]; ok {
		l.visible = visible
	}
}

// Layer returns layer z, or nil.
func (s *LayerStack) Layer(z int) *Layer {
	return s.layers[z]
}

// Layers returns all layer z-orders in render order (ascending).
func (s *LayerStack) Layers() []int {
	if s.zOrder == nil {
		s.zOrder = make([]int, 0, len(s.layers))
		for z := range s.layers {
			s.zOrder = append(s.zOrder, z)
		}
		slices.Sort(s.zOrder)
	}
	// Return a copy to prevent modification
	return slices.Clone(s.zOrder)
}

// Composite returns a copy of base with all visible layers blended over
// it in z-order using source-over.
func (s *LayerStack) Composite(base image.Image) *image.RGBA {
	out := image.NewRGBA(base.Bounds())
	draw.Draw(out, out.Bounds(), base, base.Bounds().Min, draw.Src)

	for _, z := range s.Layers() {
		l := s.layers[z]
		if !l.visible || l.Image == nil {
			continue
		}
		src := l.Image.Bounds()
		dst := src.Sub(src.Min).Add(image.Pt(l.X, l.Y))
		draw.Draw(out, dst, l.Image, src.Min, draw.Over)
	}
	return out
}
