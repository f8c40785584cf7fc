// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"

	"github.com/gogpu/hwcursor/buffer"
	"github.com/gogpu/hwcursor/geom"
	"github.com/gogpu/hwcursor/region"
)

// TextureOptions describes one textured-rectangle draw in a Pass.
type TextureOptions struct {
	// Texture is sampled over its full extent.
	Texture Texture

	// DstBox is the destination rectangle in target pixels.
	DstBox geom.Box

	// Clip limits drawing to a region in target pixels. Nil means no
	// clipping; an empty region draws nothing.
	Clip *region.Region

	// Transform is applied to the texture content inside DstBox.
	Transform geom.Transform

	// Alpha is the draw opacity. Nil means opaque.
	Alpha *float32
}

// Pass is a render pass that accepts explicit texture draws.
type Pass interface {
	AddTexture(opts TextureOptions)
}

// DrawList is a retained Pass: it records texture draws and replays them
// onto a buffer with any Renderer.
//
// Example:
//
//	list := render.NewDrawList()
//	list.AddTexture(render.TextureOptions{Texture: tex, DstBox: box})
//	if err := list.Execute(renderer, buf); err != nil {
//	    return err
//	}
type DrawList struct {
	ops []TextureOptions
}

// NewDrawList creates an empty draw list.
func NewDrawList() *DrawList {
	return &DrawList{}
}

// AddTexture records a draw. The clip region is copied.
func (l *DrawList) AddTexture(opts TextureOptions) {
	if opts.Clip != nil {
		opts.Clip = opts.Clip.Clone()
	}
	if opts.Alpha != nil {
		a := *opts.Alpha
		opts.Alpha = &a
	}
	l.ops = append(l.ops, opts)
}

// Ops returns the recorded draws in submission order.
func (l *DrawList) Ops() []TextureOptions {
	return l.ops
}

// Len returns the number of recorded draws.
func (l *DrawList) Len() int {
	return len(l.ops)
}

// IsEmpty returns true if nothing was recorded.
func (l *DrawList) IsEmpty() bool {
	return len(l.ops) == 0
}

// Reset discards all recorded draws.
func (l *DrawList) Reset() {
	l.ops = l.ops[:0]
}

// Execute draws the recorded operations onto buf in order, without
// clearing it first.
func (l *DrawList) Execute(r Renderer, buf *buffer.Buffer) error {
	if err := r.Begin(buf); err != nil {
		return err
	}
	defer r.End()

	for i, op := range l.ops {
		if err := drawTexture(r, op); err != nil {
			return fmt.Errorf("render: draw %d: %w", i, err)
		}
	}
	r.Scissor(nil)
	return nil
}

func drawTexture(r Renderer, op TextureOptions) error {
	alpha := float32(1)
	if op.Alpha != nil {
		alpha = *op.Alpha
	}
	m := geom.ProjectBox(op.DstBox, op.Transform, 0, geom.Identity())

	if op.Clip == nil {
		r.Scissor(nil)
		return r.RenderTextureWithMatrix(op.Texture, m, alpha)
	}
	for _, box := range op.Clip.IntersectBox(op.DstBox).Boxes() {
		r.Scissor(&box)
		if err := r.RenderTextureWithMatrix(op.Texture, m, alpha); err != nil {
			return err
		}
	}
	return nil
}

var _ Pass = (*DrawList)(nil)
