// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"testing"

	"github.com/gogpu/hwcursor/geom"
	"github.com/gogpu/hwcursor/region"
)

func TestDrawListRecords(t *testing.T) {
	list := NewDrawList()
	if !list.IsEmpty() {
		t.Error("new list should be empty")
	}

	clip := region.Rect(0, 0, 1, 1)
	alpha := float32(0.5)
	list.AddTexture(TextureOptions{DstBox: geom.Box{Width: 1, Height: 1}, Clip: clip, Alpha: &alpha})
	clip.UnionBox(geom.Box{X: 5, Y: 5, Width: 1, Height: 1})
	alpha = 1

	ops := list.Ops()
	if list.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", list.Len())
	}
	if ops[0].Clip.Area() != 1 {
		t.Errorf("recorded clip area = %d, want 1 (copied)", ops[0].Clip.Area())
	}
	if *ops[0].Alpha != 0.5 {
		t.Errorf("recorded alpha = %v, want 0.5", *ops[0].Alpha)
	}

	list.Reset()
	if !list.IsEmpty() {
		t.Error("Reset() should empty the list")
	}
}

func TestDrawListExecute(t *testing.T) {
	renderer := NewSoftwareRenderer()
	tex, err := renderer.TextureFromBuffer(newSource(t, 2, 2, red, red, red, red))
	if err != nil {
		t.Fatalf("TextureFromBuffer() error = %v", err)
	}
	defer tex.Destroy()

	buf := newTarget(t, 4, 4)
	list := NewDrawList()
	list.AddTexture(TextureOptions{
		Texture: tex,
		DstBox:  geom.Box{X: 1, Y: 1, Width: 2, Height: 2},
		Clip:    region.Rect(0, 0, 2, 4),
	})
	list.AddTexture(TextureOptions{
		Texture: tex,
		DstBox:  geom.Box{X: 3, Y: 3, Width: 2, Height: 2},
		Clip:    region.New(),
	})
	if err := list.Execute(renderer, buf); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	tests := []struct {
		x, y int
		want bool
	}{
		{1, 1, true},
		{1, 2, true},
		{2, 1, false}, // clipped
		{3, 3, false}, // empty clip
		{0, 0, false},
	}
	for _, tt := range tests {
		got := pixelAt(t, buf, tt.x, tt.y) == red
		if got != tt.want {
			t.Errorf("pixel(%d,%d) red = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}

	// The renderer is closed again after Execute.
	if err := renderer.Begin(buf); err != nil {
		t.Errorf("Begin() after Execute error = %v", err)
	}
	renderer.End()
}

func TestDrawListExecuteUnclipped(t *testing.T) {
	renderer := NewSoftwareRenderer()
	tex, err := renderer.TextureFromBuffer(newSource(t, 1, 1, blue))
	if err != nil {
		t.Fatalf("TextureFromBuffer() error = %v", err)
	}
	buf := newTarget(t, 2, 2)

	list := NewDrawList()
	list.AddTexture(TextureOptions{Texture: tex, DstBox: geom.Box{X: 1, Y: 0, Width: 1, Height: 1}})
	if err := list.Execute(renderer, buf); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got := pixelAt(t, buf, 1, 0); got != blue {
		t.Errorf("pixel(1,0) = %v, want %v", got, blue)
	}

	tex.Destroy()
	if err := list.Execute(renderer, buf); err == nil {
		t.Error("Execute() with destroyed texture should return error")
	}
}
