// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geom

import "fmt"

// Transform is one of the eight rotate/flip combinations an output (or a
// client buffer) can be displayed with. Rotations are counter-clockwise;
// flipped variants mirror around the vertical axis before rotating.
type Transform uint8

// Output transforms. The bit layout matches the wire encoding: bit 0 is a
// 90 degree rotation, bit 1 a 180 degree rotation and bit 2 a flip.
const (
	Normal Transform = iota
	Rotate90
	Rotate180
	Rotate270
	Flipped
	Flipped90
	Flipped180
	Flipped270
)

const (
	rotationMask = Rotate90 | Rotate180
	flipBit      = Flipped
)

// Valid reports whether t is one of the eight defined transforms.
func (t Transform) Valid() bool {
	return t <= Flipped270
}

// Odd reports whether t swaps width and height.
func (t Transform) Odd() bool {
	return t&Rotate90 != 0
}

// Invert returns the transform that undoes t.
func (t Transform) Invert() Transform {
	if t&Rotate90 != 0 && t&flipBit == 0 {
		t ^= Rotate180
	}
	return t
}

// Compose returns the transform equivalent to applying t and then other.
func (t Transform) Compose(other Transform) Transform {
	flipped := (t ^ other) & flipBit
	var rotated Transform
	if other&flipBit != 0 {
		rotated = (other - t) & rotationMask
	} else {
		rotated = (t + other) & rotationMask
	}
	return flipped | rotated
}

// String returns the conventional name of the transform.
func (t Transform) String() string {
	switch t {
	case Normal:
		return "normal"
	case Rotate90:
		return "90"
	case Rotate180:
		return "180"
	case Rotate270:
		return "270"
	case Flipped:
		return "flipped"
	case Flipped90:
		return "flipped-90"
	case Flipped180:
		return "flipped-180"
	case Flipped270:
		return "flipped-270"
	default:
		return fmt.Sprintf("Transform(%d)", uint8(t))
	}
}

// ParseTransform is the inverse of Transform.String.
func ParseTransform(s string) (Transform, error) {
	for t := Normal; t <= Flipped270; t++ {
		if t.String() == s {
			return t, nil
		}
	}
	return Normal, fmt.Errorf("geom: unknown transform %q", s)
}

// TransformedSize returns the size of a width x height area after t.
func TransformedSize(width, height int, t Transform) (int, int) {
	if t.Odd() {
		return height, width
	}
	return width, height
}

// TransformBox applies t to box, where width and height describe the
// untransformed area the box lives in.
func TransformBox(box Box, t Transform, width, height int) Box {
	var dest Box
	if t.Odd() {
		dest.Width, dest.Height = box.Height, box.Width
	} else {
		dest.Width, dest.Height = box.Width, box.Height
	}

	switch t {
	case Normal:
		dest.X = box.X
		dest.Y = box.Y
	case Rotate90:
		dest.X = height - box.Y - box.Height
		dest.Y = box.X
	case Rotate180:
		dest.X = width - box.X - box.Width
		dest.Y = height - box.Y - box.Height
	case Rotate270:
		dest.X = box.Y
		dest.Y = width - box.X - box.Width
	case Flipped:
		dest.X = width - box.X - box.Width
		dest.Y = box.Y
	case Flipped90:
		dest.X = box.Y
		dest.Y = box.X
	case Flipped180:
		dest.X = box.X
		dest.Y = height - box.Y - box.Height
	case Flipped270:
		dest.X = height - box.Y - box.Height
		dest.Y = width - box.X - box.Width
	}
	return dest
}
