// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geom

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Matrix represents a 2D affine transformation matrix.
// It uses a 2x3 matrix in row-major order:
//
//	| a  b  c |
//	| d  e  f |
//
// This represents the transformation:
//
//	x' = a*x + b*y + c
//	y' = d*x + e*y + f
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transformation matrix.
func Identity() Matrix {
	return Matrix{
		A: 1, B: 0, C: 0,
		D: 0, E: 1, F: 0,
	}
}

// Translate creates a translation matrix.
func Translate(x, y float64) Matrix {
	return Matrix{
		A: 1, B: 0, C: x,
		D: 0, E: 1, F: y,
	}
}

// Scale creates a scaling matrix.
func Scale(x, y float64) Matrix {
	return Matrix{
		A: x, B: 0, C: 0,
		D: 0, E: y, F: 0,
	}
}

// transformMatrices holds the linear part of each output transform.
var transformMatrices = [8]Matrix{
	Normal:     {A: 1, E: 1},
	Rotate90:   {B: 1, D: -1},
	Rotate180:  {A: -1, E: -1},
	Rotate270:  {B: -1, D: 1},
	Flipped:    {A: -1, E: 1},
	Flipped90:  {B: 1, D: 1},
	Flipped180: {A: 1, E: -1},
	Flipped270: {B: -1, D: -1},
}

// TransformMatrix returns the rotation/flip matrix for t.
func TransformMatrix(t Transform) Matrix {
	if !t.Valid() {
		return Identity()
	}
	return transformMatrices[t]
}

// Multiply multiplies two matrices (m * other).
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// Apply transforms the point (x, y).
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.B*y + m.C, m.D*x + m.E*y + m.F
}

// Invert returns the inverse matrix.
// Returns the identity matrix if the matrix is not invertible.
func (m Matrix) Invert() Matrix {
	det := m.A*m.E - m.B*m.D
	if math.Abs(det) < 1e-10 {
		return Identity()
	}

	invDet := 1.0 / det
	return Matrix{
		A: m.E * invDet,
		B: -m.B * invDet,
		C: (m.B*m.F - m.C*m.E) * invDet,
		D: -m.D * invDet,
		E: m.A * invDet,
		F: (m.C*m.D - m.A*m.F) * invDet,
	}
}

// IsIdentity returns true if the matrix is the identity matrix.
func (m Matrix) IsIdentity() bool {
	return m.A == 1 && m.B == 0 && m.C == 0 &&
		m.D == 0 && m.E == 1 && m.F == 0
}

// Affine returns the matrix in the layout used by golang.org/x/image.
func (m Matrix) Affine() f64.Aff3 {
	return f64.Aff3{m.A, m.B, m.C, m.D, m.E, m.F}
}

// ProjectBox returns the matrix that maps the unit square onto box inside
// projection. Content is transformed by t about the square's centre and
// then rotated by rotation radians about the box centre.
func ProjectBox(box Box, t Transform, rotation float64, projection Matrix) Matrix {
	x, y := float64(box.X), float64(box.Y)
	w, h := float64(box.Width), float64(box.Height)

	m := projection.Multiply(Translate(x, y))
	if rotation != 0 {
		m = m.Multiply(Translate(w/2, h/2))
		sin, cos := math.Sincos(rotation)
		m = m.Multiply(Matrix{A: cos, B: -sin, D: sin, E: cos})
		m = m.Multiply(Translate(-w/2, -h/2))
	}
	m = m.Multiply(Scale(w, h))
	if t != Normal {
		m = m.Multiply(Translate(0.5, 0.5))
		m = m.Multiply(TransformMatrix(t))
		m = m.Multiply(Translate(-0.5, -0.5))
	}
	return m
}

// OutputMatrix returns the matrix mapping transformed output coordinates
// into a width x height buffer displayed with t. It rotates about the
// buffer centre; the identity transform yields the identity matrix.
func OutputMatrix(width, height int, t Transform) Matrix {
	if t == Normal {
		return Identity()
	}
	tw, th := TransformedSize(width, height, t)
	m := Translate(float64(width)/2, float64(height)/2)
	m = m.Multiply(TransformMatrix(t))
	return m.Multiply(Translate(-float64(tw)/2, -float64(th)/2))
}
