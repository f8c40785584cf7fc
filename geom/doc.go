// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package geom provides the integer boxes, output transforms and affine
// matrices used to move cursor geometry between logical, scaled and
// output-transformed coordinate spaces.
//
// # Coordinate spaces
//
// Output-logical coordinates are what the compositor feeds to
// Cursor.Move. Multiplying by the output scale gives output pixels, in the
// orientation the compositor sees ("transformed" space). Buffer space is the
// physical orientation of the scan-out buffer; moving a box from transformed
// space into buffer space applies the inverse of the output transform.
//
// Matrices map the unit square to target pixels, so a projection for a box
// is Translate(box) * Scale(box size) followed by an optional content
// transform about the square's centre.
package geom
