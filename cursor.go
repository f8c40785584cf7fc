package hwcursor

import (
	"fmt"
	"slices"

	"github.com/gogpu/hwcursor/backend"
	"github.com/gogpu/hwcursor/buffer"
	"github.com/gogpu/hwcursor/geom"
	"github.com/gogpu/hwcursor/render"
)

// Ownership tells whether a cursor must destroy its texture.
type Ownership int

const (
	// Borrowed textures belong to the caller.
	Borrowed Ownership = iota

	// Owned textures are destroyed by the cursor when replaced or when the
	// cursor is destroyed.
	Owned
)

// String returns "borrowed" or "owned".
func (o Ownership) String() string {
	if o == Owned {
		return "owned"
	}
	return "borrowed"
}

// Cursor is a pointer image on an output.
//
// Positions and sizes are in output pixels: logical coordinates multiplied
// by the output scale, in the transformed output space. Each mutation first
// tries to put the cursor on the hardware plane and falls back to software
// compositing, emitting damage for the areas that must be repainted.
type Cursor struct {
	output *Output

	x, y               float64
	hotspotX, hotspotY int
	width, height      int

	enabled bool
	visible bool

	texture   render.Texture
	ownership Ownership
	scale     float32
	transform geom.Transform

	destroyed bool
}

// SetImage sets the cursor shape from 32-bit ARGB pixels (B, G, R, A in
// memory) with the given row stride in bytes. The pixels are copied. nil
// pixels disable the cursor.
func (c *Cursor) SetImage(pixels []byte, stride, width, height, hotspotX, hotspotY int) error {
	var buf *buffer.Buffer
	if pixels != nil {
		var err error
		buf, err = buffer.NewReadOnly(buffer.FormatARGB8888, stride, width, height, pixels)
		if err != nil {
			return fmt.Errorf("hwcursor: cursor image: %w", err)
		}
	}
	err := c.SetBuffer(buf, hotspotX, hotspotY)
	buf.Drop()
	return err
}

// SetBuffer sets the cursor shape from buf. The cursor creates and owns a
// texture for it; buf can be dropped afterwards. A nil buf disables the
// cursor.
//
// On error the cursor is left unchanged.
func (c *Cursor) SetBuffer(buf *buffer.Buffer, hotspotX, hotspotY int) error {
	r := c.output.renderer
	if r == nil {
		return ErrNoRenderer
	}

	var tex render.Texture
	if buf != nil {
		var err error
		tex, err = r.TextureFromBuffer(buf)
		if err != nil {
			return fmt.Errorf("hwcursor: cursor texture: %w", err)
		}
	}
	c.SetTexture(tex, Owned, 1, geom.Normal, hotspotX, hotspotY)
	return nil
}

// SetTexture sets the cursor shape. The texture is drawn inverse-transformed
// by transform and scaled by scale, so its size on the output is its
// native size with transform undone, times scale. The hotspot is in
// texture pixels. A nil texture disables the cursor.
//
// If the previous texture was Owned it is destroyed.
func (c *Cursor) SetTexture(tex render.Texture, ownership Ownership, scale float32, transform geom.Transform, hotspotX, hotspotY int) {
	o := c.output
	c.reset()

	c.enabled = tex != nil
	if tex != nil {
		w, h := geom.TransformedSize(tex.Width(), tex.Height(), transform.Invert())
		c.width = geom.Round(float64(w) * float64(scale))
		c.height = geom.Round(float64(h) * float64(scale))
	} else {
		c.width = 0
		c.height = 0
	}
	c.hotspotX = geom.Round(float64(hotspotX) * float64(scale))
	c.hotspotY = geom.Round(float64(hotspotY) * float64(scale))

	c.updateVisible()

	if c.ownership == Owned && c.texture != nil && c.texture != tex {
		c.texture.Destroy()
	}
	c.texture = tex
	c.ownership = ownership
	c.scale = scale
	c.transform = transform

	wasHardware := o.hardwareCursor == c
	err := o.attemptHardware(c)
	if err == nil {
		return
	}

	Logger().Debug("falling back to software cursor", "output", o.name, "reason", err)
	if wasHardware {
		// Stop showing the previous shape on the plane.
		o.evictHardwareCursor()
		return
	}
	o.damageWhole(c)
}

// Move moves the cursor to (x, y) in logical output coordinates. It
// returns false only if the hardware plane could not be moved.
func (c *Cursor) Move(x, y float64) bool {
	o := c.output

	// Scale coordinates for the output
	x *= float64(o.scale)
	y *= float64(o.scale)

	if c.x == x && c.y == y {
		return true
	}

	if o.hardwareCursor != c {
		o.damageWhole(c)
	}

	c.x = x
	c.y = y
	wasVisible := c.visible
	c.updateVisible()

	if !wasVisible && !c.visible {
		// Cursor is still hidden, do nothing
		return true
	}

	if o.hardwareCursor != c {
		o.damageWhole(c)
		return true
	}

	mover, ok := o.backend.(backend.CursorMover)
	if !ok {
		return false
	}
	return mover.MoveCursor(int(x), int(y))
}

// Destroy damages the cursor's area, takes it off the hardware plane,
// destroys an Owned texture and removes the cursor from its output.
// Destroying nil is a no-op; destroying a cursor twice panics.
func (c *Cursor) Destroy() {
	if c == nil {
		return
	}
	o := c.output
	i := slices.Index(o.cursors, c)
	if c.destroyed || i < 0 {
		panic("hwcursor: destroy of a cursor not attached to its output")
	}

	c.reset()
	if o.hardwareCursor == c {
		// If this cursor was the hardware cursor, disable it
		o.clearPlane()
		o.hardwareCursor = nil
	}
	if c.ownership == Owned && c.texture != nil {
		c.texture.Destroy()
	}
	c.texture = nil
	o.cursors = slices.Delete(o.cursors, i, i+1)
	c.destroyed = true
}

// reset damages the cursor's current area unless it is on the plane.
func (c *Cursor) reset() {
	if c.output.hardwareCursor != c {
		c.output.damageWhole(c)
	}
}

// box returns the cursor area in output pixels.
func (c *Cursor) box() geom.Box {
	return geom.Box{
		X:      int(c.x - float64(c.hotspotX)),
		Y:      int(c.y - float64(c.hotspotY)),
		Width:  c.width,
		Height: c.height,
	}
}

func (c *Cursor) updateVisible() {
	w, h := c.output.TransformedResolution()
	_, c.visible = geom.Box{Width: w, Height: h}.Intersection(c.box())
}

// Output returns the output the cursor belongs to.
func (c *Cursor) Output() *Output { return c.output }

// Position returns the cursor position in output pixels.
func (c *Cursor) Position() (x, y float64) { return c.x, c.y }

// Hotspot returns the scaled hotspot.
func (c *Cursor) Hotspot() (x, y int) { return c.hotspotX, c.hotspotY }

// Size returns the cursor size in output pixels.
func (c *Cursor) Size() (width, height int) { return c.width, c.height }

// Box returns the area the cursor covers in output pixels.
func (c *Cursor) Box() geom.Box { return c.box() }

// Enabled reports whether the cursor has a shape.
func (c *Cursor) Enabled() bool { return c.enabled }

// Visible reports whether the cursor overlaps the output.
func (c *Cursor) Visible() bool { return c.visible }

// Texture returns the current texture and its ownership.
func (c *Cursor) Texture() (render.Texture, Ownership) { return c.texture, c.ownership }

// ShapeScale returns the scale the shape was set with.
func (c *Cursor) ShapeScale() float32 { return c.scale }

// ShapeTransform returns the transform the shape was set with.
func (c *Cursor) ShapeTransform() geom.Transform { return c.transform }

// IsHardware reports whether the cursor is on the hardware plane.
func (c *Cursor) IsHardware() bool { return c.output.hardwareCursor == c }
