package hwcursor

import (
	"fmt"

	"github.com/gogpu/hwcursor/backend"
	"github.com/gogpu/hwcursor/buffer"
	"github.com/gogpu/hwcursor/geom"
)

// attemptHardware tries to present c on the hardware cursor plane. A nil
// error means c is now the output's hardware cursor.
func (o *Output) attemptHardware(c *Cursor) error {
	setter, ok := o.backend.(backend.CursorSetter)
	if !ok {
		return ErrNoHardwareCursor
	}
	if o.softwareCursorLocks > 0 {
		return ErrLocked
	}
	if hc := o.hardwareCursor; hc != nil && hc != c {
		return ErrPlaneBusy
	}

	// If the cursor was hidden or was a software cursor, the hardware
	// cursor position is outdated
	if mover, ok := o.backend.(backend.CursorMover); ok {
		mover.MoveCursor(int(c.x), int(c.y))
	}

	var buf *buffer.Buffer
	if c.texture != nil {
		var err error
		buf, err = o.renderCursorBuffer(c)
		if err != nil {
			return fmt.Errorf("render cursor buffer: %w", err)
		}
	}

	hotspot := geom.TransformBox(geom.Box{X: c.hotspotX, Y: c.hotspotY},
		o.transform.Invert(), c.width, c.height)

	ok = o.setHardwareCursor(setter, buf, hotspot.X, hotspot.Y)
	buf.Unlock()
	if !ok {
		return ErrCursorRejected
	}
	o.hardwareCursor = c
	return nil
}

// setHardwareCursor presents buf on the plane and, if the display accepts
// it, makes it the retained front buffer.
func (o *Output) setHardwareCursor(setter backend.CursorSetter, buf *buffer.Buffer, hotspotX, hotspotY int) bool {
	if !setter.SetCursor(buf, hotspotX, hotspotY) {
		return false
	}

	o.cursorFrontBuffer.Unlock()
	o.cursorFrontBuffer = nil

	if buf != nil {
		o.cursorFrontBuffer = buf.Lock()
	}
	return true
}

// clearPlane removes any image from the cursor plane.
func (o *Output) clearPlane() {
	if setter, ok := o.backend.(backend.CursorSetter); ok {
		if !o.setHardwareCursor(setter, nil, 0, 0) {
			Logger().Warn("failed to clear cursor plane", "output", o.name)
		}
	}
}

// evictHardwareCursor moves the hardware cursor to software compositing
// and damages its area so the next repaint draws it.
func (o *Output) evictHardwareCursor() {
	hc := o.hardwareCursor
	if hc == nil {
		return
	}
	o.clearPlane()
	o.hardwareCursor = nil
	o.damageWhole(hc)
}
