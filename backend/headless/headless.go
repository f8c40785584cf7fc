package headless

import (
	"fmt"
	"image"
	"sync"

	"github.com/gogpu/hwcursor"
	"github.com/gogpu/hwcursor/backend"
	"github.com/gogpu/hwcursor/buffer"
	"github.com/gogpu/hwcursor/geom"
	"github.com/gogpu/hwcursor/render"
)

// Backend names.
const (
	Name         = "headless"
	NameNoCursor = "headless-nocursor"
)

// DefaultCursorSize is the cursor plane size limit when none is set.
const DefaultCursorSize = 256

// cursorLayer is the z-order of the cursor plane above the primary plane.
const cursorLayer = 1

func init() {
	backend.Register(Name, func() backend.Backend {
		return New()
	})
	backend.Register(NameNoCursor, func() backend.Backend {
		return NewNoCursor()
	})
}

// Display is a headless display with a cursor plane.
// It is safe to inspect from other goroutines.
type Display struct {
	mu sync.Mutex

	caps            buffer.Caps
	transform       geom.Transform
	cursorWidth     int
	cursorHeight    int
	formats         *buffer.FormatSet
	failFormatQuery bool
	rejectCursor    bool

	cursor     *buffer.Buffer
	hotX, hotY int
	x, y       int
	planes     *render.LayerStack

	setCalls  int
	moveCalls int
	closed    bool
}

// New creates a headless display.
func New(opts ...Option) *Display {
	d := &Display{
		caps:         buffer.CapDataPtr | buffer.CapShm,
		transform:    geom.Normal,
		cursorWidth:  DefaultCursorSize,
		cursorHeight: DefaultCursorSize,
		formats:      buffer.NewFormatSet([]uint64{buffer.ModifierLinear}, buffer.FormatARGB8888),
		planes:       render.NewLayerStack(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// BufferCaps returns the buffer kinds the display scans out.
func (d *Display) BufferCaps() buffer.Caps {
	return d.caps
}

// SetCursor presents buf on the cursor plane. The plane keeps its own
// lock on buf until the next call or Close.
func (d *Display) SetCursor(buf *buffer.Buffer, hotspotX, hotspotY int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.setCalls++
	if d.closed || d.rejectCursor {
		return false
	}

	var img *image.RGBA
	if buf != nil {
		var err error
		img, err = render.ImageFromBuffer(buf)
		if err != nil {
			hwcursor.Logger().Warn("headless: cannot scan out cursor buffer", "err", err)
			return false
		}
	}

	d.cursor.Unlock()
	d.cursor = buf.Lock()
	d.hotX, d.hotY = hotspotX, hotspotY

	if img == nil {
		d.planes.SetLayerVisible(cursorLayer, false)
	} else {
		d.planes.SetLayer(cursorLayer, img, 0, 0)
		d.planes.SetLayerVisible(cursorLayer, true)
	}
	hwcursor.Logger().Debug("headless: cursor plane set",
		"buffer", buf != nil, "hotspot", fmt.Sprintf("%d,%d", hotspotX, hotspotY))
	return true
}

// MoveCursor moves the cursor plane. x and y are in output pixels.
func (d *Display) MoveCursor(x, y int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.moveCalls++
	if d.closed {
		return false
	}
	d.x, d.y = x, y
	return true
}

// CursorSize returns the cursor plane size limit.
func (d *Display) CursorSize() (width, height int) {
	return d.cursorWidth, d.cursorHeight
}

// CursorFormats returns the formats the cursor plane scans out, or nil if
// the query is set up to fail or caps does not include data pointer
// access.
func (d *Display) CursorFormats(caps buffer.Caps) *buffer.FormatSet {
	if d.failFormatQuery || caps&buffer.CapDataPtr == 0 {
		return nil
	}
	return d.formats
}

// SetTransform sets the output transform used to place the cursor plane.
// Compositors call it when the output is reconfigured.
func (d *Display) SetTransform(t geom.Transform) {
	d.mu.Lock()
	d.transform = t
	d.mu.Unlock()
}

// Apply applies opts to an open display, such as one returned by
// backend.Open. Options that only make sense before the first cursor is
// set, like WithCursorFormats, take effect on the next SetCursor.
func (d *Display) Apply(opts ...Option) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, opt := range opts {
		opt(d)
	}
}

// Cursor returns the buffer on the cursor plane and its hotspot.
func (d *Display) Cursor() (buf *buffer.Buffer, hotspotX, hotspotY int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cursor, d.hotX, d.hotY
}

// CursorPosition returns the last position passed to MoveCursor.
func (d *Display) CursorPosition() (x, y int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.x, d.y
}

// Calls returns how often SetCursor and MoveCursor were called.
func (d *Display) Calls() (set, move int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.setCalls, d.moveCalls
}

// Composite returns the frame the display would show: primary with the
// cursor plane blended over it.
func (d *Display) Composite(primary *buffer.Buffer) (*image.RGBA, error) {
	base, err := render.ImageFromBuffer(primary)
	if err != nil {
		return nil, fmt.Errorf("headless: primary plane: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cursor != nil {
		x, y := d.planePosition(primary.Width(), primary.Height())
		if err := d.planes.MoveLayer(cursorLayer, x, y); err != nil {
			return nil, fmt.Errorf("headless: cursor plane: %w", err)
		}
	}
	return d.planes.Composite(base), nil
}

// planePosition returns the top-left corner of the cursor plane in the
// width x height primary buffer.
func (d *Display) planePosition(width, height int) (int, int) {
	tw, th := geom.TransformedSize(width, height, d.transform)
	box := geom.TransformBox(geom.Box{X: d.x, Y: d.y}, d.transform.Invert(), tw, th)
	return box.X - d.hotX, box.Y - d.hotY
}

// Close releases the cursor plane. Later calls to SetCursor and MoveCursor
// fail.
func (d *Display) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}
	d.closed = true
	d.cursor.Unlock()
	d.cursor = nil
	if d.planes.Layer(cursorLayer) != nil {
		_ = d.planes.RemoveLayer(cursorLayer)
	}
}

// NoCursor is a headless display without a cursor plane.
type NoCursor struct {
	caps buffer.Caps
}

// NewNoCursor creates a headless display without a cursor plane.
func NewNoCursor() *NoCursor {
	return &NoCursor{caps: buffer.CapDataPtr | buffer.CapShm}
}

// BufferCaps returns the buffer kinds the display scans out.
func (d *NoCursor) BufferCaps() buffer.Caps {
	return d.caps
}

var (
	_ backend.CursorSetter       = (*Display)(nil)
	_ backend.CursorMover        = (*Display)(nil)
	_ backend.CursorSizer        = (*Display)(nil)
	_ backend.CursorFormatLister = (*Display)(nil)
)
