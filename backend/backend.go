package backend

import (
	"errors"

	"github.com/gogpu/hwcursor/buffer"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not available.
	ErrBackendNotAvailable = errors.New("backend: not available")
)

// Backend is the display backend behind one output.
//
// The only required capability is reporting which buffer storage kinds the
// display can scan out. Everything cursor related is optional: a backend
// opts in by implementing the hook interfaces below, and each hook is
// queried independently with a type assertion.
type Backend interface {
	// BufferCaps returns the buffer storage kinds the display accepts.
	BufferCaps() buffer.Caps
}

// CursorSetter is implemented by backends with a hardware cursor plane.
//
// SetCursor presents buf on the plane with the given hotspot, in buffer
// pixels. A nil buf clears the plane. It returns false if the display
// rejected the buffer; the plane keeps its previous content in that case.
// The backend must Lock buf if it keeps it past the call.
type CursorSetter interface {
	SetCursor(buf *buffer.Buffer, hotspotX, hotspotY int) bool
}

// CursorMover is implemented by backends that can move the cursor plane.
// x and y are in output pixels, before the output transform.
type CursorMover interface {
	MoveCursor(x, y int) bool
}

// CursorSizer is implemented by backends whose cursor plane has a fixed
// maximum size.
type CursorSizer interface {
	CursorSize() (width, height int)
}

// CursorFormatLister is implemented by backends that restrict the formats
// the cursor plane can scan out. A nil result means the query failed.
type CursorFormatLister interface {
	CursorFormats(caps buffer.Caps) *buffer.FormatSet
}

// HasHardwareCursor reports whether b implements CursorSetter.
func HasHardwareCursor(b Backend) bool {
	_, ok := b.(CursorSetter)
	return ok
}
