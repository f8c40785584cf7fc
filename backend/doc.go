// Package backend describes the display backend an output presents on.
//
// A display backend owns the scan-out hardware. For the cursor subsystem it
// matters only through a handful of optional hooks: presenting a buffer on
// the hardware cursor plane, moving that plane, reporting the plane's size
// limit and the formats it can scan out. Each hook is its own interface
// so a backend can offer any subset.
//
// # Backend Registration
//
// Backends are registered via init() functions and selected at runtime by
// name:
//
//	import _ "github.com/gogpu/hwcursor/backend/headless"
//
//	b, err := backend.Open("headless")
//
// # Hooks
//
//	if setter, ok := b.(backend.CursorSetter); ok {
//		setter.SetCursor(buf, hotspotX, hotspotY)
//	}
package backend
