// Package headless provides an in-memory display backend.
//
// The headless display has a hardware cursor plane that keeps a copy of
// the last presented cursor buffer, its hotspot and position. Composite
// blends the plane over a primary frame the way scan-out would, which
// makes the backend useful for tests and for rendering cursor scenarios to
// image files.
//
// Importing the package registers two backends:
//
//	import _ "github.com/gogpu/hwcursor/backend/headless"
//
//	b, _ := backend.Open("headless")          // with a cursor plane
//	b, _ := backend.Open("headless-nocursor") // software cursors only
package headless
