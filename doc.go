// Package hwcursor manages the cursors shown on a compositor's outputs.
//
// # Overview
//
// Each Output tracks its cursors' position and shape and decides, on every
// change, whether a cursor can be shown on the display's hardware cursor
// plane or has to be drawn into the frame by the compositor. Hardware
// cursors are rendered into a small pool of buffers (a swapchain) and
// handed to the display backend; software cursors produce damage events
// and are drawn by RenderSoftwareCursors or AddSoftwareCursorsToRenderPass
// during the next repaint.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/hwcursor"
//	    "github.com/gogpu/hwcursor/backend/headless"
//	    "github.com/gogpu/hwcursor/buffer"
//	    "github.com/gogpu/hwcursor/render"
//	)
//
//	display := headless.New(1920, 1080)
//	out, err := hwcursor.NewOutput("HEADLESS-1", 1920, 1080, display,
//	    hwcursor.WithRender(buffer.NewMemAllocator(), render.NewSoftwareRenderer()))
//
//	cursor := out.CreateCursor()
//	cursor.SetImage(pixels, 4*32, 32, 32, 4, 4)
//	cursor.Move(100, 100)
//
// # Coordinate Spaces
//
//   - Logical: compositor layout coordinates, passed to Cursor.Move
//   - Output: logical multiplied by the output scale, after the output
//     transform; cursor boxes and damage live here
//   - Buffer: the output's physical pixels, before the transform; scissor
//     rectangles and render-pass boxes live here
//
// # Plane Arbitration
//
// At most one cursor per output is on the hardware plane. A cursor falls
// back to software when the backend has no plane, software cursors are
// locked (LockSoftwareCursors), another cursor holds the plane, the image
// exceeds the plane's size limit, no format fits both renderer and plane,
// or rendering fails. Fallback is never an error: the cursor is damaged and
// drawn in software, and the next shape change or move tries again.
//
// # Buffers
//
// Buffers are reference counted (see package buffer): the swapchain and
// the output's front-buffer slot may hold the same buffer, and a buffer's
// storage outlives every holder.
package hwcursor
