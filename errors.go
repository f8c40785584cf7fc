package hwcursor

import "errors"

// Errors returned by set-shape and render entry points.
var (
	// ErrNoRenderer is returned when the output has no renderer or
	// allocator (InitRender was not called).
	ErrNoRenderer = errors.New("hwcursor: output has no renderer")

	// ErrCapsMismatch is returned by InitRender when the display backend
	// or the renderer shares no buffer capability with the allocator.
	ErrCapsMismatch = errors.New("hwcursor: buffer capabilities don't match")

	// ErrInvalidOutputState is returned for non-positive modes or scales
	// and unknown transforms.
	ErrInvalidOutputState = errors.New("hwcursor: invalid output state")
)

// Reasons a cursor cannot use the hardware plane. They are logged when a
// cursor falls back to software compositing and never returned from
// set-shape or move.
var (
	// ErrNoHardwareCursor means the display backend has no cursor plane.
	ErrNoHardwareCursor = errors.New("hwcursor: no hardware cursor support")

	// ErrLocked means software cursors are locked on the output.
	ErrLocked = errors.New("hwcursor: software cursors locked")

	// ErrPlaneBusy means another cursor holds the plane.
	ErrPlaneBusy = errors.New("hwcursor: cursor plane held by another cursor")

	// ErrCursorTooLarge means the cursor exceeds the plane's size limit.
	ErrCursorTooLarge = errors.New("hwcursor: cursor exceeds hardware size limit")

	// ErrNoCursorFormat means no pixel format is supported by both the
	// renderer and the cursor plane.
	ErrNoCursorFormat = errors.New("hwcursor: no usable cursor format")

	// ErrSwapchain means the cursor swapchain could not be created or had
	// no free buffer.
	ErrSwapchain = errors.New("hwcursor: cursor swapchain failure")

	// ErrRenderFailed means rendering into the cursor buffer failed.
	ErrRenderFailed = errors.New("hwcursor: cursor render failed")

	// ErrCursorRejected means the display refused the cursor buffer.
	ErrCursorRejected = errors.New("hwcursor: display rejected cursor buffer")
)
