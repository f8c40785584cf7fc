package hwcursor

import (
	"github.com/gogpu/hwcursor/buffer"
	"github.com/gogpu/hwcursor/geom"
	"github.com/gogpu/hwcursor/render"
)

// OutputOption configures an Output during creation.
// Use functional options to customize Output behavior.
//
// Example:
//
//	// Plain output, software cursors only until InitRender is called
//	out, _ := hwcursor.NewOutput("HDMI-A-1", 1920, 1080, display)
//
//	// HiDPI output rotated by 90 degrees, ready to render cursors
//	out, err := hwcursor.NewOutput("eDP-1", 2560, 1600, display,
//	    hwcursor.WithScale(2),
//	    hwcursor.WithTransform(geom.Rotate90),
//	    hwcursor.WithRender(alloc, renderer))
type OutputOption func(*outputOptions)

// outputOptions holds optional configuration for Output creation.
type outputOptions struct {
	scale     float32
	transform geom.Transform
	allocator buffer.Allocator
	renderer  render.Renderer
}

// defaultOptions returns the default output options.
func defaultOptions() outputOptions {
	return outputOptions{
		scale:     1,
		transform: geom.Normal,
	}
}

// WithScale sets the output scale factor. Cursor positions passed to Move
// are multiplied by it.
func WithScale(scale float32) OutputOption {
	return func(o *outputOptions) {
		o.scale = scale
	}
}

// WithTransform sets the output transform.
func WithTransform(t geom.Transform) OutputOption {
	return func(o *outputOptions) {
		o.transform = t
	}
}

// WithRender initializes rendering with the given allocator and renderer,
// as InitRender does.
//
// Without a renderer an output can still track cursor position, but
// SetBuffer and SetImage fail and no cursor can use the hardware plane.
func WithRender(alloc buffer.Allocator, r render.Renderer) OutputOption {
	return func(o *outputOptions) {
		o.allocator = alloc
		o.renderer = r
	}
}
