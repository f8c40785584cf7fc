package headless

import (
	"github.com/gogpu/hwcursor/buffer"
	"github.com/gogpu/hwcursor/geom"
)

// Option configures a Display.
type Option func(*Display)

// WithCursorSize sets the cursor plane size limit.
func WithCursorSize(width, height int) Option {
	return func(d *Display) {
		d.cursorWidth = width
		d.cursorHeight = height
	}
}

// WithCursorFormats sets the formats the cursor plane scans out.
func WithCursorFormats(formats *buffer.FormatSet) Option {
	return func(d *Display) {
		d.formats = formats
	}
}

// WithFailFormatQuery makes CursorFormats report a failed query.
func WithFailFormatQuery() Option {
	return func(d *Display) {
		d.failFormatQuery = true
	}
}

// WithBufferCaps sets the buffer kinds the display scans out.
func WithBufferCaps(caps buffer.Caps) Option {
	return func(d *Display) {
		d.caps = caps
	}
}

// WithTransform sets the initial output transform.
func WithTransform(t geom.Transform) Option {
	return func(d *Display) {
		d.transform = t
	}
}

// WithRejectCursor makes the display refuse every cursor buffer.
func WithRejectCursor() Option {
	return func(d *Display) {
		d.rejectCursor = true
	}
}
