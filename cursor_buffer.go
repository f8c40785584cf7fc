package hwcursor

import (
	"fmt"
	"image/color"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/hwcursor/backend"
	"github.com/gogpu/hwcursor/buffer"
	"github.com/gogpu/hwcursor/geom"
	"github.com/gogpu/hwcursor/render"
)

// renderCursorBuffer renders c's texture into a buffer for the cursor
// plane. The buffer has the cursor's size in buffer space, so width and
// height swap for 90 and 270 degree outputs and the plane limit applies
// to the rotated size. It comes back with one lock owned by the caller.
//
// On error the swapchain and the front buffer are unchanged.
func (o *Output) renderCursorBuffer(c *Cursor) (*buffer.Buffer, error) {
	if o.allocator == nil || o.renderer == nil {
		return nil, ErrNoRenderer
	}

	width, height := geom.TransformedSize(c.width, c.height, o.transform)
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: empty cursor", ErrRenderFailed)
	}
	if sizer, ok := o.backend.(backend.CursorSizer); ok {
		// Apply hardware limitations on buffer size
		maxWidth, maxHeight := sizer.CursorSize()
		if width > maxWidth || height > maxHeight {
			Logger().Debug("cursor texture too large, exceeds hardware limitations",
				"output", o.name, "size", fmt.Sprintf("%dx%d", width, height),
				"limit", fmt.Sprintf("%dx%d", maxWidth, maxHeight))
			return nil, fmt.Errorf("%w: %dx%d > %dx%d", ErrCursorTooLarge, width, height, maxWidth, maxHeight)
		}
	}
	if cr, ok := o.renderer.(render.CapableRenderer); ok {
		if limit := cr.Capabilities().MaxTextureSize; limit > 0 && (width > limit || height > limit) {
			Logger().Debug("cursor buffer exceeds renderer texture size",
				"output", o.name, "size", fmt.Sprintf("%dx%d", width, height), "limit", limit)
			return nil, fmt.Errorf("%w: %dx%d > renderer limit %d", ErrCursorTooLarge, width, height, limit)
		}
	}

	if sc := o.cursorSwapchain; sc == nil || sc.Width() != width || sc.Height() != height {
		format, err := o.pickCursorFormat()
		if err != nil {
			Logger().Debug("failed to pick cursor format", "output", o.name, "err", err)
			return nil, err
		}

		sc, err := buffer.NewSwapchain(o.allocator, width, height, format)
		if err != nil {
			Logger().Error("failed to create cursor swapchain", "output", o.name, "err", err)
			return nil, fmt.Errorf("%w: %w", ErrSwapchain, err)
		}
		o.cursorSwapchain.Destroy()
		o.cursorSwapchain = sc
	}

	buf, err := o.cursorSwapchain.Acquire()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSwapchain, err)
	}

	m := geom.ProjectBox(geom.Box{Width: c.width, Height: c.height},
		c.transform.Invert(), 0, geom.OutputMatrix(width, height, o.transform))

	if err := o.renderer.Begin(buf); err != nil {
		buf.Unlock()
		return nil, fmt.Errorf("%w: %w", ErrRenderFailed, err)
	}
	o.renderer.Clear(color.Transparent)
	err = o.renderer.RenderTextureWithMatrix(c.texture, m, 1)
	o.renderer.End()
	if err != nil {
		buf.Unlock()
		return nil, fmt.Errorf("%w: %w", ErrRenderFailed, err)
	}
	return buf, nil
}

// pickCursorFormat chooses the cursor swapchain format from what the
// renderer can draw and, if the display reports it, what the cursor plane
// can scan out.
func (o *Output) pickCursorFormat() (buffer.Format, error) {
	var displayFormats *buffer.FormatSet
	if lister, ok := o.backend.(backend.CursorFormatLister); ok {
		displayFormats = lister.CursorFormats(o.allocator.BufferCaps())
		if displayFormats == nil {
			Logger().Debug("failed to get cursor display formats", "output", o.name)
			return buffer.Format{}, fmt.Errorf("%w: display format query failed", ErrNoCursorFormat)
		}
	}
	return o.pickFormat(displayFormats, buffer.FormatARGB8888)
}

// pickFormat returns the first format, preferred first and then the
// renderer's formats in order, that the renderer supports and that shares
// a modifier with displayFormats. A nil displayFormats accepts any format.
func (o *Output) pickFormat(displayFormats *buffer.FormatSet, preferred gputypes.TextureFormat) (buffer.Format, error) {
	renderFormats := o.renderer.RenderFormats()
	if renderFormats == nil || renderFormats.Len() == 0 {
		return buffer.Format{}, fmt.Errorf("%w: renderer reports no formats", ErrNoCursorFormat)
	}

	candidates := []gputypes.TextureFormat{preferred}
	for _, code := range renderFormats.Codes() {
		if code != preferred {
			candidates = append(candidates, code)
		}
	}

	for _, code := range candidates {
		renderFormat, ok := renderFormats.Get(code)
		if !ok {
			Logger().Debug("renderer doesn't support format", "format", code)
			continue
		}
		if displayFormats == nil {
			// The output can display any format
			return renderFormat, nil
		}
		displayFormat, ok := displayFormats.Get(code)
		if !ok {
			Logger().Debug("output doesn't support format", "output", o.name, "format", code)
			continue
		}
		if f, ok := buffer.Intersect(displayFormat, renderFormat); ok {
			return f, nil
		}
		Logger().Debug("failed to intersect display and render modifiers",
			"output", o.name, "format", code)
	}
	return buffer.Format{}, ErrNoCursorFormat
}
