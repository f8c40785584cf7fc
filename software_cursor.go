package hwcursor

import (
	"fmt"
	"slices"

	"github.com/gogpu/hwcursor/geom"
	"github.com/gogpu/hwcursor/region"
	"github.com/gogpu/hwcursor/render"
)

// RenderSoftwareCursors draws the cursors that are not on the hardware
// plane into the renderer's current target, which the caller has opened
// on the output's buffer with Begin. Drawing is limited to damage, in
// output space; a nil damage redraws the whole output.
func (o *Output) RenderSoftwareCursors(damage *region.Region) error {
	r := o.renderer
	if r == nil {
		return ErrNoRenderer
	}

	renderDamage := o.renderDamage(damage)
	if renderDamage.Empty() {
		return nil
	}

	var firstErr error
	for _, c := range o.softwareCursors() {
		if err := o.renderCursor(c, renderDamage); err != nil {
			Logger().Warn("failed to draw software cursor", "output", o.name, "err", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (o *Output) renderCursor(c *Cursor, damage *region.Region) error {
	box := c.box()
	cursorDamage := damage.IntersectBox(box)
	if cursorDamage.Empty() {
		return nil
	}

	r := o.renderer
	m := geom.ProjectBox(box, c.transform.Invert(), 0, o.transformMatrix)

	width, height := o.TransformedResolution()
	inv := o.transform.Invert()
	defer r.Scissor(nil)
	for _, rect := range cursorDamage.Boxes() {
		scissor := geom.TransformBox(rect, inv, width, height)
		r.Scissor(&scissor)
		if err := r.RenderTextureWithMatrix(c.texture, m, 1); err != nil {
			return fmt.Errorf("hwcursor: draw cursor: %w", err)
		}
	}
	return nil
}

// AddSoftwareCursorsToRenderPass appends a texture draw to pass for each
// cursor that is not on the hardware plane and overlaps damage. Boxes and
// clip regions are converted to buffer space. A nil damage means the whole
// output.
func (o *Output) AddSoftwareCursorsToRenderPass(pass render.Pass, damage *region.Region) {
	width, height := o.TransformedResolution()
	renderDamage := o.renderDamage(damage)
	inv := o.transform.Invert()

	for _, c := range o.softwareCursors() {
		box := c.box()
		cursorDamage := renderDamage.IntersectBox(box)
		if cursorDamage.Empty() {
			continue
		}

		pass.AddTexture(render.TextureOptions{
			Texture:   c.texture,
			DstBox:    geom.TransformBox(box, inv, width, height),
			Clip:      cursorDamage.Transform(inv, width, height),
			Transform: c.transform.Invert().Compose(o.transform),
		})
	}
}

// renderDamage returns the output bounds, limited to damage if it is set.
func (o *Output) renderDamage(damage *region.Region) *region.Region {
	width, height := o.TransformedResolution()
	bounds := region.Rect(0, 0, width, height)
	if damage == nil {
		return bounds
	}
	return bounds.Intersect(damage)
}

// softwareCursors returns the enabled, visible cursors with a texture that
// are not on the hardware plane.
func (o *Output) softwareCursors() []*Cursor {
	var out []*Cursor
	for _, c := range slices.Clone(o.cursors) {
		if !c.enabled || !c.visible || o.hardwareCursor == c || c.texture == nil {
			continue
		}
		out = append(out, c)
	}
	return out
}
