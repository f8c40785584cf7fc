package hwcursor

import (
	"slices"

	"github.com/gogpu/hwcursor/geom"
	"github.com/gogpu/hwcursor/region"
)

// DamageEvent reports an output area that must be repainted, in output
// pixels.
type DamageEvent struct {
	Output *Output
	Damage *region.Region
}

type damageListener struct {
	fn      func(DamageEvent)
	removed bool
}

// OnDamage registers fn to receive damage events. The returned function
// unregisters it. Listeners may unregister themselves, or destroy cursors,
// while an event is being delivered.
func (o *Output) OnDamage(fn func(DamageEvent)) (remove func()) {
	l := &damageListener{fn: fn}
	o.damageListeners = append(o.damageListeners, l)
	return func() {
		if l.removed {
			return
		}
		l.removed = true
		if i := slices.Index(o.damageListeners, l); i >= 0 {
			o.damageListeners = slices.Delete(o.damageListeners, i, i+1)
		}
	}
}

// damageWhole emits c's area as damage, unless c is on the hardware plane
// or covers nothing.
func (o *Output) damageWhole(c *Cursor) {
	if o.hardwareCursor == c {
		return
	}
	box := c.box()
	if box.Empty() {
		return
	}
	o.emitDamage(region.New(box))
}

func (o *Output) emitDamage(damage *region.Region) {
	listeners := slices.Clone(o.damageListeners)
	for _, l := range listeners {
		if l.removed {
			continue
		}
		l.fn(DamageEvent{Output: o, Damage: damage.Clone()})
	}
}

// maxDamageRects is the threshold after which we switch to full redraw.
// When more than this many rects accumulate, it's more efficient to redraw everything.
const maxDamageRects = 16

// DamageAccumulator collects an output's damage events between repaints.
//
// Example:
//
//	acc := hwcursor.NewDamageAccumulator(out)
//	defer acc.Close()
//
//	// in the repaint loop
//	if !acc.Pending().Empty() {
//	    renderer.Begin(buf)
//	    out.RenderSoftwareCursors(acc.Pending())
//	    renderer.End()
//	    acc.Reset()
//	}
type DamageAccumulator struct {
	output  *Output
	pending *region.Region
	full    bool
	remove  func()
}

// NewDamageAccumulator subscribes to out's damage events.
func NewDamageAccumulator(out *Output) *DamageAccumulator {
	a := &DamageAccumulator{output: out, pending: region.New()}
	a.remove = out.OnDamage(a.add)
	return a
}

func (a *DamageAccumulator) add(ev DamageEvent) {
	if a.full {
		return
	}
	a.pending.Union(ev.Damage)
	if a.pending.Len() > maxDamageRects {
		a.full = true
	}
}

// Pending returns the damage collected since the last Reset. After a
// switch to full redraw it is the whole output.
func (a *DamageAccumulator) Pending() *region.Region {
	if a.full {
		w, h := a.output.TransformedResolution()
		return region.New(geom.Box{Width: w, Height: h})
	}
	return a.pending.Clone()
}

// NeedsFullRedraw returns true if too many areas were damaged to track
// them individually.
func (a *DamageAccumulator) NeedsFullRedraw() bool {
	return a.full
}

// Reset clears the pending damage after a repaint.
func (a *DamageAccumulator) Reset() {
	a.pending.Clear()
	a.full = false
}

// Close unsubscribes from the output.
func (a *DamageAccumulator) Close() {
	a.remove()
}
