package hwcursor

import (
	"fmt"
	"slices"

	"github.com/gogpu/hwcursor/backend"
	"github.com/gogpu/hwcursor/buffer"
	"github.com/gogpu/hwcursor/geom"
	"github.com/gogpu/hwcursor/render"
)

// Output is one display output and the cursors shown on it.
//
// An Output owns the cursor plane state: which cursor (if any) is on the
// hardware plane, the software cursor lock counter, the swapchain cursor
// buffers are rendered from and the buffer currently presented on the
// plane. The renderer and allocator are shared with the compositor and
// outlive the output.
//
// Output is not safe for concurrent use. It is driven from the goroutine
// running the output's repaint cycle.
type Output struct {
	name    string
	backend backend.Backend

	width, height   int
	scale           float32
	transform       geom.Transform
	transformMatrix geom.Matrix

	allocator buffer.Allocator
	renderer  render.Renderer

	// cursors is ordered newest first.
	cursors             []*Cursor
	hardwareCursor      *Cursor
	softwareCursorLocks int
	attachRenderLocks   int

	cursorSwapchain   *buffer.Swapchain
	cursorFrontBuffer *buffer.Buffer

	damageListeners []*damageListener

	destroyed bool
}

// NewOutput creates an output of width x height pixels presented by b.
func NewOutput(name string, width, height int, b backend.Backend, opts ...OutputOption) (*Output, error) {
	if b == nil {
		return nil, fmt.Errorf("hwcursor: output %q: nil backend", name)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := validateState(width, height, o.scale, o.transform); err != nil {
		return nil, err
	}

	out := &Output{
		name:      name,
		backend:   b,
		width:     width,
		height:    height,
		scale:     o.scale,
		transform: o.transform,
	}
	out.updateTransformMatrix()

	if o.allocator != nil || o.renderer != nil {
		if err := out.InitRender(o.allocator, o.renderer); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// InitRender sets the allocator and renderer used for cursor buffers and
// software cursors. The display backend and the renderer must each share a
// buffer capability with the allocator. Any existing cursor swapchain is
// discarded.
func (o *Output) InitRender(alloc buffer.Allocator, r render.Renderer) error {
	if alloc == nil || r == nil {
		return ErrNoRenderer
	}

	allocCaps := alloc.BufferCaps()
	if backendCaps := o.backend.BufferCaps(); backendCaps&allocCaps == 0 {
		Logger().Error("output backend and allocator buffer capabilities don't match",
			"output", o.name, "backend", backendCaps, "allocator", allocCaps)
		return fmt.Errorf("%w: output backend has %v, allocator has %v", ErrCapsMismatch, backendCaps, allocCaps)
	}
	if rendererCaps := r.RenderBufferCaps(); rendererCaps&allocCaps == 0 {
		Logger().Error("renderer and allocator buffer capabilities don't match",
			"output", o.name, "renderer", rendererCaps, "allocator", allocCaps)
		return fmt.Errorf("%w: renderer has %v, allocator has %v", ErrCapsMismatch, rendererCaps, allocCaps)
	}

	o.cursorSwapchain.Destroy()
	o.cursorSwapchain = nil

	o.allocator = alloc
	o.renderer = r
	return nil
}

// StateField selects the fields of an OutputState to apply.
type StateField uint32

const (
	// StateMode applies Width and Height.
	StateMode StateField = 1 << iota

	// StateScale applies Scale.
	StateScale

	// StateTransform applies Transform.
	StateTransform
)

// OutputState is a set of pending output changes.
type OutputState struct {
	Committed StateField
	Width     int
	Height    int
	Scale     float32
	Transform geom.Transform
}

// Configure applies the committed fields of state. Cursor visibility is
// recomputed, and the hardware cursor is presented again so its buffer
// matches the new transform; if that fails it falls back to software.
func (o *Output) Configure(state OutputState) error {
	width, height := o.width, o.height
	scale, transform := o.scale, o.transform
	if state.Committed&StateMode != 0 {
		width, height = state.Width, state.Height
	}
	if state.Committed&StateScale != 0 {
		scale = state.Scale
	}
	if state.Committed&StateTransform != 0 {
		transform = state.Transform
	}
	if err := validateState(width, height, scale, transform); err != nil {
		return err
	}
	if state.Committed == 0 {
		return nil
	}

	o.width, o.height = width, height
	o.scale, o.transform = scale, transform
	o.updateTransformMatrix()

	for _, c := range slices.Clone(o.cursors) {
		c.updateVisible()
	}

	if hc := o.hardwareCursor; hc != nil {
		if err := o.attemptHardware(hc); err != nil {
			Logger().Debug("falling back to software cursor", "output", o.name, "reason", err)
			o.evictHardwareCursor()
		}
	}
	return nil
}

func validateState(width, height int, scale float32, t geom.Transform) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: mode %dx%d", ErrInvalidOutputState, width, height)
	}
	if scale <= 0 {
		return fmt.Errorf("%w: scale %v", ErrInvalidOutputState, scale)
	}
	if !t.Valid() {
		return fmt.Errorf("%w: transform %d", ErrInvalidOutputState, int(t))
	}
	return nil
}

func (o *Output) updateTransformMatrix() {
	o.transformMatrix = geom.OutputMatrix(o.width, o.height, o.transform)
}

// Destroy destroys every cursor, releases the presented cursor buffer and
// the cursor swapchain, and drops all damage listeners.
func (o *Output) Destroy() {
	if o == nil || o.destroyed {
		return
	}
	for _, c := range slices.Clone(o.cursors) {
		c.Destroy()
	}
	o.cursorFrontBuffer.Unlock()
	o.cursorFrontBuffer = nil
	o.cursorSwapchain.Destroy()
	o.cursorSwapchain = nil
	o.damageListeners = nil
	o.destroyed = true
}

// CreateCursor adds a cursor to the output. The cursor starts disabled,
// without a shape, at (0, 0).
func (o *Output) CreateCursor() *Cursor {
	c := &Cursor{
		output:  o,
		scale:   1,
		visible: true, // default position is at (0, 0)
	}
	o.cursors = append([]*Cursor{c}, o.cursors...)
	return c
}

// LockSoftwareCursors forces software cursors while the lock count is
// positive, for example while a frame recorder captures the output. Any
// hardware cursor is evicted from the plane and damaged so it gets drawn.
//
// Unlocking does not move a cursor back to the plane; that happens on the
// next shape change or move. Unlocking more often than locking panics.
func (o *Output) LockSoftwareCursors(lock bool) {
	if lock {
		o.softwareCursorLocks++
	} else {
		if o.softwareCursorLocks <= 0 {
			panic("hwcursor: unbalanced software cursor unlock")
		}
		o.softwareCursorLocks--
	}
	action := "enabling"
	if lock {
		action = "disabling"
	}
	Logger().Debug(action+" hardware cursors", "output", o.name, "locks", o.softwareCursorLocks)

	if o.softwareCursorLocks > 0 && o.hardwareCursor != nil {
		o.evictHardwareCursor()
	}
}

// LockAttachRender counts callers that render directly into the output's
// buffers and so must disable direct scan-out. Unlocking more often than
// locking panics.
func (o *Output) LockAttachRender(lock bool) {
	if lock {
		o.attachRenderLocks++
	} else {
		if o.attachRenderLocks <= 0 {
			panic("hwcursor: unbalanced attach render unlock")
		}
		o.attachRenderLocks--
	}
	action := "enabling"
	if lock {
		action = "disabling"
	}
	Logger().Debug(action+" direct scan-out", "output", o.name, "locks", o.attachRenderLocks)
}

// AttachRenderLocked reports whether direct scan-out is disabled.
func (o *Output) AttachRenderLocked() bool {
	return o.attachRenderLocks > 0
}

// Name returns the output name.
func (o *Output) Name() string { return o.name }

// Backend returns the display backend.
func (o *Output) Backend() backend.Backend { return o.backend }

// Mode returns the output size in buffer pixels.
func (o *Output) Mode() (width, height int) { return o.width, o.height }

// TransformedResolution returns the output size after its transform, the
// space cursor positions live in.
func (o *Output) TransformedResolution() (width, height int) {
	return geom.TransformedSize(o.width, o.height, o.transform)
}

// Scale returns the output scale factor.
func (o *Output) Scale() float32 { return o.scale }

// Transform returns the output transform.
func (o *Output) Transform() geom.Transform { return o.transform }

// TransformMatrix returns the matrix mapping output space to buffer space.
func (o *Output) TransformMatrix() geom.Matrix { return o.transformMatrix }

// Renderer returns the renderer set by InitRender, or nil.
func (o *Output) Renderer() render.Renderer { return o.renderer }

// Allocator returns the allocator set by InitRender, or nil.
func (o *Output) Allocator() buffer.Allocator { return o.allocator }

// Cursors returns the output's cursors, newest first.
func (o *Output) Cursors() []*Cursor { return slices.Clone(o.cursors) }

// HardwareCursor returns the cursor on the hardware plane, or nil.
func (o *Output) HardwareCursor() *Cursor { return o.hardwareCursor }

// SoftwareCursorLocks returns the software cursor lock count.
func (o *Output) SoftwareCursorLocks() int { return o.softwareCursorLocks }

// CursorFrontBuffer returns the buffer presented on the cursor plane, or
// nil.
func (o *Output) CursorFrontBuffer() *buffer.Buffer { return o.cursorFrontBuffer }

// CursorSwapchain returns the cursor swapchain, or nil before the first
// hardware cursor has been rendered.
func (o *Output) CursorSwapchain() *buffer.Swapchain { return o.cursorSwapchain }
