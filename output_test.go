package hwcursor

import (
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/hwcursor/buffer"
	"github.com/gogpu/hwcursor/geom"
	"github.com/gogpu/hwcursor/render"
)

func TestNewOutputInvalid(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		opts          []OutputOption
	}{
		{"zero width", 0, 10, nil},
		{"negative height", 10, -1, nil},
		{"zero scale", 10, 10, []OutputOption{WithScale(0)}},
		{"bad transform", 10, 10, []OutputOption{WithTransform(geom.Transform(9))}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewOutput("BAD-1", tt.width, tt.height, &noPlane{}, tt.opts...)
			if !errors.Is(err, ErrInvalidOutputState) {
				t.Errorf("NewOutput() error = %v, want ErrInvalidOutputState", err)
			}
		})
	}

	if _, err := NewOutput("BAD-2", 10, 10, nil); err == nil {
		t.Error("NewOutput() with nil backend should fail")
	}
}

func TestOutputAccessors(t *testing.T) {
	out := newTestOutput(t, &noPlane{}, 1920, 1080, WithScale(2), WithTransform(geom.Rotate270))

	if out.Name() != "TEST-1" {
		t.Errorf("Name() = %q, want %q", out.Name(), "TEST-1")
	}
	if w, h := out.Mode(); w != 1920 || h != 1080 {
		t.Errorf("Mode() = %dx%d, want 1920x1080", w, h)
	}
	if w, h := out.TransformedResolution(); w != 1080 || h != 1920 {
		t.Errorf("TransformedResolution() = %dx%d, want 1080x1920", w, h)
	}
	if out.Scale() != 2 {
		t.Errorf("Scale() = %v, want 2", out.Scale())
	}
	if out.Transform() != geom.Rotate270 {
		t.Errorf("Transform() = %v, want %v", out.Transform(), geom.Rotate270)
	}
	if out.Renderer() == nil || out.Allocator() == nil {
		t.Error("WithRender() should initialize rendering")
	}
	if got := out.TransformMatrix(); got != geom.OutputMatrix(1920, 1080, geom.Rotate270) {
		t.Errorf("TransformMatrix() = %v", got)
	}
}

func TestInitRenderCapsMismatch(t *testing.T) {
	tests := []struct {
		name    string
		display *noPlane
		r       render.Renderer
	}{
		{"backend", &noPlane{caps: buffer.CapDMABUF}, render.NewSoftwareRenderer()},
		{"renderer", &noPlane{}, dmabufRenderer{render.NewSoftwareRenderer()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := NewOutput("TEST-3", 10, 10, tt.display)
			if err != nil {
				t.Fatalf("NewOutput() error = %v", err)
			}
			err = out.InitRender(buffer.NewMemAllocator(), tt.r)
			if !errors.Is(err, ErrCapsMismatch) {
				t.Errorf("InitRender() error = %v, want ErrCapsMismatch", err)
			}
			if out.Renderer() != nil {
				t.Error("a failed InitRender() should not set the renderer")
			}
		})
	}

	out, err := NewOutput("TEST-4", 10, 10, &noPlane{})
	if err != nil {
		t.Fatalf("NewOutput() error = %v", err)
	}
	if err := out.InitRender(nil, nil); !errors.Is(err, ErrNoRenderer) {
		t.Errorf("InitRender(nil, nil) error = %v, want ErrNoRenderer", err)
	}
}

// dmabufRenderer only renders into DMA-BUFs.
type dmabufRenderer struct {
	*render.SoftwareRenderer
}

func (dmabufRenderer) RenderBufferCaps() buffer.Caps { return buffer.CapDMABUF }

func TestSetBufferErrors(t *testing.T) {
	t.Run("no renderer", func(t *testing.T) {
		out, err := NewOutput("TEST-5", 10, 10, &noPlane{})
		if err != nil {
			t.Fatalf("NewOutput() error = %v", err)
		}
		c := out.CreateCursor()
		buf := newARGBBuffer(t, 2, 2, argb(2, 2, red))
		defer buf.Drop()
		if err := c.SetBuffer(buf, 0, 0); !errors.Is(err, ErrNoRenderer) {
			t.Errorf("SetBuffer() error = %v, want ErrNoRenderer", err)
		}
		if c.Enabled() {
			t.Error("cursor enabled after a failed SetBuffer()")
		}
	})

	t.Run("unsupported format", func(t *testing.T) {
		out := newTestOutput(t, &noPlane{}, 100, 100)
		c := setBufferAt(t, out, 10, 10)
		tex, _ := c.Texture()
		out.takeDamage()

		buf, err := buffer.NewReadOnly(gputypes.TextureFormatR8Unorm, 8, 2, 2, make([]byte, 16))
		if err != nil {
			t.Fatalf("NewReadOnly() error = %v", err)
		}
		defer buf.Drop()
		if err := c.SetBuffer(buf, 0, 0); !errors.Is(err, render.ErrUnsupportedFormat) {
			t.Errorf("SetBuffer() error = %v, want ErrUnsupportedFormat", err)
		}
		if got, _ := c.Texture(); got != tex {
			t.Error("texture changed after a failed SetBuffer()")
		}
		if w, h := c.Size(); w != 32 || h != 32 {
			t.Errorf("Size() = %dx%d, want 32x32", w, h)
		}
		if got := out.takeDamage(); len(got) != 0 {
			t.Errorf("damage = %v, want none", got)
		}
	})

	t.Run("bad stride", func(t *testing.T) {
		out := newTestOutput(t, &noPlane{}, 100, 100)
		c := out.CreateCursor()
		if err := c.SetImage(argb(4, 4, red), 8, 4, 4, 0, 0); !errors.Is(err, buffer.ErrInvalidDimensions) {
			t.Errorf("SetImage() error = %v, want ErrInvalidDimensions", err)
		}
	})

	t.Run("nil image disables", func(t *testing.T) {
		out := newTestOutput(t, &noPlane{}, 100, 100)
		c := setBufferAt(t, out, 10, 10)
		if err := c.SetImage(nil, 0, 0, 0, 0, 0); err != nil {
			t.Fatalf("SetImage(nil) error = %v", err)
		}
		if c.Enabled() {
			t.Error("Enabled() = true after SetImage(nil)")
		}
		if tex, _ := c.Texture(); tex != nil {
			t.Error("Texture() should be nil")
		}
	})
}

func TestConfigure(t *testing.T) {
	t.Run("transform re-presents hardware cursor", func(t *testing.T) {
		p := newPlane()
		out := newTestOutput(t, p, 200, 100)
		c := out.CreateCursor()
		if err := c.SetImage(argbPixels(red, blue), 8, 2, 1, 1, 0); err != nil {
			t.Fatalf("SetImage() error = %v", err)
		}
		setCalls := p.setCalls

		err := out.Configure(OutputState{Committed: StateTransform, Transform: geom.Rotate90})
		if err != nil {
			t.Fatalf("Configure() error = %v", err)
		}
		if !c.IsHardware() {
			t.Fatal("cursor should stay on the plane")
		}
		if p.setCalls != setCalls+1 {
			t.Errorf("SetCursor calls = %d, want %d", p.setCalls, setCalls+1)
		}
		buf := out.CursorFrontBuffer()
		if buf.Width() != 1 || buf.Height() != 2 {
			t.Errorf("cursor buffer = %dx%d, want 1x2", buf.Width(), buf.Height())
		}
		if p.hotX != 0 || p.hotY != 1 {
			t.Errorf("hotspot = (%d,%d), want (0,1)", p.hotX, p.hotY)
		}
		if w, h := out.TransformedResolution(); w != 100 || h != 200 {
			t.Errorf("TransformedResolution() = %dx%d, want 100x200", w, h)
		}
	})

	t.Run("fallback when cursor no longer fits", func(t *testing.T) {
		p := &sizedPlane{plane: newPlane(), maxW: 32, maxH: 32}
		out := newTestOutput(t, p, 400, 400)
		c := setBufferAt(t, out, 100, 100)
		tex, _ := c.Texture()
		if !c.IsHardware() {
			t.Fatal("cursor should be on the plane")
		}
		out.takeDamage()

		// Shape scale does not follow the output scale; resize the
		// shape, as a compositor would on a scale change.
		if err := out.Configure(OutputState{Committed: StateScale, Scale: 2}); err != nil {
			t.Fatalf("Configure() error = %v", err)
		}
		if !c.IsHardware() {
			t.Fatal("same-size shape should stay on the plane")
		}
		c.SetTexture(tex, Owned, 2, geom.Normal, 4, 4)

		if c.IsHardware() {
			t.Error("64x64 cursor should not fit the plane")
		}
		if p.buf != nil {
			t.Error("plane should be cleared")
		}
		if got := out.takeDamage(); len(got) != 1 {
			t.Errorf("damage = %v, want one box", got)
		}
	})

	t.Run("mode change updates visibility", func(t *testing.T) {
		out := newTestOutput(t, &noPlane{}, 400, 400)
		c := setBufferAt(t, out, 300, 300)
		if !c.Visible() {
			t.Fatal("cursor should be visible")
		}
		if err := out.Configure(OutputState{Committed: StateMode, Width: 200, Height: 200}); err != nil {
			t.Fatalf("Configure() error = %v", err)
		}
		if c.Visible() {
			t.Error("cursor outside the new mode should be hidden")
		}
	})

	t.Run("invalid state", func(t *testing.T) {
		out := newTestOutput(t, &noPlane{}, 100, 100)
		tests := []OutputState{
			{Committed: StateMode, Width: 0, Height: 10},
			{Committed: StateScale, Scale: -1},
			{Committed: StateTransform, Transform: geom.Transform(8)},
		}
		for _, state := range tests {
			if err := out.Configure(state); !errors.Is(err, ErrInvalidOutputState) {
				t.Errorf("Configure(%+v) error = %v, want ErrInvalidOutputState", state, err)
			}
		}
		if w, h := out.Mode(); w != 100 || h != 100 {
			t.Errorf("Mode() = %dx%d after invalid Configure(), want 100x100", w, h)
		}
	})
}

func TestOutputDestroy(t *testing.T) {
	p := newPlane()
	out := newTestOutput(t, p, 200, 200)
	hw := setBufferAt(t, out, 10, 10)
	sw := setBufferAt(t, out, 100, 100)
	if !hw.IsHardware() || sw.IsHardware() {
		t.Fatal("expected one hardware and one software cursor")
	}
	out.takeDamage()

	out.Destroy()

	if len(out.Cursors()) != 0 {
		t.Errorf("Cursors() = %d, want 0", len(out.Cursors()))
	}
	if out.CursorFrontBuffer() != nil || out.CursorSwapchain() != nil {
		t.Error("cursor buffers should be released")
	}
	if p.buf != nil {
		t.Error("plane should be cleared")
	}
	if got := out.alloc.Live(); got != 0 {
		t.Errorf("live buffers = %d, want 0", got)
	}
	if got := out.renderer.LiveTextures(); got != 0 {
		t.Errorf("live textures = %d, want 0", got)
	}
	// Only the software cursor damages its area.
	if got := out.takeDamage(); len(got) != 1 {
		t.Errorf("damage = %v, want only the software cursor", got)
	}

	out.Destroy()
}

func TestCursorsNewestFirst(t *testing.T) {
	out := newTestOutput(t, &noPlane{}, 10, 10)
	a := out.CreateCursor()
	b := out.CreateCursor()
	c := out.CreateCursor()

	if got, want := out.Cursors(), []*Cursor{c, b, a}; !slices.Equal(got, want) {
		t.Errorf("Cursors() = %v, want %v", got, want)
	}
	b.Destroy()
	if got, want := out.Cursors(), []*Cursor{c, a}; !slices.Equal(got, want) {
		t.Errorf("Cursors() after Destroy = %v, want %v", got, want)
	}
}
