package hwcursor

import (
	"image/color"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/hwcursor/backend"
	"github.com/gogpu/hwcursor/buffer"
	"github.com/gogpu/hwcursor/geom"
	"github.com/gogpu/hwcursor/region"
	"github.com/gogpu/hwcursor/render"
)

var (
	red  = color.RGBA{R: 255, A: 255}
	blue = color.RGBA{B: 255, A: 255}
)

// noPlane is a display backend without a cursor plane.
type noPlane struct {
	caps buffer.Caps
}

func (b *noPlane) BufferCaps() buffer.Caps {
	if b.caps == 0 {
		return buffer.CapDataPtr
	}
	return b.caps
}

// plane records cursor plane calls. It locks the presented buffer like a
// real display would.
type plane struct {
	noPlane

	reject     bool
	moveResult bool

	buf        *buffer.Buffer
	hotX, hotY int
	x, y       int

	setCalls  int
	moveCalls int
}

func newPlane() *plane {
	return &plane{moveResult: true}
}

func (p *plane) SetCursor(buf *buffer.Buffer, hotspotX, hotspotY int) bool {
	p.setCalls++
	if p.reject {
		return false
	}
	p.buf.Unlock()
	p.buf = buf.Lock()
	p.hotX, p.hotY = hotspotX, hotspotY
	return true
}

func (p *plane) MoveCursor(x, y int) bool {
	p.moveCalls++
	p.x, p.y = x, y
	return p.moveResult
}

// sizedPlane limits the cursor plane size.
type sizedPlane struct {
	*plane
	maxW, maxH int
}

func (p *sizedPlane) CursorSize() (int, int) { return p.maxW, p.maxH }

// formatPlane restricts cursor plane formats; nil formats fail the query.
type formatPlane struct {
	*plane
	formats *buffer.FormatSet
}

func (p *formatPlane) CursorFormats(buffer.Caps) *buffer.FormatSet { return p.formats }

// fakeTexture counts Destroy calls.
type fakeTexture struct {
	w, h      int
	destroyed int
}

func (t *fakeTexture) Width() int  { return t.w }
func (t *fakeTexture) Height() int { return t.h }
func (t *fakeTexture) Destroy()    { t.destroyed++ }

// failingRenderer fails Begin.
type failingRenderer struct {
	*render.SoftwareRenderer
}

func (failingRenderer) Begin(*buffer.Buffer) error { return render.ErrUnsupportedFormat }

type testOutput struct {
	*Output
	alloc    *buffer.MemAllocator
	renderer *render.SoftwareRenderer
	damage   []geom.Box
}

// newTestOutput creates an output with a memory allocator and a software
// renderer, recording damage boxes.
func newTestOutput(t *testing.T, b backend.Backend, width, height int, opts ...OutputOption) *testOutput {
	t.Helper()
	to := &testOutput{
		alloc:    buffer.NewMemAllocator(),
		renderer: render.NewSoftwareRenderer(),
	}
	opts = append([]OutputOption{WithRender(to.alloc, to.renderer)}, opts...)
	out, err := NewOutput("TEST-1", width, height, b, opts...)
	if err != nil {
		t.Fatalf("NewOutput() error = %v", err)
	}
	to.Output = out
	out.OnDamage(func(ev DamageEvent) {
		if ev.Output != out {
			t.Errorf("DamageEvent.Output = %p, want %p", ev.Output, out)
		}
		to.damage = append(to.damage, ev.Damage.Extents())
	})
	return to
}

func (to *testOutput) takeDamage() []geom.Box {
	d := to.damage
	to.damage = nil
	return d
}

// argb returns width x height pixels of c in ARGB8888 memory order.
func argb(width, height int, c color.RGBA) []byte {
	pix := make([]byte, 0, width*height*4)
	for range width * height {
		pix = append(pix, c.B, c.G, c.R, c.A)
	}
	return pix
}

// argbPixels packs a row-major list of colors in ARGB8888 memory order.
func argbPixels(colors ...color.RGBA) []byte {
	pix := make([]byte, 0, len(colors)*4)
	for _, c := range colors {
		pix = append(pix, c.B, c.G, c.R, c.A)
	}
	return pix
}

// newARGBBuffer wraps pixels in a read-only ARGB buffer.
func newARGBBuffer(t *testing.T, width, height int, pix []byte) *buffer.Buffer {
	t.Helper()
	buf, err := buffer.NewReadOnly(gputypes.TextureFormatBGRA8Unorm, width*4, width, height, pix)
	if err != nil {
		t.Fatalf("NewReadOnly() error = %v", err)
	}
	return buf
}

// newFrame allocates a primary frame buffer for the output's mode.
func (to *testOutput) newFrame(t *testing.T) *buffer.Buffer {
	t.Helper()
	w, h := to.Mode()
	buf, err := to.alloc.CreateBuffer(w, h, buffer.Format{Code: buffer.FormatARGB8888})
	if err != nil {
		t.Fatalf("CreateBuffer() error = %v", err)
	}
	return buf
}

// drawSoftware renders software cursors over damage into a fresh frame.
func (to *testOutput) drawSoftware(t *testing.T, damage *region.Region) *buffer.Buffer {
	t.Helper()
	frame := to.newFrame(t)
	if err := to.renderer.Begin(frame); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	err := to.RenderSoftwareCursors(damage)
	to.renderer.End()
	if err != nil {
		t.Fatalf("RenderSoftwareCursors() error = %v", err)
	}
	return frame
}

func pixelAt(t *testing.T, buf *buffer.Buffer, x, y int) color.RGBA {
	t.Helper()
	img, err := render.ImageFromBuffer(buf)
	if err != nil {
		t.Fatalf("ImageFromBuffer() error = %v", err)
	}
	return img.RGBAAt(x, y)
}
