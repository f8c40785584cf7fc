package main

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/draw"

	"github.com/gogpu/hwcursor"
	"github.com/gogpu/hwcursor/backend"
	"github.com/gogpu/hwcursor/backend/headless"
	"github.com/gogpu/hwcursor/buffer"
	"github.com/gogpu/hwcursor/geom"
	"github.com/gogpu/hwcursor/region"
	"github.com/gogpu/hwcursor/render"
)

// result is what running a scenario produced.
type result struct {
	Frame    *image.RGBA
	Hardware bool
	Damage   *region.Region
}

// openDisplay opens the named backend. Headless displays get the
// scenario's plane size limit and transform.
func openDisplay(cfg outputConfig, transform geom.Transform) (backend.Backend, error) {
	b, err := backend.Open(cfg.Backend)
	if err != nil {
		return nil, fmt.Errorf("%w (available: %v)", err, backend.Available())
	}
	if d, ok := b.(*headless.Display); ok {
		opts := []headless.Option{headless.WithTransform(transform)}
		if cfg.CursorSize > 0 {
			opts = append(opts, headless.WithCursorSize(cfg.CursorSize, cfg.CursorSize))
		}
		d.Apply(opts...)
	}
	return b, nil
}

// run plays s and captures the final frame as the display would show it.
func run(s *scenario) (*result, error) {
	transform, _ := geom.ParseTransform(s.Output.Transform)
	display, err := openDisplay(s.Output, transform)
	if err != nil {
		return nil, err
	}
	if d, ok := display.(*headless.Display); ok {
		defer d.Close()
	}

	alloc := buffer.NewMemAllocator()
	renderer := render.NewSoftwareRenderer()
	out, err := hwcursor.NewOutput(s.Output.Name, s.Output.Width, s.Output.Height, display,
		hwcursor.WithScale(s.Output.Scale),
		hwcursor.WithTransform(transform),
		hwcursor.WithRender(alloc, renderer))
	if err != nil {
		return nil, err
	}
	defer out.Destroy()

	damage := hwcursor.NewDamageAccumulator(out)
	defer damage.Close()

	cursor := out.CreateCursor()
	if err := setShape(cursor, renderer, s.Cursor); err != nil {
		return nil, err
	}

	for _, st := range s.Steps {
		if st.Move != nil {
			if !cursor.Move(st.Move[0], st.Move[1]) {
				hwcursor.Logger().Warn("cursor plane move failed", "x", st.Move[0], "y", st.Move[1])
			}
		}
		if st.Lock != nil {
			out.LockSoftwareCursors(*st.Lock)
		}
	}

	frame, err := alloc.CreateBuffer(s.Output.Width, s.Output.Height,
		buffer.Format{Code: buffer.FormatARGB8888})
	if err != nil {
		return nil, fmt.Errorf("allocate frame: %w", err)
	}
	defer frame.Drop()

	bg, _ := parseColor(s.Output.Background)
	if err := renderer.Begin(frame); err != nil {
		return nil, fmt.Errorf("render frame: %w", err)
	}
	renderer.Clear(bg)
	err = out.RenderSoftwareCursors(nil)
	renderer.End()
	if err != nil {
		return nil, fmt.Errorf("render frame: %w", err)
	}

	res := &result{Hardware: cursor.IsHardware(), Damage: damage.Pending()}
	if d, ok := display.(*headless.Display); ok {
		res.Frame, err = d.Composite(frame)
	} else {
		res.Frame, err = render.ImageFromBuffer(frame)
	}
	if err != nil {
		return nil, fmt.Errorf("capture frame: %w", err)
	}
	return res, nil
}

// setShape sets the cursor image from a PNG file or a solid color.
func setShape(c *hwcursor.Cursor, r render.Renderer, cfg cursorConfig) error {
	var img *image.RGBA
	if cfg.Image != "" {
		var err error
		img, err = loadPNG(cfg.Image)
		if err != nil {
			return err
		}
	} else {
		col, _ := parseColor(cfg.Color)
		img = image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
		draw.Draw(img, img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
	}

	w, h := img.Rect.Dx(), img.Rect.Dy()
	buf, err := buffer.NewReadOnly(buffer.FormatARGB8888, w*4, w, h, toARGB(img))
	if err != nil {
		return fmt.Errorf("cursor image: %w", err)
	}
	defer buf.Drop()

	if cfg.ShapeScale == 1 && cfg.ShapeTransform == geom.Normal.String() {
		return c.SetBuffer(buf, cfg.Hotspot[0], cfg.Hotspot[1])
	}

	tex, err := r.TextureFromBuffer(buf)
	if err != nil {
		return fmt.Errorf("cursor texture: %w", err)
	}
	transform, _ := geom.ParseTransform(cfg.ShapeTransform)
	c.SetTexture(tex, hwcursor.Owned, cfg.ShapeScale, transform, cfg.Hotspot[0], cfg.Hotspot[1])
	return nil
}

func loadPNG(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cursor image: %w", err)
	}
	defer f.Close()

	src, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("cursor image %s: %w", path, err)
	}
	img := image.NewRGBA(image.Rect(0, 0, src.Bounds().Dx(), src.Bounds().Dy()))
	draw.Draw(img, img.Bounds(), src, src.Bounds().Min, draw.Src)
	return img, nil
}

// toARGB converts premultiplied RGBA to ARGB8888 memory order.
func toARGB(img *image.RGBA) []byte {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	pix := make([]byte, 0, w*h*4)
	for y := range h {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for i := 0; i < len(row); i += 4 {
			pix = append(pix, row[i+2], row[i+1], row[i], row[i+3])
		}
	}
	return pix
}

func writePNG(w io.Writer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	return enc.Encode(w, img)
}
