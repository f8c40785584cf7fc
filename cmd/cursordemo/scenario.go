package main

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/gogpu/hwcursor/backend/headless"
	"github.com/gogpu/hwcursor/geom"
)

// scenario describes an output, a cursor shape and what happens to the
// cursor before the frame is captured.
type scenario struct {
	Output outputConfig `toml:"output"`
	Cursor cursorConfig `toml:"cursor"`
	Steps  []step       `toml:"step"`
}

type outputConfig struct {
	Name       string  `toml:"name"`
	Backend    string  `toml:"backend"`
	Width      int     `toml:"width"`
	Height     int     `toml:"height"`
	Scale      float32 `toml:"scale"`
	Transform  string  `toml:"transform"`
	CursorSize int     `toml:"cursor_size"`
	Background string  `toml:"background"`
}

type cursorConfig struct {
	Image          string  `toml:"image"`
	Width          int     `toml:"width"`
	Height         int     `toml:"height"`
	Color          string  `toml:"color"`
	Hotspot        [2]int  `toml:"hotspot"`
	ShapeScale     float32 `toml:"shape_scale"`
	ShapeTransform string  `toml:"shape_transform"`
}

// step is one action. Move is in logical output coordinates; Lock true
// locks software cursors and false releases one lock.
type step struct {
	Move *[2]float64 `toml:"move"`
	Lock *bool       `toml:"lock"`
}

func defaultScenario() scenario {
	return scenario{
		Output: outputConfig{
			Name:       "HEADLESS-1",
			Backend:    headless.Name,
			Width:      320,
			Height:     240,
			Scale:      1,
			Transform:  geom.Normal.String(),
			Background: "#202020",
		},
		Cursor: cursorConfig{
			Width:          16,
			Height:         16,
			Color:          "#ffffff",
			ShapeScale:     1,
			ShapeTransform: geom.Normal.String(),
		},
	}
}

// loadScenario reads a TOML scenario over the defaults. Unknown keys are
// an error.
func loadScenario(path string) (*scenario, error) {
	s := defaultScenario()
	md, err := toml.DecodeFile(path, &s)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("read scenario: unknown keys %s", strings.Join(keys, ", "))
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *scenario) validate() error {
	if s.Output.Width <= 0 || s.Output.Height <= 0 {
		return fmt.Errorf("output: invalid mode %dx%d", s.Output.Width, s.Output.Height)
	}
	if s.Output.Scale <= 0 {
		return fmt.Errorf("output: invalid scale %v", s.Output.Scale)
	}
	if _, err := geom.ParseTransform(s.Output.Transform); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	if _, err := parseColor(s.Output.Background); err != nil {
		return fmt.Errorf("output: background: %w", err)
	}
	if s.Cursor.Image == "" {
		if s.Cursor.Width <= 0 || s.Cursor.Height <= 0 {
			return fmt.Errorf("cursor: invalid size %dx%d", s.Cursor.Width, s.Cursor.Height)
		}
		if _, err := parseColor(s.Cursor.Color); err != nil {
			return fmt.Errorf("cursor: color: %w", err)
		}
	}
	if s.Cursor.ShapeScale <= 0 {
		return fmt.Errorf("cursor: invalid shape scale %v", s.Cursor.ShapeScale)
	}
	if _, err := geom.ParseTransform(s.Cursor.ShapeTransform); err != nil {
		return fmt.Errorf("cursor: %w", err)
	}
	locks := 0
	for i, st := range s.Steps {
		if st.Move == nil && st.Lock == nil {
			return fmt.Errorf("step %d: nothing to do", i+1)
		}
		if st.Lock == nil {
			continue
		}
		if *st.Lock {
			locks++
		} else if locks == 0 {
			return fmt.Errorf("step %d: unlock without lock", i+1)
		} else {
			locks--
		}
	}
	return nil
}

var errBadColor = errors.New("expected #rrggbb or #rrggbbaa")

// parseColor parses a hex color with straight alpha and returns it
// premultiplied.
func parseColor(s string) (color.RGBA, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || (len(hex) != 6 && len(hex) != 8) {
		return color.RGBA{}, fmt.Errorf("%q: %w", s, errBadColor)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%q: %w", s, errBadColor)
	}
	c := color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}
	return color.RGBAModel.Convert(c).(color.RGBA), nil
}
