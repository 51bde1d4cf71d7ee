package state

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// Color is a 24-bit RGB color as chosen by the user.
type Color struct {
	R, G, B uint8
}

var ErrInvalidColor = errors.New("invalid color")

// Named colors used by presets and defaults.
var (
	Black    = Color{0x00, 0x00, 0x00}
	White    = Color{0xFF, 0xFF, 0xFF}
	Red      = Color{0xFF, 0x00, 0x00}
	DarkRed  = Color{0x8B, 0x00, 0x00}
	Yellow   = Color{0xFF, 0xFF, 0x00}
	Green    = Color{0x00, 0xFF, 0x00}
	Cyan     = Color{0x00, 0xFF, 0xFF}
	Blue     = Color{0x00, 0x00, 0xFF}
	Magenta  = Color{0xFF, 0x00, 0xFF}
	Orange   = Color{0xFF, 0x80, 0x00}
	Lavender = Color{0x8B, 0x5C, 0xF6}
)

// Palette is the fixed swatch row offered by the color pickers.
var Palette = [...]Color{Black, White, Red, Green, Blue, Yellow, Magenta, Cyan, Orange, Lavender}

// ParseColor accepts "#rrggbb", "#rgb" and the same forms without '#'.
func ParseColor(raw string) (Color, error) {
	s := strings.TrimPrefix(strings.TrimSpace(raw), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, raw)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, raw)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// MustParseColor is ParseColor for literals known to be valid.
func MustParseColor(raw string) Color {
	c, err := ParseColor(raw)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats the color as lowercase "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c Color) String() string { return c.Hex() }

// RGBA converts to an opaque image/color value.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}
}

// ColorFrom converts any color.Color, dropping alpha.
func ColorFrom(c color.Color) Color {
	if c == nil {
		return Black
	}
	r, g, b, _ := c.RGBA()
	return Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}

// FromHSV converts hue (degrees), saturation and value in [0,1] to a Color.
func FromHSV(h, s, v float64) Color {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return Color{R: to8(r + m), G: to8(g + m), B: to8(b + m)}
}

func to8(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
