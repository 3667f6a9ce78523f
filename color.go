package skia

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a packed 32-bit ARGB color: 0xAARRGGBB.
// Components are not premultiplied.
type Color uint32

// Common colors.
const (
	Transparent Color = 0x00000000
	Black       Color = 0xFF000000
	White       Color = 0xFFFFFFFF
	Red         Color = 0xFFFF0000
	Green       Color = 0xFF00FF00
	Blue        Color = 0xFF0000FF
	Yellow      Color = 0xFFFFFF00
	Cyan        Color = 0xFF00FFFF
	Magenta     Color = 0xFFFF00FF
	Gray        Color = 0xFF808080
	LightGray   Color = 0xFFC0C0C0
	DarkGray    Color = 0xFF404040
)

// ARGB packs four 8-bit components.
func ARGB(a, r, g, b uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// RGB packs an opaque color.
func RGB(r, g, b uint8) Color {
	return ARGB(0xFF, r, g, b)
}

// ParseHex parses "#RGB", "#ARGB", "#RRGGBB" or "#AARRGGBB".
// The leading '#' is optional. Colors without alpha are opaque.
func ParseHex(s string) (Color, error) {
	h := strings.TrimPrefix(s, "#")
	switch len(h) {
	case 3, 4:
		var b strings.Builder
		for _, r := range h {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		h = b.String()
	case 6, 8:
	default:
		return 0, fmt.Errorf("skia: invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("skia: invalid hex color %q: %w", s, err)
	}
	if len(h) == 6 {
		v |= 0xFF000000
	}
	return Color(v), nil
}

// MustParseHex is like ParseHex but panics on malformed input.
func MustParseHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// FromColor converts any color.Color to a packed Color.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return ARGB(n.A, n.R, n.G, n.B)
}

// ColorFromHSV creates an opaque color from hue [0, 360), saturation and
// value in [0, 1].
func ColorFromHSV(h, s, v float64) Color {
	r, g, b := colorful.Hsv(h, s, v).Clamped().RGB255()
	return RGB(r, g, b)
}

// Alpha returns the alpha component.
func (c Color) Alpha() uint8 { return uint8(c >> 24) }

// Red returns the red component.
func (c Color) Red() uint8 { return uint8(c >> 16) }

// Green returns the green component.
func (c Color) Green() uint8 { return uint8(c >> 8) }

// Blue returns the blue component.
func (c Color) Blue() uint8 { return uint8(c) }

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a uint8) Color {
	return Color(uint32(c)&0x00FFFFFF | uint32(a)<<24)
}

// RGBA implements color.Color. The returned values are alpha-premultiplied.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.Red(), G: c.Green(), B: c.Blue(), A: c.Alpha()}.RGBA()
}

// Lerp interpolates between c and other in RGB space. t is clamped to [0, 1].
func (c Color) Lerp(other Color, t float64) Color {
	t = min(max(t, 0), 1)
	a := colorful.Color{R: float64(c.Red()) / 255, G: float64(c.Green()) / 255, B: float64(c.Blue()) / 255}
	b := colorful.Color{R: float64(other.Red()) / 255, G: float64(other.Green()) / 255, B: float64(other.Blue()) / 255}
	r, g, bl := a.BlendRgb(b, t).Clamped().RGB255()
	alpha := float64(c.Alpha()) + (float64(other.Alpha())-float64(c.Alpha()))*t
	return ARGB(uint8(alpha+0.5), r, g, bl)
}

// Hex returns the color as "#AARRGGBB".
func (c Color) Hex() string {
	return fmt.Sprintf("#%08X", uint32(c))
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return c.Hex()
}
