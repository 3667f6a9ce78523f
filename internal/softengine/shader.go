package softengine

import (
	"math"

	"github.com/gogpu/skia/internal/native"
)

// Gradient kinds.
const (
	gradientLinear int32 = iota
	gradientRadial
	gradientSweep
)

// shaderData is an immutable gradient description. Fields are exported so
// that recordings can serialize it.
type shaderData struct {
	Kind   int32
	Points []float64 // linear: x0 y0 x1 y1; radial: cx cy r; sweep: cx cy
	Colors []uint32
	Pos    []float64 // nil for even spacing
	Tile   int32
	Local  [9]float64
	Start  float64
	End    float64
}

func newShader(kind int32, pts []float64, colors *native.Color, pos *float32, count int32, tile native.TileMode, local *native.Matrix) *shaderData {
	if count <= 0 || colors == nil {
		return nil
	}
	sh := &shaderData{
		Kind:   kind,
		Points: pts,
		Colors: make([]uint32, count),
		Tile:   int32(tile),
		Local:  matFromNative(local),
	}
	copy(sh.Colors, sliceOf(colors, int(count)))
	if pos != nil {
		sh.Pos = make([]float64, count)
		for i, v := range sliceOf(pos, int(count)) {
			sh.Pos[i] = float64(v)
		}
	}
	return sh
}

// shade returns the unpremultiplied color at local point (x, y).
func (sh *shaderData) shade(x, y float64) (r, g, b, a float64) {
	var t float64
	p := sh.Points
	switch sh.Kind {
	case gradientLinear:
		dx, dy := p[2]-p[0], p[3]-p[1]
		l2 := dx*dx + dy*dy
		if l2 > 0 {
			t = ((x-p[0])*dx + (y-p[1])*dy) / l2
		}
	case gradientRadial:
		if p[2] > 0 {
			t = math.Hypot(x-p[0], y-p[1]) / p[2]
		}
	case gradientSweep:
		deg := math.Atan2(y-p[1], x-p[0]) * 180 / math.Pi
		if deg < 0 {
			deg += 360
		}
		if span := sh.End - sh.Start; span != 0 {
			t = (deg - sh.Start) / span
		}
	}
	switch native.TileMode(sh.Tile) {
	case native.TileModeRepeat:
		t -= math.Floor(t)
	case native.TileModeMirror:
		t = math.Mod(math.Abs(t), 2)
		if t > 1 {
			t = 2 - t
		}
	case native.TileModeDecal:
		if t < 0 || t > 1 {
			return 0, 0, 0, 0
		}
	default:
		t = math.Min(math.Max(t, 0), 1)
	}
	return sh.at(t)
}

func (sh *shaderData) stop(i int) float64 {
	if sh.Pos != nil {
		return sh.Pos[i]
	}
	if len(sh.Colors) == 1 {
		return 0
	}
	return float64(i) / float64(len(sh.Colors)-1)
}

func (sh *shaderData) at(t float64) (r, g, b, a float64) {
	n := len(sh.Colors)
	if n == 1 || t <= sh.stop(0) {
		return unpackColor(sh.Colors[0])
	}
	for i := 1; i < n; i++ {
		s1 := sh.stop(i)
		if t > s1 {
			continue
		}
		s0 := sh.stop(i - 1)
		k := 0.0
		if s1 > s0 {
			k = (t - s0) / (s1 - s0)
		}
		r0, g0, b0, a0 := unpackColor(sh.Colors[i-1])
		r1, g1, b1, a1 := unpackColor(sh.Colors[i])
		return r0 + (r1-r0)*k, g0 + (g1-g0)*k, b0 + (b1-b0)*k, a0 + (a1-a0)*k
	}
	return unpackColor(sh.Colors[n-1])
}

// firstColor is the color used where gradients cannot be expressed.
func (sh *shaderData) firstColor() uint32 {
	return sh.Colors[0]
}

// unpackColor splits an ARGB color into unpremultiplied [0, 1] components.
func unpackColor(c uint32) (r, g, b, a float64) {
	return float64(c>>16&0xff) / 255, float64(c>>8&0xff) / 255, float64(c&0xff) / 255, float64(c>>24) / 255
}

// source produces premultiplied device colors for a draw.
type source func(x, y int) px

// solidSource is a constant premultiplied color.
func solidSource(c uint32) source {
	r, g, b, a := unpackColor(c)
	p := px{float32(r * a), float32(g * a), float32(b * a), float32(a)}
	return func(int, int) px { return p }
}

// shaderSource evaluates sh at pixel centers mapped back through ctm and the
// shader's local matrix. The paint alpha modulates the result.
func shaderSource(sh *shaderData, ctm mat3, paintAlpha float64) source {
	inv, ok := ctm.mul(mat3(sh.Local)).invert()
	if !ok {
		return func(int, int) px { return px{} }
	}
	return func(x, y int) px {
		lx, ly := inv.apply(float64(x)+0.5, float64(y)+0.5)
		r, g, b, a := sh.shade(lx, ly)
		a *= paintAlpha
		return px{float32(r * a), float32(g * a), float32(b * a), float32(a)}
	}
}
