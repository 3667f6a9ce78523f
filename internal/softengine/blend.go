package softengine

import (
	"math"

	"github.com/gogpu/skia/internal/native"
)

// px is a premultiplied color with components in [0, 1].
type px struct{ r, g, b, a float32 }

// blendFunc composites a premultiplied source over a premultiplied
// destination.
type blendFunc func(s, d px) px

// blendFuncs is indexed by native.BlendMode.
var blendFuncs = [...]blendFunc{
	native.BlendModeClear:      func(s, d px) px { return px{} },
	native.BlendModeSrc:        func(s, d px) px { return s },
	native.BlendModeDst:        func(s, d px) px { return d },
	native.BlendModeSrcOver:    srcOver,
	native.BlendModeDstOver:    func(s, d px) px { return srcOver(d, s) },
	native.BlendModeSrcIn:      func(s, d px) px { return s.scale(d.a) },
	native.BlendModeDstIn:      func(s, d px) px { return d.scale(s.a) },
	native.BlendModeSrcOut:     func(s, d px) px { return s.scale(1 - d.a) },
	native.BlendModeDstOut:     func(s, d px) px { return d.scale(1 - s.a) },
	native.BlendModeSrcATop:    srcATop,
	native.BlendModeDstATop:    func(s, d px) px { return srcATop(d, s) },
	native.BlendModeXor:        func(s, d px) px { return s.scale(1 - d.a).add(d.scale(1 - s.a)) },
	native.BlendModePlus:       func(s, d px) px { return s.add(d).clamp() },
	native.BlendModeModulate:   func(s, d px) px { return px{s.r * d.r, s.g * d.g, s.b * d.b, s.a * d.a} },
	native.BlendModeScreen:     func(s, d px) px { return s.add(d).sub(px{s.r * d.r, s.g * d.g, s.b * d.b, s.a * d.a}) },
	native.BlendModeOverlay:    separable(func(s, d float32) float32 { return hardLight(d, s) }),
	native.BlendModeDarken:     separable(func(s, d float32) float32 { return min(s, d) }),
	native.BlendModeLighten:    separable(func(s, d float32) float32 { return max(s, d) }),
	native.BlendModeColorDodge: separable(colorDodge),
	native.BlendModeColorBurn:  separable(colorBurn),
	native.BlendModeHardLight:  separable(hardLight),
	native.BlendModeSoftLight:  separable(softLight),
	native.BlendModeDifference: separable(func(s, d float32) float32 { return float32(math.Abs(float64(s - d))) }),
	native.BlendModeExclusion:  separable(func(s, d float32) float32 { return s + d - 2*s*d }),
	native.BlendModeMultiply:   separable(func(s, d float32) float32 { return s * d }),
	native.BlendModeHue: nonSeparable(func(s, d [3]float32) [3]float32 {
		return setLum(setSat(s, sat(d)), lum(d))
	}),
	native.BlendModeSaturation: nonSeparable(func(s, d [3]float32) [3]float32 {
		return setLum(setSat(d, sat(s)), lum(d))
	}),
	native.BlendModeColor: nonSeparable(func(s, d [3]float32) [3]float32 {
		return setLum(s, lum(d))
	}),
	native.BlendModeLuminosity: nonSeparable(func(s, d [3]float32) [3]float32 {
		return setLum(d, lum(s))
	}),
}

func blendFor(mode native.BlendMode) blendFunc {
	if mode < 0 || int(mode) >= len(blendFuncs) {
		return srcOver
	}
	return blendFuncs[mode]
}

func (p px) scale(k float32) px { return px{p.r * k, p.g * k, p.b * k, p.a * k} }
func (p px) add(o px) px        { return px{p.r + o.r, p.g + o.g, p.b + o.b, p.a + o.a} }
func (p px) sub(o px) px        { return px{p.r - o.r, p.g - o.g, p.b - o.b, p.a - o.a} }

func (p px) clamp() px {
	c := func(v float32) float32 { return min(max(v, 0), 1) }
	return px{c(p.r), c(p.g), c(p.b), c(p.a)}
}

// lerp moves p toward o by t.
func (p px) lerp(o px, t float32) px {
	return px{p.r + (o.r-p.r)*t, p.g + (o.g-p.g)*t, p.b + (o.b-p.b)*t, p.a + (o.a-p.a)*t}
}

func srcOver(s, d px) px { return s.add(d.scale(1 - s.a)) }

func srcATop(s, d px) px {
	out := s.scale(d.a).add(d.scale(1 - s.a))
	out.a = d.a
	return out
}

// separable applies a per-channel blend B to unpremultiplied channels:
// result = (1-Sa)*D + (1-Da)*S + Sa*Da*B(s, d).
func separable(b func(s, d float32) float32) blendFunc {
	return func(s, d px) px {
		if s.a == 0 {
			return d
		}
		if d.a == 0 {
			return s
		}
		ch := func(sc, dc float32) float32 {
			return (1-s.a)*dc + (1-d.a)*sc + s.a*d.a*b(sc/s.a, dc/d.a)
		}
		return px{ch(s.r, d.r), ch(s.g, d.g), ch(s.b, d.b), s.a + d.a*(1-s.a)}.clamp()
	}
}

func nonSeparable(b func(s, d [3]float32) [3]float32) blendFunc {
	return func(s, d px) px {
		if s.a == 0 {
			return d
		}
		if d.a == 0 {
			return s
		}
		res := b([3]float32{s.r / s.a, s.g / s.a, s.b / s.a}, [3]float32{d.r / d.a, d.g / d.a, d.b / d.a})
		k := s.a * d.a
		return px{
			(1-s.a)*d.r + (1-d.a)*s.r + k*res[0],
			(1-s.a)*d.g + (1-d.a)*s.g + k*res[1],
			(1-s.a)*d.b + (1-d.a)*s.b + k*res[2],
			s.a + d.a*(1-s.a),
		}.clamp()
	}
}

func hardLight(s, d float32) float32 {
	if s <= 0.5 {
		return 2 * s * d
	}
	return 1 - 2*(1-s)*(1-d)
}

func colorDodge(s, d float32) float32 {
	switch {
	case d == 0:
		return 0
	case s >= 1:
		return 1
	}
	return min(1, d/(1-s))
}

func colorBurn(s, d float32) float32 {
	switch {
	case d >= 1:
		return 1
	case s <= 0:
		return 0
	}
	return 1 - min(1, (1-d)/s)
}

func softLight(s, d float32) float32 {
	if s <= 0.5 {
		return d - (1-2*s)*d*(1-d)
	}
	var dd float32
	if d <= 0.25 {
		dd = ((16*d-12)*d + 4) * d
	} else {
		dd = float32(math.Sqrt(float64(d)))
	}
	return d + (2*s-1)*(dd-d)
}

func lum(c [3]float32) float32 { return 0.3*c[0] + 0.59*c[1] + 0.11*c[2] }

func sat(c [3]float32) float32 {
	return max(c[0], c[1], c[2]) - min(c[0], c[1], c[2])
}

func clipColor(c [3]float32) [3]float32 {
	l := lum(c)
	n := min(c[0], c[1], c[2])
	x := max(c[0], c[1], c[2])
	for i := range c {
		if n < 0 {
			c[i] = l + (c[i]-l)*l/(l-n)
		}
		if x > 1 {
			c[i] = l + (c[i]-l)*(1-l)/(x-l)
		}
	}
	return c
}

func setLum(c [3]float32, l float32) [3]float32 {
	d := l - lum(c)
	return clipColor([3]float32{c[0] + d, c[1] + d, c[2] + d})
}

func setSat(c [3]float32, s float32) [3]float32 {
	lo, mid, hi := 0, 1, 2
	if c[lo] > c[mid] {
		lo, mid = mid, lo
	}
	if c[mid] > c[hi] {
		mid, hi = hi, mid
	}
	if c[lo] > c[mid] {
		lo, mid = mid, lo
	}
	var out [3]float32
	if c[hi] > c[lo] {
		out[mid] = (c[mid] - c[lo]) * s / (c[hi] - c[lo])
		out[hi] = s
	}
	return out
}
