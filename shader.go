package skia

import (
	"fmt"

	"github.com/gogpu/skia/internal/native"
)

// Shader is a reference-counted source of colors for a paint, such as a
// gradient.
type Shader struct {
	*resource
}

func wrapShader(eng *engineState, h native.Handle) (*Shader, error) {
	r, err := newResource(eng, h, "shader", eng.lib.ShaderUnref)
	if err != nil {
		return nil, err
	}
	s := &Shader{r}
	track(s, r)
	return s, nil
}

// gradientStops is the marshaled form of a gradient's colors and offsets.
type gradientStops struct {
	colors    []native.Color
	positions []float32 // nil means evenly spaced
	opts      gradientOptions
}

// newGradientStops validates and flattens the stops. It runs before the
// engine is touched, so a bad spec never reaches it.
func newGradientStops(colors []Color, opts []GradientOption) (*gradientStops, error) {
	o := defaultGradientOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if len(colors) == 0 {
		return nil, fmt.Errorf("%w: no colors", ErrInvalidGradientSpec)
	}
	if len(o.positions) > 0 && len(o.positions) != len(colors) {
		return nil, fmt.Errorf("%w: %d colors, %d positions", ErrInvalidGradientSpec, len(colors), len(o.positions))
	}

	g := &gradientStops{colors: make([]native.Color, len(colors)), opts: o}
	for i, c := range colors {
		g.colors[i] = native.Color(c)
	}
	if len(o.positions) > 0 {
		g.positions = make([]float32, len(o.positions))
		for i, p := range o.positions {
			g.positions[i] = float32(p)
		}
	}
	return g, nil
}

func (g *gradientStops) colorPtr() *native.Color { return &g.colors[0] }

func (g *gradientStops) positionPtr() *float32 {
	if g.positions == nil {
		return nil
	}
	return &g.positions[0]
}

func (g *gradientStops) count() int32 { return int32(len(g.colors)) }

func (g *gradientStops) tile() native.TileMode { return native.TileMode(g.opts.tileMode) }

func (g *gradientStops) local() *native.Matrix {
	if g.opts.local == nil {
		return nil
	}
	m := g.opts.local.toNative()
	return &m
}

// NewLinearGradient creates a gradient along the line from start to end.
//
// Example:
//
//	sh, err := skia.NewLinearGradient(skia.Pt(0, 0), skia.Pt(200, 0),
//	    []skia.Color{skia.Red, skia.Blue},
//	    skia.WithPositions(0, 1))
func NewLinearGradient(start, end Point, colors []Color, opts ...GradientOption) (*Shader, error) {
	g, err := newGradientStops(colors, opts)
	if err != nil {
		return nil, err
	}
	eng, err := currentEngine()
	if err != nil {
		return nil, err
	}
	pts := [2]native.Point{start.toNative(), end.toNative()}
	h := eng.lib.ShaderNewLinearGradient(&pts[0], g.colorPtr(), g.positionPtr(), g.count(), g.tile(), g.local())
	return wrapShader(eng, h)
}

// NewRadialGradient creates a gradient radiating from center.
func NewRadialGradient(center Point, radius float64, colors []Color, opts ...GradientOption) (*Shader, error) {
	g, err := newGradientStops(colors, opts)
	if err != nil {
		return nil, err
	}
	eng, err := currentEngine()
	if err != nil {
		return nil, err
	}
	c := center.toNative()
	h := eng.lib.ShaderNewRadialGradient(&c, float32(radius), g.colorPtr(), g.positionPtr(), g.count(), g.tile(), g.local())
	return wrapShader(eng, h)
}

// NewSweepGradient creates a gradient sweeping clockwise around center.
func NewSweepGradient(center Point, colors []Color, opts ...GradientOption) (*Shader, error) {
	g, err := newGradientStops(colors, opts)
	if err != nil {
		return nil, err
	}
	eng, err := currentEngine()
	if err != nil {
		return nil, err
	}
	c := center.toNative()
	h := eng.lib.ShaderNewSweepGradient(&c, g.colorPtr(), g.positionPtr(), g.count(), g.tile(),
		float32(g.opts.startAngle), float32(g.opts.endAngle), g.local())
	return wrapShader(eng, h)
}
