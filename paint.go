package skia

import (
	"runtime"
	"github.com/gogpu/skia/internal/native"
)

// Paint holds the style used by draw calls: color, stroke settings, blend
// mode, shader and mask filter.
//
// Setters return the receiver so calls can be chained. The first failure
// sticks: later setters are skipped and Err reports it. Draw calls given a
// paint in that state return the same error.
//
// Example:
//
//	p, err := skia.NewPaint()
//	if err != nil {
//	    return err
//	}
//	defer p.Release()
//	p.SetColor(skia.Red).SetStyle(skia.StyleStroke).SetStrokeWidth(4)
type Paint struct {
	*resource
	err error
}

// NewPaint creates an antialiased paint with default settings.
func NewPaint() (*Paint, error) {
	eng, err := currentEngine()
	if err != nil {
		return nil, err
	}
	p, err := wrapPaint(eng, eng.lib.PaintNew())
	if err != nil {
		return nil, err
	}
	return p.SetAntialias(true), nil
}

// NewFillPaint creates an antialiased fill paint of the given color.
func NewFillPaint(c Color) (*Paint, error) {
	p, err := NewPaint()
	if err != nil {
		return nil, err
	}
	return p.SetColor(c), nil
}

// NewStrokePaint creates an antialiased stroke paint.
func NewStrokePaint(c Color, width float64) (*Paint, error) {
	p, err := NewFillPaint(c)
	if err != nil {
		return nil, err
	}
	return p.SetStyle(StyleStroke).SetStrokeWidth(width), nil
}

func wrapPaint(eng *engineState, h native.Handle) (*Paint, error) {
	r, err := newResource(eng, h, "paint", eng.lib.PaintDelete)
	if err != nil {
		return nil, err
	}
	p := &Paint{resource: r}
	track(p, r)
	return p, nil
}

// Err returns the first error hit by a setter.
func (p *Paint) Err() error {
	return p.err
}

func (p *Paint) apply(fn func(lib *native.Lib, h native.Handle)) *Paint {
	if p.err != nil {
		return p
	}
	defer runtime.KeepAlive(p)
	h, lib, err := p.get()
	if err != nil {
		p.err = err
		return p
	}
	fn(lib, h)
	return p
}

// handle returns the handle for a draw call. The caller keeps p alive
// until the engine is done with the handle.
func (p *Paint) handle() (native.Handle, error) {
	if p.err != nil {
		return 0, p.err
	}
	h, _, err := p.get()
	return h, err
}

// Clone returns an independent copy.
func (p *Paint) Clone() (*Paint, error) {
	defer runtime.KeepAlive(p)
	h, lib, err := p.get()
	if err != nil {
		return nil, err
	}
	return wrapPaint(p.eng, lib.PaintClone(h))
}

// Reset restores every setting to its default.
func (p *Paint) Reset() *Paint {
	return p.apply(func(lib *native.Lib, h native.Handle) { lib.PaintReset(h) })
}

// SetAntialias enables or disables edge antialiasing.
func (p *Paint) SetAntialias(aa bool) *Paint {
	return p.apply(func(lib *native.Lib, h native.Handle) { lib.PaintSetAntialias(h, aa) })
}

// SetColor sets the paint color. Packed literals work too:
// p.SetColor(0xFF00FF00).
func (p *Paint) SetColor(c Color) *Paint {
	return p.apply(func(lib *native.Lib, h native.Handle) { lib.PaintSetColor(h, native.Color(c)) })
}

// SetStyle sets fill, stroke or both.
func (p *Paint) SetStyle(s PaintStyle) *Paint {
	return p.apply(func(lib *native.Lib, h native.Handle) { lib.PaintSetStyle(h, native.PaintStyle(s)) })
}

// SetStrokeWidth sets the stroke width. Zero draws hairlines.
func (p *Paint) SetStrokeWidth(w float64) *Paint {
	return p.apply(func(lib *native.Lib, h native.Handle) { lib.PaintSetStrokeWidth(h, float32(w)) })
}

// SetStrokeMiter sets the miter limit.
func (p *Paint) SetStrokeMiter(m float64) *Paint {
	return p.apply(func(lib *native.Lib, h native.Handle) { lib.PaintSetStrokeMiter(h, float32(m)) })
}

// SetStrokeCap sets the shape of stroke ends.
func (p *Paint) SetStrokeCap(c StrokeCap) *Paint {
	return p.apply(func(lib *native.Lib, h native.Handle) { lib.PaintSetStrokeCap(h, native.StrokeCap(c)) })
}

// SetStrokeJoin sets the shape of stroke corners.
func (p *Paint) SetStrokeJoin(j StrokeJoin) *Paint {
	return p.apply(func(lib *native.Lib, h native.Handle) { lib.PaintSetStrokeJoin(h, native.StrokeJoin(j)) })
}

// SetBlendMode sets the compositing operator.
func (p *Paint) SetBlendMode(m BlendMode) *Paint {
	return p.apply(func(lib *native.Lib, h native.Handle) { lib.PaintSetBlendMode(h, native.BlendMode(m)) })
}

// SetShader installs s, or removes the shader when s is nil. The paint
// takes its own reference, so s may be released afterwards.
func (p *Paint) SetShader(s *Shader) *Paint {
	defer runtime.KeepAlive(s)
	var sh native.Handle
	if s != nil {
		var err error
		if sh, _, err = s.get(); err != nil && p.err == nil {
			p.err = err
		}
	}
	return p.apply(func(lib *native.Lib, h native.Handle) { lib.PaintSetShader(h, sh) })
}

// SetBlur installs a blur mask filter. A sigma of zero or less removes it.
func (p *Paint) SetBlur(style BlurStyle, sigma float64) *Paint {
	return p.apply(func(lib *native.Lib, h native.Handle) {
		if sigma <= 0 {
			lib.PaintSetMaskFilter(h, 0)
			return
		}
		f := lib.MaskFilterNewBlur(native.BlurStyle(style), float32(sigma))
		if f == 0 {
			p.err = ErrNullHandle
			return
		}
		lib.PaintSetMaskFilter(h, f)
		lib.MaskFilterUnref(f)
	})
}

// Antialias reports whether edge antialiasing is on.
func (p *Paint) Antialias() (bool, error) {
	defer runtime.KeepAlive(p)
	h, lib, err := p.get()
	if err != nil {
		return false, err
	}
	return lib.PaintIsAntialias(h), nil
}

// Color returns the paint color.
func (p *Paint) Color() (Color, error) {
	defer runtime.KeepAlive(p)
	h, lib, err := p.get()
	if err != nil {
		return 0, err
	}
	return Color(lib.PaintGetColor(h)), nil
}

// Style returns the paint style.
func (p *Paint) Style() (PaintStyle, error) {
	defer runtime.KeepAlive(p)
	h, lib, err := p.get()
	if err != nil {
		return 0, err
	}
	return PaintStyle(lib.PaintGetStyle(h)), nil
}

// StrokeWidth returns the stroke width.
func (p *Paint) StrokeWidth() (float64, error) {
	defer runtime.KeepAlive(p)
	h, lib, err := p.get()
	if err != nil {
		return 0, err
	}
	return float64(lib.PaintGetStrokeWidth(h)), nil
}

// StrokeMiter returns the miter limit.
func (p *Paint) StrokeMiter() (float64, error) {
	defer runtime.KeepAlive(p)
	h, lib, err := p.get()
	if err != nil {
		return 0, err
	}
	return float64(lib.PaintGetStrokeMiter(h)), nil
}

// StrokeCap returns the stroke cap.
func (p *Paint) StrokeCap() (StrokeCap, error) {
	defer runtime.KeepAlive(p)
	h, lib, err := p.get()
	if err != nil {
		return 0, err
	}
	return StrokeCap(lib.PaintGetStrokeCap(h)), nil
}

// StrokeJoin returns the stroke join.
func (p *Paint) StrokeJoin() (StrokeJoin, error) {
	defer runtime.KeepAlive(p)
	h, lib, err := p.get()
	if err != nil {
		return 0, err
	}
	return StrokeJoin(lib.PaintGetStrokeJoin(h)), nil
}

// BlendMode returns the compositing operator.
func (p *Paint) BlendMode() (BlendMode, error) {
	defer runtime.KeepAlive(p)
	h, lib, err := p.get()
	if err != nil {
		return 0, err
	}
	return BlendMode(lib.PaintGetBlendMode(h)), nil
}

// Shader returns the installed shader, or nil when there is none.
// The caller owns the returned wrapper.
func (p *Paint) Shader() (*Shader, error) {
	defer runtime.KeepAlive(p)
	h, lib, err := p.get()
	if err != nil {
		return nil, err
	}
	sh := lib.PaintGetShader(h)
	if sh == 0 {
		return nil, nil
	}
	return wrapShader(p.eng, sh)
}
