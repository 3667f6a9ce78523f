package skia

import (
	"runtime"
	"github.com/gogpu/skia/internal/native"
)

// AddPathMode selects how AddPath joins the added contours.
type AddPathMode int32

const (
	// AddPathAppend starts the added path as new contours.
	AddPathAppend AddPathMode = iota
	// AddPathExtend connects the first added point to the last point of
	// the current contour with a line.
	AddPathExtend
)

// Path is a mutable sequence of contours built with chained calls.
//
// Builder methods return the receiver. The first failure sticks and is
// reported by Err; canvas calls given such a path return the same error.
//
// Example:
//
//	p, err := skia.NewPath()
//	if err != nil {
//	    return err
//	}
//	defer p.Release()
//	p.MoveTo(10, 10).LineTo(90, 10).LineTo(50, 80).Close()
type Path struct {
	*resource
	err error
}

// NewPath creates an empty path.
func NewPath() (*Path, error) {
	eng, err := currentEngine()
	if err != nil {
		return nil, err
	}
	return wrapPath(eng, eng.lib.PathNew())
}

func wrapPath(eng *engineState, h native.Handle) (*Path, error) {
	r, err := newResource(eng, h, "path", eng.lib.PathDelete)
	if err != nil {
		return nil, err
	}
	p := &Path{resource: r}
	track(p, r)
	return p, nil
}

// Err returns the first error hit by a builder call.
func (p *Path) Err() error {
	return p.err
}

func (p *Path) apply(fn func(lib *native.Lib, h native.Handle)) *Path {
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

func (p *Path) handle() (native.Handle, error) {
	if p.err != nil {
		return 0, p.err
	}
	h, _, err := p.get()
	return h, err
}

// Clone returns an independent copy.
func (p *Path) Clone() (*Path, error) {
	defer runtime.KeepAlive(p)
	h, lib, err := p.get()
	if err != nil {
		return nil, err
	}
	return wrapPath(p.eng, lib.PathClone(h))
}

// Reset removes every contour.
func (p *Path) Reset() *Path {
	return p.apply(func(lib *native.Lib, h native.Handle) { lib.PathReset(h) })
}

// MoveTo starts a new contour at (x, y).
func (p *Path) MoveTo(x, y float64) *Path {
	return p.apply(func(lib *native.Lib, h native.Handle) { lib.PathMoveTo(h, float32(x), float32(y)) })
}

// LineTo adds a line from the current point to (x, y).
func (p *Path) LineTo(x, y float64) *Path {
	return p.apply(func(lib *native.Lib, h native.Handle) { lib.PathLineTo(h, float32(x), float32(y)) })
}

// QuadTo adds a quadratic Bezier with control point (cx, cy).
func (p *Path) QuadTo(cx, cy, x, y float64) *Path {
	return p.apply(func(lib *native.Lib, h native.Handle) {
		lib.PathQuadTo(h, float32(cx), float32(cy), float32(x), float32(y))
	})
}

// ConicTo adds a conic section with control point (cx, cy) and weight w.
func (p *Path) ConicTo(cx, cy, x, y, w float64) *Path {
	return p.apply(func(lib *native.Lib, h native.Handle) {
		lib.PathConicTo(h, float32(cx), float32(cy), float32(x), float32(y), float32(w))
	})
}

// CubicTo adds a cubic Bezier with control points (c1x, c1y) and (c2x, c2y).
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) *Path {
	return p.apply(func(lib *native.Lib, h native.Handle) {
		lib.PathCubicTo(h, float32(c1x), float32(c1y), float32(c2x), float32(c2y), float32(x), float32(y))
	})
}

// ArcTo adds an SVG-style elliptical arc to (x, y). largeArc picks the
// longer of the two candidate arcs; sweep picks the direction of travel.
func (p *Path) ArcTo(rx, ry, xAxisRotate float64, largeArc bool, sweep PathDirection, x, y float64) *Path {
	var large int32
	if largeArc {
		large = 1
	}
	return p.apply(func(lib *native.Lib, h native.Handle) {
		lib.PathArcTo(h, float32(rx), float32(ry), float32(xAxisRotate), large, native.PathDirection(sweep), float32(x), float32(y))
	})
}

// ArcToOval adds an arc of the ellipse inscribed in oval. Angles are in
// degrees. With forceMoveTo the arc starts a new contour.
func (p *Path) ArcToOval(oval Rect, startAngle, sweepAngle float64, forceMoveTo bool) *Path {
	return p.apply(func(lib *native.Lib, h native.Handle) {
		r := oval.toNative()
		lib.PathArcToWithOval(h, &r, float32(startAngle), float32(sweepAngle), forceMoveTo)
	})
}

// Close closes the current contour.
func (p *Path) Close() *Path {
	return p.apply(func(lib *native.Lib, h native.Handle) { lib.PathClose(h) })
}

// AddRect adds a closed rectangle contour.
func (p *Path) AddRect(r Rect, dir PathDirection) *Path {
	return p.apply(func(lib *native.Lib, h native.Handle) {
		nr := r.toNative()
		lib.PathAddRect(h, &nr, native.PathDirection(dir))
	})
}

// AddOval adds a closed ellipse inscribed in r.
func (p *Path) AddOval(r Rect, dir PathDirection) *Path {
	return p.apply(func(lib *native.Lib, h native.Handle) {
		nr := r.toNative()
		lib.PathAddOval(h, &nr, native.PathDirection(dir))
	})
}

// AddCircle adds a closed circle.
func (p *Path) AddCircle(cx, cy, radius float64, dir PathDirection) *Path {
	return p.apply(func(lib *native.Lib, h native.Handle) {
		lib.PathAddCircle(h, float32(cx), float32(cy), float32(radius), native.PathDirection(dir))
	})
}

// AddArc adds an open arc of the ellipse inscribed in oval as a new contour.
func (p *Path) AddArc(oval Rect, startAngle, sweepAngle float64) *Path {
	return p.apply(func(lib *native.Lib, h native.Handle) {
		nr := oval.toNative()
		lib.PathAddArc(h, &nr, float32(startAngle), float32(sweepAngle))
	})
}

// AddPath adds the contours of other.
func (p *Path) AddPath(other *Path, mode AddPathMode) *Path {
	defer runtime.KeepAlive(other)
	oh := p.other(other)
	return p.apply(func(lib *native.Lib, h native.Handle) { lib.PathAddPath(h, oh, int32(mode)) })
}

// AddPathOffset adds the contours of other moved by (dx, dy).
func (p *Path) AddPathOffset(other *Path, dx, dy float64, mode AddPathMode) *Path {
	defer runtime.KeepAlive(other)
	oh := p.other(other)
	return p.apply(func(lib *native.Lib, h native.Handle) {
		lib.PathAddPathOffset(h, oh, float32(dx), float32(dy), int32(mode))
	})
}

// AddPathMatrix adds the contours of other transformed by m.
func (p *Path) AddPathMatrix(other *Path, m Matrix, mode AddPathMode) *Path {
	defer runtime.KeepAlive(other)
	oh := p.other(other)
	return p.apply(func(lib *native.Lib, h native.Handle) {
		nm := m.toNative()
		lib.PathAddPathMatrix(h, oh, &nm, int32(mode))
	})
}

// other resolves an argument path, recording its error on p.
func (p *Path) other(other *Path) native.Handle {
	if p.err != nil {
		return 0
	}
	if other == nil {
		p.err = ErrNullHandle
		return 0
	}
	oh, err := other.handle()
	if err != nil {
		p.err = err
	}
	return oh
}

// SetFillType sets the rule deciding which points are inside.
func (p *Path) SetFillType(ft FillType) *Path {
	return p.apply(func(lib *native.Lib, h native.Handle) { lib.PathSetFillType(h, native.FillType(ft)) })
}

// Transform applies m to every point in place.
func (p *Path) Transform(m Matrix) *Path {
	return p.apply(func(lib *native.Lib, h native.Handle) {
		nm := m.toNative()
		lib.PathTransform(h, &nm)
	})
}

// FillType returns the fill rule.
func (p *Path) FillType() (FillType, error) {
	defer runtime.KeepAlive(p)
	h, lib, err := p.get()
	if err != nil {
		return 0, err
	}
	return FillType(lib.PathGetFillType(h)), nil
}

// Bounds returns the bounding box of all points, control points included.
func (p *Path) Bounds() (Rect, error) {
	defer runtime.KeepAlive(p)
	h, lib, err := p.get()
	if err != nil {
		return Rect{}, err
	}
	var r native.Rect
	lib.PathGetBounds(h, &r)
	return rectFromNative(r), nil
}

// Contains reports whether (x, y) is inside the filled path.
func (p *Path) Contains(x, y float64) (bool, error) {
	defer runtime.KeepAlive(p)
	h, lib, err := p.get()
	if err != nil {
		return false, err
	}
	return lib.PathContains(h, float32(x), float32(y)), nil
}

// CountPoints returns the number of points, control points included.
func (p *Path) CountPoints() (int, error) {
	defer runtime.KeepAlive(p)
	h, lib, err := p.get()
	if err != nil {
		return 0, err
	}
	return int(lib.PathCountPoints(h)), nil
}

// CountVerbs returns the number of verbs.
func (p *Path) CountVerbs() (int, error) {
	defer runtime.KeepAlive(p)
	h, lib, err := p.get()
	if err != nil {
		return 0, err
	}
	return int(lib.PathCountVerbs(h)), nil
}

// IsEmpty reports whether the path has no verbs.
func (p *Path) IsEmpty() (bool, error) {
	n, err := p.CountVerbs()
	return n == 0, err
}
