package skia

import (
	"math"

	"github.com/gogpu/skia/internal/native"
)

// Rect is an axis-aligned rectangle given by its edges.
// Degenerate rectangles (Left >= Right or Top >= Bottom) are kept as-is,
// never sorted; they report IsEmpty.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// RectFromXYWH creates a rectangle from its origin and size.
func RectFromXYWH(x, y, width, height float64) Rect {
	return Rect{Left: x, Top: y, Right: x + width, Bottom: y + height}
}

// RectFromWH creates a rectangle at the origin with the given size.
func RectFromWH(width, height float64) Rect {
	return Rect{Right: width, Bottom: height}
}

// Width returns Right - Left.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns Bottom - Top.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// CenterX returns the horizontal center.
func (r Rect) CenterX() float64 { return (r.Left + r.Right) / 2 }

// CenterY returns the vertical center.
func (r Rect) CenterY() float64 { return (r.Top + r.Bottom) / 2 }

// Center returns the center point.
func (r Rect) Center() Point { return Point{X: r.CenterX(), Y: r.CenterY()} }

// IsEmpty reports whether the rectangle encloses no area.
func (r Rect) IsEmpty() bool {
	return r.Left >= r.Right || r.Top >= r.Bottom
}

// Contains reports whether (x, y) lies inside the rectangle.
// The left and top edges are inside, the right and bottom edges are not.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.Left && x < r.Right && y >= r.Top && y < r.Bottom
}

// ContainsRect reports whether o lies entirely inside r.
func (r Rect) ContainsRect(o Rect) bool {
	return r.Left <= o.Left && r.Top <= o.Top && r.Right >= o.Right && r.Bottom >= o.Bottom
}

// Intersects reports whether r and o overlap with non-zero area.
func (r Rect) Intersects(o Rect) bool {
	return r.Left < o.Right && o.Left < r.Right && r.Top < o.Bottom && o.Top < r.Bottom
}

// Intersect returns the overlap of r and o. ok is false when they are disjoint.
func (r Rect) Intersect(o Rect) (out Rect, ok bool) {
	if !r.Intersects(o) {
		return Rect{}, false
	}
	return Rect{
		Left:   math.Max(r.Left, o.Left),
		Top:    math.Max(r.Top, o.Top),
		Right:  math.Min(r.Right, o.Right),
		Bottom: math.Min(r.Bottom, o.Bottom),
	}, true
}

// Union returns the smallest rectangle enclosing both r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		Left:   math.Min(r.Left, o.Left),
		Top:    math.Min(r.Top, o.Top),
		Right:  math.Max(r.Right, o.Right),
		Bottom: math.Max(r.Bottom, o.Bottom),
	}
}

// Offset returns r moved by (dx, dy).
func (r Rect) Offset(dx, dy float64) Rect {
	return Rect{Left: r.Left + dx, Top: r.Top + dy, Right: r.Right + dx, Bottom: r.Bottom + dy}
}

// Inset returns r shrunk by dx on the left and right and dy on the top and
// bottom. Negative values grow the rectangle.
func (r Rect) Inset(dx, dy float64) Rect {
	return Rect{Left: r.Left + dx, Top: r.Top + dy, Right: r.Right - dx, Bottom: r.Bottom - dy}
}

func (r Rect) toNative() native.Rect {
	return native.Rect{
		Left:   float32(r.Left),
		Top:    float32(r.Top),
		Right:  float32(r.Right),
		Bottom: float32(r.Bottom),
	}
}

// nativeRectPtr returns nil for a nil rect, which the engine reads as
// "no bounds".
func nativeRectPtr(r *Rect) *native.Rect {
	if r == nil {
		return nil
	}
	n := r.toNative()
	return &n
}

func rectFromNative(n native.Rect) Rect {
	return Rect{
		Left:   float64(n.Left),
		Top:    float64(n.Top),
		Right:  float64(n.Right),
		Bottom: float64(n.Bottom),
	}
}

// IRect is an integer rectangle.
type IRect struct {
	Left, Top, Right, Bottom int
}

// IRectFromXYWH creates an integer rectangle from its origin and size.
func IRectFromXYWH(x, y, width, height int) IRect {
	return IRect{Left: x, Top: y, Right: x + width, Bottom: y + height}
}

// Width returns Right - Left.
func (r IRect) Width() int { return r.Right - r.Left }

// Height returns Bottom - Top.
func (r IRect) Height() int { return r.Bottom - r.Top }

// IsEmpty reports whether the rectangle encloses no area.
func (r IRect) IsEmpty() bool {
	return r.Left >= r.Right || r.Top >= r.Bottom
}

// ToRect converts to a floating point Rect.
func (r IRect) ToRect() Rect {
	return Rect{
		Left:   float64(r.Left),
		Top:    float64(r.Top),
		Right:  float64(r.Right),
		Bottom: float64(r.Bottom),
	}
}
