package softengine

import (
	"math"

	"golang.org/x/image/math/f32"

	"github.com/gogpu/skia/internal/native"
)

// mat3 is a row-major 3x3 matrix in the engine's field order:
// scaleX, skewX, transX, skewY, scaleY, transY, persp0, persp1, persp2.
type mat3 [9]float64

func identity() mat3 {
	return mat3{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

func translate(dx, dy float64) mat3 {
	return mat3{1, 0, dx, 0, 1, dy, 0, 0, 1}
}

func scale(sx, sy float64) mat3 {
	return mat3{sx, 0, 0, 0, sy, 0, 0, 0, 1}
}

func rotate(rad float64) mat3 {
	s, c := math.Sincos(rad)
	return mat3{c, -s, 0, s, c, 0, 0, 0, 1}
}

func skew(sx, sy float64) mat3 {
	return mat3{1, sx, 0, sy, 1, 0, 0, 0, 1}
}

// mul returns a*b; b is applied first.
func (a mat3) mul(b mat3) mat3 {
	var r mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i*3+j] = a[i*3]*b[j] + a[i*3+1]*b[3+j] + a[i*3+2]*b[6+j]
		}
	}
	return r
}

// apply maps (x, y) including the homogeneous divide.
func (a mat3) apply(x, y float64) (float64, float64) {
	px := a[0]*x + a[1]*y + a[2]
	py := a[3]*x + a[4]*y + a[5]
	w := a[6]*x + a[7]*y + a[8]
	if w != 1 && w != 0 {
		return px / w, py / w
	}
	return px, py
}

func (a mat3) invert() (mat3, bool) {
	c00 := a[4]*a[8] - a[5]*a[7]
	c01 := a[5]*a[6] - a[3]*a[8]
	c02 := a[3]*a[7] - a[4]*a[6]
	det := a[0]*c00 + a[1]*c01 + a[2]*c02
	if math.Abs(det) < 1e-12 {
		return mat3{}, false
	}
	inv := 1 / det
	return mat3{
		c00 * inv, (a[2]*a[7] - a[1]*a[8]) * inv, (a[1]*a[5] - a[2]*a[4]) * inv,
		c01 * inv, (a[0]*a[8] - a[2]*a[6]) * inv, (a[2]*a[3] - a[0]*a[5]) * inv,
		c02 * inv, (a[1]*a[6] - a[0]*a[7]) * inv, (a[0]*a[4] - a[1]*a[3]) * inv,
	}, true
}

// rectStaysRect reports whether axis-aligned rectangles map to
// axis-aligned rectangles.
func (a mat3) rectStaysRect() bool {
	if a[6] != 0 || a[7] != 0 {
		return false
	}
	return (a[1] == 0 && a[3] == 0) || (a[0] == 0 && a[4] == 0)
}

// scaleFactor is the geometric mean scale of the affine part.
func (a mat3) scaleFactor() float64 {
	d := math.Abs(a[0]*a[4] - a[1]*a[3])
	if d == 0 {
		return 1
	}
	return math.Sqrt(d)
}

func matFromNative(n *native.Matrix) mat3 {
	if n == nil {
		return identity()
	}
	var m mat3
	for i, v := range n {
		m[i] = float64(v)
	}
	return m
}

func (a mat3) toNative() native.Matrix {
	var n native.Matrix
	for i, v := range a {
		n[i] = float32(v)
	}
	return n
}

// matFrom44 reads the 3x3 matrix embedded in a 4x4 one: the z row and
// column are dropped.
func matFrom44(n *native.Matrix44) mat3 {
	return mat3{
		float64(n[0]), float64(n[1]), float64(n[3]),
		float64(n[4]), float64(n[5]), float64(n[7]),
		float64(n[12]), float64(n[13]), float64(n[15]),
	}
}

func (a mat3) to44() native.Matrix44 {
	return native.Matrix44{
		float32(a[0]), float32(a[1]), 0, float32(a[2]),
		float32(a[3]), float32(a[4]), 0, float32(a[5]),
		0, 0, 1, 0,
		float32(a[6]), float32(a[7]), 0, float32(a[8]),
	}
}

// rect is an edge-defined rectangle in float64.
type rect struct {
	l, t, r, b float64
}

func rectFromNative(n *native.Rect) rect {
	if n == nil {
		return rect{}
	}
	return rect{float64(n.Left), float64(n.Top), float64(n.Right), float64(n.Bottom)}
}

func (r rect) toNative() native.Rect {
	return native.Rect{Left: float32(r.l), Top: float32(r.t), Right: float32(r.r), Bottom: float32(r.b)}
}

func (r rect) empty() bool {
	return !(r.l < r.r && r.t < r.b)
}

func (r rect) intersect(o rect) rect {
	out := rect{math.Max(r.l, o.l), math.Max(r.t, o.t), math.Min(r.r, o.r), math.Min(r.b, o.b)}
	if out.empty() {
		return rect{}
	}
	return out
}

func (r rect) union(o rect) rect {
	if r.empty() {
		return o
	}
	if o.empty() {
		return r
	}
	return rect{math.Min(r.l, o.l), math.Min(r.t, o.t), math.Max(r.r, o.r), math.Max(r.b, o.b)}
}

// mapRect returns the bounds of r mapped by a.
func (a mat3) mapRect(r rect) rect {
	xs := [4]float64{}
	ys := [4]float64{}
	xs[0], ys[0] = a.apply(r.l, r.t)
	xs[1], ys[1] = a.apply(r.r, r.t)
	xs[2], ys[2] = a.apply(r.r, r.b)
	xs[3], ys[3] = a.apply(r.l, r.b)
	out := rect{xs[0], ys[0], xs[0], ys[0]}
	for i := 1; i < 4; i++ {
		out.l = math.Min(out.l, xs[i])
		out.t = math.Min(out.t, ys[i])
		out.r = math.Max(out.r, xs[i])
		out.b = math.Max(out.b, ys[i])
	}
	return out
}

// polygon is a closed contour of device-space points.
type polygon []f32.Vec2

// mapPolygons maps local-space contours through m.
func mapPolygons(m mat3, polys []polygon) []polygon {
	out := make([]polygon, len(polys))
	for i, p := range polys {
		q := make(polygon, len(p))
		for j, v := range p {
			x, y := m.apply(float64(v[0]), float64(v[1]))
			q[j] = f32.Vec2{float32(x), float32(y)}
		}
		out[i] = q
	}
	return out
}

// signedArea is positive for clockwise contours in y-down space.
func signedArea(p polygon) float64 {
	var a float64
	for i := range p {
		j := (i + 1) % len(p)
		a += float64(p[i][0])*float64(p[j][1]) - float64(p[j][0])*float64(p[i][1])
	}
	return a / 2
}

// orient returns p wound clockwise (in y-down space).
func orient(p polygon) polygon {
	if signedArea(p) >= 0 {
		return p
	}
	q := make(polygon, len(p))
	for i, v := range p {
		q[len(p)-1-i] = v
	}
	return q
}

func polygonsBounds(polys []polygon) rect {
	var out rect
	first := true
	for _, p := range polys {
		for _, v := range p {
			x, y := float64(v[0]), float64(v[1])
			if first {
				out = rect{x, y, x, y}
				first = false
				continue
			}
			out.l = math.Min(out.l, x)
			out.t = math.Min(out.t, y)
			out.r = math.Max(out.r, x)
			out.b = math.Max(out.b, y)
		}
	}
	return out
}
