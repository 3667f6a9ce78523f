package softengine

import (
	"math"

	"golang.org/x/image/math/f32"

	"github.com/gogpu/skia/internal/native"
)

// strokeStyle describes how contours are outlined.
type strokeStyle struct {
	halfWidth float64
	miter     float64
	cap       native.StrokeCap
	join      native.StrokeJoin
}

// strokePolygons outlines flattened contours. The result is a set of
// clockwise pieces (segment bodies, joins and caps) whose nonzero union is
// the stroke.
func strokePolygons(cs []contour, st strokeStyle) []polygon {
	if st.halfWidth <= 0 {
		return nil
	}
	var out []polygon
	emit := func(p polygon) {
		if len(p) >= 3 {
			out = append(out, orient(p))
		}
	}
	for _, c := range cs {
		pts := dedupe(c.pts, c.closed)
		if len(pts) == 1 {
			// Zero-length contours only draw their caps.
			if !c.closed {
				st.dotCap(pts[0], emit)
			}
			continue
		}
		n := len(pts)
		segs := n - 1
		if c.closed {
			segs = n
		}
		for i := 0; i < segs; i++ {
			a, b := pts[i], pts[(i+1)%n]
			nx, ny := st.normal(a, b)
			emit(polygon{
				vec(float64(a[0])+nx, float64(a[1])+ny),
				vec(float64(b[0])+nx, float64(b[1])+ny),
				vec(float64(b[0])-nx, float64(b[1])-ny),
				vec(float64(a[0])-nx, float64(a[1])-ny),
			})
		}
		for i := 0; i < n; i++ {
			if !c.closed && (i == 0 || i == n-1) {
				continue
			}
			prev, cur, next := pts[(i+n-1)%n], pts[i], pts[(i+1)%n]
			st.joinAt(prev, cur, next, emit)
		}
		if !c.closed {
			st.capAt(pts[1], pts[0], emit)
			st.capAt(pts[n-2], pts[n-1], emit)
		}
	}
	return out
}

func vec(x, y float64) f32.Vec2 { return f32.Vec2{float32(x), float32(y)} }

func dedupe(pts polygon, closed bool) polygon {
	out := make(polygon, 0, len(pts))
	for _, p := range pts {
		if len(out) > 0 && out[len(out)-1] == p {
			continue
		}
		out = append(out, p)
	}
	if closed && len(out) > 1 && out[0] == out[len(out)-1] {
		out = out[:len(out)-1]
	}
	return out
}

// normal returns the half-width offset perpendicular to a->b.
func (st strokeStyle) normal(a, b f32.Vec2) (float64, float64) {
	dx, dy := float64(b[0]-a[0]), float64(b[1]-a[1])
	l := math.Hypot(dx, dy)
	if l == 0 {
		return 0, 0
	}
	return -dy / l * st.halfWidth, dx / l * st.halfWidth
}

func (st strokeStyle) joinAt(prev, cur, next f32.Vec2, emit func(polygon)) {
	d0x, d0y := unit(float64(cur[0]-prev[0]), float64(cur[1]-prev[1]))
	d1x, d1y := unit(float64(next[0]-cur[0]), float64(next[1]-cur[1]))
	cross := d0x*d1y - d0y*d1x
	dot := d0x*d1x + d0y*d1y
	if math.Abs(cross) < 1e-9 && dot > 0 {
		return
	}
	// The outer side of the turn is opposite the turn direction.
	s := -1.0
	if cross < 0 {
		s = 1
	}
	hw := st.halfWidth
	cx, cy := float64(cur[0]), float64(cur[1])
	n0x, n0y := -d0y*hw*s, d0x*hw*s
	n1x, n1y := -d1y*hw*s, d1x*hw*s
	switch st.join {
	case native.StrokeJoinRound:
		emit(circle(cx, cy, hw))
	case native.StrokeJoinMiter:
		cosHalf := math.Sqrt(math.Max((1+dot)/2, 0))
		if cosHalf > 0 && 1/cosHalf <= st.miter {
			mx, my := unit(n0x+n1x, n0y+n1y)
			l := hw / cosHalf
			emit(polygon{vec(cx, cy), vec(cx+n0x, cy+n0y), vec(cx+mx*l, cy+my*l), vec(cx+n1x, cy+n1y)})
			return
		}
		fallthrough
	default:
		emit(polygon{vec(cx, cy), vec(cx+n0x, cy+n0y), vec(cx+n1x, cy+n1y)})
	}
}

// capAt caps the end point of the segment from -> end.
func (st strokeStyle) capAt(from, end f32.Vec2, emit func(polygon)) {
	hw := st.halfWidth
	ex, ey := float64(end[0]), float64(end[1])
	switch st.cap {
	case native.StrokeCapRound:
		emit(circle(ex, ey, hw))
	case native.StrokeCapSquare:
		dx, dy := unit(ex-float64(from[0]), ey-float64(from[1]))
		nx, ny := -dy*hw, dx*hw
		emit(polygon{
			vec(ex+nx, ey+ny),
			vec(ex+nx+dx*hw, ey+ny+dy*hw),
			vec(ex-nx+dx*hw, ey-ny+dy*hw),
			vec(ex-nx, ey-ny),
		})
	}
}

func (st strokeStyle) dotCap(p f32.Vec2, emit func(polygon)) {
	x, y, hw := float64(p[0]), float64(p[1]), st.halfWidth
	switch st.cap {
	case native.StrokeCapRound:
		emit(circle(x, y, hw))
	case native.StrokeCapSquare:
		emit(polygon{vec(x-hw, y-hw), vec(x+hw, y-hw), vec(x+hw, y+hw), vec(x-hw, y+hw)})
	}
}

func unit(x, y float64) (float64, float64) {
	l := math.Hypot(x, y)
	if l == 0 {
		return 0, 0
	}
	return x / l, y / l
}

func circle(cx, cy, r float64) polygon {
	n := min(max(int(math.Ceil(r*2)), 12), 96)
	out := make(polygon, n)
	for i := range out {
		s, c := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		out[i] = vec(cx+r*c, cy+r*s)
	}
	return out
}
