package softengine

import (
	"math"

	"golang.org/x/image/math/f32"

	"github.com/gogpu/skia/internal/native"
)

// Path verbs, in the engine's numbering.
const (
	verbMove uint8 = iota
	verbLine
	verbQuad
	verbConic
	verbCubic
	verbClose
)

// pointsPerVerb is the number of points each verb appends.
var pointsPerVerb = [...]int{verbMove: 1, verbLine: 1, verbQuad: 2, verbConic: 2, verbCubic: 3, verbClose: 0}

// pathData is a path in verb and point form. Fields are exported so that
// recordings can serialize it.
type pathData struct {
	Verbs   []uint8
	Points  []float32 // x, y pairs
	Weights []float32 // one per conic
	Fill    int32

	lastMove int // point index of the last move, -1 when none
}

func newPath() *pathData {
	return &pathData{lastMove: -1}
}

func (p *pathData) clone() *pathData {
	return &pathData{
		Verbs:    append([]uint8(nil), p.Verbs...),
		Points:   append([]float32(nil), p.Points...),
		Weights:  append([]float32(nil), p.Weights...),
		Fill:     p.Fill,
		lastMove: p.lastMove,
	}
}

func (p *pathData) reset() {
	*p = pathData{lastMove: -1}
}

func (p *pathData) point(i int) (float64, float64) {
	return float64(p.Points[2*i]), float64(p.Points[2*i+1])
}

func (p *pathData) numPoints() int { return len(p.Points) / 2 }

func (p *pathData) lastPoint() (float64, float64) {
	if n := p.numPoints(); n > 0 {
		return p.point(n - 1)
	}
	return 0, 0
}

func (p *pathData) push(verb uint8, pts ...float64) {
	p.Verbs = append(p.Verbs, verb)
	for _, v := range pts {
		p.Points = append(p.Points, float32(v))
	}
}

// injectMove starts a contour at the last move point when a segment
// follows a close or begins an empty path.
func (p *pathData) injectMove() {
	if len(p.Verbs) == 0 {
		p.moveTo(0, 0)
		return
	}
	if p.Verbs[len(p.Verbs)-1] == verbClose {
		x, y := 0.0, 0.0
		if p.lastMove >= 0 {
			x, y = p.point(p.lastMove)
		}
		p.moveTo(x, y)
	}
}

func (p *pathData) moveTo(x, y float64) {
	p.lastMove = p.numPoints()
	p.push(verbMove, x, y)
}

func (p *pathData) lineTo(x, y float64) {
	p.injectMove()
	p.push(verbLine, x, y)
}

func (p *pathData) quadTo(x1, y1, x2, y2 float64) {
	p.injectMove()
	p.push(verbQuad, x1, y1, x2, y2)
}

func (p *pathData) conicTo(x1, y1, x2, y2, w float64) {
	if w == 1 {
		p.quadTo(x1, y1, x2, y2)
		return
	}
	p.injectMove()
	p.push(verbConic, x1, y1, x2, y2)
	p.Weights = append(p.Weights, float32(w))
}

func (p *pathData) cubicTo(x1, y1, x2, y2, x3, y3 float64) {
	p.injectMove()
	p.push(verbCubic, x1, y1, x2, y2, x3, y3)
}

func (p *pathData) close() {
	if n := len(p.Verbs); n > 0 && p.Verbs[n-1] != verbClose {
		p.push(verbClose)
	}
}

func (p *pathData) addRect(r rect, ccw bool) {
	p.moveTo(r.l, r.t)
	if ccw {
		p.lineTo(r.l, r.b)
		p.lineTo(r.r, r.b)
		p.lineTo(r.r, r.t)
	} else {
		p.lineTo(r.r, r.t)
		p.lineTo(r.r, r.b)
		p.lineTo(r.l, r.b)
	}
	p.close()
}

// kappa places cubic control points for a quarter ellipse.
const kappa = 0.5522847498307936

func (p *pathData) addOval(r rect, ccw bool) {
	cx, cy := (r.l+r.r)/2, (r.t+r.b)/2
	rx, ry := (r.r-r.l)/2, (r.b-r.t)/2
	kx, ky := rx*kappa, ry*kappa
	p.moveTo(r.r, cy)
	if ccw {
		p.cubicTo(r.r, cy-ky, cx+kx, r.t, cx, r.t)
		p.cubicTo(cx-kx, r.t, r.l, cy-ky, r.l, cy)
		p.cubicTo(r.l, cy+ky, cx-kx, r.b, cx, r.b)
		p.cubicTo(cx+kx, r.b, r.r, cy+ky, r.r, cy)
	} else {
		p.cubicTo(r.r, cy+ky, cx+kx, r.b, cx, r.b)
		p.cubicTo(cx-kx, r.b, r.l, cy+ky, r.l, cy)
		p.cubicTo(r.l, cy-ky, cx-kx, r.t, cx, r.t)
		p.cubicTo(cx+kx, r.t, r.r, cy-ky, r.r, cy)
	}
	p.close()
}

func (p *pathData) addCircle(cx, cy, radius float64, ccw bool) {
	if radius <= 0 {
		return
	}
	p.addOval(rect{cx - radius, cy - radius, cx + radius, cy + radius}, ccw)
}

func (p *pathData) addRoundRect(r rect, rx, ry float64) {
	rx = math.Min(math.Max(rx, 0), (r.r-r.l)/2)
	ry = math.Min(math.Max(ry, 0), (r.b-r.t)/2)
	if rx == 0 || ry == 0 {
		p.addRect(r, false)
		return
	}
	kx, ky := rx*(1-kappa), ry*(1-kappa)
	p.moveTo(r.l+rx, r.t)
	p.lineTo(r.r-rx, r.t)
	p.cubicTo(r.r-kx, r.t, r.r, r.t+ky, r.r, r.t+ry)
	p.lineTo(r.r, r.b-ry)
	p.cubicTo(r.r, r.b-ky, r.r-kx, r.b, r.r-rx, r.b)
	p.lineTo(r.l+rx, r.b)
	p.cubicTo(r.l+kx, r.b, r.l, r.b-ky, r.l, r.b-ry)
	p.lineTo(r.l, r.t+ry)
	p.cubicTo(r.l, r.t+ky, r.l+kx, r.t, r.l+rx, r.t)
	p.close()
}

// arcToOval appends an arc of the ellipse inscribed in oval. Angles are in
// degrees, clockwise from the positive x axis.
func (p *pathData) arcToOval(oval rect, startDeg, sweepDeg float64, forceMove bool) {
	cx, cy := (oval.l+oval.r)/2, (oval.t+oval.b)/2
	rx, ry := (oval.r-oval.l)/2, (oval.b-oval.t)/2
	start := startDeg * math.Pi / 180
	sweep := sweepDeg * math.Pi / 180
	sx, sy := cx+rx*math.Cos(start), cy+ry*math.Sin(start)
	if forceMove || len(p.Verbs) == 0 || p.Verbs[len(p.Verbs)-1] == verbClose {
		p.moveTo(sx, sy)
	} else {
		p.lineTo(sx, sy)
	}
	p.ellipticArc(cx, cy, rx, ry, 0, start, sweep)
}

// ellipticArc appends cubic segments for an arc of the ellipse centered at
// (cx, cy) with radii rx, ry rotated by phi, from angle start through sweep.
// The current point must already be at the start of the arc.
func (p *pathData) ellipticArc(cx, cy, rx, ry, phi, start, sweep float64) {
	if sweep == 0 {
		return
	}
	n := int(math.Ceil(math.Abs(sweep) / (math.Pi / 2)))
	step := sweep / float64(n)
	k := 4.0 / 3.0 * math.Tan(step/4)
	sinPhi, cosPhi := math.Sincos(phi)
	at := func(x, y float64) (float64, float64) {
		return cx + x*cosPhi - y*sinPhi, cy + x*sinPhi + y*cosPhi
	}
	a := start
	for i := 0; i < n; i++ {
		b := a + step
		sa, ca := math.Sincos(a)
		sb, cb := math.Sincos(b)
		x1, y1 := at(rx*(ca-k*sa), ry*(sa+k*ca))
		x2, y2 := at(rx*(cb+k*sb), ry*(sb-k*cb))
		x3, y3 := at(rx*cb, ry*sb)
		p.cubicTo(x1, y1, x2, y2, x3, y3)
		a = b
	}
}

// svgArcTo appends an SVG elliptical arc from the current point to (x, y).
func (p *pathData) svgArcTo(rx, ry, rotDeg float64, largeArc, sweepCW bool, x, y float64) {
	p.injectMove()
	x0, y0 := p.lastPoint()
	if x0 == x && y0 == y {
		return
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx == 0 || ry == 0 {
		p.lineTo(x, y)
		return
	}
	phi := rotDeg * math.Pi / 180
	sinPhi, cosPhi := math.Sincos(phi)
	dx, dy := (x0-x)/2, (y0-y)/2
	x1 := cosPhi*dx + sinPhi*dy
	y1 := -sinPhi*dx + cosPhi*dy

	lambda := (x1*x1)/(rx*rx) + (y1*y1)/(ry*ry)
	if lambda > 1 {
		s := math.Sqrt(lambda)
		rx, ry = rx*s, ry*s
	}
	num := rx*rx*ry*ry - rx*rx*y1*y1 - ry*ry*x1*x1
	den := rx*rx*y1*y1 + ry*ry*x1*x1
	coef := 0.0
	if den != 0 && num > 0 {
		coef = math.Sqrt(num / den)
	}
	if largeArc == sweepCW {
		coef = -coef
	}
	cxp := coef * rx * y1 / ry
	cyp := -coef * ry * x1 / rx
	cx := cosPhi*cxp - sinPhi*cyp + (x0+x)/2
	cy := sinPhi*cxp + cosPhi*cyp + (y0+y)/2

	angle := func(ux, uy, vx, vy float64) float64 {
		return math.Atan2(ux*vy-uy*vx, ux*vx+uy*vy)
	}
	start := angle(1, 0, (x1-cxp)/rx, (y1-cyp)/ry)
	sweep := angle((x1-cxp)/rx, (y1-cyp)/ry, (-x1-cxp)/rx, (-y1-cyp)/ry)
	if !sweepCW && sweep > 0 {
		sweep -= 2 * math.Pi
	} else if sweepCW && sweep < 0 {
		sweep += 2 * math.Pi
	}
	p.ellipticArc(cx, cy, rx, ry, phi, start, sweep)
}

// addPath appends the contours of other mapped by m. In extend mode the
// first move of other becomes a line from the current point.
func (p *pathData) addPath(other *pathData, m mat3, extend bool) {
	src := other.clone()
	pi := 0
	wi := 0
	for vi, v := range src.Verbs {
		n := pointsPerVerb[v]
		pts := make([]float64, 0, 2*n)
		for k := 0; k < n; k++ {
			x, y := m.apply(src.point(pi + k))
			pts = append(pts, x, y)
		}
		pi += n
		switch v {
		case verbMove:
			if vi == 0 && extend && len(p.Verbs) > 0 && p.Verbs[len(p.Verbs)-1] != verbClose {
				p.lineTo(pts[0], pts[1])
			} else {
				p.moveTo(pts[0], pts[1])
			}
		case verbLine:
			p.lineTo(pts[0], pts[1])
		case verbQuad:
			p.quadTo(pts[0], pts[1], pts[2], pts[3])
		case verbConic:
			p.conicTo(pts[0], pts[1], pts[2], pts[3], float64(src.Weights[wi]))
			wi++
		case verbCubic:
			p.cubicTo(pts[0], pts[1], pts[2], pts[3], pts[4], pts[5])
		case verbClose:
			p.close()
		}
	}
}

func (p *pathData) transform(m mat3) {
	for i := 0; i < p.numPoints(); i++ {
		x, y := m.apply(p.point(i))
		p.Points[2*i], p.Points[2*i+1] = float32(x), float32(y)
	}
}

// bounds covers every point, control points included.
func (p *pathData) bounds() rect {
	if p.numPoints() == 0 {
		return rect{}
	}
	x, y := p.point(0)
	out := rect{x, y, x, y}
	for i := 1; i < p.numPoints(); i++ {
		x, y := p.point(i)
		out.l = math.Min(out.l, x)
		out.t = math.Min(out.t, y)
		out.r = math.Max(out.r, x)
		out.b = math.Max(out.b, y)
	}
	return out
}

func (p *pathData) evenOdd() bool {
	ft := native.FillType(p.Fill)
	return ft == native.FillTypeEvenOdd || ft == native.FillTypeInverseEvenOdd
}

func (p *pathData) inverse() bool {
	ft := native.FillType(p.Fill)
	return ft == native.FillTypeInverseWinding || ft == native.FillTypeInverseEvenOdd
}

// contour is one flattened subpath.
type contour struct {
	pts    polygon
	closed bool
}

// flatten converts curves to line segments whose deviation is below tol
// (in local units).
func (p *pathData) flatten(tol float64) []contour {
	var out []contour
	var cur contour
	flush := func() {
		if len(cur.pts) > 0 {
			out = append(out, cur)
		}
		cur = contour{}
	}
	add := func(x, y float64) {
		cur.pts = append(cur.pts, f32.Vec2{float32(x), float32(y)})
	}
	pi, wi := 0, 0
	var lx, ly float64
	for _, v := range p.Verbs {
		switch v {
		case verbMove:
			flush()
			lx, ly = p.point(pi)
			add(lx, ly)
		case verbLine:
			lx, ly = p.point(pi)
			add(lx, ly)
		case verbQuad, verbConic:
			x1, y1 := p.point(pi)
			x2, y2 := p.point(pi + 1)
			w := 1.0
			if v == verbConic {
				w = float64(p.Weights[wi])
				wi++
			}
			n := segments(tol, lx, ly, x1, y1, x2, y2)
			for i := 1; i <= n; i++ {
				t := float64(i) / float64(n)
				mt := 1 - t
				a, b, c := mt*mt, 2*w*t*mt, t*t
				d := a + b + c
				add((a*lx+b*x1+c*x2)/d, (a*ly+b*y1+c*y2)/d)
			}
			lx, ly = x2, y2
		case verbCubic:
			x1, y1 := p.point(pi)
			x2, y2 := p.point(pi + 1)
			x3, y3 := p.point(pi + 2)
			n := segments(tol, lx, ly, x1, y1, x2, y2, x3, y3)
			for i := 1; i <= n; i++ {
				t := float64(i) / float64(n)
				mt := 1 - t
				a, b, c, d := mt*mt*mt, 3*mt*mt*t, 3*mt*t*t, t*t*t
				add(a*lx+b*x1+c*x2+d*x3, a*ly+b*y1+c*y2+d*y3)
			}
			lx, ly = x3, y3
		case verbClose:
			cur.closed = true
			if len(cur.pts) > 0 {
				lx, ly = float64(cur.pts[0][0]), float64(cur.pts[0][1])
			}
			flush()
		}
		pi += pointsPerVerb[v]
	}
	flush()
	return out
}

// segments picks a subdivision count from the control polygon length.
func segments(tol float64, xy ...float64) int {
	var l float64
	for i := 2; i+1 < len(xy); i += 2 {
		l += math.Hypot(xy[i]-xy[i-2], xy[i+1]-xy[i-1])
	}
	n := int(math.Ceil(math.Sqrt(l / math.Max(tol, 1e-3))))
	return min(max(n, 2), 256)
}

// polygons returns the flattened contours, each implicitly closed.
func (p *pathData) polygons(tol float64) []polygon {
	cs := p.flatten(tol)
	out := make([]polygon, 0, len(cs))
	for _, c := range cs {
		if len(c.pts) >= 3 {
			out = append(out, c.pts)
		}
	}
	return out
}

// contains tests (x, y) against the filled path.
func (p *pathData) contains(x, y float64) bool {
	in := windingContains(p.polygons(0.1), x, y, p.evenOdd())
	return in != p.inverse()
}

func windingContains(polys []polygon, x, y float64, evenOdd bool) bool {
	wind := 0
	for _, poly := range polys {
		for i := range poly {
			j := (i + 1) % len(poly)
			x0, y0 := float64(poly[i][0]), float64(poly[i][1])
			x1, y1 := float64(poly[j][0]), float64(poly[j][1])
			if (y0 <= y) != (y1 <= y) {
				cx := x0 + (y-y0)*(x1-x0)/(y1-y0)
				if cx > x {
					if y1 > y0 {
						wind++
					} else {
						wind--
					}
				}
			}
		}
	}
	if evenOdd {
		return wind%2 != 0
	}
	return wind != 0
}

// valid reports whether the verbs and points agree.
func (p *pathData) valid() bool {
	n, conics := 0, 0
	for _, v := range p.Verbs {
		if int(v) >= len(pointsPerVerb) {
			return false
		}
		n += pointsPerVerb[v]
		if v == verbConic {
			conics++
		}
	}
	return 2*n == len(p.Points) && conics == len(p.Weights)
}

// fixup restores unexported state after decoding.
func (p *pathData) fixup() {
	p.lastMove = -1
	pi := 0
	for _, v := range p.Verbs {
		if v == verbMove {
			p.lastMove = pi
		}
		pi += pointsPerVerb[v]
	}
}
