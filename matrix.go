package skia

import (
	"math"

	"github.com/gogpu/skia/internal/native"
)

// Matrix is a 3x3 transformation matrix in row-major order:
//
//	| ScaleX  SkewX   TransX |
//	| SkewY   ScaleY  TransY |
//	| Persp0  Persp1  Persp2 |
//
// The affine part maps points as
//
//	x' = ScaleX*x + SkewX*y + TransX
//	y' = SkewY*x + ScaleY*y + TransY
//
// Matrix is a value type. Every operation returns a new matrix.
type Matrix struct {
	ScaleX, SkewX, TransX float64
	SkewY, ScaleY, TransY float64
	Persp0, Persp1, Persp2 float64
}

// Identity returns the identity transformation matrix.
func Identity() Matrix {
	return Matrix{
		ScaleX: 1,
		ScaleY: 1,
		Persp2: 1,
	}
}

// Translate creates a translation matrix.
func Translate(dx, dy float64) Matrix {
	return Matrix{
		ScaleX: 1, TransX: dx,
		ScaleY: 1, TransY: dy,
		Persp2: 1,
	}
}

// Scale creates a scaling matrix.
func Scale(sx, sy float64) Matrix {
	return Matrix{
		ScaleX: sx,
		ScaleY: sy,
		Persp2: 1,
	}
}

// Rotate creates a rotation matrix about the origin (angle in degrees).
func Rotate(degrees float64) Matrix {
	return RotateAbout(degrees, 0, 0)
}

// RotateAbout creates a rotation matrix (angle in degrees) that keeps the
// pivot (px, py) fixed.
func RotateAbout(degrees, px, py float64) Matrix {
	rad := degrees * math.Pi / 180
	c := math.Cos(rad)
	s := math.Sin(rad)
	m := Matrix{
		ScaleX: c, SkewX: -s,
		SkewY: s, ScaleY: c,
		Persp2: 1,
	}
	if px != 0 || py != 0 {
		m.TransX = px - px*c + py*s
		m.TransY = py - px*s - py*c
	}
	return m
}

// Skew creates a skew matrix.
func Skew(sx, sy float64) Matrix {
	return Matrix{
		ScaleX: 1, SkewX: sx,
		SkewY: sy, ScaleY: 1,
		Persp2: 1,
	}
}

// Multiply returns m * other. Applied to a point, other acts first.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		ScaleX: m.ScaleX*other.ScaleX + m.SkewX*other.SkewY,
		SkewX:  m.ScaleX*other.SkewX + m.SkewX*other.ScaleY,
		TransX: m.ScaleX*other.TransX + m.SkewX*other.TransY + m.TransX,
		SkewY:  m.SkewY*other.ScaleX + m.ScaleY*other.SkewY,
		ScaleY: m.SkewY*other.SkewX + m.ScaleY*other.ScaleY,
		TransY: m.SkewY*other.TransX + m.ScaleY*other.TransY + m.TransY,
		Persp0: m.Persp0*other.ScaleX + m.Persp1*other.SkewY + m.Persp2*other.Persp0,
		Persp1: m.Persp0*other.SkewX + m.Persp1*other.ScaleY + m.Persp2*other.Persp1,
		Persp2: m.Persp0*other.TransX + m.Persp1*other.TransY + m.Persp2*other.Persp2,
	}
}

// TransformPoint applies the affine part of the matrix to a point.
// Perspective terms are ignored; see TransformPointPerspective.
func (m Matrix) TransformPoint(p Point) Point {
	return Point{
		X: m.ScaleX*p.X + m.SkewX*p.Y + m.TransX,
		Y: m.SkewY*p.X + m.ScaleY*p.Y + m.TransY,
	}
}

// TransformPointPerspective applies the full matrix including the
// homogeneous divide. Points mapped to infinity come back unchanged.
func (m Matrix) TransformPointPerspective(p Point) Point {
	w := m.Persp0*p.X + m.Persp1*p.Y + m.Persp2
	if w == 0 {
		return p
	}
	q := m.TransformPoint(p)
	return Point{X: q.X / w, Y: q.Y / w}
}

// TransformVector applies the transformation to a vector (no translation).
func (m Matrix) TransformVector(p Point) Point {
	return Point{
		X: m.ScaleX*p.X + m.SkewX*p.Y,
		Y: m.SkewY*p.X + m.ScaleY*p.Y,
	}
}

// Invert returns the inverse matrix and whether it exists.
func (m Matrix) Invert() (Matrix, bool) {
	a := m.Array()
	c00 := a[1][1]*a[2][2] - a[1][2]*a[2][1]
	c01 := a[1][2]*a[2][0] - a[1][0]*a[2][2]
	c02 := a[1][0]*a[2][1] - a[1][1]*a[2][0]
	det := a[0][0]*c00 + a[0][1]*c01 + a[0][2]*c02
	if math.Abs(det) < 1e-12 {
		return Matrix{}, false
	}
	inv := 1 / det
	return Matrix{
		ScaleX: c00 * inv,
		SkewX:  (a[0][2]*a[2][1] - a[0][1]*a[2][2]) * inv,
		TransX: (a[0][1]*a[1][2] - a[0][2]*a[1][1]) * inv,
		SkewY:  c01 * inv,
		ScaleY: (a[0][0]*a[2][2] - a[0][2]*a[2][0]) * inv,
		TransY: (a[0][2]*a[1][0] - a[0][0]*a[1][2]) * inv,
		Persp0: c02 * inv,
		Persp1: (a[0][1]*a[2][0] - a[0][0]*a[2][1]) * inv,
		Persp2: (a[0][0]*a[1][1] - a[0][1]*a[1][0]) * inv,
	}, true
}

// IsIdentity returns true if the matrix is exactly the identity matrix.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// IsTranslation returns true if the matrix is only a translation.
func (m Matrix) IsTranslation() bool {
	return m.ScaleX == 1 && m.SkewX == 0 && m.SkewY == 0 && m.ScaleY == 1 &&
		m.Persp0 == 0 && m.Persp1 == 0 && m.Persp2 == 1
}

// HasPerspective reports whether the bottom row differs from (0, 0, 1).
func (m Matrix) HasPerspective() bool {
	return m.Persp0 != 0 || m.Persp1 != 0 || m.Persp2 != 1
}

// ApproxEqual reports whether every entry of m and o differs by at most eps.
func (m Matrix) ApproxEqual(o Matrix, eps float64) bool {
	a, b := m.Array(), o.Array()
	for i := range a {
		for j := range a[i] {
			if math.Abs(a[i][j]-b[i][j]) > eps {
				return false
			}
		}
	}
	return true
}

// Array returns the matrix as rows.
func (m Matrix) Array() [3][3]float64 {
	return [3][3]float64{
		{m.ScaleX, m.SkewX, m.TransX},
		{m.SkewY, m.ScaleY, m.TransY},
		{m.Persp0, m.Persp1, m.Persp2},
	}
}

func (m Matrix) toNative() native.Matrix {
	return native.Matrix{
		float32(m.ScaleX), float32(m.SkewX), float32(m.TransX),
		float32(m.SkewY), float32(m.ScaleY), float32(m.TransY),
		float32(m.Persp0), float32(m.Persp1), float32(m.Persp2),
	}
}

func matrixFromNative(n native.Matrix) Matrix {
	return Matrix{
		ScaleX: float64(n[0]), SkewX: float64(n[1]), TransX: float64(n[2]),
		SkewY: float64(n[3]), ScaleY: float64(n[4]), TransY: float64(n[5]),
		Persp0: float64(n[6]), Persp1: float64(n[7]), Persp2: float64(n[8]),
	}
}

// to44 embeds the matrix in the engine's 4x4 form. The z row and column
// are the identity.
func (m Matrix) to44() native.Matrix44 {
	return native.Matrix44{
		float32(m.ScaleX), float32(m.SkewX), 0, float32(m.TransX),
		float32(m.SkewY), float32(m.ScaleY), 0, float32(m.TransY),
		0, 0, 1, 0,
		float32(m.Persp0), float32(m.Persp1), 0, float32(m.Persp2),
	}
}

// matrixFrom44 extracts the 3x3 matrix from the positions to44 writes.
func matrixFrom44(n native.Matrix44) Matrix {
	return Matrix{
		ScaleX: float64(n[0]), SkewX: float64(n[1]), TransX: float64(n[3]),
		SkewY: float64(n[4]), ScaleY: float64(n[5]), TransY: float64(n[7]),
		Persp0: float64(n[12]), Persp1: float64(n[13]), Persp2: float64(n[15]),
	}
}
