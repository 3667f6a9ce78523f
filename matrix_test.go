package skia

import (
	"math"
	"testing"
)

const matrixEps = 1e-4

func TestRotateInverseIsIdentity(t *testing.T) {
	for _, deg := range []float64{0, 30, 90, 180, 359} {
		got := Rotate(deg).Multiply(Rotate(-deg))
		if !got.ApproxEqual(Identity(), matrixEps) {
			t.Errorf("Rotate(%v)*Rotate(%v) = %+v, want identity", deg, -deg, got)
		}
	}
}

func TestMatrixTransformPoint(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		in   Point
		want Point
	}{
		{"identity", Identity(), Pt(3, 4), Pt(3, 4)},
		{"translate", Translate(10, -5), Pt(1, 1), Pt(11, -4)},
		{"scale", Scale(2, 3), Pt(1, 1), Pt(2, 3)},
		{"rotate 90", Rotate(90), Pt(1, 0), Pt(0, 1)},
		{"rotate about pivot", RotateAbout(180, 5, 5), Pt(0, 0), Pt(10, 10)},
		{"skew", Skew(1, 0), Pt(0, 2), Pt(2, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.TransformPoint(tt.in)
			if !approxEqual(got.X, tt.want.X, 1e-9) || !approxEqual(got.Y, tt.want.Y, 1e-9) {
				t.Errorf("TransformPoint(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMultiplyOrder(t *testing.T) {
	// Scale acts first, then the translation.
	m := Translate(10, 0).Multiply(Scale(2, 2))
	got := m.TransformPoint(Pt(1, 1))
	if got != Pt(12, 2) {
		t.Errorf("got %v, want (12, 2)", got)
	}
}

func TestTransformPointIgnoresPerspective(t *testing.T) {
	m := Identity()
	m.Persp0 = 0.5
	p := Pt(2, 4)
	if got := m.TransformPoint(p); got != p {
		t.Errorf("TransformPoint = %v, want %v", got, p)
	}
	got := m.TransformPointPerspective(p)
	if !approxEqual(got.X, 1, 1e-12) || !approxEqual(got.Y, 2, 1e-12) {
		t.Errorf("TransformPointPerspective = %v, want (1, 2)", got)
	}
}

func TestMatrixInvert(t *testing.T) {
	m := Translate(3, 4).Multiply(Rotate(30)).Multiply(Scale(2, 0.5))
	inv, ok := m.Invert()
	if !ok {
		t.Fatal("Invert() reported singular")
	}
	if got := m.Multiply(inv); !got.ApproxEqual(Identity(), 1e-9) {
		t.Errorf("m*inv = %+v", got)
	}
	if _, ok := Scale(0, 1).Invert(); ok {
		t.Error("Scale(0, 1) should be singular")
	}
}

func TestMatrixPredicates(t *testing.T) {
	if !Identity().IsIdentity() || !Translate(1, 2).IsTranslation() || Scale(2, 1).IsTranslation() {
		t.Error("identity/translation predicates wrong")
	}
	m := Identity()
	if m.HasPerspective() {
		t.Error("identity has no perspective")
	}
	m.Persp1 = 0.01
	if !m.HasPerspective() {
		t.Error("HasPerspective() = false")
	}
}

func TestMatrix44RoundTrip(t *testing.T) {
	m := Matrix{
		ScaleX: 1.5, SkewX: 0.25, TransX: 10,
		SkewY: -0.5, ScaleY: 2, TransY: -7,
		Persp0: 0.001, Persp1: -0.002, Persp2: 1,
	}
	got := matrixFrom44(m.to44())
	if !got.ApproxEqual(m, 1e-6) {
		t.Errorf("round trip = %+v, want %+v", got, m)
	}
	if a := Rotate(45).Array(); !approxEqual(a[1][0], math.Sqrt2/2, 1e-12) {
		t.Errorf("Array()[1][0] = %v", a[1][0])
	}
}
