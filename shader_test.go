package skia

import (
	"errors"
	"testing"

	"github.com/gogpu/skia/internal/softengine"
)

func TestGradientValidation(t *testing.T) {
	e := useFreshEngine(t)
	tests := []struct {
		name   string
		colors []Color
		opts   []GradientOption
	}{
		{"no colors", nil, nil},
		{"position count mismatch", []Color{Red, Green, Blue}, []GradientOption{WithPositions(0, 1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := e.Live(softengine.KindShader)
			_, err := NewLinearGradient(Pt(0, 0), Pt(10, 0), tt.colors, tt.opts...)
			if !errors.Is(err, ErrInvalidGradientSpec) {
				t.Errorf("NewLinearGradient() = %v, want ErrInvalidGradientSpec", err)
			}
			_, err = NewRadialGradient(Pt(5, 5), 5, tt.colors, tt.opts...)
			if !errors.Is(err, ErrInvalidGradientSpec) {
				t.Errorf("NewRadialGradient() = %v, want ErrInvalidGradientSpec", err)
			}
			_, err = NewSweepGradient(Pt(5, 5), tt.colors, tt.opts...)
			if !errors.Is(err, ErrInvalidGradientSpec) {
				t.Errorf("NewSweepGradient() = %v, want ErrInvalidGradientSpec", err)
			}
			if after := e.Live(softengine.KindShader); after != before {
				t.Errorf("live shaders %d -> %d", before, after)
			}
		})
	}
}

func TestGradientKinds(t *testing.T) {
	colors := []Color{Red, Blue}
	ctors := map[string]func() (*Shader, error){
		"linear": func() (*Shader, error) {
			return NewLinearGradient(Pt(0, 0), Pt(100, 0), colors, WithPositions(0, 1))
		},
		"radial": func() (*Shader, error) {
			return NewRadialGradient(Pt(50, 50), 50, colors, WithTileMode(TileClamp))
		},
		"sweep": func() (*Shader, error) {
			return NewSweepGradient(Pt(50, 50), colors, WithSweepAngles(0, 360), WithLocalMatrix(Rotate(90)))
		},
	}
	for name, ctor := range ctors {
		t.Run(name, func(t *testing.T) {
			sh, err := ctor()
			mustNoErr(t, err)
			sh.Release()
		})
	}
}

func TestLinearGradientPixels(t *testing.T) {
	s, c := newTestCanvas(t, 100, 10)
	sh, err := NewLinearGradient(Pt(0, 0), Pt(100, 0), []Color{Red, Blue})
	mustNoErr(t, err)
	defer sh.Release()
	p, err := NewPaint()
	mustNoErr(t, err)
	defer p.Release()
	mustNoErr(t, p.SetShader(sh).Err())
	mustNoErr(t, c.DrawPaint(p))

	img := decodeSurface(t, s)
	left, right := colorAt(img, 0, 5), colorAt(img, 99, 5)
	if left.Red() < 240 || left.Blue() > 15 {
		t.Errorf("left edge = %v, want near red", left)
	}
	if right.Blue() < 240 || right.Red() > 15 {
		t.Errorf("right edge = %v, want near blue", right)
	}
}

func TestPaintShaderOwnership(t *testing.T) {
	e := useFreshEngine(t)
	sh, err := NewLinearGradient(Pt(0, 0), Pt(1, 0), []Color{Red, Blue})
	mustNoErr(t, err)
	p, err := NewPaint()
	mustNoErr(t, err)
	p.SetShader(sh)
	sh.Release()

	got, err := p.Shader()
	mustNoErr(t, err)
	if got == nil {
		t.Fatal("paint lost its shader")
	}
	got.Release()
	p.Release()
	if n := e.Live(softengine.KindShader); n != 0 {
		t.Errorf("%d shaders leaked", n)
	}
}
