package softengine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gogpu/skia/internal/native"
)

func TestPathRectCounts(t *testing.T) {
	p := newPath()
	p.addRect(rect{0, 0, 10, 10}, false)
	require.Equal(t, 4, p.numPoints())
	require.Len(t, p.Verbs, 5)
	require.True(t, p.valid())
	require.Equal(t, rect{0, 0, 10, 10}, p.bounds())
}

func TestPathInjectsMoveAfterClose(t *testing.T) {
	p := newPath()
	p.moveTo(1, 2)
	p.lineTo(5, 2)
	p.close()
	p.lineTo(5, 6)

	require.Equal(t, []uint8{verbMove, verbLine, verbClose, verbMove, verbLine}, p.Verbs)
	x, y := p.point(3)
	require.Equal(t, [2]float64{1, 2}, [2]float64{x, y}, "the new contour starts at the last move")
}

func TestPathContainsFillTypes(t *testing.T) {
	outer := rect{0, 0, 100, 100}
	inner := rect{25, 25, 75, 75}
	tests := []struct {
		name     string
		fill     native.FillType
		innerCCW bool
		center   bool
		ring     bool
	}{
		{"winding same direction", native.FillTypeWinding, false, true, true},
		{"winding opposite direction", native.FillTypeWinding, true, false, true},
		{"even odd", native.FillTypeEvenOdd, false, false, true},
		{"inverse even odd", native.FillTypeInverseEvenOdd, false, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPath()
			p.addRect(outer, false)
			p.addRect(inner, tt.innerCCW)
			p.Fill = int32(tt.fill)
			require.Equal(t, tt.center, p.contains(50, 50))
			require.Equal(t, tt.ring, p.contains(10, 10))
		})
	}
}

func TestPathOvalBounds(t *testing.T) {
	p := newPath()
	p.addOval(rect{10, 20, 50, 40}, false)
	b := p.bounds()
	require.InDelta(t, 10, b.l, 1e-9)
	require.InDelta(t, 20, b.t, 1e-9)
	require.InDelta(t, 50, b.r, 1e-9)
	require.InDelta(t, 40, b.b, 1e-9)
	require.True(t, p.contains(30, 30))
	require.False(t, p.contains(11, 21))
}

func TestPathConicWithUnitWeightIsQuad(t *testing.T) {
	p := newPath()
	p.moveTo(0, 0)
	p.conicTo(5, 10, 10, 0, 1)
	require.Equal(t, []uint8{verbMove, verbQuad}, p.Verbs)
	require.Empty(t, p.Weights)
}

func TestPathSVGArcEndsAtTarget(t *testing.T) {
	p := newPath()
	p.moveTo(0, 0)
	p.svgArcTo(50, 50, 0, false, true, 100, 0)
	x, y := p.lastPoint()
	require.InDelta(t, 100, x, 1e-6)
	require.InDelta(t, 0, y, 1e-6)
	// Clockwise in y-down space bulges upwards.
	require.InDelta(t, -50, p.bounds().t, 0.5)
}

func TestPathAddPathExtend(t *testing.T) {
	a := newPath()
	a.moveTo(0, 0)
	a.lineTo(10, 0)
	b := newPath()
	b.moveTo(20, 0)
	b.lineTo(30, 0)

	appended := a.clone()
	appended.addPath(b, identity(), false)
	require.Equal(t, []uint8{verbMove, verbLine, verbMove, verbLine}, appended.Verbs)

	extended := a.clone()
	extended.addPath(b, translate(0, 5), true)
	require.Equal(t, []uint8{verbMove, verbLine, verbLine, verbLine}, extended.Verbs)
	x, y := extended.lastPoint()
	require.Equal(t, [2]float64{30, 5}, [2]float64{x, y})
}

func TestPathTransform(t *testing.T) {
	p := newPath()
	p.addRect(rect{0, 0, 10, 10}, false)
	p.transform(scale(2, 3).mul(translate(1, 1)))
	require.Equal(t, rect{2, 3, 22, 33}, p.bounds())
}

func TestFlattenSegmentsClamp(t *testing.T) {
	require.Equal(t, 2, segments(1000, 0, 0, 1, 1, 2, 0))
	require.LessOrEqual(t, segments(1e-9, 0, 0, 1e6, 1e6, 2e6, 0), 256)
}

func TestStrokeCoversLine(t *testing.T) {
	p := newPath()
	p.moveTo(10, 10)
	p.lineTo(90, 10)
	st := strokeStyle{halfWidth: 5, miter: 4, cap: native.StrokeCapButt, join: native.StrokeJoinMiter}
	polys := strokePolygons(p.flatten(0.25), st)
	require.NotEmpty(t, polys)
	require.True(t, windingContains(polys, 50, 12, false))
	require.False(t, windingContains(polys, 50, 20, false))
	require.False(t, windingContains(polys, 5, 10, false), "butt caps do not extend past the ends")

	st.cap = native.StrokeCapSquare
	polys = strokePolygons(p.flatten(0.25), st)
	require.True(t, windingContains(polys, 7, 10, false))
}

func TestMatrixInvert(t *testing.T) {
	m := translate(5, -3).mul(rotate(math.Pi / 6)).mul(scale(2, 4))
	inv, ok := m.invert()
	require.True(t, ok)
	got := m.mul(inv)
	for i, v := range identity() {
		require.InDelta(t, v, got[i], 1e-9)
	}
	_, ok = scale(0, 1).invert()
	require.False(t, ok)
}

func TestGaussianKernelNormalized(t *testing.T) {
	k := gaussianKernel(2)
	var sum float32
	for _, v := range k {
		sum += v
	}
	require.InDelta(t, 1, sum, 1e-4)
	require.Equal(t, 1, len(k)%2)
}

func TestBlendPorterDuff(t *testing.T) {
	src := px{1, 0, 0, 1}
	dst := px{0, 0, 0.5, 0.5}
	require.Equal(t, src, blendFor(native.BlendModeSrc)(src, dst))
	require.Equal(t, dst, blendFor(native.BlendModeDst)(src, dst))
	require.Equal(t, px{}, blendFor(native.BlendModeClear)(src, dst))
	require.Equal(t, src, blendFor(native.BlendModeSrcOver)(src, dst))
}
