package softengine

import (
	"image/color"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/gogpu/skia/internal/native"
)

func newTestLib(t *testing.T) (*Engine, *native.Lib) {
	t.Helper()
	e := New()
	l := e.Lib()
	require.Empty(t, l.Missing(), "every function must be bound")
	return e, l
}

func newTestSurface(t *testing.T, l *native.Lib, w, h int32) (native.Handle, native.Handle) {
	t.Helper()
	info := native.ImageInfo{Width: w, Height: h, ColorType: native.ColorTypeRGBA8888, AlphaType: native.AlphaTypePremul}
	s := l.SurfaceNewRaster(&info, 0, 0)
	require.NotZero(t, s)
	c := l.SurfaceGetCanvas(s)
	require.NotZero(t, c)
	t.Cleanup(func() { l.SurfaceUnref(s) })
	return s, c
}

func pixelAt(t *testing.T, l *native.Lib, e *Engine, s native.Handle, x, y int) color.RGBA {
	t.Helper()
	pm := l.PixmapNew()
	defer l.PixmapDestructor(pm)
	require.True(t, l.SurfacePeekPixels(s, pm))
	return get[*pixmapData](e.h, pm).pix.RGBAAt(x, y)
}

func TestSurfaceRejectsUnsupportedInfo(t *testing.T) {
	_, l := newTestLib(t)
	tests := []struct {
		name string
		info native.ImageInfo
		rb   uintptr
	}{
		{"zero width", native.ImageInfo{Width: 0, Height: 4, ColorType: native.ColorTypeRGBA8888, AlphaType: native.AlphaTypePremul}, 0},
		{"bgra", native.ImageInfo{Width: 4, Height: 4, ColorType: native.ColorTypeBGRA8888, AlphaType: native.AlphaTypePremul}, 0},
		{"unknown alpha", native.ImageInfo{Width: 4, Height: 4, ColorType: native.ColorTypeRGBA8888}, 0},
		{"row bytes", native.ImageInfo{Width: 4, Height: 4, ColorType: native.ColorTypeRGBA8888, AlphaType: native.AlphaTypePremul}, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Zero(t, l.SurfaceNewRaster(&tt.info, tt.rb, 0))
		})
	}
}

func TestSurfaceCanvasIsCached(t *testing.T) {
	e, l := newTestLib(t)
	s, c := newTestSurface(t, l, 8, 8)
	require.Equal(t, c, l.SurfaceGetCanvas(s))
	require.Equal(t, 2, e.Live(""))
}

func TestSurfaceUnrefDropsCanvas(t *testing.T) {
	e, l := newTestLib(t)
	info := native.ImageInfo{Width: 2, Height: 2, ColorType: native.ColorTypeRGBA8888, AlphaType: native.AlphaTypePremul}
	s := l.SurfaceNewRaster(&info, 0, 0)
	c := l.SurfaceGetCanvas(s)
	l.SurfaceUnref(s)
	require.Zero(t, e.Live(""))
	require.Equal(t, 1, e.Released(KindSurface))
	require.Zero(t, l.CanvasGetSaveCount(c), "stale canvas handles are ignored")
}

func TestReleaseUnknownHandlePanics(t *testing.T) {
	_, l := newTestLib(t)
	p := l.PaintNew()
	l.PaintDelete(p)
	require.Panics(t, func() { l.PaintDelete(p) })
}

func TestCanvasSaveStack(t *testing.T) {
	_, l := newTestLib(t)
	_, c := newTestSurface(t, l, 8, 8)

	require.EqualValues(t, 1, l.CanvasGetSaveCount(c))
	require.EqualValues(t, 1, l.CanvasSave(c))
	require.EqualValues(t, 2, l.CanvasSave(c))
	require.EqualValues(t, 3, l.CanvasSaveLayer(c, nil, 0))
	require.EqualValues(t, 4, l.CanvasGetSaveCount(c))

	l.CanvasRestore(c)
	require.EqualValues(t, 3, l.CanvasGetSaveCount(c))
	l.CanvasRestoreToCount(c, 1)
	require.EqualValues(t, 1, l.CanvasGetSaveCount(c))

	l.CanvasRestore(c)
	l.CanvasRestoreToCount(c, -3)
	require.EqualValues(t, 1, l.CanvasGetSaveCount(c), "the base state is never popped")
}

func TestCanvasMatrixRoundTrip(t *testing.T) {
	_, l := newTestLib(t)
	_, c := newTestSurface(t, l, 8, 8)

	l.CanvasTranslate(c, 10, 20)
	l.CanvasScale(c, 2, 3)

	var m native.Matrix44
	l.CanvasGetMatrix(c, &m)
	require.InDelta(t, 2, m[0], 1e-6)
	require.InDelta(t, 10, m[3], 1e-6)
	require.InDelta(t, 3, m[5], 1e-6)
	require.InDelta(t, 20, m[7], 1e-6)

	persp := native.Matrix44{1, 0, 0, 5, 0, 1, 0, 6, 0, 0, 1, 0, 0.001, 0.002, 0, 1}
	l.CanvasSetMatrix(c, &persp)
	var got native.Matrix44
	l.CanvasGetMatrix(c, &got)
	require.Equal(t, persp, got)

	l.CanvasResetMatrix(c)
	l.CanvasGetMatrix(c, &got)
	require.Equal(t, identity().to44(), got)
}

func TestCanvasRestoreRestoresMatrix(t *testing.T) {
	_, l := newTestLib(t)
	_, c := newTestSurface(t, l, 8, 8)

	n := l.CanvasSave(c)
	l.CanvasRotateDegrees(c, 45)
	l.CanvasRestoreToCount(c, n)

	var m native.Matrix44
	l.CanvasGetMatrix(c, &m)
	require.Equal(t, identity().to44(), m)
}

func TestDrawRectFillsPixels(t *testing.T) {
	e, l := newTestLib(t)
	s, c := newTestSurface(t, l, 20, 20)

	p := l.PaintNew()
	defer l.PaintDelete(p)
	l.PaintSetColor(p, 0xFFFF0000)
	r := native.Rect{Left: 5, Top: 5, Right: 15, Bottom: 15}
	l.CanvasDrawRect(c, &r, p)

	require.Equal(t, color.RGBA{255, 0, 0, 255}, pixelAt(t, l, e, s, 10, 10))
	require.Equal(t, color.RGBA{}, pixelAt(t, l, e, s, 2, 2))
}

func TestClipRectLimitsDrawing(t *testing.T) {
	e, l := newTestLib(t)
	s, c := newTestSurface(t, l, 20, 20)

	clip := native.Rect{Left: 0, Top: 0, Right: 10, Bottom: 20}
	l.CanvasClipRectWithOperation(c, &clip, native.ClipOpIntersect, false)
	p := l.PaintNew()
	defer l.PaintDelete(p)
	l.PaintSetColor(p, 0xFF0000FF)
	l.CanvasDrawPaint(c, p)

	require.Equal(t, color.RGBA{0, 0, 255, 255}, pixelAt(t, l, e, s, 5, 5))
	require.Equal(t, color.RGBA{}, pixelAt(t, l, e, s, 15, 5))
}

func TestClearAndDrawColor(t *testing.T) {
	e, l := newTestLib(t)
	s, c := newTestSurface(t, l, 4, 4)

	l.CanvasClear(c, 0xFF00FF00)
	require.Equal(t, color.RGBA{0, 255, 0, 255}, pixelAt(t, l, e, s, 1, 1))

	l.CanvasDrawColor(c, 0x00000000, native.BlendModeClear)
	require.Equal(t, color.RGBA{}, pixelAt(t, l, e, s, 1, 1))
}

func TestPaintAccessors(t *testing.T) {
	e, l := newTestLib(t)
	p := l.PaintNew()
	defer l.PaintDelete(p)

	require.False(t, l.PaintIsAntialias(p))
	require.EqualValues(t, 0xFF000000, l.PaintGetColor(p))
	require.Equal(t, native.BlendModeSrcOver, l.PaintGetBlendMode(p))
	require.InDelta(t, 4, l.PaintGetStrokeMiter(p), 1e-6)

	l.PaintSetStyle(p, native.PaintStyleStroke)
	l.PaintSetStrokeWidth(p, 3)
	l.PaintSetStrokeWidth(p, -1)
	l.PaintSetStrokeCap(p, native.StrokeCapRound)
	require.Equal(t, native.PaintStyleStroke, l.PaintGetStyle(p))
	require.InDelta(t, 3, l.PaintGetStrokeWidth(p), 1e-6)
	require.Equal(t, native.StrokeCapRound, l.PaintGetStrokeCap(p))

	c := l.PaintClone(p)
	defer l.PaintDelete(c)
	l.PaintReset(p)
	require.Equal(t, native.PaintStyleFill, l.PaintGetStyle(p))
	require.Equal(t, native.PaintStyleStroke, l.PaintGetStyle(c))
	require.Equal(t, 2, e.Live(KindPaint))
}

func TestPaintShaderIsOwnedPerCall(t *testing.T) {
	e, l := newTestLib(t)
	p := l.PaintNew()
	defer l.PaintDelete(p)
	require.Zero(t, l.PaintGetShader(p))

	pts := [2]native.Point{{0, 0}, {10, 0}}
	colors := []native.Color{0xFFFF0000, 0xFF0000FF}
	sh := l.ShaderNewLinearGradient(&pts[0], &colors[0], nil, 2, native.TileModeClamp, nil)
	require.NotZero(t, sh)
	l.PaintSetShader(p, sh)
	l.ShaderUnref(sh)

	a, b := l.PaintGetShader(p), l.PaintGetShader(p)
	require.NotEqual(t, a, b)
	l.ShaderUnref(a)
	l.ShaderUnref(b)
	require.Zero(t, e.Live(KindShader))

	l.PaintSetShader(p, 0)
	require.Zero(t, l.PaintGetShader(p))
}

func TestMaskFilterRejectsZeroSigma(t *testing.T) {
	_, l := newTestLib(t)
	require.Zero(t, l.MaskFilterNewBlur(native.BlurStyleNormal, 0))
	f := l.MaskFilterNewBlur(native.BlurStyleNormal, 2)
	require.NotZero(t, f)
	l.MaskFilterUnref(f)
}

func TestGradientValidation(t *testing.T) {
	_, l := newTestLib(t)
	c := native.Point{5, 5}
	colors := []native.Color{0xFFFF0000, 0xFF0000FF}

	require.Zero(t, l.ShaderNewRadialGradient(&c, -1, &colors[0], nil, 2, native.TileModeClamp, nil))
	require.Zero(t, l.ShaderNewSweepGradient(&c, &colors[0], nil, 2, native.TileModeClamp, 90, 90, nil))

	sh := l.ShaderNewSweepGradient(&c, &colors[0], nil, 2, native.TileModeClamp, 0, 360, nil)
	require.NotZero(t, sh)
	l.ShaderUnref(sh)
}

func TestDataCopiesInput(t *testing.T) {
	_, l := newTestLib(t)
	src := []byte("hello")
	d := l.DataNewWithCopy(unsafe.Pointer(&src[0]), uintptr(len(src)))
	defer l.DataUnref(d)
	src[0] = 'j'

	require.EqualValues(t, 5, l.DataGetSize(d))
	got := unsafe.Slice((*byte)(l.DataGetData(d)), l.DataGetSize(d))
	require.Equal(t, "hello", string(got))

	empty := l.DataNewWithCopy(nil, 0)
	defer l.DataUnref(empty)
	require.Nil(t, l.DataGetData(empty))
	require.Zero(t, l.DataNewFromFile("does/not/exist"))
}

func TestFontMetricsAndMeasure(t *testing.T) {
	_, l := newTestLib(t)
	tf := l.TypefaceCreateDefault()
	defer l.TypefaceUnref(tf)
	f := l.FontNewWithValues(tf, 20, 1, 0)
	defer l.FontDelete(f)

	var m native.FontMetrics
	spacing := l.FontGetMetrics(f, &m)
	require.Less(t, m.Ascent, float32(0))
	require.Greater(t, m.Descent, float32(0))
	require.Greater(t, spacing, float32(0))

	text := []byte("Hello")
	var bounds native.Rect
	w := l.FontMeasureText(f, unsafe.Pointer(&text[0]), uintptr(len(text)), native.TextEncodingUTF8, &bounds, 0)
	require.Greater(t, w, float32(0))
	require.Less(t, bounds.Top, float32(0))

	p := l.PaintNew()
	defer l.PaintDelete(p)
	l.PaintSetStyle(p, native.PaintStyleStroke)
	l.PaintSetStrokeWidth(p, 4)
	var stroked native.Rect
	l.FontMeasureText(f, unsafe.Pointer(&text[0]), uintptr(len(text)), native.TextEncodingUTF8, &stroked, p)
	require.InDelta(t, bounds.Left-2, stroked.Left, 1e-4)
}

func TestFontTypefaceIsOwnedPerCall(t *testing.T) {
	e, l := newTestLib(t)
	f := l.FontNew()
	defer l.FontDelete(f)
	require.InDelta(t, 12, l.FontGetSize(f), 1e-6)

	a := l.FontGetTypeface(f)
	b := l.FontGetTypeface(f)
	require.NotEqual(t, a, b)
	l.TypefaceUnref(a)
	l.TypefaceUnref(b)
	require.Zero(t, e.Live(KindTypeface))
}

func TestTypefaceByName(t *testing.T) {
	_, l := newTestLib(t)
	st := l.FontStyleNew(700, 5, native.FontSlantItalic)
	defer l.FontStyleDelete(st)
	tf := l.TypefaceCreateFromName("Go Mono", st)
	require.NotZero(t, tf)
	l.TypefaceUnref(tf)
	require.Zero(t, l.TypefaceCreateFromFile("does/not/exist.ttf", 0))
}
