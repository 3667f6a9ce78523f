package softengine

import (
	"image"
	"os"
	"sync"
	"unsafe"

	"github.com/gogpu/skia/internal/native"
)

// Handle kinds, as reported by Live and Released.
const (
	KindSurface    = "surface"
	KindCanvas     = "canvas"
	KindPaint      = "paint"
	KindMaskFilter = "maskfilter"
	KindPath       = "path"
	KindImage      = "image"
	KindPixmap     = "pixmap"
	KindData       = "data"
	KindStream     = "wstream"
	KindTypeface   = "typeface"
	KindFontStyle  = "fontstyle"
	KindFont       = "font"
	KindShader     = "shader"
	KindDocument   = "document"
	KindRecorder   = "recorder"
	KindPicture    = "picture"
)

// Engine is an in-process implementation of the engine function table.
type Engine struct {
	h *handleTable
}

// New returns an engine with an empty handle table.
func New() *Engine {
	return &Engine{h: newHandleTable()}
}

// Live returns the number of handles of kind still outstanding. An empty
// kind counts every handle.
func (e *Engine) Live(kind string) int { return e.h.live(kind) }

// Released returns how many handles of kind have been released.
func (e *Engine) Released(kind string) int { return e.h.releasedCount(kind) }

type surfaceData struct {
	pix     *image.RGBA
	canvas  *canvas
	canvasH native.Handle
}

type fontStyleData struct {
	weight, width int32
	slant         native.FontSlant
}

var (
	builtinMu    sync.Mutex
	builtinCache = map[string]*typefaceData{}
)

// builtin parses each bundled face once.
func builtin(key string) *typefaceData {
	builtinMu.Lock()
	defer builtinMu.Unlock()
	tf, ok := builtinCache[key]
	if !ok {
		tf = builtinTypeface(key)
		builtinCache[key] = tf
	}
	return tf
}

func sliceOf[T any](p *T, n int) []T {
	if p == nil || n <= 0 {
		return nil
	}
	return unsafe.Slice(p, n)
}

func bytesOf(p unsafe.Pointer, n uintptr) []byte {
	if p == nil || n == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(p), n)
}

func addObj[T any](t *handleTable, kind string, v *T) native.Handle {
	if v == nil {
		return 0
	}
	return t.add(kind, v)
}

func optPaint(t *handleTable, h native.Handle) *paintData {
	if h == 0 {
		return nil
	}
	return get[*paintData](t, h)
}

// withCanvas runs fn for a live canvas; unknown handles are ignored.
func withCanvas(t *handleTable, h native.Handle, fn func(c *canvas)) {
	if c := get[*canvas](t, h); c != nil {
		fn(c)
	}
}

// withPaint runs fn for a live canvas and paint.
func withPaint(t *handleTable, ch, ph native.Handle, fn func(c *canvas, p *paintData)) {
	c, p := get[*canvas](t, ch), get[*paintData](t, ph)
	if c != nil && p != nil {
		fn(c, p)
	}
}

// Lib returns a function table bound to this engine.
func (e *Engine) Lib() *native.Lib {
	t := e.h
	l := &native.Lib{}
	e.bindSurface(l, t)
	e.bindCanvas(l, t)
	e.bindPaint(l, t)
	e.bindPath(l, t)
	e.bindImage(l, t)
	e.bindData(l, t)
	e.bindText(l, t)
	e.bindShader(l, t)
	e.bindDocument(l, t)
	e.bindPicture(l, t)
	return l
}

func (e *Engine) bindSurface(l *native.Lib, t *handleTable) {
	l.SurfaceNewRaster = func(info *native.ImageInfo, rowBytes uintptr, _ native.Handle) native.Handle {
		if info == nil || info.Width <= 0 || info.Height <= 0 || info.ColorType != native.ColorTypeRGBA8888 {
			return 0
		}
		if info.AlphaType == native.AlphaTypeUnknown {
			return 0
		}
		if rowBytes != 0 && rowBytes != uintptr(info.Width)*4 {
			return 0
		}
		return t.add(KindSurface, &surfaceData{pix: image.NewRGBA(image.Rect(0, 0, int(info.Width), int(info.Height)))})
	}
	l.SurfaceUnref = func(s native.Handle) {
		sd := t.remove(s).(*surfaceData)
		t.forget(sd.canvasH)
	}
	l.SurfaceGetCanvas = func(s native.Handle) native.Handle {
		sd := get[*surfaceData](t, s)
		if sd == nil {
			return 0
		}
		if sd.canvas == nil {
			sd.canvas = newCanvas(newRasterDevice(sd.pix))
			sd.canvasH = t.add(KindCanvas, sd.canvas)
		}
		return sd.canvasH
	}
	l.SurfaceNewImageSnapshot = func(s native.Handle) native.Handle {
		sd := get[*surfaceData](t, s)
		if sd == nil {
			return 0
		}
		return t.add(KindImage, newImage(copyRGBA(sd.pix)))
	}
	l.SurfacePeekPixels = func(s, pm native.Handle) bool {
		sd, p := get[*surfaceData](t, s), get[*pixmapData](t, pm)
		if sd == nil || p == nil {
			return false
		}
		p.pix = sd.pix
		return true
	}
}

func (e *Engine) bindCanvas(l *native.Lib, t *handleTable) {
	l.CanvasSave = func(c native.Handle) int32 {
		var n int32
		withCanvas(t, c, func(cv *canvas) { n = cv.save() })
		return n
	}
	l.CanvasSaveLayer = func(c native.Handle, bounds *native.Rect, p native.Handle) int32 {
		var n int32
		withCanvas(t, c, func(cv *canvas) {
			var b *rect
			if bounds != nil {
				r := rectFromNative(bounds)
				b = &r
			}
			n = cv.saveLayer(b, optPaint(t, p))
		})
		return n
	}
	l.CanvasRestore = func(c native.Handle) { withCanvas(t, c, (*canvas).restore) }
	l.CanvasRestoreToCount = func(c native.Handle, n int32) {
		withCanvas(t, c, func(cv *canvas) { cv.restoreToCount(n) })
	}
	l.CanvasGetSaveCount = func(c native.Handle) int32 {
		var n int32
		withCanvas(t, c, func(cv *canvas) { n = cv.saveCount() })
		return n
	}
	concat := func(c native.Handle, m mat3) { withCanvas(t, c, func(cv *canvas) { cv.concat(m) }) }
	l.CanvasTranslate = func(c native.Handle, dx, dy float32) { concat(c, translate(float64(dx), float64(dy))) }
	l.CanvasScale = func(c native.Handle, sx, sy float32) { concat(c, scale(float64(sx), float64(sy))) }
	l.CanvasRotateDegrees = func(c native.Handle, deg float32) { concat(c, rotate(float64(deg)*degToRad)) }
	l.CanvasRotateRadians = func(c native.Handle, rad float32) { concat(c, rotate(float64(rad))) }
	l.CanvasSkew = func(c native.Handle, sx, sy float32) { concat(c, skew(float64(sx), float64(sy))) }
	l.CanvasConcat = func(c native.Handle, m *native.Matrix44) {
		if m != nil {
			concat(c, matFrom44(m))
		}
	}
	l.CanvasSetMatrix = func(c native.Handle, m *native.Matrix44) {
		if m != nil {
			withCanvas(t, c, func(cv *canvas) { cv.setMatrix(matFrom44(m)) })
		}
	}
	l.CanvasGetMatrix = func(c native.Handle, m *native.Matrix44) {
		withCanvas(t, c, func(cv *canvas) { *m = cv.top().m.to44() })
	}
	l.CanvasResetMatrix = func(c native.Handle) {
		withCanvas(t, c, func(cv *canvas) { cv.setMatrix(identity()) })
	}
	l.CanvasClipRectWithOperation = func(c native.Handle, r *native.Rect, op native.ClipOp, aa bool) {
		withCanvas(t, c, func(cv *canvas) { cv.clipRect(rectFromNative(r), op, aa) })
	}
	l.CanvasClipPathWithOperation = func(c, path native.Handle, op native.ClipOp, aa bool) {
		if p := get[*pathData](t, path); p != nil {
			withCanvas(t, c, func(cv *canvas) { cv.clipPath(p, op, aa) })
		}
	}

	l.CanvasDrawPaint = func(c, p native.Handle) {
		withPaint(t, c, p, (*canvas).drawPaint)
	}
	l.CanvasDrawRect = func(c native.Handle, r *native.Rect, p native.Handle) {
		withPaint(t, c, p, func(cv *canvas, pd *paintData) { cv.drawRect(rectFromNative(r), pd) })
	}
	l.CanvasDrawRoundRect = func(c native.Handle, r *native.Rect, rx, ry float32, p native.Handle) {
		withPaint(t, c, p, func(cv *canvas, pd *paintData) {
			cv.drawRoundRect(rectFromNative(r), float64(rx), float64(ry), pd)
		})
	}
	l.CanvasDrawCircle = func(c native.Handle, cx, cy, radius float32, p native.Handle) {
		withPaint(t, c, p, func(cv *canvas, pd *paintData) {
			cv.drawCircle(float64(cx), float64(cy), float64(radius), pd)
		})
	}
	l.CanvasDrawOval = func(c native.Handle, r *native.Rect, p native.Handle) {
		withPaint(t, c, p, func(cv *canvas, pd *paintData) { cv.drawOval(rectFromNative(r), pd) })
	}
	l.CanvasDrawPath = func(c, path, p native.Handle) {
		if pa := get[*pathData](t, path); pa != nil {
			withPaint(t, c, p, func(cv *canvas, pd *paintData) { cv.drawPath(pa, pd) })
		}
	}
	l.CanvasDrawImage = func(c, img native.Handle, x, y float32, p native.Handle) {
		if im := get[*imageData](t, img); im != nil {
			withCanvas(t, c, func(cv *canvas) { cv.drawImage(im, float64(x), float64(y), optPaint(t, p)) })
		}
	}
	l.CanvasDrawImageRect = func(c, img native.Handle, src, dst *native.Rect, p native.Handle) {
		im := get[*imageData](t, img)
		if im == nil || dst == nil {
			return
		}
		sr := rect{0, 0, float64(im.pix.Rect.Dx()), float64(im.pix.Rect.Dy())}
		if src != nil {
			sr = rectFromNative(src)
		}
		withCanvas(t, c, func(cv *canvas) { cv.drawImageRect(im, sr, rectFromNative(dst), optPaint(t, p)) })
	}
	l.CanvasDrawLine = func(c native.Handle, x0, y0, x1, y1 float32, p native.Handle) {
		withPaint(t, c, p, func(cv *canvas, pd *paintData) {
			cv.drawLine(float64(x0), float64(y0), float64(x1), float64(y1), pd)
		})
	}
	l.CanvasDrawPoint = func(c native.Handle, x, y float32, p native.Handle) {
		withPaint(t, c, p, func(cv *canvas, pd *paintData) { cv.drawPoint(float64(x), float64(y), pd) })
	}
	l.CanvasDrawSimpleText = func(c native.Handle, text unsafe.Pointer, n uintptr, enc native.TextEncoding, x, y float32, f, p native.Handle) {
		fd := get[*fontData](t, f)
		if fd == nil {
			return
		}
		b := bytesOf(text, n)
		withPaint(t, c, p, func(cv *canvas, pd *paintData) { cv.drawText(b, enc, float64(x), float64(y), fd, pd) })
	}
	l.CanvasDrawPicture = func(c, pic native.Handle, m *native.Matrix, p native.Handle) {
		pd := get[*pictureData](t, pic)
		if pd == nil {
			return
		}
		var mm *mat3
		if m != nil {
			v := matFromNative(m)
			mm = &v
		}
		withCanvas(t, c, func(cv *canvas) { cv.drawPicture(pd, mm, optPaint(t, p)) })
	}
	l.CanvasClear = func(c native.Handle, color native.Color) {
		withCanvas(t, c, func(cv *canvas) { cv.clear(color) })
	}
	l.CanvasDrawColor = func(c native.Handle, color native.Color, mode native.BlendMode) {
		withCanvas(t, c, func(cv *canvas) { cv.drawColor(color, mode) })
	}
}

func (e *Engine) bindPaint(l *native.Lib, t *handleTable) {
	paint := func(h native.Handle) *paintData {
		if p := get[*paintData](t, h); p != nil {
			return p
		}
		return &paintData{}
	}
	l.PaintNew = func() native.Handle { return t.add(KindPaint, defaultPaint()) }
	l.PaintClone = func(p native.Handle) native.Handle {
		src := get[*paintData](t, p)
		if src == nil {
			return 0
		}
		return t.add(KindPaint, src.clone())
	}
	l.PaintDelete = func(p native.Handle) { t.remove(p) }
	l.PaintReset = func(p native.Handle) { *paint(p) = *defaultPaint() }
	l.PaintIsAntialias = func(p native.Handle) bool { return paint(p).AA }
	l.PaintSetAntialias = func(p native.Handle, aa bool) { paint(p).AA = aa }
	l.PaintGetColor = func(p native.Handle) native.Color { return paint(p).Color }
	l.PaintSetColor = func(p native.Handle, c native.Color) { paint(p).Color = c }
	l.PaintGetStyle = func(p native.Handle) native.PaintStyle { return native.PaintStyle(paint(p).Style) }
	l.PaintSetStyle = func(p native.Handle, s native.PaintStyle) { paint(p).Style = int32(s) }
	l.PaintGetStrokeWidth = func(p native.Handle) float32 { return float32(paint(p).Width) }
	l.PaintSetStrokeWidth = func(p native.Handle, w float32) {
		if w >= 0 {
			paint(p).Width = float64(w)
		}
	}
	l.PaintGetStrokeMiter = func(p native.Handle) float32 { return float32(paint(p).Miter) }
	l.PaintSetStrokeMiter = func(p native.Handle, m float32) {
		if m >= 0 {
			paint(p).Miter = float64(m)
		}
	}
	l.PaintGetStrokeCap = func(p native.Handle) native.StrokeCap { return native.StrokeCap(paint(p).Cap) }
	l.PaintSetStrokeCap = func(p native.Handle, c native.StrokeCap) { paint(p).Cap = int32(c) }
	l.PaintGetStrokeJoin = func(p native.Handle) native.StrokeJoin { return native.StrokeJoin(paint(p).Join) }
	l.PaintSetStrokeJoin = func(p native.Handle, j native.StrokeJoin) { paint(p).Join = int32(j) }
	l.PaintGetBlendMode = func(p native.Handle) native.BlendMode { return native.BlendMode(paint(p).Blend) }
	l.PaintSetBlendMode = func(p native.Handle, m native.BlendMode) { paint(p).Blend = int32(m) }
	l.PaintGetShader = func(p native.Handle) native.Handle {
		return addObj(t, KindShader, paint(p).Shader)
	}
	l.PaintSetShader = func(p, sh native.Handle) { paint(p).Shader = get[*shaderData](t, sh) }
	l.PaintSetMaskFilter = func(p, f native.Handle) { paint(p).Blur = get[*blurData](t, f) }

	l.MaskFilterNewBlur = func(style native.BlurStyle, sigma float32) native.Handle {
		if sigma <= 0 {
			return 0
		}
		return t.add(KindMaskFilter, &blurData{Style: int32(style), Sigma: float64(sigma)})
	}
	l.MaskFilterUnref = func(f native.Handle) { t.remove(f) }
}

const degToRad = 3.141592653589793 / 180

func (e *Engine) bindPath(l *native.Lib, t *handleTable) {
	path := func(h native.Handle) *pathData {
		if p := get[*pathData](t, h); p != nil {
			return p
		}
		return newPath()
	}
	f := func(v float32) float64 { return float64(v) }
	l.PathNew = func() native.Handle { return t.add(KindPath, newPath()) }
	l.PathClone = func(p native.Handle) native.Handle {
		src := get[*pathData](t, p)
		if src == nil {
			return 0
		}
		return t.add(KindPath, src.clone())
	}
	l.PathDelete = func(p native.Handle) { t.remove(p) }
	l.PathReset = func(p native.Handle) { path(p).reset() }
	l.PathMoveTo = func(p native.Handle, x, y float32) { path(p).moveTo(f(x), f(y)) }
	l.PathLineTo = func(p native.Handle, x, y float32) { path(p).lineTo(f(x), f(y)) }
	l.PathQuadTo = func(p native.Handle, x0, y0, x1, y1 float32) { path(p).quadTo(f(x0), f(y0), f(x1), f(y1)) }
	l.PathConicTo = func(p native.Handle, x0, y0, x1, y1, w float32) {
		path(p).conicTo(f(x0), f(y0), f(x1), f(y1), f(w))
	}
	l.PathCubicTo = func(p native.Handle, x0, y0, x1, y1, x2, y2 float32) {
		path(p).cubicTo(f(x0), f(y0), f(x1), f(y1), f(x2), f(y2))
	}
	l.PathArcTo = func(p native.Handle, rx, ry, rot float32, largeArc int32, sweep native.PathDirection, x, y float32) {
		path(p).svgArcTo(f(rx), f(ry), f(rot), largeArc != 0, sweep == native.PathDirectionCW, f(x), f(y))
	}
	l.PathArcToWithOval = func(p native.Handle, oval *native.Rect, start, sweep float32, forceMove bool) {
		path(p).arcToOval(rectFromNative(oval), f(start), f(sweep), forceMove)
	}
	l.PathClose = func(p native.Handle) { path(p).close() }
	l.PathAddRect = func(p native.Handle, r *native.Rect, dir native.PathDirection) {
		path(p).addRect(rectFromNative(r), dir == native.PathDirectionCCW)
	}
	l.PathAddOval = func(p native.Handle, r *native.Rect, dir native.PathDirection) {
		path(p).addOval(rectFromNative(r), dir == native.PathDirectionCCW)
	}
	l.PathAddCircle = func(p native.Handle, cx, cy, radius float32, dir native.PathDirection) {
		path(p).addCircle(f(cx), f(cy), f(radius), dir == native.PathDirectionCCW)
	}
	l.PathAddArc = func(p native.Handle, oval *native.Rect, start, sweep float32) {
		pd := path(p)
		if sweep >= 360 || sweep <= -360 {
			pd.addOval(rectFromNative(oval), sweep < 0)
			return
		}
		pd.arcToOval(rectFromNative(oval), f(start), f(sweep), true)
	}
	addPath := func(p, other native.Handle, m mat3, mode int32) {
		src := get[*pathData](t, other)
		if src == nil {
			return
		}
		path(p).addPath(src, m, mode == 1)
	}
	l.PathAddPath = func(p, other native.Handle, mode int32) { addPath(p, other, identity(), mode) }
	l.PathAddPathOffset = func(p, other native.Handle, dx, dy float32, mode int32) {
		addPath(p, other, translate(f(dx), f(dy)), mode)
	}
	l.PathAddPathMatrix = func(p, other native.Handle, m *native.Matrix, mode int32) {
		addPath(p, other, matFromNative(m), mode)
	}
	l.PathGetFillType = func(p native.Handle) native.FillType { return native.FillType(path(p).Fill) }
	l.PathSetFillType = func(p native.Handle, ft native.FillType) { path(p).Fill = int32(ft) }
	l.PathGetBounds = func(p native.Handle, r *native.Rect) { *r = path(p).bounds().toNative() }
	l.PathContains = func(p native.Handle, x, y float32) bool { return path(p).contains(f(x), f(y)) }
	l.PathTransform = func(p native.Handle, m *native.Matrix) { path(p).transform(matFromNative(m)) }
	l.PathCountPoints = func(p native.Handle) int32 { return int32(path(p).numPoints()) }
	l.PathCountVerbs = func(p native.Handle) int32 { return int32(len(path(p).Verbs)) }
}

func (e *Engine) bindImage(l *native.Lib, t *handleTable) {
	l.ImageUnref = func(i native.Handle) { t.remove(i) }
	l.ImageGetWidth = func(i native.Handle) int32 {
		if im := get[*imageData](t, i); im != nil {
			return int32(im.pix.Rect.Dx())
		}
		return 0
	}
	l.ImageGetHeight = func(i native.Handle) int32 {
		if im := get[*imageData](t, i); im != nil {
			return int32(im.pix.Rect.Dy())
		}
		return 0
	}
	l.ImageGetUniqueID = func(i native.Handle) uint32 {
		if im := get[*imageData](t, i); im != nil {
			return im.id
		}
		return 0
	}
	l.ImageNewFromEncoded = func(d native.Handle) native.Handle {
		dd := get[*dataData](t, d)
		if dd == nil {
			return 0
		}
		return addObj(t, KindImage, decodeImage(dd.b))
	}
	l.ImagePeekPixels = func(i, pm native.Handle) bool {
		im, p := get[*imageData](t, i), get[*pixmapData](t, pm)
		if im == nil || p == nil {
			return false
		}
		p.pix = im.pix
		return true
	}

	l.PixmapNew = func() native.Handle { return t.add(KindPixmap, &pixmapData{}) }
	l.PixmapDestructor = func(p native.Handle) { t.remove(p) }
	l.PixmapGetInfo = func(p native.Handle, info *native.ImageInfo) {
		if pm := get[*pixmapData](t, p); pm != nil {
			*info = pm.info()
		}
	}

	target := func(s, pm native.Handle) (wstream, *image.RGBA) {
		w, _ := t.lookup(s).(wstream)
		p := get[*pixmapData](t, pm)
		if w == nil || p == nil || p.pix == nil {
			return nil, nil
		}
		return w, p.pix
	}
	l.PNGEncoderEncode = func(s, pm native.Handle, opts *native.PNGEncoderOptions) bool {
		w, pix := target(s, pm)
		return w != nil && encodePNG(w, pix, opts)
	}
	l.JPEGEncoderEncode = func(s, pm native.Handle, opts *native.JPEGEncoderOptions) bool {
		w, pix := target(s, pm)
		return w != nil && encodeJPEG(w, pix, opts)
	}
	// No WebP encoder is available in process.
	l.WebPEncoderEncode = func(native.Handle, native.Handle, *native.WebPEncoderOptions) bool { return false }
}

func (e *Engine) bindData(l *native.Lib, t *handleTable) {
	l.DataNewWithCopy = func(src unsafe.Pointer, n uintptr) native.Handle {
		return t.add(KindData, &dataData{b: append([]byte{}, bytesOf(src, n)...)})
	}
	l.DataNewFromFile = func(path string) native.Handle {
		b, err := os.ReadFile(path)
		if err != nil {
			return 0
		}
		return t.add(KindData, &dataData{b: b})
	}
	l.DataUnref = func(d native.Handle) { t.remove(d) }
	l.DataGetSize = func(d native.Handle) uintptr {
		if dd := get[*dataData](t, d); dd != nil {
			return uintptr(len(dd.b))
		}
		return 0
	}
	l.DataGetData = func(d native.Handle) unsafe.Pointer {
		if dd := get[*dataData](t, d); dd != nil && len(dd.b) > 0 {
			return unsafe.Pointer(&dd.b[0])
		}
		return nil
	}

	l.DynamicMemoryWStreamNew = func() native.Handle { return t.add(KindStream, &memoryStream{}) }
	l.DynamicMemoryWStreamDestroy = func(s native.Handle) { t.remove(s) }
	l.DynamicMemoryWStreamDetachAsData = func(s native.Handle) native.Handle {
		ms := get[*memoryStream](t, s)
		if ms == nil {
			return 0
		}
		return t.add(KindData, ms.detach())
	}
	l.FileWStreamNew = func(path string) native.Handle {
		return addObj(t, KindStream, newFileStream(path))
	}
	l.FileWStreamDestroy = func(s native.Handle) {
		if fs, ok := t.remove(s).(*fileStream); ok {
			_ = fs.close()
		}
	}
}

func (e *Engine) bindText(l *native.Lib, t *handleTable) {
	l.FontStyleNew = func(weight, width int32, slant native.FontSlant) native.Handle {
		return t.add(KindFontStyle, &fontStyleData{weight: weight, width: width, slant: slant})
	}
	l.FontStyleDelete = func(s native.Handle) { t.remove(s) }
	l.TypefaceCreateDefault = func() native.Handle { return t.add(KindTypeface, builtin("regular")) }
	l.TypefaceCreateFromName = func(name string, style native.Handle) native.Handle {
		st := fontStyleData{weight: 400, width: 5}
		if s := get[*fontStyleData](t, style); s != nil {
			st = *s
		}
		return t.add(KindTypeface, builtin(builtinKey(name, st.weight, st.slant)))
	}
	l.TypefaceCreateFromFile = func(path string, index int32) native.Handle {
		tf, err := typefaceFromFile(path, int(index))
		if err != nil {
			return 0
		}
		return t.add(KindTypeface, tf)
	}
	l.TypefaceUnref = func(tf native.Handle) { t.remove(tf) }

	face := func(h native.Handle) *typefaceData {
		if tf := get[*typefaceData](t, h); tf != nil {
			return tf
		}
		return builtin("regular")
	}
	font := func(h native.Handle) *fontData {
		if f := get[*fontData](t, h); f != nil {
			return f
		}
		return &fontData{face: builtin("regular"), size: 12, scaleX: 1}
	}
	l.FontNew = func() native.Handle {
		return t.add(KindFont, &fontData{face: builtin("regular"), size: 12, scaleX: 1})
	}
	l.FontNewWithValues = func(tf native.Handle, size, scaleX, skewX float32) native.Handle {
		if size < 0 {
			return 0
		}
		return t.add(KindFont, &fontData{face: face(tf), size: float64(size), scaleX: float64(scaleX), skewX: float64(skewX)})
	}
	l.FontDelete = func(f native.Handle) { t.remove(f) }
	l.FontSetTypeface = func(f, tf native.Handle) { font(f).face = face(tf) }
	l.FontGetTypeface = func(f native.Handle) native.Handle { return t.add(KindTypeface, font(f).face) }
	l.FontSetSize = func(f native.Handle, size float32) {
		if size >= 0 {
			font(f).size = float64(size)
		}
	}
	l.FontGetSize = func(f native.Handle) float32 { return float32(font(f).size) }
	l.FontGetMetrics = func(f native.Handle, m *native.FontMetrics) float32 {
		var fm native.FontMetrics
		spacing := font(f).metrics(&fm)
		if m != nil {
			*m = fm
		}
		return float32(spacing)
	}
	l.FontMeasureText = func(f native.Handle, text unsafe.Pointer, n uintptr, enc native.TextEncoding, bounds *native.Rect, p native.Handle) float32 {
		w, b := font(f).measure(bytesOf(text, n), enc)
		if pd := optPaint(t, p); pd != nil && native.PaintStyle(pd.Style) != native.PaintStyleFill && !b.empty() {
			hw := pd.Width / 2
			b = rect{b.l - hw, b.t - hw, b.r + hw, b.b + hw}
		}
		if bounds != nil {
			*bounds = b.toNative()
		}
		return float32(w)
	}
}

func (e *Engine) bindShader(l *native.Lib, t *handleTable) {
	l.ShaderUnref = func(s native.Handle) { t.remove(s) }
	l.ShaderNewLinearGradient = func(pts *native.Point, colors *native.Color, pos *float32, n int32, mode native.TileMode, local *native.Matrix) native.Handle {
		p := sliceOf(pts, 2)
		if p == nil {
			return 0
		}
		xy := []float64{float64(p[0][0]), float64(p[0][1]), float64(p[1][0]), float64(p[1][1])}
		return addObj(t, KindShader, newShader(gradientLinear, xy, colors, pos, n, mode, local))
	}
	l.ShaderNewRadialGradient = func(center *native.Point, radius float32, colors *native.Color, pos *float32, n int32, mode native.TileMode, local *native.Matrix) native.Handle {
		if center == nil || radius < 0 {
			return 0
		}
		xy := []float64{float64(center[0]), float64(center[1]), float64(radius)}
		return addObj(t, KindShader, newShader(gradientRadial, xy, colors, pos, n, mode, local))
	}
	l.ShaderNewSweepGradient = func(center *native.Point, colors *native.Color, pos *float32, n int32, mode native.TileMode, start, end float32, local *native.Matrix) native.Handle {
		if center == nil || start >= end {
			return 0
		}
		sh := newShader(gradientSweep, []float64{float64(center[0]), float64(center[1])}, colors, pos, n, mode, local)
		if sh != nil {
			sh.Start, sh.End = float64(start), float64(end)
		}
		return addObj(t, KindShader, sh)
	}
}

func (e *Engine) bindDocument(l *native.Lib, t *handleTable) {
	l.DocumentCreatePDFFromStream = func(s native.Handle) native.Handle {
		w, _ := t.lookup(s).(wstream)
		if w == nil {
			return 0
		}
		return t.add(KindDocument, newPDFDocument(w))
	}
	endPage := func(d *pdfDocument) {
		t.forget(d.pageH)
		d.pageH = 0
		d.endPage()
	}
	l.DocumentBeginPage = func(d native.Handle, w, h float32, _ *native.Rect) native.Handle {
		doc := get[*pdfDocument](t, d)
		if doc == nil {
			return 0
		}
		endPage(doc)
		c := doc.beginPage(float64(w), float64(h))
		if c == nil {
			return 0
		}
		doc.pageH = t.add(KindCanvas, c)
		return doc.pageH
	}
	l.DocumentEndPage = func(d native.Handle) {
		if doc := get[*pdfDocument](t, d); doc != nil {
			endPage(doc)
		}
	}
	l.DocumentClose = func(d native.Handle) {
		if doc := get[*pdfDocument](t, d); doc != nil {
			endPage(doc)
			_ = doc.close()
		}
	}
	l.DocumentAbort = func(d native.Handle) {
		if doc := get[*pdfDocument](t, d); doc != nil {
			endPage(doc)
			doc.abort()
		}
	}
	l.DocumentUnref = func(d native.Handle) {
		doc := t.remove(d).(*pdfDocument)
		t.forget(doc.pageH)
		if !doc.closed {
			doc.abort()
		}
	}
}

func (e *Engine) bindPicture(l *native.Lib, t *handleTable) {
	l.PictureRecorderNew = func() native.Handle { return t.add(KindRecorder, &recorderData{}) }
	l.PictureRecorderDelete = func(r native.Handle) {
		rd := t.remove(r).(*recorderData)
		t.forget(rd.canvasH)
	}
	l.PictureRecorderBeginRecording = func(r native.Handle, bounds *native.Rect) native.Handle {
		rd := get[*recorderData](t, r)
		if rd == nil || bounds == nil {
			return 0
		}
		t.forget(rd.canvasH)
		rd.cull = rectFromNative(bounds)
		rd.canvas = newRecordingCanvas(rd.cull, &recording{pool: &resourcePool{}})
		rd.canvasH = t.add(KindCanvas, rd.canvas)
		return rd.canvasH
	}
	l.PictureGetRecordingCanvas = func(r native.Handle) native.Handle {
		if rd := get[*recorderData](t, r); rd != nil {
			return rd.canvasH
		}
		return 0
	}
	l.PictureRecorderEndRecording = func(r native.Handle) native.Handle {
		rd := get[*recorderData](t, r)
		if rd == nil || rd.canvas == nil {
			return 0
		}
		pic := newPicture(rd.cull, rd.canvas.rec)
		t.forget(rd.canvasH)
		rd.canvas, rd.canvasH = nil, 0
		return t.add(KindPicture, pic)
	}

	l.PictureUnref = func(p native.Handle) { t.remove(p) }
	l.PictureGetUniqueID = func(p native.Handle) uint32 {
		if pic := get[*pictureData](t, p); pic != nil {
			return pic.id
		}
		return 0
	}
	l.PictureGetCullRect = func(p native.Handle, r *native.Rect) {
		if pic := get[*pictureData](t, p); pic != nil {
			*r = pic.Cull.toNative()
		}
	}
	l.PicturePlayback = func(p, c native.Handle) {
		if pic := get[*pictureData](t, p); pic != nil {
			withCanvas(t, c, pic.playback)
		}
	}
	l.PictureSerializeToData = func(p native.Handle) native.Handle {
		pic := get[*pictureData](t, p)
		if pic == nil {
			return 0
		}
		b, err := serializePicture(pic)
		if err != nil {
			return 0
		}
		return t.add(KindData, &dataData{b: b})
	}
	l.PictureDeserializeFromData = func(d native.Handle) native.Handle {
		dd := get[*dataData](t, d)
		if dd == nil {
			return 0
		}
		pic, err := deserializePicture(dd.b)
		if err != nil {
			return 0
		}
		return t.add(KindPicture, pic)
	}
	l.PictureApproximateOpCount = func(p native.Handle, nested bool) int32 {
		if pic := get[*pictureData](t, p); pic != nil {
			return int32(pic.opCount(nested))
		}
		return 0
	}
	l.PictureApproximateBytesUsed = func(p native.Handle) uintptr {
		if pic := get[*pictureData](t, p); pic != nil {
			return uintptr(pic.bytesUsed())
		}
		return 0
	}
}
