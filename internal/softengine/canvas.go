package softengine

import (
	"image"
	"math"

	"github.com/gogpu/skia/internal/native"
)

type canvasState struct {
	m     mat3
	clip  clipState
	layer bool
}

// canvas tracks the save stack of one drawing target. Draws go to dev, or
// to rec while a picture is being recorded.
type canvas struct {
	dev   device
	rec   *recording
	area  image.Rectangle
	stack []canvasState
}

func newCanvas(dev device) *canvas {
	b := dev.bounds()
	return &canvas{dev: dev, area: b, stack: []canvasState{{m: identity(), clip: clipState{r: b}}}}
}

func newRecordingCanvas(cull rect, rec *recording) *canvas {
	b := image.Rect(int(math.Floor(cull.l)), int(math.Floor(cull.t)), int(math.Ceil(cull.r)), int(math.Ceil(cull.b)))
	return &canvas{rec: rec, area: b, stack: []canvasState{{m: identity(), clip: clipState{r: b}}}}
}

func (c *canvas) top() *canvasState { return &c.stack[len(c.stack)-1] }

func (c *canvas) saveCount() int32 { return int32(len(c.stack)) }

func (c *canvas) save() int32 {
	n := c.saveCount()
	if c.rec != nil {
		c.rec.add(command{Op: cmdSave})
	}
	st := *c.top()
	st.layer = false
	c.stack = append(c.stack, st)
	return n
}

func (c *canvas) saveLayer(bounds *rect, p *paintData) int32 {
	n := c.saveCount()
	st := *c.top()
	st.layer = true
	if c.rec != nil {
		cmd := command{Op: cmdSaveLayer, Paint: c.rec.pool.addPaint(p)}
		if bounds != nil {
			cmd.F = []float64{bounds.l, bounds.t, bounds.r, bounds.b}
		}
		c.rec.add(cmd)
	} else {
		lb := c.area
		if bounds != nil {
			dr := st.m.mapRect(*bounds)
			lb = image.Rect(int(math.Floor(dr.l)), int(math.Floor(dr.t)), int(math.Ceil(dr.r)), int(math.Ceil(dr.b)))
		}
		c.dev.pushLayer(lb, p, st.clip)
	}
	c.stack = append(c.stack, st)
	return n
}

func (c *canvas) restore() {
	if len(c.stack) <= 1 {
		return
	}
	if c.rec != nil {
		c.rec.add(command{Op: cmdRestore})
	}
	st := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	if st.layer && c.dev != nil {
		c.dev.popLayer()
	}
}

func (c *canvas) restoreToCount(n int32) {
	n = max(n, 1)
	for c.saveCount() > n {
		c.restore()
	}
}

func (c *canvas) concat(m mat3) {
	if c.rec != nil {
		c.rec.add(command{Op: cmdConcat, F: m[:]})
	}
	st := c.top()
	st.m = st.m.mul(m)
}

func (c *canvas) setMatrix(m mat3) {
	if c.rec != nil {
		c.rec.add(command{Op: cmdSetMatrix, F: m[:]})
	}
	c.top().m = m
}

func (c *canvas) clipRect(r rect, op native.ClipOp, aa bool) {
	if c.rec != nil {
		c.rec.add(command{Op: cmdClipRect, F: []float64{r.l, r.t, r.r, r.b}, Mode: int32(op), Flag: aa})
	}
	st := c.top()
	if op == native.ClipOpIntersect && st.m.rectStaysRect() {
		dr := st.m.mapRect(r)
		if !aa || (dr.l == math.Trunc(dr.l) && dr.t == math.Trunc(dr.t) && dr.r == math.Trunc(dr.r) && dr.b == math.Trunc(dr.b)) {
			ir := image.Rect(int(math.Round(dr.l)), int(math.Round(dr.t)), int(math.Round(dr.r)), int(math.Round(dr.b)))
			st.clip.r = st.clip.r.Intersect(ir)
			return
		}
	}
	p := newPath()
	p.addRect(r, false)
	c.clipShape(p, op, aa)
}

func (c *canvas) clipPath(p *pathData, op native.ClipOp, aa bool) {
	if c.rec != nil {
		c.rec.add(command{Op: cmdClipPath, Path: c.rec.pool.addPath(p), Mode: int32(op), Flag: aa})
	}
	c.clipShape(p, op, aa)
}

// clipShape folds the coverage of p into the clip mask.
func (c *canvas) clipShape(p *pathData, op native.ClipOp, aa bool) {
	st := c.top()
	polys := mapPolygons(st.m, p.polygons(tolerance(st.m)))
	cov := rasterize(polys, p.evenOdd(), aa, c.area)
	inverse := p.inverse()
	if op == native.ClipOpDifference {
		inverse = !inverse
	}
	mask := image.NewAlpha(c.area)
	for i, v := range cov.Pix {
		if inverse {
			v = 255 - v
		}
		old := uint32(255)
		if st.clip.mask != nil {
			old = uint32(st.clip.mask.Pix[i])
		}
		mask.Pix[i] = uint8(old * uint32(v) / 255)
	}
	st.clip.mask = mask
	if !inverse {
		b := polygonsBounds(polys)
		ir := image.Rect(int(math.Floor(b.l)), int(math.Floor(b.t)), int(math.Ceil(b.r)), int(math.Ceil(b.b)))
		st.clip.r = st.clip.r.Intersect(ir)
	}
}

// tolerance is the flattening tolerance in local units for a quarter
// device pixel.
func tolerance(m mat3) float64 {
	return 0.25 / m.scaleFactor()
}

func (c *canvas) drawPaint(p *paintData) {
	if c.rec != nil {
		c.rec.add(command{Op: cmdDrawPaint, Paint: c.rec.pool.addPaint(p)})
		return
	}
	st := c.top()
	pp := p.clone()
	pp.Blur = nil
	c.dev.fill(fillSpec{inverse: true, paint: pp, ctm: st.m, clip: st.clip})
}

func (c *canvas) clear(color uint32) {
	if c.rec != nil {
		c.rec.add(command{Op: cmdClear, Color: color})
		return
	}
	p := defaultPaint()
	p.Color = color
	p.Blend = int32(native.BlendModeSrc)
	c.drawPaint(p)
}

func (c *canvas) drawColor(color uint32, mode native.BlendMode) {
	if c.rec != nil {
		c.rec.add(command{Op: cmdDrawColor, Color: color, Mode: int32(mode)})
		return
	}
	p := defaultPaint()
	p.Color = color
	p.Blend = int32(mode)
	c.drawPaint(p)
}

func (c *canvas) drawRect(r rect, p *paintData) {
	if c.rec != nil {
		c.rec.add(command{Op: cmdDrawRect, F: []float64{r.l, r.t, r.r, r.b}, Paint: c.rec.pool.addPaint(p)})
		return
	}
	path := newPath()
	path.addRect(r, false)
	c.drawShape(path, p)
}

func (c *canvas) drawRoundRect(r rect, rx, ry float64, p *paintData) {
	if c.rec != nil {
		c.rec.add(command{Op: cmdDrawRoundRect, F: []float64{r.l, r.t, r.r, r.b, rx, ry}, Paint: c.rec.pool.addPaint(p)})
		return
	}
	path := newPath()
	path.addRoundRect(r, rx, ry)
	c.drawShape(path, p)
}

func (c *canvas) drawCircle(cx, cy, radius float64, p *paintData) {
	if c.rec != nil {
		c.rec.add(command{Op: cmdDrawCircle, F: []float64{cx, cy, radius}, Paint: c.rec.pool.addPaint(p)})
		return
	}
	path := newPath()
	path.addCircle(cx, cy, radius, false)
	c.drawShape(path, p)
}

func (c *canvas) drawOval(r rect, p *paintData) {
	if c.rec != nil {
		c.rec.add(command{Op: cmdDrawOval, F: []float64{r.l, r.t, r.r, r.b}, Paint: c.rec.pool.addPaint(p)})
		return
	}
	path := newPath()
	path.addOval(r, false)
	c.drawShape(path, p)
}

func (c *canvas) drawPath(path *pathData, p *paintData) {
	if c.rec != nil {
		c.rec.add(command{Op: cmdDrawPath, Path: c.rec.pool.addPath(path), Paint: c.rec.pool.addPaint(p)})
		return
	}
	c.drawShape(path, p)
}

// drawLine always strokes, whatever the paint style.
func (c *canvas) drawLine(x0, y0, x1, y1 float64, p *paintData) {
	if c.rec != nil {
		c.rec.add(command{Op: cmdDrawLine, F: []float64{x0, y0, x1, y1}, Paint: c.rec.pool.addPaint(p)})
		return
	}
	path := newPath()
	path.moveTo(x0, y0)
	path.lineTo(x1, y1)
	pp := p.clone()
	pp.Style = int32(native.PaintStyleStroke)
	c.drawShape(path, pp)
}

// drawPoint draws a dot the size of the stroke width, round or square
// by the paint's cap.
func (c *canvas) drawPoint(x, y float64, p *paintData) {
	if c.rec != nil {
		c.rec.add(command{Op: cmdDrawPoint, F: []float64{x, y}, Paint: c.rec.pool.addPaint(p)})
		return
	}
	st := c.top()
	hw := p.Width / 2
	if hw <= 0 {
		hw = 0.5 / st.m.scaleFactor()
	}
	path := newPath()
	if native.StrokeCap(p.Cap) == native.StrokeCapRound {
		path.addCircle(x, y, hw, false)
	} else {
		path.addRect(rect{x - hw, y - hw, x + hw, y + hw}, false)
	}
	pp := p.clone()
	pp.Style = int32(native.PaintStyleFill)
	c.drawShape(path, pp)
}

// drawShape fills or strokes path by the paint style.
func (c *canvas) drawShape(path *pathData, p *paintData) {
	st := c.top()
	tol := tolerance(st.m)
	spec := fillSpec{paint: p, ctm: st.m, clip: st.clip}
	style := native.PaintStyle(p.Style)
	if style == native.PaintStyleFill {
		spec.polys = mapPolygons(st.m, path.polygons(tol))
		spec.evenOdd = path.evenOdd()
		spec.inverse = path.inverse()
		c.dev.fill(spec)
		return
	}
	hw := p.Width / 2
	if p.Width <= 0 {
		hw = 0.5 / st.m.scaleFactor()
	}
	ss := strokeStyle{halfWidth: hw, miter: p.Miter, cap: native.StrokeCap(p.Cap), join: native.StrokeJoin(p.Join)}
	polys := strokePolygons(path.flatten(tol), ss)
	if style == native.PaintStyleStrokeAndFill {
		for _, poly := range path.polygons(tol) {
			polys = append(polys, orient(poly))
		}
	}
	spec.polys = mapPolygons(st.m, polys)
	if len(spec.polys) > 0 {
		c.dev.fill(spec)
	}
}

func (c *canvas) drawImageRect(img *imageData, src, dst rect, p *paintData) {
	if c.rec != nil {
		cmd := command{Op: cmdDrawImageRect, F: []float64{src.l, src.t, src.r, src.b, dst.l, dst.t, dst.r, dst.b}, Image: c.rec.pool.addImage(img)}
		if p != nil {
			cmd.Paint = c.rec.pool.addPaint(p)
		}
		c.rec.add(cmd)
		return
	}
	st := c.top()
	c.dev.drawImage(img, src, dst, st.m, p, st.clip)
}

func (c *canvas) drawImage(img *imageData, x, y float64, p *paintData) {
	w, h := float64(img.pix.Rect.Dx()), float64(img.pix.Rect.Dy())
	c.drawImageRect(img, rect{0, 0, w, h}, rect{x, y, x + w, y + h}, p)
}

func (c *canvas) drawText(text []byte, enc native.TextEncoding, x, y float64, f *fontData, p *paintData) {
	if c.rec != nil {
		c.rec.add(command{Op: cmdDrawText, F: []float64{x, y}, Text: append([]byte(nil), text...), Mode: int32(enc),
			Font: c.rec.pool.addFont(f), Paint: c.rec.pool.addPaint(p)})
		return
	}
	path := f.textPath(text, enc, x, y)
	if path == nil || len(path.Verbs) == 0 {
		return
	}
	c.drawShape(path, p)
}

// drawPicture plays pic back inside a save, or a layer when p is set, so
// the picture cannot leak state.
func (c *canvas) drawPicture(pic *pictureData, m *mat3, p *paintData) {
	if c.rec != nil {
		cmd := command{Op: cmdDrawPicture, Picture: c.rec.pool.addPicture(pic)}
		if m != nil {
			cmd.F = m[:]
		}
		if p != nil {
			cmd.Paint = c.rec.pool.addPaint(p)
		}
		c.rec.add(cmd)
		return
	}
	var n int32
	if p != nil {
		cull := pic.Cull
		if m != nil {
			cull = m.mapRect(cull)
		}
		n = c.saveLayer(&cull, p)
	} else {
		n = c.save()
	}
	if m != nil {
		c.concat(*m)
	}
	pic.playback(c)
	c.restoreToCount(n)
}
