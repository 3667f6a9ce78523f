package softengine

import (
	"image"
	"image/color"
	"math"
	"slices"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/vector"

	"github.com/gogpu/skia/internal/native"
)

// clipState is a device clip: an integer rectangle plus an optional
// coverage mask over the whole device.
type clipState struct {
	r    image.Rectangle
	mask *image.Alpha
}

func (cl clipState) coverage(x, y int) float32 {
	if cl.mask == nil {
		return 1
	}
	return float32(cl.mask.Pix[cl.mask.PixOffset(x, y)]) / 255
}

// fillSpec is one filled draw in device space.
type fillSpec struct {
	polys   []polygon
	evenOdd bool
	inverse bool
	paint   *paintData
	ctm     mat3
	clip    clipState
}

// device is a drawing target behind a canvas.
type device interface {
	bounds() image.Rectangle
	fill(f fillSpec)
	drawImage(img *imageData, src, dst rect, ctm mat3, p *paintData, cl clipState)
	pushLayer(bounds image.Rectangle, p *paintData, cl clipState)
	popLayer()
}

type rasterLayer struct {
	img   *image.RGBA
	paint *paintData
	clip  clipState
}

// rasterDevice draws into premultiplied RGBA pixels.
type rasterDevice struct {
	layers []rasterLayer
}

func newRasterDevice(img *image.RGBA) *rasterDevice {
	return &rasterDevice{layers: []rasterLayer{{img: img}}}
}

func (d *rasterDevice) top() *image.RGBA { return d.layers[len(d.layers)-1].img }

func (d *rasterDevice) bounds() image.Rectangle { return d.layers[0].img.Rect }

func (d *rasterDevice) fill(f fillSpec) {
	area := f.clip.r
	if area.Empty() {
		return
	}
	p := f.paint
	pad := 0
	if p.Blur != nil && !f.inverse {
		pad = int(math.Ceil(3*p.Blur.Sigma*f.ctm.scaleFactor())) + 1
	}
	var b image.Rectangle
	if f.inverse {
		b = area
	} else {
		pb := polygonsBounds(f.polys)
		b = image.Rect(int(math.Floor(pb.l))-pad, int(math.Floor(pb.t))-pad,
			int(math.Ceil(pb.r))+pad, int(math.Ceil(pb.b))+pad)
		if p.Blur == nil {
			b = b.Intersect(area)
		}
	}
	if b.Empty() {
		return
	}
	cov := rasterize(f.polys, f.evenOdd, p.AA, b)
	if f.inverse {
		for i, v := range cov.Pix {
			cov.Pix[i] = 255 - v
		}
	}
	if p.Blur != nil {
		cov = blurMask(cov, p.Blur, f.ctm.scaleFactor())
	}
	d.composite(cov, d.sourceFor(p, f.ctm), p.Blend, f.clip)
}

func (d *rasterDevice) sourceFor(p *paintData, ctm mat3) source {
	if p.Shader != nil {
		return shaderSource(p.Shader, ctm, float64(p.Color>>24)/255)
	}
	return solidSource(p.Color)
}

// composite blends src into the top layer through cov and the clip.
func (d *rasterDevice) composite(cov *image.Alpha, src source, mode int32, cl clipState) {
	dst := d.top()
	blend := blendFor(native.BlendMode(mode))
	r := cov.Rect.Intersect(cl.r).Intersect(dst.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := float32(cov.Pix[cov.PixOffset(x, y)]) / 255 * cl.coverage(x, y)
			if c == 0 {
				continue
			}
			i := dst.PixOffset(x, y)
			dp := readPx(dst.Pix[i:])
			writePx(dst.Pix[i:], dp.lerp(blend(src(x, y), dp), c))
		}
	}
}

func readPx(b []uint8) px {
	return px{float32(b[0]) / 255, float32(b[1]) / 255, float32(b[2]) / 255, float32(b[3]) / 255}
}

func writePx(b []uint8, p px) {
	p = p.clamp()
	p.r, p.g, p.b = min(p.r, p.a), min(p.g, p.a), min(p.b, p.a)
	b[0] = uint8(p.r*255 + 0.5)
	b[1] = uint8(p.g*255 + 0.5)
	b[2] = uint8(p.b*255 + 0.5)
	b[3] = uint8(p.a*255 + 0.5)
}

func (d *rasterDevice) drawImage(img *imageData, src, dst rect, ctm mat3, p *paintData, cl clipState) {
	if src.empty() || dst.empty() || cl.r.Empty() {
		return
	}
	xf := ctm.mul(translate(dst.l, dst.t)).
		mul(scale((dst.r-dst.l)/(src.r-src.l), (dst.b-dst.t)/(src.b-src.t))).
		mul(translate(-src.l, -src.t))
	sr := image.Rect(int(math.Floor(src.l)), int(math.Floor(src.t)), int(math.Ceil(src.r)), int(math.Ceil(src.b))).
		Intersect(img.pix.Rect)
	target, ok := d.top().SubImage(cl.r).(*image.RGBA)
	if !ok || sr.Empty() {
		return
	}
	op := xdraw.Over
	var opts xdraw.Options
	if p != nil {
		if native.BlendMode(p.Blend) == native.BlendModeSrc {
			op = xdraw.Src
		}
		if a := uint8(p.Color >> 24); a < 0xff {
			opts.SrcMask = image.NewUniform(color.Alpha{A: a})
		}
	}
	if cl.mask != nil {
		opts.DstMask = cl.mask
	}
	if xf[0] == 1 && xf[1] == 0 && xf[3] == 0 && xf[4] == 1 && xf[6] == 0 && xf[7] == 0 &&
		xf[2] == math.Trunc(xf[2]) && xf[5] == math.Trunc(xf[5]) {
		// Integer translation: copy pixels exactly.
		off := image.Pt(int(xf[2]), int(xf[5]))
		dr := sr.Add(off).Intersect(target.Rect)
		xdraw.DrawMask(target, dr, img.pix, dr.Min.Sub(off), maskOrNil(opts.SrcMask, opts.DstMask, dr), dr.Min, op)
		return
	}
	aff := f64.Aff3{xf[0], xf[1], xf[2], xf[3], xf[4], xf[5]}
	xdraw.BiLinear.Transform(target, aff, img.pix, sr, op, &opts)
}

// maskOrNil folds a uniform source alpha and a clip mask into one mask
// for an exact copy.
func maskOrNil(srcMask, dstMask image.Image, r image.Rectangle) image.Image {
	if srcMask == nil && dstMask == nil {
		return nil
	}
	if dstMask == nil {
		return srcMask
	}
	out := image.NewAlpha(r)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			_, _, _, a := dstMask.At(x, y).RGBA()
			if srcMask != nil {
				_, _, _, sa := srcMask.At(x, y).RGBA()
				a = a * sa / 0xffff
			}
			out.SetAlpha(x, y, color.Alpha{A: uint8(a >> 8)})
		}
	}
	return out
}

func (d *rasterDevice) pushLayer(bounds image.Rectangle, p *paintData, cl clipState) {
	base := d.bounds()
	d.layers = append(d.layers, rasterLayer{
		img:   image.NewRGBA(base),
		paint: p,
		clip:  clipState{r: cl.r.Intersect(bounds), mask: cl.mask},
	})
}

func (d *rasterDevice) popLayer() {
	if len(d.layers) < 2 {
		return
	}
	l := d.layers[len(d.layers)-1]
	d.layers = d.layers[:len(d.layers)-1]
	alpha := float32(1)
	mode := int32(native.BlendModeSrcOver)
	if l.paint != nil {
		alpha = float32(l.paint.Color>>24) / 255
		mode = l.paint.Blend
	}
	cov := image.NewAlpha(l.clip.r)
	for i := range cov.Pix {
		cov.Pix[i] = 0xff
	}
	src := func(x, y int) px {
		return readPx(l.img.Pix[l.img.PixOffset(x, y):]).scale(alpha)
	}
	d.composite(cov, src, mode, l.clip)
}

// rasterize computes the coverage of polys within b.
func rasterize(polys []polygon, evenOdd, aa bool, b image.Rectangle) *image.Alpha {
	var cov *image.Alpha
	if evenOdd {
		cov = scanEvenOdd(polys, b)
	} else {
		cov = image.NewAlpha(b)
		z := vector.NewRasterizer(b.Dx(), b.Dy())
		z.DrawOp = xdraw.Src
		ox, oy := float32(b.Min.X), float32(b.Min.Y)
		for _, p := range polys {
			if len(p) < 3 {
				continue
			}
			z.MoveTo(p[0][0]-ox, p[0][1]-oy)
			for _, v := range p[1:] {
				z.LineTo(v[0]-ox, v[1]-oy)
			}
			z.ClosePath()
		}
		z.Draw(cov, b, image.Opaque, image.Point{})
	}
	if !aa {
		for i, v := range cov.Pix {
			if v >= 0x80 {
				cov.Pix[i] = 0xff
			} else {
				cov.Pix[i] = 0
			}
		}
	}
	return cov
}

// scanEvenOdd rasterizes with the even-odd rule using four sub-scanlines
// per pixel row and exact horizontal span coverage.
func scanEvenOdd(polys []polygon, b image.Rectangle) *image.Alpha {
	const sub = 4
	out := image.NewAlpha(b)
	acc := make([]float32, b.Dx())
	var xs []float64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		clear(acc)
		for s := 0; s < sub; s++ {
			sy := float64(y) + (float64(s)+0.5)/sub
			xs = xs[:0]
			for _, p := range polys {
				for i := range p {
					j := (i + 1) % len(p)
					x0, y0 := float64(p[i][0]), float64(p[i][1])
					x1, y1 := float64(p[j][0]), float64(p[j][1])
					if (y0 <= sy) != (y1 <= sy) {
						xs = append(xs, x0+(sy-y0)*(x1-x0)/(y1-y0)-float64(b.Min.X))
					}
				}
			}
			slices.Sort(xs)
			for i := 0; i+1 < len(xs); i += 2 {
				addSpan(acc, xs[i], xs[i+1], 1.0/sub)
			}
		}
		row := out.Pix[(y-b.Min.Y)*out.Stride:]
		for x, v := range acc {
			row[x] = uint8(min(v, 1)*255 + 0.5)
		}
	}
	return out
}

func addSpan(acc []float32, x0, x1 float64, w float32) {
	x0 = math.Max(x0, 0)
	x1 = math.Min(x1, float64(len(acc)))
	if x1 <= x0 {
		return
	}
	i0, i1 := int(x0), int(x1)
	if i0 == i1 {
		acc[i0] += w * float32(x1-x0)
		return
	}
	acc[i0] += w * float32(float64(i0+1)-x0)
	for i := i0 + 1; i < i1; i++ {
		acc[i] += w
	}
	if i1 < len(acc) {
		acc[i1] += w * float32(x1-float64(i1))
	}
}

// blurData is a Gaussian mask filter.
type blurData struct {
	Style int32
	Sigma float64
}

// blurMask applies a separable Gaussian blur to cov and combines the
// result with the original according to the blur style.
func blurMask(cov *image.Alpha, bl *blurData, ctmScale float64) *image.Alpha {
	sigma := bl.Sigma * ctmScale
	if sigma <= 0 {
		return cov
	}
	kernel := gaussianKernel(sigma)
	half := len(kernel) / 2
	w, h := cov.Rect.Dx(), cov.Rect.Dy()
	src := make([]float32, w*h)
	for i := range src {
		src[i] = float32(cov.Pix[(i/w)*cov.Stride+i%w]) / 255
	}
	tmp := make([]float32, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var s float32
			for k, kv := range kernel {
				if xx := x + k - half; xx >= 0 && xx < w {
					s += src[y*w+xx] * kv
				}
			}
			tmp[y*w+x] = s
		}
	}
	out := image.NewAlpha(cov.Rect)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var s float32
			for k, kv := range kernel {
				if yy := y + k - half; yy >= 0 && yy < h {
					s += tmp[yy*w+x] * kv
				}
			}
			orig := src[y*w+x]
			switch native.BlurStyle(bl.Style) {
			case native.BlurStyleSolid:
				s = max(s, orig)
			case native.BlurStyleOuter:
				s *= 1 - orig
			case native.BlurStyleInner:
				s *= orig
			}
			out.Pix[y*out.Stride+x] = uint8(min(max(s, 0), 1)*255 + 0.5)
		}
	}
	return out
}

// gaussianKernel spans three standard deviations and sums to one.
func gaussianKernel(sigma float64) []float32 {
	half := int(math.Ceil(sigma * 3))
	k := make([]float32, 2*half+1)
	var sum float64
	for i := range k {
		x := float64(i - half)
		v := math.Exp(-(x * x) / (2 * sigma * sigma))
		k[i] = float32(v)
		sum += v
	}
	for i := range k {
		k[i] = float32(float64(k[i]) / sum)
	}
	return k
}
