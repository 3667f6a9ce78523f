package softengine

import (
	"bytes"
	"fmt"
	"image"
	"math"

	"codeberg.org/go-pdf/fpdf"

	"github.com/gogpu/skia/internal/native"
)

// pdfDocument renders pages through fpdf and writes the file to its
// stream on close. Nothing is written for a document without pages.
type pdfDocument struct {
	stream wstream
	pdf    *fpdf.Fpdf
	page   *canvas
	pageH  native.Handle
	pages  int
	closed bool
	images int
}

func newPDFDocument(stream wstream) *pdfDocument {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.SetCreator("skia softengine", false)
	return &pdfDocument{stream: stream, pdf: pdf}
}

func (d *pdfDocument) beginPage(w, h float64) *canvas {
	if d.closed || w <= 0 || h <= 0 {
		return nil
	}
	d.pdf.AddPageFormat("P", fpdf.SizeType{Wd: w, Ht: h})
	d.pages++
	d.page = newCanvas(&pdfDevice{doc: d, w: w, h: h})
	return d.page
}

func (d *pdfDocument) endPage() {
	d.page = nil
}

func (d *pdfDocument) close() error {
	if d.closed {
		return nil
	}
	d.endPage()
	d.closed = true
	if d.pages == 0 {
		return nil
	}
	return d.pdf.Output(d.stream)
}

func (d *pdfDocument) abort() {
	d.endPage()
	d.closed = true
}

// pdfDevice draws one page. Fills become PDF paths in page coordinates;
// gradients are approximated by their first color and layers are flattened.
type pdfDevice struct {
	doc  *pdfDocument
	w, h float64
}

func (p *pdfDevice) bounds() image.Rectangle {
	return image.Rect(0, 0, int(math.Ceil(p.w)), int(math.Ceil(p.h)))
}

var pdfBlendNames = map[native.BlendMode]string{
	native.BlendModeMultiply:   "Multiply",
	native.BlendModeScreen:     "Screen",
	native.BlendModeOverlay:    "Overlay",
	native.BlendModeDarken:     "Darken",
	native.BlendModeLighten:    "Lighten",
	native.BlendModeColorDodge: "ColorDodge",
	native.BlendModeColorBurn:  "ColorBurn",
	native.BlendModeHardLight:  "HardLight",
	native.BlendModeSoftLight:  "SoftLight",
	native.BlendModeDifference: "Difference",
	native.BlendModeExclusion:  "Exclusion",
	native.BlendModeHue:        "Hue",
	native.BlendModeSaturation: "Saturation",
	native.BlendModeColor:      "Color",
	native.BlendModeLuminosity: "Luminosity",
}

func (p *pdfDevice) style(paint *paintData) {
	c := paint.Color
	alpha := float64(c>>24) / 255
	if paint.Shader != nil {
		first := paint.Shader.firstColor()
		alpha *= float64(first>>24) / 255
		c = first
	}
	mode, ok := pdfBlendNames[native.BlendMode(paint.Blend)]
	if !ok {
		mode = "Normal"
	}
	p.doc.pdf.SetFillColor(int(c>>16&0xff), int(c>>8&0xff), int(c&0xff))
	p.doc.pdf.SetAlpha(alpha, mode)
}

// clipped runs draw inside the clip rectangle when it is narrower than the
// page. Mask clips are approximated by their bounds.
func (p *pdfDevice) clipped(cl clipState, draw func()) {
	if cl.r.Empty() {
		return
	}
	pdf := p.doc.pdf
	if cl.r == p.bounds() {
		draw()
		return
	}
	r := cl.r
	pdf.ClipRect(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()), false)
	draw()
	pdf.ClipEnd()
}

func (p *pdfDevice) fill(f fillSpec) {
	pdf := p.doc.pdf
	p.clipped(f.clip, func() {
		p.style(f.paint)
		if f.inverse {
			r := f.clip.r
			pdf.MoveTo(float64(r.Min.X), float64(r.Min.Y))
			pdf.LineTo(float64(r.Max.X), float64(r.Min.Y))
			pdf.LineTo(float64(r.Max.X), float64(r.Max.Y))
			pdf.LineTo(float64(r.Min.X), float64(r.Max.Y))
			pdf.ClosePath()
		}
		n := 0
		for _, poly := range f.polys {
			if len(poly) < 3 {
				continue
			}
			pdf.MoveTo(float64(poly[0][0]), float64(poly[0][1]))
			for _, v := range poly[1:] {
				pdf.LineTo(float64(v[0]), float64(v[1]))
			}
			pdf.ClosePath()
			n++
		}
		if n == 0 && !f.inverse {
			return
		}
		if f.evenOdd || f.inverse {
			pdf.DrawPath("F*")
		} else {
			pdf.DrawPath("F")
		}
	})
}

func (p *pdfDevice) drawImage(img *imageData, src, dst rect, ctm mat3, paint *paintData, cl clipState) {
	sr := image.Rect(int(math.Floor(src.l)), int(math.Floor(src.t)), int(math.Ceil(src.r)), int(math.Ceil(src.b))).
		Intersect(img.pix.Rect)
	if sr.Empty() || dst.empty() {
		return
	}
	sub, ok := img.pix.SubImage(sr).(*image.RGBA)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if !encodePNG(&buf, sub, nil) {
		return
	}
	d := p.doc
	d.images++
	name := fmt.Sprintf("img%d", d.images)
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	d.pdf.RegisterImageOptionsReader(name, opts, &buf)
	at := ctm.mapRect(dst)
	p.clipped(cl, func() {
		alpha := 1.0
		if paint != nil {
			alpha = float64(paint.Color>>24) / 255
		}
		d.pdf.SetAlpha(alpha, "Normal")
		d.pdf.ImageOptions(name, at.l, at.t, at.r-at.l, at.b-at.t, false, opts, 0, "")
	})
}

func (p *pdfDevice) pushLayer(image.Rectangle, *paintData, clipState) {}

func (p *pdfDevice) popLayer() {}
