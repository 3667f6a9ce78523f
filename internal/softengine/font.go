package softengine

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	gtfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"

	"github.com/gogpu/skia/internal/native"
)

// builtinPrefix names typefaces resolved from the bundled Go fonts. Their
// bytes are not stored in serialized pictures.
const builtinPrefix = "builtin:"

var builtinFaces = map[string][]byte{
	"regular":        goregular.TTF,
	"bold":           gobold.TTF,
	"italic":         goitalic.TTF,
	"bolditalic":     gobolditalic.TTF,
	"mono":           gomono.TTF,
	"monobold":       gomonobold.TTF,
	"monoitalic":     gomonoitalic.TTF,
	"monobolditalic": gomonobolditalic.TTF,
}

// typefaceData is a parsed font file. sfnt supplies outlines and bounds;
// go-text supplies shaping and line metrics.
type typefaceData struct {
	name  string
	data  []byte
	index int

	outline *sfnt.Font
	shape   *gtfont.Face

	mu  sync.Mutex
	buf sfnt.Buffer
}

// builtinKey picks a bundled face for a family and style.
func builtinKey(family string, weight int32, slant native.FontSlant) string {
	f := strings.ToLower(family)
	key := ""
	if strings.Contains(f, "mono") || strings.Contains(f, "courier") {
		key = "mono"
	}
	bold := weight >= 600
	italic := slant != native.FontSlantUpright
	switch {
	case bold && italic:
		key += "bolditalic"
	case bold:
		key += "bold"
	case italic:
		key += "italic"
	case key == "":
		key = "regular"
	}
	return key
}

// loadTypeface parses data, or the bundled face named by a builtin name.
func loadTypeface(name string, data []byte, index int) (*typefaceData, error) {
	if data == nil {
		key, ok := strings.CutPrefix(name, builtinPrefix)
		if !ok {
			return nil, fmt.Errorf("softengine: typeface %q has no data", name)
		}
		if data, ok = builtinFaces[key]; !ok {
			return nil, fmt.Errorf("softengine: unknown builtin typeface %q", key)
		}
	}
	coll, err := sfnt.ParseCollection(data)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= coll.NumFonts() {
		return nil, fmt.Errorf("softengine: face index %d out of range", index)
	}
	outline, err := coll.Font(index)
	if err != nil {
		return nil, err
	}
	faces, err := gtfont.ParseTTC(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if index >= len(faces) {
		return nil, errors.New("softengine: face index out of range")
	}
	tf := &typefaceData{name: name, index: index, outline: outline, shape: faces[index]}
	if !strings.HasPrefix(name, builtinPrefix) {
		tf.data = data
	}
	return tf, nil
}

func builtinTypeface(key string) *typefaceData {
	tf, err := loadTypeface(builtinPrefix+key, nil, 0)
	if err != nil {
		panic(err)
	}
	return tf
}

func typefaceFromFile(path string, index int) (*typefaceData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return loadTypeface(path, data, index)
}

// fontData is a typeface at a size.
type fontData struct {
	face   *typefaceData
	size   float64
	scaleX float64
	skewX  float64
}

func (f *fontData) clone() *fontData {
	cp := *f
	return &cp
}

func (f *fontData) ppem() fixed.Int26_6 {
	return fixed.Int26_6(f.size*64 + 0.5)
}

// glyph is a positioned glyph on the baseline.
type glyph struct {
	id      sfnt.GlyphIndex
	x, y    float64
	advance float64
}

var littleEndian = binary.NativeEndian.Uint16([]byte{1, 0}) == 1

func decodeText(text []byte, enc native.TextEncoding) ([]rune, error) {
	var d *encoding.Decoder
	switch enc {
	case native.TextEncodingUTF8:
		return []rune(string(text)), nil
	case native.TextEncodingUTF16:
		end := unicode.BigEndian
		if littleEndian {
			end = unicode.LittleEndian
		}
		d = unicode.UTF16(end, unicode.IgnoreBOM).NewDecoder()
	case native.TextEncodingUTF32:
		end := utf32.BigEndian
		if littleEndian {
			end = utf32.LittleEndian
		}
		d = utf32.UTF32(end, utf32.IgnoreBOM).NewDecoder()
	default:
		return nil, fmt.Errorf("softengine: encoding %d is not text", enc)
	}
	b, err := d.Bytes(text)
	if err != nil {
		return nil, err
	}
	return []rune(string(b)), nil
}

// layout positions the glyphs of text. Text is shaped; glyph IDs are
// placed by their advances.
func (f *fontData) layout(text []byte, enc native.TextEncoding) []glyph {
	tf := f.face
	if enc == native.TextEncodingGlyphID {
		tf.mu.Lock()
		defer tf.mu.Unlock()
		var out []glyph
		pen := 0.0
		for i := 0; i+1 < len(text); i += 2 {
			id := sfnt.GlyphIndex(binary.NativeEndian.Uint16(text[i:]))
			adv, err := tf.outline.GlyphAdvance(&tf.buf, id, f.ppem(), font.HintingNone)
			if err != nil {
				continue
			}
			a := float64(adv) / 64 * f.scaleX
			out = append(out, glyph{id: id, x: pen, advance: a})
			pen += a
		}
		return out
	}
	runes, err := decodeText(text, enc)
	if err != nil || len(runes) == 0 {
		return nil
	}
	var sh shaping.HarfbuzzShaper
	res := sh.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      tf.shape,
		Size:      f.ppem(),
		Script:    language.LookupScript(runes[0]),
		Language:  language.DefaultLanguage(),
	})
	out := make([]glyph, 0, len(res.Glyphs))
	pen := 0.0
	for _, g := range res.Glyphs {
		a := float64(g.XAdvance) / 64 * f.scaleX
		out = append(out, glyph{
			id:      sfnt.GlyphIndex(g.GlyphID),
			x:       pen + float64(g.XOffset)/64*f.scaleX,
			y:       -float64(g.YOffset) / 64,
			advance: a,
		})
		pen += a
	}
	return out
}

// textPath converts text to outlines with the baseline origin at (x, y).
func (f *fontData) textPath(text []byte, enc native.TextEncoding, x, y float64) *pathData {
	glyphs := f.layout(text, enc)
	tf := f.face
	tf.mu.Lock()
	defer tf.mu.Unlock()
	p := newPath()
	for _, g := range glyphs {
		segs, err := tf.outline.LoadGlyph(&tf.buf, g.id, f.ppem(), nil)
		if err != nil {
			continue
		}
		ox, oy := x+g.x, y+g.y
		pt := func(v fixed.Point26_6) (float64, float64) {
			gx, gy := float64(v.X)/64, float64(v.Y)/64
			return ox + gx*f.scaleX + gy*f.skewX, oy + gy
		}
		for _, s := range segs {
			switch s.Op {
			case sfnt.SegmentOpMoveTo:
				p.close()
				p.moveTo(pt(s.Args[0]))
			case sfnt.SegmentOpLineTo:
				p.lineTo(pt(s.Args[0]))
			case sfnt.SegmentOpQuadTo:
				x1, y1 := pt(s.Args[0])
				x2, y2 := pt(s.Args[1])
				p.quadTo(x1, y1, x2, y2)
			case sfnt.SegmentOpCubeTo:
				x1, y1 := pt(s.Args[0])
				x2, y2 := pt(s.Args[1])
				x3, y3 := pt(s.Args[2])
				p.cubicTo(x1, y1, x2, y2, x3, y3)
			}
		}
		p.close()
	}
	return p
}

// measure returns the advance width and the ink bounds relative to the
// baseline origin.
func (f *fontData) measure(text []byte, enc native.TextEncoding) (float64, rect) {
	glyphs := f.layout(text, enc)
	tf := f.face
	tf.mu.Lock()
	defer tf.mu.Unlock()
	var width float64
	var bounds rect
	for _, g := range glyphs {
		width += g.advance
		b, _, err := tf.outline.GlyphBounds(&tf.buf, g.id, f.ppem(), font.HintingNone)
		if err != nil {
			continue
		}
		gb := rect{
			l: g.x + float64(b.Min.X)/64*f.scaleX,
			t: g.y + float64(b.Min.Y)/64,
			r: g.x + float64(b.Max.X)/64*f.scaleX,
			b: g.y + float64(b.Max.Y)/64,
		}
		bounds = bounds.union(gb)
	}
	return width, bounds
}

// metrics fills m and returns the recommended line spacing.
func (f *fontData) metrics(m *native.FontMetrics) float64 {
	tf := f.face
	tf.mu.Lock()
	defer tf.mu.Unlock()
	*m = native.FontMetrics{}
	fm, err := tf.outline.Metrics(&tf.buf, f.ppem(), font.HintingNone)
	if err != nil {
		return 0
	}
	ascent := float64(fm.Ascent) / 64
	descent := float64(fm.Descent) / 64
	height := float64(fm.Height) / 64
	m.Ascent = float32(-ascent)
	m.Descent = float32(descent)
	m.Leading = float32(max(height-ascent-descent, 0))
	m.XHeight = float32(float64(fm.XHeight) / 64)
	m.CapHeight = float32(float64(fm.CapHeight) / 64)
	if b, err := tf.outline.Bounds(&tf.buf, f.ppem(), font.HintingNone); err == nil {
		m.Top = float32(float64(b.Min.Y) / 64)
		m.Bottom = float32(float64(b.Max.Y) / 64)
		m.XMin = float32(float64(b.Min.X) / 64 * f.scaleX)
		m.XMax = float32(float64(b.Max.X) / 64 * f.scaleX)
		m.MaxCharWidth = m.XMax - m.XMin
	}
	// go-text reports line metrics in font units, y up.
	if upem := float64(tf.shape.Upem()); upem > 0 {
		k := f.size / upem
		m.UnderlineThickness = float32(float64(tf.shape.LineMetric(gtfont.UnderlineThickness)) * k)
		m.UnderlinePosition = float32(-float64(tf.shape.LineMetric(gtfont.UnderlinePosition)) * k)
		m.StrikeoutThickness = float32(float64(tf.shape.LineMetric(gtfont.StrikethroughThickness)) * k)
		m.StrikeoutPosition = float32(-float64(tf.shape.LineMetric(gtfont.StrikethroughPosition)) * k)
	}
	return float64(m.Descent-m.Ascent) + float64(m.Leading)
}
