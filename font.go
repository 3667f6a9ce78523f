package skia

import (
	"runtime"
	"unsafe"

	"github.com/gogpu/skia/internal/native"
)

// FontMetrics describes the vertical layout of a font at its size.
// Ascent is negative (above the baseline) and Descent positive.
type FontMetrics struct {
	Top, Ascent, Descent, Bottom, Leading float64
	AvgCharWidth, MaxCharWidth            float64
	XMin, XMax, XHeight, CapHeight        float64
	UnderlineThickness, UnderlinePosition float64
	StrikeoutThickness, StrikeoutPosition float64

	// LineSpacing is the recommended distance between baselines.
	LineSpacing float64
}

// Font is a typeface at a size, used to draw and measure text.
type Font struct {
	*resource
}

// NewFont creates a font. A nil typeface selects the default face.
func NewFont(tf *Typeface, size float64) (*Font, error) {
	eng, err := currentEngine()
	if err != nil {
		return nil, err
	}
	defer runtime.KeepAlive(tf)
	var th native.Handle
	if tf != nil {
		if th, _, err = tf.get(); err != nil {
			return nil, err
		}
	}
	return wrapFont(eng, eng.lib.FontNewWithValues(th, float32(size), 1, 0))
}

// NewDefaultFont creates a font with the default face and size.
func NewDefaultFont() (*Font, error) {
	return NewFont(nil, DefaultFontSize)
}

func wrapFont(eng *engineState, h native.Handle) (*Font, error) {
	r, err := newResource(eng, h, "font", eng.lib.FontDelete)
	if err != nil {
		return nil, err
	}
	f := &Font{r}
	track(f, r)
	return f, nil
}

// Size returns the text size in points.
func (f *Font) Size() (float64, error) {
	defer runtime.KeepAlive(f)
	h, lib, err := f.get()
	if err != nil {
		return 0, err
	}
	return float64(lib.FontGetSize(h)), nil
}

// SetSize sets the text size in points.
func (f *Font) SetSize(size float64) error {
	defer runtime.KeepAlive(f)
	h, lib, err := f.get()
	if err != nil {
		return err
	}
	lib.FontSetSize(h, float32(size))
	return nil
}

// Typeface returns the face of this font. The caller owns the wrapper.
func (f *Font) Typeface() (*Typeface, error) {
	defer runtime.KeepAlive(f)
	h, lib, err := f.get()
	if err != nil {
		return nil, err
	}
	return wrapTypeface(f.eng, lib.FontGetTypeface(h))
}

// SetTypeface replaces the face. Nil selects the default face.
func (f *Font) SetTypeface(tf *Typeface) error {
	defer runtime.KeepAlive(f)
	h, lib, err := f.get()
	if err != nil {
		return err
	}
	defer runtime.KeepAlive(tf)
	var th native.Handle
	if tf != nil {
		if th, _, err = tf.get(); err != nil {
			return err
		}
	}
	lib.FontSetTypeface(h, th)
	return nil
}

// Metrics returns the font metrics.
func (f *Font) Metrics() (FontMetrics, error) {
	defer runtime.KeepAlive(f)
	h, lib, err := f.get()
	if err != nil {
		return FontMetrics{}, err
	}
	var m native.FontMetrics
	spacing := lib.FontGetMetrics(h, &m)
	return FontMetrics{
		Top:                float64(m.Top),
		Ascent:             float64(m.Ascent),
		Descent:            float64(m.Descent),
		Bottom:             float64(m.Bottom),
		Leading:            float64(m.Leading),
		AvgCharWidth:       float64(m.AvgCharWidth),
		MaxCharWidth:       float64(m.MaxCharWidth),
		XMin:               float64(m.XMin),
		XMax:               float64(m.XMax),
		XHeight:            float64(m.XHeight),
		CapHeight:          float64(m.CapHeight),
		UnderlineThickness: float64(m.UnderlineThickness),
		UnderlinePosition:  float64(m.UnderlinePosition),
		StrikeoutThickness: float64(m.StrikeoutThickness),
		StrikeoutPosition:  float64(m.StrikeoutPosition),
		LineSpacing:        float64(spacing),
	}, nil
}

// MeasureText returns the advance width of text and its bounding box
// relative to the origin on the baseline.
func (f *Font) MeasureText(text string) (width float64, bounds Rect, err error) {
	return f.measure([]byte(text), native.TextEncodingUTF8, nil)
}

// MeasureTextWithPaint is like MeasureText but accounts for the stroke and
// effects of p.
func (f *Font) MeasureTextWithPaint(text string, p *Paint) (width float64, bounds Rect, err error) {
	return f.measure([]byte(text), native.TextEncodingUTF8, p)
}

func (f *Font) measure(text []byte, enc native.TextEncoding, p *Paint) (float64, Rect, error) {
	defer runtime.KeepAlive(f)
	h, lib, err := f.get()
	if err != nil {
		return 0, Rect{}, err
	}
	defer runtime.KeepAlive(p)
	var ph native.Handle
	if p != nil {
		if ph, err = p.handle(); err != nil {
			return 0, Rect{}, err
		}
	}
	var ptr unsafe.Pointer
	if len(text) > 0 {
		ptr = unsafe.Pointer(&text[0])
	}
	var r native.Rect
	w := lib.FontMeasureText(h, ptr, uintptr(len(text)), enc, &r, ph)
	return float64(w), rectFromNative(r), nil
}
