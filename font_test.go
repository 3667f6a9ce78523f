package skia

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/skia/internal/softengine"
)

func TestDefaultFont(t *testing.T) {
	f, err := NewDefaultFont()
	mustNoErr(t, err)
	defer f.Release()

	size, err := f.Size()
	mustNoErr(t, err)
	if size != DefaultFontSize {
		t.Errorf("Size() = %v, want %v", size, DefaultFontSize)
	}
	m, err := f.Metrics()
	mustNoErr(t, err)
	if m.Ascent >= 0 || m.Descent <= 0 || m.LineSpacing <= 0 {
		t.Errorf("Metrics() = %+v", m)
	}

	mustNoErr(t, f.SetSize(24))
	big, err := f.Metrics()
	mustNoErr(t, err)
	if !approxEqual(big.LineSpacing, 2*m.LineSpacing, 0.01) {
		t.Errorf("line spacing at 24pt = %v, at 12pt = %v", big.LineSpacing, m.LineSpacing)
	}
}

func TestMeasureText(t *testing.T) {
	f, err := NewFont(nil, 20)
	mustNoErr(t, err)
	defer f.Release()

	short, _, err := f.MeasureText("Hi")
	mustNoErr(t, err)
	long, bounds, err := f.MeasureText("Hello, world")
	mustNoErr(t, err)
	if short <= 0 || long <= short {
		t.Errorf("widths: short=%v long=%v", short, long)
	}
	if bounds.Top >= 0 || bounds.Width() <= 0 {
		t.Errorf("bounds = %+v", bounds)
	}
	if w, _, _ := f.MeasureText(""); w != 0 {
		t.Errorf("empty text width = %v", w)
	}

	stroke, err := NewStrokePaint(Black, 6)
	mustNoErr(t, err)
	defer stroke.Release()
	_, sb, err := f.MeasureTextWithPaint("Hello, world", stroke)
	mustNoErr(t, err)
	if sb.Width() <= bounds.Width() {
		t.Errorf("stroked bounds %v not wider than %v", sb.Width(), bounds.Width())
	}
}

func TestTypefaceOwnership(t *testing.T) {
	e := useFreshEngine(t)
	tf, err := NewTypeface("Go", BoldStyle)
	mustNoErr(t, err)
	f, err := NewFont(tf, 16)
	mustNoErr(t, err)
	tf.Release()

	got, err := f.Typeface()
	mustNoErr(t, err)
	got.Release()
	mustNoErr(t, f.SetTypeface(nil))
	f.Release()

	if n := e.Live(softengine.KindTypeface); n != 0 {
		t.Errorf("%d typefaces leaked", n)
	}
}

func TestTypefaceFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "goregular.ttf")
	mustNoErr(t, os.WriteFile(path, goregular.TTF, 0o644))

	tf, err := NewTypefaceFromFile(path, 0)
	mustNoErr(t, err)
	defer tf.Release()

	if _, err := NewTypefaceFromFile(filepath.Join(dir, "missing.ttf"), 0); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("missing file = %v, want ErrFileNotFound", err)
	}

	junk := filepath.Join(dir, "junk.ttf")
	mustNoErr(t, os.WriteFile(junk, []byte("not a font"), 0o644))
	if _, err := NewTypefaceFromFile(junk, 0); !errors.Is(err, ErrNullHandle) {
		t.Errorf("junk font = %v, want ErrNullHandle", err)
	}
}

func TestDrawText(t *testing.T) {
	s, c := newTestCanvas(t, 80, 30)
	mustNoErr(t, c.Clear(White))
	black, err := NewFillPaint(Black)
	mustNoErr(t, err)
	defer black.Release()
	f, err := NewFont(nil, 24)
	mustNoErr(t, err)
	defer f.Release()

	mustNoErr(t, c.DrawText("MW", 2, 24, f, black))
	mustNoErr(t, c.DrawTextEncoded("MW", EncodingUTF16, 40, 24, f, black))

	img := decodeSurface(t, s)
	var dark int
	for y := range 30 {
		for x := range 80 {
			if colorAt(img, x, y).Red() < 128 {
				dark++
			}
		}
	}
	if dark < 50 {
		t.Errorf("only %d dark pixels after drawing text", dark)
	}
}
