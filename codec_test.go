package skia

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func filledSurface(t *testing.T, c Color) *Surface {
	t.Helper()
	s, canvas := newTestCanvas(t, 16, 8)
	mustNoErr(t, canvas.Clear(c))
	return s
}

func TestEncodeMagic(t *testing.T) {
	s := filledSurface(t, Red)
	tests := []struct {
		format EncodedFormat
		opts   []EncodeOption
		magic  []byte
	}{
		{FormatPNG, nil, []byte{0x89, 0x50, 0x4E, 0x47}},
		{FormatPNG, []EncodeOption{WithZLibLevel(9), WithPNGFilter(PNGFilterAll)}, []byte{0x89, 0x50, 0x4E, 0x47}},
		{FormatJPEG, []EncodeOption{WithQuality(90)}, []byte{0xFF, 0xD8}},
		{FormatJPEG, []EncodeOption{WithJPEGAlpha(JPEGAlphaBlendOnBlack), WithJPEGDownsample(Downsample444)}, []byte{0xFF, 0xD8}},
	}
	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			b, err := s.Encode(tt.format, tt.opts...)
			mustNoErr(t, err)
			if !bytes.HasPrefix(b, tt.magic) {
				t.Errorf("encoded %v starts with % X", tt.format, b[:min(4, len(b))])
			}
		})
	}
}

func TestEncodeUnsupported(t *testing.T) {
	s := filledSurface(t, Green)
	// The software engine has no WEBP encoder.
	if _, err := s.Encode(FormatWEBP, WithWebPLossless()); !errors.Is(err, ErrEncodingFailed) {
		t.Errorf("Encode(WEBP) = %v, want ErrEncodingFailed", err)
	}
	if _, err := s.Encode(EncodedFormat(42)); !errors.Is(err, ErrEncodingFailed) {
		t.Errorf("Encode(42) = %v, want ErrEncodingFailed", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]EncodedFormat{
		"a.png":    FormatPNG,
		"b.JPG":    FormatJPEG,
		"c.jpeg":   FormatJPEG,
		"d.webp":   FormatWEBP,
		"e.tiff":   FormatPNG,
		"noextent": FormatPNG,
	}
	for path, want := range tests {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestImageRoundTrip(t *testing.T) {
	s := filledSurface(t, Blue)
	dir := t.TempDir()
	path := filepath.Join(dir, "blue.png")
	mustNoErr(t, s.Save(path))

	img, err := NewImageFromFile(path)
	mustNoErr(t, err)
	defer img.Release()
	if img.Width() != 16 || img.Height() != 8 {
		t.Errorf("decoded size %dx%d", img.Width(), img.Height())
	}
	if img.Bounds() != RectFromWH(16, 8) {
		t.Errorf("Bounds() = %+v", img.Bounds())
	}

	jpg := filepath.Join(dir, "blue.jpg")
	mustNoErr(t, img.Save(jpg, WithQuality(80)))
	b, err := os.ReadFile(jpg)
	mustNoErr(t, err)
	if !bytes.HasPrefix(b, []byte{0xFF, 0xD8}) {
		t.Error("Save(.jpg) did not write JPEG")
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	s := filledSurface(t, Red)
	snap, err := s.Snapshot()
	mustNoErr(t, err)
	defer snap.Release()

	c, err := s.Canvas()
	mustNoErr(t, err)
	mustNoErr(t, c.Clear(Blue))

	b, err := snap.Encode(FormatPNG)
	mustNoErr(t, err)
	img, err := NewImageFromEncoded(b)
	mustNoErr(t, err)
	defer img.Release()

	dst, dc := newTestCanvas(t, 16, 8)
	mustNoErr(t, dc.DrawImage(img, 0, 0, nil))
	if got := colorAt(decodeSurface(t, dst), 4, 4); got != Red {
		t.Errorf("snapshot pixel = %v, want red", got)
	}
}

func TestDrawImageRectScales(t *testing.T) {
	src := filledSurface(t, Green)
	img, err := src.Snapshot()
	mustNoErr(t, err)
	defer img.Release()

	s, c := newTestCanvas(t, 40, 40)
	mustNoErr(t, c.Clear(White))
	mustNoErr(t, c.DrawImageRect(img, nil, RectFromXYWH(10, 10, 20, 20), nil))
	out := decodeSurface(t, s)
	if got := colorAt(out, 20, 20); got != Green {
		t.Errorf("inside = %v, want green", got)
	}
	if got := colorAt(out, 5, 5); got != White {
		t.Errorf("outside = %v, want white", got)
	}
}

func TestDecodeFailures(t *testing.T) {
	if _, err := NewImageFromEncoded([]byte("garbage")); !errors.Is(err, ErrDecodingFailed) {
		t.Errorf("NewImageFromEncoded(garbage) = %v, want ErrDecodingFailed", err)
	}
	if _, err := NewImageFromFile(filepath.Join(t.TempDir(), "nope.png")); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("NewImageFromFile(missing) = %v, want ErrFileNotFound", err)
	}
}

func TestDataCopies(t *testing.T) {
	src := []byte("hello")
	d, err := NewData(src)
	mustNoErr(t, err)
	defer d.Release()
	src[0] = 'j'

	n, err := d.Len()
	mustNoErr(t, err)
	b, err := d.Bytes()
	mustNoErr(t, err)
	if n != 5 || string(b) != "hello" {
		t.Errorf("Data = %d %q", n, b)
	}
}
