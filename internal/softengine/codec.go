package softengine

import (
	"bytes"
	"image"
	_ "image/gif" // decoder registration
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"sync/atomic"

	_ "golang.org/x/image/bmp" // decoder registration
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // decoder registration

	"github.com/gogpu/skia/internal/native"
)

var imageIDs atomic.Uint32

// imageData is an immutable premultiplied RGBA image.
type imageData struct {
	pix *image.RGBA
	id  uint32
}

func newImage(pix *image.RGBA) *imageData {
	return &imageData{pix: pix, id: imageIDs.Add(1)}
}

// decodeImage decodes any registered format to premultiplied RGBA.
func decodeImage(b []byte) *imageData {
	src, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil
	}
	r := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	xdraw.Draw(dst, dst.Rect, src, r.Min, xdraw.Src)
	return newImage(dst)
}

func copyRGBA(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Rect)
	copy(dst.Pix, src.Pix)
	return dst
}

// pixmapData is a borrowed view of surface or image pixels.
type pixmapData struct {
	pix *image.RGBA
}

func (p *pixmapData) info() native.ImageInfo {
	if p.pix == nil {
		return native.ImageInfo{}
	}
	return native.ImageInfo{
		Width:     int32(p.pix.Rect.Dx()),
		Height:    int32(p.pix.Rect.Dy()),
		ColorType: native.ColorTypeRGBA8888,
		AlphaType: native.AlphaTypePremul,
	}
}

// unpremultiplied converts to straight alpha, optionally forcing opacity.
func unpremultiplied(src *image.RGBA, opaque bool) *image.NRGBA {
	dst := image.NewNRGBA(src.Rect)
	xdraw.Draw(dst, dst.Rect, src, src.Rect.Min, xdraw.Src)
	if opaque {
		for i := 3; i < len(dst.Pix); i += 4 {
			dst.Pix[i] = 0xff
		}
	}
	return dst
}

// pngLevel maps a zlib level to the nearest encoder setting.
func pngLevel(zlib int32) png.CompressionLevel {
	switch {
	case zlib <= 0:
		return png.NoCompression
	case zlib <= 3:
		return png.BestSpeed
	case zlib <= 6:
		return png.DefaultCompression
	default:
		return png.BestCompression
	}
}

func encodePNG(w io.Writer, pix *image.RGBA, opts *native.PNGEncoderOptions) bool {
	enc := png.Encoder{CompressionLevel: png.DefaultCompression}
	if opts != nil {
		enc.CompressionLevel = pngLevel(opts.ZLibLevel)
	}
	return enc.Encode(w, unpremultiplied(pix, false)) == nil
}

// encodeJPEG honors the quality and alpha options. Chroma is always 4:2:0.
func encodeJPEG(w io.Writer, pix *image.RGBA, opts *native.JPEGEncoderOptions) bool {
	q := 100
	var src image.Image = unpremultiplied(pix, true)
	if opts != nil {
		q = int(min(max(opts.Quality, 1), 100))
		if opts.AlphaOption == native.JPEGAlphaBlendOnBlack {
			// Premultiplied channels are the color composited on black.
			onBlack := image.NewRGBA(pix.Rect)
			for i := 0; i < len(pix.Pix); i += 4 {
				copy(onBlack.Pix[i:i+3], pix.Pix[i:i+3])
				onBlack.Pix[i+3] = 0xff
			}
			src = onBlack
		}
	}
	return jpeg.Encode(w, src, &jpeg.Options{Quality: q}) == nil
}

// dataData is an immutable byte buffer.
type dataData struct {
	b []byte
}

// wstream is a write stream handle's object.
type wstream interface {
	io.Writer
	close() error
}

type memoryStream struct {
	bytes.Buffer
}

func (*memoryStream) close() error { return nil }

func (s *memoryStream) detach() *dataData {
	b := bytes.Clone(s.Bytes())
	s.Reset()
	return &dataData{b: b}
}

type fileStream struct {
	f *os.File
}

func newFileStream(path string) *fileStream {
	f, err := os.Create(path)
	if err != nil {
		return nil
	}
	return &fileStream{f: f}
}

func (s *fileStream) Write(p []byte) (int, error) { return s.f.Write(p) }

func (s *fileStream) close() error { return s.f.Close() }
