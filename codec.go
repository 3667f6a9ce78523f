package skia

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gogpu/skia/internal/native"
)

// EncodedFormat is an encoded image file format.
type EncodedFormat int

const (
	FormatPNG EncodedFormat = iota
	FormatJPEG
	FormatWEBP
)

// String returns the conventional format name.
func (f EncodedFormat) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatJPEG:
		return "jpeg"
	case FormatWEBP:
		return "webp"
	default:
		return fmt.Sprintf("EncodedFormat(%d)", int(f))
	}
}

// FormatFromPath picks the format from a file extension.
// Unknown extensions select PNG.
func FormatFromPath(path string) EncodedFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return FormatJPEG
	case ".webp":
		return FormatWEBP
	default:
		return FormatPNG
	}
}

// encodePixels hands the pixels of an image or surface to the matching
// external encoder. peek fills a pixmap view over the source pixels.
func encodePixels(lib *native.Lib, peek func(pixmap native.Handle) bool, format EncodedFormat, opts []EncodeOption) ([]byte, error) {
	o := defaultEncodeOptions()
	for _, opt := range opts {
		opt(&o)
	}

	pixmap := lib.PixmapNew()
	if pixmap == 0 {
		return nil, fmt.Errorf("%w: pixmap", ErrNullHandle)
	}
	defer lib.PixmapDestructor(pixmap)
	if !peek(pixmap) {
		return nil, fmt.Errorf("%w: pixels not readable", ErrEncodingFailed)
	}

	stream := lib.DynamicMemoryWStreamNew()
	if stream == 0 {
		return nil, fmt.Errorf("%w: memory stream", ErrNullHandle)
	}
	defer lib.DynamicMemoryWStreamDestroy(stream)

	var ok bool
	switch format {
	case FormatPNG:
		ok = lib.PNGEncoderEncode(stream, pixmap, &native.PNGEncoderOptions{
			FilterFlags: o.pngFilter,
			ZLibLevel:   int32(o.zlibLevel),
		})
	case FormatJPEG:
		ok = lib.JPEGEncoderEncode(stream, pixmap, &native.JPEGEncoderOptions{
			Quality:     int32(o.quality),
			Downsample:  o.downsample,
			AlphaOption: o.alphaOption,
		})
	case FormatWEBP:
		compression := native.WebPLossy
		if o.lossless {
			compression = native.WebPLossless
		}
		ok = lib.WebPEncoderEncode(stream, pixmap, &native.WebPEncoderOptions{
			Compression: compression,
			Quality:     float32(o.quality),
		})
	default:
		return nil, fmt.Errorf("%w: unknown format %v", ErrEncodingFailed, format)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrEncodingFailed, format)
	}

	data := lib.DynamicMemoryWStreamDetachAsData(stream)
	if data == 0 {
		return nil, fmt.Errorf("%w: %v produced no data", ErrEncodingFailed, format)
	}
	defer lib.DataUnref(data)
	return copyData(lib, data), nil
}
