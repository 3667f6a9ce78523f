package skia

import (
	"fmt"
	"os"
	"runtime"

	"github.com/gogpu/skia/internal/native"
)

// Image is an immutable, reference-counted bitmap.
type Image struct {
	*resource
	width, height int
}

// NewImageFromEncoded decodes PNG, JPEG, WEBP, BMP or GIF bytes.
func NewImageFromEncoded(b []byte) (*Image, error) {
	data, err := NewData(b)
	if err != nil {
		return nil, err
	}
	defer data.Release()
	return imageFromData(data)
}

// NewImageFromFile reads and decodes an image file.
func NewImageFromFile(path string) (*Image, error) {
	data, err := NewDataFromFile(path)
	if err != nil {
		return nil, err
	}
	defer data.Release()
	img, err := imageFromData(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

func imageFromData(data *Data) (*Image, error) {
	defer runtime.KeepAlive(data)
	dh, lib, err := data.get()
	if err != nil {
		return nil, err
	}
	h := lib.ImageNewFromEncoded(dh)
	if h == 0 {
		return nil, ErrDecodingFailed
	}
	return wrapImage(data.eng, h)
}

func wrapImage(eng *engineState, h native.Handle) (*Image, error) {
	r, err := newResource(eng, h, "image", eng.lib.ImageUnref)
	if err != nil {
		return nil, err
	}
	img := &Image{
		resource: r,
		width:    int(eng.lib.ImageGetWidth(h)),
		height:   int(eng.lib.ImageGetHeight(h)),
	}
	track(img, r)
	return img, nil
}

// Width returns the image width in pixels.
func (i *Image) Width() int { return i.width }

// Height returns the image height in pixels.
func (i *Image) Height() int { return i.height }

// Bounds returns the image rectangle at the origin.
func (i *Image) Bounds() Rect {
	return RectFromWH(float64(i.width), float64(i.height))
}

// UniqueID returns the engine identifier of this image.
func (i *Image) UniqueID() (uint32, error) {
	defer runtime.KeepAlive(i)
	h, lib, err := i.get()
	if err != nil {
		return 0, err
	}
	return lib.ImageGetUniqueID(h), nil
}

// Encode encodes the image pixels.
//
// Example:
//
//	png, err := img.Encode(skia.FormatPNG)
//	jpg, err := img.Encode(skia.FormatJPEG, skia.WithQuality(80))
func (i *Image) Encode(format EncodedFormat, opts ...EncodeOption) ([]byte, error) {
	defer runtime.KeepAlive(i)
	h, lib, err := i.get()
	if err != nil {
		return nil, err
	}
	return encodePixels(lib, func(pm native.Handle) bool {
		return lib.ImagePeekPixels(h, pm)
	}, format, opts)
}

// Save encodes the image to path. The format follows the file extension.
func (i *Image) Save(path string, opts ...EncodeOption) error {
	b, err := i.Encode(FormatFromPath(path), opts...)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
