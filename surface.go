package skia

import (
	"fmt"
	"os"
	"runtime"

	"github.com/gogpu/skia/internal/native"
)

// ImageInfo describes the pixel layout of a raster surface.
type ImageInfo struct {
	Width, Height int
	ColorType     ColorType
	AlphaType     AlphaType
}

func (ii ImageInfo) toNative() native.ImageInfo {
	return native.ImageInfo{
		Width:     int32(ii.Width),
		Height:    int32(ii.Height),
		ColorType: native.ColorType(ii.ColorType),
		AlphaType: native.AlphaType(ii.AlphaType),
	}
}

// Surface is a raster drawing target. It owns its canvas.
//
// A surface and its canvas must be used from one goroutine at a time.
type Surface struct {
	*resource
	info   ImageInfo
	canvas *Canvas
}

// NewSurface creates a raster surface of the given size.
//
// Example:
//
//	s, err := skia.NewSurface(400, 300)
//	if err != nil {
//	    return err
//	}
//	defer s.Release()
func NewSurface(width, height int, opts ...SurfaceOption) (*Surface, error) {
	o := defaultSurfaceOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: surface size %dx%d", ErrNullHandle, width, height)
	}

	eng, err := currentEngine()
	if err != nil {
		return nil, err
	}
	info := ImageInfo{Width: width, Height: height, ColorType: o.colorType, AlphaType: o.alphaType}
	ni := info.toNative()
	h := eng.lib.SurfaceNewRaster(&ni, 0, 0)
	r, err := newResource(eng, h, "surface", eng.lib.SurfaceUnref)
	if err != nil {
		return nil, err
	}
	s := &Surface{resource: r, info: info}
	track(s, r)
	return s, nil
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int { return s.info.Width }

// Height returns the surface height in pixels.
func (s *Surface) Height() int { return s.info.Height }

// Info returns the pixel layout.
func (s *Surface) Info() ImageInfo { return s.info }

// Canvas returns the canvas drawing into this surface. The same canvas is
// returned on every call and becomes invalid when the surface is released.
func (s *Surface) Canvas() (*Canvas, error) {
	if s.canvas != nil && !s.canvas.IsReleased() {
		return s.canvas, nil
	}
	defer runtime.KeepAlive(s)
	h, lib, err := s.get()
	if err != nil {
		return nil, err
	}
	c, err := wrapCanvas(s.eng, lib.SurfaceGetCanvas(h), "surface canvas", s)
	if err != nil {
		return nil, err
	}
	s.canvas = c
	return c, nil
}

// Draw runs fn against the surface canvas inside a scoped save.
func (s *Surface) Draw(fn func(*Canvas) error) error {
	c, err := s.Canvas()
	if err != nil {
		return err
	}
	return c.WithSave(fn)
}

// Snapshot returns an immutable image of the current pixels.
func (s *Surface) Snapshot() (*Image, error) {
	defer runtime.KeepAlive(s)
	h, lib, err := s.get()
	if err != nil {
		return nil, err
	}
	return wrapImage(s.eng, lib.SurfaceNewImageSnapshot(h))
}

// Encode encodes the current pixels.
func (s *Surface) Encode(format EncodedFormat, opts ...EncodeOption) ([]byte, error) {
	defer runtime.KeepAlive(s)
	h, lib, err := s.get()
	if err != nil {
		return nil, err
	}
	return encodePixels(lib, func(pm native.Handle) bool {
		return lib.SurfacePeekPixels(h, pm)
	}, format, opts)
}

// Save encodes the current pixels to path. The format follows the file
// extension, PNG when unknown.
func (s *Surface) Save(path string, opts ...EncodeOption) error {
	return s.saveAs(path, FormatFromPath(path), opts)
}

// SavePNG encodes the current pixels as PNG.
func (s *Surface) SavePNG(path string) error {
	return s.saveAs(path, FormatPNG, nil)
}

// SaveJPEG encodes the current pixels as JPEG with the given quality.
func (s *Surface) SaveJPEG(path string, quality int) error {
	return s.saveAs(path, FormatJPEG, []EncodeOption{WithQuality(quality)})
}

// SaveWebP encodes the current pixels as lossy WEBP with the given quality.
func (s *Surface) SaveWebP(path string, quality int) error {
	return s.saveAs(path, FormatWEBP, []EncodeOption{WithQuality(quality)})
}

func (s *Surface) saveAs(path string, format EncodedFormat, opts []EncodeOption) error {
	b, err := s.Encode(format, opts...)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return os.WriteFile(path, b, 0o644)
}

// Release frees the surface. Its canvas becomes invalid.
func (s *Surface) Release() {
	if s == nil {
		return
	}
	if s.canvas != nil {
		s.canvas.Release()
		s.canvas = nil
	}
	s.resource.Release()
}
