package skia

import "github.com/gogpu/skia/internal/native"

// Option configures engine initialization.
//
// Example:
//
//	// Load from an explicit location
//	err := skia.Init(skia.WithLibraryPath("/opt/skia/libSkiaSharp.so"))
type Option func(*engineOptions)

// engineOptions holds optional configuration for Init.
type engineOptions struct {
	libraryPath string
	lib         *native.Lib
}

// WithLibraryPath sets the engine library path tried before the default
// search locations.
func WithLibraryPath(path string) Option {
	return func(o *engineOptions) {
		o.libraryPath = path
	}
}

// WithEngine installs an already bound function table instead of loading
// the engine library. The in-process software engine uses this.
func WithEngine(lib *native.Lib) Option {
	return func(o *engineOptions) {
		o.lib = lib
	}
}

// EncodeOption configures image encoding.
//
// Example:
//
//	data, err := img.Encode(skia.FormatJPEG, skia.WithQuality(80))
type EncodeOption func(*encodeOptions)

type encodeOptions struct {
	quality     int
	pngFilter   native.PNGFilterFlags
	zlibLevel   int
	downsample  native.JPEGDownsample
	alphaOption native.JPEGAlphaOption
	lossless    bool
}

func defaultEncodeOptions() encodeOptions {
	return encodeOptions{
		quality:     100,
		pngFilter:   native.PNGFilterAll,
		zlibLevel:   6,
		downsample:  native.JPEGDownsample420,
		alphaOption: native.JPEGAlphaIgnore,
	}
}

// WithQuality sets JPEG and WEBP quality in [0, 100]. Out of range values
// are clamped.
func WithQuality(q int) EncodeOption {
	return func(o *encodeOptions) {
		o.quality = min(max(q, 0), 100)
	}
}

// WithZLibLevel sets the PNG compression level in [0, 9].
func WithZLibLevel(level int) EncodeOption {
	return func(o *encodeOptions) {
		o.zlibLevel = min(max(level, 0), 9)
	}
}

// WithPNGFilter sets the PNG row filters the encoder may try.
// The default allows all of them.
func WithPNGFilter(f PNGFilter) EncodeOption {
	return func(o *encodeOptions) {
		o.pngFilter = native.PNGFilterFlags(f)
	}
}

// WithJPEGDownsample sets JPEG chroma subsampling. The default is 4:2:0.
func WithJPEGDownsample(d JPEGDownsample) EncodeOption {
	return func(o *encodeOptions) {
		o.downsample = native.JPEGDownsample(d)
	}
}

// WithJPEGAlpha sets how JPEG encoding treats transparent pixels.
func WithJPEGAlpha(a JPEGAlpha) EncodeOption {
	return func(o *encodeOptions) {
		o.alphaOption = native.JPEGAlphaOption(a)
	}
}

// WithWebPLossless selects lossless WEBP compression.
func WithWebPLossless() EncodeOption {
	return func(o *encodeOptions) {
		o.lossless = true
	}
}

// GradientOption configures a gradient shader.
type GradientOption func(*gradientOptions)

type gradientOptions struct {
	positions  []float64
	tileMode   TileMode
	local      *Matrix
	startAngle float64
	endAngle   float64
}

func defaultGradientOptions() gradientOptions {
	return gradientOptions{tileMode: TileClamp, endAngle: 360}
}

// WithPositions sets the color stop offsets in [0, 1]. The slice must have
// one entry per color. Without it, colors are spaced evenly.
func WithPositions(pos ...float64) GradientOption {
	return func(o *gradientOptions) {
		o.positions = pos
	}
}

// WithTileMode sets how the gradient extends past its end points.
// The default is TileClamp.
func WithTileMode(m TileMode) GradientOption {
	return func(o *gradientOptions) {
		o.tileMode = m
	}
}

// WithLocalMatrix transforms the gradient geometry.
func WithLocalMatrix(m Matrix) GradientOption {
	return func(o *gradientOptions) {
		o.local = &m
	}
}

// WithSweepAngles limits a sweep gradient to [start, end] degrees.
// The default covers the full turn, 0 to 360.
func WithSweepAngles(start, end float64) GradientOption {
	return func(o *gradientOptions) {
		o.startAngle = start
		o.endAngle = end
	}
}

// SurfaceOption configures a raster surface.
type SurfaceOption func(*surfaceOptions)

type surfaceOptions struct {
	colorType ColorType
	alphaType AlphaType
}

func defaultSurfaceOptions() surfaceOptions {
	return surfaceOptions{colorType: ColorTypeRGBA8888, alphaType: AlphaPremul}
}

// WithColorType sets the pixel layout. The default is ColorTypeRGBA8888.
func WithColorType(ct ColorType) SurfaceOption {
	return func(o *surfaceOptions) {
		o.colorType = ct
	}
}

// WithAlphaType sets the alpha storage. The default is AlphaPremul.
func WithAlphaType(at AlphaType) SurfaceOption {
	return func(o *surfaceOptions) {
		o.alphaType = at
	}
}
