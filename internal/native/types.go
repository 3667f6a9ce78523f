// Package native describes the C ABI of the Skia engine (the sk_* API
// exported by libSkiaSharp) and loads it at runtime.
//
// Nothing in this package interprets engine memory. Handles are opaque
// addresses that are only ever passed back into Lib functions.
package native

import "golang.org/x/image/math/f32"

// Handle is an opaque engine-owned resource address. Zero means null.
type Handle uintptr

// Color is a packed unpremultiplied ARGB color (sk_color_t).
type Color = uint32

// Point mirrors sk_point_t.
type Point = f32.Vec2

// Matrix mirrors sk_matrix_t: nine floats in row-major order
// (scaleX, skewX, transX, skewY, scaleY, transY, persp0, persp1, persp2).
type Matrix = f32.Mat3

// Matrix44 mirrors sk_matrix44_t: sixteen floats in row-major order.
type Matrix44 = f32.Mat4

// Rect mirrors sk_rect_t.
type Rect struct {
	Left, Top, Right, Bottom float32
}

// IRect mirrors sk_irect_t.
type IRect struct {
	Left, Top, Right, Bottom int32
}

// ImageInfo mirrors sk_imageinfo_t.
type ImageInfo struct {
	ColorSpace Handle
	Width      int32
	Height     int32
	ColorType  ColorType
	AlphaType  AlphaType
}

// FontMetrics mirrors sk_fontmetrics_t.
type FontMetrics struct {
	Flags              uint32
	Top                float32
	Ascent             float32
	Descent            float32
	Bottom             float32
	Leading            float32
	AvgCharWidth       float32
	MaxCharWidth       float32
	XMin               float32
	XMax               float32
	XHeight            float32
	CapHeight          float32
	UnderlineThickness float32
	UnderlinePosition  float32
	StrikeoutThickness float32
	StrikeoutPosition  float32
}

// PNGEncoderOptions mirrors sk_pngencoder_options_t.
type PNGEncoderOptions struct {
	FilterFlags           PNGFilterFlags
	ZLibLevel             int32
	Comments              Handle
	ICCProfile            Handle
	ICCProfileDescription Handle
}

// JPEGEncoderOptions mirrors sk_jpegencoder_options_t.
type JPEGEncoderOptions struct {
	Quality               int32
	Downsample            JPEGDownsample
	AlphaOption           JPEGAlphaOption
	XMPMetadata           Handle
	ICCProfile            Handle
	ICCProfileDescription Handle
}

// WebPEncoderOptions mirrors sk_webpencoder_options_t.
type WebPEncoderOptions struct {
	Compression           WebPCompression
	Quality               float32
	ICCProfile            Handle
	ICCProfileDescription Handle
}

// ColorType mirrors sk_colortype_t.
type ColorType int32

const (
	ColorTypeUnknown ColorType = iota
	ColorTypeAlpha8
	ColorTypeRGB565
	ColorTypeARGB4444
	ColorTypeRGBA8888
	ColorTypeRGB888x
	ColorTypeBGRA8888
	ColorTypeRGBA1010102
	ColorTypeRGB101010x
	ColorTypeGray8
	ColorTypeRGBAF16
	ColorTypeRGBAF32
)

// AlphaType mirrors sk_alphatype_t.
type AlphaType int32

const (
	AlphaTypeUnknown AlphaType = iota
	AlphaTypeOpaque
	AlphaTypePremul
	AlphaTypeUnpremul
)

// PaintStyle mirrors sk_paint_style_t.
type PaintStyle int32

const (
	PaintStyleFill PaintStyle = iota
	PaintStyleStroke
	PaintStyleStrokeAndFill
)

// StrokeCap mirrors sk_stroke_cap_t.
type StrokeCap int32

const (
	StrokeCapButt StrokeCap = iota
	StrokeCapRound
	StrokeCapSquare
)

// StrokeJoin mirrors sk_stroke_join_t.
type StrokeJoin int32

const (
	StrokeJoinMiter StrokeJoin = iota
	StrokeJoinRound
	StrokeJoinBevel
)

// BlendMode mirrors sk_blendmode_t.
type BlendMode int32

const (
	BlendModeClear BlendMode = iota
	BlendModeSrc
	BlendModeDst
	BlendModeSrcOver
	BlendModeDstOver
	BlendModeSrcIn
	BlendModeDstIn
	BlendModeSrcOut
	BlendModeDstOut
	BlendModeSrcATop
	BlendModeDstATop
	BlendModeXor
	BlendModePlus
	BlendModeModulate
	BlendModeScreen
	BlendModeOverlay
	BlendModeDarken
	BlendModeLighten
	BlendModeColorDodge
	BlendModeColorBurn
	BlendModeHardLight
	BlendModeSoftLight
	BlendModeDifference
	BlendModeExclusion
	BlendModeMultiply
	BlendModeHue
	BlendModeSaturation
	BlendModeColor
	BlendModeLuminosity
)

// FillType mirrors sk_path_filltype_t.
type FillType int32

const (
	FillTypeWinding FillType = iota
	FillTypeEvenOdd
	FillTypeInverseWinding
	FillTypeInverseEvenOdd
)

// PathDirection mirrors sk_path_direction_t.
type PathDirection int32

const (
	PathDirectionCW PathDirection = iota
	PathDirectionCCW
)

// ClipOp mirrors sk_clipop_t.
type ClipOp int32

const (
	ClipOpDifference ClipOp = iota
	ClipOpIntersect
)

// TileMode mirrors sk_shader_tilemode_t.
type TileMode int32

const (
	TileModeClamp TileMode = iota
	TileModeRepeat
	TileModeMirror
	TileModeDecal
)

// FontSlant mirrors sk_font_style_slant_t.
type FontSlant int32

const (
	FontSlantUpright FontSlant = iota
	FontSlantItalic
	FontSlantOblique
)

// TextEncoding mirrors sk_text_encoding_t.
type TextEncoding int32

const (
	TextEncodingUTF8 TextEncoding = iota
	TextEncodingUTF16
	TextEncodingUTF32
	TextEncodingGlyphID
)

// BlurStyle mirrors sk_blurstyle_t.
type BlurStyle int32

const (
	BlurStyleNormal BlurStyle = iota
	BlurStyleSolid
	BlurStyleOuter
	BlurStyleInner
)

// PNGFilterFlags mirrors sk_pngencoder_filterflags_t.
type PNGFilterFlags int32

const (
	PNGFilterZero  PNGFilterFlags = 0x00
	PNGFilterNone  PNGFilterFlags = 0x08
	PNGFilterSub   PNGFilterFlags = 0x10
	PNGFilterUp    PNGFilterFlags = 0x20
	PNGFilterAvg   PNGFilterFlags = 0x40
	PNGFilterPaeth PNGFilterFlags = 0x80
	PNGFilterAll   PNGFilterFlags = 0xF8
)

// JPEGDownsample mirrors sk_jpegencoder_downsample_t.
type JPEGDownsample int32

const (
	JPEGDownsample420 JPEGDownsample = iota
	JPEGDownsample422
	JPEGDownsample444
)

// JPEGAlphaOption mirrors sk_jpegencoder_alphaoption_t.
type JPEGAlphaOption int32

const (
	JPEGAlphaIgnore JPEGAlphaOption = iota
	JPEGAlphaBlendOnBlack
)

// WebPCompression mirrors sk_webpencoder_compression_t.
type WebPCompression int32

const (
	WebPLossy WebPCompression = iota
	WebPLossless
)
