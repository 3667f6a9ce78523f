package skia

// PaintStyle selects whether geometry is filled, stroked, or both.
type PaintStyle int32

const (
	StyleFill PaintStyle = iota
	StyleStroke
	StyleStrokeAndFill
)

// String returns the style name.
func (s PaintStyle) String() string {
	switch s {
	case StyleFill:
		return "Fill"
	case StyleStroke:
		return "Stroke"
	case StyleStrokeAndFill:
		return "StrokeAndFill"
	default:
		return "Unknown"
	}
}

// StrokeCap is the shape at the ends of open stroked contours.
type StrokeCap int32

const (
	CapButt StrokeCap = iota
	CapRound
	CapSquare
)

// StrokeJoin is the shape at the corners of stroked contours.
type StrokeJoin int32

const (
	JoinMiter StrokeJoin = iota
	JoinRound
	JoinBevel
)

// BlendMode is a Porter-Duff or separable blend operator.
type BlendMode int32

const (
	BlendClear BlendMode = iota
	BlendSrc
	BlendDst
	BlendSrcOver
	BlendDstOver
	BlendSrcIn
	BlendDstIn
	BlendSrcOut
	BlendDstOut
	BlendSrcATop
	BlendDstATop
	BlendXor
	BlendPlus
	BlendModulate
	BlendScreen
	BlendOverlay
	BlendDarken
	BlendLighten
	BlendColorDodge
	BlendColorBurn
	BlendHardLight
	BlendSoftLight
	BlendDifference
	BlendExclusion
	BlendMultiply
	BlendHue
	BlendSaturation
	BlendColor
	BlendLuminosity
)

// FillType is the rule that decides which points are inside a path.
type FillType int32

const (
	FillWinding FillType = iota
	FillEvenOdd
	FillInverseWinding
	FillInverseEvenOdd
)

// PathDirection is the winding direction of closed contours added in one call.
type PathDirection int32

const (
	DirectionCW PathDirection = iota
	DirectionCCW
)

// ClipOp combines a new clip with the current one.
type ClipOp int32

const (
	ClipDifference ClipOp = iota
	ClipIntersect
)

// TileMode controls how a shader extends past its bounds.
type TileMode int32

const (
	TileClamp TileMode = iota
	TileRepeat
	TileMirror
	TileDecal
)

// FontSlant is the slant of a font style.
type FontSlant int32

const (
	SlantUpright FontSlant = iota
	SlantItalic
	SlantOblique
)

// TextEncoding is the encoding of text handed to the engine.
type TextEncoding int32

const (
	EncodingUTF8 TextEncoding = iota
	EncodingUTF16
	EncodingUTF32
	EncodingGlyphID
)

// BlurStyle selects which side of an edge a blur mask affects.
type BlurStyle int32

const (
	BlurNormal BlurStyle = iota
	BlurSolid
	BlurOuter
	BlurInner
)

// ColorType is the in-memory layout of one pixel.
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

// AlphaType describes how pixel alpha is stored.
type AlphaType int32

const (
	AlphaUnknown AlphaType = iota
	AlphaOpaque
	AlphaPremul
	AlphaUnpremul
)

// PNGFilter is a set of PNG row filters.
type PNGFilter int32

const (
	PNGFilterNone  PNGFilter = 0x08
	PNGFilterSub   PNGFilter = 0x10
	PNGFilterUp    PNGFilter = 0x20
	PNGFilterAvg   PNGFilter = 0x40
	PNGFilterPaeth PNGFilter = 0x80
	PNGFilterAll   PNGFilter = PNGFilterNone | PNGFilterSub | PNGFilterUp | PNGFilterAvg | PNGFilterPaeth
)

// JPEGDownsample is the JPEG chroma subsampling mode.
type JPEGDownsample int32

const (
	Downsample420 JPEGDownsample = iota
	Downsample422
	Downsample444
)

// JPEGAlpha selects how JPEG encoding treats alpha.
type JPEGAlpha int32

const (
	JPEGAlphaIgnore JPEGAlpha = iota
	JPEGAlphaBlendOnBlack
)
