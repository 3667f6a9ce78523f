package skia

import (
	"fmt"
	"os"

	"github.com/gogpu/skia/internal/native"
)

// Font weights and widths on the CSS-like scales the engine uses.
const (
	WeightThin      = 100
	WeightLight     = 300
	WeightNormal    = 400
	WeightMedium    = 500
	WeightBold      = 700
	WeightBlack     = 900
	WidthCondensed  = 3
	WidthNormal     = 5
	WidthExpanded   = 7
	DefaultFontSize = 12
)

// FontStyle selects a face within a family.
type FontStyle struct {
	Weight int
	Width  int
	Slant  FontSlant
}

// Common font styles.
var (
	NormalStyle     = FontStyle{Weight: WeightNormal, Width: WidthNormal, Slant: SlantUpright}
	BoldStyle       = FontStyle{Weight: WeightBold, Width: WidthNormal, Slant: SlantUpright}
	ItalicStyle     = FontStyle{Weight: WeightNormal, Width: WidthNormal, Slant: SlantItalic}
	BoldItalicStyle = FontStyle{Weight: WeightBold, Width: WidthNormal, Slant: SlantItalic}
)

// Typeface is a reference-counted font face.
type Typeface struct {
	*resource
}

func wrapTypeface(eng *engineState, h native.Handle) (*Typeface, error) {
	r, err := newResource(eng, h, "typeface", eng.lib.TypefaceUnref)
	if err != nil {
		return nil, err
	}
	t := &Typeface{r}
	track(t, r)
	return t, nil
}

// DefaultTypeface returns the engine's default face.
func DefaultTypeface() (*Typeface, error) {
	eng, err := currentEngine()
	if err != nil {
		return nil, err
	}
	return wrapTypeface(eng, eng.lib.TypefaceCreateDefault())
}

// NewTypeface matches a face by family name and style. Unknown families
// fall back to the default face.
func NewTypeface(family string, style FontStyle) (*Typeface, error) {
	eng, err := currentEngine()
	if err != nil {
		return nil, err
	}
	fs := eng.lib.FontStyleNew(int32(style.Weight), int32(style.Width), native.FontSlant(style.Slant))
	if fs == 0 {
		return nil, fmt.Errorf("%w: font style", ErrNullHandle)
	}
	defer eng.lib.FontStyleDelete(fs)
	return wrapTypeface(eng, eng.lib.TypefaceCreateFromName(family, fs))
}

// NewTypefaceFromFile loads face index of a font file.
func NewTypefaceFromFile(path string, index int) (*Typeface, error) {
	eng, err := currentEngine()
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFileNotFound, path, err)
	}
	t, err := wrapTypeface(eng, eng.lib.TypefaceCreateFromFile(path, int32(index)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
