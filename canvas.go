package skia

import (
	"encoding/binary"
	"fmt"
	"runtime"
	"unsafe"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"

	"github.com/gogpu/skia/internal/native"
)

// Canvas issues drawing calls and holds the transform and clip stack.
//
// A canvas is borrowed from the surface, page or recorder that created
// it; releasing the canvas never frees engine memory. It becomes invalid
// when its owner releases it (surface release, page end, recording end),
// after which every call returns ErrUseAfterRelease.
//
// The canvas references its owner, so a reachable canvas keeps the
// surface, document or recorder behind it from being collected.
//
// The save count starts at the value the engine reports when the canvas is
// obtained (1 for a fresh canvas). Save returns the count before saving,
// which is the value to hand to RestoreToCount.
type Canvas struct {
	*resource
	owner     any
	baseCount int
}

// wrapCanvas borrows h from owner. The caller keeps owner reachable for
// the duration of the call.
func wrapCanvas(eng *engineState, h native.Handle, kind string, owner any) (*Canvas, error) {
	r, err := borrowed(eng, h, kind)
	if err != nil {
		return nil, err
	}
	return &Canvas{resource: r, owner: owner, baseCount: int(eng.lib.CanvasGetSaveCount(h))}, nil
}

// Save pushes the current matrix and clip. It returns the save count
// before the push.
func (c *Canvas) Save() (int, error) {
	defer runtime.KeepAlive(c)
	h, lib, err := c.get()
	if err != nil {
		return 0, err
	}
	return int(lib.CanvasSave(h)), nil
}

// SaveLayer is like Save but also starts an offscreen layer, composited
// with paint on the matching restore. Both arguments may be nil.
func (c *Canvas) SaveLayer(bounds *Rect, paint *Paint) (int, error) {
	defer runtime.KeepAlive(paint)
	defer runtime.KeepAlive(c)
	h, lib, err := c.get()
	if err != nil {
		return 0, err
	}
	ph, err := optionalPaint(paint)
	if err != nil {
		return 0, err
	}
	return int(lib.CanvasSaveLayer(h, nativeRectPtr(bounds), ph)), nil
}

// Restore pops one saved state.
// Restoring past the count the canvas started with is an error.
func (c *Canvas) Restore() error {
	defer runtime.KeepAlive(c)
	h, lib, err := c.get()
	if err != nil {
		return err
	}
	if n := int(lib.CanvasGetSaveCount(h)); n <= c.baseCount {
		return fmt.Errorf("%w: nothing to restore at count %d", ErrInvalidSaveCount, n)
	}
	lib.CanvasRestore(h)
	return nil
}

// RestoreToCount pops saved states until the save count equals n.
// n must lie between the starting count and the current count.
func (c *Canvas) RestoreToCount(n int) error {
	defer runtime.KeepAlive(c)
	h, lib, err := c.get()
	if err != nil {
		return err
	}
	cur := int(lib.CanvasGetSaveCount(h))
	if n < c.baseCount || n > cur {
		return fmt.Errorf("%w: %d outside [%d, %d]", ErrInvalidSaveCount, n, c.baseCount, cur)
	}
	lib.CanvasRestoreToCount(h, int32(n))
	return nil
}

// SaveCount returns the current depth of the state stack.
func (c *Canvas) SaveCount() (int, error) {
	defer runtime.KeepAlive(c)
	h, lib, err := c.get()
	if err != nil {
		return 0, err
	}
	return int(lib.CanvasGetSaveCount(h)), nil
}

// WithSave runs fn between a Save and a RestoreToCount of the count Save
// returned. The restore runs on every exit from fn, including errors and
// panics, so the stack depth afterwards equals the depth before even if fn
// left saves of its own unmatched.
//
// Example:
//
//	err := c.WithSave(func(c *skia.Canvas) error {
//	    if err := c.Translate(50, 50); err != nil {
//	        return err
//	    }
//	    return c.DrawRect(skia.RectFromWH(10, 10), paint)
//	})
func (c *Canvas) WithSave(fn func(*Canvas) error) (err error) {
	n, err := c.Save()
	if err != nil {
		return err
	}
	defer func() {
		if rerr := c.RestoreToCount(n); rerr != nil && err == nil {
			err = rerr
		}
	}()
	return fn(c)
}

// WithSaveLayer is WithSave for SaveLayer.
func (c *Canvas) WithSaveLayer(bounds *Rect, paint *Paint, fn func(*Canvas) error) (err error) {
	n, err := c.SaveLayer(bounds, paint)
	if err != nil {
		return err
	}
	defer func() {
		if rerr := c.RestoreToCount(n); rerr != nil && err == nil {
			err = rerr
		}
	}()
	return fn(c)
}

// Translate moves the origin by (dx, dy).
func (c *Canvas) Translate(dx, dy float64) error {
	defer runtime.KeepAlive(c)
	h, lib, err := c.get()
	if err != nil {
		return err
	}
	lib.CanvasTranslate(h, float32(dx), float32(dy))
	return nil
}

// Scale scales the coordinate system.
func (c *Canvas) Scale(sx, sy float64) error {
	defer runtime.KeepAlive(c)
	h, lib, err := c.get()
	if err != nil {
		return err
	}
	lib.CanvasScale(h, float32(sx), float32(sy))
	return nil
}

// Rotate rotates the coordinate system about the origin (degrees).
func (c *Canvas) Rotate(degrees float64) error {
	defer runtime.KeepAlive(c)
	h, lib, err := c.get()
	if err != nil {
		return err
	}
	lib.CanvasRotateDegrees(h, float32(degrees))
	return nil
}

// RotateRadians rotates the coordinate system about the origin.
func (c *Canvas) RotateRadians(radians float64) error {
	defer runtime.KeepAlive(c)
	h, lib, err := c.get()
	if err != nil {
		return err
	}
	lib.CanvasRotateRadians(h, float32(radians))
	return nil
}

// RotateAround rotates the coordinate system about (px, py) (degrees):
// translate to the pivot, rotate, translate back.
func (c *Canvas) RotateAround(degrees, px, py float64) error {
	defer runtime.KeepAlive(c)
	h, lib, err := c.get()
	if err != nil {
		return err
	}
	lib.CanvasTranslate(h, float32(px), float32(py))
	lib.CanvasRotateDegrees(h, float32(degrees))
	lib.CanvasTranslate(h, float32(-px), float32(-py))
	return nil
}

// Skew skews the coordinate system.
func (c *Canvas) Skew(sx, sy float64) error {
	defer runtime.KeepAlive(c)
	h, lib, err := c.get()
	if err != nil {
		return err
	}
	lib.CanvasSkew(h, float32(sx), float32(sy))
	return nil
}

// Concat pre-multiplies the current matrix by m.
func (c *Canvas) Concat(m Matrix) error {
	defer runtime.KeepAlive(c)
	h, lib, err := c.get()
	if err != nil {
		return err
	}
	nm := m.to44()
	lib.CanvasConcat(h, &nm)
	return nil
}

// SetMatrix replaces the current matrix.
func (c *Canvas) SetMatrix(m Matrix) error {
	defer runtime.KeepAlive(c)
	h, lib, err := c.get()
	if err != nil {
		return err
	}
	nm := m.to44()
	lib.CanvasSetMatrix(h, &nm)
	return nil
}

// Matrix returns the current matrix, perspective terms included.
func (c *Canvas) Matrix() (Matrix, error) {
	defer runtime.KeepAlive(c)
	h, lib, err := c.get()
	if err != nil {
		return Matrix{}, err
	}
	var nm native.Matrix44
	lib.CanvasGetMatrix(h, &nm)
	return matrixFrom44(nm), nil
}

// ResetMatrix sets the current matrix to the identity.
func (c *Canvas) ResetMatrix() error {
	defer runtime.KeepAlive(c)
	h, lib, err := c.get()
	if err != nil {
		return err
	}
	lib.CanvasResetMatrix(h)
	return nil
}

// ClipRect combines the clip with r.
func (c *Canvas) ClipRect(r Rect, op ClipOp, antialias bool) error {
	defer runtime.KeepAlive(c)
	h, lib, err := c.get()
	if err != nil {
		return err
	}
	nr := r.toNative()
	lib.CanvasClipRectWithOperation(h, &nr, native.ClipOp(op), antialias)
	return nil
}

// ClipPath combines the clip with the filled area of p.
func (c *Canvas) ClipPath(p *Path, op ClipOp, antialias bool) error {
	defer runtime.KeepAlive(p)
	defer runtime.KeepAlive(c)
	h, lib, err := c.get()
	if err != nil {
		return err
	}
	path, err := requiredPath(p)
	if err != nil {
		return err
	}
	lib.CanvasClipPathWithOperation(h, path, native.ClipOp(op), antialias)
	return nil
}

// Clear replaces every pixel inside the clip with col.
func (c *Canvas) Clear(col Color) error {
	defer runtime.KeepAlive(c)
	h, lib, err := c.get()
	if err != nil {
		return err
	}
	lib.CanvasClear(h, native.Color(col))
	return nil
}

// DrawColor fills the clip with col using mode.
func (c *Canvas) DrawColor(col Color, mode BlendMode) error {
	defer runtime.KeepAlive(c)
	h, lib, err := c.get()
	if err != nil {
		return err
	}
	lib.CanvasDrawColor(h, native.Color(col), native.BlendMode(mode))
	return nil
}

// DrawPaint fills the clip with paint.
func (c *Canvas) DrawPaint(paint *Paint) error {
	return c.draw(paint, func(lib *native.Lib, h, ph native.Handle) {
		lib.CanvasDrawPaint(h, ph)
	})
}

// DrawRect draws a rectangle.
func (c *Canvas) DrawRect(r Rect, paint *Paint) error {
	return c.draw(paint, func(lib *native.Lib, h, ph native.Handle) {
		nr := r.toNative()
		lib.CanvasDrawRect(h, &nr, ph)
	})
}

// DrawRoundRect draws a rectangle with elliptical corners.
func (c *Canvas) DrawRoundRect(r Rect, rx, ry float64, paint *Paint) error {
	return c.draw(paint, func(lib *native.Lib, h, ph native.Handle) {
		nr := r.toNative()
		lib.CanvasDrawRoundRect(h, &nr, float32(rx), float32(ry), ph)
	})
}

// DrawCircle draws a circle.
func (c *Canvas) DrawCircle(cx, cy, radius float64, paint *Paint) error {
	return c.draw(paint, func(lib *native.Lib, h, ph native.Handle) {
		lib.CanvasDrawCircle(h, float32(cx), float32(cy), float32(radius), ph)
	})
}

// DrawOval draws the ellipse inscribed in r.
func (c *Canvas) DrawOval(r Rect, paint *Paint) error {
	return c.draw(paint, func(lib *native.Lib, h, ph native.Handle) {
		nr := r.toNative()
		lib.CanvasDrawOval(h, &nr, ph)
	})
}

// DrawPath draws a path.
func (c *Canvas) DrawPath(p *Path, paint *Paint) error {
	defer runtime.KeepAlive(p)
	path, err := requiredPath(p)
	if err != nil {
		return err
	}
	return c.draw(paint, func(lib *native.Lib, h, ph native.Handle) {
		lib.CanvasDrawPath(h, path, ph)
	})
}

// DrawLine draws a line segment. The paint style is ignored; lines are
// always stroked.
func (c *Canvas) DrawLine(x0, y0, x1, y1 float64, paint *Paint) error {
	return c.draw(paint, func(lib *native.Lib, h, ph native.Handle) {
		lib.CanvasDrawLine(h, float32(x0), float32(y0), float32(x1), float32(y1), ph)
	})
}

// DrawPoint draws a single point sized by the stroke width.
func (c *Canvas) DrawPoint(x, y float64, paint *Paint) error {
	return c.draw(paint, func(lib *native.Lib, h, ph native.Handle) {
		lib.CanvasDrawPoint(h, float32(x), float32(y), ph)
	})
}

// DrawImage draws img with its top-left corner at (x, y). paint may be nil.
func (c *Canvas) DrawImage(img *Image, x, y float64, paint *Paint) error {
	defer runtime.KeepAlive(img)
	defer runtime.KeepAlive(paint)
	defer runtime.KeepAlive(c)
	h, lib, err := c.get()
	if err != nil {
		return err
	}
	ih, err := requiredImage(img)
	if err != nil {
		return err
	}
	ph, err := optionalPaint(paint)
	if err != nil {
		return err
	}
	lib.CanvasDrawImage(h, ih, float32(x), float32(y), ph)
	return nil
}

// DrawImageRect draws the src part of img scaled into dst. A nil src
// selects the whole image. paint may be nil.
func (c *Canvas) DrawImageRect(img *Image, src *Rect, dst Rect, paint *Paint) error {
	defer runtime.KeepAlive(img)
	defer runtime.KeepAlive(paint)
	defer runtime.KeepAlive(c)
	h, lib, err := c.get()
	if err != nil {
		return err
	}
	ih, err := requiredImage(img)
	if err != nil {
		return err
	}
	ph, err := optionalPaint(paint)
	if err != nil {
		return err
	}
	if src == nil {
		b := img.Bounds()
		src = &b
	}
	ns, nd := src.toNative(), dst.toNative()
	lib.CanvasDrawImageRect(h, ih, &ns, &nd, ph)
	return nil
}

// DrawText draws UTF-8 text with its baseline origin at (x, y).
// A nil font selects the default font.
func (c *Canvas) DrawText(text string, x, y float64, font *Font, paint *Paint) error {
	return c.drawText([]byte(text), native.TextEncodingUTF8, x, y, font, paint)
}

// DrawTextEncoded re-encodes text to enc before handing it to the engine.
// EncodingGlyphID is not accepted here; use DrawGlyphs.
func (c *Canvas) DrawTextEncoded(text string, enc TextEncoding, x, y float64, font *Font, paint *Paint) error {
	b, err := encodeText(text, enc)
	if err != nil {
		return err
	}
	return c.drawText(b, native.TextEncoding(enc), x, y, font, paint)
}

// DrawGlyphs draws glyph ids of font, laid out by their advances.
func (c *Canvas) DrawGlyphs(glyphs []uint16, x, y float64, font *Font, paint *Paint) error {
	var b []byte
	if len(glyphs) > 0 {
		b = unsafe.Slice((*byte)(unsafe.Pointer(&glyphs[0])), len(glyphs)*2)
	}
	err := c.drawText(b, native.TextEncodingGlyphID, x, y, font, paint)
	runtime.KeepAlive(glyphs)
	return err
}

func (c *Canvas) drawText(text []byte, enc native.TextEncoding, x, y float64, font *Font, paint *Paint) error {
	if font == nil {
		f, err := NewDefaultFont()
		if err != nil {
			return err
		}
		defer f.Release()
		font = f
	}
	defer runtime.KeepAlive(font)
	fh, _, err := font.get()
	if err != nil {
		return err
	}
	return c.draw(paint, func(lib *native.Lib, h, ph native.Handle) {
		var ptr unsafe.Pointer
		if len(text) > 0 {
			ptr = unsafe.Pointer(&text[0])
		}
		lib.CanvasDrawSimpleText(h, ptr, uintptr(len(text)), enc, float32(x), float32(y), fh, ph)
	})
}

// DrawPicture replays pic through m. m and paint may be nil.
func (c *Canvas) DrawPicture(pic *Picture, m *Matrix, paint *Paint) error {
	defer runtime.KeepAlive(pic)
	defer runtime.KeepAlive(paint)
	defer runtime.KeepAlive(c)
	h, lib, err := c.get()
	if err != nil {
		return err
	}
	if pic == nil {
		return fmt.Errorf("%w: picture", ErrNullHandle)
	}
	pich, _, err := pic.get()
	if err != nil {
		return err
	}
	ph, err := optionalPaint(paint)
	if err != nil {
		return err
	}
	var nm *native.Matrix
	if m != nil {
		v := m.toNative()
		nm = &v
	}
	lib.CanvasDrawPicture(h, pich, nm, ph)
	return nil
}

// draw resolves the canvas and a required paint, then runs fn. Both stay
// reachable until fn returns.
func (c *Canvas) draw(paint *Paint, fn func(lib *native.Lib, h, ph native.Handle)) error {
	defer runtime.KeepAlive(paint)
	defer runtime.KeepAlive(c)
	h, lib, err := c.get()
	if err != nil {
		return err
	}
	if paint == nil {
		return fmt.Errorf("%w: paint", ErrNullHandle)
	}
	ph, err := paint.handle()
	if err != nil {
		return err
	}
	fn(lib, h, ph)
	return nil
}

func optionalPaint(p *Paint) (native.Handle, error) {
	if p == nil {
		return 0, nil
	}
	return p.handle()
}

func requiredPath(p *Path) (native.Handle, error) {
	if p == nil {
		return 0, fmt.Errorf("%w: path", ErrNullHandle)
	}
	return p.handle()
}

func requiredImage(img *Image) (native.Handle, error) {
	if img == nil {
		return 0, fmt.Errorf("%w: image", ErrNullHandle)
	}
	h, _, err := img.get()
	return h, err
}

// encodeText converts UTF-8 text to the host byte order form of enc.
func encodeText(text string, enc TextEncoding) ([]byte, error) {
	var e *encoding.Encoder
	switch enc {
	case EncodingUTF8:
		return []byte(text), nil
	case EncodingUTF16:
		e = unicode.UTF16(unicodeEndian(), unicode.IgnoreBOM).NewEncoder()
	case EncodingUTF32:
		e = utf32.UTF32(utf32Endian(), utf32.IgnoreBOM).NewEncoder()
	default:
		return nil, fmt.Errorf("skia: text encoding %d needs glyph input", enc)
	}
	return e.Bytes([]byte(text))
}

var littleEndian = binary.NativeEndian.Uint16([]byte{1, 0}) == 1

func unicodeEndian() unicode.Endianness {
	if littleEndian {
		return unicode.LittleEndian
	}
	return unicode.BigEndian
}

func utf32Endian() utf32.Endianness {
	if littleEndian {
		return utf32.LittleEndian
	}
	return utf32.BigEndian
}
