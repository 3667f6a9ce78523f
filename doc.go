// Package skia is a Go binding for the Skia 2D graphics engine.
//
// # Overview
//
// The engine is loaded at run time from libSkiaSharp (or libskia) through
// its C ABI, without cgo. Every engine object is wrapped in a Go value that
// owns exactly one native handle: Surface, Canvas, Paint, Path, Image,
// Shader, Data, Typeface, Font, Document, PictureRecorder and Picture.
// Geometry (Point, Rect, Matrix) and Color are plain values.
//
// # Quick Start
//
//	import "github.com/gogpu/skia"
//
//	s, err := skia.NewSurface(256, 256)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Release()
//
//	c, _ := s.Canvas()
//	paint, _ := skia.NewFillPaint(skia.Red)
//	defer paint.Release()
//
//	c.Clear(skia.White)
//	c.DrawCircle(128, 128, 100, paint)
//	s.SavePNG("circle.png")
//
// # Loading the engine
//
// The first constructor loads the engine. Call Init to pass options or to
// surface load failures early. The library is searched for at the path
// given by WithLibraryPath, then $SKIA_LIBRARY_PATH, then next to the
// executable and in the working directory, then by the system loader.
//
// # Resource lifetime
//
// Wrappers are released with Release. Releasing twice is harmless, and a
// wrapper that becomes unreachable is released by the garbage collector as
// a safety net. Any call on a released wrapper returns ErrUseAfterRelease.
// Documents and pictures hold files and streams; close them explicitly.
//
// # Canvas state
//
// Canvas keeps a stack of matrix and clip states. Save returns the count
// before the push; RestoreToCount with that value undoes everything since.
// WithSave wraps the pair around a function and restores on every exit
// path.
//
// # Coordinate System
//
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Angles in degrees unless a name says radians; positive is clockwise
//
// # Concurrency
//
// Wrappers are not safe for concurrent use. Use one surface per goroutine
// or serialize access yourself.
package skia

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
