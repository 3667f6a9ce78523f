// Package softengine is an in-process implementation of the engine ABI.
//
// It fills a native.Lib function table with pure Go code, so the binding
// can run and be tested without the shared library. It keeps the engine
// contracts the binding relies on: save-count stack, 4x4 matrix get and
// set, clip, reference-counted handles, picture recording with playback
// and serialization, PDF documents and pixel encoders.
//
// Rasterization is simple and unhinted. Text uses the Go fonts when no
// font file is given.
//
// Example:
//
//	eng := softengine.New()
//	if err := skia.Init(skia.WithEngine(eng.Lib())); err != nil {
//	    log.Fatal(err)
//	}
package softengine
