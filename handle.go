package skia

import (
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/gogpu/skia/internal/native"
)

// resource owns one engine handle and the operation that gives it back.
//
// Release is at most once: the first of an explicit Release or the garbage
// collector's cleanup wins, and every later attempt is a no-op. A resource
// with no release operation is borrowed from another object; releasing it
// only detaches the wrapper.
//
// The cleanup is attached to the wrapper that embeds the resource, so any
// method handing h to the engine keeps that wrapper, and every wrapper
// passed as an argument, reachable with runtime.KeepAlive until the engine
// call has returned.
type resource struct {
	eng      *engineState
	h        native.Handle
	kind     string
	release  func(native.Handle)
	released atomic.Bool

	cleanup runtime.Cleanup
	tracked bool
}

// newResource wraps h. A zero handle yields ErrNullHandle.
func newResource(eng *engineState, h native.Handle, kind string, release func(native.Handle)) (*resource, error) {
	if h == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNullHandle, kind)
	}
	return &resource{eng: eng, h: h, kind: kind, release: release}, nil
}

// borrowed wraps a handle whose lifetime belongs to another resource.
func borrowed(eng *engineState, h native.Handle, kind string) (*resource, error) {
	return newResource(eng, h, kind, nil)
}

// track registers the garbage-collector safety net on owner. It must be
// called once, right after owner is constructed.
func track[T any](owner *T, r *resource) {
	if r.release == nil {
		return
	}
	r.cleanup = runtime.AddCleanup(owner, (*resource).finalize, r)
	r.tracked = true
}

// Release gives the handle back to the engine. It is safe to call more
// than once and after the engine was shut down.
func (r *resource) Release() {
	if r == nil || !r.released.CompareAndSwap(false, true) {
		return
	}
	if r.tracked {
		r.cleanup.Stop()
	}
	r.free()
}

// IsReleased reports whether Release has run.
func (r *resource) IsReleased() bool {
	return r == nil || r.released.Load()
}

// Handle returns the raw engine handle, or 0 once released.
func (r *resource) Handle() uintptr {
	if r.IsReleased() {
		return 0
	}
	return uintptr(r.h)
}

// get returns the live handle together with the engine it belongs to.
func (r *resource) get() (native.Handle, *native.Lib, error) {
	if r.IsReleased() {
		return 0, nil, ErrUseAfterRelease
	}
	if enginePtr.Load() != r.eng {
		return 0, nil, fmt.Errorf("%w: %s outlived its engine", ErrUseAfterRelease, r.kind)
	}
	return r.h, r.eng.lib, nil
}

// finalize runs on the cleanup goroutine once the owner is unreachable.
func (r *resource) finalize() {
	if !r.released.CompareAndSwap(false, true) {
		return
	}
	Logger().Debug("skia: releasing unreachable resource", "kind", r.kind)
	r.free()
}

func (r *resource) free() {
	h := r.h
	r.h = 0
	if r.release == nil || h == 0 {
		return
	}
	if enginePtr.Load() != r.eng {
		Logger().Warn("skia: release skipped, engine no longer loaded", "kind", r.kind)
		return
	}
	r.release(h)
	Logger().Debug("skia: released", "kind", r.kind)
}
