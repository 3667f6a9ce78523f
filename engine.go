package skia

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gogpu/skia/internal/native"
)

// engineState is one loaded engine. Resources remember the state they were
// created under so that nothing is released into an engine that is gone.
type engineState struct {
	lib     *native.Lib
	library *native.Library // nil when the table was injected
}

var (
	engineMu  sync.Mutex
	enginePtr atomic.Pointer[engineState]
)

// Init loads the engine. It is called implicitly by the first constructor,
// so an explicit call is only needed to pass options or to surface load
// errors early. Calling Init again while an engine is loaded is a no-op.
//
// Example:
//
//	if err := skia.Init(skia.WithLibraryPath("./libSkiaSharp.so")); err != nil {
//	    log.Fatal(err)
//	}
//	defer skia.Shutdown()
func Init(opts ...Option) error {
	engineMu.Lock()
	defer engineMu.Unlock()

	if enginePtr.Load() != nil {
		return nil
	}

	var o engineOptions
	for _, opt := range opts {
		opt(&o)
	}

	if o.lib != nil {
		if missing := o.lib.Missing(); len(missing) > 0 {
			return fmt.Errorf("%w: %w: %s", ErrEngineNotLoaded, native.ErrSymbol, strings.Join(missing, ", "))
		}
		enginePtr.Store(&engineState{lib: o.lib})
		Logger().Info("skia: engine installed")
		return nil
	}

	library, err := native.Load(o.libraryPath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEngineNotLoaded, err)
	}
	enginePtr.Store(&engineState{lib: library.Lib, library: library})
	Logger().Info("skia: engine loaded", "path", library.Path)
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(opts ...Option) {
	if err := Init(opts...); err != nil {
		panic(err)
	}
}

// Shutdown unloads the engine. Wrappers still alive are not released into
// the unloaded engine; their release becomes a logged no-op.
func Shutdown() error {
	engineMu.Lock()
	defer engineMu.Unlock()

	st := enginePtr.Swap(nil)
	if st == nil {
		return nil
	}
	Logger().Info("skia: engine shut down")
	return st.library.Close()
}

// Loaded reports whether an engine is currently available.
func Loaded() bool {
	return enginePtr.Load() != nil
}

// currentEngine returns the loaded engine, loading it with defaults on
// first use.
func currentEngine() (*engineState, error) {
	if st := enginePtr.Load(); st != nil {
		return st, nil
	}
	if err := Init(); err != nil {
		return nil, err
	}
	if st := enginePtr.Load(); st != nil {
		return st, nil
	}
	return nil, ErrEngineNotLoaded
}
