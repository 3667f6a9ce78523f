package skia

import (
	"fmt"
	"math"
	"os"
	"testing"

	"github.com/gogpu/skia/internal/native"
	"github.com/gogpu/skia/internal/softengine"
)

func TestMain(m *testing.M) {
	if err := Init(WithEngine(softengine.New().Lib())); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	code := m.Run()
	_ = Shutdown()
	os.Exit(code)
}

// useFreshEngine installs a new software engine for the duration of the
// test so that its handle counts start from zero.
func useFreshEngine(t *testing.T) *softengine.Engine {
	t.Helper()
	return useWrappedEngine(t, nil)
}

// useWrappedEngine is useFreshEngine with a chance to replace entries of
// the function table before it is installed.
func useWrappedEngine(t *testing.T, wrap func(*softengine.Engine, *native.Lib)) *softengine.Engine {
	t.Helper()
	if err := Shutdown(); err != nil {
		t.Fatalf("Shutdown() = %v", err)
	}
	e := softengine.New()
	lib := e.Lib()
	if wrap != nil {
		wrap(e, lib)
	}
	if err := Init(WithEngine(lib)); err != nil {
		t.Fatalf("Init() = %v", err)
	}
	t.Cleanup(func() {
		_ = Shutdown()
		if err := Init(WithEngine(softengine.New().Lib())); err != nil {
			t.Fatalf("Init() = %v", err)
		}
	})
	return e
}

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func mustNoErr(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
