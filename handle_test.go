package skia

import (
	"bytes"
	"errors"
	"log/slog"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gogpu/skia/internal/native"
	"github.com/gogpu/skia/internal/softengine"
)

type counted struct {
	*resource
}

func newCounted(t *testing.T, calls *atomic.Int32) *counted {
	t.Helper()
	eng, err := currentEngine()
	mustNoErr(t, err)
	r, err := newResource(eng, 42, "test", func(native.Handle) { calls.Add(1) })
	mustNoErr(t, err)
	c := &counted{r}
	track(c, r)
	return c
}

func TestNullHandle(t *testing.T) {
	eng, err := currentEngine()
	mustNoErr(t, err)
	if _, err := newResource(eng, 0, "test", nil); !errors.Is(err, ErrNullHandle) {
		t.Errorf("newResource(0) error = %v, want ErrNullHandle", err)
	}
}

func TestReleaseAtMostOnce(t *testing.T) {
	var calls atomic.Int32
	c := newCounted(t, &calls)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Release()
		}()
	}
	wg.Wait()
	c.Release()

	if n := calls.Load(); n != 1 {
		t.Errorf("release called %d times, want 1", n)
	}
	if !c.IsReleased() || c.Handle() != 0 {
		t.Error("resource still live after Release")
	}
	if _, _, err := c.get(); !errors.Is(err, ErrUseAfterRelease) {
		t.Errorf("get() after Release = %v, want ErrUseAfterRelease", err)
	}
}

func TestCleanupReleasesUnreachable(t *testing.T) {
	var calls atomic.Int32
	func() {
		_ = newCounted(t, &calls)
	}()

	deadline := time.Now().Add(5 * time.Second)
	for calls.Load() == 0 && time.Now().Before(deadline) {
		runtime.GC()
		time.Sleep(10 * time.Millisecond)
	}
	if n := calls.Load(); n != 1 {
		t.Fatalf("cleanup released %d times, want 1", n)
	}
}

func TestExplicitReleaseStopsCleanup(t *testing.T) {
	var calls atomic.Int32
	func() {
		c := newCounted(t, &calls)
		c.Release()
	}()
	for range 5 {
		runtime.GC()
		time.Sleep(5 * time.Millisecond)
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("release called %d times, want 1", n)
	}
}

func TestReleaseAfterShutdownIsSkipped(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})))
	defer SetLogger(nil)

	useFreshEngine(t)
	var calls atomic.Int32
	c := newCounted(t, &calls)

	mustNoErr(t, Shutdown())
	c.Release()
	mustNoErr(t, Init(WithEngine(softengine.New().Lib())))

	if n := calls.Load(); n != 0 {
		t.Errorf("release reached an unloaded engine %d times", n)
	}
	if !strings.Contains(buf.String(), "release skipped") {
		t.Errorf("expected a warning, got %q", buf.String())
	}
}

func TestResourceOutlivesEngine(t *testing.T) {
	useFreshEngine(t)
	p, err := NewPaint()
	mustNoErr(t, err)

	mustNoErr(t, Shutdown())
	mustNoErr(t, Init(WithEngine(softengine.New().Lib())))

	if _, _, err := p.get(); !errors.Is(err, ErrUseAfterRelease) {
		t.Errorf("get() on stale paint = %v, want ErrUseAfterRelease", err)
	}
	p.Release()
}

func TestHandlesBalance(t *testing.T) {
	e := useFreshEngine(t)

	s, err := NewSurface(32, 32)
	mustNoErr(t, err)
	p, err := NewPaint()
	mustNoErr(t, err)
	path, err := NewPath()
	mustNoErr(t, err)
	if e.Live("") == 0 {
		t.Fatal("no live handles after construction")
	}

	path.Release()
	p.Release()
	s.Release()
	if n := e.Live(""); n != 0 {
		t.Errorf("%d handles leaked", n)
	}
}

func TestInitWithIncompleteTable(t *testing.T) {
	mustNoErr(t, Shutdown())
	defer func() { mustNoErr(t, Init(WithEngine(softengine.New().Lib()))) }()

	err := Init(WithEngine(&native.Lib{}))
	if !errors.Is(err, ErrEngineNotLoaded) {
		t.Errorf("Init() = %v, want ErrEngineNotLoaded", err)
	}
	if Loaded() {
		t.Error("incomplete table must not be installed")
	}
}

// collect runs a few GC cycles and gives queued cleanups time to finish.
func collect() {
	for range 3 {
		runtime.GC()
		time.Sleep(5 * time.Millisecond)
	}
}

func waitLive(e *softengine.Engine, kind string, want int) int {
	deadline := time.Now().Add(5 * time.Second)
	for e.Live(kind) != want && time.Now().Before(deadline) {
		collect()
	}
	return e.Live(kind)
}

func TestCanvasKeepsOwnerAlive(t *testing.T) {
	tests := []struct {
		name   string
		kind   string
		borrow func(t *testing.T) *Canvas
	}{
		{"surface", softengine.KindSurface, func(t *testing.T) *Canvas {
			s, err := NewSurface(8, 8)
			mustNoErr(t, err)
			c, err := s.Canvas()
			mustNoErr(t, err)
			return c
		}},
		{"document", softengine.KindDocument, func(t *testing.T) *Canvas {
			doc, err := NewPDF(&bytes.Buffer{})
			mustNoErr(t, err)
			c, err := doc.BeginPage(100, 100)
			mustNoErr(t, err)
			return c
		}},
		{"recorder", softengine.KindRecorder, func(t *testing.T) *Canvas {
			pr, err := NewPictureRecorder()
			mustNoErr(t, err)
			c, err := pr.BeginRecording(RectFromWH(10, 10))
			mustNoErr(t, err)
			return c
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := useFreshEngine(t)
			func() {
				c := tt.borrow(t)
				collect()
				if n := e.Live(tt.kind); n != 1 {
					t.Fatalf("live %s = %d while its canvas is reachable, want 1", tt.kind, n)
				}
				if err := c.Translate(1, 1); err != nil {
					t.Fatalf("Translate() = %v", err)
				}
				if n := saveCount(t, c); n != 1 {
					t.Errorf("save count = %d, want 1", n)
				}
			}()
			if n := waitLive(e, tt.kind, 0); n != 0 {
				t.Errorf("live %s = %d after the canvas was dropped, want 0", tt.kind, n)
			}
		})
	}
}

func TestArgumentsLiveThroughEngineCall(t *testing.T) {
	var paints, paths atomic.Int32
	useWrappedEngine(t, func(e *softengine.Engine, lib *native.Lib) {
		drawRect := lib.CanvasDrawRect
		lib.CanvasDrawRect = func(c native.Handle, r *native.Rect, p native.Handle) {
			collect()
			paints.Store(int32(e.Live(softengine.KindPaint)))
			drawRect(c, r, p)
		}
		addPath := lib.PathAddPath
		lib.PathAddPath = func(p, other native.Handle, mode int32) {
			collect()
			paths.Store(int32(e.Live(softengine.KindPath)))
			addPath(p, other, mode)
		}
	})

	_, c := newTestCanvas(t, 8, 8)
	draw := func() error {
		p, err := NewPaint()
		if err != nil {
			return err
		}
		return c.DrawRect(RectFromWH(4, 4), p)
	}
	mustNoErr(t, draw())
	if n := paints.Load(); n != 1 {
		t.Errorf("live paints during draw = %d, want 1", n)
	}

	dst, err := NewPath()
	mustNoErr(t, err)
	defer dst.Release()
	add := func() error {
		src, err := NewPath()
		if err != nil {
			return err
		}
		return dst.AddPath(src.AddCircle(2, 2, 1, DirectionCW), AddPathAppend).Err()
	}
	mustNoErr(t, add())
	if n := paths.Load(); n != 2 {
		t.Errorf("live paths during AddPath = %d, want 2", n)
	}
}
