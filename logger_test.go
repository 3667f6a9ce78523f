package skia

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

// captureLogs installs a debug-level text logger for the duration of t.
func captureLogs(t *testing.T) *syncBuffer {
	t.Helper()
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })
	buf := &syncBuffer{}
	SetLogger(slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return buf
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestLoggerSilentByDefault(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if l.Enabled(context.Background(), level) {
			t.Errorf("default logger enabled for %v", level)
		}
	}
}

func TestSetLoggerNil(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	SetLogger(slog.Default())
	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) left an enabled logger")
	}
	if _, ok := Logger().Handler().(nopHandler); !ok {
		t.Errorf("handler = %T, want nopHandler", Logger().Handler())
	}
}

func TestReleaseLogsKind(t *testing.T) {
	buf := captureLogs(t)

	p, err := NewPaint()
	mustNoErr(t, err)
	p.Release()
	p.Release()

	out := buf.String()
	if !strings.Contains(out, `level=DEBUG msg="skia: released" kind=paint`) {
		t.Errorf("release not logged at debug:\n%s", out)
	}
}

func TestEngineLifecycleLogs(t *testing.T) {
	buf := captureLogs(t)
	useFreshEngine(t)

	out := buf.String()
	for _, want := range []string{"engine shut down", "engine installed"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "engine shut down") > strings.Index(out, "engine installed") {
		t.Errorf("install logged before shutdown:\n%s", out)
	}
}

func TestSetLoggerDuringReleases(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var calls atomic.Int32
	var wg sync.WaitGroup
	const n = 32
	res := make([]*counted, n)
	for i := range res {
		res[i] = newCounted(t, &calls)
	}
	for _, r := range res {
		wg.Add(2)
		go func() {
			defer wg.Done()
			r.Release()
		}()
		go func() {
			defer wg.Done()
			SetLogger(slog.New(slog.NewTextHandler(&syncBuffer{}, nil)))
			SetLogger(nil)
		}()
	}
	wg.Wait()

	if got := calls.Load(); got != n {
		t.Errorf("releases = %d, want %d", got, n)
	}
}

func BenchmarkDisabledReleaseLog(b *testing.B) {
	l := Logger()
	b.ReportAllocs()
	for b.Loop() {
		l.Debug("skia: released", "kind", "paint")
	}
}
