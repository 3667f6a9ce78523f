package skia

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler drops every record and reports every level as disabled.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func silentLogger() *slog.Logger { return slog.New(nopHandler{}) }

// logger is read from the cleanup goroutine when unreachable handles are
// released, so it lives behind an atomic pointer.
var logger atomic.Pointer[slog.Logger]

func init() {
	logger.Store(silentLogger())
}

// SetLogger routes the package's diagnostics to l. The package is silent
// until this is called; nil makes it silent again.
//
// Messages by level:
//   - [slog.LevelDebug]: a handle was released, explicitly or by the
//     garbage collector, with its kind
//   - [slog.LevelInfo]: an engine was loaded, installed or shut down
//   - [slog.LevelWarn]: a release was skipped because its engine is gone
//
// Errors are always returned to the caller as well; logging is
// informational only.
//
// Example:
//
//	skia.SetLogger(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silentLogger()
	}
	logger.Store(l)
}

// Logger returns the logger set by SetLogger, or a silent one.
func Logger() *slog.Logger {
	return logger.Load()
}
