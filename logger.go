package ggblit

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/gg"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called while a benchmark is logging.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger used by ggblit.
// By default ggblit produces no log output. Pass nil to restore the
// silent default.
//
// Log levels used by ggblit:
//   - [slog.LevelDebug]: matrix selection, decode details, flips
//   - [slog.LevelInfo]: surface descriptions and benchmark results
//   - [slog.LevelWarn]: non-fatal issues (release errors)
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// SetLibraryLogger installs l as the logger of both ggblit and the gg
// graphics library, so library diagnostics (GPU adapter selection, CPU
// fallback) appear in the same stream.
func SetLibraryLogger(l *slog.Logger) {
	SetLogger(l)
	gg.SetLogger(l)
}

// Logger returns the current logger used by ggblit.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
