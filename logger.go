package canvas

import (
	"context"
	"log/slog"
	"sync/atomic"
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
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for canvas and every backend it has
// created contexts with. By default canvas produces no log output.
//
// SetLogger is safe for concurrent use. Pass nil to disable logging.
//
// Log levels used by canvas:
//   - [slog.LevelDebug]: resize, frame and gesture transitions
//   - [slog.LevelInfo]: lifecycle events (backend selected, component init and dispose)
//   - [slog.LevelWarn]: non-fatal failures (pattern creation, encoding)
//
// Example:
//
//	canvas.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. Sub-packages (component, host) call
// this to share the same configuration without import cycles.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// loggerSetter is implemented by backends that accept a logger.
type loggerSetter interface {
	SetLogger(*slog.Logger)
}

// liveHandler resolves the current logger on every call, so a backend
// handed backendLogger once follows later SetLogger calls without being
// tracked by this package.
type liveHandler struct {
	wrap func(slog.Handler) slog.Handler
}

func (h liveHandler) handler() slog.Handler {
	hd := Logger().Handler()
	if h.wrap != nil {
		hd = h.wrap(hd)
	}
	return hd
}

func (h liveHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler().Enabled(ctx, level)
}

func (h liveHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.handler().Handle(ctx, r)
}

func (h liveHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.chain(func(hd slog.Handler) slog.Handler { return hd.WithAttrs(attrs) })
}

func (h liveHandler) WithGroup(name string) slog.Handler {
	return h.chain(func(hd slog.Handler) slog.Handler { return hd.WithGroup(name) })
}

func (h liveHandler) chain(next func(slog.Handler) slog.Handler) liveHandler {
	prev := h.wrap
	return liveHandler{wrap: func(hd slog.Handler) slog.Handler {
		if prev != nil {
			hd = prev(hd)
		}
		return next(hd)
	}}
}

var backendLogger = slog.New(liveHandler{})

// propagateLogger hands b a logger that follows the package logger.
func propagateLogger(b any) {
	if ls, ok := b.(loggerSetter); ok {
		ls.SetLogger(backendLogger)
	}
}
