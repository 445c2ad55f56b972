package raster

import (
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/canvas/native"
)

// Name is the registry name of this backend.
const Name = "raster"

func init() {
	native.Register(Name, native.PrioritySoftware, func() (native.Backend, error) {
		return NewBackend(), nil
	}, nil)
}

// Option configures a Backend.
type Option func(*Backend)

// WithPixelRatio sets the ratio reported by DevicePixelRatio.
// Headless rendering has no display, so the default is 0 (unknown).
func WithPixelRatio(ratio float64) Option {
	return func(b *Backend) {
		b.ratio = ratio
	}
}

// WithFonts makes contexts resolve font families in reg instead of the
// package-wide registry.
func WithFonts(reg *FontRegistry) Option {
	return func(b *Backend) {
		b.fonts = reg
	}
}

// Backend creates raster contexts.
type Backend struct {
	ratio float64
	fonts *FontRegistry
	log   atomic.Pointer[slog.Logger]
}

var _ native.Backend = (*Backend)(nil)

// NewBackend creates a backend with the given options.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{fonts: defaultFonts}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewContext returns an empty 0x0 context.
func (b *Backend) NewContext() native.Context2D {
	return newContext(b)
}

// DevicePixelRatio returns the configured ratio.
func (b *Backend) DevicePixelRatio() float64 {
	return b.ratio
}

var nopLogger = slog.New(slog.DiscardHandler)

// SetLogger sets the logger used by contexts of this backend.
// Pass nil to disable logging.
func (b *Backend) SetLogger(l *slog.Logger) {
	if l == nil {
		l = nopLogger
	}
	b.log.Store(l)
}

func (b *Backend) logger() *slog.Logger {
	if l := b.log.Load(); l != nil {
		return l
	}
	return nopLogger
}

// Name returns the registry name.
func (b *Backend) Name() string { return Name }
