package canvas

import "github.com/gogpu/canvas/native"

// Option configures a Canvas during creation.
//
// Example:
//
//	// Highest-priority registered backend, display pixel ratio
//	c := canvas.NewCanvas()
//
//	// Explicit backend and ratio (headless HiDPI rendering)
//	c := canvas.NewCanvas(canvas.WithBackend(raster.NewBackend()), canvas.WithPixelRatio(2))
type Option func(*canvasOptions)

type canvasOptions struct {
	backend native.Backend
	ratio   float64
}

// WithBackend makes the canvas use b instead of the best entry of the
// native registry.
func WithBackend(b native.Backend) Option {
	return func(o *canvasOptions) {
		o.backend = b
	}
}

// WithPixelRatio overrides the ratio reported by the backend.
// Values <= 0 are ignored.
func WithPixelRatio(ratio float64) Option {
	return func(o *canvasOptions) {
		if ratio > 0 {
			o.ratio = ratio
		}
	}
}
