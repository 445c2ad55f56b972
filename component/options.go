package component

import (
	"log/slog"
	"time"

	"github.com/gogpu/canvas"
)

// Default tunables.
const (
	DefaultDragThreshold = 15
	DefaultDragTimeout   = 300 * time.Millisecond
	DefaultLoopDelay     = 10 * time.Millisecond
)

// Option configures a Base.
type Option func(*options)

type options struct {
	clearOnDraw   bool
	dragThreshold float64
	dragTimeout   time.Duration
	loopDelay     time.Duration
	mode          DrawMode
	canvas        []canvas.Option
	logger        *slog.Logger
}

func defaultOptions() options {
	return options{
		clearOnDraw:   true,
		dragThreshold: DefaultDragThreshold,
		dragTimeout:   DefaultDragTimeout,
		loopDelay:     DefaultLoopDelay,
		mode:          OnDemand,
	}
}

// WithClearOnDraw sets whether the canvas is cleared before every frame.
// Default: true.
func WithClearOnDraw(enabled bool) Option {
	return func(o *options) {
		o.clearOnDraw = enabled
	}
}

// WithDragThreshold sets how far, in logical units, the pointer may move
// while pressed before the pending drag is abandoned.
func WithDragThreshold(units float64) Option {
	return func(o *options) {
		if units >= 0 {
			o.dragThreshold = units
		}
	}
}

// WithDragTimeout sets how long a press must be held to start a drag.
func WithDragTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.dragTimeout = d
		}
	}
}

// WithLoopDelay sets the pause between frames in Continuous mode.
func WithLoopDelay(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.loopDelay = d
		}
	}
}

// WithDrawMode sets the initial draw mode.
func WithDrawMode(m DrawMode) Option {
	return func(o *options) {
		o.mode = m
	}
}

// WithCanvasOptions passes options to the component's canvas and to
// offscreen buffers it creates.
func WithCanvasOptions(opts ...canvas.Option) Option {
	return func(o *options) {
		o.canvas = append(o.canvas, opts...)
	}
}

// WithLogger sets the component's logger. By default canvas.Logger is used.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
