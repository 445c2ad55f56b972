package component

import (
	"log/slog"
	"time"

	"github.com/gogpu/canvas"
)

// DrawMode selects how frames are scheduled.
type DrawMode int

const (
	// OnDemand draws one frame per Draw call.
	OnDemand DrawMode = iota
	// Continuous keeps requesting frames until the mode changes or the
	// component is disposed.
	Continuous
)

func (m DrawMode) String() string {
	switch m {
	case OnDemand:
		return "OnDemand"
	case Continuous:
		return "Continuous"
	default:
		return "DrawMode(unknown)"
	}
}

// Base is the reusable core of an interactive canvas component.
type Base struct {
	host   Host
	view   Drawer
	opts   options
	canvas *canvas.Canvas

	width, height int
	mode          DrawMode

	initialized  bool
	disposed     bool
	pendingFrame bool
	inLoop       bool
	lastFrame    time.Duration
	hasLast      bool

	removeClick func()
	drag        dragState
}

// New creates a component drawing view on a canvas of size 0x0. Call
// Init once the host element exists.
func New(host Host, view Drawer, opts ...Option) *Base {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	c := canvas.NewCanvas(o.canvas...)
	c.ResizeCanvas(0, 0)
	return &Base{
		host:   host,
		view:   view,
		opts:   o,
		canvas: c,
		mode:   o.mode,
	}
}

func (b *Base) logger() *slog.Logger {
	if b.opts.logger != nil {
		return b.opts.logger
	}
	return canvas.Logger()
}

// Init mounts the canvas on the host element and subscribes to clicks.
// Calls after the first are no-ops.
func (b *Base) Init() {
	if b.initialized || b.disposed {
		return
	}
	b.initialized = true
	b.host.Mount(b.canvas)
	b.removeClick = b.host.Listen(Click, b.click)
	b.attachDrag()
	b.logger().Info("component: initialized", "mode", b.mode)
}

// Dispose stops the draw loop, cancels a pending drag and removes every
// listener. A frame already requested returns without drawing.
func (b *Base) Dispose() {
	if b.disposed {
		return
	}
	b.disposed = true
	b.detachDrag()
	if b.removeClick != nil {
		b.removeClick()
		b.removeClick = nil
	}
	b.logger().Info("component: disposed")
}

// Canvas returns the component's drawing surface.
func (b *Base) Canvas() *canvas.Canvas { return b.canvas }

// Width returns the logical width set by the last Resize.
func (b *Base) Width() int { return b.width }

// Height returns the logical height set by the last Resize.
func (b *Base) Height() int { return b.height }

// Resize resizes the canvas, notifies a Resizer view and draws.
func (b *Base) Resize(width, height int) {
	b.width, b.height = width, height
	b.canvas.ResizeCanvas(width, height)
	if r, ok := b.view.(Resizer); ok {
		r.OnResize(width, height)
	}
	b.Draw()
}

// Draw requests a frame. It does nothing while a frame is pending or the
// continuous loop is running, so any number of calls before the next
// repaint produce a single frame.
func (b *Base) Draw() {
	if b.inLoop || b.pendingFrame {
		return
	}
	b.requestFrame()
}

// SetDrawMode switches the draw mode and requests a frame.
func (b *Base) SetDrawMode(m DrawMode) {
	b.mode = m
	b.Draw()
}

func (b *Base) DrawMode() DrawMode { return b.mode }

func (b *Base) ToBase64() string { return b.canvas.ToBase64() }

// ToBlob encodes the current frame. See canvas.Canvas.ToBlob.
func (b *Base) ToBlob(mimeType string, quality float64) <-chan *canvas.Blob {
	return b.canvas.ToBlob(mimeType, quality)
}

// CreateOffscreenBuffer returns a new canvas of the given logical size
// that is not attached to the host.
func (b *Base) CreateOffscreenBuffer(width, height int) *canvas.Canvas {
	c := canvas.NewCanvas(b.opts.canvas...)
	c.ResizeCanvas(width, height)
	return c
}

func (b *Base) requestFrame() {
	b.pendingFrame = true
	b.host.RequestFrame(b.frame)
}

func (b *Base) frame() {
	b.pendingFrame = false
	if b.disposed {
		b.inLoop = false
		return
	}

	b.render()

	if b.mode == Continuous && !b.disposed {
		b.inLoop = true
		b.host.AfterFunc(b.opts.loopDelay, b.requestFrame)
	} else {
		b.inLoop = false
	}
}

func (b *Base) render() {
	if b.opts.clearOnDraw {
		b.canvas.Clear()
	}

	elapsed := b.elapsed()
	if u, ok := b.view.(FrameUpdater); ok {
		u.OnFrameUpdate(elapsed)
	}

	b.canvas.SaveState()
	b.canvas.Translate(0.5, 0.5)
	b.view.OnDraw(b.canvas, elapsed)
	b.canvas.RestoreState()
}

// elapsed returns the time since the previous frame.
func (b *Base) elapsed() time.Duration {
	now := b.host.Now()
	if !b.hasLast {
		b.lastFrame, b.hasLast = now, true
	}
	d := now - b.lastFrame
	b.lastFrame = now
	return d
}

func (b *Base) click(e PointerEvent) {
	if c, ok := b.view.(Clicker); ok {
		c.OnClick(e)
	}
}
