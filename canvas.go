package canvas

import (
	"github.com/gogpu/canvas/native"
	"github.com/gogpu/canvas/raster"
)

// Canvas is a drawing surface with a pixel-ratio aware API. All
// coordinates and lengths are logical units; the backing store is
// Width()*PixelRatio() by Height()*PixelRatio() device pixels.
//
// A Canvas is not safe for concurrent use. Drive it from one goroutine,
// normally the host's UI goroutine.
type Canvas struct {
	backend native.Backend
	ctx     native.Context2D
	dev     device
	path    *Path

	width, height int
}

// NewCanvas creates a 0x0 canvas. Call ResizeCanvas before drawing.
//
// Without WithBackend the highest-priority available backend of the
// native registry is used. The pixel ratio is read from the backend once;
// a ratio that is unknown or not positive becomes 1.
func NewCanvas(opts ...Option) *Canvas {
	var o canvasOptions
	for _, opt := range opts {
		opt(&o)
	}

	b := o.backend
	if b == nil {
		var err error
		if b, err = native.Best(); err != nil {
			Logger().Warn("canvas: no registered backend, using raster", "err", err)
			b = raster.NewBackend()
		}
	}
	propagateLogger(b)

	ratio := o.ratio
	if ratio <= 0 {
		ratio = b.DevicePixelRatio()
	}
	if ratio <= 0 {
		ratio = 1
	}

	ctx := b.NewContext()
	c := &Canvas{
		backend: b,
		ctx:     ctx,
		dev:     device{ctx: ctx, ratio: ratio},
	}
	c.path = newPath(c.dev)
	c.dev.setSize(0, 0)
	Logger().Debug("canvas: created", "backend", backendName(b), "ratio", ratio)
	return c
}

func backendName(b native.Backend) string {
	if n, ok := b.(interface{ Name() string }); ok {
		return n.Name()
	}
	return "custom"
}

// ResizeCanvas sets the logical size and reallocates the backing store,
// which clears its content and resets all drawing state.
func (c *Canvas) ResizeCanvas(width, height int) {
	c.width, c.height = width, height
	c.dev.setSize(width, height)
	Logger().Debug("canvas: resized", "width", width, "height", height, "ratio", c.dev.ratio)
}

// Width returns the logical width.
func (c *Canvas) Width() int { return c.width }

// Height returns the logical height.
func (c *Canvas) Height() int { return c.height }

// PixelRatio returns the ratio between device pixels and logical units.
func (c *Canvas) PixelRatio() float64 { return c.dev.ratio }

// Context returns the native context. Coordinates passed to it directly
// are device pixels.
func (c *Canvas) Context() native.Context2D { return c.ctx }

// Backend returns the backend that created the native context.
func (c *Canvas) Backend() native.Backend { return c.backend }

// SaveState pushes the transform and styles.
func (c *Canvas) SaveState() { c.ctx.Save() }

// RestoreState pops the state pushed by the matching SaveState.
func (c *Canvas) RestoreState() { c.ctx.Restore() }

func (c *Canvas) Translate(x, y float64) { c.dev.translate(x, y) }

// Scale multiplies the transform. Factors are unit-less and not affected
// by the pixel ratio.
func (c *Canvas) Scale(x, y float64) { c.ctx.Scale(x, y) }

// Rotate rotates the transform by angle radians, clockwise on screen.
func (c *Canvas) Rotate(angle float64) { c.ctx.Rotate(angle) }

// Clear clears the whole logical area under the current transform.
func (c *Canvas) Clear() {
	c.dev.clearRect(0, 0, float64(c.width), float64(c.height))
}

func (c *Canvas) ClearRect(x, y, width, height float64) {
	c.dev.clearRect(x, y, width, height)
}

// SetFilter applies the filter to subsequent drawing.
func (c *Canvas) SetFilter(f *CanvasFilter) {
	if f == nil {
		c.RemoveFilter()
		return
	}
	c.ctx.SetFilter(f.Filter())
}

// RemoveFilter disables filtering.
func (c *Canvas) RemoveFilter() { c.ctx.SetFilter("none") }

// SetLineDash sets a dash pattern of line units drawn and space units skipped.
func (c *Canvas) SetLineDash(line, space float64) {
	c.dev.setLineDash(line, space)
}

// SetFillStyle sets the paint for fill operations. A style without a
// value is ignored.
func (c *Canvas) SetFillStyle(style *FillStyle) {
	if style == nil || style.Value == nil {
		return
	}
	c.ctx.SetFillStyle(style.Value)
}

// SetStrokeStyle sets the paint and line width for stroke operations.
func (c *Canvas) SetStrokeStyle(style *StrokeStyle) {
	if style == nil {
		return
	}
	if style.Color != nil {
		c.ctx.SetStrokeStyle(style.Color)
	}
	c.dev.setLineWidth(style.LineWidth)
}

// SetShadowStyle sets the shadow of subsequent drawing. nil removes it.
func (c *Canvas) SetShadowStyle(style *ShadowStyle) {
	if style == nil {
		c.ctx.SetShadow("rgba(0, 0, 0, 0)", 0, 0, 0)
		return
	}
	c.dev.setShadow(style.Color, style.Blur, style.OffsetX, style.OffsetY)
}

// SetFont sets the font used by text operations.
func (c *Canvas) SetFont(f *CanvasFont) {
	if f == nil {
		f = NewCanvasFont()
	}
	c.dev.setFont(f)
}

func (c *Canvas) SetTextBaseline(b TextBaseline) { c.ctx.SetTextBaseline(b) }

// SetOpacity sets the global alpha, in [0, 1].
func (c *Canvas) SetOpacity(value float64) { c.ctx.SetGlobalAlpha(value) }

// SetClipRegion intersects the clip region with a rectangle. Use
// SaveState and RestoreState to undo it.
func (c *Canvas) SetClipRegion(x, y, width, height float64) {
	c.ctx.BeginPath()
	c.dev.rect(x, y, width, height)
	c.ctx.ClosePath()
	c.ctx.Clip()
}

// BeginPath opens the path builder and returns it.
func (c *Canvas) BeginPath() *Path {
	return c.path.Begin()
}

// ToBase64 returns the content as a PNG data URL, or "data:," when the
// canvas has no pixels.
func (c *Canvas) ToBase64() string {
	return c.ctx.ToDataURL("image/png", 0)
}

// ToBlob encodes the content asynchronously. The returned channel yields
// exactly one value, nil when the canvas is empty or encoding fails, and
// is then closed. An empty mimeType means "image/png"; quality applies to
// lossy formats and is in (0, 1].
func (c *Canvas) ToBlob(mimeType string, quality float64) <-chan *Blob {
	if mimeType == "" {
		mimeType = "image/png"
	}
	ch := make(chan *Blob, 1)
	c.ctx.ToBlob(mimeType, quality, func(b *Blob) {
		if b == nil {
			Logger().Warn("canvas: blob encoding produced no data", "type", mimeType)
		}
		ch <- b
		close(ch)
	})
	return ch
}
