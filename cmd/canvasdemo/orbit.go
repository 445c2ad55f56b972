package main

import (
	"math"
	"time"

	"github.com/gogpu/canvas"
	"github.com/gogpu/canvas/component"
)

// orbit draws planets circling a sun and a ball that can be dragged.
type orbit struct {
	angle    float64
	ballX    float64
	ballY    float64
	dragging bool
	width    int
	height   int
	stars    *canvas.Canvas
}

func newOrbit() *orbit {
	return &orbit{ballX: 60, ballY: 60}
}

func (o *orbit) ballPosition() (float64, float64) { return o.ballX, o.ballY }

func (o *orbit) OnResize(width, height int) {
	o.width, o.height = width, height
}

func (o *orbit) OnFrameUpdate(elapsed time.Duration) {
	o.angle += elapsed.Seconds() * math.Pi / 2
}

func (o *orbit) OnDragStart(e component.PointerEvent) bool {
	o.dragging = math.Hypot(e.X-o.ballX, e.Y-o.ballY) <= 24
	return o.dragging
}

func (o *orbit) OnDragMove(e component.PointerEvent) {
	o.ballX, o.ballY = e.X, e.Y
}

func (o *orbit) OnDrop(e component.PointerEvent, _ canvas.Point) {
	o.ballX, o.ballY = e.X, e.Y
	o.dragging = false
}

func (o *orbit) OnDraw(c *canvas.Canvas, _ time.Duration) {
	w, h := float64(o.width), float64(o.height)
	cx, cy := w/2, h/2

	c.SetFillStyle(c.CreateLinearGradient(0, 0, 0, h, []canvas.ColorStep{
		{Offset: 0, Color: "#1a2a4a"},
		{Offset: 1, Color: "#4a6a8a"},
	}))
	c.DrawRect(0, 0, w, h, true, false)
	if o.stars != nil {
		c.DrawImageSize(o.stars, 0, 0, w, h)
	}

	c.SaveState()
	c.SetShadowStyle(&canvas.ShadowStyle{Color: "rgba(255, 200, 0, 0.8)", Blur: 12})
	c.SetFillStyle(c.CreateRadialGradient(cx, cy, cx, cy, 4, 30, []canvas.ColorStep{
		{Offset: 0, Color: "#fff5c0"},
		{Offset: 1, Color: "#ff9900"},
	}))
	disc(c, cx, cy, 30, true, false)
	c.RestoreState()

	c.SetStrokeStyle(canvas.NewStrokeStyle(canvas.Color("rgba(255, 255, 255, 0.3)"), 1))
	c.SetLineDash(4, 4)
	for i, r := range []float64{70, 110} {
		p := c.BeginPath()
		c.DrawEllipse(cx, cy, r, r*0.8, 0, 0, 2*math.Pi)
		p.Close(false, true)
		a := o.angle * float64(2-i)
		c.SetFillStyle(canvas.NewFillStyle(canvas.Color([]string{"#66ccff", "#ff6688"}[i])))
		disc(c, cx+r*math.Cos(a), cy+r*0.8*math.Sin(a), 8, true, false)
	}
	c.SetLineDash(0, 0)

	c.SaveState()
	if o.dragging {
		c.SetFilter(canvas.NewCanvasFilter().AddBrightness(130).AddDropShadow(0, 4, 6, "black"))
	}
	c.SetFillStyle(canvas.NewFillStyle(canvas.Color("#33dd77")))
	c.SetStrokeStyle(canvas.NewStrokeStyle(canvas.Color("white"), 2))
	disc(c, o.ballX, o.ballY, 20, true, true)
	c.RestoreState()

	c.SetFont(&canvas.CanvasFont{FontWeight: canvas.FontWeightBold, FontSize: 14, FontFamily: "Go"})
	c.SetTextBaseline(canvas.BaselineTop)
	c.SetFillStyle(canvas.NewFillStyle(canvas.Color("white")))
	c.DrawWrappedText("Press and hold the green ball to drag it around the orbit.", 12, 12, w/2, 18, true, false)
}

func disc(c *canvas.Canvas, x, y, r float64, fill, stroke bool) {
	p := c.BeginPath()
	c.DrawArc(x, y, r, 0, 2*math.Pi)
	p.Close(fill, stroke)
}

// drawStars scatters stars over an offscreen buffer.
func drawStars(buf *canvas.Canvas) {
	w, h := float64(buf.Width()), float64(buf.Height())
	buf.SetFillStyle(canvas.NewFillStyle(canvas.Color("rgba(255, 255, 255, 0.7)")))
	seed := uint32(7)
	next := func() float64 {
		seed = seed*1664525 + 1013904223
		return float64(seed>>8) / (1 << 24)
	}
	for range 80 {
		disc(buf, next()*w, next()*h, 0.5+next(), true, false)
	}
}
