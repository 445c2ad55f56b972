package canvas

import (
	"math"

	"github.com/gogpu/canvas/native"
)

// device is the single point where logical units cross into the native
// context. Every coordinate and length is multiplied by ratio here and
// nowhere else; scale factors and angles pass through unchanged.
type device struct {
	ctx   native.Context2D
	ratio float64
}

func (d device) px(v float64) float64 { return v * d.ratio }

// logical converts a device length back to logical units.
func (d device) logical(v float64) float64 { return v / d.ratio }

func (d device) setSize(width, height int) {
	d.ctx.SetSize(int(math.Round(float64(width)*d.ratio)), int(math.Round(float64(height)*d.ratio)))
}

func (d device) translate(x, y float64) { d.ctx.Translate(d.px(x), d.px(y)) }

func (d device) clearRect(x, y, w, h float64) {
	d.ctx.ClearRect(d.px(x), d.px(y), d.px(w), d.px(h))
}

func (d device) moveTo(x, y float64) { d.ctx.MoveTo(d.px(x), d.px(y)) }
func (d device) lineTo(x, y float64) { d.ctx.LineTo(d.px(x), d.px(y)) }

func (d device) quadraticCurveTo(cpx, cpy, x, y float64) {
	d.ctx.QuadraticCurveTo(d.px(cpx), d.px(cpy), d.px(x), d.px(y))
}

func (d device) bezierCurveTo(cp1x, cp1y, cp2x, cp2y, x, y float64) {
	d.ctx.BezierCurveTo(d.px(cp1x), d.px(cp1y), d.px(cp2x), d.px(cp2y), d.px(x), d.px(y))
}

func (d device) arcTo(x1, y1, x2, y2, radius float64) {
	d.ctx.ArcTo(d.px(x1), d.px(y1), d.px(x2), d.px(y2), d.px(radius))
}

func (d device) arc(x, y, radius, startAngle, endAngle float64, ccw bool) {
	d.ctx.Arc(d.px(x), d.px(y), d.px(radius), startAngle, endAngle, ccw)
}

func (d device) ellipse(x, y, radiusX, radiusY, rotation, startAngle, endAngle float64, ccw bool) {
	d.ctx.Ellipse(d.px(x), d.px(y), d.px(radiusX), d.px(radiusY), rotation, startAngle, endAngle, ccw)
}

func (d device) rect(x, y, w, h float64) {
	d.ctx.Rect(d.px(x), d.px(y), d.px(w), d.px(h))
}

func (d device) fillRect(x, y, w, h float64) {
	d.ctx.FillRect(d.px(x), d.px(y), d.px(w), d.px(h))
}

func (d device) strokeRect(x, y, w, h float64) {
	d.ctx.StrokeRect(d.px(x), d.px(y), d.px(w), d.px(h))
}

func (d device) setLineWidth(w float64) { d.ctx.SetLineWidth(d.px(w)) }

func (d device) setLineDash(segments ...float64) {
	scaled := make([]float64, len(segments))
	for i, s := range segments {
		scaled[i] = d.px(s)
	}
	d.ctx.SetLineDash(scaled)
}

func (d device) setShadow(color string, blur, offsetX, offsetY float64) {
	d.ctx.SetShadow(color, d.px(blur), d.px(offsetX), d.px(offsetY))
}

func (d device) setFont(f *CanvasFont) { d.ctx.SetFont(f.String(d.ratio)) }

// maxWidth keeps "unconstrained" (<= 0) as 0.
func (d device) maxWidth(w float64) float64 {
	if w <= 0 {
		return 0
	}
	return d.px(w)
}

func (d device) fillText(text string, x, y, maxWidth float64) {
	d.ctx.FillText(text, d.px(x), d.px(y), d.maxWidth(maxWidth))
}

func (d device) strokeText(text string, x, y, maxWidth float64) {
	d.ctx.StrokeText(text, d.px(x), d.px(y), d.maxWidth(maxWidth))
}

func (d device) measureText(text string) native.TextMetrics {
	m := d.ctx.MeasureText(text)
	return native.TextMetrics{
		Width:   d.logical(m.Width),
		Ascent:  d.logical(m.Ascent),
		Descent: d.logical(m.Descent),
	}
}

// drawImage blits the source rectangle, given in the source's own pixels,
// to the logical destination rectangle.
func (d device) drawImage(src native.ImageSource, sx, sy, sw, sh, dx, dy, dw, dh float64) {
	d.ctx.DrawImage(src, sx, sy, sw, sh, d.px(dx), d.px(dy), d.px(dw), d.px(dh))
}

func (d device) linearGradient(x1, y1, x2, y2 float64) native.Gradient {
	return d.ctx.CreateLinearGradient(d.px(x1), d.px(y1), d.px(x2), d.px(y2))
}

func (d device) radialGradient(x1, y1, r1, x2, y2, r2 float64) native.Gradient {
	return d.ctx.CreateRadialGradient(d.px(x1), d.px(y1), d.px(r1), d.px(x2), d.px(y2), d.px(r2))
}
