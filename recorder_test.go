package canvas

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/canvas/native"
)

// call is one recorded native call. Text holds string arguments.
type call struct {
	Name string
	Args []float64
	Text string
}

func (c call) String() string { return fmt.Sprintf("%s(%q %v)", c.Name, c.Text, c.Args) }

type fakeGradient struct {
	native.PaintMarker
	stops []ColorStep
}

func (g *fakeGradient) AddColorStop(offset float64, color string) {
	g.stops = append(g.stops, ColorStep{Offset: offset, Color: color})
}

type fakePattern struct{ native.PaintMarker }

// recorder is a native.Context2D that records calls instead of drawing.
// MeasureText reports charWidth device pixels per byte.
type recorder struct {
	calls     []call
	w, h      int
	charWidth float64
	noPattern bool
	blob      *native.Blob
}

func (r *recorder) rec(name string, args ...float64) {
	r.calls = append(r.calls, call{Name: name, Args: args})
}

func (r *recorder) recText(name, text string, args ...float64) {
	r.calls = append(r.calls, call{Name: name, Args: args, Text: text})
}

// named returns the recorded calls with the given name.
func (r *recorder) named(name string) []call {
	var out []call
	for _, c := range r.calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

func (r *recorder) names() []string {
	out := make([]string, len(r.calls))
	for i, c := range r.calls {
		out[i] = c.Name
	}
	return out
}

func (r *recorder) reset() { r.calls = nil }

func (r *recorder) NaturalSize() (int, int) { return r.w, r.h }

func (r *recorder) SetSize(w, h int) {
	r.w, r.h = w, h
	r.rec("SetSize", float64(w), float64(h))
}
func (r *recorder) Size() (int, int) { return r.w, r.h }

func (r *recorder) Save()                        { r.rec("Save") }
func (r *recorder) Restore()                     { r.rec("Restore") }
func (r *recorder) Translate(x, y float64)       { r.rec("Translate", x, y) }
func (r *recorder) Scale(x, y float64)           { r.rec("Scale", x, y) }
func (r *recorder) Rotate(a float64)             { r.rec("Rotate", a) }
func (r *recorder) ClearRect(x, y, w, h float64) { r.rec("ClearRect", x, y, w, h) }

func (r *recorder) BeginPath()          { r.rec("BeginPath") }
func (r *recorder) ClosePath()          { r.rec("ClosePath") }
func (r *recorder) MoveTo(x, y float64) { r.rec("MoveTo", x, y) }
func (r *recorder) LineTo(x, y float64) { r.rec("LineTo", x, y) }
func (r *recorder) QuadraticCurveTo(cpx, cpy, x, y float64) {
	r.rec("QuadraticCurveTo", cpx, cpy, x, y)
}
func (r *recorder) BezierCurveTo(a, b, c, d, x, y float64) {
	r.rec("BezierCurveTo", a, b, c, d, x, y)
}
func (r *recorder) ArcTo(x1, y1, x2, y2, radius float64) { r.rec("ArcTo", x1, y1, x2, y2, radius) }
func (r *recorder) Arc(x, y, radius, start, end float64, ccw bool) {
	r.rec("Arc", x, y, radius, start, end)
}
func (r *recorder) Ellipse(x, y, rx, ry, rot, start, end float64, ccw bool) {
	r.rec("Ellipse", x, y, rx, ry, rot, start, end)
}
func (r *recorder) Rect(x, y, w, h float64)       { r.rec("Rect", x, y, w, h) }
func (r *recorder) Fill()                         { r.rec("Fill") }
func (r *recorder) Stroke()                       { r.rec("Stroke") }
func (r *recorder) Clip()                         { r.rec("Clip") }
func (r *recorder) FillRect(x, y, w, h float64)   { r.rec("FillRect", x, y, w, h) }
func (r *recorder) StrokeRect(x, y, w, h float64) { r.rec("StrokeRect", x, y, w, h) }

func (r *recorder) SetFillStyle(p native.Paint)   { r.recText("SetFillStyle", fmt.Sprint(p)) }
func (r *recorder) SetStrokeStyle(p native.Paint) { r.recText("SetStrokeStyle", fmt.Sprint(p)) }
func (r *recorder) SetLineWidth(w float64)        { r.rec("SetLineWidth", w) }
func (r *recorder) SetLineDash(s []float64)       { r.rec("SetLineDash", s...) }
func (r *recorder) SetShadow(color string, blur, ox, oy float64) {
	r.recText("SetShadow", color, blur, ox, oy)
}
func (r *recorder) SetFilter(f string)                    { r.recText("SetFilter", f) }
func (r *recorder) SetFont(f string)                      { r.recText("SetFont", f) }
func (r *recorder) SetTextBaseline(b native.TextBaseline) { r.recText("SetTextBaseline", string(b)) }
func (r *recorder) SetGlobalAlpha(a float64)              { r.rec("SetGlobalAlpha", a) }

func (r *recorder) FillText(text string, x, y, maxWidth float64) {
	r.recText("FillText", text, x, y, maxWidth)
}
func (r *recorder) StrokeText(text string, x, y, maxWidth float64) {
	r.recText("StrokeText", text, x, y, maxWidth)
}
func (r *recorder) MeasureText(text string) native.TextMetrics {
	return native.TextMetrics{Width: r.charWidth * float64(len(text))}
}

func (r *recorder) DrawImage(src native.ImageSource, sx, sy, sw, sh, dx, dy, dw, dh float64) {
	r.rec("DrawImage", sx, sy, sw, sh, dx, dy, dw, dh)
}
func (r *recorder) CreateLinearGradient(x0, y0, x1, y1 float64) native.Gradient {
	r.rec("CreateLinearGradient", x0, y0, x1, y1)
	return &fakeGradient{}
}
func (r *recorder) CreateRadialGradient(x0, y0, r0, x1, y1, r1 float64) native.Gradient {
	r.rec("CreateRadialGradient", x0, y0, r0, x1, y1, r1)
	return &fakeGradient{}
}
func (r *recorder) CreatePattern(src native.ImageSource, rep native.Repetition) (native.Pattern, bool) {
	r.recText("CreatePattern", string(rep))
	if r.noPattern {
		return nil, false
	}
	return fakePattern{}, true
}

func (r *recorder) ToDataURL(mime string, quality float64) string {
	if r.w == 0 || r.h == 0 {
		return "data:,"
	}
	return "data:" + mime + ";base64,AAAA"
}

func (r *recorder) ToBlob(mime string, quality float64, done func(*native.Blob)) {
	b := r.blob
	go done(b)
}

// fakeBackend hands out a single recorder.
type fakeBackend struct {
	ctx    *recorder
	ratio  float64
	logger *slog.Logger
}

func newFakeBackend(ratio float64) *fakeBackend {
	return &fakeBackend{ctx: &recorder{charWidth: 10}, ratio: ratio}
}

func (b *fakeBackend) NewContext() native.Context2D { return b.ctx }
func (b *fakeBackend) DevicePixelRatio() float64    { return b.ratio }
func (b *fakeBackend) SetLogger(l *slog.Logger)     { b.logger = l }

// newRecorded returns a canvas over a recorder with the given ratio,
// resized to 100x100 logical units and with the setup calls discarded.
func newRecorded(ratio float64) (*Canvas, *recorder) {
	b := newFakeBackend(ratio)
	c := NewCanvas(WithBackend(b))
	c.ResizeCanvas(100, 100)
	b.ctx.reset()
	return c, b.ctx
}
