// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build js && wasm

package jscanvas

import (
	"fmt"
	"image"
	"image/draw"
	"syscall/js"

	"github.com/gogpu/canvas/native"
)

// Context forwards every call to a CanvasRenderingContext2D.
type Context struct {
	backend *Backend
	canvas  js.Value
	ctx     js.Value
	ratio   float64
}

var _ native.Context2D = (*Context)(nil)

type gradient struct {
	native.PaintMarker
	v js.Value
}

func (g *gradient) AddColorStop(offset float64, color string) {
	g.v.Call("addColorStop", offset, color)
}

type pattern struct {
	native.PaintMarker
	v js.Value
}

// Element returns the <canvas> element.
func (c *Context) Element() js.Value { return c.canvas }

// NaturalSize makes a context usable as a DrawImage source.
func (c *Context) NaturalSize() (int, int) { return c.Size() }

// SetSize sets the backing store size in device pixels and the CSS size
// in logical pixels.
func (c *Context) SetSize(width, height int) {
	c.canvas.Set("width", width)
	c.canvas.Set("height", height)
	ratio := c.ratio
	if ratio <= 0 {
		ratio = 1
	}
	style := c.canvas.Get("style")
	style.Set("width", fmt.Sprintf("%gpx", float64(width)/ratio))
	style.Set("height", fmt.Sprintf("%gpx", float64(height)/ratio))
}

func (c *Context) Size() (int, int) {
	return c.canvas.Get("width").Int(), c.canvas.Get("height").Int()
}

func (c *Context) Save()                        { c.ctx.Call("save") }
func (c *Context) Restore()                     { c.ctx.Call("restore") }
func (c *Context) Translate(x, y float64)       { c.ctx.Call("translate", x, y) }
func (c *Context) Scale(x, y float64)           { c.ctx.Call("scale", x, y) }
func (c *Context) Rotate(angle float64)         { c.ctx.Call("rotate", angle) }
func (c *Context) ClearRect(x, y, w, h float64) { c.ctx.Call("clearRect", x, y, w, h) }

func (c *Context) BeginPath()          { c.ctx.Call("beginPath") }
func (c *Context) ClosePath()          { c.ctx.Call("closePath") }
func (c *Context) MoveTo(x, y float64) { c.ctx.Call("moveTo", x, y) }
func (c *Context) LineTo(x, y float64) { c.ctx.Call("lineTo", x, y) }

func (c *Context) QuadraticCurveTo(cpx, cpy, x, y float64) {
	c.ctx.Call("quadraticCurveTo", cpx, cpy, x, y)
}

func (c *Context) BezierCurveTo(cp1x, cp1y, cp2x, cp2y, x, y float64) {
	c.ctx.Call("bezierCurveTo", cp1x, cp1y, cp2x, cp2y, x, y)
}

func (c *Context) ArcTo(x1, y1, x2, y2, radius float64) {
	c.ctx.Call("arcTo", x1, y1, x2, y2, radius)
}

func (c *Context) Arc(x, y, radius, startAngle, endAngle float64, ccw bool) {
	c.ctx.Call("arc", x, y, radius, startAngle, endAngle, ccw)
}

func (c *Context) Ellipse(x, y, radiusX, radiusY, rotation, startAngle, endAngle float64, ccw bool) {
	c.ctx.Call("ellipse", x, y, radiusX, radiusY, rotation, startAngle, endAngle, ccw)
}

func (c *Context) Rect(x, y, w, h float64)       { c.ctx.Call("rect", x, y, w, h) }
func (c *Context) Fill()                         { c.ctx.Call("fill") }
func (c *Context) Stroke()                       { c.ctx.Call("stroke") }
func (c *Context) Clip()                         { c.ctx.Call("clip") }
func (c *Context) FillRect(x, y, w, h float64)   { c.ctx.Call("fillRect", x, y, w, h) }
func (c *Context) StrokeRect(x, y, w, h float64) { c.ctx.Call("strokeRect", x, y, w, h) }

func (c *Context) SetFillStyle(p native.Paint)   { c.setPaint("fillStyle", p) }
func (c *Context) SetStrokeStyle(p native.Paint) { c.setPaint("strokeStyle", p) }

// setPaint ignores "none" and paints created by another backend, as the
// browser ignores invalid style assignments.
func (c *Context) setPaint(prop string, p native.Paint) {
	switch v := p.(type) {
	case native.Color:
		if v != native.None {
			c.ctx.Set(prop, string(v))
		}
	case *gradient:
		c.ctx.Set(prop, v.v)
	case *pattern:
		c.ctx.Set(prop, v.v)
	default:
		c.backend.logger().Warn("jscanvas: ignoring foreign paint", "type", fmt.Sprintf("%T", p))
	}
}

func (c *Context) SetLineWidth(w float64) { c.ctx.Set("lineWidth", w) }

func (c *Context) SetLineDash(segments []float64) {
	arr := make([]any, len(segments))
	for i, s := range segments {
		arr[i] = s
	}
	c.ctx.Call("setLineDash", arr)
}

func (c *Context) SetShadow(color string, blur, offsetX, offsetY float64) {
	c.ctx.Set("shadowColor", color)
	c.ctx.Set("shadowBlur", blur)
	c.ctx.Set("shadowOffsetX", offsetX)
	c.ctx.Set("shadowOffsetY", offsetY)
}

func (c *Context) SetFilter(filter string)               { c.ctx.Set("filter", filter) }
func (c *Context) SetFont(font string)                   { c.ctx.Set("font", font) }
func (c *Context) SetTextBaseline(b native.TextBaseline) { c.ctx.Set("textBaseline", string(b)) }
func (c *Context) SetGlobalAlpha(alpha float64)          { c.ctx.Set("globalAlpha", alpha) }

func (c *Context) FillText(text string, x, y, maxWidth float64) {
	if maxWidth > 0 {
		c.ctx.Call("fillText", text, x, y, maxWidth)
		return
	}
	c.ctx.Call("fillText", text, x, y)
}

func (c *Context) StrokeText(text string, x, y, maxWidth float64) {
	if maxWidth > 0 {
		c.ctx.Call("strokeText", text, x, y, maxWidth)
		return
	}
	c.ctx.Call("strokeText", text, x, y)
}

func (c *Context) MeasureText(text string) native.TextMetrics {
	m := c.ctx.Call("measureText", text)
	return native.TextMetrics{
		Width:   m.Get("width").Float(),
		Ascent:  number(m.Get("actualBoundingBoxAscent")),
		Descent: number(m.Get("actualBoundingBoxDescent")),
	}
}

func number(v js.Value) float64 {
	if v.Type() != js.TypeNumber {
		return 0
	}
	return v.Float()
}

func (c *Context) DrawImage(src native.ImageSource, sx, sy, sw, sh, dx, dy, dw, dh float64) {
	img, ok := c.imageValue(src)
	if !ok {
		return
	}
	c.ctx.Call("drawImage", img, sx, sy, sw, sh, dx, dy, dw, dh)
}

func (c *Context) CreateLinearGradient(x0, y0, x1, y1 float64) native.Gradient {
	return &gradient{v: c.ctx.Call("createLinearGradient", x0, y0, x1, y1)}
}

func (c *Context) CreateRadialGradient(x0, y0, r0, x1, y1, r1 float64) native.Gradient {
	return &gradient{v: c.ctx.Call("createRadialGradient", x0, y0, r0, x1, y1, r1)}
}

func (c *Context) CreatePattern(src native.ImageSource, rep native.Repetition) (native.Pattern, bool) {
	img, ok := c.imageValue(src)
	if !ok {
		return nil, false
	}
	p := c.ctx.Call("createPattern", img, string(rep))
	if p.IsNull() || p.IsUndefined() {
		return nil, false
	}
	return &pattern{v: p}, true
}

// Valuer is implemented by image sources that wrap a DOM node, such as
// an <img>, <video> or ImageBitmap.
type Valuer interface {
	native.ImageSource
	JSValue() js.Value
}

// Image wraps a DOM image source for use with canvas.Element.
type Image struct {
	Value js.Value
}

func (i Image) JSValue() js.Value { return i.Value }

func (i Image) NaturalSize() (int, int) {
	for _, k := range [][2]string{{"naturalWidth", "naturalHeight"}, {"videoWidth", "videoHeight"}, {"width", "height"}} {
		w, h := i.Value.Get(k[0]), i.Value.Get(k[1])
		if w.Type() == js.TypeNumber && h.Type() == js.TypeNumber {
			return w.Int(), h.Int()
		}
	}
	return 0, 0
}

func (c *Context) imageValue(src native.ImageSource) (js.Value, bool) {
	switch s := src.(type) {
	case *Context:
		return s.canvas, true
	case Valuer:
		return s.JSValue(), true
	case native.PixelSource:
		return c.uploadPixels(s.Pixels())
	}
	c.backend.logger().Warn("jscanvas: unsupported image source", "type", fmt.Sprintf("%T", src))
	return js.Undefined(), false
}

// uploadPixels copies img into a new <canvas> element.
func (c *Context) uploadPixels(img image.Image) (js.Value, bool) {
	if img == nil || img.Bounds().Empty() {
		return js.Undefined(), false
	}
	b := img.Bounds()
	rgba, ok := img.(*image.NRGBA)
	if !ok || rgba.Stride != 4*b.Dx() {
		rgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}

	data := js.Global().Get("Uint8ClampedArray").New(len(rgba.Pix))
	js.CopyBytesToJS(data, rgba.Pix)
	imgData := js.Global().Get("ImageData").New(data, b.Dx(), b.Dy())

	el := c.backend.doc.Call("createElement", "canvas")
	el.Set("width", b.Dx())
	el.Set("height", b.Dy())
	el.Call("getContext", "2d").Call("putImageData", imgData, 0, 0)
	return el, true
}

func (c *Context) ToDataURL(mimeType string, quality float64) string {
	if w, h := c.Size(); w == 0 || h == 0 {
		return "data:,"
	}
	if quality > 0 {
		return c.canvas.Call("toDataURL", mimeType, quality).String()
	}
	return c.canvas.Call("toDataURL", mimeType).String()
}

// ToBlob calls done from the browser event loop once the blob bytes are
// available.
func (c *Context) ToBlob(mimeType string, quality float64, done func(*native.Blob)) {
	if done == nil {
		return
	}
	if w, h := c.Size(); w == 0 || h == 0 {
		go done(nil)
		return
	}

	var onBlob js.Func
	onBlob = js.FuncOf(func(_ js.Value, args []js.Value) any {
		onBlob.Release()
		if len(args) == 0 || args[0].IsNull() {
			done(nil)
			return nil
		}
		blob := args[0]
		typ := blob.Get("type").String()
		readBytes(blob, func(data []byte) {
			if data == nil {
				done(nil)
				return
			}
			done(&native.Blob{Type: typ, Data: data})
		})
		return nil
	})

	if quality > 0 {
		c.canvas.Call("toBlob", onBlob, mimeType, quality)
	} else {
		c.canvas.Call("toBlob", onBlob, mimeType)
	}
}

// readBytes resolves blob.arrayBuffer() and copies it into Go memory.
func readBytes(blob js.Value, fn func([]byte)) {
	var onData, onErr js.Func
	release := func() {
		onData.Release()
		onErr.Release()
	}
	onData = js.FuncOf(func(_ js.Value, args []js.Value) any {
		release()
		arr := js.Global().Get("Uint8Array").New(args[0])
		data := make([]byte, arr.Get("length").Int())
		js.CopyBytesToGo(data, arr)
		fn(data)
		return nil
	})
	onErr = js.FuncOf(func(_ js.Value, _ []js.Value) any {
		release()
		fn(nil)
		return nil
	})
	blob.Call("arrayBuffer").Call("then", onData, onErr)
}
