// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

import "image"

// Paint is a value accepted by SetFillStyle and SetStrokeStyle:
// a Color, a Gradient or a Pattern created by the same Context2D.
type Paint interface {
	paint()
}

// Color is a CSS color string such as "#ff0000", "rgba(0, 0, 0, 0.7)" or "red".
type Color string

// None is the sentinel color meaning "no paint".
const None Color = "none"

func (Color) paint() {}

// Gradient is a gradient handle created by a Context2D.
type Gradient interface {
	Paint
	AddColorStop(offset float64, color string)
}

// Pattern is a pattern handle created by a Context2D.
type Pattern interface {
	Paint
}

// PaintMarker can be embedded by backend paint types to satisfy Paint.
type PaintMarker struct{}

func (PaintMarker) paint() {}

// ImageSource is anything a Context2D can blit from.
// Backends accept their own handles plus any PixelSource.
type ImageSource interface {
	NaturalSize() (width, height int)
}

// PixelSource is an ImageSource backed by Go pixels.
type PixelSource interface {
	ImageSource
	Pixels() image.Image
}

// Bitmap adapts an image.Image to PixelSource.
type Bitmap struct {
	Image image.Image
}

// NaturalSize returns the bounds of the wrapped image.
func (b Bitmap) NaturalSize() (int, int) {
	if b.Image == nil {
		return 0, 0
	}
	r := b.Image.Bounds()
	return r.Dx(), r.Dy()
}

// Pixels returns the wrapped image.
func (b Bitmap) Pixels() image.Image { return b.Image }

// Repetition controls how a pattern tiles.
type Repetition string

const (
	Repeat   Repetition = "repeat"
	RepeatX  Repetition = "repeat-x"
	RepeatY  Repetition = "repeat-y"
	NoRepeat Repetition = "no-repeat"
)

// TextBaseline selects the vertical anchor of text.
type TextBaseline string

const (
	BaselineAlphabetic  TextBaseline = "alphabetic"
	BaselineTop         TextBaseline = "top"
	BaselineHanging     TextBaseline = "hanging"
	BaselineMiddle      TextBaseline = "middle"
	BaselineIdeographic TextBaseline = "ideographic"
	BaselineBottom      TextBaseline = "bottom"
)

// TextMetrics describes measured text in the units of the context.
type TextMetrics struct {
	Width   float64
	Ascent  float64
	Descent float64
}

// Blob is an encoded snapshot of a context.
type Blob struct {
	Type string
	Data []byte
}

// Size returns the encoded length in bytes.
func (b *Blob) Size() int {
	if b == nil {
		return 0
	}
	return len(b.Data)
}

// Context2D is a canvas-like immediate-mode 2D rendering context.
// All lengths are in device pixels of the backing store.
//
// Implementations are not safe for concurrent use.
type Context2D interface {
	// SetSize reallocates the backing store, clearing its content
	// and resetting all state.
	SetSize(width, height int)
	Size() (width, height int)

	Save()
	Restore()
	Translate(x, y float64)
	Scale(x, y float64)
	Rotate(angle float64)
	ClearRect(x, y, w, h float64)

	BeginPath()
	ClosePath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadraticCurveTo(cpx, cpy, x, y float64)
	BezierCurveTo(cp1x, cp1y, cp2x, cp2y, x, y float64)
	ArcTo(x1, y1, x2, y2, radius float64)
	Arc(x, y, radius, startAngle, endAngle float64, counterclockwise bool)
	Ellipse(x, y, radiusX, radiusY, rotation, startAngle, endAngle float64, counterclockwise bool)
	Rect(x, y, w, h float64)
	Fill()
	Stroke()
	Clip()
	FillRect(x, y, w, h float64)
	StrokeRect(x, y, w, h float64)

	SetFillStyle(p Paint)
	SetStrokeStyle(p Paint)
	SetLineWidth(w float64)
	SetLineDash(segments []float64)
	SetShadow(color string, blur, offsetX, offsetY float64)
	SetFilter(filter string)
	SetFont(font string)
	SetTextBaseline(b TextBaseline)
	SetGlobalAlpha(alpha float64)

	FillText(text string, x, y, maxWidth float64)
	StrokeText(text string, x, y, maxWidth float64)
	MeasureText(text string) TextMetrics

	DrawImage(src ImageSource, sx, sy, sw, sh, dx, dy, dw, dh float64)
	CreateLinearGradient(x0, y0, x1, y1 float64) Gradient
	CreateRadialGradient(x0, y0, r0, x1, y1, r1 float64) Gradient
	CreatePattern(src ImageSource, rep Repetition) (Pattern, bool)

	ToDataURL(mimeType string, quality float64) string
	// ToBlob encodes asynchronously and calls done exactly once,
	// with nil when encoding fails or the context is empty.
	ToBlob(mimeType string, quality float64, done func(*Blob))
}

// Backend creates rendering contexts for one platform.
type Backend interface {
	NewContext() Context2D
	// DevicePixelRatio returns the display scale factor, or 0 if unknown.
	DevicePixelRatio() float64
}
