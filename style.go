package canvas

import "github.com/gogpu/canvas/native"

// Re-exported native types so callers rarely need to import native.
type (
	// Color is a CSS color string.
	Color = native.Color
	// TextBaseline selects the vertical anchor of drawn text.
	TextBaseline = native.TextBaseline
	// Repetition controls how a pattern tiles.
	Repetition = native.Repetition
	// Blob is an encoded snapshot of a canvas.
	Blob = native.Blob
	// TextMetrics describes measured text.
	TextMetrics = native.TextMetrics
)

// None is the sentinel paint value that makes a style invalid.
const None = native.None

const (
	BaselineAlphabetic  = native.BaselineAlphabetic
	BaselineTop         = native.BaselineTop
	BaselineHanging     = native.BaselineHanging
	BaselineMiddle      = native.BaselineMiddle
	BaselineIdeographic = native.BaselineIdeographic
	BaselineBottom      = native.BaselineBottom
)

const (
	Repeat   = native.Repeat
	RepeatX  = native.RepeatX
	RepeatY  = native.RepeatY
	NoRepeat = native.NoRepeat
)

func validPaint(p native.Paint) bool {
	return p != nil && p != native.Paint(native.None)
}

// FillStyle is the paint used by fill operations: a Color, or a gradient
// or pattern created by a Canvas.
type FillStyle struct {
	Value native.Paint
}

// NewFillStyle returns a fill style for v.
func NewFillStyle(v native.Paint) *FillStyle {
	return &FillStyle{Value: v}
}

// IsValid reports whether the style is set and not None.
func (s *FillStyle) IsValid() bool {
	return s != nil && validPaint(s.Value)
}

// StrokeStyle is the paint and line width used by stroke operations.
type StrokeStyle struct {
	Color     native.Paint
	LineWidth float64
}

// NewStrokeStyle returns a stroke style.
func NewStrokeStyle(color native.Paint, lineWidth float64) *StrokeStyle {
	return &StrokeStyle{Color: color, LineWidth: lineWidth}
}

// IsValid reports whether the color is set and not None.
func (s *StrokeStyle) IsValid() bool {
	return s != nil && validPaint(s.Color)
}

// ShadowStyle describes the shadow cast by subsequent drawing.
type ShadowStyle struct {
	Color   string
	Blur    float64
	OffsetX float64
	OffsetY float64
}

// NewShadowStyle returns the default shadow: rgba(0, 0, 0, 0.7), blur 10,
// offset (3, 3).
func NewShadowStyle() *ShadowStyle {
	return &ShadowStyle{
		Color:   "rgba(0, 0, 0, 0.7)",
		Blur:    10,
		OffsetX: 3,
		OffsetY: 3,
	}
}

// ColorStep is one stop of a gradient.
type ColorStep struct {
	Offset float64
	Color  string
}
