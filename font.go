package canvas

import (
	"strconv"
	"strings"
)

// FontStyle is the CSS font-style of a CanvasFont.
type FontStyle string

const (
	FontStyleNormal FontStyle = "normal"
	FontStyleItalic FontStyle = "italic"
)

// FontWeight is the CSS font-weight of a CanvasFont: a keyword or a
// number from 100 to 900 made with Weight.
type FontWeight string

const (
	FontWeightNormal  FontWeight = "normal"
	FontWeightBold    FontWeight = "bold"
	FontWeightBolder  FontWeight = "bolder"
	FontWeightLighter FontWeight = "lighter"
)

// Weight returns a numeric font weight.
func Weight(n int) FontWeight {
	return FontWeight(strconv.Itoa(n))
}

// CanvasFont describes the font used for text. Sizes are in logical units.
type CanvasFont struct {
	FontStyle  FontStyle
	FontWeight FontWeight
	FontSize   float64
	FontFamily string
}

// NewCanvasFont returns a 13px normal Arial font.
func NewCanvasFont() *CanvasFont {
	return &CanvasFont{
		FontStyle:  FontStyleNormal,
		FontWeight: FontWeightNormal,
		FontSize:   13,
		FontFamily: "Arial",
	}
}

// String renders the CSS font shorthand with the size multiplied by ratio,
// for example "italic bold 26px Arial".
func (f *CanvasFont) String(ratio float64) string {
	style, weight := f.FontStyle, f.FontWeight
	if style == "" {
		style = FontStyleNormal
	}
	if weight == "" {
		weight = FontWeightNormal
	}
	var sb strings.Builder
	sb.WriteString(string(style))
	sb.WriteByte(' ')
	sb.WriteString(string(weight))
	sb.WriteByte(' ')
	sb.WriteString(formatNumber(f.FontSize * ratio))
	sb.WriteString("px ")
	sb.WriteString(f.FontFamily)
	return sb.String()
}

// formatNumber prints v the way CSS serializes numbers: shortest form,
// no exponent, no trailing zeros.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
