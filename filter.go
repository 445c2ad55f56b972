package canvas

import "strings"

// CanvasFilter accumulates CSS filter functions applied to subsequent
// drawing. The zero value is an empty filter.
type CanvasFilter struct {
	filters []string
}

// NewCanvasFilter returns an empty filter.
func NewCanvasFilter() *CanvasFilter {
	return &CanvasFilter{}
}

// Filter returns the functions joined by spaces in insertion order, or
// "none" when the filter is empty.
func (f *CanvasFilter) Filter() string {
	if len(f.filters) == 0 {
		return "none"
	}
	return strings.Join(f.filters, " ")
}

// Reset removes every function.
func (f *CanvasFilter) Reset() {
	f.filters = f.filters[:0]
}

// Len returns the number of functions.
func (f *CanvasFilter) Len() int { return len(f.filters) }

func (f *CanvasFilter) add(name, arg string) *CanvasFilter {
	f.filters = append(f.filters, name+"("+arg+")")
	return f
}

// AddCustomFilter appends a raw filter function such as "url(#id)".
func (f *CanvasFilter) AddCustomFilter(value string) *CanvasFilter {
	f.filters = append(f.filters, value)
	return f
}

// AddBlur appends blur(<length>px).
func (f *CanvasFilter) AddBlur(length float64) *CanvasFilter {
	return f.add("blur", formatNumber(length)+"px")
}

// AddBrightness appends brightness(<percentage>%).
func (f *CanvasFilter) AddBrightness(percentage float64) *CanvasFilter {
	return f.add("brightness", formatNumber(percentage)+"%")
}

// AddContrast appends contrast(<percentage>%).
func (f *CanvasFilter) AddContrast(percentage float64) *CanvasFilter {
	return f.add("contrast", formatNumber(percentage)+"%")
}

// AddDropShadow appends drop-shadow(<x>px <y>px <radius>px <color>).
func (f *CanvasFilter) AddDropShadow(offsetX, offsetY, radius float64, color string) *CanvasFilter {
	return f.add("drop-shadow", formatNumber(offsetX)+"px "+formatNumber(offsetY)+"px "+formatNumber(radius)+"px "+color)
}

// AddGrayscale appends grayscale(<percentage>%).
func (f *CanvasFilter) AddGrayscale(percentage float64) *CanvasFilter {
	return f.add("grayscale", formatNumber(percentage)+"%")
}

// AddHueRotation appends hue-rotate(<degree>deg).
func (f *CanvasFilter) AddHueRotation(degree float64) *CanvasFilter {
	return f.add("hue-rotate", formatNumber(degree)+"deg")
}

// AddInvert appends invert(<percentage>%).
func (f *CanvasFilter) AddInvert(percentage float64) *CanvasFilter {
	return f.add("invert", formatNumber(percentage)+"%")
}

// AddOpacity appends opacity(<percentage>%).
func (f *CanvasFilter) AddOpacity(percentage float64) *CanvasFilter {
	return f.add("opacity", formatNumber(percentage)+"%")
}

// AddSaturation appends saturate(<percentage>%).
func (f *CanvasFilter) AddSaturation(percentage float64) *CanvasFilter {
	return f.add("saturate", formatNumber(percentage)+"%")
}

// AddSepia appends sepia(<percentage>%).
func (f *CanvasFilter) AddSepia(percentage float64) *CanvasFilter {
	return f.add("sepia", formatNumber(percentage)+"%")
}
