package canvas

import "github.com/gogpu/canvas/native"

// CreateLinearGradient returns a fill style with a gradient from (x1, y1)
// to (x2, y2). Steps are added in the given order.
func (c *Canvas) CreateLinearGradient(x1, y1, x2, y2 float64, steps []ColorStep) *FillStyle {
	g := c.dev.linearGradient(x1, y1, x2, y2)
	addSteps(g, steps)
	return &FillStyle{Value: g}
}

// CreateRadialGradient returns a fill style with a gradient between the
// circle (x1, y1, r1) and the circle (x2, y2, r2).
func (c *Canvas) CreateRadialGradient(x1, y1, x2, y2, r1, r2 float64, steps []ColorStep) *FillStyle {
	g := c.dev.radialGradient(x1, y1, r1, x2, y2, r2)
	addSteps(g, steps)
	return &FillStyle{Value: g}
}

func addSteps(g native.Gradient, steps []ColorStep) {
	for _, s := range steps {
		g.AddColorStop(s.Offset, s.Color)
	}
}

// CreatePattern returns a fill style tiling src. The style is invalid when
// the backend cannot build the pattern; check IsValid.
func (c *Canvas) CreatePattern(src ImageSource, repetition Repetition) *FillStyle {
	if src == nil {
		Logger().Warn("canvas: pattern from nil source")
		return &FillStyle{}
	}
	p, ok := c.ctx.CreatePattern(src.NativeImage(), repetition)
	if !ok {
		Logger().Warn("canvas: pattern could not be created", "repetition", repetition)
		return &FillStyle{}
	}
	return &FillStyle{Value: p}
}
