package canvas

// CornerRadii is a corner specification for DrawRoundRect: a uniform
// Radius or per-corner Corners.
type CornerRadii interface {
	corners() Corners
}

// Radius rounds all four corners equally.
type Radius float64

func (r Radius) corners() Corners {
	v := float64(r)
	return Corners{TopLeft: v, TopRight: v, BottomRight: v, BottomLeft: v}
}

// Corners holds one radius per corner.
type Corners struct {
	TopLeft     float64
	TopRight    float64
	BottomRight float64
	BottomLeft  float64
}

func (c Corners) corners() Corners { return c }

// DrawRect fills and/or strokes a rectangle with the current styles.
func (c *Canvas) DrawRect(x, y, width, height float64, fill, stroke bool) {
	if fill {
		c.dev.fillRect(x, y, width, height)
	}
	if stroke {
		c.dev.strokeRect(x, y, width, height)
	}
}

// DrawArc adds a clockwise circular arc to the current path.
func (c *Canvas) DrawArc(x, y, radius, startAngle, endAngle float64) {
	c.dev.arc(x, y, radius, startAngle, endAngle, false)
}

// DrawEllipse adds a clockwise elliptical arc to the current path.
func (c *Canvas) DrawEllipse(x, y, radiusX, radiusY, rotation, startAngle, endAngle float64) {
	c.dev.ellipse(x, y, radiusX, radiusY, rotation, startAngle, endAngle, false)
}

// DrawRoundRect builds a rounded rectangle from four edges and four
// quadratic corners, then closes it with fill and/or stroke.
func (c *Canvas) DrawRoundRect(x, y, width, height float64, radius CornerRadii, fill, stroke bool) {
	var r Corners
	if radius != nil {
		r = radius.corners()
	}
	c.BeginPath().
		MoveTo(x+r.TopLeft, y).
		LineTo(x+width-r.TopRight, y).
		QuadraticCurveTo(x+width, y, x+width, y+r.TopRight).
		LineTo(x+width, y+height-r.BottomRight).
		QuadraticCurveTo(x+width, y+height, x+width-r.BottomRight, y+height).
		LineTo(x+r.BottomLeft, y+height).
		QuadraticCurveTo(x, y+height, x, y+height-r.BottomLeft).
		LineTo(x, y+r.TopLeft).
		QuadraticCurveTo(x, y, x+r.TopLeft, y).
		Close(fill, stroke)
}

// DrawLine strokes a single line segment as its own path.
func (c *Canvas) DrawLine(x, y, x2, y2 float64) {
	c.ctx.BeginPath()
	c.dev.moveTo(x, y)
	c.dev.lineTo(x2, y2)
	c.ctx.ClosePath()
	c.ctx.Stroke()
}
