package canvas

// Path is a stateful builder over the path of the owning Canvas.
// It is Closed until Begin and returns to Closed on Close.
//
// Mutators are only meaningful between Begin and Close:
//
//	c.BeginPath().
//		MoveTo(10, 10).
//		LineTo(50, 10).
//		QuadraticCurveTo(60, 10, 60, 20).
//		Close(true, false)
type Path struct {
	dev  device
	open bool
}

func newPath(dev device) *Path {
	return &Path{dev: dev}
}

// IsPathOpen reports whether Begin has been called without a matching Close.
func (p *Path) IsPathOpen() bool { return p.open }

// Begin starts a new native path. It does nothing while the path is open.
func (p *Path) Begin() *Path {
	if p.open {
		return p
	}
	p.open = true
	p.dev.ctx.BeginPath()
	return p
}

// MoveTo starts a new subpath at (x, y).
func (p *Path) MoveTo(x, y float64) *Path {
	p.dev.moveTo(x, y)
	return p
}

// LineTo adds a straight segment to (x, y).
func (p *Path) LineTo(x, y float64) *Path {
	p.dev.lineTo(x, y)
	return p
}

// QuadraticCurveTo adds a quadratic Bézier segment.
func (p *Path) QuadraticCurveTo(cpx, cpy, x, y float64) *Path {
	p.dev.quadraticCurveTo(cpx, cpy, x, y)
	return p
}

// BezierCurveTo adds a cubic Bézier segment.
func (p *Path) BezierCurveTo(cp1x, cp1y, cp2x, cp2y, x, y float64) *Path {
	p.dev.bezierCurveTo(cp1x, cp1y, cp2x, cp2y, x, y)
	return p
}

// ArcTo adds an arc of the given radius tangent to the lines from the
// current point to (x1, y1) and from (x1, y1) to (x2, y2).
func (p *Path) ArcTo(x1, y1, x2, y2, radius float64) *Path {
	p.dev.arcTo(x1, y1, x2, y2, radius)
	return p
}

// Close closes the path and optionally fills and strokes it with the
// current styles of the canvas. The path is Closed afterwards whatever
// its previous state.
func (p *Path) Close(fill, stroke bool) {
	p.dev.ctx.ClosePath()
	p.open = false
	if fill {
		p.dev.ctx.Fill()
	}
	if stroke {
		p.dev.ctx.Stroke()
	}
}
