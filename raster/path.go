package raster

import (
	"image"
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

type segKind uint8

const (
	segMove segKind = iota
	segLine
	segQuad
	segCube
	segClose
)

type segment struct {
	kind segKind
	pts  [3]vec.Vec2
}

// path is a list of segments in device space.
// User coordinates are transformed when a segment is appended,
// matching the canvas rule that later transform changes do not
// affect the already built path.
type path struct {
	segs      []segment
	start     vec.Vec2
	cur       vec.Vec2
	hasCur    bool
	minX      float64
	minY      float64
	maxX      float64
	maxY      float64
	hasBounds bool
}

func (p *path) reset() {
	p.segs = p.segs[:0]
	p.hasCur = false
	p.hasBounds = false
}

func (p *path) empty() bool { return len(p.segs) == 0 }

func (p *path) grow(pts ...vec.Vec2) {
	for _, q := range pts {
		if !p.hasBounds {
			p.minX, p.maxX, p.minY, p.maxY = q.X, q.X, q.Y, q.Y
			p.hasBounds = true
			continue
		}
		p.minX = math.Min(p.minX, q.X)
		p.maxX = math.Max(p.maxX, q.X)
		p.minY = math.Min(p.minY, q.Y)
		p.maxY = math.Max(p.maxY, q.Y)
	}
}

// bounds returns the device bounding box of all control points grown by pad.
func (p *path) bounds(pad float64) image.Rectangle {
	if !p.hasBounds {
		return image.Rectangle{}
	}
	return image.Rect(
		int(math.Floor(p.minX-pad)), int(math.Floor(p.minY-pad)),
		int(math.Ceil(p.maxX+pad))+1, int(math.Ceil(p.maxY+pad))+1,
	)
}

func (p *path) moveTo(q vec.Vec2) {
	p.segs = append(p.segs, segment{kind: segMove, pts: [3]vec.Vec2{q}})
	p.start, p.cur, p.hasCur = q, q, true
	p.grow(q)
}

func (p *path) lineTo(q vec.Vec2) {
	if !p.hasCur {
		p.moveTo(q)
		return
	}
	p.segs = append(p.segs, segment{kind: segLine, pts: [3]vec.Vec2{q}})
	p.cur = q
	p.grow(q)
}

func (p *path) quadTo(c, q vec.Vec2) {
	if !p.hasCur {
		p.moveTo(c)
	}
	p.segs = append(p.segs, segment{kind: segQuad, pts: [3]vec.Vec2{c, q}})
	p.cur = q
	p.grow(c, q)
}

func (p *path) cubeTo(c1, c2, q vec.Vec2) {
	if !p.hasCur {
		p.moveTo(c1)
	}
	p.segs = append(p.segs, segment{kind: segCube, pts: [3]vec.Vec2{c1, c2, q}})
	p.cur = q
	p.grow(c1, c2, q)
}

func (p *path) closePath() {
	if !p.hasCur {
		return
	}
	p.segs = append(p.segs, segment{kind: segClose})
	p.cur = p.start
}

// ellipseArc appends an elliptical arc given in user space. The arc is
// joined to the current point with a straight line, as canvas arc() does.
func (p *path) ellipseArc(m matrix.Matrix, cx, cy, rx, ry, rot, start, sweep float64) {
	cosR, sinR := math.Cos(rot), math.Sin(rot)
	at := func(ux, uy float64) vec.Vec2 {
		x := cx + rx*ux*cosR - ry*uy*sinR
		y := cy + rx*ux*sinR + ry*uy*cosR
		return apply(m, vec.Vec2{X: x, Y: y})
	}

	first := at(math.Cos(start), math.Sin(start))
	if p.hasCur {
		p.lineTo(first)
	} else {
		p.moveTo(first)
	}
	if sweep == 0 {
		return
	}

	n := int(math.Ceil(math.Abs(sweep) / (math.Pi / 2)))
	step := sweep / float64(n)
	k := 4.0 / 3.0 * math.Tan(step/4)
	a0 := start
	for i := 0; i < n; i++ {
		a1 := a0 + step
		c0, s0 := math.Cos(a0), math.Sin(a0)
		c1, s1 := math.Cos(a1), math.Sin(a1)
		p.cubeTo(
			at(c0-k*s0, s0+k*c0),
			at(c1+k*s1, s1-k*c1),
			at(c1, s1),
		)
		a0 = a1
	}
}

// arcSweep returns the signed sweep from start to end following
// the canvas normalization rules.
func arcSweep(start, end float64, ccw bool) float64 {
	const tau = 2 * math.Pi
	if !ccw {
		if end-start >= tau {
			return tau
		}
		s := math.Mod(end-start, tau)
		if s < 0 {
			s += tau
		}
		return s
	}
	if start-end >= tau {
		return -tau
	}
	s := math.Mod(start-end, tau)
	if s < 0 {
		s += tau
	}
	return -s
}

// arcTo implements canvas arcTo. p0 is the current point in user space.
func (p *path) arcTo(m matrix.Matrix, p0, p1, p2 vec.Vec2, r float64) {
	d01 := vec.Vec2{X: p0.X - p1.X, Y: p0.Y - p1.Y}
	d21 := vec.Vec2{X: p2.X - p1.X, Y: p2.Y - p1.Y}
	l01 := math.Hypot(d01.X, d01.Y)
	l21 := math.Hypot(d21.X, d21.Y)
	cross := d01.X*d21.Y - d01.Y*d21.X

	if r == 0 || l01 == 0 || l21 == 0 || math.Abs(cross) < 1e-9 {
		p.lineTo(apply(m, p1))
		return
	}

	cosTheta := (d01.X*d21.X + d01.Y*d21.Y) / (l01 * l21)
	theta := math.Acos(math.Max(-1, math.Min(1, cosTheta)))
	dist := r / math.Tan(theta/2)

	t0 := vec.Vec2{X: p1.X + d01.X/l01*dist, Y: p1.Y + d01.Y/l01*dist}
	t2 := vec.Vec2{X: p1.X + d21.X/l21*dist, Y: p1.Y + d21.Y/l21*dist}

	// center lies along the bisector at distance r from both tangents
	bis := vec.Vec2{X: d01.X/l01 + d21.X/l21, Y: d01.Y/l01 + d21.Y/l21}
	bl := math.Hypot(bis.X, bis.Y)
	h := math.Hypot(dist, r)
	c := vec.Vec2{X: p1.X + bis.X/bl*h, Y: p1.Y + bis.Y/bl*h}

	a0 := math.Atan2(t0.Y-c.Y, t0.X-c.X)
	a1 := math.Atan2(t2.Y-c.Y, t2.X-c.X)
	ccw := cross > 0
	p.ellipseArc(m, c.X, c.Y, r, r, 0, a0, arcSweep(a0, a1, ccw))
}

func toFixed(q vec.Vec2) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(q.X * 64), Y: fixed.Int26_6(q.Y * 64)}
}

// adder is the part of rasterx shared by Filler and Dasher.
type adder interface {
	Start(a fixed.Point26_6)
	Line(b fixed.Point26_6)
	QuadBezier(b, c fixed.Point26_6)
	CubeBezier(b, c, d fixed.Point26_6)
	Stop(closeLoop bool)
}

var (
	_ adder = (*rasterx.Filler)(nil)
	_ adder = (*rasterx.Dasher)(nil)
)

// replay feeds the path into a rasterx adder.
func (p *path) replay(a adder) {
	var start vec.Vec2
	open := false
	begin := func() {
		if !open {
			a.Start(toFixed(start))
			open = true
		}
	}
	for _, s := range p.segs {
		switch s.kind {
		case segMove:
			if open {
				a.Stop(false)
				open = false
			}
			start = s.pts[0]
			begin()
		case segLine:
			begin()
			a.Line(toFixed(s.pts[0]))
		case segQuad:
			begin()
			a.QuadBezier(toFixed(s.pts[0]), toFixed(s.pts[1]))
		case segCube:
			begin()
			a.CubeBezier(toFixed(s.pts[0]), toFixed(s.pts[1]), toFixed(s.pts[2]))
		case segClose:
			if open {
				a.Stop(true)
				open = false
			}
		}
	}
	if open {
		a.Stop(false)
	}
}
