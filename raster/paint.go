package raster

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/gogpu/canvas/native"
	"github.com/srwiley/rasterx"
	xdraw "golang.org/x/image/draw"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// paint is a resolved fill or stroke style. source returns the value
// passed to rasterx Scanner.SetColor: a color.Color or a rasterx.ColorFunc
// evaluated in device space. ctm is the transform at the time of drawing.
type paint interface {
	source(ctm matrix.Matrix) interface{}
	visible() bool
}

type solid struct{ c rgba }

func (s solid) source(matrix.Matrix) interface{} { return s.c.premul() }
func (s solid) visible() bool                    { return s.c.A > 0 }

var defaultPaint = solid{c: rgba{A: 1}}

// resolvePaint converts a native paint into a drawable one.
// Unparsable colors and foreign handles are ignored, as in browsers.
func resolvePaint(p native.Paint) (paint, bool) {
	switch v := p.(type) {
	case native.Color:
		c, ok := parseColor(string(v))
		if !ok {
			return nil, false
		}
		return solid{c: c}, true
	case *gradient:
		return v, true
	case *pattern:
		return v, true
	}
	return nil, false
}

type colorStop struct {
	offset float64
	color  rgba
}

type gradientKind uint8

const (
	linearGradient gradientKind = iota
	radialGradient
)

// gradient is a canvas gradient handle. Coordinates are in the user
// space of the context when the gradient is used.
type gradient struct {
	native.PaintMarker
	kind   gradientKind
	x0, y0 float64
	r0     float64
	x1, y1 float64
	r1     float64
	stops  []colorStop
	sorted bool
}

var _ native.Gradient = (*gradient)(nil)

// AddColorStop appends a stop. Offsets outside [0, 1] and unparsable
// colors are ignored.
func (g *gradient) AddColorStop(offset float64, c string) {
	if offset < 0 || offset > 1 || math.IsNaN(offset) {
		return
	}
	col, ok := parseColor(c)
	if !ok {
		return
	}
	g.stops = append(g.stops, colorStop{offset: offset, color: col})
	g.sorted = false
}

func (g *gradient) visible() bool { return len(g.stops) > 0 }

func (g *gradient) source(ctm matrix.Matrix) interface{} {
	if !g.sorted {
		sort.SliceStable(g.stops, func(i, j int) bool {
			return g.stops[i].offset < g.stops[j].offset
		})
		g.sorted = true
	}
	if len(g.stops) == 0 {
		return color.Transparent
	}
	inv, ok := invert(ctm)
	if !ok {
		return color.Transparent
	}
	return rasterx.ColorFunc(func(x, y int) color.Color {
		u := apply(inv, vec.Vec2{X: float64(x) + 0.5, Y: float64(y) + 0.5})
		t, ok := g.param(u.X, u.Y)
		if !ok {
			return color.Transparent
		}
		return colorAtOffset(g.stops, t).premul()
	})
}

// param returns the gradient parameter for a user-space point.
func (g *gradient) param(x, y float64) (float64, bool) {
	if g.kind == linearGradient {
		dx, dy := g.x1-g.x0, g.y1-g.y0
		lengthSq := dx*dx + dy*dy
		if lengthSq == 0 {
			return 0, false
		}
		return ((x-g.x0)*dx + (y-g.y0)*dy) / lengthSq, true
	}
	return g.radialParam(x, y)
}

// radialParam solves |p - c(w)| = r(w) for the largest w with r(w) >= 0,
// where c and r interpolate between the start and end circles.
func (g *gradient) radialParam(x, y float64) (float64, bool) {
	cdx, cdy := g.x1-g.x0, g.y1-g.y0
	dr := g.r1 - g.r0
	px, py := x-g.x0, y-g.y0

	a := cdx*cdx + cdy*cdy - dr*dr
	b := px*cdx + py*cdy + g.r0*dr
	c := px*px + py*py - g.r0*g.r0

	valid := func(w float64) bool { return g.r0+w*dr >= 0 }

	if math.Abs(a) < 1e-12 {
		if b == 0 {
			return 0, false
		}
		w := c / (2 * b)
		return w, valid(w)
	}
	disc := b*b - a*c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	w1, w2 := (b+sq)/a, (b-sq)/a
	if w1 < w2 {
		w1, w2 = w2, w1
	}
	if valid(w1) {
		return w1, true
	}
	if valid(w2) {
		return w2, true
	}
	return 0, false
}

// colorAtOffset pads t to [0, 1] and interpolates between the
// surrounding stops. stops must be sorted and non-empty.
func colorAtOffset(stops []colorStop, t float64) rgba {
	t = clamp01(t)
	idx := sort.Search(len(stops), func(i int) bool {
		return stops[i].offset > t
	})
	if idx == 0 {
		return stops[0].color
	}
	if idx >= len(stops) {
		return stops[len(stops)-1].color
	}
	s1, s2 := stops[idx-1], stops[idx]
	if s2.offset == s1.offset {
		return s2.color
	}
	return s1.color.lerp(s2.color, (t-s1.offset)/(s2.offset-s1.offset))
}

// pattern is a canvas pattern handle holding a snapshot of its source.
type pattern struct {
	native.PaintMarker
	img  *image.RGBA
	repX bool
	repY bool
}

var _ native.Pattern = (*pattern)(nil)

func newPattern(src image.Image, rep native.Repetition) (*pattern, bool) {
	if src == nil {
		return nil, false
	}
	b := src.Bounds()
	if b.Empty() {
		return nil, false
	}
	p := &pattern{img: image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))}
	xdraw.Draw(p.img, p.img.Bounds(), src, b.Min, xdraw.Src)

	switch rep {
	case native.Repeat, "":
		p.repX, p.repY = true, true
	case native.RepeatX:
		p.repX = true
	case native.RepeatY:
		p.repY = true
	case native.NoRepeat:
	default:
		return nil, false
	}
	return p, true
}

func (p *pattern) visible() bool { return true }

func (p *pattern) source(ctm matrix.Matrix) interface{} {
	inv, ok := invert(ctm)
	if !ok {
		return color.Transparent
	}
	w, h := p.img.Rect.Dx(), p.img.Rect.Dy()
	return rasterx.ColorFunc(func(x, y int) color.Color {
		u := apply(inv, vec.Vec2{X: float64(x) + 0.5, Y: float64(y) + 0.5})
		px, py := int(math.Floor(u.X)), int(math.Floor(u.Y))
		if p.repX {
			px = wrap(px, w)
		}
		if p.repY {
			py = wrap(py, h)
		}
		if px < 0 || py < 0 || px >= w || py >= h {
			return color.Transparent
		}
		return p.img.RGBAAt(px, py)
	})
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// invert returns the inverse of an affine transform.
// apply maps v through m.
func apply(m matrix.Matrix, v vec.Vec2) vec.Vec2 {
	x, y := m.Apply(v.X, v.Y)
	return vec.Vec2{X: x, Y: y}
}

func invert(m matrix.Matrix) (matrix.Matrix, bool) {
	det := m[0]*m[3] - m[1]*m[2]
	if det == 0 || math.IsNaN(det) {
		return matrix.Matrix{}, false
	}
	return matrix.Matrix{
		m[3] / det,
		-m[1] / det,
		-m[2] / det,
		m[0] / det,
		(m[2]*m[5] - m[3]*m[4]) / det,
		(m[1]*m[4] - m[0]*m[5]) / det,
	}, true
}

// scaleFactor is the geometric mean scale of m, used for line widths.
func scaleFactor(m matrix.Matrix) float64 {
	return math.Sqrt(math.Abs(m[0]*m[3] - m[1]*m[2]))
}
