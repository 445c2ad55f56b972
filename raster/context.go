package raster

import (
	"image"
	"image/color"
	"math"

	"github.com/gogpu/canvas/native"
	"github.com/srwiley/rasterx"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

const defaultMiterLimit = 10

// shadow holds the canvas shadow attributes in device pixels.
type shadow struct {
	color   rgba
	blur    float64
	offsetX float64
	offsetY float64
}

func (s shadow) visible() bool {
	return s.color.A > 0 && (s.blur > 0 || s.offsetX != 0 || s.offsetY != 0)
}

// state is the part of the context saved by Save and restored by Restore.
// Slices and the clip mask are never mutated after being stored.
type state struct {
	ctm        matrix.Matrix
	fill       paint
	stroke     paint
	lineWidth  float64
	dash       []float64
	shadow     shadow
	filter     string
	effects    []effect
	fontString string
	font       fontSpec
	baseline   native.TextBaseline
	alpha      float64
	clip       *image.Alpha
}

func defaultState() state {
	return state{
		ctm:        matrix.Identity,
		fill:       defaultPaint,
		stroke:     defaultPaint,
		lineWidth:  1,
		filter:     "none",
		fontString: "10px sans-serif",
		font:       defaultFont,
		baseline:   native.BaselineAlphabetic,
		alpha:      1,
	}
}

// Context is the raster implementation of native.Context2D.
type Context struct {
	img   *image.RGBA
	layer *image.RGBA

	scanner *rasterx.ScannerGV
	filler  *rasterx.Filler
	dasher  *rasterx.Dasher

	st    state
	stack []state
	path  path

	fonts   *FontRegistry
	backend *Backend
}

var (
	_ native.Context2D   = (*Context)(nil)
	_ native.PixelSource = (*Context)(nil)
)

func newContext(b *Backend) *Context {
	c := &Context{backend: b, fonts: b.fonts}
	c.SetSize(0, 0)
	return c
}

// NewContext creates a standalone context of the given device size
// using the package-wide font registry.
func NewContext(width, height int) *Context {
	c := newContext(NewBackend())
	c.SetSize(width, height)
	return c
}

// SetSize reallocates the backing image and resets all state.
func (c *Context) SetSize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	r := image.Rect(0, 0, width, height)
	c.img = image.NewRGBA(r)
	c.layer = image.NewRGBA(r)
	c.scanner = rasterx.NewScannerGV(width, height, c.layer, r)
	c.filler = rasterx.NewFiller(width, height, c.scanner)
	c.dasher = rasterx.NewDasher(width, height, c.scanner)
	c.st = defaultState()
	c.stack = c.stack[:0]
	c.path.reset()
	c.backend.logger().Debug("raster: context resized", "width", width, "height", height)
}

// Size returns the device size of the backing image.
func (c *Context) Size() (int, int) {
	return c.img.Rect.Dx(), c.img.Rect.Dy()
}

// NaturalSize reports the device size so a context can be used as an image source.
func (c *Context) NaturalSize() (int, int) { return c.Size() }

// Pixels returns the backing image. The image is live; callers that keep
// it past the next drawing call must copy it.
func (c *Context) Pixels() image.Image { return c.img }

// Image returns a copy of the current pixels.
func (c *Context) Image() *image.RGBA {
	out := image.NewRGBA(c.img.Rect)
	copy(out.Pix, c.img.Pix)
	return out
}

func (c *Context) empty() bool { return c.img.Rect.Empty() }

func (c *Context) Save() {
	c.stack = append(c.stack, c.st)
}

func (c *Context) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.st = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

func (c *Context) Translate(x, y float64) {
	c.st.ctm = matrix.Translate(x, y).Mul(c.st.ctm)
}

func (c *Context) Scale(x, y float64) {
	c.st.ctm = matrix.Scale(x, y).Mul(c.st.ctm)
}

func (c *Context) Rotate(angle float64) {
	c.st.ctm = matrix.Rotate(angle).Mul(c.st.ctm)
}

func (c *Context) pt(x, y float64) vec.Vec2 {
	return apply(c.st.ctm, vec.Vec2{X: x, Y: y})
}

// Path construction.

func (c *Context) BeginPath() { c.path.reset() }
func (c *Context) ClosePath() { c.path.closePath() }

func (c *Context) MoveTo(x, y float64) { c.path.moveTo(c.pt(x, y)) }
func (c *Context) LineTo(x, y float64) { c.path.lineTo(c.pt(x, y)) }

func (c *Context) QuadraticCurveTo(cpx, cpy, x, y float64) {
	c.path.quadTo(c.pt(cpx, cpy), c.pt(x, y))
}

func (c *Context) BezierCurveTo(cp1x, cp1y, cp2x, cp2y, x, y float64) {
	c.path.cubeTo(c.pt(cp1x, cp1y), c.pt(cp2x, cp2y), c.pt(x, y))
}

func (c *Context) ArcTo(x1, y1, x2, y2, radius float64) {
	if radius < 0 {
		return
	}
	if !c.path.hasCur {
		c.MoveTo(x1, y1)
		return
	}
	inv, ok := invert(c.st.ctm)
	if !ok {
		return
	}
	p0 := apply(inv, c.path.cur)
	c.path.arcTo(c.st.ctm, p0, vec.Vec2{X: x1, Y: y1}, vec.Vec2{X: x2, Y: y2}, radius)
}

func (c *Context) Arc(x, y, radius, startAngle, endAngle float64, counterclockwise bool) {
	if radius < 0 {
		return
	}
	sweep := arcSweep(startAngle, endAngle, counterclockwise)
	c.path.ellipseArc(c.st.ctm, x, y, radius, radius, 0, startAngle, sweep)
}

func (c *Context) Ellipse(x, y, radiusX, radiusY, rotation, startAngle, endAngle float64, counterclockwise bool) {
	if radiusX < 0 || radiusY < 0 {
		return
	}
	sweep := arcSweep(startAngle, endAngle, counterclockwise)
	c.path.ellipseArc(c.st.ctm, x, y, radiusX, radiusY, rotation, startAngle, sweep)
}

func (c *Context) Rect(x, y, w, h float64) {
	appendRect(&c.path, c.st.ctm, x, y, w, h)
}

func appendRect(p *path, m matrix.Matrix, x, y, w, h float64) {
	at := func(px, py float64) vec.Vec2 { return apply(m, vec.Vec2{X: px, Y: py}) }
	p.moveTo(at(x, y))
	p.lineTo(at(x+w, y))
	p.lineTo(at(x+w, y+h))
	p.lineTo(at(x, y+h))
	p.closePath()
	p.moveTo(at(x, y))
}

// Painting.

func (c *Context) Fill()   { c.fillPath(&c.path, c.st.fill) }
func (c *Context) Stroke() { c.strokePath(&c.path, c.st.stroke) }

func (c *Context) FillRect(x, y, w, h float64) {
	var p path
	appendRect(&p, c.st.ctm, x, y, w, h)
	c.fillPath(&p, c.st.fill)
}

func (c *Context) StrokeRect(x, y, w, h float64) {
	var p path
	appendRect(&p, c.st.ctm, x, y, w, h)
	c.strokePath(&p, c.st.stroke)
}

func (c *Context) fillPath(p *path, pt paint) {
	if c.empty() || p.empty() || pt == nil || !pt.visible() {
		return
	}
	c.filler.Clear()
	c.filler.SetWinding(true)
	p.replay(c.filler)
	c.scanner.SetColor(pt.source(c.st.ctm))
	c.filler.Draw()
	c.filler.Clear()
	c.composite(p.bounds(1))
}

func (c *Context) strokePath(p *path, pt paint) {
	if c.empty() || p.empty() || pt == nil || !pt.visible() || c.st.lineWidth <= 0 {
		return
	}
	s := scaleFactor(c.st.ctm)
	width := c.st.lineWidth * s
	var dashes []float64
	if len(c.st.dash) > 0 {
		dashes = make([]float64, len(c.st.dash))
		for i, d := range c.st.dash {
			dashes[i] = d * s
		}
	}

	c.dasher.Clear()
	c.dasher.SetStroke(
		fixed.Int26_6(width*64), fixed.Int26_6(defaultMiterLimit*64),
		rasterx.ButtCap, rasterx.ButtCap, rasterx.FlatGap, rasterx.Miter,
		dashes, 0,
	)
	p.replay(c.dasher)
	c.scanner.SetColor(pt.source(c.st.ctm))
	c.dasher.Draw()
	c.dasher.Clear()
	c.composite(p.bounds(width*defaultMiterLimit/2 + 1))
}

// Clip intersects the clip region with the current path.
func (c *Context) Clip() {
	if c.empty() {
		return
	}
	mask := image.NewAlpha(c.img.Rect)
	if !c.path.empty() {
		sc := rasterx.NewScannerGV(mask.Rect.Dx(), mask.Rect.Dy(), mask, mask.Rect)
		f := rasterx.NewFiller(mask.Rect.Dx(), mask.Rect.Dy(), sc)
		f.SetWinding(true)
		c.path.replay(f)
		sc.SetColor(color.Opaque)
		f.Draw()
	}
	if prev := c.st.clip; prev != nil {
		for i, a := range prev.Pix {
			mask.Pix[i] = uint8(uint32(mask.Pix[i]) * uint32(a) / 255)
		}
	}
	c.st.clip = mask
}

// ClearRect makes the transformed rectangle transparent, honoring the clip.
func (c *Context) ClearRect(x, y, w, h float64) {
	if c.empty() {
		return
	}
	var p path
	appendRect(&p, c.st.ctm, x, y, w, h)
	r := p.bounds(1).Intersect(c.img.Rect)
	if r.Empty() {
		return
	}

	cov := image.NewAlpha(c.img.Rect)
	sc := rasterx.NewScannerGV(cov.Rect.Dx(), cov.Rect.Dy(), cov, cov.Rect)
	f := rasterx.NewFiller(cov.Rect.Dx(), cov.Rect.Dy(), sc)
	p.replay(f)
	sc.SetColor(color.Opaque)
	f.Draw()

	for yy := r.Min.Y; yy < r.Max.Y; yy++ {
		for xx := r.Min.X; xx < r.Max.X; xx++ {
			k := uint32(cov.AlphaAt(xx, yy).A)
			if clip := c.st.clip; clip != nil {
				k = k * uint32(clip.AlphaAt(xx, yy).A) / 255
			}
			if k == 0 {
				continue
			}
			i := c.img.PixOffset(xx, yy)
			for j := 0; j < 4; j++ {
				c.img.Pix[i+j] = uint8(uint32(c.img.Pix[i+j]) * (255 - k) / 255)
			}
		}
	}
}

// composite runs the scratch layer inside r through the filter chain and
// the shadow, blends it onto the backing image and clears the layer.
func (c *Context) composite(r image.Rectangle) {
	r = r.Intersect(c.layer.Rect)
	if r.Empty() {
		return
	}
	for _, e := range c.st.effects {
		r = e.apply(c.layer, r)
	}
	if sh := c.st.shadow; sh.visible() {
		if img, sr := shadowOf(c.layer, r, sh.offsetX, sh.offsetY, sh.blur/2, sh.color); img != nil {
			c.blend(img, sr)
		}
	}
	c.blend(c.layer, r)
	clearRegion(c.layer, r)
}

// blend draws src over the backing image through the clip and global alpha.
func (c *Context) blend(src *image.RGBA, r image.Rectangle) {
	r = r.Intersect(c.img.Rect)
	if r.Empty() {
		return
	}
	alpha := clamp01(c.st.alpha)
	clip := c.st.clip
	switch {
	case clip == nil && alpha >= 1:
		xdraw.Draw(c.img, r, src, r.Min, xdraw.Over)
	case clip == nil:
		mask := image.NewUniform(color.Alpha{A: uint8(alpha*255 + 0.5)})
		xdraw.DrawMask(c.img, r, src, r.Min, mask, image.Point{}, xdraw.Over)
	case alpha >= 1:
		xdraw.DrawMask(c.img, r, src, r.Min, clip, r.Min, xdraw.Over)
	default:
		mask := image.NewAlpha(r)
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				mask.SetAlpha(x, y, color.Alpha{A: uint8(float64(clip.AlphaAt(x, y).A)*alpha + 0.5)})
			}
		}
		xdraw.DrawMask(c.img, r, src, r.Min, mask, r.Min, xdraw.Over)
	}
}

func clearRegion(img *image.RGBA, r image.Rectangle) {
	r = r.Intersect(img.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		clear(img.Pix[img.PixOffset(r.Min.X, y):img.PixOffset(r.Max.X, y)])
	}
}

// Styles.

func (c *Context) SetFillStyle(p native.Paint) {
	if pt, ok := resolvePaint(p); ok {
		c.st.fill = pt
	}
}

func (c *Context) SetStrokeStyle(p native.Paint) {
	if pt, ok := resolvePaint(p); ok {
		c.st.stroke = pt
	}
}

func (c *Context) SetLineWidth(w float64) {
	if w > 0 && !math.IsInf(w, 0) && !math.IsNaN(w) {
		c.st.lineWidth = w
	}
}

// SetLineDash ignores lists containing negative or non-finite values and
// repeats odd-length lists, as the canvas API does.
func (c *Context) SetLineDash(segments []float64) {
	allZero := true
	for _, s := range segments {
		if s < 0 || math.IsInf(s, 0) || math.IsNaN(s) {
			return
		}
		if s > 0 {
			allZero = false
		}
	}
	if len(segments) == 0 || allZero {
		c.st.dash = nil
		return
	}
	dash := append([]float64(nil), segments...)
	if len(dash)%2 == 1 {
		dash = append(dash, segments...)
	}
	c.st.dash = dash
}

// LineDash returns the current dash list.
func (c *Context) LineDash() []float64 {
	return append([]float64(nil), c.st.dash...)
}

func (c *Context) SetShadow(col string, blur, offsetX, offsetY float64) {
	sc, ok := parseColor(col)
	if !ok {
		sc = c.st.shadow.color
	}
	c.st.shadow = shadow{
		color:   sc,
		blur:    math.Max(blur, 0),
		offsetX: offsetX,
		offsetY: offsetY,
	}
}

func (c *Context) SetFilter(filter string) {
	effects, ok := parseFilter(filter)
	if !ok {
		c.backend.logger().Debug("raster: ignoring filter", "filter", filter)
		return
	}
	c.st.filter = filter
	c.st.effects = effects
}

// Filter returns the current filter string.
func (c *Context) Filter() string { return c.st.filter }

func (c *Context) SetFont(font string) {
	spec, ok := parseFont(font)
	if !ok {
		c.backend.logger().Debug("raster: ignoring font", "font", font)
		return
	}
	c.st.fontString = font
	c.st.font = spec
}

// Font returns the current font string.
func (c *Context) Font() string { return c.st.fontString }

func (c *Context) SetTextBaseline(b native.TextBaseline) {
	switch b {
	case native.BaselineAlphabetic, native.BaselineTop, native.BaselineHanging,
		native.BaselineMiddle, native.BaselineIdeographic, native.BaselineBottom:
		c.st.baseline = b
	}
}

func (c *Context) SetGlobalAlpha(alpha float64) {
	if alpha >= 0 && alpha <= 1 {
		c.st.alpha = alpha
	}
}

// Images and paints.

func (c *Context) DrawImage(src native.ImageSource, sx, sy, sw, sh, dx, dy, dw, dh float64) {
	if c.empty() {
		return
	}
	pix := pixelsOf(src)
	if pix == nil || sw == 0 || sh == 0 || dw == 0 || dh == 0 {
		return
	}
	if pix == image.Image(c.img) {
		pix = c.Image()
	}
	b := pix.Bounds()
	sr := image.Rect(
		b.Min.X+int(math.Floor(sx)), b.Min.Y+int(math.Floor(sy)),
		b.Min.X+int(math.Ceil(sx+sw)), b.Min.Y+int(math.Ceil(sy+sh)),
	).Canon().Intersect(b)
	if sr.Empty() {
		return
	}

	// source pixel -> user space -> device
	kx, ky := dw/sw, dh/sh
	m := matrix.Matrix{kx, 0, 0, ky, dx - (sx+float64(b.Min.X))*kx, dy - (sy+float64(b.Min.Y))*ky}.Mul(c.st.ctm)
	aff := affine(m)
	xdraw.ApproxBiLinear.Transform(c.layer, aff, pix, sr, xdraw.Over, nil)

	var p path
	appendRect(&p, c.st.ctm, dx, dy, dw, dh)
	c.composite(p.bounds(1))
}

func (c *Context) CreateLinearGradient(x0, y0, x1, y1 float64) native.Gradient {
	return &gradient{kind: linearGradient, x0: x0, y0: y0, x1: x1, y1: y1}
}

func (c *Context) CreateRadialGradient(x0, y0, r0, x1, y1, r1 float64) native.Gradient {
	return &gradient{kind: radialGradient, x0: x0, y0: y0, r0: math.Max(r0, 0), x1: x1, y1: y1, r1: math.Max(r1, 0)}
}

func (c *Context) CreatePattern(src native.ImageSource, rep native.Repetition) (native.Pattern, bool) {
	p, ok := newPattern(pixelsOf(src), rep)
	if !ok {
		return nil, false
	}
	return p, true
}

// affine converts m to the x/image affine layout.
func affine(m matrix.Matrix) f64.Aff3 {
	return f64.Aff3{m[0], m[2], m[4], m[1], m[3], m[5]}
}

// pixelsOf extracts Go pixels from an image source.
func pixelsOf(src native.ImageSource) image.Image {
	switch s := src.(type) {
	case nil:
		return nil
	case native.PixelSource:
		return s.Pixels()
	case image.Image:
		return s
	}
	return nil
}
