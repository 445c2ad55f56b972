package raster

import (
	"sync"

	"github.com/go-text/typesetting/di"
	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"github.com/gogpu/canvas/native"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

var shaperPool = sync.Pool{
	New: func() any { return &shaping.HarfbuzzShaper{} },
}

// placedGlyph is a shaped glyph relative to the text origin (y down).
type placedGlyph struct {
	id sfnt.GlyphIndex
	x  float64
	y  float64
}

// textLayout is a shaped line of text in user units.
type textLayout struct {
	face    *face
	size    float64
	glyphs  []placedGlyph
	width   float64
	ascent  float64
	descent float64
}

type textRun struct {
	runes []rune
	rtl   bool
}

// bidiRuns splits text into directional runs in visual order.
func bidiRuns(text string) []textRun {
	single := []textRun{{runes: []rune(text)}}
	if !hasRTL(text) {
		return single
	}
	var p bidi.Paragraph
	if _, err := p.SetString(text, bidi.DefaultDirection(bidi.LeftToRight)); err != nil {
		return single
	}
	ordering, err := p.Order()
	if err != nil {
		return single
	}
	runs := make([]textRun, 0, ordering.NumRuns())
	for i := 0; i < ordering.NumRuns(); i++ {
		run := ordering.Run(i)
		runs = append(runs, textRun{
			runes: []rune(run.String()),
			rtl:   run.Direction() == bidi.RightToLeft,
		})
	}
	return runs
}

func hasRTL(text string) bool {
	for _, r := range text {
		props, _ := bidi.LookupRune(r)
		if c := props.Class(); c == bidi.R || c == bidi.AL {
			return true
		}
	}
	return false
}

func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

func fixedToFloat(v fixed.Int26_6) float64 { return float64(v) / 64 }

// layoutText shapes text with the current font.
func (c *Context) layoutText(text string) (textLayout, bool) {
	spec := c.st.font
	fc := c.fonts.lookup(spec.families, spec.bold, spec.italic)
	if fc == nil || spec.size <= 0 {
		return textLayout{}, false
	}
	l := textLayout{face: fc, size: spec.size}

	var buf sfnt.Buffer
	ppem := fixed.Int26_6(spec.size * 64)
	if m, err := fc.sf.Metrics(&buf, ppem, xfont.HintingNone); err == nil {
		l.ascent = fixedToFloat(m.Ascent)
		l.descent = fixedToFloat(m.Descent)
	}
	if text == "" {
		return l, true
	}

	hb := shaperPool.Get().(*shaping.HarfbuzzShaper)
	defer shaperPool.Put(hb)

	gface := gotext.NewFace(fc.gt)
	pen := 0.0
	for _, run := range bidiRuns(text) {
		if len(run.runes) == 0 {
			continue
		}
		dir := di.DirectionLTR
		if run.rtl {
			dir = di.DirectionRTL
		}
		out := hb.Shape(shaping.Input{
			Text:      run.runes,
			RunStart:  0,
			RunEnd:    len(run.runes),
			Direction: dir,
			Face:      gface,
			Size:      ppem,
			Script:    detectScript(run.runes),
			Language:  language.NewLanguage("en"),
		})
		for _, g := range out.Glyphs {
			l.glyphs = append(l.glyphs, placedGlyph{
				id: sfnt.GlyphIndex(g.GlyphID),
				x:  pen + fixedToFloat(g.XOffset),
				y:  -fixedToFloat(g.YOffset),
			})
			pen += fixedToFloat(g.Advance)
		}
	}
	l.width = pen
	return l, true
}

// baselineShift returns the y offset from the requested baseline to the
// alphabetic baseline.
func (l *textLayout) baselineShift(b native.TextBaseline) float64 {
	switch b {
	case native.BaselineTop:
		return l.ascent
	case native.BaselineHanging:
		return l.ascent * 0.8
	case native.BaselineMiddle:
		return (l.ascent - l.descent) / 2
	case native.BaselineIdeographic, native.BaselineBottom:
		return -l.descent
	}
	return 0
}

// appendOutlines adds the glyph outlines to p. m maps text space, where
// the origin is the start of the alphabetic baseline, to device space.
func (l *textLayout) appendOutlines(p *path, m matrix.Matrix, cache *outlineCache) {
	ppem := fixed.Int26_6(l.size * 64)
	at := func(g placedGlyph, q fixed.Point26_6) vec.Vec2 {
		return apply(m, vec.Vec2{X: g.x + fixedToFloat(q.X), Y: g.y + fixedToFloat(q.Y)})
	}
	for _, g := range l.glyphs {
		segs, err := cache.get(l.face, g.id, ppem)
		if err != nil {
			continue
		}
		for _, s := range segs {
			switch s.Op {
			case sfnt.SegmentOpMoveTo:
				p.closePath()
				p.moveTo(at(g, s.Args[0]))
			case sfnt.SegmentOpLineTo:
				p.lineTo(at(g, s.Args[0]))
			case sfnt.SegmentOpQuadTo:
				p.quadTo(at(g, s.Args[0]), at(g, s.Args[1]))
			case sfnt.SegmentOpCubeTo:
				p.cubeTo(at(g, s.Args[0]), at(g, s.Args[1]), at(g, s.Args[2]))
			}
		}
		p.closePath()
	}
}

// textPath lays out text at (x, y) and returns its outline in device space.
// A positive maxWidth compresses the text horizontally to fit.
func (c *Context) textPath(text string, x, y, maxWidth float64) (*path, bool) {
	l, ok := c.layoutText(text)
	if !ok || len(l.glyphs) == 0 {
		return nil, false
	}
	sx := 1.0
	if maxWidth > 0 && l.width > maxWidth {
		sx = maxWidth / l.width
	}
	m := matrix.Matrix{sx, 0, 0, 1, x, y + l.baselineShift(c.st.baseline)}.Mul(c.st.ctm)
	p := new(path)
	l.appendOutlines(p, m, c.fonts.outlines)
	return p, true
}

func (c *Context) FillText(text string, x, y, maxWidth float64) {
	if p, ok := c.textPath(text, x, y, maxWidth); ok {
		c.fillPath(p, c.st.fill)
	}
}

func (c *Context) StrokeText(text string, x, y, maxWidth float64) {
	if p, ok := c.textPath(text, x, y, maxWidth); ok {
		c.strokePath(p, c.st.stroke)
	}
}

// MeasureText measures text in the current font, in user units.
func (c *Context) MeasureText(text string) native.TextMetrics {
	l, ok := c.layoutText(text)
	if !ok {
		return native.TextMetrics{}
	}
	return native.TextMetrics{Width: l.width, Ascent: l.ascent, Descent: l.descent}
}
