package canvas

import "strings"

// MeasureText measures text in the current font, in logical units.
func (c *Canvas) MeasureText(text string) TextMetrics {
	return c.dev.measureText(text)
}

// DrawText fills and/or strokes text at (x, y) relative to the current
// baseline. A maxWidth <= 0 leaves the text unconstrained; otherwise the
// text is compressed horizontally to fit.
func (c *Canvas) DrawText(text string, x, y, maxWidth float64, fill, stroke bool) {
	if fill {
		c.dev.fillText(text, x, y, maxWidth)
	}
	if stroke {
		c.dev.strokeText(text, x, y, maxWidth)
	}
}

// DrawWrappedText draws text word-wrapped on single spaces. A line is
// broken before a word when the measured line including that word is
// wider than x+maxWidth, unless the word is the first one. Each wrap
// advances y by lineHeight.
func (c *Canvas) DrawWrappedText(text string, x, y, maxWidth, lineHeight float64, fill, stroke bool) {
	line := ""
	for n, word := range strings.Split(text, " ") {
		candidate := line + word + " "
		if c.MeasureText(candidate).Width > x+maxWidth && n > 0 {
			c.DrawText(line, x, y, 0, fill, stroke)
			line = word + " "
			y += lineHeight
			continue
		}
		line = candidate
	}
	c.DrawText(line, x, y, 0, fill, stroke)
}
