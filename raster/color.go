package raster

import (
	"image/color"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// rgba is a straight-alpha color with components in [0, 1].
type rgba struct {
	R, G, B, A float64
}

var transparent = rgba{}

// nrgba converts c to the standard library's 8-bit straight-alpha color.
func (c rgba) nrgba() color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp255(c.R*255) + 0.5),
		G: uint8(clamp255(c.G*255) + 0.5),
		B: uint8(clamp255(c.B*255) + 0.5),
		A: uint8(clamp255(c.A*255) + 0.5),
	}
}

// premul converts c to a premultiplied color.RGBA.
func (c rgba) premul() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

func (c rgba) lerp(o rgba, t float64) rgba {
	return rgba{
		R: c.R + (o.R-c.R)*t,
		G: c.G + (o.G-c.G)*t,
		B: c.B + (o.B-c.B)*t,
		A: c.A + (o.A-c.A)*t,
	}
}

// parseColor parses a CSS color: #rgb, #rgba, #rrggbb, #rrggbbaa,
// rgb(), rgba(), hsl(), hsla(), "transparent" and the named colors.
// The second result is false for anything it does not understand.
func parseColor(s string) (rgba, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "":
		return transparent, false
	case s[0] == '#':
		return parseHexColor(s[1:])
	case strings.HasPrefix(s, "rgb"):
		return parseRGBFunc(s)
	case strings.HasPrefix(s, "hsl"):
		return parseHSLFunc(s)
	}
	return namedColor(s)
}

func parseHexColor(hex string) (rgba, bool) {
	var r, g, b uint32
	a := uint32(255)
	ok := true

	switch len(hex) {
	case 3:
		ok = parseHex(hex[0:1], &r) && parseHex(hex[1:2], &g) && parseHex(hex[2:3], &b)
		r, g, b = r*17, g*17, b*17
	case 4:
		ok = parseHex(hex[0:1], &r) && parseHex(hex[1:2], &g) && parseHex(hex[2:3], &b) && parseHex(hex[3:4], &a)
		r, g, b, a = r*17, g*17, b*17, a*17
	case 6:
		ok = parseHex(hex[0:2], &r) && parseHex(hex[2:4], &g) && parseHex(hex[4:6], &b)
	case 8:
		ok = parseHex(hex[0:2], &r) && parseHex(hex[2:4], &g) && parseHex(hex[4:6], &b) && parseHex(hex[6:8], &a)
	default:
		return transparent, false
	}
	if !ok {
		return transparent, false
	}
	return rgba{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: float64(a) / 255,
	}, true
}

func parseHex(s string, val *uint32) bool {
	*val = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		*val *= 16
		switch {
		case '0' <= c && c <= '9':
			*val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			*val += uint32(c - 'a' + 10)
		default:
			return false
		}
	}
	return true
}

// funcArgs splits "name(a, b c / d)" into its arguments.
func funcArgs(s string) ([]string, bool) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return nil, false
	}
	inner := s[open+1 : len(s)-1]
	args := strings.FieldsFunc(inner, func(r rune) bool {
		return r == ',' || r == ' ' || r == '/' || r == '\t'
	})
	return args, len(args) == 3 || len(args) == 4
}

func parseRGBFunc(s string) (rgba, bool) {
	args, ok := funcArgs(s)
	if !ok {
		return transparent, false
	}
	var c rgba
	ch := []*float64{&c.R, &c.G, &c.B}
	for i, p := range ch {
		v, pct, ok := parseNumber(args[i])
		if !ok {
			return transparent, false
		}
		if pct {
			*p = v / 100
		} else {
			*p = v / 255
		}
	}
	c.A = 1
	if len(args) == 4 {
		if c.A, ok = parseAlpha(args[3]); !ok {
			return transparent, false
		}
	}
	return c, true
}

func parseHSLFunc(s string) (rgba, bool) {
	args, ok := funcArgs(s)
	if !ok {
		return transparent, false
	}
	h, _, ok1 := parseNumber(strings.TrimSuffix(args[0], "deg"))
	sat, _, ok2 := parseNumber(args[1])
	l, _, ok3 := parseNumber(args[2])
	if !ok1 || !ok2 || !ok3 {
		return transparent, false
	}
	c := hsl(h, sat/100, l/100)
	if len(args) == 4 {
		if c.A, ok = parseAlpha(args[3]); !ok {
			return transparent, false
		}
	}
	return c, true
}

// parseNumber parses "12", "12.5" or "50%"; pct reports the percent form.
func parseNumber(s string) (v float64, pct bool, ok bool) {
	if strings.HasSuffix(s, "%") {
		pct = true
		s = s[:len(s)-1]
	}
	v, err := strconv.ParseFloat(s, 64)
	return v, pct, err == nil
}

func parseAlpha(s string) (float64, bool) {
	v, pct, ok := parseNumber(s)
	if !ok {
		return 0, false
	}
	if pct {
		v /= 100
	}
	return clamp01(v), true
}

// hsl converts hue [0, 360), saturation and lightness [0, 1] to an opaque color.
func hsl(h, s, l float64) rgba {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	h /= 360
	s, l = clamp01(s), clamp01(l)

	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h*6, 2)-1))
	m := l - c/2

	var r, g, b float64
	switch {
	case h < 1.0/6:
		r, g, b = c, x, 0
	case h < 2.0/6:
		r, g, b = x, c, 0
	case h < 3.0/6:
		r, g, b = 0, c, x
	case h < 4.0/6:
		r, g, b = 0, x, c
	case h < 5.0/6:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return rgba{R: r + m, G: g + m, B: b + m, A: 1}
}

func clamp255(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return x
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// namedColor looks up a CSS color keyword.
func namedColor(name string) (rgba, bool) {
	if name == "transparent" {
		return transparent, true
	}
	c, ok := colornames.Map[name]
	if !ok {
		return transparent, false
	}
	return rgba{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255, A: float64(c.A) / 255}, true
}
