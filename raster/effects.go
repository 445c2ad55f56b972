package raster

import (
	"image"
	"math"
	"strconv"
	"strings"
	"sync"

	xdraw "golang.org/x/image/draw"
)

// effect is one stage of a CSS filter chain. apply works in place on
// the premultiplied layer inside r and returns the region it touched.
type effect interface {
	apply(img *image.RGBA, r image.Rectangle) image.Rectangle
}

// parseFilter parses a CSS filter list such as
// "blur(2px) brightness(120%) drop-shadow(1px 1px 2px rgba(0, 0, 0, 0.5))".
// "none" and the empty string yield an empty chain.
func parseFilter(s string) ([]effect, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == "none" {
		return nil, true
	}
	var chain []effect
	for s != "" {
		open := strings.IndexByte(s, '(')
		if open <= 0 {
			return nil, false
		}
		name := strings.ToLower(strings.TrimSpace(s[:open]))
		depth, end := 0, -1
		for i := open; i < len(s); i++ {
			switch s[i] {
			case '(':
				depth++
			case ')':
				depth--
				if depth == 0 {
					end = i
				}
			}
			if end >= 0 {
				break
			}
		}
		if end < 0 {
			return nil, false
		}
		e, ok := newEffect(name, strings.TrimSpace(s[open+1:end]))
		if !ok {
			return nil, false
		}
		if e != nil {
			chain = append(chain, e)
		}
		s = strings.TrimSpace(s[end+1:])
	}
	return chain, true
}

func newEffect(name, arg string) (effect, bool) {
	if name == "drop-shadow" {
		return parseDropShadow(arg)
	}
	if name == "blur" {
		v, ok := parseLength(arg)
		if !ok || v < 0 {
			return nil, false
		}
		if v == 0 {
			return nil, true
		}
		return blurEffect{sigma: v}, true
	}
	if name == "hue-rotate" {
		deg, ok := parseAngle(arg)
		if !ok {
			return nil, false
		}
		return hueRotateMatrix(deg), true
	}

	amount, ok := parseAmount(arg)
	if !ok || amount < 0 {
		return nil, false
	}
	switch name {
	case "brightness":
		return brightnessMatrix(amount), true
	case "contrast":
		return contrastMatrix(amount), true
	case "saturate":
		return saturateMatrix(amount), true
	case "grayscale":
		return saturateMatrix(1 - math.Min(amount, 1)), true
	case "sepia":
		return sepiaMatrix(math.Min(amount, 1)), true
	case "invert":
		return invertMatrix(math.Min(amount, 1)), true
	case "opacity":
		return opacityMatrix(math.Min(amount, 1)), true
	}
	return nil, false
}

// parseAmount parses "150%", "1.5" or "" (meaning 1).
func parseAmount(s string) (float64, bool) {
	if s == "" {
		return 1, true
	}
	v, pct, ok := parseNumber(s)
	if pct {
		v /= 100
	}
	return v, ok
}

func parseLength(s string) (float64, bool) {
	if s == "" || s == "0" {
		return 0, true
	}
	if !strings.HasSuffix(s, "px") {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "px"), 64)
	return v, err == nil
}

// parseAngle returns degrees.
func parseAngle(s string) (float64, bool) {
	if s == "" || s == "0" {
		return 0, true
	}
	units := []struct {
		suffix string
		scale  float64
	}{
		{"deg", 1},
		{"grad", 0.9},
		{"rad", 180 / math.Pi},
		{"turn", 360},
	}
	for _, u := range units {
		if strings.HasSuffix(s, u.suffix) {
			v, err := strconv.ParseFloat(strings.TrimSuffix(s, u.suffix), 64)
			return v * u.scale, err == nil
		}
	}
	return 0, false
}

func parseDropShadow(arg string) (effect, bool) {
	var lengths []float64
	var colorParts []string
	for _, tok := range splitTopLevel(arg) {
		if v, ok := parseLength(tok); ok && len(colorParts) == 0 && len(lengths) < 3 {
			lengths = append(lengths, v)
			continue
		}
		colorParts = append(colorParts, tok)
	}
	if len(lengths) < 2 {
		return nil, false
	}
	d := dropShadowEffect{dx: lengths[0], dy: lengths[1], color: rgba{A: 1}}
	if len(lengths) == 3 {
		d.sigma = lengths[2] / 2
	}
	if len(colorParts) > 0 {
		c, ok := parseColor(strings.Join(colorParts, " "))
		if !ok {
			return nil, false
		}
		d.color = c
	}
	return d, true
}

// splitTopLevel splits on spaces that are not inside parentheses.
func splitTopLevel(s string) []string {
	var out []string
	depth, start := 0, -1
	for i, r := range s {
		switch {
		case r == '(':
			depth++
		case r == ')':
			depth--
		case r == ' ' && depth == 0:
			if start >= 0 {
				out = append(out, s[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		out = append(out, s[start:])
	}
	return out
}

// colorMatrix is a 4x5 row-major matrix applied to straight-alpha
// [0, 255] channels. The fifth column is a bias.
type colorMatrix [20]float32

func brightnessMatrix(f float64) colorMatrix {
	v := float32(f)
	return colorMatrix{
		v, 0, 0, 0, 0,
		0, v, 0, 0, 0,
		0, 0, v, 0, 0,
		0, 0, 0, 1, 0,
	}
}

func contrastMatrix(f float64) colorMatrix {
	v := float32(f)
	off := 127.5 * (1 - v)
	return colorMatrix{
		v, 0, 0, 0, off,
		0, v, 0, 0, off,
		0, 0, v, 0, off,
		0, 0, 0, 1, 0,
	}
}

func saturateMatrix(s float64) colorMatrix {
	v := float32(s)
	return colorMatrix{
		0.213 + 0.787*v, 0.715 - 0.715*v, 0.072 - 0.072*v, 0, 0,
		0.213 - 0.213*v, 0.715 + 0.285*v, 0.072 - 0.072*v, 0, 0,
		0.213 - 0.213*v, 0.715 - 0.715*v, 0.072 + 0.928*v, 0, 0,
		0, 0, 0, 1, 0,
	}
}

func sepiaMatrix(a float64) colorMatrix {
	v := float32(1 - a)
	return colorMatrix{
		0.393 + 0.607*v, 0.769 - 0.769*v, 0.189 - 0.189*v, 0, 0,
		0.349 - 0.349*v, 0.686 + 0.314*v, 0.168 - 0.168*v, 0, 0,
		0.272 - 0.272*v, 0.534 - 0.534*v, 0.131 + 0.869*v, 0, 0,
		0, 0, 0, 1, 0,
	}
}

func invertMatrix(a float64) colorMatrix {
	m := float32(1 - 2*a)
	off := float32(255 * a)
	return colorMatrix{
		m, 0, 0, 0, off,
		0, m, 0, 0, off,
		0, 0, m, 0, off,
		0, 0, 0, 1, 0,
	}
}

func opacityMatrix(a float64) colorMatrix {
	return colorMatrix{
		1, 0, 0, 0, 0,
		0, 1, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 0, 0, float32(a), 0,
	}
}

func hueRotateMatrix(deg float64) colorMatrix {
	rad := deg * math.Pi / 180
	c, s := float32(math.Cos(rad)), float32(math.Sin(rad))
	return colorMatrix{
		0.213 + c*0.787 - s*0.213, 0.715 - c*0.715 - s*0.715, 0.072 - c*0.072 + s*0.928, 0, 0,
		0.213 - c*0.213 + s*0.143, 0.715 + c*0.285 + s*0.140, 0.072 - c*0.072 - s*0.283, 0, 0,
		0.213 - c*0.213 - s*0.787, 0.715 - c*0.715 + s*0.715, 0.072 + c*0.928 + s*0.072, 0, 0,
		0, 0, 0, 1, 0,
	}
}

func (m colorMatrix) apply(img *image.RGBA, r image.Rectangle) image.Rectangle {
	r = r.Intersect(img.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := img.Pix[img.PixOffset(r.Min.X, y):img.PixOffset(r.Max.X, y)]
		for i := 0; i < len(row); i += 4 {
			a := float32(row[i+3])
			var cr, cg, cb float32
			if a > 0 {
				cr = float32(row[i]) * 255 / a
				cg = float32(row[i+1]) * 255 / a
				cb = float32(row[i+2]) * 255 / a
			}

			nr := m[0]*cr + m[1]*cg + m[2]*cb + m[3]*a + m[4]
			ng := m[5]*cr + m[6]*cg + m[7]*cb + m[8]*a + m[9]
			nb := m[10]*cr + m[11]*cg + m[12]*cb + m[13]*a + m[14]
			na := clampf(m[15]*cr+m[16]*cg+m[17]*cb+m[18]*a+m[19], 0, 255)

			f := na / 255
			row[i] = uint8(clampf(nr, 0, 255)*f + 0.5)
			row[i+1] = uint8(clampf(ng, 0, 255)*f + 0.5)
			row[i+2] = uint8(clampf(nb, 0, 255)*f + 0.5)
			row[i+3] = uint8(na + 0.5)
		}
	}
	return r
}

type blurEffect struct{ sigma float64 }

func (b blurEffect) apply(img *image.RGBA, r image.Rectangle) image.Rectangle {
	r = r.Inset(-kernelHalf(b.sigma)).Intersect(img.Rect)
	blurRGBA(img, r, b.sigma)
	return r
}

type dropShadowEffect struct {
	dx, dy float64
	sigma  float64
	color  rgba
}

func (d dropShadowEffect) apply(img *image.RGBA, r image.Rectangle) image.Rectangle {
	sh, sr := shadowOf(img, r, d.dx, d.dy, d.sigma, d.color)
	if sh == nil {
		return r
	}
	out := r.Union(sr).Intersect(img.Rect)
	// content over shadow, written back into the layer
	xdraw.Draw(sh, r, img, r.Min, xdraw.Over)
	xdraw.Draw(img, out, sh, out.Min, xdraw.Src)
	return out
}

// shadowOf renders the shadow cast by the content of img inside r:
// its alpha channel offset, blurred and tinted with c. The returned
// image has the same coordinate space as img, limited to the
// returned rectangle.
func shadowOf(img *image.RGBA, r image.Rectangle, dx, dy, sigma float64, c rgba) (*image.RGBA, image.Rectangle) {
	off := image.Pt(int(math.Round(dx)), int(math.Round(dy)))
	sr := r.Add(off).Inset(-kernelHalf(sigma)).Intersect(img.Rect)
	if sr.Empty() || c.A <= 0 {
		return nil, sr
	}
	bounds := sr.Union(r).Intersect(img.Rect)
	w, h := sr.Dx(), sr.Dy()

	alpha := make([]float32, w*h)
	for y := 0; y < h; y++ {
		sy := sr.Min.Y + y - off.Y
		if sy < img.Rect.Min.Y || sy >= img.Rect.Max.Y {
			continue
		}
		for x := 0; x < w; x++ {
			sx := sr.Min.X + x - off.X
			if sx < img.Rect.Min.X || sx >= img.Rect.Max.X {
				continue
			}
			alpha[y*w+x] = float32(img.Pix[img.PixOffset(sx, sy)+3]) / 255
		}
	}
	if sigma > 0 {
		blurPlane(alpha, w, h, cachedKernel(sigma))
	}

	out := image.NewRGBA(bounds)
	pc := c.premul()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a := clampf(alpha[y*w+x], 0, 1)
			if a == 0 {
				continue
			}
			i := out.PixOffset(sr.Min.X+x, sr.Min.Y+y)
			out.Pix[i] = uint8(float32(pc.R)*a + 0.5)
			out.Pix[i+1] = uint8(float32(pc.G)*a + 0.5)
			out.Pix[i+2] = uint8(float32(pc.B)*a + 0.5)
			out.Pix[i+3] = uint8(float32(pc.A)*a + 0.5)
		}
	}
	return out, sr
}

// gaussianKernel returns a normalized kernel of size 2*ceil(3*sigma)+1.
func gaussianKernel(sigma float64) []float32 {
	if sigma <= 0 {
		return []float32{1}
	}
	half := int(math.Ceil(sigma * 3))
	kernel := make([]float32, half*2+1)
	twoSigmaSq := 2 * sigma * sigma
	var sum float64
	for i := range kernel {
		x := float64(i - half)
		v := math.Exp(-(x * x) / twoSigmaSq)
		kernel[i] = float32(v)
		sum += v
	}
	inv := float32(1 / sum)
	for i := range kernel {
		kernel[i] *= inv
	}
	return kernel
}

func kernelHalf(sigma float64) int {
	if sigma <= 0 {
		return 0
	}
	return int(math.Ceil(sigma * 3))
}

var kernels = struct {
	sync.Mutex
	m map[int][]float32
}{m: make(map[int][]float32)}

// cachedKernel quantizes sigma to 0.01 and memoizes the kernel.
func cachedKernel(sigma float64) []float32 {
	key := int(sigma * 100)
	kernels.Lock()
	defer kernels.Unlock()
	if k, ok := kernels.m[key]; ok {
		return k
	}
	if len(kernels.m) >= 64 {
		clear(kernels.m)
	}
	k := gaussianKernel(float64(key) / 100)
	kernels.m[key] = k
	return k
}

// blurRGBA blurs the premultiplied pixels of img inside r with a
// separable Gaussian. Pixels outside r count as transparent.
func blurRGBA(img *image.RGBA, r image.Rectangle, sigma float64) {
	if r.Empty() || sigma <= 0 {
		return
	}
	kernel := cachedKernel(sigma)
	w, h := r.Dx(), r.Dy()
	planes := make([][]float32, 4)
	for c := range planes {
		planes[c] = make([]float32, w*h)
	}
	for y := 0; y < h; y++ {
		row := img.Pix[img.PixOffset(r.Min.X, r.Min.Y+y):]
		for x := 0; x < w; x++ {
			for c := 0; c < 4; c++ {
				planes[c][y*w+x] = float32(row[x*4+c])
			}
		}
	}
	for c := range planes {
		blurPlane(planes[c], w, h, kernel)
	}
	for y := 0; y < h; y++ {
		row := img.Pix[img.PixOffset(r.Min.X, r.Min.Y+y):]
		for x := 0; x < w; x++ {
			a := clampf(planes[3][y*w+x], 0, 255)
			for c := 0; c < 3; c++ {
				row[x*4+c] = uint8(clampf(planes[c][y*w+x], 0, a) + 0.5)
			}
			row[x*4+3] = uint8(a + 0.5)
		}
	}
}

// blurPlane convolves a single channel horizontally then vertically.
func blurPlane(buf []float32, w, h int, kernel []float32) {
	half := len(kernel) / 2
	tmp := make([]float32, len(buf))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum float32
			for k, weight := range kernel {
				kx := x + k - half
				if kx < 0 || kx >= w {
					continue
				}
				sum += buf[y*w+kx] * weight
			}
			tmp[y*w+x] = sum
		}
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum float32
			for k, weight := range kernel {
				ky := y + k - half
				if ky < 0 || ky >= h {
					continue
				}
				sum += tmp[ky*w+x] * weight
			}
			buf[y*w+x] = sum
		}
	}
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
