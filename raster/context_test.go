package raster

import (
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/canvas/native"
	"github.com/google/go-cmp/cmp"
)

func near(a, b uint8) bool {
	d := int(a) - int(b)
	return d >= -2 && d <= 2
}

func assertPixel(t *testing.T, c *Context, x, y int, want color.RGBA) {
	t.Helper()
	got := c.img.RGBAAt(x, y)
	if !near(got.R, want.R) || !near(got.G, want.G) || !near(got.B, want.B) || !near(got.A, want.A) {
		t.Errorf("pixel(%d, %d) = %v, want %v", x, y, got, want)
	}
}

var (
	red   = color.RGBA{255, 0, 0, 255}
	black = color.RGBA{0, 0, 0, 255}
	blank = color.RGBA{}
)

func TestFillRect(t *testing.T) {
	c := NewContext(20, 20)
	c.SetFillStyle(native.Color("red"))
	c.FillRect(2, 2, 10, 10)

	assertPixel(t, c, 6, 6, red)
	assertPixel(t, c, 15, 15, blank)
	assertPixel(t, c, 0, 0, blank)
}

func TestFillPathAfterTransform(t *testing.T) {
	c := NewContext(20, 20)
	c.SetFillStyle(native.Color("#f00"))
	c.Translate(5, 5)
	c.Scale(2, 2)
	c.BeginPath()
	c.Rect(0, 0, 3, 3)
	c.Fill()

	assertPixel(t, c, 7, 7, red)
	assertPixel(t, c, 2, 2, blank)
	assertPixel(t, c, 12, 12, blank)
}

func TestInvalidStyleIsIgnored(t *testing.T) {
	c := NewContext(10, 10)
	c.SetFillStyle(native.Color("red"))
	c.SetFillStyle(native.Color("no-such-color"))
	c.FillRect(0, 0, 10, 10)
	assertPixel(t, c, 5, 5, red)
}

func TestSaveRestore(t *testing.T) {
	c := NewContext(10, 10)
	c.Save()
	c.SetFillStyle(native.Color("red"))
	c.Translate(100, 100)
	c.Restore()
	c.FillRect(0, 0, 10, 10)
	assertPixel(t, c, 5, 5, black)

	// unbalanced restore is a no-op
	c.Restore()
}

func TestClip(t *testing.T) {
	c := NewContext(20, 20)
	c.BeginPath()
	c.Rect(0, 0, 5, 5)
	c.Clip()
	c.SetFillStyle(native.Color("red"))
	c.FillRect(0, 0, 20, 20)

	assertPixel(t, c, 2, 2, red)
	assertPixel(t, c, 10, 10, blank)
}

func TestClipEmptyPathClipsEverything(t *testing.T) {
	c := NewContext(10, 10)
	c.BeginPath()
	c.Clip()
	c.FillRect(0, 0, 10, 10)
	assertPixel(t, c, 5, 5, blank)
}

func TestClearRect(t *testing.T) {
	c := NewContext(20, 20)
	c.SetFillStyle(native.Color("red"))
	c.FillRect(0, 0, 20, 20)
	c.ClearRect(0, 0, 5, 5)

	assertPixel(t, c, 2, 2, blank)
	assertPixel(t, c, 10, 10, red)
}

func TestGlobalAlpha(t *testing.T) {
	c := NewContext(10, 10)
	c.SetGlobalAlpha(0.5)
	c.SetGlobalAlpha(2) // out of range, ignored
	c.SetFillStyle(native.Color("red"))
	c.FillRect(0, 0, 10, 10)
	assertPixel(t, c, 5, 5, color.RGBA{128, 0, 0, 128})
}

func TestShadow(t *testing.T) {
	c := NewContext(20, 20)
	c.SetShadow("black", 0, 5, 5)
	c.SetFillStyle(native.Color("red"))
	c.FillRect(0, 0, 5, 5)

	assertPixel(t, c, 2, 2, red)
	assertPixel(t, c, 7, 7, black)
	assertPixel(t, c, 15, 15, blank)
}

func TestFilterInvert(t *testing.T) {
	c := NewContext(10, 10)
	c.SetFilter("invert(100%)")
	c.SetFillStyle(native.Color("red"))
	c.FillRect(0, 0, 10, 10)
	assertPixel(t, c, 5, 5, color.RGBA{0, 255, 255, 255})
}

func TestSetFilterRejectsInvalid(t *testing.T) {
	c := NewContext(1, 1)
	c.SetFilter("blur(2px)")
	c.SetFilter("wobble(3)")
	if got := c.Filter(); got != "blur(2px)" {
		t.Errorf("Filter() = %q, want %q", got, "blur(2px)")
	}
}

func TestSetLineDash(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want []float64
	}{
		{"even", []float64{4, 2}, []float64{4, 2}},
		{"odd is repeated", []float64{1, 2, 3}, []float64{1, 2, 3, 1, 2, 3}},
		{"all zero means solid", []float64{0, 0}, nil},
		{"empty means solid", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewContext(1, 1)
			c.SetLineDash(tt.in)
			got := c.LineDash()
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("LineDash() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSetLineDashRejectsNegative(t *testing.T) {
	c := NewContext(1, 1)
	c.SetLineDash([]float64{5, 5})
	c.SetLineDash([]float64{5, -1})
	if diff := cmp.Diff([]float64{5, 5}, c.LineDash()); diff != "" {
		t.Errorf("LineDash() mismatch (-want +got):\n%s", diff)
	}
}

func TestStroke(t *testing.T) {
	c := NewContext(20, 20)
	c.SetStrokeStyle(native.Color("red"))
	c.SetLineWidth(4)
	c.BeginPath()
	c.MoveTo(0, 10)
	c.LineTo(20, 10)
	c.Stroke()

	assertPixel(t, c, 10, 10, red)
	assertPixel(t, c, 10, 2, blank)
}

func TestLinearGradientFill(t *testing.T) {
	c := NewContext(100, 10)
	g := c.CreateLinearGradient(0, 0, 100, 0)
	g.AddColorStop(0, "black")
	g.AddColorStop(1, "white")
	g.AddColorStop(2, "red") // out of range, ignored
	c.SetFillStyle(g)
	c.FillRect(0, 0, 100, 10)

	left := c.img.RGBAAt(2, 5)
	right := c.img.RGBAAt(97, 5)
	if left.R >= right.R {
		t.Errorf("gradient not increasing: left %v right %v", left, right)
	}
	if left.A != 255 || right.A != 255 {
		t.Errorf("gradient not opaque: left %v right %v", left, right)
	}
}

func TestPatternFill(t *testing.T) {
	tile := image.NewRGBA(image.Rect(0, 0, 2, 2))
	tile.SetRGBA(0, 0, red)
	tile.SetRGBA(1, 1, red)

	c := NewContext(8, 8)
	p, ok := c.CreatePattern(native.Bitmap{Image: tile}, native.Repeat)
	if !ok {
		t.Fatal("CreatePattern failed")
	}
	c.SetFillStyle(p)
	c.FillRect(0, 0, 8, 8)

	assertPixel(t, c, 4, 4, red)
	assertPixel(t, c, 5, 4, blank)
}

func TestCreatePatternRejectsBadRepetition(t *testing.T) {
	c := NewContext(1, 1)
	tile := image.NewRGBA(image.Rect(0, 0, 1, 1))
	if _, ok := c.CreatePattern(native.Bitmap{Image: tile}, "sideways"); ok {
		t.Error("CreatePattern accepted an invalid repetition")
	}
	if _, ok := c.CreatePattern(nil, native.Repeat); ok {
		t.Error("CreatePattern accepted a nil source")
	}
}

func TestDrawImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range src.Pix {
		src.Pix[i] = 255
	}
	c := NewContext(20, 20)
	c.DrawImage(native.Bitmap{Image: src}, 0, 0, 4, 4, 4, 4, 8, 8)

	assertPixel(t, c, 8, 8, color.RGBA{255, 255, 255, 255})
	assertPixel(t, c, 1, 1, blank)
	assertPixel(t, c, 15, 15, blank)
}

func TestSetSizeResetsState(t *testing.T) {
	c := NewContext(10, 10)
	c.SetFillStyle(native.Color("red"))
	c.FillRect(0, 0, 10, 10)
	c.SetFont("bold 20px serif")
	c.SetSize(4, 3)

	if w, h := c.Size(); w != 4 || h != 3 {
		t.Fatalf("Size() = %d, %d, want 4, 3", w, h)
	}
	if got := c.Font(); got != "10px sans-serif" {
		t.Errorf("Font() = %q after resize", got)
	}
	assertPixel(t, c, 1, 1, blank)
}

func TestZeroSizeDrawingIsNoop(t *testing.T) {
	c := NewContext(0, 0)
	c.FillRect(0, 0, 10, 10)
	c.FillText("x", 0, 0, 0)
	c.ClearRect(0, 0, 1, 1)
	c.Clip()
	if w, h := c.Size(); w != 0 || h != 0 {
		t.Errorf("Size() = %d, %d", w, h)
	}
}
