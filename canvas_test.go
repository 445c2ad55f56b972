package canvas

import (
	"bytes"
	"image/png"
	"math"
	"strings"
	"testing"

	"github.com/gogpu/canvas/native"
	"github.com/gogpu/canvas/raster"
	"github.com/google/go-cmp/cmp"
)

func TestResizeKeepsLogicalSize(t *testing.T) {
	tests := []struct {
		ratio  float64
		w, h   int
		dw, dh float64
	}{
		{1, 101, 50, 101, 50},
		{2, 101, 50, 202, 100},
		{1.5, 101, 50, 152, 75},
		{3, 0, 0, 0, 0},
	}
	for _, tt := range tests {
		c, rec := newRecorded(tt.ratio)
		c.ResizeCanvas(tt.w, tt.h)
		if c.Width() != tt.w || c.Height() != tt.h {
			t.Errorf("ratio %v: size = %dx%d, want %dx%d", tt.ratio, c.Width(), c.Height(), tt.w, tt.h)
		}
		want := []call{{Name: "SetSize", Args: []float64{tt.dw, tt.dh}}}
		if diff := cmp.Diff(want, rec.calls); diff != "" {
			t.Errorf("ratio %v: calls mismatch (-want +got):\n%s", tt.ratio, diff)
		}
	}
}

func TestNewCanvasPixelRatio(t *testing.T) {
	tests := []struct {
		name    string
		backend float64
		opts    []Option
		want    float64
	}{
		{"from backend", 2, nil, 2},
		{"unknown defaults to 1", 0, nil, 1},
		{"negative defaults to 1", -1, nil, 1},
		{"option overrides", 2, []Option{WithPixelRatio(3)}, 3},
		{"invalid option ignored", 2, []Option{WithPixelRatio(0)}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newFakeBackend(tt.backend)
			c := NewCanvas(append([]Option{WithBackend(b)}, tt.opts...)...)
			if got := c.PixelRatio(); got != tt.want {
				t.Errorf("PixelRatio() = %v, want %v", got, tt.want)
			}
			if c.Width() != 0 || c.Height() != 0 {
				t.Errorf("new canvas is %dx%d", c.Width(), c.Height())
			}
			if c.Backend() != b {
				t.Error("Backend() is not the injected backend")
			}
		})
	}
}

func TestNewCanvasDefaultBackend(t *testing.T) {
	c := NewCanvas()
	if c.Context() == nil {
		t.Fatal("no native context")
	}
	if _, ok := c.Backend().(*raster.Backend); !ok {
		t.Errorf("default backend = %T, want *raster.Backend", c.Backend())
	}
}

func TestNewCanvasSkipsNilBackend(t *testing.T) {
	native.Register("nil-backend", native.PriorityBrowser+1, func() (native.Backend, error) { return nil, nil }, nil)
	t.Cleanup(func() { native.Unregister("nil-backend") })

	c := NewCanvas()
	if _, ok := c.Backend().(*raster.Backend); !ok {
		t.Errorf("backend = %T, want *raster.Backend", c.Backend())
	}
}

func TestRatioAppliedOnce(t *testing.T) {
	c, rec := newRecorded(2)
	c.Translate(1, 2)
	c.Scale(3, 4)
	c.Rotate(0.5)
	c.DrawRect(1, 1, 2, 3, true, true)
	c.DrawArc(5, 5, 4, 0, math.Pi)
	c.DrawEllipse(5, 5, 4, 2, 0.25, 0, math.Pi)
	c.SetLineDash(3, 1)
	c.ClearRect(1, 2, 3, 4)
	c.Clear()

	want := []call{
		{Name: "Translate", Args: []float64{2, 4}},
		{Name: "Scale", Args: []float64{3, 4}},
		{Name: "Rotate", Args: []float64{0.5}},
		{Name: "FillRect", Args: []float64{2, 2, 4, 6}},
		{Name: "StrokeRect", Args: []float64{2, 2, 4, 6}},
		{Name: "Arc", Args: []float64{10, 10, 8, 0, math.Pi}},
		{Name: "Ellipse", Args: []float64{10, 10, 8, 4, 0.25, 0, math.Pi}},
		{Name: "SetLineDash", Args: []float64{6, 2}},
		{Name: "ClearRect", Args: []float64{2, 4, 6, 8}},
		{Name: "ClearRect", Args: []float64{0, 0, 200, 200}},
	}
	if diff := cmp.Diff(want, rec.calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestDrawRectFlags(t *testing.T) {
	c, rec := newRecorded(1)
	c.DrawRect(0, 0, 1, 1, false, false)
	if len(rec.calls) != 0 {
		t.Errorf("DrawRect without fill or stroke issued %v", rec.calls)
	}
}

func TestStyles(t *testing.T) {
	c, rec := newRecorded(2)
	c.SetFillStyle(NewFillStyle(Color("red")))
	c.SetFillStyle(&FillStyle{})
	c.SetStrokeStyle(NewStrokeStyle(Color("blue"), 1.5))
	c.SetShadowStyle(NewShadowStyle())
	c.SetShadowStyle(nil)
	c.SetFont(&CanvasFont{FontStyle: FontStyleItalic, FontWeight: FontWeightBold, FontSize: 12, FontFamily: "Go"})
	c.SetTextBaseline(BaselineMiddle)
	c.SetOpacity(0.5)

	want := []call{
		{Name: "SetFillStyle", Text: "red"},
		{Name: "SetStrokeStyle", Text: "blue"},
		{Name: "SetLineWidth", Args: []float64{3}},
		{Name: "SetShadow", Text: "rgba(0, 0, 0, 0.7)", Args: []float64{20, 6, 6}},
		{Name: "SetShadow", Text: "rgba(0, 0, 0, 0)", Args: []float64{0, 0, 0}},
		{Name: "SetFont", Text: "italic bold 24px Go"},
		{Name: "SetTextBaseline", Text: "middle"},
		{Name: "SetGlobalAlpha", Args: []float64{0.5}},
	}
	if diff := cmp.Diff(want, rec.calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestFilter(t *testing.T) {
	c, rec := newRecorded(1)
	f := NewCanvasFilter().AddBlur(2).AddSepia(40)
	c.SetFilter(f)
	c.RemoveFilter()
	c.SetFilter(nil)

	want := []string{"blur(2px) sepia(40%)", "none", "none"}
	var got []string
	for _, cl := range rec.named("SetFilter") {
		got = append(got, cl.Text)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("filters mismatch (-want +got):\n%s", diff)
	}
}

func TestSetClipRegion(t *testing.T) {
	c, rec := newRecorded(2)
	c.SetClipRegion(1, 2, 3, 4)
	want := []call{
		{Name: "BeginPath"},
		{Name: "Rect", Args: []float64{2, 4, 6, 8}},
		{Name: "ClosePath"},
		{Name: "Clip"},
	}
	if diff := cmp.Diff(want, rec.calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestDrawLine(t *testing.T) {
	c, rec := newRecorded(2)
	c.DrawLine(0, 1, 5, 6)
	want := []string{"BeginPath", "MoveTo", "LineTo", "ClosePath", "Stroke"}
	if diff := cmp.Diff(want, rec.names()); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
	if got := rec.named("LineTo")[0].Args; got[0] != 10 || got[1] != 12 {
		t.Errorf("LineTo args = %v", got)
	}
}

func TestDrawRoundRect(t *testing.T) {
	tests := []struct {
		name   string
		radius CornerRadii
		first  []float64
	}{
		{"uniform", Radius(5), []float64{15, 20}},
		{"corners", Corners{TopLeft: 1, TopRight: 2, BottomRight: 3, BottomLeft: 4}, []float64{11, 20}},
		{"nil", nil, []float64{10, 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newRecorded(1)
			c.DrawRoundRect(10, 20, 100, 50, tt.radius, true, true)

			want := []string{
				"BeginPath", "MoveTo",
				"LineTo", "QuadraticCurveTo",
				"LineTo", "QuadraticCurveTo",
				"LineTo", "QuadraticCurveTo",
				"LineTo", "QuadraticCurveTo",
				"ClosePath", "Fill", "Stroke",
			}
			if diff := cmp.Diff(want, rec.names()); diff != "" {
				t.Errorf("calls mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.first, rec.named("MoveTo")[0].Args); diff != "" {
				t.Errorf("MoveTo mismatch (-want +got):\n%s", diff)
			}
			if c.path.IsPathOpen() {
				t.Error("path left open")
			}
		})
	}
}

func TestDrawRoundRectCorners(t *testing.T) {
	c, rec := newRecorded(1)
	c.DrawRoundRect(0, 0, 100, 50, Corners{TopLeft: 1, TopRight: 2, BottomRight: 3, BottomLeft: 4}, false, true)

	quads := rec.named("QuadraticCurveTo")
	want := [][]float64{
		{100, 0, 100, 2},
		{100, 50, 97, 50},
		{0, 50, 0, 46},
		{0, 0, 1, 0},
	}
	for i, q := range quads {
		if diff := cmp.Diff(want[i], q.Args); diff != "" {
			t.Errorf("corner %d mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestDrawText(t *testing.T) {
	c, rec := newRecorded(2)
	c.DrawText("hi", 1, 2, 0, true, false)
	c.DrawText("hi", 1, 2, 50, false, true)
	c.DrawText("hi", 1, 2, -1, false, false)

	want := []call{
		{Name: "FillText", Text: "hi", Args: []float64{2, 4, 0}},
		{Name: "StrokeText", Text: "hi", Args: []float64{2, 4, 100}},
	}
	if diff := cmp.Diff(want, rec.calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestMeasureTextIsLogical(t *testing.T) {
	c, rec := newRecorded(2)
	rec.charWidth = 20
	if got := c.MeasureText("abc").Width; got != 30 {
		t.Errorf("MeasureText width = %v, want 30", got)
	}
}

func TestDrawWrappedText(t *testing.T) {
	for _, ratio := range []float64{1, 2} {
		c, rec := newRecorded(ratio)
		// 10 logical units per byte at any ratio
		rec.charWidth = 10 * ratio

		c.DrawWrappedText("aa bb cc", 0, 10, 60, 20, true, false)

		want := []call{
			{Name: "FillText", Text: "aa bb ", Args: []float64{0, 10 * ratio, 0}},
			{Name: "FillText", Text: "cc ", Args: []float64{0, 30 * ratio, 0}},
		}
		if diff := cmp.Diff(want, rec.calls); diff != "" {
			t.Errorf("ratio %v: calls mismatch (-want +got):\n%s", ratio, diff)
		}
	}
}

func TestDrawWrappedTextLongFirstWord(t *testing.T) {
	c, rec := newRecorded(1)
	c.DrawWrappedText("extraordinarily", 0, 0, 20, 10, true, false)
	calls := rec.named("FillText")
	if len(calls) != 1 || calls[0].Text != "extraordinarily " {
		t.Errorf("calls = %v", calls)
	}
}

func TestGradients(t *testing.T) {
	c, rec := newRecorded(2)
	steps := []ColorStep{{1, "blue"}, {0, "red"}}

	lin := c.CreateLinearGradient(0, 1, 2, 3, steps)
	rad := c.CreateRadialGradient(0, 1, 2, 3, 4, 5, steps)

	want := []call{
		{Name: "CreateLinearGradient", Args: []float64{0, 2, 4, 6}},
		{Name: "CreateRadialGradient", Args: []float64{0, 2, 8, 4, 6, 10}},
	}
	if diff := cmp.Diff(want, rec.calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
	for _, fs := range []*FillStyle{lin, rad} {
		if !fs.IsValid() {
			t.Error("gradient style invalid")
		}
		if diff := cmp.Diff(steps, fs.Value.(*fakeGradient).stops); diff != "" {
			t.Errorf("stops not applied in order (-want +got):\n%s", diff)
		}
	}
}

func TestCreatePattern(t *testing.T) {
	c, rec := newRecorded(1)
	src, _ := newRecorded(1)

	if fs := c.CreatePattern(src, RepeatX); !fs.IsValid() {
		t.Error("pattern style invalid")
	}
	rec.noPattern = true
	if fs := c.CreatePattern(src, Repeat); fs.IsValid() {
		t.Error("failed pattern reported valid")
	}
	if fs := c.CreatePattern(nil, Repeat); fs.IsValid() {
		t.Error("nil source reported valid")
	}
}

func TestDrawImageCanvasSource(t *testing.T) {
	src := NewCanvas(WithBackend(newFakeBackend(2)))
	src.ResizeCanvas(10, 5)

	c, rec := newRecorded(1)
	c.DrawImage(src, 1, 2)
	c.DrawScaledImage(src, 0, 0, 4, 4, 1, 1, 2, 2)

	want := []call{
		{Name: "DrawImage", Args: []float64{0, 0, 20, 10, 1, 2, 10, 5}},
		{Name: "DrawImage", Args: []float64{1, 1, 2, 2, 0, 0, 4, 4}},
	}
	if diff := cmp.Diff(want, rec.calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestToBase64(t *testing.T) {
	c := NewCanvas(WithBackend(newFakeBackend(1)))
	if got := c.ToBase64(); got != "data:," {
		t.Errorf("empty ToBase64() = %q", got)
	}
	c.ResizeCanvas(1, 1)
	if got := c.ToBase64(); !strings.HasPrefix(got, "data:image/png;base64,") {
		t.Errorf("ToBase64() = %q", got)
	}
}

func TestToBlobYieldsOnce(t *testing.T) {
	b := newFakeBackend(1)
	b.ctx.blob = &Blob{Type: "image/png", Data: []byte{1, 2, 3}}
	c := NewCanvas(WithBackend(b))

	ch := c.ToBlob("", 0)
	got, ok := <-ch
	if !ok || got.Size() != 3 {
		t.Fatalf("first value = %v, %v", got, ok)
	}
	if _, ok := <-ch; ok {
		t.Error("channel yielded a second value")
	}

	b.ctx.blob = nil
	if got := <-c.ToBlob("image/png", 1); got != nil {
		t.Errorf("failed encode yielded %v", got)
	}
}

func TestRasterEndToEnd(t *testing.T) {
	c := NewCanvas(WithBackend(raster.NewBackend()), WithPixelRatio(2))
	c.ResizeCanvas(10, 8)
	c.SetFillStyle(NewFillStyle(Color("#00ff00")))
	c.DrawRect(0, 0, 10, 8, true, false)

	blob := <-c.ToBlob("image/png", 0)
	if blob == nil {
		t.Fatal("ToBlob returned nil")
	}
	img, err := png.Decode(bytes.NewReader(blob.Data))
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 20 || b.Dy() != 16 {
		t.Errorf("device size = %v, want 20x16", b)
	}
	if _, g, _, a := img.At(10, 8).RGBA(); g>>8 != 255 || a>>8 != 255 {
		t.Errorf("pixel = %v", img.At(10, 8))
	}
}
