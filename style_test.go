package canvas

import (
	"testing"

	"github.com/gogpu/canvas/native"
)

func TestFillStyleIsValid(t *testing.T) {
	tests := []struct {
		name  string
		style *FillStyle
		want  bool
	}{
		{"nil style", nil, false},
		{"unset", &FillStyle{}, false},
		{"none", NewFillStyle(None), false},
		{"color", NewFillStyle(Color("red")), true},
		{"empty color", NewFillStyle(Color("")), true},
		{"gradient", NewFillStyle(&fakeGradient{}), true},
	}
	for _, tt := range tests {
		if got := tt.style.IsValid(); got != tt.want {
			t.Errorf("%s: IsValid() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestStrokeStyleIsValid(t *testing.T) {
	tests := []struct {
		name  string
		style *StrokeStyle
		want  bool
	}{
		{"unset", &StrokeStyle{LineWidth: 2}, false},
		{"none", NewStrokeStyle(native.None, 2), false},
		{"color", NewStrokeStyle(Color("#000"), 0), true},
	}
	for _, tt := range tests {
		if got := tt.style.IsValid(); got != tt.want {
			t.Errorf("%s: IsValid() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestNewShadowStyle(t *testing.T) {
	s := NewShadowStyle()
	want := ShadowStyle{Color: "rgba(0, 0, 0, 0.7)", Blur: 10, OffsetX: 3, OffsetY: 3}
	if *s != want {
		t.Errorf("NewShadowStyle() = %+v, want %+v", *s, want)
	}
}

func TestRectPointInRect(t *testing.T) {
	r := NewRect(10, 20, 30, 40)
	tests := []struct {
		x, y float64
		want bool
	}{
		{10, 20, true},
		{40, 60, true},
		{40, 20, true},
		{10, 60, true},
		{25, 30, true},
		{9.99, 30, false},
		{40.01, 30, false},
		{25, 19.99, false},
		{25, 60.01, false},
	}
	for _, tt := range tests {
		if got := r.PointInRect(tt.x, tt.y); got != tt.want {
			t.Errorf("PointInRect(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}

	r.SetPosition(0, 0)
	if !r.PointInRect(30, 40) || r.PointInRect(31, 40) {
		t.Error("SetPosition did not move the rectangle")
	}
	r.SetRect(-5, -5, 0, 0)
	if !r.PointInRect(-5, -5) {
		t.Error("degenerate rectangle does not contain its corner")
	}
}

func TestPoint(t *testing.T) {
	var p Point
	p.SetPoint(3, 4)
	if p != Pt(3, 4) {
		t.Errorf("SetPoint gave %+v", p)
	}
	if d := p.Distance(Point{}); d != 5 {
		t.Errorf("Distance = %v, want 5", d)
	}
}

func TestCanvasFontString(t *testing.T) {
	tests := []struct {
		name  string
		font  *CanvasFont
		ratio float64
		want  string
	}{
		{"defaults", NewCanvasFont(), 1, "normal normal 13px Arial"},
		{"ratio", NewCanvasFont(), 2, "normal normal 26px Arial"},
		{"fractional", NewCanvasFont(), 1.5, "normal normal 19.5px Arial"},
		{
			"numeric weight",
			&CanvasFont{FontStyle: FontStyleItalic, FontWeight: Weight(700), FontSize: 10, FontFamily: "Go Mono"},
			1,
			"italic 700 10px Go Mono",
		},
		{"zero value", &CanvasFont{FontSize: 8, FontFamily: "serif"}, 1, "normal normal 8px serif"},
	}
	for _, tt := range tests {
		if got := tt.font.String(tt.ratio); got != tt.want {
			t.Errorf("%s: String(%v) = %q, want %q", tt.name, tt.ratio, got, tt.want)
		}
	}
}
