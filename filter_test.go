package canvas

import "testing"

func TestCanvasFilter(t *testing.T) {
	tests := []struct {
		name  string
		build func(f *CanvasFilter)
		want  string
	}{
		{"empty", func(*CanvasFilter) {}, "none"},
		{"blur", func(f *CanvasFilter) { f.AddBlur(4) }, "blur(4px)"},
		{"fractional", func(f *CanvasFilter) { f.AddBlur(1.5) }, "blur(1.5px)"},
		{
			"order preserved",
			func(f *CanvasFilter) {
				f.AddBrightness(120).AddContrast(80).AddGrayscale(10).AddHueRotation(90)
			},
			"brightness(120%) contrast(80%) grayscale(10%) hue-rotate(90deg)",
		},
		{
			"remaining functions",
			func(f *CanvasFilter) {
				f.AddInvert(100).AddOpacity(50).AddSaturation(200).AddSepia(30)
			},
			"invert(100%) opacity(50%) saturate(200%) sepia(30%)",
		},
		{
			"drop shadow and custom",
			func(f *CanvasFilter) {
				f.AddDropShadow(2, 3, 4, "rgba(0, 0, 0, 0.5)").AddCustomFilter("url(#glow)")
			},
			"drop-shadow(2px 3px 4px rgba(0, 0, 0, 0.5)) url(#glow)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewCanvasFilter()
			tt.build(f)
			if got := f.Filter(); got != tt.want {
				t.Errorf("Filter() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCanvasFilterReset(t *testing.T) {
	var f CanvasFilter
	f.AddBlur(1).AddSepia(2)
	f.Reset()
	if got := f.Filter(); got != "none" {
		t.Errorf("Filter() after Reset = %q, want none", got)
	}
	if f.Len() != 0 {
		t.Errorf("Len() after Reset = %d", f.Len())
	}
	f.AddInvert(10)
	if got := f.Filter(); got != "invert(10%)" {
		t.Errorf("Filter() after reuse = %q", got)
	}
}
