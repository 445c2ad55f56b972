// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

import (
	"errors"
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type stubBackend struct{ name string }

func (stubBackend) NewContext() Context2D     { return nil }
func (stubBackend) DevicePixelRatio() float64 { return 1 }

func stubFactory(name string) Factory {
	return func() (Backend, error) { return stubBackend{name}, nil }
}

func failingFactory(err error) Factory {
	return func() (Backend, error) { return nil, err }
}

func unavailable() bool { return false }

func TestRegistryList(t *testing.T) {
	r := NewRegistry()
	r.Register("low", 10, stubFactory("low"), nil)
	r.Register("high", 100, stubFactory("high"), nil)
	r.Register("mid", 50, stubFactory("mid"), unavailable)

	if d := cmp.Diff([]string{"high", "mid", "low"}, r.List()); d != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", d)
	}
	if d := cmp.Diff([]string{"high", "low"}, r.Available()); d != "" {
		t.Errorf("Available() mismatch (-want +got):\n%s", d)
	}
}

func TestRegistryUnregister(t *testing.T) {
	r := NewRegistry()
	r.Register("temp", 10, stubFactory("temp"), nil)
	r.Unregister("temp")

	if got := r.List(); len(got) != 0 {
		t.Errorf("List() = %v after Unregister, want empty", got)
	}
}

func TestRegistryBest(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(r *Registry)
		want    string
		wantErr error
	}{
		{
			name:    "empty",
			setup:   func(*Registry) {},
			wantErr: ErrNoBackend,
		},
		{
			name: "highest priority wins",
			setup: func(r *Registry) {
				r.Register("software", PrioritySoftware, stubFactory("software"), nil)
				r.Register("browser", PriorityBrowser, stubFactory("browser"), nil)
			},
			want: "browser",
		},
		{
			name: "unavailable skipped",
			setup: func(r *Registry) {
				r.Register("software", PrioritySoftware, stubFactory("software"), nil)
				r.Register("browser", PriorityBrowser, stubFactory("browser"), unavailable)
			},
			want: "software",
		},
		{
			name: "failing factory falls through",
			setup: func(r *Registry) {
				r.Register("software", PrioritySoftware, stubFactory("software"), nil)
				r.Register("broken", PriorityBrowser, failingFactory(errors.New("boom")), nil)
			},
			want: "software",
		},
		{
			name: "nil backend falls through",
			setup: func(r *Registry) {
				r.Register("software", PrioritySoftware, stubFactory("software"), nil)
				r.Register("empty", PriorityBrowser, failingFactory(nil), nil)
			},
			want: "software",
		},
		{
			name: "all failing",
			setup: func(r *Registry) {
				r.Register("broken", PriorityBrowser, failingFactory(errors.New("boom")), nil)
			},
			wantErr: ErrNoBackend,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			tt.setup(r)

			b, err := r.Best()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Best() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Best() error = %v", err)
			}
			if got := b.(stubBackend).name; got != tt.want {
				t.Errorf("Best() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRegistryLookupUnknown(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Lookup("nope"); !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("Lookup() error = %v, want ErrUnknownBackend", err)
	}
}

func TestRegistryLookupNilBackend(t *testing.T) {
	r := NewRegistry()
	r.Register("empty", PrioritySoftware, failingFactory(nil), nil)
	b, err := r.Lookup("empty")
	if !errors.Is(err, ErrNoBackend) {
		t.Errorf("Lookup() error = %v, want ErrNoBackend", err)
	}
	if b != nil {
		t.Errorf("Lookup() = %v, want nil", b)
	}
}

func TestBitmapNaturalSize(t *testing.T) {
	b := Bitmap{Image: image.NewRGBA(image.Rect(2, 3, 12, 8))}
	w, h := b.NaturalSize()
	if w != 10 || h != 5 {
		t.Errorf("NaturalSize() = %d,%d, want 10,5", w, h)
	}

	w, h = Bitmap{}.NaturalSize()
	if w != 0 || h != 0 {
		t.Errorf("empty NaturalSize() = %d,%d, want 0,0", w, h)
	}
}

func TestBlobSize(t *testing.T) {
	var b *Blob
	if b.Size() != 0 {
		t.Error("nil blob should have size 0")
	}
	b = &Blob{Type: "image/png", Data: []byte{1, 2, 3}}
	if b.Size() != 3 {
		t.Errorf("Size() = %d, want 3", b.Size())
	}
}
