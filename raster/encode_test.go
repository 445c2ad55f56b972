package raster

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/gogpu/canvas/native"
	"golang.org/x/image/bmp"
)

func TestToDataURL(t *testing.T) {
	tests := []struct {
		mime   string
		prefix string
	}{
		{"image/png", "data:image/png;base64,"},
		{"", "data:image/png;base64,"},
		{"image/gif", "data:image/png;base64,"},
		{"image/jpeg", "data:image/jpeg;base64,"},
		{"IMAGE/JPG", "data:image/jpeg;base64,"},
		{"image/bmp", "data:image/bmp;base64,"},
		{"image/tiff", "data:image/tiff;base64,"},
	}
	c := NewContext(3, 2)
	c.SetFillStyle(native.Color("red"))
	c.FillRect(0, 0, 3, 2)
	for _, tt := range tests {
		t.Run(tt.mime, func(t *testing.T) {
			got := c.ToDataURL(tt.mime, 0.8)
			if !strings.HasPrefix(got, tt.prefix) {
				t.Errorf("ToDataURL(%q) = %.40q, want prefix %q", tt.mime, got, tt.prefix)
			}
		})
	}
}

func TestToDataURLRoundTrip(t *testing.T) {
	c := NewContext(3, 2)
	c.SetFillStyle(native.Color("red"))
	c.FillRect(0, 0, 3, 2)

	url := c.ToDataURL("image/png", 0)
	data, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(url, "data:image/png;base64,"))
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Errorf("decoded bounds = %v", b)
	}
	if r, _, _, a := img.At(1, 1).RGBA(); r>>8 != 255 || a>>8 != 255 {
		t.Errorf("decoded pixel = %v", img.At(1, 1))
	}
}

func TestToDataURLEmpty(t *testing.T) {
	if got := NewContext(0, 5).ToDataURL("image/png", 0); got != "data:," {
		t.Errorf("ToDataURL() = %q, want %q", got, "data:,")
	}
}

func waitBlob(t *testing.T, c *Context, mime string) *native.Blob {
	t.Helper()
	ch := make(chan *native.Blob, 1)
	c.ToBlob(mime, 0, func(b *native.Blob) { ch <- b })
	select {
	case b := <-ch:
		return b
	case <-time.After(5 * time.Second):
		t.Fatal("ToBlob callback not invoked")
	}
	return nil
}

func TestToBlob(t *testing.T) {
	c := NewContext(4, 4)
	c.FillRect(0, 0, 4, 4)

	b := waitBlob(t, c, "image/bmp")
	if b == nil {
		t.Fatal("ToBlob returned nil")
	}
	if b.Type != MimeBMP {
		t.Errorf("Type = %q", b.Type)
	}
	img, err := bmp.Decode(bytes.NewReader(b.Data))
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds() != image.Rect(0, 0, 4, 4) {
		t.Errorf("bounds = %v", img.Bounds())
	}
}

func TestToBlobEmpty(t *testing.T) {
	if b := waitBlob(t, NewContext(0, 0), "image/png"); b != nil {
		t.Errorf("ToBlob on empty context = %+v, want nil", b)
	}
}

func TestToBlobSnapshot(t *testing.T) {
	c := NewContext(2, 2)
	ch := make(chan *native.Blob, 1)
	c.ToBlob("image/png", 0, func(b *native.Blob) { ch <- b })
	// drawing after the call must not affect the encoded image
	c.SetFillStyle(native.Color("red"))
	c.FillRect(0, 0, 2, 2)

	b := <-ch
	img, err := png.Decode(bytes.NewReader(b.Data))
	if err != nil {
		t.Fatal(err)
	}
	if _, _, _, a := img.At(0, 0).RGBA(); a != 0 {
		t.Errorf("snapshot alpha = %d, want 0", a)
	}
}
