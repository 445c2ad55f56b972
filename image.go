package canvas

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoding
	_ "image/jpeg" // register JPEG decoding
	_ "image/png"  // register PNG decoding
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gogpu/canvas/native"
	_ "golang.org/x/image/bmp"  // register BMP decoding
	_ "golang.org/x/image/tiff" // register TIFF decoding
	_ "golang.org/x/image/webp" // register WebP decoding
)

// ImageSource is anything that exposes a blittable native handle:
// *Image, Bitmap, Element, VideoFrame and *Canvas.
type ImageSource interface {
	// NativeImage returns the handle passed to the native context.
	NativeImage() native.ImageSource
	// ImageSize returns the natural size in logical units.
	ImageSize() (width, height int)
}

var (
	_ ImageSource = (*Image)(nil)
	_ ImageSource = Bitmap{}
	_ ImageSource = Element{}
	_ ImageSource = VideoFrame{}
	_ ImageSource = (*Canvas)(nil)
)

// Image is a decoded image file.
type Image struct {
	img    image.Image
	format string
}

// DecodeImage decodes a PNG, JPEG, GIF, BMP, TIFF or WebP image.
func DecodeImage(r io.Reader) (*Image, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("%w: %w", ErrUnsupportedImage, err)
		}
		return nil, fmt.Errorf("canvas: decode image: %w", err)
	}
	return &Image{img: img, format: format}, nil
}

// LoadImage reads and decodes an image file.
func LoadImage(path string) (*Image, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("canvas: open image: %w", err)
	}
	return DecodeImage(bytes.NewReader(data))
}

// Format returns the name of the decoded format, such as "png".
func (i *Image) Format() string { return i.format }

// Image returns the decoded pixels.
func (i *Image) Image() image.Image { return i.img }

func (i *Image) NativeImage() native.ImageSource { return native.Bitmap{Image: i.img} }

func (i *Image) ImageSize() (int, int) {
	b := i.img.Bounds()
	return b.Dx(), b.Dy()
}

// Bitmap is an in-memory image.
type Bitmap struct {
	Image image.Image
}

func (b Bitmap) NativeImage() native.ImageSource { return native.Bitmap{Image: b.Image} }

func (b Bitmap) ImageSize() (int, int) { return native.Bitmap{Image: b.Image}.NaturalSize() }

// Element wraps a handle owned by the backend, such as an <img> or
// <canvas> element of the browser backend.
type Element struct {
	Handle native.ImageSource
}

func (e Element) NativeImage() native.ImageSource { return e.Handle }

func (e Element) ImageSize() (int, int) {
	if e.Handle == nil {
		return 0, 0
	}
	return e.Handle.NaturalSize()
}

// VideoFrame is one decoded frame of a video.
type VideoFrame struct {
	Frame     image.Image
	Timestamp time.Duration
}

func (v VideoFrame) NativeImage() native.ImageSource { return native.Bitmap{Image: v.Frame} }

func (v VideoFrame) ImageSize() (int, int) { return native.Bitmap{Image: v.Frame}.NaturalSize() }

// contextImage exposes a native context that is not itself an image source.
type contextImage struct {
	ctx native.Context2D
}

func (c contextImage) NaturalSize() (int, int) { return c.ctx.Size() }

// NativeImage returns the backing context, so drawing one canvas onto
// another blits its device pixels.
func (c *Canvas) NativeImage() native.ImageSource {
	if src, ok := c.ctx.(native.ImageSource); ok {
		return src
	}
	return contextImage{ctx: c.ctx}
}

// ImageSize returns the logical size.
func (c *Canvas) ImageSize() (int, int) { return c.width, c.height }

// nativeSize is the size of the native handle in its own pixels.
func nativeSize(src ImageSource) (float64, float64) {
	w, h := src.NativeImage().NaturalSize()
	return float64(w), float64(h)
}

// DrawImage draws src at its natural size.
func (c *Canvas) DrawImage(src ImageSource, x, y float64) {
	w, h := src.ImageSize()
	c.DrawImageSize(src, x, y, float64(w), float64(h))
}

// DrawImageSize draws all of src into the given logical rectangle.
func (c *Canvas) DrawImageSize(src ImageSource, x, y, width, height float64) {
	sw, sh := nativeSize(src)
	c.dev.drawImage(src.NativeImage(), 0, 0, sw, sh, x, y, width, height)
}

// DrawScaledImage draws the source rectangle, given in the source's own
// pixels, into the logical rectangle (x, y, width, height).
func (c *Canvas) DrawScaledImage(src ImageSource, x, y, width, height, srcX, srcY, srcWidth, srcHeight float64) {
	c.dev.drawImage(src.NativeImage(), srcX, srcY, srcWidth, srcHeight, x, y, width, height)
}
