package raster

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"github.com/gogpu/canvas/native"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Supported encoder MIME types.
const (
	MimePNG  = "image/png"
	MimeJPEG = "image/jpeg"
	MimeBMP  = "image/bmp"
	MimeTIFF = "image/tiff"
)

// DefaultJPEGQuality is used when the requested quality is outside (0, 1].
const DefaultJPEGQuality = 0.92

// normalizeMime maps a requested type to a supported one. Unknown types
// fall back to PNG.
func normalizeMime(mime string) string {
	switch m := strings.ToLower(strings.TrimSpace(mime)); m {
	case MimeJPEG, "image/jpg":
		return MimeJPEG
	case MimeBMP, MimeTIFF:
		return m
	}
	return MimePNG
}

// encodeImage writes img in the given format and returns the MIME type
// actually used.
func encodeImage(w io.Writer, img image.Image, mime string, quality float64) (string, error) {
	mime = normalizeMime(mime)
	var err error
	switch mime {
	case MimeJPEG:
		if quality <= 0 || quality > 1 {
			quality = DefaultJPEGQuality
		}
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: max(1, int(quality*100+0.5))})
	case MimeBMP:
		err = bmp.Encode(w, img)
	case MimeTIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		err = png.Encode(w, img)
	}
	if err != nil {
		return mime, fmt.Errorf("raster: encode %s: %w", mime, err)
	}
	return mime, nil
}

// ToDataURL encodes the pixels as a data URL. An empty context yields "data:,".
func (c *Context) ToDataURL(mime string, quality float64) string {
	if c.empty() {
		return "data:,"
	}
	var buf bytes.Buffer
	used, err := encodeImage(&buf, c.img, mime, quality)
	if err != nil {
		c.backend.logger().Warn("raster: data url encoding failed", "err", err)
		return "data:,"
	}
	return "data:" + used + ";base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

// ToBlob encodes a snapshot of the pixels in the background and calls done
// exactly once, with nil when the context is empty or encoding fails.
func (c *Context) ToBlob(mime string, quality float64, done func(*native.Blob)) {
	if done == nil {
		return
	}
	if c.empty() {
		go done(nil)
		return
	}
	snap := c.Image()
	log := c.backend.logger()
	go func() {
		var buf bytes.Buffer
		used, err := encodeImage(&buf, snap, mime, quality)
		if err != nil {
			log.Warn("raster: blob encoding failed", "err", err)
			done(nil)
			return
		}
		done(&native.Blob{Type: used, Data: buf.Bytes()})
	}()
}
