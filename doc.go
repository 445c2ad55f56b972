// Package canvas provides a pixel-ratio aware 2D drawing surface modelled
// on the HTML canvas 2D context.
//
// # Quick Start
//
//	import "github.com/gogpu/canvas"
//
//	c := canvas.NewCanvas(canvas.WithPixelRatio(2))
//	c.ResizeCanvas(320, 200)
//
//	c.SetFillStyle(canvas.NewFillStyle(canvas.Color("#3366ff")))
//	c.DrawRoundRect(10, 10, 120, 60, canvas.Radius(8), true, false)
//
//	c.SetFont(canvas.NewCanvasFont())
//	c.DrawText("hello", 20, 100, 0, true, false)
//
//	blob := <-c.ToBlob("image/png", 0)
//
// # Units
//
// Every coordinate and length passed to a Canvas is in logical units.
// The backing store holds Width()*PixelRatio() by Height()*PixelRatio()
// device pixels, and the conversion happens in exactly one place before a
// call reaches the native context. Scale factors and angles are unit-less.
//
// # Backends
//
// Drawing is forwarded to a native.Context2D created by a native.Backend.
// The pure Go raster backend is always registered; the jscanvas backend
// registers itself with a higher priority when built for js/wasm.
// NewCanvas picks the best available backend unless WithBackend is given.
//
// # Components
//
// Package component builds interactive widgets on top of a Canvas: an
// on-demand or continuous draw loop and drag gesture recognition, driven
// by a host such as those in package host.
package canvas

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
