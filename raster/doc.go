// Package raster is a pure Go implementation of the canvas 2D rendering
// context on top of an in-memory RGBA image.
//
// Importing the package registers it with the native backend registry at
// software priority, so it is picked whenever no browser context exists:
//
//	import _ "github.com/gogpu/canvas/raster"
//
// Paths are flattened and anti-aliased by rasterx. Text is shaped with
// go-text/typesetting and drawn from sfnt outlines; the Go font family is
// built in and further faces can be added with RegisterFont. Every drawing
// operation is rendered into a scratch layer which then passes through the
// CSS filter chain, the shadow and the clip mask before being composited
// with the global alpha.
//
// A Context is not safe for concurrent use.
package raster
