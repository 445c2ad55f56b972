// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package native defines the contract between the canvas façade and the
// platform 2D rendering context that actually produces pixels.
//
// A backend implements [Backend] and [Context2D] with the semantics of the
// HTML canvas 2D context: a transform and style state stack, an implicit
// current path, text, image blits, gradients, patterns and encoded export.
// The façade never talks to pixels directly.
//
// Backends register themselves with [Register]; [Best] returns the highest
// priority backend available on the running platform:
//
//	import _ "github.com/gogpu/canvas/raster" // pure Go, priority 10
//
//	b, err := native.Best()
package native
