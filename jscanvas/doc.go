// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package jscanvas implements native.Context2D on top of an HTML <canvas>
// element through syscall/js, and provides a browser component.Host.
//
// It is only built for GOOS=js GOARCH=wasm. Importing it registers the
// backend with native.PriorityBrowser, so canvas.NewCanvas prefers it
// over the raster backend:
//
//	import _ "github.com/gogpu/canvas/jscanvas"
//
// Mount components on an existing DOM node with NewHost:
//
//	h := jscanvas.NewHost(js.Global().Get("document").Call("getElementById", "app"))
//	b := component.New(h, view)
//	b.Init()
package jscanvas
