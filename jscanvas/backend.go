// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build js && wasm

package jscanvas

import (
	"log/slog"
	"sync/atomic"
	"syscall/js"

	"github.com/gogpu/canvas/native"
)

// Name is the registry name of the browser backend.
const Name = "jscanvas"

func init() {
	native.Register(Name, native.PriorityBrowser, func() (native.Backend, error) {
		return NewBackend(), nil
	}, available)
}

func available() bool {
	return js.Global().Get("document").Truthy()
}

var nopLogger = slog.New(slog.DiscardHandler)

// Backend creates contexts backed by new <canvas> elements.
type Backend struct {
	doc js.Value
	log atomic.Pointer[slog.Logger]
}

// NewBackend returns a backend for the current document.
func NewBackend() *Backend {
	return &Backend{doc: js.Global().Get("document")}
}

func (b *Backend) Name() string { return Name }

// NewContext creates a detached <canvas> element and its 2D context.
func (b *Backend) NewContext() native.Context2D {
	el := b.doc.Call("createElement", "canvas")
	return &Context{
		backend: b,
		canvas:  el,
		ctx:     el.Call("getContext", "2d"),
		ratio:   b.DevicePixelRatio(),
	}
}

// DevicePixelRatio returns window.devicePixelRatio, or 0 when it is unset.
func (b *Backend) DevicePixelRatio() float64 {
	r := js.Global().Get("devicePixelRatio")
	if r.Type() != js.TypeNumber {
		return 0
	}
	return r.Float()
}

// SetLogger sets the logger for warnings about rejected calls. nil
// disables logging.
func (b *Backend) SetLogger(l *slog.Logger) {
	if l == nil {
		l = nopLogger
	}
	b.log.Store(l)
}

func (b *Backend) logger() *slog.Logger {
	if l := b.log.Load(); l != nil {
		return l
	}
	return nopLogger
}
