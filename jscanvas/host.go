// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build js && wasm

package jscanvas

import (
	"fmt"
	"syscall/js"
	"time"

	"github.com/gogpu/canvas"
	"github.com/gogpu/canvas/component"
)

// Host is a component.Host for a DOM node. Browser callbacks run on the
// JavaScript event loop, which is the UI goroutine for components.
type Host struct {
	parent js.Value
	node   js.Value
}

var _ component.Host = (*Host)(nil)

// NewHost returns a host that mounts canvases as children of parent.
func NewHost(parent js.Value) *Host {
	return &Host{parent: parent, node: parent}
}

var domEvents = map[component.EventType]string{
	component.PointerDown: "pointerdown",
	component.PointerMove: "pointermove",
	component.PointerUp:   "pointerup",
	component.Click:       "click",
}

// Mount appends the canvas element to the parent node. Canvases created
// by another backend cannot be mounted.
func (h *Host) Mount(c *canvas.Canvas) {
	ctx, ok := c.Context().(*Context)
	if !ok {
		canvas.Logger().Warn("jscanvas: cannot mount canvas of another backend", "context", fmt.Sprintf("%T", c.Context()))
		return
	}
	h.node = ctx.Element()
	h.parent.Call("appendChild", h.node)
}

// Listen subscribes to a DOM event on the mounted canvas. Positions are
// CSS pixels relative to the canvas, which equal logical units. Before
// Mount the listener is attached to the parent element.
func (h *Host) Listen(t component.EventType, fn func(component.PointerEvent)) func() {
	name, ok := domEvents[t]
	if !ok {
		return func() {}
	}
	target := h.node
	cb := js.FuncOf(func(_ js.Value, args []js.Value) any {
		if len(args) == 0 {
			return nil
		}
		e := args[0]
		fn(component.PointerEvent{
			Type:   t,
			X:      e.Get("offsetX").Float(),
			Y:      e.Get("offsetY").Float(),
			Button: e.Get("button").Int(),
		})
		return nil
	})
	target.Call("addEventListener", name, cb)

	removed := false
	return func() {
		if removed {
			return
		}
		removed = true
		target.Call("removeEventListener", name, cb)
		cb.Release()
	}
}

func (h *Host) RequestFrame(fn func()) {
	var cb js.Func
	cb = js.FuncOf(func(js.Value, []js.Value) any {
		cb.Release()
		fn()
		return nil
	})
	js.Global().Call("requestAnimationFrame", cb)
}

type timer struct {
	id      js.Value
	cb      js.Func
	pending bool
}

func (t *timer) Stop() bool {
	if !t.pending {
		return false
	}
	t.pending = false
	js.Global().Call("clearTimeout", t.id)
	t.cb.Release()
	return true
}

func (h *Host) AfterFunc(d time.Duration, fn func()) component.Timer {
	t := &timer{pending: true}
	t.cb = js.FuncOf(func(js.Value, []js.Value) any {
		if !t.pending {
			return nil
		}
		t.pending = false
		t.cb.Release()
		fn()
		return nil
	})
	t.id = js.Global().Call("setTimeout", t.cb, float64(d)/float64(time.Millisecond))
	return t
}

// Now returns performance.now().
func (h *Host) Now() time.Duration {
	ms := js.Global().Get("performance").Call("now").Float()
	return time.Duration(ms * float64(time.Millisecond))
}
