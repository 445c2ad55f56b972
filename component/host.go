package component

import (
	"time"

	"github.com/gogpu/canvas"
)

// EventType identifies a pointer event delivered by an Element.
type EventType int

const (
	PointerDown EventType = iota
	PointerMove
	PointerUp
	Click
)

func (t EventType) String() string {
	switch t {
	case PointerDown:
		return "pointerdown"
	case PointerMove:
		return "pointermove"
	case PointerUp:
		return "pointerup"
	case Click:
		return "click"
	default:
		return "unknown"
	}
}

// PointerEvent is a pointer event in logical units relative to the
// element's top-left corner.
type PointerEvent struct {
	Type   EventType
	X, Y   float64
	Button int
}

// Element is the host node a component draws into.
type Element interface {
	// Mount attaches the canvas as the element's drawing node.
	Mount(c *canvas.Canvas)

	// Listen subscribes fn to events of type t and returns a function
	// that removes the subscription.
	Listen(t EventType, fn func(PointerEvent)) (remove func())
}

// Timer is a pending AfterFunc callback.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the
	// call stopped the timer.
	Stop() bool
}

// Scheduler runs callbacks on the host's UI goroutine.
type Scheduler interface {
	// RequestFrame runs fn once before the next repaint.
	RequestFrame(fn func())

	// AfterFunc runs fn once after d has elapsed.
	AfterFunc(d time.Duration, fn func()) Timer

	// Now returns a monotonic time relative to an arbitrary origin.
	Now() time.Duration
}

// Host is the framework collaborator that embeds a component.
type Host interface {
	Element
	Scheduler
}
