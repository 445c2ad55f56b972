package component

import (
	"time"

	"github.com/gogpu/canvas"
)

// Drawer renders a frame. elapsed is the time since the previous frame,
// zero for the first one. The canvas is translated by half a unit so that
// one-unit lines fall on pixel centers.
type Drawer interface {
	OnDraw(c *canvas.Canvas, elapsed time.Duration)
}

// FrameUpdater advances state before each frame is drawn.
type FrameUpdater interface {
	OnFrameUpdate(elapsed time.Duration)
}

// Resizer is notified after the canvas has been resized.
type Resizer interface {
	OnResize(width, height int)
}

// Clicker receives click events.
type Clicker interface {
	OnClick(e PointerEvent)
}

// DragStarter is asked whether a held press starts a drag. e is the
// pointer-down event.
type DragStarter interface {
	OnDragStart(e PointerEvent) bool
}

// DragMover receives pointer moves while dragging.
type DragMover interface {
	OnDragMove(e PointerEvent)
}

// Dropper receives the pointer-up event that ends a drag together with
// the position where the press started.
type Dropper interface {
	OnDrop(e PointerEvent, start canvas.Point)
}
