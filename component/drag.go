package component

import "github.com/gogpu/canvas"

// dragState tracks drag-and-drop gesture recognition.
//
// A press arms a timer. If the pointer is released or moves further than
// the drag threshold before the timer fires, the gesture is a click or a
// swipe and no drag starts. Otherwise the view decides on expiry whether
// the press becomes a drag.
type dragState struct {
	enabled  bool
	remove   []func()
	timer    Timer
	dragging bool
	start    canvas.Point
}

// EnableDragAndDrop turns drag gesture recognition on or off. Listeners
// are attached at most once and removed when disabled. Before Init only
// the setting is recorded; Init attaches the listeners once the canvas is
// mounted.
func (b *Base) EnableDragAndDrop(enable bool) {
	b.drag.enabled = enable
	if !enable {
		b.detachDrag()
		return
	}
	b.attachDrag()
}

func (b *Base) attachDrag() {
	if !b.drag.enabled || b.drag.remove != nil || !b.initialized || b.disposed {
		return
	}
	b.drag.remove = []func(){
		b.host.Listen(PointerUp, b.pointerUp),
		b.host.Listen(PointerDown, b.pointerDown),
		b.host.Listen(PointerMove, b.pointerMove),
	}
}

func (b *Base) IsDragAndDropEnabled() bool { return b.drag.enabled }

func (b *Base) detachDrag() {
	b.cancelDragTimer()
	b.drag.dragging = false
	for _, remove := range b.drag.remove {
		remove()
	}
	b.drag.remove = nil
}

func (b *Base) cancelDragTimer() {
	if b.drag.timer != nil {
		b.drag.timer.Stop()
		b.drag.timer = nil
	}
}

func (b *Base) pointerDown(e PointerEvent) {
	b.cancelDragTimer()
	b.drag.start.SetPoint(e.X, e.Y)

	var t Timer
	t = b.host.AfterFunc(b.opts.dragTimeout, func() {
		if b.drag.timer != t || b.disposed {
			return
		}
		b.drag.timer = nil
		b.drag.dragging = false
		if s, ok := b.view.(DragStarter); ok {
			b.drag.dragging = s.OnDragStart(e)
		}
		b.logger().Debug("component: drag start", "x", e.X, "y", e.Y, "accepted", b.drag.dragging)
	})
	b.drag.timer = t
}

func (b *Base) pointerMove(e PointerEvent) {
	if b.drag.timer != nil {
		if b.drag.start.Distance(canvas.Pt(e.X, e.Y)) > b.opts.dragThreshold {
			b.cancelDragTimer()
			b.logger().Debug("component: drag abandoned", "x", e.X, "y", e.Y)
			return
		}
	}
	if b.drag.dragging {
		if m, ok := b.view.(DragMover); ok {
			m.OnDragMove(e)
		}
	}
}

func (b *Base) pointerUp(e PointerEvent) {
	if b.drag.timer != nil {
		b.cancelDragTimer()
		return
	}
	if b.drag.dragging {
		b.drag.dragging = false
		if d, ok := b.view.(Dropper); ok {
			d.OnDrop(e, b.drag.start)
		}
		b.logger().Debug("component: drop", "x", e.X, "y", e.Y)
	}
}
