// Package component provides the base for interactive canvas widgets.
//
// A Base owns a Canvas, attaches it to a Host element and drives a view
// through an on-demand or continuous draw loop. It also turns raw pointer
// events into click and drag-and-drop gestures. Views implement Drawer
// and, optionally, any of the hook interfaces (FrameUpdater, Resizer,
// Clicker, DragStarter, DragMover, Dropper).
//
//	b := component.New(h, view, component.WithDrawMode(component.Continuous))
//	b.Init()
//	defer b.Dispose()
//	b.Resize(320, 200)
//	b.EnableDragAndDrop(true)
//
// All methods of Base, and every callback it hands to the Host, must run
// on the host's UI goroutine.
package component
