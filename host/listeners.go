package host

import "github.com/gogpu/canvas/component"

type listener struct {
	fn func(component.PointerEvent)
}

// listeners is a per-event-type subscription list. Not safe for
// concurrent use.
type listeners map[component.EventType][]*listener

func (ls listeners) add(t component.EventType, fn func(component.PointerEvent)) func() {
	l := &listener{fn: fn}
	ls[t] = append(ls[t], l)
	return func() { ls.remove(t, l) }
}

func (ls listeners) remove(t component.EventType, l *listener) {
	list := ls[t]
	for i, x := range list {
		if x == l {
			ls[t] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

// snapshot returns the subscribers for t at the time of the call, so
// callbacks may subscribe or unsubscribe while an event is delivered.
func (ls listeners) snapshot(t component.EventType) []*listener {
	return append([]*listener(nil), ls[t]...)
}

func deliver(subs []*listener, e component.PointerEvent) {
	for _, l := range subs {
		l.fn(e)
	}
}
