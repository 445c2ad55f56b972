package host

import (
	"time"

	"github.com/gogpu/canvas"
	"github.com/gogpu/canvas/component"
)

// Virtual is a component.Host with a manual clock. Frames run only on
// RunFrame and timers only on Advance, both on the calling goroutine.
// It is not safe for concurrent use.
type Virtual struct {
	now       time.Duration
	seq       uint64
	frames    []func()
	timers    []*virtualTimer
	listeners listeners
	mounted   *canvas.Canvas
}

var _ component.Host = (*Virtual)(nil)

// NewVirtual returns a Virtual host with its clock at zero.
func NewVirtual() *Virtual {
	return &Virtual{listeners: make(listeners)}
}

type virtualTimer struct {
	v       *Virtual
	when    time.Duration
	seq     uint64
	fn      func()
	stopped bool
}

func (t *virtualTimer) Stop() bool {
	if t.stopped {
		return false
	}
	t.stopped = true
	t.v.dropTimer(t)
	return true
}

func (v *Virtual) Mount(c *canvas.Canvas) { v.mounted = c }

// Mounted returns the canvas passed to the last Mount call.
func (v *Virtual) Mounted() *canvas.Canvas { return v.mounted }

func (v *Virtual) Listen(t component.EventType, fn func(component.PointerEvent)) func() {
	return v.listeners.add(t, fn)
}

// Listeners returns the number of subscribers for t.
func (v *Virtual) Listeners(t component.EventType) int { return len(v.listeners[t]) }

func (v *Virtual) RequestFrame(fn func()) { v.frames = append(v.frames, fn) }

func (v *Virtual) AfterFunc(d time.Duration, fn func()) component.Timer {
	if d < 0 {
		d = 0
	}
	v.seq++
	t := &virtualTimer{v: v, when: v.now + d, seq: v.seq, fn: fn}
	v.timers = append(v.timers, t)
	return t
}

func (v *Virtual) Now() time.Duration { return v.now }

// PendingFrames returns the number of frame callbacks waiting for RunFrame.
func (v *Virtual) PendingFrames() int { return len(v.frames) }

// RunFrame runs the frame callbacks requested so far and returns how
// many ran. Frames requested by those callbacks wait for the next call.
func (v *Virtual) RunFrame() int {
	frames := v.frames
	v.frames = nil
	for _, fn := range frames {
		fn()
	}
	return len(frames)
}

// Advance moves the clock forward by d, running due timers in order of
// their deadlines. Timers scheduled by those callbacks run too when they
// fall inside the window.
func (v *Virtual) Advance(d time.Duration) {
	end := v.now + d
	for {
		t := v.nextTimer(end)
		if t == nil {
			break
		}
		v.now = t.when
		t.stopped = true
		v.dropTimer(t)
		t.fn()
	}
	v.now = end
}

// Dispatch delivers e to the subscribers of its type.
func (v *Virtual) Dispatch(e component.PointerEvent) {
	deliver(v.listeners.snapshot(e.Type), e)
}

func (v *Virtual) nextTimer(end time.Duration) *virtualTimer {
	var next *virtualTimer
	for _, t := range v.timers {
		if t.when > end {
			continue
		}
		if next == nil || t.when < next.when || (t.when == next.when && t.seq < next.seq) {
			next = t
		}
	}
	return next
}

func (v *Virtual) dropTimer(t *virtualTimer) {
	for i, x := range v.timers {
		if x == t {
			v.timers = append(v.timers[:i], v.timers[i+1:]...)
			return
		}
	}
}
