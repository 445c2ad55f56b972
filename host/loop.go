package host

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gogpu/canvas"
	"github.com/gogpu/canvas/component"
)

// Defaults for NewLoop.
const (
	DefaultFrameInterval = time.Second / 60
	DefaultBufferSize    = 1024
)

// LoopOption configures a Loop.
type LoopOption func(*loopOptions)

type loopOptions struct {
	interval time.Duration
	buffer   int
}

// WithFrameInterval sets the period between frame ticks.
func WithFrameInterval(d time.Duration) LoopOption {
	return func(o *loopOptions) {
		if d > 0 {
			o.interval = d
		}
	}
}

// WithBufferSize sets how many dispatched events may queue before new
// ones are dropped.
func WithBufferSize(n int) LoopOption {
	return func(o *loopOptions) {
		if n > 0 {
			o.buffer = n
		}
	}
}

// Loop is a real-time component.Host. Run executes posted callbacks,
// timers, frame callbacks and dispatched events one at a time on the
// goroutine that calls it. Post and Dispatch may be called from any
// goroutine; the component.Host methods must be called from callbacks
// running on the loop or before Run starts.
type Loop struct {
	interval time.Duration
	start    time.Time
	events   chan component.PointerEvent
	wake     chan struct{}

	mu        sync.Mutex
	tasks     []func()
	frames    []func()
	listeners listeners
	mounted   *canvas.Canvas
}

var _ component.Host = (*Loop)(nil)

// NewLoop creates a loop. Its clock starts at creation.
func NewLoop(opts ...LoopOption) *Loop {
	o := loopOptions{interval: DefaultFrameInterval, buffer: DefaultBufferSize}
	for _, opt := range opts {
		opt(&o)
	}
	return &Loop{
		interval:  o.interval,
		start:     time.Now(),
		events:    make(chan component.PointerEvent, o.buffer),
		wake:      make(chan struct{}, 1),
		listeners: make(listeners),
	}
}

// Run processes callbacks until ctx is done and returns ctx.Err().
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	canvas.Logger().Debug("host: loop started", "interval", l.interval)
	for {
		select {
		case <-ctx.Done():
			canvas.Logger().Debug("host: loop stopped", "err", ctx.Err())
			return ctx.Err()
		case <-l.wake:
			l.runTasks()
		case e := <-l.events:
			l.mu.Lock()
			subs := l.listeners.snapshot(e.Type)
			l.mu.Unlock()
			deliver(subs, e)
		case <-ticker.C:
			l.runFrames()
		}
	}
}

// Post schedules fn to run on the loop. It never blocks.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.tasks = append(l.tasks, fn)
	l.mu.Unlock()
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Dispatch queues a pointer event for delivery on the loop. Events are
// dropped when the buffer is full so that producers never block.
func (l *Loop) Dispatch(e component.PointerEvent) {
	select {
	case l.events <- e:
	default:
		canvas.Logger().Warn("host: event buffer full, dropping event", "type", e.Type)
	}
}

func (l *Loop) Mount(c *canvas.Canvas) {
	l.mu.Lock()
	l.mounted = c
	l.mu.Unlock()
}

// Mounted returns the canvas passed to the last Mount call.
func (l *Loop) Mounted() *canvas.Canvas {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.mounted
}

func (l *Loop) Listen(t component.EventType, fn func(component.PointerEvent)) func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	remove := l.listeners.add(t, fn)
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		remove()
	}
}

func (l *Loop) RequestFrame(fn func()) {
	l.mu.Lock()
	l.frames = append(l.frames, fn)
	l.mu.Unlock()
}

func (l *Loop) AfterFunc(d time.Duration, fn func()) component.Timer {
	t := &loopTimer{}
	t.t = time.AfterFunc(d, func() {
		l.Post(func() {
			if !t.stopped.Load() {
				fn()
			}
		})
	})
	return t
}

func (l *Loop) Now() time.Duration { return time.Since(l.start) }

func (l *Loop) runTasks() {
	l.mu.Lock()
	tasks := l.tasks
	l.tasks = nil
	l.mu.Unlock()
	for _, fn := range tasks {
		fn()
	}
}

func (l *Loop) runFrames() {
	l.mu.Lock()
	frames := l.frames
	l.frames = nil
	l.mu.Unlock()
	for _, fn := range frames {
		fn()
	}
}

// loopTimer wraps a runtime timer whose callback is posted to the loop.
// stopped also covers the window where the timer has fired but the
// posted callback has not run yet.
type loopTimer struct {
	t       *time.Timer
	stopped atomic.Bool
}

func (t *loopTimer) Stop() bool {
	if t.stopped.Swap(true) {
		return false
	}
	return t.t.Stop()
}
