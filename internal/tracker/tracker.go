package tracker

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/scrollmux/internal/geometry"
	"github.com/dshills/scrollmux/internal/mux"
	"github.com/dshills/scrollmux/internal/surface"
)

// DefaultResetInterval is the quiet period after the last scroll event
// before the tracker reports isScrolling=false.
const DefaultResetInterval = 150 * time.Millisecond

// State is the tracker lifecycle state.
type State int32

const (
	// StateUninitialized means Start has not been called yet.
	StateUninitialized State = iota

	// StateIdle means the tracker is attached and no scroll is in flight.
	StateIdle

	// StateScrolling means a scroll event arrived within the reset interval.
	StateScrolling

	// StateDetached means Stop has been called; the tracker is inert.
	StateDetached
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateIdle:
		return "idle"
	case StateScrolling:
		return "scrolling"
	case StateDetached:
		return "detached"
	default:
		return "unknown"
	}
}

// Frame is the rendering callback contract: everything a presentation
// layer needs to draw dependent content for the current tracked state.
type Frame struct {
	Width  int
	Height int

	ScrollLeft int
	ScrollTop  int

	// IsScrolling gates expensive rendering work during active scroll.
	IsScrolling bool

	// OnChildScroll is the feedback guard entry point exposed to
	// descendant content. The argument is in the consumer's local
	// coordinate space.
	OnChildScroll func(scrollTop int)
}

// Tracker tracks one consumer's view of a scrollable surface.
type Tracker struct {
	mu sync.Mutex

	id       string
	mux      *mux.Multiplexer
	notifier *surface.ResizeNotifier

	surf surface.Surface
	elem surface.Element

	fallback      surface.Size
	resetInterval time.Duration

	onScroll func(surface.Offset)
	onResize func(surface.Size)
	render   func(Frame)

	size   surface.Size   // visible surface size
	offset surface.Offset // structural offset of the tracked element
	scroll surface.Offset // consumer-visible clamped scroll offsets

	state State

	// Debounce timer. timerGen invalidates in-flight fires that lost the
	// race against Stop or a replacing event.
	timer    *time.Timer
	timerGen uint64

	cancelResize func()
}

// New creates a tracker registered against nothing. Call Start to attach.
func New(m *mux.Multiplexer, n *surface.ResizeNotifier, opts ...Option) *Tracker {
	t := &Tracker{
		id:            uuid.New().String(),
		mux:           m,
		notifier:      n,
		resetInterval: DefaultResetInterval,
		state:         StateUninitialized,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// ID returns the tracker's unique identifier. With several consumers
// multiplexed onto one surface, the identifier is what tells their
// debug output apart.
func (t *Tracker) ID() string {
	return t.id
}

// String returns a debug description of the tracker.
func (t *Tracker) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fmt.Sprintf("tracker %s [%s] size=%dx%d offset=(%d,%d) scroll=(%d,%d)",
		t.id, t.state,
		t.size.Width, t.size.Height,
		t.offset.Left, t.offset.Top,
		t.scroll.Left, t.scroll.Top)
}

// State returns the current lifecycle state.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Size returns the tracked visible size.
func (t *Tracker) Size() surface.Size {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.size
}

// Offset returns the tracked element's structural offset.
func (t *Tracker) Offset() surface.Offset {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.offset
}

// Scroll returns the consumer-visible clamped scroll offsets.
func (t *Tracker) Scroll() surface.Offset {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.scroll
}

// IsScrolling reports whether a scroll burst is in flight.
func (t *Tracker) IsScrolling() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state == StateScrolling
}

// Start computes initial geometry, registers with the multiplexer, and
// subscribes to resize notifications. Starting without a surface is valid:
// the tracker renders from fallback geometry until SetSurface attaches one.
func (t *Tracker) Start() error {
	t.mu.Lock()
	switch t.state {
	case StateDetached:
		t.mu.Unlock()
		return ErrDetached
	case StateIdle, StateScrolling:
		t.mu.Unlock()
		return ErrAlreadyStarted
	}

	t.remeasureLocked()
	t.state = StateIdle
	surf := t.surf
	frame := t.frameLocked()
	t.mu.Unlock()

	if surf != nil && t.mux != nil {
		t.mux.Register(t, surf)
	}
	if t.notifier != nil {
		cancel := t.notifier.Subscribe(t.handleResize)
		t.mu.Lock()
		t.cancelResize = cancel
		t.mu.Unlock()
	}

	t.emit(frame)
	return nil
}

// Stop detaches the tracker: unregisters from the multiplexer,
// unsubscribes resize notifications, and cancels any pending debounce
// timer. Late-arriving dispatches are ignored. Idempotent.
func (t *Tracker) Stop() {
	t.mu.Lock()
	if t.state == StateDetached {
		t.mu.Unlock()
		return
	}
	started := t.state != StateUninitialized
	t.state = StateDetached
	t.timerGen++
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	surf := t.surf
	cancel := t.cancelResize
	t.cancelResize = nil
	t.mu.Unlock()

	if started && surf != nil && t.mux != nil {
		t.mux.Unregister(t, surf)
	}
	if cancel != nil {
		cancel()
	}
}

// HandleScroll implements mux.Observer. It recomputes the clamped scroll
// offsets, marks the tracker scrolling, notifies the consumer, and
// restarts the debounce timer. Dispatches against a torn-down tracker or
// a surface the tracker no longer observes are discarded.
func (t *Tracker) HandleScroll(s surface.Surface) {
	t.mu.Lock()
	if (t.state != StateIdle && t.state != StateScrolling) || s != t.surf {
		t.mu.Unlock()
		return
	}

	raw := geometry.MeasureScrollOffset(s)
	t.scroll = surface.Offset{
		Left: clampNonNegative(raw.Left - t.offset.Left),
		Top:  clampNonNegative(raw.Top - t.offset.Top),
	}
	t.state = StateScrolling
	t.restartTimerLocked()

	onScroll := t.onScroll
	scroll := t.scroll
	frame := t.frameLocked()
	t.mu.Unlock()

	if onScroll != nil {
		onScroll(scroll)
	}
	t.emit(frame)
}

// RequestScroll accepts a child-initiated scroll request in the consumer's
// local coordinate space. Requests matching the currently tracked
// scrollTop are suppressed; anything else is translated back into the
// surface's structural coordinates and written to the surface, whose
// resulting native notification re-enters the normal scroll path.
func (t *Tracker) RequestScroll(scrollTop int) {
	t.mu.Lock()
	if t.state != StateIdle && t.state != StateScrolling {
		t.mu.Unlock()
		return
	}
	if t.surf == nil || scrollTop == t.scroll.Top {
		t.mu.Unlock()
		return
	}
	surf := t.surf
	target := scrollTop + t.offset.Top
	t.mu.Unlock()

	cur := surf.ReadScroll()
	surf.WriteScroll(surface.Offset{Left: cur.Left, Top: target})
}

// SetSurface switches the tracker to a different surface. The observer
// moves in a single logical transition and geometry is recomputed against
// the new surface's origin. Before Start this only records the surface.
func (t *Tracker) SetSurface(s surface.Surface) {
	t.mu.Lock()
	old := t.surf
	if old == s {
		t.mu.Unlock()
		return
	}
	t.surf = s

	if t.state != StateIdle && t.state != StateScrolling {
		t.mu.Unlock()
		return
	}

	prev := t.size
	t.remeasureLocked()
	changed := t.size != prev
	onResize := t.onResize
	size := t.size
	frame := t.frameLocked()
	t.mu.Unlock()

	if t.mux != nil {
		t.mux.Move(t, old, s)
	}
	if changed && onResize != nil {
		onResize(size)
	}
	t.emit(frame)
}

// SetElement replaces the tracked element and recomputes its structural
// offset when attached.
func (t *Tracker) SetElement(elem surface.Element) {
	t.mu.Lock()
	t.elem = elem
	if t.state == StateIdle || t.state == StateScrolling {
		t.offset = geometry.MeasureOffset(t.elem, t.surf)
	}
	t.mu.Unlock()
}

// SetResetInterval adjusts the debounce quiet period. Non-positive values
// are ignored. Takes effect from the next scroll event.
func (t *Tracker) SetResetInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resetInterval = d
}

// handleResize remeasures geometry on a host resize notification. Only a
// genuine dimension change updates state and invokes the resize callback.
func (t *Tracker) handleResize(surface.Size) {
	t.mu.Lock()
	if t.state != StateIdle && t.state != StateScrolling {
		t.mu.Unlock()
		return
	}

	prev := t.size
	t.remeasureLocked()
	if t.size == prev {
		t.mu.Unlock()
		return
	}
	onResize := t.onResize
	size := t.size
	frame := t.frameLocked()
	t.mu.Unlock()

	if onResize != nil {
		onResize(size)
	}
	t.emit(frame)
}

// scrollIdle is the debounce timer callback. gen identifies the timer
// that scheduled it; a fire that lost the race against a replacing event
// or Stop is discarded.
func (t *Tracker) scrollIdle(gen uint64) {
	t.mu.Lock()
	if gen != t.timerGen || t.state != StateScrolling {
		t.mu.Unlock()
		return
	}
	t.state = StateIdle
	t.timer = nil
	frame := t.frameLocked()
	t.mu.Unlock()

	t.emit(frame)
}

// restartTimerLocked replaces the pending debounce timer. At most one
// timer is live at a time; timers never accumulate.
func (t *Tracker) restartTimerLocked() {
	if t.timer != nil {
		t.timer.Stop()
	}
	t.timerGen++
	gen := t.timerGen
	t.timer = time.AfterFunc(t.resetInterval, func() { t.scrollIdle(gen) })
}

// remeasureLocked recomputes size and structural offset from the current
// surface and fallback.
func (t *Tracker) remeasureLocked() {
	t.size = geometry.MeasureSurface(t.surf, t.fallback)
	t.offset = geometry.MeasureOffset(t.elem, t.surf)
}

// frameLocked builds the rendering callback payload for the current state.
func (t *Tracker) frameLocked() Frame {
	return Frame{
		Width:         t.size.Width,
		Height:        t.size.Height,
		ScrollLeft:    t.scroll.Left,
		ScrollTop:     t.scroll.Top,
		IsScrolling:   t.state == StateScrolling,
		OnChildScroll: t.RequestScroll,
	}
}

// emit invokes the rendering callback, if configured.
func (t *Tracker) emit(frame Frame) {
	if t.render != nil {
		t.render(frame)
	}
}

// clampNonNegative clamps v to >= 0. Timing skew between offset
// measurement and a scroll event can make the raw difference negative;
// consumers never see a negative offset.
func clampNonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
