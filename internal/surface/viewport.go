package surface

import "sync"

// Host reports the visible size of the global surface.
// A terminal screen is the usual implementation.
type Host interface {
	Size() (width, height int)
}

// Viewport is the global/default surface. It owns the scroll offset for the
// content presented within the host's visible area and fans scroll
// notifications out to subscribers.
type Viewport struct {
	mu     sync.Mutex
	host   Host
	scroll Offset
	list   notifyList
}

// NewViewport creates a viewport backed by host. A nil host is valid and
// means the viewport is not measurable yet; Measure reports ok=false until
// a host is attached.
func NewViewport(host Host) *Viewport {
	return &Viewport{host: host}
}

// SetHost attaches or replaces the viewport's host.
func (v *Viewport) SetHost(host Host) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.host = host
}

// Measure returns the host's visible size, or ok=false when no host is
// attached.
func (v *Viewport) Measure() (Size, bool) {
	v.mu.Lock()
	host := v.host
	v.mu.Unlock()

	if host == nil {
		return Size{}, false
	}
	w, h := host.Size()
	return Size{Width: w, Height: h}, true
}

// ReadScroll returns the current scroll offset.
func (v *Viewport) ReadScroll() Offset {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.scroll
}

// WriteScroll commands a new scroll offset, clamped to >= 0.
// Subscribers are notified only when the offset actually changes.
func (v *Viewport) WriteScroll(o Offset) {
	o = clampOffset(o)

	v.mu.Lock()
	if o == v.scroll {
		v.mu.Unlock()
		return
	}
	v.scroll = o
	fns := v.list.snapshot()
	v.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// ScrollBy adjusts the scroll offset by the given deltas.
func (v *Viewport) ScrollBy(dLeft, dTop int) {
	v.mu.Lock()
	cur := v.scroll
	v.mu.Unlock()

	v.WriteScroll(Offset{Left: cur.Left + dLeft, Top: cur.Top + dTop})
}

// Subscribe attaches a scroll listener and returns its cancel function.
func (v *Viewport) Subscribe(fn func()) (cancel func()) {
	if fn == nil {
		return func() {}
	}

	v.mu.Lock()
	id := v.list.add(fn)
	v.mu.Unlock()

	return func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		v.list.remove(id)
	}
}

// Valid always reports true; the global surface outlives every consumer.
func (v *Viewport) Valid() bool {
	return true
}
