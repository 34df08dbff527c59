package surface

import "sync"

// Box is a bounded scrollable container. It has a fixed structural position
// within a parent surface (or the document when parent is nil), a visible
// box size, and its own scroll offset over its content.
//
// A Box serves two roles: as a Surface for consumers that track a container
// instead of the global viewport, and as an Element when something tracks
// the box's own position within its parent.
type Box struct {
	mu       sync.Mutex
	parent   Surface
	pos      Offset // structural position of the top-left corner
	size     Size   // visible box size
	scroll   Offset
	detached bool
	list     notifyList
}

// NewBox creates a box at the given structural position with the given
// visible size. parent is the surface the box lives in; nil means the box
// is positioned directly in the document.
func NewBox(parent Surface, pos Offset, size Size) *Box {
	return &Box{parent: parent, pos: pos, size: size}
}

// Measure returns the visible box size, or ok=false once detached.
func (b *Box) Measure() (Size, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.detached {
		return Size{}, false
	}
	return b.size, true
}

// Resize changes the visible box size. It does not emit a scroll
// notification; resize is delivered through the process-wide notifier.
func (b *Box) Resize(size Size) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.size = size
}

// ReadScroll returns the box's current scroll offset.
func (b *Box) ReadScroll() Offset {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.scroll
}

// WriteScroll commands a new scroll offset, clamped to >= 0.
// Subscribers are notified only when the offset actually changes.
// Writes to a detached box are ignored.
func (b *Box) WriteScroll(o Offset) {
	o = clampOffset(o)

	b.mu.Lock()
	if b.detached || o == b.scroll {
		b.mu.Unlock()
		return
	}
	b.scroll = o
	fns := b.list.snapshot()
	b.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Subscribe attaches a scroll listener and returns its cancel function.
func (b *Box) Subscribe(fn func()) (cancel func()) {
	if fn == nil {
		return func() {}
	}

	b.mu.Lock()
	id := b.list.add(fn)
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.list.remove(id)
	}
}

// Valid reports whether the box is still attached.
func (b *Box) Valid() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return !b.detached
}

// Detach invalidates the handle. Further dispatches against the box are
// skipped by the multiplexer and writes are ignored.
func (b *Box) Detach() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.detached = true
}

// ViewPosition returns the box's position relative to its parent's current
// visible origin. With no parent the structural position is returned
// unchanged. ok is false once detached.
func (b *Box) ViewPosition() (Offset, bool) {
	b.mu.Lock()
	parent := b.parent
	pos := b.pos
	detached := b.detached
	b.mu.Unlock()

	if detached {
		return Offset{}, false
	}
	if parent == nil {
		return pos, true
	}
	sc := parent.ReadScroll()
	return Offset{Left: pos.Left - sc.Left, Top: pos.Top - sc.Top}, true
}

// Anchor is a fixed-position tracked element with no size or scroll state
// of its own.
type Anchor struct {
	parent Surface
	pos    Offset
}

// NewAnchor creates an anchor at the given structural position within
// parent. A nil parent positions the anchor directly in the document.
func NewAnchor(parent Surface, pos Offset) *Anchor {
	return &Anchor{parent: parent, pos: pos}
}

// ViewPosition returns the anchor's position relative to the parent's
// current visible origin.
func (a *Anchor) ViewPosition() (Offset, bool) {
	if a.parent == nil {
		return a.pos, true
	}
	sc := a.parent.ReadScroll()
	return Offset{Left: a.pos.Left - sc.Left, Top: a.pos.Top - sc.Top}, true
}
