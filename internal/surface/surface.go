package surface

import "sync"

// Size is a measured width and height in surface cells.
type Size struct {
	Width  int
	Height int
}

// Offset is a distance from a surface's scrolling origin.
type Offset struct {
	Left int
	Top  int
}

// Surface is the contract every scrollable region provides.
// Implementations are pointers; two handles refer to the same surface
// exactly when they are the same pointer.
type Surface interface {
	// Measure returns the surface's visible size.
	// ok is false when the surface cannot be measured yet (pre-attachment).
	Measure() (size Size, ok bool)

	// ReadScroll returns the surface's current raw scroll offset.
	ReadScroll() Offset

	// WriteScroll commands a new scroll offset. Offsets are clamped to >= 0.
	// Subscribers are notified only when the offset actually changes.
	WriteScroll(Offset)

	// Subscribe attaches a scroll notification listener and returns a
	// cancel function. Listeners are notified in subscription order.
	Subscribe(fn func()) (cancel func())

	// Valid reports whether the handle still refers to a live surface.
	Valid() bool
}

// Element is a tracked element positioned within a surface.
type Element interface {
	// ViewPosition returns the element's position relative to the surface's
	// current visible origin. ok is false when the element is detached.
	// The position moves as the surface scrolls; add the surface's scroll
	// offset to recover the fixed structural position.
	ViewPosition() (pos Offset, ok bool)
}

// notifyList is a small ordered listener set shared by the surface variants.
// Callers provide their own locking.
type notifyList struct {
	nextID int
	subs   []notifySub
}

type notifySub struct {
	id int
	fn func()
}

// add registers fn and returns its subscription ID.
func (l *notifyList) add(fn func()) int {
	l.nextID++
	l.subs = append(l.subs, notifySub{id: l.nextID, fn: fn})
	return l.nextID
}

// remove drops the subscription with the given ID. Unknown IDs are a no-op.
func (l *notifyList) remove(id int) {
	for i, s := range l.subs {
		if s.id == id {
			l.subs = append(l.subs[:i], l.subs[i+1:]...)
			return
		}
	}
}

// snapshot returns the listener functions in subscription order.
func (l *notifyList) snapshot() []func() {
	fns := make([]func(), len(l.subs))
	for i, s := range l.subs {
		fns[i] = s.fn
	}
	return fns
}

// clampOffset clamps both axes of an offset to >= 0.
func clampOffset(o Offset) Offset {
	if o.Left < 0 {
		o.Left = 0
	}
	if o.Top < 0 {
		o.Top = 0
	}
	return o
}

// ResizeNotifier is the process-wide resize notification facility.
// Hosts call Notify when the visible area changes; consumers subscribe to
// remeasure their geometry. Resize is shared by all consumers, not a
// per-surface event.
type ResizeNotifier struct {
	mu     sync.Mutex
	nextID int
	subs   []resizeSub
}

type resizeSub struct {
	id int
	fn func(Size)
}

// NewResizeNotifier creates an empty notifier.
func NewResizeNotifier() *ResizeNotifier {
	return &ResizeNotifier{}
}

// Subscribe registers fn for resize notifications and returns a cancel
// function. Cancel is safe to call more than once.
func (n *ResizeNotifier) Subscribe(fn func(Size)) (cancel func()) {
	if fn == nil {
		return func() {}
	}

	n.mu.Lock()
	n.nextID++
	id := n.nextID
	n.subs = append(n.subs, resizeSub{id: id, fn: fn})
	n.mu.Unlock()

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		for i, s := range n.subs {
			if s.id == id {
				n.subs = append(n.subs[:i], n.subs[i+1:]...)
				return
			}
		}
	}
}

// Notify delivers the new size to all subscribers in subscription order.
func (n *ResizeNotifier) Notify(size Size) {
	n.mu.Lock()
	fns := make([]func(Size), len(n.subs))
	for i, s := range n.subs {
		fns[i] = s.fn
	}
	n.mu.Unlock()

	for _, fn := range fns {
		fn(size)
	}
}

// Count returns the number of active resize subscriptions.
func (n *ResizeNotifier) Count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.subs)
}
