package mux

import (
	"sync"

	"github.com/dshills/scrollmux/internal/surface"
)

// Observer receives scroll dispatches for a surface it is registered on.
type Observer interface {
	// HandleScroll is invoked synchronously for every native scroll
	// notification on the surface, in registration order.
	HandleScroll(s surface.Surface)
}

// Multiplexer maps each distinct surface to its registered observers and
// the single native subscription attached to it. Safe for concurrent use.
type Multiplexer struct {
	mu      sync.Mutex
	entries map[surface.Surface]*entry
}

type entry struct {
	observers []Observer
	cancel    func()
}

// New creates an empty multiplexer.
func New() *Multiplexer {
	return &Multiplexer{
		entries: make(map[surface.Surface]*entry),
	}
}

// Register adds o to the surface's observer set. The first registration
// for a surface attaches the native subscription. Registering the same
// (observer, surface) pair twice is a no-op beyond ensuring membership.
// Nil arguments are ignored.
func (m *Multiplexer) Register(o Observer, s surface.Surface) {
	if o == nil || s == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	e := m.entries[s]
	if e == nil {
		e = &entry{}
		e.cancel = s.Subscribe(func() { m.dispatch(s) })
		m.entries[s] = e
	}

	for _, existing := range e.observers {
		if existing == o {
			return
		}
	}
	e.observers = append(e.observers, o)
}

// Unregister removes o from the surface's observer set. Removing the last
// observer detaches the native subscription. Unregistering an observer
// that was never registered is a no-op; unmount races are expected.
func (m *Multiplexer) Unregister(o Observer, s surface.Surface) {
	if o == nil || s == nil {
		return
	}

	m.mu.Lock()
	e := m.entries[s]
	if e == nil {
		m.mu.Unlock()
		return
	}

	for i, existing := range e.observers {
		if existing == o {
			e.observers = append(e.observers[:i], e.observers[i+1:]...)
			break
		}
	}

	var cancel func()
	if len(e.observers) == 0 {
		cancel = e.cancel
		delete(m.entries, s)
	}
	m.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// Move re-targets o from one surface to another as a single logical
// transition. The observer is never registered against both surfaces and
// never left dangling on the old one.
func (m *Multiplexer) Move(o Observer, from, to surface.Surface) {
	if from == to {
		m.Register(o, to)
		return
	}
	m.Unregister(o, from)
	m.Register(o, to)
}

// Observers returns the number of observers registered for s.
func (m *Multiplexer) Observers(s surface.Surface) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e := m.entries[s]; e != nil {
		return len(e.observers)
	}
	return 0
}

// Attached reports whether a native subscription is currently attached
// for s.
func (m *Multiplexer) Attached(s surface.Surface) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries[s] != nil
}

// Surfaces returns the number of surfaces with at least one observer.
func (m *Multiplexer) Surfaces() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// dispatch fans one native scroll notification out to the surface's
// observers. The observer list is snapshotted so handlers may register or
// unregister mid-dispatch; a handle that has gone invalid since
// registration is skipped rather than reported as an error.
func (m *Multiplexer) dispatch(s surface.Surface) {
	m.mu.Lock()
	e := m.entries[s]
	if e == nil {
		m.mu.Unlock()
		return
	}
	observers := make([]Observer, len(e.observers))
	copy(observers, e.observers)
	m.mu.Unlock()

	if !s.Valid() {
		return
	}

	for _, o := range observers {
		o.HandleScroll(s)
	}
}
