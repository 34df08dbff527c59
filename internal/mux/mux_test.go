package mux

import (
	"testing"

	"github.com/dshills/scrollmux/internal/surface"
)

type recordingObserver struct {
	name  string
	log   *[]string
	onRun func()
}

func (o *recordingObserver) HandleScroll(surface.Surface) {
	if o.log != nil {
		*o.log = append(*o.log, o.name)
	}
	if o.onRun != nil {
		o.onRun()
	}
}

func newObserver(name string, log *[]string) *recordingObserver {
	return &recordingObserver{name: name, log: log}
}

// countingSurface counts native subscriptions so tests can check the
// attach-iff-nonempty invariant from the surface's side.
type countingSurface struct {
	*surface.Viewport
	active int
}

func newCountingSurface() *countingSurface {
	return &countingSurface{Viewport: surface.NewViewport(nil)}
}

func (s *countingSurface) Subscribe(fn func()) func() {
	s.active++
	cancel := s.Viewport.Subscribe(fn)
	return func() {
		s.active--
		cancel()
	}
}

func TestMultiplexer_AttachOnFirstDetachOnLast(t *testing.T) {
	m := New()
	s := newCountingSurface()

	o1 := newObserver("a", nil)
	o2 := newObserver("b", nil)

	if s.active != 0 {
		t.Fatalf("expected no native subscription before registration, got %d", s.active)
	}

	m.Register(o1, s)
	if s.active != 1 {
		t.Errorf("expected 1 native subscription after first register, got %d", s.active)
	}

	m.Register(o2, s)
	if s.active != 1 {
		t.Errorf("expected still 1 native subscription with two observers, got %d", s.active)
	}

	m.Unregister(o1, s)
	if s.active != 1 {
		t.Errorf("expected subscription to remain while observers exist, got %d", s.active)
	}

	m.Unregister(o2, s)
	if s.active != 0 {
		t.Errorf("expected subscription detached after last unregister, got %d", s.active)
	}
	if m.Attached(s) {
		t.Error("expected Attached()=false after last unregister")
	}
}

func TestMultiplexer_RegisterIdempotent(t *testing.T) {
	m := New()
	s := surface.NewViewport(nil)
	o := newObserver("a", nil)

	m.Register(o, s)
	m.Register(o, s)

	if got := m.Observers(s); got != 1 {
		t.Errorf("expected 1 observer after double register, got %d", got)
	}
}

func TestMultiplexer_UnregisterUnknown(t *testing.T) {
	m := New()
	s := surface.NewViewport(nil)

	// Never registered: must be a no-op, not a panic.
	m.Unregister(newObserver("ghost", nil), s)

	if m.Attached(s) {
		t.Error("expected no attachment after unknown unregister")
	}
}

func TestMultiplexer_DispatchInRegistrationOrder(t *testing.T) {
	m := New()
	s := surface.NewViewport(nil)

	var log []string
	m.Register(newObserver("first", &log), s)
	m.Register(newObserver("second", &log), s)
	m.Register(newObserver("third", &log), s)

	s.WriteScroll(surface.Offset{Top: 10})

	want := []string{"first", "second", "third"}
	if len(log) != len(want) {
		t.Fatalf("expected %d dispatches, got %d", len(want), len(log))
	}
	for i, name := range want {
		if log[i] != name {
			t.Errorf("position %d: expected %s, got %s", i, name, log[i])
		}
	}
}

func TestMultiplexer_DispatchSkipsInvalidSurface(t *testing.T) {
	m := New()
	b := surface.NewBox(nil, surface.Offset{}, surface.Size{Width: 10, Height: 10})

	var log []string
	m.Register(newObserver("a", &log), b)

	// Grab the native listener before detaching so we can simulate an
	// event arriving on a stale handle.
	b.WriteScroll(surface.Offset{Top: 1})
	if len(log) != 1 {
		t.Fatalf("expected 1 dispatch before detach, got %d", len(log))
	}

	b.Detach()
	m.dispatch(b)

	if len(log) != 1 {
		t.Errorf("expected stale dispatch to be skipped, got %d dispatches", len(log))
	}
}

func TestMultiplexer_UnregisterDuringDispatch(t *testing.T) {
	m := New()
	s := surface.NewViewport(nil)

	var log []string
	second := newObserver("second", &log)

	first := &recordingObserver{name: "first", log: &log}
	first.onRun = func() { m.Unregister(second, s) }

	m.Register(first, s)
	m.Register(second, s)

	// The snapshot taken at dispatch time still includes the second
	// observer for this turn; the next turn will not.
	s.WriteScroll(surface.Offset{Top: 1})
	log = nil
	s.WriteScroll(surface.Offset{Top: 2})

	if len(log) != 1 || log[0] != "first" {
		t.Errorf("expected only first observer on second turn, got %v", log)
	}
}

func TestMultiplexer_Move(t *testing.T) {
	m := New()
	a := surface.NewViewport(nil)
	b := surface.NewViewport(nil)
	o := newObserver("o", nil)

	m.Register(o, a)
	m.Move(o, a, b)

	if got := m.Observers(a); got != 0 {
		t.Errorf("expected 0 observers on old surface, got %d", got)
	}
	if got := m.Observers(b); got != 1 {
		t.Errorf("expected 1 observer on new surface, got %d", got)
	}
	if m.Attached(a) {
		t.Error("expected old surface detached")
	}
	if !m.Attached(b) {
		t.Error("expected new surface attached")
	}
}

func TestMultiplexer_MoveSameSurface(t *testing.T) {
	m := New()
	s := surface.NewViewport(nil)
	o := newObserver("o", nil)

	m.Move(o, s, s)

	if got := m.Observers(s); got != 1 {
		t.Errorf("expected 1 observer, got %d", got)
	}
}

func TestMultiplexer_IndependentSurfaces(t *testing.T) {
	m := New()
	a := surface.NewViewport(nil)
	b := surface.NewViewport(nil)

	var log []string
	m.Register(newObserver("onA", &log), a)
	m.Register(newObserver("onB", &log), b)

	if m.Surfaces() != 2 {
		t.Fatalf("expected 2 tracked surfaces, got %d", m.Surfaces())
	}

	a.WriteScroll(surface.Offset{Top: 5})

	if len(log) != 1 || log[0] != "onA" {
		t.Errorf("expected only surface A's observer dispatched, got %v", log)
	}
}
