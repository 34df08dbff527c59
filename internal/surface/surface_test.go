package surface

import "testing"

type fakeHost struct {
	width  int
	height int
}

func (h *fakeHost) Size() (int, int) {
	return h.width, h.height
}

func TestViewport_MeasureWithoutHost(t *testing.T) {
	v := NewViewport(nil)

	size, ok := v.Measure()
	if ok {
		t.Error("expected ok=false without a host")
	}
	if size != (Size{}) {
		t.Errorf("expected zero size, got %+v", size)
	}
}

func TestViewport_MeasureWithHost(t *testing.T) {
	v := NewViewport(&fakeHost{width: 800, height: 600})

	size, ok := v.Measure()
	if !ok {
		t.Fatal("expected ok=true with a host")
	}
	if size.Width != 800 || size.Height != 600 {
		t.Errorf("expected 800x600, got %dx%d", size.Width, size.Height)
	}
}

func TestViewport_SetHost(t *testing.T) {
	v := NewViewport(nil)
	v.SetHost(&fakeHost{width: 80, height: 24})

	if _, ok := v.Measure(); !ok {
		t.Error("expected viewport to be measurable after SetHost")
	}
}

func TestViewport_WriteScrollClampsNegative(t *testing.T) {
	v := NewViewport(nil)
	v.WriteScroll(Offset{Left: -10, Top: -5})

	if got := v.ReadScroll(); got != (Offset{}) {
		t.Errorf("expected clamped zero offset, got %+v", got)
	}
}

func TestViewport_NotifyOnlyOnChange(t *testing.T) {
	v := NewViewport(nil)

	var calls int
	cancel := v.Subscribe(func() { calls++ })
	defer cancel()

	v.WriteScroll(Offset{Top: 10})
	v.WriteScroll(Offset{Top: 10}) // same offset, no notification
	v.WriteScroll(Offset{Top: 20})

	if calls != 2 {
		t.Errorf("expected 2 notifications, got %d", calls)
	}
}

func TestViewport_SubscribeCancel(t *testing.T) {
	v := NewViewport(nil)

	var calls int
	cancel := v.Subscribe(func() { calls++ })

	v.WriteScroll(Offset{Top: 1})
	cancel()
	v.WriteScroll(Offset{Top: 2})

	if calls != 1 {
		t.Errorf("expected 1 notification after cancel, got %d", calls)
	}

	// Double cancel is a no-op.
	cancel()
}

func TestViewport_SubscriberOrder(t *testing.T) {
	v := NewViewport(nil)

	var order []int
	v.Subscribe(func() { order = append(order, 1) })
	v.Subscribe(func() { order = append(order, 2) })
	v.Subscribe(func() { order = append(order, 3) })

	v.WriteScroll(Offset{Top: 5})

	if len(order) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(order))
	}
	for i, n := range order {
		if n != i+1 {
			t.Errorf("position %d: expected %d, got %d", i, i+1, n)
		}
	}
}

func TestViewport_ScrollBy(t *testing.T) {
	v := NewViewport(nil)

	v.ScrollBy(0, 10)
	v.ScrollBy(0, -30) // clamps to zero

	if got := v.ReadScroll(); got != (Offset{}) {
		t.Errorf("expected zero offset, got %+v", got)
	}
}

func TestBox_ViewPositionNoParent(t *testing.T) {
	b := NewBox(nil, Offset{Left: 10, Top: 50}, Size{Width: 100, Height: 40})

	pos, ok := b.ViewPosition()
	if !ok {
		t.Fatal("expected ok=true")
	}
	if pos.Left != 10 || pos.Top != 50 {
		t.Errorf("expected (10,50), got (%d,%d)", pos.Left, pos.Top)
	}
}

func TestBox_ViewPositionTracksParentScroll(t *testing.T) {
	parent := NewViewport(&fakeHost{width: 80, height: 24})
	b := NewBox(parent, Offset{Top: 50}, Size{Width: 80, Height: 10})

	parent.WriteScroll(Offset{Top: 30})

	pos, ok := b.ViewPosition()
	if !ok {
		t.Fatal("expected ok=true")
	}
	if pos.Top != 20 {
		t.Errorf("expected view top 20 after parent scrolled 30, got %d", pos.Top)
	}
}

func TestBox_Detach(t *testing.T) {
	b := NewBox(nil, Offset{}, Size{Width: 10, Height: 10})

	var calls int
	b.Subscribe(func() { calls++ })

	b.Detach()

	if b.Valid() {
		t.Error("expected Valid()=false after Detach")
	}
	if _, ok := b.Measure(); ok {
		t.Error("expected Measure ok=false after Detach")
	}
	if _, ok := b.ViewPosition(); ok {
		t.Error("expected ViewPosition ok=false after Detach")
	}

	b.WriteScroll(Offset{Top: 10})
	if calls != 0 {
		t.Errorf("expected no notifications on a detached box, got %d", calls)
	}
}

func TestBox_Resize(t *testing.T) {
	b := NewBox(nil, Offset{}, Size{Width: 10, Height: 10})
	b.Resize(Size{Width: 20, Height: 30})

	size, ok := b.Measure()
	if !ok {
		t.Fatal("expected ok=true")
	}
	if size.Width != 20 || size.Height != 30 {
		t.Errorf("expected 20x30, got %dx%d", size.Width, size.Height)
	}
}

func TestAnchor_ViewPosition(t *testing.T) {
	parent := NewViewport(nil)
	a := NewAnchor(parent, Offset{Top: 50})

	pos, _ := a.ViewPosition()
	if pos.Top != 50 {
		t.Errorf("expected top 50 before scroll, got %d", pos.Top)
	}

	parent.WriteScroll(Offset{Top: 120})

	pos, _ = a.ViewPosition()
	if pos.Top != -70 {
		t.Errorf("expected top -70 after scroll 120, got %d", pos.Top)
	}
}

func TestResizeNotifier(t *testing.T) {
	n := NewResizeNotifier()

	var got []Size
	cancel := n.Subscribe(func(s Size) { got = append(got, s) })

	n.Notify(Size{Width: 100, Height: 50})

	if len(got) != 1 || got[0].Width != 100 {
		t.Fatalf("expected one notification of 100x50, got %v", got)
	}

	cancel()
	n.Notify(Size{Width: 10, Height: 10})

	if len(got) != 1 {
		t.Errorf("expected no notifications after cancel, got %d", len(got))
	}
	if n.Count() != 0 {
		t.Errorf("expected count 0 after cancel, got %d", n.Count())
	}
}

func TestResizeNotifier_Order(t *testing.T) {
	n := NewResizeNotifier()

	var order []int
	n.Subscribe(func(Size) { order = append(order, 1) })
	n.Subscribe(func(Size) { order = append(order, 2) })

	n.Notify(Size{})

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("expected delivery in subscription order, got %v", order)
	}
}
