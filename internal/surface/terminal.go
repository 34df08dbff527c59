package surface

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

// WheelStep is the number of rows a single mouse wheel notch scrolls.
const WheelStep = 3

// Terminal adapts a tcell screen to the Host contract.
type Terminal struct {
	mu     sync.Mutex
	screen tcell.Screen
}

// NewTerminal creates a terminal host on a fresh tcell screen.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

// NewTerminalWithScreen wraps an existing screen, typically a simulation
// screen in tests.
func NewTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

// Init initializes the screen and enables mouse reporting so wheel events
// reach the event loop.
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnableMouse()
	return nil
}

// Shutdown restores the terminal.
func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Fini()
}

// Size returns the screen's current size.
func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.screen.Size()
}

// Screen returns the underlying tcell screen.
func (t *Terminal) Screen() tcell.Screen {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.screen
}

// HandleEvent routes a tcell event into the scroll/resize plumbing:
// resize events are forwarded to the notifier, wheel events scroll the
// viewport. It returns true when the event was consumed.
func (t *Terminal) HandleEvent(ev tcell.Event, view *Viewport, notifier *ResizeNotifier) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := ev.Size()
		if notifier != nil {
			notifier.Notify(Size{Width: w, Height: h})
		}
		return true
	case *tcell.EventMouse:
		delta := WheelDelta(ev)
		if delta == 0 {
			return false
		}
		if view != nil {
			view.ScrollBy(0, delta)
		}
		return true
	}
	return false
}

// WheelDelta returns the vertical scroll delta for a mouse event,
// or 0 when the event is not a wheel movement.
func WheelDelta(ev *tcell.EventMouse) int {
	switch {
	case ev.Buttons()&tcell.WheelUp != 0:
		return -WheelStep
	case ev.Buttons()&tcell.WheelDown != 0:
		return WheelStep
	default:
		return 0
	}
}
