package tracker

import (
	"time"

	"github.com/dshills/scrollmux/internal/surface"
)

// Option configures a Tracker at construction time.
type Option func(*Tracker)

// WithSurface sets the surface to track. Omitting it is valid: the
// tracker runs on fallback geometry until SetSurface attaches one.
func WithSurface(s surface.Surface) Option {
	return func(t *Tracker) {
		t.surf = s
	}
}

// WithElement sets the tracked element whose structural offset is
// subtracted from the surface's raw scroll position.
func WithElement(elem surface.Element) Option {
	return func(t *Tracker) {
		t.elem = elem
	}
}

// WithResetInterval sets the debounce quiet period. Non-positive values
// are ignored and the default of 150ms stands.
func WithResetInterval(d time.Duration) Option {
	return func(t *Tracker) {
		if d > 0 {
			t.resetInterval = d
		}
	}
}

// WithFallbackSize sets the dimensions reported while no surface is
// measurable (pre-attachment rendering).
func WithFallbackSize(width, height int) Option {
	return func(t *Tracker) {
		t.fallback = surface.Size{Width: width, Height: height}
	}
}

// WithOnScroll sets the consumer callback invoked with the new clamped
// offsets on every scroll event.
func WithOnScroll(fn func(surface.Offset)) Option {
	return func(t *Tracker) {
		t.onScroll = fn
	}
}

// WithOnResize sets the consumer callback invoked when the measured
// dimensions actually change.
func WithOnResize(fn func(surface.Size)) Option {
	return func(t *Tracker) {
		t.onResize = fn
	}
}

// WithRender sets the rendering callback invoked with a Frame on every
// state change that affects presentation.
func WithRender(fn func(Frame)) Option {
	return func(t *Tracker) {
		t.render = fn
	}
}
