// Package tracker provides the per-consumer viewport tracker.
//
// A Tracker owns the observable scroll state for one consumer: the tracked
// surface's visible size, the consumer's structural offset within it, the
// clamped scroll offsets, and a debounced is-scrolling flag used to gate
// expensive rendering during active scroll.
//
// Lifecycle is a small state machine:
//
//	uninitialized -> idle <-> scrolling -> detached
//
// Start computes initial geometry (falling back to configured dimensions
// when no surface is measurable yet), registers with the multiplexer, and
// subscribes to the process-wide resize notifier. Each dispatched scroll
// event recomputes the clamped offsets and restarts a single debounce
// timer; when the timer fires without being replaced, the tracker returns
// to idle and renders once more so consumers can resume expensive work.
//
// The tracker also hosts the feedback guard for child-initiated scrolling:
// RequestScroll forwards a request to the surface only when it would
// actually move it, which is the sole mechanism preventing scroll echo
// loops between a child and the surface.
package tracker
