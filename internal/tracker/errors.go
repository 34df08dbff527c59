package tracker

import "errors"

// Sentinel errors for tracker lifecycle misuse.
var (
	// ErrAlreadyStarted is returned when Start is called on a running tracker.
	ErrAlreadyStarted = errors.New("tracker is already started")

	// ErrDetached is returned when Start is called on a stopped tracker.
	// A detached tracker cannot be restarted; create a new one.
	ErrDetached = errors.New("tracker is detached")
)
