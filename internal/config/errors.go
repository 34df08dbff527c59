package config

import "errors"

// Sentinel errors for settings validation and watcher lifecycle.
var (
	// ErrInvalidInterval is returned when the reset interval is not positive.
	ErrInvalidInterval = errors.New("reset interval must be positive")

	// ErrInvalidFallback is returned when a fallback dimension is negative.
	ErrInvalidFallback = errors.New("fallback dimensions must be >= 0")

	// ErrWatcherClosed is returned when operations are attempted on a
	// closed watcher.
	ErrWatcherClosed = errors.New("config watcher is closed")
)
