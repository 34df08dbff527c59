package script

import "errors"

// Sentinel errors for the script engine.
var (
	// ErrEngineClosed is returned when a hook is invoked after Close.
	ErrEngineClosed = errors.New("script engine is closed")
)
