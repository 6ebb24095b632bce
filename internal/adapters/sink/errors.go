package sink

import "errors"

// Sentinel error kinds for this package.
var (
	ErrEmptyPath = errors.New("sink path is empty")
	ErrWrite     = errors.New("sink write failed")
)
