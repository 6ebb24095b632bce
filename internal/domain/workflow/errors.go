package workflow

import "errors"

// Sentinel error kinds for this package.
var (
	ErrInvalidThresholds = errors.New("invalid workflow thresholds")
	ErrInvalidDelay      = errors.New("invalid resolution delay")
)
