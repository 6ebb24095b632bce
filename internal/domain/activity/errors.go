package activity

import "errors"

// Sentinel error kinds for this package.
var (
	ErrInvalidProfile = errors.New("invalid activity profile")
	ErrInvalidRange   = errors.New("invalid tier range")
)
