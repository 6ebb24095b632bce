package roster

import "errors"

// Sentinel error kinds for this package.
var (
	ErrInvalidRoster = errors.New("invalid roster layout")
	ErrUnknownClass  = errors.New("actor has no known class")
)
