package report

import "errors"

// Sentinel error kinds for this package.
var (
	ErrDigest        = errors.New("failed to compute run digest")
	ErrUnknownFormat = errors.New("unknown report format")
)
