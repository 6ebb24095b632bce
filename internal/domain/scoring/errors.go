package scoring

import "errors"

// Sentinel error kinds for this package.
var (
	ErrUnknownPolicy = errors.New("unknown scoring policy")
	ErrMissingTable  = errors.New("missing rule table")
)
