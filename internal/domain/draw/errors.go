package draw

import "errors"

// ErrInvalidWeights reports a weight vector that cannot drive a draw.
var ErrInvalidWeights = errors.New("invalid weights")
