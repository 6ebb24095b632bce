package model

import "errors"

var (
	// ErrInconsistent reports a submission or actor that breaks the payout rules.
	ErrInconsistent = errors.New("inconsistent record")
	// ErrInvalidSelections reports a selections document that is not a flat
	// dimension to option object.
	ErrInvalidSelections = errors.New("invalid selections")
)
