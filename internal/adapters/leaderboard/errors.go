package leaderboard

import "errors"

// Sentinel kinds for leaderboard errors.
var (
	ErrNotFound     = errors.New("actor not found")
	ErrInvalidLimit = errors.New("invalid leaderboard limit")
	ErrEmptyID      = errors.New("actor id is empty")
)
