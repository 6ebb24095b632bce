package generator

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for this package.
var (
	// ErrInvalidConfig is returned by New when a component cannot be built.
	ErrInvalidConfig = errors.New("invalid generator configuration")
	// ErrUnresolvedReviewer marks an actor with no reviewer linkage.
	ErrUnresolvedReviewer = errors.New("unresolved reviewer")
	// ErrInconsistent is returned when a built submission breaks an invariant.
	ErrInconsistent = errors.New("inconsistent generation state")
)

// UnresolvedReviewerError reports the actor whose reviewer lookup failed.
type UnresolvedReviewerError struct {
	ActorID string
	Err     error
}

func (e *UnresolvedReviewerError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("no reviewer for actor %s", e.ActorID)
	}
	return fmt.Sprintf("no reviewer for actor %s: %v", e.ActorID, e.Err)
}

// Is matches ErrUnresolvedReviewer.
func (e *UnresolvedReviewerError) Is(target error) bool { return target == ErrUnresolvedReviewer }

func (e *UnresolvedReviewerError) Unwrap() error { return e.Err }
