// Package leaderboard ranks actors by their accumulated points.
package leaderboard

import (
	"context"

	"github.com/okian/meritsim/internal/domain/model"
)

// Entry is one leaderboard row.
type Entry struct {
	Rank         int    `json:"rank"`
	ActorID      string `json:"actorId"`
	Name         string `json:"name,omitempty"`
	GroupID      string `json:"groupId,omitempty"`
	Points       int    `json:"points"`
	Achievements int    `json:"achievements"`
}

// Store provides read/write access to the ranking state.
type Store interface {
	// Set records the current total of an actor, replacing any earlier one.
	Set(ctx context.Context, actor *model.Actor) error

	// Rank returns the current rank and points of an actor.
	// Returns ErrNotFound if the actor is unknown.
	Rank(ctx context.Context, actorID string) (Entry, error)

	// TopN returns the top-N entries ordered by points desc, then actor ID asc.
	TopN(ctx context.Context, n int) ([]Entry, error)

	// Count returns the number of actors tracked.
	Count(ctx context.Context) int
}

// Load sets every actor in s.
func Load(ctx context.Context, s Store, actors []model.Actor) error {
	for i := range actors {
		if err := s.Set(ctx, &actors[i]); err != nil {
			return err
		}
	}
	return nil
}
