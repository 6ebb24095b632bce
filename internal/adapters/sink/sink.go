// Package sink persists generated actors and submissions.
package sink

import (
	"context"
	"time"

	"github.com/okian/meritsim/internal/domain/model"
	"github.com/okian/meritsim/pkg/metrics"
)

// Sink is a bulk writer for one run's output.
type Sink interface {
	Name() string
	Write(ctx context.Context, actors []model.Actor, submissions []model.Submission) error
	Close() error
}

// observe records latency or failure of a write.
func observe(name string, start time.Time, err error) {
	if err != nil {
		metrics.RecordSinkError(name)
		return
	}
	metrics.RecordSinkWrite(name, float64(time.Since(start).Milliseconds()))
}
