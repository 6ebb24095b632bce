// Package workflow draws the review outcome of a submission.
//
// Every submission starts Pending and is resolved by a single weighted draw
// at creation time. The weight triple depends on the submission's raw point
// value: high-value claims are approved more often than low-value ones.
package workflow

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/okian/meritsim/internal/domain/draw"
	"github.com/okian/meritsim/internal/domain/model"
)

const (
	defaultHighThreshold = 50
	defaultMidThreshold  = 20
	defaultMinDelayDays  = 1
	defaultMaxDelayDays  = 10
	day                  = 24 * time.Hour
)

// Weights is a (pending, approved, rejected) triple. It need not be
// normalized.
type Weights struct {
	Pending  float64 `koanf:"pending" json:"pending"`
	Approved float64 `koanf:"approved" json:"approved"`
	Rejected float64 `koanf:"rejected" json:"rejected"`
}

func (w Weights) slice() []float64 { return []float64{w.Pending, w.Approved, w.Rejected} }

// Default triples.
var (
	HighWeights     = Weights{Pending: 0.10, Approved: 0.85, Rejected: 0.05} //nolint:gochecknoglobals // value type
	MidWeights      = Weights{Pending: 0.20, Approved: 0.70, Rejected: 0.10} //nolint:gochecknoglobals // value type
	BaselineWeights = Weights{Pending: 0.40, Approved: 0.40, Rejected: 0.20} //nolint:gochecknoglobals // value type
	FlatWeights     = Weights{Pending: 0.20, Approved: 0.70, Rejected: 0.10} //nolint:gochecknoglobals // value type
)

// Outcome is the resolved workflow state of one submission.
type Outcome struct {
	Status     model.Status
	Payout     int
	ReviewerID string
	ResolvedAt time.Time
}

// Option applies a configuration option to the Simulator.
type Option func(*Simulator)

// WithThresholds sets the strict lower bounds of the high and mid bands.
func WithThresholds(high, mid int) Option {
	return func(s *Simulator) {
		s.high, s.mid = high, mid
	}
}

// WithHighWeights sets the triple used above the high threshold.
func WithHighWeights(w Weights) Option {
	return func(s *Simulator) { s.highW = w }
}

// WithMidWeights sets the triple used above the mid threshold.
func WithMidWeights(w Weights) Option {
	return func(s *Simulator) { s.midW = w }
}

// WithBaselineWeights sets the triple used at or below the mid threshold.
func WithBaselineWeights(w Weights) Option {
	return func(s *Simulator) { s.baseW = w }
}

// WithFlatWeights uses a single triple regardless of point value.
func WithFlatWeights(w Weights) Option {
	return func(s *Simulator) {
		s.flat = true
		s.baseW = w
	}
}

// WithResolutionDelay sets the inclusive range of days between creation and
// resolution of a terminal submission.
func WithResolutionDelay(minDays, maxDays int) Option {
	return func(s *Simulator) {
		s.minDelay, s.maxDelay = minDays, maxDays
	}
}

// Simulator resolves submissions. It is immutable after New and safe for
// concurrent use with per-goroutine random streams.
type Simulator struct {
	high, mid          int
	highW, midW, baseW Weights
	flat               bool
	minDelay, maxDelay int

	highD, midD, baseD *draw.Weighted[model.Status]
}

// New validates the configuration and builds a simulator.
func New(opts ...Option) (*Simulator, error) {
	s := &Simulator{
		high:     defaultHighThreshold,
		mid:      defaultMidThreshold,
		highW:    HighWeights,
		midW:     MidWeights,
		baseW:    BaselineWeights,
		minDelay: defaultMinDelayDays,
		maxDelay: defaultMaxDelayDays,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.mid > s.high {
		return nil, fmt.Errorf("%w: mid %d above high %d", ErrInvalidThresholds, s.mid, s.high)
	}
	if s.minDelay < 0 || s.maxDelay < s.minDelay {
		return nil, fmt.Errorf("%w: resolution delay [%d,%d]", ErrInvalidDelay, s.minDelay, s.maxDelay)
	}

	var err error
	if s.baseD, err = newDraw("baseline", s.baseW); err != nil {
		return nil, err
	}
	if s.flat {
		return s, nil
	}
	if s.highD, err = newDraw("high", s.highW); err != nil {
		return nil, err
	}
	if s.midD, err = newDraw("mid", s.midW); err != nil {
		return nil, err
	}
	return s, nil
}

func newDraw(band string, w Weights) (*draw.Weighted[model.Status], error) {
	d, err := draw.NewWeighted(model.Statuses(), w.slice())
	if err != nil {
		return nil, fmt.Errorf("%s weights: %w", band, err)
	}
	return d, nil
}

func (s *Simulator) band(rawPoints int) *draw.Weighted[model.Status] {
	switch {
	case s.flat:
		return s.baseD
	case rawPoints > s.high:
		return s.highD
	case rawPoints > s.mid:
		return s.midD
	default:
		return s.baseD
	}
}

// Probabilities returns the normalized triple applied to rawPoints.
func (s *Simulator) Probabilities(rawPoints int) Weights {
	d := s.band(rawPoints)
	return Weights{Pending: d.Probability(0), Approved: d.Probability(1), Rejected: d.Probability(2)}
}

// Resolve draws the status of a submission worth rawPoints and derives the
// payout, reviewer and resolution time from it.
func (s *Simulator) Resolve(r *rand.Rand, rawPoints int, reviewerID string, createdAt time.Time) Outcome {
	out := Outcome{Status: s.band(rawPoints).Draw(r), ResolvedAt: createdAt}
	if out.Status == model.StatusApproved {
		out.Payout = rawPoints
	}
	if out.Status.Terminal() {
		out.ReviewerID = reviewerID
		out.ResolvedAt = createdAt.Add(time.Duration(draw.IntBetween(r, s.minDelay, s.maxDelay)) * day)
	}
	return out
}
