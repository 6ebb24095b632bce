// Package activity assigns each actor an activity tier and a submission count.
//
// Two shapes are supported. Ranged draws a named tier by weight and then a
// count uniformly from the tier's inclusive range. Counted draws the count
// directly from a weighted list of buckets. Both are validated up front.
package activity

import (
	"fmt"
	"math/rand"
	"strconv"

	"github.com/okian/meritsim/internal/domain/draw"
)

// Tier is a named band of submission counts, inclusive on both ends.
// Adjacent tiers may share a bound.
type Tier struct {
	Name   string  `koanf:"name" json:"name"`
	Weight float64 `koanf:"weight" json:"weight"`
	Min    int     `koanf:"min" json:"min"`
	Max    int     `koanf:"max" json:"max"`
}

// Assignment is the outcome of profiling one actor.
type Assignment struct {
	Tier  string
	Count int
}

// Profiler draws assignments. It is immutable and safe to share.
type Profiler struct {
	tiers  *draw.Weighted[Tier]
	bounds map[string]Tier
}

// DefaultTiers returns the low/medium/high profile.
func DefaultTiers() []Tier {
	return []Tier{
		{Name: "low", Weight: 0.4, Min: 0, Max: 2},
		{Name: "medium", Weight: 0.4, Min: 2, Max: 5},
		{Name: "high", Weight: 0.2, Min: 5, Max: 8},
	}
}

// DefaultCountWeights returns weights for counts 0 through 5.
func DefaultCountWeights() []float64 {
	return []float64{0.2, 0.3, 0.25, 0.15, 0.05, 0.05}
}

// NewRanged builds a profiler over named tiers.
func NewRanged(tiers []Tier) (*Profiler, error) {
	if len(tiers) == 0 {
		return nil, fmt.Errorf("%w: no tiers", ErrInvalidProfile)
	}
	weights := make([]float64, len(tiers))
	bounds := make(map[string]Tier, len(tiers))
	for i, t := range tiers {
		if t.Name == "" {
			return nil, fmt.Errorf("%w: tier %d has no name", ErrInvalidProfile, i)
		}
		if _, dup := bounds[t.Name]; dup {
			return nil, fmt.Errorf("%w: tier %q declared twice", ErrInvalidProfile, t.Name)
		}
		if t.Min < 0 || t.Max < t.Min {
			return nil, fmt.Errorf("%w: tier %q range [%d,%d]", ErrInvalidRange, t.Name, t.Min, t.Max)
		}
		weights[i] = t.Weight
		bounds[t.Name] = t
	}
	w, err := draw.NewWeighted(tiers, weights)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidProfile, err)
	}
	return &Profiler{tiers: w, bounds: bounds}, nil
}

// NewCounted builds a profiler where weights[k] is the chance of exactly k
// submissions. Each count becomes its own tier named after the count.
func NewCounted(weights []float64) (*Profiler, error) {
	tiers := make([]Tier, len(weights))
	for k, w := range weights {
		tiers[k] = Tier{Name: strconv.Itoa(k), Weight: w, Min: k, Max: k}
	}
	return NewRanged(tiers)
}

// Profile draws a tier and a count within its range.
func (p *Profiler) Profile(r *rand.Rand) Assignment {
	t := p.tiers.Draw(r)
	return Assignment{Tier: t.Name, Count: draw.IntBetween(r, t.Min, t.Max)}
}

// Bounds returns the declared range of a tier.
func (p *Profiler) Bounds(tier string) (lo, hi int, ok bool) {
	t, ok := p.bounds[tier]
	return t.Min, t.Max, ok
}
