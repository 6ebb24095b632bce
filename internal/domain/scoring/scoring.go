// Package scoring turns a category plus categorical selections into points.
//
// Two policies are available and a run commits to one of them:
//   - Additive sums per-option points and is strict: every declared
//     dimension must be selected with a declared option.
//   - Multiplicative starts from a category base and multiplies declared
//     factors. It is tolerant: undeclared options count as 1.0.
package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/okian/meritsim/internal/domain/model"
	"github.com/okian/meritsim/internal/domain/rules"
)

// Kind selects a policy.
type Kind string

// Supported policies.
const (
	KindAdditive       Kind = "additive"
	KindMultiplicative Kind = "multiplicative"
)

// ParseKind parses a policy name, case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindAdditive:
		return KindAdditive, nil
	case KindMultiplicative:
		return KindMultiplicative, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

// Policy computes raw points. Implementations are pure and deterministic.
type Policy interface {
	Name() string
	Compute(category model.Category, selections model.Selections) (int, error)
}

// New builds the policy for kind from the matching table.
func New(kind Kind, additive *rules.Table, multiplier *rules.MultiplierTable) (Policy, error) {
	switch kind {
	case KindAdditive:
		if additive == nil {
			return nil, fmt.Errorf("%w: additive policy needs a rule table", ErrMissingTable)
		}
		return NewAdditive(additive), nil
	case KindMultiplicative:
		if multiplier == nil {
			return nil, fmt.Errorf("%w: multiplicative policy needs a multiplier table", ErrMissingTable)
		}
		return NewMultiplicative(multiplier), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, kind)
	}
}

// Additive sums table values over the category's dimensions.
type Additive struct {
	table *rules.Table
}

// NewAdditive returns an additive policy over t.
func NewAdditive(t *rules.Table) *Additive {
	return &Additive{table: t}
}

// Name implements Policy.
func (a *Additive) Name() string { return string(KindAdditive) }

// Compute implements Policy. Any missing or undeclared selection fails with
// *rules.UnknownOptionError.
func (a *Additive) Compute(category model.Category, selections model.Selections) (int, error) {
	dims := a.table.Dimensions(category)
	if dims == nil {
		return 0, &rules.UnknownOptionError{Category: category}
	}
	for _, sel := range selections {
		if _, err := a.table.Lookup(category, sel.Dimension, sel.Option); err != nil {
			return 0, err
		}
	}
	var sum float64
	for _, d := range dims {
		opt, ok := selections.Get(d.Name)
		if !ok {
			return 0, &rules.UnknownOptionError{Category: category, Dimension: d.Name, Missing: true}
		}
		v, err := a.table.Lookup(category, d.Name, opt)
		if err != nil {
			return 0, err
		}
		sum += v
	}
	return int(math.Round(sum)), nil
}

// Multiplicative computes base × Π factors, rounded half to even.
type Multiplicative struct {
	table *rules.MultiplierTable
}

// NewMultiplicative returns a multiplicative policy over m.
func NewMultiplicative(m *rules.MultiplierTable) *Multiplicative {
	return &Multiplicative{table: m}
}

// Name implements Policy.
func (m *Multiplicative) Name() string { return string(KindMultiplicative) }

// Compute implements Policy. It never fails: unknown categories use the
// fallback base and undeclared options are neutral.
func (m *Multiplicative) Compute(category model.Category, selections model.Selections) (int, error) {
	points := m.table.Base(category)
	for _, sel := range selections {
		if f, ok := m.table.Factor(category, sel.Dimension, sel.Option); ok {
			points *= f
		}
	}
	return RoundHalfEven(points), nil
}

// RoundHalfEven rounds to the nearest integer, ties to even: 7.5 -> 8, 22.5 -> 22.
func RoundHalfEven(x float64) int {
	return int(math.RoundToEven(x))
}
