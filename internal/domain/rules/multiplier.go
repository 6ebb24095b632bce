package rules

import (
	"fmt"

	"github.com/okian/meritsim/internal/domain/model"
)

// MultiplierCategory declares a base value and per-option factors.
type MultiplierCategory struct {
	Category   model.Category `yaml:"name"`
	Base       float64        `yaml:"base"`
	Dimensions []Dimension    `yaml:"dimensions"`
}

// MultiplierTable holds a base per category and multiplicative factors.
// Unlike Table it is sparse: a category may have a base and no factors,
// and a missing factor is neutral.
type MultiplierTable struct {
	fallback   float64
	categories []model.Category
	bases      map[model.Category]float64
	factors    map[model.Category]map[string]map[string]float64
}

// NewMultiplierTable validates the declaration. Bases and factors must be
// positive; fallback is the base for undeclared categories.
func NewMultiplierTable(fallback float64, entries []MultiplierCategory) (*MultiplierTable, error) {
	if fallback <= 0 {
		return nil, fmt.Errorf("%w: fallback base must be positive, got %v", ErrInvalidTable, fallback)
	}
	m := &MultiplierTable{
		fallback: fallback,
		bases:    make(map[model.Category]float64, len(entries)),
		factors:  make(map[model.Category]map[string]map[string]float64, len(entries)),
	}
	for _, e := range entries {
		if e.Category == "" {
			return nil, fmt.Errorf("%w: empty category name", ErrInvalidTable)
		}
		if _, dup := m.bases[e.Category]; dup {
			return nil, fmt.Errorf("%w: duplicate category %q", ErrInvalidTable, e.Category)
		}
		if e.Base <= 0 {
			return nil, fmt.Errorf("%w: %s base must be positive, got %v", ErrInvalidTable, e.Category, e.Base)
		}
		byDim := make(map[string]map[string]float64, len(e.Dimensions))
		for _, d := range e.Dimensions {
			if d.Name == "" {
				return nil, fmt.Errorf("%w: %s has an unnamed dimension", ErrInvalidTable, e.Category)
			}
			if _, dup := byDim[d.Name]; dup {
				return nil, fmt.Errorf("%w: %s declares %q twice", ErrInvalidTable, e.Category, d.Name)
			}
			byOpt := make(map[string]float64, len(d.Options))
			for _, o := range d.Options {
				if !(o.Value > 0) {
					return nil, fmt.Errorf("%w: %s/%s/%s factor must be positive", ErrInvalidTable, e.Category, d.Name, o.Name)
				}
				byOpt[o.Name] = o.Value
			}
			byDim[d.Name] = byOpt
		}
		m.categories = append(m.categories, e.Category)
		m.bases[e.Category] = e.Base
		m.factors[e.Category] = byDim
	}
	return m, nil
}

// Base returns the category base, or the fallback for undeclared categories.
func (m *MultiplierTable) Base(category model.Category) float64 {
	if b, ok := m.bases[category]; ok {
		return b
	}
	return m.fallback
}

// Factor returns the multiplier for an option and whether it is declared.
func (m *MultiplierTable) Factor(category model.Category, dimension, option string) (float64, bool) {
	f, ok := m.factors[category][dimension][option]
	return f, ok
}

// Categories returns the categories with an explicit base, in order.
func (m *MultiplierTable) Categories() []model.Category {
	return append([]model.Category(nil), m.categories...)
}
