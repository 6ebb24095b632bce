// Package rules holds the per-category scoring tables.
//
// A Table maps Category -> Dimension -> Option -> value. Dimensions and
// options keep their declaration order so sampling over them is reproducible.
// Tables are immutable once built and safe for concurrent reads.
package rules

import (
	"fmt"
	"math"

	"github.com/okian/meritsim/internal/domain/model"
)

// Option is one selectable answer for a dimension and its value.
type Option struct {
	Name  string  `yaml:"name"`
	Value float64 `yaml:"value"`
}

// Dimension is an independent categorical attribute of a submission.
type Dimension struct {
	Name    string   `yaml:"name"`
	Options []Option `yaml:"options"`
}

// OptionNames returns the option names in declaration order.
func (d Dimension) OptionNames() []string {
	out := make([]string, len(d.Options))
	for i, o := range d.Options {
		out[i] = o.Name
	}
	return out
}

// CategoryRules declares the dimensions of one category.
type CategoryRules struct {
	Category   model.Category `yaml:"name"`
	Dimensions []Dimension    `yaml:"dimensions"`
}

// Table is an immutable Category -> Dimension -> Option -> value map.
type Table struct {
	categories []model.Category
	dims       map[model.Category][]Dimension
	index      map[model.Category]map[string]map[string]float64
}

// NewTable validates and indexes the given category rules.
func NewTable(entries []CategoryRules) (*Table, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no categories", ErrInvalidTable)
	}
	t := &Table{
		dims:  make(map[model.Category][]Dimension, len(entries)),
		index: make(map[model.Category]map[string]map[string]float64, len(entries)),
	}
	for _, e := range entries {
		if e.Category == "" {
			return nil, fmt.Errorf("%w: empty category name", ErrInvalidTable)
		}
		if _, dup := t.index[e.Category]; dup {
			return nil, fmt.Errorf("%w: duplicate category %q", ErrInvalidTable, e.Category)
		}
		byDim := make(map[string]map[string]float64, len(e.Dimensions))
		dims := make([]Dimension, 0, len(e.Dimensions))
		for _, d := range e.Dimensions {
			if d.Name == "" {
				return nil, fmt.Errorf("%w: %s has an unnamed dimension", ErrInvalidTable, e.Category)
			}
			if _, dup := byDim[d.Name]; dup {
				return nil, fmt.Errorf("%w: %s declares %q twice", ErrInvalidTable, e.Category, d.Name)
			}
			if len(d.Options) == 0 {
				return nil, fmt.Errorf("%w: %s/%s has no options", ErrInvalidTable, e.Category, d.Name)
			}
			byOpt := make(map[string]float64, len(d.Options))
			for _, o := range d.Options {
				if o.Name == "" {
					return nil, fmt.Errorf("%w: %s/%s has an unnamed option", ErrInvalidTable, e.Category, d.Name)
				}
				if _, dup := byOpt[o.Name]; dup {
					return nil, fmt.Errorf("%w: %s/%s declares %q twice", ErrInvalidTable, e.Category, d.Name, o.Name)
				}
				if math.IsNaN(o.Value) || math.IsInf(o.Value, 0) {
					return nil, fmt.Errorf("%w: %s/%s/%s is not finite", ErrInvalidTable, e.Category, d.Name, o.Name)
				}
				byOpt[o.Name] = o.Value
			}
			byDim[d.Name] = byOpt
			dims = append(dims, Dimension{Name: d.Name, Options: append([]Option(nil), d.Options...)})
		}
		t.categories = append(t.categories, e.Category)
		t.dims[e.Category] = dims
		t.index[e.Category] = byDim
	}
	return t, nil
}

// Lookup returns the value for an option. It fails with *UnknownOptionError
// when the category, dimension or option is not declared.
func (t *Table) Lookup(category model.Category, dimension, option string) (float64, error) {
	byDim, ok := t.index[category]
	if !ok {
		return 0, &UnknownOptionError{Category: category}
	}
	byOpt, ok := byDim[dimension]
	if !ok {
		return 0, &UnknownOptionError{Category: category, Dimension: dimension}
	}
	v, ok := byOpt[option]
	if !ok {
		return 0, &UnknownOptionError{Category: category, Dimension: dimension, Option: option}
	}
	return v, nil
}

// HasCategory reports whether the category is declared.
func (t *Table) HasCategory(category model.Category) bool {
	_, ok := t.index[category]
	return ok
}

// Categories returns the declared categories in order.
func (t *Table) Categories() []model.Category {
	return append([]model.Category(nil), t.categories...)
}

// Dimensions returns the declared dimensions of a category in order, or nil.
func (t *Table) Dimensions(category model.Category) []Dimension {
	return t.dims[category]
}

// Options returns the option names declared for a dimension, or nil.
func (t *Table) Options(category model.Category, dimension string) []string {
	for _, d := range t.dims[category] {
		if d.Name == dimension {
			return d.OptionNames()
		}
	}
	return nil
}

// Entries returns the table in its declaration shape.
func (t *Table) Entries() []CategoryRules {
	out := make([]CategoryRules, 0, len(t.categories))
	for _, c := range t.categories {
		out = append(out, CategoryRules{Category: c, Dimensions: t.dims[c]})
	}
	return out
}
