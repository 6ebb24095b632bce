// Package draw provides seeded random streams and weighted categorical draws.
package draw

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/google/uuid"
)

// Weighted draws items with probability proportional to their weight.
// It is immutable after construction and safe to share; the caller supplies
// the random stream.
type Weighted[T any] struct {
	items []T
	cum   []float64
	total float64
}

// NewWeighted validates weights and builds a sampler. Weights must be finite,
// non-negative, match items one to one, and sum to more than zero.
func NewWeighted[T any](items []T, weights []float64) (*Weighted[T], error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no items", ErrInvalidWeights)
	}
	if len(items) != len(weights) {
		return nil, fmt.Errorf("%w: %d items but %d weights", ErrInvalidWeights, len(items), len(weights))
	}
	w := &Weighted[T]{
		items: append([]T(nil), items...),
		cum:   make([]float64, len(weights)),
	}
	for i, v := range weights {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return nil, fmt.Errorf("%w: weight %d is %v", ErrInvalidWeights, i, v)
		}
		w.total += v
		w.cum[i] = w.total
	}
	if w.total <= 0 {
		return nil, fmt.Errorf("%w: weights sum to zero", ErrInvalidWeights)
	}
	return w, nil
}

// Draw returns one item.
func (w *Weighted[T]) Draw(r *rand.Rand) T {
	u := r.Float64() * w.total
	for i, c := range w.cum {
		if u < c {
			return w.items[i]
		}
	}
	// u can only reach total through rounding; return the last item with weight.
	for i := len(w.cum) - 1; i > 0; i-- {
		if w.cum[i] > w.cum[i-1] {
			return w.items[i]
		}
	}
	return w.items[0]
}

// Probability returns the normalized weight of item i.
func (w *Weighted[T]) Probability(i int) float64 {
	if i < 0 || i >= len(w.cum) {
		return 0
	}
	prev := 0.0
	if i > 0 {
		prev = w.cum[i-1]
	}
	return (w.cum[i] - prev) / w.total
}

// Len returns the number of items.
func (w *Weighted[T]) Len() int { return len(w.items) }

// Uniform picks one element of items with equal probability.
// It panics on an empty slice, like rand.Intn.
func Uniform[T any](r *rand.Rand, items []T) T {
	return items[r.Intn(len(items))]
}

// IntBetween returns a uniform integer in the inclusive range [lo, hi].
func IntBetween(r *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo+1)
}

// Stream returns a private generator for the stream at index, derived from
// seed. Streams for different indexes are independent of each other and of
// the order in which they are created.
func Stream(seed int64, index int) *rand.Rand {
	s := splitmix(uint64(seed) ^ splitmix(uint64(index))) //nolint:gosec // bit reinterpretation
	//nolint:gosec // deterministic streams are required for reproducible runs
	return rand.New(rand.NewSource(int64(s)))
}

// UUID draws a version 4 UUID from r, so identifiers replay with the stream.
func UUID(r *rand.Rand) string {
	id, err := uuid.NewRandomFromReader(r)
	if err != nil {
		// *rand.Rand.Read never fails.
		panic(err)
	}
	return id.String()
}

func splitmix(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
