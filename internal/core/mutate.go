package core

import "math/rand/v2"

// Range bounds one tunable during mutation drift.
type Range struct {
	Min, Max float64
}

func (r Range) clamp(v float64) float64 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// MutationBounds holds the valid drift range of every mutable parameter.
type MutationBounds struct {
	R     Range
	T     Range
	Mu    Range
	Sigma Range
}

// DefaultMutationBounds returns the ranges within which random-walk mutation
// stays.
func DefaultMutationBounds() MutationBounds {
	return MutationBounds{
		R:     Range{Min: 5, Max: 20},
		T:     Range{Min: 5, Max: 20},
		Mu:    Range{Min: 0.05, Max: 0.3},
		Sigma: Range{Min: 0.005, Max: 0.05},
	}
}

// Mutator drifts species parameters with a bounded random walk. Each step
// moves every tunable by a small uniform delta scaled to one percent of its
// valid range, so drift stays slow and organic rather than jumpy.
type Mutator struct {
	bounds MutationBounds
	rng    *rand.Rand
}

// NewMutator builds a mutator over the given bounds and randomness source.
func NewMutator(bounds MutationBounds, rng *rand.Rand) *Mutator {
	return &Mutator{bounds: bounds, rng: rng}
}

// Mutate returns a drifted copy of p. Every parameter stays inside its bound
// regardless of speed.
func (m *Mutator) Mutate(p Params, speed float64) Params {
	out := p.Clone()
	out.R = m.walk(out.R, speed, m.bounds.R)
	out.T = m.walk(out.T, speed, m.bounds.T)
	out.Mu = m.walk(out.Mu, speed, m.bounds.Mu)
	out.Sigma = m.walk(out.Sigma, speed, m.bounds.Sigma)
	return out
}

func (m *Mutator) walk(v, speed float64, r Range) float64 {
	scale := (r.Max - r.Min) * 0.01
	v += (m.rng.Float64() - 0.5) * speed * scale
	return r.clamp(v)
}
