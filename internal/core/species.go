package core

import (
	"fmt"
	"sort"
)

// Params is the per-species tunable record driving one channel's dynamics.
type Params struct {
	// R is the kernel radius in cells.
	R float64
	// T is the time-scale divisor; one tick advances density by G·dt/T.
	T float64
	// Mu is the growth center: the neighborhood potential of peak growth.
	Mu float64
	// Sigma is the growth width.
	Sigma float64
	// Beta optionally weights concentric kernel rings; empty means a single
	// ring.
	Beta []float64
}

// Validate rejects parameter records the update math cannot accept. Callers
// must check before stepping; the engine never clamps invalid values behind
// the caller's back.
func (p Params) Validate() error {
	if p.R <= 0 {
		return fmt.Errorf("species: kernel radius must be positive, got %g", p.R)
	}
	if p.T <= 0 {
		return fmt.Errorf("species: time scale must be positive, got %g", p.T)
	}
	if p.Sigma <= 0 {
		return fmt.Errorf("species: growth width must be positive, got %g", p.Sigma)
	}
	for i, b := range p.Beta {
		if b < 0 {
			return fmt.Errorf("species: ring weight %d must be non-negative, got %g", i, b)
		}
	}
	return nil
}

// Clone returns a deep copy, so a mutated working copy never aliases the
// catalog entry it drifted from.
func (p Params) Clone() Params {
	c := p
	c.Beta = append([]float64(nil), p.Beta...)
	return c
}

// Species pairs a parameter record with identity metadata.
type Species struct {
	ID          string
	Name        string
	Description string
	Params      Params
}

// Catalog returns the built-in named species. The entries are working
// defaults known to produce stable creatures at moderate grid sizes.
func Catalog() []Species {
	return []Species{
		{
			ID:          "orbium",
			Name:        "Orbium",
			Description: "classic single-ring glider",
			Params:      Params{R: 13, T: 10, Mu: 0.15, Sigma: 0.015},
		},
		{
			ID:          "gyrium",
			Name:        "Gyrium",
			Description: "fast rotator with a wide growth band",
			Params:      Params{R: 10, T: 10, Mu: 0.156, Sigma: 0.022},
		},
		{
			ID:          "geminium",
			Name:        "Geminium",
			Description: "triple-ring splitter",
			Params:      Params{R: 18, T: 10, Mu: 0.26, Sigma: 0.036, Beta: []float64{0.5, 1, 0.667}},
		},
		{
			ID:          "scutium",
			Name:        "Scutium",
			Description: "compact slow shield",
			Params:      Params{R: 8, T: 20, Mu: 0.12, Sigma: 0.01},
		},
		{
			ID:          "vagus",
			Name:        "Vagus",
			Description: "drifting amoeboid, tolerant of crowding",
			Params:      Params{R: 15, T: 14, Mu: 0.2, Sigma: 0.028},
		},
	}
}

// Registry is an explicit, injectable store of named species. It replaces any
// notion of a shared mutable species table: custom entries enter through
// Upsert and nothing mutates in place.
type Registry struct {
	species map[string]Species
}

// NewRegistry returns a registry preloaded with the built-in catalog.
func NewRegistry() *Registry {
	r := &Registry{species: make(map[string]Species)}
	for _, s := range Catalog() {
		r.species[s.ID] = s
	}
	return r
}

// Upsert adds or replaces a species after validating its parameters.
func (r *Registry) Upsert(id string, s Species) error {
	if id == "" {
		return fmt.Errorf("species: empty id")
	}
	if err := s.Params.Validate(); err != nil {
		return err
	}
	s.ID = id
	s.Params = s.Params.Clone()
	r.species[id] = s
	return nil
}

// Get looks up a species by id.
func (r *Registry) Get(id string) (Species, bool) {
	s, ok := r.species[id]
	if ok {
		s.Params = s.Params.Clone()
	}
	return s, ok
}

// IDs returns the registered ids in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.species))
	for id := range r.species {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
