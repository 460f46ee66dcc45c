package core

import (
	"slices"
	"testing"
)

func TestParamsValidate(t *testing.T) {
	good := Params{R: 13, T: 10, Mu: 0.15, Sigma: 0.015}
	if err := good.Validate(); err != nil {
		t.Fatalf("catalog-shaped params must validate: %v", err)
	}

	cases := []struct {
		name string
		p    Params
	}{
		{"zero radius", Params{R: 0, T: 10, Mu: 0.15, Sigma: 0.015}},
		{"negative radius", Params{R: -2, T: 10, Mu: 0.15, Sigma: 0.015}},
		{"zero time scale", Params{R: 13, T: 0, Mu: 0.15, Sigma: 0.015}},
		{"zero sigma", Params{R: 13, T: 10, Mu: 0.15, Sigma: 0}},
		{"negative ring weight", Params{R: 13, T: 10, Mu: 0.15, Sigma: 0.015, Beta: []float64{1, -0.5}}},
	}
	for _, tc := range cases {
		if err := tc.p.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
	}
}

func TestParamsCloneDoesNotAliasBeta(t *testing.T) {
	p := Params{R: 18, T: 10, Mu: 0.26, Sigma: 0.036, Beta: []float64{0.5, 1, 0.667}}
	c := p.Clone()
	c.Beta[0] = 99
	if p.Beta[0] != 0.5 {
		t.Fatal("clone must not share the beta slice")
	}
}

func TestCatalogEntriesValidate(t *testing.T) {
	entries := Catalog()
	if len(entries) < 5 {
		t.Fatalf("expected at least five built-in species, got %d", len(entries))
	}
	seen := map[string]bool{}
	for _, s := range entries {
		if s.ID == "" || s.Name == "" {
			t.Fatalf("catalog entry missing identity: %+v", s)
		}
		if seen[s.ID] {
			t.Fatalf("duplicate catalog id %q", s.ID)
		}
		seen[s.ID] = true
		if err := s.Params.Validate(); err != nil {
			t.Fatalf("catalog entry %q invalid: %v", s.ID, err)
		}
	}
	if !seen["orbium"] {
		t.Fatal("catalog must include orbium")
	}
}

func TestRegistryUpsertAndGet(t *testing.T) {
	reg := NewRegistry()

	if _, ok := reg.Get("orbium"); !ok {
		t.Fatal("registry must preload the catalog")
	}
	if _, ok := reg.Get("nope"); ok {
		t.Fatal("unknown id must miss")
	}

	custom := Species{Name: "Custom", Params: Params{R: 9, T: 12, Mu: 0.18, Sigma: 0.02}}
	if err := reg.Upsert("custom", custom); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	got, ok := reg.Get("custom")
	if !ok {
		t.Fatal("upserted species must resolve")
	}
	if got.ID != "custom" {
		t.Fatalf("upsert must stamp the id, got %q", got.ID)
	}

	if err := reg.Upsert("", custom); err == nil {
		t.Fatal("empty id must be rejected")
	}
	bad := custom
	bad.Params.Sigma = 0
	if err := reg.Upsert("bad", bad); err == nil {
		t.Fatal("invalid params must be rejected")
	}
}

func TestRegistryGetReturnsCopies(t *testing.T) {
	reg := NewRegistry()
	first, _ := reg.Get("geminium")
	first.Params.Beta[0] = 42
	second, _ := reg.Get("geminium")
	if second.Params.Beta[0] == 42 {
		t.Fatal("mutating a returned species must not leak into the registry")
	}
}

func TestRegistryIDsSorted(t *testing.T) {
	reg := NewRegistry()
	ids := reg.IDs()
	if !slices.IsSorted(ids) {
		t.Fatalf("ids must be sorted, got %v", ids)
	}
	if len(ids) != len(Catalog()) {
		t.Fatalf("expected %d ids, got %d", len(Catalog()), len(ids))
	}
}
