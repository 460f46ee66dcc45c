package lenia

import (
	"slices"
	"testing"

	"lenia/internal/core"
)

func TestResetDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 48
	cfg.Height = 40
	cfg.Seed = 99

	world, err := NewWithConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	world.Reset(0)

	initialPlane := append([]float32(nil), world.Channel(0)...)
	initialCells := append([]uint8(nil), world.Cells()...)
	if len(initialPlane) != 48*40 {
		t.Fatalf("unexpected plane size %d", len(initialPlane))
	}

	// Advance and repaint so Reset has something to rebuild from scratch.
	world.Step()
	world.Paint(10, 10, 4, 0.9)

	world.Reset(0)

	if !slices.Equal(initialPlane, world.Channel(0)) {
		t.Fatal("Reset with config seed not deterministic for the density plane")
	}
	if !slices.Equal(initialCells, world.Cells()) {
		t.Fatal("Reset with config seed not deterministic for the display buffer")
	}
	if world.Ticks() != 0 || world.Elapsed() != 0 {
		t.Fatal("Reset must zero the clock")
	}

	world.Reset(777)
	seeded := append([]float32(nil), world.Channel(0)...)
	world.Reset(777)
	if !slices.Equal(seeded, world.Channel(0)) {
		t.Fatal("Reset with explicit seed not deterministic")
	}
	if slices.Equal(initialPlane, seeded) {
		t.Fatal("different seeds should produce different initial fields")
	}
}

func TestStepDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 48
	cfg.Height = 48
	cfg.Seed = 5

	a, err := NewWithConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewWithConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	a.Reset(0)
	b.Reset(0)
	for i := 0; i < 20; i++ {
		a.Step()
		b.Step()
	}
	if !slices.Equal(a.Channel(0), b.Channel(0)) {
		t.Fatal("equal seeds and parameters must evolve identically")
	}
}

func TestStepKeepsDensityBounded(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 64
	cfg.Height = 64

	world, err := NewWithConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	world.Reset(1)
	for i := 0; i < 30; i++ {
		world.Step()
	}
	for i, v := range world.Channel(0) {
		if v < 0 || v > 1 {
			t.Fatalf("density out of range at %d after stepping: %f", i, v)
		}
	}
}

func TestEmptyFieldIsAFixpoint(t *testing.T) {
	world, err := New(32, 32)
	if err != nil {
		t.Fatal(err)
	}
	world.Reset(1)
	world.Clear()
	for i := 0; i < 5; i++ {
		world.Step()
	}
	if got := world.PopulationStats()[0]; got != 0 {
		t.Fatalf("an empty field must stay empty, got mean %g", got)
	}
}

func TestOrbiumRingSurvivesShortRun(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 64
	cfg.Height = 64
	cfg.Species = "orbium"

	world, err := NewWithConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	world.Reset(1)
	world.Clear()
	if err := world.InjectTemplate("ring", 0.5, 0.5, 1.0); err != nil {
		t.Fatal(err)
	}
	seeded := world.PopulationStats()[0]
	if seeded <= 0 {
		t.Fatal("template injection must deposit density")
	}

	for i := 0; i < 10; i++ {
		world.Step()
	}
	mean := world.PopulationStats()[0]
	if mean < 0.001 {
		t.Fatalf("seeded ring died out too fast: mean %g", mean)
	}
	if mean > 0.5 {
		t.Fatalf("seeded ring exploded: mean %g", mean)
	}
}

func TestMutationToggleRevertsParameters(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 32
	cfg.Height = 32
	cfg.MutationSpeed = 10

	world, err := NewWithConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	world.Reset(3)
	base := world.Params()

	world.SetMutationActive(true)
	if !world.MutationActive() {
		t.Fatal("mutation must report active")
	}
	for i := 0; i < 50; i++ {
		world.Step()
	}
	drifted := world.Params()
	if drifted.R == base.R && drifted.T == base.T && drifted.Mu == base.Mu && drifted.Sigma == base.Sigma {
		t.Fatal("parameters should drift while mutation is active")
	}

	bounds := core.DefaultMutationBounds()
	if drifted.R < bounds.R.Min || drifted.R > bounds.R.Max ||
		drifted.Mu < bounds.Mu.Min || drifted.Mu > bounds.Mu.Max {
		t.Fatalf("drift escaped its bounds: %+v", drifted)
	}

	world.SetMutationActive(false)
	reverted := world.Params()
	if reverted.R != base.R || reverted.T != base.T || reverted.Mu != base.Mu || reverted.Sigma != base.Sigma {
		t.Fatalf("toggling mutation off must revert to the species defaults, got %+v", reverted)
	}
}

func TestSetParametersValidatesFirst(t *testing.T) {
	world, err := New(32, 32)
	if err != nil {
		t.Fatal(err)
	}
	before := world.Params()

	bad := before.Clone()
	bad.Sigma = 0
	if err := world.SetParameters(bad); err == nil {
		t.Fatal("invalid parameters must be rejected")
	}
	after := world.Params()
	if after.Sigma != before.Sigma {
		t.Fatal("rejected update must leave the world untouched")
	}

	good := before.Clone()
	good.Mu = 0.2
	if err := world.SetParameters(good); err != nil {
		t.Fatalf("valid update rejected: %v", err)
	}
	if world.Params().Mu != 0.2 {
		t.Fatal("accepted update must apply")
	}
}

func TestSetSpecies(t *testing.T) {
	world, err := New(32, 32)
	if err != nil {
		t.Fatal(err)
	}
	if err := world.SetSpecies("geminium"); err != nil {
		t.Fatalf("catalog species must install: %v", err)
	}
	if got := world.Params().R; got != 18 {
		t.Fatalf("species switch must adopt the new radius, got %g", got)
	}
	if err := world.SetSpecies("missing"); err == nil {
		t.Fatal("unknown species must be rejected")
	}
}

func TestUnknownConfiguredSpeciesFailsConstruction(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Species = "missing"
	if _, err := NewWithConfig(cfg); err == nil {
		t.Fatal("unknown configured species must fail construction")
	}
}

func TestPaintAndClear(t *testing.T) {
	world, err := New(32, 32)
	if err != nil {
		t.Fatal(err)
	}
	world.Reset(2)
	world.Clear()
	if world.PopulationStats()[0] != 0 {
		t.Fatal("Clear must empty the field")
	}

	world.Paint(16, 16, 5, 0.8)
	if world.PopulationStats()[0] <= 0 {
		t.Fatal("painting must deposit density")
	}
	if world.Cells()[16*32+16] == 0 {
		t.Fatal("display buffer must track painted density")
	}

	world.Paint(16, 16, 5, -5)
	if world.PopulationStats()[0] != 0 {
		t.Fatal("erasing must clamp back to zero")
	}
}

func TestDisplayQuantization(t *testing.T) {
	world, err := New(16, 16)
	if err != nil {
		t.Fatal(err)
	}
	world.Reset(4)
	world.Clear()
	world.Paint(8, 8, 1, 1)
	cells := world.Cells()
	if cells[8*16+8] != 255 {
		t.Fatalf("full density must quantize to 255, got %d", cells[8*16+8])
	}
	if cells[0] != 0 {
		t.Fatalf("empty cell must quantize to 0, got %d", cells[0])
	}
}

func TestRegisteredFactory(t *testing.T) {
	factory, ok := core.Sims()["lenia"]
	if !ok {
		t.Fatal("lenia must self-register")
	}
	sim, err := factory(map[string]string{"w": "24", "h": "20", "species": "gyrium"})
	if err != nil {
		t.Fatalf("factory: %v", err)
	}
	if s := sim.Size(); s.W != 24 || s.H != 20 {
		t.Fatalf("factory must honor dimensions, got %+v", s)
	}
	if _, err := factory(map[string]string{"species": "missing"}); err == nil {
		t.Fatal("factory must surface construction errors")
	}
}
