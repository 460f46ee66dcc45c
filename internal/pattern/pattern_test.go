package pattern

import (
	"math"
	"testing"

	"lenia/internal/core"
)

func TestTemplatesAreWellFormed(t *testing.T) {
	names := Names()
	if len(names) != 4 {
		t.Fatalf("expected four templates, got %v", names)
	}
	for _, tpl := range Templates() {
		if err := tpl.Defaults.Validate(); err != nil {
			t.Fatalf("template %q carries invalid defaults: %v", tpl.Name, err)
		}
		patch := tpl.Generate(32)
		if len(patch) != 32*32 {
			t.Fatalf("template %q: patch size mismatch: %d", tpl.Name, len(patch))
		}
		var sum float64
		for i, v := range patch {
			if v < 0 || v > 1 {
				t.Fatalf("template %q: cell %d out of range: %g", tpl.Name, i, v)
			}
			sum += v
		}
		if sum == 0 {
			t.Fatalf("template %q generated an empty patch", tpl.Name)
		}
	}
}

func TestByName(t *testing.T) {
	if _, ok := ByName("ring"); !ok {
		t.Fatal("ring must resolve")
	}
	if _, ok := ByName("unknown"); ok {
		t.Fatal("unknown template must miss")
	}
}

func TestTemplatesVanishOutsideDisc(t *testing.T) {
	for _, tpl := range Templates() {
		patch := tpl.Generate(40)
		// Corners lie outside the unit disc.
		for _, i := range []int{0, 39, 39 * 40, 40*40 - 1} {
			if patch[i] != 0 {
				t.Fatalf("template %q: corner cell %d nonzero: %g", tpl.Name, i, patch[i])
			}
		}
	}
}

func TestTemplatesDeterministic(t *testing.T) {
	for _, tpl := range Templates() {
		a := tpl.Generate(24)
		b := tpl.Generate(24)
		for i := range a {
			if a[i] != b[i] {
				t.Fatalf("template %q: generation not deterministic at %d", tpl.Name, i)
			}
		}
	}
}

func TestInjectCompositesMax(t *testing.T) {
	f, err := core.NewField(64, 64, 1)
	if err != nil {
		t.Fatal(err)
	}
	f.Set(0, 32, 32, 0.9)

	tpl, _ := ByName("ring")
	patch := tpl.Generate(20)
	if err := Inject(f, 0, patch, 20, 0.5, 0.5, 1.0); err != nil {
		t.Fatalf("inject: %v", err)
	}

	// The existing stronger density must survive max compositing.
	if got := f.At(0, 32, 32); got < 0.9 {
		t.Fatalf("max compositing must keep the stronger value, got %f", got)
	}
	if f.Mean(0) <= 0.9/float64(64*64) {
		t.Fatal("inject must deposit density around the center")
	}
}

func TestInjectValidation(t *testing.T) {
	f, _ := core.NewField(32, 32, 1)
	patch := make([]float64, 16)

	if err := Inject(f, 0, patch, 0, 0.5, 0.5, 1); err == nil {
		t.Fatal("zero size must be rejected")
	}
	if err := Inject(f, 0, patch, 8, 0.5, 0.5, 1); err == nil {
		t.Fatal("undersized patch must be rejected")
	}
	if err := Inject(f, 0, patch, 4, 0.5, 0.5, 0); err == nil {
		t.Fatal("non-positive scale must be rejected")
	}
}

func TestInjectDropsOutOfBoundsCells(t *testing.T) {
	f, _ := core.NewField(32, 32, 1)
	patch := make([]float64, 8*8)
	for i := range patch {
		patch[i] = 1
	}

	// A patch centered on the edge keeps only its in-bounds half; the rest
	// is dropped rather than wrapped.
	if err := Inject(f, 0, patch, 8, 0.0, 0.5, 1.0); err != nil {
		t.Fatalf("inject: %v", err)
	}
	if got := f.At(0, 31, 16); got != 0 {
		t.Fatalf("injection must not wrap around the seam, got %f at far edge", got)
	}
	if got := f.At(0, 1, 16); got == 0 {
		t.Fatal("in-bounds half of the patch must land")
	}
}

func TestInjectScale(t *testing.T) {
	small, _ := core.NewField(64, 64, 1)
	large, _ := core.NewField(64, 64, 1)
	tpl, _ := ByName("ring")
	patch := tpl.Generate(16)

	if err := Inject(small, 0, patch, 16, 0.5, 0.5, 1.0); err != nil {
		t.Fatal(err)
	}
	if err := Inject(large, 0, patch, 16, 0.5, 0.5, 2.0); err != nil {
		t.Fatal(err)
	}
	if large.Mean(0) <= small.Mean(0) {
		t.Fatal("doubling the scale must enlarge the deposited patch")
	}
}

func TestPaintStrokeAddsAndErases(t *testing.T) {
	f, _ := core.NewField(32, 32, 1)

	PaintStroke(f, 0, 16, 16, 5, 0.8)
	center := f.At(0, 16, 16)
	if center <= 0 {
		t.Fatal("positive stroke must deposit density")
	}
	edge := f.At(0, 16+4, 16)
	if edge >= center {
		t.Fatalf("falloff must weaken the rim: center %f, edge %f", center, edge)
	}

	PaintStroke(f, 0, 16, 16, 5, -2)
	if got := f.At(0, 16, 16); got != 0 {
		t.Fatalf("negative stroke must erase and clamp at 0, got %f", got)
	}
}

func TestPaintStrokeWraps(t *testing.T) {
	f, _ := core.NewField(32, 32, 1)
	PaintStroke(f, 0, 0, 0, 4, 1)
	if got := f.At(0, 31, 31); got <= 0 {
		t.Fatal("stroke at the origin must spill across the seam")
	}
}

func TestPaintStrokeIgnoresBadRadius(t *testing.T) {
	f, _ := core.NewField(16, 16, 1)
	PaintStroke(f, 0, 8, 8, 0, 1)
	if f.Mean(0) != 0 {
		t.Fatal("non-positive radius must be a no-op")
	}
}

func TestTemplateDefaultsMatchCatalogFamilies(t *testing.T) {
	reg := core.NewRegistry()
	tpl, _ := ByName("medusa")
	sp, ok := reg.Get("geminium")
	if !ok {
		t.Fatal("geminium must be in the catalog")
	}
	if math.Abs(tpl.Defaults.R-sp.Params.R) > 1e-9 {
		t.Fatalf("medusa defaults should track the triple-ring species, got R=%g", tpl.Defaults.R)
	}
	if len(tpl.Defaults.Beta) != len(sp.Params.Beta) {
		t.Fatal("medusa must carry the triple-ring weights")
	}
}
