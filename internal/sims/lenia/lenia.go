// Package lenia implements the single-species continuous cellular automaton:
// one density channel advanced by kernel convolution, a bell-shaped growth
// function, and a small integration step.
package lenia

import (
	"fmt"
	"math/rand/v2"
	"runtime"
	"sync"

	"lenia/internal/core"
	"lenia/internal/pattern"
)

// World holds all state for the single-species simulation.
type World struct {
	cfg Config

	w, h int

	field    *core.Field
	registry *core.Registry
	// base is the catalog record of the active species; params is the
	// working copy that drifts while mutation is active.
	base    core.Params
	params  core.Params
	kernel  *core.Kernel
	mutator *core.Mutator

	mutating bool
	display  []uint8
	rng      *rand.Rand

	ticks   int
	elapsed float64
	workers int
}

// New returns a Lenia world with the provided dimensions using defaults.
func New(w, h int) (*World, error) {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig returns a Lenia world configured from the provided options.
// The species registry is created from the built-in catalog; use
// NewWithRegistry to inject a registry carrying custom entries.
func NewWithConfig(cfg Config) (*World, error) {
	return NewWithRegistry(cfg, core.NewRegistry())
}

// NewWithRegistry builds a world against an explicit species registry.
func NewWithRegistry(cfg Config, reg *core.Registry) (*World, error) {
	if cfg.Presets != "" {
		store := core.NewPresetStore()
		if err := store.LoadFile(cfg.Presets); err != nil {
			return nil, err
		}
		if err := store.Merge(reg); err != nil {
			return nil, err
		}
	}
	sp, ok := reg.Get(cfg.Species)
	if !ok {
		return nil, fmt.Errorf("lenia: unknown species %q", cfg.Species)
	}
	if err := sp.Params.Validate(); err != nil {
		return nil, err
	}
	field, err := core.NewField(cfg.Width, cfg.Height, 1)
	if err != nil {
		return nil, err
	}
	kernel, err := core.NewKernel(sp.Params.R, sp.Params.Beta)
	if err != nil {
		return nil, err
	}
	rng := core.NewRNG(cfg.Seed).Source()
	w := &World{
		cfg:      cfg,
		w:        cfg.Width,
		h:        cfg.Height,
		field:    field,
		registry: reg,
		base:     sp.Params.Clone(),
		params:   sp.Params.Clone(),
		kernel:   kernel,
		mutator:  core.NewMutator(core.DefaultMutationBounds(), rng),
		display:  make([]uint8, cfg.Width*cfg.Height),
		rng:      rng,
		workers:  runtime.GOMAXPROCS(0),
	}
	return w, nil
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "lenia" }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.w, H: w.h} }

// Cells exposes the quantized display buffer.
func (w *World) Cells() []uint8 { return w.display }

// Channels reports the number of density channels.
func (w *World) Channels() int { return 1 }

// Channel exposes the current density plane.
func (w *World) Channel(int) []float32 { return w.field.Channel(0) }

// Params returns the active (possibly drifted) parameter record.
func (w *World) Params() core.Params { return w.params.Clone() }

// Registry exposes the species registry the world was built against.
func (w *World) Registry() *core.Registry { return w.registry }

// Elapsed returns the accumulated simulation time in integration units.
func (w *World) Elapsed() float64 { return w.elapsed }

// Ticks returns the number of steps taken since the last Reset.
func (w *World) Ticks() int { return w.ticks }

// Reset reseeds the field with random blobs using deterministic randomness
// and reverts any mutation drift to the catalog parameters.
func (w *World) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = w.cfg.Seed
	}
	w.rng = core.NewRNG(effective).Source()
	w.mutator = core.NewMutator(core.DefaultMutationBounds(), w.rng)
	w.params = w.base.Clone()
	w.rebuildKernel()
	w.field.Clear()
	w.field.Randomize(w.rng, w.cfg.Style)
	w.ticks = 0
	w.elapsed = 0
	w.rebuildDisplay()
}

// Clear zeroes the field without touching parameters.
func (w *World) Clear() {
	w.field.Clear()
	w.rebuildDisplay()
}

// Step advances the field by one tick: convolve, grow, integrate, swap.
// While mutation is active the working parameters drift afterwards.
func (w *World) Step() {
	cur := w.field.Channel(0)
	next := w.field.NextChannel(0)
	w.forEachRow(func(y0, y1 int) {
		w.stepRows(cur, next, y0, y1)
	})
	w.field.Swap()
	w.ticks++
	w.elapsed += w.cfg.DT / w.params.T
	if w.mutating {
		w.params = w.mutator.Mutate(w.params, w.cfg.MutationSpeed)
		w.rebuildKernel()
	}
	w.rebuildDisplay()
}

func (w *World) stepRows(cur, next []float32, y0, y1 int) {
	dt := w.cfg.DT
	trail := float32(w.cfg.Trail)
	for y := y0; y < y1; y++ {
		for x := 0; x < w.w; x++ {
			u := w.kernel.Potential(cur, w.w, w.h, x, y)
			g := core.Growth(u, w.params.Mu, w.params.Sigma)
			i := y*w.w + x
			v := core.Clamp01(cur[i] + float32(g*dt/w.params.T))
			next[i] = v * trail
		}
	}
}

// forEachRow splits the row range across the worker count and joins before
// returning, so the step stays a pure read-current/write-next transform.
func (w *World) forEachRow(fn func(y0, y1 int)) {
	workers := w.workers
	if workers < 1 || w.h < workers*4 {
		fn(0, w.h)
		return
	}
	chunk := (w.h + workers - 1) / workers
	var wg sync.WaitGroup
	for y0 := 0; y0 < w.h; y0 += chunk {
		y1 := y0 + chunk
		if y1 > w.h {
			y1 = w.h
		}
		wg.Add(1)
		go func(a, b int) {
			defer wg.Done()
			fn(a, b)
		}(y0, y1)
	}
	wg.Wait()
}

// SetSpecies switches the active species to a registry entry.
func (w *World) SetSpecies(id string) error {
	sp, ok := w.registry.Get(id)
	if !ok {
		return fmt.Errorf("lenia: unknown species %q", id)
	}
	if err := sp.Params.Validate(); err != nil {
		return err
	}
	w.cfg.Species = id
	w.base = sp.Params.Clone()
	w.params = sp.Params.Clone()
	return w.rebuildKernel()
}

// SetParameters installs a plain parameter record, treating it like a catalog
// entry. Invalid records are rejected before anything changes.
func (w *World) SetParameters(p core.Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	w.base = p.Clone()
	w.params = p.Clone()
	return w.rebuildKernel()
}

// SetMutationActive toggles parameter drift. Turning mutation off discards
// the drifted working copy and reverts to the species defaults.
func (w *World) SetMutationActive(active bool) {
	if w.mutating && !active {
		w.params = w.base.Clone()
		w.rebuildKernel()
	}
	w.mutating = active
}

// MutationActive reports whether parameter drift is running.
func (w *World) MutationActive() bool { return w.mutating }

// Paint applies an additive brush stroke to the current buffer.
func (w *World) Paint(x, y, radius, intensity float64) {
	pattern.PaintStroke(w.field, 0, x, y, radius, intensity)
	w.rebuildDisplay()
}

// InjectTemplate composites a named creature template at the normalized
// position (nx, ny). The patch side length tracks the kernel radius so seeded
// creatures match the active species scale.
func (w *World) InjectTemplate(name string, nx, ny, scale float64) error {
	t, ok := pattern.ByName(name)
	if !ok {
		return fmt.Errorf("lenia: unknown template %q", name)
	}
	size := int(w.params.R * 2)
	if size < 4 {
		size = 4
	}
	patch := t.Generate(size)
	if err := pattern.Inject(w.field, 0, patch, size, nx, ny, scale); err != nil {
		return err
	}
	w.rebuildDisplay()
	return nil
}

// PopulationStats returns the mean density per channel.
func (w *World) PopulationStats() []float64 {
	return []float64{w.field.Mean(0)}
}

func (w *World) rebuildKernel() error {
	k, err := core.NewKernel(w.params.R, w.params.Beta)
	if err != nil {
		return err
	}
	w.kernel = k
	return nil
}

func (w *World) rebuildDisplay() {
	plane := w.field.Channel(0)
	for i, v := range plane {
		w.display[i] = uint8(core.Clamp01(v)*255 + 0.5)
	}
}

func init() {
	core.Register("lenia", func(cfg map[string]string) (core.Sim, error) {
		return NewWithConfig(FromMap(cfg))
	})
}
