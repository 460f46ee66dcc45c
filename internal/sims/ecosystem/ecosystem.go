// Package ecosystem extends the single-species update with a cross-channel
// interaction matrix: predation losses, benefit gains, and a density
// dependent crowding mortality shared by all species.
package ecosystem

import (
	"fmt"
	"image/color"
	"math/rand/v2"
	"runtime"
	"sync"

	"lenia/internal/core"
	"lenia/internal/pattern"
)

// ChannelInfo carries per-species display metadata, passed through to the
// render layer untouched.
type ChannelInfo struct {
	ID    string
	Name  string
	Color color.RGBA
}

var channelColors = [Channels]color.RGBA{
	{R: 235, G: 80, B: 60, A: 255},
	{R: 70, G: 200, B: 110, A: 255},
	{R: 80, G: 120, B: 235, A: 255},
}

// World holds all state for the ecosystem simulation.
type World struct {
	cfg Config

	w, h int

	field    *core.Field
	registry *core.Registry
	base     [Channels]core.Params
	params   [Channels]core.Params
	kernels  [Channels]*core.Kernel
	info     [Channels]ChannelInfo
	// matrix[i][j] is the signed effect of species j's local density on
	// species i; the diagonal stays zero.
	matrix [Channels][Channels]float64

	mutator  *core.Mutator
	mutating bool
	display  []uint8
	rng      *rand.Rand

	ticks   int
	elapsed float64
	workers int
}

// New returns an ecosystem world with the provided dimensions using defaults.
func New(w, h int) (*World, error) {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig returns an ecosystem world configured from the provided
// options.
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
	field, err := core.NewField(cfg.Width, cfg.Height, Channels)
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
		mutator:  core.NewMutator(core.DefaultMutationBounds(), rng),
		display:  make([]uint8, cfg.Width*cfg.Height),
		rng:      rng,
		workers:  runtime.GOMAXPROCS(0),
	}
	for c := 0; c < Channels; c++ {
		sp, ok := reg.Get(cfg.Species[c])
		if !ok {
			return nil, fmt.Errorf("ecosystem: unknown species %q for channel %d", cfg.Species[c], c)
		}
		if err := sp.Params.Validate(); err != nil {
			return nil, err
		}
		w.base[c] = sp.Params.Clone()
		w.params[c] = sp.Params.Clone()
		w.kernels[c], err = core.NewKernel(sp.Params.R, sp.Params.Beta)
		if err != nil {
			return nil, err
		}
		w.info[c] = ChannelInfo{ID: sp.ID, Name: sp.Name, Color: channelColors[c]}
	}
	w.rebuildMatrix()
	return w, nil
}

// rebuildMatrix derives the interaction matrix from the shared predation and
// benefit scalars over a cyclic food chain: channel i preys on channel i+1.
// The representation stays a full matrix so callers can generalize later.
func (w *World) rebuildMatrix() {
	p := w.cfg.Params
	for i := 0; i < Channels; i++ {
		for j := 0; j < Channels; j++ {
			w.matrix[i][j] = 0
		}
	}
	for i := 0; i < Channels; i++ {
		prey := (i + 1) % Channels
		// i gains from prey, prey loses to i.
		w.matrix[i][prey] += p.BenefitStrength
		w.matrix[prey][i] -= p.PredationStrength
	}
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "ecosystem" }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.w, H: w.h} }

// Cells exposes the quantized display buffer (peak density across channels).
func (w *World) Cells() []uint8 { return w.display }

// Channels reports the number of density channels.
func (w *World) Channels() int { return Channels }

// Channel exposes the current density plane for one species.
func (w *World) Channel(c int) []float32 { return w.field.Channel(c) }

// ChannelInfos returns the per-species display metadata.
func (w *World) ChannelInfos() []ChannelInfo {
	out := make([]ChannelInfo, Channels)
	copy(out, w.info[:])
	return out
}

// Matrix returns a copy of the interaction matrix.
func (w *World) Matrix() [Channels][Channels]float64 { return w.matrix }

// Registry exposes the backing species registry.
func (w *World) Registry() *core.Registry { return w.registry }

// Elapsed returns the accumulated simulation time in integration units.
func (w *World) Elapsed() float64 { return w.elapsed }

// Ticks returns the number of steps taken since the last Reset.
func (w *World) Ticks() int { return w.ticks }

// Reset reseeds every channel with random blobs using deterministic
// randomness and reverts mutation drift.
func (w *World) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = w.cfg.Seed
	}
	w.rng = core.NewRNG(effective).Source()
	w.mutator = core.NewMutator(core.DefaultMutationBounds(), w.rng)
	for c := 0; c < Channels; c++ {
		w.params[c] = w.base[c].Clone()
	}
	w.rebuildKernels()
	w.field.Clear()
	w.field.Randomize(w.rng, w.cfg.Style)
	w.ticks = 0
	w.elapsed = 0
	w.rebuildDisplay()
}

// Clear zeroes all channels without touching parameters.
func (w *World) Clear() {
	w.field.Clear()
	w.rebuildDisplay()
}

// Step advances all channels by one tick. Each species senses its
// neighborhood through its own kernel, then the interaction terms sample
// local same-cell density only: predation and benefit act where creatures
// actually overlap, while growth sensing stays diffuse. This asymmetry is
// deliberate and load-bearing for boom/bust cycles.
func (w *World) Step() {
	var cur, next [Channels][]float32
	for c := 0; c < Channels; c++ {
		cur[c] = w.field.Channel(c)
		next[c] = w.field.NextChannel(c)
	}
	w.forEachRow(func(y0, y1 int) {
		w.stepRows(cur, next, y0, y1)
	})
	w.field.Swap()
	w.ticks++
	w.elapsed += w.cfg.DT
	if w.mutating {
		for c := 0; c < Channels; c++ {
			w.params[c] = w.mutator.Mutate(w.params[c], w.cfg.MutationSpeed)
		}
		w.rebuildKernels()
	}
	w.rebuildDisplay()
}

func (w *World) stepRows(cur, next [Channels][]float32, y0, y1 int) {
	p := w.cfg.Params
	dt := w.cfg.DT
	decay := float32(p.Decay)
	for y := y0; y < y1; y++ {
		for x := 0; x < w.w; x++ {
			i := y*w.w + x

			var local [Channels]float64
			var total float64
			for c := 0; c < Channels; c++ {
				local[c] = float64(cur[c][i])
				total += local[c]
			}
			crowd := core.Smoothstep(total, p.CrowdLow, p.CrowdHigh) * p.CrowdCoefficient

			for c := 0; c < Channels; c++ {
				u := w.kernels[c].Potential(cur[c], w.w, w.h, x, y)
				g := core.Growth(u, w.params[c].Mu, w.params[c].Sigma)

				var loss, gain float64
				for j := 0; j < Channels; j++ {
					m := w.matrix[c][j]
					if m < 0 {
						loss += -m * local[j] * local[c]
					} else if m > 0 {
						gain += m * local[j] * local[c] * p.BenefitFactor
					}
				}

				v := local[c] + g*dt/w.params[c].T + gain - loss - crowd*local[c]
				next[c][i] = core.Clamp01(float32(v)) * decay
			}
		}
	}
}

// forEachRow splits the row range across the worker count and joins before
// returning.
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

// SetSpeciesParameters installs a parameter record for one channel after
// validation.
func (w *World) SetSpeciesParameters(c int, p core.Params) error {
	if c < 0 || c >= Channels {
		return fmt.Errorf("ecosystem: channel %d out of range", c)
	}
	if err := p.Validate(); err != nil {
		return err
	}
	k, err := core.NewKernel(p.R, p.Beta)
	if err != nil {
		return err
	}
	w.base[c] = p.Clone()
	w.params[c] = p.Clone()
	w.kernels[c] = k
	return nil
}

// SetMutationActive toggles parameter drift for every species. Turning it off
// reverts all working copies to their catalog defaults.
func (w *World) SetMutationActive(active bool) {
	if w.mutating && !active {
		for c := 0; c < Channels; c++ {
			w.params[c] = w.base[c].Clone()
		}
		w.rebuildKernels()
	}
	w.mutating = active
}

// MutationActive reports whether parameter drift is running.
func (w *World) MutationActive() bool { return w.mutating }

// Paint applies an additive brush stroke to every channel. Use PaintChannel
// to target a single species.
func (w *World) Paint(x, y, radius, intensity float64) {
	for c := 0; c < Channels; c++ {
		pattern.PaintStroke(w.field, c, x, y, radius, intensity)
	}
	w.rebuildDisplay()
}

// PaintChannel applies an additive brush stroke to one species.
func (w *World) PaintChannel(c int, x, y, radius, intensity float64) error {
	if c < 0 || c >= Channels {
		return fmt.Errorf("ecosystem: channel %d out of range", c)
	}
	pattern.PaintStroke(w.field, c, x, y, radius, intensity)
	w.rebuildDisplay()
	return nil
}

// InjectTemplate composites a named creature template into one channel at
// the normalized position (nx, ny).
func (w *World) InjectTemplate(c int, name string, nx, ny, scale float64) error {
	if c < 0 || c >= Channels {
		return fmt.Errorf("ecosystem: channel %d out of range", c)
	}
	t, ok := pattern.ByName(name)
	if !ok {
		return fmt.Errorf("ecosystem: unknown template %q", name)
	}
	size := int(w.params[c].R * 2)
	if size < 4 {
		size = 4
	}
	if err := pattern.Inject(w.field, c, t.Generate(size), size, nx, ny, scale); err != nil {
		return err
	}
	w.rebuildDisplay()
	return nil
}

// PopulationStats returns the mean density per channel.
func (w *World) PopulationStats() []float64 {
	out := make([]float64, Channels)
	for c := 0; c < Channels; c++ {
		out[c] = w.field.Mean(c)
	}
	return out
}

func (w *World) rebuildKernels() {
	for c := 0; c < Channels; c++ {
		k, err := core.NewKernel(w.params[c].R, w.params[c].Beta)
		if err != nil {
			// Mutation bounds keep R positive, so this is unreachable
			// unless the bounds themselves are broken.
			continue
		}
		w.kernels[c] = k
	}
}

func (w *World) rebuildDisplay() {
	var planes [Channels][]float32
	for c := 0; c < Channels; c++ {
		planes[c] = w.field.Channel(c)
	}
	for i := range w.display {
		var peak float32
		for c := 0; c < Channels; c++ {
			if v := planes[c][i]; v > peak {
				peak = v
			}
		}
		w.display[i] = uint8(core.Clamp01(peak)*255 + 0.5)
	}
}

func init() {
	core.Register("ecosystem", func(cfg map[string]string) (core.Sim, error) {
		return NewWithConfig(FromMap(cfg))
	})
}
