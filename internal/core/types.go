package core

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Sim defines the minimal contract a simulation must implement. Cells exposes
// a quantized display buffer; sims with continuous state additionally
// implement DensityProvider.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step()
	Cells() []uint8
}

// DensityProvider is implemented by sims whose state is a continuous density
// field. Channel returns the current (read-only) plane for one channel.
type DensityProvider interface {
	Channels() int
	Channel(c int) []float32
}

// Painter is implemented by sims that accept brush strokes on the current
// buffer. Coordinates are in cells; calls must not overlap a Step.
type Painter interface {
	Paint(x, y, radius, intensity float64)
}

// StatsProvider exposes a per-channel mean-density snapshot.
type StatsProvider interface {
	PopulationStats() []float64
}

// Factory constructs a Sim using an optional configuration map. Construction
// fails on configuration the sim cannot accept, such as an unknown species id.
type Factory func(cfg map[string]string) (Sim, error)

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available simulation factories.
func Sims() map[string]Factory {
	return sims
}
