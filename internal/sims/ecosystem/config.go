package ecosystem

import (
	"strconv"
	"strings"

	"lenia/internal/core"
)

// Channels is the number of interacting species in the ecosystem sim.
const Channels = 3

// Params holds the interaction tunables shared across all species pairs.
type Params struct {
	// PredationStrength scales the density lost by prey to its predator.
	PredationStrength float64
	// BenefitStrength scales the matrix entry a predator gains from prey.
	BenefitStrength float64
	// BenefitFactor converts consumed prey density into predator growth.
	BenefitFactor float64

	// CrowdLow and CrowdHigh bound the smoothstep ramp of the crowding
	// mortality term over total local density.
	CrowdLow  float64
	CrowdHigh float64
	// CrowdCoefficient scales the crowding mortality.
	CrowdCoefficient float64

	// Decay is the per-tick multiplicative fade that keeps stagnant
	// plateaus from persisting forever. 1 disables it.
	Decay float64
}

// Config controls the ecosystem simulation.
type Config struct {
	Width  int
	Height int

	Seed int64

	// Species assigns a catalog entry to each channel.
	Species [Channels]string
	// DT is the shared integration step; each species divides by its own T.
	DT float64
	// MutationSpeed scales parameter drift while mutation is active.
	MutationSpeed float64
	// Style selects the Randomize fill used by Reset.
	Style core.RandomizeStyle
	// Presets optionally points at a JSON preset file merged into the
	// species registry before the channel lookups.
	Presets string

	Params Params
}

// DefaultConfig returns the standard three-species configuration: a cyclic
// food chain where each channel preys on the next.
func DefaultConfig() Config {
	return Config{
		Width:         256,
		Height:        256,
		Seed:          1337,
		Species:       [Channels]string{"orbium", "gyrium", "vagus"},
		DT:            1.0,
		MutationSpeed: 1.0,
		Style:         core.StyleBlobsNoise,
		Params: Params{
			PredationStrength: 0.08,
			BenefitStrength:   0.05,
			BenefitFactor:     0.6,
			CrowdLow:          1.2,
			CrowdHigh:         2.4,
			CrowdCoefficient:  0.05,
			Decay:             0.9995,
		},
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Malformed or out-of-range values keep their defaults.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["species"]; ok {
		parts := strings.Split(v, ",")
		for i := 0; i < Channels && i < len(parts); i++ {
			if parts[i] != "" {
				c.Species[i] = parts[i]
			}
		}
	}
	if v, ok := cfg["dt"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.DT = parsed
		}
	}
	if v, ok := cfg["mutation_speed"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.MutationSpeed = parsed
		}
	}
	if v, ok := cfg["style"]; ok {
		switch core.RandomizeStyle(v) {
		case core.StyleBlobs, core.StyleBlobsNoise:
			c.Style = core.RandomizeStyle(v)
		}
	}
	if v, ok := cfg["presets"]; ok {
		c.Presets = v
	}
	if v, ok := cfg["predation"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.PredationStrength = parsed
		}
	}
	if v, ok := cfg["benefit"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.BenefitStrength = parsed
		}
	}
	if v, ok := cfg["benefit_factor"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.BenefitFactor = parsed
		}
	}
	if v, ok := cfg["crowd_low"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.CrowdLow = parsed
		}
	}
	if v, ok := cfg["crowd_high"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.CrowdHigh = parsed
		}
	}
	if c.Params.CrowdHigh < c.Params.CrowdLow {
		c.Params.CrowdHigh = c.Params.CrowdLow
	}
	if v, ok := cfg["crowd_coefficient"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.CrowdCoefficient = parsed
		}
	}
	if v, ok := cfg["decay"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 && parsed <= 1 {
			c.Params.Decay = parsed
		}
	}
	return c
}
