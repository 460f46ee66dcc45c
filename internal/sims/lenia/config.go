package lenia

import (
	"strconv"

	"lenia/internal/core"
)

// Config controls the single-species Lenia simulation.
type Config struct {
	Width  int
	Height int

	Seed int64

	// Species selects the catalog entry driving the dynamics.
	Species string
	// DT is the integration step; the caller's speed multiplier folds in here.
	DT float64
	// Trail applies an exponential fade on top of the update; 1 disables it.
	Trail float64
	// MutationSpeed scales the random-walk drift while mutation is active.
	MutationSpeed float64
	// Style selects the Randomize fill used by Reset.
	Style core.RandomizeStyle
	// Presets optionally points at a JSON preset file merged into the
	// species registry before the species lookup.
	Presets string
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:         256,
		Height:        256,
		Seed:          1337,
		Species:       "orbium",
		DT:            1.0,
		Trail:         1.0,
		MutationSpeed: 1.0,
		Style:         core.StyleBlobsNoise,
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
	if v, ok := cfg["species"]; ok && v != "" {
		c.Species = v
	}
	if v, ok := cfg["dt"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.DT = parsed
		}
	}
	if v, ok := cfg["trail"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 && parsed <= 1 {
			c.Trail = parsed
		}
	}
	if v, ok := cfg["mutation_speed"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.MutationSpeed = parsed
		}
	}
	if v, ok := cfg["presets"]; ok {
		c.Presets = v
	}
	if v, ok := cfg["style"]; ok {
		switch core.RandomizeStyle(v) {
		case core.StyleBlobs, core.StyleBlobsNoise:
			c.Style = core.RandomizeStyle(v)
		}
	}
	return c
}
