// Package config loads application configuration from YAML, merging a user
// supplied file over embedded defaults.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all application configuration parameters.
type Config struct {
	Sim       string          `yaml:"sim"`
	Screen    ScreenConfig    `yaml:"screen"`
	World     WorldConfig     `yaml:"world"`
	Lenia     LeniaConfig     `yaml:"lenia"`
	Ecosystem EcosystemConfig `yaml:"ecosystem"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Scale int `yaml:"scale"`
	TPS   int `yaml:"tps"`
}

// WorldConfig holds simulation grid dimensions and the default seed.
type WorldConfig struct {
	Width  int   `yaml:"width"`
	Height int   `yaml:"height"`
	Seed   int64 `yaml:"seed"`
}

// LeniaConfig holds single-species sim settings.
type LeniaConfig struct {
	Species       string  `yaml:"species"`
	DT            float64 `yaml:"dt"`
	Trail         float64 `yaml:"trail"`
	MutationSpeed float64 `yaml:"mutation_speed"`
	Style         string  `yaml:"style"`
}

// EcosystemConfig holds multi-species sim settings.
type EcosystemConfig struct {
	Species          []string `yaml:"species"`
	DT               float64  `yaml:"dt"`
	MutationSpeed    float64  `yaml:"mutation_speed"`
	Style            string   `yaml:"style"`
	Predation        float64  `yaml:"predation"`
	Benefit          float64  `yaml:"benefit"`
	BenefitFactor    float64  `yaml:"benefit_factor"`
	CrowdLow         float64  `yaml:"crowd_low"`
	CrowdHigh        float64  `yaml:"crowd_high"`
	CrowdCoefficient float64  `yaml:"crowd_coefficient"`
	Decay            float64  `yaml:"decay"`
}

// TelemetryConfig holds telemetry settings.
type TelemetryConfig struct {
	Window    int    `yaml:"window"`
	OutputDir string `yaml:"output_dir"`
}

// Load reads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing embedded defaults: %w", err)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: reading file: %w", err)
		}
		// Unmarshal into the same struct: only fields present in the file
		// overwrite defaults.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parsing file: %w", err)
		}
	}
	return cfg, nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshaling: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: writing file: %w", err)
	}
	return nil
}

// SimOptions flattens the config into the key/value form the sim factories
// consume, for the sim named by c.Sim.
func (c *Config) SimOptions() map[string]string {
	opts := map[string]string{
		"w":    strconv.Itoa(c.World.Width),
		"h":    strconv.Itoa(c.World.Height),
		"seed": strconv.FormatInt(c.World.Seed, 10),
	}
	switch c.Sim {
	case "ecosystem":
		e := c.Ecosystem
		if len(e.Species) > 0 {
			opts["species"] = strings.Join(e.Species, ",")
		}
		putFloat(opts, "dt", e.DT)
		putFloat(opts, "mutation_speed", e.MutationSpeed)
		if e.Style != "" {
			opts["style"] = e.Style
		}
		putFloat(opts, "predation", e.Predation)
		putFloat(opts, "benefit", e.Benefit)
		putFloat(opts, "benefit_factor", e.BenefitFactor)
		putFloat(opts, "crowd_low", e.CrowdLow)
		putFloat(opts, "crowd_high", e.CrowdHigh)
		putFloat(opts, "crowd_coefficient", e.CrowdCoefficient)
		putFloat(opts, "decay", e.Decay)
	default:
		l := c.Lenia
		if l.Species != "" {
			opts["species"] = l.Species
		}
		putFloat(opts, "dt", l.DT)
		putFloat(opts, "trail", l.Trail)
		putFloat(opts, "mutation_speed", l.MutationSpeed)
		if l.Style != "" {
			opts["style"] = l.Style
		}
	}
	return opts
}

func putFloat(opts map[string]string, key string, v float64) {
	if v != 0 {
		opts[key] = strconv.FormatFloat(v, 'f', -1, 64)
	}
}
