package app

import "flag"

// Flags represents the command-line parameters for the application.
type Flags struct {
	Sim        string
	Scale      int
	TPS        int
	Seed       int64
	ConfigPath string
	Presets    string
	OutDir     string
}

// NewFlags returns a Flags populated with sensible defaults.
func NewFlags() *Flags {
	return &Flags{Sim: "", Scale: 0, TPS: 0, Seed: 0}
}

// Bind attaches the configuration to the provided FlagSet. Zero values mean
// "use the config file default".
func (f *Flags) Bind(fs *flag.FlagSet) {
	fs.StringVar(&f.Sim, "sim", f.Sim, "simulation to run (lenia, ecosystem)")
	fs.IntVar(&f.Scale, "scale", f.Scale, "pixel scale multiplier")
	fs.IntVar(&f.TPS, "tps", f.TPS, "simulation ticks per second")
	fs.Int64Var(&f.Seed, "seed", f.Seed, "seed for simulation reset")
	fs.StringVar(&f.ConfigPath, "config", f.ConfigPath, "path to a YAML config overriding the embedded defaults")
	fs.StringVar(&f.Presets, "presets", f.Presets, "path to a JSON species preset file")
	fs.StringVar(&f.OutDir, "out", f.OutDir, "directory for telemetry CSV output")
}
