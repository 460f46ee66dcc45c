//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"

	"lenia/internal/app"
	"lenia/internal/config"
	"lenia/internal/core"
	_ "lenia/internal/sims/ecosystem"
	_ "lenia/internal/sims/lenia"
	"lenia/internal/telemetry"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	flags := app.NewFlags()
	flags.Bind(flag.CommandLine)
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if flags.Sim != "" {
		cfg.Sim = flags.Sim
	}
	if flags.Scale > 0 {
		cfg.Screen.Scale = flags.Scale
	}
	if flags.TPS > 0 {
		cfg.Screen.TPS = flags.TPS
	}
	if flags.Seed != 0 {
		cfg.World.Seed = flags.Seed
	}
	if flags.OutDir != "" {
		cfg.Telemetry.OutputDir = flags.OutDir
	}

	factory, ok := core.Sims()[cfg.Sim]
	if !ok {
		log.Fatalf("unknown sim %q", cfg.Sim)
	}

	opts := cfg.SimOptions()
	if flags.Presets != "" {
		opts["presets"] = flags.Presets
	}
	sim, err := factory(opts)
	if err != nil {
		log.Fatalf("create sim: %v", err)
	}
	sim.Reset(cfg.World.Seed)

	collector := telemetry.NewCollector(cfg.Telemetry.Window)
	writer, err := telemetry.NewWriter(cfg.Telemetry.OutputDir)
	if err != nil {
		log.Fatalf("open telemetry output: %v", err)
	}

	game := app.New(sim, cfg.Screen.Scale, cfg.Screen.TPS, cfg.World.Seed, collector, writer)
	defer game.Close()
	size := sim.Size()

	ebiten.SetWindowTitle("lenia — " + sim.Name())
	ebiten.SetWindowSize(size.W*cfg.Screen.Scale+220, size.H*cfg.Screen.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
