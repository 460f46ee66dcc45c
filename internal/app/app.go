//go:build ebiten

package app

import (
	"image/color"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"lenia/internal/core"
	"lenia/internal/render"
	"lenia/internal/telemetry"
	"lenia/internal/ui"
)

type mutationToggler interface {
	SetMutationActive(bool)
	MutationActive() bool
}

type templateInjector interface {
	InjectTemplate(name string, nx, ny, scale float64) error
}

type channelInjector interface {
	InjectTemplate(c int, name string, nx, ny, scale float64) error
}

type clearer interface {
	Clear()
}

type clock interface {
	Elapsed() float64
	Ticks() int
}

var templateKeys = []struct {
	key  ebiten.Key
	name string
}{
	{ebiten.Key1, "ring"},
	{ebiten.Key2, "twin"},
	{ebiten.Key3, "worm"},
	{ebiten.Key4, "medusa"},
}

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.FieldPainter
	hud     *ui.HUD
	overlay *ui.Overlay

	collector *telemetry.Collector
	writer    *telemetry.Writer

	timer *core.FixedStep
	tint  color.RGBA

	scale    int
	paused   bool
	tickOnce bool
	seed     int64
	channel  int
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, scale, tps int, seed int64, collector *telemetry.Collector, writer *telemetry.Writer) *Game {
	fp := render.NewFieldPainter(sim.Size().W, sim.Size().H)
	return &Game{
		sim:       sim,
		painter:   fp,
		hud:       ui.NewHUD(sim, 220),
		overlay:   ui.NewOverlay(collector),
		collector: collector,
		writer:    writer,
		timer:     core.NewFixedStep(tps),
		tint:      color.RGBA{R: 120, G: 220, B: 160, A: 255},
		scale:     scale,
		seed:      seed,
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
}

// Update handles per-frame input and advances the simulation on the
// fixed-step timer.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		g.overlay.Toggle()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		if c, ok := g.sim.(clearer); ok {
			c.Clear()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		if mt, ok := g.sim.(mutationToggler); ok {
			mt.SetMutationActive(!mt.MutationActive())
			slog.Info("mutation toggled", "active", mt.MutationActive())
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		if dp, ok := g.sim.(core.DensityProvider); ok {
			g.channel = (g.channel + 1) % dp.Channels()
		}
	}
	g.hud.Update()
	g.handleTemplates()
	g.handlePaint()

	if (!g.paused && g.timer.ShouldStep()) || g.tickOnce {
		g.sim.Step()
		g.tickOnce = false
		g.recordTelemetry()
	}
	return nil
}

func (g *Game) handleTemplates() {
	for _, tk := range templateKeys {
		if !inpututil.IsKeyJustPressed(tk.key) {
			continue
		}
		var err error
		switch inj := g.sim.(type) {
		case templateInjector:
			err = inj.InjectTemplate(tk.name, 0.5, 0.5, 1.0)
		case channelInjector:
			err = inj.InjectTemplate(g.channel, tk.name, 0.5, 0.5, 1.0)
		}
		if err != nil {
			slog.Warn("template injection failed", "template", tk.name, "err", err)
		}
	}
}

func (g *Game) handlePaint() {
	p, ok := g.sim.(core.Painter)
	if !ok {
		return
	}
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	if !left && !right {
		return
	}
	mx, my := ebiten.CursorPosition()
	x := float64(mx) / float64(g.scale)
	y := float64(my) / float64(g.scale)
	w, h := g.painter.Size()
	if x < 0 || y < 0 || x >= float64(w) || y >= float64(h) {
		return
	}
	intensity := 0.35
	if right {
		intensity = -0.5
	}
	p.Paint(x, y, 6, intensity)
}

func (g *Game) recordTelemetry() {
	if g.collector == nil {
		return
	}
	stats, ok := g.sim.(core.StatsProvider)
	if !ok {
		return
	}
	tick, simTime := 0, 0.0
	if c, ok := g.sim.(clock); ok {
		tick, simTime = c.Ticks(), c.Elapsed()
	}
	g.collector.Record(tick, simTime, stats.PopulationStats())
	if g.collector.WindowReady() {
		ws := g.collector.Flush()
		if err := g.writer.Write(ws); err != nil {
			slog.Warn("telemetry write failed", "err", err)
		}
	}
}

// Draw renders the current simulation state plus HUD and overlay.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim, g.tint, g.scale)
	channels := 1
	if dp, ok := g.sim.(core.DensityProvider); ok {
		channels = dp.Channels()
	}
	g.overlay.Draw(screen, channels)
	_, simH := g.painter.Size()
	g.hud.Draw(screen, g.simWidth(), simH*g.scale)
}

func (g *Game) simWidth() int {
	w, _ := g.painter.Size()
	return w * g.scale
}

// Layout returns the logical screen size including the HUD panel.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + g.hud.Width(), s.H * g.scale
}

// Close flushes and closes the telemetry writer.
func (g *Game) Close() error {
	return g.writer.Close()
}
