//go:build ebiten

package ui

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"lenia/internal/core"
)

const (
	hudPadding    = 8
	hudLineHeight = 14
)

type parameterProvider interface {
	Parameters() core.ParameterSnapshot
}

// HUD renders the parameter panel to the right of the simulation view and
// routes arrow-key adjustments to the sim's parameter setters.
type HUD struct {
	sim   core.Sim
	width int
	panel *ebiten.Image
	pixel *ebiten.Image
	title string

	controls    []core.ParameterControl
	selected    int
	floatSetter core.FloatParameterSetter
	intSetter   core.IntParameterSetter
}

// NewHUD constructs a HUD for the provided simulation and panel width.
func NewHUD(sim core.Sim, width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{sim: sim, width: width, title: strings.ToUpper(sim.Name())}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	if provider, ok := sim.(core.ParameterControlsProvider); ok {
		h.controls = provider.ParameterControls()
	}
	h.floatSetter, _ = sim.(core.FloatParameterSetter)
	h.intSetter, _ = sim.(core.IntParameterSetter)
	return h
}

// Update moves the control selection with Up/Down and nudges the selected
// control with Left/Right (Shift for a 10x step).
func (h *HUD) Update() {
	if len(h.controls) == 0 {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) {
		h.selected = (h.selected + len(h.controls) - 1) % len(h.controls)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDown) {
		h.selected = (h.selected + 1) % len(h.controls)
	}
	dir := 0.0
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) {
		dir = -1
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyRight) {
		dir = 1
	}
	if dir == 0 {
		return
	}
	if ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		dir *= 10
	}
	h.adjust(h.controls[h.selected], dir)
}

func (h *HUD) adjust(ctrl core.ParameterControl, dir float64) {
	cur, ok := h.currentValue(ctrl.Key)
	if !ok {
		return
	}
	next := cur + dir*ctrl.Step
	if ctrl.HasMin && next < ctrl.Min {
		next = ctrl.Min
	}
	if ctrl.HasMax && next > ctrl.Max {
		next = ctrl.Max
	}
	switch ctrl.Type {
	case core.ParamTypeInt:
		if h.intSetter != nil {
			h.intSetter.SetIntParameter(ctrl.Key, int(next))
		}
	default:
		if h.floatSetter != nil {
			h.floatSetter.SetFloatParameter(ctrl.Key, next)
		}
	}
}

// currentValue digs the control's live value out of the snapshot.
func (h *HUD) currentValue(key string) (float64, bool) {
	provider, ok := h.sim.(parameterProvider)
	if !ok {
		return 0, false
	}
	for _, group := range provider.Parameters().Groups {
		for _, p := range group.Params {
			if p.Key != key {
				continue
			}
			v, err := strconv.ParseFloat(p.Value, 64)
			if err != nil {
				return 0, false
			}
			return v, true
		}
	}
	return 0, false
}

// Draw renders the parameter panel at the given offset.
func (h *HUD) Draw(dst *ebiten.Image, offsetX, height int) {
	if h.width <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 24, A: 255})

	face := basicfont.Face7x13
	y := hudPadding + hudLineHeight
	text.Draw(h.panel, h.title, face, hudPadding, y, color.White)
	y += hudLineHeight

	if provider, ok := h.sim.(parameterProvider); ok {
		snapshot := provider.Parameters()
		for _, group := range snapshot.Groups {
			y += hudLineHeight / 2
			text.Draw(h.panel, group.Name, face, hudPadding, y, color.RGBA{R: 140, G: 190, B: 255, A: 255})
			y += hudLineHeight
			for _, p := range group.Params {
				clr := color.RGBA{R: 210, G: 210, B: 210, A: 255}
				marker := "  "
				if len(h.controls) > 0 && p.Key == h.controls[h.selected].Key {
					clr = color.RGBA{R: 255, G: 220, B: 120, A: 255}
					marker = "> "
				}
				line := fmt.Sprintf("%s%-16s %s", marker, p.Label, p.Value)
				text.Draw(h.panel, line, face, hudPadding, y, clr)
				y += hudLineHeight
			}
		}
	}

	if stats, ok := h.sim.(core.StatsProvider); ok {
		y += hudLineHeight
		text.Draw(h.panel, "Population", face, hudPadding, y, color.RGBA{R: 140, G: 190, B: 255, A: 255})
		y += hudLineHeight
		for i, mean := range stats.PopulationStats() {
			line := fmt.Sprintf("ch %d mean %.4f", i, mean)
			text.Draw(h.panel, line, face, hudPadding, y, color.RGBA{R: 210, G: 210, B: 210, A: 255})
			y += hudLineHeight
			barW := int(mean * float64(h.width-2*hudPadding))
			if barW > 0 {
				op := &ebiten.DrawImageOptions{}
				op.GeoM.Scale(float64(barW), 4)
				op.GeoM.Translate(float64(hudPadding), float64(y-hudLineHeight/2))
				op.ColorScale.ScaleWithColor(color.RGBA{R: 90, G: 200, B: 120, A: 255})
				h.panel.DrawImage(h.pixel, op)
			}
			y += hudLineHeight / 2
		}
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	dst.DrawImage(h.panel, op)
}

// Width returns the panel width in pixels.
func (h *HUD) Width() int { return h.width }
