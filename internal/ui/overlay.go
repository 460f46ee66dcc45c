//go:build ebiten

package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"lenia/internal/telemetry"
)

var overlayColors = []color.RGBA{
	{R: 235, G: 90, B: 80, A: 255},
	{R: 90, G: 210, B: 110, A: 255},
	{R: 95, G: 140, B: 240, A: 255},
}

// Overlay draws a population sparkline in the corner of the sim view.
type Overlay struct {
	collector *telemetry.Collector
	visible   bool
	canvas    *ebiten.Image
	pixel     *ebiten.Image
	width     int
	height    int
}

func NewOverlay(collector *telemetry.Collector) *Overlay {
	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)
	return &Overlay{collector: collector, visible: true, pixel: pixel, width: 160, height: 48}
}

// Toggle flips overlay visibility.
func (o *Overlay) Toggle() { o.visible = !o.visible }

func (o *Overlay) Visible() bool { return o.visible }

// Draw renders the sparkline at the bottom-left of dst.
func (o *Overlay) Draw(dst *ebiten.Image, channels int) {
	if !o.visible || o.collector == nil {
		return
	}
	if o.canvas == nil {
		o.canvas = ebiten.NewImage(o.width, o.height)
	}
	o.canvas.Fill(color.RGBA{R: 10, G: 10, B: 16, A: 210})

	for c := 0; c < channels && c < len(overlayColors); c++ {
		o.drawSeries(o.collector.History(c), overlayColors[c])
	}

	face := basicfont.Face7x13
	if history := o.collector.History(0); len(history) > 0 {
		label := fmt.Sprintf("%.3f", history[len(history)-1])
		text.Draw(o.canvas, label, face, 4, 12, color.White)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(4, float64(dst.Bounds().Dy()-o.height-4))
	dst.DrawImage(o.canvas, op)
}

func (o *Overlay) drawSeries(series []float64, clr color.RGBA) {
	if len(series) < 2 {
		return
	}
	peak := 0.0
	for _, v := range series {
		if v > peak {
			peak = v
		}
	}
	if peak <= 0 {
		return
	}
	span := len(series)
	if span > o.width/2 {
		series = series[span-o.width/2:]
		span = len(series)
	}
	for i, v := range series {
		x := float64(i) * float64(o.width) / float64(span)
		y := float64(o.height-4) * (1 - v/peak)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(2, 2)
		op.GeoM.Translate(x, y+2)
		op.ColorScale.ScaleWithColor(clr)
		o.canvas.DrawImage(o.pixel, op)
	}
}
