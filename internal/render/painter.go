//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"lenia/internal/core"
)

// FieldPainter uploads density planes into a single RGBA image and draws it
// scaled onto the destination.
type FieldPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// NewFieldPainter allocates a painter for a grid of size w*h.
func NewFieldPainter(w, h int) *FieldPainter {
	fp := &FieldPainter{w: w, h: h, buf: make([]byte, 4*w*h)}
	fp.img = ebiten.NewImage(w, h)
	return fp
}

// Blit renders the sim's current state. Sims exposing density planes get a
// continuous-tone rendering (single channel tinted, multi-channel mapped to
// RGB); anything else falls back to the quantized display buffer.
func (fp *FieldPainter) Blit(dst *ebiten.Image, sim core.Sim, tint color.RGBA, scale int) {
	if dp, ok := sim.(core.DensityProvider); ok {
		switch dp.Channels() {
		case 1:
			FillGrayRGBA(fp.buf, dp.Channel(0), tint)
		default:
			planes := make([][]float32, dp.Channels())
			for c := range planes {
				planes[c] = dp.Channel(c)
			}
			FillChannelsRGBA(fp.buf, planes)
		}
	} else {
		FillQuantizedRGBA(fp.buf, sim.Cells())
	}
	fp.img.WritePixels(fp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(fp.img, op)
}

// Size returns the dimensions of the underlying image.
func (fp *FieldPainter) Size() (int, int) { return fp.w, fp.h }
