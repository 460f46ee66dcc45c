// Package pattern provides parametric creature templates, patch injection,
// and brush strokes for seeding density fields.
package pattern

import (
	"fmt"
	"math"

	"lenia/internal/core"
)

// Template is a named, deterministic generator of a square density patch
// together with the species parameters the patch is tuned for.
type Template struct {
	Name     string
	Defaults core.Params
	Generate func(size int) []float64
}

var templates = []Template{
	{
		Name:     "ring",
		Defaults: core.Params{R: 13, T: 10, Mu: 0.15, Sigma: 0.015},
		Generate: ringPatch,
	},
	{
		Name:     "twin",
		Defaults: core.Params{R: 10, T: 10, Mu: 0.156, Sigma: 0.022},
		Generate: twinPatch,
	},
	{
		Name:     "worm",
		Defaults: core.Params{R: 15, T: 14, Mu: 0.2, Sigma: 0.028},
		Generate: wormPatch,
	},
	{
		Name:     "medusa",
		Defaults: core.Params{R: 18, T: 10, Mu: 0.26, Sigma: 0.036, Beta: []float64{0.5, 1, 0.667}},
		Generate: medusaPatch,
	},
}

// Templates lists the built-in creature templates.
func Templates() []Template {
	return templates
}

// ByName resolves a template by its name.
func ByName(name string) (Template, bool) {
	for _, t := range templates {
		if t.Name == name {
			return t, true
		}
	}
	return Template{}, false
}

// Names returns the template names in declaration order.
func Names() []string {
	out := make([]string, len(templates))
	for i, t := range templates {
		out[i] = t.Name
	}
	return out
}

// ringPatch draws a single smooth annulus peaking halfway out, the seed shape
// for orbium-class creatures.
func ringPatch(size int) []float64 {
	return radialPatch(size, func(r, theta float64) float64 {
		d := (r - 0.5) / 0.15
		return math.Exp(-0.5 * d * d)
	})
}

// twinPatch draws two gaussian blobs side by side.
func twinPatch(size int) []float64 {
	return radialPatch(size, func(r, theta float64) float64 {
		x := r * math.Cos(theta)
		y := r * math.Sin(theta)
		left := gauss2(x+0.4, y, 0.22)
		right := gauss2(x-0.4, y, 0.22)
		return left + right
	})
}

// wormPatch draws a segmented horizontal body: a thin gaussian spine whose
// density pulses along its length.
func wormPatch(size int) []float64 {
	const segments = 4
	return radialPatch(size, func(r, theta float64) float64 {
		x := r * math.Cos(theta)
		y := r * math.Sin(theta)
		if math.Abs(x) > 0.85 {
			return 0
		}
		spine := math.Exp(-0.5 * (y / 0.18) * (y / 0.18))
		pulse := 0.55 + 0.45*math.Cos(x*segments*math.Pi)
		return spine * pulse
	})
}

// medusaPatch draws a bilateral body: a dense core with three tentacle lobes
// mirrored across the horizontal axis.
func medusaPatch(size int) []float64 {
	return radialPatch(size, func(r, theta float64) float64 {
		body := math.Exp(-0.5 * (r / 0.3) * (r / 0.3))
		lobes := math.Cos(3 * theta)
		if lobes < 0 {
			lobes = 0
		}
		arms := lobes * lobes * math.Exp(-0.5*((r-0.6)/0.2)*((r-0.6)/0.2))
		return body + 0.8*arms
	})
}

// radialPatch evaluates f over the unit disc mapped onto a size×size grid.
// r is the normalized distance from the patch center, theta the angle; the
// result clamps to [0, 1] and vanishes outside the disc.
func radialPatch(size int, f func(r, theta float64) float64) []float64 {
	patch := make([]float64, size*size)
	if size <= 0 {
		return patch
	}
	half := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := (float64(x) + 0.5 - half) / half
			dy := (float64(y) + 0.5 - half) / half
			r := math.Sqrt(dx*dx + dy*dy)
			if r > 1 {
				continue
			}
			v := f(r, math.Atan2(dy, dx))
			if v < 0 {
				v = 0
			} else if v > 1 {
				v = 1
			}
			patch[y*size+x] = v
		}
	}
	return patch
}

func gauss2(x, y, sigma float64) float64 {
	return math.Exp(-0.5 * (x*x + y*y) / (sigma * sigma))
}

// Inject composites a square patch onto one field channel at the normalized
// position (nx, ny) in [0, 1], scaled by scale. Compositing takes the per-cell
// maximum of existing and incoming density, skips near-zero sources, and
// silently drops targets outside the field.
func Inject(f *core.Field, ch int, patch []float64, size int, nx, ny, scale float64) error {
	if size <= 0 || len(patch) < size*size {
		return fmt.Errorf("pattern: patch of size %d does not match %d values", size, len(patch))
	}
	if scale <= 0 {
		return fmt.Errorf("pattern: scale must be positive, got %g", scale)
	}
	out := int(float64(size)*scale + 0.5)
	if out <= 0 {
		out = 1
	}
	cx := nx * float64(f.W)
	cy := ny * float64(f.H)
	x0 := int(cx - float64(out)/2)
	y0 := int(cy - float64(out)/2)

	for py := 0; py < out; py++ {
		ty := y0 + py
		if ty < 0 || ty >= f.H {
			continue
		}
		sy := int(float64(py) / scale)
		if sy >= size {
			sy = size - 1
		}
		for px := 0; px < out; px++ {
			tx := x0 + px
			if tx < 0 || tx >= f.W {
				continue
			}
			sx := int(float64(px) / scale)
			if sx >= size {
				sx = size - 1
			}
			v := patch[sy*size+sx]
			if v < 0.01 {
				continue
			}
			if cur := f.At(ch, tx, ty); float64(cur) < v {
				f.Set(ch, tx, ty, float32(v))
			}
		}
	}
	return nil
}

// PaintStroke applies an additive circular brush with quadratic falloff at
// cell coordinates (x, y). A negative intensity erases; the field clamps
// either way. Strokes wrap toroidally like the update itself.
func PaintStroke(f *core.Field, ch int, x, y, radius, intensity float64) {
	if radius <= 0 {
		return
	}
	span := int(math.Ceil(radius))
	xi, yi := int(x), int(y)
	for dy := -span; dy <= span; dy++ {
		for dx := -span; dx <= span; dx++ {
			d := math.Sqrt(float64(dx*dx + dy*dy))
			if d > radius {
				continue
			}
			fall := 1 - d/radius
			f.Add(ch, xi+dx, yi+dy, float32(intensity*fall*fall))
		}
	}
}
