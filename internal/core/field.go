package core

import (
	"fmt"
	"math"
	"math/rand/v2"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// RandomizeStyle selects how Field.Randomize fills the current buffer.
type RandomizeStyle string

const (
	// StyleBlobs scatters smooth gaussian blobs on an empty field.
	StyleBlobs RandomizeStyle = "blobs"
	// StyleBlobsNoise adds a low-amplitude simplex noise floor under the blobs.
	StyleBlobsNoise RandomizeStyle = "blobs+noise"
)

const (
	randomBlobsMin = 5
	randomBlobsMax = 15
	noiseFloorAmp  = 0.08
	noiseFreq      = 0.05
)

// Field stores a toroidal, multi-channel density grid as a pair of
// channel-major float32 planes. All stored values stay in [0, 1]; writes
// clamp, reads wrap.
type Field struct {
	W, H, C int

	cur []float32
	nxt []float32
}

// NewField allocates a field with the given dimensions and channel count.
func NewField(w, h, c int) (*Field, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("field: invalid dimensions %dx%d", w, h)
	}
	if c <= 0 {
		return nil, fmt.Errorf("field: invalid channel count %d", c)
	}
	total := w * h * c
	return &Field{
		W: w, H: h, C: c,
		cur: make([]float32, total),
		nxt: make([]float32, total),
	}, nil
}

// Wrap applies toroidal wrapping to the provided coordinates.
func (f *Field) Wrap(x, y int) (int, int) {
	x = (x%f.W + f.W) % f.W
	y = (y%f.H + f.H) % f.H
	return x, y
}

// Index returns the linear index for channel c at (x, y) without wrapping.
func (f *Field) Index(c, x, y int) int {
	return c*f.W*f.H + y*f.W + x
}

// At reads the current buffer with toroidal addressing.
func (f *Field) At(c, x, y int) float32 {
	x, y = f.Wrap(x, y)
	return f.cur[f.Index(c, x, y)]
}

// Set writes the current buffer with toroidal addressing, clamping to [0, 1].
func (f *Field) Set(c, x, y int, v float32) {
	x, y = f.Wrap(x, y)
	f.cur[f.Index(c, x, y)] = Clamp01(v)
}

// Add accumulates into the current buffer with toroidal addressing; the
// stored value clamps to [0, 1].
func (f *Field) Add(c, x, y int, v float32) {
	x, y = f.Wrap(x, y)
	i := f.Index(c, x, y)
	f.cur[i] = Clamp01(f.cur[i] + v)
}

// Channel exposes the current plane for one channel. Callers must treat the
// slice as read-only between ticks.
func (f *Field) Channel(c int) []float32 {
	base := c * f.W * f.H
	return f.cur[base : base+f.W*f.H]
}

// NextChannel exposes the next plane for one channel. Only the update step
// writes here.
func (f *Field) NextChannel(c int) []float32 {
	base := c * f.W * f.H
	return f.nxt[base : base+f.W*f.H]
}

// Swap exchanges the roles of the current and next buffers. O(1), no copy.
func (f *Field) Swap() {
	f.cur, f.nxt = f.nxt, f.cur
}

// Clear zeroes both buffers.
func (f *Field) Clear() {
	for i := range f.cur {
		f.cur[i] = 0
	}
	for i := range f.nxt {
		f.nxt[i] = 0
	}
}

// Mean returns the average density of one channel in [0, 1].
func (f *Field) Mean(c int) float64 {
	plane := f.Channel(c)
	var sum float64
	for _, v := range plane {
		sum += float64(v)
	}
	return sum / float64(len(plane))
}

// Randomize fills the current buffer of every channel with a handful of
// smooth circular blobs at random centers, radii, and intensities. The
// blobs+noise style additionally lays a faint simplex noise floor so that
// growth has a substrate to latch onto.
func (f *Field) Randomize(rng *rand.Rand, style RandomizeStyle) {
	minDim := f.W
	if f.H < minDim {
		minDim = f.H
	}

	var noise opensimplex.Noise
	if style == StyleBlobsNoise {
		noise = opensimplex.NewNormalized(rng.Int64())
	}

	for c := 0; c < f.C; c++ {
		plane := f.Channel(c)
		for i := range plane {
			plane[i] = 0
		}

		if noise != nil {
			for y := 0; y < f.H; y++ {
				for x := 0; x < f.W; x++ {
					n := noise.Eval2(float64(x)*noiseFreq, float64(y)*noiseFreq)
					plane[y*f.W+x] = float32(n * noiseFloorAmp)
				}
			}
		}

		count := randomBlobsMin + rng.IntN(randomBlobsMax-randomBlobsMin+1)
		for b := 0; b < count; b++ {
			cx := rng.Float64() * float64(f.W)
			cy := rng.Float64() * float64(f.H)
			radius := (0.04 + 0.08*rng.Float64()) * float64(minDim)
			peak := 0.4 + 0.6*rng.Float64()
			f.stampBlob(plane, cx, cy, radius, peak)
		}
	}
}

// stampBlob composites one gaussian bump onto a plane with toroidal wrap.
func (f *Field) stampBlob(plane []float32, cx, cy, radius, peak float64) {
	span := int(math.Ceil(radius * 2))
	x0, y0 := int(cx), int(cy)
	inv := 1 / (radius * radius * 0.5)
	for dy := -span; dy <= span; dy++ {
		for dx := -span; dx <= span; dx++ {
			d2 := float64(dx*dx + dy*dy)
			v := peak * math.Exp(-d2*inv)
			if v < 1e-3 {
				continue
			}
			x, y := f.Wrap(x0+dx, y0+dy)
			i := y*f.W + x
			plane[i] = Clamp01(plane[i] + float32(v))
		}
	}
}

// Clamp01 clamps v to the unit interval.
func Clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
