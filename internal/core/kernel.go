package core

import (
	"fmt"
	"math"
)

// weightEpsilon guards the potential denominator against degenerate kernels.
const weightEpsilon = 1e-9

// Shell evaluates the canonical ring profile (4r(1-r))^2 at a normalized
// distance r in [0, 1). The profile is a smooth unimodal bump peaking at
// r = 0.5 and vanishing at both ends.
func Shell(r float64) float64 {
	if r < 0 || r >= 1 {
		return 0
	}
	v := 4 * r * (1 - r)
	return v * v
}

// KernelWeight evaluates the kernel at normalized distance r. With an empty
// beta the single-ring shell applies; otherwise beta scales a sequence of
// concentric shells, beta[k] weighting the ring spanning [k/B, (k+1)/B).
func KernelWeight(r float64, beta []float64) float64 {
	if r < 0 || r >= 1 {
		return 0
	}
	if len(beta) == 0 {
		return Shell(r)
	}
	b := float64(len(beta))
	k := int(r * b)
	if k >= len(beta) {
		k = len(beta) - 1
	}
	return beta[k] * Shell(r*b-float64(k))
}

// KernelOffset is one precomputed neighbor offset with its kernel weight.
type KernelOffset struct {
	DX, DY int
	Weight float64
}

// Kernel holds the precomputed neighborhood weight table for one species.
// Offsets cover exactly the Euclidean disc of the configured radius, so the
// per-cell convolution touches no cell it does not need.
type Kernel struct {
	Radius    float64
	Beta      []float64
	Offsets   []KernelOffset
	WeightSum float64
}

// NewKernel precomputes a weight table for the given radius. A non-positive
// radius is a configuration error, never silently corrected.
func NewKernel(radius float64, beta []float64) (*Kernel, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("kernel: radius must be positive, got %g", radius)
	}
	k := &Kernel{Radius: radius, Beta: append([]float64(nil), beta...)}
	span := int(math.Ceil(radius))
	for dy := -span; dy <= span; dy++ {
		for dx := -span; dx <= span; dx++ {
			d := math.Sqrt(float64(dx*dx + dy*dy))
			if d > radius {
				continue
			}
			w := KernelWeight(d/radius, beta)
			if w <= 0 {
				continue
			}
			k.Offsets = append(k.Offsets, KernelOffset{DX: dx, DY: dy, Weight: w})
			k.WeightSum += w
		}
	}
	if k.WeightSum < weightEpsilon {
		k.WeightSum = weightEpsilon
	}
	return k, nil
}

// Potential computes the kernel-weighted neighborhood average of plane at
// (x, y) with toroidal wrapping. The result lies in [0, 1] whenever the plane
// does.
func (k *Kernel) Potential(plane []float32, w, h, x, y int) float64 {
	var sum float64
	for _, o := range k.Offsets {
		nx := ((x+o.DX)%w + w) % w
		ny := ((y+o.DY)%h + h) % h
		sum += o.Weight * float64(plane[ny*w+nx])
	}
	return sum / k.WeightSum
}
