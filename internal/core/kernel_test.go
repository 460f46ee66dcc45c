package core

import (
	"math"
	"testing"
)

func TestShellProfile(t *testing.T) {
	if got := Shell(0.5); math.Abs(got-1) > 1e-12 {
		t.Fatalf("shell must peak at 1 for r=0.5, got %g", got)
	}
	if Shell(0) != 0 {
		t.Fatal("shell must vanish at r=0")
	}
	if Shell(1) != 0 {
		t.Fatal("shell must vanish at r=1")
	}
	if Shell(-0.1) != 0 || Shell(1.5) != 0 {
		t.Fatal("shell must be zero outside [0,1)")
	}
	if Shell(0.2) >= Shell(0.4) {
		t.Fatal("shell must rise toward the peak")
	}
}

func TestKernelWeightMultiRing(t *testing.T) {
	beta := []float64{0.5, 1, 0.25}

	// Center of ring k sits at r=(k+0.5)/3 and evaluates to beta[k].
	for k, want := range beta {
		r := (float64(k) + 0.5) / 3
		if got := KernelWeight(r, beta); math.Abs(got-want) > 1e-12 {
			t.Fatalf("ring %d center: want %g, got %g", k, want, got)
		}
	}
	if got := KernelWeight(0.4, nil); math.Abs(got-Shell(0.4)) > 1e-12 {
		t.Fatalf("empty beta must fall back to the single shell, got %g", got)
	}
}

func TestNewKernelRejectsBadRadius(t *testing.T) {
	if _, err := NewKernel(0, nil); err == nil {
		t.Fatal("expected error for zero radius")
	}
	if _, err := NewKernel(-3, nil); err == nil {
		t.Fatal("expected error for negative radius")
	}
}

func TestKernelOffsetsCoverDisc(t *testing.T) {
	k, err := NewKernel(5, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(k.Offsets) == 0 {
		t.Fatal("kernel must carry offsets")
	}
	var sum float64
	for _, o := range k.Offsets {
		d := math.Hypot(float64(o.DX), float64(o.DY))
		if d > k.Radius {
			t.Fatalf("offset (%d,%d) outside the disc", o.DX, o.DY)
		}
		if o.Weight <= 0 {
			t.Fatalf("offset (%d,%d) carries non-positive weight", o.DX, o.DY)
		}
		sum += o.Weight
	}
	if math.Abs(sum-k.WeightSum) > 1e-9 {
		t.Fatalf("weight sum mismatch: offsets total %g, recorded %g", sum, k.WeightSum)
	}
}

func TestPotentialOfUniformPlane(t *testing.T) {
	const w, h = 20, 20
	plane := make([]float32, w*h)
	for i := range plane {
		plane[i] = 0.37
	}
	k, err := NewKernel(6, nil)
	if err != nil {
		t.Fatal(err)
	}

	// The normalized potential of a constant plane is that constant,
	// regardless of position and of wrapping.
	for _, pt := range [][2]int{{0, 0}, {10, 10}, {19, 19}, {0, 19}} {
		got := k.Potential(plane, w, h, pt[0], pt[1])
		if math.Abs(got-0.37) > 1e-6 {
			t.Fatalf("potential at (%d,%d): want 0.37, got %g", pt[0], pt[1], got)
		}
	}
}

func TestPotentialWrapsToroidally(t *testing.T) {
	const w, h = 16, 16
	plane := make([]float32, w*h)
	plane[0] = 1 // single spike at the origin

	k, err := NewKernel(4, nil)
	if err != nil {
		t.Fatal(err)
	}

	// Sampling from the opposite corner must still see the spike through
	// the wrap; the spike is within radius of (15,15) only toroidally.
	got := k.Potential(plane, w, h, w-1, h-1)
	if got <= 0 {
		t.Fatal("potential must see density across the wrap seam")
	}

	// A kernel wider than the grid still terminates and normalizes.
	wide, err := NewKernel(40, nil)
	if err != nil {
		t.Fatal(err)
	}
	if v := wide.Potential(plane, w, h, 8, 8); v < 0 || v > 1 {
		t.Fatalf("oversized kernel potential out of range: %g", v)
	}
}
