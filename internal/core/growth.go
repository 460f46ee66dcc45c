package core

import "math"

// Growth maps a neighborhood potential u to a signed growth rate in (-1, 1].
// The rate peaks at 1 when u equals mu and decays symmetrically on both
// sides; it crosses zero near mu ± 1.177·sigma and approaches -1 far from mu.
func Growth(u, mu, sigma float64) float64 {
	d := (u - mu) / sigma
	return 2*math.Exp(-0.5*d*d) - 1
}

// Smoothstep is the cubic hermite ramp from 0 at lo to 1 at hi.
func Smoothstep(x, lo, hi float64) float64 {
	if hi <= lo {
		if x >= hi {
			return 1
		}
		return 0
	}
	t := (x - lo) / (hi - lo)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return t * t * (3 - 2*t)
}
