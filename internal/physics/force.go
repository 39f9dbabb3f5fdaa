// Package physics holds the pure pairwise force model: hard-core
// repulsion below the threshold separation, a coefficient-scaled bell
// above it, and the radial settling dashpot. Everything here is a pure
// function of scalars; direction and accumulation live in the engine.
package physics

import "math"

// bellEps guards the bell denominator as rMin approaches 1.
const bellEps = 1e-9

// Accel returns the signed force magnitude for a pair at separation r
// with interaction coefficient a and repulsion threshold rMin. Negative
// values push the pair apart.
//
// Below rMin the force is hard-core repulsion, independent of a and
// unbounded as r goes to 0. At and above rMin it is a bell peaking at
// r = (1+rMin)/2 with height a, zero at both rMin and 1. Both branches
// meet at zero for r = rMin.
//
// r must be positive: a coincident pair has no defined direction and
// callers skip it entirely.
func Accel(a, r, rMin float64) float64 {
	if r < rMin {
		return r/rMin - 1
	}
	return a * (1 - math.Abs(1+rMin-2*r)/math.Max(bellEps, 1-rMin))
}

// SettleWeight is the dashpot falloff: 1 at r = rMin, 0 at r = settleR,
// cubic smoothstep in between.
func SettleWeight(r, rMin, settleR float64) float64 {
	s := (settleR - r) / (settleR - rMin)
	if s < 0 {
		s = 0
	} else if s > 1 {
		s = 1
	}
	return s * s * (3 - 2*s)
}

// SettleGain clamps the dashpot coefficient to [0, 2/dt]. The upper bound
// is a critical-damping-style limit tied to the explicit step size; a
// gain above it can over-correct within one step and blow up. If the
// integrator ever changes, this bound must be re-derived, not copied.
func SettleGain(settleK, dt float64) float64 {
	if settleK < 0 {
		return 0
	}
	if limit := 2 / dt; settleK > limit {
		return limit
	}
	return settleK
}
