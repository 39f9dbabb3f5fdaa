package sim

import (
	"math"

	"github.com/aquilax/go-perlin"

	"github.com/avray/plife/internal/life"
)

const (
	noiseAlpha    = 2.0
	noiseBeta     = 2.0
	noiseOctaves  = 3
	noiseScale    = 1.5
	noiseAttempts = 64
)

// place fills the position buffers according to the spec's placement
// mode. Every draw comes from the engine generator (or a perlin source
// derived from the same seed), keeping initialization deterministic.
func (s *State) place(seed int64) {
	switch s.spec.Placement {
	case life.PlacementDisk:
		s.placeDisk()
	case life.PlacementNoise:
		s.placeNoise(seed)
	default:
		s.placeUniform()
	}
}

func (s *State) placeUniform() {
	for i := 0; i < s.spec.N; i++ {
		s.px[i] = s.rng.Float64()*life.WorldSize + life.WorldMin
		s.py[i] = s.rng.Float64()*life.WorldSize + life.WorldMin
	}
}

// placeDisk spreads particles uniformly over a centered disk covering
// most of the world, leaving the corners empty.
func (s *State) placeDisk() {
	const diskRadius = 0.85
	for i := 0; i < s.spec.N; i++ {
		r := diskRadius * math.Sqrt(s.rng.Float64())
		theta := s.rng.Float64() * 2 * math.Pi
		s.px[i] = r * math.Cos(theta)
		s.py[i] = r * math.Sin(theta)
	}
}

// placeNoise rejection-samples against a perlin density field so the
// population starts clumped instead of homogeneous. The field is seeded
// from the run seed, so placement stays reproducible.
func (s *State) placeNoise(seed int64) {
	field := perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, seed)
	for i := 0; i < s.spec.N; i++ {
		placed := false
		for attempt := 0; attempt < noiseAttempts; attempt++ {
			x := s.rng.Float64()*life.WorldSize + life.WorldMin
			y := s.rng.Float64()*life.WorldSize + life.WorldMin
			density := 0.5 * (field.Noise2D(x*noiseScale, y*noiseScale) + 1)
			if s.rng.Float64() < density*density {
				s.px[i] = x
				s.py[i] = y
				placed = true
				break
			}
		}
		if !placed {
			s.px[i] = s.rng.Float64()*life.WorldSize + life.WorldMin
			s.py[i] = s.rng.Float64()*life.WorldSize + life.WorldMin
		}
	}
}
