package sim

import (
	"math"

	"github.com/avray/plife/internal/life"
)

// integrate advances every particle from its accumulated net force:
// velocity update with drag, speed clamp, position update, boundary
// policy. Returns the maximum speed observed, which is diagnostic only.
func (s *State) integrate() float64 {
	dt := s.spec.Dt
	dragFactor := 1 - s.spec.Drag*dt
	if dragFactor < 0 {
		// Drag may stop a particle within one step but never reverse it.
		dragFactor = 0
	}
	vMax := s.spec.VMax

	maxSpeed := 0.0
	for i := 0; i < s.spec.N; i++ {
		vx := (s.vx[i] + dt*s.fx[i]) * dragFactor
		vy := (s.vy[i] + dt*s.fy[i]) * dragFactor

		speed := math.Sqrt(vx*vx + vy*vy)
		if speed > vMax {
			scale := 0.0
			if speed > 0 {
				scale = vMax / speed
			}
			vx *= scale
			vy *= scale
			speed = vMax
		}
		if speed > maxSpeed {
			maxSpeed = speed
		}

		x := s.px[i] + dt*vx
		y := s.py[i] + dt*vy

		if s.spec.Wrap {
			x = wrapCoord(x)
			y = wrapCoord(y)
		} else {
			x, vx = reflectCoord(x, vx)
			y, vy = reflectCoord(y, vy)
		}

		s.vx[i] = vx
		s.vy[i] = vy
		s.px[i] = x
		s.py[i] = y
	}
	return maxSpeed
}

// wrapCoord shifts an out-of-range coordinate back onto the torus.
func wrapCoord(v float64) float64 {
	for v > life.WorldMax {
		v -= life.WorldSize
	}
	for v < life.WorldMin {
		v += life.WorldSize
	}
	return v
}

// reflectCoord mirrors the overshoot back inside the box and flips the
// velocity component, an elastic bounce.
func reflectCoord(v, vel float64) (float64, float64) {
	for {
		switch {
		case v > life.WorldMax:
			v = 2*life.WorldMax - v
			vel = -vel
		case v < life.WorldMin:
			v = 2*life.WorldMin - v
			vel = -vel
		default:
			return v, vel
		}
	}
}
