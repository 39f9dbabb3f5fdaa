package sim

import (
	"math"
	"testing"

	"github.com/avray/plife/internal/life"
)

func singleParticle(t *testing.T, wrap bool) *State {
	t.Helper()
	spec := life.DefaultSpec()
	spec.N = 1
	spec.Wrap = wrap
	spec.Dt = 0.05
	spec.Drag = 0
	spec.VMax = 10
	s, _ := Init(spec, 1)
	s.px[0], s.py[0] = 0, 0
	s.vx[0], s.vy[0] = 0, 0
	return s
}

func TestWrapRepositionsOvershoot(t *testing.T) {
	const eps = 1e-6
	s := singleParticle(t, true)
	s.px[0] = 1 + eps

	s.Step()

	x, _ := s.Position(0)
	if math.Abs(x-(-1+eps)) > 1e-12 {
		t.Errorf("x = %.9f, want %.9f", x, -1+eps)
	}
}

func TestWrapKeepsAllCoordinatesInBounds(t *testing.T) {
	spec := life.DefaultSpec()
	spec.N = 400
	spec.Wrap = true
	spec.VMax = 5

	s, _ := Init(spec, 3)
	for step := 0; step < 10; step++ {
		s.Step()
		for i := 0; i < s.N(); i++ {
			x, y := s.Position(i)
			if x < -1 || x > 1 || y < -1 || y > 1 {
				t.Fatalf("step %d: particle %d outside world (%f, %f)", step, i, x, y)
			}
		}
	}
}

func TestReflectFlipsVelocity(t *testing.T) {
	s := singleParticle(t, false)
	s.px[0] = 0.99
	s.vx[0] = 0.5

	s.Step()

	x, _ := s.Position(0)
	vx, _ := s.Velocity(0)
	if vx >= 0 {
		t.Errorf("vx = %f, want negative after bounce", vx)
	}
	if x > 1 || x < -1 {
		t.Errorf("x = %f outside world after bounce", x)
	}
	// Overshoot of 0.025 past the wall mirrors to 0.975.
	if math.Abs(x-0.975) > 1e-12 {
		t.Errorf("x = %f, want 0.975", x)
	}
}

func TestReflectKeepsAllCoordinatesInBounds(t *testing.T) {
	spec := life.DefaultSpec()
	spec.N = 400
	spec.Wrap = false
	spec.VMax = 5

	s, _ := Init(spec, 4)
	for step := 0; step < 10; step++ {
		s.Step()
		for i := 0; i < s.N(); i++ {
			x, y := s.Position(i)
			if x < -1 || x > 1 || y < -1 || y > 1 {
				t.Fatalf("step %d: particle %d outside world (%f, %f)", step, i, x, y)
			}
		}
	}
}

func TestDragCannotReverseDirection(t *testing.T) {
	s := singleParticle(t, true)
	s.spec.Drag = 1000 // dragFactor would be negative without the clamp
	s.vx[0] = 0.5

	s.Step()

	vx, _ := s.Velocity(0)
	if vx != 0 {
		t.Errorf("vx = %f, want 0 (drag floors at full stop)", vx)
	}
}

func TestSpeedClampPreservesDirection(t *testing.T) {
	s := singleParticle(t, true)
	s.spec.VMax = 1
	s.vx[0], s.vy[0] = 3, 4 // speed 5

	s.Step()

	vx, vy := s.Velocity(0)
	speed := math.Sqrt(vx*vx + vy*vy)
	if math.Abs(speed-1) > 1e-12 {
		t.Errorf("speed = %f, want exactly 1", speed)
	}
	if math.Abs(vx/vy-3.0/4.0) > 1e-12 {
		t.Errorf("direction changed: (%f, %f)", vx, vy)
	}
	if s.MaxSpeed() != 1 {
		t.Errorf("reported max speed = %f, want 1", s.MaxSpeed())
	}
}

func TestZeroSpeedLimitFreezesMotion(t *testing.T) {
	s := singleParticle(t, true)
	s.spec.VMax = 0
	s.vx[0] = 2

	s.Step()

	vx, vy := s.Velocity(0)
	if vx != 0 || vy != 0 {
		t.Errorf("velocity (%f, %f), want zero", vx, vy)
	}
}

func TestDragDecaysSpeed(t *testing.T) {
	s := singleParticle(t, true)
	s.spec.Drag = 2
	s.vx[0] = 1

	s.Step()

	vx, _ := s.Velocity(0)
	want := 1 * (1 - 2*0.05)
	if math.Abs(vx-want) > 1e-12 {
		t.Errorf("vx = %f, want %f", vx, want)
	}
}
