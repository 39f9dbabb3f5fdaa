package metrics

import (
	"math"
	"testing"

	"github.com/avray/plife/internal/life"
	"github.com/avray/plife/internal/sim"
)

func quietState(t *testing.T) *sim.State {
	t.Helper()
	spec := life.DefaultSpec()
	spec.N = 50
	s, _ := sim.Init(spec, 5)
	return s
}

func TestKineticEnergyAveragesFrames(t *testing.T) {
	s := quietState(t)
	m := NewKineticEnergy()

	expected := 0.0
	for i := 0; i < s.N(); i++ {
		vx, vy := s.Velocity(i)
		expected += 0.5 * (vx*vx + vy*vy)
	}

	m.Observe(s)
	m.Observe(s)
	if math.Abs(m.Value()-expected) > 1e-12 {
		t.Errorf("value = %f, want %f", m.Value(), expected)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("reset should zero the metric")
	}
}

func TestPeakSpeedTracksMaximum(t *testing.T) {
	s := quietState(t)
	m := NewPeakSpeed()

	m.Observe(s) // fresh state reports zero max speed
	s.Step()
	m.Observe(s)

	if m.Value() != s.MaxSpeed() && m.Value() <= 0 {
		t.Errorf("peak = %f after a step with max speed %f", m.Value(), s.MaxSpeed())
	}
}

func TestMeanPairsEmptyRun(t *testing.T) {
	m := NewMeanPairs()
	if m.Value() != 0 {
		t.Error("no samples should report 0")
	}
}

func TestDefaultsNamesAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range Defaults() {
		if seen[m.Name()] {
			t.Errorf("duplicate metric name %s", m.Name())
		}
		seen[m.Name()] = true
	}
}
