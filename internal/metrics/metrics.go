// Package metrics provides per-run observability values computed from
// engine state. Metrics observe after every step and report a single
// scalar at the end of a run.
package metrics

import "github.com/avray/plife/internal/sim"

type Metric interface {
	Name() string
	Observe(s *sim.State)
	Value() float64
	Reset()
}

// KineticEnergy reports the mean total kinetic energy across observed
// frames (unit particle mass).
type KineticEnergy struct {
	total   float64
	samples int
}

func NewKineticEnergy() *KineticEnergy { return &KineticEnergy{} }

func (k *KineticEnergy) Name() string { return "kinetic_energy" }

func (k *KineticEnergy) Observe(s *sim.State) {
	sum := 0.0
	for i := 0; i < s.N(); i++ {
		vx, vy := s.Velocity(i)
		sum += 0.5 * (vx*vx + vy*vy)
	}
	k.total += sum
	k.samples++
}

func (k *KineticEnergy) Value() float64 {
	if k.samples == 0 {
		return 0
	}
	return k.total / float64(k.samples)
}

func (k *KineticEnergy) Reset() {
	k.total = 0
	k.samples = 0
}

// PeakSpeed reports the largest per-step maximum speed seen in the run.
type PeakSpeed struct {
	peak float64
}

func NewPeakSpeed() *PeakSpeed { return &PeakSpeed{} }

func (p *PeakSpeed) Name() string { return "peak_speed" }

func (p *PeakSpeed) Observe(s *sim.State) {
	if ms := s.MaxSpeed(); ms > p.peak {
		p.peak = ms
	}
}

func (p *PeakSpeed) Value() float64 { return p.peak }

func (p *PeakSpeed) Reset() { p.peak = 0 }

// MeanPairs reports the average number of interacting pairs per frame, a
// rough density/clustering signal.
type MeanPairs struct {
	total   float64
	samples int
}

func NewMeanPairs() *MeanPairs { return &MeanPairs{} }

func (m *MeanPairs) Name() string { return "mean_pairs" }

func (m *MeanPairs) Observe(s *sim.State) {
	m.total += float64(s.PairCount())
	m.samples++
}

func (m *MeanPairs) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *MeanPairs) Reset() {
	m.total = 0
	m.samples = 0
}

// Defaults returns the metric set attached to every headless run.
func Defaults() []Metric {
	return []Metric{NewKineticEnergy(), NewPeakSpeed(), NewMeanPairs()}
}
