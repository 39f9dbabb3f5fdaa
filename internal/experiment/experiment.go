// Package experiment drives headless simulation runs: a fixed number of
// steps with context cancellation, metric observation, and a per-frame
// diagnostics history for later plotting.
package experiment

import (
	"context"

	"github.com/avray/plife/internal/metrics"
	"github.com/avray/plife/internal/sim"
)

// Observer is notified after every completed step.
type Observer interface {
	OnStep(s *sim.State)
}

type Runner struct {
	state     *sim.State
	metrics   []metrics.Metric
	observers []Observer
}

func NewRunner(state *sim.State) *Runner {
	return &Runner{state: state}
}

func (r *Runner) AddMetric(m metrics.Metric) { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer)     { r.observers = append(r.observers, o) }
func (r *Runner) State() *sim.State          { return r.state }

// Result collects the per-frame diagnostics history and the final metric
// values of a run.
type Result struct {
	Frames    int
	MaxSpeed  []float64
	Kinetic   []float64
	PairCount []float64
	Metrics   map[string]float64
}

// Run advances the simulation steps times, observing metrics after each
// step. Cancellation is checked between steps; a canceled run returns the
// partial result alongside the context error.
func (r *Runner) Run(ctx context.Context, steps int) (*Result, error) {
	result := &Result{
		MaxSpeed:  make([]float64, 0, steps),
		Kinetic:   make([]float64, 0, steps),
		PairCount: make([]float64, 0, steps),
		Metrics:   make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			r.finish(result)
			return result, ctx.Err()
		default:
		}

		r.state.Step()
		result.Frames++
		result.MaxSpeed = append(result.MaxSpeed, r.state.MaxSpeed())
		result.Kinetic = append(result.Kinetic, kinetic(r.state))
		result.PairCount = append(result.PairCount, float64(r.state.PairCount()))

		for _, m := range r.metrics {
			m.Observe(r.state)
		}
		for _, o := range r.observers {
			o.OnStep(r.state)
		}
	}

	r.finish(result)
	return result, nil
}

func (r *Runner) finish(result *Result) {
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func kinetic(s *sim.State) float64 {
	sum := 0.0
	for i := 0; i < s.N(); i++ {
		vx, vy := s.Velocity(i)
		sum += 0.5 * (vx*vx + vy*vy)
	}
	return sum
}
