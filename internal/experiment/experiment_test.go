package experiment

import (
	"context"
	"errors"
	"testing"

	"github.com/avray/plife/internal/life"
	"github.com/avray/plife/internal/metrics"
	"github.com/avray/plife/internal/sim"
)

type countingObserver struct {
	calls int
}

func (c *countingObserver) OnStep(s *sim.State) { c.calls++ }

func newTestRunner(t *testing.T, n int) *Runner {
	t.Helper()
	spec := life.DefaultSpec()
	spec.N = n
	s, _ := sim.Init(spec, 7)
	return NewRunner(s)
}

func TestRunCompletesRequestedSteps(t *testing.T) {
	r := newTestRunner(t, 100)
	for _, m := range metrics.Defaults() {
		r.AddMetric(m)
	}
	obs := &countingObserver{}
	r.AddObserver(obs)

	result, err := r.Run(context.Background(), 25)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.Frames != 25 {
		t.Errorf("frames = %d, want 25", result.Frames)
	}
	if len(result.MaxSpeed) != 25 || len(result.Kinetic) != 25 {
		t.Errorf("history lengths %d/%d, want 25", len(result.MaxSpeed), len(result.Kinetic))
	}
	if obs.calls != 25 {
		t.Errorf("observer called %d times, want 25", obs.calls)
	}
	if r.State().Frame() != 25 {
		t.Errorf("engine frame = %d, want 25", r.State().Frame())
	}

	for _, name := range []string{"kinetic_energy", "peak_speed", "mean_pairs"} {
		if _, ok := result.Metrics[name]; !ok {
			t.Errorf("missing metric %s", name)
		}
	}
}

func TestRunHonorsCancellation(t *testing.T) {
	r := newTestRunner(t, 100)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := r.Run(ctx, 1000)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if result.Frames != 0 {
		t.Errorf("canceled before start should run 0 frames, got %d", result.Frames)
	}
}
