package storage

import (
	"context"
	"testing"

	"github.com/avray/plife/internal/experiment"
	"github.com/avray/plife/internal/life"
	"github.com/avray/plife/internal/metrics"
	"github.com/avray/plife/internal/rules"
	"github.com/avray/plife/internal/sim"
)

func savedRun(t *testing.T, store *Store) string {
	t.Helper()

	spec := life.DefaultSpec()
	spec.N = 50
	state, _ := sim.Init(spec, 13)

	runner := experiment.NewRunner(state)
	for _, m := range metrics.Defaults() {
		runner.AddMetric(m)
	}
	result, err := runner.Run(context.Background(), 5)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	runID, err := store.Save(state.Spec(), 13, result, state.Snapshot(), state.Matrix())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	return runID
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID := savedRun(t, store)

	meta, err := store.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Particles != 50 {
		t.Errorf("particles = %d, want 50", meta.Particles)
	}
	if meta.Steps != 5 {
		t.Errorf("steps = %d, want 5", meta.Steps)
	}
	if len(meta.Metrics) == 0 {
		t.Error("metrics missing from metadata")
	}

	maxSpeed, kinetic, pairs, err := store.Diagnostics(runID)
	if err != nil {
		t.Fatalf("diagnostics failed: %v", err)
	}
	if len(maxSpeed) != 5 || len(kinetic) != 5 || len(pairs) != 5 {
		t.Errorf("diagnostics lengths %d/%d/%d, want 5", len(maxSpeed), len(kinetic), len(pairs))
	}

	// The stored matrix must load back against the run's type count.
	if _, err := rules.Load(store.MatrixPath(runID), meta.Types); err != nil {
		t.Errorf("stored matrix unusable: %v", err)
	}
}

func TestListReturnsSavedRuns(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID := savedRun(t, store)

	runs, err := store.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != runID {
		t.Errorf("list = %v, want single run %s", runs, runID)
	}
}

func TestListEmptyBaseDir(t *testing.T) {
	store := New("/nonexistent/plife-test")
	runs, err := store.List()
	if err != nil {
		t.Fatalf("missing dir should not error: %v", err)
	}
	if runs != nil {
		t.Errorf("expected no runs, got %v", runs)
	}
}
