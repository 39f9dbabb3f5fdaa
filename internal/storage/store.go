// Package storage persists simulation runs to a data directory. Each run
// gets its own directory holding metadata.json, a per-frame
// diagnostics.csv, the final particle snapshot, and the rule matrix that
// produced it.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/avray/plife/internal/experiment"
	"github.com/avray/plife/internal/life"
	"github.com/avray/plife/internal/rules"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Particles int                `json:"particles"`
	Types     int                `json:"types"`
	Dt        float64            `json:"dt"`
	Steps     int                `json:"steps"`
	Wrap      bool               `json:"wrap"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes one completed run. Run IDs come from the wall clock; the
// CLI runs simulations one at a time, so IDs do not collide.
func (s *Store) Save(spec life.Spec, seed int64, result *experiment.Result, snap life.Snapshot, matrix rules.Matrix) (string, error) {
	runID := fmt.Sprintf("run_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Timestamp: time.Now(),
		Seed:      seed,
		Particles: spec.N,
		Types:     spec.K,
		Dt:        spec.Dt,
		Steps:     result.Frames,
		Wrap:      spec.Wrap,
		Metrics:   result.Metrics,
	}
	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}

	if err := writeDiagnostics(filepath.Join(runDir, "diagnostics.csv"), result); err != nil {
		return "", err
	}
	if err := writeParticles(filepath.Join(runDir, "particles.csv"), snap); err != nil {
		return "", err
	}
	if err := rules.Save(filepath.Join(runDir, "matrix.json"), matrix); err != nil {
		return "", err
	}

	return runID, nil
}

func writeJSON(path string, v any) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeDiagnostics(path string, result *experiment.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"frame", "max_speed", "kinetic", "pairs"}); err != nil {
		return err
	}
	for i := 0; i < result.Frames; i++ {
		row := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(result.MaxSpeed[i], 'f', 6, 64),
			strconv.FormatFloat(result.Kinetic[i], 'f', 6, 64),
			strconv.FormatFloat(result.PairCount[i], 'f', 0, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

func writeParticles(path string, snap life.Snapshot) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"x", "y", "vx", "vy", "type"}); err != nil {
		return err
	}
	for i := range snap.X {
		row := []string{
			strconv.FormatFloat(snap.X[i], 'f', 6, 64),
			strconv.FormatFloat(snap.Y[i], 'f', 6, 64),
			strconv.FormatFloat(snap.VX[i], 'f', 6, 64),
			strconv.FormatFloat(snap.VY[i], 'f', 6, 64),
			strconv.Itoa(snap.Type[i]),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

// List returns metadata for every stored run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var runs []RunMetadata
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue // skip corrupt entries, the rest stay listable
		}
		runs = append(runs, meta)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

// Load reads one run's metadata.
func (s *Store) Load(runID string) (RunMetadata, error) {
	var meta RunMetadata
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return meta, err
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return meta, fmt.Errorf("decode metadata for %s: %w", runID, err)
	}
	return meta, nil
}

// Diagnostics reads the per-frame history columns of a run.
func (s *Store) Diagnostics(runID string) (maxSpeed, kinetic, pairs []float64, err error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "diagnostics.csv"))
	if err != nil {
		return nil, nil, nil, err
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, nil, nil, err
	}
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		ms, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, nil, nil, err
		}
		ke, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, nil, nil, err
		}
		pc, err := strconv.ParseFloat(row[3], 64)
		if err != nil {
			return nil, nil, nil, err
		}
		maxSpeed = append(maxSpeed, ms)
		kinetic = append(kinetic, ke)
		pairs = append(pairs, pc)
	}
	return maxSpeed, kinetic, pairs, nil
}

// MatrixPath returns where a run's rule matrix lives, for re-use with
// the matrix loader.
func (s *Store) MatrixPath(runID string) string {
	return filepath.Join(s.baseDir, runID, "matrix.json")
}
