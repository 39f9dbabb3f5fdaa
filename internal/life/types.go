package life

import (
	"fmt"
	"math"
)

// World bounds. Positions are normalized into [WorldMin, WorldMax] on
// both axes after every step.
const (
	WorldMin  = -1.0
	WorldMax  = 1.0
	WorldSize = WorldMax - WorldMin
)

// Particle placement modes.
const (
	PlacementUniform = "uniform"
	PlacementDisk    = "disk"
	PlacementNoise   = "noise"
)

// Rule matrix generation presets, used when no explicit matrix is given.
const (
	MatrixRandom = "random"
	MatrixRing   = "ring"
)

const (
	DefaultN        = 1024
	DefaultK        = 6
	DefaultRMin     = 0.05
	DefaultR        = 0.25
	DefaultDt       = 0.02
	DefaultDrag     = 2.0
	DefaultVMax     = 1.0
	DefaultCellSize = 0.25
	DefaultSettleK  = 4.0
)

// Spec is the configuration bundle for one simulation instance. A Spec is
// normalized before use; all fields then satisfy the documented bounds.
type Spec struct {
	N             int         // particle count, >= 0
	K             int         // type count, >= 2
	A             [][]float64 // optional K x K rule matrix; nil requests generation
	MatrixPreset  string      // generator used when A is absent or malformed
	RMin          float64     // hard-core repulsion threshold, 0 < RMin < 1
	R             float64     // interaction cutoff, RMin < R <= world diagonal
	Dt            float64     // step size, > 0
	Drag          float64     // velocity decay rate, >= 0
	VMax          float64     // speed clamp, >= 0
	Wrap          bool        // torus when true, reflecting box otherwise
	CellSize      float64     // spatial index cell side, > 0
	MutualOnly    bool        // gate forces on mutual attraction
	SettleEnabled bool        // radial dashpot on mutually attractive pairs
	SettleK       float64     // dashpot gain, >= 0
	SettleR       float64     // dashpot range, RMin < SettleR <= R
	Placement     string      // initial placement mode
}

// DefaultSpec returns a spec that produces a lively mixed population on a
// torus.
func DefaultSpec() Spec {
	return Spec{
		N:            DefaultN,
		K:            DefaultK,
		MatrixPreset: MatrixRandom,
		RMin:         DefaultRMin,
		R:            DefaultR,
		Dt:           DefaultDt,
		Drag:         DefaultDrag,
		VMax:         DefaultVMax,
		Wrap:         true,
		CellSize:     DefaultCellSize,
		SettleK:      DefaultSettleK,
		SettleR:      0.15,
		Placement:    PlacementUniform,
	}
}

// WorldDiagonal is the largest separation two particles can have in the
// reflecting box.
func WorldDiagonal() float64 {
	return WorldSize * math.Sqrt2
}

// Normalize repairs every out-of-range field in place and reports what it
// fixed. Repairs clamp to the nearest valid bound; a malformed matrix is
// dropped so the engine regenerates one from MatrixPreset. The returned
// errors wrap [ErrParameterBounds] or [ErrShapeMismatch] and exist for
// logging only; Normalize never fails.
func (s *Spec) Normalize() []error {
	var repairs []error
	fix := func(field string, sentinel error) {
		repairs = append(repairs, fmt.Errorf("%s: %w", field, sentinel))
	}

	if s.N < 0 {
		s.N = 0
		fix("n", ErrParameterBounds)
	}
	if s.K < 2 {
		s.K = 2
		fix("k", ErrParameterBounds)
	}
	if s.Dt <= 0 {
		s.Dt = DefaultDt
		fix("dt", ErrParameterBounds)
	}
	if s.RMin <= 0 || s.RMin >= 1 {
		s.RMin = DefaultRMin
		fix("r_min", ErrParameterBounds)
	}
	if s.R <= s.RMin {
		s.R = math.Min(2*s.RMin, WorldDiagonal())
		fix("radius", ErrParameterBounds)
	}
	if s.R > WorldDiagonal() {
		s.R = WorldDiagonal()
		fix("radius", ErrParameterBounds)
	}
	if s.CellSize <= 0 {
		s.CellSize = s.R
		fix("cell_size", ErrParameterBounds)
	}
	if s.Drag < 0 {
		s.Drag = 0
		fix("drag", ErrParameterBounds)
	}
	if s.VMax < 0 {
		s.VMax = 0
		fix("max_speed", ErrParameterBounds)
	}
	if s.SettleK < 0 {
		s.SettleK = 0
		fix("settle_k", ErrParameterBounds)
	}
	if s.SettleR <= s.RMin || s.SettleR > s.R {
		s.SettleR = 0.5 * (s.RMin + s.R)
		fix("settle_radius", ErrParameterBounds)
	}
	if s.MatrixPreset == "" {
		s.MatrixPreset = MatrixRandom
	}
	if s.Placement == "" {
		s.Placement = PlacementUniform
	}
	if s.A != nil && !squareOfSide(s.A, s.K) {
		s.A = nil
		fix("matrix", ErrShapeMismatch)
	}
	return repairs
}

func squareOfSide(a [][]float64, k int) bool {
	if len(a) != k {
		return false
	}
	for _, row := range a {
		if len(row) != k {
			return false
		}
	}
	return true
}

// Diagnostics carries the per-frame observability values the engine
// reports to collaborators. They are not part of the physical model.
type Diagnostics struct {
	Frame    int
	MaxSpeed float64
}

// Snapshot is a copied view of the particle arrays for read-only
// collaborators (renderers, exporters). Mutating a snapshot has no effect
// on the engine.
type Snapshot struct {
	X, Y   []float64
	VX, VY []float64
	Type   []int
	Diagnostics
}
