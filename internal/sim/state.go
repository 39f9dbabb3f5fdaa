// Package sim is the particle-life simulation engine: per-particle
// buffers, the per-frame step (index rebuild, pair force accumulation,
// integration), and the boundary policies.
package sim

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/avray/plife/internal/grid"
	"github.com/avray/plife/internal/life"
	"github.com/avray/plife/internal/physics"
	"github.com/avray/plife/internal/rules"
)

const initSpeed = 0.05

// State owns every per-particle buffer for one simulation instance.
// Particles live in parallel arrays rather than structs; the hot loop
// touches millions of (x, y, type) triples per second and the layout is
// part of the design, not an implementation detail.
//
// A State is single-threaded: one Step completes before the next begins,
// and no buffer is shared across instances. Hosts that want several
// simulations own several States. The rule matrix is the only structure
// swapped from outside the frame loop, via ApplyMatrix between steps.
type State struct {
	spec life.Spec
	rng  *rand.Rand
	mat  rules.Matrix
	idx  *grid.Grid

	px, py []float64
	vx, vy []float64
	fx, fy []float64
	typ    []int

	reach   int
	settleC float64

	frame    int
	maxSpeed float64
	pairs    int
}

// Init allocates a State for the normalized spec, places particles at
// random with small random velocities, and assigns random types. All
// randomness comes from a generator seeded with seed, so identical
// (spec, seed) pairs produce bit-identical trajectories.
//
// The returned repair list records every spec field Normalize had to
// clamp or regenerate; it is informational and never fatal. Structural
// parameter changes (N, K, cell size, wrap) require a fresh Init — there
// is no incremental resize.
func Init(spec life.Spec, seed int64) (*State, []error) {
	repairs := spec.Normalize()

	s := &State{
		spec: spec,
		rng:  rand.New(rand.NewSource(seed)),
		idx:  grid.New(spec.CellSize, spec.N, spec.Wrap),
		px:   make([]float64, spec.N),
		py:   make([]float64, spec.N),
		vx:   make([]float64, spec.N),
		vy:   make([]float64, spec.N),
		fx:   make([]float64, spec.N),
		fy:   make([]float64, spec.N),
		typ:  make([]int, spec.N),
	}
	s.reach = s.idx.Reach(spec.R)
	s.settleC = physics.SettleGain(spec.SettleK, spec.Dt)

	if spec.A != nil {
		s.mat = rules.Matrix(spec.A).Clone()
		s.mat.Clamp()
	} else {
		s.mat = s.generateMatrix()
	}

	s.place(seed)
	for i := 0; i < spec.N; i++ {
		s.vx[i] = (s.rng.Float64()*2 - 1) * initSpeed
		s.vy[i] = (s.rng.Float64()*2 - 1) * initSpeed
		s.typ[i] = s.rng.Intn(spec.K)
	}

	return s, repairs
}

func (s *State) generateMatrix() rules.Matrix {
	if s.spec.MatrixPreset == life.MatrixRing {
		return rules.NewRing(s.spec.K)
	}
	return rules.NewRandom(s.spec.K, s.rng)
}

// Step advances the simulation by one frame: rebuild the spatial index
// from current positions, accumulate pair forces, integrate. The rebuild
// must precede the force pass so positions from the previous step drive
// both indexing and forces within the same frame.
func (s *State) Step() {
	s.idx.Rebuild(s.px, s.py)

	for i := range s.fx {
		s.fx[i] = 0
		s.fy[i] = 0
	}
	s.pairs = 0

	for i := 0; i < s.spec.N; i++ {
		s.idx.ForEachNeighbor(i, s.px, s.py, s.reach, func(j int) {
			if j > i {
				s.pairForce(i, j)
			}
		})
	}

	s.maxSpeed = s.integrate()
	s.frame++
}

// pairForce evaluates one unordered pair. The two magnitudes are
// independent: mat[ti][tj] drives the force on i, mat[tj][ti] the force
// on j. Newton's third law is deliberately not enforced; asymmetric
// coefficients are what produce chase and flee behavior.
func (s *State) pairForce(i, j int) {
	dx := s.px[j] - s.px[i]
	dy := s.py[j] - s.py[i]
	if s.spec.Wrap {
		// Minimum-image convention on the torus.
		if dx > life.WorldSize/2 {
			dx -= life.WorldSize
		} else if dx < -life.WorldSize/2 {
			dx += life.WorldSize
		}
		if dy > life.WorldSize/2 {
			dy -= life.WorldSize
		} else if dy < -life.WorldSize/2 {
			dy += life.WorldSize
		}
	}

	r2 := dx*dx + dy*dy
	if r2 == 0 || r2 > s.spec.R*s.spec.R {
		// Coincident pairs have no direction; treat as no interaction.
		return
	}
	s.pairs++

	r := math.Sqrt(r2)
	ux := dx / r
	uy := dy / r

	aij := s.mat[s.typ[i]][s.typ[j]]
	aji := s.mat[s.typ[j]][s.typ[i]]
	mutual := aij > 0 && aji > 0

	if !s.spec.MutualOnly || mutual {
		fij := physics.Accel(aij, r, s.spec.RMin)
		fji := physics.Accel(aji, r, s.spec.RMin)
		s.fx[i] += fij * ux
		s.fy[i] += fij * uy
		s.fx[j] -= fji * ux
		s.fy[j] -= fji * uy
	}

	if s.spec.SettleEnabled && mutual && r > s.spec.RMin && r < s.spec.SettleR {
		vRel := (s.vx[i]-s.vx[j])*ux + (s.vy[i]-s.vy[j])*uy
		fd := s.settleC * vRel * physics.SettleWeight(r, s.spec.RMin, s.spec.SettleR)
		s.fx[i] -= fd * ux
		s.fy[i] -= fd * uy
		s.fx[j] += fd * ux
		s.fy[j] += fd * uy
	}
}

// ApplyMatrix hot-swaps the rule matrix without touching particle
// buffers. The matrix must be K x K for the current K; anything else is
// rejected with life.ErrShapeMismatch and the live matrix stays in place.
// Call between steps only.
func (s *State) ApplyMatrix(m rules.Matrix) error {
	if !m.Valid(s.spec.K) {
		return fmt.Errorf("apply %dx? matrix to k=%d: %w", m.K(), s.spec.K, life.ErrShapeMismatch)
	}
	s.mat = m.Clone()
	s.mat.Clamp()
	return nil
}

// RandomizeMatrix replaces the live matrix with a fresh random one drawn
// from the engine's own generator.
func (s *State) RandomizeMatrix() {
	s.mat = rules.NewRandom(s.spec.K, s.rng)
}

// Matrix returns a copy of the live rule matrix for editors.
func (s *State) Matrix() rules.Matrix { return s.mat.Clone() }

// Spec returns the normalized configuration this State was built with.
func (s *State) Spec() life.Spec { return s.spec }

// N returns the particle count.
func (s *State) N() int { return s.spec.N }

// K returns the type count.
func (s *State) K() int { return s.spec.K }

// Frame returns the number of completed steps.
func (s *State) Frame() int { return s.frame }

// MaxSpeed returns the largest particle speed observed in the last step.
func (s *State) MaxSpeed() float64 { return s.maxSpeed }

// PairCount returns how many interacting pairs the last step evaluated.
func (s *State) PairCount() int { return s.pairs }

// Velocity returns particle i's velocity components.
func (s *State) Velocity(i int) (float64, float64) { return s.vx[i], s.vy[i] }

// Position returns particle i's position.
func (s *State) Position(i int) (float64, float64) { return s.px[i], s.py[i] }

// Type returns particle i's type.
func (s *State) Type(i int) int { return s.typ[i] }

// Snapshot copies the particle arrays into a read-only view for
// renderers and exporters. Collaborators never touch engine buffers.
func (s *State) Snapshot() life.Snapshot {
	snap := life.Snapshot{
		X:    make([]float64, s.spec.N),
		Y:    make([]float64, s.spec.N),
		VX:   make([]float64, s.spec.N),
		VY:   make([]float64, s.spec.N),
		Type: make([]int, s.spec.N),
		Diagnostics: life.Diagnostics{
			Frame:    s.frame,
			MaxSpeed: s.maxSpeed,
		},
	}
	copy(snap.X, s.px)
	copy(snap.Y, s.py)
	copy(snap.VX, s.vx)
	copy(snap.VY, s.vy)
	copy(snap.Type, s.typ)
	return snap
}
