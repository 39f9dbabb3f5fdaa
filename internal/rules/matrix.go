// Package rules defines the per-type-pair interaction matrix and its
// persistence format.
package rules

import "math/rand"

// Matrix is a K x K table of interaction coefficients in [-1,1].
// Matrix[i][j] scales the force a type-j particle exerts on a type-i
// particle (row = receiver, column = source). The table is not required
// to be symmetric; asymmetric entries produce chase/flee behavior.
type Matrix [][]float64

// NewZero returns a k x k matrix of zeros.
func NewZero(k int) Matrix {
	m := make(Matrix, k)
	for i := range m {
		m[i] = make([]float64, k)
	}
	return m
}

// NewRandom returns a k x k matrix with entries uniform in [-1,1], drawn
// from rng so generation is reproducible.
func NewRandom(k int, rng *rand.Rand) Matrix {
	m := NewZero(k)
	for i := range m {
		for j := range m[i] {
			m[i][j] = rng.Float64()*2 - 1
		}
	}
	return m
}

// Ring preset coefficients: each type attracts itself and its successor
// modulo k, and mildly avoids its predecessor. Produces chains that close
// into rotating rings.
const (
	ringSelf = 0.6
	ringNext = 0.4
	ringPrev = -0.2
)

// NewRing returns the ring preset for k types.
func NewRing(k int) Matrix {
	m := NewZero(k)
	for i := 0; i < k; i++ {
		m[i][i] = ringSelf
		m[i][(i+1)%k] = ringNext
		m[i][(i+k-1)%k] = ringPrev
	}
	return m
}

// Valid reports whether m is square with side k.
func (m Matrix) Valid(k int) bool {
	if len(m) != k {
		return false
	}
	for _, row := range m {
		if len(row) != k {
			return false
		}
	}
	return true
}

// K returns the matrix side.
func (m Matrix) K() int { return len(m) }

// Clone returns a deep copy. The engine clones on swap so a live editor
// never aliases the hot-loop table.
func (m Matrix) Clone() Matrix {
	c := make(Matrix, len(m))
	for i, row := range m {
		c[i] = make([]float64, len(row))
		copy(c[i], row)
	}
	return c
}

// Clamp forces every entry into [-1,1] in place.
func (m Matrix) Clamp() {
	for i := range m {
		for j := range m[i] {
			if m[i][j] > 1 {
				m[i][j] = 1
			} else if m[i][j] < -1 {
				m[i][j] = -1
			}
		}
	}
}
