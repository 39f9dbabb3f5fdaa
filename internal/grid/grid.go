// Package grid implements the uniform spatial index used for neighbor
// queries. Cells hold intrusive singly-linked lists backed by two flat
// index arrays (head per cell, next per particle), so a full rebuild
// allocates nothing.
package grid

import (
	"math"

	"github.com/avray/plife/internal/life"
)

const noParticle = -1

// Grid buckets particles into square cells of fixed side over the world
// domain. It is rebuilt from scratch every step; particles move
// continuously, so incremental membership tracking buys nothing here.
type Grid struct {
	cellSize float64
	dim      int
	wrap     bool
	heads    []int32
	next     []int32
}

// New returns a grid for n particles with the given cell side. Under wrap
// the neighbor scan treats cell coordinates modulo the grid dimension.
func New(cellSize float64, n int, wrap bool) *Grid {
	dim := int(math.Ceil(life.WorldSize / cellSize))
	if dim < 1 {
		dim = 1
	}
	return &Grid{
		cellSize: cellSize,
		dim:      dim,
		wrap:     wrap,
		heads:    make([]int32, dim*dim),
		next:     make([]int32, n),
	}
}

// Dim returns the grid dimension (cells per axis).
func (g *Grid) Dim() int { return g.dim }

// Reach returns how many cell rings a scan must cover to see every
// particle within radius r. The block conservatively over-covers; callers
// still filter by true Euclidean distance.
func (g *Grid) Reach(r float64) int {
	return int(math.Ceil(r / g.cellSize))
}

// cellCoord maps a normalized coordinate in [-1,1] to a cell index on one
// axis, clamped to the grid. The mapping is only correct for coordinates
// already normalized into the world; Rebuild callers guarantee that.
func (g *Grid) cellCoord(v float64) int {
	c := int(math.Floor((v - life.WorldMin) * 0.5 * float64(g.dim)))
	if c < 0 {
		return 0
	}
	if c >= g.dim {
		return g.dim - 1
	}
	return c
}

// Rebuild clears every bucket and reinserts all particles by current
// position in O(n).
func (g *Grid) Rebuild(px, py []float64) {
	for i := range g.heads {
		g.heads[i] = noParticle
	}
	for i := range px {
		c := g.cellCoord(py[i])*g.dim + g.cellCoord(px[i])
		g.next[i] = g.heads[c]
		g.heads[c] = int32(i)
	}
}

// ForEachNeighbor calls fn for every particle index j found in the
// (2*reach+1)^2 block of cells centered on particle i's cell, excluding i
// itself. Under wrap the block wraps around the torus; otherwise
// out-of-range cells are skipped.
func (g *Grid) ForEachNeighbor(i int, px, py []float64, reach int, fn func(j int)) {
	if g.wrap && 2*reach+1 >= g.dim {
		// Block would lap the torus; scan every cell once instead.
		g.forEachAll(i, fn)
		return
	}

	cx := g.cellCoord(px[i])
	cy := g.cellCoord(py[i])

	for dy := -reach; dy <= reach; dy++ {
		ny := cy + dy
		if g.wrap {
			ny = ((ny % g.dim) + g.dim) % g.dim
		} else if ny < 0 || ny >= g.dim {
			continue
		}
		for dx := -reach; dx <= reach; dx++ {
			nx := cx + dx
			if g.wrap {
				nx = ((nx % g.dim) + g.dim) % g.dim
			} else if nx < 0 || nx >= g.dim {
				continue
			}
			for j := g.heads[ny*g.dim+nx]; j != noParticle; j = g.next[j] {
				if int(j) != i {
					fn(int(j))
				}
			}
		}
	}
}

func (g *Grid) forEachAll(i int, fn func(j int)) {
	for c := range g.heads {
		for j := g.heads[c]; j != noParticle; j = g.next[j] {
			if int(j) != i {
				fn(int(j))
			}
		}
	}
}
