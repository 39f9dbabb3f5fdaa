package grid

import (
	"math/rand"
	"testing"
)

func TestRebuildEveryParticleInOneCell(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	n := 200
	px := make([]float64, n)
	py := make([]float64, n)
	for i := 0; i < n; i++ {
		px[i] = rng.Float64()*2 - 1
		py[i] = rng.Float64()*2 - 1
	}

	g := New(0.25, n, false)
	g.Rebuild(px, py)

	seen := make([]int, n)
	for c := range g.heads {
		for j := g.heads[c]; j != noParticle; j = g.next[j] {
			seen[j]++
		}
	}
	for i, count := range seen {
		if count != 1 {
			t.Errorf("particle %d appears in %d cells, want 1", i, count)
		}
	}
}

func TestNeighborQueryCoversCutoff(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	n := 300
	px := make([]float64, n)
	py := make([]float64, n)
	for i := 0; i < n; i++ {
		px[i] = rng.Float64()*2 - 1
		py[i] = rng.Float64()*2 - 1
	}

	radius := 0.3
	g := New(0.25, n, false)
	g.Rebuild(px, py)
	reach := g.Reach(radius)

	for i := 0; i < 20; i++ {
		found := make(map[int]bool)
		g.ForEachNeighbor(i, px, py, reach, func(j int) {
			found[j] = true
		})

		// Brute force: every particle within the cutoff must be reported.
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			dx := px[j] - px[i]
			dy := py[j] - py[i]
			if dx*dx+dy*dy <= radius*radius && !found[j] {
				t.Fatalf("particle %d within radius of %d but not reported", j, i)
			}
		}
		if found[i] {
			t.Errorf("self pair reported for particle %d", i)
		}
	}
}

func TestNeighborQueryWrapsAcrossBoundary(t *testing.T) {
	px := []float64{-0.99, 0.99}
	py := []float64{0, 0}

	g := New(0.25, 2, true)
	g.Rebuild(px, py)

	found := false
	g.ForEachNeighbor(0, px, py, g.Reach(0.25), func(j int) {
		if j == 1 {
			found = true
		}
	})
	if !found {
		t.Error("torus neighbor across the seam not reported")
	}

	// Reflecting box: the same pair is far apart, cells must not wrap.
	g = New(0.25, 2, false)
	g.Rebuild(px, py)
	g.ForEachNeighbor(0, px, py, g.Reach(0.25), func(j int) {
		if j == 1 {
			t.Error("boundary cells wrapped without wrap mode")
		}
	})
}

func TestNeighborQueryNoDuplicatesWhenBlockLapsTorus(t *testing.T) {
	px := []float64{0, 0.1, -0.5}
	py := []float64{0, 0.1, 0.5}

	g := New(0.5, 3, true) // dim 4, reach 3 laps the torus
	g.Rebuild(px, py)

	counts := make(map[int]int)
	g.ForEachNeighbor(0, px, py, 3, func(j int) {
		counts[j]++
	})
	for j, c := range counts {
		if c != 1 {
			t.Errorf("particle %d reported %d times, want 1", j, c)
		}
	}
	if len(counts) != 2 {
		t.Errorf("expected 2 neighbors, got %d", len(counts))
	}
}

func TestCellCoordClampsEdges(t *testing.T) {
	g := New(0.25, 0, false)
	if c := g.cellCoord(-1); c != 0 {
		t.Errorf("left edge maps to %d, want 0", c)
	}
	if c := g.cellCoord(1); c != g.dim-1 {
		t.Errorf("right edge maps to %d, want %d", c, g.dim-1)
	}
}
