// Package viz renders simulation state in the terminal: a braille dot
// canvas for the particle cloud plus lipgloss-styled panels, driven by a
// bubbletea program.
package viz

import (
	"strings"

	"github.com/avray/plife/internal/life"
)

// Braille cells pack 2x4 dots per rune, offset from U+2800:
//
//	1 4
//	2 5
//	3 6
//	7 8
var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

const brailleBase = 0x2800

// Canvas is a braille dot buffer with a direct world-to-dot projection
// for [-1,1] coordinates.
type Canvas struct {
	cols, rows int
	cells      []rune
}

func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{cols: cols, rows: rows, cells: make([]rune, cols*rows)}
	c.Clear()
	return c
}

func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = brailleBase
	}
}

// Plot lights the dot nearest to a world coordinate. Positions outside
// the world are ignored.
func (c *Canvas) Plot(wx, wy float64) {
	dotsX := c.cols * 2
	dotsY := c.rows * 4

	x := int((wx - life.WorldMin) / life.WorldSize * float64(dotsX))
	y := int((wy - life.WorldMin) / life.WorldSize * float64(dotsY))
	if x < 0 || y < 0 || x >= dotsX || y >= dotsY {
		return
	}

	c.cells[(y/4)*c.cols+x/2] |= dotBits[y%4][x%2]
}

func (c *Canvas) String() string {
	var b strings.Builder
	b.Grow(c.rows * (c.cols + 1))
	for row := 0; row < c.rows; row++ {
		b.WriteString(string(c.cells[row*c.cols : (row+1)*c.cols]))
		if row < c.rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
