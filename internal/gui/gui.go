// Package gui renders the particle cloud in a window. It is a thin
// collaborator over the engine: it drives one Step per update tick,
// draws read-only state, and forwards a few keys to the matrix editor
// surface. No simulation logic lives here.
package gui

import (
	"image/color"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/avray/plife/internal/life"
	"github.com/avray/plife/internal/rules"
	"github.com/avray/plife/internal/sim"
	"github.com/avray/plife/internal/viz"
)

const (
	screenSize     = 800
	particleRadius = 2.0
	matrixFile     = "matrix.json"
)

type Game struct {
	state  *sim.State
	colors []color.RGBA
	paused bool
	uiRand *rand.Rand
}

func NewGame(state *sim.State) *Game {
	return &Game{
		state:  state,
		colors: viz.TypeColors(state.K()),
		uiRand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.state.ApplyMatrix(rules.NewRandom(g.state.K(), g.uiRand))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		g.state.ApplyMatrix(rules.NewRing(g.state.K()))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		rules.Save(matrixFile, g.state.Matrix())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		if m, err := rules.Load(matrixFile, g.state.K()); err == nil {
			g.state.ApplyMatrix(m)
		}
	}

	if !g.paused {
		g.state.Step()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	scale := float64(screenSize) / life.WorldSize
	for i := 0; i < g.state.N(); i++ {
		x, y := g.state.Position(i)
		sx := float32((x - life.WorldMin) * scale)
		sy := float32((y - life.WorldMin) * scale)
		vector.DrawFilledCircle(screen, sx, sy, particleRadius, g.colors[g.state.Type(i)], true)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenSize, screenSize
}

// Run opens the window and blocks until it closes.
func Run(state *sim.State) error {
	ebiten.SetWindowSize(screenSize, screenSize)
	ebiten.SetWindowTitle("particle life")
	return ebiten.RunGame(NewGame(state))
}
