package viz

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/avray/plife/internal/rules"
	"github.com/avray/plife/internal/sim"
)

const (
	canvasCols   = 72
	canvasRows   = 24
	speedHistLen = 120
	graphHeight  = 6
	matrixFile   = "matrix.json"
)

type TickMsg time.Time

// Model is the bubbletea model for the live terminal view. It owns the
// frame loop: one engine step per tick, matrix edits applied between
// steps only.
type Model struct {
	state     *sim.State
	canvas    *Canvas
	speedHist []float64
	fps       int
	paused    bool
	status    string
	uiRand    *rand.Rand
}

func NewModel(state *sim.State, fps int) Model {
	if fps <= 0 {
		fps = 30
	}
	return Model{
		state:     state,
		canvas:    NewCanvas(canvasCols, canvasRows),
		speedHist: make([]float64, 0, speedHistLen),
		fps:       fps,
		uiRand:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "r":
			m.state.ApplyMatrix(rules.NewRandom(m.state.K(), m.uiRand))
			m.status = "matrix: random"
		case "g":
			m.state.ApplyMatrix(rules.NewRing(m.state.K()))
			m.status = "matrix: ring"
		case "s":
			if err := rules.Save(matrixFile, m.state.Matrix()); err != nil {
				m.status = "save failed: " + err.Error()
			} else {
				m.status = "matrix saved to " + matrixFile
			}
		case "l":
			loaded, err := rules.Load(matrixFile, m.state.K())
			if err != nil {
				m.status = "load failed: " + err.Error()
			} else {
				m.state.ApplyMatrix(loaded)
				m.status = "matrix loaded from " + matrixFile
			}
		}
		return m, nil

	case TickMsg:
		if !m.paused {
			m.state.Step()
			m.speedHist = append(m.speedHist, m.state.MaxSpeed())
			if len(m.speedHist) > speedHistLen {
				m.speedHist = m.speedHist[1:]
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) View() string {
	m.canvas.Clear()
	for i := 0; i < m.state.N(); i++ {
		x, y := m.state.Position(i)
		m.canvas.Plot(x, y)
	}

	stats := m.renderStats()
	main := lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(m.canvas.String()),
		"  ",
		stats,
	)

	var b strings.Builder
	b.WriteString(headerStyle.Render("particle life"))
	b.WriteByte('\n')
	b.WriteString(main)
	if len(m.speedHist) > 1 {
		graph := asciigraph.Plot(m.speedHist,
			asciigraph.Height(graphHeight),
			asciigraph.Caption("max speed"),
		)
		b.WriteByte('\n')
		b.WriteString(graphStyle.Render(graph))
	}
	b.WriteByte('\n')
	b.WriteString(helpStyle.Render("space pause · r random · g ring · s/l save/load matrix · q quit"))
	return b.String()
}

func (m Model) renderStats() string {
	row := func(label, value string) string {
		return labelStyle.Render(label) + valueStyle.Render(value)
	}

	lines := []string{
		row("particles", fmt.Sprintf("%d", m.state.N())),
		row("types", fmt.Sprintf("%d", m.state.K())),
		row("frame", fmt.Sprintf("%d", m.state.Frame())),
		row("max speed", fmt.Sprintf("%.4f", m.state.MaxSpeed())),
		row("pairs", fmt.Sprintf("%d", m.state.PairCount())),
	}
	if m.paused {
		lines = append(lines, pausedStyle.Render("paused"))
	}
	if m.status != "" {
		lines = append(lines, valueStyle.Render(m.status))
	}
	return strings.Join(lines, "\n")
}

// Run starts the live view and blocks until the user quits.
func Run(state *sim.State, fps int) error {
	_, err := tea.NewProgram(NewModel(state, fps)).Run()
	return err
}
