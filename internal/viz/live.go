// Package viz renders a live terminal view of a running scene with a braille
// canvas inside a bubbletea program.
package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/ravi-l/povsim/internal/config"
	"github.com/ravi-l/povsim/internal/scene"
	"github.com/ravi-l/povsim/internal/vec"
)

const (
	canvasWidth     = 70
	canvasHeight    = 22
	historyCapacity = 600

	// world window projected onto the canvas
	worldXMin = -3.5
	worldXMax = 3.5
	worldYMin = -1.5
	worldYMax = 5.5
)

type TickMsg time.Time

// Model steps the scene in real time and draws it.
type Model struct {
	cfg *config.Config
	sc  *scene.Scene

	canvas  *Canvas
	running bool
	fps     int

	energyHistory []float64
	trail         []vec.Vec3
}

func NewModel(cfg *config.Config, fps int) (Model, error) {
	sc, err := scene.BuildPendulum(cfg)
	if err != nil {
		return Model{}, err
	}
	if fps <= 0 {
		fps = 30
	}
	return Model{
		cfg:           cfg,
		sc:            sc,
		canvas:        NewCanvas(canvasWidth, canvasHeight),
		running:       true,
		fps:           fps,
		energyHistory: make([]float64, 0, historyCapacity),
		trail:         make([]vec.Vec3, 0, historyCapacity),
	}, nil
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
			m.running = !m.running
		case "r":
			if sc, err := scene.BuildPendulum(m.cfg); err == nil {
				m.sc = sc
				m.energyHistory = m.energyHistory[:0]
				m.trail = m.trail[:0]
			}
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

// step advances the system by one wall-frame worth of fixed steps.
func (m *Model) step() {
	perFrame := int(math.Max(1, math.Round(1/(float64(m.fps)*m.cfg.Dt))))
	for i := 0; i < perFrame; i++ {
		if err := m.sc.System.DoStep(m.cfg.Dt); err != nil {
			m.running = false
			return
		}
	}

	m.energyHistory = append(m.energyHistory, m.sc.System.Energy())
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}

	m.trail = append(m.trail, m.sc.Pendulum.Pos)
	if len(m.trail) > historyCapacity {
		m.trail = m.trail[1:]
	}
}

// project maps a world x/y position onto canvas sub-pixels.
func (m *Model) project(p vec.Vec3) (int, int) {
	sx := (p.X - worldXMin) / (worldXMax - worldXMin) * float64(m.canvas.SubWidth()-1)
	sy := (1 - (p.Y-worldYMin)/(worldYMax-worldYMin)) * float64(m.canvas.SubHeight()-1)
	return int(sx), int(sy)
}

func (m *Model) draw() {
	m.canvas.Clear()

	// floor top edge
	floorTop := m.sc.Floor.Pos.Y + m.sc.Floor.Size.Y/2
	x0, y0 := m.project(vec.Vec3{X: worldXMin, Y: floorTop})
	x1, y1 := m.project(vec.Vec3{X: worldXMax, Y: floorTop})
	m.canvas.Line(x0, y0, x1, y1)

	// trail
	for _, p := range m.trail {
		tx, ty := m.project(p)
		m.canvas.Set(tx, ty)
	}

	// rod from anchor to bob
	anchor := m.cfg.Scene.JointPoint.Vec()
	ax, ay := m.project(anchor)
	bx, by := m.project(m.sc.Pendulum.Pos)
	m.canvas.Line(ax, ay, bx, by)

	// bob outline
	half := m.sc.Pendulum.Size.Scale(0.5)
	cx0, cy0 := m.project(m.sc.Pendulum.Pos.Add(vec.Vec3{X: -half.X, Y: half.Y}))
	cx1, cy1 := m.project(m.sc.Pendulum.Pos.Add(vec.Vec3{X: half.X, Y: -half.Y}))
	m.canvas.Rect(cx0, cy0, cx1, cy1)
}

func (m Model) View() string {
	m.draw()

	var s strings.Builder
	s.WriteString(headerStyle.Render("PENDULUM") + "\n")
	s.WriteString(canvasStyle.Render(m.canvas.String()) + "\n")

	status := "running"
	if !m.running {
		status = pausedStyle.Render("paused")
	}
	s.WriteString(labelStyle.Render("status") + valueStyle.Render(status) + "\n")
	s.WriteString(labelStyle.Render("time") + valueStyle.Render(fmt.Sprintf("%.2f s", m.sc.System.Time())) + "\n")
	s.WriteString(labelStyle.Render("energy") + valueStyle.Render(fmt.Sprintf("%.1f J", m.sc.System.Energy())) + "\n")
	s.WriteString(labelStyle.Render("anchor drift") + valueStyle.Render(fmt.Sprintf("%.5f", m.sc.Link.AnchorDrift())) + "\n")

	if len(m.energyHistory) > 2 {
		graph := asciigraph.Plot(m.energyHistory,
			asciigraph.Height(5),
			asciigraph.Width(60),
			asciigraph.Caption("energy"),
		)
		s.WriteString(graphStyle.Render(graph) + "\n")
	}

	s.WriteString(helpStyle.Render("space pause · r reset · q quit"))
	return s.String()
}
