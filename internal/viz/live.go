package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/lorenzo-frittoli/black-hole-sim/internal/geodesic"
)

const (
	canvasWidth  = 60
	canvasHeight = 28
	graphWidth   = 30
	graphHeight  = 6

	defaultStepsPerFrame = 200
	minStepsPerFrame     = 10
	maxStepsPerFrame     = 5000
)

type TickMsg time.Time

// Model animates an integration run frame by frame.
type Model struct {
	params geodesic.Params
	cfg    geodesic.Config

	in            *geodesic.Integrator
	view          *OrbitView
	stepsPerFrame int
	running       bool
	showHelp      bool
	err           error
}

// NewModel builds the live view. The integrator config is used as-is, so the
// caller decides about step ceilings and state validation.
func NewModel(params geodesic.Params, cfg geodesic.Config) (Model, error) {
	in, err := geodesic.New(params, cfg)
	if err != nil {
		return Model{}, err
	}

	extent := params.StartDistance
	if extent < cfg.CaptureRadius {
		extent = cfg.CaptureRadius
	}

	return Model{
		params:        params,
		cfg:           cfg,
		in:            in,
		view:          NewOrbitView(canvasWidth, canvasHeight, extent, cfg.CaptureRadius),
		stepsPerFrame: defaultStepsPerFrame,
		running:       true,
	}, nil
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and advances the integration.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "+", "=":
			m.stepsPerFrame *= 2
			if m.stepsPerFrame > maxStepsPerFrame {
				m.stepsPerFrame = maxStepsPerFrame
			}
		case "-", "_":
			m.stepsPerFrame /= 2
			if m.stepsPerFrame < minStepsPerFrame {
				m.stepsPerFrame = minStepsPerFrame
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running && !m.in.Captured() && m.err == nil {
			m.advance()
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

// advance takes one frame's worth of integration steps.
func (m *Model) advance() {
	for i := 0; i < m.stepsPerFrame; i++ {
		if m.in.Captured() {
			return
		}
		s := m.in.Step()
		if m.cfg.ValidateState && !s.IsValid() {
			m.err = geodesic.ErrNonFinite
			return
		}
	}
}

func (m *Model) reset() {
	// Config already validated once; New cannot fail here.
	in, err := geodesic.New(m.params, m.cfg)
	if err != nil {
		m.err = err
		return
	}
	m.in = in
	m.err = nil
	m.running = true
}

// View renders the orbit canvas alongside the state panel.
func (m Model) View() string {
	tr := m.in.Trajectory()
	last := tr.Last()

	canvasView := canvasStyle.Render(m.view.Render(tr, tr.Len()))

	status := statusRunning.Render("FALLING")
	switch {
	case m.err != nil:
		status = statusCaptured.Render("DIVERGED")
	case m.in.Captured():
		status = statusCaptured.Render("CAPTURED")
	case !m.running:
		status = statusPaused.Render("PAUSED")
	}

	var stats strings.Builder
	stats.WriteString(status + "\n\n")
	row := func(label, value string) {
		stats.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("proper time", fmt.Sprintf("%.3f", m.in.Tau()))
	row("coord time", fmt.Sprintf("%.3f", last.Time))
	row("distance", fmt.Sprintf("%.4f", last.Distance))
	row("angle", fmt.Sprintf("%.4f rad", last.Angle))
	row("radial speed", fmt.Sprintf("%.4f", last.Speed))
	row("steps", fmt.Sprintf("%d", tr.Len()-1))
	row("steps/frame", fmt.Sprintf("%d", m.stepsPerFrame))

	stats.WriteString("\n" + graphStyle.Render(distanceGraph(tr)))

	var s strings.Builder
	s.WriteString(headerStyle.Render("SCHWARZSCHILD INFALL") + "\n")
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(stats.String())))

	if m.showHelp {
		s.WriteString(helpStyle.Render("\nspace pause · r reset · +/- speed · ? help · q quit"))
	} else {
		s.WriteString(helpStyle.Render("\n? for keys"))
	}
	return s.String()
}

// distanceGraph plots the distance history, downsampled to the graph width.
func distanceGraph(tr *geodesic.Trajectory) string {
	n := tr.Len()
	if n < 2 {
		return ""
	}

	stride := n / graphWidth
	if stride < 1 {
		stride = 1
	}
	data := make([]float64, 0, graphWidth+1)
	for i := 0; i < n; i += stride {
		r := tr.Distances[i]
		if math.IsNaN(r) || math.IsInf(r, 0) {
			continue
		}
		data = append(data, r)
	}
	if len(data) < 2 {
		return ""
	}

	return asciigraph.Plot(data,
		asciigraph.Height(graphHeight),
		asciigraph.Width(graphWidth),
		asciigraph.Caption("distance"),
	)
}
