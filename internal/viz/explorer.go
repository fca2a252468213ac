package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/cartpole/internal/cartpole"
)

const (
	canvasWidth     = 60
	canvasHeight    = 16
	historyCapacity = 300
)

var (
	canvasStyle  = lipgloss.NewStyle().Padding(1, 2)
	statsStyle   = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(42)
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	failedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	runningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true)
	pausedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	graphStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Explorer is a Bubble Tea model driving the cart with the keyboard. A key
// press queues one push; the pole is otherwise left to the physics.
type Explorer struct {
	domain   *cartpole.Domain
	terminal *cartpole.TerminalFn
	reward   *cartpole.RewardFn

	state   cartpole.State
	initial cartpole.State

	pendingDir float64
	lastDir    float64
	steps      int
	ret        float64
	failed     bool
	running    bool

	canvas       *Canvas
	angleHistory []float64
}

func NewExplorer(domain *cartpole.Domain, start cartpole.State) Explorer {
	return Explorer{
		domain:       domain,
		terminal:     cartpole.NewTerminalFn(domain.Params),
		reward:       cartpole.NewRewardFn(domain.Params),
		state:        start,
		initial:      start,
		running:      true,
		canvas:       NewCanvas(canvasWidth, canvasHeight),
		angleHistory: make([]float64, 0, historyCapacity),
	}
}

func (e Explorer) Init() tea.Cmd {
	return e.tick()
}

func (e Explorer) tick() tea.Cmd {
	delay := time.Duration(e.domain.Params.TimeDelta * float64(time.Second))
	return tea.Tick(delay, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (e Explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return e, tea.Quit
		case " ":
			e.running = !e.running
		case "r":
			e.reset()
		case "a", "left":
			e.pendingDir = -1
		case "d", "right":
			e.pendingDir = 1
		}
	case TickMsg:
		if e.running && !e.failed {
			e.step()
		}
		return e, e.tick()
	}
	return e, nil
}

// step applies the queued push, if any, then lets the dynamics advance by
// one time delta.
func (e *Explorer) step() {
	prev := e.state
	dir := e.pendingDir
	e.pendingDir = 0
	e.lastDir = dir

	e.domain.Step(&e.state, dir)
	e.steps++

	a := cartpole.Action{Name: "push", Dir: dir}
	e.ret += e.reward.Reward(prev, a, e.state)

	if e.terminal.IsTerminal(e.state) {
		e.failed = true
	}

	e.angleHistory = append(e.angleHistory, e.state.Angle)
	if len(e.angleHistory) > historyCapacity {
		e.angleHistory = e.angleHistory[1:]
	}
}

func (e *Explorer) reset() {
	e.state = e.initial
	e.pendingDir = 0
	e.lastDir = 0
	e.steps = 0
	e.ret = 0
	e.failed = false
	e.running = true
	e.angleHistory = e.angleHistory[:0]
}

func (e Explorer) View() string {
	e.draw()
	canvasView := canvasStyle.Render(e.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render("CART POLE") + "\n")

	switch {
	case e.failed:
		s.WriteString(failedStyle.Render("FAILED") + "\n\n")
	case e.running:
		s.WriteString(runningStyle.Render("RUNNING") + "\n\n")
	default:
		s.WriteString(pausedStyle.Render("PAUSED") + "\n\n")
	}

	if len(e.angleHistory) > 1 {
		chart := asciigraph.Plot(e.angleHistory,
			asciigraph.Height(4), asciigraph.Width(28), asciigraph.Caption("Angle"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", float64(e.steps)*e.domain.Params.TimeDelta)) + "\n")
	s.WriteString(labelStyle.Render("Position") + valueStyle.Render(fmt.Sprintf("%7.3f m", e.state.X)) + "\n")
	s.WriteString(labelStyle.Render("Velocity") + valueStyle.Render(fmt.Sprintf("%7.3f m/s", e.state.XVel)) + "\n")
	s.WriteString(labelStyle.Render("Angle") + valueStyle.Render(fmt.Sprintf("%7.2f deg", e.state.Angle*180/math.Pi)) + "\n")
	s.WriteString(labelStyle.Render("Angle vel") + valueStyle.Render(fmt.Sprintf("%7.3f rad/s", e.state.AngleVel)) + "\n")
	s.WriteString(labelStyle.Render("Return") + valueStyle.Render(fmt.Sprintf("%.0f", e.ret)) + "\n")

	push := "-"
	switch {
	case e.lastDir < 0:
		push = "<= left"
	case e.lastDir > 0:
		push = "right =>"
	}
	s.WriteString(labelStyle.Render("Push") + valueStyle.Render(push) + "\n")

	s.WriteString(helpStyle.Render("\n─────────────────────\nA:Left D:Right SP:Pause\nR:Reset Q:Quit"))

	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}

func (e *Explorer) draw() {
	e.canvas.Clear()
	DrawScene(e.canvas, e.domain.Params, e.state)
}

// DrawScene renders the track, cart, and pole onto the canvas.
func DrawScene(c *Canvas, p cartpole.Params, s cartpole.State) {
	cw, ch := c.Width*2, c.Height*4
	groundY := ch - 10
	scale := float64(cw-8) / (2 * p.HalfTrackLength)
	cx := cw / 2

	c.DrawLine(0, groundY+5, cw-1, groundY+5)

	// Track ends.
	lx := cx - int(p.HalfTrackLength*scale)
	rx := cx + int(p.HalfTrackLength*scale)
	c.DrawLine(lx, groundY-4, lx, groundY+5)
	c.DrawLine(rx, groundY-4, rx, groundY+5)

	cartX := cx + int(s.X*scale)
	c.FillRect(cartX-5, groundY, cartX+5, groundY+3)

	poleLen := float64(ch) * 0.55
	px := cartX + int(poleLen*math.Sin(s.Angle))
	py := groundY - int(poleLen*math.Cos(s.Angle))
	c.DrawLine(cartX, groundY, px, py)
	c.FillRect(px-1, py-1, px+1, py+1)
}

// Snapshot renders one state to a fresh canvas.
func Snapshot(p cartpole.Params, s cartpole.State) *Canvas {
	c := NewCanvas(canvasWidth, canvasHeight)
	DrawScene(c, p, s)
	return c
}

// RunExplorer starts the interactive viewer and blocks until quit.
func RunExplorer(domain *cartpole.Domain, start cartpole.State) error {
	_, err := tea.NewProgram(NewExplorer(domain, start), tea.WithAltScreen()).Run()
	return err
}
