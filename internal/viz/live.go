package viz

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"

	"github.com/san-kum/diffbot/internal/drive"
	"github.com/san-kum/diffbot/internal/pipeline"
)

const (
	canvasWidth     = 40
	canvasHeight    = 16
	historyCapacity = 600
)

// Source yields one control cycle per call and io.EOF when exhausted.
type Source interface {
	Next(ctx context.Context) (pipeline.Output, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) (pipeline.Output, error)

func (f SourceFunc) Next(ctx context.Context) (pipeline.Output, error) { return f(ctx) }

type TickMsg time.Time

// Model steps a Source on every tick and draws the trajectory, the latest
// command and a heading chart.
type Model struct {
	ctx      context.Context
	source   Source
	title    string
	interval time.Duration
	speed    int

	outputs []pipeline.Output
	poses   []drive.Pose
	canvas  *Canvas

	running  bool
	done     bool
	err      error
	showHelp bool
}

func NewModel(ctx context.Context, src Source, title string, interval time.Duration) Model {
	if interval <= 0 {
		interval = 50 * time.Millisecond
	}
	return Model{
		ctx:      ctx,
		source:   src,
		title:    title,
		interval: interval,
		speed:    1,
		outputs:  make([]pipeline.Output, 0, historyCapacity),
		poses:    make([]drive.Pose, 0, historyCapacity),
		canvas:   NewCanvas(canvasWidth, canvasHeight),
		running:  true,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "n", "right":
			m.advance()
		case "+", "=":
			if m.speed < 64 {
				m.speed *= 2
			}
		case "-", "_":
			if m.speed > 1 {
				m.speed /= 2
			}
		case "t":
			NextTheme()
		case "?":
			m.showHelp = !m.showHelp
		}
		return m, nil
	case TickMsg:
		if m.running {
			for i := 0; i < m.speed && !m.done; i++ {
				m.advance()
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) advance() {
	if m.done {
		return
	}
	out, err := m.source.Next(m.ctx)
	if err != nil {
		m.done = true
		if !errors.Is(err, io.EOF) {
			m.err = err
		}
		return
	}
	m.outputs = append(m.outputs, out)
	m.poses = append(m.poses, out.Pose)
	if len(m.outputs) > historyCapacity {
		m.outputs = m.outputs[1:]
		m.poses = m.poses[1:]
	}
}

// Outputs returns the retained history, oldest first.
func (m Model) Outputs() []pipeline.Output { return m.outputs }
func (m Model) Done() bool                 { return m.done }
func (m Model) Err() error                 { return m.err }

func (m Model) View() string {
	m.canvas.Clear()
	m.canvas.DrawPath(Fit(m.canvas, m.poses), m.poses)
	left := panelStyle.BorderForeground(CurrentTheme.Muted).Render(m.canvas.String())

	return lipgloss.JoinHorizontal(lipgloss.Top, left, m.stats())
}

func (m Model) status() string {
	switch {
	case m.err != nil:
		return "ERROR"
	case m.done:
		return "DONE"
	case m.running:
		return "RUNNING"
	default:
		return "PAUSED"
	}
}

func (m Model) stats() string {
	var s strings.Builder
	val := valueStyle()
	row := func(label, value string) {
		s.WriteString(labelStyle.Foreground(CurrentTheme.Muted).Render(label) + val.Render(value) + "\n")
	}

	s.WriteString(headerStyle().Render(m.title) + "\n")
	s.WriteString(statusStyle(m.running, m.done).Render(m.status()) + fmt.Sprintf("  x%d\n\n", m.speed))

	if n := len(m.outputs); n > 0 {
		out := m.outputs[n-1]
		row("Cycle", fmt.Sprintf("%d", out.Cycle))
		row("Time", fmt.Sprintf("%.2fs", out.Time))
		row("Pose", out.Pose.String())
		row("Linear", fmt.Sprintf("%+.3f m/s", out.Velocity.Linear))
		row("Angular", fmt.Sprintf("%+.3f rad/s", out.Velocity.Angular))
		row("Left", Bar(out.Wheels.Left, 20, 20))
		row("Right", Bar(out.Wheels.Right, 20, 20))
		if out.Arrived || out.GoalError.Distance > 0 {
			row("Goal", fmt.Sprintf("d=%.3f θ=%+.3f", out.GoalError.Distance, out.GoalError.Heading))
		}
		s.WriteString("\n" + Chart(Series(m.outputs, Heading), 30, 5, "heading") + "\n")
	}

	if m.err != nil {
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(CurrentTheme.Warning).Render(m.err.Error()) + "\n")
	}

	help := "space pause • n step • +/- speed • t theme • q quit"
	if m.showHelp {
		help = "space  pause/resume\nn      single step\n+/-    cycles per tick\nt      next theme\n?      toggle help\nq      quit"
	}
	s.WriteString(helpStyle.Foreground(CurrentTheme.Muted).Render(help))
	return statsStyle.BorderForeground(CurrentTheme.Muted).Render(s.String())
}

// Run starts the live view on the terminal and blocks until it exits.
func Run(ctx context.Context, src Source, title string, interval time.Duration) error {
	final, err := tea.NewProgram(NewModel(ctx, src, title, interval), tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok {
		return m.Err()
	}
	return nil
}
