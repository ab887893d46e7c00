package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/chambertherm/internal/sim"
	"github.com/san-kum/chambertherm/internal/thermal"
)

const (
	chartWidth  = 60
	chartHeight = 12
	maxSpeed    = 64
)

type TickMsg time.Time

// Replay plays a precomputed trajectory back one tick at a time.
type Replay struct {
	traj    sim.Trajectory
	params  thermal.Params
	title   string
	fps     int
	head    int
	speed   int
	running bool
}

func NewReplay(traj sim.Trajectory, params thermal.Params, title string, fps int) Replay {
	if fps <= 0 {
		fps = 30
	}
	return Replay{
		traj:    traj,
		params:  params,
		title:   title,
		fps:     fps,
		speed:   1,
		running: true,
	}
}

func (m Replay) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Replay) Init() tea.Cmd {
	return m.tick()
}

func (m Replay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.head = 0
			m.running = true
		case "+", "=":
			if m.speed < maxSpeed {
				m.speed *= 2
			}
		case "-", "_":
			if m.speed > 1 {
				m.speed /= 2
			}
		case "left", "h":
			m.seek(-m.speed)
		case "right", "l":
			m.seek(m.speed)
		}
	case TickMsg:
		if m.running {
			m.seek(m.speed)
			if m.Done() {
				m.running = false
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Replay) seek(delta int) {
	m.head += delta
	if m.head < 0 {
		m.head = 0
	}
	if last := len(m.traj) - 1; m.head > last {
		m.head = last
	}
}

// Head returns the index of the sample currently shown.
func (m Replay) Head() int { return m.head }

func (m Replay) Done() bool { return m.head >= len(m.traj)-1 }

func (m Replay) View() string {
	if len(m.traj) == 0 {
		return "no samples\n"
	}

	var s strings.Builder
	s.WriteString(Title.Render(strings.ToUpper(m.title)) + "\n")

	switch {
	case m.Done():
		s.WriteString(StatusPaused.Render("DONE"))
	case m.running:
		s.WriteString(StatusRunning.Render(fmt.Sprintf("PLAYING x%d", m.speed)))
	default:
		s.WriteString(StatusPaused.Render("PAUSED"))
	}
	s.WriteString("\n\n")

	shown := m.traj[:m.head+1]
	if chart, err := Chart(shown, m.params.Ambient, chartWidth, chartHeight); err == nil {
		s.WriteString(chart + "\n\n")
	} else {
		s.WriteString(Warning.Render(err.Error()) + "\n\n")
	}

	cur := m.traj[m.head]
	eq := m.params.Equilibrium()
	stats := strings.Join([]string{
		metricLine("time", fmt.Sprintf("%.2fs", cur.T)),
		metricLine("temperature", fmt.Sprintf("%.4f°C", cur.X)),
		metricLine("equilibrium", fmt.Sprintf("%.4f°C", eq)),
		metricLine("gap", fmt.Sprintf("%+.4f°C", cur.X-eq)),
	}, "\n")

	progress := float64(m.head) / float64(max(len(m.traj)-1, 1))
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, stats, "   ", ProgressBar(progress, 20)))
	s.WriteString("\n\n" + KeyHint.Render("SPACE pause  R restart  ←/→ seek  +/- speed  Q quit"))

	return Panel.Render(s.String()) + "\n"
}

// RunReplay blocks until the user quits the replay.
func RunReplay(m Replay) error {
	_, err := tea.NewProgram(m).Run()
	return err
}
