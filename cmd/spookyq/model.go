package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"spookyq"
)

// focus represents which view has keyboard input.
type focus int

const (
	focusMenu focus = iota
	focusRunning
	focusResults
)

type demo int

const (
	demoBell demo = iota
	demoTeleport
)

var demoNames = []string{
	"Bell entanglement",
	"Quantum teleportation",
}

// demoResult carries everything a finished run needs to render.
type demoResult struct {
	name    string
	diagram string
	probs   []spookyq.QubitProbability
	counts  spookyq.Counts
	err     error
}

// model is the TUI application state.
type model struct {
	sim   *spookyq.Simulator
	shots int
	theta float64

	focus  focus
	cursor int
	spin   spinner.Model
	result *demoResult
	width  int
	height int
}

func newModel(sim *spookyq.Simulator, shots int, theta float64) model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = titleStyle
	return model{sim: sim, shots: shots, theta: theta, spin: sp}
}

func (m model) Init() tea.Cmd {
	return nil
}

// runDemo builds the selected demo's circuits and executes both modes off
// the UI goroutine, delivering a demoResult message when done.
func (m model) runDemo(d demo) tea.Cmd {
	sim, shots, theta := m.sim, m.shots, m.theta
	return func() tea.Msg {
		res := demoResult{name: demoNames[d]}

		var circuit, verify *spookyq.Circuit
		switch d {
		case demoBell:
			circuit = spookyq.BellPairCircuit()
			verify = circuit
		case demoTeleport:
			circuit = spookyq.TeleportationCircuit(theta)
			verify = spookyq.TeleportationVerifyCircuit(theta)
		}
		res.diagram = circuit.Diagram()

		state, err := sim.RunStatevector(verify)
		if err != nil {
			res.err = err
			return res
		}
		res.probs = state.QubitProbabilities()

		counts, err := sim.RunSampling(circuit, shots)
		if err != nil {
			res.err = err
			return res
		}
		res.counts = counts
		return res
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case spinner.TickMsg:
		if m.focus == focusRunning {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}

	case demoResult:
		res := msg
		m.result = &res
		m.focus = focusResults

	case tea.KeyMsg:
		key := msg.String()
		if key == "ctrl+c" || key == "q" {
			return m, tea.Quit
		}

		switch m.focus {
		case focusMenu:
			switch key {
			case "up", "k":
				if m.cursor > 0 {
					m.cursor--
				}
			case "down", "j":
				if m.cursor < len(demoNames)-1 {
					m.cursor++
				}
			case "enter":
				m.focus = focusRunning
				m.result = nil
				return m, tea.Batch(m.spin.Tick, m.runDemo(demo(m.cursor)))
			}

		case focusResults:
			if key == "esc" || key == "enter" {
				m.focus = focusMenu
			}
		}
	}

	return m, nil
}

func (m model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var body string
	switch m.focus {
	case focusMenu:
		body = m.viewMenu()
	case focusRunning:
		body = fmt.Sprintf("%s running %s with %d shots...",
			m.spin.View(), demoNames[m.cursor], m.shots)
	case focusResults:
		body = m.viewResults()
	}

	frame := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("spookyq — entanglement demos"),
		panelStyle.Width(max(m.width-4, 20)).Render(body),
		dimStyle.Render("↑↓ Select  ⏎ Run  Esc Back  q Quit"),
	)
	return frame
}

func (m model) viewMenu() string {
	var sb strings.Builder
	for i, name := range demoNames {
		if i == m.cursor {
			sb.WriteString(menuSelectedStyle.Render("▸ " + name))
		} else {
			sb.WriteString("  " + name)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "shots: %d    message angle: %s",
		m.shots, spookyq.FormatParam(m.theta))
	return sb.String()
}

func (m model) viewResults() string {
	res := m.result
	if res == nil {
		return ""
	}
	if res.err != nil {
		return errStyle.Render(fmt.Sprintf("%s failed: %v", res.name, res.err))
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(res.name) + "\n\n")
	sb.WriteString(diagramStyle.Render(res.diagram) + "\n")
	sb.WriteString(titleStyle.Render("Ideal qubit marginals") + "\n")
	sb.WriteString(renderQubitProbs(res.probs) + "\n\n")
	sb.WriteString(titleStyle.Render(fmt.Sprintf("Sampled counts (%d shots)", res.counts.Total())) + "\n")
	sb.WriteString(renderHistogram(res.counts, 32))
	return sb.String()
}
