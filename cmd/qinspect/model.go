package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"qpesim/bitutil"
	"qpesim/qcircuit"
	"qpesim/qstate"
	"qpesim/renderer"
)

// step pairs the element applied to reach a state with the state
// itself, so the model can show "what just happened" alongside "what
// the amplitudes are now".
type step struct {
	element qcircuit.Element
	state   *qstate.State
}

// Model is the read-only circuit/result browser: it holds the full
// precomputed step sequence and lets the user scrub through it.
type Model struct {
	circuit *qcircuit.Circuit
	steps   []step
	cursor  int

	endian bitutil.Endian

	width, height int
	probView      viewport.Model
	ready         bool
}

func newModel(circuit *qcircuit.Circuit, initial *qstate.State, steps []step, endian bitutil.Endian) Model {
	return Model{
		circuit: circuit,
		steps:   append([]step{{state: initial}}, steps...),
		endian:  endian,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		probWidth := m.width - 4
		probHeight := m.height - 12
		if probHeight < 3 {
			probHeight = 3
		}
		if !m.ready {
			m.probView = viewport.New(probWidth, probHeight)
			m.ready = true
		} else {
			m.probView.Width = probWidth
			m.probView.Height = probHeight
		}
		m.probView.SetContent(m.probabilityTable())

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "right", "l", "n":
			if m.cursor < len(m.steps)-1 {
				m.cursor++
				m.probView.SetContent(m.probabilityTable())
				m.probView.GotoTop()
			}
		case "left", "h", "p":
			if m.cursor > 0 {
				m.cursor--
				m.probView.SetContent(m.probabilityTable())
				m.probView.GotoTop()
			}
		case "g":
			m.cursor = 0
			m.probView.SetContent(m.probabilityTable())
			m.probView.GotoTop()
		case "G":
			m.cursor = len(m.steps) - 1
			m.probView.SetContent(m.probabilityTable())
			m.probView.GotoTop()
		}
	}

	var cmd tea.Cmd
	m.probView, cmd = m.probView.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	circuitPanel := panelBorderStyle.Render(renderer.RenderCircuit(m.circuit))
	stepPanel := m.renderStepPanel()
	controls := controlsStyle.Render(dimStyle.Render("←/→ step through gates   g/G first/last   ↑/↓ scroll   q quit"))

	return lipgloss.JoinVertical(lipgloss.Left, circuitPanel, stepPanel, controls)
}

func (m Model) renderStepPanel() string {
	var header string
	if m.cursor == 0 {
		header = "initial state"
	} else {
		element := m.steps[m.cursor].element
		header = describeElement(element)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n\n", stepLabelStyle.Render(fmt.Sprintf("[step %d/%d]", m.cursor, len(m.steps)-1)), header)
	b.WriteString(m.probView.View())

	return panelBorderStyle.Render(b.String())
}

func (m Model) probabilityTable() string {
	state := m.steps[m.cursor].state
	probs := state.Probabilities(m.endian)

	keys := make([]string, 0, len(probs))
	for k := range probs {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}

	var b strings.Builder
	for _, bitstring := range keys {
		p := probs[bitstring]
		if p < 1e-9 {
			continue
		}
		fmt.Fprintf(&b, "|%s>  %.6f\n", bitstring, p)
	}
	if b.Len() == 0 {
		return "(all amplitudes are zero)"
	}
	return strings.TrimRight(b.String(), "\n")
}

func describeElement(element qcircuit.Element) string {
	switch element.Kind {
	case qcircuit.ElementGate:
		return titleStyle.Render(element.Gate.Kind.String())
	case qcircuit.ElementClassicalIf:
		return titleStyle.Render("classical-if body")
	case qcircuit.ElementClassicalIfElse:
		return titleStyle.Render("classical-if/else body")
	case qcircuit.ElementLogger:
		return titleStyle.Render("logger marker: " + element.LoggerLabel)
	default:
		return "?"
	}
}
