package renderer

import "github.com/charmbracelet/lipgloss"

// Layout constants, adapted from the teacher's fixed-width cell grid.
const (
	cellWidth    = 11
	gateNameW    = 5
	labelVisualW = 7
)

var (
	circuitBorderStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#7aa2f7")).
		Padding(1)

	histogramBorderStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#9ece6a")).
		Padding(1)

	qubitLabelStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#7dcfff"))

	gateStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#73daca"))

	measureStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#e0af68"))

	controlFlowStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#bb9af7"))

	dimStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#565f89"))

	barStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ff9e64"))

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#ff9e64"))
)
