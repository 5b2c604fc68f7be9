package main

import "github.com/charmbracelet/lipgloss"

var (
	panelBorderStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#7aa2f7")).
		Padding(1)

	controlsStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#9ece6a")).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#ff9e64"))

	dimStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#565f89"))

	stepLabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#bb9af7"))
)
