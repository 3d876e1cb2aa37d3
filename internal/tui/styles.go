package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")) // cyan
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")) // gray
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")) // red

	focusedBorder = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("2")) // green
	blurredBorder = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8"))

	buttonStyle        = lipgloss.NewStyle().Padding(0, 2).Foreground(lipgloss.Color("7")).Background(lipgloss.Color("8"))
	buttonFocusedStyle = lipgloss.NewStyle().Padding(0, 2).Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("2"))
	buttonBusyStyle    = lipgloss.NewStyle().Padding(0, 2).Faint(true).Foreground(lipgloss.Color("7")).Background(lipgloss.Color("8"))

	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5")) // magenta
)
