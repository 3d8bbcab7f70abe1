package tui

import "github.com/charmbracelet/lipgloss"

const (
	colorAccent = "#22D3EE"
	colorUser   = "#A78BFA"
	colorMuted  = "#6B7280"
	colorError  = "#F87171"
	colorWarn   = "#FBBF24"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorAccent)).
			Padding(0, 1)

	userLabelStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorUser))
	modelLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorAccent))
	bodyStyle       = lipgloss.NewStyle().PaddingLeft(2)
	errorBodyStyle  = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color(colorError))
	cursorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(colorAccent))
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted)).Padding(0, 1)
	demoStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color(colorWarn)).Padding(0, 1)
	inputBoxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorMuted)).
			Padding(0, 1)
)
