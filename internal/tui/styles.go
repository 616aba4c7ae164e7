package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent = lipgloss.Color("3")
	colorGood   = lipgloss.Color("2")
	colorBad    = lipgloss.Color("1")
	colorMuted  = lipgloss.Color("8")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	statusStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	helpStyle     = lipgloss.NewStyle().Foreground(colorMuted)
	winStyle      = lipgloss.NewStyle().Bold(true).Foreground(colorGood)
	loseStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorBad)
	errorStyle    = lipgloss.NewStyle().Foreground(colorBad)
	cupStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2)
	cupCursor     = cupStyle.BorderForeground(colorAccent)
	cupLabelStyle = lipgloss.NewStyle().Width(7).Align(lipgloss.Center)
)
