package tui

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	ColorPrimary = lipgloss.Color("#EC6724") // Orange
	ColorText    = lipgloss.Color("#F8FAFC")
	ColorMuted   = lipgloss.Color("#94A3B8")
	ColorSuccess = lipgloss.Color("#10B981")
	ColorError   = lipgloss.Color("#EF4444")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	headerStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(ColorMuted)

	cardStyle = lipgloss.NewStyle().
			Padding(0, 1).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted)

	activeCardStyle = cardStyle.
			BorderForeground(ColorPrimary)

	labelStyle       = lipgloss.NewStyle().Foreground(ColorMuted)
	valueStyle       = lipgloss.NewStyle().Bold(true)
	currentPageStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	mutedStyle       = lipgloss.NewStyle().Foreground(ColorMuted)
	errorStyle       = lipgloss.NewStyle().Foreground(ColorError)
	successStyle     = lipgloss.NewStyle().Foreground(ColorSuccess)
	helpStyle        = lipgloss.NewStyle().Foreground(ColorMuted).MarginTop(1)
)
