package ui

import (
	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	// Message styles
	UserPrefix      lipgloss.Style
	UserContent     lipgloss.Style
	AssistantHeader lipgloss.Style
	AssistantPanel  lipgloss.Style
	SystemMessage   lipgloss.Style
	WarningMessage  lipgloss.Style
	ErrorHeader     lipgloss.Style
	ErrorMessage    lipgloss.Style

	// Banner styles
	Title lipgloss.Style
	Hint  lipgloss.Style
}

func DefaultTheme() Theme {
	return Theme{
		UserPrefix: lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")). // Blue
			Bold(true),

		UserContent: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")), // Light gray

		AssistantHeader: lipgloss.NewStyle().
			Foreground(lipgloss.Color("13")). // Bright magenta
			Bold(true),

		AssistantPanel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("13")).
			Padding(0, 1),

		SystemMessage: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")). // Gray
			Italic(true),

		WarningMessage: lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")), // Yellow

		ErrorHeader: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")). // Red
			Italic(true).
			Bold(true),

		ErrorMessage: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")),

		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // Pink
			Italic(true),

		Hint: lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Italic(true),
	}
}
