package cmd

import "github.com/charmbracelet/lipgloss"

var (
	styleName     = lipgloss.NewStyle().Bold(true)
	styleURL      = lipgloss.NewStyle().Faint(true)
	styleHeading  = lipgloss.NewStyle().Bold(true).Underline(true)
	styleOK       = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	styleFail     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	styleCategory = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)
