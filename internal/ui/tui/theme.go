package tui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Help     lipgloss.Style
	Card     lipgloss.Style

	Label    lipgloss.Style
	Active   lipgloss.Style
	Disabled lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
}

func DefaultTheme() Theme {
	return Theme{
		Title:    lipgloss.NewStyle().Bold(true),
		Subtitle: lipgloss.NewStyle().Faint(true),
		Help:     lipgloss.NewStyle().Faint(true),
		Card: lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")),

		Label:    lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		Active:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		Disabled: lipgloss.NewStyle().Faint(true).Strikethrough(true),
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("160")).
			Padding(0, 1),
		Success: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
	}
}
