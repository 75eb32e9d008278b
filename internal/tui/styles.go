package tui

import "github.com/charmbracelet/lipgloss"

var (
	docStyle = lipgloss.NewStyle().Margin(1, 2)

	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(lipgloss.Color("236")).
			Padding(0, 1).
			Bold(true)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 1)

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#106981"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	warnStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f59e0b"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444"))

	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#10b981"))
	survivalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f59e0b"))
	skipStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444"))

	comebackBoxStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#f59e0b")).
				Padding(0, 1)
)
