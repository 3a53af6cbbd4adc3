package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/vulnticket/vulnticket/internal/types"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true).
			Padding(0, 1)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12")).
			Bold(true)

	checkedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("7"))

	detailPaneBorderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240"))

	sevCriticalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	sevHighStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	sevMedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	sevLowStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

func severityBadge(s types.Severity) string {
	switch s {
	case types.SevCritical:
		return sevCriticalStyle.Render(string(s))
	case types.SevHigh:
		return sevHighStyle.Render(string(s))
	case types.SevMedium:
		return sevMedStyle.Render(string(s))
	case types.SevLow:
		return sevLowStyle.Render(string(s))
	}
	return dimStyle.Render(string(s))
}
