package style

import "github.com/charmbracelet/lipgloss"

// Semantic styles shared by every command's human-readable output.
var (
	Bold    = lipgloss.NewStyle().Bold(true)
	Dim     = lipgloss.NewStyle().Faint(true)
	Success = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	Warn    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	Danger  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)
