package formatter

import "github.com/charmbracelet/lipgloss"

// Icon and style definitions for terminal output.
// Colors follow the global lipgloss color profile, which
// color.ConfigureColorProfile sets from the --color flag.
var (
	successIcon = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).SetString("✓")
	errorIcon   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).SetString("✗")
	cancelIcon  = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).SetString("☐")
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)

	tableBorder = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)
