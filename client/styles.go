package client

import "github.com/charmbracelet/lipgloss"

// Styles bundles the lipgloss palette for one theme.
type Styles struct {
	Title    lipgloss.Style
	Muted    lipgloss.Style
	Accent   lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Selected lipgloss.Style
	Done     lipgloss.Style
	Help     lipgloss.Style

	BoxChecked   string
	BoxUnchecked string
}

// ThemeStyles maps a persisted theme name to a palette. Unknown names fall
// back to dark.
func ThemeStyles(theme string) Styles {
	switch theme {
	case "light":
		return Styles{
			Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")),
			Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Accent:   lipgloss.NewStyle().Foreground(lipgloss.Color("25")),
			Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
			Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("124")).Bold(true),
			Selected: lipgloss.NewStyle().Bold(true).Reverse(true),
			Done:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Strikethrough(true),
			Help:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),

			BoxChecked:   "☑",
			BoxUnchecked: "☐",
		}
	default: // dark
		return Styles{
			Title:    lipgloss.NewStyle().Bold(true),
			Muted:    lipgloss.NewStyle().Faint(true),
			Accent:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
			Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			Selected: lipgloss.NewStyle().Bold(true).Reverse(true),
			Done:     lipgloss.NewStyle().Faint(true).Strikethrough(true),
			Help:     lipgloss.NewStyle().Faint(true),

			BoxChecked:   "☑",
			BoxUnchecked: "☐",
		}
	}
}
