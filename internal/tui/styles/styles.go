package styles

import (
	"aicoder/internal/config"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds the lipgloss styles the views render with.
type Styles struct {
	App      lipgloss.Style
	Title    lipgloss.Style
	Row      lipgloss.Style
	Selected lipgloss.Style
	Date     lipgloss.Style
	Help     lipgloss.Style
	Error    lipgloss.Style
	Prompt   lipgloss.Style

	// Swipe overlay bands
	Delete lipgloss.Style
	Edit   lipgloss.Style
}

// New builds the styles for the configured colours.
func New(c config.Colors) Styles {
	return Styles{
		App: lipgloss.NewStyle().
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(c.Accent)),
		Row: lipgloss.NewStyle().
			Background(lipgloss.Color(c.Row)),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(c.Row)).
			Foreground(lipgloss.Color(c.Accent)).
			Bold(true),
		Date: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Muted)),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Muted)),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Delete)),
		Prompt: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Accent)),
		Delete: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color(c.Delete)),
		Edit: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color(c.Edit)),
	}
}

// Default returns the styles of the default theme.
func Default() Styles {
	return New(config.GetTheme("default"))
}
