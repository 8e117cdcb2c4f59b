package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Prompt is a single-line text input with a label, used for renaming,
// adding and filtering projects.
type Prompt struct {
	label string
	input textinput.Model
	style lipgloss.Style
}

func NewPrompt(label, value, placeholder string, style lipgloss.Style) *Prompt {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 120
	ti.SetValue(value)
	ti.CursorEnd()
	ti.Focus()

	return &Prompt{label: label, input: ti, style: style}
}

func (p *Prompt) Label() string {
	return p.label
}

func (p *Prompt) Value() string {
	return p.input.Value()
}

func (p *Prompt) SetWidth(w int) {
	p.input.Width = w
}

func (p *Prompt) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

func (p *Prompt) View() string {
	return p.style.Render(p.label+" ") + p.input.View()
}
