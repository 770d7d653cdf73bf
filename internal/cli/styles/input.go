package styles

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

// NewAddressInput creates the address field: a URL, a search or a bang shortcut.
func NewAddressInput(theme *Theme) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Search or enter address"
	ti.Prompt = "→ "
	ti.CharLimit = 2048
	ti.PlaceholderStyle = theme.Faint
	ti.TextStyle = theme.Plain
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(theme.Accent)
	ti.PromptStyle = lipgloss.NewStyle().Foreground(theme.Accent)
	return ti
}
