package styles

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// KeyMap defines keybindings that can be rendered as help.
type KeyMap interface {
	ShortHelp() []key.Binding
	FullHelp() [][]key.Binding
}

// OmniboxKeyMap defines keybindings for the interactive address field.
type OmniboxKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Complete key.Binding
	Open     key.Binding
	NewTab   key.Binding
	CloseTab key.Binding
	NextTab  key.Binding
	Reopen   key.Binding
	Bookmark key.Binding
	Cancel   key.Binding
}

// ShortHelp returns keybindings to show in compact help.
func (k OmniboxKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Complete, k.Open, k.NewTab, k.Cancel}
}

// FullHelp returns keybindings for expanded help.
func (k OmniboxKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Complete, k.Open},
		{k.NewTab, k.CloseTab, k.NextTab, k.Reopen},
		{k.Bookmark, k.Cancel},
	}
}

// DefaultOmniboxKeyMap returns the default omnibox keybindings.
// Letters are left to the text field, so every action sits on a control key.
func DefaultOmniboxKeyMap() OmniboxKeyMap {
	return OmniboxKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓", "down"),
		),
		Complete: key.NewBinding(
			key.WithKeys("right", "tab"),
			key.WithHelp("→", "accept completion"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		NewTab: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("C-t", "new tab"),
		),
		CloseTab: key.NewBinding(
			key.WithKeys("ctrl+w"),
			key.WithHelp("C-w", "close tab"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("C-l", "next tab"),
		),
		Reopen: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("C-r", "reopen closed"),
		),
		Bookmark: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("C-d", "bookmark"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// NewStyledHelp creates a themed help model.
func NewStyledHelp(theme *Theme) help.Model {
	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(theme.Accent)
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(theme.Dim)
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(theme.Edge)
	h.Styles.FullKey = lipgloss.NewStyle().Foreground(theme.Accent)
	h.Styles.FullDesc = lipgloss.NewStyle().Foreground(theme.Fg)
	h.Styles.FullSeparator = lipgloss.NewStyle().Foreground(theme.Edge)
	return h
}
