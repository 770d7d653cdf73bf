// Package styles renders the CLI and omnibox with lipgloss.
package styles

import "github.com/charmbracelet/lipgloss"

// Colors is the base palette a Theme derives its styles from.
type Colors struct {
	Base   lipgloss.Color // screen background
	Panel  lipgloss.Color // input field and idle tabs
	Raised lipgloss.Color // cursor row and tags
	Fg     lipgloss.Color
	Dim    lipgloss.Color
	Accent lipgloss.Color
	Edge   lipgloss.Color
	Danger lipgloss.Color
	Ok     lipgloss.Color
}

// DarkColors is the default palette.
var DarkColors = Colors{
	Base:   "#0a0a0b",
	Panel:  "#1a1a1b",
	Raised: "#2d2d2d",
	Fg:     "#ffffff",
	Dim:    "#909090",
	Accent: "#4ade80",
	Edge:   "#333333",
	Danger: "#ef4444",
	Ok:     "#4ade80",
}

// Theme bundles the palette with the styles the commands and the omnibox use.
type Theme struct {
	Colors

	Plain  lipgloss.Style
	Faint  lipgloss.Style
	Strong lipgloss.Style
	Done   lipgloss.Style
	Failed lipgloss.Style

	TabOn  lipgloss.Style
	TabOff lipgloss.Style

	Row       lipgloss.Style
	RowCursor lipgloss.Style
	RowTitle  lipgloss.Style
	RowURL    lipgloss.Style

	Tag    lipgloss.Style
	TagDim lipgloss.Style

	Field lipgloss.Style
}

// NewTheme builds the default dark theme.
func NewTheme() *Theme {
	return ThemeFrom(DarkColors)
}

// ThemeFrom derives every style from c.
func ThemeFrom(c Colors) *Theme {
	fg := func(col lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(col) }
	pill := func(text, bg lipgloss.Color, padX int) lipgloss.Style {
		return fg(text).Background(bg).Padding(0, padX)
	}

	return &Theme{
		Colors: c,

		Plain:  fg(c.Fg),
		Faint:  fg(c.Dim),
		Strong: fg(c.Accent).Bold(true),
		Done:   fg(c.Ok),
		Failed: fg(c.Danger),

		TabOn:  pill(c.Base, c.Accent, 2).Bold(true),
		TabOff: pill(c.Dim, c.Panel, 2),

		Row:       fg(c.Fg).PaddingLeft(2),
		RowCursor: fg(c.Accent).Background(c.Raised).PaddingLeft(2).Bold(true),
		RowTitle:  fg(c.Fg),
		RowURL:    fg(c.Dim),

		Tag:    pill(c.Base, c.Accent, 1),
		TagDim: pill(c.Fg, c.Raised, 1),

		Field: fg(c.Fg).
			Background(c.Panel).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(c.Accent).
			Padding(0, 1),
	}
}
