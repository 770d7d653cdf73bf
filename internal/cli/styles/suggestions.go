package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/voyage/internal/domain/autocomplete"
)

// KindIcon returns the icon shown in front of a suggestion.
func KindIcon(kind autocomplete.Kind) string {
	switch kind {
	case autocomplete.KindTabSwitch:
		return IconTab
	case autocomplete.KindHistory:
		return IconHistory
	case autocomplete.KindBookmark:
		return IconBookmark
	case autocomplete.KindSearchSuggestion:
		return IconSearch
	default:
		return IconGlobe
	}
}

// KindLabel is the short tag shown after a suggestion.
func KindLabel(kind autocomplete.Kind) string {
	switch kind {
	case autocomplete.KindTabSwitch:
		return "switch to tab"
	case autocomplete.KindSearchSuggestion:
		return "search"
	default:
		return kind.String()
	}
}

// SuggestionRow renders one suggestion on a single line.
func (t *Theme) SuggestionRow(item autocomplete.Item, selected bool, width int) string {
	icon := lipgloss.NewStyle().Foreground(t.Accent).Render(KindIcon(item.Kind))

	title := item.Title
	if title == "" {
		title = item.URL
	}
	parts := []string{icon, t.RowTitle.Render(title)}
	if item.URL != "" && item.URL != title {
		parts = append(parts, t.RowURL.Render(item.URL))
	}
	parts = append(parts, t.TagDim.Render(KindLabel(item.Kind)))
	line := strings.Join(parts, " ")

	style := t.Row
	if selected {
		style = t.RowCursor
	}
	if width > 0 {
		style = style.MaxWidth(width)
	}
	return style.Render(line)
}

// SuggestionList renders items with the selected index highlighted.
func (t *Theme) SuggestionList(items []autocomplete.Item, selected, width int) string {
	if len(items) == 0 {
		return t.Faint.Render("  no suggestions")
	}
	rows := make([]string, len(items))
	for i, item := range items {
		rows[i] = t.SuggestionRow(item, i == selected, width)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
