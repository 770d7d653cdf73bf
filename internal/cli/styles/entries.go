package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/voyage/internal/domain/entity"
)

// HistoryLine renders a history entry with its visit count and age.
func (t *Theme) HistoryLine(e *entity.HistoryEntry) string {
	return strings.Join([]string{
		lipgloss.NewStyle().Foreground(t.Accent).Render(IconHistory),
		t.RowTitle.Render(e.DisplayTitle()),
		t.RowURL.Render(e.URL),
		t.visits(int(e.VisitCount)),
		t.since(e.LastVisited),
	}, " ")
}

// BookmarkLine renders a bookmark with its folder.
func (t *Theme) BookmarkLine(b *entity.Bookmark) string {
	title := b.Title
	if title == "" {
		title = b.URL
	}
	parts := []string{
		lipgloss.NewStyle().Foreground(t.Accent).Render(IconBookmark),
		t.RowTitle.Render(title),
		t.RowURL.Render(b.URL),
	}
	if b.FolderRef != "" {
		parts = append(parts, t.Tag.Render(b.FolderRef))
	}
	return strings.Join(parts, " ")
}
