package autocomplete

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/voyage/internal/domain/entity"
	"github.com/bnema/voyage/internal/domain/url"
)

// Kind tags a suggestion item.
type Kind int

const (
	KindCurrentPage Kind = iota
	KindTabSwitch
	KindHistory
	KindBookmark
	KindSearchSuggestion
)

// ErrInvalidCategory is returned when a priority list names an unknown or repeated category.
var ErrInvalidCategory = errors.New("invalid suggestion category")

var kindNames = map[Kind]string{
	KindCurrentPage:      "current",
	KindTabSwitch:        "tab",
	KindHistory:          "history",
	KindBookmark:         "bookmark",
	KindSearchSuggestion: "search",
}

// String returns the configuration name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind parses a configuration name. Only the four rankable categories are accepted.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tab", "tabs", "tab-switch", "tab_switch":
		return KindTabSwitch, nil
	case "history":
		return KindHistory, nil
	case "bookmark", "bookmarks":
		return KindBookmark, nil
	case "search", "search-suggestion", "search_suggestion", "remote":
		return KindSearchSuggestion, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
}

// Item is one row of the suggestion list. Items are immutable projections of query results.
type Item struct {
	Kind      Kind
	Title     string
	Subtitle  string
	URL       string
	Icon      string
	Timestamp time.Time
	TabID     entity.TabID
}

// NewCurrentPageItem describes the page the user is on.
func NewCurrentPageItem(title, pageURL string) Item {
	return Item{Kind: KindCurrentPage, Title: title, Subtitle: pageURL, URL: pageURL, Icon: "globe"}
}

// NewTabItem offers switching to an open tab.
func NewTabItem(tab *entity.Tab) Item {
	return Item{
		Kind:     KindTabSwitch,
		Title:    tab.DisplayTitle(),
		Subtitle: tab.URL,
		URL:      tab.URL,
		Icon:     "tab",
		TabID:    tab.ID,
	}
}

// NewHistoryItem offers a history entry.
func NewHistoryItem(entry *entity.HistoryEntry) Item {
	title := entry.Title
	if title == "" {
		title = entry.URL
	}
	return Item{
		Kind:      KindHistory,
		Title:     title,
		Subtitle:  entry.URL,
		URL:       entry.URL,
		Icon:      "clock",
		Timestamp: entry.LastVisited,
	}
}

// NewBookmarkItem offers a bookmark.
func NewBookmarkItem(b *entity.Bookmark) Item {
	title := b.Title
	if title == "" {
		title = b.URL
	}
	return Item{
		Kind:     KindBookmark,
		Title:    title,
		Subtitle: b.URL,
		URL:      b.URL,
		Icon:     "star",
	}
}

// NewSearchSuggestionItem offers a remote search suggestion. It carries no URL:
// selecting it searches for the text.
func NewSearchSuggestionItem(text string) Item {
	return Item{Kind: KindSearchSuggestion, Title: text, Icon: "search"}
}

// Caps limits the number of items per category.
type Caps struct {
	Tabs      int
	History   int
	Bookmarks int
	Remote    int
}

// DefaultCaps returns the default per-category limits.
func DefaultCaps() Caps {
	return Caps{Tabs: 3, History: 5, Bookmarks: 5, Remote: 5}
}

// For returns the cap for a kind; zero for kinds that are not ranked.
func (c Caps) For(kind Kind) int {
	switch kind {
	case KindTabSwitch:
		return c.Tabs
	case KindHistory:
		return c.History
	case KindBookmark:
		return c.Bookmarks
	case KindSearchSuggestion:
		return c.Remote
	default:
		return 0
	}
}

// DefaultPriority is the default category order of the merged list.
func DefaultPriority() []Kind {
	return []Kind{KindTabSwitch, KindHistory, KindBookmark, KindSearchSuggestion}
}

// ParsePriority parses a configured category order.
// Categories left out are appended in default order.
func ParsePriority(names []string) ([]Kind, error) {
	seen := make(map[Kind]bool, len(names))
	out := make([]Kind, 0, 4)
	for _, name := range names {
		kind, err := ParseKind(name)
		if err != nil {
			return nil, err
		}
		if seen[kind] {
			return nil, fmt.Errorf("%w: %q listed twice", ErrInvalidCategory, name)
		}
		seen[kind] = true
		out = append(out, kind)
	}
	for _, kind := range DefaultPriority() {
		if !seen[kind] {
			out = append(out, kind)
		}
	}
	return out, nil
}

// PriorityNames renders a priority list for configuration files.
func PriorityNames(priority []Kind) []string {
	names := make([]string, len(priority))
	for i, k := range priority {
		names[i] = k.String()
	}
	return names
}

// Merge concatenates per-category results in priority order, applying caps.
// Position comes from the priority, not from any score; each bucket keeps its own order.
func Merge(buckets map[Kind][]Item, priority []Kind, caps Caps) []Item {
	out := make([]Item, 0)
	for _, kind := range priority {
		items := Limit(buckets[kind], caps.For(kind))
		out = append(out, items...)
	}
	return out
}

// Limit truncates items to at most n. A negative n means no limit.
func Limit(items []Item, n int) []Item {
	if n < 0 || len(items) <= n {
		return items
	}
	return items[:n]
}

// MatchesQuery reports whether the lowercased query is a substring of any field.
func MatchesQuery(query string, fields ...string) bool {
	if query == "" {
		return false
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}

// NormalizeQuery trims and lowercases raw input for local matching.
func NormalizeQuery(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// DedupByURL keeps the first item for each URL, compared case-insensitively.
func DedupByURL(items []Item) []Item {
	seen := make(map[string]bool, len(items))
	out := make([]Item, 0, len(items))
	for _, it := range items {
		key := url.NormalizeForDedup(it.URL)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, it)
	}
	return out
}
