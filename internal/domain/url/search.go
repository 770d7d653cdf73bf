package url

import (
	"net/url"
	"strings"
)

// DefaultSearchTemplate is used when no search engine is configured.
const DefaultSearchTemplate = "https://duckduckgo.com/?q=%s"

// ParseBangShortcut splits "!key query" into its key and query. The bang must
// open the input and both parts must be non-empty:
//
//	"!gh repo name" → ("gh", "repo name", true)
//	"!g"            → ("", "", false)
//	"go !g"         → ("", "", false)
func ParseBangShortcut(input string) (shortcut, query string, found bool) {
	rest, ok := strings.CutPrefix(input, "!")
	if !ok {
		return "", "", false
	}
	shortcut, query, ok = strings.Cut(rest, " ")
	query = strings.TrimSpace(query)
	if !ok || shortcut == "" || query == "" {
		return "", "", false
	}
	return shortcut, query, true
}

// SearchURL puts the escaped query in place of the template's %s, or appends
// it when the template has no placeholder.
func SearchURL(template, query string) string {
	if template == "" {
		template = DefaultSearchTemplate
	}
	q := url.QueryEscape(query)
	if before, after, ok := strings.Cut(template, "%s"); ok {
		return before + q + after
	}
	return template + q
}

// BuildSearchURL resolves what the user typed into a URL to load: a known
// bang shortcut, then anything URL-like, then a search with defaultSearch.
// An unknown bang is searched for as typed.
func BuildSearchURL(input string, shortcutURLs map[string]string, defaultSearch string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}
	if key, query, ok := ParseBangShortcut(input); ok {
		if template, known := shortcutURLs[key]; known {
			return SearchURL(template, query)
		}
	}
	if LooksLikeURL(input) {
		return Normalize(input)
	}
	return SearchURL(defaultSearch, input)
}
