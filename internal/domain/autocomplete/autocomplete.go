// Package autocomplete provides domain types and logic for address-bar suggestions.
package autocomplete

import (
	"strings"
	"unicode/utf8"
)

// ComputeCompletionSuffix returns the suffix if input is a case-insensitive prefix of fullText.
// Returns the suffix and true if input matches as a prefix, otherwise empty string and false.
func ComputeCompletionSuffix(input, fullText string) (string, bool) {
	if input == "" || fullText == "" {
		return "", false
	}

	n, ok := foldPrefixLen(fullText, input)
	if !ok {
		return "", false
	}
	suffix := fullText[n:]
	return suffix, suffix != ""
}

// foldPrefixLen reports whether prefix case-folds onto the start of s and, if
// so, how many bytes of s it covers. Folded runes may differ in byte length.
func foldPrefixLen(s, prefix string) (int, bool) {
	i := 0
	for _, pr := range prefix {
		if i >= len(s) {
			return 0, false
		}
		sr, size := utf8.DecodeRuneInString(s[i:])
		if sr != pr && !strings.EqualFold(string(sr), string(pr)) {
			return 0, false
		}
		i += size
	}
	return i, true
}

// StripProtocol removes http:// or https:// prefix from a URL for matching.
func StripProtocol(u string) string {
	if rest, ok := strings.CutPrefix(u, "https://"); ok {
		return rest
	}
	if rest, ok := strings.CutPrefix(u, "http://"); ok {
		return rest
	}
	return u
}

// ComputeURLCompletionSuffix computes the inline completion for a URL,
// trying the URL as-is, without protocol, then without "www.".
func ComputeURLCompletionSuffix(input, fullURL string) (suffix string, matchedURL string, ok bool) {
	if suffix, ok := ComputeCompletionSuffix(input, fullURL); ok {
		return suffix, fullURL, true
	}

	strippedURL := StripProtocol(fullURL)
	if suffix, ok := ComputeCompletionSuffix(input, strippedURL); ok {
		return suffix, strippedURL, true
	}

	inputNoWWW := strings.TrimPrefix(input, "www.")
	strippedNoWWW := strings.TrimPrefix(strippedURL, "www.")
	if suffix, ok := ComputeCompletionSuffix(inputNoWWW, strippedNoWWW); ok {
		return suffix, strippedNoWWW, true
	}

	return "", "", false
}

// InlineCompletion returns the ghost-text suffix for the first completable item.
// Only URL-bearing items complete; search suggestions are free text.
func InlineCompletion(input string, items []Item) (suffix string, item Item, ok bool) {
	for _, it := range items {
		if it.URL == "" || it.Kind == KindSearchSuggestion {
			continue
		}
		if suffix, _, ok := ComputeURLCompletionSuffix(input, it.URL); ok {
			return suffix, it, true
		}
	}
	return "", Item{}, false
}
