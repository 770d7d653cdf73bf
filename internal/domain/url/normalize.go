// Package url provides URL manipulation utilities for the browser.
package url

import (
	"net/url"
	"strings"
)

// InternalScheme is the scheme used by built-in pages (start page, history, settings).
const InternalScheme = "voyage://"

// BlankURL is the address of an empty tab.
const BlankURL = "about:blank"

// StartPageURL is the built-in start page.
const StartPageURL = InternalScheme + "start"

var explicitSchemes = []string{
	"http://",
	"https://",
	InternalScheme,
	"file://",
	"about:",
}

// Normalize adds https:// prefix if missing for URL-like inputs.
// Returns the input unchanged if it already has a scheme or doesn't look like a URL.
func Normalize(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}

	if hasExplicitScheme(input) {
		return input
	}

	host := strings.ToLower(input)
	if host == "localhost" || strings.HasPrefix(host, "localhost:") || strings.HasPrefix(host, "localhost/") {
		return "http://" + input
	}

	// Looks like a URL (contains . and no spaces)
	if strings.Contains(input, ".") && !strings.Contains(input, " ") {
		return "https://" + input
	}

	return input
}

// LooksLikeURL checks if the input appears to be a URL (not a search query).
// Returns true for strings like "github.com", "google.com/search", etc.
// Also returns true for URLs with explicit schemes like "voyage://".
func LooksLikeURL(input string) bool {
	input = strings.TrimSpace(input)
	if input == "" {
		return false
	}

	if hasExplicitScheme(input) {
		return true
	}

	lower := strings.ToLower(input)
	if lower == "localhost" || strings.HasPrefix(lower, "localhost:") {
		return true
	}

	// Contains a dot and no spaces = likely a URL
	return strings.Contains(input, ".") && !strings.Contains(input, " ")
}

// IsInternal reports whether the URL points at a built-in voyage:// page.
// Internal pages own their address: engine-driven URL changes must not overwrite it.
func IsInternal(rawURL string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(rawURL)), InternalScheme)
}

// IsSpecial reports whether the URL is an internal page or an about: page.
// Special pages are never recorded as closed tabs or offered as tab-switch suggestions.
func IsSpecial(rawURL string) bool {
	lower := strings.ToLower(strings.TrimSpace(rawURL))
	return strings.HasPrefix(lower, InternalScheme) || strings.HasPrefix(lower, "about:")
}

// NormalizeForDedup returns the key used to detect duplicate URLs in suggestion lists.
func NormalizeForDedup(rawURL string) string {
	return strings.ToLower(strings.TrimSpace(rawURL))
}

// ExtractDomain extracts the normalized domain (host) from a URL string.
// Normalizes by stripping "www." prefix so youtube.com and www.youtube.com
// resolve to the same value.
func ExtractDomain(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return ""
	}
	return strings.TrimPrefix(parsed.Host, "www.")
}

func hasExplicitScheme(input string) bool {
	lower := strings.ToLower(input)
	for _, scheme := range explicitSchemes {
		if strings.HasPrefix(lower, scheme) {
			return true
		}
	}
	return false
}
