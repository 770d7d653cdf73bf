// Package validation checks user-supplied search settings.
package validation

import (
	"net/url"
	"regexp"
	"strings"
)

var shortcutKeyRE = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]{0,19}$`)

// ValidateShortcutKey checks a bang key ("g" for "!g").
func ValidateShortcutKey(value string) []string {
	var errs []string
	value = strings.TrimSpace(value)
	if value == "" {
		errs = append(errs, "shortcut key cannot be empty")
		return errs
	}
	if !shortcutKeyRE.MatchString(value) {
		errs = append(errs, "shortcut key must start with a letter and be 1-20 alphanumeric characters")
	}
	return errs
}

// ValidateSearchTemplate checks a URL template with a %s query placeholder.
func ValidateSearchTemplate(value string) []string {
	var errs []string
	value = strings.TrimSpace(value)
	if value == "" {
		errs = append(errs, "cannot be empty")
		return errs
	}
	if !strings.Contains(value, "%s") {
		errs = append(errs, "must contain a %s placeholder for the search query")
		return errs
	}

	candidate := strings.ReplaceAll(value, "%s", "query")
	parsed, err := url.Parse(candidate)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		errs = append(errs, "must be a valid absolute URL")
	}
	return errs
}
