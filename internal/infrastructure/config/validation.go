package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bnema/voyage/internal/domain/autocomplete"
	"github.com/bnema/voyage/internal/domain/entity"
	"github.com/bnema/voyage/internal/domain/validation"
	"github.com/bnema/voyage/internal/logging"
)

// validateConfig collects every invalid value into one error.
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateLogging(config)...)
	validationErrors = append(validationErrors, validateSearch(config)...)
	validationErrors = append(validationErrors, validateSuggestions(config)...)
	validationErrors = append(validationErrors, validateWindows(config)...)
	validationErrors = append(validationErrors, validateTabs(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}
	return nil
}

// Validate checks a configuration without loading it.
func Validate(config *Config) error {
	if config == nil {
		return fmt.Errorf("config is nil")
	}
	return validateConfig(config)
}

func validateLogging(config *Config) []string {
	var validationErrors []string
	if !logging.IsValidLevel(config.Logging.Level) {
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.level %q must be one of trace, debug, info, warn, error", config.Logging.Level))
	}
	switch config.Logging.Format {
	case "console", "json":
	default:
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.format %q must be console or json", config.Logging.Format))
	}
	if config.Logging.EnableFileLog && config.Logging.MaxSizeMB < 1 {
		validationErrors = append(validationErrors, "logging.max_size_mb must be at least 1")
	}
	return validationErrors
}

func validateSearch(config *Config) []string {
	var validationErrors []string
	for _, msg := range validation.ValidateSearchTemplate(config.Search.Engine) {
		validationErrors = append(validationErrors, "search.engine "+msg)
	}
	if config.Search.SuggestURL != "" {
		for _, msg := range validation.ValidateSearchTemplate(config.Search.SuggestURL) {
			validationErrors = append(validationErrors, "search.suggest_url "+msg)
		}
	}
	if config.Search.SuggestTimeoutMs <= 0 {
		validationErrors = append(validationErrors, "search.suggest_timeout_ms must be positive")
	}
	if config.Search.SuggestRatePerSecond < 0 {
		validationErrors = append(validationErrors, "search.suggest_rate_per_second must be non-negative")
	}

	keys := make([]string, 0, len(config.Search.Shortcuts))
	for key := range config.Search.Shortcuts {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		for _, msg := range validation.ValidateShortcutKey(key) {
			validationErrors = append(validationErrors, fmt.Sprintf("search.shortcuts.%s: %s", key, msg))
		}
		for _, msg := range validation.ValidateSearchTemplate(config.Search.Shortcuts[key]) {
			validationErrors = append(validationErrors, fmt.Sprintf("search.shortcuts.%s %s", key, msg))
		}
	}
	return validationErrors
}

func validateSuggestions(config *Config) []string {
	var validationErrors []string
	s := config.Suggestions
	if s.DebounceMs < 0 {
		validationErrors = append(validationErrors, "suggestions.debounce_ms must be non-negative")
	}
	caps := map[string]int{
		"tab_cap":      s.TabCap,
		"history_cap":  s.HistoryCap,
		"bookmark_cap": s.BookmarkCap,
		"remote_cap":   s.RemoteCap,
	}
	for _, name := range []string{"tab_cap", "history_cap", "bookmark_cap", "remote_cap"} {
		if caps[name] < 0 {
			validationErrors = append(validationErrors, fmt.Sprintf("suggestions.%s must be non-negative", name))
		}
	}
	if _, err := autocomplete.ParsePriority(s.Priority); err != nil {
		validationErrors = append(validationErrors, fmt.Sprintf("suggestions.priority: %v", err))
	}
	return validationErrors
}

func validateWindows(config *Config) []string {
	var validationErrors []string
	w := config.Windows
	if _, err := entity.ParseNewWindowContent(w.NewWindowContent); err != nil {
		validationErrors = append(validationErrors, fmt.Sprintf("windows.new_window_content: %v", err))
	}
	if w.CloseDelayMs <= 0 {
		validationErrors = append(validationErrors, "windows.close_delay_ms must be positive")
	}
	if w.DefaultWidth < 200 || w.DefaultHeight < 150 {
		validationErrors = append(validationErrors, "windows.default_width and default_height must be at least 200x150")
	}
	return validationErrors
}

func validateTabs(config *Config) []string {
	if config.Tabs.ClosedTabCapacity < 0 {
		return []string{"tabs.closed_tab_capacity must be non-negative"}
	}
	return nil
}
