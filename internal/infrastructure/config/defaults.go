package config

import (
	"github.com/bnema/voyage/internal/domain/autocomplete"
	"github.com/bnema/voyage/internal/domain/entity"
	"github.com/bnema/voyage/internal/domain/url"
)

const (
	defaultLogLevel  = "info"
	defaultLogFormat = "console"
	defaultLogSizeMB = 10

	defaultSearchEngine     = url.DefaultSearchTemplate
	defaultSuggestURL       = "https://duckduckgo.com/ac/?q=%s&type=list"
	defaultSuggestTimeoutMs = 2000
	defaultSuggestRate      = 5.0

	defaultDebounceMs = 150

	defaultCloseDelayMs  = 300
	defaultWindowWidth   = 1200
	defaultWindowHeight  = 800
	defaultDropOffsetX   = 60
	defaultDropOffsetY   = 20
	defaultClosedTabsCap = 25
)

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	caps := autocomplete.DefaultCaps()
	return &Config{
		Logging: LoggingConfig{
			Level:     defaultLogLevel,
			Format:    defaultLogFormat,
			MaxSizeMB: defaultLogSizeMB,
		},
		Search: SearchConfig{
			Engine:               defaultSearchEngine,
			SuggestURL:           defaultSuggestURL,
			SuggestTimeoutMs:     defaultSuggestTimeoutMs,
			SuggestRatePerSecond: defaultSuggestRate,
			Shortcuts: map[string]string{
				"g":  "https://www.google.com/search?q=%s",
				"gh": "https://github.com/search?q=%s",
				"w":  "https://en.wikipedia.org/wiki/Special:Search?search=%s",
				"go": "https://pkg.go.dev/search?q=%s",
			},
		},
		Suggestions: SuggestionsConfig{
			DebounceMs:  defaultDebounceMs,
			TabCap:      caps.Tabs,
			HistoryCap:  caps.History,
			BookmarkCap: caps.Bookmarks,
			RemoteCap:   caps.Remote,
			Priority:    autocomplete.PriorityNames(autocomplete.DefaultPriority()),
		},
		Windows: WindowsConfig{
			NewWindowContent: string(entity.NewWindowStartPage),
			Homepage:         url.StartPageURL,
			CloseDelayMs:     defaultCloseDelayMs,
			DefaultWidth:     defaultWindowWidth,
			DefaultHeight:    defaultWindowHeight,
			DropOffsetX:      defaultDropOffsetX,
			DropOffsetY:      defaultDropOffsetY,
		},
		Tabs: TabsConfig{
			ClosedTabCapacity: defaultClosedTabsCap,
			RestoreSession:    true,
		},
	}
}
