package bootstrap

import (
	"fmt"
	"time"

	"github.com/bnema/voyage/internal/application/usecase"
	"github.com/bnema/voyage/internal/domain/autocomplete"
	"github.com/bnema/voyage/internal/domain/entity"
	"github.com/bnema/voyage/internal/infrastructure/config"
	"github.com/bnema/voyage/internal/infrastructure/suggest"
)

// SuggestSettings maps the [suggestions] section to pipeline settings.
func SuggestSettings(cfg *config.Config) (usecase.SuggestSettings, error) {
	priority, err := autocomplete.ParsePriority(cfg.Suggestions.Priority)
	if err != nil {
		return usecase.SuggestSettings{}, fmt.Errorf("suggestions.priority: %w", err)
	}
	return usecase.SuggestSettings{
		Debounce: time.Duration(cfg.Suggestions.DebounceMs) * time.Millisecond,
		Caps: autocomplete.Caps{
			Tabs:      cfg.Suggestions.TabCap,
			History:   cfg.Suggestions.HistoryCap,
			Bookmarks: cfg.Suggestions.BookmarkCap,
			Remote:    cfg.Suggestions.RemoteCap,
		},
		Priority: priority,
	}, nil
}

// WindowSettings maps the [windows] section to registry settings.
func WindowSettings(cfg *config.Config) (usecase.WindowSettings, error) {
	policy, err := entity.ParseNewWindowContent(cfg.Windows.NewWindowContent)
	if err != nil {
		return usecase.WindowSettings{}, fmt.Errorf("windows.new_window_content: %w", err)
	}
	return usecase.WindowSettings{
		NewWindowContent: policy,
		Homepage:         cfg.Windows.Homepage,
		CloseDelay:       time.Duration(cfg.Windows.CloseDelayMs) * time.Millisecond,
		DefaultSize: entity.Size{
			Width:  float64(cfg.Windows.DefaultWidth),
			Height: float64(cfg.Windows.DefaultHeight),
		},
		DropOffset: entity.Point{
			X: float64(cfg.Windows.DropOffsetX),
			Y: float64(cfg.Windows.DropOffsetY),
		},
	}, nil
}

// SearchSettings maps the [search] section to selection settings.
func SearchSettings(cfg *config.Config) usecase.SearchSettings {
	shortcuts := make(map[string]string, len(cfg.Search.Shortcuts))
	for k, v := range cfg.Search.Shortcuts {
		shortcuts[k] = v
	}
	return usecase.SearchSettings{Template: cfg.Search.Engine, Shortcuts: shortcuts}
}

// SuggestOptions maps the [search] section to remote client options.
func SuggestOptions(cfg *config.Config) suggest.Options {
	return suggest.Options{
		Endpoint:      cfg.Search.SuggestURL,
		Timeout:       time.Duration(cfg.Search.SuggestTimeoutMs) * time.Millisecond,
		RatePerSecond: cfg.Search.SuggestRatePerSecond,
	}
}
