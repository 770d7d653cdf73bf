package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/bnema/voyage/internal/domain/autocomplete"
	"github.com/bnema/voyage/internal/domain/entity"
	"github.com/bnema/voyage/internal/domain/url"
	"github.com/bnema/voyage/internal/logging"
)

// SelectionAction is what choosing a suggestion did.
type SelectionAction int

const (
	SelectionNone SelectionAction = iota
	SelectionSwitchTab
	SelectionNavigate
)

// SearchSettings configures how typed text and search suggestions become URLs.
type SearchSettings struct {
	// Template is the search engine URL with a %s placeholder.
	Template string
	// Shortcuts maps bang keys ("g" for "!g") to search templates.
	Shortcuts map[string]string
}

// SelectSuggestionUseCase turns a picked suggestion or submitted text into a tab switch or navigation.
type SelectSuggestionUseCase struct {
	tabs *ManageTabsUseCase

	mu     sync.RWMutex
	search SearchSettings
}

// NewSelectSuggestionUseCase creates a selection handler.
func NewSelectSuggestionUseCase(tabs *ManageTabsUseCase, search SearchSettings) *SelectSuggestionUseCase {
	return &SelectSuggestionUseCase{tabs: tabs, search: search}
}

// UpdateSearch replaces the search settings.
func (uc *SelectSuggestionUseCase) UpdateSearch(search SearchSettings) {
	uc.mu.Lock()
	uc.search = search
	uc.mu.Unlock()
}

func (uc *SelectSuggestionUseCase) searchSettings() SearchSettings {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.search
}

// SelectInput identifies the window and tab a selection applies to.
type SelectInput struct {
	TabList *entity.TabList
	// TabID is the tab to navigate; empty means the active tab.
	TabID entity.TabID
	Item  autocomplete.Item
}

// SelectOutput reports the outcome.
type SelectOutput struct {
	Action SelectionAction
	TabID  entity.TabID
	URL    string
}

// ResolveURL returns the address a non-tab item leads to.
// Search suggestions go through the search engine rather than being used as URLs.
func (uc *SelectSuggestionUseCase) ResolveURL(item autocomplete.Item) string {
	if item.Kind == autocomplete.KindSearchSuggestion {
		return url.SearchURL(uc.searchSettings().Template, item.Title)
	}
	return item.URL
}

// Select applies a chosen suggestion.
func (uc *SelectSuggestionUseCase) Select(ctx context.Context, input SelectInput) (*SelectOutput, error) {
	log := logging.FromContext(ctx)
	if input.TabList == nil {
		return nil, fmt.Errorf("tab list is required")
	}

	if input.Item.Kind == autocomplete.KindTabSwitch {
		if !uc.tabs.Switch(ctx, input.TabList, input.Item.TabID) {
			log.Debug().Str("tab_id", string(input.Item.TabID)).Msg("selected tab is gone")
			return &SelectOutput{Action: SelectionNone}, nil
		}
		return &SelectOutput{Action: SelectionSwitchTab, TabID: input.Item.TabID}, nil
	}

	target := uc.ResolveURL(input.Item)
	if target == "" {
		log.Debug().Str("kind", input.Item.Kind.String()).Msg("selected item has no destination")
		return &SelectOutput{Action: SelectionNone}, nil
	}
	return uc.navigate(ctx, input.TabList, input.TabID, target)
}

// Submit handles text entered without picking a suggestion: URLs are opened,
// bang shortcuts and anything else are searched.
func (uc *SelectSuggestionUseCase) Submit(ctx context.Context, tabs *entity.TabList, tabID entity.TabID, text string) (*SelectOutput, error) {
	if tabs == nil {
		return nil, fmt.Errorf("tab list is required")
	}
	search := uc.searchSettings()
	target := url.BuildSearchURL(text, search.Shortcuts, search.Template)
	if target == "" {
		return &SelectOutput{Action: SelectionNone}, nil
	}
	return uc.navigate(ctx, tabs, tabID, target)
}

func (uc *SelectSuggestionUseCase) navigate(ctx context.Context, tabs *entity.TabList, tabID entity.TabID, target string) (*SelectOutput, error) {
	if tabID == "" {
		tabID = tabs.ActiveTabID
	}
	if tabID != "" && uc.tabs.Navigate(ctx, tabs, tabID, target) {
		return &SelectOutput{Action: SelectionNavigate, TabID: tabID, URL: target}, nil
	}

	out, err := uc.tabs.Create(ctx, CreateTabInput{TabList: tabs, InitialURL: target})
	if err != nil {
		return nil, err
	}
	return &SelectOutput{Action: SelectionNavigate, TabID: out.Tab.ID, URL: out.Tab.URL}, nil
}
