package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bnema/voyage/internal/application/port"
	"github.com/bnema/voyage/internal/domain/autocomplete"
	"github.com/bnema/voyage/internal/domain/entity"
	"github.com/bnema/voyage/internal/domain/repository"
	"github.com/bnema/voyage/internal/logging"
)

// DefaultSuggestDebounce is the input quiet time before a query runs.
const DefaultSuggestDebounce = 150 * time.Millisecond

// historySearchFactor over-fetches history so URL de-duplication can still fill the cap.
const historySearchFactor = 4

// SuggestSettings tunes the suggestion pipeline. It can change at runtime.
type SuggestSettings struct {
	Debounce time.Duration
	Caps     autocomplete.Caps
	Priority []autocomplete.Kind
}

// DefaultSuggestSettings returns the built-in pipeline settings.
func DefaultSuggestSettings() SuggestSettings {
	return SuggestSettings{
		Debounce: DefaultSuggestDebounce,
		Caps:     autocomplete.DefaultCaps(),
		Priority: autocomplete.DefaultPriority(),
	}
}

// SuggestResult is one published suggestion list.
type SuggestResult struct {
	Query        string
	Items        []autocomplete.Item
	InlineSuffix string
	Generation   uint64
}

// SuggestUseCase merges open tabs, history, bookmarks and remote search
// suggestions into one ordered list for the address field.
//
// Input debounces keystrokes. Each call supersedes the previous one: its timer
// is stopped, its query context cancelled, and its result is never published.
type SuggestUseCase struct {
	history   repository.HistoryRepository
	bookmarks repository.BookmarkRepository
	remote    port.SearchSuggester
	scheduler port.Scheduler

	mu         sync.Mutex
	settings   SuggestSettings
	generation uint64
	stopTimer  func() bool
	cancel     context.CancelFunc
}

// NewSuggestUseCase creates a pipeline. Any source may be nil and then contributes nothing.
func NewSuggestUseCase(
	history repository.HistoryRepository,
	bookmarks repository.BookmarkRepository,
	remote port.SearchSuggester,
	scheduler port.Scheduler,
	settings SuggestSettings,
) *SuggestUseCase {
	return &SuggestUseCase{
		history:   history,
		bookmarks: bookmarks,
		remote:    remote,
		scheduler: scheduler,
		settings:  sanitizeSuggestSettings(settings),
	}
}

func sanitizeSuggestSettings(s SuggestSettings) SuggestSettings {
	if s.Debounce < 0 {
		s.Debounce = 0
	}
	if len(s.Priority) == 0 {
		s.Priority = autocomplete.DefaultPriority()
	}
	return s
}

// UpdateSettings swaps the settings used by queries that start afterwards.
func (uc *SuggestUseCase) UpdateSettings(settings SuggestSettings) {
	uc.mu.Lock()
	uc.settings = sanitizeSuggestSettings(settings)
	uc.mu.Unlock()
}

// Settings returns the current settings.
func (uc *SuggestUseCase) Settings() SuggestSettings {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.settings
}

// QueryInput contains one suggestion query.
type QueryInput struct {
	// Query is the raw text from the address field. Remote suggestions get it untouched.
	Query string
	// Tabs are the candidate open tabs. Use TabCandidates to build them.
	Tabs []*entity.Tab
}

// QueryOutput contains the merged suggestions.
type QueryOutput struct {
	Items        []autocomplete.Item
	InlineSuffix string
}

// TabCandidates copies the tabs of a window that may be offered for switching:
// every tab except the active one and internal pages.
// Call it on the execution context; the copies are safe to read elsewhere.
func TabCandidates(tabs *entity.TabList) []*entity.Tab {
	if tabs == nil {
		return nil
	}
	out := make([]*entity.Tab, 0, tabs.Count())
	for _, tab := range tabs.Tabs {
		if tab.ID == tabs.ActiveTabID || tab.IsSpecial() {
			continue
		}
		out = append(out, tab.Clone())
	}
	return out
}

// Query runs all matchers concurrently and merges their results in priority order.
// Source failures are logged and count as no matches; only cancellation is returned.
func (uc *SuggestUseCase) Query(ctx context.Context, input QueryInput) (*QueryOutput, error) {
	log := logging.FromContext(ctx)

	q := autocomplete.NormalizeQuery(input.Query)
	if q == "" {
		return &QueryOutput{Items: []autocomplete.Item{}}, nil
	}

	settings := uc.Settings()
	caps := settings.Caps

	var tabItems, historyItems, bookmarkItems, remoteItems []autocomplete.Item
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		tabItems = matchTabs(q, input.Tabs, caps.Tabs)
		return nil
	})
	if uc.history != nil && caps.History != 0 {
		g.Go(func() error {
			historyItems = uc.matchHistory(gctx, q, caps.History)
			return nil
		})
	}
	if uc.bookmarks != nil && caps.Bookmarks != 0 {
		g.Go(func() error {
			bookmarkItems = uc.matchBookmarks(gctx, q, caps.Bookmarks)
			return nil
		})
	}
	if uc.remote != nil && caps.Remote != 0 {
		g.Go(func() error {
			remoteItems = uc.matchRemote(gctx, input.Query, caps.Remote)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	items := autocomplete.Merge(map[autocomplete.Kind][]autocomplete.Item{
		autocomplete.KindTabSwitch:        tabItems,
		autocomplete.KindHistory:          historyItems,
		autocomplete.KindBookmark:         bookmarkItems,
		autocomplete.KindSearchSuggestion: remoteItems,
	}, settings.Priority, caps)

	suffix, _, _ := autocomplete.InlineCompletion(strings.TrimSpace(input.Query), items)

	log.Debug().
		Str("query", q).
		Int("tabs", len(tabItems)).
		Int("history", len(historyItems)).
		Int("bookmarks", len(bookmarkItems)).
		Int("remote", len(remoteItems)).
		Int("total", len(items)).
		Msg("suggestions merged")

	return &QueryOutput{Items: items, InlineSuffix: suffix}, nil
}

func matchTabs(q string, tabs []*entity.Tab, limit int) []autocomplete.Item {
	items := make([]autocomplete.Item, 0)
	for _, tab := range tabs {
		if limit >= 0 && len(items) >= limit {
			break
		}
		if tab == nil || tab.IsSpecial() {
			continue
		}
		if autocomplete.MatchesQuery(q, tab.Title, tab.URL) {
			items = append(items, autocomplete.NewTabItem(tab))
		}
	}
	return items
}

func (uc *SuggestUseCase) matchHistory(ctx context.Context, q string, limit int) []autocomplete.Item {
	fetch := 50
	if limit > 0 {
		fetch = limit * historySearchFactor
	}

	entries, err := uc.history.Search(ctx, q, fetch)
	if err != nil {
		if ctx.Err() == nil {
			logging.FromContext(ctx).Warn().Err(err).Msg("history suggestions unavailable")
		}
		return nil
	}

	items := make([]autocomplete.Item, 0, len(entries))
	for _, e := range entries {
		if e == nil || e.URL == "" {
			continue
		}
		items = append(items, autocomplete.NewHistoryItem(e))
	}
	return autocomplete.Limit(autocomplete.DedupByURL(items), limit)
}

func (uc *SuggestUseCase) matchBookmarks(ctx context.Context, q string, limit int) []autocomplete.Item {
	all, err := uc.bookmarks.GetAll(ctx)
	if err != nil {
		if ctx.Err() == nil {
			logging.FromContext(ctx).Warn().Err(err).Msg("bookmark suggestions unavailable")
		}
		return nil
	}

	items := make([]autocomplete.Item, 0)
	for _, b := range all {
		if limit >= 0 && len(items) >= limit {
			break
		}
		if b != nil && autocomplete.MatchesQuery(q, b.Title, b.URL) {
			items = append(items, autocomplete.NewBookmarkItem(b))
		}
	}
	return items
}

func (uc *SuggestUseCase) matchRemote(ctx context.Context, raw string, limit int) []autocomplete.Item {
	texts, err := uc.remote.Suggest(ctx, raw)
	if err != nil {
		if ctx.Err() == nil {
			logging.FromContext(ctx).Debug().Err(err).Msg("remote suggestions unavailable")
		}
		return nil
	}

	items := make([]autocomplete.Item, 0, len(texts))
	for _, text := range texts {
		if limit >= 0 && len(items) >= limit {
			break
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		items = append(items, autocomplete.NewSearchSuggestionItem(text))
	}
	return items
}

// Input handles one keystroke. After the debounce interval the query runs off
// the execution context and publish is called back on it, unless a later Input
// or Cancel superseded this one first. Call Input on the execution context.
func (uc *SuggestUseCase) Input(ctx context.Context, raw string, tabs *entity.TabList, publish func(SuggestResult)) {
	candidates := TabCandidates(tabs)

	uc.mu.Lock()
	uc.supersedeLocked()
	uc.generation++
	gen := uc.generation
	debounce := uc.settings.Debounce

	if autocomplete.NormalizeQuery(raw) == "" {
		uc.mu.Unlock()
		publish(SuggestResult{Query: raw, Items: []autocomplete.Item{}, Generation: gen})
		return
	}

	qctx, cancel := context.WithCancel(ctx)
	uc.cancel = cancel
	uc.stopTimer = uc.scheduler.AfterFunc(debounce, func() {
		go uc.run(qctx, gen, QueryInput{Query: raw, Tabs: candidates}, publish)
	})
	uc.mu.Unlock()
}

func (uc *SuggestUseCase) run(ctx context.Context, gen uint64, input QueryInput, publish func(SuggestResult)) {
	defer func() {
		if r := recover(); r != nil {
			logging.FromContext(ctx).Error().
				Interface("panic", r).
				Uint64("generation", gen).
				Msg("suggestion query panicked")
		}
	}()

	out, err := uc.Query(ctx, input)
	if err != nil {
		return
	}

	uc.scheduler.Post(func() {
		if !uc.isCurrent(gen) || ctx.Err() != nil {
			logging.FromContext(ctx).Debug().Uint64("generation", gen).Msg("discarding superseded suggestions")
			return
		}
		publish(SuggestResult{
			Query:        input.Query,
			Items:        out.Items,
			InlineSuffix: out.InlineSuffix,
			Generation:   gen,
		})
	})
}

// Cancel drops any pending or running query without publishing.
func (uc *SuggestUseCase) Cancel() {
	uc.mu.Lock()
	uc.supersedeLocked()
	uc.generation++
	uc.mu.Unlock()
}

func (uc *SuggestUseCase) supersedeLocked() {
	if uc.stopTimer != nil {
		uc.stopTimer()
		uc.stopTimer = nil
	}
	if uc.cancel != nil {
		uc.cancel()
		uc.cancel = nil
	}
}

func (uc *SuggestUseCase) isCurrent(gen uint64) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.generation == gen
}
