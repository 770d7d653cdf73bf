// Package bootstrap wires the browser core: storage, remote suggestions,
// the execution context, the window registry and the suggestion pipeline.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/bnema/voyage/internal/application/usecase"
	"github.com/bnema/voyage/internal/domain/entity"
	"github.com/bnema/voyage/internal/infrastructure/config"
	"github.com/bnema/voyage/internal/infrastructure/headless"
	"github.com/bnema/voyage/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/voyage/internal/infrastructure/suggest"
	"github.com/bnema/voyage/internal/logging"
	"github.com/bnema/voyage/internal/ui/mainloop"
)

// Browser is a fully wired browser core.
//
// Tab lists and the registry belong to Loop. Callers on other goroutines
// reach them through Do.
type Browser struct {
	Loop      *mainloop.Loop
	Host      *headless.Host
	DB        *sqlite.Store
	Suggester *suggest.Client

	Tabs      *usecase.ManageTabsUseCase
	Windows   *usecase.WindowRegistry
	Suggest   *usecase.SuggestUseCase
	Select    *usecase.SelectSuggestionUseCase
	History   *usecase.SearchHistoryUseCase
	Bookmarks *usecase.ManageBookmarksUseCase
	Events    *usecase.TabEventRouter

	ctx        context.Context
	stopLoop   context.CancelFunc
	coalescer  *mainloop.Coalescer
	restore    bool
	windowSize entity.Size
	visits     sync.WaitGroup
}

// NewTabID returns a random tab identifier.
func NewTabID() string {
	return uuid.NewString()
}

// NewBrowser opens the database and starts the execution context.
func NewBrowser(ctx context.Context, cfg *config.Config) (*Browser, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	log := logging.FromContext(ctx)
	timer := NewStartupTimer()

	suggestSettings, err := SuggestSettings(cfg)
	if err != nil {
		return nil, err
	}
	windowSettings, err := WindowSettings(cfg)
	if err != nil {
		return nil, err
	}
	timer.Mark("settings")

	store, err := sqlite.Open(ctx, cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	historyRepo := sqlite.NewHistoryRepository(store.DB)
	bookmarkRepo := sqlite.NewBookmarkRepository(store.DB)
	kvRepo := sqlite.NewKeyValueRepository(store.DB)
	timer.Mark("database")

	loopCtx, stopLoop := context.WithCancel(logging.WithComponent(ctx, "mainloop"))
	loop := mainloop.New()
	go loop.Run(loopCtx)
	coalescer := mainloop.NewCoalescer(loop)

	host := headless.New(headless.DefaultScreen)
	tabs := usecase.NewManageTabsUseCase(NewTabID, host, kvRepo, cfg.Tabs.ClosedTabCapacity)
	registry := usecase.NewWindowRegistry(loop, host, tabs, windowSettings)
	events := usecase.NewTabEventRouter(ctx, registry, loop, coalescer)
	host.SetTabEvents(events)
	host.OnWindowClosed(func(id entity.WindowID) {
		loop.Post(func() { registry.WindowClosed(ctx, id) })
	})

	suggester := suggest.NewClient(SuggestOptions(cfg))

	b := &Browser{
		Loop:       loop,
		Host:       host,
		DB:         store,
		Suggester:  suggester,
		Tabs:       tabs,
		Windows:    registry,
		Suggest:    usecase.NewSuggestUseCase(historyRepo, bookmarkRepo, suggester, loop, suggestSettings),
		Select:     usecase.NewSelectSuggestionUseCase(tabs, SearchSettings(cfg)),
		History:    usecase.NewSearchHistoryUseCase(historyRepo),
		Bookmarks:  usecase.NewManageBookmarksUseCase(bookmarkRepo),
		Events:     events,
		ctx:        ctx,
		stopLoop:   stopLoop,
		coalescer:  coalescer,
		restore:    cfg.Tabs.RestoreSession,
		windowSize: windowSettings.DefaultSize,
	}

	events.OnLoadFinished(b.recordVisit)
	if err := loop.Do(ctx, func() { tabs.LoadClosedTabs(ctx) }); err != nil {
		_ = b.Close()
		return nil, err
	}
	timer.Mark("core")
	timer.Log(ctx)

	log.Debug().Str("db", store.Path()).Bool("remote_suggestions", cfg.Search.SuggestURL != "").Msg("browser core ready")
	return b, nil
}

// recordVisit stores a finished load without blocking the execution context.
func (b *Browser) recordVisit(tab *entity.Tab) {
	b.visits.Add(1)
	go func() {
		defer b.visits.Done()
		if err := b.History.RecordVisit(b.ctx, tab); err != nil {
			logging.FromContext(b.ctx).Warn().Err(err).Msg("failed to record visit")
		}
	}()
}

// Do runs fn on the execution context and waits for it.
func (b *Browser) Do(ctx context.Context, fn func()) error {
	return b.Loop.Do(ctx, fn)
}

// OpenWindow opens the first window: the last session when restoring is enabled
// and one was saved, otherwise a window per the new-window policy.
// Call it off the execution context.
func (b *Browser) OpenWindow(ctx context.Context) (entity.WindowID, error) {
	var (
		windowID entity.WindowID
		openErr  error
	)
	err := b.Do(ctx, func() {
		if b.restore {
			tabs, err := b.Tabs.RestoreLastSession(ctx)
			if err != nil {
				logging.FromContext(ctx).Warn().Err(err).Msg("session restore failed, opening a fresh window")
			} else if tabs != nil && tabs.Count() > 0 {
				windowID, openErr = b.adoptWindow(ctx, tabs)
				return
			}
		}
		out, err := b.Windows.CreateWindow(ctx, usecase.CreateWindowInput{})
		if err != nil {
			openErr = err
			return
		}
		windowID = out.WindowID
	})
	if err != nil {
		return 0, err
	}
	return windowID, openErr
}

func (b *Browser) adoptWindow(ctx context.Context, tabs *entity.TabList) (entity.WindowID, error) {
	screen := b.Host.ScreenBounds(ctx)
	frame := entity.PlaceWindow(b.windowSize, screen, nil, entity.Point{})
	id, err := b.Host.CreateWindow(ctx, frame)
	if err != nil {
		return 0, err
	}
	b.Windows.Register(ctx, id, tabs)
	b.Host.ShowWindow(ctx, id)
	return id, nil
}

// CloseWindow closes a window through the host; its session is saved on the way out.
func (b *Browser) CloseWindow(ctx context.Context, id entity.WindowID) error {
	if err := b.Do(ctx, func() { b.Host.CloseWindow(ctx, id) }); err != nil {
		return err
	}
	// The host reports the close with a second post; wait for it to run.
	return b.Do(ctx, func() {})
}

// ApplyConfig pushes a reloaded configuration into the running core.
func (b *Browser) ApplyConfig(cfg *config.Config) error {
	suggestSettings, err := SuggestSettings(cfg)
	if err != nil {
		return err
	}
	windowSettings, err := WindowSettings(cfg)
	if err != nil {
		return err
	}

	b.Suggest.UpdateSettings(suggestSettings)
	b.Select.UpdateSearch(SearchSettings(cfg))
	b.Suggester.Configure(SuggestOptions(cfg))
	b.Loop.Post(func() {
		b.Windows.UpdateSettings(windowSettings)
		b.restore = cfg.Tabs.RestoreSession
		b.windowSize = windowSettings.DefaultSize
	})

	logging.FromContext(b.ctx).Info().Msg("configuration applied")
	return nil
}

// Close stops the execution context and closes the database.
func (b *Browser) Close() error {
	b.Suggest.Cancel()
	b.coalescer.Destroy()
	b.stopLoop()
	<-b.Loop.Done()
	b.visits.Wait()
	return b.DB.Close()
}
