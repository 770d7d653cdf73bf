package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/bnema/voyage/internal/application/port"
	"github.com/bnema/voyage/internal/domain/entity"
	"github.com/bnema/voyage/internal/domain/url"
	"github.com/bnema/voyage/internal/logging"
)

// DefaultWindowCloseDelay is how long a drained window stays hidden before it is closed.
const DefaultWindowCloseDelay = 300 * time.Millisecond

// WindowSettings configures window creation and teardown.
type WindowSettings struct {
	NewWindowContent entity.NewWindowContent
	Homepage         string
	CloseDelay       time.Duration
	DefaultSize      entity.Size
	// DropOffset is subtracted from a drop point to get the new window's origin.
	DropOffset entity.Point
}

// DefaultWindowSettings returns the built-in window settings.
func DefaultWindowSettings() WindowSettings {
	return WindowSettings{
		NewWindowContent: entity.NewWindowStartPage,
		Homepage:         url.StartPageURL,
		CloseDelay:       DefaultWindowCloseDelay,
		DefaultSize:      entity.Size{Width: 1200, Height: 800},
		DropOffset:       entity.Point{X: 60, Y: 20},
	}
}

// WindowRegistry maps windows to their tab lists and moves tabs between them.
//
// The registry has no internal locking. Every method must run on the
// execution context behind the scheduler.
type WindowRegistry struct {
	windows   map[entity.WindowID]*entity.TabList
	scheduler port.Scheduler
	host      port.WindowHost
	tabs      *ManageTabsUseCase
	settings  WindowSettings
}

// NewWindowRegistry creates an empty registry.
// host may be nil for headless use; window show/hide/close are then skipped.
func NewWindowRegistry(
	scheduler port.Scheduler,
	host port.WindowHost,
	tabs *ManageTabsUseCase,
	settings WindowSettings,
) *WindowRegistry {
	if settings.CloseDelay <= 0 {
		settings.CloseDelay = DefaultWindowCloseDelay
	}
	return &WindowRegistry{
		windows:   make(map[entity.WindowID]*entity.TabList),
		scheduler: scheduler,
		host:      host,
		tabs:      tabs,
		settings:  settings,
	}
}

// Register associates a window with its tab list, replacing any previous entry.
func (r *WindowRegistry) Register(ctx context.Context, windowID entity.WindowID, tabs *entity.TabList) {
	if tabs == nil {
		tabs = entity.NewTabList()
	}
	r.windows[windowID] = tabs
	logging.FromContext(ctx).Debug().
		Int64("window_id", int64(windowID)).
		Int("tabs", tabs.Count()).
		Msg("window registered")
}

// Unregister forgets a window. Unknown windows are ignored.
func (r *WindowRegistry) Unregister(ctx context.Context, windowID entity.WindowID) {
	if _, ok := r.windows[windowID]; !ok {
		return
	}
	delete(r.windows, windowID)
	logging.FromContext(ctx).Debug().
		Int64("window_id", int64(windowID)).
		Msg("window unregistered")
}

// Lookup returns the tab list registered for a window.
func (r *WindowRegistry) Lookup(windowID entity.WindowID) (*entity.TabList, bool) {
	tabs, ok := r.windows[windowID]
	return tabs, ok
}

// WindowIDs returns the registered windows in ascending order.
func (r *WindowRegistry) WindowIDs() []entity.WindowID {
	ids := make([]entity.WindowID, 0, len(r.windows))
	for id := range r.windows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// WindowForTab finds the window whose tab list holds tabID.
func (r *WindowRegistry) WindowForTab(tabID entity.TabID) (entity.WindowID, *entity.TabList, bool) {
	for _, id := range r.WindowIDs() {
		if tabs := r.windows[id]; tabs.Contains(tabID) {
			return id, tabs, true
		}
	}
	return 0, nil, false
}

// RemoveTabFromWindow detaches a tab and its content handle from a window.
// The last tab may go; the drained window is then hidden at once and
// closed after the configured delay.
func (r *WindowRegistry) RemoveTabFromWindow(
	ctx context.Context,
	windowID entity.WindowID,
	tabID entity.TabID,
) (*entity.Tab, entity.ContentHandle, bool) {
	ctx = logging.WithWindowID(ctx, int64(windowID))
	log := logging.FromContext(ctx)

	tabs, ok := r.windows[windowID]
	if !ok {
		log.Debug().Str("tab_id", string(tabID)).Msg("remove: window not registered")
		return nil, nil, false
	}

	tab, handle, ok := tabs.Detach(tabID, true)
	if !ok {
		log.Debug().Str("tab_id", string(tabID)).Msg("remove: tab not found")
		return nil, nil, false
	}

	if tabs.Count() == 0 {
		r.scheduleClose(ctx, windowID)
	}
	return tab, handle, true
}

// scheduleClose hides a drained window now and closes it after the close delay.
// The timer does nothing if the window was unregistered or got tabs back meanwhile.
func (r *WindowRegistry) scheduleClose(ctx context.Context, windowID entity.WindowID) {
	log := logging.FromContext(ctx)

	if r.host != nil {
		r.host.HideWindow(ctx, windowID)
	}
	log.Debug().Dur("delay", r.settings.CloseDelay).Msg("window drained, close scheduled")

	r.scheduler.AfterFunc(r.settings.CloseDelay, func() {
		tabs, ok := r.windows[windowID]
		if !ok {
			log.Debug().Msg("deferred close: window already gone")
			return
		}
		if tabs.Count() > 0 {
			log.Debug().Int("tabs", tabs.Count()).Msg("deferred close: window has tabs again")
			if r.host != nil {
				r.host.ShowWindow(ctx, windowID)
			}
			return
		}
		if r.host != nil {
			r.host.CloseWindow(ctx, windowID)
		}
		r.Unregister(ctx, windowID)
		if r.tabs != nil {
			if err := r.tabs.ForgetSession(ctx, windowID); err != nil {
				log.Warn().Err(err).Msg("failed to forget window session")
			}
		}
		log.Info().Msg("drained window closed")
	})
}

// TransferPosition says where a transferred tab lands in its new window.
// An empty or unknown DestinationID appends at the end.
type TransferPosition struct {
	DestinationID entity.TabID
	After         bool
}

// TransferTab moves a tab with its live content from one window into another tab list.
//
// The tab is inserted into the destination before it is removed from the source,
// both in this one call, so no observer ever sees it missing from both.
// A tab already in the destination is only reordered there.
func (r *WindowRegistry) TransferTab(
	ctx context.Context,
	fromWindowID entity.WindowID,
	tabID entity.TabID,
	to *entity.TabList,
	pos TransferPosition,
) bool {
	ctx = logging.WithTabID(logging.WithWindowID(ctx, int64(fromWindowID)), string(tabID))
	log := logging.FromContext(ctx)

	if to == nil {
		log.Debug().Msg("transfer: no destination")
		return false
	}

	if to.Contains(tabID) {
		var moved bool
		if pos.After {
			moved = to.MoveAfter(tabID, pos.DestinationID)
		} else {
			moved = to.MoveBefore(tabID, pos.DestinationID)
		}
		to.Switch(tabID)
		log.Debug().Bool("moved", moved).Msg("transfer within the same window")
		return moved
	}

	from, ok := r.windows[fromWindowID]
	if !ok {
		log.Debug().Msg("transfer: source window not registered")
		return false
	}
	tab := from.Find(tabID)
	if tab == nil {
		log.Debug().Msg("transfer: tab not in source window")
		return false
	}
	handle, _ := from.Handle(tabID)

	if pos.After {
		to.InsertAfter(tab.Clone(), handle, pos.DestinationID)
	} else {
		to.InsertBefore(tab.Clone(), handle, pos.DestinationID)
	}

	if _, _, ok := r.RemoveTabFromWindow(ctx, fromWindowID, tabID); !ok {
		log.Warn().Msg("transfer: source removal failed after insert")
	}

	log.Info().
		Str("destination", string(pos.DestinationID)).
		Bool("after", pos.After).
		Msg("tab transferred")
	return true
}

// CreateWindowInput contains parameters for opening a window.
type CreateWindowInput struct {
	// Tab and Handle wrap a detached tab. When Tab is nil a tab is made per the content policy.
	Tab    *entity.Tab
	Handle entity.ContentHandle
	// DropPoint places the window under the cursor; nil centers it.
	DropPoint *entity.Point
	// Current is the page cloned by the clone-current policy.
	Current *entity.Tab
}

// CreateWindowOutput contains the new window.
type CreateWindowOutput struct {
	WindowID entity.WindowID
	Tabs     *entity.TabList
	Frame    entity.Rect
}

// CreateWindow opens and registers a new window.
func (r *WindowRegistry) CreateWindow(ctx context.Context, input CreateWindowInput) (*CreateWindowOutput, error) {
	log := logging.FromContext(ctx)
	if r.host == nil {
		return nil, fmt.Errorf("window host is required")
	}

	screen := r.host.ScreenBounds(ctx)
	frame := entity.PlaceWindow(r.settings.DefaultSize, screen, input.DropPoint, r.settings.DropOffset)

	windowID, err := r.host.CreateWindow(ctx, frame)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	tabs := entity.NewTabList()
	if input.Tab != nil {
		tabs.InsertAfter(input.Tab, input.Handle, "")
	} else if r.tabs != nil {
		initialURL, title := r.initialContent(input.Current)
		if _, err := r.tabs.Create(ctx, CreateTabInput{TabList: tabs, InitialURL: initialURL, Title: title}); err != nil {
			return nil, err
		}
	}

	r.Register(ctx, windowID, tabs)
	r.host.ShowWindow(ctx, windowID)

	log.Info().
		Int64("window_id", int64(windowID)).
		Bool("from_detached_tab", input.Tab != nil).
		Bool("at_drop_point", input.DropPoint != nil).
		Msg("window created")

	return &CreateWindowOutput{WindowID: windowID, Tabs: tabs, Frame: frame}, nil
}

// initialContent applies the new-window content policy.
func (r *WindowRegistry) initialContent(current *entity.Tab) (pageURL, title string) {
	switch r.settings.NewWindowContent {
	case entity.NewWindowBlank:
		return url.BlankURL, ""
	case entity.NewWindowHomepage:
		if r.settings.Homepage != "" {
			return r.settings.Homepage, ""
		}
	case entity.NewWindowCloneCurrent:
		if current != nil && current.URL != "" {
			return current.URL, current.Title
		}
	}
	return url.StartPageURL, ""
}

// UpdateSettings replaces the window settings for later operations.
func (r *WindowRegistry) UpdateSettings(settings WindowSettings) {
	if settings.CloseDelay <= 0 {
		settings.CloseDelay = DefaultWindowCloseDelay
	}
	r.settings = settings
}

// WindowClosed handles a close reported by the host: the window's tabs are
// saved as the last session, their content views released, and the window forgotten.
func (r *WindowRegistry) WindowClosed(ctx context.Context, windowID entity.WindowID) {
	ctx = logging.WithWindowID(ctx, int64(windowID))
	tabs, ok := r.windows[windowID]
	if !ok {
		logging.FromContext(ctx).Debug().Msg("close: window not registered")
		return
	}
	if r.tabs != nil && tabs.Count() > 0 {
		if err := r.tabs.SaveSession(ctx, windowID, tabs); err != nil {
			logging.FromContext(ctx).Warn().Err(err).Msg("failed to save window session")
		}
		r.tabs.ReleaseAll(ctx, tabs)
	}
	r.Unregister(ctx, windowID)
}
