// Package headless provides window and content adapters that keep no toolkit
// state. The CLI drives the browser core through them.
package headless

import (
	"context"
	"fmt"
	"sync"

	"github.com/bnema/voyage/internal/application/port"
	"github.com/bnema/voyage/internal/domain/entity"
	"github.com/bnema/voyage/internal/logging"
)

var (
	_ port.WindowHost     = (*Host)(nil)
	_ port.ContentFactory = (*Host)(nil)
)

// DefaultScreen is the screen reported when none is configured.
var DefaultScreen = entity.Rect{Width: 1920, Height: 1080}

// Window is the host-side record of one window.
type Window struct {
	ID      entity.WindowID
	Frame   entity.Rect
	Visible bool
}

// View is the content handle the host hands out.
type View struct {
	TabID entity.TabID
	URL   string
}

// Host implements port.WindowHost and port.ContentFactory in memory.
type Host struct {
	mu       sync.Mutex
	screen   entity.Rect
	nextID   entity.WindowID
	windows  map[entity.WindowID]*Window
	views    map[*View]struct{}
	events   port.TabEvents
	onClosed func(entity.WindowID)
}

// New creates a host with the given screen bounds.
func New(screen entity.Rect) *Host {
	if screen.Width <= 0 || screen.Height <= 0 {
		screen = DefaultScreen
	}
	return &Host{
		screen:  screen,
		windows: make(map[entity.WindowID]*Window),
		views:   make(map[*View]struct{}),
	}
}

// SetTabEvents routes load notifications to events.
func (h *Host) SetTabEvents(events port.TabEvents) {
	h.mu.Lock()
	h.events = events
	h.mu.Unlock()
}

// OnWindowClosed registers the callback run after CloseWindow.
func (h *Host) OnWindowClosed(fn func(entity.WindowID)) {
	h.mu.Lock()
	h.onClosed = fn
	h.mu.Unlock()
}

func (h *Host) CreateWindow(ctx context.Context, frame entity.Rect) (entity.WindowID, error) {
	h.mu.Lock()
	h.nextID++
	id := h.nextID
	h.windows[id] = &Window{ID: id, Frame: frame}
	h.mu.Unlock()

	logging.FromContext(ctx).Debug().Int64("window_id", int64(id)).Msg("headless window created")
	return id, nil
}

func (h *Host) ShowWindow(_ context.Context, id entity.WindowID) {
	h.setVisible(id, true)
}

func (h *Host) HideWindow(_ context.Context, id entity.WindowID) {
	h.setVisible(id, false)
}

func (h *Host) setVisible(id entity.WindowID, visible bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if w, ok := h.windows[id]; ok {
		w.Visible = visible
	}
}

func (h *Host) CloseWindow(ctx context.Context, id entity.WindowID) {
	h.mu.Lock()
	_, ok := h.windows[id]
	delete(h.windows, id)
	onClosed := h.onClosed
	h.mu.Unlock()

	if !ok {
		return
	}
	logging.FromContext(ctx).Debug().Int64("window_id", int64(id)).Msg("headless window closed")
	if onClosed != nil {
		onClosed(id)
	}
}

func (h *Host) ScreenBounds(context.Context) entity.Rect {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.screen
}

// Windows returns a snapshot of the open windows.
func (h *Host) Windows() []Window {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Window, 0, len(h.windows))
	for _, w := range h.windows {
		out = append(out, *w)
	}
	return out
}

func (h *Host) NewContent(ctx context.Context, id entity.TabID, url string) (entity.ContentHandle, error) {
	view := &View{TabID: id}
	h.mu.Lock()
	h.views[view] = struct{}{}
	h.mu.Unlock()

	if err := h.Load(ctx, view, url); err != nil {
		return nil, err
	}
	return view, nil
}

// Load records the address and reports a finished load.
func (h *Host) Load(_ context.Context, handle entity.ContentHandle, url string) error {
	view, ok := handle.(*View)
	if !ok {
		return fmt.Errorf("unexpected content handle %T", handle)
	}

	h.mu.Lock()
	if _, live := h.views[view]; !live {
		h.mu.Unlock()
		return fmt.Errorf("content for tab %s was released", view.TabID)
	}
	view.URL = url
	events := h.events
	h.mu.Unlock()

	if events != nil {
		events.LoadingChanged(view.TabID, true)
		events.URLChanged(view.TabID, url)
		events.LoadingChanged(view.TabID, false)
	}
	return nil
}

func (h *Host) Release(_ context.Context, handle entity.ContentHandle) {
	view, ok := handle.(*View)
	if !ok {
		return
	}
	h.mu.Lock()
	delete(h.views, view)
	h.mu.Unlock()
}

// LiveViews counts content views that were created and not released.
func (h *Host) LiveViews() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.views)
}
