package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/bnema/voyage/internal/application/port"
	"github.com/bnema/voyage/internal/domain/entity"
	"github.com/bnema/voyage/internal/domain/repository"
	"github.com/bnema/voyage/internal/domain/url"
	"github.com/bnema/voyage/internal/logging"
)

// Key-value store keys.
const (
	closedTabsKey        = "tabs.closed"
	sessionKeyPrefix     = "session.window."
	defaultWindowSession = "session.last"
)

// ManageTabsUseCase handles tab lifecycle operations inside one window's tab list.
// It owns the process-wide closed-tab ring.
type ManageTabsUseCase struct {
	idGenerator entity.IDGenerator
	content     port.ContentFactory
	kv          repository.KeyValueRepository
	closed      *entity.ClosedTabRing
	now         func() time.Time
}

// NewManageTabsUseCase creates a new tab management use case.
// content and kv may be nil: tabs then carry no live view and nothing is persisted.
func NewManageTabsUseCase(
	idGenerator entity.IDGenerator,
	content port.ContentFactory,
	kv repository.KeyValueRepository,
	closedCapacity int,
) *ManageTabsUseCase {
	return &ManageTabsUseCase{
		idGenerator: idGenerator,
		content:     content,
		kv:          kv,
		closed:      entity.NewClosedTabRing(closedCapacity),
		now:         time.Now,
	}
}

// CreateTabInput contains parameters for creating a new tab.
type CreateTabInput struct {
	TabList    *entity.TabList
	InitialURL string // URL to load (default: about:blank)
	Title      string
}

// CreateTabOutput contains the result of tab creation.
type CreateTabOutput struct {
	Tab *entity.Tab
}

// Create appends a new tab and makes it active.
func (uc *ManageTabsUseCase) Create(ctx context.Context, input CreateTabInput) (*CreateTabOutput, error) {
	log := logging.FromContext(ctx)

	if input.TabList == nil {
		return nil, fmt.Errorf("tab list is required")
	}

	tabID := entity.TabID(uc.idGenerator())
	tab := entity.NewTab(tabID, entity.TabState{
		URL:   url.Normalize(input.InitialURL),
		Title: input.Title,
	})
	input.TabList.Add(tab)
	uc.attachContent(ctx, input.TabList, tab)

	log.Info().
		Str("tab_id", string(tabID)).
		Str("url", logging.TruncateURL(tab.URL, 80)).
		Int("count", input.TabList.Count()).
		Msg("tab created")

	return &CreateTabOutput{Tab: tab}, nil
}

// attachContent creates a content view for tab when a factory is wired.
// A failed view leaves the tab without a handle; the engine layer retries on load.
func (uc *ManageTabsUseCase) attachContent(ctx context.Context, tabs *entity.TabList, tab *entity.Tab) {
	if uc.content == nil {
		return
	}
	handle, err := uc.content.NewContent(ctx, tab.ID, tab.URL)
	if err != nil {
		logging.FromContext(ctx).Warn().Err(err).Str("tab_id", string(tab.ID)).Msg("content view creation failed")
		return
	}
	tabs.SetHandle(tab.ID, handle)
}

// CloseTabInput contains parameters for closing a tab.
type CloseTabInput struct {
	TabList      *entity.TabList
	TabID        entity.TabID
	AllowLastTab bool
}

// CloseTabOutput describes what Close did.
type CloseTabOutput struct {
	// Closed is false when the tab was absent or was the last one and closing it was not allowed.
	Closed bool
	// NeedsConfirmation is set when the last tab was kept; the caller decides whether to close the window.
	NeedsConfirmation bool
	// Emptied is set when the list has no tabs left.
	Emptied bool
	// NewActiveID is the active tab after the close.
	NewActiveID entity.TabID
}

// Close removes a tab, records it for reopen and releases its content view.
func (uc *ManageTabsUseCase) Close(ctx context.Context, input CloseTabInput) (*CloseTabOutput, error) {
	ctx = logging.WithTabID(ctx, string(input.TabID))
	log := logging.FromContext(ctx)

	if input.TabList == nil {
		return nil, fmt.Errorf("tab list is required")
	}
	tabs := input.TabList

	if !tabs.Contains(input.TabID) {
		log.Debug().Msg("close: tab not found")
		return &CloseTabOutput{NewActiveID: tabs.ActiveTabID}, nil
	}
	if tabs.Count() == 1 && !input.AllowLastTab {
		log.Debug().Msg("close: last tab needs confirmation")
		return &CloseTabOutput{NeedsConfirmation: true, NewActiveID: tabs.ActiveTabID}, nil
	}

	tab, handle, _ := tabs.Remove(input.TabID)
	if entry, ok := entity.ClosedTabFromTab(tab, uc.now()); ok {
		uc.closed.Push(entry)
		uc.persistClosedTabs(ctx)
	}
	if handle != nil && uc.content != nil {
		uc.content.Release(ctx, handle)
	}

	log.Info().
		Str("new_active", string(tabs.ActiveTabID)).
		Int("remaining", tabs.Count()).
		Msg("tab closed")

	return &CloseTabOutput{
		Closed:      true,
		Emptied:     tabs.Count() == 0,
		NewActiveID: tabs.ActiveTabID,
	}, nil
}

// ReleaseAll releases every content view owned by tabs.
func (uc *ManageTabsUseCase) ReleaseAll(ctx context.Context, tabs *entity.TabList) {
	if tabs == nil {
		return
	}
	for _, id := range tabs.IDs() {
		handle, ok := tabs.Handle(id)
		if !ok {
			continue
		}
		tabs.SetHandle(id, nil)
		if uc.content != nil {
			uc.content.Release(ctx, handle)
		}
	}
}

// Switch changes the active tab. Unknown IDs are ignored.
func (uc *ManageTabsUseCase) Switch(ctx context.Context, tabs *entity.TabList, tabID entity.TabID) bool {
	log := logging.FromContext(ctx)
	if tabs == nil {
		return false
	}

	oldActive := tabs.ActiveTabID
	if !tabs.Switch(tabID) {
		log.Debug().Str("tab_id", string(tabID)).Msg("switch: tab not found")
		return false
	}

	log.Debug().
		Str("from", string(oldActive)).
		Str("to", string(tabID)).
		Msg("tab switched")
	return true
}

// GetNext returns the tab ID next to the active one in the given direction, wrapping around.
// direction: 1 for next, -1 for previous.
func (uc *ManageTabsUseCase) GetNext(tabs *entity.TabList, direction int) entity.TabID {
	if tabs == nil || tabs.Count() == 0 {
		return ""
	}

	current := tabs.IndexOf(tabs.ActiveTabID)
	if current < 0 {
		return tabs.Tabs[0].ID
	}

	n := tabs.Count()
	next := ((current+direction)%n + n) % n
	return tabs.Tabs[next].ID
}

// SwitchNext switches to the next tab (wraps around).
func (uc *ManageTabsUseCase) SwitchNext(ctx context.Context, tabs *entity.TabList) bool {
	nextID := uc.GetNext(tabs, 1)
	if nextID == "" || nextID == tabs.ActiveTabID {
		return false
	}
	return uc.Switch(ctx, tabs, nextID)
}

// SwitchPrevious switches to the previous tab (wraps around).
func (uc *ManageTabsUseCase) SwitchPrevious(ctx context.Context, tabs *entity.TabList) bool {
	prevID := uc.GetNext(tabs, -1)
	if prevID == "" || prevID == tabs.ActiveTabID {
		return false
	}
	return uc.Switch(ctx, tabs, prevID)
}

// Reorder moves dragged next to destination within one tab list.
func (uc *ManageTabsUseCase) Reorder(ctx context.Context, tabs *entity.TabList, draggedID, destinationID entity.TabID, after bool) bool {
	log := logging.FromContext(ctx)
	if tabs == nil {
		return false
	}

	var moved bool
	if after {
		moved = tabs.MoveAfter(draggedID, destinationID)
	} else {
		moved = tabs.MoveBefore(draggedID, destinationID)
	}
	if !moved {
		log.Debug().
			Str("dragged", string(draggedID)).
			Str("destination", string(destinationID)).
			Msg("reorder: nothing to move")
		return false
	}

	log.Debug().
		Str("dragged", string(draggedID)).
		Str("destination", string(destinationID)).
		Bool("after", after).
		Msg("tab reordered")
	return true
}

// Navigate points a tab at user input, resolving it to a URL or a search.
func (uc *ManageTabsUseCase) Navigate(ctx context.Context, tabs *entity.TabList, tabID entity.TabID, target string) bool {
	log := logging.FromContext(ctx)
	if tabs == nil || target == "" {
		return false
	}
	if !tabs.SetURL(tabID, target) {
		log.Debug().Str("tab_id", string(tabID)).Msg("navigate: tab not found")
		return false
	}

	if uc.content != nil {
		if handle, ok := tabs.Handle(tabID); ok {
			if err := uc.content.Load(ctx, handle, target); err != nil {
				log.Warn().Err(err).Str("url", logging.TruncateURL(target, 80)).Msg("navigate: load failed")
			}
		} else {
			tab := tabs.Find(tabID)
			uc.attachContent(ctx, tabs, tab)
		}
	}

	log.Debug().
		Str("tab_id", string(tabID)).
		Str("url", logging.TruncateURL(target, 80)).
		Msg("tab navigated")
	return true
}

// ReopenLastClosed recreates the most recently closed tab in tabs.
// Returns nil when nothing was closed.
func (uc *ManageTabsUseCase) ReopenLastClosed(ctx context.Context, tabs *entity.TabList) (*entity.Tab, error) {
	log := logging.FromContext(ctx)
	if tabs == nil {
		return nil, fmt.Errorf("tab list is required")
	}

	entry, ok := uc.closed.Pop()
	if !ok {
		log.Debug().Msg("reopen: no closed tabs")
		return nil, nil
	}
	uc.persistClosedTabs(ctx)

	out, err := uc.Create(ctx, CreateTabInput{
		TabList:    tabs,
		InitialURL: entry.URL,
		Title:      entry.Title,
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("url", logging.TruncateURL(entry.URL, 80)).
		Msg("closed tab reopened")
	return out.Tab, nil
}

// ClosedTabs returns the closed-tab ring, most recent first.
func (uc *ManageTabsUseCase) ClosedTabs() []entity.ClosedTab {
	return uc.closed.List()
}

// LoadClosedTabs restores the closed-tab ring from the key-value store.
// Missing or unreadable data leaves the ring empty.
func (uc *ManageTabsUseCase) LoadClosedTabs(ctx context.Context) {
	log := logging.FromContext(ctx)
	if uc.kv == nil {
		return
	}

	data, err := uc.kv.Load(ctx, closedTabsKey)
	if err != nil {
		log.Warn().Err(err).Msg("failed to load closed tabs")
		return
	}
	if len(data) == 0 {
		return
	}

	entries, err := entity.UnmarshalClosedTabs(data)
	if err != nil {
		log.Warn().Err(err).Msg("discarding unreadable closed tabs")
		return
	}
	uc.closed.Reset(entries)
	log.Debug().Int("count", uc.closed.Len()).Msg("closed tabs loaded")
}

func (uc *ManageTabsUseCase) persistClosedTabs(ctx context.Context) {
	if uc.kv == nil {
		return
	}
	log := logging.FromContext(ctx)

	data, err := entity.MarshalClosedTabs(uc.closed)
	if err != nil {
		log.Warn().Err(err).Msg("failed to encode closed tabs")
		return
	}
	if err := uc.kv.Save(ctx, closedTabsKey, data); err != nil {
		log.Warn().Err(err).Msg("failed to persist closed tabs")
	}
}

// SaveSession snapshots a window's tabs into the key-value store.
// The snapshot is also kept as the most recent session.
func (uc *ManageTabsUseCase) SaveSession(ctx context.Context, windowID entity.WindowID, tabs *entity.TabList) error {
	if uc.kv == nil {
		return nil
	}
	log := logging.FromContext(ctx)

	state := entity.SnapshotFromTabList(windowID, tabs)
	data, err := entity.MarshalSessionState(state)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := uc.kv.Save(ctx, sessionKey(windowID), data); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	if err := uc.kv.Save(ctx, defaultWindowSession, data); err != nil {
		return fmt.Errorf("failed to save last session: %w", err)
	}

	log.Debug().
		Int64("window_id", int64(windowID)).
		Int("tabs", len(state.Tabs)).
		Msg("session saved")
	return nil
}

// RestoreLastSession rebuilds the most recently saved window's tabs with fresh IDs.
// Returns nil when no session was saved.
func (uc *ManageTabsUseCase) RestoreLastSession(ctx context.Context) (*entity.TabList, error) {
	if uc.kv == nil {
		return nil, nil
	}

	data, err := uc.kv.Load(ctx, defaultWindowSession)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	state, err := entity.UnmarshalSessionState(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}

	tabs := entity.TabListFromSnapshot(state, uc.idGenerator)
	for _, tab := range tabs.Tabs {
		uc.attachContent(ctx, tabs, tab)
	}

	logging.FromContext(ctx).Info().
		Int("tabs", tabs.Count()).
		Msg("session restored")
	return tabs, nil
}

// ForgetSession removes a closed window's snapshot.
func (uc *ManageTabsUseCase) ForgetSession(ctx context.Context, windowID entity.WindowID) error {
	if uc.kv == nil {
		return nil
	}
	if err := uc.kv.Delete(ctx, sessionKey(windowID)); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func sessionKey(windowID entity.WindowID) string {
	return sessionKeyPrefix + strconv.FormatInt(int64(windowID), 10)
}
