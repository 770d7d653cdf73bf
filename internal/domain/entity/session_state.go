package entity

import (
	"encoding/json"
	"fmt"
	"time"
)

// SessionStateVersion is the current schema version for window session state.
// Increment when making breaking changes to the serialization format.
const SessionStateVersion = 1

// ClosedTabsVersion is the current schema version for the persisted closed-tab ring.
const ClosedTabsVersion = 1

// SessionState is a snapshot of one window's tabs.
// This is serialized to JSON and stored in the key-value store.
type SessionState struct {
	Version        int           `json:"version"`
	WindowID       WindowID      `json:"window_id"`
	Tabs           []TabSnapshot `json:"tabs"`
	ActiveTabIndex int           `json:"active_tab_index"`
	SavedAt        time.Time     `json:"saved_at"`
}

// TabSnapshot captures the state of a single tab.
type TabSnapshot struct {
	ID    TabID  `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// SnapshotFromTabList creates a SessionState from a live TabList.
func SnapshotFromTabList(windowID WindowID, tabs *TabList) *SessionState {
	state := &SessionState{
		Version:  SessionStateVersion,
		WindowID: windowID,
		Tabs:     []TabSnapshot{},
		SavedAt:  time.Now(),
	}
	if tabs == nil {
		return state
	}

	for i, tab := range tabs.Tabs {
		if tab.ID == tabs.ActiveTabID {
			state.ActiveTabIndex = i
		}
		state.Tabs = append(state.Tabs, TabSnapshot{
			ID:    tab.ID,
			Title: tab.Title,
			URL:   tab.URL,
		})
	}
	return state
}

// IDGenerator is a function that generates unique IDs.
type IDGenerator func() string

// TabListFromSnapshot reconstructs a TabList from a SessionState snapshot.
// Restored tabs get fresh IDs: the old ones may still be alive in another window.
func TabListFromSnapshot(state *SessionState, idGen IDGenerator) *TabList {
	tabs := NewTabList()
	if state == nil {
		return tabs
	}

	for i, snap := range state.Tabs {
		tab := NewTab(TabID(idGen()), TabState{URL: snap.URL, Title: snap.Title})
		tabs.Tabs = append(tabs.Tabs, tab)
		if i == state.ActiveTabIndex {
			tabs.ActiveTabID = tab.ID
		}
	}

	if tabs.ActiveTabID == "" && len(tabs.Tabs) > 0 {
		tabs.ActiveTabID = tabs.Tabs[0].ID
	}
	return tabs
}

// MarshalSessionState encodes a session snapshot.
func MarshalSessionState(state *SessionState) ([]byte, error) {
	if state == nil {
		return nil, fmt.Errorf("session state cannot be nil")
	}
	return json.Marshal(state)
}

// UnmarshalSessionState decodes a session snapshot, rejecting newer schema versions.
func UnmarshalSessionState(data []byte) (*SessionState, error) {
	var state SessionState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decode session state: %w", err)
	}
	if state.Version > SessionStateVersion {
		return nil, fmt.Errorf("session state version %d is newer than supported %d", state.Version, SessionStateVersion)
	}
	return &state, nil
}

type closedTabsDocument struct {
	Version int         `json:"version"`
	Entries []ClosedTab `json:"entries"`
}

// MarshalClosedTabs encodes the closed-tab ring, most recent first.
func MarshalClosedTabs(ring *ClosedTabRing) ([]byte, error) {
	doc := closedTabsDocument{Version: ClosedTabsVersion, Entries: []ClosedTab{}}
	if ring != nil {
		doc.Entries = ring.List()
	}
	return json.Marshal(doc)
}

// UnmarshalClosedTabs decodes closed-tab records, most recent first.
func UnmarshalClosedTabs(data []byte) ([]ClosedTab, error) {
	var doc closedTabsDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode closed tabs: %w", err)
	}
	if doc.Version > ClosedTabsVersion {
		return nil, fmt.Errorf("closed tabs version %d is newer than supported %d", doc.Version, ClosedTabsVersion)
	}
	return doc.Entries, nil
}
