// Package entity contains domain entities representing core business concepts.
// These entities are pure Go types with no infrastructure dependencies.
package entity

import (
	"time"

	"github.com/bnema/voyage/internal/domain/url"
)

// TabID uniquely identifies a tab.
// The ID is stable for the tab's whole life, including moves between windows.
type TabID string

// ContentHandle is an opaque reference to the live web view of a tab.
// The core only stores, moves and drops handles; it never looks inside.
type ContentHandle any

// SecurityLevel classifies the connection of the page shown in a tab.
type SecurityLevel int

const (
	SecurityUnknown SecurityLevel = iota
	SecurityInsecure
	SecuritySecure
	SecurityInternal
)

// String returns the lowercase name of the level.
func (s SecurityLevel) String() string {
	switch s {
	case SecurityInsecure:
		return "insecure"
	case SecuritySecure:
		return "secure"
	case SecurityInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// SecurityInfo carries what the engine reported about the page certificate.
type SecurityInfo struct {
	Level      SecurityLevel
	Issuer     string
	Subject    string
	ValidUntil time.Time
}

// ReaderState tracks reader mode for a tab.
type ReaderState struct {
	Available bool
	Active    bool
}

// Thumbnail is a cached preview image of a tab.
type Thumbnail struct {
	Data       []byte
	Width      int
	Height     int
	CapturedAt time.Time
}

// TabState describes the initial content of a new tab.
type TabState struct {
	URL   string
	Title string
}

// Tab represents one browsing context.
type Tab struct {
	ID           TabID
	Title        string
	URL          string
	IsLoading    bool
	CanGoBack    bool
	CanGoForward bool
	Security     SecurityInfo
	Thumbnail    *Thumbnail
	Reader       *ReaderState
	CreatedAt    time.Time
}

// NewTab creates a tab with the given ID and initial state.
// An empty state produces a blank tab.
func NewTab(id TabID, state TabState) *Tab {
	tabURL := state.URL
	if tabURL == "" {
		tabURL = url.BlankURL
	}
	tab := &Tab{
		ID:        id,
		Title:     state.Title,
		URL:       tabURL,
		CreatedAt: time.Now(),
	}
	if url.IsInternal(tabURL) {
		tab.Security.Level = SecurityInternal
	}
	return tab
}

// DisplayTitle returns the title shown in the tab bar.
// Falls back to the URL, then "New Tab".
func (t *Tab) DisplayTitle() string {
	if t.Title != "" {
		return t.Title
	}
	if t.URL != "" && t.URL != url.BlankURL {
		return t.URL
	}
	return "New Tab"
}

// IsSpecial reports whether the tab shows an internal or about: page.
func (t *Tab) IsSpecial() bool {
	return url.IsSpecial(t.URL)
}

// SameForDisplay compares the fields the tab bar renders.
// The thumbnail is left out so a fresh capture does not force a redraw.
func (t *Tab) SameForDisplay(other *Tab) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.ID == other.ID &&
		t.Title == other.Title &&
		t.URL == other.URL &&
		t.IsLoading == other.IsLoading
}

// Clone returns a new record carrying the same identity and state.
// Transfers hand a clone to the destination window; the ID is the identity, not the pointer.
func (t *Tab) Clone() *Tab {
	c := *t
	if t.Thumbnail != nil {
		thumb := *t.Thumbnail
		c.Thumbnail = &thumb
	}
	if t.Reader != nil {
		reader := *t.Reader
		c.Reader = &reader
	}
	return &c
}
