package entity

import "github.com/bnema/voyage/internal/domain/url"

// TabList manages the ordered tabs of one window, its active tab and
// the live content handles owned by those tabs.
//
// TabList has no internal locking. All calls must come from the UI execution context.
type TabList struct {
	Tabs        []*Tab
	ActiveTabID TabID

	handles map[TabID]ContentHandle
}

// NewTabList creates an empty tab list.
func NewTabList() *TabList {
	return &TabList{
		Tabs:    make([]*Tab, 0),
		handles: make(map[TabID]ContentHandle),
	}
}

// Add appends a tab and makes it active.
// A tab whose ID is already present is only activated.
func (tl *TabList) Add(tab *Tab) {
	if tab == nil {
		return
	}
	if tl.IndexOf(tab.ID) < 0 {
		tl.Tabs = append(tl.Tabs, tab)
	}
	tl.ActiveTabID = tab.ID
}

// Find returns a tab by ID.
func (tl *TabList) Find(id TabID) *Tab {
	if i := tl.IndexOf(id); i >= 0 {
		return tl.Tabs[i]
	}
	return nil
}

// IndexOf returns the position of a tab, or -1.
func (tl *TabList) IndexOf(id TabID) int {
	for i, tab := range tl.Tabs {
		if tab.ID == id {
			return i
		}
	}
	return -1
}

// Contains reports whether a tab with the ID is in the list.
func (tl *TabList) Contains(id TabID) bool {
	return tl.IndexOf(id) >= 0
}

// ActiveTab returns the currently active tab.
func (tl *TabList) ActiveTab() *Tab {
	if tl.ActiveTabID == "" {
		return nil
	}
	return tl.Find(tl.ActiveTabID)
}

// Count returns the number of tabs.
func (tl *TabList) Count() int {
	return len(tl.Tabs)
}

// IDs returns tab IDs in display order.
func (tl *TabList) IDs() []TabID {
	ids := make([]TabID, len(tl.Tabs))
	for i, tab := range tl.Tabs {
		ids[i] = tab.ID
	}
	return ids
}

// Handle returns the content handle owned by a tab.
func (tl *TabList) Handle(id TabID) (ContentHandle, bool) {
	h, ok := tl.handles[id]
	return h, ok
}

// SetHandle attaches a content handle to a tab present in the list.
// A nil handle clears the entry.
func (tl *TabList) SetHandle(id TabID, handle ContentHandle) bool {
	if !tl.Contains(id) {
		return false
	}
	tl.ensureHandles()
	if handle == nil {
		delete(tl.handles, id)
		return true
	}
	tl.handles[id] = handle
	return true
}

// HandleCount returns the number of live content handles.
func (tl *TabList) HandleCount() int {
	return len(tl.handles)
}

// Switch sets the active tab. Unknown IDs are ignored.
func (tl *TabList) Switch(id TabID) bool {
	if !tl.Contains(id) {
		return false
	}
	tl.ActiveTabID = id
	return true
}

// Remove takes a tab and its handle out of the list.
// When the active tab goes, the tab that slid into its slot becomes active,
// or the new last tab when the removed one was last.
func (tl *TabList) Remove(id TabID) (*Tab, ContentHandle, bool) {
	i := tl.IndexOf(id)
	if i < 0 {
		return nil, nil, false
	}
	tab := tl.Tabs[i]
	tl.Tabs = append(tl.Tabs[:i], tl.Tabs[i+1:]...)

	handle := tl.handles[id]
	delete(tl.handles, id)

	if tl.ActiveTabID == id {
		switch {
		case len(tl.Tabs) == 0:
			tl.ActiveTabID = ""
		case i < len(tl.Tabs):
			tl.ActiveTabID = tl.Tabs[i].ID
		default:
			tl.ActiveTabID = tl.Tabs[len(tl.Tabs)-1].ID
		}
	}
	return tab, handle, true
}

// Detach removes a tab for transfer to another window.
// The only tab can be detached only when allowLastTab is set.
func (tl *TabList) Detach(id TabID, allowLastTab bool) (*Tab, ContentHandle, bool) {
	if !tl.Contains(id) {
		return nil, nil, false
	}
	if tl.Count() == 1 && !allowLastTab {
		return nil, nil, false
	}
	return tl.Remove(id)
}

// MoveBefore places dragged immediately before destination.
func (tl *TabList) MoveBefore(draggedID, destinationID TabID) bool {
	return tl.moveRelative(draggedID, destinationID, false)
}

// MoveAfter places dragged immediately after destination.
func (tl *TabList) MoveAfter(draggedID, destinationID TabID) bool {
	return tl.moveRelative(draggedID, destinationID, true)
}

func (tl *TabList) moveRelative(draggedID, destinationID TabID, after bool) bool {
	if draggedID == destinationID {
		return false
	}
	from := tl.IndexOf(draggedID)
	if from < 0 || !tl.Contains(destinationID) {
		return false
	}
	tab := tl.Tabs[from]
	tl.Tabs = append(tl.Tabs[:from], tl.Tabs[from+1:]...)

	// Look the destination up again: the removal shifted it when it sat after the source.
	to := tl.IndexOf(destinationID)
	if after {
		to++
	}
	tl.insertAt(to, tab)
	return true
}

// Move moves a tab to a new position.
func (tl *TabList) Move(id TabID, newPos int) bool {
	if newPos < 0 || newPos >= len(tl.Tabs) {
		return false
	}
	oldPos := tl.IndexOf(id)
	if oldPos < 0 {
		return false
	}
	tab := tl.Tabs[oldPos]
	tl.Tabs = append(tl.Tabs[:oldPos], tl.Tabs[oldPos+1:]...)
	tl.insertAt(newPos, tab)
	return true
}

// InsertBefore inserts a tab before destination, or at the end when destination is unknown.
// The inserted tab becomes active. A tab already in the list is reordered instead.
func (tl *TabList) InsertBefore(tab *Tab, handle ContentHandle, destinationID TabID) {
	tl.insertRelative(tab, handle, destinationID, false)
}

// InsertAfter inserts a tab after destination, or at the end when destination is unknown.
// The inserted tab becomes active. A tab already in the list is reordered instead.
func (tl *TabList) InsertAfter(tab *Tab, handle ContentHandle, destinationID TabID) {
	tl.insertRelative(tab, handle, destinationID, true)
}

func (tl *TabList) insertRelative(tab *Tab, handle ContentHandle, destinationID TabID, after bool) {
	if tab == nil {
		return
	}
	if tl.Contains(tab.ID) {
		tl.moveRelative(tab.ID, destinationID, after)
	} else {
		to := tl.IndexOf(destinationID)
		switch {
		case to < 0:
			to = len(tl.Tabs)
		case after:
			to++
		}
		tl.insertAt(to, tab)
	}
	if handle != nil {
		tl.ensureHandles()
		tl.handles[tab.ID] = handle
	}
	tl.ActiveTabID = tab.ID
}

func (tl *TabList) insertAt(pos int, tab *Tab) {
	if pos > len(tl.Tabs) {
		pos = len(tl.Tabs)
	}
	tl.Tabs = append(tl.Tabs, nil)
	copy(tl.Tabs[pos+1:], tl.Tabs[pos:])
	tl.Tabs[pos] = tab
}

func (tl *TabList) ensureHandles() {
	if tl.handles == nil {
		tl.handles = make(map[TabID]ContentHandle)
	}
}

// UpdateTitle sets a tab's title.
func (tl *TabList) UpdateTitle(id TabID, title string) bool {
	tab := tl.Find(id)
	if tab == nil {
		return false
	}
	tab.Title = title
	return true
}

// UpdateURL applies an engine-reported URL change.
// Tabs showing an internal page keep their address: the page owns it.
func (tl *TabList) UpdateURL(id TabID, newURL string) bool {
	tab := tl.Find(id)
	if tab == nil || url.IsInternal(tab.URL) {
		return false
	}
	tab.URL = newURL
	return true
}

// SetURL points a tab at a new address on behalf of the user.
// Unlike UpdateURL it also replaces internal addresses.
func (tl *TabList) SetURL(id TabID, newURL string) bool {
	tab := tl.Find(id)
	if tab == nil {
		return false
	}
	tab.URL = newURL
	if url.IsInternal(newURL) {
		tab.Security = SecurityInfo{Level: SecurityInternal}
	} else if tab.Security.Level == SecurityInternal {
		tab.Security = SecurityInfo{}
	}
	return true
}

// UpdateLoadingState sets a tab's loading flag.
func (tl *TabList) UpdateLoadingState(id TabID, loading bool) bool {
	tab := tl.Find(id)
	if tab == nil {
		return false
	}
	tab.IsLoading = loading
	return true
}

// UpdateNavigationFlags sets a tab's back/forward availability.
func (tl *TabList) UpdateNavigationFlags(id TabID, canGoBack, canGoForward bool) bool {
	tab := tl.Find(id)
	if tab == nil {
		return false
	}
	tab.CanGoBack = canGoBack
	tab.CanGoForward = canGoForward
	return true
}

// UpdateSecurityInfo sets a tab's security classification.
func (tl *TabList) UpdateSecurityInfo(id TabID, info SecurityInfo) bool {
	tab := tl.Find(id)
	if tab == nil {
		return false
	}
	tab.Security = info
	return true
}

// UpdateThumbnail replaces a tab's cached thumbnail.
func (tl *TabList) UpdateThumbnail(id TabID, thumb *Thumbnail) bool {
	tab := tl.Find(id)
	if tab == nil {
		return false
	}
	tab.Thumbnail = thumb
	return true
}

// UpdateReaderState sets a tab's reader mode state.
func (tl *TabList) UpdateReaderState(id TabID, state *ReaderState) bool {
	tab := tl.Find(id)
	if tab == nil {
		return false
	}
	tab.Reader = state
	return true
}
