package entity

import "time"

// DefaultClosedTabCapacity bounds the closed-tab history when none is configured.
const DefaultClosedTabCapacity = 25

// ClosedTab records a recently closed tab for reopening.
type ClosedTab struct {
	TabID    TabID     `json:"tab_id"`
	Title    string    `json:"title"`
	URL      string    `json:"url"`
	ClosedAt time.Time `json:"closed_at"`
}

// ClosedTabFromTab builds a record for a closing tab.
// Special pages and tabs without a URL are not worth reopening.
func ClosedTabFromTab(tab *Tab, now time.Time) (ClosedTab, bool) {
	if tab == nil || tab.URL == "" || tab.IsSpecial() {
		return ClosedTab{}, false
	}
	return ClosedTab{
		TabID:    tab.ID,
		Title:    tab.Title,
		URL:      tab.URL,
		ClosedAt: now,
	}, true
}

// ClosedTabRing is a bounded most-recent-first list of closed tabs,
// holding at most one record per URL.
type ClosedTabRing struct {
	entries  []ClosedTab
	capacity int
}

// NewClosedTabRing creates a ring holding at most capacity records.
func NewClosedTabRing(capacity int) *ClosedTabRing {
	if capacity <= 0 {
		capacity = DefaultClosedTabCapacity
	}
	return &ClosedTabRing{
		entries:  make([]ClosedTab, 0, capacity),
		capacity: capacity,
	}
}

// Push records a closed tab at the front, replacing an older record for the same URL.
func (r *ClosedTabRing) Push(entry ClosedTab) {
	if entry.URL == "" {
		return
	}
	kept := r.entries[:0]
	for _, e := range r.entries {
		if e.URL != entry.URL {
			kept = append(kept, e)
		}
	}
	r.entries = append([]ClosedTab{entry}, kept...)
	if len(r.entries) > r.capacity {
		r.entries = r.entries[:r.capacity]
	}
}

// Pop removes and returns the most recently closed tab.
func (r *ClosedTabRing) Pop() (ClosedTab, bool) {
	if len(r.entries) == 0 {
		return ClosedTab{}, false
	}
	entry := r.entries[0]
	r.entries = r.entries[1:]
	return entry, true
}

// List returns a copy of the records, most recent first.
func (r *ClosedTabRing) List() []ClosedTab {
	out := make([]ClosedTab, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of records.
func (r *ClosedTabRing) Len() int {
	return len(r.entries)
}

// Capacity returns the maximum number of records.
func (r *ClosedTabRing) Capacity() int {
	return r.capacity
}

// Reset replaces the content, keeping order and dropping anything past capacity.
func (r *ClosedTabRing) Reset(entries []ClosedTab) {
	r.entries = r.entries[:0]
	for i := len(entries) - 1; i >= 0; i-- {
		r.Push(entries[i])
	}
}
