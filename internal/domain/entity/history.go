package entity

import "time"

// HistoryEntry is one URL in the browsing history, aggregated over visits.
// The store bumps VisitCount and LastVisited when the URL is saved again.
type HistoryEntry struct {
	ID          int64     `json:"id"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	VisitCount  int64     `json:"visit_count"`
	LastVisited time.Time `json:"last_visited"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewVisit is the entry for a first visit to url at time at.
func NewVisit(url, title string, at time.Time) *HistoryEntry {
	return &HistoryEntry{URL: url, Title: title, VisitCount: 1, LastVisited: at, CreatedAt: at}
}

// DisplayTitle falls back to the URL for pages without a title.
func (h *HistoryEntry) DisplayTitle() string {
	if h.Title == "" {
		return h.URL
	}
	return h.Title
}
