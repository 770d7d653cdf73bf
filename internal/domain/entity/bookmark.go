package entity

import "time"

// BookmarkID uniquely identifies a bookmark.
type BookmarkID int64

// Bookmark represents a saved URL.
type Bookmark struct {
	ID        BookmarkID
	URL       string
	Title     string
	FolderRef string // empty = root level
	Position  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBookmark creates a new bookmark for a URL.
func NewBookmark(url, title string) *Bookmark {
	now := time.Now()
	return &Bookmark{
		URL:       url,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// InFolder returns true if this bookmark is in a folder.
func (b *Bookmark) InFolder() bool {
	return b.FolderRef != ""
}
