package repository

import (
	"context"

	"github.com/bnema/voyage/internal/domain/entity"
)

// BookmarkRepository defines operations for bookmark persistence.
type BookmarkRepository interface {
	// Save creates or updates a bookmark.
	Save(ctx context.Context, b *entity.Bookmark) error

	// FindByURL retrieves a bookmark by its URL.
	FindByURL(ctx context.Context, url string) (*entity.Bookmark, error)

	// GetAll retrieves all bookmarks as a flat list.
	GetAll(ctx context.Context) ([]*entity.Bookmark, error)

	// Delete removes a bookmark by ID.
	Delete(ctx context.Context, id entity.BookmarkID) error
}
