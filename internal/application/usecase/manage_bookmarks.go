package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/bnema/voyage/internal/domain/entity"
	"github.com/bnema/voyage/internal/domain/repository"
	"github.com/bnema/voyage/internal/domain/url"
	"github.com/bnema/voyage/internal/logging"
)

// ManageBookmarksUseCase handles bookmark operations.
type ManageBookmarksUseCase struct {
	bookmarkRepo repository.BookmarkRepository
}

// NewManageBookmarksUseCase creates a new bookmark management use case.
func NewManageBookmarksUseCase(bookmarkRepo repository.BookmarkRepository) *ManageBookmarksUseCase {
	return &ManageBookmarksUseCase{bookmarkRepo: bookmarkRepo}
}

// AddBookmarkInput contains parameters for adding a bookmark.
type AddBookmarkInput struct {
	URL       string
	Title     string
	FolderRef string
}

// Add creates a bookmark. A URL that is already bookmarked returns the existing one.
func (uc *ManageBookmarksUseCase) Add(ctx context.Context, input AddBookmarkInput) (*entity.Bookmark, error) {
	log := logging.FromContext(ctx)

	target := url.Normalize(input.URL)
	if target == "" {
		return nil, fmt.Errorf("bookmark url is required")
	}
	log.Debug().Str("url", target).Str("title", input.Title).Msg("adding bookmark")

	existing, err := uc.bookmarkRepo.FindByURL(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing bookmark: %w", err)
	}
	if existing != nil {
		log.Debug().Str("url", target).Msg("URL already bookmarked")
		return existing, nil
	}

	b := entity.NewBookmark(target, strings.TrimSpace(input.Title))
	b.FolderRef = input.FolderRef
	if err := uc.bookmarkRepo.Save(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to save bookmark: %w", err)
	}

	log.Info().Str("url", target).Int64("id", int64(b.ID)).Msg("bookmark added")
	return b, nil
}

// BookmarkTab bookmarks the page a tab shows. Internal pages are skipped.
func (uc *ManageBookmarksUseCase) BookmarkTab(ctx context.Context, tab *entity.Tab) (*entity.Bookmark, error) {
	if tab == nil || tab.IsSpecial() {
		return nil, nil
	}
	return uc.Add(ctx, AddBookmarkInput{URL: tab.URL, Title: tab.Title})
}

// List returns all bookmarks, optionally restricted to one folder.
func (uc *ManageBookmarksUseCase) List(ctx context.Context, folderRef string) ([]*entity.Bookmark, error) {
	all, err := uc.bookmarkRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}
	if folderRef == "" {
		return all, nil
	}

	out := make([]*entity.Bookmark, 0, len(all))
	for _, b := range all {
		if b.FolderRef == folderRef {
			out = append(out, b)
		}
	}
	return out, nil
}

// Remove deletes a bookmark by ID.
func (uc *ManageBookmarksUseCase) Remove(ctx context.Context, id entity.BookmarkID) error {
	log := logging.FromContext(ctx)

	if err := uc.bookmarkRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete bookmark: %w", err)
	}

	log.Info().Int64("id", int64(id)).Msg("bookmark removed")
	return nil
}

// RemoveByURL deletes a bookmark by its URL. Unknown URLs are ignored.
func (uc *ManageBookmarksUseCase) RemoveByURL(ctx context.Context, rawURL string) error {
	log := logging.FromContext(ctx)

	b, err := uc.bookmarkRepo.FindByURL(ctx, url.Normalize(rawURL))
	if err != nil {
		return fmt.Errorf("failed to find bookmark: %w", err)
	}
	if b == nil {
		log.Debug().Str("url", rawURL).Msg("bookmark not found")
		return nil
	}
	return uc.Remove(ctx, b.ID)
}

// IsBookmarked reports whether a URL is bookmarked.
func (uc *ManageBookmarksUseCase) IsBookmarked(ctx context.Context, rawURL string) (bool, error) {
	b, err := uc.bookmarkRepo.FindByURL(ctx, url.Normalize(rawURL))
	if err != nil {
		return false, fmt.Errorf("failed to find bookmark: %w", err)
	}
	return b != nil, nil
}
