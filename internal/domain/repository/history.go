// Package repository defines persistence boundaries for domain entities.
package repository

import (
	"context"

	"github.com/bnema/voyage/internal/domain/entity"
)

// HistoryRepository defines operations for browsing history persistence.
type HistoryRepository interface {
	// Save records a visit (upsert by URL).
	Save(ctx context.Context, entry *entity.HistoryEntry) error

	// FindByURL retrieves a history entry by its URL.
	FindByURL(ctx context.Context, url string) (*entity.HistoryEntry, error)

	// Search returns entries whose URL or title contains the query,
	// most recently visited first. The order is a best effort, not a contract.
	Search(ctx context.Context, query string, limit int) ([]*entity.HistoryEntry, error)

	// GetRecent retrieves recent history entries with pagination.
	GetRecent(ctx context.Context, limit, offset int) ([]*entity.HistoryEntry, error)

	// Delete removes a single history entry by ID.
	Delete(ctx context.Context, id int64) error

	// DeleteAll removes all history entries.
	DeleteAll(ctx context.Context) error
}
