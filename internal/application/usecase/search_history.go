package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/bnema/voyage/internal/domain/entity"
	"github.com/bnema/voyage/internal/domain/repository"
	"github.com/bnema/voyage/internal/logging"
)

// SearchHistoryUseCase handles history recording, search and retrieval.
type SearchHistoryUseCase struct {
	historyRepo repository.HistoryRepository
}

// NewSearchHistoryUseCase creates a new history search use case.
func NewSearchHistoryUseCase(historyRepo repository.HistoryRepository) *SearchHistoryUseCase {
	return &SearchHistoryUseCase{
		historyRepo: historyRepo,
	}
}

// SearchInput contains search parameters.
type SearchInput struct {
	Query string
	Limit int
}

// SearchOutput contains search results.
type SearchOutput struct {
	Entries []*entity.HistoryEntry
}

// Search returns entries whose URL or title contains the query, newest first.
func (uc *SearchHistoryUseCase) Search(ctx context.Context, input SearchInput) (*SearchOutput, error) {
	log := logging.FromContext(ctx)

	if input.Query == "" {
		return &SearchOutput{Entries: []*entity.HistoryEntry{}}, nil
	}

	limit := input.Limit
	if limit <= 0 {
		limit = 20 // Default limit
	}

	entries, err := uc.historyRepo.Search(ctx, input.Query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search history: %w", err)
	}

	log.Debug().
		Str("query", input.Query).
		Int("matches", len(entries)).
		Msg("history search completed")

	return &SearchOutput{Entries: entries}, nil
}

// GetRecent retrieves recent history entries with pagination.
func (uc *SearchHistoryUseCase) GetRecent(ctx context.Context, limit, offset int) ([]*entity.HistoryEntry, error) {
	if limit <= 0 {
		limit = 50 // Default limit
	}

	entries, err := uc.historyRepo.GetRecent(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent history: %w", err)
	}

	return entries, nil
}

// RecordVisit records a finished page load. Internal pages are not recorded.
func (uc *SearchHistoryUseCase) RecordVisit(ctx context.Context, tab *entity.Tab) error {
	log := logging.FromContext(ctx)

	if tab == nil || tab.URL == "" || tab.IsSpecial() {
		return nil
	}

	entry := entity.NewVisit(tab.URL, tab.Title, time.Now())
	if err := uc.historyRepo.Save(ctx, entry); err != nil {
		return fmt.Errorf("failed to record visit: %w", err)
	}

	log.Debug().
		Str("url", logging.TruncateURL(tab.URL, 80)).
		Msg("visit recorded")
	return nil
}

// ClearAll deletes all history entries.
func (uc *SearchHistoryUseCase) ClearAll(ctx context.Context) error {
	log := logging.FromContext(ctx)
	log.Debug().Msg("clearing all history")

	if err := uc.historyRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to clear all history: %w", err)
	}

	log.Info().Msg("all history cleared")
	return nil
}

// Delete removes a single history entry by ID.
func (uc *SearchHistoryUseCase) Delete(ctx context.Context, id int64) error {
	log := logging.FromContext(ctx)

	if err := uc.historyRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete history entry: %w", err)
	}

	log.Debug().Int64("id", id).Msg("history entry deleted")
	return nil
}
