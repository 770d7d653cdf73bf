package port

import "context"

// SearchSuggester fetches search-engine completions for a partial query.
type SearchSuggester interface {
	// Suggest returns completions for query. An empty list is a valid answer.
	Suggest(ctx context.Context, query string) ([]string, error)
}
