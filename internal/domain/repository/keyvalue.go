package repository

import "context"

// KeyValueRepository stores opaque blobs by key (settings, closed tabs, window sessions).
type KeyValueRepository interface {
	// Load returns the blob for key, or nil when absent.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save stores the blob for key, replacing any previous value.
	Save(ctx context.Context, key string, value []byte) error

	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
}
