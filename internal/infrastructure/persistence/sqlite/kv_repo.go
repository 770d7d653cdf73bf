package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/voyage/internal/domain/repository"
	"github.com/bnema/voyage/internal/logging"
)

type keyValueRepo struct {
	db *sql.DB
}

// NewKeyValueRepository creates a blob store over the kv_store table.
// It backs the closed-tab ring and window session snapshots.
func NewKeyValueRepository(db *sql.DB) repository.KeyValueRepository {
	return &keyValueRepo{db: db}
}

// Load returns the blob stored under key, or nil when there is none.
func (r *keyValueRepo) Load(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", key, err)
	}
	return value, nil
}

func (r *keyValueRepo) Save(ctx context.Context, key string, value []byte) error {
	logging.FromContext(ctx).Debug().Str("key", key).Int("bytes", len(value)).Msg("saving kv entry")

	if value == nil {
		value = []byte{}
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, toMillis(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("save %q: %w", key, err)
	}
	return nil
}

func (r *keyValueRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM kv_store WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}
