package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"

	"github.com/bnema/voyage/internal/logging"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

var setupGoose = sync.OnceValue(func() error {
	goose.SetBaseFS(migrationFS)
	goose.SetLogger(goose.NopLogger())
	return goose.SetDialect("sqlite3")
})

// migrate applies the embedded goose migrations db has not seen yet.
func migrate(ctx context.Context, db *sql.DB) error {
	if err := setupGoose(); err != nil {
		return fmt.Errorf("configure goose: %w", err)
	}

	// A fresh database reports an error or zero here.
	before, _ := goose.GetDBVersionContext(ctx, db)
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	after, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	log := logging.FromContext(ctx)
	if after != before {
		log.Info().Int64("from", before).Int64("to", after).Msg("schema migrated")
	} else {
		log.Debug().Int64("version", after).Msg("schema current")
	}
	return nil
}

// Version is the last migration applied to the store.
func (s *Store) Version(ctx context.Context) (int64, error) {
	if err := setupGoose(); err != nil {
		return 0, err
	}
	return goose.GetDBVersionContext(ctx, s.DB)
}
