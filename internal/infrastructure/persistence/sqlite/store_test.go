package sqlite_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/voyage/internal/infrastructure/persistence/sqlite"
)

func TestOpen_MigratesNewDatabase(t *testing.T) {
	ctx := testCtx()
	path := filepath.Join(t.TempDir(), "profile", "voyage.db")

	store, err := sqlite.Open(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	assert.Equal(t, path, store.Path())
	assert.FileExists(t, path)

	version, err := store.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), version)

	var timeout int
	require.NoError(t, store.DB.QueryRowContext(ctx, "PRAGMA busy_timeout").Scan(&timeout))
	assert.Equal(t, 5000, timeout)
}

func TestOpen_Errors(t *testing.T) {
	ctx := testCtx()

	_, err := sqlite.Open(ctx, "")
	assert.Error(t, err)

	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))
	_, err = sqlite.Open(ctx, filepath.Join(blocker, "sub", "voyage.db"))
	assert.Error(t, err)
}

func TestStore_CloseNil(t *testing.T) {
	var store *sqlite.Store
	assert.NoError(t, store.Close())
}
