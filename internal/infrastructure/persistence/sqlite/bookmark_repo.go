package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/voyage/internal/domain/entity"
	"github.com/bnema/voyage/internal/domain/repository"
	"github.com/bnema/voyage/internal/logging"
)

const bookmarkColumns = `id, url, title, folder_ref, position, created_at, updated_at`

type bookmarkRepo struct {
	db  *sql.DB
	now func() time.Time
}

// NewBookmarkRepository creates a new SQLite-backed bookmark repository.
func NewBookmarkRepository(db *sql.DB) repository.BookmarkRepository {
	return &bookmarkRepo{db: db, now: time.Now}
}

// Save inserts a bookmark, or updates title and folder when its URL already exists.
// New bookmarks are appended at the end of their folder.
func (r *bookmarkRepo) Save(ctx context.Context, b *entity.Bookmark) error {
	log := logging.FromContext(ctx)
	log.Debug().Str("url", logging.TruncateURL(b.URL, logURLMaxLen)).Msg("saving bookmark")

	now := r.now()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO bookmarks (url, title, folder_ref, position, created_at, updated_at)
		VALUES (?, ?, ?, (SELECT COALESCE(MAX(position), -1) + 1 FROM bookmarks WHERE folder_ref = ?), ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			title = excluded.title,
			folder_ref = excluded.folder_ref,
			updated_at = excluded.updated_at
		RETURNING id, position`,
		b.URL, b.Title, b.FolderRef, b.FolderRef, toMillis(b.CreatedAt), toMillis(b.UpdatedAt),
	)
	var id int64
	if err := row.Scan(&id, &b.Position); err != nil {
		return fmt.Errorf("save bookmark: %w", err)
	}
	b.ID = entity.BookmarkID(id)
	return nil
}

func (r *bookmarkRepo) FindByURL(ctx context.Context, url string) (*entity.Bookmark, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+bookmarkColumns+` FROM bookmarks WHERE url = ?`, url)
	b, err := scanBookmark(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return b, nil
}

// GetAll returns every bookmark grouped by folder, root level first.
func (r *bookmarkRepo) GetAll(ctx context.Context) ([]*entity.Bookmark, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+bookmarkColumns+` FROM bookmarks
		ORDER BY folder_ref, position, id`)
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	defer rows.Close()

	bookmarks := make([]*entity.Bookmark, 0)
	for rows.Next() {
		b, err := scanBookmark(rows)
		if err != nil {
			return nil, err
		}
		bookmarks = append(bookmarks, b)
	}
	return bookmarks, rows.Err()
}

func (r *bookmarkRepo) Delete(ctx context.Context, id entity.BookmarkID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM bookmarks WHERE id = ?`, int64(id))
	return err
}

func scanBookmark(row rowScanner) (*entity.Bookmark, error) {
	var (
		b                entity.Bookmark
		id               int64
		created, updated int64
	)
	if err := row.Scan(&id, &b.URL, &b.Title, &b.FolderRef, &b.Position, &created, &updated); err != nil {
		return nil, err
	}
	b.ID = entity.BookmarkID(id)
	b.CreatedAt = fromMillis(created)
	b.UpdatedAt = fromMillis(updated)
	return &b, nil
}
