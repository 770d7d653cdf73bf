package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/voyage/internal/domain/entity"
	"github.com/bnema/voyage/internal/domain/repository"
	"github.com/bnema/voyage/internal/logging"
)

const logURLMaxLen = 60

const historyColumns = `id, url, title, visit_count, last_visited, created_at`

type historyRepo struct {
	db  *sql.DB
	now func() time.Time
}

// NewHistoryRepository creates a new SQLite-backed history repository.
func NewHistoryRepository(db *sql.DB) repository.HistoryRepository {
	return &historyRepo{db: db, now: time.Now}
}

// Save records a visit. A URL seen before keeps its row: the visit count grows,
// the visit time moves forward and a non-empty title replaces the stored one.
func (r *historyRepo) Save(ctx context.Context, entry *entity.HistoryEntry) error {
	log := logging.FromContext(ctx)
	log.Debug().Str("url", logging.TruncateURL(entry.URL, logURLMaxLen)).Msg("saving history entry")

	visited := entry.LastVisited
	if visited.IsZero() {
		visited = r.now()
	}

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO history (url, title, visit_count, last_visited, created_at, search_key)
		VALUES (?, ?, 1, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			title = CASE WHEN excluded.title != '' THEN excluded.title ELSE history.title END,
			search_key = CASE WHEN excluded.title != '' THEN excluded.search_key ELSE history.search_key END,
			visit_count = history.visit_count + 1,
			last_visited = excluded.last_visited
		RETURNING id, visit_count`,
		entry.URL, entry.Title, toMillis(visited), toMillis(visited), searchKey(entry.URL, entry.Title),
	)
	if err := row.Scan(&entry.ID, &entry.VisitCount); err != nil {
		return fmt.Errorf("upsert history: %w", err)
	}
	entry.LastVisited = visited
	return nil
}

func (r *historyRepo) FindByURL(ctx context.Context, url string) (*entity.HistoryEntry, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+historyColumns+` FROM history WHERE url = ?`, url)
	entry, err := scanHistory(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return entry, nil
}

// Search returns entries whose URL or title contains query, ignoring case and
// surrounding blanks, most recently visited first.
func (r *historyRepo) Search(ctx context.Context, query string, limit int) ([]*entity.HistoryEntry, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || limit <= 0 {
		return []*entity.HistoryEntry{}, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+historyColumns+` FROM history
		WHERE search_key LIKE ? ESCAPE '\'
		ORDER BY last_visited DESC, id DESC
		LIMIT ?`, "%"+escapeLike(q)+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("search history: %w", err)
	}
	return collectHistory(rows)
}

func (r *historyRepo) GetRecent(ctx context.Context, limit, offset int) ([]*entity.HistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+historyColumns+` FROM history
		ORDER BY last_visited DESC, id DESC
		LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("recent history: %w", err)
	}
	return collectHistory(rows)
}

func (r *historyRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM history WHERE id = ?`, id)
	return err
}

func (r *historyRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM history`)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHistory(row rowScanner) (*entity.HistoryEntry, error) {
	var (
		entry            entity.HistoryEntry
		visited, created int64
	)
	if err := row.Scan(&entry.ID, &entry.URL, &entry.Title, &entry.VisitCount, &visited, &created); err != nil {
		return nil, err
	}
	entry.LastVisited = fromMillis(visited)
	entry.CreatedAt = fromMillis(created)
	return &entry, nil
}

func collectHistory(rows *sql.Rows) ([]*entity.HistoryEntry, error) {
	defer rows.Close()

	entries := make([]*entity.HistoryEntry, 0)
	for rows.Next() {
		entry, err := scanHistory(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// searchKey folds url and title for Search. The unit separator keeps a query
// from matching across the two fields.
func searchKey(url, title string) string {
	return strings.ToLower(url) + "\x1f" + strings.ToLower(title)
}

// refoldSearchKeys fills search_key for rows written before the column existed.
func refoldSearchKeys(ctx context.Context, db *sql.DB) error {
	rows, err := db.QueryContext(ctx, `SELECT id, url, title FROM history WHERE search_key = ''`)
	if err != nil {
		return fmt.Errorf("select unfolded history: %w", err)
	}
	type pending struct {
		id         int64
		url, title string
	}
	var todo []pending
	for rows.Next() {
		var p pending
		if err := rows.Scan(&p.id, &p.url, &p.title); err != nil {
			_ = rows.Close()
			return err
		}
		todo = append(todo, p)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return err
	}
	if err := rows.Close(); err != nil {
		return err
	}

	for _, p := range todo {
		if _, err := db.ExecContext(ctx, `UPDATE history SET search_key = ? WHERE id = ?`,
			searchKey(p.url, p.title), p.id); err != nil {
			return fmt.Errorf("fold history %d: %w", p.id, err)
		}
	}
	if len(todo) > 0 {
		logging.FromContext(ctx).Info().Int("rows", len(todo)).Msg("history search keys refolded")
	}
	return nil
}

// escapeLike escapes LIKE wildcards so user input matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func toMillis(t time.Time) int64 {
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms)
}
