// Package history keeps a local log of lyrics fetch attempts in SQLite.
//
// The log is write-mostly: it records what was fetched and how it went, and
// is only read back by the history command. It never stores lyrics.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jfmyers9/verses/pkg/genius"
)

// Status is the outcome of a fetch attempt
type Status string

const (
	StatusOK       Status = "ok"
	StatusNoResult Status = "no_result"
	StatusDenied   Status = "denied"
	StatusInvalid  Status = "invalid"
	StatusFailed   Status = "failed"
)

// StatusFor classifies a fetch error
func StatusFor(err error) Status {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, genius.ErrAccessDenied):
		return StatusDenied
	case errors.Is(err, genius.ErrNoResult):
		return StatusNoResult
	case errors.Is(err, genius.ErrInvalidArgument):
		return StatusInvalid
	default:
		return StatusFailed
	}
}

// Store is a fetch log backed by SQLite
type Store struct {
	db *sql.DB
}

// Entry is one recorded fetch attempt
type Entry struct {
	ID        int64
	URL       string
	Title     string
	Artist    string
	Status    Status
	Error     string
	Chars     int // length of the returned lyrics in runes
	FetchedAt time.Time
}

// Open opens or creates the fetch log at dbPath
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps :memory: databases consistent
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA journal_mode = WAL",
		"PRAGMA temp_store = MEMORY",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	schema := `
		CREATE TABLE IF NOT EXISTS fetches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			url TEXT NOT NULL,
			title TEXT,
			artist TEXT,
			status TEXT NOT NULL,
			error TEXT,
			chars INTEGER NOT NULL DEFAULT 0,
			fetched_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_fetched_at ON fetches(fetched_at);
		CREATE INDEX IF NOT EXISTS idx_status ON fetches(status, fetched_at);
	`

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Record adds a fetch attempt to the log. A zero FetchedAt means now.
func (s *Store) Record(ctx context.Context, e Entry) (int64, error) {
	if e.URL == "" {
		return 0, errors.New("entry has no URL")
	}
	if e.Status == "" {
		return 0, errors.New("entry has no status")
	}
	if e.FetchedAt.IsZero() {
		e.FetchedAt = time.Now()
	}

	query := `
		INSERT INTO fetches (url, title, artist, status, error, chars, fetched_at)
		VALUES (?, ?, ?, ?, NULLIF(?, ''), ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query,
		e.URL,
		e.Title,
		e.Artist,
		string(e.Status),
		e.Error,
		e.Chars,
		e.FetchedAt.Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert fetch: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get insert id: %w", err)
	}

	return id, nil
}

// Recent returns the latest attempts, newest first. When onlyFailed is set,
// successful fetches are skipped. A limit of zero returns everything.
func (s *Store) Recent(ctx context.Context, limit int, onlyFailed bool) ([]Entry, error) {
	query := `
		SELECT id, url, COALESCE(title, ''), COALESCE(artist, ''), status, COALESCE(error, ''), chars, fetched_at
		FROM fetches
	`
	var args []interface{}
	if onlyFailed {
		query += " WHERE status != ?"
		args = append(args, string(StatusOK))
	}
	query += " ORDER BY fetched_at DESC, id DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query fetches: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var status string
		var fetchedUnix int64

		err := rows.Scan(
			&e.ID,
			&e.URL,
			&e.Title,
			&e.Artist,
			&status,
			&e.Error,
			&e.Chars,
			&fetchedUnix,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fetch: %w", err)
		}

		e.Status = Status(status)
		e.FetchedAt = time.Unix(fetchedUnix, 0)

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fetches: %w", err)
	}

	return entries, nil
}

// Count returns the number of recorded attempts per status
func (s *Store) Count(ctx context.Context) (map[Status]int, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT status, COUNT(*) FROM fetches GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("failed to count fetches: %w", err)
	}
	defer rows.Close()

	counts := make(map[Status]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[Status(status)] = n
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating counts: %w", err)
	}

	return counts, nil
}

// Prune removes attempts older than maxAge
func (s *Store) Prune(ctx context.Context, maxAge time.Duration) (int64, error) {
	if maxAge <= 0 {
		return 0, fmt.Errorf("max age must be positive, got %s", maxAge)
	}
	cutoff := time.Now().Add(-maxAge).Unix()

	result, err := s.db.ExecContext(ctx, "DELETE FROM fetches WHERE fetched_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune fetches: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return deleted, nil
}
