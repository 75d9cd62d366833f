// Package history stores the visit history shown by the app://history
// page in a local sqlite database.
package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS visits (
	id      INTEGER PRIMARY KEY AUTOINCREMENT,
	url     TEXT NOT NULL,
	title   TEXT NOT NULL DEFAULT '',
	atime   REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_visits_atime ON visits(atime);
`

// Entry is one visited URL.
type Entry struct {
	URL   string
	Title string
	// Atime is the visit time in epoch seconds.
	Atime float64
}

// Store is a sqlite-backed visit store. Safe for concurrent use; all
// synchronization is delegated to database/sql.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed creates) the visit database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Add records a visit at the given time.
func (s *Store) Add(url, title string, at time.Time) error {
	_, err := s.db.Exec(
		`INSERT INTO visits (url, title, atime) VALUES (?, ?, ?)`,
		url, title, float64(at.UnixNano())/float64(time.Second))
	return err
}

// EntriesBefore returns up to limit entries visited at or before start,
// newest first, skipping offset entries.
func (s *Store) EntriesBefore(start float64, limit, offset int) ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT url, title, atime FROM visits
		 WHERE atime <= ? ORDER BY atime DESC LIMIT ? OFFSET ?`,
		start, limit, offset)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

// EntriesBetween returns the entries visited in (start, end], newest
// first.
func (s *Store) EntriesBetween(start, end float64) ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT url, title, atime FROM visits
		 WHERE atime > ? AND atime <= ? ORDER BY atime DESC`,
		start, end)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func collect(rows *sql.Rows) ([]Entry, error) {
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.URL, &e.Title, &e.Atime); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
