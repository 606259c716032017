// Package history persists a record of played sheets.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Schema for the play history store.
const schema = `
CREATE TABLE IF NOT EXISTS plays (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    title       TEXT NOT NULL,
    writer      TEXT NOT NULL,
    length_sec  REAL NOT NULL,
    tokens      INTEGER NOT NULL,
    played_at   INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_plays_played_at ON plays(played_at);
`

// Play is one playback record.
type Play struct {
	ID       int64
	Title    string
	Writer   string
	Length   float64
	Tokens   int
	PlayedAt time.Time
}

// Store is the SQLite-backed play history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at the given path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Record inserts a playback record and returns its ID.
func (s *Store) Record(p Play) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO plays (title, writer, length_sec, tokens, played_at) VALUES (?, ?, ?, ?, ?)`,
		p.Title, p.Writer, p.Length, p.Tokens, p.PlayedAt.Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("record play: %w", err)
	}
	return res.LastInsertId()
}

// Recent returns up to n plays, newest first.
func (s *Store) Recent(n int) ([]Play, error) {
	rows, err := s.db.Query(
		`SELECT id, title, writer, length_sec, tokens, played_at
		 FROM plays ORDER BY played_at DESC, id DESC LIMIT ?`, n,
	)
	if err != nil {
		return nil, fmt.Errorf("query recent plays: %w", err)
	}
	defer rows.Close()

	var plays []Play
	for rows.Next() {
		var p Play
		var ts int64
		if err := rows.Scan(&p.ID, &p.Title, &p.Writer, &p.Length, &p.Tokens, &ts); err != nil {
			return nil, fmt.Errorf("scan play: %w", err)
		}
		p.PlayedAt = time.Unix(ts, 0)
		plays = append(plays, p)
	}
	return plays, rows.Err()
}

// PlayCount returns the total number of recorded plays.
func (s *Store) PlayCount() (int64, error) {
	var n int64
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM plays`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count plays: %w", err)
	}
	return n, nil
}
