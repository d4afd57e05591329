// Package sqlite persists the download history. Only finished requests
// are recorded here; live job state stays in the in-memory registry.
package sqlite

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/souravslg/Downfiles/internal/domain"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS downloads (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    url        TEXT NOT NULL,
    title      TEXT,
    platform   TEXT,
    format_id  TEXT,
    audio_only INTEGER NOT NULL DEFAULT 0,
    outcome    TEXT NOT NULL,
    error      TEXT,
    bytes      INTEGER NOT NULL DEFAULT 0,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_downloads_created ON downloads(created_at);
`

// History implements domain.History using SQLite.
type History struct {
	db *sql.DB
}

// New opens (and if needed initializes) the history database.
func New(dbPath string) (*History, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &History{db: db}, nil
}

// Close closes the database connection.
func (h *History) Close() error {
	return h.db.Close()
}

// Record inserts one finished download.
func (h *History) Record(ctx context.Context, e domain.HistoryEntry) error {
	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := h.db.ExecContext(ctx,
		`INSERT INTO downloads (url, title, platform, format_id, audio_only, outcome, error, bytes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.URL, e.Title, e.Platform, e.FormatID, boolInt(e.AudioOnly), e.Outcome, e.Error, e.Bytes, createdAt,
	)
	return err
}

// Recent returns finished downloads, newest first.
func (h *History) Recent(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	rows, err := h.db.QueryContext(ctx,
		`SELECT id, url, COALESCE(title, ''), COALESCE(platform, ''), COALESCE(format_id, ''),
		        audio_only, outcome, COALESCE(error, ''), bytes, created_at
		 FROM downloads ORDER BY created_at DESC, id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.HistoryEntry
	for rows.Next() {
		var e domain.HistoryEntry
		var audio int
		if err := rows.Scan(&e.ID, &e.URL, &e.Title, &e.Platform, &e.FormatID,
			&audio, &e.Outcome, &e.Error, &e.Bytes, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.AudioOnly = audio != 0
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
