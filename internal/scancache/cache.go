// Package scancache provides a SQLite-backed tracker for inbox text files,
// so repeated scans skip files that have not changed since they were last
// extracted.
package scancache

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // register sqlite driver
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS files (
    file_path   TEXT PRIMARY KEY,
    mtime_ns    INTEGER NOT NULL,
    size_bytes  INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS extractions (
    file_path    TEXT PRIMARY KEY REFERENCES files(file_path) ON DELETE CASCADE,
    amount       TEXT NOT NULL,
    direction    TEXT NOT NULL,
    counterparty TEXT,
    channel      TEXT,
    entry_id     TEXT,
    outcome      TEXT NOT NULL
);
`

// Outcome values recorded per scanned file.
const (
	OutcomePosted = "posted"
	OutcomeQueued = "queued"
)

// Cache tracks scanned inbox files.
type Cache struct {
	db *sql.DB
}

// FileInfo holds the tracked mtime and size for a file.
type FileInfo struct {
	MtimeNs   int64
	SizeBytes int64
}

// ExtractionRecord is what a scanned file produced.
type ExtractionRecord struct {
	FilePath     string
	Amount       string
	Direction    string
	Counterparty string
	Channel      string
	EntryID      string
	Outcome      string
}

// Open opens or creates the cache database at the given path.
func Open(dbPath string) (*Cache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// TrackedFiles returns file_path -> FileInfo for all tracked files.
func (c *Cache) TrackedFiles() (map[string]FileInfo, error) {
	rows, err := c.db.Query("SELECT file_path, mtime_ns, size_bytes FROM files")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	result := make(map[string]FileInfo)
	for rows.Next() {
		var path string
		var fi FileInfo
		if err := rows.Scan(&path, &fi.MtimeNs, &fi.SizeBytes); err != nil {
			return nil, err
		}
		result[path] = fi
	}
	return result, rows.Err()
}

// Unchanged reports whether path is tracked with the same mtime and size.
func (c *Cache) Unchanged(path string, mtimeNs, sizeBytes int64) (bool, error) {
	var fi FileInfo
	err := c.db.QueryRow("SELECT mtime_ns, size_bytes FROM files WHERE file_path = ?", path).
		Scan(&fi.MtimeNs, &fi.SizeBytes)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return fi.MtimeNs == mtimeNs && fi.SizeBytes == sizeBytes, nil
}

// SaveExtraction stores a file's tracking info and what it produced.
func (c *Cache) SaveExtraction(rec ExtractionRecord, mtimeNs, sizeBytes int64) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`INSERT OR REPLACE INTO files (file_path, mtime_ns, size_bytes) VALUES (?, ?, ?)`,
		rec.FilePath, mtimeNs, sizeBytes)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`INSERT OR REPLACE INTO extractions
		(file_path, amount, direction, counterparty, channel, entry_id, outcome)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.FilePath, rec.Amount, rec.Direction, rec.Counterparty, rec.Channel, rec.EntryID, rec.Outcome)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Extraction returns the stored record for a file, if any.
func (c *Cache) Extraction(path string) (ExtractionRecord, bool, error) {
	var rec ExtractionRecord
	err := c.db.QueryRow(`SELECT file_path, amount, direction, counterparty, channel, entry_id, outcome
		FROM extractions WHERE file_path = ?`, path).
		Scan(&rec.FilePath, &rec.Amount, &rec.Direction, &rec.Counterparty, &rec.Channel, &rec.EntryID, &rec.Outcome)
	if err == sql.ErrNoRows {
		return ExtractionRecord{}, false, nil
	}
	if err != nil {
		return ExtractionRecord{}, false, err
	}
	return rec, true, nil
}
