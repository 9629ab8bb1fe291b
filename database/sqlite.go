package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/quickmorph/morph"
)

// SQLite persists examples in a single table, payloads as canonical
// JSON. The (key, fingerprint) pair is unique, so saves deduplicate
// at the schema level.
type SQLite struct {
	db *sql.DB
}

var _ Database = (*SQLite)(nil)

// NewSQLite opens (creating if needed) the example database at path.
func NewSQLite(path string) (*SQLite, error) {
	if path == "" {
		path = "morph-examples.db"
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("database: open sqlite %s: %w", path, err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS examples (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		key TEXT NOT NULL,
		fingerprint TEXT NOT NULL,
		payload BLOB NOT NULL,
		UNIQUE (key, fingerprint)
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database: create examples table: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Save stores value under key unless an equal value is already there.
func (s *SQLite) Save(ctx context.Context, key string, value morph.Basic) error {
	if key == "" {
		return ErrInvalidKey
	}
	payload, err := morph.MarshalBasic(value)
	if err != nil {
		return fmt.Errorf("database: encode example: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO examples (key, fingerprint, payload) VALUES (?, ?, ?)`,
		key, morph.Fingerprint(value), payload)
	if err != nil {
		return fmt.Errorf("database: save example: %w", err)
	}
	return nil
}

// Fetch returns the stored values for key, oldest first.
func (s *SQLite) Fetch(ctx context.Context, key string) ([]morph.Basic, error) {
	if key == "" {
		return nil, ErrInvalidKey
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT payload FROM examples WHERE key = ? ORDER BY seq`, key)
	if err != nil {
		return nil, fmt.Errorf("database: fetch examples: %w", err)
	}
	defer func() { _ = rows.Close() }()
	out := []morph.Basic{}
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("database: scan example: %w", err)
		}
		value, err := morph.UnmarshalBasic(payload)
		if err != nil {
			return nil, fmt.Errorf("database: decode example: %w", err)
		}
		out = append(out, value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("database: fetch examples: %w", err)
	}
	return out, nil
}

// Delete removes value from key.
func (s *SQLite) Delete(ctx context.Context, key string, value morph.Basic) error {
	if key == "" {
		return ErrInvalidKey
	}
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM examples WHERE key = ? AND fingerprint = ?`,
		key, morph.Fingerprint(value))
	if err != nil {
		return fmt.Errorf("database: delete example: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("database: delete example: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Close closes the underlying file.
func (s *SQLite) Close() error {
	return s.db.Close()
}
