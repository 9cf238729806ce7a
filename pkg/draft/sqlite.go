package draft

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/dojouemura/go-matricula/pkg/session"
)

// SQLStore keeps the draft in a sqlite database, one row per draft key. It is
// the durable option for shared kiosk installs where the form outlives a
// single process.
type SQLStore struct {
	db *sqlx.DB
}

const draftSchema = `
CREATE TABLE IF NOT EXISTS drafts (
	key        TEXT PRIMARY KEY,
	payload    TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
)`

// OpenSQLStore opens (creating if needed) the sqlite database at path and
// ensures the drafts table exists.
func OpenSQLStore(path string) (*SQLStore, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("draft: open sqlite: %w", err)
	}
	if _, err := db.Exec(draftSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("draft: migrate drafts table: %w", err)
	}
	return &SQLStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// Save upserts the draft row under the fixed key.
func (s *SQLStore) Save(d session.Draft) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("draft: encode: %w", err)
	}
	const q = `
		INSERT INTO drafts (key, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`
	if _, err := s.db.Exec(q, Key, string(payload), time.Now().UTC()); err != nil {
		return fmt.Errorf("draft: save: %w", err)
	}
	return nil
}

// Load reads the draft row. Absent rows and corrupt payloads load as empty.
func (s *SQLStore) Load() (session.Draft, bool, error) {
	var payload string
	err := s.db.Get(&payload, `SELECT payload FROM drafts WHERE key = ?`, Key)
	if errors.Is(err, sql.ErrNoRows) {
		return session.Draft{}, false, nil
	}
	if err != nil {
		return session.Draft{}, false, fmt.Errorf("draft: load: %w", err)
	}
	var d session.Draft
	if err := json.Unmarshal([]byte(payload), &d); err != nil {
		return session.Draft{}, false, nil
	}
	return d, true, nil
}

// Clear deletes the draft row.
func (s *SQLStore) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM drafts WHERE key = ?`, Key); err != nil {
		return fmt.Errorf("draft: clear: %w", err)
	}
	return nil
}
