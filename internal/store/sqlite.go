package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ruminaider/rosterpick/internal/catalog"
	_ "modernc.org/sqlite"
)

const sqlSchema = `
CREATE TABLE IF NOT EXISTS selections (
	variant    TEXT NOT NULL,
	owner      TEXT NOT NULL,
	position   INTEGER NOT NULL,
	record_id  TEXT NOT NULL,
	PRIMARY KEY (variant, owner, position)
);

CREATE TABLE IF NOT EXISTS commits (
	id            TEXT PRIMARY KEY,
	variant       TEXT NOT NULL,
	owner         TEXT NOT NULL,
	ids           TEXT NOT NULL,
	committed_at  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS commits_by_owner ON commits (variant, owner, id);
`

// SQLStore keeps selections in a SQLite database.
type SQLStore struct {
	db *sql.DB
}

// OpenSQLStore opens (or creates) the database at path and ensures the
// schema exists.
func OpenSQLStore(path string) (*SQLStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// A single connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqlSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLStore{db: db}, nil
}

// Load implements Store.
func (s *SQLStore) Load(ctx context.Context, v catalog.Variant, owner string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT record_id FROM selections
		WHERE variant = ? AND owner = ?
		ORDER BY position`, string(v), owner)
	if err != nil {
		return nil, fmt.Errorf("load selection: %w", err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// Save implements Store. The selection and its commit are written in one
// transaction.
func (s *SQLStore) Save(ctx context.Context, v catalog.Variant, owner string, ids []string) error {
	encoded, err := json.Marshal(append([]string{}, ids...))
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM selections WHERE variant = ? AND owner = ?`, string(v), owner); err != nil {
		return fmt.Errorf("clear selection: %w", err)
	}
	for i, id := range ids {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO selections (variant, owner, position, record_id) VALUES (?, ?, ?, ?)`,
			string(v), owner, i, id); err != nil {
			return fmt.Errorf("insert selection: %w", err)
		}
	}

	at := now()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO commits (id, variant, owner, ids, committed_at) VALUES (?, ?, ?, ?, ?)`,
		newCommitID(at), string(v), owner, string(encoded), at.Format(time.RFC3339Nano)); err != nil {
		return fmt.Errorf("record commit: %w", err)
	}
	return tx.Commit()
}

// History implements Store.
func (s *SQLStore) History(ctx context.Context, v catalog.Variant, owner string, limit int) ([]Commit, error) {
	q := `SELECT id, ids, committed_at FROM commits
		WHERE variant = ? AND owner = ?
		ORDER BY id DESC`
	args := []any{string(v), owner}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	defer rows.Close()

	var out []Commit
	for rows.Next() {
		var (
			c       Commit
			encoded string
			at      string
		)
		if err := rows.Scan(&c.ID, &encoded, &at); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(encoded), &c.IDs); err != nil {
			return nil, fmt.Errorf("decode commit %s: %w", c.ID, err)
		}
		if c.CommittedAt, err = time.Parse(time.RFC3339Nano, at); err != nil {
			return nil, fmt.Errorf("decode commit %s: %w", c.ID, err)
		}
		c.Variant = v
		c.Owner = owner
		out = append(out, c)
	}
	return out, rows.Err()
}

// Close implements Store.
func (s *SQLStore) Close() error { return s.db.Close() }
