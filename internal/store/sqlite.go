package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/agentic-research/randgen/api"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS snapshot (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	version TEXT NOT NULL,
	uuid TEXT NOT NULL,
	saved_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS templates (
	position INTEGER PRIMARY KEY,
	uuid TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL,
	body JSON NOT NULL
);
`

// SQLiteStore keeps the snapshot in a SQLite database, one row per template.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at dbPath.
func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Load reads the saved snapshot.
func (s *SQLiteStore) Load(ctx context.Context) (*api.Document, error) {
	doc := &api.Document{}
	err := s.db.QueryRowContext(ctx, "SELECT version, uuid FROM snapshot WHERE id = 1").Scan(&doc.Version, &doc.UUID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query snapshot: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, "SELECT name, body FROM templates ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("query templates: %w", err)
	}
	defer func() { _ = rows.Close() }() // safe to ignore

	for rows.Next() {
		var name, body string
		if err := rows.Scan(&name, &body); err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		var td api.TemplateDoc
		if err := json.Unmarshal([]byte(body), &td); err != nil {
			return nil, fmt.Errorf("parse template %q: %w", name, err)
		}
		doc.Templates = append(doc.Templates, td)
	}
	return doc, rows.Err()
}

// Save replaces the stored snapshot with doc in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, doc *api.Document) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op after commit

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO snapshot (id, version, uuid, saved_at) VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET version = excluded.version, uuid = excluded.uuid, saved_at = excluded.saved_at
	`, doc.Version, doc.UUID, time.Now().Unix()); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM templates"); err != nil {
		return fmt.Errorf("clear templates: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO templates (position, uuid, name, body) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }() // safe to ignore

	for i, td := range doc.Templates {
		body, err := json.Marshal(td)
		if err != nil {
			return fmt.Errorf("marshal template %q: %w", td.Name, err)
		}
		if _, err := stmt.ExecContext(ctx, i, td.UUID, td.Name, string(body)); err != nil {
			return fmt.Errorf("insert template %q: %w", td.Name, err)
		}
	}
	return tx.Commit()
}

// SavedAt returns when the snapshot was last saved.
func (s *SQLiteStore) SavedAt(ctx context.Context) (time.Time, error) {
	var unix int64
	err := s.db.QueryRowContext(ctx, "SELECT saved_at FROM snapshot WHERE id = 1").Scan(&unix)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, ErrNotFound
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("query snapshot: %w", err)
	}
	return time.Unix(unix, 0), nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
