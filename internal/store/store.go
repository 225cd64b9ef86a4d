// Package store persists template list snapshots.
package store

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/agentic-research/randgen/api"
)

// ErrNotFound is returned by Load when nothing has been saved yet.
var ErrNotFound = errors.New("snapshot not found")

// Store reads and writes a single template list snapshot.
type Store interface {
	Load(ctx context.Context) (*api.Document, error)
	Save(ctx context.Context, doc *api.Document) error
	Close() error
}

// Open picks a backend by file extension: .db, .sqlite and .sqlite3 open a
// SQLite database, anything else a JSON file on the local filesystem.
func Open(path string) (Store, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return OpenSQLite(path)
	default:
		return OpenFile(path)
	}
}
