package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/agentic-research/randgen/api"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

// FileStore keeps the snapshot as an indented JSON file on a billy
// filesystem. Writes go to a temp file that is renamed over the target.
type FileStore struct {
	fs   billy.Filesystem
	name string
}

// NewFileStore stores the snapshot as name inside fs.
func NewFileStore(fs billy.Filesystem, name string) *FileStore {
	return &FileStore{fs: fs, name: name}
}

// OpenFile stores the snapshot at path on the local filesystem.
func OpenFile(path string) (*FileStore, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	return NewFileStore(osfs.New(filepath.Dir(abs)), filepath.Base(abs)), nil
}

// Load reads the snapshot file.
func (s *FileStore) Load(_ context.Context) (*api.Document, error) {
	data, err := util.ReadFile(s.fs, s.name)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.name, err)
	}
	var doc api.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.name, err)
	}
	return &doc, nil
}

// Save writes doc atomically.
func (s *FileStore) Save(ctx context.Context, doc *api.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	dir := filepath.Dir(s.name)
	if dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	tmp, err := s.fs.TempFile(dir, ".randgen-save-")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		_ = tmp.Close()
		_ = s.fs.Remove(tmpName) // best-effort cleanup
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = s.fs.Remove(tmpName) // best-effort cleanup
		return fmt.Errorf("close temp: %w", err)
	}
	if err := s.fs.Rename(tmpName, s.name); err != nil {
		_ = s.fs.Remove(tmpName) // best-effort cleanup
		return fmt.Errorf("rename temp to %s: %w", s.name, err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }
