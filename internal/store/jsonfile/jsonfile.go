// Package jsonfile persists the ledger document as a single JSON file,
// the default backend for this tool.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"ponto/internal/core"
)

type Store struct {
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

// Load reads the document. A missing file is not an error: the ledger
// starts from the empty roster skeleton. A file that fails to parse is
// backed up and reported, so a corrupt document is never overwritten.
func (s *Store) Load(_ context.Context) (core.Document, bool, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return core.Document{}, false, nil
	}
	if err != nil {
		return core.Document{}, false, fmt.Errorf("read %s: %w", s.path, err)
	}

	var doc core.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		backupPath := s.path + ".corrupt"
		_ = os.Rename(s.path, backupPath)
		return core.Document{}, false, fmt.Errorf("corrupt JSON in %s (backed up to %s): %w", s.path, backupPath, err)
	}
	return doc, true, nil
}

// Save rewrites the full document atomically: write to a temp file in the
// same directory, then rename over the target.
func (s *Store) Save(_ context.Context, doc core.Document) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
