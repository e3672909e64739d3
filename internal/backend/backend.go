// Package backend selects and opens the configured document store.
package backend

import (
	"fmt"
	"log/slog"

	"ponto/internal/config"
	"ponto/internal/store"
	"ponto/internal/store/jsonfile"
	"ponto/internal/store/memory"
	"ponto/internal/store/sqlite"
)

type Type string

const (
	JSONBackend   Type = "json"
	SQLiteBackend Type = "sqlite"
	MemoryBackend Type = "memory"
)

func (t Type) IsValid() bool {
	switch t {
	case JSONBackend, SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// Result bundles the opened store with its cleanup, nil when the backend
// holds no resources.
type Result struct {
	Store   store.DocumentStore
	Cleanup func() error
}

// Open builds the document store named by the configuration.
func Open(cfg *config.Config, logger *slog.Logger) (*Result, error) {
	t := Type(cfg.DataBackend)
	if !t.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", cfg.DataBackend)
	}

	switch t {
	case SQLiteBackend:
		st, err := sqlite.New(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		logger.Info("Initialized SQLite backend", "db_path", cfg.SQLiteDBPath)
		return &Result{Store: st, Cleanup: st.Close}, nil

	case MemoryBackend:
		logger.Info("Initialized memory backend")
		return &Result{Store: memory.New()}, nil

	default:
		logger.Info("Initialized JSON file backend", "path", cfg.JSONDBPath)
		return &Result{Store: jsonfile.New(cfg.JSONDBPath)}, nil
	}
}
