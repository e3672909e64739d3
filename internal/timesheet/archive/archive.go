// Package archive appends recorded entries to a local JSONL file, the
// mirror target used when no spreadsheet is configured.
package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"ponto/internal/core"
	"ponto/internal/timesheet"
)

type Writer struct {
	mu   sync.Mutex
	path string
}

var _ timesheet.Writer = (*Writer)(nil)

func New(path string) *Writer {
	return &Writer{path: path}
}

type line struct {
	User        string    `json:"usuario"`
	Date        string    `json:"data"`
	Minutes     int       `json:"minutos"`
	Hours       float64   `json:"horas"`
	Description string    `json:"descricao"`
	RecordedAt  time.Time `json:"registrado_em"`
}

// AppendEntry writes one JSON line per entry.
func (w *Writer) AppendEntry(_ context.Context, user string, e core.Entry) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
		return fmt.Errorf("create archive directory: %w", err)
	}

	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(line{
		User:        user,
		Date:        e.Date,
		Minutes:     e.Minutes,
		Hours:       e.Hours,
		Description: e.Description,
		RecordedAt:  e.Timestamp,
	})
	if err != nil {
		return fmt.Errorf("marshal archive line: %w", err)
	}

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write archive line: %w", err)
	}
	return nil
}
