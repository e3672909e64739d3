// Package worker mirrors entry-recorded events to an external timesheet.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"ponto/internal/events"
	"ponto/internal/timesheet"
)

// MirrorWorker consumes entry-recorded messages and appends each entry to
// the configured timesheet writer.
type MirrorWorker struct {
	writer timesheet.Writer
}

func NewMirrorWorker(writer timesheet.Writer) *MirrorWorker {
	return &MirrorWorker{writer: writer}
}

// HandleEntryRecorded processes one message. Errors propagate so the
// consumer can requeue the delivery.
func (w *MirrorWorker) HandleEntryRecorded(ctx context.Context, msg *events.EntryRecorded) error {
	if err := w.writer.AppendEntry(ctx, msg.User, msg.Entry()); err != nil {
		return fmt.Errorf("mirror entry for %s: %w", msg.User, err)
	}

	slog.InfoContext(ctx, "Registro espelhado",
		"usuario", msg.User,
		"data", msg.Date,
		"minutos", msg.Minutes)
	return nil
}
