// Package timesheet defines the outbound port for mirroring recorded
// entries to an external timesheet.
package timesheet

import (
	"context"

	"ponto/internal/core"
)

// Writer appends one recorded entry to a timesheet.
type Writer interface {
	AppendEntry(ctx context.Context, user string, e core.Entry) error
}
