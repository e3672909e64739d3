// Package store defines the persistence port the ledger talks to.
package store

import (
	"context"

	"ponto/internal/core"
)

// DocumentStore loads and saves the full ledger document. Save always
// rewrites the whole document; the ledger calls it after every mutation.
type DocumentStore interface {
	// Load returns the persisted document. The boolean reports whether a
	// document existed; when it is false the ledger starts from the empty
	// roster skeleton.
	Load(ctx context.Context) (core.Document, bool, error)
	Save(ctx context.Context, doc core.Document) error
}
