// Package memory is an in-memory document store for tests and development.
package memory

import (
	"context"
	"sync"

	"ponto/internal/core"
)

type Store struct {
	mu     sync.Mutex
	doc    core.Document
	loaded bool
	saves  int
}

// New returns an empty store: Load reports no document.
func New() *Store {
	return &Store{}
}

// NewWithDocument seeds the store as if doc had been persisted before.
func NewWithDocument(doc core.Document) *Store {
	return &Store{doc: doc.Clone(), loaded: true}
}

func (s *Store) Load(_ context.Context) (core.Document, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return core.Document{}, false, nil
	}
	return s.doc.Clone(), true, nil
}

func (s *Store) Save(_ context.Context, doc core.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc.Clone()
	s.loaded = true
	s.saves++
	return nil
}

// Saves reports how many times Save ran, so tests can assert that failed
// validations never reach the store.
func (s *Store) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// Document returns a copy of the last saved document.
func (s *Store) Document() core.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}
