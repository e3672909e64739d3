// Package ledger implements the time ledger: roster ownership, entry
// validation and recording, and the monthly/annual aggregation.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"ponto/internal/core"
	"ponto/internal/store"
)

// EventPublisher receives a notification after an entry has been recorded
// and persisted. Publishing is best effort: a failure is logged and never
// fails the recording call.
type EventPublisher interface {
	PublishEntryRecorded(ctx context.Context, user string, e core.Entry) error
}

// Ledger owns the roster and all entries. Every mutating operation runs
// validate → append → persist as one critical section under a single lock;
// there is no partial-write state visible to callers.
type Ledger struct {
	mu     sync.Mutex
	roster []string
	doc    core.Document
	store  store.DocumentStore
	events EventPublisher
	now    func() time.Time
}

type Option func(*Ledger)

// WithClock injects the time source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithEvents attaches an entry-recorded publisher.
func WithEvents(p EventPublisher) Option {
	return func(l *Ledger) { l.events = p }
}

// New loads the persisted document, or starts from the empty roster
// skeleton when none exists. Roster users missing from a loaded document
// are back-filled with empty entry lists; users present in the document but
// not in the roster keep their data.
func New(ctx context.Context, roster []string, st store.DocumentStore, opts ...Option) (*Ledger, error) {
	if len(roster) == 0 {
		return nil, fmt.Errorf("empty roster")
	}

	l := &Ledger{
		roster: append([]string(nil), roster...),
		store:  st,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}

	doc, found, err := st.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	if !found {
		doc = core.NewDocument(l.roster)
	} else {
		doc.EnsureUsers(l.roster)
	}
	l.doc = doc

	return l, nil
}

// Roster returns the configured user names.
func (l *Ledger) Roster() []string {
	return append([]string(nil), l.roster...)
}

func (l *Ledger) inRoster(name string) bool {
	for _, u := range l.roster {
		if u == name {
			return true
		}
	}
	return false
}

func (l *Ledger) checkUser(name string) error {
	if !l.inRoster(name) {
		return core.Invalidf("usuário %q não encontrado", name)
	}
	return nil
}

// RegisterByTimes records a punch-clock entry for today from "HH:MM"
// entry/exit times. Shifts crossing midnight are rejected: the exit time of
// day must be strictly after the entry time of day.
func (l *Ledger) RegisterByTimes(ctx context.Context, name, entryTime, exitTime string) (core.Entry, error) {
	if err := l.checkUser(name); err != nil {
		return core.Entry{}, err
	}
	minutes, err := minutesBetween(entryTime, exitTime)
	if err != nil {
		return core.Entry{}, err
	}
	date := l.now().Format(core.DateLayout)
	return l.record(ctx, name, date, minutes, "")
}

// RecordManual records an entry for an explicit date from "HH:MM"
// entry/exit times, with the same ordering rule as RegisterByTimes.
func (l *Ledger) RecordManual(ctx context.Context, name, date, entryTime, exitTime, description string) (core.Entry, error) {
	if err := l.checkUser(name); err != nil {
		return core.Entry{}, err
	}
	if _, err := core.ParseDate(date); err != nil {
		return core.Entry{}, err
	}
	minutes, err := minutesBetween(entryTime, exitTime)
	if err != nil {
		return core.Entry{}, err
	}
	return l.record(ctx, name, date, minutes, description)
}

// RecordMinutes records an explicit duration for an explicit date. Any past
// date is allowed; there is no bound check against today.
func (l *Ledger) RecordMinutes(ctx context.Context, name, date string, minutes int, description string) (core.Entry, error) {
	if err := l.checkUser(name); err != nil {
		return core.Entry{}, err
	}
	if _, err := core.ParseDate(date); err != nil {
		return core.Entry{}, err
	}
	if minutes <= 0 {
		return core.Entry{}, core.Invalidf("minutos devem ser positivos")
	}
	return l.record(ctx, name, date, minutes, description)
}

// minutesBetween computes the duration from two minute-of-day values.
func minutesBetween(entryTime, exitTime string) (int, error) {
	entryMin, err := core.TimeToMinutes(entryTime)
	if err != nil {
		return 0, err
	}
	exitMin, err := core.TimeToMinutes(exitTime)
	if err != nil {
		return 0, err
	}
	if exitMin <= entryMin {
		return 0, core.Invalidf("horário de saída deve ser após o horário de entrada")
	}
	return exitMin - entryMin, nil
}

// record is the shared primitive: build the entry, append it, stamp the
// document and persist it fully before returning. One persist per call, no
// batching. The entry-recorded event goes out only after the persist.
func (l *Ledger) record(ctx context.Context, name, date string, minutes int, description string) (core.Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e := core.NewEntry(date, minutes, description, l.now())
	recs := l.doc.Usuarios[name]
	recs.Registros = append(recs.Registros, e)
	now := l.now()
	l.doc.UltimaAtualizacao = &now

	if err := l.store.Save(ctx, l.doc); err != nil {
		return core.Entry{}, fmt.Errorf("persist ledger: %w", err)
	}

	slog.InfoContext(ctx, "Registro gravado",
		"usuario", name,
		"data", date,
		"minutos", minutes)

	if l.events != nil {
		if err := l.events.PublishEntryRecorded(ctx, name, e); err != nil {
			slog.ErrorContext(ctx, "Falha ao publicar evento de registro",
				"usuario", name,
				"error", err)
		}
	}

	return e, nil
}

// EntriesForUser returns a copy of the user's entries in insertion order.
func (l *Ledger) EntriesForUser(name string) ([]core.Entry, error) {
	if err := l.checkUser(name); err != nil {
		return nil, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	recs := l.doc.Usuarios[name]
	out := make([]core.Entry, len(recs.Registros))
	copy(out, recs.Registros)
	return out, nil
}
