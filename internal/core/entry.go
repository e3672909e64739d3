package core

import (
	"time"
)

// Entry is one persisted work-duration record for a user on a date.
// Minutes is the source of truth; Hours is derived and kept for
// compatibility with historical documents that carried only hours.
type Entry struct {
	Date        string    `json:"data"`
	Minutes     int       `json:"minutos"`
	Hours       float64   `json:"horas"`
	Description string    `json:"descricao"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewEntry builds a canonical entry with the hours field derived from minutes.
func NewEntry(date string, minutes int, description string, now time.Time) Entry {
	return Entry{
		Date:        date,
		Minutes:     minutes,
		Hours:       HoursFromMinutes(minutes),
		Description: description,
		Timestamp:   now,
	}
}

// EffectiveMinutes returns the entry duration in minutes. Legacy records
// may carry only hours; minutes are reconstructed from hours for those.
func (e Entry) EffectiveMinutes() int {
	if e.Minutes > 0 {
		return e.Minutes
	}
	return MinutesFromHours(e.Hours)
}

// UserRecords holds the ordered entry list of a single user.
// Insertion order is chronological entry order, not sorted by date.
type UserRecords struct {
	Registros []Entry `json:"registros"`
}

// Document is the root aggregate persisted by the document stores.
type Document struct {
	Usuarios          map[string]*UserRecords `json:"usuarios"`
	UltimaAtualizacao *time.Time              `json:"ultima_atualizacao"`
}

// NewDocument builds the empty skeleton for the given roster.
func NewDocument(roster []string) Document {
	doc := Document{Usuarios: make(map[string]*UserRecords, len(roster))}
	for _, name := range roster {
		doc.Usuarios[name] = &UserRecords{Registros: []Entry{}}
	}
	return doc
}

// EnsureUsers back-fills roster users missing from a loaded document with
// empty entry lists. Users already present keep their data untouched, so a
// roster change never drops existing records.
func (d *Document) EnsureUsers(roster []string) {
	if d.Usuarios == nil {
		d.Usuarios = make(map[string]*UserRecords, len(roster))
	}
	for _, name := range roster {
		if _, ok := d.Usuarios[name]; !ok {
			d.Usuarios[name] = &UserRecords{Registros: []Entry{}}
		}
	}
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	out := Document{Usuarios: make(map[string]*UserRecords, len(d.Usuarios))}
	for name, recs := range d.Usuarios {
		cp := &UserRecords{Registros: make([]Entry, len(recs.Registros))}
		copy(cp.Registros, recs.Registros)
		out.Usuarios[name] = cp
	}
	if d.UltimaAtualizacao != nil {
		ts := *d.UltimaAtualizacao
		out.UltimaAtualizacao = &ts
	}
	return out
}
