package events

import (
	"encoding/json"
	"time"

	"ponto/internal/core"
)

// EntryRecorded announces one persisted ledger entry. The message carries
// the full entry so consumers need no access to the ledger's storage.
type EntryRecorded struct {
	User        string    `json:"usuario"`
	Date        string    `json:"data"`
	Minutes     int       `json:"minutos"`
	Hours       float64   `json:"horas"`
	Description string    `json:"descricao"`
	RecordedAt  time.Time `json:"registrado_em"`
}

// NewEntryRecorded builds the message for a recorded entry.
func NewEntryRecorded(user string, e core.Entry) *EntryRecorded {
	return &EntryRecorded{
		User:        user,
		Date:        e.Date,
		Minutes:     e.Minutes,
		Hours:       e.Hours,
		Description: e.Description,
		RecordedAt:  e.Timestamp,
	}
}

// Entry rebuilds the ledger entry carried by the message.
func (m *EntryRecorded) Entry() core.Entry {
	return core.Entry{
		Date:        m.Date,
		Minutes:     m.Minutes,
		Hours:       m.Hours,
		Description: m.Description,
		Timestamp:   m.RecordedAt,
	}
}

func (m *EntryRecorded) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func EntryRecordedFromJSON(data []byte) (*EntryRecorded, error) {
	var msg EntryRecorded
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
