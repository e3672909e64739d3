// Package sqlite persists the ledger document in a local SQLite database.
// Save keeps the full-rewrite contract of the document store: the whole
// document is replaced in one transaction.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"ponto/internal/core"

	_ "modernc.org/sqlite"
)

const metaLastUpdate = "ultima_atualizacao"

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load reassembles the document from the relational layout. A database with
// no users and no metadata counts as "no document yet".
func (s *Store) Load(ctx context.Context) (core.Document, bool, error) {
	doc := core.Document{Usuarios: map[string]*core.UserRecords{}}

	rows, err := s.db.QueryContext(ctx, `SELECT nome FROM usuarios ORDER BY nome`)
	if err != nil {
		return core.Document{}, false, fmt.Errorf("query usuarios: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return core.Document{}, false, fmt.Errorf("scan usuario: %w", err)
		}
		doc.Usuarios[name] = &core.UserRecords{Registros: []core.Entry{}}
	}
	if err := rows.Err(); err != nil {
		return core.Document{}, false, fmt.Errorf("iterate usuarios: %w", err)
	}

	entryRows, err := s.db.QueryContext(ctx,
		`SELECT usuario, data, minutos, horas, descricao, registrado_em FROM registros ORDER BY id`)
	if err != nil {
		return core.Document{}, false, fmt.Errorf("query registros: %w", err)
	}
	defer entryRows.Close()
	for entryRows.Next() {
		var (
			user, recordedAt string
			e                core.Entry
		)
		if err := entryRows.Scan(&user, &e.Date, &e.Minutes, &e.Hours, &e.Description, &recordedAt); err != nil {
			return core.Document{}, false, fmt.Errorf("scan registro: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339Nano, recordedAt); err == nil {
			e.Timestamp = ts
		}
		recs, ok := doc.Usuarios[user]
		if !ok {
			recs = &core.UserRecords{Registros: []core.Entry{}}
			doc.Usuarios[user] = recs
		}
		recs.Registros = append(recs.Registros, e)
	}
	if err := entryRows.Err(); err != nil {
		return core.Document{}, false, fmt.Errorf("iterate registros: %w", err)
	}

	hasMeta := false
	var lastUpdate string
	err = s.db.QueryRowContext(ctx,
		`SELECT valor FROM metadados WHERE chave = ?`, metaLastUpdate).Scan(&lastUpdate)
	switch {
	case err == sql.ErrNoRows:
	case err != nil:
		return core.Document{}, false, fmt.Errorf("query metadados: %w", err)
	default:
		hasMeta = true
		if ts, perr := time.Parse(time.RFC3339Nano, lastUpdate); perr == nil {
			doc.UltimaAtualizacao = &ts
		}
	}

	if len(doc.Usuarios) == 0 && !hasMeta {
		return core.Document{}, false, nil
	}
	return doc, true, nil
}

// Save replaces the stored document in one transaction.
func (s *Store) Save(ctx context.Context, doc core.Document) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM registros`); err != nil {
		return fmt.Errorf("clear registros: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM usuarios`); err != nil {
		return fmt.Errorf("clear usuarios: %w", err)
	}

	for user, recs := range doc.Usuarios {
		if _, err := tx.ExecContext(ctx, `INSERT INTO usuarios (nome) VALUES (?)`, user); err != nil {
			return fmt.Errorf("insert usuario %s: %w", user, err)
		}
		for _, e := range recs.Registros {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO registros (usuario, data, minutos, horas, descricao, registrado_em)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				user, e.Date, e.Minutes, e.Hours, e.Description, e.Timestamp.Format(time.RFC3339Nano))
			if err != nil {
				return fmt.Errorf("insert registro for %s: %w", user, err)
			}
		}
	}

	if doc.UltimaAtualizacao != nil {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO metadados (chave, valor) VALUES (?, ?)
			 ON CONFLICT(chave) DO UPDATE SET valor = excluded.valor`,
			metaLastUpdate, doc.UltimaAtualizacao.Format(time.RFC3339Nano))
	} else {
		_, err = tx.ExecContext(ctx, `DELETE FROM metadados WHERE chave = ?`, metaLastUpdate)
	}
	if err != nil {
		return fmt.Errorf("update metadados: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
