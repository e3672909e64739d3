package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ponto/internal/core"
)

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "horas.json")
	st := New(path)
	ctx := context.Background()

	now := time.Date(2023, 3, 20, 10, 0, 0, 0, time.UTC)
	doc := core.NewDocument([]string{"Samuel", "Caio"})
	doc.Usuarios["Samuel"].Registros = []core.Entry{
		core.NewEntry("20/03/2023", 555, "plantão", now),
	}
	doc.UltimaAtualizacao = &now

	if err := st.Save(ctx, doc); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, found, err := st.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !found {
		t.Fatalf("Load reported no document after Save")
	}
	got := loaded.Usuarios["Samuel"].Registros
	if len(got) != 1 || got[0].Minutes != 555 || got[0].Hours != 9.25 {
		t.Fatalf("entries = %+v", got)
	}
	if got[0].Description != "plantão" {
		t.Fatalf("description = %q", got[0].Description)
	}
	if loaded.UltimaAtualizacao == nil || !loaded.UltimaAtualizacao.Equal(now) {
		t.Fatalf("ultima_atualizacao = %v, want %v", loaded.UltimaAtualizacao, now)
	}
	if len(loaded.Usuarios["Caio"].Registros) != 0 {
		t.Fatalf("Caio should have no entries")
	}
}

func TestLoadMissingFile(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "ausente.json"))

	_, found, err := st.Load(context.Background())
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	if found {
		t.Fatalf("missing file reported as found")
	}
}

func TestLoadCorruptFileBacksUp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "horas.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	st := New(path)

	_, _, err := st.Load(context.Background())
	if err == nil {
		t.Fatalf("corrupt file must error")
	}

	if _, statErr := os.Stat(path + ".corrupt"); statErr != nil {
		t.Fatalf("corrupt backup missing: %v", statErr)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Fatalf("original corrupt file should have been moved aside")
	}
}

func TestSaveKeepsPortugueseKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "horas.json")
	st := New(path)

	now := time.Date(2023, 3, 20, 10, 0, 0, 0, time.UTC)
	doc := core.NewDocument([]string{"Samuel"})
	doc.Usuarios["Samuel"].Registros = []core.Entry{
		core.NewEntry("20/03/2023", 60, "", now),
	}
	doc.UltimaAtualizacao = &now

	if err := st.Save(context.Background(), doc); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	raw := string(data)
	for _, key := range []string{`"usuarios"`, `"registros"`, `"data"`, `"minutos"`, `"horas"`, `"ultima_atualizacao"`} {
		if !strings.Contains(raw, key) {
			t.Fatalf("serialized document missing key %s:\n%s", key, raw)
		}
	}
}

func TestSaveLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "horas.json")
	st := New(path)

	if err := st.Save(context.Background(), core.NewDocument([]string{"Samuel"})); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind")
	}
}
