package curriculum

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
)

const sampleYAML = `
tiers:
  - name: iniciante
    min_semester: 1
    topics: [Logica, Matematica]
  - name: avancado
    min_semester: 4
    topics:
      - Compiladores
`

func TestFileSourceLoadsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	c, err := FileSource{Path: path}.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []Tier{
		{Name: TierIniciante, MinSemester: 1, Topics: []string{"Logica", "Matematica"}},
		{Name: TierAvancado, MinSemester: 4, Topics: []string{"Compiladores"}},
	}
	if diff := cmp.Diff(want, c.Tiers()); diff != "" {
		t.Fatalf("tiers mismatch (-want +got):\n%s", diff)
	}
	if c.Source() != "file:"+path {
		t.Fatalf("unexpected source %q", c.Source())
	}
}

func TestParseCatalogYAMLRejectsUnknownFields(t *testing.T) {
	_, err := ParseCatalogYAML("test", []byte("tiers:\n  - name: iniciante\n    level: 1\n"))
	if !errors.Is(err, ErrInvalidCatalog) {
		t.Fatalf("expected ErrInvalidCatalog, got %v", err)
	}
}

func TestFileSourceMissingFile(t *testing.T) {
	_, err := FileSource{Path: filepath.Join(t.TempDir(), "missing.yaml")}.Load(context.Background())
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestBuiltinSourceHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (BuiltinSource{}).Load(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestPGSourceLoadsOrderedRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	rows := sqlmock.NewRows([]string{"name", "min_semester", "title"}).
		AddRow("iniciante", 1, "Logica de Programacao").
		AddRow("iniciante", 1, "Matematica Discreta").
		AddRow("intermediario", 3, "Estrutura de Dados").
		AddRow("avancado", 5, nil)
	mock.ExpectQuery("SELECT t.name, t.min_semester, p.title").WillReturnRows(rows)

	c, err := (&PGSource{DB: db}).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []Tier{
		{Name: TierIniciante, MinSemester: 1, Topics: []string{"Logica de Programacao", "Matematica Discreta"}},
		{Name: TierIntermediario, MinSemester: 3, Topics: []string{"Estrutura de Dados"}},
		{Name: TierAvancado, MinSemester: 5},
	}
	if diff := cmp.Diff(want, c.Tiers()); diff != "" {
		t.Fatalf("tiers mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGSourceQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	mock.ExpectQuery("SELECT").WillReturnError(errors.New("boom"))

	if _, err := (&PGSource{DB: db}).Load(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}
