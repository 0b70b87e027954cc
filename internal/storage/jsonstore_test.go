package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"expensetracker/internal/core"
)

func testRecords(t *testing.T) []core.Record {
	t.Helper()
	coffee, err := core.ParseDate("2025-01-10")
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	bus, err := core.ParseDate("2025-01-15")
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	return []core.Record{
		{ID: 1, Description: "Coffee", Amount: core.Money{Cents: 450}, Category: "Food", Date: coffee},
		{ID: 2, Description: "Bus", Amount: core.Money{Cents: 200}, Category: "Transportation", Date: bus},
	}
}

func TestJSONStoreMissingFileIsEmptyLedger(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "expenses.json"))

	records, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty ledger, got %d records", len(records))
	}
}

func TestJSONStoreRoundTrip(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "expenses.json"))
	want := testRecords(t)

	if err := store.Save(context.Background(), want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestJSONStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := NewJSONStore(path).Load(context.Background())
	if !errors.Is(err, ErrCorruptStore) {
		t.Fatalf("expected ErrCorruptStore, got %v", err)
	}
}

func TestJSONStoreBadDateIsCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.json")
	content := `[{"id":1,"description":"Coffee","amount":4.5,"category":"Food","date":"2025-02-30"}]`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := NewJSONStore(path).Load(context.Background())
	if !errors.Is(err, ErrCorruptStore) {
		t.Fatalf("expected ErrCorruptStore, got %v", err)
	}
}

func TestJSONStoreSaveFailure(t *testing.T) {
	dir := t.TempDir()
	// A directory at the store path makes the write fail.
	if err := os.Mkdir(filepath.Join(dir, "expenses.json"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	store := NewJSONStore(filepath.Join(dir, "expenses.json"))
	err := store.Save(context.Background(), testRecords(t))
	if !errors.Is(err, ErrWriteFailure) {
		t.Fatalf("expected ErrWriteFailure, got %v", err)
	}
}
