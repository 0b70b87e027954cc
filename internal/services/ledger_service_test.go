package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"expensetracker/internal/backend"
	"expensetracker/internal/core"
	"expensetracker/internal/ledger"
	"expensetracker/internal/log"
	"expensetracker/internal/storage"
)

func newTestService(t *testing.T) (*LedgerService, *backend.MemoryStore) {
	t.Helper()
	store := backend.NewMemoryStore(nil)
	svc := NewLedgerService(store, nil)
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return svc, store
}

func input(desc, amount, category, date string) core.RecordInput {
	return core.RecordInput{
		Description: desc,
		Amount:      amount,
		Category:    category,
		Date:        date,
	}
}

func TestAddPersistsImmediately(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	rec, err := svc.Add(ctx, input("Coffee", "4.50", "Food", "2025-01-10"))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if rec.ID != 1 || rec.Amount.Cents != 450 {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if store.Saves() != 1 {
		t.Fatalf("expected 1 save, got %d", store.Saves())
	}

	stored, _ := store.Load(ctx)
	if len(stored) != 1 || stored[0].Description != "Coffee" {
		t.Fatalf("store not updated: %+v", stored)
	}
}

func TestAddRejectsInvalidInputWithoutMutating(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		in   core.RecordInput
		want error
	}{
		{input("   ", "4.50", "Food", "2025-01-10"), core.ErrEmptyDescription},
		{input("Coffee", "0", "Food", "2025-01-10"), core.ErrInvalidAmount},
		{input("Coffee", "-1", "Food", "2025-01-10"), core.ErrInvalidAmount},
		{input("Coffee", "4.50", "Food", "2025-02-30"), core.ErrInvalidDate},
	}
	for _, tc := range cases {
		if _, err := svc.Add(ctx, tc.in); !errors.Is(err, tc.want) {
			t.Fatalf("input %+v: expected %v, got %v", tc.in, tc.want, err)
		}
	}
	if len(svc.Records()) != 0 {
		t.Fatalf("rejected input mutated the ledger")
	}
	if store.Saves() != 0 {
		t.Fatalf("rejected input reached the store")
	}
}

func TestUpdateAndDelete(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	rec, err := svc.Add(ctx, input("Coffee", "4.50", "Food", "2025-01-10"))
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	updated, err := svc.Update(ctx, rec.ID, input("Espresso", "3.00", "Food", "2025-01-11"))
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != rec.ID || updated.Amount.Cents != 300 {
		t.Fatalf("unexpected record: %+v", updated)
	}

	if _, err := svc.Update(ctx, 99, input("x", "1", "Other", "2025-01-01")); !errors.Is(err, ledger.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, 99); !errors.Is(err, ledger.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := svc.Delete(ctx, rec.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(svc.Records()) != 0 {
		t.Fatalf("record survived delete")
	}
	if store.Saves() != 3 {
		t.Fatalf("expected 3 saves, got %d", store.Saves())
	}
}

func TestSaveFailureKeepsLedgerAuthoritative(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	store.SaveErr = fmt.Errorf("disk gone: %w", storage.ErrWriteFailure)
	_, err := svc.Add(ctx, input("Coffee", "4.50", "Food", "2025-01-10"))
	if !errors.Is(err, storage.ErrWriteFailure) {
		t.Fatalf("expected ErrWriteFailure, got %v", err)
	}

	// The record stays in memory despite the failed save.
	if len(svc.Records()) != 1 {
		t.Fatalf("record lost on save failure")
	}

	// The next successful mutation persists everything.
	store.SaveErr = nil
	if _, err := svc.Add(ctx, input("Bus", "2.00", "Transportation", "2025-01-15")); err != nil {
		t.Fatalf("add: %v", err)
	}
	stored, _ := store.Load(ctx)
	if len(stored) != 2 {
		t.Fatalf("expected both records persisted, got %d", len(stored))
	}
}

type corruptStore struct{}

func (corruptStore) Load(context.Context) ([]core.Record, error) {
	return nil, fmt.Errorf("expenses.json: %w", storage.ErrCorruptStore)
}
func (corruptStore) Save(context.Context, []core.Record) error { return nil }
func (corruptStore) Close() error                              { return nil }

func TestLoadCorruptStoreDegradesToEmpty(t *testing.T) {
	svc := NewLedgerService(corruptStore{}, nil)

	err := svc.Load(context.Background())
	if !errors.Is(err, storage.ErrCorruptStore) {
		t.Fatalf("expected ErrCorruptStore, got %v", err)
	}
	// The service stays usable with an empty ledger.
	if len(svc.Records()) != 0 {
		t.Fatalf("corrupt load should yield an empty ledger")
	}
	if _, err := svc.Add(context.Background(), input("Coffee", "4.50", "Food", "2025-01-10")); err != nil {
		t.Fatalf("add after corrupt load: %v", err)
	}
}

func TestSummarizeUsesCurrentMonth(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	svc.now = func() time.Time {
		return time.Date(2025, 1, 20, 12, 0, 0, 0, time.Local)
	}

	if _, err := svc.Add(ctx, input("Coffee", "4.50", "Food", "2025-01-10")); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.Add(ctx, input("Cinema", "15.00", "Entertainment", "2024-12-31")); err != nil {
		t.Fatalf("add: %v", err)
	}

	sum := svc.Summarize(svc.Records())
	if sum.Total.Cents != 1950 {
		t.Fatalf("expected total 1950, got %d", sum.Total.Cents)
	}
	if sum.MonthTotal.Cents != 450 {
		t.Fatalf("expected month total 450, got %d", sum.MonthTotal.Cents)
	}
	if sum.Highest == nil || sum.Highest.Description != "Cinema" {
		t.Fatalf("unexpected highest: %+v", sum.Highest)
	}
	if sum.Lowest == nil || sum.Lowest.Description != "Coffee" {
		t.Fatalf("unexpected lowest: %+v", sum.Lowest)
	}
}

func TestViewFilters(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	svc.Add(ctx, input("Coffee", "4.50", "Food", "2025-01-10"))
	svc.Add(ctx, input("Bus", "2.00", "Transportation", "2025-01-15"))

	view := svc.View(ledger.Criteria{Category: "Food"})
	if len(view) != 1 || view[0].Description != "Coffee" {
		t.Fatalf("unexpected view: %+v", view)
	}
}

func TestImportReplacesLedger(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	svc.Add(ctx, input("Old", "1.00", "Other", "2025-01-01"))

	path := filepath.Join(t.TempDir(), "import.json")
	content := `[
  {"id": 5, "description": "Coffee", "amount": 4.5, "category": "Food", "date": "2025-01-10"},
  {"id": 0, "description": "Bus", "amount": 2.0, "category": "Transportation", "date": "2025-01-15"}
]`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	n, err := svc.Import(ctx, path)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 imported, got %d", n)
	}

	records := svc.Records()
	if len(records) != 2 || records[0].Description != "Coffee" {
		t.Fatalf("import did not replace the ledger: %+v", records)
	}
	if records[1].ID <= 0 {
		t.Fatalf("imported zero id was not normalized: %+v", records[1])
	}

	stored, _ := store.Load(ctx)
	if len(stored) != 2 {
		t.Fatalf("import was not persisted: %+v", stored)
	}
}

func TestImportBadFileLeavesLedgerIntact(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	svc.Add(ctx, input("Keep", "1.00", "Other", "2025-01-01"))

	path := filepath.Join(t.TempDir(), "import.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := svc.Import(ctx, path); !errors.Is(err, storage.ErrCorruptStore) {
		t.Fatalf("expected ErrCorruptStore, got %v", err)
	}
	if len(svc.Records()) != 1 {
		t.Fatalf("failed import mutated the ledger")
	}
}

func TestExportRoundTrip(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	svc.Add(ctx, input("Coffee", "4.50", "Food", "2025-01-10"))

	path := filepath.Join(t.TempDir(), "backup.csv")
	if err := svc.Export(ctx, path); err != nil {
		t.Fatalf("export: %v", err)
	}

	records, err := storage.Import(path)
	if err != nil {
		t.Fatalf("reimport: %v", err)
	}
	if len(records) != 1 || records[0].Description != "Coffee" {
		t.Fatalf("unexpected export contents: %+v", records)
	}
}

func TestStructuredLogsCarryOperationNames(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(log.Config{
		Handler:   slog.NewTextHandler(&buf, nil),
		Component: log.ComponentApp,
	})
	store := backend.NewMemoryStore(nil)
	svc := NewLedgerService(store, logger)
	ctx := context.Background()

	if err := svc.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	rec, err := svc.Add(ctx, input("Coffee", "4.50", "Food", "2025-01-10"))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.Update(ctx, rec.ID, input("Espresso", "3.00", "Food", "2025-01-11")); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := svc.Delete(ctx, rec.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	store.SaveErr = fmt.Errorf("disk gone: %w", storage.ErrWriteFailure)
	svc.Add(ctx, input("Bus", "2.00", "Transportation", "2025-01-15"))

	out := buf.String()
	for _, op := range []string{log.OpLoad, log.OpAdd, log.OpUpdate, log.OpDelete, log.OpSave} {
		if !strings.Contains(out, log.FieldOperation+"="+op) {
			t.Fatalf("log output missing operation %q:\n%s", op, out)
		}
	}
}

func TestActivityRecordsMutations(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	rec, _ := svc.Add(ctx, input("Coffee", "4.50", "Food", "2025-01-10"))
	svc.Delete(ctx, rec.ID)

	entries := svc.Activity()
	if len(entries) != 3 {
		t.Fatalf("expected load+add+delete entries, got %d: %v", len(entries), entries)
	}
}
