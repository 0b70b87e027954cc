package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"expensetracker/internal/core"
)

func TestLoadSettingsMissingFileYieldsDefaults(t *testing.T) {
	s, err := LoadSettings(filepath.Join(t.TempDir(), "expensetracker.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(s.Categories, core.Categories) {
		t.Fatalf("expected default categories, got %v", s.Categories)
	}
	if s.Currency != "$" {
		t.Fatalf("expected default currency, got %q", s.Currency)
	}
}

func TestLoadSettingsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expensetracker.yaml")
	want := &Settings{
		Categories: []string{"Rent", "Groceries", "Fun"},
		Currency:   "€",
	}
	if err := want.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestLoadSettingsBackfillsOmittedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expensetracker.yaml")
	if err := os.WriteFile(path, []byte("currency: £\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	s, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Currency != "£" {
		t.Fatalf("expected £, got %q", s.Currency)
	}
	if !reflect.DeepEqual(s.Categories, core.Categories) {
		t.Fatalf("omitted categories should fall back to defaults, got %v", s.Categories)
	}
}

func TestLoadSettingsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expensetracker.yaml")
	if err := os.WriteFile(path, []byte("categories: [unclosed"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadSettings(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestHasCategory(t *testing.T) {
	s := DefaultSettings()
	if !s.HasCategory("Food") {
		t.Fatal("Food should be in the default set")
	}
	if s.HasCategory("food") {
		t.Fatal("category match must be case-sensitive")
	}
	if s.HasCategory("Spelunking") {
		t.Fatal("unknown label should not match")
	}
}
