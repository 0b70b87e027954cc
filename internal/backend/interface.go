// Package backend selects and builds the durable store behind the
// ledger.
package backend

import (
	"context"
	"fmt"

	"expensetracker/internal/core"
)

// Store is the durable home of the ledger. Save overwrites the whole
// stored sequence in ledger order; Load returns an empty slice when
// nothing has been stored yet.
type Store interface {
	Load(ctx context.Context) ([]core.Record, error)
	Save(ctx context.Context, records []core.Record) error
	Close() error
}

// Type names a backend implementation.
type Type string

const (
	JSONBackend   Type = "json"
	SQLiteBackend Type = "sqlite"
	MemoryBackend Type = "memory"
)

// String implements fmt.Stringer.
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is known.
func (t Type) IsValid() bool {
	switch t {
	case JSONBackend, SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// Types returns all valid backend types.
func Types() []Type {
	return []Type{JSONBackend, SQLiteBackend, MemoryBackend}
}

// Config holds what the factory needs to build a store.
type Config struct {
	Type Type

	// JSON backend
	StorePath string

	// SQLite backend
	SQLiteDBPath string
}

// Validate checks the configuration against the selected type.
func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid backend type %q, valid types: %v", c.Type, Types())
	}
	switch c.Type {
	case JSONBackend:
		if c.StorePath == "" {
			return fmt.Errorf("store path is required for the json backend")
		}
	case SQLiteBackend:
		if c.SQLiteDBPath == "" {
			return fmt.Errorf("database path is required for the sqlite backend")
		}
	}
	return nil
}
