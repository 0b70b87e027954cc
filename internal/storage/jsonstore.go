package storage

import (
	"context"
	"errors"
	"fmt"
	"os"

	"expensetracker/internal/core"
)

// JSONStore persists the ledger as a JSON array at a fixed path,
// overwriting the whole file on every save. This is the canonical
// store (default path expenses.json).
type JSONStore struct {
	path string
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Path returns the store file path.
func (s *JSONStore) Path() string {
	return s.path
}

// Load reads the stored ledger. A missing file is an empty ledger, not
// an error; unparseable content is ErrCorruptStore.
func (s *JSONStore) Load(ctx context.Context) ([]core.Record, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	records, err := DecodeJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	return records, nil
}

// Save overwrites the store file with the full ledger.
func (s *JSONStore) Save(ctx context.Context, records []core.Record) error {
	data, err := EncodeJSON(records)
	if err != nil {
		return err
	}
	return writeFile(s.path, data)
}

func (s *JSONStore) Close() error {
	return nil
}
