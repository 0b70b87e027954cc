package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"expensetracker/internal/core"
)

// Export writes the full ledger to a user-chosen path. The shape is
// selected by extension: .csv tabular, .xlsx spreadsheet, anything
// else the canonical JSON.
func Export(path string, records []core.Record) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		data, err := EncodeCSV(records)
		if err != nil {
			return err
		}
		return writeFile(path, data)
	case ".xlsx":
		return WriteXLSX(path, records)
	default:
		data, err := EncodeJSON(records)
		if err != nil {
			return err
		}
		return writeFile(path, data)
	}
}

// Import reads a user-chosen file, extension-selected the same way as
// Export. The result replaces the ledger wholesale; merging is the
// caller's non-problem.
func Import(path string) ([]core.Record, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return ReadXLSX(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return DecodeCSV(data)
	}
	return DecodeJSON(data)
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, ErrWriteFailure)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w: %v", path, ErrWriteFailure, err)
	}
	return nil
}
