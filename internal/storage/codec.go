// Package storage persists the ledger. The canonical shape is a JSON
// array of five-field objects; a flat tabular shape (CSV) and a
// spreadsheet shape (XLSX) exist for import/export. A SQLite
// repository offers an alternative durable backend with the same
// contract.
package storage

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"expensetracker/internal/core"
)

var (
	// ErrCorruptStore reports an unreadable persisted or imported file.
	// The caller degrades to an empty ledger and surfaces the failure;
	// data is never silently fabricated.
	ErrCorruptStore = errors.New("corrupt store file")

	// ErrWriteFailure reports a failed save or export. The in-memory
	// ledger stays authoritative until the next successful save.
	ErrWriteFailure = errors.New("store write failed")
)

// storedRecord is the canonical on-disk shape: one object per record
// with the five public fields, amount as a decimal number.
type storedRecord struct {
	ID          int64   `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
}

// columns is the tabular header, in canonical field order.
var columns = []string{"id", "description", "amount", "category", "date"}

func toStored(records []core.Record) []storedRecord {
	out := make([]storedRecord, 0, len(records))
	for _, r := range records {
		out = append(out, storedRecord{
			ID:          r.ID,
			Description: r.Description,
			Amount:      r.Amount.Units(),
			Category:    r.Category,
			Date:        r.Date.String(),
		})
	}
	return out
}

func fromStored(stored []storedRecord) ([]core.Record, error) {
	out := make([]core.Record, 0, len(stored))
	for _, s := range stored {
		date, err := core.ParseDate(s.Date)
		if err != nil {
			return nil, fmt.Errorf("record %d has date %q: %w", s.ID, s.Date, ErrCorruptStore)
		}
		out = append(out, core.Record{
			ID:          s.ID,
			Description: s.Description,
			Amount:      core.MoneyFromUnits(s.Amount),
			Category:    s.Category,
			Date:        date,
		})
	}
	return out, nil
}

// EncodeJSON serializes records in the canonical shape, indented the
// way the store file has always looked.
func EncodeJSON(records []core.Record) ([]byte, error) {
	data, err := json.MarshalIndent(toStored(records), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode ledger: %w", err)
	}
	return data, nil
}

// DecodeJSON parses the canonical shape. Any parse failure is
// ErrCorruptStore.
func DecodeJSON(data []byte) ([]core.Record, error) {
	var stored []storedRecord
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptStore, err)
	}
	return fromStored(stored)
}

// EncodeCSV serializes records in the flat tabular shape: a header row
// followed by one row per record.
func EncodeCSV(records []core.Record) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(columns); err != nil {
		return nil, fmt.Errorf("encode csv header: %w", err)
	}
	for _, s := range toStored(records) {
		row := []string{
			strconv.FormatInt(s.ID, 10),
			s.Description,
			strconv.FormatFloat(s.Amount, 'f', 2, 64),
			s.Category,
			s.Date,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("encode csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("encode csv: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeCSV parses the tabular shape. Columns are located by header
// name so files written by other tools import cleanly; a missing id
// column yields zero ids, which the ledger reassigns on replacement.
func DecodeCSV(data []byte) ([]core.Record, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptStore, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rowsToRecords(rows)
}

// rowsToRecords converts a header row plus data rows (CSV or XLSX)
// into records.
func rowsToRecords(rows [][]string) ([]core.Record, error) {
	index := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		index[name] = i
	}
	for _, required := range []string{"description", "amount", "category", "date"} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrCorruptStore, required)
		}
	}

	cell := func(row []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	stored := make([]storedRecord, 0, len(rows)-1)
	for n, row := range rows[1:] {
		amount, err := strconv.ParseFloat(cell(row, "amount"), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d has amount %q", ErrCorruptStore, n+2, cell(row, "amount"))
		}
		var id int64
		if raw := cell(row, "id"); raw != "" {
			id, err = strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d has id %q", ErrCorruptStore, n+2, raw)
			}
		}
		stored = append(stored, storedRecord{
			ID:          id,
			Description: cell(row, "description"),
			Amount:      amount,
			Category:    cell(row, "category"),
			Date:        cell(row, "date"),
		})
	}
	return fromStored(stored)
}
