// Package ledger owns the in-memory expense collection and the pure
// functions that derive views and aggregates from it.
package ledger

import (
	"errors"
	"fmt"

	"expensetracker/internal/core"
)

// ErrNotFound reports an update or delete against an id that is not in
// the ledger. The operation is aborted; the ledger is unchanged.
var ErrNotFound = errors.New("expense not found")

// Ledger is the ordered collection of expense records. Insertion order
// is preserved and is the iteration order everywhere. It is owned by a
// single LedgerService instance; there is no concurrent access.
type Ledger struct {
	records []core.Record
}

// New builds a ledger from existing records, typically the loaded
// store contents. The slice is copied.
func New(records []core.Record) *Ledger {
	return &Ledger{records: append([]core.Record(nil), records...)}
}

// Add assigns the next id (max existing + 1; ids are never reused
// after deletion) and appends the record. It cannot fail: the fields
// have already been validated.
func (l *Ledger) Add(f core.Fields) core.Record {
	r := core.Record{
		ID:          l.nextID(),
		Description: f.Description,
		Amount:      f.Amount,
		Category:    f.Category,
		Date:        f.Date,
	}
	l.records = append(l.records, r)
	return r
}

// Update overwrites the fields of the record with the given id,
// preserving its id and position.
func (l *Ledger) Update(id int64, f core.Fields) (core.Record, error) {
	for i := range l.records {
		if l.records[i].ID == id {
			l.records[i].Description = f.Description
			l.records[i].Amount = f.Amount
			l.records[i].Category = f.Category
			l.records[i].Date = f.Date
			return l.records[i], nil
		}
	}
	return core.Record{}, fmt.Errorf("update expense %d: %w", id, ErrNotFound)
}

// Delete removes the record with the given id. Deleting an absent id
// is an error, not a silent no-op.
func (l *Ledger) Delete(id int64) error {
	for i := range l.records {
		if l.records[i].ID == id {
			l.records = append(l.records[:i], l.records[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("delete expense %d: %w", id, ErrNotFound)
}

// Get returns the record with the given id.
func (l *Ledger) Get(id int64) (core.Record, error) {
	for _, r := range l.records {
		if r.ID == id {
			return r, nil
		}
	}
	return core.Record{}, fmt.Errorf("expense %d: %w", id, ErrNotFound)
}

// Records returns the full ledger in insertion order. The slice is a
// copy; views derived from it must not mutate the store.
func (l *Ledger) Records() []core.Record {
	return append([]core.Record(nil), l.records...)
}

// Len returns the number of records.
func (l *Ledger) Len() int {
	return len(l.records)
}

// Replace swaps the entire contents; import is a full replacement, not
// a merge. Records carrying a missing, non-positive or duplicate id
// are assigned fresh sequential ids so the uniqueness invariant holds
// even for files produced by foreign tools.
func (l *Ledger) Replace(records []core.Record) {
	out := append([]core.Record(nil), records...)
	var maxID int64
	for _, r := range out {
		if r.ID > maxID {
			maxID = r.ID
		}
	}
	assigned := make(map[int64]bool, len(out))
	for i := range out {
		if out[i].ID <= 0 || assigned[out[i].ID] {
			maxID++
			out[i].ID = maxID
		}
		assigned[out[i].ID] = true
	}
	l.records = out
}

func (l *Ledger) nextID() int64 {
	var maxID int64
	for _, r := range l.records {
		if r.ID > maxID {
			maxID = r.ID
		}
	}
	return maxID + 1
}
