// Package services wires the ledger, its durable store and the
// activity log into the operations the presentation layer calls.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"expensetracker/internal/activity"
	"expensetracker/internal/backend"
	"expensetracker/internal/core"
	"expensetracker/internal/ledger"
	"expensetracker/internal/log"
	"expensetracker/internal/storage"
)

// Summary carries the statistics block for a view.
type Summary struct {
	Total        core.Money
	MonthTotal   core.Money // calendar month containing now
	DailyAverage float64    // currency units per day over the view's date span
	Highest      *core.Record
	Lowest       *core.Record
}

// LedgerService owns the single Ledger instance and coordinates
// validation, persistence and the activity log around it. Every
// mutation persists immediately; a failed save keeps the in-memory
// ledger authoritative and surfaces the error.
type LedgerService struct {
	ledger *ledger.Ledger
	store  backend.Store
	log    *activity.Log
	logger *log.Logger
	now    func() time.Time
}

func NewLedgerService(store backend.Store, logger *log.Logger) *LedgerService {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &LedgerService{
		ledger: ledger.New(nil),
		store:  store,
		log:    activity.New(),
		logger: logger.WithComponent(log.ComponentLedger),
		now:    time.Now,
	}
}

// Load initializes the ledger from the store. A corrupt store degrades
// to an empty ledger: the error is returned so the surface can report
// it, but the service stays usable.
func (s *LedgerService) Load(ctx context.Context) error {
	records, err := s.store.Load(ctx)
	if err != nil {
		s.ledger = ledger.New(nil)
		if errors.Is(err, storage.ErrCorruptStore) {
			s.logger.Error("store unreadable, starting with empty ledger", log.FieldError, err)
			s.log.Append("load failed: store unreadable, starting empty")
			return err
		}
		return fmt.Errorf("load store: %w", err)
	}
	s.ledger = ledger.New(records)
	s.logger.Info("ledger loaded", log.FieldOperation, log.OpLoad, log.FieldCount, len(records))
	s.log.Append(fmt.Sprintf("loaded %d expenses", len(records)))
	return nil
}

// Add validates the candidate, appends it to the ledger and persists.
// Validation failure leaves the ledger untouched.
func (s *LedgerService) Add(ctx context.Context, in core.RecordInput) (core.Record, error) {
	fields, err := in.Validate()
	if err != nil {
		return core.Record{}, err
	}
	rec := s.ledger.Add(fields)
	s.logger.Info("expense added",
		log.FieldOperation, log.OpAdd,
		log.FieldID, rec.ID,
		log.FieldAmountCents, rec.Amount.Cents,
		log.FieldCategory, rec.Category,
		log.FieldDate, rec.Date.String())
	s.log.Append(fmt.Sprintf("added #%d %q %s (%s)", rec.ID, rec.Description, rec.Amount, rec.Category))
	return rec, s.persist(ctx)
}

// Update validates the candidate and overwrites the record with the
// given id in place.
func (s *LedgerService) Update(ctx context.Context, id int64, in core.RecordInput) (core.Record, error) {
	fields, err := in.Validate()
	if err != nil {
		return core.Record{}, err
	}
	rec, err := s.ledger.Update(id, fields)
	if err != nil {
		return core.Record{}, err
	}
	s.logger.Info("expense updated", log.FieldOperation, log.OpUpdate, log.FieldID, rec.ID)
	s.log.Append(fmt.Sprintf("updated #%d %q %s (%s)", rec.ID, rec.Description, rec.Amount, rec.Category))
	return rec, s.persist(ctx)
}

// Delete removes the record with the given id.
func (s *LedgerService) Delete(ctx context.Context, id int64) error {
	if err := s.ledger.Delete(id); err != nil {
		return err
	}
	s.logger.Info("expense deleted", log.FieldOperation, log.OpDelete, log.FieldID, id)
	s.log.Append(fmt.Sprintf("deleted #%d", id))
	return s.persist(ctx)
}

// Get returns the record with the given id.
func (s *LedgerService) Get(id int64) (core.Record, error) {
	return s.ledger.Get(id)
}

// Records returns the full ledger in insertion order.
func (s *LedgerService) Records() []core.Record {
	return s.ledger.Records()
}

// View derives the filtered record list for tabular display.
func (s *LedgerService) View(c ledger.Criteria) []core.Record {
	return ledger.Apply(s.ledger.Records(), c)
}

// Summarize computes the statistics block for the given view. The
// month total covers the calendar month containing now.
func (s *LedgerService) Summarize(records []core.Record) Summary {
	highest, lowest := ledger.Extremes(records)
	return Summary{
		Total:        ledger.Total(records),
		MonthTotal:   ledger.MonthlyTotal(records, s.now().Format("2006-01")),
		DailyAverage: ledger.DailyAverage(records),
		Highest:      highest,
		Lowest:       lowest,
	}
}

// CategoryTotals returns the category breakdown for chart rendering.
func (s *LedgerService) CategoryTotals(records []core.Record) []core.CategoryAmount {
	return ledger.CategoryTotals(records)
}

// Activity returns the bounded activity-log entries, oldest first.
func (s *LedgerService) Activity() []string {
	return s.log.Entries()
}

// Import replaces the whole ledger with the file's contents, then
// persists to the configured store. No merging.
func (s *LedgerService) Import(ctx context.Context, path string) (int, error) {
	records, err := storage.Import(path)
	if err != nil {
		return 0, err
	}
	s.ledger.Replace(records)
	s.logger.Info("ledger imported", log.FieldOperation, log.OpImport, log.FieldPath, path, log.FieldCount, len(records))
	s.log.Append(fmt.Sprintf("imported %d expenses from %s", len(records), path))
	return len(records), s.persist(ctx)
}

// Export writes the full ledger to the given path, shape selected by
// extension.
func (s *LedgerService) Export(ctx context.Context, path string) error {
	if err := storage.Export(path, s.ledger.Records()); err != nil {
		return err
	}
	s.logger.Info("ledger exported", log.FieldOperation, log.OpExport, log.FieldPath, path, log.FieldCount, s.ledger.Len())
	s.log.Append(fmt.Sprintf("exported %d expenses to %s", s.ledger.Len(), path))
	return nil
}

// Close releases the store.
func (s *LedgerService) Close() error {
	return s.store.Close()
}

func (s *LedgerService) persist(ctx context.Context) error {
	if err := s.store.Save(ctx, s.ledger.Records()); err != nil {
		s.logger.Error("save failed, in-memory ledger remains authoritative", log.FieldOperation, log.OpSave, log.FieldError, err)
		return err
	}
	return nil
}
