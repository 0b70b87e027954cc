package backend

import (
	"context"

	"expensetracker/internal/core"
)

// MemoryStore keeps records in memory only. It backs the memory
// backend and the service tests; contents are lost on exit.
type MemoryStore struct {
	records []core.Record
	saves   int

	// SaveErr, when set, is returned by every Save. Tests use it to
	// exercise write-failure handling.
	SaveErr error
}

func NewMemoryStore(records []core.Record) *MemoryStore {
	return &MemoryStore{records: append([]core.Record(nil), records...)}
}

func (s *MemoryStore) Load(_ context.Context) ([]core.Record, error) {
	return append([]core.Record(nil), s.records...), nil
}

func (s *MemoryStore) Save(_ context.Context, records []core.Record) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.records = append([]core.Record(nil), records...)
	s.saves++
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}

// Saves returns how many saves have succeeded.
func (s *MemoryStore) Saves() int {
	return s.saves
}
