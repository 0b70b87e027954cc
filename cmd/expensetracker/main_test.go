package main

import (
	"context"
	"errors"
	"testing"

	"expensetracker/internal/core"
	"expensetracker/internal/services"
)

type trackingStore struct {
	closed   bool
	closeErr error
}

func (s *trackingStore) Load(context.Context) ([]core.Record, error) { return nil, nil }
func (s *trackingStore) Save(context.Context, []core.Record) error   { return nil }
func (s *trackingStore) Close() error {
	s.closed = true
	return s.closeErr
}

func TestCloseReleasesStoreAfterFailedCommand(t *testing.T) {
	store := &trackingStore{}
	a := &app{svc: services.NewLedgerService(store, nil)}

	runErr := errors.New("command failed")
	if err := a.close(runErr); err != runErr {
		t.Fatalf("command error not preserved: %v", err)
	}
	if !store.closed {
		t.Fatalf("store not closed after a failing command")
	}
}

func TestCloseSurfacesCloseError(t *testing.T) {
	store := &trackingStore{closeErr: errors.New("close failed")}
	a := &app{svc: services.NewLedgerService(store, nil)}

	if err := a.close(nil); err != store.closeErr {
		t.Fatalf("expected close error, got %v", err)
	}
}

func TestCloseBeforeSetupIsSafe(t *testing.T) {
	a := &app{}
	if err := a.close(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
