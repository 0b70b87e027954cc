package backend

import (
	"fmt"

	"expensetracker/internal/log"
	"expensetracker/internal/storage"
)

// Factory creates stores from configuration.
type Factory struct {
	logger *log.Logger
}

// NewFactory creates a backend factory.
func NewFactory(logger *log.Logger) *Factory {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Factory{logger: logger.WithComponent(log.ComponentStorage)}
}

// Create builds the store named by the configuration.
func (f *Factory) Create(cfg Config) (Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Type {
	case JSONBackend:
		f.logger.Info("using JSON store", log.FieldBackend, cfg.Type.String(), log.FieldPath, cfg.StorePath)
		return storage.NewJSONStore(cfg.StorePath), nil

	case SQLiteBackend:
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		f.logger.Info("using SQLite store", log.FieldBackend, cfg.Type.String(), log.FieldPath, cfg.SQLiteDBPath)
		return repo, nil

	case MemoryBackend:
		f.logger.Info("using in-memory store", log.FieldBackend, cfg.Type.String())
		return NewMemoryStore(nil), nil
	}
	return nil, fmt.Errorf("unsupported backend type: %s", cfg.Type)
}
