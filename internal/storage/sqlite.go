package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"expensetracker/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteRepository is the alternative durable backend. It keeps the
// same whole-ledger Load/Save contract as the JSON store: Save
// rewrites the expenses table in one transaction, Load returns the
// rows in stored ledger order.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Load reads the full ledger in stored order.
func (r *SQLiteRepository) Load(ctx context.Context) ([]core.Record, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, description, amount_cents, category, date
		   FROM expenses ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	var records []core.Record
	for rows.Next() {
		var (
			rec     core.Record
			dateStr string
		)
		if err := rows.Scan(&rec.ID, &rec.Description, &rec.Amount.Cents, &rec.Category, &dateStr); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		rec.Date, err = core.ParseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("expense %d has date %q: %w", rec.ID, dateStr, ErrCorruptStore)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read expenses: %w", err)
	}
	return records, nil
}

// Save replaces the stored ledger with the given records, preserving
// their order. Mirrors the whole-file overwrite of the JSON store.
func (r *SQLiteRepository) Save(ctx context.Context, records []core.Record) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w: %v", ErrWriteFailure, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM expenses`); err != nil {
		return fmt.Errorf("clear expenses: %w: %v", ErrWriteFailure, err)
	}
	for i, rec := range records {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO expenses (position, id, description, amount_cents, category, date)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			i, rec.ID, rec.Description, rec.Amount.Cents, rec.Category, rec.Date.String())
		if err != nil {
			return fmt.Errorf("insert expense %d: %w: %v", rec.ID, ErrWriteFailure, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w: %v", ErrWriteFailure, err)
	}
	return nil
}
