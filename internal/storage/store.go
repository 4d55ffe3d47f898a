// Package storage persists expense records in a file-backed SQLite database
// with one table per calendar month, and executes ad-hoc SQL against it.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"expensetracker/internal/core"

	_ "modernc.org/sqlite"
)

// Store wraps the SQLite database holding the twelve month tables.
// A single *sql.DB is shared across requests; database/sql pools
// connections internally.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at dbPath and ensures the
// month-table schema exists. Safe to call on every program start: schema
// creation is idempotent and never alters data in existing tables.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
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

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// InsertBatch appends every record as a new row in the table for month
// (1-12). Always additive: repeated batches accumulate rows, nothing is
// ever truncated or upserted. The batch lands in one transaction.
func (s *Store) InsertBatch(ctx context.Context, month int, records []core.Record) error {
	if !core.ValidMonth(month) {
		return core.ErrInvalidMonth
	}
	name := core.MonthName(month)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin batch transaction: %w", err)
	}
	defer tx.Rollback()

	// Month names come from the fixed calendar set, never from user input.
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		`INSERT INTO %s (Date, Category, Payment_Mode, Description, Amount_Paid, Cashback, Month)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`, name))
	if err != nil {
		return fmt.Errorf("prepare insert for %s: %w", name, err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx,
			r.Date, r.Category, r.PaymentMode, r.Description, r.AmountPaid, r.Cashback, r.Month); err != nil {
			return fmt.Errorf("insert record into %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch for %s: %w", name, err)
	}

	slog.InfoContext(ctx, "Batch inserted",
		"table", name,
		"rows", len(records))
	return nil
}

// ViewMonth returns every row of the table for month (1-12).
func (s *Store) ViewMonth(ctx context.Context, month int) (*Result, error) {
	if !core.ValidMonth(month) {
		return nil, core.ErrInvalidMonth
	}
	return s.Query(ctx, "SELECT * FROM "+core.MonthName(month))
}
