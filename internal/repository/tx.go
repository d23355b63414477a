package repository

import (
	"context"
	"database/sql"
	"fmt"
)

type SQLiteTransactor struct {
	db *sql.DB
}

func NewSQLiteTransactor(db *sql.DB) *SQLiteTransactor { return &SQLiteTransactor{db: db} }

// InTx commits when fn returns nil and rolls back otherwise.
func (t *SQLiteTransactor) InTx(ctx context.Context, fn func(Stores) error) error {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(Stores{
		Sessions:   NewSessionSQLite(tx),
		Readings:   NewReadingSQLite(tx),
		OvenEvents: NewOvenEventSQLite(tx),
	}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
