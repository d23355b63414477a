package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"roast_advisor/internal/models"
)

type ReadingSQLite struct {
	db DBTX
}

func NewReadingSQLite(db DBTX) *ReadingSQLite { return &ReadingSQLite{db: db} }

const (
	insertReadingSQL  = `INSERT INTO readings (id, temp, taken_at, delta_start, delta_prev) VALUES (?, ?, ?, ?, ?)`
	selectReadingsSQL = `SELECT id, temp, taken_at, delta_start, delta_prev FROM readings ORDER BY taken_at ASC, id ASC`
	selectReadingSQL  = `SELECT id, temp, taken_at, delta_start, delta_prev FROM readings WHERE id = ?`
	updateReadingSQL  = `UPDATE readings SET temp = ?, taken_at = ? WHERE id = ?`
	updateDeltasSQL   = `UPDATE readings SET delta_start = ?, delta_prev = ? WHERE id = ?`
	deleteReadingSQL  = `DELETE FROM readings WHERE id = ?`
	deleteReadingsSQL = `DELETE FROM readings`
)

// Append inserts a reading, generating an ID if it has none.
func (r *ReadingSQLite) Append(ctx context.Context, rd models.Reading) error {
	if rd.ID == "" {
		rd.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, insertReadingSQL,
		rd.ID,
		rd.Temp,
		rd.Timestamp.UTC(),
		nullableFloat(rd.DeltaFromStart),
		nullableFloat(rd.DeltaFromPrevious),
	)
	if err != nil {
		return fmt.Errorf("insert reading: %w", err)
	}
	return nil
}

// List returns every reading ordered by time.
func (r *ReadingSQLite) List(ctx context.Context) ([]models.Reading, error) {
	rows, err := r.db.QueryContext(ctx, selectReadingsSQL)
	if err != nil {
		return nil, fmt.Errorf("list readings: %w", err)
	}
	defer rows.Close()

	out := make([]models.Reading, 0, 32)
	for rows.Next() {
		rd, err := scanReading(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rd)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list readings: %w", err)
	}
	return out, nil
}

// Get fetches one reading or ErrNotFound.
func (r *ReadingSQLite) Get(ctx context.Context, id string) (models.Reading, error) {
	rd, err := scanReading(r.db.QueryRowContext(ctx, selectReadingSQL, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Reading{}, ErrNotFound
	}
	return rd, err
}

// Update changes temperature and timestamp; deltas are rewritten by SaveDeltas.
func (r *ReadingSQLite) Update(ctx context.Context, rd models.Reading) error {
	res, err := r.db.ExecContext(ctx, updateReadingSQL, rd.Temp, rd.Timestamp.UTC(), rd.ID)
	if err != nil {
		return fmt.Errorf("update reading %s: %w", rd.ID, err)
	}
	return expectOneRow(res, rd.ID)
}

// Delete removes one reading or returns ErrNotFound.
func (r *ReadingSQLite) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deleteReadingSQL, id)
	if err != nil {
		return fmt.Errorf("delete reading %s: %w", id, err)
	}
	return expectOneRow(res, id)
}

// SaveDeltas rewrites the delta columns of every given reading in one transaction.
// Inside a caller's transaction the updates join it instead of opening a new one.
func (r *ReadingSQLite) SaveDeltas(ctx context.Context, readings []models.Reading) error {
	db, ok := r.db.(*sql.DB)
	if !ok {
		return saveDeltas(ctx, r.db, readings)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin deltas transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := saveDeltas(ctx, tx, readings); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit deltas transaction: %w", err)
	}
	return nil
}

func saveDeltas(ctx context.Context, db DBTX, readings []models.Reading) error {
	for _, rd := range readings {
		if _, err := db.ExecContext(ctx, updateDeltasSQL,
			nullableFloat(rd.DeltaFromStart),
			nullableFloat(rd.DeltaFromPrevious),
			rd.ID,
		); err != nil {
			return fmt.Errorf("update deltas for reading %s: %w", rd.ID, err)
		}
	}
	return nil
}

// DeleteAll clears the reading history.
func (r *ReadingSQLite) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, deleteReadingsSQL); err != nil {
		return fmt.Errorf("delete readings: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReading(row rowScanner) (models.Reading, error) {
	var (
		rd                    models.Reading
		deltaStart, deltaPrev sql.NullFloat64
	)
	if err := row.Scan(&rd.ID, &rd.Temp, &rd.Timestamp, &deltaStart, &deltaPrev); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Reading{}, err
		}
		return models.Reading{}, fmt.Errorf("scan reading: %w", err)
	}
	rd.Timestamp = rd.Timestamp.UTC()
	rd.DeltaFromStart = floatFromNull(deltaStart)
	rd.DeltaFromPrevious = floatFromNull(deltaPrev)
	return rd, nil
}

func expectOneRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for %s: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
