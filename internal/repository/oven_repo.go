package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"roast_advisor/internal/models"
)

type OvenEventSQLite struct {
	db DBTX
}

func NewOvenEventSQLite(db DBTX) *OvenEventSQLite { return &OvenEventSQLite{db: db} }

const (
	insertOvenEventSQL  = `INSERT INTO oven_events (id, set_temp, previous_temp, occurred_at, is_off) VALUES (?, ?, ?, ?, ?)`
	selectOvenEventsSQL = `SELECT id, set_temp, previous_temp, occurred_at, is_off FROM oven_events`
	deleteOvenEventsSQL = `DELETE FROM oven_events`

	// rowid keeps insertion order among events sharing a timestamp
	orderOvenEventsSQL = ` ORDER BY occurred_at ASC, rowid ASC`
)

// Append inserts a new event. If ID or Timestamp are empty, they're set.
func (r *OvenEventSQLite) Append(ctx context.Context, e models.OvenEvent) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, insertOvenEventSQL,
		e.ID,
		e.SetTemp,
		nullableFloat(e.PreviousTemp),
		e.Timestamp.UTC(),
		e.IsOff,
	)
	if err != nil {
		return fmt.Errorf("insert oven event: %w", err)
	}
	return nil
}

// List returns events within [from, to] (zero bounds are open), ordered ASC.
func (r *OvenEventSQLite) List(ctx context.Context, from, to time.Time) ([]models.OvenEvent, error) {
	var (
		conds []string
		args  []any
	)
	if !from.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, from.UTC())
	}
	if !to.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, to.UTC())
	}

	q := selectOvenEventsSQL
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += orderOvenEventsSQL

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list oven events: %w", err)
	}
	defer rows.Close()

	out := make([]models.OvenEvent, 0, 16)
	for rows.Next() {
		var (
			ev   models.OvenEvent
			prev sql.NullFloat64
		)
		if err := rows.Scan(&ev.ID, &ev.SetTemp, &prev, &ev.Timestamp, &ev.IsOff); err != nil {
			return nil, fmt.Errorf("scan oven event: %w", err)
		}
		ev.Timestamp = ev.Timestamp.UTC()
		ev.PreviousTemp = floatFromNull(prev)
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list oven events: %w", err)
	}
	return out, nil
}

// DeleteAll clears the oven history.
func (r *OvenEventSQLite) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, deleteOvenEventsSQL); err != nil {
		return fmt.Errorf("delete oven events: %w", err)
	}
	return nil
}
