package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"roast_advisor/internal/models"
)

type SessionSQLite struct {
	db DBTX
}

func NewSessionSQLite(db DBTX) *SessionSQLite {
	return &SessionSQLite{db: db}
}

const (
	sessionRowID = 1

	upsertSessionSQL = `
		INSERT INTO roast_session (id, name, target_temp, serve_time, display_unit, settings, started_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name=excluded.name,
			target_temp=excluded.target_temp,
			serve_time=excluded.serve_time,
			display_unit=excluded.display_unit,
			settings=excluded.settings,
			started_at=excluded.started_at,
			updated_at=excluded.updated_at
	`

	selectSessionSQL = `
		SELECT id, name, target_temp, serve_time, display_unit, settings, started_at, updated_at
		FROM roast_session WHERE id=?
	`
)

// Save upserts the single session row (id always 1).
func (r *SessionSQLite) Save(ctx context.Context, s models.Session) error {
	settingsJSON, err := json.Marshal(s.Settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	updated := s.UpdatedAt
	if updated.IsZero() {
		updated = time.Now()
	}
	started := s.StartedAt
	if started.IsZero() {
		started = updated
	}

	var serve any
	if s.ServeTime != nil {
		serve = s.ServeTime.UTC()
	}

	_, err = r.db.ExecContext(ctx, upsertSessionSQL,
		sessionRowID,
		s.Name,
		s.TargetTemp,
		serve,
		s.DisplayUnit,
		string(settingsJSON),
		started.UTC(),
		updated.UTC(),
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Load fetches the session row. A missing row yields a zero Session.
func (r *SessionSQLite) Load(ctx context.Context) (models.Session, error) {
	row := r.db.QueryRowContext(ctx, selectSessionSQL, sessionRowID)

	var (
		s            models.Session
		serve        sql.NullTime
		settingsJSON string
	)
	if err := row.Scan(
		&s.ID,
		&s.Name,
		&s.TargetTemp,
		&serve,
		&s.DisplayUnit,
		&settingsJSON,
		&s.StartedAt,
		&s.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, nil
		}
		return models.Session{}, fmt.Errorf("load session: %w", err)
	}

	// rows written before a setting existed keep its default
	s.Settings = models.DefaultSettings()
	if settingsJSON != "" {
		if err := json.Unmarshal([]byte(settingsJSON), &s.Settings); err != nil {
			return models.Session{}, fmt.Errorf("decode session settings: %w", err)
		}
	}
	if serve.Valid {
		t := serve.Time.UTC()
		s.ServeTime = &t
	}
	s.StartedAt = s.StartedAt.UTC()
	s.UpdatedAt = s.UpdatedAt.UTC()
	return s, nil
}
