package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"roast_advisor/internal/models"
)

// ErrNotFound is returned when a row addressed by ID does not exist.
var ErrNotFound = errors.New("not found")

type Authorization interface {
	Create(ctx context.Context, username, hash string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

type SessionRepo interface {
	Save(ctx context.Context, s models.Session) error
	Load(ctx context.Context) (models.Session, error)
}

type ReadingRepo interface {
	Append(ctx context.Context, r models.Reading) error
	List(ctx context.Context) ([]models.Reading, error)
	Get(ctx context.Context, id string) (models.Reading, error)
	Update(ctx context.Context, r models.Reading) error
	Delete(ctx context.Context, id string) error
	SaveDeltas(ctx context.Context, readings []models.Reading) error
	DeleteAll(ctx context.Context) error
}

type OvenEventRepo interface {
	Append(ctx context.Context, e models.OvenEvent) error
	List(ctx context.Context, from, to time.Time) ([]models.OvenEvent, error)
	DeleteAll(ctx context.Context) error
}

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Stores are the cook repositories bound to a single transaction.
type Stores struct {
	Sessions   SessionRepo
	Readings   ReadingRepo
	OvenEvents OvenEventRepo
}

// Transactor runs fn so that every write made through Stores commits or rolls back together.
type Transactor interface {
	InTx(ctx context.Context, fn func(Stores) error) error
}

type Repository struct {
	SessionRepo   SessionRepo
	ReadingRepo   ReadingRepo
	OvenEventRepo OvenEventRepo
	Auth          Authorization
	Tx            Transactor
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		SessionRepo:   NewSessionSQLite(db),
		ReadingRepo:   NewReadingSQLite(db),
		OvenEventRepo: NewOvenEventSQLite(db),
		Auth:          NewUserRepository(db),
		Tx:            NewSQLiteTransactor(db),
	}
}

// nullableFloat maps a nil pointer to SQL NULL.
func nullableFloat(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

func floatFromNull(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}
