package service

import (
	"context"
	"errors"
	"time"

	"roast_advisor/internal/engine"
	"roast_advisor/internal/models"
	"roast_advisor/internal/repository"
)

// ErrValidation marks input the caller must fix; handlers map it to 400.
var ErrValidation = errors.New("validation failed")

type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Sessions owns the single cook: target, serve time, display unit and settings.
type Sessions interface {
	Get(ctx context.Context) (models.Session, error)
	Configure(ctx context.Context, p SessionParams) (models.Session, error)
	Reset(ctx context.Context) (models.Session, error)
}

// Readings records meat temperatures and keeps their deltas consistent.
type Readings interface {
	Add(ctx context.Context, p ReadingParams) (models.Reading, error)
	List(ctx context.Context) ([]models.Reading, error)
	Edit(ctx context.Context, id string, p ReadingParams) (models.Reading, error)
	Delete(ctx context.Context, id string) error
}

// Oven records set-point changes and off/on transitions.
type Oven interface {
	SetTemp(ctx context.Context, p OvenParams) (models.OvenEvent, error)
	TurnOff(ctx context.Context, at time.Time) (models.OvenEvent, error)
	TurnOn(ctx context.Context, p OvenParams) (models.OvenEvent, error)
	History(ctx context.Context, f OvenFilter) ([]models.OvenEvent, error)
}

// Advisor runs the estimation pipeline over the stored session.
type Advisor interface {
	Advise(ctx context.Context) (AdviceReport, error)
	Responsiveness(ctx context.Context) (*engine.Responsiveness, models.Session, error)
}

type Service struct {
	Sessions
	Readings
	Oven
	Advisor
	Authorization
}

// Options carries configuration the services need beyond the repositories.
type Options struct {
	Defaults      models.Settings
	DefaultTarget float64 // °F
	DefaultUnit   string
	SigningKey    string
	TokenTTL      time.Duration
	Now           func() time.Time
}

func NewService(repos *repository.Repository, opts Options) *Service {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	sessions := NewSessionService(repos.SessionRepo, repos.Tx, SessionDefaults{
		Settings:   opts.Defaults,
		TargetTemp: opts.DefaultTarget,
		Unit:       opts.DefaultUnit,
	}, now)
	return &Service{
		Sessions:      sessions,
		Readings:      NewReadingService(repos.ReadingRepo, repos.Tx, now),
		Oven:          NewOvenService(repos.OvenEventRepo, sessions, now),
		Advisor:       NewAdvisorService(sessions, repos.ReadingRepo, repos.OvenEventRepo, now),
		Authorization: NewAuthService(repos.Auth, opts.SigningKey, opts.TokenTTL),
	}
}
