package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"roast_advisor/internal/display"
	"roast_advisor/internal/logger"
	"roast_advisor/internal/models"
	"roast_advisor/internal/repository"
)

const (
	sessionRowID      = 1
	defaultTargetTemp = 203.0
	maxTargetTemp     = 250.0
)

// SessionDefaults seeds a session that has never been configured.
type SessionDefaults struct {
	Settings   models.Settings
	TargetTemp float64
	Unit       string
}

type SessionService struct {
	sessionRepo repository.SessionRepo
	tx          repository.Transactor
	defaults    SessionDefaults
	now         func() time.Time
}

func NewSessionService(
	sessionRepo repository.SessionRepo,
	tx repository.Transactor,
	defaults SessionDefaults,
	now func() time.Time,
) *SessionService {
	if defaults.Settings == (models.Settings{}) {
		defaults.Settings = models.DefaultSettings()
	}
	if defaults.TargetTemp <= 0 {
		defaults.TargetTemp = defaultTargetTemp
	}
	if _, err := display.ParseUnit(defaults.Unit); err != nil {
		defaults.Unit = string(display.Fahrenheit)
	}
	return &SessionService{
		sessionRepo: sessionRepo,
		tx:          tx,
		defaults:    defaults,
		now:         now,
	}
}

// Get returns the persisted session, or an unsaved baseline when none exists.
func (s *SessionService) Get(ctx context.Context) (models.Session, error) {
	sess, err := s.sessionRepo.Load(ctx)
	if err != nil {
		return models.Session{}, err
	}
	if sess.ID == 0 {
		return s.baselineSession(), nil
	}
	return sess, nil
}

// Configure applies p on top of the current session and persists the result.
func (s *SessionService) Configure(ctx context.Context, p SessionParams) (models.Session, error) {
	sess, err := s.Get(ctx)
	if err != nil {
		return models.Session{}, err
	}

	if p.Name != nil {
		sess.Name = strings.TrimSpace(*p.Name)
	}
	if p.TargetTemp != nil {
		if *p.TargetTemp <= 0 || *p.TargetTemp > maxTargetTemp {
			return models.Session{}, fmt.Errorf("%w: target temperature %.1f°F must be in (0, %.0f]", ErrValidation, *p.TargetTemp, maxTargetTemp)
		}
		sess.TargetTemp = *p.TargetTemp
	}
	switch {
	case p.ClearServe:
		sess.ServeTime = nil
	case p.ServeTime != nil:
		t := p.ServeTime.UTC()
		sess.ServeTime = &t
	}
	if p.DisplayUnit != nil {
		u, err := display.ParseUnit(*p.DisplayUnit)
		if err != nil {
			return models.Session{}, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		sess.DisplayUnit = string(u)
	}
	if p.Settings != nil {
		sess.Settings = applySettingsPatch(sess.Settings, *p.Settings)
		if err := sess.Settings.Validate(); err != nil {
			return models.Session{}, fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}

	sess.ID = sessionRowID
	sess.UpdatedAt = s.now().UTC()
	if err := s.sessionRepo.Save(ctx, sess); err != nil {
		return models.Session{}, err
	}

	logger.GetLogger().Infow("session_configured",
		"target_temp", sess.TargetTemp,
		"serve_time", sess.ServeTime,
		"display_unit", sess.DisplayUnit,
	)
	return sess, nil
}

// Reset clears readings and oven events and restarts the session clock
// in one transaction. Target, serve time, unit and settings are kept.
func (s *SessionService) Reset(ctx context.Context) (models.Session, error) {
	sess, err := s.Get(ctx)
	if err != nil {
		return models.Session{}, err
	}

	now := s.now().UTC()
	sess.ID = sessionRowID
	sess.StartedAt = now
	sess.UpdatedAt = now

	err = s.tx.InTx(ctx, func(st repository.Stores) error {
		if err := st.Readings.DeleteAll(ctx); err != nil {
			return err
		}
		if err := st.OvenEvents.DeleteAll(ctx); err != nil {
			return err
		}
		return st.Sessions.Save(ctx, sess)
	})
	if err != nil {
		return models.Session{}, err
	}

	logger.GetLogger().Infow("session_reset", "started_at", now)
	return sess, nil
}

// baselineSession is the default view of an unconfigured database.
func (s *SessionService) baselineSession() models.Session {
	now := s.now().UTC()
	return models.Session{
		ID:          sessionRowID,
		TargetTemp:  s.defaults.TargetTemp,
		DisplayUnit: s.defaults.Unit,
		Settings:    s.defaults.Settings,
		StartedAt:   now,
		UpdatedAt:   now,
	}
}

func applySettingsPatch(st models.Settings, p SettingsPatch) models.Settings {
	if p.SmoothingWindow != nil {
		st.SmoothingWindow = *p.SmoothingWindow
	}
	if p.MinReadingsForRecommendation != nil {
		st.MinReadingsForRecommendation = *p.MinReadingsForRecommendation
	}
	if p.MinTimeSpanMinutes != nil {
		st.MinTimeSpanMinutes = *p.MinTimeSpanMinutes
	}
	if p.OnTrackThresholdMinutes != nil {
		st.OnTrackThresholdMinutes = *p.OnTrackThresholdMinutes
	}
	if p.StepSize != nil {
		st.StepSize = *p.StepSize
	}
	if p.MaxStepSize != nil {
		st.MaxStepSize = *p.MaxStepSize
	}
	if p.OvenTempMin != nil {
		st.OvenTempMin = *p.OvenTempMin
	}
	if p.OvenTempMax != nil {
		st.OvenTempMax = *p.OvenTempMax
	}
	if p.OvenTempStaleMinutes != nil {
		st.OvenTempStaleMinutes = *p.OvenTempStaleMinutes
	}
	return st
}
