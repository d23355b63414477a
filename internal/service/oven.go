package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"roast_advisor/internal/engine"
	"roast_advisor/internal/logger"
	"roast_advisor/internal/metrics"
	"roast_advisor/internal/models"
	"roast_advisor/internal/repository"
)

// sessionReader is the slice of Sessions the oven and advisor depend on.
type sessionReader interface {
	Get(ctx context.Context) (models.Session, error)
}

type OvenService struct {
	ovenRepo repository.OvenEventRepo
	sessions sessionReader
	now      func() time.Time
}

func NewOvenService(ovenRepo repository.OvenEventRepo, sessions sessionReader, now func() time.Time) *OvenService {
	return &OvenService{ovenRepo: ovenRepo, sessions: sessions, now: now}
}

var (
	errOvenAlreadyOff = errors.New("oven is already off")
	errOvenAlreadyOn  = errors.New("oven is already on, use set temperature instead")
	errOvenNoHistory  = errors.New("no oven temperature recorded yet")
)

// SetTemp records a new set-point. Re-entering the current value refreshes
// the oven data without changing it.
func (s *OvenService) SetTemp(ctx context.Context, p OvenParams) (models.OvenEvent, error) {
	at := s.at(p.At)
	if err := s.checkRange(ctx, p.Temp); err != nil {
		return models.OvenEvent{}, err
	}
	state, err := s.stateAt(ctx, at)
	if err != nil {
		return models.OvenEvent{}, err
	}

	kind := "set"
	if state.IsOff {
		kind = "on"
	}
	return s.record(ctx, kind, models.OvenEvent{
		SetTemp:      p.Temp,
		PreviousTemp: state.LastOnTemp,
		Timestamp:    at,
	})
}

// TurnOff records the oven being switched off at the given time.
func (s *OvenService) TurnOff(ctx context.Context, at time.Time) (models.OvenEvent, error) {
	at = s.at(at)
	state, err := s.stateAt(ctx, at)
	if err != nil {
		return models.OvenEvent{}, err
	}
	switch {
	case !state.Known:
		return models.OvenEvent{}, fmt.Errorf("%w: %v", ErrValidation, errOvenNoHistory)
	case state.IsOff:
		return models.OvenEvent{}, fmt.Errorf("%w: %v", ErrValidation, errOvenAlreadyOff)
	}
	return s.record(ctx, "off", models.OvenEvent{
		SetTemp:      0,
		PreviousTemp: state.LastOnTemp,
		Timestamp:    at,
		IsOff:        true,
	})
}

// TurnOn switches the oven back on. A zero temperature restores the last
// set-point used before it was switched off.
func (s *OvenService) TurnOn(ctx context.Context, p OvenParams) (models.OvenEvent, error) {
	at := s.at(p.At)
	state, err := s.stateAt(ctx, at)
	if err != nil {
		return models.OvenEvent{}, err
	}
	if state.Known && !state.IsOff {
		return models.OvenEvent{}, fmt.Errorf("%w: %v", ErrValidation, errOvenAlreadyOn)
	}

	temp := p.Temp
	if temp == 0 {
		if state.LastOnTemp == nil {
			return models.OvenEvent{}, fmt.Errorf("%w: %v", ErrValidation, errOvenNoHistory)
		}
		temp = *state.LastOnTemp
	}
	if err := s.checkRange(ctx, temp); err != nil {
		return models.OvenEvent{}, err
	}
	return s.record(ctx, "on", models.OvenEvent{
		SetTemp:      temp,
		PreviousTemp: state.LastOnTemp,
		Timestamp:    at,
	})
}

func (s *OvenService) at(t time.Time) time.Time {
	if t.IsZero() {
		return s.now().UTC()
	}
	return t.UTC()
}

// checkRange validates a set-point against the session's oven floor and ceiling.
func (s *OvenService) checkRange(ctx context.Context, temp float64) error {
	sess, err := s.sessions.Get(ctx)
	if err != nil {
		return err
	}
	lo, hi := sess.Settings.OvenTempMin, sess.Settings.OvenTempMax
	if temp < lo || temp > hi {
		return fmt.Errorf("%w: oven temperature %.1f°F outside [%.0f, %.0f]", ErrValidation, temp, lo, hi)
	}
	return nil
}

// stateAt derives the oven state from events up to and including at.
func (s *OvenService) stateAt(ctx context.Context, at time.Time) (engine.OvenState, error) {
	events, err := s.ovenRepo.List(ctx, time.Time{}, at)
	if err != nil {
		return engine.OvenState{}, err
	}
	return engine.CurrentOvenState(events), nil
}

func (s *OvenService) record(ctx context.Context, kind string, ev models.OvenEvent) (models.OvenEvent, error) {
	ev.ID = uuid.NewString()
	if err := s.ovenRepo.Append(ctx, ev); err != nil {
		return models.OvenEvent{}, err
	}

	metrics.RecordOvenChange(kind)
	logger.GetLogger().Infow("oven_event_recorded",
		"kind", kind,
		"set_temp", ev.SetTemp,
		"previous_temp", ev.PreviousTemp,
		"at", ev.Timestamp,
	)
	return ev, nil
}
