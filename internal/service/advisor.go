package service

import (
	"context"
	"time"

	"roast_advisor/internal/engine"
	"roast_advisor/internal/logger"
	"roast_advisor/internal/metrics"
	"roast_advisor/internal/models"
	"roast_advisor/internal/repository"
)

// AdviceReport is one advisor pass together with the session it ran against.
type AdviceReport struct {
	Session     models.Session
	Result      engine.Result
	GeneratedAt time.Time
}

type AdvisorService struct {
	sessions    sessionReader
	readingRepo repository.ReadingRepo
	ovenRepo    repository.OvenEventRepo
	now         func() time.Time
}

func NewAdvisorService(
	sessions sessionReader,
	readingRepo repository.ReadingRepo,
	ovenRepo repository.OvenEventRepo,
	now func() time.Time,
) *AdvisorService {
	return &AdvisorService{sessions: sessions, readingRepo: readingRepo, ovenRepo: ovenRepo, now: now}
}

// Advise loads the session history and runs the estimation pipeline at the current clock.
func (s *AdvisorService) Advise(ctx context.Context) (AdviceReport, error) {
	started := time.Now()

	snap, sess, err := s.snapshot(ctx)
	if err != nil {
		return AdviceReport{}, err
	}
	res := engine.Run(snap)

	rec := res.Recommendation
	metrics.RecordAdvice(string(rec.Action), string(rec.Severity), string(rec.BlockerType), time.Since(started))
	metrics.UpdateCookState(res.Calculation.CurrentTemp, res.Calculation.Rate.Rate, res.Calculation.Schedule.VarianceMinutes)

	log := logger.GetLogger()
	if !rec.CanRecommend {
		log.Debugw("advice_blocked",
			"blocker", rec.BlockerType,
			"reason", rec.BlockerReason,
			"readings", len(snap.Readings),
		)
	} else {
		log.Infow("advice_generated",
			"action", rec.Action,
			"severity", rec.Severity,
			"message_key", rec.MessageKey,
			"suggested_temp", rec.SuggestedTemp,
			"confidence", res.Calculation.Confidence.Level,
			"schedule", res.Calculation.Schedule.Status,
		)
	}

	return AdviceReport{Session: sess, Result: res, GeneratedAt: snap.Now}, nil
}

// Responsiveness analyses how past oven changes moved the heating rate.
// A nil result means there is not enough segmented history yet.
func (s *AdvisorService) Responsiveness(ctx context.Context) (*engine.Responsiveness, models.Session, error) {
	snap, sess, err := s.snapshot(ctx)
	if err != nil {
		return nil, models.Session{}, err
	}
	return engine.AnalyzeResponsiveness(snap.Readings, snap.OvenEvents), sess, nil
}

func (s *AdvisorService) snapshot(ctx context.Context) (engine.Snapshot, models.Session, error) {
	sess, err := s.sessions.Get(ctx)
	if err != nil {
		return engine.Snapshot{}, models.Session{}, err
	}
	readings, err := s.readingRepo.List(ctx)
	if err != nil {
		return engine.Snapshot{}, models.Session{}, err
	}
	events, err := s.ovenRepo.List(ctx, time.Time{}, time.Time{})
	if err != nil {
		return engine.Snapshot{}, models.Session{}, err
	}

	return engine.Snapshot{
		Readings:   readings,
		OvenEvents: events,
		Settings:   sess.Settings,
		TargetTemp: sess.TargetTemp,
		ServeTime:  sess.ServeTime,
		Now:        s.now().UTC(),
	}, sess, nil
}
