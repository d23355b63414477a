package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"roast_advisor/internal/engine"
	"roast_advisor/internal/logger"
	"roast_advisor/internal/metrics"
	"roast_advisor/internal/models"
	"roast_advisor/internal/repository"
)

// Plausible internal meat temperatures, °F.
const (
	minMeatTemp = 0.0
	maxMeatTemp = 250.0
)

type ReadingService struct {
	readingRepo repository.ReadingRepo
	tx          repository.Transactor
	now         func() time.Time
}

func NewReadingService(readingRepo repository.ReadingRepo, tx repository.Transactor, now func() time.Time) *ReadingService {
	return &ReadingService{readingRepo: readingRepo, tx: tx, now: now}
}

// Add records a reading and rebuilds deltas across the session.
// The insert and the delta rewrite commit together.
func (s *ReadingService) Add(ctx context.Context, p ReadingParams) (models.Reading, error) {
	rd, err := s.newReading(uuid.NewString(), p)
	if err != nil {
		return models.Reading{}, err
	}

	var out models.Reading
	err = s.tx.InTx(ctx, func(st repository.Stores) error {
		if err := st.Readings.Append(ctx, rd); err != nil {
			return err
		}
		out, err = recompute(ctx, st.Readings, rd.ID)
		return err
	})
	if err != nil {
		return models.Reading{}, err
	}

	metrics.RecordReading("add")
	metrics.UpdateCookState(&out.Temp, nil, nil)
	logger.GetLogger().Infow("reading_added", "id", out.ID, "temp", out.Temp, "at", out.Timestamp)
	return out, nil
}

// List returns readings ordered by time.
func (s *ReadingService) List(ctx context.Context) ([]models.Reading, error) {
	return s.readingRepo.List(ctx)
}

// Edit replaces temperature and timestamp of an existing reading.
func (s *ReadingService) Edit(ctx context.Context, id string, p ReadingParams) (models.Reading, error) {
	rd, err := s.newReading(id, p)
	if err != nil {
		return models.Reading{}, err
	}

	var out models.Reading
	err = s.tx.InTx(ctx, func(st repository.Stores) error {
		if _, err := st.Readings.Get(ctx, id); err != nil {
			return err
		}
		if err := st.Readings.Update(ctx, rd); err != nil {
			return err
		}
		out, err = recompute(ctx, st.Readings, id)
		return err
	})
	if err != nil {
		return models.Reading{}, err
	}

	metrics.RecordReading("edit")
	logger.GetLogger().Infow("reading_edited", "id", id, "temp", out.Temp, "at", out.Timestamp)
	return out, nil
}

// Delete removes a reading; neighbours get fresh deltas.
func (s *ReadingService) Delete(ctx context.Context, id string) error {
	err := s.tx.InTx(ctx, func(st repository.Stores) error {
		if err := st.Readings.Delete(ctx, id); err != nil {
			return err
		}
		_, err := recompute(ctx, st.Readings, "")
		return err
	})
	if err != nil {
		return err
	}

	metrics.RecordReading("delete")
	logger.GetLogger().Infow("reading_deleted", "id", id)
	return nil
}

func (s *ReadingService) newReading(id string, p ReadingParams) (models.Reading, error) {
	if math.IsNaN(p.Temp) || math.IsInf(p.Temp, 0) || p.Temp < minMeatTemp || p.Temp > maxMeatTemp {
		return models.Reading{}, fmt.Errorf("%w: meat temperature %.1f°F out of range [%.0f, %.0f]", ErrValidation, p.Temp, minMeatTemp, maxMeatTemp)
	}
	at := p.At
	if at.IsZero() {
		at = s.now()
	}
	return models.Reading{ID: id, Temp: p.Temp, Timestamp: at.UTC()}, nil
}

// recompute reloads the history, rebuilds deltas, persists them and
// returns the reading with the given id (zero value when id is empty).
func recompute(ctx context.Context, repo repository.ReadingRepo, id string) (models.Reading, error) {
	all, err := repo.List(ctx)
	if err != nil {
		return models.Reading{}, err
	}
	all = engine.RecomputeDeltas(all)
	if err := repo.SaveDeltas(ctx, all); err != nil {
		return models.Reading{}, err
	}
	for _, rd := range all {
		if rd.ID == id {
			return rd, nil
		}
	}
	return models.Reading{}, nil
}
