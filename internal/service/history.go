package service

import (
	"context"
	"errors"
	"time"

	"roast_advisor/internal/models"
)

var (
	errInvalidTimeRange = errors.New("invalid time range: From must be <= To")
)

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeAndValidateFilter prepares query parameters and validates the time range.
func normalizeAndValidateFilter(f OvenFilter) (time.Time, time.Time, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, errors.Join(ErrValidation, errInvalidTimeRange)
	}
	return from, to, nil
}

// History lists oven events inside the filter window, oldest first.
func (s *OvenService) History(ctx context.Context, f OvenFilter) ([]models.OvenEvent, error) {
	from, to, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.ovenRepo.List(ctx, from, to)
}
