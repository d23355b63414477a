package engine

import (
	"math"
	"time"
)

// ScheduleStatus classifies the predicted finish against the serve time.
type ScheduleStatus string

const (
	StatusUnknown ScheduleStatus = "unknown"
	StatusEarly   ScheduleStatus = "early"
	StatusLate    ScheduleStatus = "late"
	StatusOnTrack ScheduleStatus = "on-track"
)

// DefaultOnTrackThresholdMinutes is the half-width of the on-track band.
const DefaultOnTrackThresholdMinutes = 10

// ScheduleVariance is positive when the roast is predicted to finish late.
type ScheduleVariance struct {
	VarianceMinutes *int           `json:"variance_minutes"`
	Status          ScheduleStatus `json:"status"`
}

// ClassifySchedule compares the predicted target time with the desired serve time.
func ClassifySchedule(predicted, desired *time.Time, thresholdMinutes float64) ScheduleVariance {
	if predicted == nil || desired == nil {
		return ScheduleVariance{Status: StatusUnknown}
	}
	raw := MinutesBetween(*desired, *predicted)
	status := StatusOnTrack
	switch {
	case raw < -thresholdMinutes:
		status = StatusEarly
	case raw > thresholdMinutes:
		status = StatusLate
	}
	// only the reported figure is rounded; the band check uses the exact span
	return ScheduleVariance{VarianceMinutes: intPtr(int(math.Round(raw))), Status: status}
}
