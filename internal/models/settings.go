package models

import (
	"errors"
	"fmt"
)

// Settings holds the numeric policy thresholds the advisor works with.
type Settings struct {
	SmoothingWindow              int     `json:"smoothing_window" mapstructure:"smoothing_window"`
	MinReadingsForRecommendation int     `json:"min_readings_for_recommendation" mapstructure:"min_readings_for_recommendation"`
	MinTimeSpanMinutes           float64 `json:"min_time_span_minutes" mapstructure:"min_time_span_minutes"`
	OnTrackThresholdMinutes      float64 `json:"on_track_threshold_minutes" mapstructure:"on_track_threshold_minutes"`
	StepSize                     float64 `json:"step_size" mapstructure:"step_size"`
	MaxStepSize                  float64 `json:"max_step_size" mapstructure:"max_step_size"`
	OvenTempMin                  float64 `json:"oven_temp_min" mapstructure:"oven_temp_min"`
	OvenTempMax                  float64 `json:"oven_temp_max" mapstructure:"oven_temp_max"`
	OvenTempStaleMinutes         float64 `json:"oven_temp_stale_minutes" mapstructure:"oven_temp_stale_minutes"`
}

// DefaultSettings returns the thresholds used when a session has no overrides.
func DefaultSettings() Settings {
	return Settings{
		SmoothingWindow:              3,
		MinReadingsForRecommendation: 3,
		MinTimeSpanMinutes:           30,
		OnTrackThresholdMinutes:      10,
		StepSize:                     10,
		MaxStepSize:                  25,
		OvenTempMin:                  170,
		OvenTempMax:                  325,
		OvenTempStaleMinutes:         120,
	}
}

var (
	ErrInvalidWindow    = errors.New("invalid settings: smoothing_window must be >= 2")
	ErrInvalidStep      = errors.New("invalid settings: step_size must be > 0 and <= max_step_size")
	ErrInvalidOvenRange = errors.New("invalid settings: oven_temp_min must be below oven_temp_max")
)

// Validate checks the thresholds before they reach the advisor.
func (s Settings) Validate() error {
	if s.SmoothingWindow < 2 {
		return ErrInvalidWindow
	}
	if s.MinReadingsForRecommendation < 2 {
		return fmt.Errorf("invalid settings: min_readings_for_recommendation %d must be >= 2", s.MinReadingsForRecommendation)
	}
	if s.MinTimeSpanMinutes < 0 || s.OnTrackThresholdMinutes < 0 || s.OvenTempStaleMinutes <= 0 {
		return errors.New("invalid settings: minute thresholds must be non-negative and staleness > 0")
	}
	if s.StepSize <= 0 || s.StepSize > s.MaxStepSize {
		return ErrInvalidStep
	}
	if s.OvenTempMin >= s.OvenTempMax {
		return ErrInvalidOvenRange
	}
	return nil
}
