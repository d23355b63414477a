package service

import "time"

// SessionParams updates the session; nil fields keep their current value.
// Temperatures are canonical Fahrenheit.
type SessionParams struct {
	Name        *string
	TargetTemp  *float64
	ServeTime   *time.Time
	ClearServe  bool
	DisplayUnit *string
	Settings    *SettingsPatch
}

// SettingsPatch overrides individual thresholds.
type SettingsPatch struct {
	SmoothingWindow              *int
	MinReadingsForRecommendation *int
	MinTimeSpanMinutes           *float64
	OnTrackThresholdMinutes      *float64
	StepSize                     *float64
	MaxStepSize                  *float64
	OvenTempMin                  *float64
	OvenTempMax                  *float64
	OvenTempStaleMinutes         *float64
}

// ReadingParams is one meat temperature; zero At means now.
type ReadingParams struct {
	Temp float64
	At   time.Time
}

// OvenParams is one oven set-point; zero At means now.
type OvenParams struct {
	Temp float64
	At   time.Time
}

// OvenFilter supports history filtering by time range.
type OvenFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
}
