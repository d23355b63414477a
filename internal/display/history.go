package display

import (
	"time"

	"roast_advisor/internal/models"
)

// ReadingView is a stored reading in display units.
type ReadingView struct {
	ID                string    `json:"id"`
	Temp              float64   `json:"temp"`
	Timestamp         time.Time `json:"timestamp"`
	DeltaFromStart    *float64  `json:"delta_from_start"`
	DeltaFromPrevious *float64  `json:"delta_from_previous"`
}

// OvenEventView is an oven event in display units.
type OvenEventView struct {
	ID           string    `json:"id"`
	SetTemp      *float64  `json:"set_temp"` // nil when the oven was switched off
	PreviousTemp *float64  `json:"previous_temp"`
	Timestamp    time.Time `json:"timestamp"`
	IsOff        bool      `json:"is_off"`
}

// SessionView is the session with its temperatures in display units.
type SessionView struct {
	Name        string       `json:"name"`
	TargetTemp  float64      `json:"target_temp"`
	ServeTime   *time.Time   `json:"serve_time"`
	DisplayUnit Unit         `json:"display_unit"`
	Settings    SettingsView `json:"settings"`
	StartedAt   time.Time    `json:"started_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// SettingsView converts the temperature-valued thresholds; minute values pass through.
type SettingsView struct {
	SmoothingWindow              int     `json:"smoothing_window"`
	MinReadingsForRecommendation int     `json:"min_readings_for_recommendation"`
	MinTimeSpanMinutes           float64 `json:"min_time_span_minutes"`
	OnTrackThresholdMinutes      float64 `json:"on_track_threshold_minutes"`
	StepSize                     float64 `json:"step_size"`
	MaxStepSize                  float64 `json:"max_step_size"`
	OvenTempMin                  float64 `json:"oven_temp_min"`
	OvenTempMax                  float64 `json:"oven_temp_max"`
	OvenTempStaleMinutes         float64 `json:"oven_temp_stale_minutes"`
}

func NewReadings(readings []models.Reading, u Unit) []ReadingView {
	out := make([]ReadingView, len(readings))
	for i, r := range readings {
		out[i] = NewReading(r, u)
	}
	return out
}

func NewReading(r models.Reading, u Unit) ReadingView {
	return ReadingView{
		ID:                r.ID,
		Temp:              ToDisplay(r.Temp, u),
		Timestamp:         r.Timestamp.UTC(),
		DeltaFromStart:    deltaPtr(r.DeltaFromStart, u),
		DeltaFromPrevious: deltaPtr(r.DeltaFromPrevious, u),
	}
}

func NewOvenEvents(events []models.OvenEvent, u Unit) []OvenEventView {
	out := make([]OvenEventView, len(events))
	for i, e := range events {
		out[i] = NewOvenEvent(e, u)
	}
	return out
}

func NewOvenEvent(e models.OvenEvent, u Unit) OvenEventView {
	v := OvenEventView{
		ID:           e.ID,
		PreviousTemp: tempPtr(e.PreviousTemp, u),
		Timestamp:    e.Timestamp.UTC(),
		IsOff:        e.IsOff,
	}
	if !e.IsOff {
		v.SetTemp = tempPtr(&e.SetTemp, u)
	}
	return v
}

// NewSession renders s in its own display unit.
func NewSession(s models.Session) SessionView {
	u, err := ParseUnit(s.DisplayUnit)
	if err != nil {
		u = Fahrenheit
	}
	st := s.Settings
	return SessionView{
		Name:        s.Name,
		TargetTemp:  ToDisplay(s.TargetTemp, u),
		ServeTime:   s.ServeTime,
		DisplayUnit: u,
		Settings: SettingsView{
			SmoothingWindow:              st.SmoothingWindow,
			MinReadingsForRecommendation: st.MinReadingsForRecommendation,
			MinTimeSpanMinutes:           st.MinTimeSpanMinutes,
			OnTrackThresholdMinutes:      st.OnTrackThresholdMinutes,
			StepSize:                     DeltaToDisplay(st.StepSize, u),
			MaxStepSize:                  DeltaToDisplay(st.MaxStepSize, u),
			OvenTempMin:                  ToDisplay(st.OvenTempMin, u),
			OvenTempMax:                  ToDisplay(st.OvenTempMax, u),
			OvenTempStaleMinutes:         st.OvenTempStaleMinutes,
		},
		StartedAt: s.StartedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
