package models

import "time"

// Session is the single cooking session the advisor tracks.
type Session struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	TargetTemp  float64    `json:"target_temp"`          // canonical °F
	ServeTime   *time.Time `json:"serve_time,omitempty"` // desired serve time
	DisplayUnit string     `json:"display_unit"`         // F | C
	Settings    Settings   `json:"settings"`
	StartedAt   time.Time  `json:"started_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
