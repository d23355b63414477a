package models

import "time"

// Reading is a single internal-temperature measurement (canonical °F).
type Reading struct {
	ID                string    `json:"id"`
	Temp              float64   `json:"temp"`
	Timestamp         time.Time `json:"timestamp"`
	DeltaFromStart    *float64  `json:"delta_from_start"`    // temp change since the first reading
	DeltaFromPrevious *float64  `json:"delta_from_previous"` // temp change since the previous reading
}
