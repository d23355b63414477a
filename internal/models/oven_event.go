package models

import "time"

// OvenEvent is a step change of the oven set-point, including off/on transitions.
type OvenEvent struct {
	ID           string    `json:"id"`
	SetTemp      float64   `json:"set_temp"`      // 0 when IsOff
	PreviousTemp *float64  `json:"previous_temp"` // last on set-point, nil for the first event
	Timestamp    time.Time `json:"timestamp"`
	IsOff        bool      `json:"is_off"`
}
