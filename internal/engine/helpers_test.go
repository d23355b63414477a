package engine

import (
	"time"

	"roast_advisor/internal/models"
)

var t0 = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func at(minutes float64) time.Time { return AddMinutes(t0, minutes) }

func reading(minutes, temp float64) models.Reading {
	return models.Reading{Temp: temp, Timestamp: at(minutes)}
}

func ovenOn(minutes, temp float64) models.OvenEvent {
	return models.OvenEvent{SetTemp: temp, Timestamp: at(minutes)}
}

func ovenOff(minutes float64) models.OvenEvent {
	return models.OvenEvent{IsOff: true, Timestamp: at(minutes)}
}

// steadyReadings rises 16°/hour over an hour.
func steadyReadings() []models.Reading {
	return []models.Reading{
		reading(0, 100), reading(15, 104), reading(30, 108), reading(45, 112), reading(60, 116),
	}
}

func timePtr(t time.Time) *time.Time { return &t }
