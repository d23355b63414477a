package engine

import (
	"math"

	"roast_advisor/internal/models"
)

// DefaultWindowSize is the number of most recent readings used for the current rate.
const DefaultWindowSize = 3

const (
	// degenerateDenominator catches windows whose timestamps collapse onto one instant.
	degenerateDenominator = 1e-10
	// minAverageRateHours guards the session-average secant against tiny spans (~36s).
	minAverageRateHours = 0.01
)

// RateResult is the short-window regression outcome.
type RateResult struct {
	Rate        *float64 `json:"rate"` // °/hour, nil when it cannot be estimated
	R2          float64  `json:"r2"`
	SampleCount int      `json:"sample_count"`
}

// EstimateCurrentRate fits temperature against elapsed hours over the last
// windowSize readings with ordinary least squares.
func EstimateCurrentRate(readings []models.Reading, windowSize int) RateResult {
	if windowSize <= 0 {
		windowSize = DefaultWindowSize
	}
	if windowSize < 2 {
		windowSize = 2
	}
	start := len(readings) - windowSize
	if start < 0 {
		start = 0
	}
	window := readings[start:]

	res := RateResult{SampleCount: len(window)}
	if len(window) < 2 {
		return res
	}

	origin := window[0].Timestamp
	xs := make([]float64, len(window))
	var sumX, sumY, sumXY, sumX2 float64
	for i, r := range window {
		x := HoursBetween(origin, r.Timestamp)
		xs[i] = x
		sumX += x
		sumY += r.Temp
		sumXY += x * r.Temp
		sumX2 += x * x
	}

	n := float64(len(window))
	denom := n*sumX2 - sumX*sumX
	if math.Abs(denom) < degenerateDenominator {
		return res
	}
	slope := (n*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / n
	meanY := sumY / n

	var ssRes, ssTot float64
	for i, r := range window {
		fit := intercept + slope*xs[i]
		ssRes += (r.Temp - fit) * (r.Temp - fit)
		ssTot += (r.Temp - meanY) * (r.Temp - meanY)
	}
	r2 := 0.0
	if ssTot > 0 {
		r2 = 1 - ssRes/ssTot
	}

	res.Rate = floatPtr(roundTo(slope, 2))
	res.R2 = roundTo(r2, 3)
	return res
}

// EstimateAverageRate is the whole-session secant rate in °/hour.
func EstimateAverageRate(readings []models.Reading) *float64 {
	if len(readings) < 2 {
		return nil
	}
	first, last := readings[0], readings[len(readings)-1]
	hours := HoursBetween(first.Timestamp, last.Timestamp)
	if hours < minAverageRateHours {
		return nil
	}
	return floatPtr(roundTo((last.Temp-first.Temp)/hours, 2))
}
