package engine

import "fmt"

// ConfidenceLevel is an ordered reliability scale for the current rate.
type ConfidenceLevel string

const (
	LevelInsufficient ConfidenceLevel = "insufficient"
	LevelLow          ConfidenceLevel = "low"
	LevelMedium       ConfidenceLevel = "medium"
	LevelHigh         ConfidenceLevel = "high"
)

// Rank orders levels from insufficient (0) to high (3).
func (l ConfidenceLevel) Rank() int {
	switch l {
	case LevelLow:
		return 1
	case LevelMedium:
		return 2
	case LevelHigh:
		return 3
	default:
		return 0
	}
}

// ReasonCode identifies which confidence rule fired.
type ReasonCode string

const (
	ReasonNoData         ReasonCode = "NO_DATA"
	ReasonTwoReadings    ReasonCode = "TWO_READINGS"
	ReasonRateTooLow     ReasonCode = "RATE_TOO_LOW"
	ReasonSpanTooShort   ReasonCode = "SPAN_TOO_SHORT"
	ReasonRateUnstable   ReasonCode = "RATE_UNSTABLE"
	ReasonModerateFit    ReasonCode = "MODERATE_FIT"
	ReasonStrongFit      ReasonCode = "STRONG_FIT"
	ReasonLimitedHistory ReasonCode = "LIMITED_HISTORY"
)

// MinRateForPrediction is the slowest rate (°/hour) the advisor will extrapolate.
const MinRateForPrediction = 0.1

const (
	minConfidenceSpanMinutes  = 15
	unstableR2                = 0.7
	strongR2                  = 0.9
	highConfidenceReadings    = 4
	highConfidenceSpanMinutes = 30
)

// ConfidenceInput carries whole-session counts and the current fit.
type ConfidenceInput struct {
	ReadingCount    int
	TimeSpanMinutes float64
	R2              float64
	Rate            *float64
}

// Confidence is a level plus the rule that produced it.
type Confidence struct {
	Level  ConfidenceLevel `json:"level"`
	Code   ReasonCode      `json:"code"`
	Reason string          `json:"reason"`
}

// AssessConfidence walks the rule chain; the first matching rule wins.
func AssessConfidence(in ConfidenceInput) Confidence {
	switch {
	case in.ReadingCount < 2:
		return Confidence{LevelInsufficient, ReasonNoData, "Need at least 2 readings to estimate a rate"}
	case in.ReadingCount < 3:
		return Confidence{LevelLow, ReasonTwoReadings, "Based on only 2 readings"}
	case in.Rate != nil && *in.Rate <= MinRateForPrediction:
		return Confidence{LevelLow, ReasonRateTooLow, "Temperature rise is slow or negative"}
	case in.TimeSpanMinutes < minConfidenceSpanMinutes:
		return Confidence{LevelLow, ReasonSpanTooShort,
			fmt.Sprintf("Readings span too short (%.0f of %d minutes)", in.TimeSpanMinutes, minConfidenceSpanMinutes)}
	case in.R2 < unstableR2:
		return Confidence{LevelLow, ReasonRateUnstable, "Recent readings are fluctuating"}
	case in.R2 < strongR2:
		return Confidence{LevelMedium, ReasonModerateFit, "Recent readings follow a moderately consistent trend"}
	case in.ReadingCount >= highConfidenceReadings && in.TimeSpanMinutes >= highConfidenceSpanMinutes:
		return Confidence{LevelHigh, ReasonStrongFit, "Consistent trend across enough readings and time"}
	default:
		return Confidence{LevelMedium, ReasonLimitedHistory, "Consistent trend but limited history"}
	}
}
