package engine

import (
	"math"
	"time"
)

// Prediction is the projected time to reach the target temperature.
type Prediction struct {
	Minutes    *int       `json:"minutes"`
	TargetTime *time.Time `json:"target_time"`
}

// PredictTimeToTarget extrapolates linearly from currentTemp at rate °/hour.
// It refuses to extrapolate on missing, near-zero or negative rates.
func PredictTimeToTarget(currentTemp, targetTemp float64, rate *float64, now time.Time) Prediction {
	remaining := targetTemp - currentTemp
	if remaining <= 0 {
		at := now
		return Prediction{Minutes: intPtr(0), TargetTime: &at}
	}
	if rate == nil || *rate <= MinRateForPrediction {
		return Prediction{}
	}
	minutes := int(math.Round(60 * remaining / *rate))
	at := now.Add(time.Duration(minutes) * time.Minute)
	return Prediction{Minutes: intPtr(minutes), TargetTime: &at}
}
